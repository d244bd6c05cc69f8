package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Bodies follow one of two shapes:
//
//	{"success": "<message>", ...payload}
//	{"error": "<message>", "details": {...}}
//
// Logical failures are reported with status 200; only middleware rejections
// and unexpected failures use other statuses.

func withRequestID(c *gin.Context, body gin.H) gin.H {
	if id := c.GetString("request_id"); id != "" {
		body["request_id"] = id
	}
	return body
}

// OK writes a success body. Keys in payload are merged at the top level.
func OK(c *gin.Context, message string, payload gin.H) {
	body := gin.H{"success": message}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, withRequestID(c, body))
}

// Fail writes a logical failure with status 200.
func Fail(c *gin.Context, message string) {
	c.JSON(http.StatusOK, withRequestID(c, gin.H{"error": message}))
}

// FailWith is Fail with extra top-level fields, e.g. the user on a blocked account.
func FailWith(c *gin.Context, message string, payload gin.H) {
	body := gin.H{"error": message}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, withRequestID(c, body))
}

// Invalid reports a request that failed binding or validation.
func Invalid(c *gin.Context, details map[string]string) {
	c.JSON(http.StatusOK, withRequestID(c, gin.H{"error": "invalid request", "details": details}))
}

// Internal hides the cause from the client.
func Internal(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, withRequestID(c, gin.H{"error": "internal server error"}))
}

// Abort stops the chain with a non-200 status; used by middleware.
func Abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, withRequestID(c, gin.H{"error": message}))
}
