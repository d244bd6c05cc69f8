package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/artflow-api/internal/application"
	"github.com/oksasatya/artflow-api/pkg/response"
	"github.com/oksasatya/artflow-api/pkg/validation"
)

// fail maps a service error to the response body. Domain errors are logical
// failures; anything else is logged and hidden behind a 500.
func fail(c *gin.Context, logger *logrus.Logger, err error) {
	if application.IsDomainError(err) {
		response.Fail(c, err.Error())
		return
	}
	if logger != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"path":       c.FullPath(),
			"request_id": c.GetString("request_id"),
		}).Error("request failed")
	}
	response.Internal(c)
}

// bindJSON binds the body into req and writes the validation details on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Invalid(c, validation.ToDetails(err))
		return false
	}
	return true
}

// idParam returns the named path parameter when it is a well-formed id.
// Malformed ids cannot match anything, so callers report them as notFound.
func idParam(c *gin.Context, name string, notFound error) (string, bool) {
	id := c.Param(name)
	if _, err := uuid.Parse(id); err != nil {
		response.Fail(c, notFound.Error())
		return "", false
	}
	return id, true
}
