package entity

import (
	"time"
)

// OTP is the one-time code sub-record embedded in a user.
// A cleared OTP has an empty Code and a nil GeneratedAt.
type OTP struct {
	Code        string     `json:"code"`
	GeneratedAt *time.Time `json:"generatedAt"`
}

// Outstanding reports whether a code is waiting to be verified.
func (o OTP) Outstanding() bool {
	return o.Code != "" && o.GeneratedAt != nil
}

// User is the aggregate root for the user domain.
// Passwords are stored as bcrypt hashes in Password field.
// Followings holds artist ids; they are resolved by lookup, never embedded.
type User struct {
	ID         string    `json:"_id"`
	Name       string    `json:"name"`
	Mobile     string    `json:"mobile"`
	Email      string    `json:"email"`
	Password   string    `json:"-"`
	IsVerified bool      `json:"isVerified"`
	IsBlocked  bool      `json:"isBlocked"`
	OTP        OTP       `json:"-"`
	Followings []string  `json:"followings"`
	Profile    string    `json:"profile"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// UserSummary is the populated view of a user referenced from comments.
type UserSummary struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Profile string `json:"profile"`
}
