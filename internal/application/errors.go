package application

import "errors"

// Domain errors. Their messages are the {"error": ...} bodies returned to clients.
var (
	ErrDuplicateEmail       = errors.New("email already exists")
	ErrDuplicatePhone       = errors.New("mobile number already exists")
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailRequired        = errors.New("email is required")
	ErrOtpRequired          = errors.New("please enter otp")
	ErrOtpExpired           = errors.New("otp expired")
	ErrOtpInvalid           = errors.New("otp is invalid")
	ErrInvalidPassword      = errors.New("invalid password")
	ErrBlocked              = errors.New("you are blocked by admin")
	ErrNotVerified          = errors.New("you are not verified, sign up again")
	ErrArtistNotFound       = errors.New("artist not found")
	ErrPostNotFound         = errors.New("post not found")
	ErrCommentNotFound      = errors.New("comment not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNoFollowers          = errors.New("no followers found")
	ErrNoFollowings         = errors.New("no followings found")
	ErrStorageUnavailable   = errors.New("image storage is not configured")
)

// IsDomainError reports whether err is one of the errors above, i.e. a logical
// failure rather than an infrastructure one.
func IsDomainError(err error) bool {
	for _, d := range domainErrors {
		if errors.Is(err, d) {
			return true
		}
	}
	return false
}

var domainErrors = []error{
	ErrDuplicateEmail, ErrDuplicatePhone, ErrUserNotFound, ErrEmailRequired,
	ErrOtpRequired, ErrOtpExpired, ErrOtpInvalid, ErrInvalidPassword, ErrBlocked,
	ErrNotVerified, ErrArtistNotFound, ErrPostNotFound, ErrCommentNotFound,
	ErrNotificationNotFound, ErrNoFollowers, ErrNoFollowings, ErrStorageUnavailable,
}
