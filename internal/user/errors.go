package user

import "github.com/notepid/flockr/internal/apperr"

var (
	ErrInvalidEmail      = apperr.InvalidArg("invalid email address")
	ErrPasswordLength    = apperr.InvalidArg("password too short (minimum 6 characters)")
	ErrNameLength        = apperr.InvalidArg("names must be between 1 and 50 characters")
	ErrHandleLength      = apperr.InvalidArg("handle must be between 3 and 20 characters")
	ErrInvalidPermission = apperr.InvalidArg("invalid permission id")
	ErrEmailTaken        = apperr.AlreadyExists("email already in use")
	ErrHandleTaken       = apperr.AlreadyExists("handle already in use")
	ErrUserNotFound      = apperr.NotFound("user not found")
	ErrBadCredentials    = apperr.Unauthorized("incorrect email or password")
	ErrInvalidToken      = apperr.Unauthorized("invalid or expired token")
	ErrNotPlatformOwner  = apperr.Forbidden("user is not a platform owner")
)
