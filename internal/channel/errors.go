package channel

import "github.com/notepid/flockr/internal/apperr"

var (
	ErrNameLength      = apperr.InvalidArg("channel name must be between 1 and 20 characters")
	ErrNotFound        = apperr.NotFound("channel not found")
	ErrPrivate         = apperr.Forbidden("channel is private")
	ErrNotMember       = apperr.Forbidden("user is not a member of the channel")
	ErrNotOwner        = apperr.Forbidden("user is not an owner of the channel")
	ErrOwnerProtected  = apperr.Forbidden("only a platform owner can remove a platform owner")
	ErrAlreadyMember   = apperr.FailedPrecondition("user is already a member")
	ErrTargetNotMember = apperr.FailedPrecondition("target is not a member")
	ErrAlreadyOwner    = apperr.FailedPrecondition("target is already an owner")
	ErrTargetNotOwner  = apperr.FailedPrecondition("target is not an owner")
)
