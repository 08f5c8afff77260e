package message

import "github.com/notepid/flockr/internal/apperr"

var (
	ErrMessageLength   = apperr.InvalidArg("invalid message length")
	ErrInvalidStart    = apperr.InvalidArg("invalid start")
	ErrInvalidReact    = apperr.InvalidArg("invalid react id")
	ErrTimeInPast      = apperr.InvalidArg("time sent is a time in the past")
	ErrStandupLength   = apperr.InvalidArg("standup length out of range")
	ErrChannelNotFound = apperr.NotFound("channel not found")
	ErrMessageNotFound = apperr.NotFound("message not found")
	ErrNotMember       = apperr.Forbidden("user is not a member of the channel")
	ErrNotOwner        = apperr.Forbidden("user is not an owner of the channel")
	ErrNotAllowed      = apperr.Forbidden("user may not modify this message")
	ErrAlreadyReacted  = apperr.FailedPrecondition("message already reacted by user")
	ErrNotReacted      = apperr.FailedPrecondition("message not reacted by user")
	ErrAlreadyPinned   = apperr.FailedPrecondition("message is already pinned")
	ErrNotPinned       = apperr.FailedPrecondition("message is not pinned")
	ErrStandupActive   = apperr.FailedPrecondition("standup already in progress")
	ErrStandupInactive = apperr.FailedPrecondition("no standup in progress")
)
