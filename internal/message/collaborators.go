package message

import "github.com/notepid/flockr/internal/chat"

// Directory answers membership and identity questions owned by the
// user and channel packages.
type Directory interface {
	ChannelExists(channelID int) (bool, error)
	IsMember(channelID, userID int) (bool, error)
	IsOwner(channelID, userID int) (bool, error)
	IsPlatformOwner(userID int) (bool, error)
	Handle(userID int) (string, error)
	ChannelsOf(userID int) ([]int, error)
}

// Notifier receives channel events after each mutation.
type Notifier interface {
	Publish(ev chat.Event)
}

// Recorder receives engine counters.
type Recorder interface {
	MessageAppended(path string)
	DeferredPending(delta int)
	StandupActive(delta int)
	HangmanOutcome(outcome string)
}

type nopNotifier struct{}

func (nopNotifier) Publish(chat.Event) {}

type nopRecorder struct{}

func (nopRecorder) MessageAppended(string) {}
func (nopRecorder) DeferredPending(int)    {}
func (nopRecorder) StandupActive(int)      {}
func (nopRecorder) HangmanOutcome(string)  {}
