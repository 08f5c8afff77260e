package chat

import (
	"log"
	"sync"
)

// Event kinds published by the message store.
const (
	KindMessageSent     = "message.sent"
	KindMessageEdited   = "message.edited"
	KindMessageRemoved  = "message.removed"
	KindMessageReacted  = "message.reacted"
	KindMessageUnreact  = "message.unreacted"
	KindMessagePinned   = "message.pinned"
	KindMessageUnpinned = "message.unpinned"
	KindStandupStarted  = "standup.started"
	KindStandupFinished = "standup.finished"
	KindServerNotice    = "server.notice"
)

// Event is a change in a channel, delivered to live subscribers.
type Event struct {
	Kind      string `json:"kind"`
	ChannelID int    `json:"channel_id"`
	MessageID int    `json:"message_id,omitempty"`
	UserID    int    `json:"u_id,omitempty"`
	Text      string `json:"message,omitempty"`
	ReactID   int    `json:"react_id,omitempty"`
	Time      int64  `json:"time,omitempty"`
}

// Subscriber receives events for one channel.
type Subscriber struct {
	ID        int
	UserID    int
	ChannelID int
	Ch        chan Event
}

// Broker routes channel events to subscribers.
type Broker struct {
	mu          sync.RWMutex
	nextID      int
	subscribers map[int]*Subscriber
}

// NewBroker creates a new event broker.
func NewBroker() *Broker {
	return &Broker{subscribers: make(map[int]*Subscriber)}
}

// Subscribe registers userID to receive events from channelID.
func (b *Broker) Subscribe(userID, channelID int) *Subscriber {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &Subscriber{
		ID:        b.nextID,
		UserID:    userID,
		ChannelID: channelID,
		Ch:        make(chan Event, 32),
	}
	b.subscribers[sub.ID] = sub
	return sub
}

// Unsubscribe removes a subscriber.
func (b *Broker) Unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Don't close the channel here: publishers may have already snapshotted
	// subscribers and will send concurrently.
	delete(b.subscribers, id)
}

// Count returns the number of live subscribers.
func (b *Broker) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Watching returns the ids of users subscribed to channelID.
func (b *Broker) Watching(channelID int) []int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var ids []int
	for _, sub := range b.subscribers {
		if sub.ChannelID == channelID {
			ids = append(ids, sub.UserID)
		}
	}
	return ids
}

// Publish sends ev to every subscriber of ev.ChannelID. Slow subscribers
// miss the event.
func (b *Broker) Publish(ev Event) {
	b.mu.RLock()
	subs := make([]*Subscriber, 0, len(b.subscribers))
	for _, sub := range b.subscribers {
		if sub.ChannelID == ev.ChannelID {
			subs = append(subs, sub)
		}
	}
	b.mu.RUnlock()

	if dropped := deliver(subs, ev); dropped > 0 {
		log.Printf("chat: dropped %d %s events (channel=%d)", dropped, ev.Kind, ev.ChannelID)
	}
}

// Broadcast sends ev to every subscriber regardless of channel.
func (b *Broker) Broadcast(ev Event) {
	b.mu.RLock()
	subs := make([]*Subscriber, 0, len(b.subscribers))
	for _, sub := range b.subscribers {
		subs = append(subs, sub)
	}
	b.mu.RUnlock()

	if dropped := deliver(subs, ev); dropped > 0 {
		log.Printf("chat: dropped %d broadcast events (slow subscribers)", dropped)
	}
}

func deliver(subs []*Subscriber, ev Event) int {
	dropped := 0
	for _, sub := range subs {
		select {
		case sub.Ch <- ev:
		default:
			dropped++
		}
	}
	return dropped
}
