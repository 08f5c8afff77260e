package message

import (
	"fmt"
	"log"
	"time"
)

// SendLater reserves a message id now and appends text to channelID at
// the unix time at. The stored creation time is at itself.
func (s *Store) SendLater(userID, channelID int, text string, at int64) (int, error) {
	if err := s.validLength(text); err != nil {
		return 0, err
	}
	now := s.clock.Now()
	if at < now.Unix() {
		return 0, ErrTimeInPast
	}
	if err := s.requireMember(channelID, userID); err != nil {
		return 0, err
	}

	id, gen := s.reserve()
	s.rec.DeferredPending(1)
	s.clock.AfterFunc(time.Unix(at, 0).Sub(now), func() {
		s.deliver(gen, &Message{ID: id, AuthorID: userID, Text: text, TimeCreated: at}, channelID)
	})
	return id, nil
}

func (s *Store) deliver(gen int64, m *Message, channelID int) {
	s.rec.DeferredPending(-1)
	if !s.current(gen, fmt.Sprintf("deferred message %d", m.ID)) {
		return
	}
	if err := s.requireChannel(channelID); err != nil {
		log.Printf("message: dropped deferred send %d to channel %d: %v", m.ID, channelID, err)
		return
	}

	ch := s.channel(channelID)
	ch.mu.Lock()
	defer ch.mu.Unlock()
	if !s.appendLocked(ch, channelID, gen, m, PathDeferred, false) {
		log.Printf("message: dropped deferred message %d armed before clear", m.ID)
	}
}
