package message

import (
	"fmt"

	"github.com/notepid/flockr/internal/chat"
)

// React adds userID's reaction of the given kind to messageID.
func (s *Store) React(userID, messageID, kind int) error {
	if !validReacts[kind] {
		return ErrInvalidReact
	}
	channelID, ch, i, err := s.locate(messageID)
	if err != nil {
		return err
	}
	defer ch.mu.Unlock()

	if err := s.memberOf(channelID, userID); err != nil {
		return err
	}

	m := ch.log[i]
	_, r := m.reaction(kind)
	if r != nil && r.has(userID) {
		return ErrAlreadyReacted
	}
	if r == nil {
		r = &Reaction{Kind: kind}
		m.Reacts = append(m.Reacts, r)
	}
	r.UserIDs = append(r.UserIDs, userID)
	if userID == m.AuthorID {
		r.AuthorReacted = true
	}

	s.notify.Publish(chat.Event{
		Kind:      chat.KindMessageReacted,
		ChannelID: channelID,
		MessageID: m.ID,
		UserID:    userID,
		ReactID:   kind,
	})
	return nil
}

// Unreact removes userID's reaction of the given kind from messageID. A
// reaction left with no users is dropped.
func (s *Store) Unreact(userID, messageID, kind int) error {
	if !validReacts[kind] {
		return ErrInvalidReact
	}
	channelID, ch, i, err := s.locate(messageID)
	if err != nil {
		return err
	}
	defer ch.mu.Unlock()

	if err := s.memberOf(channelID, userID); err != nil {
		return err
	}

	m := ch.log[i]
	idx, r := m.reaction(kind)
	if r == nil || !r.has(userID) {
		return ErrNotReacted
	}
	for j, id := range r.UserIDs {
		if id == userID {
			r.UserIDs = append(r.UserIDs[:j], r.UserIDs[j+1:]...)
			break
		}
	}
	if userID == m.AuthorID {
		r.AuthorReacted = false
	}
	if len(r.UserIDs) == 0 {
		m.Reacts = append(m.Reacts[:idx], m.Reacts[idx+1:]...)
	}

	s.notify.Publish(chat.Event{
		Kind:      chat.KindMessageUnreact,
		ChannelID: channelID,
		MessageID: m.ID,
		UserID:    userID,
		ReactID:   kind,
	})
	return nil
}

// Pin marks messageID as pinned. userID must own the channel.
func (s *Store) Pin(userID, messageID int) error {
	return s.setPinned(userID, messageID, true)
}

// Unpin clears the pinned flag on messageID. userID must own the channel.
func (s *Store) Unpin(userID, messageID int) error {
	return s.setPinned(userID, messageID, false)
}

func (s *Store) setPinned(userID, messageID int, pinned bool) error {
	channelID, ch, i, err := s.locate(messageID)
	if err != nil {
		return err
	}
	defer ch.mu.Unlock()

	if err := s.requireOwner(channelID, userID); err != nil {
		return err
	}
	m := ch.log[i]
	switch {
	case pinned && m.Pinned:
		return ErrAlreadyPinned
	case !pinned && !m.Pinned:
		return ErrNotPinned
	}
	m.Pinned = pinned

	kind := chat.KindMessagePinned
	if !pinned {
		kind = chat.KindMessageUnpinned
	}
	s.notify.Publish(chat.Event{Kind: kind, ChannelID: channelID, MessageID: m.ID, UserID: userID})
	return nil
}

// memberOf checks membership for a channel already known to exist.
func (s *Store) memberOf(channelID, userID int) error {
	ok, err := s.dir.IsMember(channelID, userID)
	if err != nil {
		return fmt.Errorf("check membership %d/%d: %w", channelID, userID, err)
	}
	if !ok {
		return ErrNotMember
	}
	return nil
}
