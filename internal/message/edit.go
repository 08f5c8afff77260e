package message

import (
	"fmt"

	"github.com/notepid/flockr/internal/chat"
)

// Remove deletes messageID. userID must be the author, a channel owner or
// a platform owner.
func (s *Store) Remove(userID, messageID int) error {
	channelID, ch, i, err := s.locate(messageID)
	if err != nil {
		return err
	}
	defer ch.mu.Unlock()

	if err := s.mayModify(channelID, userID, ch.log[i]); err != nil {
		return err
	}
	s.removeLocked(ch, channelID, i)
	return nil
}

// Edit replaces the body of messageID. An empty text removes the message.
func (s *Store) Edit(userID, messageID int, text string) error {
	if text == "" {
		return s.Remove(userID, messageID)
	}
	if err := s.validLength(text); err != nil {
		return err
	}

	channelID, ch, i, err := s.locate(messageID)
	if err != nil {
		return err
	}
	defer ch.mu.Unlock()

	m := ch.log[i]
	if err := s.mayModify(channelID, userID, m); err != nil {
		return err
	}
	m.Text = text
	s.notify.Publish(chat.Event{
		Kind:      chat.KindMessageEdited,
		ChannelID: channelID,
		MessageID: m.ID,
		UserID:    userID,
		Text:      text,
	})
	return nil
}

func (s *Store) removeLocked(ch *channelState, channelID, i int) {
	m := ch.log[i]
	ch.log = append(ch.log[:i], ch.log[i+1:]...)
	s.mu.Lock()
	delete(s.index, m.ID)
	s.mu.Unlock()

	s.notify.Publish(chat.Event{
		Kind:      chat.KindMessageRemoved,
		ChannelID: channelID,
		MessageID: m.ID,
	})
}

func (s *Store) mayModify(channelID, userID int, m *Message) error {
	if m.AuthorID == userID {
		return nil
	}
	owner, err := s.dir.IsOwner(channelID, userID)
	if err != nil {
		return fmt.Errorf("check owner %d/%d: %w", channelID, userID, err)
	}
	if owner {
		return nil
	}
	admin, err := s.dir.IsPlatformOwner(userID)
	if err != nil {
		return fmt.Errorf("check platform owner %d: %w", userID, err)
	}
	if admin {
		return nil
	}
	return ErrNotAllowed
}
