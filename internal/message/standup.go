package message

import (
	"fmt"
	"log"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/notepid/flockr/internal/chat"
)

// maxStandupLength is the longest window, in seconds, a timer can represent.
const maxStandupLength = math.MaxInt64 / int64(time.Second)

type standupWindow struct {
	running bool
	gen     int64
	starter int
	finish  int64
	lines   []string
}

func (w *standupWindow) active() bool { return w.running }

// StandupStart opens an aggregation window of length seconds in
// channelID and returns the unix time it closes.
func (s *Store) StandupStart(userID, channelID, length int) (int64, error) {
	if err := s.requireMember(channelID, userID); err != nil {
		return 0, err
	}
	if length <= 0 || int64(length) > maxStandupLength {
		return 0, ErrStandupLength
	}

	ch := s.channel(channelID)
	ch.mu.Lock()
	defer ch.mu.Unlock()

	if ch.standup.active() {
		return 0, ErrStandupActive
	}
	gen := s.generation.Load()
	finish := s.clock.Now().Unix() + int64(length)
	ch.standup = standupWindow{running: true, gen: gen, starter: userID, finish: finish}
	s.rec.StandupActive(1)
	s.clock.AfterFunc(time.Duration(length)*time.Second, func() {
		s.flush(ch, channelID, gen)
	})

	s.notify.Publish(chat.Event{
		Kind:      chat.KindStandupStarted,
		ChannelID: channelID,
		UserID:    userID,
		Time:      finish,
	})
	return finish, nil
}

// StandupActive reports whether channelID has a running standup.
func (s *Store) StandupActive(channelID int) (StandupStatus, error) {
	if err := s.requireChannel(channelID); err != nil {
		return StandupStatus{}, err
	}

	ch := s.channel(channelID)
	ch.mu.Lock()
	defer ch.mu.Unlock()

	if !ch.standup.active() {
		return StandupStatus{}, nil
	}
	finish := ch.standup.finish
	return StandupStatus{IsActive: true, TimeFinish: &finish}, nil
}

// StandupSend queues text for the running standup in channelID.
func (s *Store) StandupSend(userID, channelID int, text string) error {
	if err := s.requireMember(channelID, userID); err != nil {
		return err
	}
	if utf8.RuneCountInString(text) > s.maxLength {
		return ErrMessageLength
	}
	handle, err := s.dir.Handle(userID)
	if err != nil {
		return fmt.Errorf("handle of %d: %w", userID, err)
	}

	ch := s.channel(channelID)
	ch.mu.Lock()
	defer ch.mu.Unlock()

	if !ch.standup.active() {
		return ErrStandupInactive
	}
	ch.standup.lines = append(ch.standup.lines, handle+": "+text)
	return nil
}

// flush closes the window and posts its buffer as the starter. A cleared
// store leaves the window inactive, so the flush does nothing.
func (s *Store) flush(ch *channelState, channelID int, gen int64) {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	if !ch.standup.active() || ch.standup.gen != gen {
		return
	}
	if !s.current(gen, fmt.Sprintf("standup in channel %d", channelID)) {
		ch.standup = standupWindow{}
		s.rec.StandupActive(-1)
		return
	}
	w := ch.standup
	ch.standup = standupWindow{}
	s.rec.StandupActive(-1)

	defer s.notify.Publish(chat.Event{Kind: chat.KindStandupFinished, ChannelID: channelID, UserID: w.starter})
	if len(w.lines) == 0 {
		return
	}
	if err := s.requireChannel(channelID); err != nil {
		log.Printf("standup: flush for channel %d dropped: %v", channelID, err)
		return
	}

	now := s.clock.Now().Unix()
	for _, body := range s.split(w.lines) {
		m := &Message{AuthorID: w.starter, Text: body, TimeCreated: now}
		if !s.appendLocked(ch, channelID, gen, m, PathStandup, true) {
			log.Printf("standup: flush for channel %d dropped after clear", channelID)
			return
		}
	}
}

// split joins lines with newlines into bodies no longer than maxLength,
// breaking between lines where possible.
func (s *Store) split(lines []string) []string {
	var out, cur []string
	size := 0
	emit := func() {
		if len(cur) > 0 {
			out = append(out, strings.Join(cur, "\n"))
		}
		cur, size = nil, 0
	}

	for _, line := range lines {
		for utf8.RuneCountInString(line) > s.maxLength {
			emit()
			r := []rune(line)
			out = append(out, string(r[:s.maxLength]))
			line = string(r[s.maxLength:])
		}
		if line == "" {
			continue
		}
		n := utf8.RuneCountInString(line)
		if len(cur) > 0 {
			n++
		}
		if size+n > s.maxLength {
			emit()
			n = utf8.RuneCountInString(line)
		}
		cur = append(cur, line)
		size += n
	}
	emit()
	return out
}
