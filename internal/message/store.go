// Package message holds every channel's message log in memory, along with
// deferred sends, standup windows and the per-channel hangman game.
package message

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/notepid/flockr/internal/chat"
	"github.com/notepid/flockr/internal/clock"
	"github.com/notepid/flockr/internal/hangman"
)

const (
	DefaultPageSize  = 50
	DefaultMaxLength = 1000
)

// Append paths, used as metric labels.
const (
	PathSend     = "send"
	PathDeferred = "deferred"
	PathStandup  = "standup"
)

// Options configures a Store. Directory and Words are required.
type Options struct {
	Clock        clock.Clock
	Directory    Directory
	Words        hangman.Words
	Notifier     Notifier
	Recorder     Recorder
	PageSize     int
	MaxLength    int
	MaxIncorrect int
}

// Store owns all channel logs and the global message id counter.
type Store struct {
	clock     clock.Clock
	dir       Directory
	notify    Notifier
	rec       Recorder
	game      *hangman.Engine
	pageSize  int
	maxLength int

	nextID     atomic.Int64
	generation atomic.Int64

	mu       sync.RWMutex
	channels map[int]*channelState
	index    map[int]int // message id -> channel id
}

// channelState is guarded by its own mutex; every mutation of a channel's
// log, standup window or game happens under it.
type channelState struct {
	mu      sync.Mutex
	log     []*Message
	standup standupWindow
	game    hangman.Game
}

// NewStore creates an empty store.
func NewStore(opts Options) *Store {
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	if opts.Notifier == nil {
		opts.Notifier = nopNotifier{}
	}
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.MaxLength <= 0 {
		opts.MaxLength = DefaultMaxLength
	}
	return &Store{
		clock:     opts.Clock,
		dir:       opts.Directory,
		notify:    opts.Notifier,
		rec:       opts.Recorder,
		game:      hangman.NewEngine(opts.Words, opts.MaxIncorrect, opts.MaxLength),
		pageSize:  opts.PageSize,
		maxLength: opts.MaxLength,
		channels:  make(map[int]*channelState),
		index:     make(map[int]int),
	}
}

// Clear drops every log, standup and game and resets the id counter.
// Deferred work armed before Clear is discarded when it fires.
func (s *Store) Clear() {
	s.mu.Lock()
	old := s.channels
	s.channels = make(map[int]*channelState)
	s.index = make(map[int]int)
	s.nextID.Store(0)
	s.generation.Add(1)
	s.mu.Unlock()

	for _, ch := range old {
		ch.mu.Lock()
		if ch.standup.active() {
			ch.standup = standupWindow{}
			s.rec.StandupActive(-1)
		}
		ch.mu.Unlock()
	}
}

// Send appends text to channelID on behalf of userID and returns the new
// message id. Hangman commands are replaced by the game's display.
func (s *Store) Send(userID, channelID int, text string) (int, error) {
	if err := s.validLength(text); err != nil {
		return 0, err
	}
	if err := s.requireMember(channelID, userID); err != nil {
		return 0, err
	}

	for {
		if id, ok := s.trySend(userID, channelID, text); ok {
			return id, nil
		}
	}
}

// trySend appends under the channel lock. It reports false when a Clear
// replaced the channel state first, and the caller retries on the fresh one.
func (s *Store) trySend(userID, channelID int, text string) (int, bool) {
	ch := s.channel(channelID)
	ch.mu.Lock()
	defer ch.mu.Unlock()
	gen := s.generation.Load()

	outcome := hangman.NoChange
	cmd := hangman.Parse(text, ch.game.Active())
	if cmd.Kind != hangman.Ordinary {
		var body string
		body, outcome = s.game.Apply(&ch.game, cmd)
		if body != "" {
			text = body
		}
	}

	m := &Message{
		AuthorID:    userID,
		Text:        text,
		TimeCreated: s.clock.Now().Unix(),
	}
	if !s.appendLocked(ch, channelID, gen, m, PathSend, true) {
		return 0, false
	}
	if outcome != hangman.NoChange {
		s.rec.HangmanOutcome(outcome.String())
	}
	return m.ID, true
}

func (s *Store) allocate() int {
	return int(s.nextID.Add(1) - 1)
}

// reserve allocates an id and returns it with the generation it belongs to.
func (s *Store) reserve() (int, int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allocate(), s.generation.Load()
}

// appendLocked adds m to the channel log and reports whether it did. It
// refuses when ch is no longer the live state for channelID or the store
// was cleared after gen. With assign set, m gets the next id. The caller
// holds ch.mu.
func (s *Store) appendLocked(ch *channelState, channelID int, gen int64, m *Message, path string, assign bool) bool {
	s.mu.Lock()
	if s.channels[channelID] != ch || s.generation.Load() != gen {
		s.mu.Unlock()
		return false
	}
	if assign {
		m.ID = s.allocate()
	}
	ch.log = append(ch.log, m)
	s.index[m.ID] = channelID
	s.mu.Unlock()

	s.rec.MessageAppended(path)
	s.notify.Publish(chat.Event{
		Kind:      chat.KindMessageSent,
		ChannelID: channelID,
		MessageID: m.ID,
		UserID:    m.AuthorID,
		Text:      m.Text,
		Time:      m.TimeCreated,
	})
	return true
}

// channel returns the state for channelID, creating it on first use.
func (s *Store) channel(channelID int) *channelState {
	s.mu.RLock()
	ch, ok := s.channels[channelID]
	s.mu.RUnlock()
	if ok {
		return ch
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ch, ok = s.channels[channelID]; !ok {
		ch = &channelState{}
		s.channels[channelID] = ch
	}
	return ch
}

// locate finds the channel holding messageID and returns it locked along
// with the message's position. The caller must unlock ch.mu.
func (s *Store) locate(messageID int) (int, *channelState, int, error) {
	s.mu.RLock()
	channelID, ok := s.index[messageID]
	ch := s.channels[channelID]
	s.mu.RUnlock()
	if !ok || ch == nil {
		return 0, nil, 0, ErrMessageNotFound
	}

	ch.mu.Lock()
	for i, m := range ch.log {
		if m.ID == messageID {
			return channelID, ch, i, nil
		}
	}
	ch.mu.Unlock()
	return 0, nil, 0, ErrMessageNotFound
}

func (s *Store) validLength(text string) error {
	n := utf8.RuneCountInString(text)
	if n == 0 || n > s.maxLength {
		return ErrMessageLength
	}
	return nil
}

func (s *Store) requireChannel(channelID int) error {
	ok, err := s.dir.ChannelExists(channelID)
	if err != nil {
		return fmt.Errorf("check channel %d: %w", channelID, err)
	}
	if !ok {
		return ErrChannelNotFound
	}
	return nil
}

func (s *Store) requireMember(channelID, userID int) error {
	if err := s.requireChannel(channelID); err != nil {
		return err
	}
	return s.memberOf(channelID, userID)
}

func (s *Store) requireOwner(channelID, userID int) error {
	ok, err := s.dir.IsOwner(channelID, userID)
	if err != nil {
		return fmt.Errorf("check owner %d/%d: %w", channelID, userID, err)
	}
	if !ok {
		return ErrNotOwner
	}
	return nil
}

// current reports whether gen still matches the store, logging the drop
// when it does not.
func (s *Store) current(gen int64, what string) bool {
	if gen == s.generation.Load() {
		return true
	}
	log.Printf("message: dropped %s armed before clear", what)
	return false
}
