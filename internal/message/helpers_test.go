package message

import (
	"sync"
	"testing"
	"time"

	"github.com/notepid/flockr/internal/clock"
)

var epoch = time.Unix(1_700_000_000, 0)

type pair struct{ channel, user int }

type fakeDirectory struct {
	mu       sync.Mutex
	channels map[int]bool
	members  map[pair]bool
	owners   map[pair]bool
	admins   map[int]bool
	handles  map[int]string
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		channels: make(map[int]bool),
		members:  make(map[pair]bool),
		owners:   make(map[pair]bool),
		admins:   make(map[int]bool),
		handles:  make(map[int]string),
	}
}

func (d *fakeDirectory) addChannel(channelID int, owner int, members ...int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.channels[channelID] = true
	d.owners[pair{channelID, owner}] = true
	d.members[pair{channelID, owner}] = true
	for _, m := range members {
		d.members[pair{channelID, m}] = true
	}
}

func (d *fakeDirectory) dropChannel(channelID int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.channels, channelID)
}

func (d *fakeDirectory) ChannelExists(channelID int) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.channels[channelID], nil
}

func (d *fakeDirectory) IsMember(channelID, userID int) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.members[pair{channelID, userID}], nil
}

func (d *fakeDirectory) IsOwner(channelID, userID int) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.owners[pair{channelID, userID}], nil
}

func (d *fakeDirectory) IsPlatformOwner(userID int) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.admins[userID], nil
}

func (d *fakeDirectory) Handle(userID int) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if h, ok := d.handles[userID]; ok {
		return h, nil
	}
	return "user", nil
}

func (d *fakeDirectory) ChannelsOf(userID int) ([]int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var ids []int
	for p := range d.members {
		if p.user == userID {
			ids = append(ids, p.channel)
		}
	}
	return ids, nil
}

type fixedWords string

func (w fixedWords) RandomWord() string            { return string(w) }
func (w fixedWords) Define(string) (string, bool) { return "", false }

type countingRecorder struct {
	mu       sync.Mutex
	appended map[string]int
	pending  int
	standups int
	outcomes map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{appended: make(map[string]int), outcomes: make(map[string]int)}
}

func (r *countingRecorder) MessageAppended(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appended[path]++
}

func (r *countingRecorder) DeferredPending(delta int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending += delta
}

func (r *countingRecorder) StandupActive(delta int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.standups += delta
}

func (r *countingRecorder) HangmanOutcome(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes[outcome]++
}

// Channel 1 is owned by user 1; user 2 is a member; user 3 is an outsider.
type fixture struct {
	store *Store
	clock *clock.FakeClock
	dir   *fakeDirectory
	rec   *countingRecorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := newFakeDirectory()
	dir.addChannel(1, 1, 2)
	c := clock.Fake(epoch)
	rec := newCountingRecorder()
	s := NewStore(Options{
		Clock:     c,
		Directory: dir,
		Words:     fixedWords("cat"),
		Recorder:  rec,
	})
	return &fixture{store: s, clock: c, dir: dir, rec: rec}
}

func (f *fixture) send(t *testing.T, userID int, text string) int {
	t.Helper()
	id, err := f.store.Send(userID, 1, text)
	if err != nil {
		t.Fatalf("send %q: %v", text, err)
	}
	return id
}

func (f *fixture) newest(t *testing.T) View {
	t.Helper()
	page, err := f.store.Paginate(1, 1, 0)
	if err != nil {
		t.Fatalf("paginate: %v", err)
	}
	if len(page.Messages) == 0 {
		t.Fatalf("expected at least one message")
	}
	return page.Messages[0]
}
