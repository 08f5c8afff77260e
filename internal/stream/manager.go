// Package stream pushes live channel events to websocket clients.
package stream

import (
	"sync"

	"github.com/notepid/flockr/internal/chat"
)

// Manager tracks open streams and enforces the max-streams limit.
type Manager struct {
	mu         sync.RWMutex
	conns      map[int]*Conn
	reserved   map[int]bool
	maxStreams int
}

// NewManager creates a new stream manager.
func NewManager(maxStreams int) *Manager {
	return &Manager{
		conns:      make(map[int]*Conn),
		reserved:   make(map[int]bool),
		maxStreams: maxStreams,
	}
}

// Acquire reserves the lowest free stream ID if capacity allows.
// Returns the ID and true, or 0 and false if full.
func (m *Manager) Acquire() (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.reserved) >= m.maxStreams {
		return 0, false
	}
	id := 1
	for m.reserved[id] {
		id++
	}
	m.reserved[id] = true
	return id, true
}

// Add registers a connection under its reserved ID.
func (m *Manager) Add(c *Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reserved[c.ID] = true
	m.conns[c.ID] = c
}

// Remove releases a stream ID.
func (m *Manager) Remove(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.conns, id)
	delete(m.reserved, id)
}

// Get returns a connection by ID, or nil if not found.
func (m *Manager) Get(id int) *Conn {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.conns[id]
}

// Count returns the number of open streams.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.conns)
}

// Info holds summary information about an open stream.
type Info struct {
	ID        int
	UserID    int
	ChannelID int
	Remote    string
}

// List returns summary info for all open streams.
func (m *Manager) List() []Info {
	m.mu.RLock()
	defer m.mu.RUnlock()
	info := make([]Info, 0, len(m.conns))
	for _, c := range m.conns {
		info = append(info, Info{
			ID:        c.ID,
			UserID:    c.UserID,
			ChannelID: c.ChannelID,
			Remote:    c.Remote,
		})
	}
	return info
}

// Broadcast queues a server notice on every open stream.
func (m *Manager) Broadcast(msg string) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.conns {
		c.notify(chat.Event{Kind: chat.KindServerNotice, ChannelID: c.ChannelID, Text: msg})
	}
}

// CloseAll asks every open stream to shut down.
func (m *Manager) CloseAll() {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.conns {
		c.Close()
	}
}
