package stream

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/notepid/flockr/internal/chat"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server upgrades authorised requests into channel streams.
type Server struct {
	mgr    *Manager
	broker *chat.Broker
}

// NewServer creates a stream server.
func NewServer(mgr *Manager, broker *chat.Broker) *Server {
	return &Server{mgr: mgr, broker: broker}
}

// Serve upgrades the request and streams channelID's events to userID
// until either side closes. Callers check membership first.
func (s *Server) Serve(w http.ResponseWriter, r *http.Request, userID, channelID int) {
	id, ok := s.mgr.Acquire()
	if !ok {
		http.Error(w, "too many open streams", http.StatusServiceUnavailable)
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.mgr.Remove(id)
		log.Printf("stream: upgrade failed: %v", err)
		return
	}

	c := newConn(id, userID, channelID, r.RemoteAddr)
	c.ws = ws
	c.sub = s.broker.Subscribe(userID, channelID)
	s.mgr.Add(c)
	log.Printf("Stream %d opened by user %d on channel %d (%s)", id, userID, channelID, c.Remote)

	defer func() {
		s.broker.Unsubscribe(c.sub.ID)
		s.mgr.Remove(id)
		log.Printf("Stream %d closed", id)
	}()

	go c.writePump()
	c.readPump()
}
