package stream

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/notepid/flockr/internal/chat"
)

const (
	writeWait = 10 * time.Second
	pongWait  = 60 * time.Second
)

// Conn is one websocket client watching one channel.
type Conn struct {
	ID        int
	UserID    int
	ChannelID int
	Remote    string
	ConnectAt time.Time

	ws      *websocket.Conn
	sub     *chat.Subscriber
	notices chan chat.Event
	done    chan struct{}
	once    sync.Once
}

func newConn(id, userID, channelID int, remote string) *Conn {
	return &Conn{
		ID:        id,
		UserID:    userID,
		ChannelID: channelID,
		Remote:    remote,
		ConnectAt: time.Now(),
		notices:   make(chan chat.Event, 8),
		done:      make(chan struct{}),
	}
}

// Close stops the connection's pumps. Safe to call more than once.
func (c *Conn) Close() {
	c.once.Do(func() { close(c.done) })
}

func (c *Conn) notify(ev chat.Event) {
	select {
	case c.notices <- ev:
	default:
		log.Printf("stream %d: notice dropped", c.ID)
	}
}

// readPump only services control frames; clients do not send data.
func (c *Conn) readPump() {
	defer c.Close()
	c.ws.SetReadLimit(512)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error { return c.ws.SetReadDeadline(time.Now().Add(pongWait)) })
	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("stream %d: read error: %v", c.ID, err)
			}
			return
		}
	}
}

func (c *Conn) writePump() {
	ticker := time.NewTicker((pongWait * 9) / 10)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()
	for {
		var ev chat.Event
		select {
		case ev = <-c.sub.Ch:
		case ev = <-c.notices:
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
			continue
		case <-c.done:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.ws.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server closing"))
			return
		}
		_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.ws.WriteJSON(ev); err != nil {
			return
		}
	}
}
