package stream

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/notepid/flockr/internal/chat"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { ws.Close() })
	return ws
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestServe_DeliversChannelEvents(t *testing.T) {
	broker := chat.NewBroker()
	mgr := NewManager(4)
	s := NewServer(mgr, broker)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Serve(w, r, 5, 1)
	}))
	defer srv.Close()

	ws := dial(t, srv)
	waitFor(t, func() bool { return broker.Count() == 1 && mgr.Count() == 1 })

	broker.Publish(chat.Event{Kind: chat.KindMessageSent, ChannelID: 2, MessageID: 99})
	broker.Publish(chat.Event{Kind: chat.KindMessageSent, ChannelID: 1, MessageID: 4, Text: "hi"})

	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev chat.Event
	if err := ws.ReadJSON(&ev); err != nil {
		t.Fatalf("read: %v", err)
	}
	if ev.MessageID != 4 || ev.Text != "hi" {
		t.Fatalf("expected channel 1 event, got %+v", ev)
	}

	mgr.Broadcast("restarting")
	if err := ws.ReadJSON(&ev); err != nil {
		t.Fatalf("read notice: %v", err)
	}
	if ev.Kind != chat.KindServerNotice || ev.Text != "restarting" {
		t.Fatalf("unexpected notice %+v", ev)
	}

	ws.Close()
	waitFor(t, func() bool { return broker.Count() == 0 && mgr.Count() == 0 })
}

func TestServe_RejectsWhenFull(t *testing.T) {
	mgr := NewManager(1)
	mgr.Acquire()
	s := NewServer(mgr, chat.NewBroker())

	rec := httptest.NewRecorder()
	s.Serve(rec, httptest.NewRequest(http.MethodGet, "/", nil), 1, 1)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
