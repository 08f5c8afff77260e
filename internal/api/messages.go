package api

import (
	"net/http"

	"github.com/notepid/flockr/internal/message"
	"github.com/notepid/flockr/internal/user"
)

type messageRequest struct {
	ChannelID int    `json:"channel_id"`
	MessageID int    `json:"message_id"`
	Message   string `json:"message"`
	ReactID   int    `json:"react_id"`
	TimeSent  int64  `json:"time_sent"`
}

func (s *Server) send(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := decode(r, &req); err != nil {
		fail(w, err)
		return
	}
	id, err := s.messages.Send(callerOf(r), req.ChannelID, req.Message)
	if err != nil {
		fail(w, err)
		return
	}
	ok(w, map[string]int{"message_id": id})
}

func (s *Server) sendLater(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := decode(r, &req); err != nil {
		fail(w, err)
		return
	}
	id, err := s.messages.SendLater(callerOf(r), req.ChannelID, req.Message, req.TimeSent)
	if err != nil {
		fail(w, err)
		return
	}
	ok(w, map[string]int{"message_id": id})
}

// mutate runs a body-driven operation on an existing message.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, op func(caller int, req messageRequest) error) {
	var req messageRequest
	if err := decode(r, &req); err != nil {
		fail(w, err)
		return
	}
	if err := op(callerOf(r), req); err != nil {
		fail(w, err)
		return
	}
	ok(w, nil)
}

func (s *Server) edit(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(caller int, req messageRequest) error {
		return s.messages.Edit(caller, req.MessageID, req.Message)
	})
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(caller int, req messageRequest) error {
		return s.messages.Remove(caller, req.MessageID)
	})
}

func (s *Server) react(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(caller int, req messageRequest) error {
		return s.messages.React(caller, req.MessageID, req.ReactID)
	})
}

func (s *Server) unreact(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(caller int, req messageRequest) error {
		return s.messages.Unreact(caller, req.MessageID, req.ReactID)
	})
}

func (s *Server) pin(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(caller int, req messageRequest) error {
		return s.messages.Pin(caller, req.MessageID)
	})
}

func (s *Server) unpin(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(caller int, req messageRequest) error {
		return s.messages.Unpin(caller, req.MessageID)
	})
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	found, err := s.messages.Search(callerOf(r), r.URL.Query().Get("query_str"))
	if err != nil {
		fail(w, err)
		return
	}
	ok(w, map[string][]message.View{"messages": found})
}

func (s *Server) standupStart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChannelID int `json:"channel_id"`
		Length    int `json:"length"`
	}
	if err := decode(r, &req); err != nil {
		fail(w, err)
		return
	}
	finish, err := s.messages.StandupStart(callerOf(r), req.ChannelID, req.Length)
	if err != nil {
		fail(w, err)
		return
	}
	ok(w, map[string]int64{"time_finish": finish})
}

func (s *Server) standupActive(w http.ResponseWriter, r *http.Request) {
	id, err := queryInt(r, "channel_id")
	if err != nil {
		fail(w, err)
		return
	}
	status, err := s.messages.StandupActive(id)
	if err != nil {
		fail(w, err)
		return
	}
	ok(w, status)
}

func (s *Server) standupSend(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(caller int, req messageRequest) error {
		return s.messages.StandupSend(caller, req.ChannelID, req.Message)
	})
}

// clear resets the message engine. Platform owners only.
func (s *Server) clear(w http.ResponseWriter, r *http.Request) {
	owner, err := s.users.IsPlatformOwner(callerOf(r))
	if err != nil {
		fail(w, err)
		return
	}
	if !owner {
		fail(w, user.ErrNotPlatformOwner)
		return
	}
	s.messages.Clear()
	ok(w, nil)
}
