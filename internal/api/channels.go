package api

import (
	"net/http"

	"github.com/notepid/flockr/internal/channel"
)

type channelRequest struct {
	ChannelID int `json:"channel_id"`
	UserID    int `json:"u_id"`
}

func (s *Server) createChannel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		IsPublic bool   `json:"is_public"`
	}
	if err := decode(r, &req); err != nil {
		fail(w, err)
		return
	}
	id, err := s.channels.Create(callerOf(r), req.Name, req.IsPublic)
	if err != nil {
		fail(w, err)
		return
	}
	ok(w, map[string]int{"channel_id": id})
}

func (s *Server) listChannels(w http.ResponseWriter, r *http.Request) {
	list, err := s.channels.List(callerOf(r))
	if err != nil {
		fail(w, err)
		return
	}
	ok(w, map[string][]channel.Summary{"channels": list})
}

func (s *Server) listAllChannels(w http.ResponseWriter, r *http.Request) {
	list, err := s.channels.ListAll()
	if err != nil {
		fail(w, err)
		return
	}
	ok(w, map[string][]channel.Summary{"channels": list})
}

// membership runs one of the body-driven channel mutations.
func (s *Server) membership(w http.ResponseWriter, r *http.Request, op func(caller int, req channelRequest) error) {
	var req channelRequest
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

func (s *Server) invite(w http.ResponseWriter, r *http.Request) {
	s.membership(w, r, func(caller int, req channelRequest) error {
		return s.channels.Invite(caller, req.ChannelID, req.UserID)
	})
}

func (s *Server) join(w http.ResponseWriter, r *http.Request) {
	s.membership(w, r, func(caller int, req channelRequest) error {
		return s.channels.Join(caller, req.ChannelID)
	})
}

func (s *Server) leave(w http.ResponseWriter, r *http.Request) {
	s.membership(w, r, func(caller int, req channelRequest) error {
		return s.channels.Leave(caller, req.ChannelID)
	})
}

func (s *Server) addOwner(w http.ResponseWriter, r *http.Request) {
	s.membership(w, r, func(caller int, req channelRequest) error {
		return s.channels.AddOwner(caller, req.ChannelID, req.UserID)
	})
}

func (s *Server) removeOwner(w http.ResponseWriter, r *http.Request) {
	s.membership(w, r, func(caller int, req channelRequest) error {
		return s.channels.RemoveOwner(caller, req.ChannelID, req.UserID)
	})
}

func (s *Server) details(w http.ResponseWriter, r *http.Request) {
	id, err := queryInt(r, "channel_id")
	if err != nil {
		fail(w, err)
		return
	}
	d, err := s.channels.Details(callerOf(r), id)
	if err != nil {
		fail(w, err)
		return
	}
	ok(w, d)
}

func (s *Server) channelMessages(w http.ResponseWriter, r *http.Request) {
	id, err := queryInt(r, "channel_id")
	if err != nil {
		fail(w, err)
		return
	}
	start, err := queryInt(r, "start")
	if err != nil {
		fail(w, err)
		return
	}
	page, err := s.messages.Paginate(callerOf(r), id, start)
	if err != nil {
		fail(w, err)
		return
	}
	ok(w, page)
}

func (s *Server) stream(w http.ResponseWriter, r *http.Request) {
	if s.streams == nil {
		http.NotFound(w, r)
		return
	}
	id, err := queryInt(r, "channel_id")
	if err != nil {
		fail(w, err)
		return
	}
	if _, err := s.channels.Get(id); err != nil {
		fail(w, err)
		return
	}
	member, err := s.channels.IsMember(id, callerOf(r))
	if err != nil {
		fail(w, err)
		return
	}
	if !member {
		fail(w, channel.ErrNotMember)
		return
	}
	s.streams.Serve(w, r, callerOf(r), id)
}
