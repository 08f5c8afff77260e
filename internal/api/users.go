package api

import (
	"net/http"

	"github.com/notepid/flockr/internal/user"
)

func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	id, err := queryInt(r, "u_id")
	if err != nil {
		fail(w, err)
		return
	}
	u, err := s.users.GetByID(id)
	if err != nil {
		fail(w, err)
		return
	}
	ok(w, map[string]user.Profile{"user": u.Profile()})
}

func (s *Server) usersAll(w http.ResponseWriter, r *http.Request) {
	list, err := s.users.List()
	if err != nil {
		fail(w, err)
		return
	}
	profiles := make([]user.Profile, 0, len(list))
	for _, u := range list {
		profiles = append(profiles, u.Profile())
	}
	ok(w, map[string][]user.Profile{"users": profiles})
}

type profileRequest struct {
	NameFirst    string `json:"name_first"`
	NameLast     string `json:"name_last"`
	Email        string `json:"email"`
	Handle       string `json:"handle_str"`
	UserID       int    `json:"u_id"`
	PermissionID int    `json:"permission_id"`
}

func (s *Server) update(w http.ResponseWriter, r *http.Request, op func(caller int, req profileRequest) error) {
	var req profileRequest
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

func (s *Server) setName(w http.ResponseWriter, r *http.Request) {
	s.update(w, r, func(caller int, req profileRequest) error {
		return s.users.SetName(caller, req.NameFirst, req.NameLast)
	})
}

func (s *Server) setEmail(w http.ResponseWriter, r *http.Request) {
	s.update(w, r, func(caller int, req profileRequest) error {
		return s.users.SetEmail(caller, req.Email)
	})
}

func (s *Server) setHandle(w http.ResponseWriter, r *http.Request) {
	s.update(w, r, func(caller int, req profileRequest) error {
		return s.users.SetHandle(caller, req.Handle)
	})
}

func (s *Server) changePermission(w http.ResponseWriter, r *http.Request) {
	s.update(w, r, func(caller int, req profileRequest) error {
		return s.users.ChangePermission(caller, req.UserID, req.PermissionID)
	})
}
