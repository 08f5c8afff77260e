package api

import (
	"net/http"

	"github.com/notepid/flockr/internal/user"
)

type authResponse struct {
	UserID int    `json:"u_id"`
	Token  string `json:"token"`
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		NameFirst string `json:"name_first"`
		NameLast  string `json:"name_last"`
	}
	if err := decode(r, &req); err != nil {
		fail(w, err)
		return
	}
	u, err := s.users.Register(req.Email, req.Password, req.NameFirst, req.NameLast)
	if err != nil {
		fail(w, err)
		return
	}
	s.issue(w, u)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decode(r, &req); err != nil {
		fail(w, err)
		return
	}
	u, err := s.users.Authenticate(req.Email, req.Password)
	if err != nil {
		fail(w, err)
		return
	}
	s.issue(w, u)
}

func (s *Server) issue(w http.ResponseWriter, u *user.User) {
	token, err := s.sessions.Issue(u.ID)
	if err != nil {
		fail(w, err)
		return
	}
	ok(w, authResponse{UserID: u.ID, Token: token})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	revoked, err := s.sessions.Revoke(tokenOf(r))
	if err != nil {
		fail(w, err)
		return
	}
	ok(w, map[string]bool{"is_success": revoked})
}
