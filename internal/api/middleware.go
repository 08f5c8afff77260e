package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/notepid/flockr/internal/apperr"
	"github.com/notepid/flockr/internal/user"
)

const maxBody = 1 << 20

type ctxKey int

const (
	callerKey ctxKey = iota
	tokenKey
)

// tokenFrom looks for a session token in the Authorization header, the
// token query parameter, then a "token" field in a JSON body.
func tokenFrom(r *http.Request) (string, error) {
	if h := r.Header.Get("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return "", user.ErrInvalidToken
		}
		return strings.TrimSpace(parts[1]), nil
	}
	if t := r.URL.Query().Get("token"); t != "" {
		return t, nil
	}
	if r.Body == nil || r.ContentLength == 0 {
		return "", nil
	}

	buf, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		return "", apperr.InvalidArg("unreadable request body")
	}
	r.Body = io.NopCloser(bytes.NewReader(buf))
	var body struct {
		Token string `json:"token"`
	}
	_ = json.Unmarshal(buf, &body)
	return body.Token, nil
}

// requireAuth resolves the caller's session and stores their user ID on
// the request context.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := tokenFrom(r)
		if err != nil {
			fail(w, err)
			return
		}
		if token == "" {
			fail(w, user.ErrInvalidToken)
			return
		}
		id, err := s.sessions.Resolve(token)
		if err != nil {
			fail(w, err)
			return
		}
		ctx := context.WithValue(r.Context(), callerKey, id)
		ctx = context.WithValue(ctx, tokenKey, token)
		next(w, r.WithContext(ctx))
	}
}

func callerOf(r *http.Request) int {
	id, _ := r.Context().Value(callerKey).(int)
	return id
}

func tokenOf(r *http.Request) string {
	t, _ := r.Context().Value(tokenKey).(string)
	return t
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// countRequests records each request against its route template.
func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.metrics == nil || r.URL.Path == "/channel/stream" {
			next.ServeHTTP(w, r)
			return
		}
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := "unmatched"
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		s.metrics.Request(route, rec.status)
	})
}
