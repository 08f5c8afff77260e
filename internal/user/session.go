package user

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/notepid/flockr/internal/clock"
)

// DefaultSessionTTL is used when no TTL is configured.
const DefaultSessionTTL = 24 * time.Hour

// Sessions issues and resolves opaque login tokens.
type Sessions struct {
	db    *sql.DB
	clock clock.Clock
	ttl   time.Duration
}

// NewSessions creates a session store. A non-positive ttl selects
// DefaultSessionTTL.
func NewSessions(db *sql.DB, clk clock.Clock, ttl time.Duration) *Sessions {
	if clk == nil {
		clk = clock.Real()
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Sessions{db: db, clock: clk, ttl: ttl}
}

// Issue creates a new token for userID.
func (s *Sessions) Issue(userID int) (string, error) {
	token := uuid.NewString()
	now := s.clock.Now()
	_, err := s.db.Exec(`
		INSERT INTO sessions (token, user_id, created_at, expires_at) VALUES (?, ?, ?, ?)
	`, token, userID, now.Unix(), now.Add(s.ttl).Unix())
	if err != nil {
		return "", fmt.Errorf("issue session for %d: %w", userID, err)
	}
	return token, nil
}

// Resolve returns the user a live token belongs to.
func (s *Sessions) Resolve(token string) (int, error) {
	if token == "" {
		return 0, ErrInvalidToken
	}
	var userID int
	var expires int64
	err := s.db.QueryRow(`SELECT user_id, expires_at FROM sessions WHERE token = ?`, token).Scan(&userID, &expires)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrInvalidToken
	}
	if err != nil {
		return 0, fmt.Errorf("resolve session: %w", err)
	}
	if s.clock.Now().Unix() >= expires {
		return 0, ErrInvalidToken
	}
	return userID, nil
}

// Revoke deletes token and reports whether it existed.
func (s *Sessions) Revoke(token string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM sessions WHERE token = ?`, token)
	if err != nil {
		return false, fmt.Errorf("revoke session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("revoke session: %w", err)
	}
	return n > 0, nil
}

// Purge deletes every expired session and returns how many were removed.
func (s *Sessions) Purge() (int, error) {
	res, err := s.db.Exec(`DELETE FROM sessions WHERE expires_at <= ?`, s.clock.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return int(n), nil
}

// Active returns the number of unexpired sessions.
func (s *Sessions) Active() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM sessions WHERE expires_at > ?`, s.clock.Now().Unix()).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return n, nil
}
