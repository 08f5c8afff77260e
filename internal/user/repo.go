package user

import (
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// Repo handles database operations for users.
type Repo struct {
	db *sql.DB
}

// NewRepo creates a new user repository.
func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

const userColumns = `id, email, password_hash, name_first, name_last, handle, permission, created_at, updated_at`

// Register validates and inserts a new account. The first account becomes
// a platform owner.
func (r *Repo) Register(email, password, first, last string) (*User, error) {
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if r.EmailExists(email) {
		return nil, ErrEmailTaken
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}
	if err := ValidateName(first); err != nil {
		return nil, err
	}
	if err := ValidateName(last); err != nil {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	handle, err := r.uniqueHandle(baseHandle(first, last))
	if err != nil {
		return nil, err
	}

	count, err := r.Count()
	if err != nil {
		return nil, err
	}
	perm := PermissionMember
	if count == 0 {
		perm = PermissionOwner
	}

	now := time.Now()
	result, err := r.db.Exec(`
		INSERT INTO users (email, password_hash, name_first, name_last, handle, permission, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, email, hash, first, last, handle, perm, now, now)
	if err != nil {
		return nil, fmt.Errorf("create user %s: %w", email, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get user id: %w", err)
	}
	return r.GetByID(int(id))
}

// uniqueHandle appends three random digits to base until it is unused.
func (r *Repo) uniqueHandle(base string) (string, error) {
	handle := base
	for attempt := 0; ; attempt++ {
		taken, err := r.HandleExists(handle)
		if err != nil {
			return "", err
		}
		if !taken {
			return handle, nil
		}
		if attempt == 1000 {
			return "", fmt.Errorf("no free handle for %q", base)
		}
		stem := []rune(base)
		if len(stem) > MaxHandleLen-3 {
			stem = stem[:MaxHandleLen-3]
		}
		handle = fmt.Sprintf("%s%03d", string(stem), rand.IntN(1000))
	}
}

// Authenticate checks email and password and returns the user.
func (r *Repo) Authenticate(email, password string) (*User, error) {
	u, err := r.GetByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if !CheckPassword(password, u.PasswordHash) {
		return nil, ErrBadCredentials
	}
	return u, nil
}

// GetByID retrieves a user by ID.
func (r *Repo) GetByID(id int) (*User, error) {
	row := r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

// GetByEmail retrieves a user by email (case-insensitive).
func (r *Repo) GetByEmail(email string) (*User, error) {
	row := r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = ? COLLATE NOCASE`, email)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", email, err)
	}
	return u, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*User, error) {
	u := &User{}
	var created, updated sql.NullTime
	err := s.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.NameFirst, &u.NameLast,
		&u.Handle, &u.Permission, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if created.Valid {
		u.CreatedAt = created.Time
	}
	if updated.Valid {
		u.UpdatedAt = updated.Time
	}
	return u, nil
}

// EmailExists reports whether email is registered.
func (r *Repo) EmailExists(email string) bool {
	var count int
	r.db.QueryRow("SELECT COUNT(*) FROM users WHERE email = ? COLLATE NOCASE", email).Scan(&count)
	return count > 0
}

// HandleExists reports whether handle is in use.
func (r *Repo) HandleExists(handle string) (bool, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM users WHERE handle = ?", handle).Scan(&count); err != nil {
		return false, fmt.Errorf("check handle %s: %w", handle, err)
	}
	return count > 0, nil
}

// Count returns the number of registered users.
func (r *Repo) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

// Handle returns the display handle of id.
func (r *Repo) Handle(id int) (string, error) {
	u, err := r.GetByID(id)
	if err != nil {
		return "", err
	}
	return u.Handle, nil
}

// IsPlatformOwner reports whether id holds the owner permission.
func (r *Repo) IsPlatformOwner(id int) (bool, error) {
	u, err := r.GetByID(id)
	if err != nil {
		return false, err
	}
	return u.IsOwner(), nil
}

// SetName changes a user's first and last names.
func (r *Repo) SetName(id int, first, last string) error {
	if err := ValidateName(first); err != nil {
		return err
	}
	if err := ValidateName(last); err != nil {
		return err
	}
	return r.update(id, `UPDATE users SET name_first = ?, name_last = ?, updated_at = ? WHERE id = ?`,
		first, last, time.Now(), id)
}

// SetHandle changes a user's display handle.
func (r *Repo) SetHandle(id int, handle string) error {
	if err := ValidateHandle(handle); err != nil {
		return err
	}
	u, err := r.GetByID(id)
	if err != nil {
		return err
	}
	if u.Handle == handle {
		return nil
	}
	taken, err := r.HandleExists(handle)
	if err != nil {
		return err
	}
	if taken {
		return ErrHandleTaken
	}
	return r.update(id, `UPDATE users SET handle = ?, updated_at = ? WHERE id = ?`, handle, time.Now(), id)
}

// SetEmail changes a user's login address.
func (r *Repo) SetEmail(id int, email string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	u, err := r.GetByID(id)
	if err != nil {
		return err
	}
	if strings.EqualFold(u.Email, email) {
		return nil
	}
	if r.EmailExists(email) {
		return ErrEmailTaken
	}
	return r.update(id, `UPDATE users SET email = ?, updated_at = ? WHERE id = ?`, email, time.Now(), id)
}

// ChangePermission sets target's permission on behalf of callerID, who
// must be a platform owner.
func (r *Repo) ChangePermission(callerID, targetID, permission int) error {
	caller, err := r.GetByID(callerID)
	if err != nil {
		return err
	}
	if !caller.IsOwner() {
		return ErrNotPlatformOwner
	}
	if _, err := r.GetByID(targetID); err != nil {
		return err
	}
	return r.SetPermission(targetID, permission)
}

// SetPermission changes a user's platform permission.
func (r *Repo) SetPermission(id, permission int) error {
	if permission != PermissionOwner && permission != PermissionMember {
		return ErrInvalidPermission
	}
	return r.update(id, `UPDATE users SET permission = ?, updated_at = ? WHERE id = ?`, permission, time.Now(), id)
}

// SetPassword replaces a user's password.
func (r *Repo) SetPassword(id int, password string) error {
	if err := ValidatePassword(password); err != nil {
		return err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	return r.update(id, `UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`, hash, time.Now(), id)
}

func (r *Repo) update(id int, query string, args ...any) error {
	res, err := r.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("update user %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user %d: %w", id, err)
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// List returns all users ordered by id.
func (r *Repo) List() ([]*User, error) {
	rows, err := r.db.Query(`SELECT ` + userColumns + ` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
