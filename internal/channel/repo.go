package channel

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/notepid/flockr/internal/user"
)

// Repo handles channels and their membership.
type Repo struct {
	db    *sql.DB
	users *user.Repo
}

// NewRepo creates a new channel repository.
func NewRepo(db *sql.DB, users *user.Repo) *Repo {
	return &Repo{db: db, users: users}
}

// Create adds a channel owned by creatorID and returns its id.
func (r *Repo) Create(creatorID int, name string, isPublic bool) (int, error) {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n == 0 || n > MaxNameLen {
		return 0, ErrNameLength
	}

	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("create channel: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO channels (name, is_public, created_by, created_at) VALUES (?, ?, ?, ?)
	`, name, isPublic, creatorID, time.Now())
	if err != nil {
		return 0, fmt.Errorf("create channel %s: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get channel id: %w", err)
	}
	if _, err := tx.Exec(`
		INSERT INTO channel_members (channel_id, user_id, is_owner) VALUES (?, ?, 1)
	`, id, creatorID); err != nil {
		return 0, fmt.Errorf("add creator to channel %d: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("create channel %s: %w", name, err)
	}
	return int(id), nil
}

// Get retrieves a channel by ID.
func (r *Repo) Get(id int) (*Channel, error) {
	c := &Channel{}
	var created sql.NullTime
	err := r.db.QueryRow(`
		SELECT id, name, is_public, created_by, created_at FROM channels WHERE id = ?
	`, id).Scan(&c.ID, &c.Name, &c.IsPublic, &c.CreatedBy, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get channel %d: %w", id, err)
	}
	if created.Valid {
		c.CreatedAt = created.Time
	}
	return c, nil
}

// Exists reports whether channel id exists.
func (r *Repo) Exists(id int) (bool, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM channels WHERE id = ?`, id).Scan(&n); err != nil {
		return false, fmt.Errorf("check channel %d: %w", id, err)
	}
	return n > 0, nil
}

// List returns the channels userID belongs to.
func (r *Repo) List(userID int) ([]Summary, error) {
	return r.summaries(`
		SELECT c.id, c.name FROM channels c
		JOIN channel_members m ON m.channel_id = c.id
		WHERE m.user_id = ? ORDER BY c.id
	`, userID)
}

// ListAll returns every channel.
func (r *Repo) ListAll() ([]Summary, error) {
	return r.summaries(`SELECT id, name FROM channels ORDER BY id`)
}

func (r *Repo) summaries(query string, args ...any) ([]Summary, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ChannelID, &s.Name); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ChannelsOf returns the ids of channels userID belongs to.
func (r *Repo) ChannelsOf(userID int) ([]int, error) {
	list, err := r.List(userID)
	if err != nil {
		return nil, err
	}
	ids := make([]int, len(list))
	for i, s := range list {
		ids[i] = s.ChannelID
	}
	return ids, nil
}

// membership returns whether userID is a member of channelID and, if so,
// whether they own it.
func (r *Repo) membership(channelID, userID int) (member, owner bool, err error) {
	err = r.db.QueryRow(`
		SELECT is_owner FROM channel_members WHERE channel_id = ? AND user_id = ?
	`, channelID, userID).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("membership %d/%d: %w", channelID, userID, err)
	}
	return true, owner, nil
}

// IsMember reports whether userID belongs to channelID.
func (r *Repo) IsMember(channelID, userID int) (bool, error) {
	member, _, err := r.membership(channelID, userID)
	return member, err
}

// IsOwner reports whether userID owns channelID.
func (r *Repo) IsOwner(channelID, userID int) (bool, error) {
	_, owner, err := r.membership(channelID, userID)
	return owner, err
}

func (r *Repo) addMember(channelID, userID int, owner bool) error {
	_, err := r.db.Exec(`
		INSERT INTO channel_members (channel_id, user_id, is_owner) VALUES (?, ?, ?)
	`, channelID, userID, owner)
	if err != nil {
		return fmt.Errorf("add member %d to channel %d: %w", userID, channelID, err)
	}
	return nil
}

func (r *Repo) setOwner(channelID, userID int, owner bool) error {
	_, err := r.db.Exec(`
		UPDATE channel_members SET is_owner = ? WHERE channel_id = ? AND user_id = ?
	`, owner, channelID, userID)
	if err != nil {
		return fmt.Errorf("set owner %d on channel %d: %w", userID, channelID, err)
	}
	return nil
}

// Join adds userID to a public channel. Platform owners may join private
// channels and become owners on joining.
func (r *Repo) Join(userID, channelID int) error {
	c, err := r.Get(channelID)
	if err != nil {
		return err
	}
	u, err := r.users.GetByID(userID)
	if err != nil {
		return err
	}
	if !c.IsPublic && !u.IsOwner() {
		return ErrPrivate
	}
	member, _, err := r.membership(channelID, userID)
	if err != nil {
		return err
	}
	if member {
		return ErrAlreadyMember
	}
	return r.addMember(channelID, userID, u.IsOwner())
}

// Leave removes userID from channelID.
func (r *Repo) Leave(userID, channelID int) error {
	if _, err := r.Get(channelID); err != nil {
		return err
	}
	res, err := r.db.Exec(`DELETE FROM channel_members WHERE channel_id = ? AND user_id = ?`, channelID, userID)
	if err != nil {
		return fmt.Errorf("leave channel %d: %w", channelID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotMember
	}
	return nil
}

// Invite adds targetID to channelID on behalf of a member.
func (r *Repo) Invite(callerID, channelID, targetID int) error {
	if _, err := r.Get(channelID); err != nil {
		return err
	}
	target, err := r.users.GetByID(targetID)
	if err != nil {
		return err
	}
	member, _, err := r.membership(channelID, callerID)
	if err != nil {
		return err
	}
	if !member {
		return ErrNotMember
	}
	member, _, err = r.membership(channelID, targetID)
	if err != nil {
		return err
	}
	if member {
		return ErrAlreadyMember
	}
	return r.addMember(channelID, targetID, target.IsOwner())
}

// AddOwner makes targetID an owner of channelID. A platform owner who is
// not yet a member is added first.
func (r *Repo) AddOwner(callerID, channelID, targetID int) error {
	if _, err := r.Get(channelID); err != nil {
		return err
	}
	target, err := r.users.GetByID(targetID)
	if err != nil {
		return err
	}
	if _, owner, err := r.membership(channelID, callerID); err != nil {
		return err
	} else if !owner {
		return ErrNotOwner
	}

	member, owner, err := r.membership(channelID, targetID)
	if err != nil {
		return err
	}
	switch {
	case owner:
		return ErrAlreadyOwner
	case !member && target.IsOwner():
		return r.addMember(channelID, targetID, true)
	case !member:
		return ErrTargetNotMember
	}
	return r.setOwner(channelID, targetID, true)
}

// RemoveOwner revokes targetID's ownership of channelID.
func (r *Repo) RemoveOwner(callerID, channelID, targetID int) error {
	if _, err := r.Get(channelID); err != nil {
		return err
	}
	caller, err := r.users.GetByID(callerID)
	if err != nil {
		return err
	}
	target, err := r.users.GetByID(targetID)
	if err != nil {
		return err
	}

	member, owner, err := r.membership(channelID, callerID)
	if err != nil {
		return err
	}
	if !member {
		return ErrNotMember
	}
	if !owner {
		return ErrNotOwner
	}
	if _, owner, err = r.membership(channelID, targetID); err != nil {
		return err
	} else if !owner {
		return ErrTargetNotOwner
	}
	if target.IsOwner() && !caller.IsOwner() {
		return ErrOwnerProtected
	}
	return r.setOwner(channelID, targetID, false)
}

// Details returns a channel's name and members. The caller must belong to
// the channel.
func (r *Repo) Details(callerID, channelID int) (*Details, error) {
	c, err := r.Get(channelID)
	if err != nil {
		return nil, err
	}
	member, _, err := r.membership(channelID, callerID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrNotMember
	}

	members, err := r.Members(channelID)
	if err != nil {
		return nil, err
	}
	d := &Details{Name: c.Name, IsPublic: c.IsPublic, OwnerMembers: []Member{}, AllMembers: members}
	for _, m := range members {
		if m.IsOwner {
			d.OwnerMembers = append(d.OwnerMembers, m)
		}
	}
	return d, nil
}

// Members lists everyone in channelID in join order.
func (r *Repo) Members(channelID int) ([]Member, error) {
	rows, err := r.db.Query(`
		SELECT u.id, u.name_first, u.name_last, u.handle, m.is_owner
		FROM channel_members m JOIN users u ON u.id = m.user_id
		WHERE m.channel_id = ? ORDER BY m.joined_at, u.id
	`, channelID)
	if err != nil {
		return nil, fmt.Errorf("list members of %d: %w", channelID, err)
	}
	defer rows.Close()

	out := []Member{}
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.UserID, &m.NameFirst, &m.NameLast, &m.Handle, &m.IsOwner); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
