package user

import "time"

// User is a registered account.
type User struct {
	ID           int
	Email        string
	PasswordHash string
	NameFirst    string
	NameLast     string
	Handle       string
	Permission   int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Permission levels. The first account registered becomes a platform
// owner.
const (
	PermissionOwner  = 1
	PermissionMember = 2
)

// IsOwner reports whether u is a platform owner.
func (u *User) IsOwner() bool { return u.Permission == PermissionOwner }

// Profile is the public view of a user.
type Profile struct {
	UserID    int    `json:"u_id"`
	Email     string `json:"email"`
	NameFirst string `json:"name_first"`
	NameLast  string `json:"name_last"`
	Handle    string `json:"handle_str"`
}

// Profile returns the public view of u.
func (u *User) Profile() Profile {
	return Profile{
		UserID:    u.ID,
		Email:     u.Email,
		NameFirst: u.NameFirst,
		NameLast:  u.NameLast,
		Handle:    u.Handle,
	}
}
