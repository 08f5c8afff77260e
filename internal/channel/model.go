package channel

import "time"

// MaxNameLen bounds channel names.
const MaxNameLen = 20

// Channel is a named conversation scope.
type Channel struct {
	ID        int
	Name      string
	IsPublic  bool
	CreatedBy int
	CreatedAt time.Time
}

// Summary is the list view of a channel.
type Summary struct {
	ChannelID int    `json:"channel_id"`
	Name      string `json:"name"`
}

// Member is a user as listed in channel details.
type Member struct {
	UserID    int    `json:"u_id"`
	NameFirst string `json:"name_first"`
	NameLast  string `json:"name_last"`
	Handle    string `json:"handle_str"`
	IsOwner   bool   `json:"-"`
}

// Details describes a channel's name and membership.
type Details struct {
	Name         string   `json:"name"`
	IsPublic     bool     `json:"is_public"`
	OwnerMembers []Member `json:"owner_members"`
	AllMembers   []Member `json:"all_members"`
}
