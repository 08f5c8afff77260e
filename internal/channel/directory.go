package channel

import "github.com/notepid/flockr/internal/user"

// Directory answers the membership and identity questions asked by the
// message store.
type Directory struct {
	channels *Repo
	users    *user.Repo
}

// NewDirectory joins the channel and user repositories.
func NewDirectory(channels *Repo, users *user.Repo) *Directory {
	return &Directory{channels: channels, users: users}
}

func (d *Directory) ChannelExists(channelID int) (bool, error) {
	return d.channels.Exists(channelID)
}

func (d *Directory) IsMember(channelID, userID int) (bool, error) {
	return d.channels.IsMember(channelID, userID)
}

func (d *Directory) IsOwner(channelID, userID int) (bool, error) {
	return d.channels.IsOwner(channelID, userID)
}

func (d *Directory) IsPlatformOwner(userID int) (bool, error) {
	return d.users.IsPlatformOwner(userID)
}

func (d *Directory) Handle(userID int) (string, error) {
	return d.users.Handle(userID)
}

func (d *Directory) ChannelsOf(userID int) ([]int, error) {
	return d.channels.ChannelsOf(userID)
}
