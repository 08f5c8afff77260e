package channel

import (
	"errors"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/notepid/flockr/internal/db"
	"github.com/notepid/flockr/internal/user"
)

func init() {
	user.PasswordCost = bcrypt.MinCost
}

type fixture struct {
	repo  *Repo
	users *user.Repo
	owner *user.User // platform owner
	alice *user.User
	bob   *user.User
}

func setup(t *testing.T) *fixture {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "flockr.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	users := user.NewRepo(d.DB)
	f := &fixture{repo: NewRepo(d.DB, users), users: users}
	for _, r := range []struct {
		dst   **user.User
		email string
		first string
	}{
		{&f.owner, "root@example.com", "Root"},
		{&f.alice, "alice@example.com", "Alice"},
		{&f.bob, "bob@example.com", "Bob"},
	} {
		u, err := users.Register(r.email, "secret1", r.first, "Test")
		if err != nil {
			t.Fatalf("register %s: %v", r.email, err)
		}
		*r.dst = u
	}
	return f
}

func TestCreate_CreatorOwnsChannel(t *testing.T) {
	f := setup(t)
	id, err := f.repo.Create(f.alice.ID, "general", true)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	owner, err := f.repo.IsOwner(id, f.alice.ID)
	if err != nil || !owner {
		t.Fatalf("expected creator to own channel, got %v %v", owner, err)
	}
	list, err := f.repo.List(f.alice.ID)
	if err != nil || len(list) != 1 || list[0].Name != "general" {
		t.Fatalf("unexpected list %+v %v", list, err)
	}
	list, _ = f.repo.List(f.bob.ID)
	if len(list) != 0 {
		t.Fatalf("expected bob to see no channels, got %+v", list)
	}
	all, _ := f.repo.ListAll()
	if len(all) != 1 {
		t.Fatalf("expected 1 channel in listall, got %d", len(all))
	}
}

func TestCreate_NameLength(t *testing.T) {
	f := setup(t)
	if _, err := f.repo.Create(f.alice.ID, "abcdefghijklmnopqrstu", true); !errors.Is(err, ErrNameLength) {
		t.Fatalf("expected name length error, got %v", err)
	}
	if _, err := f.repo.Create(f.alice.ID, "  ", true); !errors.Is(err, ErrNameLength) {
		t.Fatalf("expected name length error for blank, got %v", err)
	}
}

func TestJoin_PublicPrivate(t *testing.T) {
	f := setup(t)
	pub, _ := f.repo.Create(f.alice.ID, "pub", true)
	priv, _ := f.repo.Create(f.alice.ID, "priv", false)

	if err := f.repo.Join(f.bob.ID, pub); err != nil {
		t.Fatalf("join public: %v", err)
	}
	if err := f.repo.Join(f.bob.ID, pub); !errors.Is(err, ErrAlreadyMember) {
		t.Fatalf("expected already member, got %v", err)
	}
	if err := f.repo.Join(f.bob.ID, priv); !errors.Is(err, ErrPrivate) {
		t.Fatalf("expected private error, got %v", err)
	}
	if err := f.repo.Join(f.owner.ID, priv); err != nil {
		t.Fatalf("platform owner join private: %v", err)
	}
	if owner, _ := f.repo.IsOwner(priv, f.owner.ID); !owner {
		t.Fatalf("expected platform owner to become channel owner")
	}
	if err := f.repo.Join(f.bob.ID, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestLeave(t *testing.T) {
	f := setup(t)
	id, _ := f.repo.Create(f.alice.ID, "general", true)
	if err := f.repo.Leave(f.bob.ID, id); !errors.Is(err, ErrNotMember) {
		t.Fatalf("expected not member, got %v", err)
	}
	if err := f.repo.Leave(f.alice.ID, id); err != nil {
		t.Fatalf("leave: %v", err)
	}
	if member, _ := f.repo.IsMember(id, f.alice.ID); member {
		t.Fatalf("expected alice to have left")
	}
}

func TestInvite(t *testing.T) {
	f := setup(t)
	id, _ := f.repo.Create(f.alice.ID, "secret", false)
	if err := f.repo.Invite(f.bob.ID, id, f.alice.ID); !errors.Is(err, ErrNotMember) {
		t.Fatalf("expected not member, got %v", err)
	}
	if err := f.repo.Invite(f.alice.ID, id, f.bob.ID); err != nil {
		t.Fatalf("invite: %v", err)
	}
	if err := f.repo.Invite(f.alice.ID, id, f.bob.ID); !errors.Is(err, ErrAlreadyMember) {
		t.Fatalf("expected already member, got %v", err)
	}
	if err := f.repo.Invite(f.alice.ID, id, 999); !errors.Is(err, user.ErrUserNotFound) {
		t.Fatalf("expected unknown user, got %v", err)
	}
}

func TestOwnership(t *testing.T) {
	f := setup(t)
	id, _ := f.repo.Create(f.alice.ID, "general", true)

	if err := f.repo.AddOwner(f.alice.ID, id, f.bob.ID); !errors.Is(err, ErrTargetNotMember) {
		t.Fatalf("expected target not member, got %v", err)
	}
	if err := f.repo.Join(f.bob.ID, id); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := f.repo.AddOwner(f.bob.ID, id, f.bob.ID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected not owner, got %v", err)
	}
	if err := f.repo.AddOwner(f.alice.ID, id, f.bob.ID); err != nil {
		t.Fatalf("add owner: %v", err)
	}
	if err := f.repo.AddOwner(f.alice.ID, id, f.bob.ID); !errors.Is(err, ErrAlreadyOwner) {
		t.Fatalf("expected already owner, got %v", err)
	}

	// A platform owner outside the channel is added as an owner directly.
	if err := f.repo.AddOwner(f.alice.ID, id, f.owner.ID); err != nil {
		t.Fatalf("add platform owner: %v", err)
	}
	if err := f.repo.RemoveOwner(f.bob.ID, id, f.owner.ID); !errors.Is(err, ErrOwnerProtected) {
		t.Fatalf("expected owner protected, got %v", err)
	}
	if err := f.repo.RemoveOwner(f.owner.ID, id, f.bob.ID); err != nil {
		t.Fatalf("remove owner: %v", err)
	}
	if err := f.repo.RemoveOwner(f.alice.ID, id, f.bob.ID); !errors.Is(err, ErrTargetNotOwner) {
		t.Fatalf("expected target not owner, got %v", err)
	}
	if err := f.repo.RemoveOwner(f.bob.ID, id, f.alice.ID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected not owner, got %v", err)
	}
}

func TestDetails(t *testing.T) {
	f := setup(t)
	id, _ := f.repo.Create(f.alice.ID, "general", true)
	if _, err := f.repo.Details(f.bob.ID, id); !errors.Is(err, ErrNotMember) {
		t.Fatalf("expected not member, got %v", err)
	}
	if err := f.repo.Join(f.bob.ID, id); err != nil {
		t.Fatalf("join: %v", err)
	}
	d, err := f.repo.Details(f.bob.ID, id)
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if d.Name != "general" || len(d.AllMembers) != 2 || len(d.OwnerMembers) != 1 {
		t.Fatalf("unexpected details %+v", d)
	}
	if d.OwnerMembers[0].UserID != f.alice.ID {
		t.Fatalf("expected alice as owner, got %+v", d.OwnerMembers[0])
	}
}

func TestDirectory(t *testing.T) {
	f := setup(t)
	id, _ := f.repo.Create(f.alice.ID, "general", true)
	dir := NewDirectory(f.repo, f.users)

	if ok, err := dir.ChannelExists(id); err != nil || !ok {
		t.Fatalf("expected channel to exist, got %v %v", ok, err)
	}
	if ok, _ := dir.ChannelExists(id + 1); ok {
		t.Fatalf("expected missing channel")
	}
	if ok, _ := dir.IsMember(id, f.bob.ID); ok {
		t.Fatalf("expected bob not to be a member")
	}
	if ok, _ := dir.IsPlatformOwner(f.owner.ID); !ok {
		t.Fatalf("expected first user to be platform owner")
	}
	handle, err := dir.Handle(f.alice.ID)
	if err != nil || handle != "alicetest" {
		t.Fatalf("expected alicetest, got %q %v", handle, err)
	}
	ids, _ := dir.ChannelsOf(f.alice.ID)
	if len(ids) != 1 || ids[0] != id {
		t.Fatalf("unexpected channels %v", ids)
	}
}
