package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"

	"github.com/notepid/flockr/internal/admin/app"
	"github.com/notepid/flockr/internal/user"
)

type usersModel struct {
	app *app.App

	width  int
	height int

	Done bool

	state usersState

	list list.Model
	err  error

	selected *user.User

	form *huh.Form

	createEmail    string
	createPassword string
	createFirst    string
	createLast     string
	createSave     bool

	editFirst string
	editLast  string
	editSave  bool

	editHandle string
	handleSave bool

	newPassword string
	pwConfirm   string
	pwSave      bool

	permission int
	permSave   bool
}

type usersState int

const (
	usersStateList usersState = iota
	usersStateDetail
	usersStateCreate
	usersStateEditName
	usersStateSetHandle
	usersStateResetPassword
	usersStateSetPermission
)

type userItem struct {
	id    int
	title string
	desc  string
	kind  string
}

func (i userItem) Title() string       { return i.title }
func (i userItem) Description() string { return i.desc }
func (i userItem) FilterValue() string { return i.title }

func newUsersModel(a *app.App) *usersModel {
	m := &usersModel{app: a, state: usersStateList}
	m.reloadList()
	return m
}

func (m *usersModel) SetSize(w, h int) {
	m.width, m.height = w, h
	m.list.SetSize(w, h-2)
}

func (m *usersModel) Update(msg tea.Msg) tea.Cmd {
	if m.err != nil {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			if msg.String() == "esc" || msg.String() == "q" || msg.String() == "enter" {
				m.err = nil
				m.state = usersStateList
				m.form = nil
				m.selected = nil
				m.reloadList()
			}
		}
		return nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			if m.state == usersStateList {
				m.Done = true
				return nil
			}
		case "esc":
			m.back()
			return nil
		}
	}

	switch m.state {
	case usersStateList:
		return m.updateList(msg)
	case usersStateDetail:
		return m.updateDetail(msg)
	default:
		return m.updateForm(msg)
	}
}

func (m *usersModel) updateList(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		it, ok := m.list.SelectedItem().(userItem)
		if !ok {
			return cmd
		}
		if it.kind == "create" {
			m.startCreate()
			return nil
		}

		u, err := m.app.Users.GetByID(it.id)
		if err != nil {
			m.err = err
			return nil
		}
		m.selected = u
		m.showDetail()
		return nil
	}

	return cmd
}

func (m *usersModel) updateDetail(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		it, ok := m.list.SelectedItem().(userItem)
		if !ok {
			return cmd
		}
		switch it.kind {
		case "edit_name":
			m.startEditName()
		case "set_handle":
			m.startSetHandle()
		case "set_permission":
			m.startSetPermission()
		case "reset_password":
			m.startResetPassword()
		case "back":
			m.back()
		}
		return nil
	}

	return cmd
}

func (m *usersModel) updateForm(msg tea.Msg) tea.Cmd {
	if m.form == nil {
		m.err = fmt.Errorf("internal error: form not initialized")
		return nil
	}
	updated, cmd := m.form.Update(msg)
	f, ok := updated.(*huh.Form)
	if !ok {
		m.err = fmt.Errorf("internal error: unexpected form model type")
		return nil
	}
	m.form = f
	if m.form.State != huh.StateCompleted {
		return cmd
	}

	var err error
	switch m.state {
	case usersStateCreate:
		if m.createSave {
			_, err = m.app.Users.Register(strings.TrimSpace(m.createEmail), m.createPassword,
				strings.TrimSpace(m.createFirst), strings.TrimSpace(m.createLast))
		}
		if err == nil {
			m.form = nil
			m.state = usersStateList
			m.reloadList()
			return nil
		}
	case usersStateEditName:
		if m.editSave {
			err = m.app.Users.SetName(m.selected.ID, strings.TrimSpace(m.editFirst), strings.TrimSpace(m.editLast))
		}
	case usersStateSetHandle:
		if m.handleSave {
			err = m.app.Users.SetHandle(m.selected.ID, strings.TrimSpace(m.editHandle))
		}
	case usersStateResetPassword:
		if m.pwSave {
			err = m.app.Users.SetPassword(m.selected.ID, m.newPassword)
		}
	case usersStateSetPermission:
		if m.permSave {
			err = m.app.Users.SetPermission(m.selected.ID, m.permission)
		}
	}
	if err != nil {
		m.err = err
		return nil
	}
	m.refreshSelected()
	m.showDetail()
	return nil
}

func (m *usersModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Users error: %v\n\nPress Enter/Esc to go back.", m.err)
	}

	switch m.state {
	case usersStateList:
		m.list.Title = "Users"
		return m.list.View() + "\n(q to quit, enter to select)"
	case usersStateDetail:
		if m.selected == nil {
			return "No user selected\n\n(esc to go back)"
		}
		u := m.selected
		header := titleStyle.Render(fmt.Sprintf("User: %s (%s)", u.Handle, permissionName(u.Permission))) + "\n"
		meta := fmt.Sprintf("Name: %s %s\nEmail: %s\nJoined: %s\nUpdated: %s\n\n",
			u.NameFirst, u.NameLast, u.Email, humanize.Time(u.CreatedAt), humanize.Time(u.UpdatedAt),
		)
		m.list.Title = "Actions"
		return header + meta + m.list.View() + "\n(esc to go back)"
	default:
		return m.form.View() + "\n\n(esc to go back)"
	}
}

func (m *usersModel) reloadList() {
	users, err := m.app.Users.List()
	if err != nil {
		m.err = err
		return
	}

	items := make([]list.Item, 0, len(users)+1)
	items = append(items, userItem{title: "+ Create new user", desc: "Register an account", kind: "create"})
	for _, u := range users {
		desc := fmt.Sprintf("%s • %s • joined %s", u.Email, permissionName(u.Permission), humanize.Time(u.CreatedAt))
		items = append(items, userItem{id: u.ID, title: u.Handle, desc: desc, kind: "user"})
	}

	m.list = newList(items, m.width, m.height-2, true)
	m.list.Title = "Users"
}

func (m *usersModel) showDetail() {
	m.form = nil
	m.state = usersStateDetail
	items := []list.Item{
		userItem{title: "Edit name", desc: "First and last name", kind: "edit_name"},
		userItem{title: "Set handle", desc: "Display handle, 3-20 characters", kind: "set_handle"},
		userItem{title: "Set permission", desc: "Platform owner or member", kind: "set_permission"},
		userItem{title: "Reset password", desc: "Set a new password", kind: "reset_password"},
		userItem{title: "Back", desc: "Return to users list", kind: "back"},
	}
	m.list = newList(items, m.width, m.height-8, false)
}

func (m *usersModel) startCreate() {
	m.state = usersStateCreate
	m.createEmail = ""
	m.createPassword = ""
	m.createFirst = ""
	m.createLast = ""
	m.createSave = true
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Email").Value(&m.createEmail).Validate(user.ValidateEmail),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&m.createPassword).Validate(user.ValidatePassword),
			huh.NewInput().Title("First name").Value(&m.createFirst).Validate(nonEmpty("first name")),
			huh.NewInput().Title("Last name").Value(&m.createLast).Validate(nonEmpty("last name")),
		),
		huh.NewGroup(
			huh.NewConfirm().Title("Create user?").Value(&m.createSave),
		),
	)
}

func (m *usersModel) startEditName() {
	m.state = usersStateEditName
	m.editFirst = m.selected.NameFirst
	m.editLast = m.selected.NameLast
	m.editSave = true
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("First name").Value(&m.editFirst).Validate(maxRunes("first name", 50)),
			huh.NewInput().Title("Last name").Value(&m.editLast).Validate(maxRunes("last name", 50)),
		),
		huh.NewGroup(
			huh.NewConfirm().Title("Save changes?").Value(&m.editSave),
		),
	)
}

func (m *usersModel) startSetHandle() {
	m.state = usersStateSetHandle
	m.editHandle = m.selected.Handle
	m.handleSave = true
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Handle").Value(&m.editHandle).Validate(user.ValidateHandle),
		),
		huh.NewGroup(
			huh.NewConfirm().Title("Save handle?").Value(&m.handleSave),
		),
	)
}

func (m *usersModel) startResetPassword() {
	m.state = usersStateResetPassword
	m.newPassword = ""
	m.pwConfirm = ""
	m.pwSave = true
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("New password").EchoMode(huh.EchoModePassword).Value(&m.newPassword).Validate(user.ValidatePassword),
			huh.NewInput().Title("Confirm password").EchoMode(huh.EchoModePassword).Value(&m.pwConfirm).Validate(func(s string) error {
				if s != m.newPassword {
					return fmt.Errorf("passwords do not match")
				}
				return nil
			}),
		),
		huh.NewGroup(
			huh.NewConfirm().Title("Reset password?").Value(&m.pwSave),
		),
	)
}

func (m *usersModel) startSetPermission() {
	m.state = usersStateSetPermission
	m.permission = m.selected.Permission
	m.permSave = true
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().Title("Permission").Options(
				huh.NewOption("Platform owner (1)", user.PermissionOwner),
				huh.NewOption("Member (2)", user.PermissionMember),
			).Value(&m.permission),
		),
		huh.NewGroup(
			huh.NewConfirm().Title("Save permission?").Value(&m.permSave),
		),
	)
}

func (m *usersModel) back() {
	switch m.state {
	case usersStateList:
		m.Done = true
	case usersStateDetail:
		m.state = usersStateList
		m.selected = nil
		m.form = nil
		m.reloadList()
	case usersStateCreate:
		m.state = usersStateList
		m.form = nil
		m.reloadList()
	default:
		m.showDetail()
	}
}

func (m *usersModel) refreshSelected() {
	if m.selected == nil {
		return
	}
	u, err := m.app.Users.GetByID(m.selected.ID)
	if err == nil {
		m.selected = u
	}
}

func permissionName(p int) string {
	switch p {
	case user.PermissionOwner:
		return "owner"
	case user.PermissionMember:
		return "member"
	default:
		return fmt.Sprintf("permission %d", p)
	}
}
