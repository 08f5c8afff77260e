package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"

	"github.com/notepid/flockr/internal/admin/app"
	"github.com/notepid/flockr/internal/channel"
)

type channelsModel struct {
	app *app.App

	width  int
	height int

	Done bool

	state channelsState
	list  list.Model
	err   error
	form  *huh.Form

	selected *channel.Channel
	header   string

	createName    string
	createPublic  bool
	createCreator int
	createSave    bool
}

type channelsState int

const (
	channelsStateList channelsState = iota
	channelsStateMembers
	channelsStateCreate
)

type channelItem struct {
	id    int
	title string
	desc  string
	kind  string
}

func (i channelItem) Title() string       { return i.title }
func (i channelItem) Description() string { return i.desc }
func (i channelItem) FilterValue() string { return i.title }

func newChannelsModel(a *app.App) *channelsModel {
	m := &channelsModel{app: a, state: channelsStateList}
	m.reloadChannels()
	return m
}

func (m *channelsModel) SetSize(w, h int) {
	m.width, m.height = w, h
	m.list.SetSize(w, h-2)
}

func (m *channelsModel) Update(msg tea.Msg) tea.Cmd {
	if m.err != nil {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			if msg.String() == "esc" || msg.String() == "q" || msg.String() == "enter" {
				m.err = nil
				m.state = channelsStateList
				m.form = nil
				m.reloadChannels()
			}
		}
		return nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q":
			if m.state == channelsStateList {
				m.Done = true
				return nil
			}
		case "esc":
			m.back()
			return nil
		}
	}

	if m.state == channelsStateCreate {
		return m.updateForm(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" && m.state == channelsStateList {
		it, ok := m.list.SelectedItem().(channelItem)
		if !ok {
			return cmd
		}
		if it.kind == "create" {
			m.startCreate()
			return nil
		}
		m.loadMembers(it.id)
		return nil
	}

	return cmd
}

func (m *channelsModel) updateForm(msg tea.Msg) tea.Cmd {
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

	if m.createSave {
		if _, err := m.app.Channels.Create(m.createCreator, strings.TrimSpace(m.createName), m.createPublic); err != nil {
			m.err = err
			return nil
		}
	}
	m.form = nil
	m.state = channelsStateList
	m.reloadChannels()
	return nil
}

func (m *channelsModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Channels error: %v\n\nPress Enter/Esc to go back.", m.err)
	}

	switch m.state {
	case channelsStateList:
		m.list.Title = "Channels"
		return m.list.View() + "\n(q to quit, enter to view members)"
	case channelsStateMembers:
		m.list.Title = "Members"
		return m.header + "\n\n" + m.list.View() + "\n(esc back)"
	default:
		return m.form.View() + "\n\n(esc to go back)"
	}
}

func (m *channelsModel) reloadChannels() {
	all, err := m.app.Channels.ListAll()
	if err != nil {
		m.err = err
		return
	}

	items := make([]list.Item, 0, len(all)+1)
	items = append(items, channelItem{title: "+ Create new channel", desc: "Name, visibility and owner", kind: "create"})
	for _, s := range all {
		members, err := m.app.Channels.Members(s.ChannelID)
		if err != nil {
			m.err = err
			return
		}
		desc := fmt.Sprintf("#%d • %s", s.ChannelID, humanize.Plural(len(members), "member", "members"))
		items = append(items, channelItem{id: s.ChannelID, title: s.Name, desc: desc, kind: "channel"})
	}

	m.list = newList(items, m.width, m.height-2, true)
}

func (m *channelsModel) loadMembers(channelID int) {
	c, err := m.app.Channels.Get(channelID)
	if err != nil {
		m.err = err
		return
	}
	members, err := m.app.Channels.Members(channelID)
	if err != nil {
		m.err = err
		return
	}

	visibility := "public"
	if !c.IsPublic {
		visibility = "private"
	}
	m.selected = c
	m.header = titleStyle.Render(c.Name) + fmt.Sprintf(" (%s, created %s)", visibility, humanize.Time(c.CreatedAt))

	items := make([]list.Item, 0, len(members))
	for _, mem := range members {
		desc := mem.NameFirst + " " + mem.NameLast
		if mem.IsOwner {
			desc = ownerStyle.Render("owner") + " • " + desc
		}
		items = append(items, channelItem{id: mem.UserID, title: mem.Handle, desc: desc, kind: "member"})
	}
	m.list = newList(items, m.width, m.height-4, true)
	m.state = channelsStateMembers
}

func (m *channelsModel) startCreate() {
	users, err := m.app.Users.List()
	if err != nil {
		m.err = err
		return
	}
	if len(users) == 0 {
		m.err = fmt.Errorf("create a user before creating channels")
		return
	}

	options := make([]huh.Option[int], 0, len(users))
	for _, u := range users {
		options = append(options, huh.NewOption(fmt.Sprintf("%s <%s>", u.Handle, u.Email), u.ID))
	}

	m.state = channelsStateCreate
	m.createName = ""
	m.createPublic = true
	m.createCreator = users[0].ID
	m.createSave = true
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&m.createName).Validate(maxRunes("name", channel.MaxNameLen)),
			huh.NewConfirm().Title("Public?").Value(&m.createPublic),
			huh.NewSelect[int]().Title("Owner").Options(options...).Value(&m.createCreator),
		),
		huh.NewGroup(
			huh.NewConfirm().Title("Create channel?").Value(&m.createSave),
		),
	)
}

func (m *channelsModel) back() {
	switch m.state {
	case channelsStateList:
		m.Done = true
	default:
		m.state = channelsStateList
		m.selected = nil
		m.form = nil
		m.reloadChannels()
	}
}
