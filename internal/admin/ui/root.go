package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"

	"github.com/notepid/flockr/internal/admin/app"
)

type screen int

const (
	screenHome screen = iota
	screenUsers
	screenChannels
	screenSessions
)

type rootModel struct {
	app *app.App

	width  int
	height int

	active screen

	homeList list.Model
	err      error

	users    *usersModel
	channels *channelsModel
	sessions *sessionsModel
}

type menuItem struct {
	title string
	desc  string
	to    screen
}

func (m menuItem) Title() string       { return m.title }
func (m menuItem) Description() string { return m.desc }
func (m menuItem) FilterValue() string { return m.title }

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	ownerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

func NewRootModel(a *app.App) tea.Model {
	items := []list.Item{
		menuItem{title: "Users", desc: "Accounts, handles and platform owners", to: screenUsers},
		menuItem{title: "Channels", desc: "Create channels and view members", to: screenChannels},
		menuItem{title: "Sessions", desc: "Active logins and expiry purge", to: screenSessions},
		menuItem{title: "Quit", desc: "Exit", to: -1},
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Flockr Admin"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(true)

	return &rootModel{
		app:      a,
		active:   screenHome,
		homeList: l,
	}
}

func (m *rootModel) Init() tea.Cmd {
	return nil
}

func (m *rootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.homeList.SetSize(msg.Width, msg.Height-2)
		if m.users != nil {
			m.users.SetSize(msg.Width, msg.Height)
		}
		if m.channels != nil {
			m.channels.SetSize(msg.Width, msg.Height)
		}
		if m.sessions != nil {
			m.sessions.SetSize(msg.Width, msg.Height)
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	}

	switch m.active {
	case screenHome:
		return m.updateHome(msg)
	case screenUsers:
		m.activate(screenUsers)
		cmd := m.users.Update(msg)
		if m.users.Done {
			m.active = screenHome
			m.users = nil
		}
		return m, cmd
	case screenChannels:
		m.activate(screenChannels)
		cmd := m.channels.Update(msg)
		if m.channels.Done {
			m.active = screenHome
			m.channels = nil
		}
		return m, cmd
	case screenSessions:
		m.activate(screenSessions)
		cmd := m.sessions.Update(msg)
		if m.sessions.Done {
			m.active = screenHome
			m.sessions = nil
		}
		return m, cmd
	default:
		return m, nil
	}
}

func (m *rootModel) updateHome(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.homeList, cmd = m.homeList.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if it, ok := m.homeList.SelectedItem().(menuItem); ok {
				if it.to == -1 {
					return m, tea.Quit
				}
				m.activate(it.to)
				return m, nil
			}
		}
	}

	return m, cmd
}

// activate switches to s, building its model on first use.
func (m *rootModel) activate(s screen) {
	m.active = s

	switch s {
	case screenUsers:
		if m.users == nil {
			m.users = newUsersModel(m.app)
			m.users.SetSize(m.width, m.height)
		}
	case screenChannels:
		if m.channels == nil {
			m.channels = newChannelsModel(m.app)
			m.channels.SetSize(m.width, m.height)
		}
	case screenSessions:
		if m.sessions == nil {
			m.sessions = newSessionsModel(m.app)
			m.sessions.SetSize(m.width, m.height)
		}
	}
}

func (m *rootModel) View() string {
	if m.err != nil {
		return errStyle.Render("Error: ") + m.err.Error()
	}

	switch m.active {
	case screenHome:
		return m.homeList.View()
	case screenUsers:
		if m.users == nil {
			return "Loading users..."
		}
		return m.users.View()
	case screenChannels:
		if m.channels == nil {
			return "Loading channels..."
		}
		return m.channels.View()
	case screenSessions:
		if m.sessions == nil {
			return "Loading sessions..."
		}
		return m.sessions.View()
	default:
		return titleStyle.Render("Unknown screen") + "\n" + fmt.Sprint(m.active)
	}
}
