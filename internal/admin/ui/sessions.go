package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"

	"github.com/notepid/flockr/internal/admin/app"
)

type sessionsModel struct {
	app *app.App

	width  int
	height int

	Done bool

	form *huh.Form
	err  error

	active int
	purged int
	ran    bool
	purge  bool
}

func newSessionsModel(a *app.App) *sessionsModel {
	m := &sessionsModel{app: a}

	active, err := a.Sessions.Active()
	if err != nil {
		m.err = err
		return m
	}
	m.active = active
	m.form = buildSessionsForm(&m.purge)
	return m
}

func buildSessionsForm(purge *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title("Purge expired sessions now?").Value(purge),
		),
	)
}

func (m *sessionsModel) SetSize(w, h int) {
	m.width, m.height = w, h
}

func (m *sessionsModel) Update(msg tea.Msg) tea.Cmd {
	if m.err != nil || m.ran {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			if msg.String() == "esc" || msg.String() == "q" || msg.String() == "enter" {
				m.Done = true
			}
		}
		return nil
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		m.Done = true
		return nil
	}

	updated, cmd := m.form.Update(msg)
	f, ok := updated.(*huh.Form)
	if !ok {
		m.err = fmt.Errorf("internal error: unexpected form model type")
		return nil
	}
	m.form = f

	if m.form.State == huh.StateCompleted {
		if !m.purge {
			m.Done = true
			return nil
		}
		n, err := m.app.Sessions.Purge()
		if err != nil {
			m.err = err
			return nil
		}
		m.purged = n
		m.ran = true
		if m.active, err = m.app.Sessions.Active(); err != nil {
			m.err = err
		}
		return nil
	}

	return cmd
}

func (m *sessionsModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Sessions error: %v\n\nPress Enter/Esc to go back.", m.err)
	}
	header := titleStyle.Render("Sessions") + "\n" +
		fmt.Sprintf("Active: %s (ttl %s, purge %q)\n\n", humanize.Comma(int64(m.active)),
			m.app.Config.Sessions.TTL, m.app.Config.Sessions.PurgeCron)
	if m.ran {
		return header + fmt.Sprintf("Purged %s.\n\nPress Enter/Esc to go back.",
			humanize.Plural(m.purged, "expired session", "expired sessions"))
	}
	return header + m.form.View() + "\n\n(esc to go back)"
}
