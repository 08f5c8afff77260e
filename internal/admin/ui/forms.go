package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
)

func nonEmpty(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}

func maxRunes(field string, n int) func(string) error {
	return func(s string) error {
		if err := nonEmpty(field)(s); err != nil {
			return err
		}
		if len([]rune(strings.TrimSpace(s))) > n {
			return fmt.Errorf("%s must be at most %d characters", field, n)
		}
		return nil
	}
}

func newList(items []list.Item, w, h int, filter bool) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), w, h)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(filter)
	l.SetShowHelp(true)
	return l
}
