// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned when the picker is closed without a selection.
var ErrCancelled = errors.New("selection cancelled")

// Candidate is a configuration offered by the picker.
type Candidate struct {
	Location string
	ModTime  time.Time
}

// SelectCandidates lets the user pick two candidates to compare. Options are
// passed through to the bubbletea program.
func SelectCandidates(items []Candidate, opts ...tea.ProgramOption) ([]Candidate, error) {
	if len(items) < 2 {
		return nil, fmt.Errorf("need at least two configs to compare, found %d", len(items))
	}

	p := tea.NewProgram(model{items: items}, opts...)
	m, err := p.Run()
	if err != nil {
		return nil, err
	}

	selected := m.(model).selected
	if len(selected) != 2 {
		return nil, ErrCancelled
	}
	return selected, nil
}

type model struct {
	items    []Candidate
	cursor   int
	selected []Candidate
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "esc", "ctrl+c":
		m.selected = nil
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case " ":
		current := m.items[m.cursor]
		if i := indexOf(m.selected, current); i >= 0 {
			m.selected = append(m.selected[:i:i], m.selected[i+1:]...)
		} else if len(m.selected) < 2 {
			m.selected = append(m.selected, current)
		}
	case "enter":
		if len(m.selected) == 2 {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) View() string {
	s := "Select two configs:\n\n"
	for i, c := range m.items {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		mark := " "
		if indexOf(m.selected, c) >= 0 {
			mark = "x"
		}

		s += fmt.Sprintf("%s [%s] %s %s\n", cursor, mark, c.ModTime.Format("2006-01-02T15:04:05Z07:00"), c.Location)
	}
	return s + "\nSPACE: toggle, ENTER: go, Q/ESCAPE: quit\n"
}

func indexOf(items []Candidate, c Candidate) int {
	for i, v := range items {
		if v.Location == c.Location {
			return i
		}
	}
	return -1
}
