// Copyright (c) 2026 FinSight Labs <oss@finsight.dev>.
// SPDX-License-Identifier: Apache-2.0

// Package picker implements the interactive portfolio selector behind the
// --pick flag.
package picker

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/finsightlabs/finctl/internal/api"
)

// ErrAborted is returned when the user backs out without choosing.
var ErrAborted = errors.New("no portfolio selected")

var docStyle = lipgloss.NewStyle().Margin(1, 2)

type item struct {
	portfolio api.Portfolio
}

func (i item) Title() string { return i.portfolio.Name }

func (i item) Description() string {
	return fmt.Sprintf("%s, %d holdings", i.portfolio.Currency, i.portfolio.Holdings)
}

func (i item) FilterValue() string { return i.portfolio.Name }

type model struct {
	list   list.Model
	chosen *api.Portfolio
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if it, ok := m.list.SelectedItem().(item); ok {
				m.chosen = &it.portfolio
			}
			return m, tea.Quit
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	return docStyle.Render(m.list.View())
}

// Pick runs a full screen selector over the provided portfolios and returns
// the chosen one. ErrAborted is returned if the user quits without choosing.
func Pick(portfolios []api.Portfolio) (api.Portfolio, error) {
	if len(portfolios) == 0 {
		return api.Portfolio{}, errors.New("no portfolios to pick from")
	}

	items := make([]list.Item, 0, len(portfolios))
	for _, p := range portfolios {
		items = append(items, item{portfolio: p})
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Portfolios"

	p := tea.NewProgram(model{list: l}, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return api.Portfolio{}, fmt.Errorf("picker failed: %w", err)
	}

	m, ok := final.(model)
	if !ok || m.chosen == nil {
		return api.Portfolio{}, ErrAborted
	}
	return *m.chosen, nil
}
