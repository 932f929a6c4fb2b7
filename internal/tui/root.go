// Package tui provides an interactive profile switcher: pick a stored
// profile, preview its assignments against the detected displays, apply it.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mzdunek/monitorwatcher/internal/display"
	"github.com/mzdunek/monitorwatcher/internal/profiles"
	"github.com/mzdunek/monitorwatcher/internal/switcher"
	"github.com/sirupsen/logrus"
)

type applyAccepted struct{}

type promptClosed struct{}

type Model struct {
	ctx        context.Context
	profiles   *profiles.Store
	applicator *switcher.Applicator
	controller display.Controller

	keys    keyMap
	list    *ProfileList
	preview *PreviewPane
	prompt  *ConfirmationPrompt
	help    help.Model

	status   string
	statusOK bool
	applying bool
	width    int
	height   int
}

func NewModel(ctx context.Context, profileStore *profiles.Store,
	applicator *switcher.Applicator, controller display.Controller,
) Model {
	all := profileStore.List()
	list := NewProfileList(all)
	preview := NewPreviewPane()
	if len(all) > 0 {
		preview.SetProfile(all[0])
	}

	return Model{
		ctx:        ctx,
		profiles:   profileStore,
		applicator: applicator,
		controller: controller,
		keys:       rootKeyMap,
		list:       list,
		preview:    preview,
		help:       help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return loadDisplaysCmd(m.ctx, m.controller)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case ProfileApplied:
		m.applying = false
		if msg.Err != nil {
			m.status = fmt.Sprintf("apply %s failed: %v", msg.Name, msg.Err)
			m.statusOK = false
		} else {
			m.status = fmt.Sprintf("profile %s applied", msg.Name)
			m.statusOK = true
		}
		return m, nil

	case DisplaysLoaded:
		if msg.Err != nil {
			m.status = fmt.Sprintf("cant list displays: %v", msg.Err)
			m.statusOK = false
		} else {
			m.preview.SetListing(msg.Listing)
		}
		return m, nil

	case applyAccepted:
		m.prompt = nil
		selected := m.list.Selected()
		if selected == nil {
			return m, nil
		}
		m.applying = true
		m.status = fmt.Sprintf("applying %s...", selected.Name)
		m.statusOK = true
		return m, applyProfileCmd(m.ctx, m.applicator, selected)

	case promptClosed:
		m.prompt = nil
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompt != nil {
		return m, m.prompt.Update(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		logrus.Debug("Quit requested")
		return m, tea.Quit

	case key.Matches(msg, m.keys.Apply):
		selected := m.list.Selected()
		if selected == nil || m.applying {
			return m, nil
		}
		m.prompt = NewConfirmationPrompt(
			fmt.Sprintf("Apply profile `%s`?", selected.Name),
			func() tea.Msg { return applyAccepted{} },
			func() tea.Msg { return promptClosed{} },
		)
		m.resize()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, loadDisplaysCmd(m.ctx, m.controller)
	}

	cmd := m.list.Update(msg)
	m.preview.SetProfile(m.list.Selected())
	return m, cmd
}

func (m *Model) resize() {
	listWidth := m.width / 3
	paneHeight := m.height - 4
	m.list.SetSize(listWidth-2, paneHeight)
	m.preview.SetSize(m.width-listWidth-4, paneHeight)
	if m.prompt != nil {
		m.prompt.SetWidth(m.width / 2)
		m.prompt.SetHeight(5)
	}
}

func (m Model) View() string {
	if m.prompt != nil {
		prompt := ActiveStyle.Width(m.width / 2).Height(5).Render(m.prompt.View())
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, prompt)
	}

	left := ActiveStyle.Render(m.list.View())
	right := InactiveStyle.Render(m.preview.View())
	panes := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	status := ""
	if m.status != "" {
		if m.statusOK {
			status = StatusOKStyle.Render(m.status)
		} else {
			status = StatusErrStyle.Render(m.status)
		}
	}
	helpView := HelpStyle.Render(m.help.ShortHelpView(m.keys.Help()))

	return lipgloss.JoinVertical(lipgloss.Left, panes, status, helpView)
}
