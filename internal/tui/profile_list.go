package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mzdunek/monitorwatcher/internal/profiles"
)

type profileItem struct {
	profile *profiles.Profile
}

func (p profileItem) Title() string { return p.profile.Name }

func (p profileItem) Description() string {
	if p.profile.Description != "" {
		return p.profile.Description
	}
	return fmt.Sprintf("%d monitors", len(p.profile.Monitors))
}

func (p profileItem) FilterValue() string { return p.profile.Name }

// ProfileList is the left pane: all stored profiles in file order.
type ProfileList struct {
	list list.Model
}

func NewProfileList(all []*profiles.Profile) *ProfileList {
	items := make([]list.Item, len(all))
	for i, profile := range all {
		items[i] = profileItem{profile: profile}
	}

	delegate := list.NewDefaultDelegate()
	model := list.New(items, delegate, 0, 0)
	model.Title = "Profiles"
	model.SetShowHelp(false)
	model.SetFilteringEnabled(false)
	model.SetShowStatusBar(false)
	model.DisableQuitKeybindings()

	return &ProfileList{list: model}
}

func (p *ProfileList) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return cmd
}

// Selected returns the highlighted profile, nil when the store is empty.
func (p *ProfileList) Selected() *profiles.Profile {
	item, ok := p.list.SelectedItem().(profileItem)
	if !ok {
		return nil
	}
	return item.profile
}

func (p *ProfileList) SetItems(all []*profiles.Profile) {
	items := make([]list.Item, len(all))
	for i, profile := range all {
		items[i] = profileItem{profile: profile}
	}
	p.list.SetItems(items)
}

func (p *ProfileList) SetSize(width, height int) {
	p.list.SetSize(width, height)
}

func (p *ProfileList) View() string {
	return p.list.View()
}
