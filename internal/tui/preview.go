package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mzdunek/monitorwatcher/internal/ddc"
	"github.com/mzdunek/monitorwatcher/internal/profiles"
)

// PreviewPane is the right pane: the selected profile's assignments in
// application order, plus the detected display listing.
type PreviewPane struct {
	profile *profiles.Profile
	listing string
	width   int
	height  int
}

func NewPreviewPane() *PreviewPane {
	return &PreviewPane{}
}

func (p *PreviewPane) SetProfile(profile *profiles.Profile) {
	p.profile = profile
}

func (p *PreviewPane) SetListing(listing string) {
	p.listing = listing
}

func (p *PreviewPane) SetSize(width, height int) {
	p.width = width
	p.height = height
}

func (p *PreviewPane) View() string {
	sections := []string{}

	if p.profile == nil {
		sections = append(sections, MutedStyle.Render("No profile selected"))
	} else {
		sections = append(sections, TitleStyle.Render(p.profile.Name))
		if p.profile.Description != "" {
			sections = append(sections, ItemSubtitle.Render(p.profile.Description))
		}
		sections = append(sections, "")
		for i, assignment := range p.profile.Monitors {
			line := fmt.Sprintf("%d. display %s -> %s", i+1, assignment.Display,
				strings.ToUpper(assignment.Input))
			if code, ok := ddc.InputCode(assignment.Input); ok {
				line += MutedStyle.Render(fmt.Sprintf(" (vcp 0x%02x)", code))
			} else {
				line += StatusErrStyle.Render(" (unknown input)")
			}
			sections = append(sections, line)
		}
	}

	if p.listing != "" {
		sections = append(sections, "", TitleStyle.Render("Detected displays"), p.listing)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.NewStyle().Width(p.width).Height(p.height).Render(content)
}
