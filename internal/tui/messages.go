package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mzdunek/monitorwatcher/internal/display"
	"github.com/mzdunek/monitorwatcher/internal/profiles"
	"github.com/mzdunek/monitorwatcher/internal/switcher"
)

type ProfileApplied struct {
	Name string
	Err  error
}

type DisplaysLoaded struct {
	Listing string
	Err     error
}

func applyProfileCmd(ctx context.Context, applicator *switcher.Applicator,
	profile *profiles.Profile,
) tea.Cmd {
	return func() tea.Msg {
		return ProfileApplied{Name: profile.Name, Err: applicator.Apply(ctx, profile)}
	}
}

func loadDisplaysCmd(ctx context.Context, controller display.Controller) tea.Cmd {
	return func() tea.Msg {
		listing, err := controller.ListDisplays(ctx, true)
		return DisplaysLoaded{Listing: listing, Err: err}
	}
}
