package reloader_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mzdunek/monitorwatcher/internal/profiles"
	"github.com/mzdunek/monitorwatcher/internal/reloader"
	"github.com/mzdunek/monitorwatcher/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProfileStore struct {
	reloadErr     error
	relocateErr   error
	reloadCalls   int
	relocatePaths []string
}

func (f *fakeProfileStore) Reload() error {
	f.reloadCalls++
	return f.reloadErr
}

func (f *fakeProfileStore) Relocate(path string) error {
	f.relocatePaths = append(f.relocatePaths, path)
	return f.relocateErr
}

type fakeAutoSwitch struct {
	reloadErr     error
	reloadCalls   int
	relocatePaths []string
}

func (f *fakeAutoSwitch) Reload(ctx context.Context) error {
	f.reloadCalls++
	return f.reloadErr
}

func (f *fakeAutoSwitch) Relocate(path string) error {
	f.relocatePaths = append(f.relocatePaths, path)
	return nil
}

type fakeFilewatcher struct {
	updateErr   error
	updateCalls int
	channel     chan interface{}
}

func (f *fakeFilewatcher) Update() error {
	f.updateCalls++
	return f.updateErr
}

func (f *fakeFilewatcher) Listen() <-chan interface{} {
	return f.channel
}

func TestService_Reload(t *testing.T) {
	ctx := context.Background()
	cfg := testutils.FastSettings(t)

	tests := []struct {
		name           string
		profilesErr    error
		relocateErr    error
		autoswitchErr  error
		filewatcherErr error
		wantErr        bool
		errContains    string
	}{
		{
			name:    "successful reload",
			wantErr: false,
		},
		{
			name:        "store relocation fails",
			relocateErr: errors.New("relocate error"),
			wantErr:     true,
			errContains: "cant relocate stores",
		},
		{
			name:           "filewatcher update fails",
			filewatcherErr: errors.New("filewatcher error"),
			wantErr:        true,
			errContains:    "cant update filewatcher",
		},
		{
			name:        "profiles reload fails",
			profilesErr: errors.New("profiles error"),
			wantErr:     true,
			errContains: "cant reload profiles",
		},
		{
			name:          "autoswitch reload fails",
			autoswitchErr: errors.New("autoswitch error"),
			wantErr:       true,
			errContains:   "cant reload autoswitch",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profileStore := &fakeProfileStore{reloadErr: tt.profilesErr, relocateErr: tt.relocateErr}
			autoswitchService := &fakeAutoSwitch{reloadErr: tt.autoswitchErr}
			filewatcher := &fakeFilewatcher{updateErr: tt.filewatcherErr}

			reloaderService := reloader.NewService(cfg, filewatcher, profileStore, autoswitchService, false)

			err := reloaderService.Reload(ctx)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 1, filewatcher.updateCalls)
				assert.Equal(t, 1, profileStore.reloadCalls)
				assert.Equal(t, 1, autoswitchService.reloadCalls)
				assert.Len(t, profileStore.relocatePaths, 1)
				assert.Len(t, autoswitchService.relocatePaths, 1)
			}
		})
	}
}

func TestService_ReloadFollowsMovedProfilesFile(t *testing.T) {
	dir := t.TempDir()
	first := testutils.WriteFile(t, dir, "profiles.json", `{"profiles": {}}`)
	second := testutils.WriteFile(t, dir, "profiles-v2.json",
		`{"profiles": {"docked": {"description": "", "monitors": {"1": "hdmi1"}}}}`)
	usbPath := filepath.Join(dir, "usb_config.json")

	settings := func(profilesFile string) string {
		return fmt.Sprintf("[general]\nprofiles_file = %q\nusb_config_file = %q\n", profilesFile, usbPath)
	}
	cfg := testutils.Settings(t, settings(first))

	profileStore, err := profiles.NewStore(first)
	require.NoError(t, err)
	autoswitchService := &fakeAutoSwitch{}
	filewatcher := &fakeFilewatcher{}

	reloaderService := reloader.NewService(cfg, filewatcher, profileStore, autoswitchService, false)

	// Settings now point the store at a different file; a reload must pick
	// up profiles from the new location, not keep reading the old one.
	require.NoError(t, os.WriteFile(cfg.Path(), []byte(settings(second)), 0o600))
	require.NoError(t, reloaderService.Reload(context.Background()))

	assert.Equal(t, second, profileStore.Path())
	profile, err := profileStore.Get("docked")
	require.NoError(t, err)
	assert.Equal(t, profiles.Assignments{{Display: "1", Input: "hdmi1"}}, profile.Monitors)
	assert.Equal(t, []string{usbPath}, autoswitchService.relocatePaths)
}

func TestService_Run(t *testing.T) {
	cfg := testutils.FastSettings(t)

	tests := []struct {
		name                     string
		hotReloadDisabled        bool
		expectedFilewatcherCalls int
		expectedProfileCalls     int
		expectedAutoswitchCalls  int
	}{
		{
			name:                     "processes events from filewatcher",
			hotReloadDisabled:        false,
			expectedFilewatcherCalls: 1,
			expectedProfileCalls:     1,
			expectedAutoswitchCalls:  1,
		},
		{
			name:                     "disabled hot reload",
			hotReloadDisabled:        true,
			expectedFilewatcherCalls: 0,
			expectedProfileCalls:     0,
			expectedAutoswitchCalls:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profileStore := &fakeProfileStore{}
			autoswitchService := &fakeAutoSwitch{}
			channel := make(chan interface{}, 1)
			filewatcher := &fakeFilewatcher{channel: channel}

			reloaderService := reloader.NewService(cfg, filewatcher, profileStore, autoswitchService, tt.hotReloadDisabled)

			ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
			defer cancel()

			errCh := make(chan error, 1)
			go func() {
				errCh <- reloaderService.Run(ctx)
			}()

			channel <- true

			// Wait a bit to let them process
			time.Sleep(200 * time.Millisecond)

			cancel()

			select {
			case err := <-errCh:
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "context canceled")
			case <-time.After(100 * time.Millisecond):
				t.Fatal("timeout waiting for service to shutdown")
			}

			assert.Equal(t, tt.expectedFilewatcherCalls, filewatcher.updateCalls)
			assert.Equal(t, tt.expectedProfileCalls, profileStore.reloadCalls)
			assert.Equal(t, tt.expectedAutoswitchCalls, autoswitchService.reloadCalls)
		})
	}
}
