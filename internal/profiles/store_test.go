package profiles_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mzdunek/monitorwatcher/internal/errs"
	"github.com/mzdunek/monitorwatcher/internal/profiles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfiles(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewStore_CreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "profiles.json")

	store, err := profiles.NewStore(path)

	require.NoError(t, err)
	assert.Empty(t, store.List())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc, "profiles")
}

func TestStore_Get(t *testing.T) {
	path := writeProfiles(t, `{
  "profiles": {
    "work": {
      "description": "Docked at the desk",
      "monitors": {"1": "dp1", "2": "hdmi2"}
    }
  }
}`)
	store, err := profiles.NewStore(path)
	require.NoError(t, err)

	profile, err := store.Get("work")
	require.NoError(t, err)
	assert.Equal(t, "work", profile.Name)
	assert.Equal(t, "Docked at the desk", profile.Description)
	require.Len(t, profile.Monitors, 2)
	assert.Equal(t, profiles.Assignment{Display: "1", Input: "dp1"}, profile.Monitors[0])
	assert.Equal(t, profiles.Assignment{Display: "2", Input: "hdmi2"}, profile.Monitors[1])

	_, err = store.Get("gaming")
	assert.ErrorIs(t, err, errs.ErrProfileNotFound)
}

func TestStore_PreservesMonitorOrder(t *testing.T) {
	// Keys deliberately not in lexicographic order; application order must
	// follow the file, not a sorted or hashed order.
	path := writeProfiles(t, `{
  "profiles": {
    "weird": {
      "description": "",
      "monitors": {"3": "usbc", "1": "hdmi1", "2": "dp2"}
    }
  }
}`)
	store, err := profiles.NewStore(path)
	require.NoError(t, err)

	profile, err := store.Get("weird")
	require.NoError(t, err)

	displays := make([]string, 0, len(profile.Monitors))
	for _, assignment := range profile.Monitors {
		displays = append(displays, assignment.Display)
	}
	assert.Equal(t, []string{"3", "1", "2"}, displays)
}

func TestStore_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")
	store, err := profiles.NewStore(path)
	require.NoError(t, err)

	monitors := profiles.Assignments{
		{Display: "2", Input: "hdmi1"},
		{Display: "1", Input: "usbc"},
	}
	require.NoError(t, store.Save("home", "Living room setup", monitors))

	// A fresh store must see the same content in the same order.
	reopened, err := profiles.NewStore(path)
	require.NoError(t, err)
	profile, err := reopened.Get("home")
	require.NoError(t, err)
	assert.Equal(t, "Living room setup", profile.Description)
	assert.Equal(t, monitors, profile.Monitors)
}

func TestStore_SaveOverwritesInPlace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")
	store, err := profiles.NewStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Save("a", "", profiles.Assignments{{Display: "1", Input: "dp1"}}))
	require.NoError(t, store.Save("b", "", profiles.Assignments{{Display: "1", Input: "dp2"}}))
	require.NoError(t, store.Save("a", "updated", profiles.Assignments{{Display: "1", Input: "hdmi1"}}))

	names := store.Names()
	assert.Equal(t, []string{"a", "b"}, names, "overwrite should not move the profile to the end")

	profile, err := store.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "updated", profile.Description)
}

func TestStore_Delete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")
	store, err := profiles.NewStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Save("gone", "", profiles.Assignments{{Display: "1", Input: "dp1"}}))
	require.NoError(t, store.Delete("gone"))
	assert.Empty(t, store.Names())

	err = store.Delete("gone")
	assert.ErrorIs(t, err, errs.ErrProfileNotFound)

	// Deletion must be persisted.
	reopened, err := profiles.NewStore(path)
	require.NoError(t, err)
	assert.Empty(t, reopened.Names())
}

func TestStore_Relocate(t *testing.T) {
	t.Run("loads the new file", func(t *testing.T) {
		first := writeProfiles(t, `{"profiles": {"old": {"description": "", "monitors": {"1": "dp1"}}}}`)
		second := filepath.Join(t.TempDir(), "profiles.json")
		require.NoError(t, os.WriteFile(second,
			[]byte(`{"profiles": {"new": {"description": "", "monitors": {"2": "hdmi1"}}}}`), 0o600))

		store, err := profiles.NewStore(first)
		require.NoError(t, err)

		require.NoError(t, store.Relocate(second))

		assert.Equal(t, second, store.Path())
		assert.Equal(t, []string{"new"}, store.Names())
	})

	t.Run("creates a missing new file", func(t *testing.T) {
		first := writeProfiles(t, `{"profiles": {"old": {"description": "", "monitors": {"1": "dp1"}}}}`)
		store, err := profiles.NewStore(first)
		require.NoError(t, err)

		second := filepath.Join(t.TempDir(), "nested", "profiles.json")
		require.NoError(t, store.Relocate(second))

		assert.Empty(t, store.Names())
		_, err = os.Stat(second)
		assert.NoError(t, err)
	})

	t.Run("same path is a no-op", func(t *testing.T) {
		first := writeProfiles(t, `{"profiles": {"kept": {"description": "", "monitors": {"1": "dp1"}}}}`)
		store, err := profiles.NewStore(first)
		require.NoError(t, err)

		// An external corruption of the file must not surface: nothing is
		// re-read when the path does not change.
		require.NoError(t, os.WriteFile(first, []byte(`{"profiles": {`), 0o600))
		require.NoError(t, store.Relocate(first))

		assert.Equal(t, []string{"kept"}, store.Names())
	})
}

func TestStore_InvalidJSON(t *testing.T) {
	path := writeProfiles(t, `{"profiles": {`)

	_, err := profiles.NewStore(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestStore_MonitorsMustBeObject(t *testing.T) {
	path := writeProfiles(t, `{"profiles": {"bad": {"monitors": ["1", "dp1"]}}}`)

	_, err := profiles.NewStore(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "monitors must be a JSON object")
}

func TestStore_UnknownTopLevelKeysIgnored(t *testing.T) {
	path := writeProfiles(t, `{
  "version": 2,
  "profiles": {"only": {"description": "", "monitors": {"1": "dp1"}}}
}`)
	store, err := profiles.NewStore(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, store.Names())
}
