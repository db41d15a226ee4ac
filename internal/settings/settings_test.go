package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/local/notespress/internal/enhance"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nope", "settings.json"))
	rec := store.Load()

	assert.Equal(t, 1.2, rec.Contrast)
	assert.Equal(t, 1.0, rec.Brightness)
	assert.True(t, rec.Grayscale)
	assert.Equal(t, "Print Clear", rec.LastPreset)
	assert.Len(t, rec.Presets, 3)
}

func TestLoadMalformedFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	rec := NewStore(path).Load()
	assert.Equal(t, Defaults().Contrast, rec.Contrast)
	assert.Contains(t, rec.Presets, "Dark Notes Fix")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")
	store := NewStore(path)

	rec := Defaults()
	rec.Contrast = 1.45
	rec.Grayscale = false
	rec.LastFolder = "/tmp/scans"
	rec.Presets["Night Mode"] = enhance.Params{Contrast: 1.8, Brightness: 1.3, Sharpness: 1.0, Grayscale: true}
	rec.LastPreset = "Night Mode"

	require.NoError(t, store.Save(rec))

	got := store.Load()
	assert.Equal(t, 1.45, got.Contrast)
	assert.False(t, got.Grayscale)
	assert.Equal(t, "/tmp/scans", got.LastFolder)
	assert.Equal(t, "Night Mode", got.LastPreset)

	night, ok := got.Presets["Night Mode"]
	require.True(t, ok)
	assert.Equal(t, 1.8, night.Contrast)
	assert.True(t, night.Grayscale)
	// Built-in presets survive alongside the custom one.
	assert.Contains(t, got.Presets, "Print Clear")
}

func TestParamsAccessor(t *testing.T) {
	rec := Settings{Contrast: 1.5, Brightness: 1.1, Sharpness: 1.2, Grayscale: true}
	p := rec.Params()
	assert.Equal(t, enhance.Params{Contrast: 1.5, Brightness: 1.1, Sharpness: 1.2, Grayscale: true}, p)
}
