// Package settings persists the caller-owned configuration record:
// current enhancement parameters, last-used folder and named presets.
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/local/notespress/internal/enhance"
)

// Settings is the persisted record. It round-trips through a flat JSON
// file keyed by the field names below.
type Settings struct {
	Contrast   float64                   `mapstructure:"contrast"`
	Brightness float64                   `mapstructure:"brightness"`
	Sharpness  float64                   `mapstructure:"sharpness"`
	Grayscale  bool                      `mapstructure:"grayscale"`
	LastFolder string                    `mapstructure:"last_folder"`
	Presets    map[string]enhance.Params `mapstructure:"presets"`
	LastPreset string                    `mapstructure:"last_preset"`
}

// Params returns the current enhancement parameters from the record.
func (s Settings) Params() enhance.Params {
	return enhance.Params{
		Contrast:   s.Contrast,
		Brightness: s.Brightness,
		Sharpness:  s.Sharpness,
		Grayscale:  s.Grayscale,
	}
}

// Defaults is the fixed built-in record used when no settings file exists
// or the file is unreadable.
func Defaults() Settings {
	cwd, _ := os.Getwd()
	return Settings{
		Contrast:   1.2,
		Brightness: 1.0,
		Sharpness:  1.0,
		Grayscale:  true,
		LastFolder: cwd,
		Presets: map[string]enhance.Params{
			"Print Clear":    {Contrast: 1.3, Brightness: 1.05, Sharpness: 1.1, Grayscale: true},
			"Dark Notes Fix": {Contrast: 1.6, Brightness: 1.2, Sharpness: 1.0, Grayscale: true},
			"Read on Screen": {Contrast: 1.1, Brightness: 1.1, Sharpness: 1.0, Grayscale: false},
		},
		LastPreset: "Print Clear",
	}
}

// Store reads and writes the settings file.
type Store struct {
	path string
}

// NewStore returns a store backed by the JSON file at path.
func NewStore(path string) *Store { return &Store{path: path} }

// Load reads the settings file. A missing or unreadable file is not an
// error: the built-in defaults are returned instead. This is the only
// silently recovered failure in the system.
func (s *Store) Load() Settings {
	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Err(err).Str("file", s.path).Msg("settings file unreadable, using defaults")
		return Defaults()
	}

	out := Defaults()
	if err := v.Unmarshal(&out); err != nil {
		log.Warn().Err(err).Str("file", s.path).Msg("settings file malformed, using defaults")
		return Defaults()
	}
	if out.Presets == nil {
		out.Presets = Defaults().Presets
	}
	return out
}

// Save rewrites the whole settings record.
func (s *Store) Save(rec Settings) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create settings dir: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("json")
	v.Set("contrast", rec.Contrast)
	v.Set("brightness", rec.Brightness)
	v.Set("sharpness", rec.Sharpness)
	v.Set("grayscale", rec.Grayscale)
	v.Set("last_folder", rec.LastFolder)
	v.Set("presets", rec.Presets)
	v.Set("last_preset", rec.LastPreset)

	if err := v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}
