package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Settings are the user preferences read from the YAML settings file.
// Command-line flags override them.
type Settings struct {
	DataFile   string `yaml:"data_file"`
	Language   string `yaml:"language"`
	WindowDays int    `yaml:"birthday_window_days"`
	Debug      bool   `yaml:"debug"`
}

// DefaultSettings returns the settings used when no file exists.
// DataFile is left empty and resolved by DefaultDataFile.
func DefaultSettings() Settings {
	return Settings{
		Language:   DefaultLanguage,
		WindowDays: DefaultWindowDays,
	}
}

// LoadSettings reads path over the defaults. A missing file is not an error.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug(MsgSettingsMiss, LogKeyComponent, CompConfig, LogKeyFile, path)
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("%s: %w", ErrSettingsRead, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return s, fmt.Errorf("%s %s: %w", ErrSettingsParse, path, err)
	}

	if err := s.Validate(); err != nil {
		return s, err
	}

	slog.Debug(MsgSettingsLoaded, LogKeyComponent, CompConfig, LogKeyFile, path)
	return s, nil
}

// Validate checks the ranges of the numeric settings and the language tag.
func (s Settings) Validate() error {
	if s.WindowDays < MinWindowDays || s.WindowDays > MaxWindowDays {
		return fmt.Errorf("%s: %d", ErrSettingsDays, s.WindowDays)
	}
	if _, err := language.Parse(s.Language); err != nil {
		return fmt.Errorf("%s: %q", ErrSettingsLang, s.Language)
	}
	return nil
}

// AppConfigDir returns the per-user directory holding settings and data.
func AppConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrConfigDir, err)
	}
	return filepath.Join(dir, AppDirName), nil
}

// DefaultSettingsFile returns the settings path inside AppConfigDir.
func DefaultSettingsFile() (string, error) {
	dir, err := AppConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SettingsFile), nil
}

// DefaultDataFile returns the address book path inside AppConfigDir.
func DefaultDataFile() (string, error) {
	dir, err := AppConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DataFileName), nil
}
