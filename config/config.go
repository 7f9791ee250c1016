package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Settings holds the process configuration. The JSON file on disk is the
// source of truth; environment variables override individual fields so
// credentials can stay out of the file.
type Settings struct {
	ListenAddr   string `json:"listenAddr"`
	DatabasePath string `json:"databasePath"`
	LogPath      string `json:"logPath"`
	OMDbAPIKey   string `json:"omdbApiKey"`
	OMDbBaseURL  string `json:"omdbBaseUrl"`
}

// DefaultSettings returns the settings used when no file exists yet.
func DefaultSettings() Settings {
	return Settings{
		ListenAddr:   ":8485",
		DatabasePath: "data/movies.db",
		LogPath:      "data/logs/cinedex.log",
		OMDbBaseURL:  "https://www.omdbapi.com/",
	}
}

// Manager loads and persists Settings behind a lock so handlers can read a
// consistent snapshot while settings are being rewritten.
type Manager struct {
	mu       sync.RWMutex
	path     string
	settings Settings
}

// NewManager reads the settings file at path, creating defaults when the file
// does not exist, and applies environment overrides.
func NewManager(path string) (*Manager, error) {
	m := &Manager{path: path}
	if _, err := m.Load(); err != nil {
		return nil, err
	}
	return m, nil
}

// Load re-reads the settings file and applies environment overrides. A missing
// file is not an error; defaults are used.
func (m *Manager) Load() (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(m.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// keep defaults
	case err != nil:
		return Settings{}, fmt.Errorf("read settings: %w", err)
	default:
		if err := json.Unmarshal(data, &settings); err != nil {
			return Settings{}, fmt.Errorf("parse settings %s: %w", m.path, err)
		}
	}

	applyEnvOverrides(&settings)

	m.mu.Lock()
	m.settings = settings
	m.mu.Unlock()
	return settings, nil
}

// Get returns the last loaded settings snapshot.
func (m *Manager) Get() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings
}

// Save persists settings to disk and makes them the current snapshot.
func (m *Manager) Save(settings Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if dir := filepath.Dir(m.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create settings dir: %w", err)
		}
	}
	if err := os.WriteFile(m.path, data, 0o600); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	m.mu.Lock()
	m.settings = settings
	m.mu.Unlock()
	return nil
}

func applyEnvOverrides(settings *Settings) {
	if v := os.Getenv("CINEDEX_LISTEN_ADDR"); v != "" {
		settings.ListenAddr = v
	}
	if v := os.Getenv("CINEDEX_DATABASE_PATH"); v != "" {
		settings.DatabasePath = v
	}
	if v := os.Getenv("CINEDEX_LOG_PATH"); v != "" {
		settings.LogPath = v
	}
	if v := os.Getenv("OMDB_API_KEY"); v != "" {
		settings.OMDbAPIKey = v
	}
	if v := os.Getenv("OMDB_BASE_URL"); v != "" {
		settings.OMDbBaseURL = v
	}
}
