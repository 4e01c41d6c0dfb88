// Package settings holds app-level preferences. They are loaded once at
// startup and written back only when a value changes.
package settings

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/abhisek/quizdeck/internal/store"
)

const (
	keyDisclaimerAgreed = "disclaimer_agreed"
	keyTheme            = "theme"
)

// Theme names a colour palette.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme maps a name to a Theme, defaulting to dark.
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeLight {
		return ThemeLight
	}
	return ThemeDark
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// Settings is a snapshot of the preferences.
type Settings struct {
	DisclaimerAgreed bool
	Theme            Theme
}

// Defaults returns the settings used on first run.
func Defaults() Settings {
	return Settings{Theme: ThemeDark}
}

// Manager owns the current settings and their persistence.
type Manager struct {
	repo   store.SettingsRepo
	logger *zap.Logger

	mu      sync.Mutex
	current Settings
}

// Load reads settings from repo. A nil repo keeps everything in memory.
func Load(ctx context.Context, repo store.SettingsRepo, logger *zap.Logger) (*Manager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Manager{repo: repo, logger: logger.Named("settings"), current: Defaults()}
	if repo == nil {
		return m, nil
	}

	values, err := repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if v, ok := values[keyDisclaimerAgreed]; ok {
		agreed, err := strconv.ParseBool(v)
		if err != nil {
			m.logger.Warn("ignoring malformed setting", zap.String("key", keyDisclaimerAgreed), zap.String("value", v))
		}
		m.current.DisclaimerAgreed = agreed
	}
	if v, ok := values[keyTheme]; ok {
		m.current.Theme = ParseTheme(v)
	}
	return m, nil
}

// Get returns the current settings.
func (m *Manager) Get() Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// AgreeDisclaimer records that the user accepted the disclaimer.
func (m *Manager) AgreeDisclaimer(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current.DisclaimerAgreed {
		return nil
	}
	if err := m.write(ctx, keyDisclaimerAgreed, strconv.FormatBool(true)); err != nil {
		return err
	}
	m.current.DisclaimerAgreed = true
	return nil
}

// SetTheme changes the theme.
func (m *Manager) SetTheme(ctx context.Context, t Theme) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current.Theme == t {
		return nil
	}
	if err := m.write(ctx, keyTheme, string(t)); err != nil {
		return err
	}
	m.current.Theme = t
	return nil
}

func (m *Manager) write(ctx context.Context, key, value string) error {
	if m.repo == nil {
		return nil
	}
	if err := m.repo.Set(ctx, key, value); err != nil {
		return fmt.Errorf("save setting %s: %w", key, err)
	}
	m.logger.Debug("setting saved", zap.String("key", key), zap.String("value", value))
	return nil
}
