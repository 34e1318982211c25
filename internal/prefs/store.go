// Package prefs persists the few user preferences that outlive a session:
// the active theme, custom themes and the ambient sound switch.
package prefs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/nhle/flowstate/internal/model"
	"github.com/nhle/flowstate/internal/theme"
)

// Preference keys.
const (
	KeyThemeID      = "theme-id"
	KeyCustomThemes = "custom-themes"
	KeySoundEnabled = "sound-enabled"
)

// Preferences is what Load resolves at startup.
type Preferences struct {
	Theme        model.Theme
	CustomThemes []model.Theme
	SoundEnabled bool
}

// Themes returns the built-in themes followed by the custom ones.
func (p Preferences) Themes() []model.Theme {
	return append(theme.Builtin(), p.CustomThemes...)
}

// Store is a key/value table in a local SQLite database.
type Store struct {
	db  *sqlx.DB
	log zerolog.Logger
}

// Open opens (or creates) the SQLite database at dbPath, enables WAL mode,
// and runs any pending schema migrations.
func Open(dbPath string, log zerolog.Logger) (*Store, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	// One connection keeps ":memory:" databases in a single instance.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &Store{db: db, log: log}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *Store) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}
	return nil
}

// Get returns the raw value stored under key.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.db.GetContext(ctx, &v, "SELECT value FROM preferences WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading preference %s: %w", key, err)
	}
	return v, true, nil
}

// Set stores value under key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("writing preference %s: %w", key, err)
	}
	return nil
}

// Load reads every preference. Malformed custom themes are logged and
// ignored, and the active theme falls back to the default.
func (s *Store) Load(ctx context.Context) (Preferences, error) {
	p := Preferences{Theme: theme.Default()}

	themeID, _, err := s.Get(ctx, KeyThemeID)
	if err != nil {
		return p, err
	}
	if themeID == "" {
		themeID = theme.DefaultID
	}

	raw, ok, err := s.Get(ctx, KeyCustomThemes)
	if err != nil {
		return p, err
	}
	if ok && raw != "" {
		var custom []model.Theme
		if err := json.Unmarshal([]byte(raw), &custom); err != nil {
			s.log.Warn().Err(err).Str("key", KeyCustomThemes).Msg("ignoring malformed custom themes")
			custom = nil
			themeID = theme.DefaultID
		}
		p.CustomThemes = custom
	}

	t, found := theme.Find(themeID, p.CustomThemes)
	if !found {
		s.log.Warn().Str("theme", themeID).Msg("unknown theme, using default")
	}
	p.Theme = t

	sound, _, err := s.Get(ctx, KeySoundEnabled)
	if err != nil {
		return p, err
	}
	p.SoundEnabled, _ = strconv.ParseBool(sound)
	return p, nil
}

// SetActiveTheme records the active theme id.
func (s *Store) SetActiveTheme(ctx context.Context, id string) error {
	return s.Set(ctx, KeyThemeID, id)
}

// SaveCustomTheme adds t to the custom themes, replacing any theme with
// the same id, and returns the updated list.
func (s *Store) SaveCustomTheme(ctx context.Context, t model.Theme) ([]model.Theme, error) {
	if err := theme.Validate(t); err != nil {
		return nil, err
	}
	p, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	themes := p.CustomThemes
	replaced := false
	for i := range themes {
		if themes[i].ID == t.ID {
			themes[i] = t
			replaced = true
		}
	}
	if !replaced {
		themes = append(themes, t)
	}

	data, err := json.Marshal(themes)
	if err != nil {
		return nil, fmt.Errorf("marshaling custom themes: %w", err)
	}
	if err := s.Set(ctx, KeyCustomThemes, string(data)); err != nil {
		return nil, err
	}
	return themes, nil
}

// SetSoundEnabled records the ambient sound switch.
func (s *Store) SetSoundEnabled(ctx context.Context, on bool) error {
	return s.Set(ctx, KeySoundEnabled, strconv.FormatBool(on))
}

// ToggleSound flips the ambient sound switch and returns the new value.
func (s *Store) ToggleSound(ctx context.Context) (bool, error) {
	p, err := s.Load(ctx)
	if err != nil {
		return false, err
	}
	on := !p.SoundEnabled
	return on, s.SetSoundEnabled(ctx, on)
}
