package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/nhle/flowstate/internal/ai"
	"github.com/nhle/flowstate/internal/app"
	"github.com/nhle/flowstate/internal/credential"
	"github.com/nhle/flowstate/internal/logging"
	"github.com/nhle/flowstate/internal/metrics"
	"github.com/nhle/flowstate/internal/model"
	"github.com/nhle/flowstate/internal/prefs"
	"github.com/nhle/flowstate/internal/theme"
	"github.com/nhle/flowstate/internal/workspace"
)

// runtime is everything a command needs once config and logging are up.
type runtime struct {
	cfg *model.AppConfig
	log *logging.Log
}

func (r *runtime) Close() {
	_ = r.log.Close()
}

// setup loads the config and builds the logger. The TUI logs to the
// configured file; other commands log to stderr at warn unless told
// otherwise.
func setup(opts *options, stderr io.Writer, toFile bool) (*runtime, error) {
	cfg, err := model.LoadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}

	b := logging.New()
	if toFile {
		b = b.FromPath(cfg.Storage.LogPath)
	} else {
		b = b.FromWriter(zerolog.ConsoleWriter{Out: stderr, NoColor: true}).Level("warn")
	}
	l, err := b.Level(opts.logLevel).Make()
	if err != nil {
		return nil, fmt.Errorf("opening log: %w", err)
	}
	return &runtime{cfg: cfg, log: l}, nil
}

func (r *runtime) openPrefs() (*prefs.Store, error) {
	path := r.cfg.Storage.PrefsPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating prefs directory: %w", err)
	}
	return prefs.Open(path, logging.Component(r.log.Logger, "prefs"))
}

// loadPrefs reads preferences, using the configured display theme until
// the user picks one.
func (r *runtime) loadPrefs(ctx context.Context, store *prefs.Store) (prefs.Preferences, error) {
	p, err := store.Load(ctx)
	if err != nil {
		return p, err
	}
	if _, chosen, err := store.Get(ctx, prefs.KeyThemeID); err == nil && !chosen {
		if t, ok := theme.Find(r.cfg.Display.Theme, p.CustomThemes); ok {
			p.Theme = t
		}
	}
	return p, nil
}

func (r *runtime) summarizer() ai.Summarizer {
	key, err := credential.SummarizerAPIKey()
	if err != nil {
		r.log.Logger.Warn().Err(err).Msg("reading summarizer key")
	}
	return ai.NewClient(key, r.cfg.AI, ai.WithLogger(logging.Component(r.log.Logger, "ai")))
}

func (r *runtime) session(rec *metrics.Recorder, store *prefs.Store) (*app.Session, error) {
	return app.NewSession(workspace.Seed(), app.Deps{
		Config:     r.cfg,
		Log:        r.log.Logger,
		Metrics:    rec,
		Summarizer: r.summarizer(),
		Prefs:      store,
	})
}

func runTUI(ctx context.Context, opts *options, name, exportDir string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	rt, err := setup(opts, os.Stderr, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	store, err := rt.openPrefs()
	if err != nil {
		return err
	}
	defer store.Close()

	p, err := rt.loadPrefs(ctx, store)
	if err != nil {
		return err
	}

	rec := metrics.New()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if addr := rt.cfg.Metrics.Addr; addr != "" {
		go func() {
			if err := rec.Serve(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				rt.log.Logger.Error().Err(err).Str("addr", addr).Msg("metrics endpoint stopped")
			}
		}()
	}

	sess, err := rt.session(rec, store)
	if err != nil {
		return err
	}
	defer sess.Logout()

	if name != "" {
		if _, err := sess.Launch(name); err != nil {
			return err
		}
	}

	m := app.New(sess, p).WithExportDir(exportDir)
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
