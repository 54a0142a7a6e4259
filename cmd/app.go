package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/papapumpkin/skillmesh/internal/config"
	"github.com/papapumpkin/skillmesh/internal/engine"
	"github.com/papapumpkin/skillmesh/internal/index"
	"github.com/papapumpkin/skillmesh/internal/logging"
	"github.com/papapumpkin/skillmesh/internal/telemetry"
	"github.com/papapumpkin/skillmesh/internal/ui"
)

// errNoSkill is returned when a query names a skill the model lacks.
var errNoSkill = errors.New("unknown skill")

// app bundles what every command needs: config, output, and the optional
// event log.
type app struct {
	cfg     config.Config
	printer *ui.Printer
	log     *slog.Logger
	events  *telemetry.Emitter
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return newAppFromConfig(cfg)
}

func newAppFromConfig(cfg config.Config) (*app, error) {
	a := &app{
		cfg:     cfg,
		printer: ui.New(ui.WithColor(!cfg.NoColor)),
		log:     logging.New(os.Stderr, logging.Options{Verbose: cfg.Verbose, NoColor: cfg.NoColor}),
	}
	if cfg.TelemetryPath != "" {
		em, err := telemetry.NewEmitter(cfg.TelemetryPath)
		if err != nil {
			return nil, err
		}
		a.events = em
		a.log.Debug("recording session", "session", em.SessionID(), "path", cfg.TelemetryPath)
	}
	return a, nil
}

func (a *app) Close() {
	if err := a.events.Close(); err != nil {
		a.log.Warn("closing telemetry", "err", err)
	}
}

// modelPath returns the model named on the command line, or the configured
// default.
func (a *app) modelPath(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return a.cfg.Model
}

func (a *app) compileOptions() []index.Option {
	return []index.Option{index.WithLogger(a.log), index.WithStrict(a.cfg.Strict)}
}

// loadIndex returns the compiled index for the model at path, using and
// refreshing the on-disk cache when one is configured.
func (a *app) loadIndex(path string) (*index.Index, error) {
	if !a.cfg.CacheEnabled() {
		return a.compile(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model: %w", err)
	}
	fp := index.Fingerprint(data)
	cachePath := index.CachePath(a.cfg.CacheDir, fp)
	idx, err := index.LoadCache(cachePath, fp)
	if err == nil {
		a.log.Debug("using cached index", "path", cachePath)
		if warnings := idx.Warnings(); len(warnings) > 0 {
			a.printer.Issues(warnings)
			if a.cfg.Strict {
				return nil, fmt.Errorf("%s: %w: %d warning(s) in strict mode", path, index.ErrInvalidModel, len(warnings))
			}
		}
		return idx, nil
	}
	a.log.Debug("cache miss", "path", cachePath, "err", err)

	idx, err = a.compile(path)
	if err != nil {
		return nil, err
	}
	if err := index.SaveCache(cachePath, idx); err != nil {
		a.log.Warn("could not write index cache", "err", err)
	}
	return idx, nil
}

// compile compiles the model at path, printing every issue. Warnings do not
// stop compilation unless strict mode is on.
func (a *app) compile(path string) (*index.Index, error) {
	idx, issues, err := index.CompileFile(path, a.compileOptions()...)
	_ = a.events.Record(telemetry.KindCompile, "", map[string]any{"model": path, "issues": len(issues), "ok": err == nil})
	if len(issues) > 0 {
		a.printer.Issues(issues)
	}
	if err != nil {
		if errors.Is(err, index.ErrInvalidModel) {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return nil, err
	}
	return idx, nil
}

// loadEngine compiles the model and wraps it in a query engine.
func (a *app) loadEngine(args []string) (*engine.Engine, error) {
	idx, err := a.loadIndex(a.modelPath(args))
	if err != nil {
		return nil, err
	}
	return engine.New(idx), nil
}

// selection resolves refs into a Set, warning about unknown references.
func (a *app) selection(eng *engine.Engine, refs []string) *engine.Set {
	sel, unknown := eng.NewSelection(refs...)
	for _, ref := range unknown {
		a.printer.Warn(fmt.Sprintf("ignoring unknown skill %q", ref))
	}
	return sel
}
