package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"github.com/docopt/docopt-go"

	"github.com/robbyt/go-intercept"
	"github.com/robbyt/go-intercept/cmd/intercept-demo/internal/config"
	"github.com/robbyt/go-intercept/platform"
)

const usage = `intercept-demo

Runs the reference delegation scenario against a chosen delegate
backend. The scripted backends implement the interception policies on
the foreign side of the boundary.

Usage:
  intercept-demo [--config=FILE] [--backend=NAME] [--script=FILE] [--value=STRING] [--debug]
  intercept-demo -h

Options:
  -f, --config=FILE    Path to a YAML config file. [default: intercept-demo.yaml]
  -b, --backend=NAME   Delegate backend: recording, starlark, or risor.
  -s, --script=FILE    Script file for the scripted backends.
  -v, --value=STRING   String state held by the second relay.
  -d, --debug          Enable debug logging.
  -h, --help           Display this help.
`

//go:embed testdata/delegate.star
var defaultStarlarkScript string

//go:embed testdata/delegate.risor
var defaultRisorScript string

// delegate is the observable surface shared by every backend.
type delegate interface {
	platform.Delegate
	Counter() int
	LastString() string
}

func newDelegate(cfg *config.Config, handler slog.Handler) (delegate, error) {
	switch cfg.Backend {
	case config.BackendRecording:
		return intercept.NewRecordingDelegate(handler), nil
	case config.BackendStarlark:
		source, err := loadScript(cfg.Script, defaultStarlarkScript)
		if err != nil {
			return nil, err
		}
		return intercept.FromStarlarkString(source, handler)
	case config.BackendRisor:
		source, err := loadScript(cfg.Script, defaultRisorScript)
		if err != nil {
			return nil, err
		}
		return intercept.FromRisorString(source, handler)
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

func loadScript(path, fallback string) (string, error) {
	if path == "" {
		return fallback, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read script %s: %w", path, err)
	}
	return string(data), nil
}

func run(cfg *config.Config, handler slog.Handler) error {
	logger := slog.New(handler)

	d, err := newDelegate(cfg, handler)
	if err != nil {
		return err
	}

	a := intercept.NewRelay(d)
	b := intercept.NewRelayFromString(cfg.Value, d)

	logger.Info("lengths through withReturn",
		"backend", cfg.Backend, "a", a.Length(), "b", b.Length())
	logger.Info("counts through withCounter",
		"first", a.Count(), "second", a.Count(), "third", b.Count())

	b.Save("meta-syntactic variable values")
	logger.Info("state after stringSaver",
		"lastString", d.LastString(), "counter", d.Counter())

	fmt.Printf("backend=%s counter=%d lastString=%q\n",
		cfg.Backend, d.Counter(), d.LastString())
	return nil
}

func main() {
	opts, err := docopt.ParseDoc(usage)
	if err != nil {
		// Error in the usage doc. This should never happen.
		panic(err.Error())
	}

	configPath, _ := opts.String("--config")
	backend, _ := opts.String("--backend")
	script, _ := opts.String("--script")
	value, _ := opts.String("--value")
	debug, _ := opts.Bool("--debug")

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler)

	fileCfg, err := config.LoadOptional(configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	cfg, err := fileCfg.Resolve(backend, script, value)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := run(cfg, handler); err != nil {
		logger.Error("demo failed", "error", err)
		os.Exit(1)
	}
}
