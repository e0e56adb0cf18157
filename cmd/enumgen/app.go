package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/c360studio/enumset"
	"github.com/c360studio/enumset/config"
	"github.com/c360studio/enumset/decl"
	"github.com/c360studio/enumset/gen"
)

// options holds the command line flags and arguments.
type options struct {
	configPath string
	out        string
	pkg        string
	logLevel   string
	strict     bool
	strictSet  bool
	watch      bool
	patterns   []string
}

// resolveConfig loads the layered configuration and applies flag
// overrides on top.
func resolveConfig(opts *options) (*config.Config, error) {
	cfg, err := config.NewLoader(nil).Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if len(opts.patterns) > 0 {
		cfg.Patterns = opts.patterns
	}
	if opts.out != "" {
		cfg.Out = opts.out
	}
	if opts.pkg != "" {
		cfg.Package = opts.pkg
	}
	if opts.strictSet {
		cfg.Strict = opts.strict
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// newLogger builds the process logger for the given level.
func newLogger(logLevel string) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func runGenerate(opts *options) error {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	if opts.watch {
		return runWatch(cfg, logger)
	}

	_, err = generateAll(cfg, logger)
	return err
}

// generateAll discovers, builds and writes every declaration matched by
// the configured patterns. It returns the generated file paths.
func generateAll(cfg *config.Config, logger *slog.Logger) ([]string, error) {
	paths, err := decl.Discover(cfg.Patterns...)
	if err != nil {
		return nil, err
	}

	g := gen.New(gen.Config{Package: cfg.Package, Logger: logger})

	var generated []string
	for _, path := range paths {
		f, err := decl.Load(path)
		if err != nil {
			return nil, err
		}

		var warnings []enumset.Redeclaration
		sets, err := f.Build(
			decl.WithLogger(logger),
			decl.WithWarnFunc(func(r enumset.Redeclaration) {
				warnings = append(warnings, r)
				logWarning(logger, r)
			}),
		)
		if err != nil {
			return nil, err
		}
		if cfg.Strict && len(warnings) > 0 {
			return nil, fmt.Errorf("%s: %d duplicate member declarations in strict mode", path, len(warnings))
		}

		outPath, err := g.Write(f, sets, cfg.Out)
		if err != nil {
			return nil, err
		}
		generated = append(generated, outPath)
	}

	logger.Info("generation complete",
		slog.Int("declarations", len(paths)),
		slog.Int("generated", len(generated)))
	return generated, nil
}

func logWarning(logger *slog.Logger, r enumset.Redeclaration) {
	logger.Warn("duplicate member declaration",
		slog.String("set", r.Set),
		slog.String("key", r.Key),
		slog.String("value", r.Value),
		slog.String("file", r.File),
		slog.Int("line", r.Line))
}

// runWatch regenerates on declaration file changes until interrupted.
func runWatch(cfg *config.Config, logger *slog.Logger) error {
	if _, err := generateAll(cfg, logger); err != nil {
		logger.Error("initial generation failed", slog.String("error", err.Error()))
	}

	w, err := decl.NewWatcher(decl.WatcherConfig{
		Roots:  watchRoots(cfg.Patterns),
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("watch stopped")
			return nil
		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			logger.Info("declaration changed",
				slog.String("path", ev.Path),
				slog.String("op", string(ev.Op)))
			if ev.Op == decl.OpDelete {
				removeGenerated(cfg, ev.Path, logger)
				continue
			}
			if _, err := generateAll(cfg, logger); err != nil {
				logger.Error("generation failed", slog.String("error", err.Error()))
			}
		}
	}
}

// watchRoots derives the directories to watch from the configured
// patterns: everything up to the first glob metacharacter.
func watchRoots(patterns []string) []string {
	seen := make(map[string]struct{})
	var roots []string
	for _, p := range patterns {
		root := p
		if strings.ContainsAny(p, "*?[{") {
			base, _ := doublestar.SplitPattern(filepath.ToSlash(p))
			root = filepath.FromSlash(base)
		}
		if info, err := os.Stat(root); err == nil && !info.IsDir() {
			root = filepath.Dir(root)
		}
		if _, ok := seen[root]; ok {
			continue
		}
		seen[root] = struct{}{}
		roots = append(roots, root)
	}
	if len(roots) == 0 {
		roots = []string{"."}
	}
	return roots
}

// removeGenerated deletes the generated counterpart of a removed
// declaration file.
func removeGenerated(cfg *config.Config, declPath string, logger *slog.Logger) {
	outPath := filepath.Join(cfg.Out, gen.Filename(declPath))
	if err := os.Remove(outPath); err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("remove generated file failed",
				slog.String("path", outPath),
				slog.String("error", err.Error()))
		}
		return
	}
	logger.Info("removed generated file", slog.String("path", outPath))
}

func runValidate(opts *options) error {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	paths, err := decl.Discover(cfg.Patterns...)
	if err != nil {
		return err
	}

	res, verr := decl.Validate(paths, logger)
	for _, r := range res.Warnings {
		fmt.Printf("warning: %s:%d: duplicate declaration of %s::%s\n", r.File, r.Line, r.Set, r.Key)
	}
	fmt.Printf("validated %d files: %d sets, %d members, %d warnings\n",
		res.Files, res.Sets, res.Members, len(res.Warnings))

	if verr != nil {
		return verr
	}
	if cfg.Strict && len(res.Warnings) > 0 {
		return fmt.Errorf("strict mode: %d duplicate member declarations", len(res.Warnings))
	}

	fmt.Println("✓ Declarations valid")
	return nil
}

func runInit(opts *options) error {
	logLevel := opts.logLevel
	if logLevel == "" {
		logLevel = "info"
	}
	logger := newLogger(logLevel)
	slog.SetDefault(logger)

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	_, err = config.NewLoader(logger).EnsureProjectConfig(cwd)
	return err
}
