package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/gowork/internal/build"
	"git.home.luguber.info/inful/gowork/internal/config"
	apperrors "git.home.luguber.info/inful/gowork/internal/errors"
	"git.home.luguber.info/inful/gowork/internal/logfields"
	"git.home.luguber.info/inful/gowork/internal/toolrunner"
	"git.home.luguber.info/inful/gowork/internal/version"
	"git.home.luguber.info/inful/gowork/internal/watch"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path (default: gowork.yaml located upward from the working directory)"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`
	Debug   bool   `help:"Include source positions in log output"`

	Build    struct{} `cmd:"" help:"Compile all project packages into the workspace"`
	Binaries struct{} `cmd:"" help:"Build one binary per commands-root subdirectory"`
	Test     struct{} `cmd:"" help:"Run the toolchain test action over all packages"`
	Lint     struct{} `cmd:"" help:"Lint all packages at the configured confidence threshold"`
	Fmt      struct{} `cmd:"" help:"Format all source files in place"`
	Clean    struct{} `cmd:"" help:"Remove the workspace overlay"`
	Env      struct{} `cmd:"" help:"Print the workspace environment overrides"`
	Watch    struct{} `cmd:"" help:"Rebuild whenever project source changes"`
	Version  struct{} `cmd:"" help:"Print version information"`
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// Passthrough is checked before any argument parsing: a recognized
	// direct-tool name forwards every remaining token verbatim.
	if len(args) > 0 && isDirectTool(args[0]) {
		setupLogging(false, false)
		return runPassthrough(args)
	}

	parser, err := newParser()
	if err != nil {
		panic(err)
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gowork: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'gowork --help' for usage.")
		return 1
	}

	setupLogging(CLI.Verbose, CLI.Debug)

	adapter := apperrors.NewCLIErrorAdapter(CLI.Verbose, nil)
	if err := dispatch(kctx.Command()); err != nil {
		adapter.LogError(err)
		fmt.Fprintln(os.Stderr, adapter.FormatError(err))
		return adapter.ExitCodeFor(err)
	}
	return 0
}

func newParser() (*kong.Kong, error) {
	return kong.New(&CLI,
		kong.Name("gowork"),
		kong.Description("Prepare a GOPATH workspace overlay and drive the toolchain through it."),
		kong.UsageOnError())
}

func dispatch(command string) error {
	if command == "version" {
		fmt.Println(version.String())
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	svc := build.NewService(cfg, toolrunner.NewExecRunner())

	switch command {
	case "build":
		return svc.Build(ctx)
	case "binaries":
		outputs, err := svc.Binaries(ctx)
		if err != nil {
			return err
		}
		for _, output := range outputs {
			slog.Info("Built binary", logfields.Path(output))
		}
		return nil
	case "test":
		return svc.Test(ctx)
	case "lint":
		return svc.Lint(ctx)
	case "fmt":
		return svc.Fmt(ctx)
	case "clean":
		return svc.Clean()
	case "env":
		for _, pair := range svc.EnvInfo().Pairs() {
			fmt.Println(pair)
		}
		return nil
	case "watch":
		return runWatch(ctx, cfg)
	default:
		return apperrors.NoActionSelected()
	}
}

// runPassthrough forwards raw tokens to the tool runner with the workspace
// prepared, without interpreting any of them.
func runPassthrough(args []string) int {
	adapter := apperrors.NewCLIErrorAdapter(false, nil)

	cfg, err := loadConfig()
	if err == nil {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		err = build.NewService(cfg, toolrunner.NewExecRunner()).Passthrough(ctx, args)
	}
	if err != nil {
		adapter.LogError(err)
		fmt.Fprintln(os.Stderr, adapter.FormatError(err))
		return adapter.ExitCodeFor(err)
	}
	return 0
}

// runWatch performs one initial build and then rebuilds on source changes.
// Each rebuild gets a fresh service so ensure-operations re-verify the
// overlay instead of trusting a stale memoization scope.
func runWatch(ctx context.Context, cfg *config.Config) error {
	runner := toolrunner.NewExecRunner()

	if err := build.NewService(cfg, runner).Build(ctx); err != nil {
		slog.Error("Initial build failed", logfields.Error(err))
	}

	watcher, err := watch.New(cfg, func(ctx context.Context, runID string) error {
		return build.NewService(cfg, runner).Build(ctx)
	})
	if err != nil {
		return err
	}
	return watcher.Run(ctx)
}

// loadConfig resolves the configuration file from the --config flag or by
// searching upward from the working directory.
func loadConfig() (*config.Config, error) {
	path := CLI.Config
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, apperrors.WorkspaceError("resolve working directory", err)
		}
		path = config.Locate(cwd)
		if path == "" {
			return nil, apperrors.ConfigNotFound(config.FileName)
		}
	}
	return config.Load(path)
}

// isDirectTool consults the project configuration when present, falling back
// to the fixed default set.
func isDirectTool(name string) bool {
	if cwd, err := os.Getwd(); err == nil {
		if path := config.Locate(cwd); path != "" {
			if cfg, err := config.Load(path); err == nil {
				return cfg.IsDirectTool(name)
			}
		}
	}
	for _, tool := range config.DefaultDirectTools {
		if tool == name {
			return true
		}
	}
	return false
}

func setupLogging(verbose, debug bool) {
	level := slog.LevelInfo
	if verbose || debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	}))
	slog.SetDefault(logger)
}
