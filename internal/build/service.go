// Package build provides the canonical action layer for gowork. All
// execution paths (CLI, watch mode, tests) route through Service: each action
// prepares the workspace overlay it needs, then hands an argument list to the
// tool runner. Actions are strictly sequential; nothing overlaps and nothing
// is retried.
package build

import (
	"context"
	"log/slog"
	"path/filepath"
	"strconv"
	"time"

	"git.home.luguber.info/inful/gowork/internal/config"
	"git.home.luguber.info/inful/gowork/internal/discovery"
	"git.home.luguber.info/inful/gowork/internal/gitinfo"
	"git.home.luguber.info/inful/gowork/internal/logfields"
	"git.home.luguber.info/inful/gowork/internal/memo"
	"git.home.luguber.info/inful/gowork/internal/toolrunner"
	"git.home.luguber.info/inful/gowork/internal/workspace"
)

// Service wires the workspace manager, discovery, and tool runner into the
// named actions the CLI dispatches to.
type Service struct {
	cfg    *config.Config
	ws     *workspace.Manager
	disc   *discovery.Discovery
	runner toolrunner.Runner
}

// NewService creates a service for one run. The memoization cache is created
// here and shared between the workspace manager and discovery, scoping every
// ensure-operation and filesystem walk to this run.
func NewService(cfg *config.Config, runner toolrunner.Runner) *Service {
	cache := memo.New()
	return &Service{
		cfg:    cfg,
		ws:     workspace.NewManager(cfg, runner, cache),
		disc:   discovery.New(cfg, cache),
		runner: runner,
	}
}

// Workspace exposes the workspace manager (used by the clean and env actions).
func (s *Service) Workspace() *workspace.Manager { return s.ws }

// prepare ensures the workspace skeleton and the project link, returning the
// project's linked location. Every action that invokes the toolchain calls
// this first; repeated calls are no-ops through the shared cache.
func (s *Service) prepare() (string, error) {
	if _, err := s.ws.EnsureAll(); err != nil {
		return "", err
	}
	return s.ws.EnsureProjectLink()
}

// command assembles a runner invocation rooted at the linked project dir.
func (s *Service) command(linkDir string, argv []string) toolrunner.Command {
	return toolrunner.Command{
		Argv:   argv,
		Dir:    linkDir,
		Gopath: s.ws.Layout().Root,
	}
}

// Build compiles every discovered package into the workspace: vendor is
// materialized first, then the toolchain installs all package import paths.
func (s *Service) Build(ctx context.Context) error {
	start := time.Now()

	linkDir, err := s.prepare()
	if err != nil {
		return err
	}
	if _, err := s.ws.EnsureVendor(ctx); err != nil {
		return err
	}

	packages, err := s.disc.PackagePaths()
	if err != nil {
		return err
	}
	if len(packages) == 0 {
		slog.Warn("No packages found to build", logfields.Path(s.cfg.ProjectRoot()))
		return nil
	}

	s.logRevision()
	argv := append([]string{s.cfg.Tools.Go, "install"}, packages...)
	if err := s.runner.Run(ctx, s.command(linkDir, argv)); err != nil {
		return err
	}

	slog.Info("Build completed",
		logfields.Packages(len(packages)),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	return nil
}

// Binaries builds one binary per commands-root subdirectory, in sorted order,
// collecting each output under the workspace binary root. Returns the output
// paths in build order.
func (s *Service) Binaries(ctx context.Context) ([]string, error) {
	linkDir, err := s.prepare()
	if err != nil {
		return nil, err
	}
	if _, err := s.ws.EnsureVendor(ctx); err != nil {
		return nil, err
	}

	names, err := s.disc.CommandDirs()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		slog.Warn("No command directories found", logfields.Path(s.cfg.ProjectRoot()))
		return nil, nil
	}

	stamp := s.stampFlags()

	outputs := make([]string, 0, len(names))
	for _, name := range names {
		output := filepath.Join(s.ws.Layout().Bin, name)
		target := s.cfg.ImportPath + "/" + s.cfg.CommandsDir + "/" + name

		argv := []string{s.cfg.Tools.Go, "build"}
		argv = append(argv, stamp...)
		argv = append(argv, "-o", output, target)

		if err := s.runner.Run(ctx, s.command(linkDir, argv)); err != nil {
			return nil, err
		}
		outputs = append(outputs, output)
	}

	slog.Info("Binaries built", logfields.Files(len(outputs)), logfields.Path(s.ws.Layout().Bin))
	return outputs, nil
}

// Test runs the toolchain test action over every discovered package.
func (s *Service) Test(ctx context.Context) error {
	linkDir, err := s.prepare()
	if err != nil {
		return err
	}
	packages, err := s.disc.PackagePaths()
	if err != nil {
		return err
	}
	if len(packages) == 0 {
		slog.Warn("No packages found to test")
		return nil
	}

	argv := append([]string{s.cfg.Tools.Go, "test"}, packages...)
	return s.runner.Run(ctx, s.command(linkDir, argv))
}

// Lint runs the linter over every discovered package at the configured
// confidence threshold.
func (s *Service) Lint(ctx context.Context) error {
	linkDir, err := s.prepare()
	if err != nil {
		return err
	}
	packages, err := s.disc.PackagePaths()
	if err != nil {
		return err
	}
	if len(packages) == 0 {
		slog.Warn("No packages found to lint")
		return nil
	}

	argv := []string{
		s.cfg.Tools.Lint,
		"-min_confidence", strconv.FormatFloat(s.cfg.Lint.MinConfidence, 'g', -1, 64),
	}
	argv = append(argv, packages...)
	return s.runner.Run(ctx, s.command(linkDir, argv))
}

// Fmt rewrites every discovered source file in place with simplification,
// listing the files it touches.
func (s *Service) Fmt(ctx context.Context) error {
	linkDir, err := s.prepare()
	if err != nil {
		return err
	}
	files, err := s.disc.SourceFiles()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		slog.Warn("No source files found to format")
		return nil
	}

	argv := append([]string{s.cfg.Tools.Fmt, "-s", "-l", "-w"}, files...)
	return s.runner.Run(ctx, s.command(linkDir, argv))
}

// Passthrough forwards raw argument tokens verbatim to the tool runner, after
// preparing the workspace so the tool sees the same environment the named
// actions do. Nothing in argv is interpreted.
func (s *Service) Passthrough(ctx context.Context, argv []string) error {
	linkDir, err := s.prepare()
	if err != nil {
		return err
	}
	return s.runner.Run(ctx, s.command(linkDir, argv))
}

// Clean removes the workspace overlay entirely.
func (s *Service) Clean() error {
	return s.ws.Clean()
}

// stampFlags returns the -ldflags injection for binary builds, or nil when
// stamping is unconfigured or the project has no usable revision.
func (s *Service) stampFlags() []string {
	if s.cfg.Stamp == nil {
		return nil
	}
	rev, err := gitinfo.Probe(s.cfg.ProjectRoot())
	if err != nil {
		slog.Warn("Failed to probe project revision", logfields.Error(err))
		return nil
	}
	if rev == nil {
		return nil
	}
	return rev.StampFlags(s.cfg.Stamp.Package)
}

// logRevision records which revision a build ran against, when known.
func (s *Service) logRevision() {
	rev, err := gitinfo.Probe(s.cfg.ProjectRoot())
	if err != nil || rev == nil {
		return
	}
	slog.Debug("Building project revision",
		slog.String("commit", rev.Short()),
		slog.Bool("dirty", rev.Dirty))
}
