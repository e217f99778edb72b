package workspace

import (
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/gowork/internal/config"
	apperrors "git.home.luguber.info/inful/gowork/internal/errors"
	"git.home.luguber.info/inful/gowork/internal/logfields"
	"git.home.luguber.info/inful/gowork/internal/memo"
	"git.home.luguber.info/inful/gowork/internal/toolrunner"
)

const (
	workspaceDirName = ".gopath"
	srcDirName       = "src"
	pkgDirName       = "pkg"
	binDirName       = "bin"
	vendorDirName    = "vendor"
)

// Layout holds the fixed workspace paths derived from the project location.
type Layout struct {
	ProjectRoot string // real project directory
	Root        string // workspace root, exported as GOPATH
	Src         string // source root; links live under here
	Pkg         string // compiled-package root
	Bin         string // binary-output root
}

// NewLayout computes the workspace paths for a project. Nothing is created.
func NewLayout(projectRoot string) Layout {
	root := filepath.Join(projectRoot, workspaceDirName)
	return Layout{
		ProjectRoot: projectRoot,
		Root:        root,
		Src:         filepath.Join(root, srcDirName),
		Pkg:         filepath.Join(root, pkgDirName),
		Bin:         filepath.Join(root, binDirName),
	}
}

// Manager owns the workspace overlay: directories, links, and the vendor
// tree. All ensure operations share one memoization cache so each side
// effect happens at most once per run.
type Manager struct {
	layout     Layout
	importPath string
	vendorArgv []string
	runner     toolrunner.Runner
	cache      *memo.Cache
}

// NewManager creates a manager for the configured project. The cache is
// owned by the caller so discovery and the manager can share a run scope.
func NewManager(cfg *config.Config, runner toolrunner.Runner, cache *memo.Cache) *Manager {
	return &Manager{
		layout:     NewLayout(cfg.ProjectRoot()),
		importPath: cfg.ImportPath,
		vendorArgv: cfg.Tools.Vendor,
		runner:     runner,
		cache:      cache,
	}
}

// Layout returns the computed workspace paths.
func (m *Manager) Layout() Layout { return m.layout }

// EnsureRoot creates the workspace root directory if absent.
func (m *Manager) EnsureRoot() (string, error) {
	return m.ensureDir("root", m.layout.Root)
}

// EnsureSrc creates the source root directory if absent.
func (m *Manager) EnsureSrc() (string, error) {
	return m.ensureDir("src", m.layout.Src)
}

// EnsurePkg creates the compiled-package root directory if absent.
func (m *Manager) EnsurePkg() (string, error) {
	return m.ensureDir("pkg", m.layout.Pkg)
}

// EnsureBin creates the binary-output root directory if absent.
func (m *Manager) EnsureBin() (string, error) {
	return m.ensureDir("bin", m.layout.Bin)
}

// EnsureAll creates the full workspace directory skeleton.
func (m *Manager) EnsureAll() (Layout, error) {
	for _, ensure := range []func() (string, error){
		m.EnsureRoot, m.EnsureSrc, m.EnsurePkg, m.EnsureBin,
	} {
		if _, err := ensure(); err != nil {
			return Layout{}, err
		}
	}
	return m.layout, nil
}

func (m *Manager) ensureDir(op, path string) (string, error) {
	return memo.Do(m.cache, memo.Key("dir", op), func() (string, error) {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		if err := os.MkdirAll(path, 0o750); err != nil {
			return "", apperrors.WorkspaceError("create "+op, err)
		}
		slog.Debug("Created workspace directory", logfields.Path(path))
		return path, nil
	})
}

// Clean removes the workspace directory entirely. The overlay is re-derivable,
// so this never touches the real project tree: only the .gopath directory
// (whose src/ entries are links, not copies) is deleted.
func (m *Manager) Clean() error {
	if err := os.RemoveAll(m.layout.Root); err != nil {
		return apperrors.WorkspaceError("clean", err)
	}
	slog.Info("Removed workspace", logfields.Workspace(m.layout.Root))
	return nil
}
