package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"git.home.luguber.info/inful/gowork/internal/config"
	"git.home.luguber.info/inful/gowork/internal/memo"
	"git.home.luguber.info/inful/gowork/internal/toolrunner"
)

// spyRunner records every command and optionally reacts to each run.
type spyRunner struct {
	commands []toolrunner.Command
	onRun    func(toolrunner.Command) error
}

func (s *spyRunner) Run(_ context.Context, cmd toolrunner.Command) error {
	s.commands = append(s.commands, cmd)
	if s.onRun != nil {
		return s.onRun(cmd)
	}
	return nil
}

func newTestManager(t *testing.T) (*Manager, *spyRunner) {
	t.Helper()
	cfg := config.Default(t.TempDir())
	cfg.ImportPath = "example.org/proj"
	runner := &spyRunner{}
	return NewManager(cfg, runner, memo.New()), runner
}

func TestEnsureAllCreatesSkeleton(t *testing.T) {
	mgr, _ := newTestManager(t)

	layout, err := mgr.EnsureAll()
	if err != nil {
		t.Fatalf("EnsureAll() failed: %v", err)
	}

	for _, dir := range []string{layout.Root, layout.Src, layout.Pkg, layout.Bin} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Errorf("expected directory %s: %v", dir, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("expected %s to be a directory", dir)
		}
	}

	// Second run is a no-op returning identical paths.
	again, err := mgr.EnsureAll()
	if err != nil {
		t.Fatalf("second EnsureAll() failed: %v", err)
	}
	if again != layout {
		t.Errorf("EnsureAll() not stable: %+v vs %+v", again, layout)
	}
}

func TestEnsureDirMemoizedWithinRun(t *testing.T) {
	mgr, _ := newTestManager(t)

	root, err := mgr.EnsureRoot()
	if err != nil {
		t.Fatalf("EnsureRoot() failed: %v", err)
	}

	// Remove the directory behind the manager's back; a memoized second call
	// must not recreate it (at most one creation side effect per run).
	if err := os.RemoveAll(root); err != nil {
		t.Fatalf("failed to remove root: %v", err)
	}

	again, err := mgr.EnsureRoot()
	if err != nil {
		t.Fatalf("second EnsureRoot() failed: %v", err)
	}
	if again != root {
		t.Errorf("memoized path changed: %s vs %s", again, root)
	}
	if _, err := os.Stat(root); !os.IsNotExist(err) {
		t.Error("memoized EnsureRoot() should not have recreated the directory")
	}
}

func TestCleanRemovesOnlyWorkspace(t *testing.T) {
	mgr, _ := newTestManager(t)
	layout, err := mgr.EnsureAll()
	if err != nil {
		t.Fatalf("EnsureAll() failed: %v", err)
	}

	marker := filepath.Join(layout.ProjectRoot, "main.go")
	if err := os.WriteFile(marker, []byte("package main\n"), 0o600); err != nil {
		t.Fatalf("failed to write marker: %v", err)
	}

	if err := mgr.Clean(); err != nil {
		t.Fatalf("Clean() failed: %v", err)
	}

	if _, err := os.Stat(layout.Root); !os.IsNotExist(err) {
		t.Error("workspace root should be gone after Clean()")
	}
	if _, err := os.Stat(marker); err != nil {
		t.Errorf("project file should survive Clean(): %v", err)
	}
}
