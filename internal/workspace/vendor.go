package workspace

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "git.home.luguber.info/inful/gowork/internal/errors"
	"git.home.luguber.info/inful/gowork/internal/logfields"
	"git.home.luguber.info/inful/gowork/internal/memo"
	"git.home.luguber.info/inful/gowork/internal/toolrunner"
)

// EnsureVendor materializes the vendored dependency tree. When the vendor
// directory inside the project is absent, the configured dependency tool runs
// exactly once per process (guarded by the cache). Afterwards, and regardless
// of whether anything was just created, the ancestor-level src/vendor link is
// ensured so arbitrarily deep sub-packages resolve vendored imports during
// compilation. A failed dependency tool run is fatal; the partially populated
// vendor tree is left in place for inspection or manual cleanup.
func (m *Manager) EnsureVendor(ctx context.Context) (string, error) {
	vendorPath := filepath.Join(m.layout.ProjectRoot, vendorDirName)

	_, err := memo.Do(m.cache, memo.Key("vendor"), func() (string, error) {
		if _, err := os.Stat(vendorPath); err == nil {
			slog.Debug("Vendor directory already present", logfields.Path(vendorPath))
			return vendorPath, nil
		} else if !os.IsNotExist(err) {
			return "", apperrors.WorkspaceError("stat vendor", err)
		}

		linkDir, err := m.EnsureProjectLink()
		if err != nil {
			return "", err
		}
		root, err := m.EnsureRoot()
		if err != nil {
			return "", err
		}

		slog.Info("Materializing vendor directory", logfields.Command(m.vendorArgv))
		cmd := toolrunner.Command{Argv: m.vendorArgv, Dir: linkDir, Gopath: root}
		if err := m.runner.Run(ctx, cmd); err != nil {
			return "", apperrors.VendorError(err)
		}
		return vendorPath, nil
	})
	if err != nil {
		return "", err
	}

	if _, err := m.EnsureLink(vendorDirName, vendorPath); err != nil {
		return "", err
	}
	return vendorPath, nil
}
