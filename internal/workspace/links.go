package workspace

import (
	"log/slog"
	"os"
	"path/filepath"

	apperrors "git.home.luguber.info/inful/gowork/internal/errors"
	"git.home.luguber.info/inful/gowork/internal/logfields"
	"git.home.luguber.info/inful/gowork/internal/memo"
)

// EnsureLink projects a logical import path onto a physical directory by
// creating a symbolic link under the source root. The link is created only
// when no filesystem entry exists at the location; an existing entry is left
// untouched (its target is not verified). Returns the absolute path at which
// the logical path resolves either way.
func (m *Manager) EnsureLink(logical, target string) (string, error) {
	return memo.Do(m.cache, memo.Key("link", logical, target), func() (string, error) {
		src, err := m.EnsureSrc()
		if err != nil {
			return "", err
		}

		linkPath := filepath.Join(src, filepath.FromSlash(logical))
		if err := os.MkdirAll(filepath.Dir(linkPath), 0o750); err != nil {
			return "", apperrors.WorkspaceError("create link parent", err)
		}

		if _, err := os.Lstat(linkPath); os.IsNotExist(err) {
			if err := os.Symlink(target, linkPath); err != nil && !os.IsExist(err) {
				// A concurrent run winning the creation race is a benign
				// no-op; anything else is fatal.
				return "", apperrors.LinkError(logical, target, err)
			}
			slog.Debug("Created workspace link",
				logfields.ImportPath(logical),
				logfields.Target(target))
		}

		return linkPath, nil
	})
}

// EnsureProjectLink exposes the project at its declared logical import path
// inside the workspace source root and returns the linked location.
func (m *Manager) EnsureProjectLink() (string, error) {
	return m.EnsureLink(m.importPath, m.layout.ProjectRoot)
}
