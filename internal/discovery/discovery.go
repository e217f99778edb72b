// Package discovery walks the project tree to enumerate compilable packages
// and source files. Results are sorted and duplicate-free so toolchain
// invocation order is reproducible across runs and platforms; nothing is
// persisted, the filesystem is re-walked on every process run.
package discovery

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/gowork/internal/config"
	apperrors "git.home.luguber.info/inful/gowork/internal/errors"
	"git.home.luguber.info/inful/gowork/internal/logfields"
	"git.home.luguber.info/inful/gowork/internal/memo"
)

// Discovery enumerates packages and sources for one project.
type Discovery struct {
	projectRoot string
	packageRoot string
	commandRoot string
	importPath  string
	suffix      string
	cache       *memo.Cache
}

// New creates a discovery instance for the configured project. The cache
// scopes the walk to once per run.
func New(cfg *config.Config, cache *memo.Cache) *Discovery {
	return &Discovery{
		projectRoot: cfg.ProjectRoot(),
		packageRoot: filepath.Join(cfg.ProjectRoot(), cfg.PackageDir),
		commandRoot: filepath.Join(cfg.ProjectRoot(), cfg.CommandsDir),
		importPath:  cfg.ImportPath,
		suffix:      cfg.SourceSuffix,
		cache:       cache,
	}
}

// PackagePaths returns one logical import path per directory under the
// package root containing at least one source file, sorted lexicographically.
func (d *Discovery) PackagePaths() ([]string, error) {
	return memo.Do(d.cache, memo.Key("discover-packages"), d.walkPackages)
}

// SourceFiles returns every absolute source file path under the package root,
// sorted lexicographically. Used by the format action.
func (d *Discovery) SourceFiles() ([]string, error) {
	return memo.Do(d.cache, memo.Key("discover-sources"), d.walkSources)
}

// CommandDirs returns the names of the subdirectories of the commands root,
// sorted, one binary target per entry.
func (d *Discovery) CommandDirs() ([]string, error) {
	return memo.Do(d.cache, memo.Key("discover-commands"), func() ([]string, error) {
		entries, err := os.ReadDir(d.commandRoot)
		if os.IsNotExist(err) {
			return nil, nil
		}
		if err != nil {
			return nil, apperrors.DiscoveryError(err)
		}
		var names []string
		for _, entry := range entries {
			if entry.IsDir() {
				names = append(names, entry.Name())
			}
		}
		sort.Strings(names)
		return names, nil
	})
}

func (d *Discovery) walkPackages() ([]string, error) {
	seen := make(map[string]struct{})

	err := d.walk(func(path string) error {
		rel, err := filepath.Rel(d.projectRoot, filepath.Dir(path))
		if err != nil {
			return err
		}
		seen[d.importPath+"/"+filepath.ToSlash(rel)] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	slog.Debug("Discovered packages", logfields.Packages(len(paths)), logfields.Path(d.packageRoot))
	return paths, nil
}

func (d *Discovery) walkSources() ([]string, error) {
	var files []string

	err := d.walk(func(path string) error {
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	slog.Debug("Discovered source files", logfields.Files(len(files)))
	return files, nil
}

// walk visits every source file under the package root. A missing package
// root yields an empty result, not an error.
func (d *Discovery) walk(visit func(path string) error) error {
	if _, err := os.Stat(d.packageRoot); os.IsNotExist(err) {
		slog.Debug("Package root does not exist", logfields.Path(d.packageRoot))
		return nil
	}

	err := filepath.WalkDir(d.packageRoot, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), d.suffix) {
			return nil
		}
		return visit(path)
	})
	if err != nil {
		return apperrors.DiscoveryError(err)
	}
	return nil
}
