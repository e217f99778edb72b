// Package gitinfo probes the project's git repository for the revision being
// built. The result feeds log output and, when configured, the -ldflags
// version stamp for binary builds.
package gitinfo

import (
	"errors"
	"fmt"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Revision describes the project's checked-out state.
type Revision struct {
	Commit string // full HEAD commit hash
	Dirty  bool   // uncommitted worktree changes present
}

// Short returns the abbreviated commit hash.
func (r *Revision) Short() string {
	if len(r.Commit) < 8 {
		return r.Commit
	}
	return r.Commit[:8]
}

// Stamp renders the revision as a version string: the full hash, suffixed
// with -dirty when the worktree has uncommitted changes.
func (r *Revision) Stamp() string {
	if r.Dirty {
		return r.Commit + "-dirty"
	}
	return r.Commit
}

// StampFlags builds the toolchain flags injecting the revision into the named
// package's GitCommit variable at link time.
func (r *Revision) StampFlags(pkg string) []string {
	return []string{"-ldflags", fmt.Sprintf("-X %s.GitCommit=%s", pkg, r.Stamp())}
}

// Probe inspects the project directory for a git repository. Projects that
// are not under git (or whose repository has no commits yet) yield a nil
// revision without error; version stamping simply has nothing to stamp.
func Probe(projectRoot string) (*Revision, error) {
	repo, err := git.PlainOpenWithOptions(projectRoot, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open project repository: %w", err)
	}

	head, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	rev := &Revision{Commit: head.Hash().String()}

	worktree, err := repo.Worktree()
	if err != nil {
		// Bare repository: no worktree to be dirty.
		return rev, nil
	}
	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to read worktree status: %w", err)
	}
	rev.Dirty = !status.IsClean()

	return rev, nil
}
