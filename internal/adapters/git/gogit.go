// Package git provides adapters for interacting with local Git repositories.
// This package implements the domain.LocalGitRepository interface using go-git/v5.
package git

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/psyomn/repolink/internal/domain"
)

// Logger defines the logging interface for the git adapter.
// This interface enables dependency injection and testability.
type Logger interface {
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
}

// GoGitRepository implements domain.LocalGitRepository using go-git/v5.
// It re-reads repository state on every call; nothing is cached across
// invocations.
type GoGitRepository struct {
	repo   *git.Repository
	root   string
	path   string
	logger Logger
}

// NewGoGitRepository discovers the repository containing the given directory,
// walking upward the way `git` itself does. Returns
// domain.ErrRepositoryNotFound if no repository is found, and
// domain.ErrBareRepository if the repository has no working directory.
func NewGoGitRepository(path string, log Logger) (*GoGitRepository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrRepositoryNotFound, path)
	}

	wt, err := repo.Worktree()
	if err != nil {
		if errors.Is(err, git.ErrIsBareRepository) {
			return nil, fmt.Errorf("%w: %s", domain.ErrBareRepository, path)
		}
		return nil, fmt.Errorf("failed to open worktree: %w", err)
	}

	root := wt.Filesystem.Root()
	if resolved, rerr := filepath.EvalSymlinks(root); rerr == nil {
		root = resolved
	}

	return &GoGitRepository{
		repo:   repo,
		root:   root,
		path:   path,
		logger: log,
	}, nil
}

// Head returns the current HEAD state. A branch checkout yields HeadBranch
// with the short branch name; a direct commit checkout yields HeadDetached;
// anything else (tag, remote-tracking, or notes reference) is classified so
// the resolver can reject it.
func (r *GoGitRepository) Head(ctx context.Context) (*domain.HeadState, error) {
	head, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to get HEAD: %w", err)
	}

	state := &domain.HeadState{Hash: head.Hash().String()}

	name := head.Name()
	switch {
	case name == plumbing.HEAD:
		state.Kind = domain.HeadDetached
	case name.IsBranch():
		state.Kind = domain.HeadBranch
		state.Name = name.Short()
		if !utf8.ValidString(state.Name) {
			return nil, fmt.Errorf("%w: branch name", domain.ErrInvalidEncoding)
		}
	case name.IsTag():
		state.Kind = domain.HeadTagRef
	case name.IsRemote():
		state.Kind = domain.HeadRemoteRef
	case name.IsNote():
		state.Kind = domain.HeadNote
	default:
		state.Kind = domain.HeadOther
	}

	r.logger.Debug(ctx, "read HEAD state", map[string]interface{}{
		"kind": state.Kind,
		"name": state.Name,
		"hash": state.Hash,
	})

	return state, nil
}

// Upstream returns the tracking shorthand ("remote/branch") configured for
// the given local branch. Returns domain.ErrNoUpstream when the branch has no
// upstream in the repository config.
func (r *GoGitRepository) Upstream(_ context.Context, branch string) (string, error) {
	cfg, err := r.repo.Config()
	if err != nil {
		return "", fmt.Errorf("failed to read repository config: %w", err)
	}

	b, ok := cfg.Branches[branch]
	if !ok || b.Remote == "" || b.Merge == "" {
		return "", fmt.Errorf("%w: %q", domain.ErrNoUpstream, branch)
	}

	shorthand := b.Remote + "/" + b.Merge.Short()
	if !utf8.ValidString(shorthand) {
		return "", fmt.Errorf("%w: upstream of %q", domain.ErrInvalidEncoding, branch)
	}

	return shorthand, nil
}

// References enumerates every hash reference in the repository, peeling
// annotated tags to the commits they target. References that do not resolve
// to a commit are skipped. Iteration order is go-git's enumeration order:
// deterministic for a fixed repository state, otherwise unspecified.
func (r *GoGitRepository) References(ctx context.Context) ([]domain.RefInfo, error) {
	iter, err := r.repo.References()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate references: %w", err)
	}
	defer iter.Close()

	var refs []domain.RefInfo
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		// Symbolic references (HEAD itself, origin/HEAD) carry no hash.
		if ref.Type() != plumbing.HashReference {
			return nil
		}

		hash, perr := r.peelToCommit(ref.Hash())
		if perr != nil {
			r.logger.Debug(ctx, "skipping unresolvable reference", map[string]interface{}{
				"ref":   ref.Name().String(),
				"error": perr.Error(),
			})
			return nil
		}

		short := ref.Name().Short()
		if !utf8.ValidString(short) {
			return fmt.Errorf("%w: reference %s", domain.ErrInvalidEncoding, ref.Name())
		}

		refs = append(refs, domain.RefInfo{
			Shorthand: short,
			Hash:      hash.String(),
			IsBranch:  ref.Name().IsBranch(),
			IsRemote:  ref.Name().IsRemote(),
			IsTag:     ref.Name().IsTag(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk references: %w", err)
	}

	return refs, nil
}

// peelToCommit resolves a reference hash to the commit it ultimately targets,
// following one level of annotated tag.
func (r *GoGitRepository) peelToCommit(hash plumbing.Hash) (plumbing.Hash, error) {
	if tag, err := r.repo.TagObject(hash); err == nil {
		commit, cerr := tag.Commit()
		if cerr != nil {
			return plumbing.ZeroHash, cerr
		}
		return commit.Hash, nil
	}

	if _, err := r.repo.CommitObject(hash); err != nil {
		return plumbing.ZeroHash, err
	}
	return hash, nil
}

// RemoteURL returns the first URL configured for the named remote.
func (r *GoGitRepository) RemoteURL(ctx context.Context, name string) (string, error) {
	remote, err := r.repo.Remote(name)
	if err != nil {
		return "", fmt.Errorf("%w: %q", domain.ErrRemoteNotFound, name)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("%w: remote %q has no URLs configured", domain.ErrRemoteNotFound, name)
	}

	if !utf8.ValidString(urls[0]) {
		return "", fmt.Errorf("%w: URL of remote %q", domain.ErrInvalidEncoding, name)
	}

	r.logger.Debug(ctx, "read remote URL", map[string]interface{}{
		"remote": name,
		"url":    urls[0],
	})

	return urls[0], nil
}

// RelativeToRoot translates a file path into a slash-separated path relative
// to the repository root.
func (r *GoGitRepository) RelativeToRoot(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to absolutize %q: %w", path, err)
	}
	if resolved, rerr := filepath.EvalSymlinks(abs); rerr == nil {
		abs = resolved
	}

	rel, err := filepath.Rel(r.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", domain.ErrPathOutsideRepository, path)
	}

	return filepath.ToSlash(rel), nil
}

// Close releases any resources held by the repository.
// For go-git, this is a no-op as the repository doesn't hold persistent resources.
func (r *GoGitRepository) Close() error {
	return nil
}
