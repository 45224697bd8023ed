// Package usecases contains the application business logic.
// This package orchestrates domain entities and interfaces to fulfill use cases.
package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/psyomn/repolink/internal/domain"
	"github.com/psyomn/repolink/internal/hosting"
)

// Logger defines the logging interface required by the resolver.
// This abstracts the logger dependency to avoid coupling to a specific implementation.
type Logger interface {
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, err error, fields map[string]interface{})
}

// LinkResolver resolves permalinks from local Git repository state.
// It classifies HEAD as a tracked branch, a tag, or a bare commit, and
// synthesizes the hosting-service URL for that classification.
type LinkResolver struct {
	repo   domain.LocalGitRepository
	parser domain.RemoteURLParser
	logger Logger
}

// NewLinkResolver creates a new LinkResolver with the given dependencies.
func NewLinkResolver(
	repo domain.LocalGitRepository,
	parser domain.RemoteURLParser,
	log Logger,
) *LinkResolver {
	return &LinkResolver{
		repo:   repo,
		parser: parser,
		logger: log,
	}
}

// Resolve produces the permalink for the current repository state.
//
// It translates the file path to be repository-relative, resolves HEAD to a
// GitReference, reads and parses the requested remote's URL, and hands
// everything to the link synthesizer. Every failure is terminal and reported
// as-is; there are no partial results.
func (r *LinkResolver) Resolve(ctx context.Context, input domain.LinkInput) (*domain.LinkOutput, error) {
	remote := input.RemoteName
	if remote == "" {
		remote = domain.DefaultRemoteName
	}

	r.logger.Info(ctx, "starting link resolution", map[string]interface{}{
		"remote": remote,
		"file":   input.FilePath,
	})

	relPath, err := r.repo.RelativeToRoot(input.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to relativize file path: %w", err)
	}

	ref, err := r.resolveReference(ctx, remote)
	if err != nil {
		return nil, err
	}

	r.logger.Debug(ctx, "resolved reference", map[string]interface{}{
		"kind": ref.Kind,
		"name": ref.Name,
	})

	rawURL, err := r.repo.RemoteURL(ctx, remote)
	if err != nil {
		return nil, fmt.Errorf("failed to read URL of remote %q: %w", remote, err)
	}

	parsed, err := r.parser.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL of remote %q: %w", remote, err)
	}

	url, err := hosting.MakeLink(parsed, ref, relPath, input.Lines)
	if err != nil {
		return nil, err
	}

	r.logger.Info(ctx, "link resolved successfully", map[string]interface{}{
		"url":    url,
		"remote": remote,
		"path":   relPath,
	})

	return &domain.LinkOutput{
		URL:       url,
		Reference: ref,
		Remote:    remote,
		Path:      relPath,
	}, nil
}

// resolveReference classifies HEAD as exactly one of branch, tag, or commit.
//
// A branch with an upstream resolves to the upstream's short name regardless
// of the requested remote: the tracked branch name is authoritative. A branch
// with no upstream falls back to searching the requested remote's references
// for the tip commit; finding nothing is an error rather than a hash
// fallback. A detached HEAD resolves to a tag pointing at its commit when one
// exists, otherwise to the commit hash itself.
func (r *LinkResolver) resolveReference(ctx context.Context, remote string) (domain.GitReference, error) {
	var zero domain.GitReference

	head, err := r.repo.Head(ctx)
	if err != nil {
		return zero, fmt.Errorf("failed to read HEAD: %w", err)
	}

	switch head.Kind {
	case domain.HeadBranch:
		return r.resolveBranch(ctx, head, remote)

	case domain.HeadDetached:
		return r.resolveDetached(ctx, head)

	case domain.HeadTagRef, domain.HeadRemoteRef, domain.HeadNote:
		return zero, fmt.Errorf("%w: HEAD points at a tag, remote, or notes reference", domain.ErrInvalidHeadKind)

	default:
		return zero, fmt.Errorf("%w: HEAD is neither a branch nor a detached commit", domain.ErrInvalidHeadKind)
	}
}

// resolveBranch resolves HEAD when it is on a local branch.
func (r *LinkResolver) resolveBranch(ctx context.Context, head *domain.HeadState, remote string) (domain.GitReference, error) {
	var zero domain.GitReference

	upstream, err := r.repo.Upstream(ctx, head.Name)
	switch {
	case err == nil:
		_, short := splitShorthand(upstream)
		return domain.NewBranchReference(short), nil

	case errors.Is(err, domain.ErrNoUpstream):
		r.logger.Debug(ctx, "branch has no upstream, searching remote references", map[string]interface{}{
			"branch": head.Name,
			"remote": remote,
		})

		match, serr := searchReferences(ctx, r.repo, head.Hash, remoteBranchPredicate(remote))
		if serr != nil {
			return zero, serr
		}
		if match == nil {
			return zero, fmt.Errorf("%w: branch %q has no counterpart on remote %q",
				domain.ErrNoMatchingRemoteRef, head.Name, remote)
		}
		_, short := splitShorthand(match.Shorthand)
		return domain.NewBranchReference(short), nil

	default:
		return zero, fmt.Errorf("failed to look up upstream of branch %q: %w", head.Name, err)
	}
}

// resolveDetached resolves a detached HEAD: a matching tag when one points at
// the commit, otherwise the commit hash, which is always available.
func (r *LinkResolver) resolveDetached(ctx context.Context, head *domain.HeadState) (domain.GitReference, error) {
	match, err := searchReferences(ctx, r.repo, head.Hash, func(ref domain.RefInfo) bool {
		return ref.IsTag
	})
	if err != nil {
		return domain.GitReference{}, err
	}
	if match != nil {
		return domain.NewTagReference(match.Shorthand), nil
	}
	return domain.NewCommitReference(head.Hash), nil
}

// splitShorthand splits a tracking shorthand like "origin/feature/x" into the
// remote name and the branch name. The branch name may itself contain slashes.
func splitShorthand(shorthand string) (remote, branch string) {
	remote, branch, ok := strings.Cut(shorthand, "/")
	if !ok {
		return "", shorthand
	}
	return remote, branch
}
