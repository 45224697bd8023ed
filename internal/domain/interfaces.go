// Package domain defines the core business entities and interfaces for repolink.
// This package contains no external dependencies and represents the innermost
// layer of the CLEAN architecture.
package domain

import (
	"context"
	"errors"
)

// Domain errors for repository access, reference resolution, and link synthesis.
// All are terminal: every cause is deterministic given the repository state,
// so nothing is ever retried.
var (
	// ErrRepositoryNotFound indicates no Git repository was found at or above
	// the starting directory.
	ErrRepositoryNotFound = errors.New("git repository not found")

	// ErrBareRepository indicates the repository has no working directory.
	ErrBareRepository = errors.New("repository is bare; no working directory to link from")

	// ErrPathOutsideRepository indicates the file path cannot be made
	// relative to the repository root.
	ErrPathOutsideRepository = errors.New("path is outside the repository working directory")

	// ErrInvalidHeadKind indicates HEAD is not a branch or a detached commit,
	// e.g. it points at a note, a tag reference, or a remote-tracking
	// reference directly.
	ErrInvalidHeadKind = errors.New("HEAD does not point at a linkable position")

	// ErrNoUpstream indicates a branch has no configured upstream. This is a
	// not-found condition, not a hard failure; the resolver falls back to
	// searching the requested remote's references.
	ErrNoUpstream = errors.New("branch has no configured upstream")

	// ErrNoMatchingRemoteRef indicates no reference on the requested remote
	// points at the current branch's tip commit.
	ErrNoMatchingRemoteRef = errors.New("no reference on the remote matches the current branch")

	// ErrRemoteNotFound indicates the requested remote is not configured.
	ErrRemoteNotFound = errors.New("remote not configured")

	// ErrInvalidRemoteURL indicates the remote URL could not be parsed.
	ErrInvalidRemoteURL = errors.New("could not parse remote URL")

	// ErrMissingHost indicates the parsed remote URL carries no host.
	ErrMissingHost = errors.New("remote URL has no host")

	// ErrMissingOwner indicates the parsed remote URL carries no owner.
	ErrMissingOwner = errors.New("remote URL has no owner")

	// ErrUnsupportedHost indicates the remote's host is not a supported
	// hosting service.
	ErrUnsupportedHost = errors.New("unsupported hosting service")

	// ErrInvalidEncoding indicates repository metadata is not valid text.
	ErrInvalidEncoding = errors.New("repository metadata is not valid UTF-8")

	// ErrInvalidLineRange indicates a line range with start < 1 or end < start.
	ErrInvalidLineRange = errors.New("invalid line range")
)

// LocalGitRepository provides read-only access to a local Git repository.
// All state is re-read per call; implementations hold no mutable state
// across invocations.
type LocalGitRepository interface {
	// Head returns the current HEAD state: its classification, the short
	// branch name when on a branch, and the commit hash HEAD resolves to.
	Head(ctx context.Context) (*HeadState, error)

	// Upstream returns the tracking shorthand ("remote/branch") configured
	// for the given local branch. Returns ErrNoUpstream when the branch has
	// no upstream configured.
	Upstream(ctx context.Context, branch string) (string, error)

	// References enumerates every reference in the repository, each peeled
	// to its target commit. References that fail to resolve to a commit are
	// skipped. Order is deterministic for a fixed repository state but
	// otherwise unspecified.
	References(ctx context.Context) ([]RefInfo, error)

	// RemoteURL returns the first URL configured for the named remote.
	// Returns ErrRemoteNotFound if the remote does not exist or has no URLs.
	RemoteURL(ctx context.Context, name string) (string, error)

	// RelativeToRoot translates a file path into a slash-separated path
	// relative to the repository root. Returns ErrPathOutsideRepository if
	// the path does not live inside the worktree.
	RelativeToRoot(path string) (string, error)

	// Close releases any resources held by the repository.
	Close() error
}

// RemoteURLParser parses a raw remote URL into its structured form.
type RemoteURLParser interface {
	// Parse converts a raw remote URL (scp-style, ssh://, or https://) into
	// a RemoteURL. Returns ErrInvalidRemoteURL on unparseable input.
	Parse(raw string) (*RemoteURL, error)
}

// LinkWriter writes the synthesized permalink to an output destination.
type LinkWriter interface {
	// WriteLink writes the URL to the output.
	WriteLink(url string) error
}

// Resolver resolves a permalink for the current repository state.
type Resolver interface {
	// Resolve classifies HEAD, selects the hosting service from the
	// requested remote's URL, and synthesizes the permalink.
	Resolve(ctx context.Context, input LinkInput) (*LinkOutput, error)
}
