// Package hosting renders permalinks for the supported Git hosting services.
// The service set is closed and fixed at build time: adding a host is a code
// change, not configuration.
package hosting

import (
	"errors"
	"fmt"

	"github.com/psyomn/repolink/internal/domain"
)

// Supported hosting service hosts.
const (
	// GitHubHost is the normalized host for GitHub.
	GitHubHost = "github.com"

	// SourceHutHost is the normalized host for SourceHut.
	SourceHutHost = "git.sr.ht"
)

// ErrUnrenderableReference is returned when a Formatter is asked to render a
// GitReference holding neither a branch/tag name nor a commit hash. This
// cannot occur through the public resolver contract and exists only as an
// internal invariant check.
var ErrUnrenderableReference = errors.New("reference holds no branch, tag, or commit")

// Formatter renders the service-specific pieces of a permalink. Both methods
// are pure functions of the request.
type Formatter interface {
	// ProjectRootURL renders the project root, e.g.
	// "https://github.com/user/repo".
	ProjectRootURL(req *domain.LinkRequest) string

	// ServicePath renders the service-specific suffix for the request's
	// reference, path, and optional line range.
	ServicePath(req *domain.LinkRequest) (string, error)
}

// services maps normalized hosts to their Formatter. One entry per supported
// service; lookups against anything else fail.
var services = map[string]Formatter{
	GitHubHost:    GitHub{},
	SourceHutHost: SourceHut{},
}

// ServiceFor returns the Formatter for a normalized host string, or false if
// the host is not a supported hosting service.
func ServiceFor(host string) (Formatter, bool) {
	f, ok := services[host]
	return f, ok
}

// rootURL renders the project root common to every supported service.
func rootURL(host string, req *domain.LinkRequest) string {
	return fmt.Sprintf("https://%s/%s/%s", host, req.Owner, req.Project)
}

// validateReference enforces the formatter invariant that the reference
// carries a non-empty branch/tag name or commit hash.
func validateReference(ref domain.GitReference) error {
	if ref.IsZero() {
		return ErrUnrenderableReference
	}
	switch ref.Kind {
	case domain.RefKindBranch, domain.RefKindTag, domain.RefKindCommit:
		return nil
	default:
		return ErrUnrenderableReference
	}
}
