package hosting

import (
	"fmt"
	"strings"

	"github.com/psyomn/repolink/internal/domain"
)

// MakeLink synthesizes the final permalink from a parsed remote URL, a
// resolved reference, a repository-relative file path, and an optional line
// range. It performs no I/O and is fully deterministic given its inputs.
//
// The project name is derived from the remote URL's path, stripping the
// ".git" suffix only when the URL actually carried one.
func MakeLink(remote *domain.RemoteURL, ref domain.GitReference, relPath string, lines *domain.LineRange) (string, error) {
	if remote.Host == "" {
		return "", domain.ErrMissingHost
	}
	if remote.Owner == "" {
		return "", domain.ErrMissingOwner
	}

	formatter, ok := ServiceFor(remote.Host)
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedHost, remote.Host)
	}

	project := remote.Path
	if remote.HasGitSuffix {
		project = strings.TrimSuffix(project, ".git")
	}

	req := &domain.LinkRequest{
		Owner:   remote.Owner,
		Project: project,
		Path:    relPath,
		Ref:     ref,
		Lines:   lines,
	}

	suffix, err := formatter.ServicePath(req)
	if err != nil {
		return "", err
	}

	return formatter.ProjectRootURL(req) + suffix, nil
}
