package hosting

import (
	"fmt"
	"strings"

	"github.com/psyomn/repolink/internal/domain"
)

// GitHub renders permalinks for github.com, e.g.
// https://github.com/user/repo/blob/main/src/lib.go#L5-L9
type GitHub struct{}

// ProjectRootURL returns "https://github.com/{owner}/{project}".
func (GitHub) ProjectRootURL(req *domain.LinkRequest) string {
	return rootURL(GitHubHost, req)
}

// ServicePath returns "/blob/{ref}/{path}" for branches and tags, with an
// optional line fragment, or "/commit/{hash}" for bare commits.
func (GitHub) ServicePath(req *domain.LinkRequest) (string, error) {
	if err := validateReference(req.Ref); err != nil {
		return "", err
	}

	if req.Ref.Kind == domain.RefKindCommit {
		return "/commit/" + req.Ref.Name, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "/blob/%s/%s", req.Ref.Name, req.Path)
	if req.Lines != nil {
		b.WriteString(githubLineFragment(req.Lines))
	}
	return b.String(), nil
}

// githubLineFragment renders "#L5" for a single line and "#L5-L9" for a range.
func githubLineFragment(l *domain.LineRange) string {
	if l.IsSingle() {
		return fmt.Sprintf("#L%d", l.Start)
	}
	return fmt.Sprintf("#L%d-L%d", l.Start, l.End)
}
