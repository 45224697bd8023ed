package hosting

import (
	"fmt"
	"strings"

	"github.com/psyomn/repolink/internal/domain"
)

// SourceHut renders permalinks for git.sr.ht, e.g.
// https://git.sr.ht/~user/repo/tree/main/item/src/lib.go#L15
//
// Owners on SourceHut carry a "~" prefix; that comes straight from the
// remote URL, so no special handling is needed here.
type SourceHut struct{}

// ProjectRootURL returns "https://git.sr.ht/{owner}/{project}".
func (SourceHut) ProjectRootURL(req *domain.LinkRequest) string {
	return rootURL(SourceHutHost, req)
}

// ServicePath returns "/tree/{ref}/item/{path}" for branches and tags, with
// an optional line fragment, or "/commit/{hash}" for bare commits.
//
// SourceHut has no multi-line highlight, so the fragment is always the
// range's start line; the end is ignored even when it differs.
func (SourceHut) ServicePath(req *domain.LinkRequest) (string, error) {
	if err := validateReference(req.Ref); err != nil {
		return "", err
	}

	if req.Ref.Kind == domain.RefKindCommit {
		return "/commit/" + req.Ref.Name, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "/tree/%s/item/%s", req.Ref.Name, req.Path)
	if req.Lines != nil {
		fmt.Fprintf(&b, "#L%d", req.Lines.Start)
	}
	return b.String(), nil
}
