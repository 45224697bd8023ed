// Package urlparse parses raw Git remote URLs into the structured form the
// link synthesizer consumes. It implements the domain.RemoteURLParser
// interface on top of the git-urls library, which normalizes scp-style
// ("git@host:owner/repo.git"), ssh://, and https:// remotes uniformly.
package urlparse

import (
	"fmt"
	"strings"

	giturls "github.com/whilp/git-urls"

	"github.com/psyomn/repolink/internal/domain"
)

// Parser implements domain.RemoteURLParser.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse converts a raw remote URL into a domain.RemoteURL.
//
// The final path segment becomes Path (keeping any ".git" suffix so the
// synthesizer can strip it knowingly); everything before it joins into Owner.
// Host or Owner may come back empty for URL forms that lack them; the
// synthesizer decides whether that is fatal.
func (p *Parser) Parse(raw string) (*domain.RemoteURL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty URL", domain.ErrInvalidRemoteURL)
	}

	u, err := giturls.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRemoteURL, raw)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	last := segments[len(segments)-1]
	if last == "" {
		return nil, fmt.Errorf("%w: %q has no repository path", domain.ErrInvalidRemoteURL, raw)
	}

	out := &domain.RemoteURL{
		Host:         u.Hostname(),
		Path:         last,
		HasGitSuffix: strings.HasSuffix(last, ".git"),
	}
	if len(segments) > 1 {
		out.Owner = strings.Join(segments[:len(segments)-1], "/")
	}

	return out, nil
}
