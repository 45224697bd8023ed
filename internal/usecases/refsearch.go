package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/psyomn/repolink/internal/domain"
)

// searchReferences scans every reference in the repository and returns the
// first one that peels to targetHash and satisfies the predicate, or nil when
// none does.
//
// Ordering follows the repository's enumeration order: deterministic for a
// fixed repository state, otherwise unspecified. When several references on
// the same remote point at the same commit, whichever enumerates first wins;
// that tie-break is part of the documented contract, not a bug.
func searchReferences(
	ctx context.Context,
	repo domain.LocalGitRepository,
	targetHash string,
	predicate func(domain.RefInfo) bool,
) (*domain.RefInfo, error) {
	refs, err := repo.References(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate references: %w", err)
	}

	for _, ref := range refs {
		if ref.Hash != targetHash {
			continue
		}
		if !predicate(ref) {
			continue
		}
		match := ref
		return &match, nil
	}

	return nil, nil
}

// remoteBranchPredicate matches remote-tracking references under the given
// remote, excluding the synthetic "HEAD" alias, which is never an acceptable
// answer even when it points at the right commit.
func remoteBranchPredicate(remote string) func(domain.RefInfo) bool {
	prefix := remote + "/"
	return func(ref domain.RefInfo) bool {
		if !ref.IsRemote {
			return false
		}
		branch, ok := strings.CutPrefix(ref.Shorthand, prefix)
		if !ok {
			return false
		}
		return branch != "" && branch != "HEAD"
	}
}
