// Package domain defines the core business entities and interfaces for repolink.
package domain

// RefKind discriminates the variants of a GitReference.
type RefKind int

const (
	// RefKindBranch is a remote-tracked branch, identified by its short name.
	RefKindBranch RefKind = iota + 1

	// RefKindTag is a tag, identified by its short name.
	RefKindTag

	// RefKindCommit is a bare commit, identified by its full hash.
	RefKindCommit
)

// GitReference is the Reference Resolver's output: the position HEAD
// corresponds to on the remote, as exactly one of branch, tag, or commit.
type GitReference struct {
	// Kind selects the variant. The zero value is not a valid reference.
	Kind RefKind

	// Name is the short branch name (no remote prefix), the short tag name,
	// or the full hexadecimal commit hash, depending on Kind.
	Name string
}

// NewBranchReference creates a GitReference for a branch short name.
func NewBranchReference(name string) GitReference {
	return GitReference{Kind: RefKindBranch, Name: name}
}

// NewTagReference creates a GitReference for a tag short name.
func NewTagReference(name string) GitReference {
	return GitReference{Kind: RefKindTag, Name: name}
}

// NewCommitReference creates a GitReference for a full commit hash.
func NewCommitReference(hash string) GitReference {
	return GitReference{Kind: RefKindCommit, Name: hash}
}

// IsZero reports whether the reference holds no usable variant.
func (r GitReference) IsZero() bool {
	return r.Kind == 0 || r.Name == ""
}

// HeadKind classifies the reference HEAD currently points at.
type HeadKind int

const (
	// HeadBranch means HEAD is on a local branch.
	HeadBranch HeadKind = iota + 1

	// HeadDetached means HEAD points directly at a commit.
	HeadDetached

	// HeadTagRef means HEAD points at a tag reference directly.
	HeadTagRef

	// HeadRemoteRef means HEAD points at a remote-tracking reference.
	HeadRemoteRef

	// HeadNote means HEAD points at a notes reference.
	HeadNote

	// HeadOther covers any reference kind not listed above.
	HeadOther
)

// HeadState is a transient, read-only view of HEAD, obtained fresh from the
// repository on every invocation.
type HeadState struct {
	// Kind classifies what HEAD points at.
	Kind HeadKind

	// Name is the short branch name when Kind is HeadBranch, empty otherwise.
	Name string

	// Hash is the full commit hash HEAD resolves to.
	Hash string
}

// RefInfo describes one enumerated repository reference, already peeled to
// the commit it ultimately targets.
type RefInfo struct {
	// Shorthand is the reference's short display name, e.g. "origin/main".
	Shorthand string

	// Hash is the full hash of the commit the reference peels to.
	Hash string

	// IsBranch reports a local branch reference.
	IsBranch bool

	// IsRemote reports a remote-tracking reference.
	IsRemote bool

	// IsTag reports a tag reference.
	IsTag bool
}

// RemoteURL is the parsed representation of a remote's URL, supplied by the
// URL-parsing collaborator. The core only reads it.
type RemoteURL struct {
	// Host is the hosting service's host, e.g. "github.com". May be empty
	// for URL forms that carry no host.
	Host string

	// Owner is the owner component, e.g. "user" or "~user". May be empty.
	Owner string

	// Path is the final repository path component, possibly with a ".git"
	// suffix, e.g. "repo.git".
	Path string

	// HasGitSuffix reports whether Path ends in ".git".
	HasGitSuffix bool
}

// LineRange is an inclusive line range to highlight. Absence (a nil pointer)
// means the whole file. Start == End highlights a single line.
type LineRange struct {
	Start int
	End   int
}

// NewLineRange validates and constructs a LineRange. Lines are 1-based and
// Start must not exceed End.
func NewLineRange(start, end int) (*LineRange, error) {
	if start < 1 || end < start {
		return nil, ErrInvalidLineRange
	}
	return &LineRange{Start: start, End: end}, nil
}

// IsSingle reports whether the range highlights exactly one line.
func (l LineRange) IsSingle() bool {
	return l.Start == l.End
}

// LinkRequest aggregates everything a Link Formatter needs to render a URL.
// Constructed once per invocation by the Link Synthesizer, never persisted.
type LinkRequest struct {
	// Owner is the repository owner, e.g. "user" or "~user".
	Owner string

	// Project is the repository name with any ".git" suffix stripped.
	Project string

	// Path is the file path relative to the repository root, slash-separated.
	Path string

	// Ref is the resolved reference to link against.
	Ref GitReference

	// Lines is the optional line range to highlight.
	Lines *LineRange
}

// LinkInput contains the parameters for one link resolution.
type LinkInput struct {
	// RemoteName selects the remote to link against. Empty means the default.
	RemoteName string

	// FilePath is the file to link, absolute or relative to the working
	// directory. It must live inside the repository worktree.
	FilePath string

	// Lines is the optional inclusive line range.
	Lines *LineRange
}

// LinkOutput contains the result of a successful link resolution.
type LinkOutput struct {
	// URL is the synthesized permalink. This is the primary output value.
	URL string

	// Reference is the resolved position HEAD was classified as.
	Reference GitReference

	// Remote is the remote name the link was built against.
	Remote string

	// Path is the repository-relative file path that was linked.
	Path string
}

// DefaultRemoteName is the remote used when none is requested.
const DefaultRemoteName = "origin"
