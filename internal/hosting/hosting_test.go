package hosting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psyomn/repolink/internal/domain"
)

func TestServiceFor(t *testing.T) {
	tests := []struct {
		host  string
		found bool
	}{
		{"github.com", true},
		{"git.sr.ht", true},
		{"gitlab.example.com", false},
		{"", false},
		{"GITHUB.COM", false}, // hosts are matched as normalized
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			_, ok := ServiceFor(tt.host)
			assert.Equal(t, tt.found, ok)
		})
	}
}

func TestGitHub_ServicePath(t *testing.T) {
	tests := []struct {
		name string
		req  domain.LinkRequest
		want string
	}{
		{
			name: "branch without line range",
			req: domain.LinkRequest{
				Path: "src/lib.go",
				Ref:  domain.NewBranchReference("main"),
			},
			want: "/blob/main/src/lib.go",
		},
		{
			name: "branch with single line",
			req: domain.LinkRequest{
				Path:  "txt",
				Ref:   domain.NewBranchReference("up"),
				Lines: &domain.LineRange{Start: 5, End: 5},
			},
			want: "/blob/up/txt#L5",
		},
		{
			name: "branch with line range",
			req: domain.LinkRequest{
				Path:  "txt",
				Ref:   domain.NewBranchReference("up"),
				Lines: &domain.LineRange{Start: 5, End: 9},
			},
			want: "/blob/up/txt#L5-L9",
		},
		{
			name: "tag",
			req: domain.LinkRequest{
				Path: "getopt.zig",
				Ref:  domain.NewTagReference("v1.0.1-fake"),
			},
			want: "/blob/v1.0.1-fake/getopt.zig",
		},
		{
			name: "commit ignores path and lines",
			req: domain.LinkRequest{
				Path:  "txt",
				Ref:   domain.NewCommitReference("abcdef0123456789abcdef0123456789abcdef01"),
				Lines: &domain.LineRange{Start: 5, End: 9},
			},
			want: "/commit/abcdef0123456789abcdef0123456789abcdef01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GitHub{}.ServicePath(&tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSourceHut_ServicePath(t *testing.T) {
	tests := []struct {
		name string
		req  domain.LinkRequest
		want string
	}{
		{
			name: "branch without line range",
			req: domain.LinkRequest{
				Path: "src/post.zig",
				Ref:  domain.NewBranchReference("master"),
			},
			want: "/tree/master/item/src/post.zig",
		},
		{
			name: "multi-line range collapses to the start line",
			req: domain.LinkRequest{
				Path:  "planner/server.go",
				Ref:   domain.NewBranchReference("feature/planner"),
				Lines: &domain.LineRange{Start: 5, End: 9},
			},
			want: "/tree/feature/planner/item/planner/server.go#L5",
		},
		{
			name: "single line",
			req: domain.LinkRequest{
				Path:  "src/main.zig",
				Ref:   domain.NewTagReference("1.0.0"),
				Lines: &domain.LineRange{Start: 16, End: 16},
			},
			want: "/tree/1.0.0/item/src/main.zig#L16",
		},
		{
			name: "commit",
			req: domain.LinkRequest{
				Path: "txt",
				Ref:  domain.NewCommitReference("535309acbc07a8f745b6c1c91b87cff220913149"),
			},
			want: "/commit/535309acbc07a8f745b6c1c91b87cff220913149",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SourceHut{}.ServicePath(&tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatters_RejectUnrenderableReference(t *testing.T) {
	formatters := map[string]Formatter{
		"github":    GitHub{},
		"sourcehut": SourceHut{},
	}
	bad := []domain.GitReference{
		{},                            // zero value
		{Kind: domain.RefKindBranch},  // empty name
		{Kind: domain.RefKind(99), Name: "x"}, // unknown kind
	}

	for name, f := range formatters {
		for _, ref := range bad {
			t.Run(name, func(t *testing.T) {
				_, err := f.ServicePath(&domain.LinkRequest{Path: "txt", Ref: ref})
				assert.ErrorIs(t, err, ErrUnrenderableReference)
			})
		}
	}
}

func TestProjectRootURL(t *testing.T) {
	req := &domain.LinkRequest{Owner: "user", Project: "repo"}
	assert.Equal(t, "https://github.com/user/repo", GitHub{}.ProjectRootURL(req))

	req = &domain.LinkRequest{Owner: "~psyomn", Project: "ecophagy"}
	assert.Equal(t, "https://git.sr.ht/~psyomn/ecophagy", SourceHut{}.ProjectRootURL(req))
}

func TestMakeLink(t *testing.T) {
	ref := domain.NewBranchReference("up")

	tests := []struct {
		name    string
		remote  domain.RemoteURL
		ref     domain.GitReference
		path    string
		lines   *domain.LineRange
		want    string
		wantErr error
	}{
		{
			name:   "github branch with single line",
			remote: domain.RemoteURL{Host: "github.com", Owner: "user", Path: "repo.git", HasGitSuffix: true},
			ref:    ref,
			path:   "txt",
			lines:  &domain.LineRange{Start: 3, End: 3},
			want:   "https://github.com/user/repo/blob/up/txt#L3",
		},
		{
			name:   "github tag without lines",
			remote: domain.RemoteURL{Host: "github.com", Owner: "user", Path: "repo.git", HasGitSuffix: true},
			ref:    domain.NewTagReference("v1.0"),
			path:   "txt",
			want:   "https://github.com/user/repo/blob/v1.0/txt",
		},
		{
			name:   "sourcehut commit",
			remote: domain.RemoteURL{Host: "git.sr.ht", Owner: "~psyomn", Path: "ecophagy"},
			ref:    domain.NewCommitReference("abcdef0123456789abcdef0123456789abcdef01"),
			path:   "txt",
			want:   "https://git.sr.ht/~psyomn/ecophagy/commit/abcdef0123456789abcdef0123456789abcdef01",
		},
		{
			name: ".git stripped only when the URL carried the suffix",
			// "repo.git" here is the literal project name; the flag is false.
			remote: domain.RemoteURL{Host: "github.com", Owner: "user", Path: "repo.git"},
			ref:    ref,
			path:   "txt",
			want:   "https://github.com/user/repo.git/blob/up/txt",
		},
		{
			name:    "missing host",
			remote:  domain.RemoteURL{Owner: "user", Path: "repo"},
			ref:     ref,
			path:    "txt",
			wantErr: domain.ErrMissingHost,
		},
		{
			name:    "missing owner",
			remote:  domain.RemoteURL{Host: "github.com", Path: "repo"},
			ref:     ref,
			path:    "txt",
			wantErr: domain.ErrMissingOwner,
		},
		{
			name:    "unsupported host",
			remote:  domain.RemoteURL{Host: "gitlab.example.com", Owner: "user", Path: "repo"},
			ref:     ref,
			path:    "txt",
			wantErr: domain.ErrUnsupportedHost,
		},
		{
			name:    "unrenderable reference",
			remote:  domain.RemoteURL{Host: "github.com", Owner: "user", Path: "repo"},
			ref:     domain.GitReference{},
			path:    "txt",
			wantErr: ErrUnrenderableReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MakeLink(&tt.remote, tt.ref, tt.path, tt.lines)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			// Rendering is pure: a second call is byte-identical.
			again, err := MakeLink(&tt.remote, tt.ref, tt.path, tt.lines)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}
