package urlparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psyomn/repolink/internal/domain"
)

func TestParser_Parse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    domain.RemoteURL
		wantErr bool
	}{
		{
			name: "scp-style github remote",
			raw:  "git@github.com:user/repo.git",
			want: domain.RemoteURL{Host: "github.com", Owner: "user", Path: "repo.git", HasGitSuffix: true},
		},
		{
			name: "scp-style without git suffix",
			raw:  "git@github.com:user/repo",
			want: domain.RemoteURL{Host: "github.com", Owner: "user", Path: "repo"},
		},
		{
			name: "https github remote",
			raw:  "https://github.com/user/repo.git",
			want: domain.RemoteURL{Host: "github.com", Owner: "user", Path: "repo.git", HasGitSuffix: true},
		},
		{
			name: "https sourcehut remote with tilde owner",
			raw:  "https://git.sr.ht/~psyomn/ecophagy",
			want: domain.RemoteURL{Host: "git.sr.ht", Owner: "~psyomn", Path: "ecophagy"},
		},
		{
			name: "ssh scheme remote",
			raw:  "ssh://git@github.com/user/repo.git",
			want: domain.RemoteURL{Host: "github.com", Owner: "user", Path: "repo.git", HasGitSuffix: true},
		},
		{
			name: "nested owner segments join",
			raw:  "https://gitlab.example.com/group/subgroup/repo.git",
			want: domain.RemoteURL{Host: "gitlab.example.com", Owner: "group/subgroup", Path: "repo.git", HasGitSuffix: true},
		},
		{
			name: "surrounding whitespace is trimmed",
			raw:  "  git@github.com:user/repo.git\n",
			want: domain.RemoteURL{Host: "github.com", Owner: "user", Path: "repo.git", HasGitSuffix: true},
		},
		{
			name: "single path segment has no owner",
			raw:  "https://github.com/repo.git",
			want: domain.RemoteURL{Host: "github.com", Owner: "", Path: "repo.git", HasGitSuffix: true},
		},
		{
			name:    "empty input",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			raw:     "   ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewParser().Parse(tt.raw)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidRemoteURL)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}
