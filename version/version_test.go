package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoString(t *testing.T) {
	i := Info{CommitHash: "abcdef123456", BuildTime: "2026-01-01", Version: "v1.2.3"}
	assert.Equal(t, "gwkit v1.2.3 (commit abcdef123456, built 2026-01-01)", i.String())
	assert.Equal(t, "abcdef1", i.Short())

	i.Version = "dev"
	assert.Equal(t, "gwkit dev (commit abcdef123456, built 2026-01-01)", i.String())

	assert.Equal(t, "abc", Info{CommitHash: "abc"}.Short())
}

func TestSemver(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"v1.2.3", "1.2.3"},
		{"2.0.0-rc.1", "2.0.0-rc.1"},
		{"dev", "0.0.0-dev"},
		{"", "0.0.0-dev"},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			sv, err := Info{Version: tt.version}.Semver()
			require.NoError(t, err)
			assert.Equal(t, tt.want, sv.String())
		})
	}

	_, err := Info{Version: "not-a-version"}.Semver()
	assert.Error(t, err)
}
