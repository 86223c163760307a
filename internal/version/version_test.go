package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	oldVersion, oldCommit, oldTime := Version, GitCommit, BuildTime
	t.Cleanup(func() { Version, GitCommit, BuildTime = oldVersion, oldCommit, oldTime })

	Version, GitCommit, BuildTime = "1.2.3", "abc123", "2025-01-02T03:04:05Z"
	assert.Equal(t, "geocons v1.2.3 (commit abc123, built 2025-01-02T03:04:05Z)", String())
}
