package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserAgent(t *testing.T) {
	ua := UserAgent()
	assert.True(t, strings.HasPrefix(ua, "selenium/"+Version+" (go "))
	assert.True(t, strings.HasSuffix(ua, ")"))
}

func TestPlatformName(t *testing.T) {
	assert.Equal(t, "mac", platformName("darwin"))
	assert.Equal(t, "windows", platformName("windows"))
	assert.Equal(t, "linux", platformName("linux"))
	assert.Equal(t, "freebsd", platformName("freebsd"))
}

func TestString(t *testing.T) {
	old := GitCommit
	defer func() { GitCommit = old }()

	GitCommit = ""
	assert.Equal(t, Version, String())

	GitCommit = "0123456789abcdef"
	assert.Equal(t, Version+" (01234567)", String())
}
