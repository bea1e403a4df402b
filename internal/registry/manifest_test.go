package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseManifest(t *testing.T) {
	deps, err := ParseManifest("alpha file:///srv/alpha\nbeta https://example.com/beta.git\n")
	require.NoError(t, err)
	require.Len(t, deps, 2)
	assert.Equal(t, Dependency{Name: "alpha", URL: "file:///srv/alpha"}, deps[0])
	assert.Equal(t, Dependency{Name: "beta", URL: "https://example.com/beta.git"}, deps[1])
}

func TestParseManifest_empty(t *testing.T) {
	deps, err := ParseManifest("")
	require.NoError(t, err)
	assert.Empty(t, deps)
}

func TestParseManifest_malformedLine(t *testing.T) {
	_, err := ParseManifest("alpha file:///srv/alpha\nnospacehere\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParseManifest_duplicateName(t *testing.T) {
	_, err := ParseManifest("alpha file:///a\nalpha file:///b\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alpha")
}

func TestFormatManifest_roundTrip(t *testing.T) {
	in := []Dependency{
		{Name: "zeta", URL: "file:///srv/zeta"},
		{Name: "alpha", URL: "file:///srv/alpha"},
	}
	out, err := ParseManifest(string(FormatManifest(in)))
	require.NoError(t, err)
	// Insertion order survives, no sorting.
	assert.Equal(t, in, out)
}

func TestFormatManifest_empty(t *testing.T) {
	assert.Empty(t, FormatManifest(nil))
}

func TestValidateEntry(t *testing.T) {
	require.NoError(t, ValidateEntry("dep", "file:///srv/dep"))

	assert.Error(t, ValidateEntry("", "file:///srv/dep"))
	assert.Error(t, ValidateEntry("dep", ""))
	assert.Error(t, ValidateEntry("has space", "file:///srv/dep"))
	assert.Error(t, ValidateEntry("has/slash", "file:///srv/dep"))
	assert.Error(t, ValidateEntry("dep", "file:///srv/has space"))
}
