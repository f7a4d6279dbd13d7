package glob

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"/a/**", "/a", true},
		{"/a/**", "/a/b/c", true},
		{"/a/*", "/a/b/c", false},
		{"/a/*", "/a/b", true},
		{"/a/b", "/a/b", true},
		{"/a/b", "/a/c", false},
		{"/**", "/anything/at/all", true},
		{"/**", "/", true},
		{"/a/**/z", "/a/z", true},
		{"/a/**/z", "/a/b/c/z", true},
		{"/a/**/z", "/a/b/c", false},
		{"/*/b", "/a/b", true},
		{"/*/b", "/b", false},
		{"", "", true},
		{"", "/a", false},
		// Empty segments from duplicate or trailing slashes are ignored.
		{"/a//b/", "/a/b", true},
		{"/a/b", "//a//b//", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+" vs "+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.pattern, tt.path))
		})
	}
}

func TestCompileReuse(t *testing.T) {
	g := Compile("/users/*/posts/**")

	assert.True(t, g.Matches("/users/1/posts"))
	assert.True(t, g.Matches("/users/1/posts/2/comments"))
	assert.False(t, g.Matches("/users/posts"))
	assert.Equal(t, "/users/*/posts/**", g.String())
}

func TestExtractCaptures(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
		want    []string
		ok      bool
	}{
		{"two singles", "/u/*/p/*", "/u/1/p/2", []string{"1", "2"}, true},
		{"no match", "/u/*", "/p/1", nil, false},
		{"no wildcards no captures", "/a/b", "/a/b", []string{}, true},
		{"double captures the run", "/a/**/z", "/a/b/c/z", []string{"b/c"}, true},
		{"double can capture empty run", "/a/**/z", "/a/z", []string{""}, true},
		{"captures follow segment order", "/**/x/*", "/a/b/x/c", []string{"a/b", "c"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractCaptures(tt.pattern, tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// A greedy double followed by a single: the double must backtrack enough to
// leave one segment for the single.
func TestExtractCapturesGreedy(t *testing.T) {
	got, ok := ExtractCaptures("/**/*", "/a/b/c")
	require.True(t, ok)
	assert.Equal(t, []string{"a/b", "c"}, got)
}

func TestToRegexp(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"/a/**", "/a", true},
		{"/a/**", "/a/b/c", true},
		{"/a/*", "/a/b/c", false},
		{"/u/*/p", "/u/42/p", true},
		{"/a.b/c", "/a.b/c", true},
		{"/a.b/c", "/axb/c", false}, // literal dots must be quoted
	}

	for _, tt := range tests {
		t.Run(tt.pattern+" vs "+tt.path, func(t *testing.T) {
			re, err := ToRegexp(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, re.MatchString(Normalize(tt.path)))
		})
	}
}

// The regexp form and the segment matcher agree on a grid of cases.
func TestToRegexpEquivalence(t *testing.T) {
	patterns := []string{"/a/**", "/a/*", "/*/b", "/**", "/a/**/z", "/a/b"}
	paths := []string{"/a", "/a/b", "/a/b/c", "/b", "/a/z", "/a/b/z", "/"}

	for _, pattern := range patterns {
		re, err := ToRegexp(pattern)
		require.NoError(t, err)
		for _, path := range paths {
			assert.Equal(t, Match(pattern, path), re.MatchString(Normalize(path)),
				"pattern %q path %q", pattern, path)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/a/b", "/a/b"},
		{"a/b", "/a/b"},
		{"//a//b//", "/a/b"},
		{"/", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in))
	}
}
