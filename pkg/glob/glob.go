// Package glob matches slash-delimited paths against segment patterns.
// A pattern is a sequence of segments: a literal must equal its path segment
// exactly, `*` consumes exactly one segment of any content, and `**`
// consumes zero or more whole segments with backtracking.
package glob

import (
	"regexp"
	"strings"
)

type segmentKind int

const (
	segLiteral segmentKind = iota
	segSingle
	segDouble
)

type segment struct {
	kind    segmentKind
	literal string
}

// Glob is a compiled path pattern, immutable and safe for concurrent use.
type Glob struct {
	pattern  string
	segments []segment
}

// Compile parses a slash-delimited pattern into segments. Every pattern is
// valid; empty segments from leading, trailing, or duplicate slashes are
// ignored.
func Compile(pattern string) *Glob {
	parts := splitPath(pattern)
	segments := make([]segment, 0, len(parts))
	for _, p := range parts {
		switch p {
		case "*":
			segments = append(segments, segment{kind: segSingle})
		case "**":
			segments = append(segments, segment{kind: segDouble})
		default:
			segments = append(segments, segment{kind: segLiteral, literal: p})
		}
	}
	return &Glob{pattern: pattern, segments: segments}
}

// String returns the source pattern.
func (g *Glob) String() string {
	return g.pattern
}

// Matches reports whether path matches the pattern. The `**` search is
// memoized over (segment index, path index) pairs so pathological patterns
// stay polynomial.
func (g *Glob) Matches(path string) bool {
	parts := splitPath(path)

	// memo: 0 unknown, 1 match, 2 no match
	memo := make([][]byte, len(g.segments)+1)
	for i := range memo {
		memo[i] = make([]byte, len(parts)+1)
	}

	var match func(si, pi int) bool
	match = func(si, pi int) bool {
		if memo[si][pi] != 0 {
			return memo[si][pi] == 1
		}
		var ok bool
		switch {
		case si == len(g.segments):
			ok = pi == len(parts)
		case g.segments[si].kind == segDouble:
			// Greedy: try consuming the longest run first.
			for k := len(parts); k >= pi; k-- {
				if match(si+1, k) {
					ok = true
					break
				}
			}
		case pi == len(parts):
			ok = false
		case g.segments[si].kind == segSingle:
			ok = match(si+1, pi+1)
		default:
			ok = g.segments[si].literal == parts[pi] && match(si+1, pi+1)
		}
		if ok {
			memo[si][pi] = 1
		} else {
			memo[si][pi] = 2
		}
		return ok
	}
	return match(0, 0)
}

// Match compiles pattern and matches it against path in one call.
func Match(pattern, path string) bool {
	return Compile(pattern).Matches(path)
}

// ExtractCaptures returns, in segment order, the path segment that aligned
// with each `*` and the slash-joined run of segments that aligned with each
// `**`. The second return is false when the path does not match at all,
// distinguishing "no match" from "matched with no captures".
func ExtractCaptures(pattern, path string) ([]string, bool) {
	g := Compile(pattern)
	parts := splitPath(path)

	var extract func(si, pi int) ([]string, bool)
	extract = func(si, pi int) ([]string, bool) {
		if si == len(g.segments) {
			if pi == len(parts) {
				return []string{}, true
			}
			return nil, false
		}
		switch g.segments[si].kind {
		case segLiteral:
			if pi < len(parts) && parts[pi] == g.segments[si].literal {
				return extract(si+1, pi+1)
			}
			return nil, false
		case segSingle:
			if pi < len(parts) {
				if rest, ok := extract(si+1, pi+1); ok {
					return append([]string{parts[pi]}, rest...), true
				}
			}
			return nil, false
		default: // segDouble
			for k := len(parts); k >= pi; k-- {
				if rest, ok := extract(si+1, k); ok {
					return append([]string{strings.Join(parts[pi:k], "/")}, rest...), true
				}
			}
			return nil, false
		}
	}
	return extract(0, 0)
}

// ToRegexp converts a pattern into an anchored regexp equivalent over
// normalized paths (see Normalize).
func ToRegexp(pattern string) (*regexp.Regexp, error) {
	g := Compile(pattern)
	var b strings.Builder
	b.WriteString("^")
	for _, s := range g.segments {
		switch s.kind {
		case segLiteral:
			b.WriteString("/")
			b.WriteString(regexp.QuoteMeta(s.literal))
		case segSingle:
			b.WriteString("/[^/]+")
		default:
			b.WriteString("(?:/[^/]+)*")
		}
	}
	b.WriteString("$")
	return regexp.Compile(b.String())
}

// Normalize rewrites a path to the canonical form matched by ToRegexp: a
// leading slash, no trailing or duplicate slashes. The empty path stays
// empty.
func Normalize(path string) string {
	parts := splitPath(path)
	if len(parts) == 0 {
		return ""
	}
	return "/" + strings.Join(parts, "/")
}

func splitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
