package command

import (
	"math"
	"strings"
)

// End selects through the end of the string (for N) or line list (for L).
const End = math.MaxInt

// clampRange resolves Python-slice indices against a sequence of the given
// length: negative indices count from the end, out-of-bounds indices are
// clamped into [0, length], and an inverted range collapses to empty.
func clampRange(start, end, length int) (int, int) {
	if start < 0 {
		start += length
	}
	if start < 0 {
		start = 0
	}
	if start > length {
		start = length
	}
	if end < 0 {
		end += length
	}
	if end < 0 {
		end = 0
	}
	if end > length {
		end = length
	}
	if end < start {
		end = start
	}
	return start, end
}

// N selects the character range [start, end) of the text and applies cmd to
// it; the prefix and suffix outside the range are preserved verbatim around
// cmd's result. Indices follow Python slice conventions (-1 is the last
// character, End means through the end) and are clamped, never failing.
func N(start, end int, cmd Command) Command {
	return func(text string) string {
		s, e := clampRange(start, end, len(text))
		return text[:s] + cmd(text[s:e]) + text[e:]
	}
}

// L is N over newline-delimited lines: the selected lines are rejoined with
// newlines, passed to cmd as one string, and cmd's output is re-split on
// newlines and spliced back among the untouched leading and trailing lines.
func L(start, end int, cmd Command) Command {
	return func(text string) string {
		lines := strings.Split(text, "\n")
		s, e := clampRange(start, end, len(lines))
		replaced := strings.Split(cmd(strings.Join(lines[s:e], "\n")), "\n")

		out := make([]string, 0, s+len(replaced)+len(lines)-e)
		out = append(out, lines[:s]...)
		out = append(out, replaced...)
		out = append(out, lines[e:]...)
		return strings.Join(out, "\n")
	}
}
