package command

import (
	"regexp"
	"strings"
)

// Command is a pure string-to-string transformation, the unit of composition.
type Command func(string) string

// X partitions text into match and non-match spans of re; every match span
// is replaced with cmd applied to its text, non-match spans pass through
// unchanged. Text without a match is returned unchanged.
func X(re *regexp.Regexp, cmd Command) Command {
	return func(text string) string {
		matches := FindMatches(re, text)
		if len(matches) == 0 {
			return text
		}
		var b strings.Builder
		last := 0
		for _, m := range matches {
			b.WriteString(text[last:m.Start])
			b.WriteString(cmd(m.Text))
			last = m.End
		}
		b.WriteString(text[last:])
		return b.String()
	}
}

// Y is the dual of X: match spans pass through unchanged and cmd is applied
// to every non-empty non-match span. When re matches nowhere the whole text
// is a single non-match span and cmd is applied to it.
func Y(re *regexp.Regexp, cmd Command) Command {
	return func(text string) string {
		matches := FindMatches(re, text)
		if len(matches) == 0 {
			return cmd(text)
		}
		var b strings.Builder
		last := 0
		for _, m := range matches {
			if m.Start > last {
				b.WriteString(cmd(text[last:m.Start]))
			}
			b.WriteString(m.Text)
			last = m.End
		}
		if last < len(text) {
			b.WriteString(cmd(text[last:]))
		}
		return b.String()
	}
}

// G is a guard: cmd is applied to the whole text when re matches anywhere
// in it, otherwise the text is returned unchanged. Existence only, the
// first match suffices.
func G(re *regexp.Regexp, cmd Command) Command {
	return func(text string) string {
		if re.MatchString(text) {
			return cmd(text)
		}
		return text
	}
}

// V is a veto, the dual of G: cmd is applied only when re does not match
// anywhere in the text.
func V(re *regexp.Regexp, cmd Command) Command {
	return func(text string) string {
		if re.MatchString(text) {
			return text
		}
		return cmd(text)
	}
}

// S performs a global substitution of re with replacement, where replacement
// follows the host regexp expansion rules ($1 references group 1, $$ is a
// literal dollar).
func S(re *regexp.Regexp, replacement string) Command {
	return func(text string) string {
		return re.ReplaceAllString(text, replacement)
	}
}

// C ignores its input and always returns value.
func C(value string) Command {
	return func(string) string {
		return value
	}
}

// D ignores its input and always returns the empty string.
func D() Command {
	return func(string) string {
		return ""
	}
}

// P is the identity command.
func P() Command {
	return func(text string) string {
		return text
	}
}

// Pipe composes commands left to right: the output of each command feeds the
// next. Pipe with no arguments is the identity.
func Pipe(cmds ...Command) Command {
	return func(text string) string {
		for _, cmd := range cmds {
			text = cmd(text)
		}
		return text
	}
}

// XAll returns cmd applied to the text of every match of re, in order,
// without touching the input. No matches yields an empty sequence.
func XAll(re *regexp.Regexp, cmd Command) func(string) []string {
	return func(text string) []string {
		matches := FindMatches(re, text)
		out := make([]string, 0, len(matches))
		for _, m := range matches {
			out = append(out, cmd(m.Text))
		}
		return out
	}
}

// XFirst transforms only the first match of re, leaving the rest of the text
// untouched. Text without a match is returned unchanged.
func XFirst(re *regexp.Regexp, cmd Command) Command {
	return func(text string) string {
		matches := FindMatches(re, text)
		if len(matches) == 0 {
			return text
		}
		m := matches[0]
		return text[:m.Start] + cmd(m.Text) + text[m.End:]
	}
}

// IfMatch branches on a pure existence test: thenCmd is applied when re
// matches anywhere in the text, elseCmd otherwise.
func IfMatch(re *regexp.Regexp, thenCmd, elseCmd Command) Command {
	return func(text string) string {
		if re.MatchString(text) {
			return thenCmd(text)
		}
		return elseCmd(text)
	}
}
