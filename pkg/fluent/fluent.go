// Package fluent wraps the command algebra in a chainable builder. A Builder
// holds a text value and records command steps as an ordered list of
// closures; terminal operations evaluate the recorded pipeline on demand.
//
// Chain methods take pattern source strings and compile them with
// regexp.MustCompile, so a malformed pattern fails at chain construction,
// not at evaluation.
package fluent

import (
	"regexp"

	"github.com/arthur-debert/regions/pkg/command"
)

// Builder accumulates command steps against a held text value.
type Builder struct {
	text  string
	steps []command.Command
}

// Text starts a builder over s.
func Text(s string) *Builder {
	return &Builder{text: s}
}

// X appends an extract-transform step.
func (b *Builder) X(pattern string, cmd command.Command) *Builder {
	b.steps = append(b.steps, command.X(regexp.MustCompile(pattern), cmd))
	return b
}

// Y appends a complement-transform step.
func (b *Builder) Y(pattern string, cmd command.Command) *Builder {
	b.steps = append(b.steps, command.Y(regexp.MustCompile(pattern), cmd))
	return b
}

// G appends a guard step.
func (b *Builder) G(pattern string, cmd command.Command) *Builder {
	b.steps = append(b.steps, command.G(regexp.MustCompile(pattern), cmd))
	return b
}

// V appends a veto step.
func (b *Builder) V(pattern string, cmd command.Command) *Builder {
	b.steps = append(b.steps, command.V(regexp.MustCompile(pattern), cmd))
	return b
}

// S appends a global substitution step.
func (b *Builder) S(pattern, replacement string) *Builder {
	b.steps = append(b.steps, command.S(regexp.MustCompile(pattern), replacement))
	return b
}

// C appends a constant step.
func (b *Builder) C(value string) *Builder {
	b.steps = append(b.steps, command.C(value))
	return b
}

// D appends a delete step.
func (b *Builder) D() *Builder {
	b.steps = append(b.steps, command.D())
	return b
}

// P appends an identity step.
func (b *Builder) P() *Builder {
	b.steps = append(b.steps, command.P())
	return b
}

// N appends a character-range step.
func (b *Builder) N(start, end int, cmd command.Command) *Builder {
	b.steps = append(b.steps, command.N(start, end, cmd))
	return b
}

// L appends a line-range step.
func (b *Builder) L(start, end int, cmd command.Command) *Builder {
	b.steps = append(b.steps, command.L(start, end, cmd))
	return b
}

// Value evaluates the recorded steps left to right over the held text.
func (b *Builder) Value() string {
	return command.Pipe(b.steps...)(b.text)
}

// Matches returns the text of every match of pattern in the evaluated value.
func (b *Builder) Matches(pattern string) []string {
	ms := command.FindMatches(regexp.MustCompile(pattern), b.Value())
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Text
	}
	return out
}

// MatchDetails returns full match records for pattern over the evaluated
// value.
func (b *Builder) MatchDetails(pattern string) []command.Match {
	return command.FindMatches(regexp.MustCompile(pattern), b.Value())
}

// Split splits the evaluated value around every match of pattern.
func (b *Builder) Split(pattern string) []string {
	return regexp.MustCompile(pattern).Split(b.Value(), -1)
}

// Test reports whether pattern matches anywhere in the evaluated value.
func (b *Builder) Test(pattern string) bool {
	return regexp.MustCompile(pattern).MatchString(b.Value())
}
