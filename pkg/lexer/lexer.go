// Package lexer compiles a list of named token patterns into a single
// alternation and scans input into a flat, ordered token sequence. Spans the
// combined pattern cannot match are surfaced as data, as tokens of kind
// ErrorKind, never as an error value: with those retained the token sequence
// covers every byte of the input with no gaps and no overlaps.
package lexer

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/regions/pkg/errors"
	"github.com/arthur-debert/regions/pkg/logging"
)

// ErrorKind is the reserved token kind covering unmatched input spans.
const ErrorKind = "ERROR"

// TokenDef defines one token: a name, a regex source, and whether matches
// should be consumed without being emitted.
type TokenDef struct {
	Name    string
	Pattern string
	Skip    bool
}

// Token is one classified run of input. Groups holds the defining pattern's
// own capture groups; Start and End are byte offsets into the scanned text.
type Token struct {
	Kind   string
	Value  string
	Groups []string
	Start  int
	End    int
}

// Lexer is a compiled token scanner. It is immutable after New and safe for
// concurrent use.
type Lexer struct {
	defs     []TokenDef
	combined *regexp.Regexp
	offsets  []int // absolute index of each def's wrapper capture group
	subexps  []int // each def's own internal capture-group count
	logger   zerolog.Logger
}

// New compiles the token definitions into a single combined alternation.
// Sub-pattern i is wrapped in its own capturing group; the absolute group
// index of each wrapper accounts for every prior sub-pattern's internal
// capture groups (a sub-pattern with k internal groups occupies k+1 slots).
// Malformed patterns are rejected here, not at scan time.
func New(defs []TokenDef) (*Lexer, error) {
	if len(defs) == 0 {
		return nil, errors.New(errors.ErrLexerInvalid, "lexer requires at least one token definition")
	}

	logger := logging.GetLogger("lexer")
	offsets := make([]int, len(defs))
	subexps := make([]int, len(defs))
	parts := make([]string, len(defs))

	next := 1
	for i, def := range defs {
		sub, err := regexp.Compile(def.Pattern)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrPatternInvalid,
				"invalid pattern for token '%s'", def.Name)
		}
		offsets[i] = next
		subexps[i] = sub.NumSubexp()
		next += subexps[i] + 1
		parts[i] = "(" + def.Pattern + ")"
	}

	combined, err := regexp.Compile(strings.Join(parts, "|"))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrPatternInvalid,
			"failed to compile combined token pattern")
	}

	logger.Debug().
		Int("tokenCount", len(defs)).
		Ints("groupOffsets", offsets).
		Msg("Compiled lexer")

	return &Lexer{
		defs:     defs,
		combined: combined,
		offsets:  offsets,
		subexps:  subexps,
		logger:   logger,
	}, nil
}

// Scan tokenizes text. Gaps before, between, and after matches become
// ErrorKind tokens; skip-marked definitions are consumed but not emitted.
// Zero-length matches advance the scan one byte past the match start, same
// as the matcher, so scanning always terminates.
func (l *Lexer) Scan(text string) []Token {
	var tokens []Token
	pos := 0
	prevEnd := 0

	for pos <= len(text) {
		loc := l.combined.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]

		if start > prevEnd {
			tokens = append(tokens, Token{
				Kind:  ErrorKind,
				Value: text[prevEnd:start],
				Start: prevEnd,
				End:   start,
			})
		}

		// The first wrapper group that participated identifies the
		// definition that fired.
		fired := -1
		for i := range l.defs {
			if loc[2*l.offsets[i]] >= 0 {
				fired = i
				break
			}
		}

		if fired >= 0 && !l.defs[fired].Skip {
			groups := make([]string, l.subexps[fired])
			for g := 1; g <= l.subexps[fired]; g++ {
				gi := l.offsets[fired] + g
				if loc[2*gi] >= 0 {
					groups[g-1] = text[pos+loc[2*gi] : pos+loc[2*gi+1]]
				}
			}
			tokens = append(tokens, Token{
				Kind:   l.defs[fired].Name,
				Value:  text[start:end],
				Groups: groups,
				Start:  start,
				End:    end,
			})
		}

		prevEnd = end
		if end == start {
			pos = start + 1
		} else {
			pos = end
		}
	}

	if prevEnd < len(text) {
		tokens = append(tokens, Token{
			Kind:  ErrorKind,
			Value: text[prevEnd:],
			Start: prevEnd,
			End:   len(text),
		})
	}

	return tokens
}

// CreateLexer compiles defs and returns the scan function directly, for
// callers that do not need the Lexer value.
func CreateLexer(defs []TokenDef) (func(string) []Token, error) {
	l, err := New(defs)
	if err != nil {
		return nil, err
	}
	return l.Scan, nil
}
