package command

import "regexp"

// Match records one non-overlapping match of a pattern against a text.
// Groups holds the submatch values; Groups[0] equals Text. A capture group
// that did not participate in the match is the empty string.
type Match struct {
	Text   string
	Start  int
	End    int
	Groups []string
}

// FindMatches returns the ordered sequence of all non-overlapping matches of
// re in text, leftmost first, with the scan resuming immediately after each
// match's end. A zero-length match advances the scan position one byte past
// the match start so that patterns matching the empty string still terminate.
// No matches yields an empty sequence, never an error.
func FindMatches(re *regexp.Regexp, text string) []Match {
	var matches []Match
	pos := 0
	for pos <= len(text) {
		loc := re.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		groups := make([]string, re.NumSubexp()+1)
		for i := range groups {
			if loc[2*i] >= 0 {
				groups[i] = text[pos+loc[2*i] : pos+loc[2*i+1]]
			}
		}
		matches = append(matches, Match{
			Text:   text[start:end],
			Start:  start,
			End:    end,
			Groups: groups,
		})
		if end == start {
			pos = start + 1
		} else {
			pos = end
		}
	}
	return matches
}
