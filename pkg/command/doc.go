// Package command implements the structural-regular-expression command
// algebra: small pure string transformations built from a pattern matcher
// and composed into pipelines.
//
// A Command is a function from string to string. Operators partition text
// into matching and non-matching regions against a *regexp.Regexp and apply
// a Command to one side of the partition:
//
//   - X applies the command to every match region
//   - Y applies the command to every non-match region
//   - G applies the command to the whole text when the pattern matches
//   - V applies the command to the whole text when the pattern does not match
//   - S performs a global substitution with backreference support
//   - N and L select character and line ranges with Python-slice indexing
//   - Pipe chains commands left to right
//
// No operator ever fails: a pattern that does not match falls back to a
// defined default (usually the input unchanged). The package does not
// implement a regex engine; it consumes the standard regexp package as the
// host matching capability.
package command
