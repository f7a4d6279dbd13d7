// Package engine evaluates declarative pattern rules against keyed, typed
// documents ("scrolls"). Each rule routes on a watch glob over the document
// key, optionally gates on guard/veto regexes over the serialized payload,
// extracts capture groups, and emits a derived document built from path and
// payload templates. A rule may cascade its reaction into the engine for
// further processing; a visited set keyed by (key, type) bounds cascades.
//
// The registry is read live during a cascade: rule mutations made while an
// Apply call is in flight are observable by the remainder of that cascade.
// The internal mutex protects registry integrity only; callers that mutate
// rules concurrently with Apply or WouldMatch must serialize those calls
// themselves if they need a consistent rule set.
package engine
