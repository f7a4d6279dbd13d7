package engine

import (
	"github.com/rs/zerolog"

	"github.com/arthur-debert/regions/pkg/logging"
	"github.com/arthur-debert/regions/pkg/registry"
)

// Registry holds compiled rules and evaluates them, in registration order,
// against incoming documents.
type Registry struct {
	rules  registry.Registry[*CompiledPattern]
	logger zerolog.Logger
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		rules:  registry.New[*CompiledPattern](),
		logger: logging.GetLogger("engine.registry"),
	}
}

// Add compiles def and registers it. A rule with the same name is replaced
// in place, keeping its position in the evaluation order.
func (r *Registry) Add(def PatternDef) error {
	cp, err := Compile(def)
	if err != nil {
		return err
	}
	r.rules.Set(def.Name, cp)
	r.logger.Debug().
		Str("rule", def.Name).
		Str("watch", def.Watch).
		Msg("Registered pattern rule")
	return nil
}

// Remove unregisters a rule, reporting whether it existed.
func (r *Registry) Remove(name string) bool {
	return r.rules.Remove(name) == nil
}

// Get returns the compiled form of a registered rule.
func (r *Registry) Get(name string) (*CompiledPattern, bool) {
	cp, err := r.rules.Get(name)
	if err != nil {
		return nil, false
	}
	return cp, true
}

// List returns registered rule names in registration order.
func (r *Registry) List() []string {
	return r.rules.List()
}

// Clear removes all rules.
func (r *Registry) Clear() {
	r.rules.Clear()
}

// Size returns the number of registered rules.
func (r *Registry) Size() int {
	return r.rules.Count()
}

type docKey struct {
	key string
	typ string
}

// Apply evaluates every registered rule against doc and returns the emitted
// reactions. A reaction whose rule declares a registered cascade target is
// fed back through the engine breadth-first; the visited set, keyed by the
// reaction's (key, type), ensures each distinct document is processed at
// most once, so cycles and self-referential rules terminate. A duplicate
// (key, type) reaction is still returned, just not re-processed.
func (r *Registry) Apply(doc Document) []Document {
	var reactions []Document

	queue := []Document{doc}
	visited := map[docKey]bool{{doc.Key, doc.Type}: true}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, name := range r.rules.List() {
			cp, err := r.rules.Get(name)
			if err != nil {
				// Removed since the List snapshot; skip.
				continue
			}
			reaction, ok := ApplyPattern(cp, cur)
			if !ok {
				continue
			}
			reactions = append(reactions, *reaction)
			r.logger.Debug().
				Str("rule", name).
				Str("document", cur.Key).
				Str("reaction", reaction.Key).
				Msg("Rule fired")

			if cp.Def.Then != "" && r.rules.Has(cp.Def.Then) {
				k := docKey{reaction.Key, reaction.Type}
				if !visited[k] {
					visited[k] = true
					queue = append(queue, *reaction)
				}
			}
		}
	}

	r.logger.Debug().
		Str("document", doc.Key).
		Int("reactions", len(reactions)).
		Msg("Apply completed")

	return reactions
}

// ApplyOne evaluates a single named rule against doc, without cascading.
// ok is false when the rule is not registered or does not fire.
func (r *Registry) ApplyOne(name string, doc Document) (*Document, bool) {
	cp, err := r.rules.Get(name)
	if err != nil {
		return nil, false
	}
	return ApplyPattern(cp, doc)
}

// WouldMatch is a dry run: it returns the names of rules whose routing and
// gating steps pass for doc, performing no extraction or substitution.
func (r *Registry) WouldMatch(doc Document) []string {
	var names []string
	for _, name := range r.rules.List() {
		cp, err := r.rules.Get(name)
		if err != nil {
			continue
		}
		if cp.Filter(doc) {
			names = append(names, name)
		}
	}
	return names
}
