package engine

import (
	"encoding/json"
	"regexp"

	"github.com/arthur-debert/regions/pkg/errors"
	"github.com/arthur-debert/regions/pkg/glob"
	"github.com/arthur-debert/regions/pkg/template"
)

// Document is a keyed, typed payload record flowing through the engine.
// A reaction document is a new, independent value, never an alias of its
// source.
type Document struct {
	Key      string
	Type     string
	Metadata map[string]interface{}
	Data     interface{}
}

// PatternDef is the declarative form of a rule. Extract, Guard, and Veto are
// regex sources tested against the serialized document payload; EmitPath and
// Template may contain ${...} placeholders. Then optionally names a rule the
// emitted reaction cascades into.
type PatternDef struct {
	Name     string      `koanf:"name" toml:"name" yaml:"name"`
	Watch    string      `koanf:"watch" toml:"watch" yaml:"watch"`
	Extract  string      `koanf:"x" toml:"x,omitempty" yaml:"x,omitempty"`
	Guard    string      `koanf:"g" toml:"g,omitempty" yaml:"g,omitempty"`
	Veto     string      `koanf:"v" toml:"v,omitempty" yaml:"v,omitempty"`
	Emit     string      `koanf:"emit" toml:"emit" yaml:"emit"`
	EmitPath string      `koanf:"emit_path" toml:"emit_path" yaml:"emit_path"`
	Then     string      `koanf:"then" toml:"then,omitempty" yaml:"then,omitempty"`
	// Template stays last so TOML marshaling keeps scalar fields out of the
	// [patterns.template] table.
	Template interface{} `koanf:"template" toml:"template,omitempty" yaml:"template,omitempty"`
}

// CompiledPattern is the immutable compiled form of a rule: the watch glob
// and regex sources are resolved once at compile time.
type CompiledPattern struct {
	Def     PatternDef
	watch   *glob.Glob
	extract *regexp.Regexp
	guard   *regexp.Regexp
	veto    *regexp.Regexp
}

// Compile resolves a definition into its compiled form. Malformed regex
// sources are rejected here; apply-time evaluation cannot fail.
func Compile(def PatternDef) (*CompiledPattern, error) {
	if def.Name == "" {
		return nil, errors.New(errors.ErrRuleInvalid, "pattern requires a name")
	}
	if def.Watch == "" {
		return nil, errors.Newf(errors.ErrRuleInvalid, "pattern '%s' requires a watch glob", def.Name)
	}

	cp := &CompiledPattern{
		Def:   def,
		watch: glob.Compile(def.Watch),
	}

	var err error
	if def.Extract != "" {
		if cp.extract, err = regexp.Compile(def.Extract); err != nil {
			return nil, errors.Wrapf(err, errors.ErrPatternInvalid,
				"invalid extract pattern for rule '%s'", def.Name)
		}
	}
	if def.Guard != "" {
		if cp.guard, err = regexp.Compile(def.Guard); err != nil {
			return nil, errors.Wrapf(err, errors.ErrPatternInvalid,
				"invalid guard pattern for rule '%s'", def.Name)
		}
	}
	if def.Veto != "" {
		if cp.veto, err = regexp.Compile(def.Veto); err != nil {
			return nil, errors.Wrapf(err, errors.ErrPatternInvalid,
				"invalid veto pattern for rule '%s'", def.Name)
		}
	}

	return cp, nil
}

// Filter runs the routing and gating steps only: watch glob against the
// document key, then guard and veto against the serialized payload. This is
// the dry-run half of rule evaluation.
func (p *CompiledPattern) Filter(doc Document) bool {
	if !p.watch.Matches(doc.Key) {
		return false
	}
	payload := serializePayload(doc.Data)
	if p.guard != nil && !p.guard.MatchString(payload) {
		return false
	}
	if p.veto != nil && p.veto.MatchString(payload) {
		return false
	}
	return true
}

// ApplyPattern evaluates a single compiled rule against a document and
// returns the reaction it emits, or ok=false when the rule does not fire.
// An extract pattern that matches nothing leaves the capture list empty; the
// rule still fires.
func ApplyPattern(p *CompiledPattern, doc Document) (*Document, bool) {
	if !p.Filter(doc) {
		return nil, false
	}

	payload := serializePayload(doc.Data)

	var captures []string
	if p.extract != nil {
		if m := p.extract.FindStringSubmatch(payload); m != nil {
			captures = m
		}
	}

	data, _ := doc.Data.(map[string]interface{})
	if data == nil {
		data = map[string]interface{}{}
	}

	ctx := template.Context{
		Captures: captures,
		Path:     template.ParsePath(doc.Key),
		Data:     data,
		Input:    payload,
	}

	return &Document{
		Key:  template.SubstituteString(p.Def.EmitPath, ctx),
		Type: p.Def.Emit,
		Metadata: map[string]interface{}{
			"version":     1,
			"produced_by": p.Def.Name,
		},
		Data: template.SubstituteValue(p.Def.Template, ctx),
	}, true
}

// serializePayload renders a document payload for regex testing: strings
// pass through, nil becomes empty, anything structured serializes to
// canonical JSON (sorted map keys).
func serializePayload(data interface{}) string {
	switch v := data.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
