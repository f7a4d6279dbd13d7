// Package config loads and saves declarative pattern-rule files. Rule files
// hold a top-level `patterns` list of engine.PatternDef tables and may be
// written in TOML or YAML; the parser is chosen by file extension. Loaded
// definitions keep their file order, which becomes the evaluation order once
// registered.
package config

import (
	"os"
	"path/filepath"
	"strings"

	ktoml "github.com/knadh/koanf/parsers/toml"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/regions/pkg/engine"
	"github.com/arthur-debert/regions/pkg/errors"
	"github.com/arthur-debert/regions/pkg/logging"
)

// patternsKey is the top-level key holding rule definitions.
const patternsKey = "patterns"

// rulesFile is the on-disk shape of a rule file.
type rulesFile struct {
	Patterns []engine.PatternDef `toml:"patterns" yaml:"patterns" koanf:"patterns"`
}

// LoadRules reads pattern definitions from a TOML or YAML file.
func LoadRules(path string) ([]engine.PatternDef, error) {
	parser, err := parserForPath(path)
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad,
			"failed to load rules from %s", path)
	}

	defs, err := unmarshalRules(k)
	if err != nil {
		return nil, err
	}

	logger := logging.GetLogger("config.rules")
	logger.Debug().
		Str("path", path).
		Int("ruleCount", len(defs)).
		Msg("Loaded pattern rules")

	return defs, nil
}

// LoadRulesBytes parses pattern definitions from in-memory data. Format is
// "toml" or "yaml".
func LoadRulesBytes(data []byte, format string) ([]engine.PatternDef, error) {
	parser, err := parserForFormat(format)
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse,
			"failed to parse rules data")
	}

	return unmarshalRules(k)
}

// RegisterAll compiles and registers every definition into reg in order.
// The first malformed definition aborts registration.
func RegisterAll(reg *engine.Registry, defs []engine.PatternDef) error {
	for _, def := range defs {
		if err := reg.Add(def); err != nil {
			return errors.Wrapf(err, errors.ErrRuleInvalid,
				"failed to register pattern '%s'", def.Name)
		}
	}
	return nil
}

// LoadInto loads a rule file and registers its definitions into reg.
func LoadInto(reg *engine.Registry, path string) error {
	defs, err := LoadRules(path)
	if err != nil {
		return err
	}
	return RegisterAll(reg, defs)
}

// SaveTOML writes definitions as a TOML rule file.
func SaveTOML(path string, defs []engine.PatternDef) error {
	b, err := gotoml.Marshal(rulesFile{Patterns: defs})
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to marshal rules to TOML")
	}
	return writeRulesFile(path, b)
}

// SaveYAML writes definitions as a YAML rule file.
func SaveYAML(path string, defs []engine.PatternDef) error {
	b, err := yaml.Marshal(rulesFile{Patterns: defs})
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to marshal rules to YAML")
	}
	return writeRulesFile(path, b)
}

func writeRulesFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "failed to write rules file %s", path)
	}
	return nil
}

func unmarshalRules(k *koanf.Koanf) ([]engine.PatternDef, error) {
	var defs []engine.PatternDef
	if err := k.Unmarshal(patternsKey, &defs); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse,
			"failed to decode pattern definitions")
	}
	return validateRules(defs)
}

func validateRules(defs []engine.PatternDef) ([]engine.PatternDef, error) {
	for i, def := range defs {
		if def.Name == "" {
			return nil, errors.Newf(errors.ErrConfigValid, "pattern %d has no name", i)
		}
		if def.Watch == "" {
			return nil, errors.Newf(errors.ErrConfigValid, "pattern '%s' has no watch glob", def.Name)
		}
	}
	return defs, nil
}

func parserForPath(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return ktoml.Parser(), nil
	case ".yaml", ".yml":
		return kyaml.Parser(), nil
	default:
		return nil, errors.Newf(errors.ErrConfigParse,
			"unsupported rules file format: %s", filepath.Ext(path))
	}
}

func parserForFormat(format string) (koanf.Parser, error) {
	switch strings.ToLower(format) {
	case "toml":
		return ktoml.Parser(), nil
	case "yaml", "yml":
		return kyaml.Parser(), nil
	default:
		return nil, errors.Newf(errors.ErrConfigParse,
			"unsupported rules format: %s", format)
	}
}
