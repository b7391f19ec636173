package nagifront

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/dekarrin/nagi/internal/ebnf/lex"
	"github.com/dekarrin/nagi/internal/ebnf/packrat"
	"github.com/dekarrin/nagi/internal/nagilang"
)

// RuleSpec is one manifest entry: the EBNF source file a rule's grammar
// lives in, and which kind of AST builder the project expects that
// rule to be wired to ("none", "parsed", or "on_match").
type RuleSpec struct {
	Source  string `toml:"source"`
	Builder string `toml:"builder"`
}

// Manifest describes a grammar project: its start rule, and the table
// of rules it expects the compiled-in Go grammar to provide. It plays
// the same role for a grammar project that a TQW manifest plays for a
// game world — a TOML index of constituent pieces — except the pieces
// here are rule names backed by Go code rather than files to concatenate,
// since an AST builder is a closure and cannot itself live in TOML.
type Manifest struct {
	Start string              `toml:"start"`
	Rules map[string]RuleSpec `toml:"rules"`
}

// LoadManifest reads and parses a grammar manifest from path.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, &ManifestError{Path: path, Err: err}
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return Manifest{}, &ManifestError{Path: path, Err: err}
	}
	if len(m.Rules) == 0 {
		return Manifest{}, &ManifestError{Path: path, Err: fmt.Errorf("does not declare any rules")}
	}
	if m.Start == "" {
		return Manifest{}, &ManifestError{Path: path, Err: fmt.Errorf("does not name a start rule")}
	}
	return m, nil
}

// Validate checks the manifest against a compiled-in rule table: every
// rule it names must be registered, the start rule must be among them,
// and — where the manifest bothers to say — the registered builder kind
// must match what the manifest declares. This catches a manifest that
// has drifted out of sync with the Go code that actually backs it.
func (m Manifest) Validate(tables []packrat.RuleTable[lex.Token, nagilang.Node, nagilang.Parts]) error {
	have := make(map[string]string, len(tables))
	for _, t := range tables {
		have[t.Rule.Name] = builderKindName(t.Builder)
	}

	if _, ok := have[m.Start]; !ok {
		return fmt.Errorf("start rule %q is not registered", m.Start)
	}

	for name, spec := range m.Rules {
		kind, ok := have[name]
		if !ok {
			return fmt.Errorf("rule %q is declared in the manifest but not registered", name)
		}
		if spec.Builder != "" && spec.Builder != kind {
			return fmt.Errorf("rule %q: manifest declares builder %q, registered table uses %q", name, spec.Builder, kind)
		}
	}
	return nil
}

func builderKindName(b packrat.ASTBuilder[lex.Token, nagilang.Node, nagilang.Parts]) string {
	switch b.Kind {
	case packrat.BuilderNone:
		return "none"
	case packrat.BuilderOnMatch:
		return "on_match"
	case packrat.BuilderParsed:
		return "parsed"
	default:
		return "unknown"
	}
}
