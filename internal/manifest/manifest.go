// Package manifest reads the configuration artifact a compile produces.
//
// The manifest is line oriented: lines are split exactly as PSL source is,
// each line is parsed on its own, and lines that fit no known entry are kept
// verbatim in Raw rather than rejected.
package manifest

import (
	"errors"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/calumari/pslc/internal/preprocess"
)

// ErrNoTarget is returned for manifests without a target line.
var ErrNoTarget = errors.New("manifest has no target line")

// Binding ties a shader name to a host-side semantic or property.
type Binding struct {
	Name   string
	Target string
}

// Slot ties a fragment output to its numeric location.
type Slot struct {
	Name string
	Slot int
}

// Manifest is the parsed configuration artifact.
type Manifest struct {
	Target  string
	Version string
	Inputs  []Binding
	Outputs []Slot
	Uses    []Binding
	Raw     []string
}

var manifestLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"[^"]*"`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Punct", Pattern: `=`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})

type entry struct {
	Target *targetEntry `  "target" @@`
	Input  *inputEntry  `| "input" @@`
	Output *outputEntry `| "output" @@`
	Use    *useEntry    `| "use" @@`
}

type targetEntry struct {
	Name    string `@Ident`
	Version string `@String`
}

type inputEntry struct {
	Name     string `@Ident "="`
	Semantic string `@Ident`
}

type outputEntry struct {
	Name string `@Ident "="`
	Slot int    `@Int`
}

type useEntry struct {
	Name     string `@Ident "as"`
	Property string `@Ident`
}

var parser = participle.MustBuild[entry](
	participle.Lexer(manifestLexer),
	participle.Unquote("String"),
	participle.Elide("Whitespace"),
)

// Parse reads manifest text.
func Parse(text string) (*Manifest, error) {
	m := &Manifest{}
	for _, line := range preprocess.Lines(text) {
		e, err := parser.ParseString("", line.Text)
		if err != nil {
			m.Raw = append(m.Raw, line.Text)
			continue
		}
		switch {
		case e.Target != nil:
			m.Target, m.Version = e.Target.Name, e.Target.Version
		case e.Input != nil:
			m.Inputs = append(m.Inputs, Binding{Name: e.Input.Name, Target: e.Input.Semantic})
		case e.Output != nil:
			m.Outputs = append(m.Outputs, Slot{Name: e.Output.Name, Slot: e.Output.Slot})
		case e.Use != nil:
			m.Uses = append(m.Uses, Binding{Name: e.Use.Name, Target: e.Use.Property})
		}
	}
	if m.Target == "" {
		return m, ErrNoTarget
	}
	return m, nil
}

// Input returns the semantic bound to a vertex input.
func (m *Manifest) Input(name string) (string, bool) { return lookup(m.Inputs, name) }

// Use returns the property bound to a uniform.
func (m *Manifest) Use(name string) (string, bool) { return lookup(m.Uses, name) }

// Output returns the slot of a fragment output.
func (m *Manifest) Output(name string) (int, bool) {
	for _, s := range m.Outputs {
		if s.Name == name {
			return s.Slot, true
		}
	}
	return 0, false
}

func lookup(bs []Binding, name string) (string, bool) {
	for _, b := range bs {
		if b.Name == name {
			return b.Target, true
		}
	}
	return "", false
}
