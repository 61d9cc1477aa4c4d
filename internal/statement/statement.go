// Package statement matches PSL statement lines against an ordered rule table
// and turns each match into an immutable Statement.
//
// Two error tiers come out of this package. Errors from Dispatch other than
// ErrNoMatch are fatal (a bad expression, an untypeable variable) and must
// stop the compile. ErrNoMatch and errors from Statement.Apply concern one
// line only and are meant to be collected.
package statement

import (
	"errors"
	"fmt"

	"github.com/calumari/pslc/internal/codegen"
	"github.com/calumari/pslc/internal/value"
)

var (
	ErrNoMatch         = errors.New("unrecognized statement")
	ErrUntypedVariable = errors.New("cannot infer variable type")
	ErrOutsideBlock    = errors.New("statement outside of a block")
	ErrInsideBlock     = errors.New("declaration inside a block")
	ErrNoStage         = errors.New("no stage: open a block or prefix the statement with vertex or fragment")
	ErrUnbalancedEnd   = errors.New("end without an open block")
	ErrDanglingBranch  = errors.New("elif or else without an open if")
	ErrUnknownBuiltin  = errors.New("unknown built-in")
	ErrSlotRange       = errors.New("fragment output slot out of range")
)

// Statement is a parsed line ready to be emitted.
type Statement interface {
	// Kind names the rule that produced the statement.
	Kind() string
	Apply(g codegen.Generator) error
}

type VertexInput struct {
	Type     value.Type
	Name     string
	Semantic string
}

func (VertexInput) Kind() string { return "vertex input" }

func (s VertexInput) Apply(g codegen.Generator) error {
	if err := topLevel(g); err != nil {
		return err
	}
	g.Comment(codegen.StageVertex, "semantic "+s.Semantic)
	g.VertexInput(s.Type, s.Name, s.Semantic)
	return nil
}

type FragmentOutput struct {
	Type value.Type
	Name string
	Slot int
}

func (FragmentOutput) Kind() string { return "fragment output" }

func (s FragmentOutput) Apply(g codegen.Generator) error {
	if err := topLevel(g); err != nil {
		return err
	}
	g.Comment(codegen.StageFragment, fmt.Sprintf("slot %d", s.Slot))
	g.FragmentOutput(s.Type, s.Name, s.Slot)
	return nil
}

// Common is a value written by the vertex stage and read by the fragment
// stage under the same name.
type Common struct {
	Type value.Type
	Name string
}

func (Common) Kind() string { return "common" }

func (s Common) Apply(g codegen.Generator) error {
	if err := topLevel(g); err != nil {
		return err
	}
	g.Common(s.Type, s.Name)
	return nil
}

type Uniform struct {
	Type     value.Type
	Name     string
	Property string // empty for a plain uniform
}

func (Uniform) Kind() string { return "uniform" }

func (s Uniform) Apply(g codegen.Generator) error {
	if err := topLevel(g); err != nil {
		return err
	}
	if s.Property != "" {
		g.Comment(codegen.StageVertex, "property "+s.Property)
		g.Comment(codegen.StageFragment, "property "+s.Property)
	}
	g.Uniform(s.Type, s.Name, s.Property)
	return nil
}

// Uses brings a logical alias into scope: a target built-in when Spelling is
// empty, otherwise a custom spelling.
type Uses struct {
	Alias    string
	Spelling string
}

func (Uses) Kind() string { return "uses" }

func (s Uses) Apply(g codegen.Generator) error {
	spelling := s.Spelling
	if spelling == "" {
		b, ok := g.Builtin(s.Alias)
		if !ok {
			return fmt.Errorf("%w %q for target %s", ErrUnknownBuiltin, s.Alias, g.Target())
		}
		spelling = b
	}
	g.Use(s.Alias, spelling)
	return nil
}

type Entrypoint struct {
	Stage codegen.Stage
}

func (Entrypoint) Kind() string { return "entrypoint" }

func (s Entrypoint) Apply(g codegen.Generator) error {
	if err := topLevel(g); err != nil {
		return err
	}
	g.BeginEntrypoint(s.Stage)
	return nil
}

type Function struct {
	Stage  codegen.Stage
	Return value.Type
	Name   string
	Params []codegen.Param
}

func (Function) Kind() string { return "function" }

func (s Function) Apply(g codegen.Generator) error {
	if err := topLevel(g); err != nil {
		return err
	}
	g.BeginFunction(s.Stage, s.Return, s.Name, s.Params)
	return nil
}

type End struct{}

func (End) Kind() string { return "end" }

func (End) Apply(g codegen.Generator) error {
	if g.Indent() == 0 {
		return ErrUnbalancedEnd
	}
	g.End()
	return nil
}

// Variable declares a variable. Stage is StageNone when the line had no
// stage prefix; the open block decides then. Init may be nil.
type Variable struct {
	Stage codegen.Stage
	Type  value.Type
	Name  string
	Init  value.Value
}

func (Variable) Kind() string { return "variable" }

func (s Variable) Apply(g codegen.Generator) error {
	stage, err := resolveStage(s.Stage, g)
	if err != nil {
		return err
	}
	g.Variable(stage, s.Type, s.Name, s.Init)
	return nil
}

type Assign struct {
	Stage  codegen.Stage
	Target string
	Value  value.Value
}

func (Assign) Kind() string { return "assignment" }

func (s Assign) Apply(g codegen.Generator) error {
	stage, err := resolveStage(s.Stage, g)
	if err != nil {
		return err
	}
	g.Assign(stage, s.Target, s.Value)
	return nil
}

// Return carries value.Void for a bare return.
type Return struct {
	Value value.Value
}

func (Return) Kind() string { return "return" }

func (s Return) Apply(g codegen.Generator) error {
	if err := inBlock(g); err != nil {
		return err
	}
	g.Return(s.Value)
	return nil
}

type If struct {
	Cond value.Value
}

func (If) Kind() string { return "if" }

func (s If) Apply(g codegen.Generator) error {
	if err := inBlock(g); err != nil {
		return err
	}
	g.BeginIf(s.Cond)
	return nil
}

type Elif struct {
	Cond value.Value
}

func (Elif) Kind() string { return "elif" }

func (s Elif) Apply(g codegen.Generator) error {
	if err := inBranch(g); err != nil {
		return err
	}
	g.BeginElif(s.Cond)
	return nil
}

type Else struct{}

func (Else) Kind() string { return "else" }

func (Else) Apply(g codegen.Generator) error {
	if err := inBranch(g); err != nil {
		return err
	}
	g.BeginElse()
	return nil
}

type While struct {
	Cond value.Value
}

func (While) Kind() string { return "while" }

func (s While) Apply(g codegen.Generator) error {
	if err := inBlock(g); err != nil {
		return err
	}
	g.BeginWhile(s.Cond)
	return nil
}

// For counts Counter from From up to, not including, To.
type For struct {
	Counter string
	From    value.Value
	To      value.Value
}

func (For) Kind() string { return "for" }

func (s For) Apply(g codegen.Generator) error {
	if err := inBlock(g); err != nil {
		return err
	}
	g.BeginFor(s.Counter, s.From, s.To)
	return nil
}

type Skip struct{}

func (Skip) Kind() string { return "skip" }

func (Skip) Apply(g codegen.Generator) error {
	if err := inBlock(g); err != nil {
		return err
	}
	g.Skip()
	return nil
}

// Config is a raw manifest line.
type Config struct {
	Text string
}

func (Config) Kind() string { return "config" }

func (s Config) Apply(g codegen.Generator) error {
	g.ConfigLine(s.Text)
	return nil
}

func topLevel(g codegen.Generator) error {
	if g.Indent() != 0 {
		return ErrInsideBlock
	}
	return nil
}

func inBlock(g codegen.Generator) error {
	if g.Context() == codegen.StageNone {
		return ErrOutsideBlock
	}
	return nil
}

// inBranch requires the innermost open block to be an if that has not
// reached its else branch yet.
func inBranch(g codegen.Generator) error {
	if b := g.Block(); b != codegen.BlockIf {
		return fmt.Errorf("%w (innermost block: %s)", ErrDanglingBranch, b)
	}
	return nil
}

func resolveStage(explicit codegen.Stage, g codegen.Generator) (codegen.Stage, error) {
	if explicit != codegen.StageNone {
		return explicit, nil
	}
	if s := g.Context(); s != codegen.StageNone {
		return s, nil
	}
	return codegen.StageNone, ErrNoStage
}
