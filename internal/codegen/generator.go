// Package codegen holds the target-independent code generator contract and
// the GLSL reference target.
//
// A generator owns three append-only text buffers (vertex stage, fragment
// stage, configuration manifest), an indentation counter and the stage of the
// block currently open. It performs no validation: callers decide what is
// legal, the generator only emits.
package codegen

import (
	"errors"
	"fmt"
	"sort"

	"github.com/calumari/pslc/internal/value"
)

// Stage selects an output buffer.
type Stage uint8

const (
	StageNone Stage = iota
	StageVertex
	StageFragment
	StageConfig
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageConfig:
		return "config"
	}
	return "none"
}

// ParseStage maps the PSL stage keyword to a shader stage.
func ParseStage(word string) (Stage, bool) {
	switch word {
	case "vertex":
		return StageVertex, true
	case "fragment":
		return StageFragment, true
	}
	return StageNone, false
}

// Block is the kind of an open block.
type Block uint8

const (
	BlockNone Block = iota
	BlockFunction
	BlockIf
	BlockElse
	BlockWhile
	BlockFor
)

func (b Block) String() string {
	switch b {
	case BlockFunction:
		return "function"
	case BlockIf:
		return "if"
	case BlockElse:
		return "else"
	case BlockWhile:
		return "while"
	case BlockFor:
		return "for"
	}
	return "none"
}

// Param is one function parameter.
type Param struct {
	Type value.Type
	Name string
}

// Generator is implemented by every output target.
type Generator interface {
	Target() string
	Version() string

	// Preamble records the target version and writes the version header of
	// every buffer.
	Preamble(version string) error

	VertexInput(t value.Type, name, semantic string)
	FragmentOutput(t value.Type, name string, slot int)
	Common(t value.Type, name string)
	// Uniform declares name in both stages; a non-empty property also binds
	// it in the manifest.
	Uniform(t value.Type, name, property string)
	// Variable declares a local or global; init may be nil.
	Variable(stage Stage, t value.Type, name string, init value.Value)
	Assign(stage Stage, target string, v value.Value)

	// Use registers a logical alias for a target-language spelling.
	Use(alias, spelling string)
	// Alias resolves a logical alias registered with Use or built in.
	// Assignment targets and every rendered expression go through it.
	Alias(name string) (string, bool)
	// Builtin resolves an alias from the target's own table only.
	Builtin(name string) (string, bool)

	BeginEntrypoint(stage Stage)
	BeginFunction(stage Stage, ret value.Type, name string, params []Param)
	BeginIf(cond value.Value)
	BeginElif(cond value.Value)
	BeginElse()
	BeginWhile(cond value.Value)
	BeginFor(counter string, from, to value.Value)
	End()

	Return(v value.Value)
	Skip()

	Comment(stage Stage, text string)
	ConfigLine(text string)

	// Context is the stage of the open block, StageNone at top level.
	Context() Stage
	Indent() int
	// Block is the kind of the innermost open block. An if block becomes
	// BlockElse once its else branch opens.
	Block() Block

	// WriteOut materializes the buffers.
	WriteOut() Artifacts
}

// ErrUnknownTarget is returned by New for target names nobody registered.
var ErrUnknownTarget = errors.New("unknown output target")

var targets = map[string]func() (Generator, error){
	"glsl": newGLSL,
}

// New creates a generator for target.
func New(target string) (Generator, error) {
	ctor, ok := targets[target]
	if !ok {
		return nil, fmt.Errorf("%w %q (known: %v)", ErrUnknownTarget, target, Targets())
	}
	return ctor()
}

// Targets lists registered target names in order.
func Targets() []string {
	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
