package codegen

import (
	"fmt"
	"strings"

	"github.com/calumari/pslc/internal/value"
)

// glslBuiltins are the logical aliases every GLSL program can assign to or
// read without a uses statement.
var glslBuiltins = map[string]string{
	"outPosition":   "gl_Position",
	"outPointSize":  "gl_PointSize",
	"outDepth":      "gl_FragDepth",
	"inFragCoord":   "gl_FragCoord",
	"inVertexID":    "gl_VertexID",
	"inInstanceID":  "gl_InstanceID",
	"inFrontFacing": "gl_FrontFacing",
	"inPointCoord":  "gl_PointCoord",
}

// glslGenerator emits GLSL vertex and fragment sources.
type glslGenerator struct {
	version string

	// Output buffers, indexed by Stage.
	buffers [StageConfig + 1]strings.Builder

	// Current indentation level
	indent int

	// Stage of the open function or entrypoint
	context Stage

	// Kinds of the open blocks, innermost last
	blocks []Block

	aliases map[string]string
}

func newGLSL() (Generator, error) {
	if err := ensureTemplates(); err != nil {
		return nil, fmt.Errorf("glsl: %w", err)
	}
	g := &glslGenerator{aliases: make(map[string]string, len(glslBuiltins))}
	for alias, spelling := range glslBuiltins {
		g.aliases[alias] = spelling
	}
	return g, nil
}

func (g *glslGenerator) Target() string  { return "glsl" }
func (g *glslGenerator) Version() string { return g.version }

func (g *glslGenerator) Preamble(version string) error {
	g.version = version
	data := preambleModel{
		Target:  g.Target(),
		Version: version,
		ES:      strings.HasSuffix(strings.ToLower(version), " es"),
	}
	for _, stage := range []Stage{StageVertex, StageFragment, StageConfig} {
		if err := preambleTmpl.ExecuteTemplate(&g.buffers[stage], stageTemplates[stage], data); err != nil {
			return fmt.Errorf("glsl: %s preamble: %w", stage, err)
		}
	}
	return nil
}

func (g *glslGenerator) VertexInput(t value.Type, name, semantic string) {
	g.writeLine(StageVertex, "in %s %s;", t.Spelling(), name)
	g.ConfigLine(fmt.Sprintf("input %s = %s", name, semantic))
}

func (g *glslGenerator) FragmentOutput(t value.Type, name string, slot int) {
	g.writeLine(StageFragment, "out %s %s;", t.Spelling(), name)
	g.ConfigLine(fmt.Sprintf("output %s = %d", name, slot))
}

func (g *glslGenerator) Common(t value.Type, name string) {
	g.writeLine(StageVertex, "out %s %s;", t.Spelling(), name)
	g.writeLine(StageFragment, "in %s %s;", t.Spelling(), name)
}

func (g *glslGenerator) Uniform(t value.Type, name, property string) {
	g.writeLine(StageVertex, "uniform %s %s;", t.Spelling(), name)
	g.writeLine(StageFragment, "uniform %s %s;", t.Spelling(), name)
	if property != "" {
		g.ConfigLine(fmt.Sprintf("use %s as %s", name, property))
	}
}

func (g *glslGenerator) Variable(stage Stage, t value.Type, name string, init value.Value) {
	if init == nil {
		g.writeLine(stage, "%s %s;", t.Spelling(), name)
		return
	}
	g.writeLine(stage, "%s %s = %s;", t.Spelling(), name, g.render(init))
}

// Assign resolves aliases on both sides, so outPosition.z becomes
// gl_Position.z.
func (g *glslGenerator) Assign(stage Stage, target string, v value.Value) {
	g.writeLine(stage, "%s = %s;", g.resolve(target), g.render(v))
}

func (g *glslGenerator) Use(alias, spelling string) { g.aliases[alias] = spelling }

func (g *glslGenerator) Alias(name string) (string, bool) {
	s, ok := g.aliases[name]
	return s, ok
}

func (g *glslGenerator) Builtin(name string) (string, bool) {
	s, ok := glslBuiltins[name]
	return s, ok
}

func (g *glslGenerator) BeginEntrypoint(stage Stage) {
	g.context = stage
	g.writeLine(stage, "void main() {")
	g.open(BlockFunction)
}

func (g *glslGenerator) BeginFunction(stage Stage, ret value.Type, name string, params []Param) {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Type.Spelling() + " " + p.Name
	}
	g.context = stage
	g.writeLine(stage, "%s %s(%s) {", ret.Spelling(), name, strings.Join(parts, ", "))
	g.open(BlockFunction)
}

func (g *glslGenerator) BeginIf(cond value.Value) {
	g.writeLine(g.context, "if (%s) {", g.render(cond))
	g.open(BlockIf)
}

// BeginElif and BeginElse continue the innermost block in place; only the
// closing line is written at the outer indent.
func (g *glslGenerator) BeginElif(cond value.Value) {
	g.popIndent()
	g.writeLine(g.context, "} else if (%s) {", g.render(cond))
	g.pushIndent()
}

func (g *glslGenerator) BeginElse() {
	g.popIndent()
	g.writeLine(g.context, "} else {")
	g.pushIndent()
	if n := len(g.blocks); n > 0 {
		g.blocks[n-1] = BlockElse
	}
}

func (g *glslGenerator) BeginWhile(cond value.Value) {
	g.writeLine(g.context, "while (%s) {", g.render(cond))
	g.open(BlockWhile)
}

func (g *glslGenerator) BeginFor(counter string, from, to value.Value) {
	g.writeLine(g.context, "for (int %[1]s = %[2]s; %[1]s < %[3]s; %[1]s++) {", counter, g.render(from), g.render(to))
	g.open(BlockFor)
}

// End closes the innermost block. Leaving the outermost block returns the
// generator to top level.
func (g *glslGenerator) End() {
	if len(g.blocks) > 0 {
		g.blocks = g.blocks[:len(g.blocks)-1]
	}
	g.popIndent()
	g.writeLine(g.context, "}")
	if g.indent == 0 {
		g.context = StageNone
	}
}

func (g *glslGenerator) Return(v value.Value) {
	if v == nil || v == value.Void {
		g.writeLine(g.context, "return;")
		return
	}
	g.writeLine(g.context, "return %s;", g.render(v))
}

func (g *glslGenerator) Skip() { g.writeLine(g.context, "discard;") }

func (g *glslGenerator) Comment(stage Stage, text string) {
	g.writeLine(stage, "// %s", text)
}

func (g *glslGenerator) ConfigLine(text string) {
	b := &g.buffers[StageConfig]
	b.WriteString(text)
	b.WriteByte('\n')
}

func (g *glslGenerator) Context() Stage { return g.context }
func (g *glslGenerator) Indent() int    { return g.indent }

func (g *glslGenerator) Block() Block {
	if len(g.blocks) == 0 {
		return BlockNone
	}
	return g.blocks[len(g.blocks)-1]
}

func (g *glslGenerator) WriteOut() Artifacts {
	return Artifacts{
		VertexFile:   g.buffers[StageVertex].String(),
		FragmentFile: g.buffers[StageFragment].String(),
		ConfigFile:   g.buffers[StageConfig].String(),
	}
}

// writeLine writes one indented line to the buffer of stage. Lines aimed at
// no stage are dropped.
func (g *glslGenerator) writeLine(stage Stage, format string, args ...any) {
	if stage == StageNone {
		return
	}
	b := &g.buffers[stage]
	for i := 0; i < g.indent; i++ {
		b.WriteString("    ")
	}
	if len(args) == 0 {
		b.WriteString(format)
	} else {
		fmt.Fprintf(b, format, args...)
	}
	b.WriteByte('\n')
}

func (g *glslGenerator) open(b Block) {
	g.blocks = append(g.blocks, b)
	g.pushIndent()
}

// render spells v and resolves the aliases it reads.
func (g *glslGenerator) render(v value.Value) string { return g.resolve(v.Render()) }

// resolve replaces every identifier in text that names an alias. Member
// names after '.' and suffixes of numbers such as 1e5 or 3u are left alone.
func (g *glslGenerator) resolve(text string) string {
	var b strings.Builder
	for i := 0; i < len(text); {
		c := text[i]
		if !isIdentStart(c) || (i > 0 && (isIdentPart(text[i-1]) || text[i-1] == '.')) {
			b.WriteByte(c)
			i++
			continue
		}
		j := i + 1
		for j < len(text) && isIdentPart(text[j]) {
			j++
		}
		word := text[i:j]
		if spelling, ok := g.Alias(word); ok {
			word = spelling
		}
		b.WriteString(word)
		i = j
	}
	return b.String()
}

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentPart(c byte) bool { return isIdentStart(c) || ('0' <= c && c <= '9') }

func (g *glslGenerator) pushIndent() { g.indent++ }

func (g *glslGenerator) popIndent() {
	if g.indent > 0 {
		g.indent--
	}
}
