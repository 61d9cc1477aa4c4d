package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a parsed expression. Every value knows its type (Null when it
// cannot be inferred) and how it is spelled in the target language.
type Value interface {
	Type() Type
	Render() string
}

// Literal is a typed constant: either a scalar or a constructor over
// component values.
type Literal struct {
	typ        Type
	scalar     any
	components []Value
}

// NewScalar returns a scalar literal. v must be an int32, uint32, float32 or
// bool matching t.
func NewScalar(t Type, v any) *Literal {
	return &Literal{typ: t, scalar: v}
}

// NewConstructor returns a literal built from components, rendered as a call
// to the type's constructor.
func NewConstructor(t Type, components []Value) *Literal {
	cs := make([]Value, len(components))
	copy(cs, components)
	return &Literal{typ: t, components: cs}
}

func (l *Literal) Type() Type { return l.typ }

// Scalar returns the stored scalar, or nil for constructor literals.
func (l *Literal) Scalar() any { return l.scalar }

// Components returns the constructor arguments, or nil for scalar literals.
func (l *Literal) Components() []Value { return l.components }

func (l *Literal) Render() string {
	if l.components != nil {
		return l.typ.Spelling() + "(" + renderList(l.components, ", ") + ")"
	}
	switch v := l.scalar.(type) {
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10) + "u"
	case float32:
		return formatFloat(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// formatFloat keeps float literals recognisable as floats in GLSL.
func formatFloat(f float32) string {
	s := strconv.FormatFloat(float64(f), 'g', -1, 32)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// Direct is text handed to the target language verbatim.
type Direct struct {
	text string
}

func NewDirect(text string) *Direct { return &Direct{text: text} }

func (d *Direct) Type() Type     { return Null }
func (d *Direct) Render() string { return d.text }

// Operator is a chain of operands joined by a single binary operator.
type Operator struct {
	op       byte
	operands []Value
}

// Operators lists the binary operators an Operator value may carry.
const Operators = "+-*/%"

// NewOperator builds an operator chain. It needs at least two operands and
// one of the characters in Operators.
func NewOperator(op byte, operands []Value) (*Operator, error) {
	if strings.IndexByte(Operators, op) < 0 {
		return nil, fmt.Errorf("unsupported operator %q", op)
	}
	if len(operands) < 2 {
		return nil, fmt.Errorf("operator %q needs at least two operands, got %d", op, len(operands))
	}
	cs := make([]Value, len(operands))
	copy(cs, operands)
	return &Operator{op: op, operands: cs}, nil
}

// Op returns the operator character.
func (o *Operator) Op() byte { return o.op }

// Operands returns the operands in source order.
func (o *Operator) Operands() []Value { return o.operands }

// Type folds the known operand types left to right. Operands of unknown type
// are skipped; Null means no operand had a known type.
func (o *Operator) Type() Type {
	t := Null
	for _, v := range o.operands {
		t = promote(o.op, t, v.Type())
	}
	return t
}

// promote returns the result type of a op b. Scalars widen int, uint, float;
// a scalar combined with a vector or matrix takes the wider shape; a matrix
// times a vector is a vector.
func promote(op byte, a, b Type) Type {
	switch {
	case a == Null:
		return b
	case b == Null:
		return a
	case a.IsMatrix() && b.IsVector(), a.IsVector() && b.IsMatrix():
		if op == '*' {
			if a.IsVector() {
				return a
			}
			return b
		}
	}
	if rank(b) > rank(a) {
		return b
	}
	return a
}

// rank orders types by width: bool, int, uint, float, vectors, matrices.
// Within vectors and matrices more components rank higher.
func rank(t Type) int {
	switch {
	case t.IsMatrix():
		return 200 + t.Components()
	case t.IsVector():
		return 100 + t.Components()
	}
	switch t {
	case Bool:
		return 1
	case Int:
		return 2
	case Uint:
		return 3
	case Float:
		return 4
	}
	return 0
}

func (o *Operator) Render() string {
	return renderList(o.operands, " "+string(o.op)+" ")
}

// Parenthesized groups a value explicitly.
type Parenthesized struct {
	inner Value
}

func NewParenthesized(inner Value) *Parenthesized { return &Parenthesized{inner: inner} }

func (p *Parenthesized) Inner() Value   { return p.inner }
func (p *Parenthesized) Type() Type     { return p.inner.Type() }
func (p *Parenthesized) Render() string { return "(" + p.inner.Render() + ")" }

func renderList(vs []Value, sep string) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.Render()
	}
	return strings.Join(parts, sep)
}

// Void is the value of a bare return. It is typed Null and renders as
// nothing.
var Void Value = void{}

type void struct{}

func (void) Type() Type     { return Null }
func (void) Render() string { return "" }
