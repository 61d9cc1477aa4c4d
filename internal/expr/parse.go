// Package expr parses the trailing expression of a PSL statement into a value
// tree.
//
// The parser is a fixed sequence of pattern attempts rather than a grammar:
// constructor literal, numeric literal, call, parenthesized group,
// single-operator chain, bare reference. Operator precedence is never
// resolved; a chain mixing operators must be grouped by the author.
package expr

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/calumari/pslc/internal/value"
)

var (
	ErrMixedOperators   = errors.New("mixed operators without parentheses")
	ErrConstructorArity = errors.New("invalid constructor argument count")
	ErrUnknownType      = errors.New("unknown constructor type")
	ErrUnrecognized     = errors.New("unrecognized expression")
	ErrMalformed        = errors.New("malformed expression")
)

// Options tune a single parse.
type Options struct {
	// AllowDirect accepts a bare reference (identifier, swizzle, comparison)
	// as an opaque value when nothing else matches.
	AllowDirect bool
}

var (
	constructorPattern = regexp.MustCompile(`^new\s+([A-Za-z_]\w*)\s*\(`)
	callPattern        = regexp.MustCompile(`^[A-Za-z_]\w*\s*\(`)
)

// Parse converts text into a value.
func Parse(text string, opts Options) (value.Value, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrMalformed)
	}

	if m := constructorPattern.FindStringSubmatchIndex(text); m != nil && closesAtEnd(text, m[1]-1) {
		return parseConstructor(text[m[2]:m[3]], text[m[1]:len(text)-1])
	}
	if v, ok := parseNumber(text); ok {
		return v, nil
	}
	if m := callPattern.FindStringIndex(text); m != nil && closesAtEnd(text, m[1]-1) {
		return value.NewDirect(text), nil
	}
	if text[0] == '(' && closesAtEnd(text, 0) {
		inner, err := Parse(text[1:len(text)-1], Options{AllowDirect: true})
		if err != nil {
			return nil, err
		}
		return value.NewParenthesized(inner), nil
	}
	if v, ok, err := parseChain(text); err != nil || ok {
		return v, err
	}
	if opts.AllowDirect {
		return value.NewDirect(text), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnrecognized, text)
}

func parseConstructor(typeName, args string) (value.Value, error) {
	t, ok := value.LookupType(typeName)
	if !ok || t.Components() == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, typeName)
	}
	var parts []string
	if strings.TrimSpace(args) != "" {
		parts = splitTopLevel(args, ',')
	}
	n := len(parts)
	if n == 0 || n > t.Components() || (t.IsScalar() && n != 1) {
		return nil, fmt.Errorf("%w: %s takes 1 to %d arguments, got %d", ErrConstructorArity, t.Name(), t.Components(), n)
	}
	components := make([]value.Value, 0, n)
	for _, p := range parts {
		v, err := Parse(p, Options{AllowDirect: true})
		if err != nil {
			return nil, err
		}
		components = append(components, v)
	}
	return value.NewConstructor(t, components), nil
}

func parseNumber(text string) (value.Value, bool) {
	switch text {
	case "true":
		return value.NewScalar(value.Bool, true), true
	case "false":
		return value.NewScalar(value.Bool, false), true
	}
	if !looksNumeric(text) {
		return nil, false
	}
	if i, err := strconv.ParseInt(text, 10, 32); err == nil {
		return value.NewScalar(value.Int, int32(i)), true
	}
	if u, err := strconv.ParseUint(strings.TrimRight(text, "uU"), 10, 32); err == nil {
		return value.NewScalar(value.Uint, uint32(u)), true
	}
	if f, err := strconv.ParseFloat(strings.TrimRight(text, "fF"), 32); err == nil {
		return value.NewScalar(value.Float, float32(f)), true
	}
	return nil, false
}

// looksNumeric keeps words such as "inf" or "nan" away from ParseFloat.
func looksNumeric(s string) bool {
	if s[0] == '-' || s[0] == '+' {
		s = s[1:]
	}
	return s != "" && (isDigit(s[0]) || (s[0] == '.' && len(s) > 1 && isDigit(s[1])))
}

// parseChain splits text on its top-level binary operators. ok is false when
// text has none.
func parseChain(text string) (value.Value, bool, error) {
	var (
		op    byte
		cuts  []int
		mixed bool
	)
	depth := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch c {
		case '(', '[':
			depth++
			continue
		case ')', ']':
			depth--
			continue
		}
		if depth != 0 || strings.IndexByte(value.Operators, c) < 0 || isUnary(text, i) {
			continue
		}
		if op != 0 && op != c {
			mixed = true
		}
		op = c
		cuts = append(cuts, i)
	}
	if len(cuts) == 0 {
		return nil, false, nil
	}
	if mixed {
		return nil, true, fmt.Errorf("%w: %q: add parentheses to group operators", ErrMixedOperators, text)
	}

	operands := make([]value.Value, 0, len(cuts)+1)
	start := 0
	for _, cut := range append(cuts, len(text)) {
		part := strings.TrimSpace(text[start:cut])
		if part == "" {
			return nil, true, fmt.Errorf("%w: missing operand for %q in %q", ErrMalformed, op, text)
		}
		v, err := Parse(part, Options{AllowDirect: true})
		if err != nil {
			return nil, true, err
		}
		operands = append(operands, v)
		start = cut + 1
	}
	v, err := value.NewOperator(op, operands)
	if err != nil {
		return nil, true, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return v, true, nil
}

// isUnary reports whether the sign at i is a prefix rather than a binary
// operator: at the start, after another operator or opening bracket, or the
// exponent sign of a float literal.
func isUnary(s string, i int) bool {
	c := s[i]
	if c != '-' && c != '+' {
		return false
	}
	j := i - 1
	for j >= 0 && s[j] == ' ' {
		j--
	}
	if j < 0 || strings.IndexByte("+-*/%(,[=<>!&|?:^~", s[j]) >= 0 {
		return true
	}
	if j == i-1 && (s[j] == 'e' || s[j] == 'E') {
		k := j - 1
		for k >= 0 && (isDigit(s[k]) || s[k] == '.') {
			k--
		}
		return k < j-1 && (k < 0 || !isIdent(s[k]))
	}
	return false
}

// closesAtEnd reports whether the bracket opened at s[open] is closed by the
// last character of s.
func closesAtEnd(s string, open int) bool {
	if open < 0 || open >= len(s) || s[open] != '(' || s[len(s)-1] != ')' {
		return false
	}
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i == len(s)-1
			}
		}
	}
	return false
}

// splitTopLevel splits s on sep outside brackets and trims each part.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	return append(parts, strings.TrimSpace(s[start:]))
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdent(c byte) bool {
	return c == '_' || isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
