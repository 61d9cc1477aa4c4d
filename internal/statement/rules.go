package statement

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/calumari/pslc/internal/codegen"
	"github.com/calumari/pslc/internal/expr"
	"github.com/calumari/pslc/internal/value"
)

// rule is one row of the dispatch table. accept, when set, refines a pattern
// match (for example by checking that a word names a type); a rejected match
// lets later rules try.
type rule struct {
	name    string
	pattern *regexp.Regexp
	accept  func(m []string) bool
	parse   func(m []string) (Statement, error)
}

const (
	ident       = `[A-Za-z_]\w*`
	stagePrefix = `(?:(vertex|fragment)\s+)?`

	// rhs refuses a leading '=' so "a == b" is not read as an assignment.
	rhs = `\s*=\s*([^=\s].*)`
)

func re(s string) *regexp.Regexp { return regexp.MustCompile("^" + s + "$") }

var identPattern = re(ident)

// rules is ordered: the first accepted match wins. Assignment comes last
// because its pattern overlaps most declarations.
var rules = []rule{
	{
		name:    "vertex input",
		pattern: re(`vertex\s+input\s+(\w+)\s+(` + ident + `)\s+is\s+(` + ident + `)`),
		accept:  func(m []string) bool { return isDataType(m[1]) },
		parse: func(m []string) (Statement, error) {
			return VertexInput{Type: mustType(m[1]), Name: m[2], Semantic: m[3]}, nil
		},
	},
	{
		name:    "common",
		pattern: re(`common\s+(\w+)\s+(` + ident + `)`),
		accept:  func(m []string) bool { return isDataType(m[1]) },
		parse: func(m []string) (Statement, error) {
			return Common{Type: mustType(m[1]), Name: m[2]}, nil
		},
	},
	{
		name:    "entrypoint",
		pattern: re(`(vertex|fragment)\s+entrypoint`),
		parse: func(m []string) (Statement, error) {
			return Entrypoint{Stage: stageOf(m[1])}, nil
		},
	},
	{
		name:    "function",
		pattern: re(`(vertex|fragment)\s+function\s+(\w+)\s+(` + ident + `)\s*\((.*)\)`),
		accept: func(m []string) bool {
			_, known := value.LookupType(m[2])
			_, ok := parseParams(m[4])
			return known && ok
		},
		parse: func(m []string) (Statement, error) {
			params, _ := parseParams(m[4])
			return Function{Stage: stageOf(m[1]), Return: mustType(m[2]), Name: m[3], Params: params}, nil
		},
	},
	{
		name:    "end",
		pattern: re(`end`),
		parse:   func([]string) (Statement, error) { return End{}, nil },
	},
	{
		name:    "fragment output",
		pattern: re(`fragment\s+output\s+(\w+)\s+(` + ident + `)\s+is\s+(\d+)`),
		accept:  func(m []string) bool { return isDataType(m[1]) },
		parse: func(m []string) (Statement, error) {
			slot, err := strconv.ParseInt(m[3], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", ErrSlotRange, m[3])
			}
			return FragmentOutput{Type: mustType(m[1]), Name: m[2], Slot: int(slot)}, nil
		},
	},
	{
		name:    "uniform",
		pattern: re(`uniform\s+(\w+)\s+(` + ident + `)(?:\s+is\s+(` + ident + `))?`),
		accept:  func(m []string) bool { return isDataType(m[1]) },
		parse: func(m []string) (Statement, error) {
			return Uniform{Type: mustType(m[1]), Name: m[2], Property: m[3]}, nil
		},
	},
	{
		name:    "uses",
		pattern: re(`uses\s+(` + ident + `)(?:\s+as\s+(` + ident + `))?`),
		parse: func(m []string) (Statement, error) {
			return Uses{Alias: m[1], Spelling: m[2]}, nil
		},
	},
	{
		name:    "implicit variable",
		pattern: re(stagePrefix + `var\s+(` + ident + `)` + rhs),
		parse: func(m []string) (Statement, error) {
			v, err := expr.Parse(m[3], expr.Options{})
			if err != nil {
				return nil, err
			}
			if v.Type() == value.Null {
				return nil, fmt.Errorf("%w for %q from %q: declare it with an explicit type", ErrUntypedVariable, m[2], m[3])
			}
			return Variable{Stage: stageOf(m[1]), Type: v.Type(), Name: m[2], Init: v}, nil
		},
	},
	{
		name:    "explicit variable",
		pattern: re(stagePrefix + `(\w+)\s+(` + ident + `)(?:` + rhs + `)?`),
		accept:  func(m []string) bool { return isDataType(m[2]) },
		parse: func(m []string) (Statement, error) {
			s := Variable{Stage: stageOf(m[1]), Type: mustType(m[2]), Name: m[3]}
			if m[4] != "" {
				v, err := expr.Parse(m[4], expr.Options{AllowDirect: true})
				if err != nil {
					return nil, err
				}
				s.Init = v
			}
			return s, nil
		},
	},
	{
		name:    "return",
		pattern: re(`return(?:\s+(.+))?`),
		parse: func(m []string) (Statement, error) {
			if m[1] == "" {
				return Return{Value: value.Void}, nil
			}
			v, err := expr.Parse(m[1], expr.Options{AllowDirect: true})
			if err != nil {
				return nil, err
			}
			return Return{Value: v}, nil
		},
	},
	{
		name:    "if",
		pattern: re(`if\s+(.+)`),
		parse: func(m []string) (Statement, error) {
			v, err := expr.Parse(m[1], expr.Options{AllowDirect: true})
			if err != nil {
				return nil, err
			}
			return If{Cond: v}, nil
		},
	},
	{
		name:    "elif",
		pattern: re(`elif\s+(.+)`),
		parse: func(m []string) (Statement, error) {
			v, err := expr.Parse(m[1], expr.Options{AllowDirect: true})
			if err != nil {
				return nil, err
			}
			return Elif{Cond: v}, nil
		},
	},
	{
		name:    "else",
		pattern: re(`else`),
		parse:   func([]string) (Statement, error) { return Else{}, nil },
	},
	{
		name:    "while",
		pattern: re(`while\s+(.+)`),
		parse: func(m []string) (Statement, error) {
			v, err := expr.Parse(m[1], expr.Options{AllowDirect: true})
			if err != nil {
				return nil, err
			}
			return While{Cond: v}, nil
		},
	},
	{
		name:    "for",
		pattern: re(`for\s+(` + ident + `)\s+from\s+(.+?)\s+to\s+(.+)`),
		parse: func(m []string) (Statement, error) {
			from, err := expr.Parse(m[2], expr.Options{AllowDirect: true})
			if err != nil {
				return nil, err
			}
			to, err := expr.Parse(m[3], expr.Options{AllowDirect: true})
			if err != nil {
				return nil, err
			}
			return For{Counter: m[1], From: from, To: to}, nil
		},
	},
	{
		name:    "skip",
		pattern: re(`skip`),
		parse:   func([]string) (Statement, error) { return Skip{}, nil },
	},
	{
		name:    "config",
		pattern: re(`config\s+(.+)`),
		parse:   func(m []string) (Statement, error) { return Config{Text: m[1]}, nil },
	},
	{
		name:    "assignment",
		pattern: re(stagePrefix + `(` + ident + `(?:\.\w+|\[[^\]]*\])*)` + rhs),
		parse: func(m []string) (Statement, error) {
			v, err := expr.Parse(m[3], expr.Options{AllowDirect: true})
			if err != nil {
				return nil, err
			}
			return Assign{Stage: stageOf(m[1]), Target: m[2], Value: v}, nil
		},
	},
}

// parseParams reads "type name, type name". An empty list is valid.
func parseParams(s string) ([]codegen.Param, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	var params []codegen.Param
	for _, p := range strings.Split(s, ",") {
		fields := strings.Fields(p)
		if len(fields) != 2 || !isDataType(fields[0]) || !identPattern.MatchString(fields[1]) {
			return nil, false
		}
		params = append(params, codegen.Param{Type: mustType(fields[0]), Name: fields[1]})
	}
	return params, true
}

// isDataType accepts every type except Null.
func isDataType(word string) bool {
	t, ok := value.LookupType(word)
	return ok && t != value.Null
}

// mustType is only called on words accept already resolved.
func mustType(word string) value.Type {
	t, _ := value.LookupType(word)
	return t
}

// stageOf maps an optional stage capture; an empty capture is StageNone.
func stageOf(word string) codegen.Stage {
	s, _ := codegen.ParseStage(word)
	return s
}
