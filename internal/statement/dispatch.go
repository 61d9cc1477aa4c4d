package statement

import "fmt"

// Dispatcher runs lines through the rule table. It holds no per-line state
// and may be shared by concurrent compiles.
type Dispatcher struct {
	rules []rule
}

// NewDispatcher returns a dispatcher over the PSL rule table.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{rules: rules}
}

// Dispatch parses one trimmed statement line. It returns ErrNoMatch when no
// rule accepts the line; any other error is fatal to the compile.
func (d *Dispatcher) Dispatch(text string) (Statement, error) {
	for _, r := range d.rules {
		m := r.pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if r.accept != nil && !r.accept(m) {
			continue
		}
		s, err := r.parse(m)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", r.name, err)
		}
		return s, nil
	}
	return nil, ErrNoMatch
}

// Rules lists rule names in dispatch order.
func (d *Dispatcher) Rules() []string {
	names := make([]string, len(d.rules))
	for i, r := range d.rules {
		names[i] = r.name
	}
	return names
}
