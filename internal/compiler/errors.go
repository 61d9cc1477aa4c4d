package compiler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/calumari/pslc/internal/codegen"
)

var (
	ErrNoOutput           = errors.New("No output set")
	ErrUnknownTarget      = codegen.ErrUnknownTarget
	ErrOutputRedefined    = errors.New("output already set")
	ErrMalformedDirective = errors.New("malformed directive")
	ErrUnknownDirective   = errors.New("unknown directive")
	ErrInclude            = errors.New("include failed")
	ErrIncludeCycle       = errors.New("include cycle")
	ErrUnclosedBlock      = errors.New("unclosed block at end of input")
)

// LineError is a problem confined to one source line. The compile carries on
// after recording it so that one run reports as many as it can.
type LineError struct {
	File string
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
	}
	return fmt.Sprintf("%s:%d: %v: %s", e.File, e.Line, e.Err, e.Text)
}

func (e *LineError) Unwrap() error { return e.Err }

// LineErrors is every collected error of a failed compile, in source order.
type LineErrors []*LineError

func (el LineErrors) Error() string {
	if len(el) == 0 {
		return "no errors"
	}
	msgs := make([]string, len(el))
	for i, e := range el {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

func (el LineErrors) Unwrap() []error {
	errs := make([]error, len(el))
	for i, e := range el {
		errs[i] = e
	}
	return errs
}

// FatalError stopped a compile outright. It names the line that raised it
// and unwraps to the underlying sentinel.
type FatalError struct {
	File string
	Line int
	Text string
	Err  error
}

func (e *FatalError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %v", e.File, e.Err)
	}
	return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }
