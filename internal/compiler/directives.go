package compiler

import (
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"strings"

	"github.com/calumari/pslc/internal/codegen"
	"github.com/calumari/pslc/internal/preprocess"
)

var (
	directivePattern = regexp.MustCompile(`^#(\w*)`)
	outputPattern    = regexp.MustCompile(`^#output\s+(\w+)\s+"([^"]*)"$`)
	includePattern   = regexp.MustCompile(`^#include\s+(?:"([^"]+)"|<([^>]+)>|(\S+))$`)
)

// directive handles one '#' line. Errors returned are fatal; an unknown
// directive is only collected.
func (u *unit) directive(file string, line preprocess.Line) error {
	fatal := func(err error) error {
		return &FatalError{File: file, Line: line.Number, Text: line.Text, Err: err}
	}

	switch kind := directivePattern.FindStringSubmatch(line.Text)[1]; kind {
	case "output":
		m := outputPattern.FindStringSubmatch(line.Text)
		if m == nil {
			return fatal(fmt.Errorf("%w: want #output <target> \"<version>\"", ErrMalformedDirective))
		}
		if err := u.output(m[1], m[2]); err != nil {
			return fatal(err)
		}
		u.logger.Debug("output", "file", file, "line", line.Number, "target", m[1], "version", m[2])
	case "include":
		m := includePattern.FindStringSubmatch(line.Text)
		if m == nil {
			return fatal(fmt.Errorf("%w: want #include <path>", ErrMalformedDirective))
		}
		return u.include(file, line, m[1]+m[2]+m[3])
	default:
		u.collect(file, line.Number, line.Text, fmt.Errorf("%w %q", ErrUnknownDirective, kind))
	}
	return nil
}

// output selects the generator. Repeating the active target and version is
// allowed so that a file can be both included and compiled on its own.
func (u *unit) output(target, version string) error {
	if u.gen != nil {
		if u.gen.Target() == target && u.gen.Version() == version {
			return nil
		}
		return fmt.Errorf("%w to %s %q", ErrOutputRedefined, u.gen.Target(), u.gen.Version())
	}
	gen, err := codegen.New(target)
	if err != nil {
		return err
	}
	if err := gen.Preamble(version); err != nil {
		return err
	}
	u.gen = gen
	return nil
}

// include runs the named asset through the pipeline with the same unit, so
// its declarations land in the same buffers.
func (u *unit) include(file string, line preprocess.Line, name string) error {
	name = path.Clean(strings.TrimPrefix(name, "/"))
	for _, open := range u.files {
		if open == name {
			return &FatalError{File: file, Line: line.Number, Text: line.Text,
				Err: fmt.Errorf("%w: %s", ErrIncludeCycle, strings.Join(append(u.files, name), " -> "))}
		}
	}
	data, err := fs.ReadFile(u.assets, name)
	if err != nil {
		return &FatalError{File: file, Line: line.Number, Text: line.Text, Err: fmt.Errorf("%w: %w", ErrInclude, err)}
	}
	u.logger.Debug("include", "file", file, "line", line.Number, "path", name)
	return u.process(name, string(data))
}
