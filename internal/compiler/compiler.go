// Package compiler drives a PSL compile: it feeds preprocessed lines to the
// directive processor or the statement dispatcher and, when no error was
// collected, materializes the generator buffers.
package compiler

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/calumari/pslc/internal/codegen"
	"github.com/calumari/pslc/internal/preprocess"
	"github.com/calumari/pslc/internal/statement"
)

// Config holds compile settings.
type Config struct {
	Assets       fs.FS        // root #include paths resolve against; nil means the working directory
	StrictBlocks bool         // report blocks still open at end of input
	Logger       *slog.Logger // nil disables logging
}

// Result is a successful compile.
type Result struct {
	Artifacts  codegen.Artifacts
	Target     string
	Version    string
	OpenBlocks int // indent level left at end of input
}

// Compiler compiles PSL sources. Every compile gets its own compilation
// context, so one Compiler may serve concurrent compiles.
type Compiler struct {
	cfg        Config
	dispatcher *statement.Dispatcher
	logger     *slog.Logger
}

func New(cfg Config) *Compiler {
	if cfg.Assets == nil {
		cfg.Assets = os.DirFS(".")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = newNopLogger()
	}
	return &Compiler{cfg: cfg, dispatcher: statement.NewDispatcher(), logger: logger}
}

// CompileFile compiles path read from the asset root.
func (c *Compiler) CompileFile(path string) (*Result, error) {
	data, err := fs.ReadFile(c.cfg.Assets, path)
	if err != nil {
		return nil, err
	}
	return c.Compile(path, string(data))
}

// Compile compiles source; name labels diagnostics. A fatal problem returns a
// *FatalError, collected problems return LineErrors.
func (c *Compiler) Compile(name, source string) (*Result, error) {
	u := &unit{
		assets:     c.cfg.Assets,
		dispatcher: c.dispatcher,
		logger:     c.logger.With("unit", name),
	}
	if err := u.process(name, source); err != nil {
		return nil, err
	}
	if u.gen == nil {
		return nil, &FatalError{File: name, Err: ErrNoOutput}
	}
	if c.cfg.StrictBlocks && u.gen.Indent() > 0 {
		u.collect(name, u.lastLine, "", fmt.Errorf("%w (depth %d)", ErrUnclosedBlock, u.gen.Indent()))
	}
	if len(u.errs) > 0 {
		u.logger.Debug("compile failed", "errors", len(u.errs))
		return nil, u.errs
	}
	res := &Result{
		Artifacts:  u.gen.WriteOut(),
		Target:     u.gen.Target(),
		Version:    u.gen.Version(),
		OpenBlocks: u.gen.Indent(),
	}
	u.logger.Debug("compile done", "target", res.Target, "version", res.Version, "open_blocks", res.OpenBlocks)
	return res, nil
}

// unit is the state one compile shares across its whole include tree: the
// generator slot, which the first #output fills, the collected errors and the
// stack of files being processed.
type unit struct {
	assets     fs.FS
	dispatcher *statement.Dispatcher
	logger     *slog.Logger

	gen      codegen.Generator
	errs     LineErrors
	files    []string
	lastLine int
}

// process runs every line of text. The returned error is fatal.
func (u *unit) process(file, text string) error {
	u.files = append(u.files, file)
	defer func() { u.files = u.files[:len(u.files)-1] }()

	for _, line := range preprocess.Lines(text) {
		if len(u.files) == 1 {
			u.lastLine = line.Number
		}
		if line.Text[0] == '#' {
			if err := u.directive(file, line); err != nil {
				return err
			}
			continue
		}
		if err := u.statement(file, line); err != nil {
			return err
		}
	}
	return nil
}

func (u *unit) statement(file string, line preprocess.Line) error {
	if u.gen == nil {
		return &FatalError{File: file, Line: line.Number, Text: line.Text, Err: ErrNoOutput}
	}
	s, err := u.dispatcher.Dispatch(line.Text)
	if errors.Is(err, statement.ErrNoMatch) {
		u.collect(file, line.Number, line.Text, err)
		return nil
	}
	if err != nil {
		return &FatalError{File: file, Line: line.Number, Text: line.Text, Err: err}
	}
	u.logger.Debug("statement", "file", file, "line", line.Number, "kind", s.Kind())
	if err := s.Apply(u.gen); err != nil {
		u.collect(file, line.Number, line.Text, err)
	}
	return nil
}

func (u *unit) collect(file string, line int, text string, err error) {
	u.logger.Debug("line error", "file", file, "line", line, "err", err)
	u.errs = append(u.errs, &LineError{File: file, Line: line, Text: text, Err: err})
}
