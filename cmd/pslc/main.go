package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/sanity-io/litter"

	"github.com/calumari/pslc/internal/compiler"
)

// deriveVersion inspects build info for module version or vcs revision.
// preference order: module semantic version -> short commit hash -> "devel".
func deriveVersion() string {
	if bi, ok := debug.ReadBuildInfo(); ok {
		if bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			return bi.Main.Version
		}
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 12 {
				return s.Value[:12]
			}
		}
	}
	return "devel"
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("PSLC_DEBUG") == "1" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s <file.psl>...\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\npslc %s compiles PSL shader descriptions into shader.vsh, shader.fsh and shader.csh.\n", deriveVersion())
		fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
		fmt.Fprintf(os.Stderr, "  PSLC_ASSET_ROOT  directory #include paths resolve against (default \".\")\n")
		fmt.Fprintf(os.Stderr, "  PSLC_DEBUG=1     log every directive and statement\n")
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	root := os.Getenv("PSLC_ASSET_ROOT")
	if root == "" {
		root = "."
	}
	logger := newLogger()
	c := compiler.New(compiler.Config{Assets: os.DirFS(root), Logger: logger})

	failed := false
	for _, path := range flag.Args() {
		if err := compileFile(c, logger, path); err != nil {
			report(err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func compileFile(c *compiler.Compiler, logger *slog.Logger, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	res, err := c.Compile(path, string(src))
	if err != nil {
		return err
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		if m, err := res.Artifacts.Manifest(); err == nil {
			logger.Debug("manifest", "file", path, "dump", litter.Sdump(m))
		}
	}
	if err := res.Artifacts.WriteDir("."); err != nil {
		return err
	}
	logger.Info("compiled", "file", path, "target", res.Target, "version", res.Version)
	return nil
}

// report prints one line per collected error, or the single fatal error.
func report(err error) {
	var errs compiler.LineErrors
	if errors.As(err, &errs) {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		return
	}
	fmt.Fprintf(os.Stderr, "pslc: %v\n", err)
}
