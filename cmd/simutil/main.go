// Package main provides the simutil CLI.
//
// Usage:
//
//	simutil version
//	simutil inspect -shape matrix -kind float64 [-layout column|row] [-style auto|plain|bracketed] [-v] FILE
//	simutil demo [-v]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/born-ml/simutil/serialization"
	"github.com/born-ml/simutil/tensor"
)

const version = "v0.1.0-dev"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "simutil: %v\n", err)
		os.Exit(1)
	}
}

var errUsage = errors.New("usage")

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		printUsage(stderr)
		return errUsage
	}

	switch args[0] {
	case "version":
		fmt.Fprintf(stdout, "simutil %s\n", version)
		return nil
	case "inspect":
		return runInspect(args[1:], stdout, stderr)
	case "demo":
		return runDemo(args[1:], stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	default:
		printUsage(stderr)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `simutil - numeric container toolkit

Usage:
  simutil version                 Show version
  simutil inspect [options] FILE  Load a container file and print it
  simutil demo [-v]               Walk through the container operations

Inspect options:
  -shape vector|matrix|tensor     Container shape stored in FILE (required)
  -kind NAME                      Element kind, e.g. float64, int32 (default float64)
  -layout column|row              Storage layout to load into (default column)
  -style auto|plain|bracketed     Print style (default auto)
  -v                              Debug logging to stderr
`)
}

// setupLogging installs a development-style debug logger on stderr when
// verbose is set. The returned func flushes it and restores the no-op logger.
func setupLogging(verbose bool, stderr io.Writer) func() {
	if !verbose {
		return func() {}
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(stderr),
		zap.DebugLevel,
	)
	logger := zap.New(core, zap.Development())
	tensor.SetLogger(logger)
	return func() {
		_ = logger.Sync()
		tensor.SetLogger(nil)
	}
}

func runInspect(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(stderr)
	shape := fs.String("shape", "", "container shape: vector, matrix or tensor")
	kindName := fs.String("kind", "float64", "element kind")
	layoutName := fs.String("layout", "column", "storage layout: column or row")
	styleName := fs.String("style", "auto", "print style: auto, plain or bracketed")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("inspect: expected exactly one FILE, got %d", fs.NArg())
	}

	rank, ok := serialization.ParseRank(*shape)
	if !ok {
		return fmt.Errorf("inspect: invalid -shape %q", *shape)
	}
	kind, ok := tensor.ParseKind(*kindName)
	if !ok {
		return fmt.Errorf("inspect: invalid -kind %q", *kindName)
	}
	layout, ok := tensor.ParseLayout(*layoutName)
	if !ok {
		return fmt.Errorf("inspect: invalid -layout %q", *layoutName)
	}
	style, ok := tensor.ParseStyle(*styleName)
	if !ok {
		return fmt.Errorf("inspect: invalid -style %q", *styleName)
	}

	defer setupLogging(*verbose, stderr)()

	opts := tensor.DefaultOptions()
	opts.Layout = layout
	b, err := serialization.LoadFile(fs.Arg(0), rank, kind, opts)
	if err != nil {
		return err
	}
	defer func() { _ = b.Release() }()

	fmt.Fprintf(stdout, "%s %s %s (%s)\n", *shape, kind, b.Header(), layout)
	return tensor.Printer{Style: style}.Fprint(stdout, b)
}
