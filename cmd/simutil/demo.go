package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/multierr"

	"github.com/born-ml/simutil/serialization"
	"github.com/born-ml/simutil/tensor"
)

// demo walks through growth, persistence and the two dimension checks on
// containers drawn from one tracking allocator, then reports leaks.
type demo struct {
	out     io.Writer
	opts    tensor.Options
	printer tensor.Printer
}

func runDemo(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	defer setupLogging(*verbose, stderr)()

	alloc := tensor.NewTrackingAllocator(0)
	opts := tensor.DefaultOptions()
	opts.Allocator = alloc
	d := &demo{out: stdout, opts: opts, printer: tensor.Printer{Style: tensor.StyleAuto}}

	steps := []struct {
		title string
		fn    func() error
	}{
		{"vector append", d.vectorAppend},
		{"matrix save and load", d.matrixRoundTrip},
		{"apply on mismatched shapes", d.applyMismatch},
		{"slice apply out of bounds", d.sliceOutOfBounds},
		{"tensor fill", d.tensorFill},
	}
	for i, step := range steps {
		fmt.Fprintf(stdout, "== %d. %s\n", i+1, step.title)
		if err := step.fn(); err != nil {
			return fmt.Errorf("%s: %w", step.title, err)
		}
	}

	if err := alloc.Leaks(); err != nil {
		return err
	}
	stats := alloc.Stats()
	fmt.Fprintf(stdout, "== allocations %d, frees %d, peak %d bytes, leaks none\n",
		stats.Allocations, stats.Frees, stats.PeakBytes)
	return nil
}

func (d *demo) vectorAppend() error {
	v, err := tensor.VectorFromSlice([]float64{1, 2, 3}, d.opts)
	if err != nil {
		return err
	}
	grown, err := tensor.Append(v, 4)
	if err != nil {
		return multierr.Append(err, v.Release())
	}
	fmt.Fprintf(d.out, "length %d, capacity %d\n", grown.Len(), grown.Cap())
	return multierr.Append(d.printer.Fprint(d.out, grown.Raw()), grown.Release())
}

func (d *demo) matrixRoundTrip() (err error) {
	m, err := tensor.MatrixFromArray([][]float64{{2, 3}, {1, 1}}, d.opts)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, m.Release()) }()

	dir, err := os.MkdirTemp("", "simutil-demo")
	if err != nil {
		return err
	}
	defer func() { _ = os.RemoveAll(dir) }()

	path := filepath.Join(dir, "matrix.bin.zst")
	if err := serialization.SaveFile(path, m.Raw(), serialization.FileOptions{Compress: true}); err != nil {
		return err
	}
	raw, err := serialization.LoadFile(path, serialization.RankMatrix, tensor.Float64, d.opts)
	if err != nil {
		return err
	}
	loaded, err := tensor.MatrixFromRaw[float64](raw, d.opts)
	if err != nil {
		return multierr.Append(err, raw.Release())
	}
	defer func() { err = multierr.Append(err, loaded.Release()) }()

	fmt.Fprintf(d.out, "reloaded equal: %t\n", tensor.Equal(m, loaded))
	return d.printer.Fprint(d.out, loaded.Raw())
}

func (d *demo) applyMismatch() (err error) {
	a, err := tensor.NewMatrixWithOptions[float64](2, 2, d.opts)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, a.Release()) }()
	b, err := tensor.NewMatrixWithOptions[float64](3, 3, d.opts)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, b.Release()) }()

	fmt.Fprintf(d.out, "error: %v\n", tensor.Apply(a, b, tensor.OpAdd))
	return nil
}

func (d *demo) sliceOutOfBounds() (err error) {
	m, err := tensor.NewMatrixWithOptions[float64](4, 4, d.opts)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, m.Release()) }()

	fmt.Fprintf(d.out, "error: %v\n", tensor.SliceApply(m, m, tensor.OpAdd, 1, 5, 1, 4))
	return nil
}

func (d *demo) tensorFill() (err error) {
	t, err := tensor.NewTensorWithOptions[int32](3, 2, 2, d.opts)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, t.Release()) }()

	if err := t.Fill(7); err != nil {
		return err
	}
	t.Set(1, 1, 2, -1)
	return d.printer.Fprint(d.out, t.Raw())
}
