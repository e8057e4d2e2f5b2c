package serialization

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/born-ml/simutil/internal/tensor"
)

// FileOptions configures SaveFile.
type FileOptions struct {
	Compress bool              // wrap the stream in a zstd frame
	Level    zstd.EncoderLevel // zero means zstd.SpeedDefault
}

func (o FileOptions) level() zstd.EncoderLevel {
	if o.Level == 0 {
		return zstd.SpeedDefault
	}
	return o.Level
}

// SaveFile writes b to path, replacing any existing file.
func SaveFile(path string, b *tensor.RawBlock, opts FileOptions) (err error) {
	if b.Released() {
		return nullError("SaveFile")
	}

	//nolint:gosec // G304: path comes from the caller
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	if !opts.Compress {
		return writeBlock("SaveFile", f, b)
	}

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(opts.level()))
	if err != nil {
		return fmt.Errorf("failed to create zstd writer: %w", err)
	}
	err = writeBlock("SaveFile", enc, b)
	err = multierr.Append(err, enc.Close())
	if err == nil {
		tensor.Logger().Debug("compressed", zap.String("path", path), zap.Stringer("level", opts.level()))
	}
	return err
}

// LoadFile reads a container of the given rank and kind from path. Files
// starting with a zstd frame are decompressed transparently.
func LoadFile(path string, rank int, kind tensor.Kind, opts tensor.Options) (*tensor.RawBlock, error) {
	//nolint:gosec // G304: path comes from the caller
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	br := bufio.NewReader(f)
	var src io.Reader = br
	if magic, err := br.Peek(len(zstdMagic)); err == nil && bytes.Equal(magic, zstdMagic) {
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		defer dec.Close()
		src = dec
		tensor.Logger().Debug("decompressing", zap.String("path", path))
	}

	return readBlock("LoadFile", src, rank, kind, opts)
}
