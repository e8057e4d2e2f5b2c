package tensor

import (
	"github.com/born-ml/simutil/internal/parallel"
)

// Options configures container construction.
//
// The zero Layout is ColumnMajor: a literal Options{} ignores
// SetDefaultLayout. Start from DefaultOptions to pick up the process default.
type Options struct {
	Layout    Layout          // storage order of the payload; zero is ColumnMajor
	Allocator Allocator       // source of the payload block; nil means DefaultAllocator()
	Parallel  parallel.Config // execution strategy for element-wise loops
}

// DefaultOptions returns the process-wide defaults: DefaultLayout(),
// DefaultAllocator() and parallel.DefaultConfig().
func DefaultOptions() Options {
	return Options{
		Layout:    DefaultLayout(),
		Allocator: DefaultAllocator(),
		Parallel:  parallel.DefaultConfig(),
	}
}

func (o Options) allocator() Allocator {
	if o.Allocator == nil {
		return DefaultAllocator()
	}
	return o.Allocator
}
