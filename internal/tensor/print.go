package tensor

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Style selects how containers are rendered as text.
type Style int

// Print styles.
const (
	// StyleAuto uses StyleBracketed on terminals and StylePlain elsewhere.
	StyleAuto Style = iota
	// StyleBracketed wraps vectors and rows in brackets with padded fields.
	StyleBracketed
	// StylePlain writes comma-separated lines, suitable for files.
	StylePlain
)

// String returns the style name.
func (s Style) String() string {
	switch s {
	case StyleAuto:
		return "auto"
	case StyleBracketed:
		return "bracketed"
	case StylePlain:
		return "plain"
	default:
		return "unknown"
	}
}

// ParseStyle converts a style name back to a Style.
func ParseStyle(s string) (Style, bool) {
	for st := StyleAuto; st <= StylePlain; st++ {
		if st.String() == s {
			return st, true
		}
	}
	return 0, false
}

// Printer renders raw blocks through the element codec table.
//
// Grouping is fixed by the printer, not by storage: a matrix prints one line
// per row with columns left to right, a tensor prints one matrix per depth.
type Printer struct {
	Style Style
}

// DefaultPrinter uses StyleAuto.
var DefaultPrinter = Printer{Style: StyleAuto}

// Print writes b to standard output with DefaultPrinter.
func Print(b *RawBlock) error {
	return DefaultPrinter.Fprint(os.Stdout, b)
}

// Fprint writes b to w with DefaultPrinter.
func Fprint(w io.Writer, b *RawBlock) error {
	return DefaultPrinter.Fprint(w, b)
}

// Fprint writes b to w. The codec is resolved before anything is written, so
// an unsupported kind leaves w untouched.
func (p Printer) Fprint(w io.Writer, b *RawBlock) error {
	if b.Released() {
		return nullError("Print")
	}
	codec, err := Lookup(b.kind)
	if err != nil {
		return err
	}

	style := p.Style
	if style == StyleAuto {
		style = StylePlain
		if isTerminal(w) {
			style = StyleBracketed
		}
	}

	var sb strings.Builder
	switch b.header.Rank {
	case 1:
		writeVector(&sb, b, codec, style)
	case 2:
		writeMatrix(&sb, b, codec, style)
	default:
		writeTensor(&sb, b, codec, style)
	}
	_, err = io.WriteString(w, sb.String())
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// writeLine writes n elements separated by ", ", taking element k from at(k).
func writeLine(sb *strings.Builder, n int, at func(k int) []byte, codec ElementCodec, style Style) {
	for k := 1; k <= n; k++ {
		if k > 1 {
			sb.WriteString(", ")
		}
		sb.WriteString(codec.FormatElement(at(k), style))
	}
}

func writeVector(sb *strings.Builder, b *RawBlock, codec ElementCodec, style Style) {
	at := func(k int) []byte { return b.Element(k) }
	if style == StyleBracketed {
		sb.WriteByte('[')
		writeLine(sb, b.header.Columns(), at, codec, style)
		sb.WriteString("]\n")
		return
	}
	writeLine(sb, b.header.Columns(), at, codec, style)
	sb.WriteByte('\n')
}

// writeRows writes the rows of a (columns x rows) plane. In bracketed mode
// each row is wrapped and rows after the first are prefixed with indent.
func writeRows(sb *strings.Builder, columns, rows int, at func(col, row int) []byte,
	codec ElementCodec, style Style, indent string) {
	for r := 1; r <= rows; r++ {
		line := func(c int) []byte { return at(c, r) }
		if style != StyleBracketed {
			writeLine(sb, columns, line, codec, style)
			sb.WriteByte('\n')
			continue
		}
		if r > 1 {
			sb.WriteString(indent)
		}
		sb.WriteByte('[')
		writeLine(sb, columns, line, codec, style)
		sb.WriteByte(']')
		if r < rows {
			sb.WriteByte('\n')
		}
	}
}

func writeMatrix(sb *strings.Builder, b *RawBlock, codec ElementCodec, style Style) {
	at := func(c, r int) []byte { return b.Element(c, r) }
	if style == StyleBracketed {
		sb.WriteByte('[')
		writeRows(sb, b.header.Columns(), b.header.Rows(), at, codec, style, " ")
		sb.WriteString("]\n")
		return
	}
	writeRows(sb, b.header.Columns(), b.header.Rows(), at, codec, style, "")
}

func writeTensor(sb *strings.Builder, b *RawBlock, codec ElementCodec, style Style) {
	if style == StyleBracketed {
		sb.WriteString("[\n")
	}
	for d := 1; d <= b.header.Depths(); d++ {
		at := func(c, r int) []byte { return b.Element(c, r, d) }
		if style == StyleBracketed {
			sb.WriteString(" [")
			writeRows(sb, b.header.Columns(), b.header.Rows(), at, codec, style, "  ")
			sb.WriteString("]\n")
			continue
		}
		writeRows(sb, b.header.Columns(), b.header.Rows(), at, codec, style, "")
		sb.WriteString("###\n")
	}
	if style == StyleBracketed {
		sb.WriteString("]\n")
	}
}

// Print writes v to standard output.
func (v *Vector[T]) Print() error { return v.PrintTo(os.Stdout) }

// PrintTo writes v to w.
func (v *Vector[T]) PrintTo(w io.Writer) error {
	if v == nil {
		return nullError("Vector.Print")
	}
	return Fprint(w, v.raw)
}

// Print writes m to standard output.
func (m *Matrix[T]) Print() error { return m.PrintTo(os.Stdout) }

// PrintTo writes m to w.
func (m *Matrix[T]) PrintTo(w io.Writer) error {
	if m == nil {
		return nullError("Matrix.Print")
	}
	return Fprint(w, m.raw)
}

// Print writes t to standard output.
func (t *Tensor[T]) Print() error { return t.PrintTo(os.Stdout) }

// PrintTo writes t to w.
func (t *Tensor[T]) PrintTo(w io.Writer) error {
	if t == nil {
		return nullError("Tensor.Print")
	}
	return Fprint(w, t.raw)
}
