// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"go4.org/mem"

	"github.com/creachadair/jstream/internal/escape"
)

// DefaultWriterBufferSize is the output buffer size used when
// WriterOptions.BufferSize is zero.
const DefaultWriterBufferSize = 4096

var errWriterClosed = errors.New("writer closed")

// WriterOptions control the behaviour of a Writer. A nil *WriterOptions is
// ready for use and selects the defaults.
type WriterOptions struct {
	// Compact suppresses non-semantic whitespace: the indentation and newline
	// methods of the Writer become no-ops.
	Compact bool

	// BufferSize is the size of the output buffer. If zero or negative,
	// DefaultWriterBufferSize is used.
	BufferSize int

	// FormatFloat, if set, formats floating-point values for AddFloat,
	// appending to dst. By default strconv.AppendFloat is used with the 'g'
	// format and the smallest precision that round-trips.
	FormatFloat func(dst []byte, f float64) []byte

	// DecimalSeparator is the decimal separator produced by FormatFloat, if
	// that is not ".". Occurrences of it in formatted values are replaced by
	// ".", since JSON numbers do not vary by locale.
	DecimalSeparator byte
}

// A Writer writes JSON text incrementally to an underlying io.Writer. It
// buffers its output, flushing whenever the buffer would overflow; call Flush
// or Close when done to write any remaining output.
//
// The Writer does not check the structure of what it writes. Errors writing
// to the underlying writer are sticky: after the first, all further writes are
// skipped and every method reports that error.
type Writer struct {
	w    io.Writer
	buf  []byte
	opts WriterOptions
	err  error
}

// NewWriter constructs a Writer that delivers output to w. A nil opts is
// equivalent to a pointer to a zero WriterOptions.
func NewWriter(w io.Writer, opts *WriterOptions) *Writer {
	out := &Writer{w: w}
	if opts != nil {
		out.opts = *opts
	}
	size := out.opts.BufferSize
	if size <= 0 {
		size = DefaultWriterBufferSize
	}
	out.buf = make([]byte, 0, size)
	return out
}

// reserve makes room for n more bytes in the buffer, flushing if needed.
// It reports false if the writer is in an error state.
func (w *Writer) reserve(n int) bool {
	if w.err != nil {
		return false
	}
	if len(w.buf) > 0 && len(w.buf)+n > cap(w.buf) {
		w.flush()
	}
	return w.err == nil
}

func (w *Writer) flush() {
	if w.err != nil || len(w.buf) == 0 {
		return
	}
	n, err := w.w.Write(w.buf)
	if err == nil && n < len(w.buf) {
		err = io.ErrShortWrite
	}
	if err != nil {
		w.err = fmt.Errorf("write: %w", err)
	}
	w.buf = w.buf[:0]
}

// AddString writes s as a quoted JSON string. See AddBytes.
func (w *Writer) AddString(s string) error { return w.addQuoted(mem.S(s)) }

// AddBytes writes b as a quoted JSON string. Control characters, quotation
// marks and backslashes are escaped, as is a solidus immediately following a
// "<". Bytes at or above 0x80 are copied as they are, so b should be valid
// UTF-8.
func (w *Writer) AddBytes(b []byte) error { return w.addQuoted(mem.B(b)) }

func (w *Writer) addQuoted(src mem.RO) error {
	if w.reserve(src.Len() + 2) {
		w.buf = escape.AppendQuote(w.buf, src)
	}
	return w.err
}

// AddFloat writes f as a JSON number. It reports an error without writing
// anything if f is NaN or infinite, which JSON cannot represent; this error
// does not affect later writes.
func (w *Writer) AddFloat(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("unsupported value %v", f)
	}
	if !w.reserve(32) {
		return w.err
	}
	start := len(w.buf)
	if w.opts.FormatFloat != nil {
		w.buf = w.opts.FormatFloat(w.buf, f)
	} else {
		w.buf = strconv.AppendFloat(w.buf, f, 'g', -1, 64)
	}
	if sep := w.opts.DecimalSeparator; sep != 0 && sep != '.' {
		for i := start; i < len(w.buf); i++ {
			if w.buf[i] == sep {
				w.buf[i] = '.'
			}
		}
	}
	return nil
}

// AddInt writes z as a JSON number.
func (w *Writer) AddInt(z int64) error {
	if w.reserve(20) {
		w.buf = strconv.AppendInt(w.buf, z, 10)
	}
	return w.err
}

// AddRaw writes b verbatim.
func (w *Writer) AddRaw(b []byte) error {
	if w.reserve(len(b)) {
		w.buf = append(w.buf, b...)
	}
	return w.err
}

// AddRawString writes s verbatim.
func (w *Writer) AddRawString(s string) error {
	if w.reserve(len(s)) {
		w.buf = append(w.buf, s...)
	}
	return w.err
}

// AddFormat writes the result of formatting args as with fmt.Sprintf.
// The output is written verbatim.
func (w *Writer) AddFormat(format string, args ...any) error {
	if w.reserve(len(format)) {
		w.buf = fmt.Appendf(w.buf, format, args...)
	}
	return w.err
}

// AddSpaces writes n spaces, unless the writer is compact.
// It panics if n < 0.
func (w *Writer) AddSpaces(n int) error { return w.addRepeat(' ', n) }

// AddTabs writes n tabs, unless the writer is compact.
// It panics if n < 0.
func (w *Writer) AddTabs(n int) error { return w.addRepeat('\t', n) }

// AddNewline writes a newline, unless the writer is compact.
func (w *Writer) AddNewline() error { return w.addRepeat('\n', 1) }

func (w *Writer) addRepeat(c byte, n int) error {
	if n < 0 {
		panic(fmt.Sprintf("jstream: negative repeat count %d", n))
	}
	if w.opts.Compact || n == 0 {
		return w.err
	}
	if w.reserve(n) {
		for range n {
			w.buf = append(w.buf, c)
		}
	}
	return w.err
}

// Flush writes any buffered output to the underlying writer.
func (w *Writer) Flush() error {
	w.flush()
	return w.err
}

// Close flushes any buffered output and releases the buffer. After Close all
// methods of w report an error.
func (w *Writer) Close() error {
	w.flush()
	err := w.err
	if w.err == nil {
		w.err = errWriterClosed
	}
	w.buf = nil
	return err
}

// Err returns the sticky error of w, or nil.
func (w *Writer) Err() error { return w.err }
