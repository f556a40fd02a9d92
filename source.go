// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"errors"
	"io"
)

// SourceFunc adapts a read callback to an io.Reader for use with NewParser.
// The callback fills dst and returns the number of bytes written. A return of
// zero bytes marks the end of input, whether or not io.EOF is also reported;
// any other error is permanent for the parser reading from it.
type SourceFunc func(dst []byte) (int, error)

// Read satisfies io.Reader.
func (f SourceFunc) Read(dst []byte) (int, error) {
	n, err := f(dst)
	if n < 0 {
		return 0, errors.New("negative read count")
	} else if n == 0 && err == nil {
		return 0, io.EOF
	}
	return n, err
}

// source is the parser's staging buffer and its refill logic.
type source struct {
	r    io.Reader // nil for an in-memory source
	buf  []byte
	pos  int   // offset of the next unconsumed byte in buf
	end  int   // offset past the last valid byte in buf
	base int64 // absolute offset of buf[0]
	eof  bool  // no more input will arrive
	err  error // sticky read error
}

// avail reports whether at least one byte is buffered, reading more input if
// necessary. It reports false at end of input or on a read error.
func (s *source) avail() bool {
	return s.pos < s.end || s.fill(1)
}

// fill ensures that at least n bytes are buffered from pos onward, reading
// as needed. Bytes already buffered from pos are preserved; bytes before pos
// are discarded, so any view into them is invalidated. It reports whether n
// bytes are available.
func (s *source) fill(n int) bool {
	for s.end-s.pos < n {
		if s.eof || s.err != nil {
			return false
		}
		if s.pos > 0 {
			copy(s.buf, s.buf[s.pos:s.end])
			s.base += int64(s.pos)
			s.end -= s.pos
			s.pos = 0
		}
		if s.end == len(s.buf) {
			s.buf = append(s.buf, make([]byte, len(s.buf))...)
		}
		nr, err := s.r.Read(s.buf[s.end:])
		if nr < 0 {
			s.err = errors.New("negative read count")
			return false
		}
		s.end += nr
		if err == io.EOF || (nr == 0 && err == nil) {
			s.eof = true
		} else if err != nil {
			s.err = err
		}
	}
	return true
}

// offset returns the absolute input offset of the next unconsumed byte.
func (s *source) offset() int64 { return s.base + int64(s.pos) }
