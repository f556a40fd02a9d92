// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrDepth is reported when input nests beyond the configured maximum.
	ErrDepth = errors.New("maximum nesting depth exceeded")

	// ErrUnexpectedEOF is reported when input ends inside a value.
	ErrUnexpectedEOF = errors.New("unexpected end of input")

	// ErrInvalidUTF8 is reported for invalid UTF-8 or Unicode escapes in a
	// string when neither IgnoreInvalid nor ReplaceInvalid is set.
	ErrInvalidUTF8 = errors.New("invalid Unicode")

	// ErrClosed is reported by a parser after Close.
	ErrClosed = errors.New("parser closed")
)

const (
	maxMessageLen = 128 // maximum length of an error message in bytes
	snippetRadius = 16  // bytes of source kept each side of an error
)

// SyntaxError is the concrete type of errors reported by the parser. It is
// used for grammar errors, resource limits, and failures of the underlying
// reader alike; the last are available via errors.Unwrap.
type SyntaxError struct {
	Location Location
	Message  string

	// Snippet is a window of the raw source bytes around the failure.
	Snippet string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Location.LineCol, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }

// Detail renders the error together with its source snippet.
func (s *SyntaxError) Detail() string {
	if s.Snippet == "" {
		return s.Error()
	}
	return s.Error() + " near " + strconv.Quote(s.Snippet)
}

func truncateMessage(msg string) string {
	if len(msg) <= maxMessageLen {
		return msg
	}
	return msg[:maxMessageLen-3] + "..."
}

// describe renders a source byte for an error message.
func describe(c byte) string {
	if c < ' ' || c >= 0x7f {
		return fmt.Sprintf("byte 0x%02x", c)
	}
	return strconv.QuoteRune(rune(c))
}
