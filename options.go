// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jstream

import "github.com/creachadair/jstream/internal/escape"

const (
	// DefaultMaxDepth is the nesting limit used when Options.MaxDepth is zero.
	DefaultMaxDepth = 50

	// DefaultBufferSize is the size of the input staging buffer used when
	// Options.BufferSize is zero.
	DefaultBufferSize = 4096
)

// Options control the behaviour of a Parser. A nil *Options is ready for use
// and selects strict RFC 8259 parsing with default limits. Each flag relaxes
// the grammar independently of the others.
type Options struct {
	// AllowComments permits C++ style line (// ...) and block (/* ... */)
	// comments wherever whitespace is permitted.
	AllowComments bool

	// AllowBOM permits a UTF-8 byte order mark at the very start of input.
	AllowBOM bool

	// AllowControlChars permits unescaped ASCII control characters (bytes
	// below 0x20) inside strings.
	AllowControlChars bool

	// IgnoreInvalid drops invalid UTF-8 sequences and invalid Unicode escapes
	// from strings rather than reporting an error.
	IgnoreInvalid bool

	// ReplaceInvalid replaces invalid UTF-8 sequences and invalid Unicode
	// escapes in strings with "?" rather than reporting an error.
	// If both ReplaceInvalid and IgnoreInvalid are set, ReplaceInvalid wins.
	ReplaceInvalid bool

	// AllowTrailingData stops parsing at the end of the first root value
	// without inspecting the remaining input. See also Parser.Reset.
	AllowTrailingData bool

	// MaxDepth is the maximum nesting depth of arrays and objects.
	// If zero or negative, DefaultMaxDepth is used.
	MaxDepth int

	// BufferSize is the size of the input staging buffer for readers.
	// If zero or negative, DefaultBufferSize is used.
	BufferSize int
}

func (o *Options) allowComments() bool     { return o != nil && o.AllowComments }
func (o *Options) allowBOM() bool          { return o != nil && o.AllowBOM }
func (o *Options) allowControlChars() bool { return o != nil && o.AllowControlChars }
func (o *Options) allowTrailingData() bool { return o != nil && o.AllowTrailingData }

func (o *Options) maxDepth() int {
	if o == nil || o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

func (o *Options) bufferSize() int {
	if o == nil || o.BufferSize <= 0 {
		return DefaultBufferSize
	}
	return o.BufferSize
}

func (o *Options) policy() escape.Policy {
	switch {
	case o == nil:
		return escape.Reject
	case o.ReplaceInvalid:
		return escape.Replace
	case o.IgnoreInvalid:
		return escape.Ignore
	default:
		return escape.Reject
	}
}
