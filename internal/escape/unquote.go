// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles the Unicode details of JSON strings: decoding of
// \u escapes and surrogate pairs, validation of raw UTF-8, and quoting of
// strings for output.
package escape

import (
	"errors"
	"fmt"

	"go4.org/mem"
)

// A Policy says what to do with invalid UTF-8 or an invalid Unicode escape.
type Policy byte

// Constants defining the valid Policy values.
const (
	Reject  Policy = iota // report an error
	Ignore                // drop the offending input
	Replace               // substitute a single "?"
)

func (p Policy) String() string {
	switch p {
	case Reject:
		return "reject"
	case Ignore:
		return "ignore"
	case Replace:
		return "replace"
	}
	return fmt.Sprintf("Policy(%d)", byte(p))
}

// ParsePolicy returns the Policy with the given name.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "reject", "":
		return Reject, nil
	case "ignore":
		return Ignore, nil
	case "replace":
		return Replace, nil
	}
	return Reject, fmt.Errorf("unknown policy %q", s)
}

var (
	// ErrInvalidUTF8 is reported for malformed raw UTF-8 under Reject.
	ErrInvalidUTF8 = errors.New("invalid UTF-8")

	// ErrSurrogate is reported for an unpaired surrogate under Reject.
	ErrSurrogate = errors.New("invalid surrogate")

	// ErrCodePoint is reported for a code point outside the Unicode range.
	ErrCodePoint = errors.New("invalid code point")
)

// Substitute is the byte written in place of invalid input under Replace.
const Substitute = '?'

// Apply handles one unit of invalid input according to p, appending to dst
// as needed. Under Reject it returns err unmodified.
func (p Policy) Apply(dst []byte, err error) ([]byte, error) {
	switch p {
	case Ignore:
		return dst, nil
	case Replace:
		return append(dst, Substitute), nil
	default:
		return dst, err
	}
}

// Hex4 decodes a 16-bit code unit from exactly four hexadecimal digits at the
// front of src. It reports false if src is too short or has a non-hex digit
// in the first four positions.
func Hex4(src mem.RO) (rune, bool) {
	if src.Len() < 4 {
		return 0, false
	}
	var v rune
	for i := range 4 {
		d := hexValue(src.At(i))
		if d < 0 {
			return 0, false
		}
		v = v<<4 | rune(d)
	}
	return v, true
}

func hexValue(b byte) int {
	switch {
	case '0' <= b && b <= '9':
		return int(b - '0')
	case 'a' <= b && b <= 'f':
		return int(b - 'a' + 10)
	case 'A' <= b && b <= 'F':
		return int(b - 'A' + 10)
	}
	return -1
}

// IsHexDigit reports whether b is a hexadecimal digit.
func IsHexDigit(b byte) bool { return hexValue(b) >= 0 }

// IsHighSurrogate reports whether r is a leading UTF-16 surrogate.
func IsHighSurrogate(r rune) bool { return 0xD800 <= r && r <= 0xDBFF }

// IsLowSurrogate reports whether r is a trailing UTF-16 surrogate.
func IsLowSurrogate(r rune) bool { return 0xDC00 <= r && r <= 0xDFFF }

// Combine returns the code point encoded by the surrogate pair hi, lo.
func Combine(hi, lo rune) rune { return 0x10000 + (hi-0xD800)<<10 + (lo - 0xDC00) }

// AppendRune appends the UTF-8 encoding of r to dst. A code point in the
// surrogate range or beyond U+10FFFF is handled according to p.
func AppendRune(dst []byte, r rune, p Policy) ([]byte, error) {
	switch {
	case r < 0:
		return p.Apply(dst, ErrCodePoint)
	case r < 0x80:
		return append(dst, byte(r)), nil
	case r < 0x800:
		return append(dst, 0xC0|byte(r>>6), 0x80|byte(r)&0x3F), nil
	case IsHighSurrogate(r) || IsLowSurrogate(r):
		return p.Apply(dst, ErrSurrogate)
	case r < 0x10000:
		return append(dst,
			0xE0|byte(r>>12),
			0x80|byte(r>>6)&0x3F,
			0x80|byte(r)&0x3F,
		), nil
	case r < 0x110000:
		return append(dst,
			0xF0|byte(r>>18),
			0x80|byte(r>>12)&0x3F,
			0x80|byte(r>>6)&0x3F,
			0x80|byte(r)&0x3F,
		), nil
	default:
		return p.Apply(dst, ErrCodePoint)
	}
}
