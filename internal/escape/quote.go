// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import "go4.org/mem"

// controlEsc maps each control character to its short escape, or 0.
var controlEsc = [' ']byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
}

var hexDigit = []byte("0123456789abcdef")

// AppendQuote appends src to dst as a double-quoted JSON string.
//
// Control characters, quotation marks and backslashes are escaped, using the
// short forms where JSON has one. A solidus is escaped only when the byte
// emitted immediately before it is "<", so that "</" never appears in the
// output. All other bytes are copied verbatim: bytes at or above 0x80 are
// assumed to be valid UTF-8 and are not checked.
func AppendQuote(dst []byte, src mem.RO) []byte {
	dst = append(dst, '"')
	prev := byte('"')
	start := 0
	for i := 0; i < src.Len(); i++ {
		c := src.At(i)
		var esc bool
		switch {
		case c < ' ', c == '"', c == '\\':
			esc = true
		case c == '/':
			esc = prev == '<'
		}
		prev = c
		if !esc {
			continue
		}
		dst = mem.Append(dst, src.Slice(start, i))
		start = i + 1
		if c < ' ' {
			if b := controlEsc[c]; b != 0 {
				dst = append(dst, '\\', b)
			} else {
				dst = append(dst, '\\', 'u', '0', '0', hexDigit[c>>4], hexDigit[c&15])
			}
		} else {
			dst = append(dst, '\\', c)
		}
	}
	dst = mem.Append(dst, src.SliceFrom(start))
	return append(dst, '"')
}

// Quote returns src encoded as a double-quoted JSON string.
func Quote(src mem.RO) []byte { return AppendQuote(make([]byte, 0, src.Len()+2), src) }
