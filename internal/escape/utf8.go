// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import "go4.org/mem"

// leadInfo describes the sequence introduced by a UTF-8 lead byte: its total
// length in bytes and the valid range of its first continuation byte. The
// ranges exclude overlong encodings and encoded surrogates (Unicode 15.0,
// Table 3-7). A zero size marks a byte that cannot begin a sequence.
type leadInfo struct {
	size   int
	lo, hi byte
}

func lead(b byte) leadInfo {
	switch {
	case b < 0x80:
		return leadInfo{1, 0, 0}
	case b < 0xC2: // continuation, or overlong 2-byte lead
		return leadInfo{}
	case b < 0xE0:
		return leadInfo{2, 0x80, 0xBF}
	case b == 0xE0:
		return leadInfo{3, 0xA0, 0xBF}
	case b == 0xED:
		return leadInfo{3, 0x80, 0x9F}
	case b < 0xF0:
		return leadInfo{3, 0x80, 0xBF}
	case b == 0xF0:
		return leadInfo{4, 0x90, 0xBF}
	case b < 0xF4:
		return leadInfo{4, 0x80, 0xBF}
	case b == 0xF4:
		return leadInfo{4, 0x80, 0x8F}
	}
	return leadInfo{}
}

func isCont(b byte) bool { return b&0xC0 == 0x80 }

// checkSeq checks the sequence starting at offset i of src. It returns the
// length of the sequence and whether it is valid. For an invalid sequence the
// length spans the offending byte and the continuation bytes that follow it,
// up to the maximum length of a sequence.
func checkSeq(src mem.RO, i int) (int, bool) {
	info := lead(src.At(i))
	if info.size == 1 {
		return 1, true
	}
	n := 1
	ok := info.size != 0
	for n < 4 && i+n < src.Len() && isCont(src.At(i+n)) {
		c := src.At(i + n)
		if ok && n == 1 && (c < info.lo || c > info.hi) {
			ok = false
		}
		n++
		if ok && n == info.size {
			return n, true
		}
	}
	return n, false
}

// Valid reports whether src is entirely valid UTF-8.
func Valid(src mem.RO) bool {
	for i := 0; i < src.Len(); {
		n, ok := checkSeq(src, i)
		if !ok {
			return false
		}
		i += n
	}
	return true
}

// AppendUTF8 appends src to dst, validating that it is well-formed UTF-8.
// Each invalid sequence is handled according to p. Under Reject, AppendUTF8
// returns ErrInvalidUTF8 along with dst extended by the valid prefix of src.
func AppendUTF8(dst []byte, src mem.RO, p Policy) ([]byte, error) {
	start := 0
	for i := 0; i < src.Len(); {
		if src.At(i) < 0x80 {
			i++
			continue
		}
		n, ok := checkSeq(src, i)
		if ok {
			i += n
			continue
		}
		dst = mem.Append(dst, src.Slice(start, i))
		var err error
		dst, err = p.Apply(dst, ErrInvalidUTF8)
		if err != nil {
			return dst, err
		}
		i += n
		start = i
	}
	return mem.Append(dst, src.SliceFrom(start)), nil
}

// Partial returns the length of the sequence at the end of src that more
// input could still extend, or 0 if there is none. That is either a valid
// sequence missing its final bytes, or an invalid one shorter than the
// maximum length of a sequence, since the continuation bytes that follow an
// invalid sequence belong to it. A caller reading input in chunks can hold
// back that many bytes until more input arrives, so that the result of
// AppendUTF8 does not depend on where the chunks were split.
func Partial(src mem.RO) int {
	end := src.Len()
	for i := 0; i < end; {
		if src.At(i) < 0x80 {
			i++
			continue
		}
		n, ok := checkSeq(src, i)
		if i+n == end && !ok && n < 4 {
			return n
		}
		i += n
	}
	return 0
}
