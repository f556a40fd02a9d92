// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"go4.org/mem"

	"github.com/creachadair/jstream/internal/escape"
)

// readString reads the body of a string whose opening quote has just been
// consumed, leaving its decoded contents in p.text.
//
// While the string needs no decoding and lies within a single buffer window,
// p.text is a view of the input buffer. Otherwise the contents are gathered
// in p.scratch: once a string has been copied there it stays there.
func (p *Parser) readString() bool {
	s := &p.src
	p.scratch = p.scratch[:0]
	start, owned := s.pos, false

	// own moves the contents read so far into scratch.
	own := func() {
		if !owned {
			p.scratch = append(p.scratch, s.buf[start:s.pos]...)
			owned = true
		}
	}
	ctl := p.opts.allowControlChars()
	for {
		// Scan a run of plain bytes. The mask tells us whether the run is
		// pure ASCII and can skip UTF-8 validation.
		var mask byte
		i := s.pos
		for i < s.end {
			c := s.buf[i]
			if c == '"' || c == '\\' || (c < ' ' && !ctl) {
				break
			} else if c == '\n' {
				p.line++
				p.lineStart = s.base + int64(i) + 1
			}
			mask |= c
			i++
		}
		atEnd := i == s.end
		run := mem.B(s.buf[s.pos:i])
		if atEnd && mask >= 0x80 {
			// Hold back a sequence split by the end of the window.
			if k := escape.Partial(run); k > 0 {
				i -= k
				run = run.SliceTo(run.Len() - k)
			}
		}

		if mask >= 0x80 && !escape.Valid(run) {
			own()
			var err error
			p.scratch, err = escape.AppendUTF8(p.scratch, run, p.opts.policy())
			if err != nil {
				p.fail(p.tok, ErrInvalidUTF8, "invalid UTF-8 in string")
				return false
			}
		} else if owned {
			p.scratch = mem.Append(p.scratch, run)
		}
		s.pos = i

		if atEnd {
			own()
			if !s.fill(s.end - s.pos + 1) {
				p.failEOF("string")
				return false
			}
			continue
		}

		switch c := s.buf[i]; c {
		case '"':
			s.pos++
			if owned {
				p.text = p.scratch
			} else {
				p.text = s.buf[start:i]
			}
			return true
		case '\\':
			own()
			s.pos++
			if !p.readEscape() {
				return false
			}
		default:
			p.fail(p.here(), nil, "unescaped control %s in string", describe(c))
			return false
		}
	}
}

// readEscape decodes the escape sequence following a backslash, appending the
// result to p.scratch.
func (p *Parser) readEscape() bool {
	s := &p.src
	if !s.avail() {
		p.failEOF("string")
		return false
	}
	c := s.buf[s.pos]
	s.pos++
	switch c {
	case '"', '\\', '/':
		p.scratch = append(p.scratch, c)
	case 'b':
		p.scratch = append(p.scratch, '\b')
	case 'f':
		p.scratch = append(p.scratch, '\f')
	case 'n':
		p.scratch = append(p.scratch, '\n')
	case 'r':
		p.scratch = append(p.scratch, '\r')
	case 't':
		p.scratch = append(p.scratch, '\t')
	case 'u':
		return p.readUnicode()
	default:
		p.fail(p.locationAt(s.offset()-2), nil, "invalid escape %s in string", describe(c))
		return false
	}
	return true
}

// readUnicode decodes a \u escape whose "\u" has just been consumed, together
// with the low half of a surrogate pair if one follows.
func (p *Parser) readUnicode() bool {
	s := &p.src
	loc := p.locationAt(s.offset() - 2)
	r, ok := p.readHex4(loc)
	if !ok {
		return false
	}
	for escape.IsHighSurrogate(r) {
		// The low half must follow immediately as another \u escape.
		s.fill(2)
		if s.end-s.pos < 2 || s.buf[s.pos] != '\\' || s.buf[s.pos+1] != 'u' {
			if s.err != nil {
				p.failIO()
				return false
			}
			return p.invalid(loc, escape.ErrSurrogate, "unpaired surrogate \\u%04x in string", r)
		}
		next := p.locationAt(s.offset())
		s.pos += 2
		lo, ok := p.readHex4(next)
		if !ok {
			return false
		} else if escape.IsLowSurrogate(lo) {
			r = escape.Combine(r, lo)
			break
		}

		// The high half is unpaired; lo begins afresh.
		if !p.invalid(loc, escape.ErrSurrogate, "unpaired surrogate \\u%04x in string", r) {
			return false
		}
		r, loc = lo, next
	}
	var err error
	p.scratch, err = escape.AppendRune(p.scratch, r, p.opts.policy())
	if err != nil {
		p.fail(loc, ErrInvalidUTF8, "unpaired surrogate \\u%04x in string", r)
		return false
	}
	return true
}

// readHex4 reads the four hex digits of a \u escape starting at loc.
// A malformed escape is an error regardless of policy.
func (p *Parser) readHex4(loc Location) (rune, bool) {
	s := &p.src
	s.fill(4)
	r, ok := escape.Hex4(mem.B(s.buf[s.pos:s.end]))
	if ok {
		s.pos += 4
		return r, true
	}
	for i := s.pos; i < s.end && i < s.pos+4; i++ {
		if !escape.IsHexDigit(s.buf[i]) {
			p.fail(loc, nil, "invalid \\u escape: %s is not a hex digit", describe(s.buf[i]))
			return 0, false
		}
	}
	p.failEOF("string")
	return 0, false
}

// invalid handles an invalid escape according to the parser's policy,
// either substituting for it in p.scratch or recording an error.
func (p *Parser) invalid(loc Location, cause error, msg string, args ...any) bool {
	var err error
	p.scratch, err = p.opts.policy().Apply(p.scratch, cause)
	if err != nil {
		p.fail(loc, ErrInvalidUTF8, msg, args...)
		return false
	}
	return true
}
