// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import "fmt"

// class is the lexical class of a single input byte.
type class byte

// Constants defining the valid class values.
const (
	cError   class = iota // not valid at the start of a token
	cSpace                // insignificant whitespace
	cNewline              // line feed, counted for locations
	cStruct               // one of { } [ ] , :
	cString               // " starts a string
	cNumber               // - or a digit starts a number
	cLiteral              // t, f or n starts a literal keyword
	cSpecial              // / may start a comment, 0xEF may start a byte order mark
)

var classes = [256]class{
	' ':  cSpace,
	'\t': cSpace,
	'\r': cSpace,
	'\n': cNewline,

	'{': cStruct,
	'}': cStruct,
	'[': cStruct,
	']': cStruct,
	',': cStruct,
	':': cStruct,

	'"': cString,

	'-': cNumber,
	'0': cNumber,
	'1': cNumber,
	'2': cNumber,
	'3': cNumber,
	'4': cNumber,
	'5': cNumber,
	'6': cNumber,
	'7': cNumber,
	'8': cNumber,
	'9': cNumber,

	't': cLiteral,
	'f': cLiteral,
	'n': cLiteral,

	'/':  cSpecial,
	0xEF: cSpecial,
}

// bom is the UTF-8 encoding of U+FEFF.
const bom = "\xef\xbb\xbf"

// Comment scanner states.
const (
	comSlash = iota // saw "/"
	comLine         // inside // ... up to newline
	comBlock        // inside /* ... */
	comStar         // saw "*" inside a block comment
)

// nextToken skips insignificant input and consumes the first byte of the
// next token, returning it. The location of the token is recorded in p.tok.
// It reports false at the end of input or on error; in the latter case the
// parser has already entered the error state.
func (p *Parser) nextToken() (byte, bool) {
	if !p.skipSpace() {
		return 0, false
	}
	c := p.src.buf[p.src.pos]
	p.tok = p.here()
	p.src.pos++
	return c, true
}

// skipSpace consumes whitespace, and comments and a leading byte order mark
// if those are enabled, stopping before the next token byte. It reports
// whether such a byte is available.
func (p *Parser) skipSpace() bool {
	s := &p.src
	for {
		if !s.avail() {
			if s.err != nil {
				p.failIO()
			}
			return false
		}
		c := s.buf[s.pos]
		switch classes[c] {
		case cSpace:
			s.pos++
			continue
		case cNewline:
			s.pos++
			p.newline()
			continue
		case cSpecial:
			if c == '/' && p.opts.allowComments() {
				if !p.skipComment() {
					return false
				}
				continue
			} else if c == bom[0] && p.opts.allowBOM() && s.offset() == 0 {
				if !p.skipBOM() {
					return false
				}
				continue
			}
		}
		return true
	}
}

// skipComment consumes a comment starting at the current position, which
// must be a "/". The state of the comment scanner carries across refills of
// the input buffer.
func (p *Parser) skipComment() bool {
	s := &p.src
	start := p.here()
	s.pos++
	state := comSlash
	for {
		if !s.avail() {
			if s.err != nil {
				p.failIO()
				return false
			} else if state == comLine {
				return true // a line comment may end the input
			}
			p.fail(start, ErrUnexpectedEOF, "unterminated comment")
			return false
		}
		c := s.buf[s.pos]
		s.pos++
		if c == '\n' {
			p.newline()
		}
		switch state {
		case comSlash:
			switch c {
			case '/':
				state = comLine
			case '*':
				state = comBlock
			default:
				p.fail(start, nil, "invalid %s after '/'", describe(c))
				return false
			}
		case comLine:
			if c == '\n' {
				return true
			}
		case comBlock:
			if c == '*' {
				state = comStar
			}
		case comStar:
			if c == '/' {
				return true
			} else if c != '*' {
				state = comBlock
			}
		}
	}
}

// skipBOM consumes a byte order mark at the start of input.
func (p *Parser) skipBOM() bool {
	s := &p.src
	start := p.here()
	for i := 0; i < len(bom); i++ {
		if !s.avail() {
			if s.err != nil {
				p.failIO()
				return false
			}
			p.fail(start, ErrUnexpectedEOF, "unterminated byte order mark")
			return false
		} else if c := s.buf[s.pos]; c != bom[i] {
			p.fail(p.here(), nil, "invalid %s in byte order mark", describe(c))
			return false
		}
		s.pos++
	}
	return true
}

// newline records that a line feed was just consumed.
func (p *Parser) newline() {
	p.line++
	p.lineStart = p.src.offset()
}

// here returns the location of the next unconsumed input byte.
func (p *Parser) here() Location { return p.locationAt(p.src.offset()) }

func (p *Parser) locationAt(off int64) Location {
	return Location{
		Offset:  off,
		LineCol: LineCol{Line: p.line, Column: int(off-p.lineStart) + 1},
	}
}

// fail puts the parser into the error state, recording an error at loc.
// Only the first error is kept. It returns Error for convenience.
func (p *Parser) fail(loc Location, cause error, msg string, args ...any) Event {
	if p.err == nil {
		p.err = &SyntaxError{
			Location: loc,
			Message:  truncateMessage(fmt.Sprintf(msg, args...)),
			Snippet:  p.snippet(loc.Offset),
			err:      cause,
		}
	}
	p.final = Error
	p.event = Error
	p.text = nil
	return Error
}

// failIO reports the sticky error from the underlying reader.
func (p *Parser) failIO() Event {
	return p.fail(p.here(), p.src.err, "read error: %v", p.src.err)
}

// failEOF reports input that ended inside a value of the given frame.
func (p *Parser) failEOF(what string) Event {
	if p.src.err != nil {
		return p.failIO()
	}
	return p.fail(p.here(), ErrUnexpectedEOF, "unexpected end of input in %s", what)
}

// unexpected reports an invalid token c at the current token location.
func (p *Parser) unexpected(c byte, want string) Event {
	return p.fail(p.tok, nil, "expected %s, got %s", want, describe(c))
}

// snippet returns the buffered source bytes around offset off.
func (p *Parser) snippet(off int64) string {
	s := &p.src
	i := min(max(int(off-s.base), 0), s.end)
	lo, hi := max(i-snippetRadius, 0), min(i+snippetRadius, s.end)
	return string(s.buf[lo:hi])
}
