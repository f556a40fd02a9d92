// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jstream

import "strconv"

func isNumByte(c byte) bool {
	return isDigit(c) || c == '-' || c == '+' || c == '.' || c == 'e' || c == 'E'
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// readNumber reads a number whose first byte has just been consumed, leaving
// its text in p.text.
//
// The scan accepts any run of bytes that can occur in a number, since the run
// may span several buffer refills. The complete text is then checked against
// the JSON number grammar.
func (p *Parser) readNumber() bool {
	s := &p.src
	p.scratch = p.scratch[:0]
	run, owned := s.pos-1, false
	for {
		i := s.pos
		for i < s.end && isNumByte(s.buf[i]) {
			i++
		}
		s.pos = i
		if i < s.end {
			break
		}
		p.scratch = append(p.scratch, s.buf[run:i]...)
		owned = true
		ok := s.fill(1)
		run = s.pos
		if !ok {
			if s.err != nil {
				p.failIO()
				return false
			}
			break // end of input ends the number
		}
	}
	if owned {
		p.scratch = append(p.scratch, s.buf[run:s.pos]...)
		p.text = p.scratch
	} else {
		p.text = s.buf[run:s.pos]
	}

	if i := checkNumber(p.text); i >= 0 {
		loc := p.tok
		loc.Offset += int64(i)
		loc.Column += i
		if i == len(p.text) {
			p.fail(loc, nil, "invalid number %s: unexpected end of number", strconv.Quote(string(p.text)))
		} else {
			p.fail(loc, nil, "invalid number %s: unexpected %s", strconv.Quote(string(p.text)), describe(p.text[i]))
		}
		return false
	}
	return true
}

// checkNumber checks text against the JSON number grammar
//
//	-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?
//
// It returns -1 if text is valid. Otherwise it returns the offset of the first
// byte that does not fit, which is len(text) if text ends too soon.
func checkNumber(text []byte) int {
	i, n := 0, len(text)
	digits := func() {
		for i < n && isDigit(text[i]) {
			i++
		}
	}
	if i < n && text[i] == '-' {
		i++
	}
	switch {
	case i == n:
		return i
	case text[i] == '0':
		i++
	case isDigit(text[i]):
		digits()
	default:
		return i
	}
	if i < n && text[i] == '.' {
		if i++; i == n || !isDigit(text[i]) {
			return i
		}
		digits()
	}
	if i < n && (text[i] == 'e' || text[i] == 'E') {
		if i++; i < n && (text[i] == '+' || text[i] == '-') {
			i++
		}
		if i == n || !isDigit(text[i]) {
			return i
		}
		digits()
	}
	if i < n {
		return i
	}
	return -1
}
