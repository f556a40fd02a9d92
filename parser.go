// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"errors"
	"io"

	"go4.org/mem"
)

// Event is the type of a parser event.
type Event byte

// Constants defining the valid Event values.
const (
	None        Event = iota // no event has been reported yet
	Error                    // parsing failed; see Parser.Err
	Done                     // the top-level value is complete
	ObjectStart              // left brace "{"
	ObjectEnd                // right brace "}"
	ArrayStart               // left square bracket "["
	ArrayEnd                 // right square bracket "]"
	String                   // a string, either a value or a member name
	Number                   // a number
	True                     // constant: true
	False                    // constant: false
	Null                     // constant: null
)

var eventStr = [...]string{
	None:        "none",
	Error:       "error",
	Done:        "done",
	ObjectStart: "object start",
	ObjectEnd:   "object end",
	ArrayStart:  "array start",
	ArrayEnd:    "array end",
	String:      "string",
	Number:      "number",
	True:        "true",
	False:       "false",
	Null:        "null",
}

func (e Event) String() string {
	if int(e) >= len(eventStr) {
		return "invalid event"
	}
	return eventStr[e]
}

var (
	wordTrue  = mem.S("true")
	wordFalse = mem.S("false")
	wordNull  = mem.S("null")
)

// A Parser is a pull parser for JSON. Each call to Next advances the parser
// by one event and returns it. A Parser is not safe for concurrent use.
type Parser struct {
	src     source
	opts    Options
	stk     stack
	scratch []byte // decoded string or number text not viewable in place
	text    []byte // text of the current token

	event Event    // the most recent event
	final Event    // Done or Error once parsing has finished, else None
	tok   Location // start of the current token
	err   *SyntaxError

	line      int   // current line, 1-based
	lineStart int64 // offset of the first byte of the current line
}

// NewParser constructs a parser that consumes input from r. A nil opts is
// equivalent to a pointer to a zero Options.
func NewParser(r io.Reader, opts *Options) *Parser {
	p := newParser(opts)
	p.src = source{r: r, buf: make([]byte, p.opts.bufferSize())}
	return p
}

// NewParserBytes constructs a parser that consumes data. The parser does not
// modify data, but strings reported by the parser may alias it. A nil opts is
// equivalent to a pointer to a zero Options.
func NewParserBytes(data []byte, opts *Options) *Parser {
	p := newParser(opts)
	p.src = source{buf: data, end: len(data), eof: true}
	return p
}

func newParser(opts *Options) *Parser {
	p := &Parser{line: 1}
	if opts != nil {
		p.opts = *opts
	}
	p.stk.init(p.opts.maxDepth())
	return p
}

// Next advances p to the next event and returns it.
//
// Once the top-level value is complete Next returns Done; if the input is
// malformed or cannot be read, it returns Error. Either of those is then
// returned by every later call, without consuming further input.
func (p *Parser) Next() Event {
	if p.final != None {
		return p.final
	}
	p.text = nil
	p.event = p.step()
	return p.event
}

// step advances the grammar by one event. The grammar state is given by the
// innermost frame of the stack and the parity of its count.
func (p *Parser) step() Event {
	top := p.stk.top()
	switch top.kind {
	case RootFrame:
		if top.count == 0 {
			c, ok := p.nextToken()
			if !ok {
				return p.fail(p.here(), ErrUnexpectedEOF, "no value in input")
			}
			return p.value(c)
		} else if p.opts.allowTrailingData() {
			return p.finish()
		}
		c, ok := p.nextToken()
		if ok {
			return p.fail(p.tok, nil, "unexpected %s after top-level value", describe(c))
		} else if p.final == Error {
			return Error
		}
		return p.finish()

	case ArrayFrame:
		c, ok := p.nextToken()
		if !ok {
			return p.failEOF("array")
		} else if c == ']' {
			p.stk.pop()
			return ArrayEnd
		}
		if top.count > 0 {
			if c != ',' {
				return p.unexpected(c, "',' or ']'")
			}
			if c, ok = p.nextToken(); !ok {
				return p.failEOF("array")
			}
		}
		return p.value(c)

	case ObjectFrame:
		c, ok := p.nextToken()
		if !ok {
			return p.failEOF("object")
		}
		if top.count%2 == 1 {
			if c != ':' {
				return p.unexpected(c, "':'")
			}
			if c, ok = p.nextToken(); !ok {
				return p.failEOF("object")
			}
			return p.value(c)
		}
		if c == '}' {
			p.stk.pop()
			return ObjectEnd
		}
		if top.count > 0 {
			if c != ',' {
				return p.unexpected(c, "',' or '}'")
			}
			if c, ok = p.nextToken(); !ok {
				return p.failEOF("object")
			}
		}
		if c != '"' {
			return p.unexpected(c, "string")
		}
		top.count++
		if !p.readString() {
			return Error
		}
		return String
	}
	panic("jstream: invalid frame")
}

// value consumes a value whose first byte c has just been read.
func (p *Parser) value(c byte) Event {
	p.stk.top().count++
	switch classes[c] {
	case cStruct:
		switch c {
		case '{':
			return p.begin(ObjectFrame, ObjectStart)
		case '[':
			return p.begin(ArrayFrame, ArrayStart)
		}
	case cString:
		if p.readString() {
			return String
		}
		return Error
	case cNumber:
		if p.readNumber() {
			return Number
		}
		return Error
	case cLiteral:
		switch c {
		case 't':
			return p.readLiteral(wordTrue, True)
		case 'f':
			return p.readLiteral(wordFalse, False)
		case 'n':
			return p.readLiteral(wordNull, Null)
		}
	}
	return p.unexpected(c, "value")
}

func (p *Parser) begin(kind Frame, ev Event) Event {
	if !p.stk.push(kind) {
		return p.fail(p.tok, ErrDepth, "maximum nesting depth %d exceeded", p.stk.max)
	}
	return ev
}

// readLiteral matches the rest of word after its first byte, one byte at a
// time.
func (p *Parser) readLiteral(word mem.RO, ev Event) Event {
	s := &p.src
	for i := 1; i < word.Len(); i++ {
		if !s.avail() {
			return p.failEOF(word.StringCopy())
		} else if c := s.buf[s.pos]; c != word.At(i) {
			return p.fail(p.here(), nil, "unexpected %s in %s", describe(c), word.StringCopy())
		}
		s.pos++
	}
	p.scratch = mem.Append(p.scratch[:0], word)
	p.text = p.scratch
	return ev
}

func (p *Parser) finish() Event {
	p.final = Done
	return Done
}

// Event returns the most recent event reported by Next.
func (p *Parser) Event() Event { return p.event }

// Text returns the text of the current token: the decoded contents of a
// string, the literal text of a number, or the keyword of a constant. It is
// empty for other events.
//
// The returned slice may alias the input buffer (or for NewParserBytes, the
// input itself) and is only valid until the next call of Next. The caller
// must copy the contents if they are needed beyond that.
func (p *Parser) Text() []byte { return p.text }

// Copy returns a copy of the text of the current token.
func (p *Parser) Copy() []byte { return append([]byte(nil), p.text...) }

// Float64 returns the value of the current Number token.
func (p *Parser) Float64() (float64, error) {
	if p.event != Number {
		return 0, errors.New("current token is not a number")
	}
	return mem.ParseFloat(mem.B(p.text), 64)
}

// Int64 returns the value of the current Number token as an integer. It
// reports an error if the number has a fraction or exponent or is out of
// range.
func (p *Parser) Int64() (int64, error) {
	if p.event != Number {
		return 0, errors.New("current token is not a number")
	}
	return mem.ParseInt(mem.B(p.text), 10, 64)
}

// IsName reports whether the current String token is the name of an object
// member rather than a value.
func (p *Parser) IsName() bool {
	top := p.stk.top()
	return p.event == String && top.kind == ObjectFrame && top.count%2 == 1
}

// Context returns the kind of the innermost frame and the number of tokens
// consumed in it. In an object, names and values are counted separately, so
// an odd count means the most recent token was a member name.
func (p *Parser) Context() (Frame, int) {
	top := p.stk.top()
	return top.kind, top.count
}

// Depth returns the current nesting depth, 0 outside any array or object.
func (p *Parser) Depth() int { return p.stk.depth() }

// Location returns the location of the start of the current token, or after
// an error, the location of the error.
func (p *Parser) Location() Location {
	if p.err != nil {
		return p.err.Location
	}
	return p.tok
}

// Offset returns the number of input bytes consumed so far.
func (p *Parser) Offset() int64 { return p.src.offset() }

// Err returns the error that stopped the parser, or nil. If not nil, the
// concrete type of the error is *SyntaxError.
func (p *Parser) Err() error {
	if p.err == nil {
		return nil
	}
	return p.err
}

// Skip consumes the rest of the current value and returns the event that
// ended it. After ObjectStart or ArrayStart that is the matching ObjectEnd or
// ArrayEnd. After a member name, Skip skips the value of the member. For any
// other event Skip does nothing and returns the current event.
func (p *Parser) Skip() Event {
	switch p.event {
	case String:
		if !p.IsName() {
			return p.event
		}
		switch ev := p.Next(); ev {
		case ObjectStart, ArrayStart:
			return p.Skip()
		default:
			return ev
		}
	case ObjectStart, ArrayStart:
		for depth := 1; depth > 0; {
			switch p.Next() {
			case ObjectStart, ArrayStart:
				depth++
			case ObjectEnd, ArrayEnd:
				depth--
			case Error, Done:
				return p.event
			}
		}
	}
	return p.event
}

// SkipUntil advances p until Next reports the event ev at any depth, or parsing
// ends. It returns the last event reported.
func (p *Parser) SkipUntil(ev Event) Event {
	for {
		got := p.Next()
		if got == ev || got == Error || got == Done {
			return got
		}
	}
}

// Reset prepares p to parse another top-level value after Next has reported
// Done, for input that holds a sequence of values. It requires the
// AllowTrailingData option, and reports false if p is in an error state or if
// nothing but whitespace (and comments, if enabled) remains in the input.
func (p *Parser) Reset() bool {
	if p.final != Done || !p.opts.allowTrailingData() {
		return false
	} else if !p.skipSpace() {
		return false
	}
	p.stk.init(p.stk.max)
	p.final, p.event, p.text = None, None, nil
	return true
}

// Close releases the resources held by p. After Close, Next reports Error,
// and Err reports an error wrapping ErrClosed unless p had already failed.
// Close does not close the underlying reader.
func (p *Parser) Close() error {
	if p.err == nil {
		p.fail(p.here(), ErrClosed, "parser closed")
	}
	p.final, p.event, p.text = Error, Error, nil
	p.src.buf, p.src.pos, p.src.end = nil, 0, 0
	p.scratch = nil
	return nil
}
