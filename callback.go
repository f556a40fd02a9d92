// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

// An Anchor is a read-only view of the parser's current token, passed to the
// methods of Handlers. It is only valid for the duration of the call; the
// handler must copy any data it needs to retain beyond that.
type Anchor interface {
	Event() Event       // Returns the type of the current event
	Text() []byte       // Returns a view of the text of the token
	Copy() []byte       // Returns a copy of the text of the token
	Location() Location // Returns the location of the token
	Depth() int         // Returns the current nesting depth
	IsName() bool       // Reports whether a string is a member name
}

// Handlers is a collection of callbacks invoked by Parse for each event.
// Any field may be nil, in which case the corresponding event is ignored. If
// a handler reports an error, parsing stops and that error is returned to the
// caller along with the event that triggered it.
type Handlers struct {
	// Begin and end an object. The end handler is called after the frame for
	// the object has been removed, so the anchor reports the outer depth.
	ObjectStart func(Anchor) error
	ObjectEnd   func(Anchor) error

	// Begin and end an array.
	ArrayStart func(Anchor) error
	ArrayEnd   func(Anchor) error

	// Report the name of an object member, unescaped. Member names are only
	// ever reported here, never to String.
	Name func(Anchor) error

	// Report a string value, unescaped.
	String func(Anchor) error

	// Report a number. The text is exactly as written in the input.
	Number func(Anchor) error

	// Report a constant.
	True  func(Anchor) error
	False func(Anchor) error
	Null  func(Anchor) error
}

// handler returns the handler for the current event of p, or nil.
func (h *Handlers) handler(p *Parser) func(Anchor) error {
	switch p.Event() {
	case ObjectStart:
		return h.ObjectStart
	case ObjectEnd:
		return h.ObjectEnd
	case ArrayStart:
		return h.ArrayStart
	case ArrayEnd:
		return h.ArrayEnd
	case String:
		if p.IsName() {
			return h.Name
		}
		return h.String
	case Number:
		return h.Number
	case True:
		return h.True
	case False:
		return h.False
	case Null:
		return h.Null
	}
	return nil
}

// Parse consumes events from p and delivers them to h until parsing ends or
// a handler fails. A nil h discards all events, which validates the input.
//
// Parse returns (Done, nil) if the input was fully processed. If the input is
// malformed it returns Error and an error of concrete type *SyntaxError. If a
// handler reports an error, Parse returns the event being handled together
// with that error.
func (p *Parser) Parse(h *Handlers) (Event, error) {
	if h == nil {
		h = new(Handlers)
	}
	for {
		switch ev := p.Next(); ev {
		case Done:
			return ev, nil
		case Error:
			return ev, p.Err()
		default:
			if f := h.handler(p); f != nil {
				if err := f(p); err != nil {
					return ev, err
				}
			}
		}
	}
}
