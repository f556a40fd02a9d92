// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package testutil defines support code for unit tests.
package testutil

import (
	"strconv"

	"github.com/creachadair/jstream"
)

// Events consumes p and renders each event it reports as a line of text, up
// to and including the terminal event. Member names render as "name", and
// tokens with text are followed by their quoted or literal text:
//
//	object start
//	name "a"
//	number 1
//	object end
//	done
//
// An error renders as "error: " followed by the error message.
func Events(p *jstream.Parser) []string {
	var out []string
	for {
		ev := p.Next()
		out = append(out, Event(p))
		if ev == jstream.Done || ev == jstream.Error {
			return out
		}
	}
}

// Event renders the current event of p in the format of Events.
func Event(p *jstream.Parser) string {
	switch ev := p.Event(); ev {
	case jstream.Error:
		return "error: " + p.Err().Error()
	case jstream.String:
		if p.IsName() {
			return "name " + strconv.Quote(string(p.Text()))
		}
		return "string " + strconv.Quote(string(p.Text()))
	case jstream.Number:
		return "number " + string(p.Text())
	default:
		return ev.String()
	}
}
