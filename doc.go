// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jstream implements a streaming JSON parser and writer.
//
// # Parsing
//
// The Parser type is a pull parser: each call to its Next method consumes
// just enough input to report one event. The parser reads from an io.Reader
// through a fixed-size staging buffer, so documents of any size can be
// processed in bounded memory (apart from the contents of individual long
// strings and numbers):
//
//	p := jstream.NewParser(input, nil)
//	for {
//	   switch p.Next() {
//	   case jstream.Error:
//	      log.Fatalf("Parse failed: %v", p.Err())
//	   case jstream.Done:
//	      return
//	   case jstream.String:
//	      log.Printf("String at %v: %q", p.Location(), p.Text())
//	   }
//	}
//
// Member names and string values are both reported as String events; use
// IsName to tell them apart. The text of a token is available from Text until
// the next call of Next. Where possible this is a view of the input buffer
// rather than a copy.
//
// Once parsing is complete Next reports Done, and if the input is malformed
// it reports Error. Both are sticky: later calls return the same event without
// consuming input. Errors have concrete type *SyntaxError, and report the
// line and column of the failure along with a snippet of the surrounding
// input.
//
// By default the parser accepts exactly RFC 8259 JSON, with a nesting limit of
// DefaultMaxDepth. The Options type enables comments, a leading byte order
// mark, raw control characters in strings, and lenient handling of invalid
// Unicode.
//
// # Callbacks
//
// The Parse method drives a parser to completion, calling the functions of a
// Handlers value for each event:
//
//	ev, err := p.Parse(&jstream.Handlers{
//	   Name: func(a jstream.Anchor) error {
//	      log.Printf("Member %q at depth %d", a.Text(), a.Depth())
//	      return nil
//	   },
//	})
//
// # Writing
//
// The Writer type writes JSON text incrementally to an io.Writer. It takes
// care of string escaping and number formatting, but does not check the
// structure of its output. The Copy function re-serializes the events of a
// Parser through a Writer.
package jstream
