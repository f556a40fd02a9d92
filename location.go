// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import "fmt"

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 1-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// A Location describes the position of a token in the source, as an absolute
// byte offset together with its line and column.
type Location struct {
	Offset int64 // byte offset from the start of input, 0-based
	LineCol
}

func (loc Location) String() string {
	return fmt.Sprintf("%s (offset %d)", loc.LineCol, loc.Offset)
}
