// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream

import (
	"errors"

	"go4.org/mem"

	"github.com/creachadair/jstream/internal/escape"
)

// Quote encodes src as a JSON string value. The contents are escaped in the
// same way as Writer.AddString, and double quotation marks are added.
func Quote(src string) string { return string(escape.Quote(mem.S(src))) }

// Unquote decodes a single JSON string value, including its quotation marks,
// and returns its contents with escape sequences replaced. Surrounding
// whitespace is permitted. Invalid UTF-8 and unpaired surrogate escapes are
// reported as errors wrapping ErrInvalidUTF8.
func Unquote(src []byte) ([]byte, error) {
	p := NewParserBytes(src, nil)
	if ev := p.Next(); ev == Error {
		return nil, p.Err()
	} else if ev != String {
		return nil, errors.New("input is not a string")
	}
	out := p.Copy()
	if p.Next() != Done {
		return nil, p.Err()
	}
	return out, nil
}
