// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jstream

// Copy reads one complete value from p and writes it to w, followed by a
// newline even when w is compact. Unless w is compact, nested values are
// indented two spaces per level. Copy flushes w before returning.
//
// If p reports an error, Copy returns that error; otherwise it returns the
// error reported by w, if any.
func Copy(w *Writer, p *Parser) error {
	var prev Event
	afterName := false
	for {
		if err := w.Err(); err != nil {
			return err
		}
		ev := p.Next()
		switch ev {
		case Error:
			w.Flush()
			return p.Err()
		case Done:
			w.AddRawString("\n")
			return w.Flush()
		case ObjectEnd, ArrayEnd:
			if prev != ObjectStart && prev != ArrayStart {
				w.AddNewline()
				w.AddSpaces(2 * p.Depth())
			}
			w.AddRawString(closer(ev))
			prev = ev
			continue
		}

		// Every other event begins a value or a member name. Its separator
		// depends on what came before it.
		depth := p.Depth()
		if ev == ObjectStart || ev == ArrayStart {
			depth--
		}
		switch {
		case afterName:
			w.AddRawString(":")
			w.AddSpaces(1)
		case prev == None:
		case prev == ObjectStart || prev == ArrayStart:
			w.AddNewline()
			w.AddSpaces(2 * depth)
		default:
			w.AddRawString(",")
			w.AddNewline()
			w.AddSpaces(2 * depth)
		}
		afterName = p.IsName()

		switch ev {
		case ObjectStart:
			w.AddRawString("{")
		case ArrayStart:
			w.AddRawString("[")
		case String:
			w.AddBytes(p.Text())
		default:
			w.AddRaw(p.Text())
		}
		prev = ev
	}
}

func closer(ev Event) string {
	if ev == ObjectEnd {
		return "}"
	}
	return "]"
}
