// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jstream_test

import (
	"bytes"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/creachadair/jstream"
	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
)

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := jstream.NewWriter(&buf, nil)
	w.AddRawString("{")
	w.AddNewline()
	w.AddSpaces(2)
	w.AddString("name")
	w.AddRawString(":")
	w.AddSpaces(1)
	w.AddBytes([]byte("value"))
	w.AddRawString(",")
	w.AddNewline()
	w.AddTabs(1)
	w.AddString("n")
	w.AddRaw([]byte(": ["))
	w.AddInt(-25)
	w.AddRawString(", ")
	w.AddFloat(0.5)
	w.AddRawString(", ")
	w.AddFormat("%d%s", 3, "e2")
	w.AddRawString("]")
	w.AddNewline()
	w.AddRawString("}")
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: unexpected error: %v", err)
	}

	want := "{\n  \"name\": \"value\",\n\t\"n\": [-25, 0.5, 3e2]\n}"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Output: (-want, +got)\n%s", diff)
	}
}

func TestWriterStrings(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", `""`},
		{"plain text", `"plain text"`},
		{`a"b\c`, `"a\"b\\c"`},
		{"\b\f\n\r\t", `"\b\f\n\r\t"`},
		{"\x00\x01\x1f\x7f", `"\u0000\u0001\u001f` + "\x7f\""},
		{"</script>", `"<\/script>"`},
		{"a/b </ <</", `"a/b <\/ <<\/"`},
		{"//", `"//"`},
		{"café ☃ 😀", `"café ☃ 😀"`},
	}
	for _, test := range tests {
		var buf bytes.Buffer
		w := jstream.NewWriter(&buf, nil)
		w.AddString(test.input)
		if err := w.Close(); err != nil {
			t.Fatalf("Close: unexpected error: %v", err)
		}
		if got := buf.String(); got != test.want {
			t.Errorf("AddString(%q): got %#q, want %#q", test.input, got, test.want)
		}
		if got := jstream.Quote(test.input); got != test.want {
			t.Errorf("Quote(%q): got %#q, want %#q", test.input, got, test.want)
		}

		// The quoted form must decode to the original.
		dec, err := jstream.Unquote([]byte(test.want))
		if err != nil {
			t.Errorf("Unquote(%#q): unexpected error: %v", test.want, err)
		} else if string(dec) != test.input {
			t.Errorf("Unquote(%#q): got %q, want %q", test.want, dec, test.input)
		}
	}
}

func TestWriterFloat(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0, "0"},
		{1.5, "1.5"},
		{-0.001, "-0.001"},
		{1e21, "1e+21"},
		{123456789, "1.23456789e+08"},
		{math.MaxFloat64, "1.7976931348623157e+308"},
	}
	for _, test := range tests {
		var buf bytes.Buffer
		w := jstream.NewWriter(&buf, nil)
		if err := w.AddFloat(test.input); err != nil {
			t.Errorf("AddFloat(%v): unexpected error: %v", test.input, err)
		}
		w.Flush()
		if got := buf.String(); got != test.want {
			t.Errorf("AddFloat(%v): got %q, want %q", test.input, got, test.want)
		}
	}

	t.Run("Unsupported", func(t *testing.T) {
		var buf bytes.Buffer
		w := jstream.NewWriter(&buf, nil)
		for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
			if err := w.AddFloat(v); err == nil {
				t.Errorf("AddFloat(%v): got nil, want error", v)
			}
		}
		if err := w.Err(); err != nil {
			t.Errorf("Err: got %v, want nil", err)
		}
		w.AddInt(7)
		w.Flush()
		if got := buf.String(); got != "7" {
			t.Errorf("Output: got %q, want 7", got)
		}
	})

	t.Run("DecimalSeparator", func(t *testing.T) {
		var buf bytes.Buffer
		w := jstream.NewWriter(&buf, &jstream.WriterOptions{
			FormatFloat: func(dst []byte, f float64) []byte {
				s := strconv.FormatFloat(f, 'f', 2, 64)
				return append(dst, strings.Replace(s, ".", ",", 1)...)
			},
			DecimalSeparator: ',',
		})
		w.AddRawString("[")
		w.AddFloat(2.5)
		w.AddRawString(",")
		w.AddFloat(-10)
		w.AddRawString("]")
		w.Flush()
		if got, want := buf.String(), "[2.50,-10.00]"; got != want {
			t.Errorf("Output: got %q, want %q", got, want)
		}
	})
}

func TestWriterCompact(t *testing.T) {
	var buf bytes.Buffer
	w := jstream.NewWriter(&buf, &jstream.WriterOptions{Compact: true})
	w.AddRawString("[")
	w.AddNewline()
	w.AddSpaces(4)
	w.AddTabs(2)
	w.AddInt(1)
	w.AddNewline()
	w.AddRawString("]")
	w.Flush()
	if got, want := buf.String(), "[1]"; got != want {
		t.Errorf("Output: got %q, want %q", got, want)
	}
}

func TestWriterBuffering(t *testing.T) {
	var buf bytes.Buffer
	w := jstream.NewWriter(&buf, &jstream.WriterOptions{BufferSize: 4})

	long := strings.Repeat("abcdefgh", 20)
	w.AddRawString("[")
	for i := range 10 {
		if i > 0 {
			w.AddRawString(",")
		}
		w.AddString(long)
	}
	w.AddRawString("]")

	// Output is only delivered as the buffer fills.
	if buf.Len() == 0 {
		t.Error("No output delivered before Flush")
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: unexpected error: %v", err)
	}
	want := "[" + strings.TrimSuffix(strings.Repeat(`"`+long+`",`, 10), ",") + "]"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Output: (-want, +got)\n%s", diff)
	}

	if err := w.AddInt(1); err == nil {
		t.Error("AddInt after Close: got nil, want error")
	}
}

// shortWriter accepts at most n bytes in total, and then reports short
// writes without error.
type shortWriter struct {
	bytes.Buffer
	n int
}

func (s *shortWriter) Write(data []byte) (int, error) {
	if len(data) > s.n {
		data = data[:s.n]
	}
	s.n -= len(data)
	return s.Buffer.Write(data)
}

func TestWriterErrors(t *testing.T) {
	t.Run("ShortWrite", func(t *testing.T) {
		sw := &shortWriter{n: 3}
		w := jstream.NewWriter(sw, nil)
		w.AddString("hello")
		err := w.Flush()
		if !errors.Is(err, io.ErrShortWrite) {
			t.Fatalf("Flush: got %v, want %v", err, io.ErrShortWrite)
		}

		// The error is sticky.
		if got := w.AddInt(5); got != err {
			t.Errorf("AddInt: got %v, want %v", got, err)
		}
		if got := w.Err(); got != err {
			t.Errorf("Err: got %v, want %v", got, err)
		}
		if got := w.Close(); got != err {
			t.Errorf("Close: got %v, want %v", got, err)
		}
		if got := sw.String(); got != `"he` {
			t.Errorf("Output: got %q, want %q", got, `"he`)
		}
	})

	t.Run("WriteError", func(t *testing.T) {
		boom := errors.New("boom")
		w := jstream.NewWriter(errWriter{boom}, &jstream.WriterOptions{BufferSize: 2})
		w.AddRawString("ab")
		if err := w.AddRawString("cd"); !errors.Is(err, boom) {
			t.Errorf("AddRawString: got %v, want %v", err, boom)
		}
	})

	t.Run("NegativeCount", func(t *testing.T) {
		w := jstream.NewWriter(io.Discard, nil)
		mtest.MustPanic(t, func() { w.AddSpaces(-1) })
		mtest.MustPanic(t, func() { w.AddTabs(-3) })
	})
}

type errWriter struct{ err error }

func (e errWriter) Write([]byte) (int, error) { return 0, e.err }

func TestQuoting(t *testing.T) {
	t.Run("Unquote", func(t *testing.T) {
		tests := []struct {
			input, want string
		}{
			{`""`, ""},
			{` "abc" `, "abc"},
			{`"\u00e9\ud83d\ude00"`, "é😀"},
			{`"a\/b"`, "a/b"},
		}
		for _, test := range tests {
			got, err := jstream.Unquote([]byte(test.input))
			if err != nil {
				t.Errorf("Unquote(%#q): unexpected error: %v", test.input, err)
			} else if string(got) != test.want {
				t.Errorf("Unquote(%#q): got %q, want %q", test.input, got, test.want)
			}
		}
	})
	t.Run("UnquoteErrors", func(t *testing.T) {
		tests := []string{
			``, `abc`, `"abc`, `"a" "b"`, `1`, `["a"]`, `"\ud800"`, "\"\xff\"",
		}
		for _, input := range tests {
			if got, err := jstream.Unquote([]byte(input)); err == nil {
				t.Errorf("Unquote(%#q): got %q, want error", input, got)
			}
		}
	})
}

func TestSurrogateRoundTrip(t *testing.T) {
	// An escaped surrogate pair decodes to a single code point, which the
	// writer emits as UTF-8 and the parser reads back unchanged.
	got, err := jstream.Unquote([]byte(`"\ud83d\ude00"`))
	if err != nil {
		t.Fatalf("Unquote: unexpected error: %v", err)
	}
	if want := []byte{0xf0, 0x9f, 0x98, 0x80}; !bytes.Equal(got, want) {
		t.Fatalf("Decoded: got % x, want % x", got, want)
	}

	var buf bytes.Buffer
	w := jstream.NewWriter(&buf, nil)
	w.AddBytes(got)
	w.Flush()

	p := jstream.NewParser(&buf, nil)
	if ev := p.Next(); ev != jstream.String {
		t.Fatalf("Next: got %v, want string", ev)
	}
	if r := []rune(string(p.Text())); len(r) != 1 || r[0] != 0x1F600 {
		t.Errorf("Round trip: got %q, want U+1F600", r)
	}
}
