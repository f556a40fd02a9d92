// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jstream_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"testing"

	"github.com/creachadair/jstream"
)

// benchInput generates a document of n records with a mix of value types.
func benchInput(n int) []byte {
	var buf bytes.Buffer
	buf.WriteString("[\n")
	for i := range n {
		if i > 0 {
			buf.WriteString(",\n")
		}
		fmt.Fprintf(&buf, `  {"id": %d, "name": "record \"%d\"", "score": %d.%03d, `+
			`"tags": ["alpha", "betaé", "gamma"], "active": %v, "parent": null}`,
			i, i, i%100, i%1000, i%2 == 0)
	}
	buf.WriteString("\n]\n")
	return buf.Bytes()
}

func BenchmarkParser(b *testing.B) {
	input := benchInput(5000)
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Decoder", func(b *testing.B) {
		b.SetBytes(int64(len(input)))
		for b.Loop() {
			dec := json.NewDecoder(bytes.NewReader(input))
			for {
				_, err := dec.Token()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})

	b.Run("Parser", func(b *testing.B) {
		b.SetBytes(int64(len(input)))
		for b.Loop() {
			p := jstream.NewParser(bytes.NewReader(input), nil)
			for {
				ev := p.Next()
				if ev == jstream.Done {
					break
				} else if ev == jstream.Error {
					b.Fatalf("Unexpected error: %v", p.Err())
				}

				// The standard library Decoder converts tokens to values.
				// For a fair comparison, do the same for strings and numbers.
				switch ev {
				case jstream.String:
					_ = string(p.Text())
				case jstream.Number:
					p.Float64()
				}
			}
		}
	})

	b.Run("ParserBytes", func(b *testing.B) {
		b.SetBytes(int64(len(input)))
		for b.Loop() {
			if _, err := jstream.NewParserBytes(input, nil).Parse(nil); err != nil {
				b.Fatalf("Unexpected error: %v", err)
			}
		}
	})
}

func BenchmarkCopy(b *testing.B) {
	input := benchInput(5000)
	b.SetBytes(int64(len(input)))
	for b.Loop() {
		w := jstream.NewWriter(io.Discard, &jstream.WriterOptions{Compact: true})
		if err := jstream.Copy(w, jstream.NewParserBytes(input, nil)); err != nil {
			b.Fatalf("Copy failed: %v", err)
		}
	}
}
