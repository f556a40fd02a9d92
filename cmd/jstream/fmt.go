// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log/level"
	pkgerrors "github.com/pkg/errors"

	"github.com/creachadair/jstream"
)

// fmtCommand re-serializes its input with uniform formatting.
type fmtCommand struct {
	s       *settings
	file    string
	compact bool
}

func (cmd *fmtCommand) run(*kingpin.ParseContext) error {
	opts, err := cmd.s.options()
	if err != nil {
		return err
	}
	rc, err := openInput(cmd.file)
	if err != nil {
		return err
	}
	defer rc.Close()

	n, err := format(os.Stdout, rc, opts, cmd.compact)
	level.Debug(cmd.s.logger).Log("msg", "formatted", "file", displayName(cmd.file), "values", n)
	if err != nil {
		return pkgerrors.Wrapf(err, "format %s", displayName(cmd.file))
	}
	return nil
}

// format copies each value from r to w, and returns the number of values
// copied.
func format(w io.Writer, r io.Reader, opts *jstream.Options, compact bool) (int, error) {
	p := jstream.NewParser(r, opts)
	defer p.Close()
	out := jstream.NewWriter(w, &jstream.WriterOptions{Compact: compact})

	var n int
	for {
		if err := jstream.Copy(out, p); err != nil {
			return n, err
		}
		n++
		if !p.Reset() {
			break
		}
	}
	return n, out.Close()
}

func addFmtCommand(app *kingpin.Application, s *settings) {
	cmd := &fmtCommand{s: s}
	f := app.Command("fmt", "Reformat JSON input to stdout.").Action(cmd.run)
	f.Flag("compact", "Omit all insignificant whitespace").BoolVar(&cmd.compact)
	f.Arg("file", "File to format (default stdin).").StringVar(&cmd.file)
}
