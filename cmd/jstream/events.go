// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/alecthomas/kingpin/v2"
	pkgerrors "github.com/pkg/errors"

	"github.com/creachadair/jstream"
)

// eventsCommand prints the parser events for its input, one per line.
type eventsCommand struct {
	s         *settings
	file      string
	locations bool
}

func (cmd *eventsCommand) run(*kingpin.ParseContext) error {
	opts, err := cmd.s.options()
	if err != nil {
		return err
	}
	rc, err := openInput(cmd.file)
	if err != nil {
		return err
	}
	defer rc.Close()

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	if err := printEvents(w, rc, opts, cmd.locations); err != nil {
		return pkgerrors.Wrapf(err, "parse %s", displayName(cmd.file))
	}
	return nil
}

// printEvents writes one line to w for each event parsed from r.
func printEvents(w io.Writer, r io.Reader, opts *jstream.Options, locations bool) error {
	h := func(tag string, quote bool) func(jstream.Anchor) error {
		return func(a jstream.Anchor) error {
			if locations {
				fmt.Fprintf(w, "%s\t", a.Location().LineCol)
			}
			switch {
			case quote:
				fmt.Fprintf(w, "%s %s\n", tag, strconv.Quote(string(a.Text())))
			case tag == "number":
				fmt.Fprintf(w, "%s %s\n", tag, a.Text())
			default:
				fmt.Fprintln(w, tag)
			}
			return nil
		}
	}
	handlers := &jstream.Handlers{
		ObjectStart: h("object start", false),
		ObjectEnd:   h("object end", false),
		ArrayStart:  h("array start", false),
		ArrayEnd:    h("array end", false),
		Name:        h("name", true),
		String:      h("string", true),
		Number:      h("number", false),
		True:        h("true", false),
		False:       h("false", false),
		Null:        h("null", false),
	}

	p := jstream.NewParser(r, opts)
	defer p.Close()
	for {
		if _, err := p.Parse(handlers); err != nil {
			return err
		}
		fmt.Fprintln(w, "done")
		if !p.Reset() {
			return nil
		}
	}
}

func addEventsCommand(app *kingpin.Application, s *settings) {
	cmd := &eventsCommand{s: s}
	ev := app.Command("events", "Print the parse events for JSON input.").Action(cmd.run)
	ev.Flag("locations", "Prefix each event with its line and column").BoolVar(&cmd.locations)
	ev.Arg("file", "File to read (default stdin).").StringVar(&cmd.file)
}
