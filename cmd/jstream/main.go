// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Program jstream validates, reformats, and inspects JSON documents using
// the streaming parser.
//
// Usage:
//
//	jstream [flags] check [--workers=N] [FILE...]
//	jstream [flags] fmt [--compact] [FILE]
//	jstream [flags] events [--locations] [FILE]
//
// A FILE of "-", or no FILE at all, reads standard input.
package main

import (
	"errors"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	pkgerrors "github.com/pkg/errors"

	"github.com/creachadair/jstream"
	"github.com/creachadair/jstream/internal/escape"
)

// errFailed reports that a command ran but found invalid input. It sets the
// exit status without logging anything further.
var errFailed = errors.New("input failed validation")

// settings holds the global flags shared by all commands.
type settings struct {
	comments     bool
	bom          bool
	controlChars bool
	invalid      string
	trailingData bool
	maxDepth     int
	logLevel     string

	logger log.Logger
}

// options returns the parser options selected by the flags.
func (s *settings) options() (*jstream.Options, error) {
	policy, err := escape.ParsePolicy(s.invalid)
	if err != nil {
		return nil, err
	}
	return &jstream.Options{
		AllowComments:     s.comments,
		AllowBOM:          s.bom,
		AllowControlChars: s.controlChars,
		IgnoreInvalid:     policy == escape.Ignore,
		ReplaceInvalid:    policy == escape.Replace,
		AllowTrailingData: s.trailingData,
		MaxDepth:          s.maxDepth,
	}, nil
}

func (s *settings) setupLogger(*kingpin.ParseContext) error {
	var allow level.Option
	switch s.logLevel {
	case "debug":
		allow = level.AllowDebug()
	case "warn":
		allow = level.AllowWarn()
	case "error":
		allow = level.AllowError()
	default:
		allow = level.AllowInfo()
	}
	s.logger = level.NewFilter(log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr)), allow)
	return nil
}

func newApp(s *settings) *kingpin.Application {
	app := kingpin.New("jstream", "Validate, reformat, and inspect JSON documents.")
	app.Flag("comments", "Allow // and /* */ comments").BoolVar(&s.comments)
	app.Flag("bom", "Allow a leading byte order mark").BoolVar(&s.bom)
	app.Flag("control-chars", "Allow unescaped control characters in strings").BoolVar(&s.controlChars)
	app.Flag("invalid", "Handling of invalid Unicode in strings").
		Default("reject").EnumVar(&s.invalid, "reject", "ignore", "replace")
	app.Flag("trailing-data", "Treat input as a sequence of values").BoolVar(&s.trailingData)
	app.Flag("max-depth", "Maximum nesting depth").Default("50").IntVar(&s.maxDepth)
	app.Flag("log.level", "Only log messages at or above this level").
		Default("info").EnumVar(&s.logLevel, "debug", "info", "warn", "error")
	app.PreAction(s.setupLogger)

	addCheckCommand(app, s)
	addFmtCommand(app, s)
	addEventsCommand(app, s)
	return app
}

func main() {
	s := &settings{logLevel: "info"}
	s.setupLogger(nil)
	app := newApp(s)
	if _, err := app.Parse(os.Args[1:]); errors.Is(err, errFailed) {
		os.Exit(1)
	} else if err != nil {
		level.Error(s.logger).Log("msg", "command failed", "err", err)
		os.Exit(1)
	}
}

// openInput opens the named file for reading, or returns stdin if name is
// empty or "-".
func openInput(name string) (io.ReadCloser, error) {
	if name == "" || name == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "open input %q", name)
	}
	return f, nil
}

// displayName returns the name to use for the named input in messages.
func displayName(name string) string {
	if name == "" || name == "-" {
		return "<stdin>"
	}
	return name
}
