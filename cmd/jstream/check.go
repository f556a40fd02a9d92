// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"sync"

	"github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"
	"github.com/go-kit/log/level"
	"github.com/panjf2000/ants/v2"

	"github.com/creachadair/jstream"
)

// checkCommand validates each input and reports the location of the first
// error in each invalid one.
type checkCommand struct {
	s       *settings
	files   *[]string
	workers int
}

// checkResult is the outcome of validating one input.
type checkResult struct {
	name   string
	values int   // complete top-level values parsed
	bytes  int64 // input bytes consumed
	err    error
}

// String renders a failed result as a "file:line:col: message" line.
func (r checkResult) String() string {
	var serr *jstream.SyntaxError
	if errors.As(r.err, &serr) {
		msg := serr.Message
		if serr.Snippet != "" {
			msg += " near " + strconv.Quote(serr.Snippet)
		}
		return fmt.Sprintf("%s:%d:%d: %s", r.name, serr.Location.Line, serr.Location.Column, msg)
	}
	return fmt.Sprintf("%s: %v", r.name, r.err)
}

func (cmd *checkCommand) run(*kingpin.ParseContext) error {
	opts, err := cmd.s.options()
	if err != nil {
		return err
	}
	names := *cmd.files
	if len(names) == 0 {
		names = []string{"-"}
	}

	results, err := checkAll(names, opts, cmd.workers)
	if err != nil {
		return err
	}

	var nfail, nvals int
	var nbytes int64
	for _, r := range results {
		nvals += r.values
		nbytes += r.bytes
		if r.err != nil {
			nfail++
			fmt.Println(r)
			continue
		}
		level.Debug(cmd.s.logger).Log("msg", "valid", "file", r.name, "values", r.values,
			"size", humanize.Bytes(uint64(r.bytes)))
	}
	level.Info(cmd.s.logger).Log("msg", "check complete",
		"files", len(results), "failed", nfail, "values", humanize.Comma(int64(nvals)),
		"size", humanize.Bytes(uint64(nbytes)))
	if nfail != 0 {
		return errFailed
	}
	return nil
}

// checkAll validates the named inputs concurrently on a pool of workers.
// The results are in the same order as names.
func checkAll(names []string, opts *jstream.Options, workers int) ([]checkResult, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make([]checkResult, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			results[i] = checkFile(name, opts)
		}); err != nil {
			wg.Done()
			results[i] = checkResult{name: displayName(name), err: err}
		}
	}
	wg.Wait()
	return results, nil
}

// checkFile validates the named input with its own parser.
func checkFile(name string, opts *jstream.Options) checkResult {
	res := checkResult{name: displayName(name)}
	rc, err := openInput(name)
	if err != nil {
		res.err = err
		return res
	}
	defer rc.Close()
	res.values, res.bytes, res.err = validate(rc, opts)
	return res
}

// validate parses all the values in r. Unless trailing data is allowed, the
// input must hold exactly one value.
func validate(r io.Reader, opts *jstream.Options) (int, int64, error) {
	p := jstream.NewParser(r, opts)
	defer p.Close()

	var n int
	for {
		if _, err := p.Parse(nil); err != nil {
			return n, p.Offset(), err
		}
		n++
		if !p.Reset() {
			return n, p.Offset(), nil
		}
	}
}

func addCheckCommand(app *kingpin.Application, s *settings) {
	cmd := &checkCommand{s: s}
	check := app.Command("check", "Validate JSON input.").Action(cmd.run)
	check.Flag("workers", "Number of files to check concurrently (0 means one per CPU)").
		Default("0").IntVar(&cmd.workers)
	cmd.files = check.Arg("file", "Files to check (default stdin).").Strings()
}
