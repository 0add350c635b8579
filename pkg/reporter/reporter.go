// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package reporter implements terminal-friendly progress reporting.
package reporter

import (
	"fmt"
	"io"
	"os"
)

// Status of an Update.
type Status int

// Status values.
const (
	StatusRunning Status = iota
	StatusSucceeded
	StatusSkip
	StatusError
)

func (s Status) prefix() string {
	switch s {
	case StatusSucceeded:
		return "✓"
	case StatusSkip:
		return "↷"
	case StatusError:
		return "✗"
	case StatusRunning:
		fallthrough
	default:
		return "»"
	}
}

// Update is a single progress update.
type Update struct {
	Message string
	Status  Status
}

// Reporter prints progress updates.
type Reporter struct {
	w       io.Writer
	verbose bool
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithVerbose enables printing of running updates, including captured
// child-process output.
func WithVerbose(verbose bool) Option {
	return func(r *Reporter) {
		r.verbose = verbose
	}
}

// WithWriter overrides the output writer (default os.Stderr).
func WithWriter(w io.Writer) Option {
	return func(r *Reporter) {
		r.w = w
	}
}

// New creates a new Reporter.
func New(options ...Option) *Reporter {
	r := &Reporter{
		w: os.Stderr,
	}

	for _, o := range options {
		o(r)
	}

	return r
}

// Verbose reports whether running updates are printed.
func (r *Reporter) Verbose() bool {
	return r.verbose
}

// Report an update.
//
// Running updates are suppressed unless the reporter is verbose; terminal
// statuses are always printed.
func (r *Reporter) Report(update Update) {
	if update.Status == StatusRunning && !r.verbose {
		return
	}

	fmt.Fprintf(r.w, "%s %s\n", update.Status.prefix(), update.Message)
}
