// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package cli provides helpers for command-line entry points.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// WithContext wraps a function call to provide a context cancelled on ^C or SIGTERM.
func WithContext(ctx context.Context, f func(context.Context) error) error {
	wrappedCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return f(wrappedCtx)
}
