// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package source implements content producers for firmware image slots.
package source

import (
	"context"
	"io"
)

// Source produces the content of a single slot in the output image.
//
// A Source borrows any backing read handle it was constructed with; it never
// owns the underlying file.
type Source interface {
	// Write renders the source into w, returning the number of bytes written.
	//
	// sizeHint is the size of the destination slot; a value of zero or less
	// means the size is unknown. A Source that can determine its own length
	// must not rely on the hint, and must not write more than a positive hint.
	Write(ctx context.Context, w io.Writer, sizeHint int64) (int64, error)
}

func printfOrDiscard(printf func(string, ...any)) func(string, ...any) {
	if printf == nil {
		return func(string, ...any) {}
	}

	return printf
}
