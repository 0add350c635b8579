// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package source

import (
	"context"
	"fmt"
	"io"

	"github.com/headunit-tools/pioneer-imager/pkg/imager/utils"
)

// Range copies a byte range out of a backing seekable stream.
//
// The backing handle is re-seeked on every Write, so a single Range may back
// several slots (e.g. mirrored header copies).
type Range struct {
	backing io.ReadSeeker
	offset  int64
	size    int64
}

// NewRange returns a Range covering size bytes starting at offset.
func NewRange(backing io.ReadSeeker, offset, size int64) (*Range, error) {
	if offset < 0 {
		return nil, fmt.Errorf("negative range offset %d", offset)
	}

	if size < 0 {
		return nil, fmt.Errorf("negative range size %d", size)
	}

	return &Range{
		backing: backing,
		offset:  offset,
		size:    size,
	}, nil
}

// NewRangeToEnd returns a Range covering everything from offset to the
// current end of the backing stream.
func NewRangeToEnd(backing io.ReadSeeker, offset int64) (*Range, error) {
	end, err := backing.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to measure backing stream: %w", err)
	}

	return NewRange(backing, offset, end-offset)
}

// Size returns the number of bytes the range covers.
func (r *Range) Size() int64 {
	return r.size
}

// Write implements Source.
func (r *Range) Write(ctx context.Context, w io.Writer, sizeHint int64) (int64, error) {
	if _, err := r.backing.Seek(r.offset, io.SeekStart); err != nil {
		return 0, fmt.Errorf("failed to seek backing stream to %d: %w", r.offset, err)
	}

	return utils.CopyN(w, r.backing, r.size)
}
