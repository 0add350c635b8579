// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package layout

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/dustin/go-humanize"

	"github.com/headunit-tools/pioneer-imager/pkg/imager/source"
	"github.com/headunit-tools/pioneer-imager/pkg/imager/utils"
)

// Pair binds a slot to the source producing its content.
type Pair struct {
	Slot   Slot
	Source source.Source
}

// Mapping is the ordered set of slot/source pairs composing an image.
type Mapping []Pair

// Compose streams the mapping into w and returns the total length written.
//
// Pairs are processed in ascending slot offset order with a single write
// cursor: the gap before each slot and the unused tail of each slot are
// zero-filled, so every byte of the output is either slot content or zero,
// and no byte is written twice. Overlapping slots, non-positive slot sizes
// and content exceeding its slot are fatal: they indicate a bug in the
// layout constants, and the partially written image must not be flashed.
func Compose(ctx context.Context, w io.Writer, mapping Mapping, printf func(string, ...any)) (int64, error) {
	pairs := slices.Clone(mapping)

	// ties are not expected (slots may not coincide); ordering across a tie
	// is unspecified and the cursor check below rejects the second slot
	slices.SortStableFunc(pairs, func(a, b Pair) int {
		aOffset, _ := a.Slot.Location()
		bOffset, _ := b.Slot.Location()

		return cmp.Compare(aOffset, bOffset)
	})

	var cursor int64

	for _, pair := range pairs {
		offset, size := pair.Slot.Location()

		if size <= 0 {
			return cursor, fmt.Errorf("slot at offset %d has non-positive size %d", offset, size)
		}

		if offset < cursor {
			return cursor, fmt.Errorf("slot at offset %d overlaps previous slot ending at offset %d", offset, cursor)
		}

		if gap := offset - cursor; gap > 0 {
			if _, err := utils.ZeroFill(w, gap); err != nil {
				return cursor, fmt.Errorf("failed to zero-fill gap at offset %d: %w", cursor, err)
			}
		}

		printf("writing %s slot at offset %d", humanize.IBytes(uint64(size)), offset)

		written, err := pair.Source.Write(ctx, w, size)
		if err != nil {
			return offset + written, fmt.Errorf("failed to write slot at offset %d: %w", offset, err)
		}

		if written > size {
			return offset + written, fmt.Errorf("content of slot at offset %d wrote %d bytes exceeding slot size %d", offset, written, size)
		}

		if tail := size - written; tail > 0 {
			if _, err := utils.ZeroFill(w, tail); err != nil {
				return offset + written, fmt.Errorf("failed to zero-fill slot tail at offset %d: %w", offset+written, err)
			}
		}

		cursor = offset + size
	}

	return cursor, nil
}
