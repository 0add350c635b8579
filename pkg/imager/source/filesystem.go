// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/headunit-tools/pioneer-imager/pkg/imager/utils"
	"github.com/headunit-tools/pioneer-imager/pkg/makefs"
)

// Filesystem generates an ext4 filesystem image of exactly the slot size.
//
// Unlike other sources it cannot determine its own length: the size hint is
// required, as the filesystem is built to fill the slot.
type Filesystem struct {
	// ScratchDir hosts the staging file handed to the filesystem builder.
	ScratchDir string
	// Options configure the filesystem builder.
	Options []makefs.Option

	Printf func(string, ...any)
}

// Write implements Source.
func (f *Filesystem) Write(ctx context.Context, w io.Writer, sizeHint int64) (int64, error) {
	if sizeHint <= 0 {
		return 0, errors.New("filesystem source requires a size hint")
	}

	scratch, err := os.CreateTemp(f.ScratchDir, "mkfs-*.img")
	if err != nil {
		return 0, fmt.Errorf("failed to create filesystem staging file: %w", err)
	}

	defer func() {
		scratch.Close()           //nolint:errcheck
		os.Remove(scratch.Name()) //nolint:errcheck
	}()

	if _, err = utils.ZeroFill(scratch, sizeHint); err != nil {
		return 0, fmt.Errorf("failed to size filesystem staging file: %w", err)
	}

	opts := append([]makefs.Option{makefs.WithPrintf(printfOrDiscard(f.Printf))}, f.Options...)

	if err = makefs.Ext4(ctx, scratch.Name(), opts...); err != nil {
		return 0, err
	}

	if _, err = scratch.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("failed to rewind filesystem staging file: %w", err)
	}

	return utils.CopyN(w, scratch, sizeHint)
}
