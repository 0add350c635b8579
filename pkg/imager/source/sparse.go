// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package source

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/headunit-tools/pioneer-imager/pkg/imager/utils"
	"github.com/headunit-tools/pioneer-imager/pkg/simg"
)

// Sparse copies a byte range holding an Android sparse image, expanding it
// through simg2img on the way to the destination.
//
// The expanded size is only known once the decoder has run, so the reported
// byte count is whatever the decoder produced.
type Sparse struct {
	// Raw is the sparse-encoded byte range.
	Raw *Range
	// ScratchDir hosts the staging files for the decoder.
	ScratchDir string

	Printf func(string, ...any)
}

// Write implements Source.
func (s *Sparse) Write(ctx context.Context, w io.Writer, sizeHint int64) (int64, error) {
	printf := printfOrDiscard(s.Printf)

	staged, err := os.CreateTemp(s.ScratchDir, "sparse-*.simg")
	if err != nil {
		return 0, fmt.Errorf("failed to create sparse staging file: %w", err)
	}

	defer func() {
		staged.Close()           //nolint:errcheck
		os.Remove(staged.Name()) //nolint:errcheck
	}()

	if _, err = s.Raw.Write(ctx, staged, 0); err != nil {
		return 0, fmt.Errorf("failed to stage sparse image: %w", err)
	}

	expanded, err := os.CreateTemp(s.ScratchDir, "expanded-*.img")
	if err != nil {
		return 0, fmt.Errorf("failed to create expanded staging file: %w", err)
	}

	defer func() {
		expanded.Close()           //nolint:errcheck
		os.Remove(expanded.Name()) //nolint:errcheck
	}()

	if err = simg.Convert(ctx, staged.Name(), expanded.Name(), printf); err != nil {
		return 0, err
	}

	// the decoder wrote through its own handle, rewind ours before reading back
	if _, err = expanded.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("failed to rewind expanded image: %w", err)
	}

	return utils.Copy(w, expanded)
}
