// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package simg provides a wrapper around simg2img, the Android sparse image expander.
package simg

import (
	"context"

	"github.com/siderolabs/go-cmd/pkg/cmd"
)

// Convert expands the sparse image at src into a raw image at dest.
func Convert(ctx context.Context, src, dest string, printf func(string, ...any)) error {
	printf("expanding sparse image %s to %s", src, dest)

	out, err := cmd.RunContext(ctx, "simg2img", src, dest)
	if err != nil {
		return err
	}

	if out != "" {
		printf("%s", out)
	}

	return nil
}
