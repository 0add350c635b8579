// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package sfdisk provides a wrapper around sfdisk, the scriptable partition table writer.
package sfdisk

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Geometry carries optional disk geometry hints passed through to sfdisk.
type Geometry struct {
	Cylinders *uint
	Heads     *uint
	Sectors   *uint
}

// Args assembles the sfdisk command line for the image at path.
func Args(geometry Geometry, path string) []string {
	args := []string{"--no-reread", "--no-tell-kernel"}

	if geometry.Cylinders != nil {
		args = append(args, "-C", strconv.FormatUint(uint64(*geometry.Cylinders), 10))
	}

	if geometry.Heads != nil {
		args = append(args, "-H", strconv.FormatUint(uint64(*geometry.Heads), 10))
	}

	if geometry.Sectors != nil {
		args = append(args, "-S", strconv.FormatUint(uint64(*geometry.Sectors), 10))
	}

	return append(args, "--", path)
}

// Run feeds the partition table script to sfdisk targeting the image at path.
//
// The kernel partition cache is left alone (--no-reread, --no-tell-kernel):
// the target is a plain image file, not an attached block device.
func Run(ctx context.Context, path, script string, geometry Geometry, printf func(string, ...any)) error {
	args := Args(geometry, path)

	printf("writing partition table to %s with args: %v", path, args)

	cmd := exec.CommandContext(ctx, "sfdisk", args...)
	cmd.Stdin = strings.NewReader(script)

	var stdOut, stdErr bytes.Buffer

	cmd.Stdout = &stdOut
	cmd.Stderr = &stdErr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run sfdisk: %w, stdErr: %s", err, stdErr.Bytes())
	}

	if stdOut.Len() > 0 {
		printf("%s", stdOut.Bytes())
	}

	return nil
}
