// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package makefs

import (
	"context"
	"errors"
	"strconv"

	"github.com/siderolabs/go-cmd/pkg/cmd"
)

// FilesystemTypeEXT4 is the filesystem type for EXT4.
const FilesystemTypeEXT4 = "ext4"

// Ext4 creates an ext4 filesystem image in the specified file.
//
// The file must already exist with its final size: mke2fs sizes the
// filesystem to the file it is given.
func Ext4(ctx context.Context, partname string, setters ...Option) error {
	if partname == "" {
		return errors.New("missing path to disk")
	}

	opts := NewDefaultOptions(setters...)

	args := Ext4Args(opts)
	args = append(args, "--", partname)

	opts.Printf("creating ext4 filesystem on %s with args: %v", partname, args)

	out, err := cmd.RunContext(ctx, "mke2fs", args...)
	if err != nil {
		return err
	}

	if out != "" {
		opts.Printf("%s", out)
	}

	return nil
}

// Ext4Args builds the mke2fs argument list for the given options, without the
// trailing target path.
func Ext4Args(opts Options) []string {
	// -FF: force operation even on a regular file that looks in use
	args := []string{"-FFt", FilesystemTypeEXT4}

	if opts.SourceDirectory != "" {
		args = append(args, "-d", opts.SourceDirectory)
	}

	if opts.BlockSize != 0 {
		args = append(args, "-b", strconv.Itoa(opts.BlockSize))
	}

	if opts.InodeSize != 0 {
		args = append(args, "-I", strconv.Itoa(opts.InodeSize))
	}

	if opts.LastMounted != "" {
		args = append(args, "-M", opts.LastMounted)
	}

	if opts.Label != "" {
		args = append(args, "-L", opts.Label)
	}

	if opts.UUID != nil {
		args = append(args, "-U", opts.UUID.String())
	}

	if opts.Features != "" {
		args = append(args, "-O", opts.Features)
	}

	if opts.ExtendedOptions != "" {
		args = append(args, "-E", opts.ExtendedOptions)
	}

	if opts.JournalOptions != "" {
		args = append(args, "-J", opts.JournalOptions)
	}

	return args
}
