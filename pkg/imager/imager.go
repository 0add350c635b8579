// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package imager assembles flashable firmware disk images for Pioneer head units.
package imager

import (
	"archive/zip"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/headunit-tools/pioneer-imager/pkg/imager/distimg"
	"github.com/headunit-tools/pioneer-imager/pkg/imager/layout"
	"github.com/headunit-tools/pioneer-imager/pkg/imager/profile"
	"github.com/headunit-tools/pioneer-imager/pkg/imager/utils"
	"github.com/headunit-tools/pioneer-imager/pkg/reporter"
)

// Imager builds one firmware disk image from an update archive.
type Imager struct {
	prof profile.Profile

	tempDir string

	// extracted archive entries, opened for the lifetime of the build
	containers map[distimg.Kind]*os.File
	images     map[distimg.Kind]*distimg.Image
}

// New creates a new Imager.
func New(prof profile.Profile) (*Imager, error) {
	if prof.Variant == 0 {
		prof.Variant = 1
	}

	if err := prof.Validate(); err != nil {
		return nil, fmt.Errorf("profile is invalid: %w", err)
	}

	return &Imager{
		prof: prof,
	}, nil
}

// Execute the image build, writing the finished image to outputPath.
func (i *Imager) Execute(ctx context.Context, outputPath string, report *reporter.Reporter) error {
	var err error

	i.tempDir, err = os.MkdirTemp("", "pioneer-imager")
	if err != nil {
		return fmt.Errorf("failed to create temporary directory: %w", err)
	}

	defer os.RemoveAll(i.tempDir) //nolint:errcheck

	if report.Verbose() {
		if err = i.prof.Dump(os.Stderr); err != nil {
			return err
		}
	}

	if err = i.extractUpdate(report); err != nil {
		return err
	}

	defer i.closeContainers()

	if err = i.buildImage(ctx, outputPath, report); err != nil {
		return err
	}

	report.Report(reporter.Update{
		Message: fmt.Sprintf("firmware image ready: %s", outputPath),
		Status:  reporter.StatusSucceeded,
	})

	return nil
}

// extractUpdate pulls every firmware container out of the update archive into
// the scratch directory.
//
// Archive entry streams are not seekable, while several slots mirror the same
// container region, so each entry is materialized once and re-read through a
// plain file handle.
func (i *Imager) extractUpdate(report *reporter.Reporter) error {
	printf := progressPrintf(report, reporter.Update{Message: "extracting update archive...", Status: reporter.StatusRunning})

	archive, err := zip.OpenReader(i.prof.UpdatePath)
	if err != nil {
		return fmt.Errorf("failed to open update archive: %w", err)
	}

	defer archive.Close() //nolint:errcheck

	platform := profile.Platforms[i.prof.Platform]

	i.containers = make(map[distimg.Kind]*os.File, len(distimg.Kinds()))
	i.images = make(map[distimg.Kind]*distimg.Image, len(distimg.Kinds()))

	for _, kind := range distimg.Kinds() {
		entryPath, err := platform.EntryPath(kind, i.prof.Variant)
		if err != nil {
			return err
		}

		if err = func() error {
			entry, err := archive.Open(entryPath)
			if err != nil {
				return fmt.Errorf("failed to open archive entry %s: %w", entryPath, err)
			}

			defer entry.Close() //nolint:errcheck

			dest := filepath.Join(i.tempDir, kind.String()+".PRG")

			if err = utils.CopyReader(printf, utils.ReaderDestination(entry, dest)); err != nil {
				return err
			}

			container, err := os.Open(dest)
			if err != nil {
				return fmt.Errorf("failed to open extracted container: %w", err)
			}

			i.containers[kind] = container
			i.images[kind] = &distimg.Image{
				Backing:    container,
				Kind:       kind,
				ScratchDir: i.tempDir,
				Printf:     printf,
			}

			return nil
		}(); err != nil {
			return err
		}
	}

	report.Report(reporter.Update{Message: "update archive extracted", Status: reporter.StatusSucceeded})

	return nil
}

func (i *Imager) closeContainers() {
	for _, container := range i.containers {
		container.Close() //nolint:errcheck
	}
}

// buildImage composes the image file and writes the partition table into it.
func (i *Imager) buildImage(ctx context.Context, path string, report *reporter.Reporter) error {
	printf := progressPrintf(report, reporter.Update{Message: "composing disk image...", Status: reporter.StatusRunning})

	mapping, table, err := i.buildMapping(printf)
	if err != nil {
		return err
	}

	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o666)
	if err != nil {
		return fmt.Errorf("failed to create output image: %w", err)
	}

	total, err := layout.Compose(ctx, out, mapping, printf)
	if err != nil {
		out.Close() //nolint:errcheck

		return err
	}

	if err = out.Close(); err != nil {
		return fmt.Errorf("failed to close output image: %w", err)
	}

	printf("image composed, %s total", humanize.IBytes(uint64(total)))

	report.Report(reporter.Update{Message: "disk image composed", Status: reporter.StatusSucceeded})

	if err = table.Write(ctx, path, printf); err != nil {
		return err
	}

	report.Report(reporter.Update{Message: "partition table written", Status: reporter.StatusSucceeded})

	return nil
}

func progressPrintf(report *reporter.Reporter, update reporter.Update) func(string, ...any) {
	report.Report(update)

	return func(format string, args ...any) {
		report.Report(reporter.Update{Message: fmt.Sprintf(format, args...), Status: reporter.StatusRunning})
	}
}
