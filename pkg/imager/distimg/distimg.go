// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package distimg interprets Pioneer distribution image containers.
//
// A distribution image is a fixed 512-byte header followed by either a single
// content region running to the end of the container, or, for the snapshot
// component only, two content regions at fixed offsets. There is no format
// detection: the component kind is known from the archive path the container
// was opened from.
package distimg

import (
	"fmt"
	"io"

	"github.com/headunit-tools/pioneer-imager/pkg/imager/source"
)

// HeaderSize is the fixed size of a distribution image header.
const HeaderSize = 0x200

// Kind identifies the firmware component a distribution image carries.
type Kind int

// Known firmware component kinds.
const (
	KindBoot Kind = iota
	KindRecovery
	KindPlatform
	KindSnapshot
	KindHibendir
	KindUserdata
	KindUserapi
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindBoot:
		return "BOOT"
	case KindRecovery:
		return "RECOVERY"
	case KindPlatform:
		return "PLATFORM"
	case KindSnapshot:
		return "SNAPSHOT"
	case KindHibendir:
		return "HIBENDIR"
	case KindUserdata:
		return "USERDATA"
	case KindUserapi:
		return "USERAPI"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Kinds lists all known component kinds.
func Kinds() []Kind {
	return []Kind{KindBoot, KindRecovery, KindPlatform, KindSnapshot, KindHibendir, KindUserdata, KindUserapi}
}

type region struct {
	offset int64
	size   int64 // zero means "to the end of the container"
	sparse bool
}

// contentLayouts is the fixed lookup table of component kind to content regions.
var contentLayouts = map[Kind][]region{
	KindBoot:     {{offset: HeaderSize}},
	KindRecovery: {{offset: HeaderSize}},
	KindPlatform: {{offset: HeaderSize, sparse: true}},
	KindSnapshot: {{offset: 0x200, size: 0x400}, {offset: 0x600}},
	KindHibendir: {{offset: HeaderSize}},
	KindUserdata: {{offset: HeaderSize, sparse: true}},
	KindUserapi:  {{offset: HeaderSize}},
}

// Image adapts one open distribution image container into slot sources.
//
// The backing stream is borrowed for the lifetime of the Image and must stay
// open while any derived source is in use.
type Image struct {
	// Backing is the open container stream.
	Backing io.ReadSeeker
	// Kind of the firmware component held in the container.
	Kind Kind
	// ScratchDir hosts staging files for sparse-encoded content.
	ScratchDir string

	Printf func(string, ...any)
}

// Header returns the fixed-size header source.
func (d *Image) Header() (source.Source, error) {
	return source.NewRange(d.Backing, 0, HeaderSize)
}

// Contents returns the content sources of the container, in offset order.
func (d *Image) Contents() ([]source.Source, error) {
	layout, ok := contentLayouts[d.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown distribution image kind: %s", d.Kind)
	}

	sources := make([]source.Source, 0, len(layout))

	for _, region := range layout {
		var (
			rng *source.Range
			err error
		)

		if region.size == 0 {
			rng, err = source.NewRangeToEnd(d.Backing, region.offset)
		} else {
			rng, err = source.NewRange(d.Backing, region.offset, region.size)
		}

		if err != nil {
			return nil, fmt.Errorf("invalid %s content region: %w", d.Kind, err)
		}

		if region.sparse {
			sources = append(sources, &source.Sparse{
				Raw:        rng,
				ScratchDir: d.ScratchDir,
				Printf:     d.Printf,
			})
		} else {
			sources = append(sources, rng)
		}
	}

	return sources, nil
}
