// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package imager

import (
	"fmt"

	"github.com/headunit-tools/pioneer-imager/pkg/imager/distimg"
	"github.com/headunit-tools/pioneer-imager/pkg/imager/layout"
	"github.com/headunit-tools/pioneer-imager/pkg/imager/profile"
	"github.com/headunit-tools/pioneer-imager/pkg/imager/source"
	"github.com/headunit-tools/pioneer-imager/pkg/makefs"
)

// Fixed disk layout, identical across all supported device models.
//
// The header block at 0xAF000 holds eleven 512-byte records: firmware
// container headers (boot, recovery and snapshot twice for redundancy) and
// the partition info record. Content regions follow, the larger ones living
// inside table partitions.
const (
	headerBlockBase = 0xAF000
	headerSlotSize  = 0x200

	hibendirContentOffset = 0x100000
	hibendirContentSize   = 0x20000
	userapiContentOffset  = 0x120000
	userapiContentSize    = 0x20000

	snapshotStateOffset       = 0x140000
	snapshotStateMirrorOffset = 0x140400
	snapshotStateSize         = 0x400
	snapshotDataOffset        = 0x140800
	snapshotDataMirrorOffset  = 0x10120400
	snapshotDataSize          = 0xFFDFC00
)

// headerSlot returns the nth record slot of the header block.
func headerSlot(n int64) *layout.Raw {
	return &layout.Raw{Offset: headerBlockBase + n*headerSlotSize, Size: headerSlotSize}
}

func partitionSlot(offsetBytes, sizeBytes int64) *layout.Partition {
	return &layout.Partition{OffsetSectors: offsetBytes / layout.SectorSize, SizeSectors: sizeBytes / layout.SectorSize}
}

type component struct {
	header   source.Source
	contents []source.Source
}

func (i *Imager) component(kind distimg.Kind) (component, error) {
	img, ok := i.images[kind]
	if !ok {
		return component{}, fmt.Errorf("missing %s container", kind)
	}

	header, err := img.Header()
	if err != nil {
		return component{}, err
	}

	contents, err := img.Contents()
	if err != nil {
		return component{}, err
	}

	return component{header: header, contents: contents}, nil
}

// buildMapping constructs the slot→source mapping and the partition table for
// the finished image.
//
// Several sources are deliberately placed twice: the device keeps redundant
// mirrors of the boot, recovery and snapshot regions.
//
//nolint:gocyclo
func (i *Imager) buildMapping(printf func(string, ...any)) (layout.Mapping, *layout.Table, error) {
	boot, err := i.component(distimg.KindBoot)
	if err != nil {
		return nil, nil, err
	}

	recovery, err := i.component(distimg.KindRecovery)
	if err != nil {
		return nil, nil, err
	}

	platform, err := i.component(distimg.KindPlatform)
	if err != nil {
		return nil, nil, err
	}

	snapshot, err := i.component(distimg.KindSnapshot)
	if err != nil {
		return nil, nil, err
	}

	hibendir, err := i.component(distimg.KindHibendir)
	if err != nil {
		return nil, nil, err
	}

	userdata, err := i.component(distimg.KindUserdata)
	if err != nil {
		return nil, nil, err
	}

	userapi, err := i.component(distimg.KindUserapi)
	if err != nil {
		return nil, nil, err
	}

	partInfo := profile.Platforms[i.prof.Platform].PartInfo

	extData := &source.Filesystem{
		ScratchDir: i.tempDir,
		Printf:     printf,
		Options: []makefs.Option{
			makefs.WithSourceDirectory(i.prof.ExtDataPath),
			makefs.WithBlockSize(4096),
			makefs.WithInodeSize(256),
			makefs.WithLastMounted("/extdata"),
			makefs.WithFeatures("^metadata_csum,uninit_bg,^64bit,^orphan_file"),
			makefs.WithExtendedOptions("lazy_itable_init=0,nodiscard"),
			makefs.WithJournalOptions("size=128"),
		},
	}

	cache := &source.Filesystem{
		ScratchDir: i.tempDir,
		Printf:     printf,
		Options: []makefs.Option{
			makefs.WithSourceDirectory(i.prof.CachePath),
			makefs.WithBlockSize(1024),
			makefs.WithInodeSize(128),
			makefs.WithLabel("CACHE"),
			makefs.WithFeatures("^extent,^large_file,^metadata_csum,uninit_bg,^64bit,^orphan_file"),
			makefs.WithExtendedOptions("lazy_itable_init=0,nodiscard"),
		},
	}

	bootContentSlots := []*layout.Partition{
		partitionSlot(0x20100000, 0xA00000),
		partitionSlot(0x20B00000, 0xA00000),
	}
	recoveryContentSlots := []*layout.Partition{
		partitionSlot(0x21500200, 0x1DFFE00),
		partitionSlot(0x23300200, 0x1DFFE00),
	}
	platformContentSlot := partitionSlot(0x25100200, 0x3FFFFE00)
	userdataContentSlot := partitionSlot(0x6D100200, 0x1FFFFE00)

	extDataSlot := &layout.Partition{OffsetSectors: 4622336, SizeSectors: 10420224}
	cacheSlot := &layout.Partition{OffsetSectors: 3311617, SizeSectors: 262143}

	mapping := layout.Mapping{
		// header block records
		{Slot: headerSlot(0), Source: boot.header},
		{Slot: headerSlot(1), Source: boot.header},
		{Slot: headerSlot(2), Source: recovery.header},
		{Slot: headerSlot(3), Source: recovery.header},
		{Slot: headerSlot(4), Source: platform.header},
		{Slot: headerSlot(5), Source: &partInfo},
		{Slot: headerSlot(6), Source: snapshot.header},
		{Slot: headerSlot(7), Source: snapshot.header},
		{Slot: headerSlot(8), Source: hibendir.header},
		{Slot: headerSlot(9), Source: userdata.header},
		{Slot: headerSlot(10), Source: userapi.header},

		// content regions
		{Slot: &layout.Raw{Offset: hibendirContentOffset, Size: hibendirContentSize}, Source: hibendir.contents[0]},
		{Slot: &layout.Raw{Offset: userapiContentOffset, Size: userapiContentSize}, Source: userapi.contents[0]},
		{Slot: &layout.Raw{Offset: snapshotStateOffset, Size: snapshotStateSize}, Source: snapshot.contents[0]},
		{Slot: &layout.Raw{Offset: snapshotStateMirrorOffset, Size: snapshotStateSize}, Source: snapshot.contents[0]},
		{Slot: &layout.Raw{Offset: snapshotDataOffset, Size: snapshotDataSize}, Source: snapshot.contents[1]},
		{Slot: &layout.Raw{Offset: snapshotDataMirrorOffset, Size: snapshotDataSize}, Source: snapshot.contents[1]},
		{Slot: bootContentSlots[0], Source: boot.contents[0]},
		{Slot: bootContentSlots[1], Source: boot.contents[0]},
		{Slot: recoveryContentSlots[0], Source: recovery.contents[0]},
		{Slot: recoveryContentSlots[1], Source: recovery.contents[0]},
		{Slot: platformContentSlot, Source: platform.contents[0]},
		{Slot: userdataContentSlot, Source: userdata.contents[0]},

		// generated filesystems
		{Slot: extDataSlot, Source: extData},
		{Slot: cacheSlot, Source: cache},
	}

	table := &layout.Table{
		Partitions: [4]layout.PartitionSlot{
			bootContentSlots[0],
			bootContentSlots[1],
			&layout.Extended{
				Partitions: []*layout.Partition{
					recoveryContentSlots[0],
					recoveryContentSlots[1],
					platformContentSlot,
					cacheSlot,
					userdataContentSlot,
				},
			},
			extDataSlot,
		},
	}

	return mapping, table, nil
}
