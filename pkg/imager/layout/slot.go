// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package layout models the placement of firmware content inside a disk image.
package layout

// SectorSize is the sector unit of partition-domain slots.
const SectorSize = 512

// Slot is a byte range reserved in the output image for one piece of content.
//
// Slots are identified by pointer: two distinct slots may share a content
// source, but a slot appears in a mapping at most once.
type Slot interface {
	// Location returns the byte offset and size of the slot.
	Location() (offset, size int64)
}

// Raw is a slot given directly in bytes.
type Raw struct {
	Offset int64
	Size   int64
}

// Location implements Slot.
func (r *Raw) Location() (int64, int64) {
	return r.Offset, r.Size
}

// PartitionSlot is a slot expressed in the 512-byte sector domain of the
// partition table.
type PartitionSlot interface {
	Slot

	// SectorLocation returns the offset and size in sectors.
	SectorLocation() (offset, size int64)
	// Type returns the partition type tag for the table script.
	Type() string
}

// Partition is a plain partition slot.
type Partition struct {
	OffsetSectors int64
	SizeSectors   int64
}

// SectorLocation implements PartitionSlot.
func (p *Partition) SectorLocation() (int64, int64) {
	return p.OffsetSectors, p.SizeSectors
}

// Type implements PartitionSlot.
func (p *Partition) Type() string {
	return "L"
}

// Location implements Slot.
func (p *Partition) Location() (int64, int64) {
	return p.OffsetSectors * SectorSize, p.SizeSectors * SectorSize
}

// Extended is a partition slot enclosing an ordered chain of partitions.
//
// Its own location is derived: the range starts one sector before the first
// child, reserving room for the extended boot record, and spans through the
// end of the last child. The stored child order fixes the logical order of
// the chain in the partition table, independent of byte offset order.
type Extended struct {
	Partitions []*Partition
}

// SectorLocation implements PartitionSlot.
func (e *Extended) SectorLocation() (int64, int64) {
	if len(e.Partitions) == 0 {
		return 0, 0
	}

	offset := e.Partitions[0].OffsetSectors
	end := int64(0)

	for _, p := range e.Partitions {
		offset = min(offset, p.OffsetSectors)
		end = max(end, p.OffsetSectors+p.SizeSectors)
	}

	offset--

	return offset, end - offset
}

// Type implements PartitionSlot.
func (e *Extended) Type() string {
	return "Ex"
}

// Location implements Slot.
func (e *Extended) Location() (int64, int64) {
	offset, size := e.SectorLocation()

	return offset * SectorSize, size * SectorSize
}
