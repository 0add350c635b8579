// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package source

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
)

// PartInfoSize is the size of the partition info record.
const PartInfoSize = 512

// PartInfoMagic is the magic number opening the partition info record.
const PartInfoMagic = 0xA55A5AA5

const idFieldSize = 12

// PartInfo synthesizes the fixed 512-byte firmware identity record.
//
// It always writes exactly PartInfoSize bytes regardless of the size hint.
type PartInfo struct {
	// Version of the originally shipped firmware, e.g. 0x1020000 for v1.02.
	Version uint32
	// IDA, IDB and IDC are the ASCII identity strings, at most 12 bytes each.
	IDA string
	IDB string
	IDC string
}

// Write implements Source.
func (p *PartInfo) Write(ctx context.Context, w io.Writer, sizeHint int64) (int64, error) {
	data, err := p.generate()
	if err != nil {
		return 0, err
	}

	n, err := w.Write(data)
	if err != nil {
		return int64(n), err
	}

	if n != len(data) {
		return int64(n), fmt.Errorf("short write: wrote %d bytes, expected %d", n, len(data))
	}

	return int64(n), nil
}

func (p *PartInfo) generate() ([]byte, error) {
	data := make([]byte, PartInfoSize)

	// the record body past the packed head is 0xFF-filled
	for i := 0x48; i < PartInfoSize; i++ {
		data[i] = 0xFF
	}

	binary.LittleEndian.PutUint32(data[0x00:], PartInfoMagic)
	data[0x04] = 0x01 // 8-byte marker, remainder zero
	binary.LittleEndian.PutUint32(data[0x0C:], p.Version)
	data[0x10] = 0x01 // second 8-byte marker

	// each identity string occupies a 12-byte zero-padded field preceded by
	// 4 zero bytes
	for _, field := range []struct {
		offset int
		value  string
	}{
		{0x1C, p.IDA},
		{0x2C, p.IDB},
		{0x3C, p.IDC},
	} {
		if err := packID(data[field.offset:field.offset+idFieldSize], field.value); err != nil {
			return nil, err
		}
	}

	return data, nil
}

func packID(field []byte, value string) error {
	if len(value) > len(field) {
		return fmt.Errorf("identity string %q exceeds %d bytes", value, len(field))
	}

	for i := 0; i < len(value); i++ {
		if value[i] >= 0x80 {
			return fmt.Errorf("identity string %q is not ASCII", value)
		}
	}

	copy(field, value)

	return nil
}
