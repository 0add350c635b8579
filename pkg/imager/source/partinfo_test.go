// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package source_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/headunit-tools/pioneer-imager/pkg/imager/source"
)

func TestPartInfoRecord(t *testing.T) {
	p := &source.PartInfo{
		Version: 0x1020000,
		IDA:     "CVJ2547-E",
		IDB:     "CVJ2547-E",
		IDC:     "PJDZ4-1-E",
	}

	var buf bytes.Buffer

	n, err := p.Write(context.Background(), &buf, 0)
	require.NoError(t, err)

	assert.EqualValues(t, source.PartInfoSize, n)

	data := buf.Bytes()
	require.Len(t, data, source.PartInfoSize)

	assert.EqualValues(t, source.PartInfoMagic, binary.LittleEndian.Uint32(data[0x00:]))
	assert.Equal(t, []byte{0x01, 0, 0, 0, 0, 0, 0, 0}, data[0x04:0x0C])
	assert.EqualValues(t, 0x1020000, binary.LittleEndian.Uint32(data[0x0C:]))
	assert.Equal(t, []byte{0x01, 0, 0, 0, 0, 0, 0, 0}, data[0x10:0x18])

	// identity strings at their fixed offsets, zero-padded to 12 bytes
	assert.Equal(t, []byte("CVJ2547-E\x00\x00\x00"), data[0x1C:0x28])
	assert.Equal(t, []byte("CVJ2547-E\x00\x00\x00"), data[0x2C:0x38])
	assert.Equal(t, []byte("PJDZ4-1-E\x00\x00\x00"), data[0x3C:0x48])

	// separators before each identity field are zero
	for _, off := range []int{0x18, 0x28, 0x38} {
		assert.Equal(t, []byte{0, 0, 0, 0}, data[off:off+4])
	}

	// everything past the packed head is 0xFF
	assert.Equal(t, bytes.Repeat([]byte{0xFF}, source.PartInfoSize-0x48), data[0x48:])
}

func TestPartInfoInvalid(t *testing.T) {
	for _, test := range []struct {
		name string

		partInfo source.PartInfo

		expectedError string
	}{
		{
			name: "too long",

			partInfo: source.PartInfo{IDA: "THIRTEEN-CHR!"},

			expectedError: `identity string "THIRTEEN-CHR!" exceeds 12 bytes`,
		},
		{
			name: "not ascii",

			partInfo: source.PartInfo{IDC: "CVJ-\xc3\xa9"},

			expectedError: `identity string "CVJ-é" is not ASCII`,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			var buf bytes.Buffer

			_, err := test.partInfo.Write(context.Background(), &buf, 0)
			assert.EqualError(t, err, test.expectedError)
		})
	}
}
