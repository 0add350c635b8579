// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package layout_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/headunit-tools/pioneer-imager/pkg/imager/layout"
)

// bytesSource writes a fixed byte repeated count times, ignoring the size hint.
type bytesSource struct {
	value byte
	count int
}

func (s bytesSource) Write(_ context.Context, w io.Writer, _ int64) (int64, error) {
	n, err := w.Write(bytes.Repeat([]byte{s.value}, s.count))

	return int64(n), err
}

func discardPrintf(string, ...any) {}

func TestComposeEndToEnd(t *testing.T) {
	// header fills its slot exactly, content leaves a 124-byte tail
	mapping := layout.Mapping{
		{Slot: &layout.Raw{Offset: 512, Size: 1024}, Source: bytesSource{value: 0xBB, count: 900}},
		{Slot: &layout.Raw{Offset: 0, Size: 512}, Source: bytesSource{value: 0xAA, count: 512}},
	}

	var buf bytes.Buffer

	total, err := layout.Compose(context.Background(), &buf, mapping, discardPrintf)
	require.NoError(t, err)

	assert.EqualValues(t, 1536, total)
	assert.EqualValues(t, 1536, buf.Len())

	data := buf.Bytes()
	assert.Equal(t, bytes.Repeat([]byte{0xAA}, 512), data[:512])
	assert.Equal(t, bytes.Repeat([]byte{0xBB}, 900), data[512:1412])
	assert.Equal(t, make([]byte, 124), data[1412:])
}

func TestComposeGapsAndPadding(t *testing.T) {
	// unsorted mapping with a gap between the slots
	mapping := layout.Mapping{
		{Slot: &layout.Raw{Offset: 2048, Size: 512}, Source: bytesSource{value: 0x22, count: 100}},
		{Slot: &layout.Raw{Offset: 256, Size: 256}, Source: bytesSource{value: 0x11, count: 256}},
	}

	var buf bytes.Buffer

	total, err := layout.Compose(context.Background(), &buf, mapping, discardPrintf)
	require.NoError(t, err)

	// image length is the end of the highest slot
	assert.EqualValues(t, 2560, total)
	assert.EqualValues(t, 2560, buf.Len())

	data := buf.Bytes()

	// every byte outside written content is zero
	assert.Equal(t, make([]byte, 256), data[:256])
	assert.Equal(t, bytes.Repeat([]byte{0x11}, 256), data[256:512])
	assert.Equal(t, make([]byte, 2048-512), data[512:2048])
	assert.Equal(t, bytes.Repeat([]byte{0x22}, 100), data[2048:2148])
	assert.Equal(t, make([]byte, 2560-2148), data[2148:])
}

func TestComposeOverlap(t *testing.T) {
	mapping := layout.Mapping{
		{Slot: &layout.Raw{Offset: 0, Size: 100}, Source: bytesSource{value: 0x11, count: 100}},
		{Slot: &layout.Raw{Offset: 50, Size: 100}, Source: bytesSource{value: 0x22, count: 100}},
	}

	var buf bytes.Buffer

	_, err := layout.Compose(context.Background(), &buf, mapping, discardPrintf)
	assert.EqualError(t, err, "slot at offset 50 overlaps previous slot ending at offset 100")
}

func TestComposeZeroSizeSlot(t *testing.T) {
	mapping := layout.Mapping{
		{Slot: &layout.Raw{Offset: 0, Size: 0}, Source: bytesSource{}},
	}

	var buf bytes.Buffer

	_, err := layout.Compose(context.Background(), &buf, mapping, discardPrintf)
	assert.EqualError(t, err, "slot at offset 0 has non-positive size 0")
}

func TestComposeContentOverflow(t *testing.T) {
	mapping := layout.Mapping{
		{Slot: &layout.Raw{Offset: 0, Size: 100}, Source: bytesSource{value: 0x11, count: 150}},
	}

	var buf bytes.Buffer

	_, err := layout.Compose(context.Background(), &buf, mapping, discardPrintf)
	assert.EqualError(t, err, "content of slot at offset 0 wrote 150 bytes exceeding slot size 100")
}

func TestComposeEmptyMapping(t *testing.T) {
	var buf bytes.Buffer

	total, err := layout.Compose(context.Background(), &buf, nil, discardPrintf)
	require.NoError(t, err)

	assert.Zero(t, total)
	assert.Zero(t, buf.Len())
}

func TestComposePartitionSlots(t *testing.T) {
	// partition-domain slots convert to bytes before placement
	mapping := layout.Mapping{
		{Slot: &layout.Partition{OffsetSectors: 2, SizeSectors: 1}, Source: bytesSource{value: 0x33, count: 512}},
	}

	var buf bytes.Buffer

	total, err := layout.Compose(context.Background(), &buf, mapping, discardPrintf)
	require.NoError(t, err)

	assert.EqualValues(t, 3*512, total)

	data := buf.Bytes()
	assert.Equal(t, make([]byte, 1024), data[:1024])
	assert.Equal(t, bytes.Repeat([]byte{0x33}, 512), data[1024:])
}
