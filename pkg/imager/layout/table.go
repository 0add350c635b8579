// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package layout

import (
	"context"
	"fmt"
	"strings"

	"github.com/siderolabs/gen/xslices"

	"github.com/headunit-tools/pioneer-imager/pkg/sfdisk"
)

// Table describes a DOS partition table with up to four primary entries.
//
// The table is written into the image after all content: it only overlays
// metadata at offsets sfdisk owns, it never moves previously written bytes.
type Table struct {
	// Partitions are the four primary table entries; nil entries are absent
	// and produce no script line, the tool leaves them empty.
	Partitions [4]PartitionSlot

	// Geometry hints passed through to the partitioning tool.
	Geometry sfdisk.Geometry
}

// Render produces the sfdisk script describing the table.
func (t *Table) Render() string {
	var script strings.Builder

	script.WriteString("label: dos\n")
	script.WriteString("label-id: 0x00000000\n")

	for i, partition := range t.Partitions {
		if partition == nil {
			continue
		}

		offset, size := partition.SectorLocation()

		fmt.Fprintf(&script, "%d: start=%d, size=%d, type=%s\n", i+1, offset, size, partition.Type())

		// the chain inside an extended partition keeps its stored order,
		// fixing the logical (DOS) numbering independent of byte offsets
		if extended, ok := partition.(*Extended); ok {
			for _, line := range xslices.Map(extended.Partitions, func(sub *Partition) string {
				subOffset, subSize := sub.SectorLocation()

				return fmt.Sprintf("start=%d, size=%d, type=%s\n", subOffset, subSize, sub.Type())
			}) {
				script.WriteString(line)
			}
		}
	}

	return script.String()
}

// Write renders the table and hands it to the partitioning tool against the
// finished image at path.
func (t *Table) Write(ctx context.Context, path string, printf func(string, ...any)) error {
	script := t.Render()

	printf("partition table script:\n%s", script)

	return sfdisk.Run(ctx, path, script, t.Geometry, printf)
}
