// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package profile

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/headunit-tools/pioneer-imager/pkg/imager/distimg"
	"github.com/headunit-tools/pioneer-imager/pkg/imager/source"
)

// variantPlaceholder marks the spot in an archive path template where the
// hardware variant number is substituted.
const variantPlaceholder = "{variant}"

// Platform is one device model of the catalog.
type Platform struct {
	// PartInfo is the firmware identity record written into the image.
	PartInfo source.PartInfo
	// UpdatePaths maps each firmware component to its archive path template.
	UpdatePaths map[distimg.Kind]string
}

// EntryPath resolves the archive path of a firmware component, substituting
// the hardware variant where the template requires it.
func (p *Platform) EntryPath(kind distimg.Kind, variant int) (string, error) {
	template, ok := p.UpdatePaths[kind]
	if !ok {
		return "", fmt.Errorf("no archive path for component %s", kind)
	}

	return strings.ReplaceAll(template, variantPlaceholder, strconv.Itoa(variant)), nil
}

// Platforms is the closed catalog of supported device models.
var Platforms = map[string]*Platform{
	"AVH18": {
		PartInfo: source.PartInfo{
			Version: 0x1020000, // originally shipped firmware, v1.02
			IDA:     "CVJ2547-E",
			IDB:     "CVJ2547-E",
			IDC:     "PJDZ4-1-E",
		},
		UpdatePaths: map[distimg.Kind]string{
			distimg.KindBoot:     "AVH18/BOOT/PJ180BOT.PRG",
			distimg.KindRecovery: "AVH18/RECOVERY/PJ180REC.PRG",
			distimg.KindPlatform: "AVH18/PLATFORM/PJ180PLT.PRG",
			distimg.KindSnapshot: "AVH18/SNAPSHOT/SNAPSHOT_{variant}.PRG",
			distimg.KindHibendir: "AVH18/HIBENDIR/HIBENDIR.PRG",
			distimg.KindUserdata: "AVH18/USERDATA/PJ180DAT_{variant}.PRG",
			distimg.KindUserapi:  "AVH18/USERAPI/PJ180UPI.PRG",
		},
	},
	"AVIC18": {
		PartInfo: source.PartInfo{
			Version: 0x1020000,
			IDA:     "CVJ2547-E",
			IDB:     "CVJ2547-E",
			IDC:     "PJDZ4-1-E",
		},
		UpdatePaths: map[distimg.Kind]string{
			distimg.KindBoot:     "AVIC18/BOOT/PJ180BOT.PRG",
			distimg.KindRecovery: "AVIC18/RECOVERY/PJ180REC.PRG",
			distimg.KindPlatform: "AVIC18/PLATFORM/PJ180PLT.PRG",
			distimg.KindSnapshot: "AVIC18/SNAPSHOT/SNAPSHOT_{variant}.PRG",
			distimg.KindHibendir: "AVIC18/HIBENDIR/HIBENDIR.PRG",
			distimg.KindUserdata: "AVIC18/USERDATA/PJ180DAT_{variant}.PRG",
			distimg.KindUserapi:  "AVIC18/USERAPI/PJ180UPI.PRG",
		},
	},
	"AVH19": {
		PartInfo: source.PartInfo{
			Version: 0x1000000, // originally shipped firmware, v1.00
			IDA:     "CVJ3973-A",
			IDB:     "CVJ3973-A",
			IDC:     "PJDZ5-1-A",
		},
		UpdatePaths: map[distimg.Kind]string{
			distimg.KindBoot:     "AVH19/BOOT/PJ190BOT.PRG",
			distimg.KindRecovery: "AVH19/RECOVERY/PJ190REC.PRG",
			distimg.KindPlatform: "AVH19/PLATFORM/PJ190PLT.PRG",
			distimg.KindSnapshot: "AVH19/SNAPSHOT/SNAPSHOT_{variant}.PRG",
			distimg.KindHibendir: "AVH19/HIBENDIR/HIBENDIR.PRG",
			distimg.KindUserdata: "AVH19/USERDATA/PJ190DAT_{variant}.PRG",
			distimg.KindUserapi:  "AVH19/USERAPI/PJ190UPI.PRG",
		},
	},
	"AVIC19": {
		PartInfo: source.PartInfo{
			Version: 0x1000000,
			IDA:     "CVJ3973-A",
			IDB:     "CVJ3973-A",
			IDC:     "PJDZ5-1-A",
		},
		UpdatePaths: map[distimg.Kind]string{
			distimg.KindBoot:     "AVIC19/BOOT/PJ190BOT.PRG",
			distimg.KindRecovery: "AVIC19/RECOVERY/PJ190REC.PRG",
			distimg.KindPlatform: "AVIC19/PLATFORM/PJ190PLT.PRG",
			distimg.KindSnapshot: "AVIC19/SNAPSHOT/SNAPSHOT_{variant}.PRG",
			distimg.KindHibendir: "AVIC19/HIBENDIR/HIBENDIR.PRG",
			distimg.KindUserdata: "AVIC19/USERDATA/PJ190DAT_{variant}.PRG",
			distimg.KindUserapi:  "AVIC19/USERAPI/PJ190UPI.PRG",
		},
	},
}

// Names returns the sorted platform names of the catalog.
func Names() []string {
	names := make([]string, 0, len(Platforms))

	for name := range Platforms {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}
