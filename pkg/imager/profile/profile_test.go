// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package profile_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/headunit-tools/pioneer-imager/pkg/imager/distimg"
	"github.com/headunit-tools/pioneer-imager/pkg/imager/profile"
)

func TestValidate(t *testing.T) {
	valid := profile.Profile{
		Platform:    "AVH19",
		Variant:     1,
		UpdatePath:  "update.zip",
		ExtDataPath: "extdata",
		CachePath:   "cache",
	}

	for _, test := range []struct {
		name string

		mutate func(*profile.Profile)

		expectedError string
	}{
		{
			name:   "valid",
			mutate: func(*profile.Profile) {},
		},
		{
			name:   "unknown platform",
			mutate: func(p *profile.Profile) { p.Platform = "AVH20" },

			expectedError: `unknown platform "AVH20", expected one of AVH18, AVH19, AVIC18, AVIC19`,
		},
		{
			name:   "bad variant",
			mutate: func(p *profile.Profile) { p.Variant = 0 },

			expectedError: "invalid variant 0",
		},
		{
			name:   "missing update path",
			mutate: func(p *profile.Profile) { p.UpdatePath = "" },

			expectedError: "update archive path is required",
		},
		{
			name:   "missing seed path",
			mutate: func(p *profile.Profile) { p.CachePath = "" },

			expectedError: "extdata and cache seed paths are required",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			prof := valid
			test.mutate(&prof)

			err := prof.Validate()

			if test.expectedError != "" {
				assert.EqualError(t, err, test.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEntryPath(t *testing.T) {
	platform := profile.Platforms["AVH19"]
	require.NotNil(t, platform)

	for _, test := range []struct {
		kind    distimg.Kind
		variant int

		expected string
	}{
		{kind: distimg.KindBoot, variant: 1, expected: "AVH19/BOOT/PJ190BOT.PRG"},
		{kind: distimg.KindSnapshot, variant: 1, expected: "AVH19/SNAPSHOT/SNAPSHOT_1.PRG"},
		{kind: distimg.KindSnapshot, variant: 3, expected: "AVH19/SNAPSHOT/SNAPSHOT_3.PRG"},
		{kind: distimg.KindUserdata, variant: 2, expected: "AVH19/USERDATA/PJ190DAT_2.PRG"},
	} {
		path, err := platform.EntryPath(test.kind, test.variant)
		require.NoError(t, err)

		assert.Equal(t, test.expected, path)
	}
}

func TestCatalogComplete(t *testing.T) {
	assert.Equal(t, []string{"AVH18", "AVH19", "AVIC18", "AVIC19"}, profile.Names())

	// every platform resolves a path for every known component
	for name, platform := range profile.Platforms {
		for _, kind := range distimg.Kinds() {
			path, err := platform.EntryPath(kind, 1)
			require.NoError(t, err, "%s/%s", name, kind)

			assert.NotEmpty(t, path)
		}
	}
}

func TestDump(t *testing.T) {
	prof := profile.Profile{
		Platform:    "AVH18",
		Variant:     2,
		UpdatePath:  "update.zip",
		ExtDataPath: "extdata",
		CachePath:   "cache",
	}

	var buf bytes.Buffer

	require.NoError(t, prof.Dump(&buf))

	assert.Equal(t, `platform: AVH18
variant: 2
updatePath: update.zip
extDataPath: extdata
cachePath: cache
`, buf.String())
}
