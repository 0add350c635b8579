// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package utils_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/headunit-tools/pioneer-imager/pkg/imager/utils"
)

func TestCopy(t *testing.T) {
	var buf bytes.Buffer

	n, err := utils.Copy(&buf, strings.NewReader("firmware contents"))
	require.NoError(t, err)

	assert.EqualValues(t, 17, n)
	assert.Equal(t, "firmware contents", buf.String())
}

func TestCopyN(t *testing.T) {
	for _, test := range []struct {
		name string

		input string
		size  int64

		expectedError string
	}{
		{
			name:  "exact",
			input: "0123456789",
			size:  10,
		},
		{
			name:  "truncated",
			input: "0123456789abcdef",
			size:  10,
		},
		{
			name:  "short input",
			input: "0123",
			size:  10,

			expectedError: "short read: copied 4 bytes, expected 10",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			var buf bytes.Buffer

			n, err := utils.CopyN(&buf, strings.NewReader(test.input), test.size)

			if test.expectedError != "" {
				assert.EqualError(t, err, test.expectedError)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.size, n)
			assert.Equal(t, test.input[:test.size], buf.String())
		})
	}
}

func TestZeroFill(t *testing.T) {
	for _, size := range []int64{0, 1, 511, utils.CopyBufferSize, utils.CopyBufferSize + 3} {
		var buf bytes.Buffer

		n, err := utils.ZeroFill(&buf, size)
		require.NoError(t, err)

		assert.Equal(t, size, n)
		assert.EqualValues(t, size, buf.Len())

		assert.Equal(t, make([]byte, size), buf.Bytes())
	}
}
