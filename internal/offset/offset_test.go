// SPDX-License-Identifier: MPL-2.0

package offset_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lineutils/lineutils/internal/offset"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want offset.Offset
	}{
		{in: "4", want: offset.End(4)},
		{in: "0", want: offset.End(0)},
		{in: "-4", want: offset.End(4)},
		{in: "+4", want: offset.Start(4)},
		{in: "+0", want: offset.Start(0)},
		{in: "007", want: offset.End(7)},
		{in: "+9223372036854775807", want: offset.Start(9223372036854775807)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := offset.Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"xx", "99xx", "", "+", "-", "+-5", "5 ", " 5", "1.5", "9223372036854775808"} {
		t.Run(in, func(t *testing.T) {
			t.Parallel()

			_, err := offset.Parse(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, offset.ErrInvalidOffset)

			var invalid *offset.InvalidOffsetError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, in, invalid.Value)
			assert.Equal(t, "illegal offset -- "+in, err.Error())
		})
	}
}

func TestParse_DirectionRoundTrip(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"0", "12", "-12", "+0", "+12", "000"} {
		first, err := offset.Parse(in)
		require.NoError(t, err)

		second, err := offset.Parse(first.String())
		require.NoError(t, err)

		assert.Equal(t, first.Direction(), second.Direction(), "direction for %q", in)
		assert.Equal(t, first.N(), second.N(), "magnitude for %q", in)
		assert.Equal(t, in[0] == '+', first.IsFromStart(), "classification for %q", in)
	}
}

func TestDirection_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "from-start", offset.FromStart.String())
	assert.Equal(t, "from-end", offset.FromEnd.String())
	assert.Equal(t, "Direction(0)", offset.Direction(0).String())
}
