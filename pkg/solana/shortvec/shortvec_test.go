package shortvec

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	for i := 0; i <= math.MaxUint16; i++ {
		buf.Reset()

		_, err := EncodeLen(buf, i)
		require.NoError(t, err)

		actual, err := DecodeLen(buf)
		require.NoError(t, err)
		require.Equal(t, i, actual)
		require.Zero(t, buf.Len())
	}
}

// Vectors from the compact-u16 encoding used in transaction wire formats.
func TestKnownEncodings(t *testing.T) {
	for _, tc := range []struct {
		val     int
		encoded []byte
	}{
		{0x0, []byte{0x0}},
		{0x7f, []byte{0x7f}},
		{0x80, []byte{0x80, 0x01}},
		{0xff, []byte{0xff, 0x01}},
		{0x100, []byte{0x80, 0x02}},
		{0x3fff, []byte{0xff, 0x7f}},
		{0x4000, []byte{0x80, 0x80, 0x01}},
		{0xffff, []byte{0xff, 0xff, 0x03}},
	} {
		buf := &bytes.Buffer{}
		n, err := EncodeLen(buf, tc.val)
		require.NoError(t, err)
		assert.Equal(t, len(tc.encoded), n, tc.val)
		assert.Equal(t, tc.encoded, buf.Bytes(), tc.val)

		decoded, err := DecodeLen(bytes.NewBuffer(tc.encoded))
		require.NoError(t, err)
		assert.Equal(t, tc.val, decoded)
	}
}

func TestInvalid(t *testing.T) {
	for _, val := range []int{-1, math.MaxUint16 + 1} {
		_, err := EncodeLen(&bytes.Buffer{}, val)
		assert.Error(t, err, val)
	}

	for _, encoded := range [][]byte{
		{0x80, 0x80, 0x80, 0x01},
		{0xff, 0xff, 0x07},
		{0x80},
		{},
	} {
		_, err := DecodeLen(bytes.NewBuffer(encoded))
		assert.Error(t, err, encoded)
	}
}
