package bitpack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitmap_RoundTrip(t *testing.T) {
	bits := []bool{true, false, false, true, true, true, false, false, true}
	packed := PackBitmap(bits)
	require.Equal(t, BitmapByteLen(len(bits)), len(packed))

	unpacked := UnpackBitmap(packed, len(bits))
	require.Equal(t, bits, unpacked)
}

func TestBitmap_LSBFirst(t *testing.T) {
	packed := PackBitmap([]bool{true, false, false, false, false, false, false, false})
	require.Equal(t, []byte{0x01}, packed)

	packed = PackBitmap([]bool{false, true, false, false, false, false, false, false})
	require.Equal(t, []byte{0x02}, packed)
}

func TestBitmap_Empty(t *testing.T) {
	require.Empty(t, PackBitmap(nil))
	require.Empty(t, UnpackBitmap(nil, 0))
}

func TestBitmapByteLen(t *testing.T) {
	require.Equal(t, 0, BitmapByteLen(0))
	require.Equal(t, 1, BitmapByteLen(1))
	require.Equal(t, 1, BitmapByteLen(8))
	require.Equal(t, 2, BitmapByteLen(9))
}
