package bitpack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteRLE_RoundTrip(t *testing.T) {
	data := []byte{1, 1, 1, 2, 2, 3, 3, 3, 3}
	encoded := EncodeByteRLE(data)
	decoded, err := DecodeByteRLE(encoded, len(data))
	require.NoError(t, err)
	require.Equal(t, data, decoded)
}

func TestByteRLE_LongRunSplits(t *testing.T) {
	data := make([]byte, 600)
	for i := range data {
		data[i] = 0xAB
	}

	encoded := EncodeByteRLE(data)
	require.Greater(t, len(encoded), 2) // must split across >255-byte runs

	decoded, err := DecodeByteRLE(encoded, len(data))
	require.NoError(t, err)
	require.Equal(t, data, decoded)
}

func TestByteRLE_Empty(t *testing.T) {
	encoded := EncodeByteRLE(nil)
	require.Empty(t, encoded)

	decoded, err := DecodeByteRLE(encoded, 0)
	require.NoError(t, err)
	require.Empty(t, decoded)
}

func TestByteRLE_LengthMismatch(t *testing.T) {
	encoded := EncodeByteRLE([]byte{1, 1, 1})
	_, err := DecodeByteRLE(encoded, 5)
	require.Error(t, err)
}

func TestByteRLE_MissingValueByte(t *testing.T) {
	_, err := DecodeByteRLE([]byte{3}, 3)
	require.Error(t, err)
}
