package column

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodePresence_RoundTrip(t *testing.T) {
	present := []bool{true, false, true, true, false}

	data := encodePresence(nil, present)

	got, n, err := decodePresence(data, true)
	require.NoError(t, err)
	require.Equal(t, present, got)
	require.Equal(t, len(data), n)
}

func TestEncodePresence_NilWhenNotOptional(t *testing.T) {
	data := encodePresence([]byte{0xAA}, nil)
	require.Equal(t, []byte{0xAA}, data)

	got, n, err := decodePresence(data, false)
	require.NoError(t, err)
	require.Nil(t, got)
	require.Equal(t, 0, n)
}

func TestCountPresent(t *testing.T) {
	require.Equal(t, 5, countPresent(nil, 5))
	require.Equal(t, 2, countPresent([]bool{true, false, true}, 3))
	require.Equal(t, 0, countPresent([]bool{false, false}, 2))
}

func TestValidatePresenceCount(t *testing.T) {
	require.NoError(t, validatePresenceCount(nil, 4))
	require.NoError(t, validatePresenceCount([]bool{true, false, true}, 2))

	err := validatePresenceCount([]bool{true, false, true}, 3)
	require.Error(t, err)
}
