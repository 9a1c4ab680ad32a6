package column

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeString_Plain_RoundTrip(t *testing.T) {
	values := []string{"highway", "residential", "", "track"}

	data := EncodeString("kind", values, nil, StringEncoder{Encoding: StringPlain})

	require.Equal(t, Str, Type(data[0]))

	name, n, err := ParseString(data[1:])
	require.NoError(t, err)
	require.Equal(t, "kind", name)

	got, consumed, err := DecodeStringBody(data[1+n:], false)
	require.NoError(t, err)
	require.Equal(t, values, got.Values)
	require.Equal(t, len(data)-1-n, consumed)
}

func TestEncodeDecodeString_Plain_Optional(t *testing.T) {
	values := []string{"a", "b"}
	present := []bool{true, false, true}

	data := EncodeString("kind", values, present, StringEncoder{Optional: true, Encoding: StringPlain})

	require.Equal(t, OptStr, Type(data[0]))

	_, n, err := ParseString(data[1:])
	require.NoError(t, err)

	got, _, err := DecodeStringBody(data[1+n:], true)
	require.NoError(t, err)
	require.Equal(t, values, got.Values)
	require.Equal(t, present, got.Present)
}

func TestEncodeDecodeString_Fsst_RoundTrip(t *testing.T) {
	values := []string{
		"residential", "residential", "motorway", "residential",
		"trunk", "motorway", "service", "residential",
	}

	data := EncodeString("kind", values, nil, StringEncoder{Encoding: StringFsst})

	_, n, err := ParseString(data[1:])
	require.NoError(t, err)

	got, _, err := DecodeStringBody(data[1+n:], false)
	require.NoError(t, err)
	require.Equal(t, values, got.Values)
}

func TestEncodeDecodeString_EmptyCorpus(t *testing.T) {
	data := EncodeString("kind", nil, nil, StringEncoder{Encoding: StringPlain})

	_, n, err := ParseString(data[1:])
	require.NoError(t, err)

	got, _, err := DecodeStringBody(data[1+n:], false)
	require.NoError(t, err)
	require.Empty(t, got.Values)
}
