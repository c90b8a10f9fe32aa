package reading

import (
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareCode_RoundTrip(t *testing.T) {
	dates := []time.Time{
		time.Date(1990, 5, 15, 0, 0, 0, 0, time.UTC),
		time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
	}
	for _, dob := range dates {
		for _, name := range []string{"John Smith", "Zoë O'Brien", "a|b"} {
			code := EncodeShareCode(name, dob)
			assert.NotContains(t, code, "+")
			assert.NotContains(t, code, "/")

			gotName, gotDOB, err := DecodeShareCode(code)
			require.NoError(t, err)
			assert.Equal(t, name, gotName)
			assert.True(t, dob.Equal(gotDOB), "dob %s != %s", dob, gotDOB)
		}
	}
}

func TestShareCode_Deterministic(t *testing.T) {
	dob := time.Date(1990, 5, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, EncodeShareCode("John Smith", dob), EncodeShareCode("John Smith", dob))
}

func TestDecodeShareCode_LegacyFormat(t *testing.T) {
	dob := time.Date(1990, 5, 15, 0, 0, 0, 0, time.UTC)
	legacy := base64.StdEncoding.EncodeToString([]byte("John Smith|" + "642729600000" + "|true"))

	name, got, err := DecodeShareCode(legacy)
	require.NoError(t, err)
	assert.Equal(t, "John Smith", name)
	assert.True(t, dob.Equal(got))
}

func TestDecodeShareCode_Rejects(t *testing.T) {
	bad := []string{
		"",
		"!!!",
		base64.RawURLEncoding.EncodeToString([]byte("no-separator")),
		base64.RawURLEncoding.EncodeToString([]byte("|642729600000")),
		base64.RawURLEncoding.EncodeToString([]byte("John|notanumber")),
		base64.RawURLEncoding.EncodeToString([]byte("John|999999999999999999")),
		base64.RawURLEncoding.EncodeToString([]byte{0xff, 0xfe, '|', '1'}),
	}
	for _, code := range bad {
		_, _, err := DecodeShareCode(code)
		assert.Truef(t, errors.Is(err, ErrInvalidShareCode), "code %q", code)
	}
}
