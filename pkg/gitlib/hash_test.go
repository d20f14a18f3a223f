package gitlib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHashHex = "0123456789abcdef0123456789abcdef01234567"

func TestHashStringRoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashFromString(testHashHex)
	require.NoError(t, err)

	assert.Equal(t, testHashHex, hash.String())
}

func TestHashFromString_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "too short", input: "abc123"},
		{name: "too long", input: testHashHex + "00"},
		{name: "non-hex characters", input: "zz23456789abcdef0123456789abcdef01234567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := HashFromString(tt.input)
			require.ErrorIs(t, err, ErrBadHash)
		})
	}
}

func TestHashOidRoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashFromString(testHashHex)
	require.NoError(t, err)

	assert.Equal(t, hash, HashFromOid(hash.ToOid()))
}
