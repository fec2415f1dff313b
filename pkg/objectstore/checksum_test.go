// Copyright (C) 2019 Shoal Labs, Inc.
// See LICENSE for copying information.

package objectstore

import (
	"encoding/base64"
	"encoding/hex"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoal-io/shoal/internal/testrand"
)

func TestChecksumFrame(t *testing.T) {
	// standard CRC32C check value
	assert.Equal(t, uint32(0xE3069283), ChecksumFrame([]byte("123456789")))
	assert.Equal(t, uint32(0), ChecksumFrame(nil))
}

func TestCRC32CRoundTrip(t *testing.T) {
	for _, v := range []uint32{0, 1, 0xDEADBEEF, 0xFFFFFFFF} {
		decoded, err := DecodeCRC32C(EncodeCRC32C(v))
		require.NoError(t, err)
		assert.Equal(t, v, decoded)
	}

	for i := 0; i < 100; i++ {
		v := rand.Uint32()
		decoded, err := DecodeCRC32C(EncodeCRC32C(v))
		require.NoError(t, err)
		assert.Equal(t, v, decoded)
	}
}

func TestDecodeCRC32CMalformed(t *testing.T) {
	for _, tt := range []struct {
		name  string
		value string
	}{
		{"not base64", "!!!!"},
		{"too short", base64.StdEncoding.EncodeToString([]byte{1, 2, 3})},
		{"too long", base64.StdEncoding.EncodeToString([]byte{1, 2, 3, 4, 5})},
		{"empty", ""},
	} {
		_, err := DecodeCRC32C(tt.value)
		assert.True(t, ErrMalformedChecksum.Has(err), tt.name)
	}
}

func TestContentHashRoundTrip(t *testing.T) {
	// empty means no hash present, both directions
	encoded, err := EncodeContentHash("")
	require.NoError(t, err)
	assert.Equal(t, "", encoded)

	decoded, err := DecodeContentHash("")
	require.NoError(t, err)
	assert.Equal(t, "", decoded)

	raw := testrand.BytesN(16)
	wire := hex.EncodeToString(raw)

	encoded, err = EncodeContentHash(wire)
	require.NoError(t, err)
	assert.Equal(t, base64.StdEncoding.EncodeToString(raw), encoded)

	decoded, err = DecodeContentHash(encoded)
	require.NoError(t, err)
	assert.Equal(t, wire, decoded)
}

func TestContentHashMalformed(t *testing.T) {
	_, err := EncodeContentHash("not-hex")
	assert.True(t, ErrMalformedChecksum.Has(err))

	_, err = DecodeContentHash("!!!!")
	assert.True(t, ErrMalformedChecksum.Has(err))
}
