// Copyright (C) 2019 Shoal Labs, Inc.
// See LICENSE for copying information.

package objectstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRequestTranslation(t *testing.T) {
	for _, tt := range []struct {
		name    string
		request ReadRequest
		offset  int64
		limit   int64
	}{
		{"unbounded", ReadRequest{}, 0, 0},
		{"explicit range", ReadRequest{Begin: 1000, End: 3000}, 1000, 2000},
		{"from offset", ReadRequest{Begin: 4000}, 4000, 0},
		{"suffix", ReadRequest{Suffix: 100, HasSuffix: true}, -100, 0},
		// when both are set the later starting point wins, it never
		// grows the requested range
		{"suffix and offset", ReadRequest{Begin: 4000, Suffix: 100, HasSuffix: true}, 4000, 0},
	} {
		proto, err := tt.request.toProto()
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.offset, proto.ReadOffset, tt.name)
		assert.Equal(t, tt.limit, proto.ReadLimit, tt.name)
	}
}

func TestReadRequestZeroSuffix(t *testing.T) {
	_, err := (&ReadRequest{Bucket: "b", Object: "o", Suffix: 0, HasSuffix: true}).toProto()
	require.Error(t, err)
	assert.True(t, ErrInvalidRange.Has(err))
}

func TestUploadOptionsSpec(t *testing.T) {
	opts := UploadOptions{
		Bucket:      "b",
		Object:      "o",
		ContentType: "text/plain",
		PredefinedACL: &PredefinedACL{
			Context: ACLObject,
			Name:    "publicRead",
		},
		IfGenerationMatch:  0,
		HasGenerationMatch: true,
	}

	spec, err := opts.insertSpec()
	require.NoError(t, err)
	assert.Equal(t, "b", spec.Resource.Bucket)
	assert.Equal(t, "o", spec.Resource.Name)
	assert.Equal(t, "publicRead", spec.PredefinedAcl)
	// zero is a valid generation precondition
	require.NotNil(t, spec.IfGenerationMatch)
	assert.EqualValues(t, 0, spec.IfGenerationMatch.Value)
}

func TestUploadOptionsACLContext(t *testing.T) {
	// the ACL context is explicit, a bucket ACL cannot leak into an
	// object write
	opts := UploadOptions{
		Bucket:        "b",
		Object:        "o",
		PredefinedACL: &PredefinedACL{Context: ACLBucket, Name: "private"},
	}
	_, err := opts.insertSpec()
	require.Error(t, err)
}

func TestUploadOptionsChecksums(t *testing.T) {
	payload := []byte("123456789")

	// computed from the payload when not supplied
	checksums, err := (&UploadOptions{}).objectChecksums(payload)
	require.NoError(t, err)
	require.NotNil(t, checksums.Crc32C)
	assert.Equal(t, uint32(0xE3069283), checksums.Crc32C.Value)
	assert.Equal(t, "25f9e794323b453885f5181f1b624d0b", checksums.Md5Hash)

	// caller-supplied checksums are re-encoded, not recomputed
	supplied := &UploadOptions{
		CRC32C:      EncodeCRC32C(0xDEADBEEF),
		ContentHash: "JfnnlDI7RTiF9RgfG2JNCw==",
	}
	checksums, err = supplied.objectChecksums(payload)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), checksums.Crc32C.Value)
	assert.Equal(t, "25f9e794323b453885f5181f1b624d0b", checksums.Md5Hash)
}
