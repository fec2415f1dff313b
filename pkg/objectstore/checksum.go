// Copyright (C) 2019 Shoal Labs, Inc.
// See LICENSE for copying information.

package objectstore

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"hash/crc32"
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// ChecksumFrame computes the CRC32C of a single frame's bytes.
func ChecksumFrame(data []byte) uint32 {
	return crc32.Checksum(data, castagnoli)
}

// EncodeCRC32C converts a wire CRC32C into its caller-facing form:
// the value as 4 big-endian bytes, base64 encoded.
func EncodeCRC32C(v uint32) string {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	return base64.StdEncoding.EncodeToString(buf[:])
}

// DecodeCRC32C is the exact inverse of EncodeCRC32C.
func DecodeCRC32C(s string) (uint32, error) {
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return 0, ErrMalformedChecksum.Wrap(err)
	}
	if len(decoded) != 4 {
		return 0, ErrMalformedChecksum.New("crc32c is %d bytes, expected 4", len(decoded))
	}
	return binary.BigEndian.Uint32(decoded), nil
}

// EncodeContentHash re-encodes a wire content hash (lowercase hex) into the
// caller-facing base64 form. Empty means no hash is present, both directions.
func EncodeContentHash(wire string) (string, error) {
	if wire == "" {
		return "", nil
	}
	raw, err := hex.DecodeString(wire)
	if err != nil {
		return "", ErrMalformedChecksum.Wrap(err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// DecodeContentHash re-encodes a caller-facing base64 content hash into the
// wire's lowercase hex form.
func DecodeContentHash(hash string) (string, error) {
	if hash == "" {
		return "", nil
	}
	raw, err := base64.StdEncoding.DecodeString(hash)
	if err != nil {
		return "", ErrMalformedChecksum.Wrap(err)
	}
	return hex.EncodeToString(raw), nil
}
