// Copyright (C) 2019 Shoal Labs, Inc.
// See LICENSE for copying information.

package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoal-io/shoal/internal/memory"
)

func TestSizeString(t *testing.T) {
	for _, tt := range []struct {
		size     memory.Size
		expected string
	}{
		{0, "0"},
		{1, "1 B"},
		{600, "600 B"},
		{2 * memory.KiB, "2.0 KiB"},
		{memory.MiB + 512*memory.KiB, "1.5 MiB"},
		{2*memory.MiB - 256*memory.KiB, "1.8 MiB"},
		{3 * memory.GiB, "3.0 GiB"},
	} {
		assert.Equal(t, tt.expected, tt.size.String())
	}
}

func TestSizeParse(t *testing.T) {
	for _, tt := range []struct {
		value    string
		expected memory.Size
	}{
		{"0", 0},
		{"600", 600},
		{"600B", 600},
		{"2 KiB", 2 * memory.KiB},
		{"2kib", 2 * memory.KiB},
		{"1.75 MiB", memory.MiB + 768*memory.KiB},
		{"1MB", memory.MB},
		{"3 GiB", 3 * memory.GiB},
	} {
		size, err := memory.ParseString(tt.value)
		require.NoError(t, err, tt.value)
		assert.Equal(t, tt.expected, size, tt.value)
	}

	for _, invalid := range []string{"", "bytes", "1 XB", "one MiB"} {
		_, err := memory.ParseString(invalid)
		assert.Error(t, err, invalid)
	}
}

func TestSizeRoundTrip(t *testing.T) {
	for _, size := range []memory.Size{
		0, 600, 2 * memory.KiB, memory.MiB + 512*memory.KiB, 3 * memory.GiB,
	} {
		parsed, err := memory.ParseString(size.String())
		require.NoError(t, err)
		assert.Equal(t, size, parsed)
	}
}
