// Copyright (C) 2019 Shoal Labs, Inc.
// See LICENSE for copying information.

package objectstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"

	"github.com/shoal-io/shoal/internal/errs2"
	"github.com/shoal-io/shoal/internal/memory"
	"github.com/shoal-io/shoal/internal/testbench"
	"github.com/shoal-io/shoal/internal/testcontext"
	"github.com/shoal-io/shoal/internal/testrand"
)

func TestPutObject(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	bench := testbench.New()
	client := newTestClient(t, bench)

	payload := testrand.BytesN(5000)
	object, err := client.PutObject(ctx, UploadOptions{Bucket: "b", Object: "o"}, payload)
	require.NoError(t, err)
	assert.EqualValues(t, 5000, object.Size_)
	assert.Equal(t, ChecksumFrame(payload), object.Crc32C.GetValue())

	stored, ok := bench.Object("b", "o")
	require.True(t, ok)
	assert.Equal(t, payload, stored)

	// a one-shot write allocates no resumable session
	assert.Equal(t, 0, bench.Uploads())
}

func TestPutObjectEmpty(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	bench := testbench.New()
	client := newTestClient(t, bench)

	object, err := client.PutObject(ctx, UploadOptions{Bucket: "b", Object: "empty"}, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 0, object.Size_)
}

func TestFrameSizeClamped(t *testing.T) {
	for _, tt := range []struct {
		configured int64
		effective  int64
	}{
		{0, MaxFrameSize.Int64()},
		{-1, MaxFrameSize.Int64()},
		{2048, 2048},
		{MaxFrameSize.Int64() + 1, MaxFrameSize.Int64()},
	} {
		client := newTestClient(t, testbench.New())
		client.config.FrameSize = memory.Size(tt.configured)
		assert.Equal(t, tt.effective, client.frameSize())
	}
}

func TestUnimplementedSurface(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	client := newTestClient(t, testbench.New())

	_, err := client.ComposeObject(ctx, "b", []string{"a", "c"}, "o")
	assert.True(t, errs2.IsRPC(err, codes.Unimplemented))

	_, err = client.RewriteObject(ctx, "b", "o", "b2", "o2")
	assert.True(t, errs2.IsRPC(err, codes.Unimplemented))

	_, err = client.PatchObject(ctx, "b", "o")
	assert.True(t, errs2.IsRPC(err, codes.Unimplemented))

	assert.True(t, errs2.IsRPC(client.ListObjectACL(ctx, "b", "o"), codes.Unimplemented))
	assert.True(t, errs2.IsRPC(client.UpdateObjectACL(ctx, "b", "o", "allUsers", "READER"), codes.Unimplemented))
}
