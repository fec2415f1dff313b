// Copyright (C) 2019 Shoal Labs, Inc.
// See LICENSE for copying information.

package objectstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/shoal-io/shoal/internal/testbench"
	"github.com/shoal-io/shoal/internal/testcontext"
	"github.com/shoal-io/shoal/internal/testrand"
)

func newTestClient(t *testing.T, bench *testbench.Bench) *Client {
	return New(zaptest.NewLogger(t), bench, Config{FrameSize: 2048})
}

func TestSessionUpload(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	bench := testbench.New()
	client := newTestClient(t, bench)

	session, err := client.NewResumableSession(ctx, UploadOptions{Bucket: "b", Object: "o"})
	require.NoError(t, err)
	assert.Equal(t, SessionActive, session.State())
	assert.EqualValues(t, 0, session.CommittedSize())
	assert.NotEmpty(t, session.UploadID())

	payload := testrand.BytesN(5000)
	object, err := session.Upload(ctx, payload)
	require.NoError(t, err)
	assert.Equal(t, SessionDone, session.State())
	assert.EqualValues(t, 5000, session.CommittedSize())
	assert.EqualValues(t, 5000, object.Size_)

	stored, ok := bench.Object("b", "o")
	require.True(t, ok)
	assert.Equal(t, payload, stored)

	// the status query stays idempotent after completion
	status, err := session.QueryStatus(ctx)
	require.NoError(t, err)
	assert.True(t, status.Complete)
	assert.EqualValues(t, 5000, status.CommittedSize)
}

func TestSessionUploadEmpty(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	bench := testbench.New()
	client := newTestClient(t, bench)

	session, err := client.NewResumableSession(ctx, UploadOptions{Bucket: "b", Object: "empty"})
	require.NoError(t, err)

	object, err := session.Upload(ctx, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 0, object.Size_)

	stored, ok := bench.Object("b", "empty")
	require.True(t, ok)
	assert.Empty(t, stored)
}

func TestResumeSession(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	bench := testbench.New()
	bench.SeedUpload("abc123", testrand.BytesN(3000), false)
	client := newTestClient(t, bench)

	session, err := client.ResumeSession(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, SessionActive, session.State())
	assert.EqualValues(t, 3000, session.CommittedSize())
}

func TestResumeSessionNotFound(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	client := newTestClient(t, testbench.New())

	_, err := client.ResumeSession(ctx, "no-such-upload")
	require.Error(t, err)
	assert.True(t, ErrSessionNotFound.Has(err))
}

func TestSessionResumeAfterFailure(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	bench := testbench.New()
	client := newTestClient(t, bench)

	session, err := client.NewResumableSession(ctx, UploadOptions{Bucket: "b", Object: "o"})
	require.NoError(t, err)

	payload := testrand.BytesN(5000)

	// break the stream after two accepted frames
	bench.DropAfterFrames = 2
	_, err = session.Upload(ctx, payload)
	require.Error(t, err)
	assert.Equal(t, SessionFailed, session.State())
	// committed size is not advanced locally on failure
	assert.EqualValues(t, 0, session.CommittedSize())

	bench.DropAfterFrames = 0
	status, err := session.QueryStatus(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 4096, status.CommittedSize)
	assert.False(t, status.Complete)
	assert.Equal(t, SessionActive, session.State())

	// prove the acknowledged prefix is never re-sent: wreck it locally,
	// the stored object must still carry the original bytes
	wrecked := append([]byte(nil), payload...)
	for i := int64(0); i < status.CommittedSize; i++ {
		wrecked[i] = 0
	}
	_, err = session.Upload(ctx, wrecked)
	require.NoError(t, err)
	assert.Equal(t, SessionDone, session.State())

	stored, ok := bench.Object("b", "o")
	require.True(t, ok)
	assert.Equal(t, payload, stored)
}

func TestSessionRestoreAndFinish(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	payload := testrand.BytesN(10000)

	bench := testbench.New()
	bench.SeedUpload("abc123", payload[:3000], false)
	client := newTestClient(t, bench)

	session, err := client.ResumeSession(ctx, "abc123")
	require.NoError(t, err)
	require.EqualValues(t, 3000, session.CommittedSize())

	_, err = session.Upload(ctx, payload)
	require.NoError(t, err)

	stored, ok := bench.Object("seeded", "abc123")
	require.True(t, ok)
	assert.Equal(t, payload, stored)
}

func TestSessionUploadTooShort(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	bench := testbench.New()
	bench.SeedUpload("abc123", testrand.BytesN(3000), false)
	client := newTestClient(t, bench)

	session, err := client.ResumeSession(ctx, "abc123")
	require.NoError(t, err)

	_, err = session.Upload(ctx, testrand.BytesN(1000))
	require.Error(t, err)
}
