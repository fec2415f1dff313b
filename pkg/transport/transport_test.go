// Copyright (C) 2019 Shoal Labs, Inc.
// See LICENSE for copying information.

package transport_test

import (
	"net"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"github.com/shoal-io/shoal/internal/testcontext"
	"github.com/shoal-io/shoal/pkg/transport"
)

func TestEndpointOverride(t *testing.T) {
	restore := os.Getenv("SHOAL_GRPC_ENDPOINT")
	defer func() { _ = os.Setenv("SHOAL_GRPC_ENDPOINT", restore) }()

	require.NoError(t, os.Unsetenv("SHOAL_GRPC_ENDPOINT"))
	assert.Equal(t, "objects.shoal.dev:443", transport.Endpoint())

	require.NoError(t, os.Setenv("SHOAL_GRPC_ENDPOINT", "localhost:1234"))
	assert.Equal(t, "localhost:1234", transport.Endpoint())
}

func TestDialAddressInsecure(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	server := grpc.NewServer()
	ctx.Go(func() error {
		_ = server.Serve(listener)
		return nil
	})
	defer server.Stop()

	conn, err := transport.DialAddressInsecure(ctx, listener.Addr().String())
	require.NoError(t, err)
	ctx.Check(conn.Close)
}
