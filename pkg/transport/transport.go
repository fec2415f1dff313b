// Copyright (C) 2019 Shoal Labs, Inc.
// See LICENSE for copying information.

// Package transport dials the object store endpoint.
package transport

import (
	"context"
	"crypto/tls"
	"os"
	"time"

	"github.com/zeebo/errs"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	monkit "gopkg.in/spacemonkeygo/monkit.v2"
)

var (
	mon = monkit.Package()

	// Error is the transport error class.
	Error = errs.Class("transport error")
)

const (
	// defaultAddress is the production endpoint.
	defaultAddress = "objects.shoal.dev:443"

	// endpointEnv overrides the endpoint for testing against alternate
	// servers; when set, transport security is relaxed accordingly.
	endpointEnv = "SHOAL_GRPC_ENDPOINT"

	defaultDialTimeout = 20 * time.Second
)

// Endpoint returns the address to dial, honoring the environment override.
func Endpoint() string {
	if env := os.Getenv(endpointEnv); env != "" {
		return env
	}
	return defaultAddress
}

// Dial connects to the configured endpoint. An environment override implies
// an insecure channel, for local and test use only.
func Dial(ctx context.Context, opts ...grpc.DialOption) (_ *grpc.ClientConn, err error) {
	defer mon.Task()(&ctx)(&err)

	if env := os.Getenv(endpointEnv); env != "" {
		return DialAddressInsecure(ctx, env, opts...)
	}
	return DialAddress(ctx, defaultAddress, opts...)
}

// DialAddress connects to the provided address over TLS.
func DialAddress(ctx context.Context, address string, opts ...grpc.DialOption) (_ *grpc.ClientConn, err error) {
	defer mon.Task()(&ctx)(&err)

	creds := credentials.NewTLS(&tls.Config{})
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(creds)}, opts...)
	return dial(ctx, address, opts...)
}

// DialAddressInsecure connects to the provided address without transport
// security.
func DialAddressInsecure(ctx context.Context, address string, opts ...grpc.DialOption) (_ *grpc.ClientConn, err error) {
	defer mon.Task()(&ctx)(&err)

	opts = append([]grpc.DialOption{grpc.WithInsecure()}, opts...)
	return dial(ctx, address, opts...)
}

func dial(ctx context.Context, address string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultDialTimeout)
	defer cancel()

	conn, err := grpc.DialContext(ctx, address, opts...)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	return conn, nil
}
