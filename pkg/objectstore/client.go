// Copyright (C) 2019 Shoal Labs, Inc.
// See LICENSE for copying information.

// Package objectstore implements the client-side transfer engine: chunked
// resumable uploads and streaming reads over the shoal.v1.ObjectStore
// protocol.
package objectstore

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/shoal-io/shoal/internal/memory"
	"github.com/shoal-io/shoal/pkg/pb"
	"github.com/shoal-io/shoal/pkg/transport"
)

const (
	// maxWriteRequestSize is the transport's hard cap for a single write
	// message, including framing overhead, not just the payload.
	maxWriteRequestSize = 2 * memory.MiB
	// chunkSizeQuantum is the granularity the server expects chunks in;
	// reserving one quantum keeps the total message under the cap.
	chunkSizeQuantum = 256 * memory.KiB

	// MaxFrameSize is the largest payload one write frame may carry.
	MaxFrameSize = maxWriteRequestSize - chunkSizeQuantum
)

// Config holds the transfer engine settings.
type Config struct {
	FrameSize memory.Size `help:"maximum payload bytes per write frame" default:"1.75 MiB"`
}

// Client talks to an object store over a single connection.
type Client struct {
	log    *zap.Logger
	conn   *grpc.ClientConn
	client pb.ObjectStoreClient
	config Config
}

// New creates a Client over an already bound service.
func New(log *zap.Logger, client pb.ObjectStoreClient, config Config) *Client {
	return &Client{
		log:    log,
		client: client,
		config: config,
	}
}

// Dial connects to the configured endpoint and returns a ready Client.
func Dial(ctx context.Context, log *zap.Logger, config Config) (_ *Client, err error) {
	defer mon.Task()(&ctx)(&err)

	conn, err := transport.Dial(ctx)
	if err != nil {
		return nil, Error.Wrap(err)
	}

	client := New(log, pb.NewObjectStoreClient(conn), config)
	client.conn = conn
	return client, nil
}

// Close releases the underlying connection, if the client owns one.
func (client *Client) Close() error {
	if client.conn == nil {
		return nil
	}
	return Error.Wrap(client.conn.Close())
}

func (client *Client) frameSize() int64 {
	size := client.config.FrameSize.Int64()
	if size <= 0 || size > MaxFrameSize.Int64() {
		return MaxFrameSize.Int64()
	}
	return size
}

// unsupported marks an operation this transport path does not implement.
// The status is surfaced verbatim and must never be retried.
func unsupported(op string) error {
	return status.Error(codes.Unimplemented, op)
}

// ComposeObject is not supported over this transport path.
func (client *Client) ComposeObject(ctx context.Context, bucket string, sources []string, destination string) (*pb.Object, error) {
	return nil, unsupported("ComposeObject")
}

// RewriteObject is not supported over this transport path.
func (client *Client) RewriteObject(ctx context.Context, sourceBucket, sourceObject, destinationBucket, destinationObject string) (*pb.Object, error) {
	return nil, unsupported("RewriteObject")
}

// PatchObject is not supported over this transport path.
func (client *Client) PatchObject(ctx context.Context, bucket, object string) (*pb.Object, error) {
	return nil, unsupported("PatchObject")
}

// ListObjectACL is not supported over this transport path.
func (client *Client) ListObjectACL(ctx context.Context, bucket, object string) error {
	return unsupported("ListObjectACL")
}

// UpdateObjectACL is not supported over this transport path.
func (client *Client) UpdateObjectACL(ctx context.Context, bucket, object, entity, role string) error {
	return unsupported("UpdateObjectACL")
}
