// Copyright (C) 2019 Shoal Labs, Inc.
// See LICENSE for copying information.

package pb

import (
	context "context"

	grpc "google.golang.org/grpc"
)

// ObjectStoreClient is the client API for the shoal.v1.ObjectStore service.
type ObjectStoreClient interface {
	// StartResumableWrite allocates a server-tracked upload id.
	StartResumableWrite(ctx context.Context, in *StartResumableWriteRequest, opts ...grpc.CallOption) (*StartResumableWriteResponse, error)
	// QueryWriteStatus reports committed bytes for an upload id.
	QueryWriteStatus(ctx context.Context, in *QueryWriteStatusRequest, opts ...grpc.CallOption) (*QueryWriteStatusResponse, error)
	// InsertObject streams object payload frames; the final response is the
	// stored object.
	InsertObject(ctx context.Context, opts ...grpc.CallOption) (ObjectStore_InsertObjectClient, error)
	// GetObjectMedia streams object payload back in blocks.
	GetObjectMedia(ctx context.Context, in *GetObjectMediaRequest, opts ...grpc.CallOption) (ObjectStore_GetObjectMediaClient, error)
}

// ObjectStore_InsertObjectClient is the client view of one write stream.
type ObjectStore_InsertObjectClient interface {
	Send(*InsertObjectRequest) error
	CloseAndRecv() (*Object, error)
	Context() context.Context
}

// ObjectStore_GetObjectMediaClient is the client view of one read stream.
type ObjectStore_GetObjectMediaClient interface {
	Recv() (*GetObjectMediaResponse, error)
	CloseSend() error
	Context() context.Context
}

type objectStoreClient struct {
	cc *grpc.ClientConn
}

// NewObjectStoreClient binds the service to a connection.
func NewObjectStoreClient(cc *grpc.ClientConn) ObjectStoreClient {
	return &objectStoreClient{cc}
}

func (c *objectStoreClient) StartResumableWrite(ctx context.Context, in *StartResumableWriteRequest, opts ...grpc.CallOption) (*StartResumableWriteResponse, error) {
	out := new(StartResumableWriteResponse)
	err := c.cc.Invoke(ctx, "/shoal.v1.ObjectStore/StartResumableWrite", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *objectStoreClient) QueryWriteStatus(ctx context.Context, in *QueryWriteStatusRequest, opts ...grpc.CallOption) (*QueryWriteStatusResponse, error) {
	out := new(QueryWriteStatusResponse)
	err := c.cc.Invoke(ctx, "/shoal.v1.ObjectStore/QueryWriteStatus", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *objectStoreClient) InsertObject(ctx context.Context, opts ...grpc.CallOption) (ObjectStore_InsertObjectClient, error) {
	stream, err := c.cc.NewStream(ctx, &objectStoreServiceDesc.Streams[0], "/shoal.v1.ObjectStore/InsertObject", opts...)
	if err != nil {
		return nil, err
	}
	return &objectStoreInsertObjectClient{stream}, nil
}

type objectStoreInsertObjectClient struct {
	grpc.ClientStream
}

func (x *objectStoreInsertObjectClient) Send(m *InsertObjectRequest) error {
	return x.ClientStream.SendMsg(m)
}

func (x *objectStoreInsertObjectClient) CloseAndRecv() (*Object, error) {
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	m := new(Object)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *objectStoreClient) GetObjectMedia(ctx context.Context, in *GetObjectMediaRequest, opts ...grpc.CallOption) (ObjectStore_GetObjectMediaClient, error) {
	stream, err := c.cc.NewStream(ctx, &objectStoreServiceDesc.Streams[1], "/shoal.v1.ObjectStore/GetObjectMedia", opts...)
	if err != nil {
		return nil, err
	}
	x := &objectStoreGetObjectMediaClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type objectStoreGetObjectMediaClient struct {
	grpc.ClientStream
}

func (x *objectStoreGetObjectMediaClient) Recv() (*GetObjectMediaResponse, error) {
	m := new(GetObjectMediaResponse)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

var objectStoreServiceDesc = grpc.ServiceDesc{
	ServiceName: "shoal.v1.ObjectStore",
	HandlerType: nil,
	Methods:     []grpc.MethodDesc{},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "InsertObject",
			ClientStreams: true,
		},
		{
			StreamName:    "GetObjectMedia",
			ServerStreams: true,
		},
	},
	Metadata: "objectstore.proto",
}
