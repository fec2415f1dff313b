// Copyright (C) 2019 Shoal Labs, Inc.
// See LICENSE for copying information.

// Package testbench implements an in-memory object store for exercising the
// transfer engine without a network. It keeps committed-size bookkeeping per
// upload and can inject stream failures.
package testbench

import (
	"context"
	"hash/crc32"
	"io"
	"sync"

	"github.com/gogo/protobuf/types"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/shoal-io/shoal/internal/testrand"
	"github.com/shoal-io/shoal/pkg/pb"
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// DefaultReadBlockSize is how many payload bytes one read message carries.
const DefaultReadBlockSize = 2048

type upload struct {
	spec     *pb.InsertObjectSpec
	data     []byte
	complete bool
}

type object struct {
	data []byte
	meta *pb.Object
}

// Bench is an in-memory object store implementing pb.ObjectStoreClient.
type Bench struct {
	mu         sync.Mutex
	objects    map[string]*object
	uploads    map[string]*upload
	generation int64
	readOpens  int

	// DropAfterFrames breaks every write stream after that many accepted
	// frames; the frames already accepted stay committed. Zero disables.
	DropAfterFrames int

	// CorruptReads flips a payload bit in every read block while keeping
	// the original checksum.
	CorruptReads bool

	// ReadBlockSize overrides DefaultReadBlockSize when positive.
	ReadBlockSize int
}

// New creates an empty bench.
func New() *Bench {
	return &Bench{
		objects: map[string]*object{},
		uploads: map[string]*upload{},
	}
}

func objectKey(bucket, name string) string { return bucket + "/" + name }

// Object returns the stored payload, for assertions.
func (bench *Bench) Object(bucket, name string) ([]byte, bool) {
	bench.mu.Lock()
	defer bench.mu.Unlock()
	stored, ok := bench.objects[objectKey(bucket, name)]
	if !ok {
		return nil, false
	}
	return stored.data, true
}

// Seed stores an object directly, for read tests.
func (bench *Bench) Seed(bucket, name string, data []byte) {
	bench.mu.Lock()
	defer bench.mu.Unlock()
	bench.generation++
	bench.objects[objectKey(bucket, name)] = &object{
		data: data,
		meta: &pb.Object{
			Bucket:     bucket,
			Name:       name,
			Generation: bench.generation,
			Size_:      int64(len(data)),
		},
	}
}

// Uploads returns how many sessions the bench has allocated.
func (bench *Bench) Uploads() int {
	bench.mu.Lock()
	defer bench.mu.Unlock()
	return len(bench.uploads)
}

// SeedUpload creates a session in a known state, for resume tests.
func (bench *Bench) SeedUpload(id string, committed []byte, complete bool) {
	bench.mu.Lock()
	defer bench.mu.Unlock()
	bench.uploads[id] = &upload{
		spec: &pb.InsertObjectSpec{
			Resource: &pb.Object{Bucket: "seeded", Name: id},
		},
		data:     committed,
		complete: complete,
	}
}

// ReadOpens returns how many read streams have been opened.
func (bench *Bench) ReadOpens() int {
	bench.mu.Lock()
	defer bench.mu.Unlock()
	return bench.readOpens
}

// StartResumableWrite implements pb.ObjectStoreClient.
func (bench *Bench) StartResumableWrite(ctx context.Context, in *pb.StartResumableWriteRequest, opts ...grpc.CallOption) (*pb.StartResumableWriteResponse, error) {
	bench.mu.Lock()
	defer bench.mu.Unlock()

	if in.Spec == nil || in.Spec.Resource == nil {
		return nil, status.Error(codes.InvalidArgument, "missing object spec")
	}

	id := testrand.UploadID()
	bench.uploads[id] = &upload{spec: in.Spec}
	return &pb.StartResumableWriteResponse{UploadId: id}, nil
}

// QueryWriteStatus implements pb.ObjectStoreClient.
func (bench *Bench) QueryWriteStatus(ctx context.Context, in *pb.QueryWriteStatusRequest, opts ...grpc.CallOption) (*pb.QueryWriteStatusResponse, error) {
	bench.mu.Lock()
	defer bench.mu.Unlock()

	up, ok := bench.uploads[in.UploadId]
	if !ok {
		return nil, status.Errorf(codes.NotFound, "unknown upload id %q", in.UploadId)
	}
	return &pb.QueryWriteStatusResponse{
		CommittedSize: int64(len(up.data)),
		Complete:      up.complete,
	}, nil
}

// InsertObject implements pb.ObjectStoreClient.
func (bench *Bench) InsertObject(ctx context.Context, opts ...grpc.CallOption) (pb.ObjectStore_InsertObjectClient, error) {
	return &insertStream{bench: bench, ctx: ctx}, nil
}

type insertStream struct {
	bench *Bench
	ctx   context.Context

	uploadID string
	spec     *pb.InsertObjectSpec
	buffer   []byte
	base     int64
	frames   int
	finished bool
	dropped  bool
	sendErr  error
}

func (stream *insertStream) Context() context.Context { return stream.ctx }

func (stream *insertStream) Send(frame *pb.InsertObjectRequest) error {
	stream.bench.mu.Lock()
	defer stream.bench.mu.Unlock()

	if stream.dropped || stream.finished {
		return io.EOF
	}

	fail := func(code codes.Code, format string, args ...interface{}) error {
		stream.dropped = true
		stream.sendErr = status.Errorf(code, format, args...)
		return io.EOF
	}

	if stream.bench.DropAfterFrames > 0 && stream.frames >= stream.bench.DropAfterFrames {
		return fail(codes.Unavailable, "stream dropped by fault injection")
	}

	if stream.frames == 0 {
		stream.base = frame.WriteOffset
		stream.uploadID = frame.UploadId
		stream.spec = frame.Spec
		if frame.UploadId != "" {
			up, ok := stream.bench.uploads[frame.UploadId]
			if !ok {
				return fail(codes.NotFound, "unknown upload id %q", frame.UploadId)
			}
			if frame.WriteOffset != int64(len(up.data)) {
				return fail(codes.InvalidArgument, "write offset %d does not match committed size %d", frame.WriteOffset, len(up.data))
			}
			if stream.spec == nil {
				stream.spec = up.spec
			}
		} else if frame.Spec == nil || frame.Spec.Resource == nil {
			return fail(codes.InvalidArgument, "first frame is missing the object spec")
		}
	} else {
		if frame.Spec != nil || frame.ObjectChecksums != nil {
			return fail(codes.InvalidArgument, "object spec re-specified after the first frame")
		}
		if frame.WriteOffset != stream.base+int64(len(stream.buffer)) {
			return fail(codes.InvalidArgument, "unexpected write offset %d", frame.WriteOffset)
		}
	}

	data := frame.GetChecksummedData()
	if data == nil {
		return fail(codes.InvalidArgument, "frame is missing checksummed data")
	}
	if crc := data.GetCrc32C(); crc != nil {
		if actual := crc32.Checksum(data.Content, castagnoli); actual != crc.Value {
			return fail(codes.InvalidArgument, "frame checksum mismatch")
		}
	}

	stream.buffer = append(stream.buffer, data.Content...)
	stream.frames++

	// frames are durable as soon as they are accepted
	if stream.uploadID != "" {
		up := stream.bench.uploads[stream.uploadID]
		up.data = append(up.data[:stream.base], stream.buffer...)
	}

	if frame.FinishWrite {
		stream.finished = true
	}
	return nil
}

func (stream *insertStream) CloseAndRecv() (*pb.Object, error) {
	stream.bench.mu.Lock()
	defer stream.bench.mu.Unlock()

	if stream.sendErr != nil {
		return nil, stream.sendErr
	}
	if !stream.finished {
		return nil, status.Error(codes.Unavailable, "stream closed before the final frame")
	}

	spec := stream.spec
	if spec == nil || spec.Resource == nil {
		return nil, status.Error(codes.InvalidArgument, "missing object spec")
	}

	var data []byte
	if stream.uploadID != "" {
		up := stream.bench.uploads[stream.uploadID]
		up.complete = true
		data = up.data
	} else {
		data = stream.buffer
	}

	bench := stream.bench
	bench.generation++
	meta := &pb.Object{
		Bucket:      spec.Resource.Bucket,
		Name:        spec.Resource.Name,
		ContentType: spec.Resource.ContentType,
		Generation:  bench.generation,
		Size_:       int64(len(data)),
		Crc32C:      &types.UInt32Value{Value: crc32.Checksum(data, castagnoli)},
	}
	bench.objects[objectKey(meta.Bucket, meta.Name)] = &object{data: data, meta: meta}
	return meta, nil
}

// GetObjectMedia implements pb.ObjectStoreClient.
func (bench *Bench) GetObjectMedia(ctx context.Context, in *pb.GetObjectMediaRequest, opts ...grpc.CallOption) (pb.ObjectStore_GetObjectMediaClient, error) {
	bench.mu.Lock()
	defer bench.mu.Unlock()
	bench.readOpens++

	stored, ok := bench.objects[objectKey(in.Bucket, in.Object)]
	if !ok {
		return nil, status.Errorf(codes.NotFound, "object %s/%s not found", in.Bucket, in.Object)
	}
	if in.Generation != 0 && in.Generation != stored.meta.Generation {
		return nil, status.Errorf(codes.NotFound, "generation %d not found", in.Generation)
	}

	total := int64(len(stored.data))
	begin := in.ReadOffset
	if begin < 0 {
		// negative offset means the last -offset bytes
		begin = total + begin
		if begin < 0 {
			begin = 0
		}
	}
	if begin > total {
		return nil, status.Errorf(codes.OutOfRange, "offset %d beyond object size %d", in.ReadOffset, total)
	}
	end := total
	if in.ReadLimit > 0 && begin+in.ReadLimit < end {
		end = begin + in.ReadLimit
	}

	blockSize := bench.ReadBlockSize
	if blockSize <= 0 {
		blockSize = DefaultReadBlockSize
	}

	return &readStream{
		ctx:       ctx,
		meta:      stored.meta,
		data:      stored.data[begin:end],
		blockSize: blockSize,
		corrupt:   bench.CorruptReads,
	}, nil
}

type readStream struct {
	ctx       context.Context
	meta      *pb.Object
	data      []byte
	blockSize int
	corrupt   bool
	sentMeta  bool
	closed    bool
}

func (stream *readStream) Context() context.Context { return stream.ctx }

func (stream *readStream) CloseSend() error {
	stream.closed = true
	return nil
}

func (stream *readStream) Recv() (*pb.GetObjectMediaResponse, error) {
	if err := stream.ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}
	if len(stream.data) == 0 && stream.sentMeta {
		return nil, io.EOF
	}

	n := stream.blockSize
	if n > len(stream.data) {
		n = len(stream.data)
	}
	block := stream.data[:n]
	stream.data = stream.data[n:]

	crc := crc32.Checksum(block, castagnoli)
	if stream.corrupt && len(block) > 0 {
		tampered := append([]byte(nil), block...)
		tampered[0] ^= 0xff
		block = tampered
	}

	response := &pb.GetObjectMediaResponse{
		ChecksummedData: &pb.ChecksummedData{
			Content: block,
			Crc32C:  &types.UInt32Value{Value: crc},
		},
	}
	if !stream.sentMeta {
		response.Metadata = stream.meta
		stream.sentMeta = true
	}
	return response, nil
}

var _ pb.ObjectStoreClient = (*Bench)(nil)
