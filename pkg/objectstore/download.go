// Copyright (C) 2019 Shoal Labs, Inc.
// See LICENSE for copying information.

package objectstore

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/shoal-io/shoal/pkg/pb"
)

// Download is a lazy, pull-based view of one read stream. It owns the
// underlying stream for its lifetime and is not safe for concurrent use.
type Download struct {
	log    *zap.Logger
	stream pb.ObjectStore_GetObjectMediaClient
	cancel func()

	metadata *pb.Object

	buf []byte
	err error
}

// ReadObject opens one read stream for the requested range. Ranges the wire
// cannot express are rejected locally, before any network call. No payload
// is pulled from the server until the first Read.
func (client *Client) ReadObject(ctx context.Context, req ReadRequest) (_ *Download, err error) {
	defer mon.Task()(&ctx)(&err)

	request, err := req.toProto()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	stream, err := client.client.GetObjectMedia(ctx, request)
	if err != nil {
		cancel()
		return nil, Error.Wrap(err)
	}

	client.log.Debug("read stream opened",
		zap.String("bucket", req.Bucket),
		zap.String("object", req.Object),
		zap.Int64("read-offset", request.ReadOffset),
		zap.Int64("read-limit", request.ReadLimit))

	return &Download{
		log:    client.log,
		stream: stream,
		cancel: cancel,
	}, nil
}

// Read implements io.Reader, blocking until the server produces the next
// block or the stream ends with io.EOF.
func (download *Download) Read(p []byte) (n int, _ error) {
	if download.err != nil {
		return 0, download.err
	}
	if len(download.buf) == 0 {
		download.buf, download.err = download.next()
	}

	n = copy(p, download.buf)
	download.buf = download.buf[n:]
	return n, download.err
}

// next pulls stream messages until one carries payload.
func (download *Download) next() ([]byte, error) {
	for {
		response, err := download.stream.Recv()
		if err != nil {
			if err == io.EOF {
				return nil, io.EOF
			}
			return nil, Error.Wrap(err)
		}

		if download.metadata == nil && response.GetMetadata() != nil {
			download.metadata = response.GetMetadata()
		}

		data := response.GetChecksummedData()
		if data == nil {
			continue
		}
		if crc := data.GetCrc32C(); crc != nil {
			if actual := ChecksumFrame(data.GetContent()); actual != crc.Value {
				return nil, ErrChecksumMismatch.New("block checksum %08x, expected %08x", actual, crc.Value)
			}
		}
		if len(data.GetContent()) > 0 {
			return data.GetContent(), nil
		}
	}
}

// Metadata returns the object description, once the server has sent it.
func (download *Download) Metadata() *pb.Object { return download.metadata }

// Close releases the underlying stream. Cancelling a partially consumed
// download is not an error.
func (download *Download) Close() error {
	download.cancel()
	return nil
}
