// Copyright (C) 2019 Shoal Labs, Inc.
// See LICENSE for copying information.

package objectstore

import (
	"context"
	"io"

	"github.com/gogo/protobuf/types"
	"github.com/zeebo/errs"
	"go.uber.org/zap"

	"github.com/shoal-io/shoal/pkg/pb"
)

// upstream is the minimal client view of one write stream.
type upstream interface {
	Send(*pb.InsertObjectRequest) error
	CloseAndRecv() (*pb.Object, error)
	Context() context.Context
}

// Upload drives a single write stream: it slices the payload into bounded
// frames, attaches per-frame checksums and marks the final frame.
type Upload struct {
	log       *zap.Logger
	stream    upstream
	template  *pb.InsertObjectRequest
	frameSize int64
	offset    int64

	// when there's a send error the stream has closed from the other
	// side; the authoritative status comes from CloseAndRecv
	sendError error
}

func newUpload(log *zap.Logger, stream upstream, template *pb.InsertObjectRequest, base, frameSize int64) *Upload {
	return &Upload{
		log:       log,
		stream:    stream,
		template:  template,
		frameSize: frameSize,
		offset:    base,
	}
}

// WriteAll streams payload until exhaustion or failure and returns the
// server's final object description. The server's response, not any locally
// accumulated state, is the authoritative result.
func (upload *Upload) WriteAll(ctx context.Context, payload []byte) (_ *pb.Object, err error) {
	defer mon.Task()(&ctx)(&err)

	total := int64(len(payload))
	sent := int64(0)

	// This loop must run at least once: an empty object still needs one
	// finalizing write.
	for {
		n := total - sent
		if n > upload.frameSize {
			n = upload.frameSize
		}
		content := payload[sent : sent+n]

		frame := upload.template
		frame.WriteOffset = upload.offset
		frame.ChecksummedData = &pb.ChecksummedData{
			Content: content,
			Crc32C:  &types.UInt32Value{Value: ChecksumFrame(content)},
		}
		finish := sent+n >= total
		frame.FinishWrite = finish

		if err := upload.stream.Send(frame); err != nil {
			upload.sendError = err
			break
		}

		// the object spec and checksums may only ride the first frame
		frame.Spec = nil
		frame.ObjectChecksums = nil

		upload.offset += n
		sent += n
		if finish {
			break
		}
	}

	response, closeErr := upload.stream.CloseAndRecv()
	if closeErr != nil {
		return nil, Error.Wrap(errs.Combine(ignoreEOF(upload.sendError), closeErr))
	}

	upload.log.Debug("upload stream finished",
		zap.Int64("bytes", sent),
		zap.Int64("offset", upload.offset))
	return response, nil
}

// ignoreEOF drops the io.EOF a Send returns when the server has already
// closed the stream, it carries no information beyond the close status.
func ignoreEOF(err error) error {
	if err == io.EOF {
		return nil
	}
	return err
}

// PutObject uploads payload as a single non-resumable write.
func (client *Client) PutObject(ctx context.Context, opts UploadOptions, payload []byte) (_ *pb.Object, err error) {
	defer mon.Task()(&ctx)(&err)

	spec, err := opts.insertSpec()
	if err != nil {
		return nil, err
	}
	checksums, err := opts.objectChecksums(payload)
	if err != nil {
		return nil, err
	}

	stream, err := client.client.InsertObject(ctx)
	if err != nil {
		return nil, Error.Wrap(err)
	}

	first := &pb.InsertObjectRequest{
		Spec:            spec,
		ObjectChecksums: checksums,
	}
	upload := newUpload(client.log, stream, first, 0, client.frameSize())
	return upload.WriteAll(ctx, payload)
}
