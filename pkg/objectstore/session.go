// Copyright (C) 2019 Shoal Labs, Inc.
// See LICENSE for copying information.

package objectstore

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"

	"github.com/shoal-io/shoal/internal/errs2"
	"github.com/shoal-io/shoal/pkg/pb"
)

// SessionState tracks where a resumable session is in its lifecycle.
type SessionState int

// session states
const (
	SessionFresh SessionState = iota
	SessionActive
	SessionDone
	SessionFailed
)

func (state SessionState) String() string {
	switch state {
	case SessionFresh:
		return "fresh"
	case SessionActive:
		return "active"
	case SessionDone:
		return "done"
	case SessionFailed:
		return "failed"
	}
	return "unknown"
}

// UploadStatus is the server-reported progress of a resumable upload.
type UploadStatus struct {
	CommittedSize int64
	Complete      bool
}

// ResumableSession is a server-tracked, identifier-keyed upload that can be
// paused and continued across connection failures. A session owns its state
// exclusively and is not safe for concurrent use.
type ResumableSession struct {
	log    *zap.Logger
	client *Client

	uploadID  string
	spec      *pb.InsertObjectSpec
	committed int64
	state     SessionState
}

// NewResumableSession asks the server to allocate an upload id and returns
// an active session with zero committed bytes.
func (client *Client) NewResumableSession(ctx context.Context, opts UploadOptions) (_ *ResumableSession, err error) {
	defer mon.Task()(&ctx)(&err)

	spec, err := opts.insertSpec()
	if err != nil {
		return nil, err
	}

	response, err := client.client.StartResumableWrite(ctx, &pb.StartResumableWriteRequest{
		Spec: spec,
	})
	if err != nil {
		return nil, Error.Wrap(err)
	}

	client.log.Debug("resumable session started",
		zap.String("upload-id", response.GetUploadId()),
		zap.String("bucket", opts.Bucket),
		zap.String("object", opts.Object))

	return &ResumableSession{
		log:      client.log,
		client:   client,
		uploadID: response.GetUploadId(),
		spec:     spec,
		state:    SessionActive,
	}, nil
}

// ResumeSession binds a session to an existing upload id and queries the
// server for its progress before returning it as usable.
func (client *Client) ResumeSession(ctx context.Context, uploadID string) (_ *ResumableSession, err error) {
	defer mon.Task()(&ctx)(&err)

	session := &ResumableSession{
		log:      client.log,
		client:   client,
		uploadID: uploadID,
		state:    SessionFresh,
	}
	if _, err := session.QueryStatus(ctx); err != nil {
		return nil, err
	}
	return session, nil
}

// UploadID returns the server-assigned identifier of this session.
func (session *ResumableSession) UploadID() string { return session.uploadID }

// CommittedSize returns the bytes the server has acknowledged so far.
func (session *ResumableSession) CommittedSize() int64 { return session.committed }

// State returns the session lifecycle state.
func (session *ResumableSession) State() SessionState { return session.state }

// QueryStatus asks the server how many bytes it has committed. It transfers
// no payload and is safe to call at any time, including after completion.
func (session *ResumableSession) QueryStatus(ctx context.Context) (_ UploadStatus, err error) {
	defer mon.Task()(&ctx)(&err)

	response, err := session.client.client.QueryWriteStatus(ctx, &pb.QueryWriteStatusRequest{
		UploadId: session.uploadID,
	})
	if err != nil {
		if errs2.IsRPC(err, codes.NotFound) {
			return UploadStatus{}, ErrSessionNotFound.Wrap(err)
		}
		return UploadStatus{}, Error.Wrap(err)
	}

	// committed size is only ever advanced by server acknowledgements
	session.committed = response.GetCommittedSize()
	if response.GetComplete() {
		session.state = SessionDone
	} else if session.state == SessionFresh || session.state == SessionFailed {
		session.state = SessionActive
	}

	return UploadStatus{
		CommittedSize: response.GetCommittedSize(),
		Complete:      response.GetComplete(),
	}, nil
}

// Upload streams the payload starting at the server's committed size. Bytes
// the server has already acknowledged are never re-sent and unacknowledged
// bytes are never skipped. On transport failure the session is left failed
// with its committed size untouched; the caller must refresh it through
// QueryStatus or ResumeSession before retrying.
func (session *ResumableSession) Upload(ctx context.Context, payload []byte) (_ *pb.Object, err error) {
	defer mon.Task()(&ctx)(&err)

	if session.state == SessionDone {
		return nil, Error.New("upload %q already complete", session.uploadID)
	}
	if session.committed > int64(len(payload)) {
		return nil, Error.New("server committed %d bytes, payload has only %d", session.committed, len(payload))
	}

	stream, err := session.client.client.InsertObject(ctx)
	if err != nil {
		session.state = SessionFailed
		return nil, Error.Wrap(err)
	}

	first := &pb.InsertObjectRequest{
		UploadId: session.uploadID,
		// after a restore the spec is nil, the server already has it
		Spec: session.spec,
	}
	upload := newUpload(session.log, stream, first, session.committed, session.client.frameSize())

	object, err := upload.WriteAll(ctx, payload[session.committed:])
	if err != nil {
		session.state = SessionFailed
		return nil, err
	}

	session.state = SessionDone
	session.committed = int64(len(payload))
	return object, nil
}
