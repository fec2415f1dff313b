// Copyright (C) 2019 Shoal Labs, Inc.
// See LICENSE for copying information.

package objectstore

import (
	"crypto/md5"
	"encoding/hex"

	"github.com/gogo/protobuf/types"

	"github.com/shoal-io/shoal/pkg/pb"
)

// ACLContext selects which ACL family a predefined ACL name applies to.
type ACLContext int

// predefined ACL contexts
const (
	ACLBucket ACLContext = iota
	ACLObject
	ACLDefaultObject
)

// PredefinedACL names a canned ACL together with the context it applies to.
// The context is explicit, it is never inferred from the request type.
type PredefinedACL struct {
	Context ACLContext
	Name    string
}

// UploadOptions are the caller-supplied parameters for one object write.
type UploadOptions struct {
	Bucket      string
	Object      string
	ContentType string

	PredefinedACL *PredefinedACL

	// IfGenerationMatch is only sent when HasGenerationMatch is set,
	// zero is a valid generation.
	IfGenerationMatch  int64
	HasGenerationMatch bool

	// CRC32C and ContentHash are caller-facing encodings, as produced by
	// EncodeCRC32C and EncodeContentHash. When empty they are computed
	// from the payload.
	CRC32C      string
	ContentHash string
}

// insertSpec translates the options into the wire object specification.
func (opts *UploadOptions) insertSpec() (*pb.InsertObjectSpec, error) {
	spec := &pb.InsertObjectSpec{
		Resource: &pb.Object{
			Bucket:      opts.Bucket,
			Name:        opts.Object,
			ContentType: opts.ContentType,
		},
	}
	if opts.PredefinedACL != nil {
		if opts.PredefinedACL.Context != ACLObject {
			return nil, Error.New("predefined ACL context %d does not apply to an object write", opts.PredefinedACL.Context)
		}
		spec.PredefinedAcl = opts.PredefinedACL.Name
	}
	if opts.HasGenerationMatch {
		spec.IfGenerationMatch = &types.Int64Value{Value: opts.IfGenerationMatch}
	}
	return spec, nil
}

// objectChecksums translates the caller checksums, or computes them from the
// payload, into their wire forms.
func (opts *UploadOptions) objectChecksums(payload []byte) (*pb.ObjectChecksums, error) {
	checksums := &pb.ObjectChecksums{}

	if opts.CRC32C != "" {
		crc, err := DecodeCRC32C(opts.CRC32C)
		if err != nil {
			return nil, err
		}
		checksums.Crc32C = &types.UInt32Value{Value: crc}
	} else {
		checksums.Crc32C = &types.UInt32Value{Value: ChecksumFrame(payload)}
	}

	if opts.ContentHash != "" {
		wire, err := DecodeContentHash(opts.ContentHash)
		if err != nil {
			return nil, err
		}
		checksums.Md5Hash = wire
	} else {
		sum := md5.Sum(payload)
		checksums.Md5Hash = hex.EncodeToString(sum[:])
	}

	return checksums, nil
}

// ReadRequest are the caller-supplied parameters for one object read.
type ReadRequest struct {
	Bucket     string
	Object     string
	Generation int64

	// Begin and End select the explicit half-open range [Begin, End) when
	// End is set; Begin alone shifts the starting point forward.
	Begin int64
	End   int64

	// Suffix requests the last Suffix bytes of the object. Zero is
	// rejected locally: on the wire zero is indistinguishable from unset
	// and the server would return the whole object.
	Suffix    int64
	HasSuffix bool
}

// toProto translates the three range modes into the wire's signed
// offset/limit pair.
func (req *ReadRequest) toProto() (*pb.GetObjectMediaRequest, error) {
	if req.HasSuffix && req.Suffix == 0 {
		return nil, ErrInvalidRange.New("zero-length suffix read")
	}

	r := &pb.GetObjectMediaRequest{
		Bucket:     req.Bucket,
		Object:     req.Object,
		Generation: req.Generation,
	}
	if req.End > 0 {
		r.ReadOffset = req.Begin
		r.ReadLimit = req.End - req.Begin
	}
	if req.HasSuffix {
		// a negative offset means "the last -offset bytes"
		r.ReadOffset = -req.Suffix
	}
	if req.End == 0 && req.Begin > r.ReadOffset {
		// the later starting point wins and an existing limit shrinks,
		// never grows
		if r.ReadLimit > 0 {
			r.ReadLimit = req.Begin - r.ReadOffset
		}
		r.ReadOffset = req.Begin
	}
	return r, nil
}
