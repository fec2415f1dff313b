// Copyright (C) 2019 Shoal Labs, Inc.
// See LICENSE for copying information.

// Package pb contains the wire messages and the gRPC client binding for the
// shoal.v1.ObjectStore transfer protocol.
package pb

import (
	proto "github.com/gogo/protobuf/proto"
	types "github.com/gogo/protobuf/types"
)

func init() {
	proto.RegisterType((*Object)(nil), "shoal.v1.Object")
	proto.RegisterType((*InsertObjectSpec)(nil), "shoal.v1.InsertObjectSpec")
	proto.RegisterType((*ChecksummedData)(nil), "shoal.v1.ChecksummedData")
	proto.RegisterType((*ObjectChecksums)(nil), "shoal.v1.ObjectChecksums")
	proto.RegisterType((*InsertObjectRequest)(nil), "shoal.v1.InsertObjectRequest")
	proto.RegisterType((*GetObjectMediaRequest)(nil), "shoal.v1.GetObjectMediaRequest")
	proto.RegisterType((*GetObjectMediaResponse)(nil), "shoal.v1.GetObjectMediaResponse")
	proto.RegisterType((*StartResumableWriteRequest)(nil), "shoal.v1.StartResumableWriteRequest")
	proto.RegisterType((*StartResumableWriteResponse)(nil), "shoal.v1.StartResumableWriteResponse")
	proto.RegisterType((*QueryWriteStatusRequest)(nil), "shoal.v1.QueryWriteStatusRequest")
	proto.RegisterType((*QueryWriteStatusResponse)(nil), "shoal.v1.QueryWriteStatusResponse")
}

// Object is the server's description of a stored object. The server returns
// it as the final message of a write stream and as the first message of a
// read stream.
type Object struct {
	Bucket      string             `protobuf:"bytes,1,opt,name=bucket,proto3" json:"bucket,omitempty"`
	Name        string             `protobuf:"bytes,2,opt,name=name,proto3" json:"name,omitempty"`
	Generation  int64              `protobuf:"varint,3,opt,name=generation,proto3" json:"generation,omitempty"`
	Size_       int64              `protobuf:"varint,4,opt,name=size,proto3" json:"size,omitempty"`
	ContentType string             `protobuf:"bytes,5,opt,name=content_type,json=contentType,proto3" json:"content_type,omitempty"`
	Crc32C      *types.UInt32Value `protobuf:"bytes,6,opt,name=crc32c,proto3" json:"crc32c,omitempty"`
	Md5Hash     string             `protobuf:"bytes,7,opt,name=md5_hash,json=md5Hash,proto3" json:"md5_hash,omitempty"`
}

func (m *Object) Reset()         { *m = Object{} }
func (m *Object) String() string { return proto.CompactTextString(m) }
func (*Object) ProtoMessage()    {}

func (m *Object) GetBucket() string {
	if m != nil {
		return m.Bucket
	}
	return ""
}

func (m *Object) GetName() string {
	if m != nil {
		return m.Name
	}
	return ""
}

func (m *Object) GetGeneration() int64 {
	if m != nil {
		return m.Generation
	}
	return 0
}

func (m *Object) GetSize() int64 {
	if m != nil {
		return m.Size_
	}
	return 0
}

func (m *Object) GetCrc32C() *types.UInt32Value {
	if m != nil {
		return m.Crc32C
	}
	return nil
}

func (m *Object) GetMd5Hash() string {
	if m != nil {
		return m.Md5Hash
	}
	return ""
}

// InsertObjectSpec carries the destination and the write preconditions for a
// new object. It is only valid on the first message of a write.
type InsertObjectSpec struct {
	Resource          *Object           `protobuf:"bytes,1,opt,name=resource,proto3" json:"resource,omitempty"`
	PredefinedAcl     string            `protobuf:"bytes,2,opt,name=predefined_acl,json=predefinedAcl,proto3" json:"predefined_acl,omitempty"`
	IfGenerationMatch *types.Int64Value `protobuf:"bytes,3,opt,name=if_generation_match,json=ifGenerationMatch,proto3" json:"if_generation_match,omitempty"`
}

func (m *InsertObjectSpec) Reset()         { *m = InsertObjectSpec{} }
func (m *InsertObjectSpec) String() string { return proto.CompactTextString(m) }
func (*InsertObjectSpec) ProtoMessage()    {}

func (m *InsertObjectSpec) GetResource() *Object {
	if m != nil {
		return m.Resource
	}
	return nil
}

// ChecksummedData is one frame of payload with the checksum of exactly those
// bytes.
type ChecksummedData struct {
	Content []byte             `protobuf:"bytes,1,opt,name=content,proto3" json:"content,omitempty"`
	Crc32C  *types.UInt32Value `protobuf:"bytes,2,opt,name=crc32c,proto3" json:"crc32c,omitempty"`
}

func (m *ChecksummedData) Reset()         { *m = ChecksummedData{} }
func (m *ChecksummedData) String() string { return proto.CompactTextString(m) }
func (*ChecksummedData) ProtoMessage()    {}

func (m *ChecksummedData) GetContent() []byte {
	if m != nil {
		return m.Content
	}
	return nil
}

func (m *ChecksummedData) GetCrc32C() *types.UInt32Value {
	if m != nil {
		return m.Crc32C
	}
	return nil
}

// ObjectChecksums are the whole-object checksums, valid only on the first
// message of a write.
type ObjectChecksums struct {
	Crc32C  *types.UInt32Value `protobuf:"bytes,1,opt,name=crc32c,proto3" json:"crc32c,omitempty"`
	Md5Hash string             `protobuf:"bytes,2,opt,name=md5_hash,json=md5Hash,proto3" json:"md5_hash,omitempty"`
}

func (m *ObjectChecksums) Reset()         { *m = ObjectChecksums{} }
func (m *ObjectChecksums) String() string { return proto.CompactTextString(m) }
func (*ObjectChecksums) ProtoMessage()    {}

// InsertObjectRequest is a single frame of a write stream. Spec and
// ObjectChecksums may only be set on the first frame; UploadId binds the
// frame to a resumable session.
type InsertObjectRequest struct {
	UploadId        string            `protobuf:"bytes,1,opt,name=upload_id,json=uploadId,proto3" json:"upload_id,omitempty"`
	Spec            *InsertObjectSpec `protobuf:"bytes,2,opt,name=spec,proto3" json:"spec,omitempty"`
	WriteOffset     int64             `protobuf:"varint,3,opt,name=write_offset,json=writeOffset,proto3" json:"write_offset,omitempty"`
	ChecksummedData *ChecksummedData  `protobuf:"bytes,4,opt,name=checksummed_data,json=checksummedData,proto3" json:"checksummed_data,omitempty"`
	ObjectChecksums *ObjectChecksums  `protobuf:"bytes,5,opt,name=object_checksums,json=objectChecksums,proto3" json:"object_checksums,omitempty"`
	FinishWrite     bool              `protobuf:"varint,6,opt,name=finish_write,json=finishWrite,proto3" json:"finish_write,omitempty"`
}

func (m *InsertObjectRequest) Reset()         { *m = InsertObjectRequest{} }
func (m *InsertObjectRequest) String() string { return proto.CompactTextString(m) }
func (*InsertObjectRequest) ProtoMessage()    {}

func (m *InsertObjectRequest) GetWriteOffset() int64 {
	if m != nil {
		return m.WriteOffset
	}
	return 0
}

func (m *InsertObjectRequest) GetChecksummedData() *ChecksummedData {
	if m != nil {
		return m.ChecksummedData
	}
	return nil
}

func (m *InsertObjectRequest) GetFinishWrite() bool {
	if m != nil {
		return m.FinishWrite
	}
	return false
}

// GetObjectMediaRequest selects an object and an optional byte range.
// ReadOffset may be negative to request the last -ReadOffset bytes;
// ReadLimit zero means "to the end of the object".
type GetObjectMediaRequest struct {
	Bucket     string `protobuf:"bytes,1,opt,name=bucket,proto3" json:"bucket,omitempty"`
	Object     string `protobuf:"bytes,2,opt,name=object,proto3" json:"object,omitempty"`
	Generation int64  `protobuf:"varint,3,opt,name=generation,proto3" json:"generation,omitempty"`
	ReadOffset int64  `protobuf:"varint,4,opt,name=read_offset,json=readOffset,proto3" json:"read_offset,omitempty"`
	ReadLimit  int64  `protobuf:"varint,5,opt,name=read_limit,json=readLimit,proto3" json:"read_limit,omitempty"`
}

func (m *GetObjectMediaRequest) Reset()         { *m = GetObjectMediaRequest{} }
func (m *GetObjectMediaRequest) String() string { return proto.CompactTextString(m) }
func (*GetObjectMediaRequest) ProtoMessage()    {}

// GetObjectMediaResponse is one block of a read stream. Metadata is only set
// on the first message.
type GetObjectMediaResponse struct {
	ChecksummedData *ChecksummedData `protobuf:"bytes,1,opt,name=checksummed_data,json=checksummedData,proto3" json:"checksummed_data,omitempty"`
	Metadata        *Object          `protobuf:"bytes,2,opt,name=metadata,proto3" json:"metadata,omitempty"`
}

func (m *GetObjectMediaResponse) Reset()         { *m = GetObjectMediaResponse{} }
func (m *GetObjectMediaResponse) String() string { return proto.CompactTextString(m) }
func (*GetObjectMediaResponse) ProtoMessage()    {}

func (m *GetObjectMediaResponse) GetChecksummedData() *ChecksummedData {
	if m != nil {
		return m.ChecksummedData
	}
	return nil
}

func (m *GetObjectMediaResponse) GetMetadata() *Object {
	if m != nil {
		return m.Metadata
	}
	return nil
}

// StartResumableWriteRequest asks the server to allocate an upload id.
type StartResumableWriteRequest struct {
	Spec *InsertObjectSpec `protobuf:"bytes,1,opt,name=spec,proto3" json:"spec,omitempty"`
}

func (m *StartResumableWriteRequest) Reset()         { *m = StartResumableWriteRequest{} }
func (m *StartResumableWriteRequest) String() string { return proto.CompactTextString(m) }
func (*StartResumableWriteRequest) ProtoMessage()    {}

// StartResumableWriteResponse carries the server-assigned upload id.
type StartResumableWriteResponse struct {
	UploadId string `protobuf:"bytes,1,opt,name=upload_id,json=uploadId,proto3" json:"upload_id,omitempty"`
}

func (m *StartResumableWriteResponse) Reset()         { *m = StartResumableWriteResponse{} }
func (m *StartResumableWriteResponse) String() string { return proto.CompactTextString(m) }
func (*StartResumableWriteResponse) ProtoMessage()    {}

func (m *StartResumableWriteResponse) GetUploadId() string {
	if m != nil {
		return m.UploadId
	}
	return ""
}

// QueryWriteStatusRequest asks for the progress of a resumable write.
type QueryWriteStatusRequest struct {
	UploadId string `protobuf:"bytes,1,opt,name=upload_id,json=uploadId,proto3" json:"upload_id,omitempty"`
}

func (m *QueryWriteStatusRequest) Reset()         { *m = QueryWriteStatusRequest{} }
func (m *QueryWriteStatusRequest) String() string { return proto.CompactTextString(m) }
func (*QueryWriteStatusRequest) ProtoMessage()    {}

// QueryWriteStatusResponse reports how many bytes the server has durably
// committed and whether the write has finished.
type QueryWriteStatusResponse struct {
	CommittedSize int64 `protobuf:"varint,1,opt,name=committed_size,json=committedSize,proto3" json:"committed_size,omitempty"`
	Complete      bool  `protobuf:"varint,2,opt,name=complete,proto3" json:"complete,omitempty"`
}

func (m *QueryWriteStatusResponse) Reset()         { *m = QueryWriteStatusResponse{} }
func (m *QueryWriteStatusResponse) String() string { return proto.CompactTextString(m) }
func (*QueryWriteStatusResponse) ProtoMessage()    {}

func (m *QueryWriteStatusResponse) GetCommittedSize() int64 {
	if m != nil {
		return m.CommittedSize
	}
	return 0
}

func (m *QueryWriteStatusResponse) GetComplete() bool {
	if m != nil {
		return m.Complete
	}
	return false
}
