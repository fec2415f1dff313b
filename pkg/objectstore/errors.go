// Copyright (C) 2019 Shoal Labs, Inc.
// See LICENSE for copying information.

package objectstore

import (
	"github.com/zeebo/errs"
	monkit "gopkg.in/spacemonkeygo/monkit.v2"
)

var (
	mon = monkit.Package()

	// Error is the default objectstore error class.
	Error = errs.Class("objectstore error")

	// ErrSessionNotFound means the server rejected a resume identifier.
	// The identifier is dead, the caller must start a fresh session.
	ErrSessionNotFound = errs.Class("session not found")

	// ErrInvalidRange means a read range was rejected locally, before any
	// network call.
	ErrInvalidRange = errs.Class("invalid range")

	// ErrMalformedChecksum means a checksum received from the server could
	// not be decoded.
	ErrMalformedChecksum = errs.Class("malformed checksum")

	// ErrChecksumMismatch means a decoded checksum disagreed with the
	// checksum of the received bytes.
	ErrChecksumMismatch = errs.Class("checksum mismatch")
)
