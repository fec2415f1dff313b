// Copyright (C) 2019 Shoal Labs, Inc.
// See LICENSE for copying information.

// Package resumedb persists resumable upload identifiers so an interrupted
// process can resume its sessions instead of restarting them.
package resumedb

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/boltdb/bolt"
	"github.com/zeebo/errs"
	"go.uber.org/zap"
)

var (
	// Error is the resumedb error class.
	Error = errs.Class("resumedb error")

	// ErrNotFound means no record exists for the key.
	ErrNotFound = errs.Class("record not found")
)

var defaultTimeout = 1 * time.Second

const (
	// fileMode sets permissions so only the owner can read and write
	fileMode = 0600
)

var sessionsBucket = []byte("sessions")

// Record ties a destination to its pending upload identifier.
type Record struct {
	Bucket    string    `json:"bucket"`
	Object    string    `json:"object"`
	UploadID  string    `json:"upload_id"`
	CreatedAt time.Time `json:"created_at"`
}

// DB is a boltdb-backed store of pending resumable sessions.
type DB struct {
	log *zap.Logger
	db  *bolt.DB
}

// Open creates or opens the database at path, creating the parent
// directory when needed.
func Open(log *zap.Logger, path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, Error.Wrap(err)
	}

	db, err := bolt.Open(path, fileMode, &bolt.Options{Timeout: defaultTimeout})
	if err != nil {
		return nil, Error.Wrap(err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionsBucket)
		return err
	})
	if err != nil {
		return nil, Error.Wrap(errs.Combine(err, db.Close()))
	}

	return &DB{log: log, db: db}, nil
}

// Close closes the database.
func (db *DB) Close() error {
	return Error.Wrap(db.db.Close())
}

func recordKey(bucket, object string) []byte {
	return []byte(bucket + "/" + object)
}

// Put stores the pending session for a destination, replacing any previous
// record.
func (db *DB) Put(record Record) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	value, err := json.Marshal(record)
	if err != nil {
		return Error.Wrap(err)
	}

	return Error.Wrap(db.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionsBucket).Put(recordKey(record.Bucket, record.Object), value)
	}))
}

// Get returns the pending session for a destination.
func (db *DB) Get(bucket, object string) (Record, error) {
	var record Record
	err := db.db.View(func(tx *bolt.Tx) error {
		value := tx.Bucket(sessionsBucket).Get(recordKey(bucket, object))
		if value == nil {
			return ErrNotFound.New("%s/%s", bucket, object)
		}
		return json.Unmarshal(value, &record)
	})
	if err != nil {
		if ErrNotFound.Has(err) {
			return Record{}, err
		}
		return Record{}, Error.Wrap(err)
	}
	return record, nil
}

// Delete removes the record for a destination, usually after the upload
// completed or the server rejected the identifier.
func (db *DB) Delete(bucket, object string) error {
	return Error.Wrap(db.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionsBucket).Delete(recordKey(bucket, object))
	}))
}

// List returns all pending sessions.
func (db *DB) List() ([]Record, error) {
	var records []Record
	err := db.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionsBucket).ForEach(func(key, value []byte) error {
			var record Record
			if err := json.Unmarshal(value, &record); err != nil {
				db.log.Warn("skipping undecodable record", zap.ByteString("key", key), zap.Error(err))
				return nil
			}
			records = append(records, record)
			return nil
		})
	})
	if err != nil {
		return nil, Error.Wrap(err)
	}
	return records, nil
}
