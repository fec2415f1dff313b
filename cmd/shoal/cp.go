// Copyright (C) 2019 Shoal Labs, Inc.
// See LICENSE for copying information.

package main

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/cheggaaa/pb"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shoal-io/shoal/pkg/objectstore"
	"github.com/shoal-io/shoal/pkg/process"
	"github.com/shoal-io/shoal/pkg/resumedb"
)

// uploadAttempts bounds the caller-driven resume loop.
const uploadAttempts = 5

var (
	readBegin  int64
	readEnd    int64
	readSuffix int64
)

func init() {
	cp := &cobra.Command{
		Use:   "cp SOURCE DESTINATION",
		Short: "Copies a file to or from the object store",
		Args:  cobra.ExactArgs(2),
		RunE:  cpMain,
	}
	cp.Flags().Int64Var(&readBegin, "begin", 0, "first byte to read")
	cp.Flags().Int64Var(&readEnd, "end", 0, "read up to this byte, exclusive")
	cp.Flags().Int64Var(&readSuffix, "suffix", -1, "read only the last N bytes")
	RootCmd.AddCommand(cp)
}

func cpMain(cmd *cobra.Command, args []string) (err error) {
	ctx := process.Ctx(cmd)

	log, err := process.NewLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	client, err := objectstore.Dial(ctx, log, objectstore.Config{FrameSize: cfg.ChunkSize})
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	switch {
	case !isRemote(args[0]) && isRemote(args[1]):
		return upload(ctx, log, client, args[0], args[1])
	case isRemote(args[0]) && !isRemote(args[1]):
		return download(ctx, client, args[0], args[1])
	}
	return fmt.Errorf("exactly one of SOURCE and DESTINATION must be a sh:// path")
}

func upload(ctx context.Context, log *zap.Logger, client *objectstore.Client, source, destination string) error {
	bucket, object, err := parseRemote(destination)
	if err != nil {
		return err
	}

	payload, err := ioutil.ReadFile(source)
	if err != nil {
		return err
	}

	sessions, err := resumedb.Open(log, cfg.ResumeDB)
	if err != nil {
		return err
	}
	defer func() { _ = sessions.Close() }()

	session, err := openSession(ctx, client, sessions, bucket, object)
	if err != nil {
		return err
	}

	bar := pb.New64(int64(len(payload))).SetUnits(pb.U_BYTES)
	bar.Start()
	defer bar.Finish()

	// retry is caller-driven: refresh the committed size from the server
	// and resume from there
	for attempt := 0; ; attempt++ {
		bar.Set64(session.CommittedSize())

		meta, err := session.Upload(ctx, payload)
		if err == nil {
			bar.Set64(int64(len(payload)))
			if err := sessions.Delete(bucket, object); err != nil {
				return err
			}
			fmt.Printf("uploaded %s to sh://%s/%s (generation %d)\n", source, meta.Bucket, meta.Name, meta.Generation)
			return nil
		}
		if attempt >= uploadAttempts-1 || ctx.Err() != nil {
			return err
		}

		log.Warn("upload interrupted, resuming", zap.Error(err))
		if _, err := session.QueryStatus(ctx); err != nil {
			return err
		}
	}
}

// openSession resumes a recorded session for the destination, or starts a
// fresh one and records it.
func openSession(ctx context.Context, client *objectstore.Client, sessions *resumedb.DB, bucket, object string) (*objectstore.ResumableSession, error) {
	record, err := sessions.Get(bucket, object)
	if err == nil {
		session, err := client.ResumeSession(ctx, record.UploadID)
		if err == nil {
			return session, nil
		}
		if !objectstore.ErrSessionNotFound.Has(err) {
			return nil, err
		}
		// the server no longer knows the identifier, start over
		if err := sessions.Delete(bucket, object); err != nil {
			return nil, err
		}
	} else if !resumedb.ErrNotFound.Has(err) {
		return nil, err
	}

	session, err := client.NewResumableSession(ctx, objectstore.UploadOptions{
		Bucket: bucket,
		Object: object,
	})
	if err != nil {
		return nil, err
	}

	err = sessions.Put(resumedb.Record{
		Bucket:   bucket,
		Object:   object,
		UploadID: session.UploadID(),
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func download(ctx context.Context, client *objectstore.Client, source, destination string) error {
	bucket, object, err := parseRemote(source)
	if err != nil {
		return err
	}

	req := objectstore.ReadRequest{
		Bucket: bucket,
		Object: object,
		Begin:  readBegin,
		End:    readEnd,
	}
	if readSuffix >= 0 {
		req.Suffix = readSuffix
		req.HasSuffix = true
	}

	cursor, err := client.ReadObject(ctx, req)
	if err != nil {
		return err
	}
	defer func() { _ = cursor.Close() }()

	file, err := os.Create(destination)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	bar := pb.New64(0).SetUnits(pb.U_BYTES)
	bar.Start()
	defer bar.Finish()

	n, err := io.Copy(file, bar.NewProxyReader(cursor))
	if err != nil {
		return err
	}

	fmt.Printf("downloaded %d bytes to %s\n", n, destination)
	return nil
}
