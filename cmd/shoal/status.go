// Copyright (C) 2019 Shoal Labs, Inc.
// See LICENSE for copying information.

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shoal-io/shoal/pkg/objectstore"
	"github.com/shoal-io/shoal/pkg/process"
	"github.com/shoal-io/shoal/pkg/resumedb"
)

func init() {
	RootCmd.AddCommand(&cobra.Command{
		Use:   "status [sh://bucket/object]",
		Short: "Shows the progress of pending resumable uploads",
		Args:  cobra.MaximumNArgs(1),
		RunE:  statusMain,
	})
}

func statusMain(cmd *cobra.Command, args []string) (err error) {
	ctx := process.Ctx(cmd)

	log, err := process.NewLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	sessions, err := resumedb.Open(log, cfg.ResumeDB)
	if err != nil {
		return err
	}
	defer func() { _ = sessions.Close() }()

	var records []resumedb.Record
	if len(args) == 1 {
		bucket, object, err := parseRemote(args[0])
		if err != nil {
			return err
		}
		record, err := sessions.Get(bucket, object)
		if err != nil {
			return err
		}
		records = append(records, record)
	} else {
		records, err = sessions.List()
		if err != nil {
			return err
		}
	}

	if len(records) == 0 {
		fmt.Println("no pending uploads")
		return nil
	}

	client, err := objectstore.Dial(ctx, log, objectstore.Config{FrameSize: cfg.ChunkSize})
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	defer func() { _ = w.Flush() }()
	fmt.Fprintln(w, "PATH\tUPLOAD ID\tCOMMITTED\tSTATE")

	for _, record := range records {
		session, err := client.ResumeSession(ctx, record.UploadID)
		if err != nil {
			if objectstore.ErrSessionNotFound.Has(err) {
				fmt.Fprintf(w, "sh://%s/%s\t%s\t-\texpired\n", record.Bucket, record.Object, record.UploadID)
				continue
			}
			return err
		}
		fmt.Fprintf(w, "sh://%s/%s\t%s\t%d\t%s\n",
			record.Bucket, record.Object, record.UploadID,
			session.CommittedSize(), session.State())
	}
	return nil
}
