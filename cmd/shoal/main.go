// Copyright (C) 2019 Shoal Labs, Inc.
// See LICENSE for copying information.

package main

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/shoal-io/shoal/internal/memory"
	"github.com/shoal-io/shoal/pkg/process"
)

// Config are the flags shared by all subcommands.
type Config struct {
	ChunkSize memory.Size
	ResumeDB  string
}

var cfg Config

// RootCmd represents the base CLI command when called without any
// subcommands.
var RootCmd = &cobra.Command{
	Use:   "shoal",
	Short: "The Shoal object store client",
	Args:  cobra.OnlyValidArgs,
}

func init() {
	cfg.ChunkSize = 0 // zero means the transport maximum

	RootCmd.PersistentFlags().Var(&cfg.ChunkSize, "chunk-size", "maximum payload bytes per write frame")
	RootCmd.PersistentFlags().StringVar(&cfg.ResumeDB, "resume-db", defaultResumeDB(), "path to the resumable session database")
}

func defaultResumeDB() string {
	home, err := homedir.Dir()
	if err != nil {
		log.Println(err)
		return "resume.db"
	}
	return filepath.Join(home, ".shoal", "resume.db")
}

// parseRemote splits a sh://bucket/object path.
func parseRemote(s string) (bucket, object string, err error) {
	const scheme = "sh://"
	if !strings.HasPrefix(s, scheme) {
		return "", "", fmt.Errorf("remote path must use format sh://bucket/object, got %q", s)
	}
	parts := strings.SplitN(strings.TrimPrefix(s, scheme), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("remote path must use format sh://bucket/object, got %q", s)
	}
	return parts[0], parts[1], nil
}

func isRemote(s string) bool { return strings.HasPrefix(s, "sh://") }

func main() {
	process.Execute(RootCmd)
}
