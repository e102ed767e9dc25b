// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	_ "net/http/pprof"

	"github.com/SoftbearStudios/regiongen/cloud/fs"
	"github.com/SoftbearStudios/regiongen/region"
	"github.com/SoftbearStudios/regiongen/viz"
	"golang.org/x/net/netutil"
)

func main() {
	var (
		port           int
		maxConnections int
		seed           int64
		settingsPath   string
		s3Region       string
		s3Bucket       string
		s3Prefix       string
		localDir       string
	)

	flag.IntVar(&port, "port", 8193, "http service port")
	flag.IntVar(&maxConnections, "max-connections", 64, "maximum number of inbound TCP connections")
	flag.Int64Var(&seed, "seed", 56, "world seed")
	flag.StringVar(&settingsPath, "settings", "", "yaml settings `file` (default settings if empty)")
	flag.StringVar(&s3Region, "s3-region", "us-east-1", "AWS region of -s3-bucket")
	flag.StringVar(&s3Bucket, "s3-bucket", "", "upload dumps to this bucket")
	flag.StringVar(&s3Prefix, "s3-prefix", "regiongen/", "key prefix of uploaded dumps")
	flag.StringVar(&localDir, "local-dir", "", "upload dumps to this directory instead of S3")
	flag.Parse()

	settings := region.DefaultSettings()
	if settingsPath != "" {
		var err error
		if settings, err = region.LoadSettings(settingsPath); err != nil {
			log.Fatal(err)
		}
	}

	g, err := region.New(seed, settings)
	if err != nil {
		log.Fatal(err)
	}

	var filesystem fs.Filesystem
	switch {
	case localDir != "":
		if filesystem, err = fs.NewLocalFilesystem(localDir); err != nil {
			log.Fatal(err)
		}
	case s3Bucket != "":
		filesystem, err = fs.NewS3Filesystem(s3Region, s3Bucket, s3Prefix)
		if err != nil {
			// Uploads are not required for the server to function, just log an error
			log.Printf("S3 error: %v\n", err)
			filesystem = nil
		}
	}

	server := viz.NewServer(g, filesystem)
	go server.Run(nil)

	// pprof registers itself on the default mux
	http.Handle("/", server.Handler())

	l, err := net.Listen("tcp", fmt.Sprint(":", port))
	if err != nil {
		log.Fatalf("Listen: %v", err)
	}
	defer l.Close()

	l = netutil.LimitListener(l, maxConnections)

	log.Printf("region visualizer started on :%d (seed %d)\n", port, seed)
	log.Fatal("Serve: ", http.Serve(l, nil))
}
