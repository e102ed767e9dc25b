// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"sync"
	"time"

	"github.com/SoftbearStudios/regiongen/cloud/fs"
	"github.com/SoftbearStudios/regiongen/region"
	"github.com/SoftbearStudios/regiongen/region/render"
)

func main() {
	var (
		cpuProfile   string
		settingsPath string
		layerName    string
		out          string
		s3Region     string
		s3Bucket     string
		seed         int64
		size         int
		workers      int
	)

	flag.StringVar(&cpuProfile, "cpuprofile", "", "write cpu profile to `file`")
	flag.StringVar(&settingsPath, "settings", "", "yaml settings `file` (default settings if empty)")
	flag.StringVar(&layerName, "layer", "biome", "layer to render")
	flag.StringVar(&out, "out", "out.png", "output `file`")
	flag.StringVar(&s3Region, "s3-region", "us-east-1", "AWS region of -s3-bucket")
	flag.StringVar(&s3Bucket, "s3-bucket", "", "also upload the image to this bucket")
	flag.Int64Var(&seed, "seed", 56, "world seed")
	flag.IntVar(&size, "size", 512, "width and height in grid coordinates, centered on the origin")
	flag.IntVar(&workers, "workers", runtime.NumCPU(), "number of rendering goroutines")
	flag.Parse()

	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	settings := region.DefaultSettings()
	if settingsPath != "" {
		var err error
		if settings, err = region.LoadSettings(settingsPath); err != nil {
			log.Fatal(err)
		}
	}

	layer, err := render.ParseLayer(layerName)
	if err != nil {
		log.Fatal(err)
	}

	g, err := region.New(seed, settings)
	if err != nil {
		log.Fatal(err)
	}

	start := time.Now()
	img := run(g, layer, size, workers)
	fmt.Printf("rendered %dx%d %s in %s\n", size, size, layer, time.Since(start))
	g.Debug()

	var buf bytes.Buffer
	if err = png.Encode(&buf, img); err != nil {
		log.Fatal(err)
	}

	if err = os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		log.Fatal(err)
	}

	if s3Bucket != "" {
		s3, err := fs.NewS3Filesystem(s3Region, s3Bucket, "")
		if err != nil {
			log.Fatal(err)
		}
		name := fmt.Sprintf("render/%d/%s.png", seed, layer)
		if err = s3.UploadStaticFile(name, 3600, buf.Bytes()); err != nil {
			log.Fatal(err)
		}
		log.Println("uploaded", name)
	}
}

// run renders rows on several goroutines, which share the Generator's caches.
func run(g *region.Generator, layer render.Layer, size, workers int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	min := -size / 2

	rows := make(chan int, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range rows {
				render.RenderRow(g, layer, img, min, min+j, j)
			}
		}()
	}

	for j := 0; j < size; j++ {
		rows <- j
	}
	close(rows)
	wg.Wait()

	return img
}
