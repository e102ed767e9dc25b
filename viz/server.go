// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package viz serves diagnostics of a region.Generator over HTTP and websockets.
package viz

import (
	"bytes"
	"fmt"
	"image/png"
	"log"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/SoftbearStudios/regiongen/cloud/fs"
	"github.com/SoftbearStudios/regiongen/region"
	"github.com/SoftbearStudios/regiongen/region/render"
	"github.com/SoftbearStudios/regiongen/region/river"
)

const (
	statusPeriod = 5 * time.Second

	// Seconds that uploaded dumps may be cached for.
	dumpCache = 3600
)

type Server struct {
	generator *region.Generator
	fs        fs.Filesystem // nil if uploads are disabled
	started   time.Time
	clients   int32

	statusJSON atomic.Value // []byte
}

// Status is served at the index.
type Status struct {
	Seed    int64        `json:"seed"`
	Uptime  float64      `json:"uptime"` // seconds
	Clients int32        `json:"clients"`
	Stats   region.Stats `json:"stats"`
}

// NewServer creates a Server. filesystem may be nil.
func NewServer(generator *region.Generator, filesystem fs.Filesystem) *Server {
	s := &Server{
		generator: generator,
		fs:        filesystem,
		started:   time.Now(),
	}
	s.updateStatus()
	return s
}

// Run refreshes the status until stop is closed.
func (s *Server) Run(stop <-chan struct{}) {
	ticker := time.NewTicker(statusPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.updateStatus()
		case <-stop:
			return
		}
	}
}

func (s *Server) updateStatus() {
	status := Status{
		Seed:    s.generator.Seed(),
		Uptime:  time.Since(s.started).Seconds(),
		Clients: atomic.LoadInt32(&s.clients),
		Stats:   s.generator.Stats(),
	}

	buf, err := json.Marshal(status)
	if err != nil {
		log.Println("status marshal error:", err)
		return
	}
	s.statusJSON.Store(buf)
}

// Handler routes every endpoint of the Server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.ServeIndex)
	mux.HandleFunc("/region.png", s.ServeRegion)
	mux.HandleFunc("/partition", s.ServePartition)
	mux.HandleFunc("/dump", s.ServeDump)
	mux.HandleFunc("/ws", s.ServeSocket)
	return mux
}

func (s *Server) ServeIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
	buf, ok := s.statusJSON.Load().([]byte)
	if ok {
		_, _ = w.Write(buf)
	}
}

// ServeRegion renders one layer of the region owning ?x=&z= as a png.
func (s *Server) ServeRegion(w http.ResponseWriter, r *http.Request) {
	x, z, err := parseCoords(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	layer := render.LayerBiome
	if name := r.URL.Query().Get("layer"); name != "" {
		if layer, err = render.ParseLayer(name); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	var buf bytes.Buffer
	if err = png.Encode(&buf, render.RenderRegion(s.generator.GetOrCreateRegion(x, z), layer)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(buf.Bytes())
}

// ServePartition writes the river edges in the bucket of ?x=&z= as JSON.
func (s *Server) ServePartition(w http.ResponseWriter, r *http.Request) {
	x, z, err := parseCoords(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	bucket := s.generator.GetOrCreatePartitionPoint(x, z)
	edges := make([]river.Edge, len(bucket))
	for i, e := range bucket {
		edges[i] = *e
	}

	buf, err := json.Marshal(edges)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(buf)
}

// ServeDump writes a compressed Visualization of ?x=&z=. With ?upload=true it is also
// uploaded to the Server's filesystem.
func (s *Server) ServeDump(w http.ResponseWriter, r *http.Request) {
	x, z, err := parseCoords(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	request := Request{X: x, Z: z}
	if layers := r.URL.Query()["layer"]; len(layers) > 0 {
		request.Layers = layers
	}

	buf, err := Dump(s.generator, request)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if upload, _ := strconv.ParseBool(r.URL.Query().Get("upload")); upload {
		if s.fs == nil {
			http.Error(w, "uploads are disabled", http.StatusNotImplemented)
			return
		}
		cell := s.generator.SampleCell(x, z)
		name := fmt.Sprintf("dump/%d/%d_%d.json.zst", s.generator.Seed(), cell.X, cell.Z)
		if err = s.fs.UploadStaticFile(name, dumpCache, buf); err != nil {
			log.Println("dump upload error:", err)
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		log.Println("uploaded", name)
	}

	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/zstd")
	_, _ = w.Write(buf)
}

func (s *Server) ServeSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade error", err)
		return
	}

	NewSocketClient(s, conn).Init()
}

func parseCoords(r *http.Request) (x, z int, err error) {
	query := r.URL.Query()
	if x, err = strconv.Atoi(query.Get("x")); err != nil {
		return 0, 0, fmt.Errorf("invalid x: %w", err)
	}
	if z, err = strconv.Atoi(query.Get("z")); err != nil {
		return 0, 0, fmt.Errorf("invalid z: %w", err)
	}
	return
}
