// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package fs stores rendered images and snapshot dumps.
package fs

import "strings"

type Filesystem interface {
	UploadStaticFile(filename string, secondsCache int, data []byte) error
}

var contentTypes = map[string]string{
	".json":     "application/json",
	".json.zst": "application/zstd",
	".png":      "image/png",
}

// contentType returns the content type of filename, or nil to let the store decide.
func contentType(filename string) *string {
	// Longest suffix first so .json.zst isn't mistaken for .json
	var best string
	for ext := range contentTypes {
		if len(ext) > len(best) && strings.HasSuffix(filename, ext) {
			best = ext
		}
	}
	if best == "" {
		return nil
	}
	mime := contentTypes[best]
	return &mime
}

