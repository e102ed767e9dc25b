// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

// LocalFilesystem writes files to a directory. Caching is ignored.
type LocalFilesystem struct {
	dir string
}

func NewLocalFilesystem(dir string) (*LocalFilesystem, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create %s: %w", dir, err)
	}
	return &LocalFilesystem{dir: dir}, nil
}

func (local *LocalFilesystem) UploadStaticFile(filename string, _ int, data []byte) error {
	path := filepath.Join(local.dir, filepath.Clean("/"+filename))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
