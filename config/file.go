// Copyright (c) 2025 Team 4206 and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"errors"
	"io"
	"io/fs"
	"sync"
)

// FileReader is an io.ReadCloser over a file in an fs.FS. The file is
// not opened until the first call to Read.
type FileReader struct {
	fsys fs.FS
	name string

	openOnce sync.Once
	openErr  error
	file     fs.File
}

// NewFileReader configures a FileReader for name within fsys.
func NewFileReader(fsys fs.FS, name string) *FileReader {
	return &FileReader{
		fsys: fsys,
		name: name,
	}
}

// Name returns the name of the file within its fs.FS.
func (r *FileReader) Name() string {
	return r.name
}

// Read implements the io.Reader interface. Failures to open or read the
// file are reported as a [ReadError].
func (r *FileReader) Read(b []byte) (int, error) {
	r.openOnce.Do(func() {
		r.file, r.openErr = r.fsys.Open(r.name)
	})
	if r.openErr != nil {
		return 0, ReadError{File: r.name, Cause: r.openErr}
	}
	if r.file == nil {
		return 0, ReadError{File: r.name, Cause: fs.ErrClosed}
	}

	n, err := r.file.Read(b)
	if err != nil && !errors.Is(err, io.EOF) {
		return n, ReadError{File: r.name, Cause: err}
	}
	return n, err
}

// Close implements the io.Closer interface. It is safe to call Close
// before the file has been opened.
func (r *FileReader) Close() error {
	if r.file == nil {
		return nil
	}

	err := r.file.Close()
	r.file = nil
	return err
}
