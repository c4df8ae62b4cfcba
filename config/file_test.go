// Copyright (c) 2025 Team 4206 and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"errors"
	"io"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

type fsFunc func(string) (fs.File, error)

func (f fsFunc) Open(name string) (fs.File, error) {
	return f(name)
}

type readFunc func([]byte) (int, error)

func (f readFunc) Read(b []byte) (int, error) {
	return f(b)
}

func TestFileReader_Read(t *testing.T) {
	t.Run("will return an error", func(t *testing.T) {
		t.Run("if the fs.FS fails to open the file", func(t *testing.T) {
			openErr := errors.New("failed to open")
			fsys := fsFunc(func(string) (fs.File, error) {
				return nil, openErr
			})

			r := NewFileReader(fsys, "robot.yaml")
			_, err := io.ReadAll(r)

			var rerr ReadError
			require.ErrorAs(t, err, &rerr)
			require.ErrorIs(t, err, openErr)
			require.Equal(t, "robot.yaml", rerr.File)
		})

		t.Run("on every read after the open failed", func(t *testing.T) {
			opened := 0
			fsys := fsFunc(func(string) (fs.File, error) {
				opened++
				return nil, fs.ErrPermission
			})

			r := NewFileReader(fsys, "robot.yaml")
			_, err := r.Read(make([]byte, 1))
			require.ErrorIs(t, err, fs.ErrPermission)
			_, err = r.Read(make([]byte, 1))
			require.ErrorIs(t, err, fs.ErrPermission)
			require.Equal(t, 1, opened)
		})

		t.Run("if the reader has been closed", func(t *testing.T) {
			fsys := fstest.MapFS{"robot.yaml": {Data: []byte("a: 1\n")}}

			r := NewFileReader(fsys, "robot.yaml")
			_, err := r.Read(make([]byte, 1))
			require.Nil(t, err)
			require.Nil(t, r.Close())

			_, err = r.Read(make([]byte, 1))

			var rerr ReadError
			require.ErrorAs(t, err, &rerr)
			require.ErrorIs(t, err, fs.ErrClosed)
			require.Equal(t, "robot.yaml", rerr.File)
		})
	})

	t.Run("will read the whole file", func(t *testing.T) {
		fsys := fstest.MapFS{
			"robot.yaml": &fstest.MapFile{Data: []byte("a: 1\n")},
		}

		r := NewFileReader(fsys, "robot.yaml")
		b, err := io.ReadAll(r)
		require.Nil(t, err)
		require.Equal(t, "a: 1\n", string(b))
		require.Equal(t, "robot.yaml", r.Name())
		require.Nil(t, r.Close())
	})
}

func TestFileReader_Close(t *testing.T) {
	t.Run("will not return an error", func(t *testing.T) {
		t.Run("if Close is called before the underlying file has been opened", func(t *testing.T) {
			fsys := fsFunc(func(string) (fs.File, error) {
				return nil, nil
			})

			r := NewFileReader(fsys, "robot.yaml")
			err := r.Close()
			require.Nil(t, err)
		})
	})
}
