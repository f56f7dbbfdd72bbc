package io

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// CreateFS is a file system that can also create files, used to marshal
// drum images.
type CreateFS interface {
	fs.FS
	// Create creates or truncates a file for writing.
	Create(name string) (file io.WriteCloser, err error)
}

// DirFS is a CreateFS rooted at a directory of the host file system.
type DirFS string

var _ CreateFS = DirFS("")

func (dir DirFS) Open(name string) (fs.File, error) {
	return os.DirFS(string(dir)).Open(name)
}

func (dir DirFS) Create(name string) (file io.WriteCloser, err error) {
	if !fs.ValidPath(name) {
		err = &fs.PathError{Op: "create", Path: name, Err: fs.ErrInvalid}
		return
	}
	return os.Create(filepath.Join(string(dir), filepath.FromSlash(name)))
}

func writeFile(filesys CreateFS, name string, text string) (err error) {
	file, err := filesys.Create(name)
	if err != nil {
		return
	}

	_, err = io.WriteString(file, text)
	cerr := file.Close()
	if err == nil {
		err = cerr
	}
	return
}
