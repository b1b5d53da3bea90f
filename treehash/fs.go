package treehash

import (
	"io"
	"io/fs"
	"os"
)

// FileSystem is the subset of filesystem access the pipeline needs.
// Stat must follow symbolic links.
type FileSystem interface {
	Stat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	Open(name string) (io.ReadCloser, error)
}

// OSFileSystem reads from the host filesystem through package os.
type OSFileSystem struct{}

func (OSFileSystem) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }

func (OSFileSystem) ReadDir(name string) ([]fs.DirEntry, error) { return os.ReadDir(name) }

func (OSFileSystem) Open(name string) (io.ReadCloser, error) { return os.Open(name) }
