package contracts

import (
	"io"
	"os"
	"time"
)

type DirectoryCreator interface {
	MkdirAll(path string) error
}

type FileOpener interface {
	Open(path string) (io.ReadCloser, error)
}

type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// FileWriter replaces the content at path in one step; readers never
// observe a partially written file.
type FileWriter interface {
	WriteFile(path string, content []byte) error
}

type FileChecker interface {
	Stat(path string) (FileInfo, error)
}

type FileInfo interface {
	Path() string
	Size() int64
	ModTime() time.Time
	Mode() os.FileMode
}
