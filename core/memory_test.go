package core

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/smarty/mcinstall/contracts"
)

type inMemoryFileSystem struct {
	mutex        sync.Mutex
	fileSystem   map[string]*file
	directories  map[string]struct{}
	errReadFile  map[string]error
	errWriteFile map[string]error
	errMkdir     map[string]error
	writes       int
}

func newInMemoryFileSystem() *inMemoryFileSystem {
	return &inMemoryFileSystem{
		fileSystem:   make(map[string]*file),
		directories:  make(map[string]struct{}),
		errReadFile:  make(map[string]error),
		errWriteFile: make(map[string]error),
		errMkdir:     make(map[string]error),
	}
}

func (this *inMemoryFileSystem) MkdirAll(path string) error {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	if err := this.errMkdir[path]; err != nil {
		return err
	}
	for dir := filepath.Clean(path); ; dir = filepath.Dir(dir) {
		this.directories[dir] = struct{}{}
		if dir == filepath.Dir(dir) {
			return nil
		}
	}
}

func (this *inMemoryFileSystem) Stat(path string) (contracts.FileInfo, error) {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	file, found := this.fileSystem[path]
	if !found {
		return nil, os.ErrNotExist
	}
	return file, nil
}

func (this *inMemoryFileSystem) Listing() (files []contracts.FileInfo) {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	for _, file := range this.fileSystem {
		files = append(files, file)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path() < files[j].Path() })
	return files
}

func (this *inMemoryFileSystem) Open(path string) (io.ReadCloser, error) {
	raw, err := this.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(raw)), nil
}

func (this *inMemoryFileSystem) ReadFile(path string) ([]byte, error) {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	target, found := this.fileSystem[path]
	if !found {
		return nil, os.ErrNotExist
	}
	return target.contents, this.errReadFile[path]
}

func (this *inMemoryFileSystem) WriteFile(path string, content []byte) error {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	if err := this.errWriteFile[path]; err != nil {
		return err
	}
	this.writes++
	this.fileSystem[path] = &file{
		path:     path,
		contents: append([]byte(nil), content...),
		mod:      InMemoryModTime,
	}
	return nil
}

func (this *inMemoryFileSystem) Touch(path string, modified time.Time) {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	this.fileSystem[path].mod = modified
}

func (this *inMemoryFileSystem) contents(path string) string {
	raw, _ := this.ReadFile(path)
	return string(raw)
}

func (this *inMemoryFileSystem) hasDirectory(path string) bool {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	_, found := this.directories[path]
	return found
}

/////////////////////////////////////////////////

type file struct {
	path     string
	contents []byte
	mod      time.Time
}

var InMemoryModTime = time.Now()

func (this *file) ModTime() time.Time { return this.mod }
func (this *file) Path() string       { return this.path }
func (this *file) Size() int64        { return int64(len(this.contents)) }
func (this *file) Mode() os.FileMode  { return 0644 }
