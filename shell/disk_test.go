package shell

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/assertions/should"
	"github.com/smartystreets/gunit"
)

func TestDiskFileSystemFixture(t *testing.T) {
	gunit.Run(new(DiskFileSystemFixture), t)
}

type DiskFileSystemFixture struct {
	*gunit.Fixture
	disk *DiskFileSystem
	root string
}

func (this *DiskFileSystemFixture) Setup() {
	this.disk = NewDiskFileSystem()
	this.root, _ = os.MkdirTemp("", "mcinstall-disk-")
}

func (this *DiskFileSystemFixture) Teardown() {
	_ = os.RemoveAll(this.root)
}

func (this *DiskFileSystemFixture) TestMkdirAllIsIdempotent() {
	path := filepath.Join(this.root, "a", "b", "c")

	this.So(this.disk.MkdirAll(path), should.BeNil)
	this.So(this.disk.MkdirAll(path), should.BeNil)

	info, err := os.Stat(path)
	this.So(err, should.BeNil)
	this.So(info.IsDir(), should.BeTrue)
}

func (this *DiskFileSystemFixture) TestWriteFileReadFile() {
	path := filepath.Join(this.root, "file.txt")

	this.So(this.disk.WriteFile(path, []byte("Hello World")), should.BeNil)

	raw, err := this.disk.ReadFile(path)
	this.So(err, should.BeNil)
	this.So(raw, should.Resemble, []byte("Hello World"))
}

func (this *DiskFileSystemFixture) TestWriteFileReplacesContentsWithoutLeavingTemporaryFiles() {
	path := filepath.Join(this.root, "file.txt")
	_ = this.disk.WriteFile(path, []byte("first version, longer"))

	this.So(this.disk.WriteFile(path, []byte("second")), should.BeNil)

	raw, _ := this.disk.ReadFile(path)
	this.So(string(raw), should.Equal, "second")
	entries, _ := os.ReadDir(this.root)
	this.So(entries, should.HaveLength, 1)
}

func (this *DiskFileSystemFixture) TestWriteFileIntoMissingDirectoryFails() {
	err := this.disk.WriteFile(filepath.Join(this.root, "missing", "file.txt"), []byte("x"))

	this.So(err, should.NotBeNil)
}

func (this *DiskFileSystemFixture) TestStat() {
	path := filepath.Join(this.root, "file.txt")
	_ = this.disk.WriteFile(path, []byte("12345"))

	info, err := this.disk.Stat(path)

	this.So(err, should.BeNil)
	this.So(info.Path(), should.Equal, path)
	this.So(info.Size(), should.Equal, int64(5))
	this.So(info.Mode().IsRegular(), should.BeTrue)
	this.So(info.Mode().Perm(), should.Equal, os.FileMode(0644))
}

func (this *DiskFileSystemFixture) TestStatMissingFile() {
	_, err := this.disk.Stat(filepath.Join(this.root, "missing"))

	this.So(os.IsNotExist(err), should.BeTrue)
}

func (this *DiskFileSystemFixture) TestOpen() {
	path := filepath.Join(this.root, "file.txt")
	_ = this.disk.WriteFile(path, []byte("contents"))

	reader, err := this.disk.Open(path)
	this.So(err, should.BeNil)
	defer func() { _ = reader.Close() }()

	raw, _ := io.ReadAll(reader)
	this.So(string(raw), should.Equal, "contents")
}
