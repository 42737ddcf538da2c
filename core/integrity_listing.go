package core

import (
	"fmt"
	"os"

	"github.com/smarty/mcinstall/contracts"
)

// FileListingIntegrityCheck compares the size on disk with the size the
// metadata advertises. It is cheap and runs before content hashing.
type FileListingIntegrityCheck struct {
	fileSystem contracts.FileChecker
}

func NewFileListingIntegrityCheck(fileSystem contracts.FileChecker) *FileListingIntegrityCheck {
	return &FileListingIntegrityCheck{fileSystem: fileSystem}
}

func (this *FileListingIntegrityCheck) Verify(artifact contracts.Artifact, localPath string) error {
	fileInfo, err := this.fileSystem.Stat(localPath)
	if os.IsNotExist(err) {
		return fmt.Errorf("file not found: \"%s\"", localPath)
	}
	if err != nil {
		return err
	}
	if !fileInfo.Mode().IsRegular() {
		return fmt.Errorf("not a regular file: \"%s\"", localPath)
	}
	if fileInfo.Size() != int64(artifact.Size) {
		return fmt.Errorf("file size mismatch for \"%s\" (expected: [%d], actual: [%d])", localPath, artifact.Size, fileInfo.Size())
	}
	return nil
}
