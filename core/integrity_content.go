package core

import (
	"crypto/sha1"
	"io"

	"github.com/smarty/mcinstall/contracts"
)

type FileContentIntegrityCheck struct {
	fileSystem contracts.FileOpener
}

func NewFileContentIntegrityCheck(fileSystem contracts.FileOpener) *FileContentIntegrityCheck {
	return &FileContentIntegrityCheck{fileSystem: fileSystem}
}

func (this *FileContentIntegrityCheck) Verify(artifact contracts.Artifact, localPath string) error {
	reader, err := this.fileSystem.Open(localPath)
	if err != nil {
		return err
	}
	defer func() { _ = reader.Close() }()

	hasher := NewHashReader(reader, sha1.New())
	if _, err = io.Copy(io.Discard, hasher); err != nil {
		return err
	}
	return compareDigest(artifact, hasher.Sum(nil))
}

// NewLocalArtifactCheck verifies size first and content second.
func NewLocalArtifactCheck(fileSystem interface {
	contracts.FileChecker
	contracts.FileOpener
}) contracts.IntegrityCheck {
	return NewCompoundIntegrityCheck(
		NewFileListingIntegrityCheck(fileSystem),
		NewFileContentIntegrityCheck(fileSystem),
	)
}
