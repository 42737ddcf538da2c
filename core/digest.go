package core

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"

	"github.com/smarty/mcinstall/contracts"
)

const sha1Size = sha1.Size

type DigestVerifier struct{}

func NewDigestVerifier() *DigestVerifier {
	return &DigestVerifier{}
}

func (this *DigestVerifier) Verify(artifact contracts.Artifact, content []byte) error {
	actual := sha1.Sum(content)
	return compareDigest(artifact, actual[:])
}

func compareDigest(artifact contracts.Artifact, actual []byte) error {
	expected, err := hex.DecodeString(artifact.SHA1)
	if err == nil && bytes.Equal(expected, actual) {
		return nil
	}
	return &contracts.ChecksumMismatch{
		URL:      artifact.URL,
		Expected: artifact.SHA1,
		Actual:   hex.EncodeToString(actual),
	}
}
