package contracts

import "context"

// Fetcher retrieves the complete body found at address.
type Fetcher interface {
	Fetch(ctx context.Context, address string) ([]byte, error)
}

type DigestVerifier interface {
	Verify(artifact Artifact, content []byte) error
}

// IntegrityCheck reports whether the file at localPath already holds the
// artifact's content.
type IntegrityCheck interface {
	Verify(artifact Artifact, localPath string) error
}
