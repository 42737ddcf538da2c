package core

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/smarty/mcinstall/contracts"
)

// Catalog retrieves the published metadata documents: the version
// manifest, version descriptors, and asset indexes. Documents that carry a
// digest are verified before they are decoded.
type Catalog struct {
	fetcher      contracts.Fetcher
	plainFetcher contracts.Fetcher
	verifier     contracts.DigestVerifier
	manifestURL  string
}

// NewCatalog uses plainFetcher for asset indexes, which some mirrors only
// serve to generic clients.
func NewCatalog(fetcher, plainFetcher contracts.Fetcher, verifier contracts.DigestVerifier, manifestURL string) *Catalog {
	if manifestURL == "" {
		manifestURL = contracts.DefaultManifestURL
	}
	return &Catalog{
		fetcher:      fetcher,
		plainFetcher: plainFetcher,
		verifier:     verifier,
		manifestURL:  manifestURL,
	}
}

func (this *Catalog) Manifest(ctx context.Context) (manifest contracts.VersionManifest, raw []byte, err error) {
	raw, err = this.fetcher.Fetch(ctx, this.manifestURL)
	if err != nil {
		return manifest, nil, errors.Wrap(err, "fetching version manifest")
	}
	if err = json.Unmarshal(raw, &manifest); err != nil {
		return manifest, nil, errors.Wrapf(err, "decoding version manifest from %s", this.manifestURL)
	}
	return manifest, raw, nil
}

func (this *Catalog) Version(ctx context.Context, info contracts.VersionInfo) (version contracts.Version, raw []byte, err error) {
	raw, err = this.fetchVerified(ctx, this.fetcher, info.Artifact())
	if err != nil {
		return version, nil, errors.Wrapf(err, "fetching version %s", info.ID)
	}
	if err = json.Unmarshal(raw, &version); err != nil {
		return version, nil, errors.Wrapf(err, "decoding version %s", info.ID)
	}
	return version, raw, nil
}

func (this *Catalog) AssetIndex(ctx context.Context, version contracts.Version) (index contracts.AssetIndex, raw []byte, err error) {
	raw, err = this.fetchVerified(ctx, this.plainFetcher, version.AssetIndex.Artifact())
	if err != nil {
		return index, nil, errors.Wrapf(err, "fetching asset index %s", version.AssetIndex.ID)
	}
	if err = json.Unmarshal(raw, &index); err != nil {
		return index, nil, errors.Wrapf(err, "decoding asset index %s", version.AssetIndex.ID)
	}
	return index, raw, nil
}

func (this *Catalog) fetchVerified(ctx context.Context, fetcher contracts.Fetcher, artifact contracts.Artifact) ([]byte, error) {
	raw, err := fetcher.Fetch(ctx, artifact.URL)
	if err != nil {
		return nil, err
	}
	if err = this.verifier.Verify(artifact, raw); err != nil {
		return nil, err
	}
	return raw, nil
}
