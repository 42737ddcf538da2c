package core

import (
	"encoding/hex"
	"fmt"
	"net/url"
	"path"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/smarty/mcinstall/contracts"
)

const DefaultAssetBaseURL = "https://resources.download.minecraft.net/"

// archPlaceholder appears in older native classifiers, e.g.
// "natives-windows-${arch}", and stands for the pointer width in bits.
const archPlaceholder = "${arch}"

// HostOS names the running platform. Call it once at startup and pass the
// result to NewResourceResolver.
func HostOS() (contracts.OSName, error) {
	return contracts.ParseOSName(runtime.GOOS)
}

type ResourceResolver struct {
	hostOS       contracts.OSName
	archBits     string
	assetBaseURL string
}

func NewResourceResolver(hostOS contracts.OSName, assetBaseURL string) *ResourceResolver {
	if assetBaseURL == "" {
		assetBaseURL = DefaultAssetBaseURL
	}
	return &ResourceResolver{
		hostOS:       hostOS,
		archBits:     strconv.Itoa(strconv.IntSize),
		assetBaseURL: assetBaseURL,
	}
}

// VersionResources lists the top-level downloads (e.g. "client.jar")
// followed by every declared library. Libraries whose native classifier
// cannot be found are reported together; no partial list is returned.
func (this *ResourceResolver) VersionResources(version contracts.Version) ([]contracts.Resource, error) {
	resources := make([]contracts.Resource, 0, len(version.Downloads)+len(version.Libraries))

	for _, key := range sortedKeys(version.Downloads) {
		resources = append(resources, contracts.Resource{
			Kind:      contracts.LibraryResource,
			Name:      key + ".jar",
			Artifacts: []contracts.Artifact{version.Downloads[key]},
		})
	}

	var failures *multierror.Error
	for _, library := range version.Libraries {
		resource, err := this.libraryResource(library)
		if err != nil {
			failures = multierror.Append(failures, err)
			continue
		}
		resources = append(resources, resource)
	}
	if err := failures.ErrorOrNil(); err != nil {
		return nil, err
	}
	return resources, nil
}

func (this *ResourceResolver) libraryResource(library contracts.Library) (contracts.Resource, error) {
	resource := contracts.Resource{Kind: contracts.LibraryResource, Name: library.Name}

	if library.Downloads.Artifact != nil {
		resource.Artifacts = append(resource.Artifacts, *library.Downloads.Artifact)
	}

	classifier, found := library.Natives[this.hostOS]
	if !found {
		return resource, nil
	}
	classifier = strings.ReplaceAll(classifier, archPlaceholder, this.archBits)
	native, found := library.Downloads.Classifiers[classifier]
	if !found {
		return contracts.Resource{}, &contracts.ResolutionError{
			Resource:   library.Name,
			Classifier: classifier,
			Reason:     fmt.Sprintf("is declared for %s but missing from the classifier downloads", this.hostOS),
		}
	}
	resource.Artifacts = append(resource.Artifacts, native)
	return resource, nil
}

// AssetResources yields one resource per distinct object digest, named by
// that digest and sorted. Object paths are relative to the asset object
// directory and sharded by the digest's first two characters.
func (this *ResourceResolver) AssetResources(index contracts.AssetIndex) ([]contracts.Resource, error) {
	base, err := url.Parse(this.assetBaseURL)
	if err != nil {
		return nil, &contracts.ResolutionError{Resource: this.assetBaseURL, Reason: err.Error()}
	}

	var failures *multierror.Error
	objects := make(map[string]contracts.Asset, len(index.Objects))
	for name, asset := range index.Objects {
		if !isDigest(asset.Hash) {
			failures = multierror.Append(failures, &contracts.ResolutionError{
				Resource: name,
				Reason:   fmt.Sprintf("malformed object hash %q", asset.Hash),
			})
			continue
		}
		objects[asset.Hash] = asset
	}
	if err := failures.ErrorOrNil(); err != nil {
		return nil, err
	}

	resources := make([]contracts.Resource, 0, len(objects))
	for _, hash := range sortedKeys(objects) {
		resources = append(resources, contracts.Resource{
			Kind:      contracts.AssetResource,
			Name:      hash,
			Artifacts: []contracts.Artifact{assetArtifact(base, objects[hash])},
		})
	}
	return resources, nil
}

func assetArtifact(base *url.URL, asset contracts.Asset) contracts.Artifact {
	shard := asset.Hash[:2]
	address := *base
	address.Path = path.Join("/", base.Path, shard, asset.Hash)
	return contracts.Artifact{
		SHA1: asset.Hash,
		Size: asset.Size,
		URL:  address.String(),
		Path: path.Join(shard, asset.Hash),
	}
}

func isDigest(value string) bool {
	if len(value) != hex.EncodedLen(sha1Size) {
		return false
	}
	_, err := hex.DecodeString(value)
	return err == nil
}

func sortedKeys[V any](values map[string]V) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
