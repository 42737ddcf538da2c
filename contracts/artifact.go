package contracts

import "fmt"

// Artifact is a single downloadable file: where to fetch it, how big it
// is, what its SHA-1 digest must be, and (optionally) where it belongs
// relative to the installation directory it is written into.
type Artifact struct {
	SHA1 string `json:"sha1"`
	Size uint32 `json:"size"`
	URL  string `json:"url"`
	Path string `json:"path,omitempty"`
}

// Destination returns the artifact's relative path, or fallback when the
// metadata did not supply one.
func (this Artifact) Destination(fallback string) string {
	if this.Path == "" {
		return fallback
	}
	return this.Path
}

type ResourceKind int

const (
	LibraryResource ResourceKind = iota
	AssetResource
)

func (this ResourceKind) String() string {
	switch this {
	case LibraryResource:
		return "library"
	case AssetResource:
		return "asset"
	default:
		return fmt.Sprintf("unknown(%d)", int(this))
	}
}

// Resource is the unit of progress reporting: a named library or asset
// composed of the artifacts that must be installed for it.
type Resource struct {
	Kind      ResourceKind
	Name      string
	Artifacts []Artifact
}

func (this Resource) Title() string {
	return fmt.Sprintf("[%s %s]", this.Kind, this.Name)
}

func CountArtifacts(resources []Resource) (count int) {
	for _, resource := range resources {
		count += len(resource.Artifacts)
	}
	return count
}
