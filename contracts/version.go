package contracts

import "strings"

type OSName string

const (
	OSX     OSName = "osx"
	Linux   OSName = "linux"
	Windows OSName = "windows"
)

// ParseOSName accepts the names used by upstream metadata ("osx") as well
// as the names reported by the Go runtime ("darwin").
func ParseOSName(value string) (OSName, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "osx", "macos", "darwin":
		return OSX, nil
	case "linux":
		return Linux, nil
	case "windows":
		return Windows, nil
	default:
		return "", &ConfigurationError{Value: value}
	}
}

type RuleAction string

const (
	RuleAllow    RuleAction = "allow"
	RuleDisallow RuleAction = "disallow"
)

type RuleOS struct {
	Name OSName `json:"name"`
}

type Rule struct {
	Action RuleAction `json:"action"`
	OS     *RuleOS    `json:"os,omitempty"`
}

type LibraryDownloads struct {
	Artifact    *Artifact           `json:"artifact,omitempty"`
	Classifiers map[string]Artifact `json:"classifiers,omitempty"`
}

type LibraryExtract struct {
	Exclude []string `json:"exclude"`
}

type Library struct {
	Name      string            `json:"name"`
	Downloads LibraryDownloads  `json:"downloads"`
	Extract   *LibraryExtract   `json:"extract,omitempty"`
	Natives   map[OSName]string `json:"natives,omitempty"`
	Rules     []Rule            `json:"rules,omitempty"`
}

type AssetIndexArtifact struct {
	ID        string `json:"id"`
	SHA1      string `json:"sha1"`
	Size      uint32 `json:"size"`
	URL       string `json:"url"`
	TotalSize uint64 `json:"totalSize"`
}

func (this AssetIndexArtifact) Artifact() Artifact {
	return Artifact{SHA1: this.SHA1, Size: this.Size, URL: this.URL}
}

type JavaVersion struct {
	Component    string `json:"component"`
	MajorVersion uint32 `json:"majorVersion"`
}

// Version is the full descriptor of one published game version.
type Version struct {
	ID              string              `json:"id"`
	AssetIndex      AssetIndexArtifact  `json:"assetIndex"`
	Assets          string              `json:"assets"`
	ComplianceLevel uint32              `json:"complianceLevel"`
	Downloads       map[string]Artifact `json:"downloads"`
	JavaVersion     JavaVersion         `json:"javaVersion"`
	Libraries       []Library           `json:"libraries"`
	MainClass       string              `json:"mainClass"`
	ReleaseTime     string              `json:"releaseTime"`
	Time            string              `json:"time"`
	Type            ReleaseType         `json:"type"`
}
