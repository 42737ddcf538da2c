package contracts

type ReleaseType string

const (
	Release  ReleaseType = "release"
	Snapshot ReleaseType = "snapshot"
	OldBeta  ReleaseType = "old_beta"
	OldAlpha ReleaseType = "old_alpha"
)

const DefaultManifestURL = "https://piston-meta.mojang.com/mc/game/version_manifest_v2.json"

type VersionManifest struct {
	Latest   LatestVersions `json:"latest"`
	Versions []VersionInfo  `json:"versions"`
}

type LatestVersions struct {
	Release  string `json:"release"`
	Snapshot string `json:"snapshot"`
}

type VersionInfo struct {
	ID              string      `json:"id"`
	Type            ReleaseType `json:"type"`
	URL             string      `json:"url"`
	Time            string      `json:"time"`
	ReleaseTime     string      `json:"releaseTime"`
	SHA1            string      `json:"sha1"`
	ComplianceLevel int         `json:"complianceLevel"`
}

// Artifact describes the version descriptor document itself so it can be
// verified like any other download.
func (this VersionInfo) Artifact() Artifact {
	return Artifact{SHA1: this.SHA1, URL: this.URL}
}

func (this VersionManifest) Find(id string) (VersionInfo, bool) {
	if id == "latest" || id == "latest-release" {
		id = this.Latest.Release
	} else if id == "latest-snapshot" {
		id = this.Latest.Snapshot
	}
	for _, info := range this.Versions {
		if info.ID == id {
			return info, true
		}
	}
	return VersionInfo{}, false
}
