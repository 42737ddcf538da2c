package contracts

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	LibraryDirectoryName = "libraries"
	AssetDirectoryName   = "assets"
)

// Installation is the persistent record of one installed version.
type Installation struct {
	Name             string     `json:"name"`
	Version          string     `json:"version"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
	Path             string     `json:"path"`
	LibraryDirectory string     `json:"lib_dir"`
}

func NewInstallation(versionID, root string, now time.Time) Installation {
	name := strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
	path := filepath.Join(root, name)
	return Installation{
		Name:             name,
		Version:          versionID,
		CreatedAt:        now,
		Path:             path,
		LibraryDirectory: filepath.Join(path, LibraryDirectoryName),
	}
}

func (this Installation) AssetDirectory() string {
	return filepath.Join(this.Path, AssetDirectoryName)
}

// ObjectDirectory holds content-addressed asset objects.
func (this Installation) ObjectDirectory() string {
	return filepath.Join(this.AssetDirectory(), "objects")
}

func (this Installation) IndexDirectory() string {
	return filepath.Join(this.AssetDirectory(), "indexes")
}
