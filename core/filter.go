package core

import (
	"github.com/gobwas/glob"
	"github.com/pkg/errors"

	"github.com/smarty/mcinstall/contracts"
)

// FilterVersions keeps versions whose id matches any of the glob patterns
// and whose release type is one of types. Empty patterns or types match
// everything.
func FilterVersions(original []contracts.VersionInfo, patterns []string, types []string) (filtered []contracts.VersionInfo, err error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		compiled, err := glob.Compile(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid version pattern %q", pattern)
		}
		globs = append(globs, compiled)
	}

	for _, version := range original {
		if matchesAny(globs, version.ID) && contains(types, string(version.Type)) {
			filtered = append(filtered, version)
		}
	}
	return filtered, nil
}

func matchesAny(globs []glob.Glob, id string) bool {
	if len(globs) == 0 {
		return true
	}
	for _, compiled := range globs {
		if compiled.Match(id) {
			return true
		}
	}
	return false
}

func contains(haystack []string, needle string) bool {
	if len(haystack) == 0 {
		return true
	}
	for _, straw := range haystack {
		if straw == needle {
			return true
		}
	}
	return false
}
