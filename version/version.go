package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Version is the current release, bumped on every schema-affecting change.
var Version = "0.1.0"

func GetCurrentVersion() string {
	return Version
}

// GetSchemaVersion returns the version that identifies the on-disk schema.
// Patch releases never change the schema, so the patch part is dropped.
func GetSchemaVersion(version string) string {
	return GetMinorVersion(version) + ".0"
}

func GetMinorVersion(version string) string {
	parts := strings.Split(version, ".")
	if len(parts) < 2 {
		return version
	}
	return strings.Join(parts[:2], ".")
}

func IsVersionGreaterThan(v, other string) bool {
	return semver.Compare("v"+v, "v"+other) > 0
}

func IsVersionGreaterOrEqualThan(v, other string) bool {
	return semver.Compare("v"+v, "v"+other) >= 0
}
