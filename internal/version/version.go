// Package version reports the build version of aicommit.
package version

import (
	"encoding/json"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Version is set at build time with -ldflags "-X .../internal/version.Version=1.2.3".
var Version = "dev"

// IsDev reports whether this is an unversioned build.
func IsDev() bool {
	return Version == "" || Version == "dev"
}

// Normalized returns Version in canonical major.minor.patch form, or "dev".
func Normalized() (string, error) {
	if IsDev() {
		return "dev", nil
	}
	v, err := semver.NewVersion(Version)
	if err != nil {
		return "", fmt.Errorf("invalid build version %q: %w", Version, err)
	}
	return v.String(), nil
}

// Format renders the version as "text" or "json".
func Format(format string) (string, error) {
	v, err := Normalized()
	if err != nil {
		return "", err
	}
	switch format {
	case "", "text":
		return v, nil
	case "json":
		data, err := json.Marshal(map[string]string{"version": v})
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return "", fmt.Errorf("unknown format %q (supported: text, json)", format)
}
