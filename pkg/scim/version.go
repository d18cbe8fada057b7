// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package scim

import (
	"fmt"
	"strconv"
	"strings"
)

// Resource versions are weak ETags of the form W/"<n>" with a strictly
// increasing counter. The token is opaque to clients; only the gateway
// generates new values.

// FirstVersion is the version assigned on create.
func FirstVersion() string {
	return `W/"1"`
}

// NextVersion returns the successor of the given version token. An
// unparsable token restarts the counter, which still satisfies the
// strictly-changing contract because the rendered string differs.
func NextVersion(current string) string {
	n, ok := parseVersion(current)
	if !ok {
		return FirstVersion()
	}
	return fmt.Sprintf(`W/"%d"`, n+1)
}

// VersionMatches performs the weak comparison between an If-Match header
// value and the stored version. A bare * matches any stored version and
// comma-separated candidates are each tried.
func VersionMatches(ifMatch, stored string) bool {
	for _, candidate := range strings.Split(ifMatch, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" && stored != "" {
			return true
		}
		if normalizeVersion(candidate) == normalizeVersion(stored) {
			return true
		}
	}
	return false
}

func parseVersion(version string) (uint64, bool) {
	n, err := strconv.ParseUint(normalizeVersion(version), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func normalizeVersion(version string) string {
	version = strings.TrimSpace(version)
	version = strings.TrimPrefix(version, "W/")
	return strings.Trim(version, `"`)
}
