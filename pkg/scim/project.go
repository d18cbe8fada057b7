// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package scim

import "strings"

// alwaysReturned attributes (RFC 7643 §7) survive every projection.
var alwaysReturned = map[string]bool{
	"schemas": true,
	"id":      true,
	"meta":    true,
}

// Project reduces a document to the requested attribute set. Requested
// names match the top-level segment of their path, case-insensitively;
// include wins over exclude when both are supplied. With neither, the
// document is returned unchanged.
func Project(doc Document, include, exclude []string) Document {
	if len(include) == 0 && len(exclude) == 0 {
		return doc
	}

	out := make(Document, len(doc))
	if len(include) > 0 {
		wanted := attributeSet(include)
		for k, v := range doc {
			key := strings.ToLower(k)
			if alwaysReturned[key] || wanted[key] {
				out[k] = v
			}
		}

		return out
	}

	dropped := attributeSet(exclude)
	for k, v := range doc {
		key := strings.ToLower(k)
		if alwaysReturned[key] || !dropped[key] {
			out[k] = v
		}
	}

	return out
}

func attributeSet(attrs []string) map[string]bool {
	set := make(map[string]bool, len(attrs))
	for _, attr := range attrs {
		if idx := strings.IndexByte(attr, '.'); idx >= 0 {
			attr = attr[:idx]
		}
		set[strings.ToLower(attr)] = true
	}

	return set
}
