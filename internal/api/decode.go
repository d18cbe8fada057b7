// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/idrelay/idrelay/pkg/apiutil"
	"github.com/idrelay/idrelay/pkg/errors"
	"github.com/idrelay/idrelay/pkg/scim"
)

// CheckContentType accepts the SCIM media type and plain JSON on
// body-carrying requests.
func CheckContentType(r *http.Request) error {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, scim.ContentType) && !strings.HasPrefix(ct, "application/json") {
		return apiutil.ErrUnsupportedContentType
	}

	return nil
}

// SplitAttributes parses the comma-separated value of an attributes or
// excludedAttributes query parameter.
func SplitAttributes(raw string) []string {
	if raw == "" {
		return nil
	}

	var attrs []string
	for _, attr := range strings.Split(raw, ",") {
		if attr = strings.TrimSpace(attr); attr != "" {
			attrs = append(attrs, attr)
		}
	}

	return attrs
}

// patchBody is the wire shape of a SCIM PatchOp message.
type patchBody struct {
	Schemas    []string `json:"schemas"`
	Operations []struct {
		Op    string          `json:"op"`
		Path  string          `json:"path,omitempty"`
		Value json.RawMessage `json:"value,omitempty"`
	} `json:"Operations"`
}

// DecodePatchBody decodes a PatchOp message into parsed operations. It
// is shared by the user and group transports.
func DecodePatchBody(r *http.Request) ([]scim.PatchOperation, error) {
	var body patchBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, errors.Wrap(apiutil.ErrMalformedBody, err)
	}
	if !containsSchema(body.Schemas, scim.SchemaPatchOp) {
		return nil, errors.Wrap(apiutil.ErrValidation, apiutil.ErrInvalidSchemas)
	}

	ops := make([]scim.PatchOperation, 0, len(body.Operations))
	for _, op := range body.Operations {
		value, err := scim.ParsePatchValue(op.Value)
		if err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}
		ops = append(ops, scim.PatchOperation{
			Op:    strings.ToLower(op.Op),
			Path:  op.Path,
			Value: value,
		})
	}

	return ops, nil
}

func containsSchema(schemas []string, urn string) bool {
	for _, s := range schemas {
		if s == urn {
			return true
		}
	}

	return false
}
