// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package sdk

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/idrelay/idrelay/pkg/errors"
)

const auditEndpoint = "/audit"

// AuditEntry is a recorded administrative action.
type AuditEntry struct {
	ID           string                 `json:"id"`
	ActorID      string                 `json:"actorId"`
	ActorType    string                 `json:"actorType,omitempty"`
	Operation    string                 `json:"operation"`
	ResourceType string                 `json:"resourceType,omitempty"`
	ResourceID   string                 `json:"resourceId,omitempty"`
	Outcome      string                 `json:"outcome"`
	Detail       string                 `json:"detail,omitempty"`
	Snapshot     map[string]interface{} `json:"snapshot,omitempty"`
	OccurredAt   time.Time              `json:"occurredAt"`
	TTL          int64                  `json:"ttl"`
}

// AuditPage is a page of audit log entries.
type AuditPage struct {
	TotalResults uint64       `json:"totalResults"`
	StartIndex   int          `json:"startIndex"`
	ItemsPerPage int          `json:"itemsPerPage"`
	Resources    []AuditEntry `json:"Resources"`
}

func (sdk idSDK) AuditEntries(pm PageMetadata, token string) (AuditPage, errors.SDKError) {
	url, err := sdk.withQueryParams(sdk.hostURL, auditEndpoint, pm)
	if err != nil {
		return AuditPage{}, errors.NewSDKError(err)
	}

	_, body, sdkerr := sdk.processRequest(http.MethodGet, url, token, nil, nil, http.StatusOK)
	if sdkerr != nil {
		return AuditPage{}, sdkerr
	}

	var page AuditPage
	if err := json.Unmarshal(body, &page); err != nil {
		return AuditPage{}, errors.NewSDKError(err)
	}

	return page, nil
}
