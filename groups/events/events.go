// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package events

import (
	"github.com/idrelay/idrelay/pkg/events"
	"github.com/idrelay/idrelay/pkg/scim"
)

const (
	groupPrefix = "group."
	groupCreate = groupPrefix + "create"
	groupUpdate = groupPrefix + "update"
	groupPatch  = groupPrefix + "patch"
	groupRemove = groupPrefix + "remove"
)

var (
	_ events.Event = (*createGroupEvent)(nil)
	_ events.Event = (*updateGroupEvent)(nil)
	_ events.Event = (*removeGroupEvent)(nil)
)

type createGroupEvent struct {
	tenantID string
	group    scim.Group
}

func (cge createGroupEvent) Encode() (map[string]interface{}, error) {
	val := map[string]interface{}{
		"operation":    groupCreate,
		"tenant_id":    cge.tenantID,
		"id":           cge.group.ID,
		"display_name": cge.group.DisplayName,
		"members":      len(cge.group.Members),
	}
	if cge.group.Meta != nil {
		val["created_at"] = cge.group.Meta.Created
	}

	return val, nil
}

type updateGroupEvent struct {
	operation string
	tenantID  string
	group     scim.Group
}

func (uge updateGroupEvent) Encode() (map[string]interface{}, error) {
	val := map[string]interface{}{
		"operation":    uge.operation,
		"tenant_id":    uge.tenantID,
		"id":           uge.group.ID,
		"display_name": uge.group.DisplayName,
		"members":      len(uge.group.Members),
	}
	if uge.group.Meta != nil {
		val["updated_at"] = uge.group.Meta.LastModified
		val["version"] = uge.group.Meta.Version
	}

	return val, nil
}

type removeGroupEvent struct {
	tenantID string
	id       string
}

func (rge removeGroupEvent) Encode() (map[string]interface{}, error) {
	return map[string]interface{}{
		"operation": groupRemove,
		"tenant_id": rge.tenantID,
		"id":        rge.id,
	}, nil
}
