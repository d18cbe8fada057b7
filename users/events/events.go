// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package events

import (
	"github.com/idrelay/idrelay/pkg/events"
	"github.com/idrelay/idrelay/pkg/scim"
)

const (
	userPrefix = "user."
	userCreate = userPrefix + "create"
	userUpdate = userPrefix + "update"
	userPatch  = userPrefix + "patch"
	userRemove = userPrefix + "remove"
	userView   = userPrefix + "view"
	userList   = userPrefix + "list"
)

var (
	_ events.Event = (*createUserEvent)(nil)
	_ events.Event = (*updateUserEvent)(nil)
	_ events.Event = (*removeUserEvent)(nil)
)

type createUserEvent struct {
	tenantID string
	user     scim.User
}

func (cue createUserEvent) Encode() (map[string]interface{}, error) {
	val := map[string]interface{}{
		"operation": userCreate,
		"tenant_id": cue.tenantID,
		"id":        cue.user.ID,
		"user_name": cue.user.UserName,
	}
	if cue.user.ExternalID != "" {
		val["external_id"] = cue.user.ExternalID
	}
	if cue.user.Meta != nil {
		val["created_at"] = cue.user.Meta.Created
	}

	return val, nil
}

type updateUserEvent struct {
	operation string
	tenantID  string
	user      scim.User
}

func (uue updateUserEvent) Encode() (map[string]interface{}, error) {
	val := map[string]interface{}{
		"operation": uue.operation,
		"tenant_id": uue.tenantID,
		"id":        uue.user.ID,
		"user_name": uue.user.UserName,
	}
	if uue.user.Meta != nil {
		val["updated_at"] = uue.user.Meta.LastModified
		val["version"] = uue.user.Meta.Version
	}

	return val, nil
}

type removeUserEvent struct {
	tenantID string
	id       string
}

func (rue removeUserEvent) Encode() (map[string]interface{}, error) {
	return map[string]interface{}{
		"operation": userRemove,
		"tenant_id": rue.tenantID,
		"id":        rue.id,
	}, nil
}
