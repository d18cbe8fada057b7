// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"net/http"

	"github.com/idrelay/idrelay"
	"github.com/idrelay/idrelay/adapters"
	"github.com/idrelay/idrelay/providers"
	"github.com/idrelay/idrelay/provision"
)

var (
	_ idrelay.Response = (*listProvidersRes)(nil)
	_ idrelay.Response = (*healthRes)(nil)
	_ idrelay.Response = (*statsRes)(nil)
	_ idrelay.Response = (*capabilitiesRes)(nil)
	_ idrelay.Response = (*listSyncStatesRes)(nil)
	_ idrelay.Response = (*syncStateRes)(nil)
)

type listProvidersRes struct {
	providers.ProvidersPage
}

func (res listProvidersRes) Code() int {
	return http.StatusOK
}

func (res listProvidersRes) Headers() map[string]string {
	return map[string]string{}
}

func (res listProvidersRes) Empty() bool {
	return false
}

type healthRes struct {
	providers.Health
}

func (res healthRes) Code() int {
	if res.Status == providers.StatusDown {
		return http.StatusServiceUnavailable
	}

	return http.StatusOK
}

func (res healthRes) Headers() map[string]string {
	return map[string]string{}
}

func (res healthRes) Empty() bool {
	return false
}

type statsRes struct {
	adapters.Stats
}

func (res statsRes) Code() int {
	return http.StatusOK
}

func (res statsRes) Headers() map[string]string {
	return map[string]string{}
}

func (res statsRes) Empty() bool {
	return false
}

type capabilitiesRes struct {
	adapters.Capabilities
}

func (res capabilitiesRes) Code() int {
	return http.StatusOK
}

func (res capabilitiesRes) Headers() map[string]string {
	return map[string]string{}
}

func (res capabilitiesRes) Empty() bool {
	return false
}

type listSyncStatesRes struct {
	provision.SyncStatesPage
}

func (res listSyncStatesRes) Code() int {
	return http.StatusOK
}

func (res listSyncStatesRes) Headers() map[string]string {
	return map[string]string{}
}

func (res listSyncStatesRes) Empty() bool {
	return false
}

type syncStateRes struct {
	provision.SyncState
}

func (res syncStateRes) Code() int {
	return http.StatusOK
}

func (res syncStateRes) Headers() map[string]string {
	return map[string]string{}
}

func (res syncStateRes) Empty() bool {
	return false
}
