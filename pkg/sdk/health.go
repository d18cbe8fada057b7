// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package sdk

import (
	"encoding/json"
	"net/http"

	"github.com/idrelay/idrelay/pkg/errors"
)

// HealthInfo contains the health check response.
type HealthInfo struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	Commit      string `json:"commit"`
	Description string `json:"description"`
	BuildTime   string `json:"build_time"`
	InstanceID  string `json:"instance_id"`
}

func (sdk idSDK) Health() (HealthInfo, errors.SDKError) {
	url := sdk.hostURL + "/health"

	_, body, sdkerr := sdk.processRequest(http.MethodGet, url, "", nil, nil, http.StatusOK)
	if sdkerr != nil {
		return HealthInfo{}, sdkerr
	}

	var health HealthInfo
	if err := json.Unmarshal(body, &health); err != nil {
		return HealthInfo{}, errors.NewSDKError(err)
	}

	return health, nil
}
