// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package cli

import idsdk "github.com/idrelay/idrelay/pkg/sdk"

// Keep SDK handle in global var.
var sdk idsdk.SDK

// SetSDK sets the IdRelay SDK instance.
func SetSDK(s idsdk.SDK) {
	sdk = s
}
