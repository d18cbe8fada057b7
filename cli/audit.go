// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"github.com/spf13/cobra"

	idsdk "github.com/idrelay/idrelay/pkg/sdk"
)

var (
	// Actor query parameter.
	Actor string = ""
	// Operation query parameter.
	Operation string = ""
	// ResourceType query parameter.
	ResourceType string = ""
	// ResourceID query parameter.
	ResourceID string = ""
	// Before query parameter, RFC 3339.
	Before string = ""
	// After query parameter, RFC 3339.
	After string = ""
)

// NewAuditCmd returns audit log command.
func NewAuditCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "audit <token>",
		Short: "Audit log",
		Long:  "Lists audit log entries, filterable by actor, operation, resource and time window",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 1 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			pm := idsdk.PageMetadata{
				StartIndex:   StartIndex,
				Count:        Count,
				Actor:        Actor,
				Operation:    Operation,
				ResourceType: ResourceType,
				ResourceID:   ResourceID,
				Before:       Before,
				After:        After,
			}
			page, err := sdk.AuditEntries(pm, args[0])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, page)
		},
	}

	cmd.PersistentFlags().StringVarP(&Actor, "actor", "a", "", "Actor id filter")
	cmd.PersistentFlags().StringVarP(&Operation, "operation", "o", "", "Operation filter, e.g. user.create")
	cmd.PersistentFlags().StringVarP(&ResourceType, "resource-type", "r", "", "Resource type filter")
	cmd.PersistentFlags().StringVarP(&ResourceID, "resource-id", "i", "", "Resource id filter")
	cmd.PersistentFlags().StringVarP(&Before, "before", "b", "", "Only entries before this RFC 3339 time")
	cmd.PersistentFlags().StringVarP(&After, "after", "f", "", "Only entries after this RFC 3339 time")

	return &cmd
}
