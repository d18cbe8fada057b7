// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	idsdk "github.com/idrelay/idrelay/pkg/sdk"
	"github.com/idrelay/idrelay/pkg/scim"
)

var cmdGroups = []cobra.Command{
	{
		Use:   "create <JSON_group> <token>",
		Short: "Create group",
		Long:  "Creates a new SCIM group within the token's tenant",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 2 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			var group scim.Group
			if err := json.Unmarshal([]byte(args[0]), &group); err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			group, err := sdk.CreateGroup(group, args[1])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, group)
		},
	},
	{
		Use:   "get [<group_id>] <token>",
		Short: "Get groups",
		Long:  "Returns a group by id, or a page of groups when no id is given",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) < 1 || len(args) > 2 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			if len(args) == 1 {
				pm := idsdk.PageMetadata{
					StartIndex: StartIndex,
					Count:      Count,
					Filter:     Filter,
					SortBy:     SortBy,
					SortOrder:  SortOrder,
				}
				page, err := sdk.Groups(pm, args[0])
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}

				logJSONCmd(*cmd, page)
				return
			}

			group, err := sdk.Group(args[0], args[1])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, group)
		},
	},
	{
		Use:   "update <JSON_group> <token>",
		Short: "Update group",
		Long:  "Replaces a group resource, guarded by the --if-match version",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 2 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			var group scim.Group
			if err := json.Unmarshal([]byte(args[0]), &group); err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			group, err := sdk.UpdateGroup(group, IfMatch, args[1])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, group)
		},
	},
	{
		Use:   "patch <group_id> <JSON_operations> <token>",
		Short: "Patch group",
		Long:  "Applies SCIM patch operations to a group, including membership changes",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 3 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			var ops []idsdk.PatchOp
			if err := json.Unmarshal([]byte(args[1]), &ops); err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			group, err := sdk.PatchGroup(args[0], ops, IfMatch, args[2])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, group)
		},
	},
	{
		Use:   "delete <group_id> <token>",
		Short: "Delete group",
		Long:  "Removes a group resource and deprovisions it downstream",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 2 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			if err := sdk.DeleteGroup(args[0], IfMatch, args[1]); err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logOKCmd(*cmd)
		},
	},
}

// NewGroupsCmd returns groups command.
func NewGroupsCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "groups [create | get | update | patch | delete]",
		Short: "Groups management",
		Long:  "Groups management: create, retrieve, update, patch and delete SCIM groups",
	}

	for i := range cmdGroups {
		cmd.AddCommand(&cmdGroups[i])
	}

	return &cmd
}
