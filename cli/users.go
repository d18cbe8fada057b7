// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	idsdk "github.com/idrelay/idrelay/pkg/sdk"
	"github.com/idrelay/idrelay/pkg/scim"
)

var cmdUsers = []cobra.Command{
	{
		Use:   "create <JSON_user> <token>",
		Short: "Create user",
		Long:  "Creates a new SCIM user within the token's tenant",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 2 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			var user scim.User
			if err := json.Unmarshal([]byte(args[0]), &user); err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			user, err := sdk.CreateUser(user, args[1])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, user)
		},
	},
	{
		Use:   "get [<user_id>] <token>",
		Short: "Get users",
		Long:  "Returns a user by id, or a page of users when no id is given",
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
				page, err := sdk.Users(pm, args[0])
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}

				logJSONCmd(*cmd, page)
				return
			}

			user, err := sdk.User(args[0], args[1])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, user)
		},
	},
	{
		Use:   "update <JSON_user> <token>",
		Short: "Update user",
		Long:  "Replaces a user resource, guarded by the --if-match version",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 2 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			var user scim.User
			if err := json.Unmarshal([]byte(args[0]), &user); err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			user, err := sdk.UpdateUser(user, IfMatch, args[1])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, user)
		},
	},
	{
		Use:   "patch <user_id> <JSON_operations> <token>",
		Short: "Patch user",
		Long:  "Applies SCIM patch operations to a user resource",
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

			user, err := sdk.PatchUser(args[0], ops, IfMatch, args[2])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, user)
		},
	},
	{
		Use:   "delete <user_id> <token>",
		Short: "Delete user",
		Long:  "Removes a user resource and deprovisions it downstream",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 2 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			if err := sdk.DeleteUser(args[0], IfMatch, args[1]); err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logOKCmd(*cmd)
		},
	},
}

// NewUsersCmd returns users command.
func NewUsersCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "users [create | get | update | patch | delete]",
		Short: "Users management",
		Long:  "Users management: create, retrieve, update, patch and delete SCIM users",
	}

	for i := range cmdUsers {
		cmd.AddCommand(&cmdUsers[i])
	}

	return &cmd
}
