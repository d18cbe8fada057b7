// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	idsdk "github.com/idrelay/idrelay/pkg/sdk"
)

var cmdRules = []cobra.Command{
	{
		Use:   "create <JSON_rule> <token>",
		Short: "Create rule",
		Long:  "Creates a new transformation rule",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 2 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			var rule idsdk.Rule
			if err := json.Unmarshal([]byte(args[0]), &rule); err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			rule, err := sdk.CreateRule(rule, args[1])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, rule)
		},
	},
	{
		Use:   "get [<rule_id>] <token>",
		Short: "Get rules",
		Long:  "Returns a rule by id, or a page of rules when no id is given",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) < 1 || len(args) > 2 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			if len(args) == 1 {
				pm := idsdk.PageMetadata{
					StartIndex: StartIndex,
					Count:      Count,
					ProviderID: ProviderID,
				}
				page, err := sdk.Rules(pm, args[0])
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}

				logJSONCmd(*cmd, page)
				return
			}

			rule, err := sdk.Rule(args[0], args[1])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, rule)
		},
	},
	{
		Use:   "update <JSON_rule> <token>",
		Short: "Update rule",
		Long:  "Replaces a transformation rule, guarded by the --if-match version",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 2 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			var rule idsdk.Rule
			if err := json.Unmarshal([]byte(args[0]), &rule); err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			rule, err := sdk.UpdateRule(rule, IfMatch, args[1])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, rule)
		},
	},
	{
		Use:   "delete <rule_id> <token>",
		Short: "Delete rule",
		Long:  "Removes a transformation rule",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 2 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			if err := sdk.DeleteRule(args[0], IfMatch, args[1]); err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logOKCmd(*cmd)
		},
	},
	{
		Use:   "enable <rule_id> <token>",
		Short: "Enable rule",
		Long:  "Activates a transformation rule",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 2 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			rule, err := sdk.EnableRule(args[0], args[1])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, rule)
		},
	},
	{
		Use:   "disable <rule_id> <token>",
		Short: "Disable rule",
		Long:  "Deactivates a transformation rule",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 2 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			rule, err := sdk.DisableRule(args[0], args[1])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, rule)
		},
	},
	{
		Use:   "test <JSON_rule> <JSON_inputs> <token>",
		Short: "Test rule",
		Long:  "Evaluates a rule against sample inputs without storing it",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 3 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			var rule idsdk.Rule
			if err := json.Unmarshal([]byte(args[0]), &rule); err != nil {
				logErrorCmd(*cmd, err)
				return
			}
			var inputs []string
			if err := json.Unmarshal([]byte(args[1]), &inputs); err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			results, err := sdk.TestRule(rule, inputs, args[2])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, results)
		},
	},
}

// NewRulesCmd returns rules command.
func NewRulesCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "rules [create | get | update | delete | enable | disable | test]",
		Short: "Transformation rules management",
		Long:  "Transformation rules management: create, retrieve, update, delete, toggle and test rules",
	}

	for i := range cmdRules {
		cmd.AddCommand(&cmdRules[i])
	}

	return &cmd
}
