// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"github.com/spf13/cobra"

	idsdk "github.com/idrelay/idrelay/pkg/sdk"
)

var cmdProviders = []cobra.Command{
	{
		Use:   "get <token>",
		Short: "List providers",
		Long:  "Lists the downstream providers registered for the token's tenant",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 1 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			page, err := sdk.Providers(args[0])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, page)
		},
	},
	{
		Use:   "health <provider_id> <token>",
		Short: "Provider health",
		Long:  "Probes a downstream provider and reports reachability",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 2 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			health, err := sdk.ProviderHealth(args[0], args[1])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, health)
		},
	},
	{
		Use:   "stats <provider_id> <token>",
		Short: "Provider stats",
		Long:  "Reports connection pool statistics of a provider",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 2 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			stats, err := sdk.ProviderStats(args[0], args[1])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, stats)
		},
	},
	{
		Use:   "capabilities <provider_id> <token>",
		Short: "Provider capabilities",
		Long:  "Reports what a downstream provider supports",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 2 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			caps, err := sdk.ProviderCapabilities(args[0], args[1])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, caps)
		},
	},
}

// NewProvidersCmd returns providers command.
func NewProvidersCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "providers [get | health | stats | capabilities]",
		Short: "Providers management",
		Long:  "Providers management: list providers, probe health, inspect pool stats and capabilities",
	}

	for i := range cmdProviders {
		cmd.AddCommand(&cmdProviders[i])
	}

	return &cmd
}

var cmdSync = []cobra.Command{
	{
		Use:   "get [<state_id>] <token>",
		Short: "Get sync states",
		Long:  "Returns a sync-state record by id, or a filtered page when no id is given",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) < 1 || len(args) > 2 {
				logUsageCmd(*cmd, cmd.Use)
				return
			}

			if len(args) == 1 {
				pm := idsdk.PageMetadata{
					StartIndex: StartIndex,
					Count:      Count,
					Status:     Status,
					ProviderID: ProviderID,
				}
				page, err := sdk.SyncStates(pm, args[0])
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}

				logJSONCmd(*cmd, page)
				return
			}

			state, err := sdk.SyncState(args[0], args[1])
			if err != nil {
				logErrorCmd(*cmd, err)
				return
			}

			logJSONCmd(*cmd, state)
		},
	},
}

// NewSyncCmd returns sync states command.
func NewSyncCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "sync [get]",
		Short: "Sync states",
		Long:  "Downstream provisioning outcomes, filterable by provider and status",
	}

	for i := range cmdSync {
		cmd.AddCommand(&cmdSync[i])
	}

	return &cmd
}
