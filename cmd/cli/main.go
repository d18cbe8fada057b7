// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

// Package main contains the entry point of the IdRelay CLI.
package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/idrelay/idrelay/cli"
	idsdk "github.com/idrelay/idrelay/pkg/sdk"
)

func main() {
	sdkConf := idsdk.Config{
		HostURL:         "http://localhost:9017",
		TLSVerification: false,
	}

	rootCmd := &cobra.Command{
		Use: "idrelay-cli",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			conf, err := cli.ParseConfig(sdkConf)
			if err != nil {
				log.Fatalf("failed to parse config: %s", err)
			}

			cli.SetSDK(idsdk.NewSDK(conf))
		},
	}

	rootCmd.AddCommand(cli.NewUsersCmd())
	rootCmd.AddCommand(cli.NewGroupsCmd())
	rootCmd.AddCommand(cli.NewRulesCmd())
	rootCmd.AddCommand(cli.NewProvidersCmd())
	rootCmd.AddCommand(cli.NewSyncCmd())
	rootCmd.AddCommand(cli.NewAuditCmd())
	rootCmd.AddCommand(cli.NewHealthCmd())

	rootCmd.PersistentFlags().StringVarP(
		&sdkConf.HostURL,
		"host-url",
		"H",
		sdkConf.HostURL,
		"IdRelay gateway URL",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&sdkConf.TLSVerification,
		"tls-verification",
		"v",
		sdkConf.TLSVerification,
		"Verify the TLS certificate of the gateway",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&sdkConf.CurlFlag,
		"curl",
		"x",
		sdkConf.CurlFlag,
		"Convert HTTP request to cURL command and print to stderr",
	)

	rootCmd.PersistentFlags().StringVarP(
		&cli.ConfigPath,
		"config",
		"c",
		cli.ConfigPath,
		"Config path",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&cli.RawOutput,
		"raw",
		"r",
		cli.RawOutput,
		"Enables raw output mode for easier parsing of output",
	)

	rootCmd.PersistentFlags().IntVarP(
		&cli.StartIndex,
		"start-index",
		"s",
		cli.StartIndex,
		"startIndex query parameter, 1-based",
	)

	rootCmd.PersistentFlags().IntVarP(
		&cli.Count,
		"count",
		"n",
		cli.Count,
		"count query parameter",
	)

	rootCmd.PersistentFlags().StringVarP(
		&cli.Filter,
		"filter",
		"f",
		cli.Filter,
		"SCIM filter query parameter, e.g. 'userName eq \"jdoe\"'",
	)

	rootCmd.PersistentFlags().StringVar(
		&cli.SortBy,
		"sort-by",
		cli.SortBy,
		"sortBy query parameter",
	)

	rootCmd.PersistentFlags().StringVar(
		&cli.SortOrder,
		"sort-order",
		cli.SortOrder,
		"sortOrder query parameter, ascending or descending",
	)

	rootCmd.PersistentFlags().StringVar(
		&cli.Status,
		"status",
		cli.Status,
		"Sync state status filter",
	)

	rootCmd.PersistentFlags().StringVar(
		&cli.ProviderID,
		"provider-id",
		cli.ProviderID,
		"Provider id filter",
	)

	rootCmd.PersistentFlags().StringVar(
		&cli.IfMatch,
		"if-match",
		cli.IfMatch,
		"If-Match request precondition, a weak ETag",
	)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("failed to execute root cmd : %s", err)
	}
}
