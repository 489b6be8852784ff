/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package verifier-rest OpenID4VP verifier endpoint REST API.
package main

import (
	"github.com/spf13/cobra"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/openvp/verifier-endpoint/cmd/verifier-rest/startcmd"
)

var logger = log.New("verifier-rest")

func main() {
	rootCmd := &cobra.Command{
		Use: "verifier-rest",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}

	rootCmd.AddCommand(startcmd.GetStartCmd(&startcmd.HTTPServer{}))

	if err := rootCmd.Execute(); err != nil {
		logger.Fatal("Failed to run verifier-rest", log.WithError(err))
	}
}
