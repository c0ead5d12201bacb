/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"os"

	"github.com/hyperledger-labs/fabric-token-wrapper/cmd/ontologygen/cobra/convert"
	"github.com/hyperledger-labs/fabric-token-wrapper/cmd/ontologygen/cobra/validate"
	"github.com/hyperledger-labs/fabric-token-wrapper/cmd/ontologygen/cobra/version"
	"github.com/spf13/cobra"
)

// The main command describes the service and
// defaults to printing the help message.
var mainCmd = &cobra.Command{
	Use:   "ontologygen",
	Short: "Work with wrapper ontologies.",
	Long:  `ontologygen converts and validates the interaction signatures passed to the wrapper chaincode.`,
}

func main() {
	mainCmd.AddCommand(convert.Cmd())
	mainCmd.AddCommand(validate.Cmd())
	mainCmd.AddCommand(version.Cmd())

	// On failure Cobra prints the usage message and error string, so we only
	// need to exit with a non-0 status
	if mainCmd.Execute() != nil {
		os.Exit(1)
	}
}
