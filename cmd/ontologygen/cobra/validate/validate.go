/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package validate

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/ontology"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Cmd returns the Cobra Command for Validate
func Cmd() *cobra.Command {
	var inputFile string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an ontology.",
		Long:  `Validates a JSON or YAML ontology the way the wrap function does.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("trailing args detected")
			}
			// Parsing of the command line is done so silence cmd usage
			cmd.SilenceUsage = true
			if err := Validate(inputFile, cmd.OutOrStdout()); err != nil {
				return errors.Wrap(err, "failed to validate ontology")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "ontology file, yaml if its extension is .yaml or .yml, json otherwise")
	return cmd
}

// Validate parses the ontology at the given path and prints the operations it covers
func Validate(inputFile string, out io.Writer) error {
	raw, err := os.ReadFile(inputFile)
	if err != nil {
		return errors.Wrapf(err, "failed to read file at [%s]", inputFile)
	}
	switch strings.ToLower(filepath.Ext(inputFile)) {
	case ".yaml", ".yml":
		raw, err = ontology.FromYAML(raw)
		if err != nil {
			return errors.WithMessagef(err, "invalid ontology at [%s]", inputFile)
		}
	}
	sigs, err := ontology.Parse(raw)
	if err != nil {
		return errors.WithMessagef(err, "invalid ontology at [%s]", inputFile)
	}

	kinds := make([]string, 0, len(sigs))
	for _, sig := range sigs {
		kinds = append(kinds, string(sig.Type))
	}
	_, err = fmt.Fprintf(out, "ontology [%s] is valid, it covers [%s]\n", inputFile, strings.Join(kinds, ", "))
	return err
}
