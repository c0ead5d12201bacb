/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package convert

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/ontology"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type Args struct {
	// InputFile is the YAML ontology to convert
	InputFile string
	// OutputFile receives the JSON ontology, standard output if empty
	OutputFile string
}

// Cmd returns the Cobra Command for Convert
func Cmd() *cobra.Command {
	args := &Args{}
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a YAML ontology to JSON.",
		Long:  `Converts a YAML ontology into the JSON argument expected by the wrap function, validating it on the way.`,
		RunE: func(cmd *cobra.Command, trailing []string) error {
			if len(trailing) != 0 {
				return fmt.Errorf("trailing args detected")
			}
			// Parsing of the command line is done so silence cmd usage
			cmd.SilenceUsage = true
			if err := Convert(args, cmd.OutOrStdout()); err != nil {
				return errors.Wrap(err, "failed to convert ontology")
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&args.InputFile, "input", "i", "", "yaml ontology file")
	flags.StringVarP(&args.OutputFile, "output", "o", "", "json output file, standard output if not set")
	return cmd
}

// Convert converts the input file and writes the result to the output file, or to out
func Convert(args *Args, out io.Writer) error {
	raw, err := os.ReadFile(args.InputFile)
	if err != nil {
		return errors.Wrapf(err, "failed to read file at [%s]", args.InputFile)
	}
	converted, err := ontology.FromYAML(raw)
	if err != nil {
		return errors.WithMessagef(err, "invalid ontology at [%s]", args.InputFile)
	}
	indented := &bytes.Buffer{}
	if err := json.Indent(indented, converted, "", "  "); err != nil {
		return errors.Wrap(err, "failed to indent ontology")
	}
	indented.WriteByte('\n')

	if len(args.OutputFile) == 0 {
		_, err = out.Write(indented.Bytes())
		return err
	}
	if err := os.WriteFile(args.OutputFile, indented.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write file at [%s]", args.OutputFile)
	}
	return nil
}
