/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ontology

import (
	"encoding/json"

	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/driver"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

type yamlSignature struct {
	Type      string     `yaml:"type"`
	Functions []string   `yaml:"functionsSignature"`
	Variables [][]string `yaml:"variables"`
}

// FromYAML converts a YAML ontology into the JSON accepted by wrap.
// The document is a list of signatures using the JSON field names.
func FromYAML(raw []byte) ([]byte, error) {
	var doc []yamlSignature
	if err := yaml.UnmarshalStrict(raw, &doc); err != nil {
		return nil, errors.Wrapf(driver.ErrMalformedOntology, "failed unmarshalling yaml ontology: %s", err)
	}
	signatures := make([]*InteractionSignature, 0, len(doc))
	for _, d := range doc {
		sig := &InteractionSignature{
			Type:               OperationKind(d.Type),
			FunctionsSignature: d.Functions,
			Variables:          make([][]VarType, 0, len(d.Variables)),
		}
		for _, vars := range d.Variables {
			converted := make([]VarType, 0, len(vars))
			for _, v := range vars {
				converted = append(converted, VarType(v))
			}
			sig.Variables = append(sig.Variables, converted)
		}
		signatures = append(signatures, sig)
	}
	if err := Validate(signatures); err != nil {
		return nil, err
	}
	return json.Marshal(signatures)
}
