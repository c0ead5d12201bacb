/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ontology

import (
	"encoding/json"

	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/driver"
	"github.com/pkg/errors"
)

// InteractionSignature is the foreign call plan of one operation:
// FunctionsSignature[i] is invoked with the values of Variables[i].
type InteractionSignature struct {
	Type               OperationKind `json:"type"`
	FunctionsSignature []string      `json:"functionsSignature"`
	Variables          [][]VarType   `json:"variables"`
}

// Validate checks that all fields of the signature are correctly set
func (s *InteractionSignature) Validate() error {
	if !s.Type.Valid() {
		return errors.Wrapf(driver.ErrMalformedOntology, "unknown operation type [%s]", s.Type)
	}
	if len(s.FunctionsSignature) == 0 {
		return errors.Wrapf(driver.ErrMalformedOntology, "signature [%s] has no functions", s.Type)
	}
	if len(s.FunctionsSignature) != len(s.Variables) {
		return errors.Wrapf(driver.ErrMalformedOntology,
			"signature [%s] has [%d] functions but [%d] variable lists", s.Type, len(s.FunctionsSignature), len(s.Variables))
	}
	for i, f := range s.FunctionsSignature {
		if len(f) == 0 {
			return errors.Wrapf(driver.ErrMalformedOntology, "signature [%s] has an empty function name at [%d]", s.Type, i)
		}
		for _, v := range s.Variables[i] {
			if !v.Valid() {
				return errors.Wrapf(driver.ErrUnsupportedVariable, "signature [%s] function [%s] uses [%s]", s.Type, f, v)
			}
		}
	}
	return nil
}

func (s *InteractionSignature) Bytes() ([]byte, error) {
	return json.Marshal(s)
}

// Parse decodes and validates the ontology supplied to wrap: a JSON array of signatures
func Parse(raw []byte) ([]*InteractionSignature, error) {
	if len(raw) == 0 {
		return nil, errors.Wrap(driver.ErrMalformedOntology, "empty ontology")
	}
	var signatures []*InteractionSignature
	if err := json.Unmarshal(raw, &signatures); err != nil {
		return nil, errors.Wrapf(driver.ErrMalformedOntology, "failed unmarshalling ontology: %s", err)
	}
	if err := Validate(signatures); err != nil {
		return nil, err
	}
	return signatures, nil
}

// Validate checks every signature and that no operation type appears twice
func Validate(signatures []*InteractionSignature) error {
	seen := map[OperationKind]bool{}
	for i, s := range signatures {
		if s == nil {
			return errors.Wrapf(driver.ErrMalformedOntology, "signature at [%d] is empty", i)
		}
		if err := s.Validate(); err != nil {
			return err
		}
		if seen[s.Type] {
			return errors.Wrapf(driver.ErrMalformedOntology, "operation type [%s] defined twice", s.Type)
		}
		seen[s.Type] = true
	}
	return nil
}

// FindInList returns the signature of the given type, nil if there is none
func FindInList(signatures []*InteractionSignature, kind OperationKind) *InteractionSignature {
	for _, s := range signatures {
		if s != nil && s.Type == kind {
			return s
		}
	}
	return nil
}
