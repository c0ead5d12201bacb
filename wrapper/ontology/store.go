/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ontology

import (
	"encoding/json"

	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/driver"
	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/services/keys"
	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/services/logging"
	"github.com/pkg/errors"
)

var logger = logging.MustGetLogger("ontology")

// Store persists the ontology of each wrapped token, one entry per (token, operation type)
type Store struct {
	kvs           driver.KVStore
	keyTranslator *keys.Translator
}

func NewStore(kvs driver.KVStore) *Store {
	return &Store{kvs: kvs, keyTranslator: &keys.Translator{}}
}

// Record writes the given signatures for the token
func (s *Store) Record(tokenID string, signatures []*InteractionSignature) error {
	if err := Validate(signatures); err != nil {
		return err
	}
	for _, sig := range signatures {
		key, err := s.keyTranslator.CreateSignatureKey(tokenID, sig.Type.String())
		if err != nil {
			return errors.WithMessagef(err, "failed creating signature key for [%s:%s]", tokenID, sig.Type)
		}
		raw, err := sig.Bytes()
		if err != nil {
			return errors.Wrapf(err, "failed marshalling signature [%s:%s]", tokenID, sig.Type)
		}
		if err := s.kvs.PutState(key, raw); err != nil {
			return errors.Wrapf(err, "failed storing signature [%s:%s]", tokenID, sig.Type)
		}
		logger.Debugf("recorded signature [%s:%s] with [%d] functions", tokenID, sig.Type, len(sig.FunctionsSignature))
	}
	return nil
}

// Get returns the signature of the given operation type for the token
func (s *Store) Get(tokenID string, kind OperationKind) (*InteractionSignature, error) {
	key, err := s.keyTranslator.CreateSignatureKey(tokenID, kind.String())
	if err != nil {
		return nil, errors.WithMessagef(err, "failed creating signature key for [%s:%s]", tokenID, kind)
	}
	raw, err := s.kvs.GetState(key)
	if err != nil {
		return nil, errors.Wrapf(err, "failed reading signature [%s:%s]", tokenID, kind)
	}
	if len(raw) == 0 {
		return nil, errors.Wrapf(driver.ErrOntologyMissing, "no [%s] signature for token [%s]", kind, tokenID)
	}
	sig := &InteractionSignature{}
	if err := json.Unmarshal(raw, sig); err != nil {
		return nil, errors.Wrapf(err, "failed unmarshalling signature [%s:%s]", tokenID, kind)
	}
	return sig, nil
}

// DeleteAll removes the signatures of every operation type of the token.
// Types that were never recorded are skipped.
func (s *Store) DeleteAll(tokenID string) error {
	for _, kind := range OperationKinds {
		key, err := s.keyTranslator.CreateSignatureKey(tokenID, kind.String())
		if err != nil {
			return errors.WithMessagef(err, "failed creating signature key for [%s:%s]", tokenID, kind)
		}
		raw, err := s.kvs.GetState(key)
		if err != nil {
			return errors.Wrapf(err, "failed reading signature [%s:%s]", tokenID, kind)
		}
		if len(raw) == 0 {
			logger.Debugf("no [%s] signature for token [%s], skipping", kind, tokenID)
			continue
		}
		if err := s.kvs.DelState(key); err != nil {
			return errors.Wrapf(err, "failed deleting signature [%s:%s]", tokenID, kind)
		}
	}
	return nil
}
