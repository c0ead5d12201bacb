/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ledger

import (
	"encoding/json"
	"math"

	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/driver"
	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/services/keys"
	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/services/logging"
	"github.com/pkg/errors"
)

var logger = logging.MustGetLogger("ledger")

// Ledger stores the wrapped tokens, at most one record per token id
type Ledger struct {
	kvs           driver.KVStore
	keyTranslator *keys.Translator
}

func New(kvs driver.KVStore) *Ledger {
	return &Ledger{kvs: kvs, keyTranslator: &keys.Translator{}}
}

// Get returns the token with the given id, ErrNotWrapped if there is none
func (l *Ledger) Get(tokenID string) (*Token, error) {
	raw, err := l.read(tokenID)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.Wrapf(driver.ErrNotWrapped, "token [%s]", tokenID)
	}
	tok := &Token{}
	if err := json.Unmarshal(raw, tok); err != nil {
		return nil, errors.Wrapf(err, "failed unmarshalling token [%s]", tokenID)
	}
	return tok, nil
}

func (l *Ledger) Exists(tokenID string) (bool, error) {
	raw, err := l.read(tokenID)
	if err != nil {
		return false, err
	}
	return len(raw) != 0, nil
}

// Create stores a new token with no locked amount
func (l *Ledger) Create(tok *Token) error {
	exists, err := l.Exists(tok.TokenID)
	if err != nil {
		return err
	}
	if exists {
		return errors.Wrapf(driver.ErrAlreadyWrapped, "token [%s]", tok.TokenID)
	}
	tok.Amount = 0
	return l.Put(tok)
}

// Put overwrites the record of the token
func (l *Ledger) Put(tok *Token) error {
	key, err := l.keyTranslator.CreateTokenKey(tok.TokenID)
	if err != nil {
		return errors.Wrapf(driver.ErrInvalidArgument, "invalid token id [%s]: %s", tok.TokenID, err)
	}
	raw, err := tok.Bytes()
	if err != nil {
		return errors.Wrapf(err, "failed marshalling token [%s]", tok.TokenID)
	}
	if err := l.kvs.PutState(key, raw); err != nil {
		return errors.Wrapf(err, "failed storing token [%s]", tok.TokenID)
	}
	logger.Debugf("stored token [%s], amount [%d]", tok.TokenID, tok.Amount)
	return nil
}

func (l *Ledger) Delete(tokenID string) error {
	key, err := l.keyTranslator.CreateTokenKey(tokenID)
	if err != nil {
		return errors.Wrapf(driver.ErrInvalidArgument, "invalid token id [%s]: %s", tokenID, err)
	}
	if err := l.kvs.DelState(key); err != nil {
		return errors.Wrapf(err, "failed deleting token [%s]", tokenID)
	}
	return nil
}

// All returns every wrapped token, ordered by key
func (l *Ledger) All() ([]*Token, error) {
	it, err := l.kvs.GetStateByPartialCompositeKey(keys.TokenObjectType, []string{})
	if err != nil {
		return nil, errors.Wrap(err, "failed querying tokens")
	}
	defer func() {
		if err := it.Close(); err != nil {
			logger.Warnf("failed closing token iterator: %s", err)
		}
	}()

	tokens := []*Token{}
	for it.HasNext() {
		key, raw, err := it.Next()
		if err != nil {
			return nil, errors.Wrap(err, "failed iterating tokens")
		}
		_, attributes, err := keys.SplitCompositeKey(key)
		if err != nil {
			return nil, errors.WithMessagef(err, "unexpected token key")
		}
		tok := &Token{}
		if err := json.Unmarshal(raw, tok); err != nil {
			return nil, errors.Wrapf(err, "failed unmarshalling token at [%v]", attributes)
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// Increase adds amount to the locked amount of the token
func Increase(tok *Token, amount uint64) error {
	if amount > math.MaxUint64-tok.Amount {
		return errors.Wrapf(driver.ErrInvalidArgument, "adding [%d] to [%d] overflows the locked amount of [%s]", amount, tok.Amount, tok.TokenID)
	}
	tok.Amount += amount
	return nil
}

// Decrease removes amount from the locked amount of the token, never going below zero
func Decrease(tok *Token, amount uint64) error {
	if err := CheckLocked(tok, amount); err != nil {
		return err
	}
	tok.Amount -= amount
	return nil
}

// CheckLocked fails if less than amount is locked
func CheckLocked(tok *Token, amount uint64) error {
	if tok.Amount < amount {
		return errors.Wrapf(driver.ErrInsufficientLocked, "token [%s] has [%d] locked, [%d] requested", tok.TokenID, tok.Amount, amount)
	}
	return nil
}

func (l *Ledger) read(tokenID string) ([]byte, error) {
	key, err := l.keyTranslator.CreateTokenKey(tokenID)
	if err != nil {
		return nil, errors.Wrapf(driver.ErrInvalidArgument, "invalid token id [%s]: %s", tokenID, err)
	}
	raw, err := l.kvs.GetState(key)
	if err != nil {
		return nil, errors.Wrapf(err, "failed reading token [%s]", tokenID)
	}
	return raw, nil
}
