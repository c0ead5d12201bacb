/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mock

import (
	"sort"
	"strings"

	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/driver"
	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/services/keys"
	"github.com/pkg/errors"
)

// KVStore is an in-memory world state. Writes are applied immediately,
// there is no transaction to roll back.
type KVStore struct {
	State map[string][]byte

	GetErr error
	PutErr error
}

func NewKVStore() *KVStore {
	return &KVStore{State: map[string][]byte{}}
}

func (s *KVStore) GetState(key string) ([]byte, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	return s.State[key], nil
}

func (s *KVStore) PutState(key string, value []byte) error {
	if s.PutErr != nil {
		return s.PutErr
	}
	s.State[key] = value
	return nil
}

func (s *KVStore) DelState(key string) error {
	delete(s.State, key)
	return nil
}

func (s *KVStore) GetStateByPartialCompositeKey(objectType string, attributes []string) (driver.StateIterator, error) {
	prefix, err := keys.CreateCompositeKey(objectType, attributes)
	if err != nil {
		return nil, errors.WithMessagef(err, "invalid partial key")
	}
	var matching []string
	for k := range s.State {
		if strings.HasPrefix(k, prefix) {
			matching = append(matching, k)
		}
	}
	sort.Strings(matching)
	it := &iterator{}
	for _, k := range matching {
		it.keys = append(it.keys, k)
		it.values = append(it.values, s.State[k])
	}
	return it, nil
}

// Snapshot returns a copy of the current state
func (s *KVStore) Snapshot() map[string]string {
	res := make(map[string]string, len(s.State))
	for k, v := range s.State {
		res[k] = string(v)
	}
	return res
}

type iterator struct {
	keys   []string
	values [][]byte
	pos    int
}

func (i *iterator) HasNext() bool { return i.pos < len(i.keys) }

func (i *iterator) Next() (string, []byte, error) {
	if !i.HasNext() {
		return "", nil, errors.New("iterator exhausted")
	}
	k, v := i.keys[i.pos], i.values[i.pos]
	i.pos++
	return k, v, nil
}

func (i *iterator) Close() error { return nil }
