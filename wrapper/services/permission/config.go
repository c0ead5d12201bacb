/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package permission

import (
	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/driver"
	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/services/keys"
	"github.com/pkg/errors"
)

// Config holds the identities allowed to operate the wrapper.
// Values live on the world state and are read on every call.
type Config struct {
	kvs           driver.KVStore
	keyTranslator *keys.Translator
}

func NewConfig(kvs driver.KVStore) *Config {
	return &Config{kvs: kvs, keyTranslator: &keys.Translator{}}
}

// Owner returns the MSP allowed to administer the wrapper, empty if unset
func (c *Config) Owner() (string, error) {
	return c.get(keys.OwnerMSPIDKey)
}

func (c *Config) SetOwner(mspID string) error {
	if len(mspID) == 0 {
		return errors.Wrap(driver.ErrInvalidArgument, "empty owner msp id")
	}
	return c.put(keys.OwnerMSPIDKey, mspID)
}

// Bridge returns the MSP and the identity of the bridge, empty if unset
func (c *Config) Bridge() (mspID string, id string, err error) {
	mspID, err = c.get(keys.BridgeMSPIDKey)
	if err != nil {
		return "", "", err
	}
	id, err = c.get(keys.BridgeIDKey)
	if err != nil {
		return "", "", err
	}
	return mspID, id, nil
}

func (c *Config) SetBridge(mspID string, id string) error {
	if len(mspID) == 0 || len(id) == 0 {
		return errors.Wrapf(driver.ErrInvalidArgument, "bridge msp id [%s] and id [%s] must be set", mspID, id)
	}
	if err := c.put(keys.BridgeMSPIDKey, mspID); err != nil {
		return err
	}
	return c.put(keys.BridgeIDKey, id)
}

// BridgeConfigured returns true if both bridge values are set
func (c *Config) BridgeConfigured() (bool, error) {
	mspID, id, err := c.Bridge()
	if err != nil {
		return false, err
	}
	return len(mspID) != 0 && len(id) != 0, nil
}

func (c *Config) get(name string) (string, error) {
	key, err := c.keyTranslator.CreateConfigKey(name)
	if err != nil {
		return "", errors.WithMessagef(err, "failed creating config key [%s]", name)
	}
	raw, err := c.kvs.GetState(key)
	if err != nil {
		return "", errors.Wrapf(err, "failed reading config [%s]", name)
	}
	return string(raw), nil
}

func (c *Config) put(name string, value string) error {
	key, err := c.keyTranslator.CreateConfigKey(name)
	if err != nil {
		return errors.WithMessagef(err, "failed creating config key [%s]", name)
	}
	if err := c.kvs.PutState(key, []byte(value)); err != nil {
		return errors.Wrapf(err, "failed writing config [%s]", name)
	}
	return nil
}
