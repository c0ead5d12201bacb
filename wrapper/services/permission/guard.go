/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package permission

import (
	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/driver"
	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/services/logging"
	"github.com/pkg/errors"
)

var logger = logging.MustGetLogger("permission")

// Guard authorizes callers against the configured owner and bridge
type Guard struct {
	config *Config
}

func NewGuard(config *Config) *Guard {
	return &Guard{config: config}
}

// Check succeeds if the caller is the owner or the bridge organization
func (g *Guard) Check(callerMSPID string) error {
	owner, err := g.config.Owner()
	if err != nil {
		return err
	}
	bridgeMSPID, _, err := g.config.Bridge()
	if err != nil {
		return err
	}
	if matches(callerMSPID, owner) || matches(callerMSPID, bridgeMSPID) {
		return nil
	}
	logger.Warnf("caller [%s] is neither owner [%s] nor bridge [%s]", callerMSPID, owner, bridgeMSPID)
	return errors.Wrapf(driver.ErrUnauthorized, "caller [%s] is not allowed to operate the wrapper", callerMSPID)
}

// CheckOwner succeeds if the caller is the owner organization
func (g *Guard) CheckOwner(callerMSPID string) error {
	owner, err := g.config.Owner()
	if err != nil {
		return err
	}
	if matches(callerMSPID, owner) {
		return nil
	}
	return errors.Wrapf(driver.ErrUnauthorized, "caller [%s] is not the wrapper owner", callerMSPID)
}

// matches never authorizes against an unset value
func matches(caller string, configured string) bool {
	return len(configured) != 0 && caller == configured
}
