/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package resolver

import (
	"strconv"

	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/driver"
	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/ontology"
	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/services/ledger"
	"github.com/pkg/errors"
)

// Input carries the values available when a signature is dispatched.
// Amount and Receiver are nil when the operation does not take them.
type Input struct {
	Token    *ledger.Token
	Amount   *uint64
	Receiver *string
}

// NewInput returns the input of an operation taking an amount and an optional receiver
func NewInput(tok *ledger.Token, amount *uint64, receiver *string) *Input {
	return &Input{Token: tok, Amount: amount, Receiver: receiver}
}

// BridgeSource returns the configured bridge
type BridgeSource interface {
	Bridge() (mspID string, id string, err error)
}

// Resolver maps symbolic parameters to concrete values
type Resolver struct {
	bridge   BridgeSource
	identity driver.IdentityProvider
}

func New(bridge BridgeSource, identity driver.IdentityProvider) *Resolver {
	return &Resolver{bridge: bridge, identity: identity}
}

// Resolve returns the value of v for the given input
func (r *Resolver) Resolve(v ontology.VarType, in *Input) (string, error) {
	if in == nil || in.Token == nil {
		return "", errors.Wrapf(driver.ErrMissingArgument, "no token to resolve [%s] against", v)
	}
	switch v {
	case ontology.ContractName:
		return in.Token.ContractName, nil
	case ontology.ChannelName:
		return in.Token.ChannelName, nil
	case ontology.TokenID:
		return in.Token.TokenID, nil
	case ontology.Owner:
		return in.Token.Owner, nil
	case ontology.OwnerMSPID:
		return in.Token.MSPID, nil
	case ontology.Bridge:
		_, id, err := r.bridge.Bridge()
		if err != nil {
			return "", errors.WithMessagef(err, "failed resolving [%s]", v)
		}
		return id, nil
	case ontology.BridgeMSPID:
		mspID, _, err := r.bridge.Bridge()
		if err != nil {
			return "", errors.WithMessagef(err, "failed resolving [%s]", v)
		}
		return mspID, nil
	case ontology.Amount:
		if in.Amount == nil {
			return "", errors.Wrapf(driver.ErrMissingArgument, "operation on [%s] has no amount", in.Token.TokenID)
		}
		return strconv.FormatUint(*in.Amount, 10), nil
	case ontology.Receiver:
		if in.Receiver == nil {
			return "", errors.Wrapf(driver.ErrMissingArgument, "operation on [%s] has no receiver", in.Token.TokenID)
		}
		return *in.Receiver, nil
	case ontology.CallerMSPID:
		mspID, err := r.identity.CallerMSPID()
		if err != nil {
			return "", errors.WithMessagef(err, "failed resolving [%s]", v)
		}
		return mspID, nil
	default:
		return "", errors.Wrapf(driver.ErrUnsupportedVariable, "[%s]", v)
	}
}

// ResolveAll resolves the variables in order
func (r *Resolver) ResolveAll(vars []ontology.VarType, in *Input) ([]string, error) {
	values := make([]string, 0, len(vars))
	for _, v := range vars {
		value, err := r.Resolve(v, in)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, nil
}
