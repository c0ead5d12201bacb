/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package wrapper

import (
	"context"

	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/driver"
	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/ontology"
	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/services/dispatcher"
	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/services/ledger"
	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/services/logging"
	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/services/permission"
	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/services/resolver"
	"github.com/pkg/errors"
)

var logger = logging.MustGetLogger()

type (
	Token                = ledger.Token
	InteractionSignature = ontology.InteractionSignature
)

// Wrapper operates arbitrary token contracts through the ontology recorded for each wrapped token.
// A Wrapper is bound to the world state of a single transaction.
type Wrapper struct {
	identity   driver.IdentityProvider
	config     *permission.Config
	guard      *permission.Guard
	ledger     *ledger.Ledger
	ontologies *ontology.Store
	dispatcher *dispatcher.Dispatcher
}

func New(kvs driver.KVStore, invoker driver.ContractInvoker, identity driver.IdentityProvider, opts ...Option) *Wrapper {
	o := compileOptions(opts...)
	config := permission.NewConfig(kvs)
	return &Wrapper{
		identity:   identity,
		config:     config,
		guard:      permission.NewGuard(config),
		ledger:     ledger.New(kvs),
		ontologies: ontology.NewStore(kvs),
		dispatcher: dispatcher.New(resolver.New(config, identity), invoker, o.TracerProvider, o.Metrics),
	}
}

// Initialize sets the organization administering the wrapper.
// Once set, only the current owner can change it.
func (w *Wrapper) Initialize(ctx context.Context, ownerMSPID string) error {
	caller, err := w.ClientMSPID()
	if err != nil {
		return err
	}
	owner, err := w.config.Owner()
	if err != nil {
		return err
	}
	if len(owner) != 0 {
		if err := w.guard.CheckOwner(caller); err != nil {
			return errors.WithMessagef(err, "wrapper already initialized")
		}
	}
	if err := w.config.SetOwner(ownerMSPID); err != nil {
		return err
	}
	logger.Infof("wrapper owner set to [%s] by [%s]", ownerMSPID, caller)
	return nil
}

// SetBridge sets the organization and the identity of the bridge. Owner only.
func (w *Wrapper) SetBridge(ctx context.Context, bridgeMSPID string, bridgeID string) error {
	caller, err := w.ClientMSPID()
	if err != nil {
		return err
	}
	if err := w.guard.CheckOwner(caller); err != nil {
		return err
	}
	if err := w.config.SetBridge(bridgeMSPID, bridgeID); err != nil {
		return err
	}
	logger.Infof("bridge set to [%s:%s]", bridgeMSPID, bridgeID)
	return nil
}

// Wrap starts tracking the token held by the given contract and records its ontology.
// If the ontology has a CHECK_PERMISSION signature, it is dispatched before returning.
func (w *Wrapper) Wrap(ctx context.Context, tokenType, tokenID, owner, mspID, channel, contract string, rawOntology []byte) (*Token, error) {
	if err := w.checkCaller(); err != nil {
		return nil, err
	}
	configured, err := w.config.BridgeConfigured()
	if err != nil {
		return nil, err
	}
	if !configured {
		return nil, errors.Wrapf(driver.ErrBridgeNotConfigured, "cannot wrap [%s]", tokenID)
	}
	exists, err := w.ledger.Exists(tokenID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.Wrapf(driver.ErrAlreadyWrapped, "token [%s]", tokenID)
	}
	if len(channel) == 0 || len(contract) == 0 {
		return nil, errors.Wrapf(driver.ErrInvalidArgument, "token [%s] needs a channel and a contract, got [%s:%s]", tokenID, channel, contract)
	}
	signatures, err := ontology.Parse(rawOntology)
	if err != nil {
		return nil, errors.WithMessagef(err, "invalid ontology for [%s]", tokenID)
	}

	tok := &Token{
		TokenType:    tokenType,
		TokenID:      tokenID,
		Owner:        owner,
		MSPID:        mspID,
		ChannelName:  channel,
		ContractName: contract,
	}
	if err := w.ledger.Create(tok); err != nil {
		return nil, err
	}
	if err := w.ontologies.Record(tokenID, signatures); err != nil {
		return nil, err
	}

	if check := ontology.FindInList(signatures, ontology.CheckPermission); check != nil {
		if err := w.dispatcher.Interact(ctx, check, resolver.NewInput(tok, nil, nil)); err != nil {
			// removed explicitly, the failed transaction discards it as well
			if delErr := w.ledger.Delete(tokenID); delErr != nil {
				logger.Errorf("failed removing token [%s] after permission check failure: %s", tokenID, delErr)
			}
			return nil, errors.WithMessagef(err, "permission check on [%s] failed", tokenID)
		}
	}
	logger.Infof("wrapped token [%s] of type [%s] held by [%s:%s]", tokenID, tokenType, channel, contract)
	return tok, nil
}

// Unwrap stops tracking the token. The locked amount must be zero.
func (w *Wrapper) Unwrap(ctx context.Context, tokenID string) error {
	if err := w.checkCaller(); err != nil {
		return err
	}
	tok, err := w.ledger.Get(tokenID)
	if err != nil {
		return err
	}
	if tok.Amount != 0 {
		return errors.Wrapf(driver.ErrStillLocked, "token [%s] has [%d] locked", tokenID, tok.Amount)
	}
	if err := w.ledger.Delete(tokenID); err != nil {
		return err
	}
	if err := w.ontologies.DeleteAll(tokenID); err != nil {
		return err
	}
	logger.Infof("unwrapped token [%s]", tokenID)
	return nil
}

// Lock takes amount of the token under the wrapper's custody
func (w *Wrapper) Lock(ctx context.Context, tokenID string, amount uint64) (*Token, error) {
	return w.apply(ctx, ontology.Lock, tokenID, amount, nil)
}

// Unlock releases amount of the token from the wrapper's custody
func (w *Wrapper) Unlock(ctx context.Context, tokenID string, amount uint64) (*Token, error) {
	return w.apply(ctx, ontology.Unlock, tokenID, amount, nil)
}

// Mint creates amount of the token under the wrapper's custody
func (w *Wrapper) Mint(ctx context.Context, tokenID string, amount uint64) (*Token, error) {
	return w.apply(ctx, ontology.Mint, tokenID, amount, nil)
}

// Burn destroys amount of the locked token
func (w *Wrapper) Burn(ctx context.Context, tokenID string, amount uint64) (*Token, error) {
	return w.apply(ctx, ontology.Burn, tokenID, amount, nil)
}

// Assign hands amount of the locked token over to the receiver
func (w *Wrapper) Assign(ctx context.Context, tokenID string, to string, amount uint64) (*Token, error) {
	if len(to) == 0 {
		return nil, errors.Wrapf(driver.ErrInvalidArgument, "assign on [%s] needs a receiver", tokenID)
	}
	return w.apply(ctx, ontology.Assign, tokenID, amount, &to)
}

// GetToken returns the record of the token
func (w *Wrapper) GetToken(ctx context.Context, tokenID string) (*Token, error) {
	return w.ledger.Get(tokenID)
}

// LockedAmount returns the amount of the token under the wrapper's custody
func (w *Wrapper) LockedAmount(ctx context.Context, tokenID string) (uint64, error) {
	tok, err := w.ledger.Get(tokenID)
	if err != nil {
		return 0, err
	}
	return tok.Amount, nil
}

func (w *Wrapper) TokenExists(ctx context.Context, tokenID string) (bool, error) {
	return w.ledger.Exists(tokenID)
}

func (w *Wrapper) GetAllTokens(ctx context.Context) ([]*Token, error) {
	return w.ledger.All()
}

// GetSignature returns the recorded signature of the given operation type
func (w *Wrapper) GetSignature(ctx context.Context, tokenID string, kind ontology.OperationKind) (*InteractionSignature, error) {
	if !kind.Valid() {
		return nil, errors.Wrapf(driver.ErrInvalidArgument, "unknown operation type [%s]", kind)
	}
	if _, err := w.ledger.Get(tokenID); err != nil {
		return nil, err
	}
	return w.ontologies.Get(tokenID, kind)
}

// ClientMSPID returns the organization of the transaction submitter
func (w *Wrapper) ClientMSPID() (string, error) {
	caller, err := w.identity.CallerMSPID()
	if err != nil {
		return "", errors.WithMessagef(err, "failed getting caller identity")
	}
	return caller, nil
}

// apply runs an amount changing operation: permission, load, precondition, dispatch, persist
func (w *Wrapper) apply(ctx context.Context, kind ontology.OperationKind, tokenID string, amount uint64, receiver *string) (*Token, error) {
	if err := w.checkCaller(); err != nil {
		return nil, err
	}
	tok, err := w.ledger.Get(tokenID)
	if err != nil {
		return nil, err
	}

	next := *tok
	switch kind {
	case ontology.Lock, ontology.Mint:
		err = ledger.Increase(&next, amount)
	case ontology.Unlock, ontology.Burn, ontology.Assign:
		err = ledger.Decrease(&next, amount)
	default:
		err = errors.Wrapf(driver.ErrInvalidArgument, "operation [%s] does not change the locked amount", kind)
	}
	if err != nil {
		return nil, err
	}

	sig, err := w.ontologies.Get(tokenID, kind)
	if err != nil {
		return nil, err
	}
	if err := w.dispatcher.Interact(ctx, sig, resolver.NewInput(tok, &amount, receiver)); err != nil {
		return nil, errors.WithMessagef(err, "[%s] on [%s] failed", kind, tokenID)
	}
	if err := w.ledger.Put(&next); err != nil {
		return nil, err
	}
	logger.Infof("[%s] [%d] of [%s], locked amount [%d] -> [%d]", kind, amount, tokenID, tok.Amount, next.Amount)
	return &next, nil
}

func (w *Wrapper) checkCaller() error {
	caller, err := w.ClientMSPID()
	if err != nil {
		return err
	}
	return w.guard.Check(caller)
}
