/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package wcc

import (
	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/driver"
	"github.com/hyperledger/fabric-chaincode-go/v2/shim"
	"github.com/hyperledger/fabric-protos-go-apiv2/msp"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/proto"
)

// kvsWrapper exposes the world state of the stub
type kvsWrapper struct {
	stub shim.ChaincodeStubInterface
}

func (k *kvsWrapper) GetState(key string) ([]byte, error) {
	return k.stub.GetState(key)
}

func (k *kvsWrapper) PutState(key string, value []byte) error {
	return k.stub.PutState(key, value)
}

func (k *kvsWrapper) DelState(key string) error {
	return k.stub.DelState(key)
}

func (k *kvsWrapper) GetStateByPartialCompositeKey(objectType string, attributes []string) (driver.StateIterator, error) {
	it, err := k.stub.GetStateByPartialCompositeKey(objectType, attributes)
	if err != nil {
		return nil, err
	}
	return &iteratorWrapper{it: it}, nil
}

type iteratorWrapper struct {
	it shim.StateQueryIteratorInterface
}

func (i *iteratorWrapper) HasNext() bool { return i.it.HasNext() }

func (i *iteratorWrapper) Next() (string, []byte, error) {
	kv, err := i.it.Next()
	if err != nil {
		return "", nil, err
	}
	return kv.GetKey(), kv.GetValue(), nil
}

func (i *iteratorWrapper) Close() error { return i.it.Close() }

// invokerWrapper calls other chaincodes through the stub
type invokerWrapper struct {
	stub shim.ChaincodeStubInterface
}

func (i *invokerWrapper) Invoke(channel string, contract string, args []string) *driver.Response {
	raw := make([][]byte, len(args))
	for j, a := range args {
		raw[j] = []byte(a)
	}
	res := i.stub.InvokeChaincode(contract, raw, channel)
	if res == nil {
		return nil
	}
	return &driver.Response{Status: res.GetStatus(), Payload: res.GetPayload(), Message: res.GetMessage()}
}

// creatorIdentity reads the MSP of the submitter from the signed proposal
type creatorIdentity struct {
	stub shim.ChaincodeStubInterface
}

func (c *creatorIdentity) CallerMSPID() (string, error) {
	creator, err := c.stub.GetCreator()
	if err != nil {
		return "", errors.Wrap(err, "failed getting creator")
	}
	if len(creator) == 0 {
		return "", errors.New("empty creator")
	}
	sid := &msp.SerializedIdentity{}
	if err := proto.Unmarshal(creator, sid); err != nil {
		return "", errors.Wrap(err, "failed unmarshalling creator")
	}
	if len(sid.GetMspid()) == 0 {
		return "", errors.New("creator carries no msp id")
	}
	return sid.GetMspid(), nil
}
