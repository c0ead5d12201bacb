/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package wcc_test

import (
	"sort"
	"strings"

	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/services/keys"
	"github.com/hyperledger/fabric-chaincode-go/v2/shim"
	"github.com/hyperledger/fabric-protos-go-apiv2/ledger/queryresult"
	"github.com/hyperledger/fabric-protos-go-apiv2/msp"
	pb "github.com/hyperledger/fabric-protos-go-apiv2/peer"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/proto"
)

// fakeStub keeps the writes of the running transaction apart from the
// committed state, and commits them only if the invocation succeeds.
type fakeStub struct {
	shim.ChaincodeStubInterface

	txID    string
	args    []string
	creator []byte

	committed map[string][]byte
	pending   map[string][]byte
	deleted   map[string]bool

	invocations []invocation
	failing     map[string]string
}

type invocation struct {
	channel  string
	contract string
	args     []string
}

func newFakeStub() *fakeStub {
	return &fakeStub{
		committed: map[string][]byte{},
		failing:   map[string]string{},
	}
}

func (s *fakeStub) setCaller(mspID string) {
	raw, err := proto.Marshal(&msp.SerializedIdentity{Mspid: mspID, IdBytes: []byte("-----BEGIN CERTIFICATE-----")})
	if err != nil {
		panic(err)
	}
	s.creator = raw
}

// begin starts a new transaction with the given arguments
func (s *fakeStub) begin(txID string, args ...string) {
	s.txID = txID
	s.args = args
	s.pending = map[string][]byte{}
	s.deleted = map[string]bool{}
	s.invocations = nil
}

// end commits the pending writes if the response is a success
func (s *fakeStub) end(res *pb.Response) {
	if res.Status >= shim.ERRORTHRESHOLD {
		return
	}
	for k := range s.deleted {
		delete(s.committed, k)
	}
	for k, v := range s.pending {
		s.committed[k] = v
	}
}

func (s *fakeStub) GetTxID() string { return s.txID }

func (s *fakeStub) GetArgs() [][]byte {
	res := make([][]byte, len(s.args))
	for i, a := range s.args {
		res[i] = []byte(a)
	}
	return res
}

func (s *fakeStub) GetStringArgs() []string { return s.args }

func (s *fakeStub) GetCreator() ([]byte, error) { return s.creator, nil }

func (s *fakeStub) GetState(key string) ([]byte, error) {
	if v, ok := s.pending[key]; ok {
		return v, nil
	}
	if s.deleted[key] {
		return nil, nil
	}
	return s.committed[key], nil
}

func (s *fakeStub) PutState(key string, value []byte) error {
	delete(s.deleted, key)
	s.pending[key] = value
	return nil
}

func (s *fakeStub) DelState(key string) error {
	delete(s.pending, key)
	s.deleted[key] = true
	return nil
}

func (s *fakeStub) GetStateByPartialCompositeKey(objectType string, attributes []string) (shim.StateQueryIteratorInterface, error) {
	prefix, err := keys.CreateCompositeKey(objectType, attributes)
	if err != nil {
		return nil, err
	}
	var matching []string
	for k := range s.committed {
		if strings.HasPrefix(k, prefix) {
			matching = append(matching, k)
		}
	}
	sort.Strings(matching)
	it := &fakeIterator{}
	for _, k := range matching {
		it.kvs = append(it.kvs, &queryresult.KV{Key: k, Value: s.committed[k]})
	}
	return it, nil
}

func (s *fakeStub) InvokeChaincode(chaincodeName string, args [][]byte, channel string) *pb.Response {
	call := invocation{channel: channel, contract: chaincodeName}
	for _, a := range args {
		call.args = append(call.args, string(a))
	}
	s.invocations = append(s.invocations, call)
	if msg, ok := s.failing[call.args[0]]; ok {
		return shim.Error(msg)
	}
	return shim.Success(nil)
}

type fakeIterator struct {
	kvs []*queryresult.KV
	pos int
}

func (i *fakeIterator) HasNext() bool { return i.pos < len(i.kvs) }

func (i *fakeIterator) Next() (*queryresult.KV, error) {
	if !i.HasNext() {
		return nil, errors.New("no more entries")
	}
	kv := i.kvs[i.pos]
	i.pos++
	return kv, nil
}

func (i *fakeIterator) Close() error { return nil }
