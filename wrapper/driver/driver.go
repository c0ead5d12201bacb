/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package driver

const (
	// OK is the status returned by a successful foreign invocation
	OK = 200
	// ErrorThreshold is the first status treated as a failure, as the peer does
	ErrorThreshold = 400
)

// StateIterator iterates over the key-value pairs returned by a range query
type StateIterator interface {
	HasNext() bool
	Next() (key string, value []byte, err error)
	Close() error
}

// KVStore gives access to the world state of the current transaction.
// Writes become visible to other transactions only if the transaction commits.
type KVStore interface {
	GetState(key string) ([]byte, error)
	PutState(key string, value []byte) error
	DelState(key string) error
	// GetStateByPartialCompositeKey returns the entries whose composite key
	// starts with the given object type and attributes
	GetStateByPartialCompositeKey(objectType string, attributes []string) (StateIterator, error)
}

// Response is the outcome of a foreign contract invocation
type Response struct {
	Status  int32
	Payload []byte
	Message string
}

// Failed returns true if the status is outside the success range
func (r *Response) Failed() bool {
	return r == nil || r.Status >= ErrorThreshold
}

// ContractInvoker calls another contract synchronously within the current transaction
type ContractInvoker interface {
	Invoke(channel string, contract string, args []string) *Response
}

// IdentityProvider returns the MSP identifier of the transaction submitter
type IdentityProvider interface {
	CallerMSPID() (string, error)
}
