/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mock

import (
	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/driver"
)

// Call is one recorded foreign invocation
type Call struct {
	Channel  string
	Contract string
	Args     []string
}

// Function returns the name of the invoked function
func (c Call) Function() string {
	if len(c.Args) == 0 {
		return ""
	}
	return c.Args[0]
}

// Invoker records every invocation and answers with the response registered
// for the invoked function, or with a success.
type Invoker struct {
	Calls     []Call
	Responses map[string]*driver.Response
}

func NewInvoker() *Invoker {
	return &Invoker{Responses: map[string]*driver.Response{}}
}

// FailOn makes every invocation of the given function fail with the given message
func (i *Invoker) FailOn(function string, message string) {
	i.Responses[function] = &driver.Response{Status: 500, Message: message}
}

func (i *Invoker) Invoke(channel string, contract string, args []string) *driver.Response {
	i.Calls = append(i.Calls, Call{Channel: channel, Contract: contract, Args: append([]string{}, args...)})
	if len(args) > 0 {
		if r, ok := i.Responses[args[0]]; ok {
			return r
		}
	}
	return &driver.Response{Status: driver.OK}
}

// Functions returns the names of the invoked functions, in order
func (i *Invoker) Functions() []string {
	res := make([]string, 0, len(i.Calls))
	for _, c := range i.Calls {
		res = append(res, c.Function())
	}
	return res
}

// Reset forgets the recorded calls
func (i *Invoker) Reset() {
	i.Calls = nil
}
