/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ledger

import (
	"encoding/json"
)

// Token is the wrapper's record of a wrapped asset.
// ChannelName and ContractName locate the real token contract.
type Token struct {
	TokenType    string `json:"tokenType"`
	TokenID      string `json:"tokenId"`
	Owner        string `json:"owner"`
	MSPID        string `json:"mspId"`
	ChannelName  string `json:"channelName"`
	ContractName string `json:"contractName"`
	// Amount is the quantity currently locked under the wrapper's custody
	Amount uint64 `json:"amount"`
}

func (t *Token) Bytes() ([]byte, error) {
	return json.Marshal(t)
}
