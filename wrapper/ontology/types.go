/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ontology

// OperationKind identifies the wrapper operation an interaction signature serves
type OperationKind string

const (
	CheckPermission OperationKind = "CHECK_PERMISSION"
	Lock            OperationKind = "LOCK"
	Unlock          OperationKind = "UNLOCK"
	Mint            OperationKind = "MINT"
	Burn            OperationKind = "BURN"
	Assign          OperationKind = "ASSIGN"
)

// OperationKinds lists every kind, in declaration order
var OperationKinds = []OperationKind{CheckPermission, Lock, Unlock, Mint, Burn, Assign}

func (k OperationKind) Valid() bool {
	switch k {
	case CheckPermission, Lock, Unlock, Mint, Burn, Assign:
		return true
	default:
		return false
	}
}

func (k OperationKind) String() string { return string(k) }

// VarType is a symbolic parameter resolved when a signature is dispatched
type VarType string

const (
	ContractName VarType = "CONTRACT_NAME"
	ChannelName  VarType = "CHANNEL_NAME"
	TokenID      VarType = "TOKEN_ID"
	Owner        VarType = "OWNER"
	OwnerMSPID   VarType = "OWNER_MSPID"
	Bridge       VarType = "BRIDGE"
	BridgeMSPID  VarType = "BRIDGE_MSPID"
	Amount       VarType = "AMOUNT"
	Receiver     VarType = "RECEIVER"
	CallerMSPID  VarType = "CALLER_MSPID"
)

func (v VarType) Valid() bool {
	switch v {
	case ContractName, ChannelName, TokenID, Owner, OwnerMSPID, Bridge, BridgeMSPID, Amount, Receiver, CallerMSPID:
		return true
	default:
		return false
	}
}

func (v VarType) String() string { return string(v) }
