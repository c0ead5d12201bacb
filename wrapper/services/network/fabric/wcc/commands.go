/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package wcc

const (
	InitializeFunction   = "Initialize"
	SetBridgeFunction    = "setBridge"
	WrapFunction         = "wrap"
	UnwrapFunction       = "unwrap"
	LockFunction         = "lock"
	UnlockFunction       = "unlock"
	MintFunction         = "mint"
	BurnFunction         = "burn"
	AssignFunction       = "assign"
	GetTokenFunction     = "getToken"
	LockedAmountFunction = "lockedAmount"
	TokenExistsFunction  = "tokenExists"
	GetAllTokensFunction = "getAllTokens"
	GetSignatureFunction = "getSignature"
	ClientMSPIDFunction  = "clientMspId"
)
