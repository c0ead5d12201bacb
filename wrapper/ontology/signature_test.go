/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ontology

import (
	"testing"

	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/driver"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fungibleOntology = `[
  {"type": "CHECK_PERMISSION", "functionsSignature": ["ClientAccountBalance"], "variables": [[]]},
  {"type": "LOCK", "functionsSignature": ["TransferFrom"], "variables": [["OWNER", "BRIDGE", "AMOUNT"]]},
  {"type": "UNLOCK", "functionsSignature": ["Transfer"], "variables": [["OWNER", "AMOUNT"]]},
  {"type": "MINT", "functionsSignature": ["Mint", "Transfer"], "variables": [["AMOUNT"], ["BRIDGE", "AMOUNT"]]},
  {"type": "BURN", "functionsSignature": ["Burn"], "variables": [["AMOUNT"]]},
  {"type": "ASSIGN", "functionsSignature": ["Transfer"], "variables": [["RECEIVER", "AMOUNT"]]}
]`

func TestParse(t *testing.T) {
	sigs, err := Parse([]byte(fungibleOntology))
	require.NoError(t, err)
	require.Len(t, sigs, 6)

	mint := FindInList(sigs, Mint)
	require.NotNil(t, mint)
	assert.Equal(t, []string{"Mint", "Transfer"}, mint.FunctionsSignature)
	assert.Equal(t, [][]VarType{{Amount}, {Bridge, Amount}}, mint.Variables)

	check := FindInList(sigs, CheckPermission)
	require.NotNil(t, check)
	assert.Empty(t, check.Variables[0])
}

func TestParseRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind error
	}{
		{name: "empty", raw: "", kind: driver.ErrMalformedOntology},
		{name: "not json", raw: "lock it", kind: driver.ErrMalformedOntology},
		{name: "object instead of list", raw: `{"type":"LOCK"}`, kind: driver.ErrMalformedOntology},
		{name: "unknown type", raw: `[{"type":"STEAL","functionsSignature":["f"],"variables":[[]]}]`, kind: driver.ErrMalformedOntology},
		{name: "no functions", raw: `[{"type":"LOCK","functionsSignature":[],"variables":[]}]`, kind: driver.ErrMalformedOntology},
		{name: "length mismatch", raw: `[{"type":"LOCK","functionsSignature":["a","b"],"variables":[[]]}]`, kind: driver.ErrMalformedOntology},
		{name: "empty function name", raw: `[{"type":"LOCK","functionsSignature":[""],"variables":[[]]}]`, kind: driver.ErrMalformedOntology},
		{name: "duplicated type", raw: `[{"type":"LOCK","functionsSignature":["a"],"variables":[[]]},{"type":"LOCK","functionsSignature":["b"],"variables":[[]]}]`, kind: driver.ErrMalformedOntology},
		{name: "null entry", raw: `[null]`, kind: driver.ErrMalformedOntology},
		{name: "unknown variable", raw: `[{"type":"LOCK","functionsSignature":["a"],"variables":[["PASSWORD"]]}]`, kind: driver.ErrUnsupportedVariable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "expected [%v], got [%v]", tt.kind, err)
		})
	}
}

func TestFindInListAbsent(t *testing.T) {
	sigs, err := Parse([]byte(`[{"type":"LOCK","functionsSignature":["a"],"variables":[[]]}]`))
	require.NoError(t, err)
	assert.Nil(t, FindInList(sigs, CheckPermission))
	assert.Nil(t, FindInList(nil, Lock))
}

func TestKindsAndVariables(t *testing.T) {
	for _, k := range OperationKinds {
		assert.True(t, k.Valid(), k)
	}
	assert.False(t, OperationKind("lock").Valid())
	assert.False(t, VarType("").Valid())
	assert.True(t, CallerMSPID.Valid())
}
