/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package wcc_test

import (
	"encoding/json"
	"fmt"

	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper"
	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/services/metrics"
	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/services/network/fabric/wcc"
	pb "github.com/hyperledger/fabric-protos-go-apiv2/peer"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const ontologyJSON = `[
  {"type": "CHECK_PERMISSION", "functionsSignature": ["ClientAccountBalance"], "variables": [["OWNER"]]},
  {"type": "LOCK", "functionsSignature": ["TransferFrom"], "variables": [["OWNER", "BRIDGE", "AMOUNT"]]},
  {"type": "UNLOCK", "functionsSignature": ["Transfer"], "variables": [["OWNER", "AMOUNT"]]},
  {"type": "MINT", "functionsSignature": ["Mint"], "variables": [["AMOUNT"]]},
  {"type": "BURN", "functionsSignature": ["Burn"], "variables": [["AMOUNT"]]},
  {"type": "ASSIGN", "functionsSignature": ["Transfer"], "variables": [["RECEIVER", "AMOUNT"]]}
]`

var _ = Describe("WrapperChaincode", func() {
	var (
		stub     *fakeStub
		cc       *wcc.WrapperChaincode
		provider *metrics.MemoryProvider
		txCount  int
	)

	invoke := func(caller string, args ...string) *pb.Response {
		txCount++
		stub.setCaller(caller)
		stub.begin(fmt.Sprintf("tx%d", txCount), args...)
		res := cc.Invoke(stub)
		stub.end(res)
		return res
	}

	expectOK := func(res *pb.Response) {
		ExpectWithOffset(1, res.Status).To(Equal(int32(200)), res.Message)
	}

	expectFailure := func(res *pb.Response, msg string) {
		ExpectWithOffset(1, res.Status).To(Equal(int32(500)))
		ExpectWithOffset(1, res.Message).To(ContainSubstring(msg))
	}

	lockedAmount := func(id string) string {
		res := invoke("Org1MSP", wcc.LockedAmountFunction, id)
		ExpectWithOffset(1, res.Status).To(Equal(int32(200)), res.Message)
		return string(res.Payload)
	}

	BeforeEach(func() {
		stub = newFakeStub()
		provider = metrics.NewMemoryProvider()
		cc = wcc.New(metrics.NewMetrics(provider), nil)
	})

	Describe("Init", func() {
		It("succeeds without arguments", func() {
			stub.begin("init")
			Expect(cc.Init(stub).Status).To(Equal(int32(200)))
			Expect(stub.pending).To(BeEmpty())
		})

		It("initializes the owner when asked to", func() {
			stub.setCaller("Org1MSP")
			stub.begin("init", wcc.InitializeFunction, "Org1MSP")
			res := cc.Init(stub)
			stub.end(res)
			expectOK(res)
			expectOK(invoke("Org1MSP", wcc.SetBridgeFunction, "BridgeMSP", "bridge-relay"))
		})
	})

	Describe("Invoke", func() {
		It("rejects unknown functions and wrong arity", func() {
			stub.begin("tx")
			expectFailure(cc.Invoke(stub), "function not provided")
			expectFailure(invoke("Org1MSP", "steal", "T1"), "function [steal] not recognized")
			expectFailure(invoke("Org1MSP", wcc.LockFunction, "T1"), "expects [2] arguments (tokenId, amount), got [1]")
		})

		It("refuses everything before configuration", func() {
			expectFailure(invoke("Org1MSP", wcc.WrapFunction, "FT", "T1", "alice", "Org1MSP", "mychannel", "erc20", ontologyJSON), "unauthorized")
			expectFailure(invoke("Org1MSP", wcc.SetBridgeFunction, "BridgeMSP", "bridge-relay"), "unauthorized")
		})

		It("reports the caller msp", func() {
			res := invoke("Org7MSP", wcc.ClientMSPIDFunction)
			expectOK(res)
			Expect(string(res.Payload)).To(Equal("Org7MSP"))
		})

		It("fails on undecodable creators", func() {
			stub.begin("tx", wcc.ClientMSPIDFunction)
			stub.creator = []byte{0xff, 0xff}
			expectFailure(cc.Invoke(stub), "failed unmarshalling creator")
		})
	})

	Context("when the wrapper is configured", func() {
		BeforeEach(func() {
			expectOK(invoke("Org1MSP", wcc.InitializeFunction, "Org1MSP"))
			expectOK(invoke("Org1MSP", wcc.SetBridgeFunction, "BridgeMSP", "bridge-relay"))
		})

		It("wraps a token and runs the permission check", func() {
			res := invoke("Org1MSP", wcc.WrapFunction, "FT", "T1", "alice", "Org1MSP", "mychannel", "erc20", ontologyJSON)
			expectOK(res)
			Expect(stub.invocations).To(Equal([]invocation{{channel: "mychannel", contract: "erc20", args: []string{"ClientAccountBalance", "alice"}}}))

			res = invoke("Org1MSP", wcc.GetTokenFunction, "T1")
			expectOK(res)
			tok := &wrapper.Token{}
			Expect(json.Unmarshal(res.Payload, tok)).To(Succeed())
			Expect(tok).To(Equal(&wrapper.Token{TokenType: "FT", TokenID: "T1", Owner: "alice", MSPID: "Org1MSP", ChannelName: "mychannel", ContractName: "erc20"}))

			res = invoke("Org1MSP", wcc.TokenExistsFunction, "T1")
			expectOK(res)
			Expect(string(res.Payload)).To(Equal("true"))

			res = invoke("Org1MSP", wcc.GetSignatureFunction, "T1", "LOCK")
			expectOK(res)
			Expect(string(res.Payload)).To(ContainSubstring(`"functionsSignature":["TransferFrom"]`))
		})

		It("leaves nothing behind when the permission check fails", func() {
			stub.failing["ClientAccountBalance"] = "no account for alice"
			expectFailure(invoke("Org1MSP", wcc.WrapFunction, "FT", "T1", "alice", "Org1MSP", "mychannel", "erc20", ontologyJSON), "no account for alice")

			res := invoke("Org1MSP", wcc.TokenExistsFunction, "T1")
			expectOK(res)
			Expect(string(res.Payload)).To(Equal("false"))
			expectFailure(invoke("Org1MSP", wcc.GetSignatureFunction, "T1", "LOCK"), "token not wrapped")
		})

		It("rejects a second wrap", func() {
			expectOK(invoke("Org1MSP", wcc.WrapFunction, "FT", "T1", "alice", "Org1MSP", "mychannel", "erc20", ontologyJSON))
			expectFailure(invoke("Org1MSP", wcc.WrapFunction, "FT", "T1", "bob", "Org1MSP", "mychannel", "erc20", ontologyJSON), "token already wrapped")
		})

		It("rejects malformed amounts", func() {
			expectOK(invoke("Org1MSP", wcc.WrapFunction, "FT", "T1", "alice", "Org1MSP", "mychannel", "erc20", ontologyJSON))
			for _, amount := range []string{"-1", "1.5", "ten", ""} {
				expectFailure(invoke("Org1MSP", wcc.LockFunction, "T1", amount), "invalid argument")
			}
			Expect(lockedAmount("T1")).To(Equal("0"))
		})

		It("runs the bridge scenario", func() {
			expectOK(invoke("Org1MSP", wcc.WrapFunction, "FT", "T1", "alice", "Org1MSP", "mychannel", "erc20", ontologyJSON))

			expectOK(invoke("BridgeMSP", wcc.MintFunction, "T1", "100"))
			Expect(lockedAmount("T1")).To(Equal("100"))

			expectOK(invoke("BridgeMSP", wcc.AssignFunction, "T1", "orgB", "40"))
			Expect(stub.invocations[0].args).To(Equal([]string{"Transfer", "orgB", "40"}))
			Expect(lockedAmount("T1")).To(Equal("60"))

			expectFailure(invoke("Org1MSP", wcc.UnwrapFunction, "T1"), "token still holds a locked amount")

			expectOK(invoke("BridgeMSP", wcc.BurnFunction, "T1", "60"))
			Expect(lockedAmount("T1")).To(Equal("0"))

			expectOK(invoke("Org1MSP", wcc.UnwrapFunction, "T1"))
			expectFailure(invoke("Org1MSP", wcc.LockedAmountFunction, "T1"), "token not wrapped")
			Expect(stub.committed).To(HaveLen(3))

			Expect(provider.Sum("invocations", wcc.MintFunction, "success")).To(Equal(float64(1)))
			Expect(provider.Sum("invocations", wcc.UnwrapFunction, "failure")).To(Equal(float64(1)))
		})

		It("locks and unlocks", func() {
			expectOK(invoke("Org1MSP", wcc.WrapFunction, "FT", "T1", "alice", "Org1MSP", "mychannel", "erc20", ontologyJSON))
			expectOK(invoke("BridgeMSP", wcc.LockFunction, "T1", "30"))
			Expect(stub.invocations[0].args).To(Equal([]string{"TransferFrom", "alice", "bridge-relay", "30"}))
			expectOK(invoke("BridgeMSP", wcc.UnlockFunction, "T1", "12"))
			Expect(lockedAmount("T1")).To(Equal("18"))

			expectFailure(invoke("BridgeMSP", wcc.UnlockFunction, "T1", "19"), "insufficient locked amount")
			Expect(lockedAmount("T1")).To(Equal("18"))
		})

		It("discards the amount change when the token contract fails", func() {
			expectOK(invoke("Org1MSP", wcc.WrapFunction, "FT", "T1", "alice", "Org1MSP", "mychannel", "erc20", ontologyJSON))
			stub.failing["TransferFrom"] = "allowance exceeded"
			expectFailure(invoke("BridgeMSP", wcc.LockFunction, "T1", "30"), "allowance exceeded")
			Expect(lockedAmount("T1")).To(Equal("0"))
		})

		It("refuses unknown organizations", func() {
			expectOK(invoke("Org1MSP", wcc.WrapFunction, "FT", "T1", "alice", "Org1MSP", "mychannel", "erc20", ontologyJSON))
			before := len(stub.committed)
			expectFailure(invoke("Org9MSP", wcc.MintFunction, "T1", "5"), "unauthorized")
			expectFailure(invoke("Org9MSP", wcc.UnwrapFunction, "T1"), "unauthorized")
			Expect(stub.invocations).To(BeEmpty())
			Expect(stub.committed).To(HaveLen(before))
		})

		It("lists wrapped tokens", func() {
			expectOK(invoke("Org1MSP", wcc.WrapFunction, "FT", "T1", "alice", "Org1MSP", "mychannel", "erc20", ontologyJSON))
			expectOK(invoke("Org1MSP", wcc.WrapFunction, "NFT", "T2", "bob", "Org1MSP", "mychannel", "erc721", ontologyJSON))

			res := invoke("Org1MSP", wcc.GetAllTokensFunction)
			expectOK(res)
			var tokens []*wrapper.Token
			Expect(json.Unmarshal(res.Payload, &tokens)).To(Succeed())
			Expect(tokens).To(HaveLen(2))
			Expect(tokens[1].ContractName).To(Equal("erc721"))
		})
	})
})
