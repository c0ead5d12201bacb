/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package wcc

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper"
	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/driver"
	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/ontology"
	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/services/logging"
	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/services/metrics"
	"github.com/hyperledger/fabric-chaincode-go/v2/shim"
	pb "github.com/hyperledger/fabric-protos-go-apiv2/peer"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var logger = logging.MustGetLogger("wcc")

type handler func(ctx context.Context, w *wrapper.Wrapper, args []string) ([]byte, error)

type function struct {
	params []string
	run    handler
}

// functionRegistry is a registry of the functions supported by the wrapper chaincode
var functionRegistry = map[string]function{
	InitializeFunction:   {params: []string{"ownerMspId"}, run: initialize},
	SetBridgeFunction:    {params: []string{"bridgeMspId", "bridgeId"}, run: setBridge},
	WrapFunction:         {params: []string{"tokenType", "tokenId", "owner", "mspId", "channelName", "contractName", "ontology"}, run: wrap},
	UnwrapFunction:       {params: []string{"tokenId"}, run: unwrap},
	LockFunction:         {params: []string{"tokenId", "amount"}, run: amountFunction((*wrapper.Wrapper).Lock)},
	UnlockFunction:       {params: []string{"tokenId", "amount"}, run: amountFunction((*wrapper.Wrapper).Unlock)},
	MintFunction:         {params: []string{"tokenId", "amount"}, run: amountFunction((*wrapper.Wrapper).Mint)},
	BurnFunction:         {params: []string{"tokenId", "amount"}, run: amountFunction((*wrapper.Wrapper).Burn)},
	AssignFunction:       {params: []string{"tokenId", "to", "amount"}, run: assign},
	GetTokenFunction:     {params: []string{"tokenId"}, run: getToken},
	LockedAmountFunction: {params: []string{"tokenId"}, run: lockedAmount},
	TokenExistsFunction:  {params: []string{"tokenId"}, run: tokenExists},
	GetAllTokensFunction: {run: getAllTokens},
	GetSignatureFunction: {params: []string{"tokenId", "type"}, run: getSignature},
	ClientMSPIDFunction:  {run: clientMSPID},
}

var availableFunctions = functionSet()

// WrapperChaincode exposes the wrapper operations as chaincode functions
type WrapperChaincode struct {
	Metrics        *metrics.Metrics
	TracerProvider trace.TracerProvider
}

func New(m *metrics.Metrics, tp trace.TracerProvider) *WrapperChaincode {
	if m == nil {
		m = metrics.NewMetrics(nil)
	}
	if tp == nil {
		tp = noop.NewTracerProvider()
	}
	return &WrapperChaincode{Metrics: m, TracerProvider: tp}
}

// Init runs Initialize when the instantiation arguments ask for it
func (cc *WrapperChaincode) Init(stub shim.ChaincodeStubInterface) *pb.Response {
	args := stub.GetStringArgs()
	if len(args) == 0 || args[0] != InitializeFunction {
		logger.Debugf("[%s] init without arguments", stub.GetTxID())
		return shim.Success(nil)
	}
	return cc.Invoke(stub)
}

func (cc *WrapperChaincode) Invoke(stub shim.ChaincodeStubInterface) (res *pb.Response) {
	txID := stub.GetTxID()
	started := time.Now()
	functionName := ""
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("[%s] invoke triggered panic: %s\n%s\n", txID, r, string(debug.Stack()))
			res = shim.Error(fmt.Sprintf("failed responding [%s]", r))
		}
		if res.Status < shim.ERRORTHRESHOLD {
			logger.Debugf("[%s] %s OK", txID, functionName)
		} else {
			logger.Errorf("[%s] %s %d: %s", txID, functionName, res.Status, res.Message)
		}
		if _, known := functionRegistry[functionName]; known {
			cc.metrics().Observe(functionName, res.Status < shim.ERRORTHRESHOLD, started)
		}
	}()

	args := stub.GetStringArgs()
	if len(args) == 0 {
		return shim.Error(fmt.Sprintf("function not provided, expecting one of (%s)", availableFunctions))
	}
	functionName = args[0]
	f, ok := functionRegistry[functionName]
	if !ok {
		return shim.Error(fmt.Sprintf("function [%s] not recognized, expecting one of (%s)", functionName, availableFunctions))
	}
	functionArgs := args[1:]
	if len(functionArgs) != len(f.params) {
		return shim.Error(fmt.Sprintf("function [%s] expects [%d] arguments (%s), got [%d]",
			functionName, len(f.params), strings.Join(f.params, ", "), len(functionArgs)))
	}

	ctx, span := cc.tracerProvider().Tracer("wrapper.wcc").Start(context.Background(), functionName, trace.WithSpanKind(trace.SpanKindServer))
	defer span.End()

	logger.Debugf("[%s] invoking [%s]", txID, functionName)
	payload, err := f.run(ctx, cc.wrapperFor(stub), functionArgs)
	if err != nil {
		return shim.Error(err.Error())
	}
	return shim.Success(payload)
}

func (cc *WrapperChaincode) wrapperFor(stub shim.ChaincodeStubInterface) *wrapper.Wrapper {
	return wrapper.New(
		&kvsWrapper{stub: stub},
		&invokerWrapper{stub: stub},
		&creatorIdentity{stub: stub},
		wrapper.WithMetrics(cc.metrics()),
		wrapper.WithTracerProvider(cc.tracerProvider()),
	)
}

func (cc *WrapperChaincode) metrics() *metrics.Metrics {
	if cc.Metrics == nil {
		cc.Metrics = metrics.NewMetrics(nil)
	}
	return cc.Metrics
}

func (cc *WrapperChaincode) tracerProvider() trace.TracerProvider {
	if cc.TracerProvider == nil {
		cc.TracerProvider = noop.NewTracerProvider()
	}
	return cc.TracerProvider
}

// functionSet returns a string enumerating all available functions
func functionSet() string {
	names := make([]string, 0, len(functionRegistry))
	for name := range functionRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, " ")
}

func initialize(ctx context.Context, w *wrapper.Wrapper, args []string) ([]byte, error) {
	return nil, w.Initialize(ctx, args[0])
}

func setBridge(ctx context.Context, w *wrapper.Wrapper, args []string) ([]byte, error) {
	return nil, w.SetBridge(ctx, args[0], args[1])
}

func wrap(ctx context.Context, w *wrapper.Wrapper, args []string) ([]byte, error) {
	tok, err := w.Wrap(ctx, args[0], args[1], args[2], args[3], args[4], args[5], []byte(args[6]))
	if err != nil {
		return nil, err
	}
	return tok.Bytes()
}

func unwrap(ctx context.Context, w *wrapper.Wrapper, args []string) ([]byte, error) {
	return nil, w.Unwrap(ctx, args[0])
}

func amountFunction(op func(*wrapper.Wrapper, context.Context, string, uint64) (*wrapper.Token, error)) handler {
	return func(ctx context.Context, w *wrapper.Wrapper, args []string) ([]byte, error) {
		amount, err := parseAmount(args[1])
		if err != nil {
			return nil, err
		}
		tok, err := op(w, ctx, args[0], amount)
		if err != nil {
			return nil, err
		}
		return tok.Bytes()
	}
}

func assign(ctx context.Context, w *wrapper.Wrapper, args []string) ([]byte, error) {
	amount, err := parseAmount(args[2])
	if err != nil {
		return nil, err
	}
	tok, err := w.Assign(ctx, args[0], args[1], amount)
	if err != nil {
		return nil, err
	}
	return tok.Bytes()
}

func getToken(ctx context.Context, w *wrapper.Wrapper, args []string) ([]byte, error) {
	tok, err := w.GetToken(ctx, args[0])
	if err != nil {
		return nil, err
	}
	return tok.Bytes()
}

func lockedAmount(ctx context.Context, w *wrapper.Wrapper, args []string) ([]byte, error) {
	amount, err := w.LockedAmount(ctx, args[0])
	if err != nil {
		return nil, err
	}
	return []byte(strconv.FormatUint(amount, 10)), nil
}

func tokenExists(ctx context.Context, w *wrapper.Wrapper, args []string) ([]byte, error) {
	exists, err := w.TokenExists(ctx, args[0])
	if err != nil {
		return nil, err
	}
	return []byte(strconv.FormatBool(exists)), nil
}

func getAllTokens(ctx context.Context, w *wrapper.Wrapper, _ []string) ([]byte, error) {
	tokens, err := w.GetAllTokens(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(tokens)
	if err != nil {
		return nil, errors.Wrap(err, "failed marshalling tokens")
	}
	return raw, nil
}

func getSignature(ctx context.Context, w *wrapper.Wrapper, args []string) ([]byte, error) {
	sig, err := w.GetSignature(ctx, args[0], ontology.OperationKind(args[1]))
	if err != nil {
		return nil, err
	}
	return sig.Bytes()
}

func clientMSPID(_ context.Context, w *wrapper.Wrapper, _ []string) ([]byte, error) {
	mspID, err := w.ClientMSPID()
	if err != nil {
		return nil, err
	}
	return []byte(mspID), nil
}

// parseAmount accepts base 10 unsigned integers only
func parseAmount(s string) (uint64, error) {
	amount, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(driver.ErrInvalidArgument, "amount [%s] is not a non-negative integer", s)
	}
	return amount, nil
}
