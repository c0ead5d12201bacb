/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package dispatcher

import (
	"context"

	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/driver"
	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/ontology"
	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/services/logging"
	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/services/metrics"
	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/services/resolver"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var logger = logging.MustGetLogger("dispatcher")

// Dispatcher turns interaction signatures into foreign contract invocations
type Dispatcher struct {
	resolver *resolver.Resolver
	invoker  driver.ContractInvoker
	tracer   trace.Tracer
	metrics  *metrics.Metrics
}

func New(r *resolver.Resolver, invoker driver.ContractInvoker, tracerProvider trace.TracerProvider, m *metrics.Metrics) *Dispatcher {
	if tracerProvider == nil {
		tracerProvider = noop.NewTracerProvider()
	}
	if m == nil {
		m = metrics.NewMetrics(nil)
	}
	return &Dispatcher{
		resolver: r,
		invoker:  invoker,
		tracer:   tracerProvider.Tracer("wrapper.dispatcher"),
		metrics:  m,
	}
}

// Interact invokes the functions of the signature in order on the token contract.
// The first failure aborts the interaction. Functions that already ran are
// not compensated, their writes are discarded with the enclosing transaction.
func (d *Dispatcher) Interact(ctx context.Context, sig *ontology.InteractionSignature, in *resolver.Input) error {
	if sig == nil {
		return errors.Wrap(driver.ErrOntologyMissing, "no signature to dispatch")
	}
	if len(sig.FunctionsSignature) != len(sig.Variables) {
		return errors.Wrapf(driver.ErrMalformedOntology, "signature [%s] is inconsistent", sig.Type)
	}
	if in == nil || in.Token == nil {
		return errors.Wrapf(driver.ErrMissingArgument, "no token for signature [%s]", sig.Type)
	}

	for i, function := range sig.FunctionsSignature {
		values, err := d.resolver.ResolveAll(sig.Variables[i], in)
		if err != nil {
			return errors.WithMessagef(err, "failed resolving arguments of [%s] for [%s]", function, sig.Type)
		}
		if err := d.invoke(ctx, sig.Type, in.Token.ChannelName, in.Token.ContractName, function, values); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dispatcher) invoke(ctx context.Context, kind ontology.OperationKind, channel, contract, function string, values []string) error {
	_, span := d.tracer.Start(ctx, "foreign_call", trace.WithAttributes(
		attribute.String("operation", kind.String()),
		attribute.String("channel", channel),
		attribute.String("contract", contract),
		attribute.String("function", function),
	))
	defer span.End()

	args := append([]string{function}, values...)
	logger.Debugf("invoking [%s] on [%s:%s] with [%d] arguments", function, channel, contract, len(values))
	res := d.invoker.Invoke(channel, contract, args)
	if res.Failed() {
		d.metrics.ObserveForeignCall(false)
		status, message := int32(0), "no response"
		if res != nil {
			status, message = res.Status, res.Message
		}
		span.SetStatus(codes.Error, message)
		logger.Errorf("[%s] on [%s:%s] failed with status [%d]: %s", function, channel, contract, status, message)
		return errors.Wrapf(driver.ErrForeignCallFailed, "[%s] on [%s:%s] returned [%d]: %s", function, channel, contract, status, message)
	}
	d.metrics.ObserveForeignCall(true)
	return nil
}
