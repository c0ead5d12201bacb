/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/services/logging"
	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/services/metrics"
	"github.com/hyperledger-labs/fabric-token-wrapper/wrapper/services/network/fabric/wcc"
	"github.com/hyperledger/fabric-chaincode-go/v2/shim"
	fmetrics "github.com/hyperledger/fabric-lib-go/common/metrics"
	"github.com/hyperledger/fabric-lib-go/common/metrics/disabled"
	"github.com/hyperledger/fabric-lib-go/common/metrics/prometheus"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/dig"
)

var logger = logging.MustGetLogger("wcc", "main")

func main() {
	config, err := loadConfig()
	assertNoError(err, "cannot load configuration")

	logging.Init(config.LogLevel, config.LogFormat, os.Stderr)

	c, err := newContainer(config)
	assertNoError(err, "cannot assemble chaincode")

	err = c.Invoke(run)
	assertNoError(err, "chaincode stopped")
}

func newContainer(config *serverConfig) (*dig.Container, error) {
	c := dig.New()
	constructors := []interface{}{
		func() *serverConfig { return config },
		newMetricsProvider,
		newTracerProvider,
		metrics.NewMetrics,
		wcc.New,
	}
	for _, constructor := range constructors {
		if err := c.Provide(constructor); err != nil {
			return nil, errors.Wrap(err, "failed providing dependency")
		}
	}
	return c, nil
}

func newMetricsProvider(config *serverConfig) fmetrics.Provider {
	if len(config.MetricsAddress) == 0 {
		return &disabled.Provider{}
	}
	return &prometheus.Provider{}
}

func newTracerProvider(config *serverConfig) (trace.TracerProvider, error) {
	if config.Tracing != StdoutTracing {
		return noop.NewTracerProvider(), nil
	}
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(os.Stderr))
	if err != nil {
		return nil, errors.Wrap(err, "failed creating stdout exporter")
	}
	return sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter)), nil
}

func run(config *serverConfig, cc *wcc.WrapperChaincode, tp trace.TracerProvider) error {
	if sdk, ok := tp.(*sdktrace.TracerProvider); ok {
		defer func() {
			if err := sdk.Shutdown(context.Background()); err != nil {
				logger.Warnf("failed flushing spans: %s", err)
			}
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p := pool.New().WithContext(ctx).WithCancelOnError()
	if len(config.MetricsAddress) != 0 {
		p.Go(func(ctx context.Context) error {
			return serveMetrics(ctx, config.MetricsAddress)
		})
	}
	p.Go(func(context.Context) error {
		defer cancel()
		return startChaincode(config, cc)
	})
	return p.Wait()
}

func startChaincode(config *serverConfig, cc *wcc.WrapperChaincode) error {
	if !config.external() {
		fmt.Println("CC ID or CC address is empty... Running as usual...")
		return shim.Start(cc)
	}

	fmt.Println("Wrapper Chaincode CCID : " + config.CCID)
	fmt.Println("Wrapper Chaincode address : " + config.CCaddress)
	fmt.Println("Running Wrapper Chaincode as service ...")

	tlsProps, err := config.tlsProperties()
	if err != nil {
		return err
	}
	server := &shim.ChaincodeServer{
		CCID:     config.CCID,
		Address:  config.CCaddress,
		CC:       cc,
		TLSProps: tlsProps,
	}
	return errors.Wrap(server.Start(), "error starting wrapper chaincode")
}

// serveMetrics exposes the prometheus registry until the context is done
func serveMetrics(ctx context.Context, address string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: address, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warnf("failed stopping metrics server: %s", err)
		}
	}()

	logger.Infof("serving metrics at [%s]", address)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrapf(err, "failed serving metrics at [%s]", address)
	}
	return nil
}

func assertNoError(err error, s string, args ...interface{}) {
	if err != nil {
		panic(fmt.Sprintf(s+": [%s]", append(args, err.Error())...))
	}
}
