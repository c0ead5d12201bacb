/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"os"
	"strconv"

	"github.com/hyperledger/fabric-chaincode-go/v2/shim"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	envPrefix = "CHAINCODE"

	// StdoutTracing exports the spans of the chaincode on standard output
	StdoutTracing = "stdout"
)

type serverConfig struct {
	CCID               string
	CCaddress          string
	TLS                bool
	LogLevel           string
	LogFormat          string
	TLSKey             string
	TLSCert            string
	TLSCACertsFilePath string
	MetricsAddress     string
	Tracing            string
}

// loadConfig reads the CHAINCODE_* environment variables
func loadConfig() (*serverConfig, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetDefault("log_level", "info")

	config := &serverConfig{
		CCID:               v.GetString("id"),
		CCaddress:          v.GetString("server_address"),
		LogLevel:           v.GetString("log_level"),
		LogFormat:          v.GetString("log_format"),
		TLSKey:             v.GetString("tls_key"),
		TLSCert:            v.GetString("tls_cert"),
		TLSCACertsFilePath: v.GetString("tls_ca_certs"),
		MetricsAddress:     v.GetString("metrics_address"),
		Tracing:            v.GetString("tracing"),
	}
	switch {
	case v.IsSet("tls"):
		enabled, err := parseBool(v.GetString("tls"))
		if err != nil {
			return nil, err
		}
		config.TLS = enabled
	case len(config.TLSKey) > 0:
		config.TLS = true
	}
	if len(config.Tracing) != 0 && config.Tracing != StdoutTracing {
		return nil, errors.Errorf("unsupported tracing [%s], expecting [%s] or nothing", config.Tracing, StdoutTracing)
	}
	return config, nil
}

// external is true when the chaincode runs as a server the peer connects to
func (c *serverConfig) external() bool {
	return len(c.CCID) != 0 && len(c.CCaddress) != 0
}

func (c *serverConfig) tlsProperties() (shim.TLSProperties, error) {
	if !c.TLS {
		return shim.TLSProperties{Disabled: true}, nil
	}
	key, err := os.ReadFile(c.TLSKey)
	if err != nil {
		return shim.TLSProperties{}, errors.Wrapf(err, "cannot read tls key at [%s]", c.TLSKey)
	}
	cert, err := os.ReadFile(c.TLSCert)
	if err != nil {
		return shim.TLSProperties{}, errors.Wrapf(err, "cannot read tls cert at [%s]", c.TLSCert)
	}
	caCerts, err := os.ReadFile(c.TLSCACertsFilePath)
	if err != nil {
		return shim.TLSProperties{}, errors.Wrapf(err, "cannot read tls ca certs at [%s]", c.TLSCACertsFilePath)
	}
	return shim.TLSProperties{Key: key, Cert: cert, ClientCACerts: caCerts}, nil
}

func parseBool(s string) (bool, error) {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, errors.Wrapf(err, "cannot parse [%s] as CHAINCODE_TLS", s)
	}
	return b, nil
}
