/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package logging

import (
	"io"
	"strings"

	"github.com/hyperledger/fabric-lib-go/common/flogging"
	"go.uber.org/zap/zapcore"
)

const (
	loggerNameSeparator = "."
	rootLoggerName      = "wrapper"

	DefaultFormat = "%{color}%{time:2006-01-02 15:04:05.000 MST} [%{module}] %{shortfunc} -> %{level:.4s} %{id:03x}%{color:reset} %{message}"
	DefaultSpec   = "info"
)

// Logger provides logging API
type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	IsEnabledFor(level zapcore.Level) bool
}

// MustGetLogger returns the logger of the given component, rooted at the wrapper logger
func MustGetLogger(parts ...string) Logger {
	return flogging.MustGetLogger(loggerName(append([]string{rootLoggerName}, parts...)...))
}

// Init configures the process-wide logging backend
func Init(spec string, format string, w io.Writer) {
	if len(spec) == 0 {
		spec = DefaultSpec
	}
	if len(format) == 0 {
		format = DefaultFormat
	}
	flogging.Init(flogging.Config{
		Format:  format,
		LogSpec: spec,
		Writer:  w,
	})
}

func loggerName(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if len(p) != 0 {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, loggerNameSeparator)
}
