/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package driver

import (
	"github.com/pkg/errors"
)

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrBridgeNotConfigured = errors.New("bridge not configured")
	ErrAlreadyWrapped      = errors.New("token already wrapped")
	ErrNotWrapped          = errors.New("token not wrapped")
	ErrInsufficientLocked  = errors.New("insufficient locked amount")
	ErrOntologyMissing     = errors.New("ontology missing")
	ErrMalformedOntology   = errors.New("malformed ontology")
	ErrMissingArgument     = errors.New("missing argument")
	ErrUnsupportedVariable = errors.New("unsupported variable")
	ErrForeignCallFailed   = errors.New("foreign call failed")
	ErrInvalidArgument     = errors.New("invalid argument")

	// ErrStillLocked is returned when unwrapping a token with a non-zero locked amount.
	// errors.Is reports it as ErrNotWrapped too.
	ErrStillLocked = &classError{msg: "token still holds a locked amount", class: ErrNotWrapped}
)

type classError struct {
	msg   string
	class error
}

func (e *classError) Error() string { return e.msg }

func (e *classError) Is(target error) bool { return target == e.class }
