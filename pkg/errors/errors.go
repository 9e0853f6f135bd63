//
// Copyright (c) 2020, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

package errors

import (
	stderrors "errors"
	"fmt"
)

// InternalError identifies a kind of failure. Each kind has a message and a code.
type InternalError struct {
	msg  string // message associated to the error
	code int    // error code
}

// ProfilerError associates a kind of failure with the error that caused it
type ProfilerError struct {
	internal InternalError
	details  error
}

// ErrNone means success
var ErrNone = InternalError{"Success", 0}

// ErrConfiguration means that the run location is invalid (e.g., it does not exist)
var ErrConfiguration = InternalError{"Invalid configuration", -1}

// ErrDiscovery means that an expected rank file could not be found
var ErrDiscovery = InternalError{"Discovery error", -2}

// ErrParse means that a rank file contains malformed data
var ErrParse = InternalError{"Parse error", -3}

// ErrConsistency means that ranks do not report the same set of regions
var ErrConsistency = InternalError{"Consistency error", -4}

// ErrPrecondition means that an operation was requested before the data it needs was loaded
var ErrPrecondition = InternalError{"Precondition error", -5}

func (i InternalError) Error() string {
	return i.msg
}

// Code returns the code associated to the kind of error
func (i InternalError) Code() int {
	return i.code
}

func New(i InternalError, err error) *ProfilerError {
	e := new(ProfilerError)
	e.details = err
	e.internal = i
	return e
}

func (e *ProfilerError) Error() string {
	if e.details == nil {
		return e.internal.msg
	}
	return fmt.Sprintf("%s: %s", e.internal.msg, e.details)
}

// Is reports whether the error is of the kind given as target
func (e *ProfilerError) Is(target error) bool {
	i, ok := target.(InternalError)
	if !ok {
		return false
	}
	return e.internal == i
}

func (e *ProfilerError) Unwrap() error {
	return e.details
}

func (e *ProfilerError) GetInternal() error {
	return e.details
}

// Kind returns the kind of the first ProfilerError found in the chain of err, ErrNone if there is none
func Kind(err error) InternalError {
	var pe *ProfilerError
	if stderrors.As(err, &pe) {
		return pe.internal
	}
	return ErrNone
}
