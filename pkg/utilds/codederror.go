// Copyright 2026, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package utilds

import (
	"errors"
	"fmt"
)

const (
	// ErrCode_Config marks errors caused by a malformed property set or frame spec
	// (missing parent, bad anchor point, unknown or mistyped property).
	ErrCode_Config = "config"
	// ErrCode_Panic marks a recovered panic while applying a property.
	ErrCode_Panic = "panic"
)

// CodedError wraps an error with a string code for categorization.
// The code can be extracted from anywhere in an error chain using GetErrorCode.
// SubCode carries the property or operation the error is about.
type CodedError struct {
	Code    string
	SubCode string
	Err     error
}

func (e CodedError) Error() string {
	return e.Err.Error()
}

func (e CodedError) Unwrap() error {
	return e.Err
}

func MakeCodedError(code string, err error) CodedError {
	return CodedError{Code: code, SubCode: "", Err: err}
}

func MakeSubCodedError(code string, subCode string, err error) CodedError {
	return CodedError{Code: code, SubCode: subCode, Err: err}
}

// GetErrorCode extracts the error code from anywhere in the error chain.
// Returns empty string if no CodedError is found.
func GetErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var coded CodedError
	if errors.As(err, &coded) {
		return coded.Code
	}
	return ""
}

func GetErrorSubCode(err error) string {
	if err == nil {
		return ""
	}
	var coded CodedError
	if errors.As(err, &coded) {
		return coded.SubCode
	}
	return ""
}

// Errorf creates a formatted error wrapped in a CodedError.
func Errorf(code string, format string, args ...any) error {
	return MakeCodedError(code, fmt.Errorf(format, args...))
}

// SubErrorf is Errorf with a subcode.
func SubErrorf(code string, subCode string, format string, args ...any) error {
	return MakeSubCodedError(code, subCode, fmt.Errorf(format, args...))
}

// HasErrorCode reports whether any CodedError in err's tree (including every branch
// of a joined error) carries code.
func HasErrorCode(err error, code string) bool {
	if err == nil {
		return false
	}
	if coded, ok := err.(CodedError); ok && coded.Code == code {
		return true
	}
	switch x := err.(type) {
	case interface{ Unwrap() error }:
		return HasErrorCode(x.Unwrap(), code)
	case interface{ Unwrap() []error }:
		for _, e := range x.Unwrap() {
			if HasErrorCode(e, code) {
				return true
			}
		}
	}
	return false
}
