// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package panichandler

import (
	"fmt"
	"log"
	"runtime/debug"

	"github.com/wavetermdev/waveframe/pkg/utilds"
)

// set to false in tests that panic on purpose to keep the output readable
var PrintStack = true

// PanicHandlerNoError logs a recovered panic and swallows it. Used around callbacks
// the native toolkit invokes (trigger conditions, timer expiry) where there is no
// caller to hand an error to.
func PanicHandlerNoError(debugStr string, recoverVal any) {
	if recoverVal == nil {
		return
	}
	log.Printf("[panic] in %s: %v\n", debugStr, recoverVal)
	if PrintStack {
		debug.PrintStack()
	}
}

// PanicHandler logs a recovered panic and returns it as an error coded
// utilds.ErrCode_Panic (nil if there was no panic).  Call it directly with recover().
func PanicHandler(debugStr string, recoverVal any) error {
	if recoverVal == nil {
		return nil
	}
	log.Printf("[panic] in %s: %v\n", debugStr, recoverVal)
	if PrintStack {
		debug.PrintStack()
	}
	if err, ok := recoverVal.(error); ok {
		return utilds.MakeSubCodedError(utilds.ErrCode_Panic, debugStr, fmt.Errorf("panic in %s: %w", debugStr, err))
	}
	return utilds.MakeSubCodedError(utilds.ErrCode_Panic, debugStr, fmt.Errorf("panic in %s: %v", debugStr, recoverVal))
}
