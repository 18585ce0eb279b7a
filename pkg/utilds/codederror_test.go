// Copyright 2026, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package utilds

import (
	"errors"
	"fmt"
	"testing"
)

func TestCodedErrorChain(t *testing.T) {
	base := SubErrorf(ErrCode_Config, "position", "bad anchor %q", "center")
	wrapped := fmt.Errorf("applying props: %w", base)
	joined := errors.Join(errors.New("other"), wrapped)

	if GetErrorCode(wrapped) != ErrCode_Config {
		t.Errorf("expected config code, got %q", GetErrorCode(wrapped))
	}
	if GetErrorSubCode(joined) != "position" {
		t.Errorf("expected position subcode through join, got %q", GetErrorSubCode(joined))
	}
	if !HasErrorCode(joined, ErrCode_Config) {
		t.Errorf("joined error should carry config code")
	}
	mixed := errors.Join(Errorf(ErrCode_Panic, "boom"), wrapped)
	if !HasErrorCode(mixed, ErrCode_Config) || !HasErrorCode(mixed, ErrCode_Panic) {
		t.Errorf("every branch of a joined error should be searched")
	}
	if HasErrorCode(errors.New("plain"), ErrCode_Config) {
		t.Errorf("plain errors have no code")
	}
	if GetErrorCode(errors.New("plain")) != "" {
		t.Errorf("plain errors have no code")
	}
	if GetErrorCode(nil) != "" {
		t.Errorf("nil has no code")
	}
	if base.Error() != `bad anchor "center"` {
		t.Errorf("unexpected message %q", base.Error())
	}
}
