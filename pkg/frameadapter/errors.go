// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package frameadapter

import (
	"github.com/wavetermdev/waveframe/pkg/utilds"
)

// IsConfigError reports whether err (or anything it wraps) is a configuration error:
// a malformed prop, an unknown prop name, a bad anchor point or a missing parent.
func IsConfigError(err error) bool {
	return utilds.HasErrorCode(err, utilds.ErrCode_Config)
}

func configErrorf(subCode string, format string, args ...any) error {
	return utilds.SubErrorf(utilds.ErrCode_Config, subCode, format, args...)
}
