// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/wavetermdev/waveframe/cmd/framectl/cmd"
	"github.com/wavetermdev/waveframe/pkg/wavebase"
)

// set by ldflags at build time
var WaveframeVersion = "0.0.0"
var BuildTime = "0"

func main() {
	wavebase.WaveframeVersion = WaveframeVersion
	wavebase.BuildTime = BuildTime
	cmd.Execute()
}
