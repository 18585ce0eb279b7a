// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"github.com/wavetermdev/waveframe/pkg/unitconv"
	"github.com/wavetermdev/waveframe/pkg/wconfig"
	"golang.org/x/term"
)

var (
	rootCmd = &cobra.Command{
		Use:          "framectl",
		Short:        "CLI tool to replay and inspect frame scenes",
		Long:         `framectl drives the frame adapter against a recording toolkit, so scenes can be replayed, diffed and inspected without a game client`,
		SilenceUsage: true,
	}
)

var WrappedStdout io.Writer = os.Stdout
var WrappedStderr io.Writer = os.Stderr
var ExitCode int
var settingsFileArg string

func WriteStderr(fmtStr string, args ...interface{}) {
	WrappedStderr.Write([]byte(fmt.Sprintf(fmtStr, args...)))
}

func WriteStdout(fmtStr string, args ...interface{}) {
	WrappedStdout.Write([]byte(fmt.Sprintf(fmtStr, args...)))
}

func getIsTty() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func loadSettings() (wconfig.SettingsType, error) {
	if settingsFileArg != "" {
		return wconfig.ReadSettings(settingsFileArg)
	}
	return wconfig.ReadDefaultSettings()
}

// makeConverter returns nil (the default converter) unless a pixel scale is configured.
func makeConverter(pixelScale float64) *unitconv.Converter {
	if pixelScale <= 0 {
		return nil
	}
	conv := unitconv.MakeConverter()
	conv.SetPixelScale(pixelScale)
	return conv
}

func Execute() {
	defer func() {
		r := recover()
		if r != nil {
			WriteStderr("[panic] %v\n", r)
			debug.PrintStack()
			os.Exit(1)
		}
		os.Exit(ExitCode)
	}()
	rootCmd.PersistentFlags().StringVar(&settingsFileArg, "settings", "", "settings file (defaults to the config home settings.json)")
	err := rootCmd.Execute()
	if err != nil {
		ExitCode = 1
	}
}
