// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/spf13/cobra"
	"github.com/wavetermdev/waveframe/pkg/wavebase"
)

var versionVerbose bool

var versionCmd = &cobra.Command{
	Use:   "version [-v]",
	Short: "Print the version number of framectl",
	RunE:  runVersionCmd,
}

func init() {
	versionCmd.Flags().BoolVarP(&versionVerbose, "verbose", "v", false, "Display full version information")
	rootCmd.AddCommand(versionCmd)
}

func runVersionCmd(cmd *cobra.Command, args []string) error {
	WriteStdout("framectl v%s\n", wavebase.WaveframeVersion)
	if !versionVerbose {
		return nil
	}
	WriteStdout("buildtime: %s\n", wavebase.BuildTime)
	WriteStdout("arch:      %s\n", wavebase.ClientArch())
	WriteStdout("confighome: %s\n", wavebase.GetConfigHomeDir())
	return nil
}
