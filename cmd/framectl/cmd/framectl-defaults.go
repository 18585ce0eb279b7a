// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/wavetermdev/waveframe/pkg/frameprops"
	"github.com/wavetermdev/waveframe/pkg/util/utilfn"
)

var defaultsJson bool

var defaultsCmd = &cobra.Command{
	Use:   "defaults [--json]",
	Short: "Print the prop default table",
	Args:  cobra.NoArgs,
	RunE:  runDefaultsCmd,
}

func init() {
	defaultsCmd.Flags().BoolVar(&defaultsJson, "json", false, "print as JSON")
	rootCmd.AddCommand(defaultsCmd)
}

func runDefaultsCmd(cmd *cobra.Command, args []string) error {
	if defaultsJson {
		WriteStdout("%s\n", utilfn.MustPrettyPrintJSON(frameprops.DefaultTable()))
		return nil
	}
	writeDefaultsText(WrappedStdout)
	return nil
}

// writeDefaultsText prints props in schema order, grouped by category.
func writeDefaultsText(w io.Writer) {
	var lastCat frameprops.Category = -1
	for _, name := range frameprops.AllProps() {
		cat, _ := frameprops.CategoryOf(name)
		if cat != lastCat {
			if lastCat != -1 {
				fmt.Fprintf(w, "\n")
			}
			fmt.Fprintf(w, "[%s]\n", cat)
			lastCat = cat
		}
		def, _ := frameprops.Default(name)
		if def == nil {
			def = "-"
		}
		fmt.Fprintf(w, "  %-24s %v\n", name, def)
	}
}
