// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wavetermdev/waveframe/pkg/frameapi/recordkit"
	"github.com/wavetermdev/waveframe/pkg/scene"
	"github.com/wavetermdev/waveframe/pkg/util/utilfn"
)

var replayJson bool
var replayTree bool
var replayVerbose bool

var replayCmd = &cobra.Command{
	Use:   "replay [--json] [--tree] scene.yaml",
	Short: "Replay a scene and print the native calls it produced",
	Long: `Replay creates a scene's frames on a recording toolkit, runs its steps, and prints
every native call in order.  Output is JSON when --json is set or stdout is not a terminal.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplayCmd,
}

func init() {
	replayCmd.Flags().BoolVar(&replayJson, "json", false, "print the replay result as JSON")
	replayCmd.Flags().BoolVar(&replayTree, "tree", false, "also print the final frame tree")
	replayCmd.Flags().BoolVarP(&replayVerbose, "verbose", "v", false, "log every frame creation and prop application")
	rootCmd.AddCommand(replayCmd)
}

func runReplayCmd(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	sc, err := scene.ReadScene(args[0])
	if err != nil {
		return err
	}
	result, err := scene.Replay(sc, scene.PlayerOpts{
		Converter: makeConverter(settings.FramePixelScale),
		DebugLog:  replayVerbose || settings.FrameLogCalls,
	})
	if replayJson || !getIsTty() {
		jsonStr, jsonErr := utilfn.MarshalIndentNoHTMLString(result, "", "  ")
		if jsonErr != nil {
			return fmt.Errorf("cannot marshal replay result: %w", jsonErr)
		}
		WriteStdout("%s\n", jsonStr)
	} else {
		writeReplayText(WrappedStdout, result, replayTree)
	}
	if err != nil {
		return err
	}
	if len(result.Errors) > 0 {
		ExitCode = 2
	}
	return nil
}

func writeReplayText(w io.Writer, result scene.Result, withTree bool) {
	for idx, call := range result.Calls {
		fmt.Fprintf(w, "%4d  %s\n", idx, call)
	}
	fmt.Fprintf(w, "\n%d calls, %d flushes\n", len(result.Calls), result.Flushes)
	if len(result.Events) > 0 {
		fmt.Fprintf(w, "events: %s\n", strings.Join(result.Events, ", "))
	}
	for _, errStr := range result.Errors {
		fmt.Fprintf(w, "error: %s\n", errStr)
	}
	if withTree {
		fmt.Fprintf(w, "\n")
		writeFrameTree(w, result.Tree, 0)
	}
}

func writeFrameTree(w io.Writer, info recordkit.FrameInfo, depth int) {
	indent := strings.Repeat("  ", depth)
	typeName := info.TypeName
	if typeName == "" {
		typeName = string(info.CreateKind)
	}
	fmt.Fprintf(w, "%s%s %s [%s]", indent, info.Id, info.Name, typeName)
	if len(info.Points) > 0 {
		fmt.Fprintf(w, " %s", strings.Join(info.Points, " "))
	}
	if !info.Tooltip.IsNull() {
		fmt.Fprintf(w, " tooltip:%s", info.Tooltip)
	}
	fmt.Fprintf(w, "\n")
	for _, child := range info.Children {
		writeFrameTree(w, child, depth+1)
	}
}
