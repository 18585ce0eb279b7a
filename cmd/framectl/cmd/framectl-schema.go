// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
	"github.com/wavetermdev/waveframe/pkg/scene"
	"github.com/wavetermdev/waveframe/pkg/util/utilfn"
	"github.com/wavetermdev/waveframe/pkg/wavebase"
	"github.com/wavetermdev/waveframe/pkg/wconfig"
)

const SettingsSchemaFileName = "settings.json"
const SceneSchemaFileName = "scene.json"

var schemaOutDir string

var schemaCmd = &cobra.Command{
	Use:   "schema [--out dir]",
	Short: "Write JSON schemas for settings.json and scene files",
	Args:  cobra.NoArgs,
	RunE:  runSchemaCmd,
}

func init() {
	schemaCmd.Flags().StringVarP(&schemaOutDir, "out", "o", "schema", "output directory")
	rootCmd.AddCommand(schemaCmd)
}

func writeSchema(fileName string, schema *jsonschema.Schema) error {
	barr, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %v", err)
	}
	written, err := utilfn.WriteFileIfDifferent(fileName, barr)
	if err != nil {
		return fmt.Errorf("failed to write %s: %v", fileName, err)
	}
	if !written {
		WriteStderr("no changes to %s\n", fileName)
	} else {
		WriteStderr("wrote %s\n", fileName)
	}
	return nil
}

func runSchemaCmd(cmd *cobra.Command, args []string) error {
	outDir, err := wavebase.ExpandHomeDir(schemaOutDir)
	if err != nil {
		return err
	}
	if err := wavebase.TryMkdirs(outDir, 0755, "schema"); err != nil {
		return err
	}
	err = writeSchema(filepath.Join(outDir, SettingsSchemaFileName), jsonschema.Reflect(&wconfig.SettingsType{}))
	if err != nil {
		return err
	}
	return writeSchema(filepath.Join(outDir, SceneSchemaFileName), jsonschema.Reflect(&scene.Scene{}))
}
