// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package wconfig reads the adapter settings file and watches it for changes.
package wconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/wavetermdev/waveframe/pkg/util/utilfn"
	"github.com/wavetermdev/waveframe/pkg/utilds"
	"github.com/wavetermdev/waveframe/pkg/wavebase"
)

const DefaultInspectListen = "127.0.0.1:7323"

type SettingsType struct {
	FramePixelScale float64 `json:"frame:pixelscale,omitempty" jsonschema:"description=width in pixels that spans the 4:3 screen area"`
	FrameLogCalls   bool    `json:"frame:logcalls,omitempty" jsonschema:"description=log every frame creation and prop application"`
	InspectListen   string  `json:"inspect:listen,omitempty" jsonschema:"description=host:port for the inspector server"`
	InspectOpen     bool    `json:"inspect:open,omitempty" jsonschema:"description=open the inspector in a browser on start"`
}

func (s SettingsType) GetInspectListen() string {
	if s.InspectListen == "" {
		return DefaultInspectListen
	}
	return s.InspectListen
}

func (s SettingsType) Validate() error {
	if s.FramePixelScale < 0 {
		return utilds.SubErrorf(utilds.ErrCode_Config, "frame:pixelscale", "frame:pixelscale must be positive, got %v", s.FramePixelScale)
	}
	return nil
}

// ReadSettings reads a settings file.  A missing file is not an error: it yields the
// zero settings.
func ReadSettings(fileName string) (SettingsType, error) {
	var rtn SettingsType
	barr, err := os.ReadFile(fileName)
	if errors.Is(err, fs.ErrNotExist) {
		return rtn, nil
	}
	if err != nil {
		return rtn, fmt.Errorf("reading settings %q: %w", fileName, err)
	}
	return ParseSettings(barr)
}

func ParseSettings(barr []byte) (SettingsType, error) {
	var rtn SettingsType
	var m map[string]any
	if err := json.Unmarshal(barr, &m); err != nil {
		return rtn, utilds.Errorf(utilds.ErrCode_Config, "invalid settings json: %w", err)
	}
	if err := utilfn.DoMapStructure(&rtn, m); err != nil {
		return rtn, utilds.Errorf(utilds.ErrCode_Config, "invalid settings: %w", err)
	}
	if err := rtn.Validate(); err != nil {
		return rtn, err
	}
	return rtn, nil
}

func ReadDefaultSettings() (SettingsType, error) {
	return ReadSettings(wavebase.GetSettingsPath())
}
