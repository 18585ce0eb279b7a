// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package frameadapter

import (
	"strings"
)

// control kinds whose native type name is the uppercased kind
var controlKinds = map[string]bool{
	"backdrop":       true,
	"button":         true,
	"chatdisplay":    true,
	"checkbox":       true,
	"control":        true,
	"dialog":         true,
	"editbox":        true,
	"gluebutton":     true,
	"gluecheckbox":   true,
	"glueeditbox":    true,
	"gluepopupmenu":  true,
	"gluetextbutton": true,
	"highlight":      true,
	"listbox":        true,
	"menu":           true,
	"model":          true,
	"popupmenu":      true,
	"scrollbar":      true,
	"slashchatbox":   true,
	"slider":         true,
	"sprite":         true,
	"text":           true,
	"textarea":       true,
	"textbutton":     true,
	"timertext":      true,
}

// simple kinds are spelled with a hyphen; the native name drops it
var simpleControlKinds = map[string]bool{
	"simple-button":    true,
	"simple-checkbox":  true,
	"simple-statusbar": true,
}

var kindAliases = map[string]string{
	"container":        "FRAME",
	"simple-container": "SIMPLEFRAME",
}

// nativeTypeName maps a declarative kind to a native type name, or "" when the kind
// has none (generic frames created with CreateFrame or CreateSimpleFrame).
func nativeTypeName(kind string) string {
	if controlKinds[kind] {
		return strings.ToUpper(kind)
	}
	if simpleControlKinds[kind] {
		return strings.ToUpper(strings.ReplaceAll(kind, "-", ""))
	}
	return kindAliases[kind]
}
