// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package scene plays scripted frame trees against a frame adapter: a list of frames
// to create, then steps that update props, fire native events, advance ticks and
// clean frames up.  Scenes are YAML.
package scene

import (
	"fmt"
	"os"

	"github.com/wavetermdev/waveframe/pkg/utilds"
	"gopkg.in/yaml.v3"
)

type Scene struct {
	Name       string      `yaml:"name,omitempty" json:"name,omitempty"`
	PixelScale float64     `yaml:"pixelScale,omitempty" json:"pixelScale,omitempty"`
	Frames     []FrameSpec `yaml:"frames" json:"frames"`
	Steps      []Step      `yaml:"steps,omitempty" json:"steps,omitempty"`
}

// FrameSpec declares one frame.  Top level frames without a parent go under the game
// UI origin; Children are created under their enclosing frame.
type FrameSpec struct {
	Id       string         `yaml:"id,omitempty" json:"id,omitempty"`
	Kind     string         `yaml:"kind" json:"kind"`
	Parent   string         `yaml:"parent,omitempty" json:"parent,omitempty"`
	Props    map[string]any `yaml:"props,omitempty" json:"props,omitempty"`
	Children []FrameSpec    `yaml:"children,omitempty" json:"children,omitempty"`
}

// Step is one scripted action; exactly one of Update, Cleanup, Fire, Tick or Schedule
// is set.  Update replaces the frame's whole prop set with Props.
type Step struct {
	Update   string         `yaml:"update,omitempty" json:"update,omitempty"`
	Props    map[string]any `yaml:"props,omitempty" json:"props,omitempty"`
	Cleanup  string         `yaml:"cleanup,omitempty" json:"cleanup,omitempty"`
	Fire     string         `yaml:"fire,omitempty" json:"fire,omitempty"`
	Event    string         `yaml:"event,omitempty" json:"event,omitempty"`
	Tick     int            `yaml:"tick,omitempty" json:"tick,omitempty"`
	Schedule int            `yaml:"schedule,omitempty" json:"schedule,omitempty"`
}

func (s Step) Kind() string {
	switch {
	case s.Update != "":
		return "update"
	case s.Cleanup != "":
		return "cleanup"
	case s.Fire != "":
		return "fire"
	case s.Tick > 0:
		return "tick"
	case s.Schedule > 0:
		return "schedule"
	}
	return ""
}

func (s *Scene) Validate() error {
	ids := make(map[string]bool)
	var walk func(specs []FrameSpec) error
	walk = func(specs []FrameSpec) error {
		for _, spec := range specs {
			if spec.Kind == "" {
				return utilds.Errorf(utilds.ErrCode_Config, "frame %q has no kind", spec.Id)
			}
			if spec.Id != "" {
				if ids[spec.Id] {
					return utilds.Errorf(utilds.ErrCode_Config, "duplicate frame id %q", spec.Id)
				}
				ids[spec.Id] = true
			}
			if err := walk(spec.Children); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(s.Frames); err != nil {
		return err
	}
	for idx, step := range s.Steps {
		if step.Kind() == "" {
			return utilds.Errorf(utilds.ErrCode_Config, "step %d has no action", idx)
		}
	}
	return nil
}

func ParseScene(barr []byte) (*Scene, error) {
	var scene Scene
	if err := yaml.Unmarshal(barr, &scene); err != nil {
		return nil, utilds.Errorf(utilds.ErrCode_Config, "invalid scene yaml: %w", err)
	}
	if err := scene.Validate(); err != nil {
		return nil, err
	}
	return &scene, nil
}

func ReadScene(fileName string) (*Scene, error) {
	barr, err := os.ReadFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("reading scene: %w", err)
	}
	scene, err := ParseScene(barr)
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", fileName, err)
	}
	return scene, nil
}
