// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package scene

import (
	"fmt"
	"slices"
	"testing"

	"github.com/wavetermdev/waveframe/pkg/utilds"
)

func mustParse(t *testing.T, src string) *Scene {
	t.Helper()
	scene, err := ParseScene([]byte(src))
	if err != nil {
		t.Fatalf("cannot parse scene: %v", err)
	}
	return scene
}

func TestReplayMenu(t *testing.T) {
	scene, err := ReadScene("testdata/menu.yaml")
	if err != nil {
		t.Fatalf("cannot read scene: %v", err)
	}
	p := MakePlayer(PlayerOpts{})
	if err := p.Play(scene); err != nil {
		t.Fatalf("play failed: %v", err)
	}
	if errs := p.Errors(); len(errs) != 0 {
		t.Errorf("unexpected adapter errors %v", errs)
	}
	expectedEvents := []string{"play-clicked", "resume-clicked", "quit-clicked"}
	if !slices.Equal(p.Events(), expectedEvents) {
		t.Errorf("expected events %v, got %v", expectedEvents, p.Events())
	}
	if p.Flushes() != 1 {
		t.Errorf("expected one flush, got %d", p.Flushes())
	}

	kit := p.Kit()
	play := p.Ref("playButton")
	if play.IsNull() || kit.Exists(play) {
		t.Errorf("play button %v should have been created and cleaned up", play)
	}
	if _, ok := p.Frame("play"); ok {
		t.Errorf("cleaned up frame id should be forgotten")
	}
	panel, _ := p.Frame("panel")
	title, _ := p.Frame("title")
	quit, _ := p.Frame("quit")
	if got := kit.Points(title); !slices.Equal(got, []string{fmt.Sprintf("top->%s.top(0,-0.008)", panel)}) {
		t.Errorf("unexpected title points %v", got)
	}
	if got := kit.Points(quit); !slices.Equal(got, []string{fmt.Sprintf("top->%s.bottom(0,0)", play)}) {
		t.Errorf("unexpected quit points %v", got)
	}
	if got := kit.Points(panel); !slices.Equal(got, []string{"center->abs(0.4,0.3)"}) {
		t.Errorf("unexpected panel points %v", got)
	}
	if v, _ := kit.Attr(panel, "size"); !slices.Equal(v.([]any), []any{0.2, 0.15}) {
		t.Errorf("unexpected panel size %v", v)
	}
	if kit.TriggerCount() != 1 {
		t.Errorf("only the quit trigger should be left, got %d", kit.TriggerCount())
	}
}

func TestReplayIsDeterministic(t *testing.T) {
	scene, err := ReadScene("testdata/menu.yaml")
	if err != nil {
		t.Fatalf("cannot read scene: %v", err)
	}
	callStrs := func() []string {
		result, err := Replay(scene, PlayerOpts{})
		if err != nil {
			t.Fatalf("replay failed: %v", err)
		}
		var rtn []string
		for _, c := range result.Calls {
			rtn = append(rtn, c.String())
		}
		return rtn
	}
	first := callStrs()
	second := callStrs()
	if len(first) == 0 || !slices.Equal(first, second) {
		t.Errorf("replays differ:\n%v\n%v", first, second)
	}
}

func TestTooltipContent(t *testing.T) {
	scene := mustParse(t, `
frames:
  - id: btn
    kind: button
    props:
      tooltip: first
steps:
  - update: btn
    props:
      tooltip:
        kind: backdrop
        children:
          - kind: text
            props: {text: second}
`)
	p := MakePlayer(PlayerOpts{})
	if err := p.mountSpecs(scene.Frames, ""); err != nil {
		t.Fatalf("mount failed: %v", err)
	}
	btn, _ := p.Frame("btn")
	tooltip, ok := p.Adapter().TooltipOf(btn)
	if !ok {
		t.Fatalf("expected a tooltip frame")
	}
	kit := p.Kit()
	content := kit.Children(tooltip)
	if len(content) != 1 {
		t.Fatalf("expected one content frame, got %v", content)
	}
	if v, _ := kit.Attr(content[0], "text"); v != "first" {
		t.Errorf("expected text content, got %v", v)
	}

	if err := p.runStep(scene.Steps[0]); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if kit.Exists(content[0]) {
		t.Errorf("previous tooltip content should be unmounted")
	}
	content = kit.Children(tooltip)
	if len(content) != 1 {
		t.Fatalf("expected one content frame, got %v", content)
	}
	info, _ := kit.Info(content[0])
	if info.TypeName != "BACKDROP" || len(info.Children) != 1 || info.Children[0].Attrs["text"] != "second" {
		t.Errorf("unexpected tooltip content %+v", info)
	}
}

func TestHandlerLabelsKeepIdentity(t *testing.T) {
	scene := mustParse(t, `
frames:
  - id: btn
    kind: button
    props: {onClick: go, text: a}
steps:
  - update: btn
    props: {onClick: go, text: b}
  - fire: btn
    event: control_click
`)
	p := MakePlayer(PlayerOpts{})
	if err := p.Play(scene); err != nil {
		t.Fatalf("play failed: %v", err)
	}
	kit := p.Kit()
	if kit.CountCalls("CreateTrigger") != 1 || kit.CountCalls("ClearConditions") != 0 {
		t.Errorf("same label should keep the same handler, calls %v", kit.CallNames())
	}
	if !slices.Equal(p.Events(), []string{"go"}) {
		t.Errorf("unexpected events %v", p.Events())
	}
}

func TestAdapterErrorsDoNotStopPlay(t *testing.T) {
	scene := mustParse(t, `
frames:
  - id: a
    kind: text
    props: {alpha: opaque, text: ok}
`)
	p := MakePlayer(PlayerOpts{})
	if err := p.Play(scene); err != nil {
		t.Fatalf("play failed: %v", err)
	}
	if len(p.Errors()) != 1 {
		t.Errorf("expected one recorded error, got %v", p.Errors())
	}
	a, _ := p.Frame("a")
	if v, _ := p.Kit().Attr(a, "text"); v != "ok" {
		t.Errorf("text should be applied")
	}
}

func TestPlayErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown update", "frames: []\nsteps:\n  - update: nope\n"},
		{"unknown parent", "frames:\n  - {id: a, kind: text, parent: nope}\n"},
		{"unknown relative", "frames:\n  - {id: a, kind: text, props: {position: {point: top, relativePoint: top, relative: '#nope'}}}\n"},
		{"bad event", "frames:\n  - {id: a, kind: text}\nsteps:\n  - {fire: a, event: explode}\n"},
		{"bad handler", "frames:\n  - {id: a, kind: button, props: {onClick: 5}}\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			scene := mustParse(t, tc.src)
			if err := MakePlayer(PlayerOpts{}).Play(scene); err == nil {
				t.Errorf("expected play error")
			}
		})
	}
}

func TestParseSceneErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"no kind", "frames:\n  - {id: a}\n"},
		{"duplicate id", "frames:\n  - {id: a, kind: text}\n  - {id: a, kind: text}\n"},
		{"empty step", "frames: []\nsteps:\n  - {}\n"},
		{"bad yaml", "frames: [\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseScene([]byte(tc.src))
			if !utilds.HasErrorCode(err, utilds.ErrCode_Config) {
				t.Errorf("expected config error, got %v", err)
			}
		})
	}
}
