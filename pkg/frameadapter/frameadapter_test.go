// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package frameadapter

import (
	"fmt"
	"slices"
	"testing"

	"github.com/wavetermdev/waveframe/pkg/frameapi"
	"github.com/wavetermdev/waveframe/pkg/frameapi/recordkit"
	"github.com/wavetermdev/waveframe/pkg/frameprops"
	"github.com/wavetermdev/waveframe/pkg/panichandler"
	"github.com/wavetermdev/waveframe/pkg/utilds"
)

type renderCall struct {
	Content any
	Into    frameapi.Frame
}

type testRenderer struct {
	renders []renderCall
	flushes int
}

func (r *testRenderer) Render(content any, into frameapi.Frame) {
	r.renders = append(r.renders, renderCall{Content: content, Into: into})
}

func (r *testRenderer) FlushUpdates() {
	r.flushes++
}

func makeTestAdapter() (*Adapter, *recordkit.Kit, *testRenderer) {
	kit := recordkit.MakeKit()
	renderer := &testRenderer{}
	return MakeAdapter(kit, AdapterOpts{Renderer: renderer}), kit, renderer
}

func mustCreate(t *testing.T, a *Adapter, kind string, parent frameapi.Frame, props frameprops.Props) frameapi.Frame {
	t.Helper()
	frame, err := a.CreateFrame(kind, parent, props)
	if err != nil {
		t.Fatalf("create %s: %v", kind, err)
	}
	return frame
}

func pointCalls(kit *recordkit.Kit) []string {
	var rtn []string
	for _, c := range kit.Calls() {
		switch c.Name {
		case "ClearAllPoints", "SetAllPoints", "SetPoint", "SetAbsPoint":
			rtn = append(rtn, c.String())
		}
	}
	return rtn
}

func TestPropSettersExhaustive(t *testing.T) {
	for _, name := range frameprops.AllProps() {
		if _, ok := propSetters[name]; !ok {
			t.Errorf("prop %q has no setter", name)
		}
	}
	for name := range propSetters {
		if !frameprops.IsKnown(name) {
			t.Errorf("setter for %q is not in the prop schema", name)
		}
	}
}

func TestCreateFrameKinds(t *testing.T) {
	tests := []struct {
		kind       string
		props      frameprops.Props
		createKind recordkit.CreateKind
		typeName   string
	}{
		{"button", nil, recordkit.CreateKind_ByType, "BUTTON"},
		{"gluetextbutton", nil, recordkit.CreateKind_ByType, "GLUETEXTBUTTON"},
		{"simple-button", nil, recordkit.CreateKind_ByType, "SIMPLEBUTTON"},
		{"simple-statusbar", nil, recordkit.CreateKind_ByType, "SIMPLESTATUSBAR"},
		{"container", nil, recordkit.CreateKind_ByType, "FRAME"},
		{"simple-container", nil, recordkit.CreateKind_ByType, "SIMPLEFRAME"},
		{"simple-frame", nil, recordkit.CreateKind_Simple, ""},
		{"custom", nil, recordkit.CreateKind_Plain, ""},
		{"button", frameprops.Props{"typeName": "GLUEBUTTON"}, recordkit.CreateKind_ByType, "GLUEBUTTON"},
		{"button", frameprops.Props{"isSimple": true}, recordkit.CreateKind_Simple, ""},
		{"simple-frame", frameprops.Props{"isSimple": false}, recordkit.CreateKind_Plain, ""},
		{"custom", frameprops.Props{"typeName": "BACKDROP", "inherits": "EscMenuBackdrop"}, recordkit.CreateKind_ByType, "BACKDROP"},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("%s/%v", tc.kind, tc.props), func(t *testing.T) {
			a, kit, _ := makeTestAdapter()
			frame := mustCreate(t, a, tc.kind, kit.Origin(), tc.props)
			info, ok := kit.Info(frame)
			if !ok {
				t.Fatalf("frame %v does not exist", frame)
			}
			if info.CreateKind != tc.createKind || info.TypeName != tc.typeName {
				t.Errorf("expected %s %q, got %s %q", tc.createKind, tc.typeName, info.CreateKind, info.TypeName)
			}
		})
	}
}

func TestCreateFrameDefaults(t *testing.T) {
	a, kit, _ := makeTestAdapter()
	frame := mustCreate(t, a, "custom", kit.Origin(), nil)
	info, _ := kit.Info(frame)
	if info.Name != frameprops.DefaultFrameName || info.Priority != 0 || info.Context != 0 {
		t.Errorf("unexpected defaults %+v", info)
	}

	frame = mustCreate(t, a, "custom", kit.Origin(), frameprops.Props{"name": "Panel", "priority": 3, "context": 2})
	info, _ = kit.Info(frame)
	if info.Name != "Panel" || info.Priority != 3 || info.Context != 2 {
		t.Errorf("unexpected creation props %+v", info)
	}
}

func TestCreateFrameParent(t *testing.T) {
	a, kit, _ := makeTestAdapter()
	_, err := a.CreateFrame("button", frameapi.NoFrame, nil)
	if !IsConfigError(err) {
		t.Fatalf("expected config error without a parent, got %v", err)
	}
	if len(kit.Calls()) != 0 {
		t.Errorf("no native calls expected, got %v", kit.Calls())
	}

	other := mustCreate(t, a, "container", kit.Origin(), nil)
	frame := mustCreate(t, a, "button", frameapi.NoFrame, frameprops.Props{"parentFrame": other})
	if a.GetParent(frame) != other {
		t.Errorf("parentFrame prop should be used as parent")
	}
	frame = mustCreate(t, a, "button", kit.Origin(), frameprops.Props{"parentFrame": other})
	if a.GetParent(frame) != other {
		t.Errorf("parentFrame prop should win over the reconciler parent")
	}
}

func TestCreateFrameRefAndOnLoad(t *testing.T) {
	a, kit, _ := makeTestAdapter()
	ref := &frameprops.Ref{}
	var loaded frameapi.Frame
	var refAtLoad frameapi.Frame
	frame := mustCreate(t, a, "text", kit.Origin(), frameprops.Props{
		"ref": ref,
		"onLoad": func(f frameapi.Frame) {
			loaded = f
			refAtLoad = ref.Current
		},
	})
	if ref.Current != frame || loaded != frame {
		t.Errorf("expected ref and onLoad to get %v, got %v %v", frame, ref.Current, loaded)
	}
	if refAtLoad != frame {
		t.Errorf("ref should be written before onLoad runs")
	}
}

func TestNoDiffIsIdempotent(t *testing.T) {
	a, kit, _ := makeTestAdapter()
	parent := mustCreate(t, a, "container", kit.Origin(), nil)
	frame := mustCreate(t, a, "button", parent, nil)
	props := frameprops.Props{
		"text":     "hello",
		"alpha":    200,
		"font":     frameprops.Font{Height: frameprops.Ptr(24.0)},
		"size":     map[string]any{"width": 400, "height": 0.05},
		"position": []any{"clear", map[string]any{"point": "top", "relative": "previous", "relativePoint": "bottom"}},
		"tooltip":  "tip",
		"onClick":  frameprops.NewHandler(func() {}),
		"ref":      &frameprops.Ref{},
		"visible":  true,
	}
	if err := a.UpdateFrameProperties(frame, nil, props); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	kit.ResetCalls()
	if err := a.UpdateFrameProperties(frame, props, props); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls := kit.Calls(); len(calls) != 0 {
		t.Errorf("expected no native calls, got %v", calls)
	}
}

func TestScalarAndCompoundProps(t *testing.T) {
	a, kit, _ := makeTestAdapter()
	frame := mustCreate(t, a, "slider", kit.Origin(), nil)
	err := a.UpdateFrameProperties(frame, nil, frameprops.Props{
		"value":         float64(3),
		"minMaxValue":   frameprops.MinMax{Max: frameprops.Ptr(10.0)},
		"font":          map[string]any{"height": 24},
		"texture":       "ui/bg.blp",
		"textAlignment": map[string]any{"horz": "center"},
		"model":         frameprops.Model{ModelFile: frameprops.Ptr("m.mdx")},
		"spriteAnimate": frameprops.SpriteAnimate{Flags: frameprops.Ptr(2)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []string
	for _, c := range kit.Calls()[1:] {
		got = append(got, c.String())
	}
	expected := []string{
		`SetFont(frame:2, "", 24, 0)`,
		`SetMinMaxValue(frame:2, -9.99999999e+08, 10)`,
		`SetModel(frame:2, "m.mdx", 0)`,
		`SetSpriteAnimate(frame:2, 0, 2)`,
		`SetTextAlignment(frame:2, 0, 4)`,
		`SetTexture(frame:2, "ui/bg.blp", 0, true)`,
		`SetValue(frame:2, 3)`,
	}
	if !slices.Equal(got, expected) {
		t.Errorf("unexpected calls:\n got %q\nwant %q", got, expected)
	}
}

func TestClearPassAppliesDefaults(t *testing.T) {
	a, kit, _ := makeTestAdapter()
	frame := mustCreate(t, a, "text", kit.Origin(), nil)
	prev := frameprops.Props{"text": "a", "alpha": 10, "font": map[string]any{"height": 20}, "name": "Label"}
	if err := a.UpdateFrameProperties(frame, nil, prev); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	kit.ResetCalls()
	if err := a.UpdateFrameProperties(frame, prev, frameprops.Props{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []string
	for _, c := range kit.Calls() {
		got = append(got, c.String())
	}
	expected := []string{
		`SetAlpha(frame:2, 255)`,
		`SetFont(frame:2, "", 16, 0)`,
		`SetText(frame:2, "")`,
	}
	if !slices.Equal(got, expected) {
		t.Errorf("unexpected calls:\n got %q\nwant %q", got, expected)
	}
}

func TestSizeUsesUnitConversion(t *testing.T) {
	a, kit, _ := makeTestAdapter()
	frame := mustCreate(t, a, "backdrop", kit.Origin(), nil)
	a.UpdateFrameProperties(frame, nil, frameprops.Props{"size": map[string]any{"width": 800, "height": 0.5}})
	if v, _ := kit.Attr(frame, "size"); !slices.Equal(v.([]any), []any{0.4, 0.5}) {
		t.Errorf("unexpected size %v", v)
	}
	a.SetPixelScale(800)
	a.UpdateFrameProperties(frame, nil, frameprops.Props{"size": frameprops.Size{Width: frameprops.Ptr(800.0)}})
	if v, _ := kit.Attr(frame, "size"); !slices.Equal(v.([]any), []any{0.8, 0.0}) {
		t.Errorf("unexpected size after rescale %v", v)
	}
}

func TestHandlerLifecycle(t *testing.T) {
	a, kit, _ := makeTestAdapter()
	frame := mustCreate(t, a, "button", kit.Origin(), nil)
	var hits []string
	h1 := frameprops.NewHandler(func() { hits = append(hits, "h1") })
	h2 := frameprops.NewHandler(func() { hits = append(hits, "h2") })

	a.UpdateFrameProperties(frame, nil, frameprops.Props{"onClick": h1})
	triggers := kit.TriggersFor(frame, frameapi.EventControlClick)
	if len(triggers) != 1 {
		t.Fatalf("expected one trigger, got %v", triggers)
	}
	first := triggers[0]

	a.UpdateFrameProperties(frame, frameprops.Props{"onClick": h1}, frameprops.Props{"onClick": h2})
	triggers = kit.TriggersFor(frame, frameapi.EventControlClick)
	if len(triggers) != 1 || triggers[0] != first {
		t.Fatalf("second handler should reuse trigger %v, got %v", first, triggers)
	}
	if kit.CountCalls("CreateTrigger") != 1 || kit.CountCalls("ClearConditions") != 1 {
		t.Errorf("expected one create and one condition clear, got %v", kit.CallNames())
	}
	if id, _ := a.BoundHandlerId(frame, frameapi.EventControlClick); id != h2.Id {
		t.Errorf("binding should record the new handler")
	}

	kit.Fire(frame, frameapi.EventControlClick)
	if !slices.Equal(hits, []string{"h2"}) {
		t.Errorf("only the current handler should run, got %v", hits)
	}

	a.UpdateFrameProperties(frame, frameprops.Props{"onClick": h2}, frameprops.Props{})
	destroyed := kit.FindCalls("DestroyTrigger")
	if len(destroyed) != 1 || destroyed[0].Args[0] != first {
		t.Errorf("expected trigger %v destroyed, got %v", first, destroyed)
	}
	if kit.TriggerCount() != 0 || a.TriggerCount() != 0 {
		t.Errorf("expected no triggers left, kit=%d adapter=%d", kit.TriggerCount(), a.TriggerCount())
	}
}

func TestClickResetsFocus(t *testing.T) {
	a, kit, _ := makeTestAdapter()
	frame := mustCreate(t, a, "button", kit.Origin(), nil)
	clicks := 0
	a.UpdateFrameProperties(frame, nil, frameprops.Props{
		"onClick":      frameprops.NewHandler(func() { clicks++ }),
		"onMouseEnter": frameprops.NewHandler(func() {}),
	})
	kit.ResetCalls()
	kit.Fire(frame, frameapi.EventControlClick)
	enables := kit.FindCalls("SetEnable")
	if clicks != 1 || len(enables) != 2 || enables[0].Args[1] != false || enables[1].Args[1] != true {
		t.Errorf("expected disable/enable around the click, got clicks=%d %v", clicks, enables)
	}
	kit.ResetCalls()
	kit.Fire(frame, frameapi.EventMouseEnter)
	if kit.CountCalls("SetEnable") != 0 {
		t.Errorf("only clicks toggle enabled")
	}
}

func TestHandlerPanicIsContained(t *testing.T) {
	panichandler.PrintStack = false
	defer func() { panichandler.PrintStack = true }()
	a, kit, _ := makeTestAdapter()
	frame := mustCreate(t, a, "button", kit.Origin(), nil)
	a.UpdateFrameProperties(frame, nil, frameprops.Props{"onMouseUp": frameprops.NewHandler(func() { panic("boom") })})
	if n := kit.Fire(frame, frameapi.EventMouseUp); n != 1 {
		t.Errorf("expected the condition to run, got %d", n)
	}
}

func TestBareFuncHandlerRejected(t *testing.T) {
	a, kit, _ := makeTestAdapter()
	frame := mustCreate(t, a, "button", kit.Origin(), nil)
	err := a.UpdateFrameProperties(frame, nil, frameprops.Props{"onClick": func() {}})
	if !IsConfigError(err) {
		t.Errorf("expected config error, got %v", err)
	}
	if kit.TriggerCount() != 0 {
		t.Errorf("no trigger expected")
	}
}

func TestPreviousOnFirstChildFallsBackToParent(t *testing.T) {
	tests := []struct {
		relativePoint string
		expected      []string
	}{
		{"bottom", []string{"SetPoint(frame:3, top, frame:2, top, 0, 0)"}},
		{"bottom-left", []string{"SetPoint(frame:3, top, frame:2, topleft, 0, 0)"}},
		{"bottomright", []string{"SetPoint(frame:3, top, frame:2, topright, 0, 0)"}},
		{"right", []string{"SetPoint(frame:3, top, frame:2, left, 0, 0)"}},
		{"center", nil},
	}
	for _, tc := range tests {
		t.Run(tc.relativePoint, func(t *testing.T) {
			a, kit, _ := makeTestAdapter()
			parent := mustCreate(t, a, "container", kit.Origin(), nil)
			child := mustCreate(t, a, "text", parent, nil)
			kit.ResetCalls()
			err := a.UpdateFrameProperties(child, nil, frameprops.Props{
				"position": map[string]any{"point": "top", "relative": "previous", "relativePoint": tc.relativePoint},
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := pointCalls(kit); !slices.Equal(got, tc.expected) {
				t.Errorf("got %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestPreviousSibling(t *testing.T) {
	a, kit, _ := makeTestAdapter()
	parent := mustCreate(t, a, "container", kit.Origin(), nil)
	first := mustCreate(t, a, "text", parent, nil)
	second := mustCreate(t, a, "text", parent, nil)
	a.UpdateFrameProperties(second, nil, frameprops.Props{
		"position": frameprops.Anchor{
			Point:         frameapi.PointTop,
			Relative:      frameprops.RelativeSym(frameprops.Relative_Previous),
			RelativePoint: frameapi.PointBottom,
			Y:             frameprops.Ptr(-0.01),
		},
	})
	expected := []string{fmt.Sprintf("top->%s.bottom(0,-0.01)", first)}
	if got := kit.Points(second); !slices.Equal(got, expected) {
		t.Errorf("got %q, want %q", got, expected)
	}
}

func TestUnsetRelativeAnchorsToParent(t *testing.T) {
	a, kit, _ := makeTestAdapter()
	parent := mustCreate(t, a, "container", kit.Origin(), nil)
	fromMap := mustCreate(t, a, "text", parent, nil)
	typed := mustCreate(t, a, "text", parent, nil)
	if err := a.UpdateFrameProperties(fromMap, nil, frameprops.Props{
		"position": map[string]any{"point": "topleft", "relativePoint": "topleft"},
	}); err != nil {
		t.Fatalf("map anchor: %v", err)
	}
	if err := a.UpdateFrameProperties(typed, nil, frameprops.Props{
		"position": frameprops.Anchor{Point: frameapi.PointTopLeft, RelativePoint: frameapi.PointTopLeft},
	}); err != nil {
		t.Fatalf("typed anchor: %v", err)
	}
	expected := []string{fmt.Sprintf("topleft->%s.topleft(0,0)", parent)}
	if got := kit.Points(fromMap); !slices.Equal(got, expected) {
		t.Errorf("map anchor: got %q, want %q", got, expected)
	}
	if got := kit.Points(typed); !slices.Equal(got, expected) {
		t.Errorf("typed anchor: got %q, want %q", got, expected)
	}
}

func TestChildrenRelative(t *testing.T) {
	a, kit, _ := makeTestAdapter()
	parent := mustCreate(t, a, "container", kit.Origin(), nil)
	first := mustCreate(t, a, "text", parent, nil)
	mustCreate(t, a, "text", parent, nil)
	last := mustCreate(t, a, "text", parent, nil)

	tests := []struct {
		relative      frameprops.RelativeSymbol
		relativePoint frameapi.FramePoint
		expected      frameapi.Frame
	}{
		{frameprops.Relative_Children, frameapi.PointTopLeft, first},
		{frameprops.Relative_Children, frameapi.PointLeft, first},
		{frameprops.Relative_Children, frameapi.PointBottomRight, last},
		{frameprops.Relative_ChildrenReverse, frameapi.PointTop, last},
		{frameprops.Relative_ChildrenReverse, frameapi.PointRight, first},
	}
	for _, tc := range tests {
		got, err := resolveRelative(kit, parent, frameprops.RelativeSym(tc.relative), tc.relativePoint)
		if err != nil || got != tc.expected {
			t.Errorf("%s/%s: expected %v, got %v %v", tc.relative, tc.relativePoint, tc.expected, got, err)
		}
	}

	for _, point := range []frameapi.FramePoint{frameapi.PointCenter, frameapi.PointTopRight, frameapi.PointBottomLeft} {
		if _, err := resolveRelative(kit, parent, frameprops.RelativeSym(frameprops.Relative_Children), point); !IsConfigError(err) {
			t.Errorf("%s: expected config error, got %v", point, err)
		}
	}

	empty := mustCreate(t, a, "container", kit.Origin(), nil)
	if got, err := resolveRelative(kit, empty, frameprops.RelativeSym(frameprops.Relative_Children), frameapi.PointBottom); err != nil || !got.IsNull() {
		t.Errorf("no children resolves to null, got %v %v", got, err)
	}
	if got, _ := resolveRelative(kit, first, frameprops.RelativeTo(last), frameapi.PointCenter); got != last {
		t.Errorf("direct handles resolve to themselves")
	}
}

func TestPositionEntriesInOrder(t *testing.T) {
	a, kit, _ := makeTestAdapter()
	parent := mustCreate(t, a, "container", kit.Origin(), nil)
	frame := mustCreate(t, a, "text", parent, nil)
	kit.ResetCalls()
	err := a.UpdateFrameProperties(frame, nil, frameprops.Props{
		"position": []any{
			"clear",
			map[string]any{"point": "left", "relative": "children", "relativePoint": "center"},
			"parent",
			map[string]any{"point": "topleft", "relativePoint": "topleft", "x": 16, "y": -16},
		},
	})
	if !IsConfigError(err) {
		t.Errorf("expected a config error for the bad entry, got %v", err)
	}
	expected := []string{
		"ClearAllPoints(frame:3)",
		"SetAllPoints(frame:3, frame:2)",
		"SetPoint(frame:3, topleft, frame:2, topleft, 0.008, -0.008)",
	}
	if got := pointCalls(kit); !slices.Equal(got, expected) {
		t.Errorf("got %q, want %q", got, expected)
	}
}

func TestAbsPosition(t *testing.T) {
	a, kit, _ := makeTestAdapter()
	frame := mustCreate(t, a, "text", kit.Origin(), nil)
	kit.ResetCalls()
	a.UpdateFrameProperties(frame, nil, frameprops.Props{
		"absPosition": []any{"clear", map[string]any{"point": "center", "x": 0.4, "y": 300}},
	})
	expected := []string{"ClearAllPoints(frame:2)", "SetAbsPoint(frame:2, center, 0.4, 0.15)"}
	if got := pointCalls(kit); !slices.Equal(got, expected) {
		t.Errorf("got %q, want %q", got, expected)
	}
	kit.ResetCalls()
	a.UpdateFrameProperties(frame, frameprops.Props{"absPosition": "clear"}, frameprops.Props{})
	if len(kit.Calls()) != 0 {
		t.Errorf("clearing absPosition is a no-op, got %v", kit.Calls())
	}
}

func TestTooltipLifecycle(t *testing.T) {
	a, kit, renderer := makeTestAdapter()
	host := mustCreate(t, a, "button", kit.Origin(), nil)
	if err := a.UpdateFrameProperties(host, nil, frameprops.Props{"tooltip": "hello"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tooltip, ok := a.TooltipOf(host)
	if !ok || kit.TooltipOf(host) != tooltip {
		t.Fatalf("expected tooltip frame to be set on host")
	}
	info, _ := kit.Info(tooltip)
	if info.Name != TooltipFrameName || info.TypeName != "FRAME" || a.GetParent(tooltip) != kit.Origin() {
		t.Errorf("unexpected tooltip frame %+v", info)
	}

	a.UpdateFrameProperties(host, frameprops.Props{"tooltip": "hello"}, frameprops.Props{"tooltip": "bye"})
	if kit.CountCalls("SetTooltip") != 1 {
		t.Errorf("tooltip frame should be created once")
	}
	expected := []renderCall{{"hello", tooltip}, {"bye", tooltip}}
	if !slices.Equal(renderer.renders, expected) {
		t.Errorf("unexpected renders %v", renderer.renders)
	}

	a.CleanupFrame(host)
	if kit.Exists(host) || kit.Exists(tooltip) {
		t.Errorf("cleanup should destroy host and tooltip")
	}
	if _, ok := a.TooltipOf(host); ok {
		t.Errorf("tooltip association should be dropped")
	}

	a.UpdateFrameProperties(host, nil, frameprops.Props{"tooltip": "again"})
	if next, _ := a.TooltipOf(host); next == tooltip {
		t.Errorf("stale tooltip %v reused", tooltip)
	}
}

func TestTooltipClear(t *testing.T) {
	a, kit, renderer := makeTestAdapter()
	host := mustCreate(t, a, "button", kit.Origin(), nil)
	a.UpdateFrameProperties(host, frameprops.Props{"tooltip": "x"}, frameprops.Props{})
	if _, ok := a.TooltipOf(host); ok || len(renderer.renders) != 0 {
		t.Errorf("clearing a never-set tooltip should do nothing")
	}
	a.UpdateFrameProperties(host, nil, frameprops.Props{"tooltip": "x"})
	a.UpdateFrameProperties(host, frameprops.Props{"tooltip": "x"}, frameprops.Props{})
	if last := renderer.renders[len(renderer.renders)-1]; last.Content != nil {
		t.Errorf("clearing should render nil content, got %v", last.Content)
	}
}

func TestTooltipWithoutRenderer(t *testing.T) {
	kit := recordkit.MakeKit()
	a := MakeAdapter(kit, AdapterOpts{})
	host, _ := a.CreateFrame("button", kit.Origin(), nil)
	if err := a.UpdateFrameProperties(host, nil, frameprops.Props{"tooltip": "x"}); !IsConfigError(err) {
		t.Errorf("expected config error, got %v", err)
	}
}

func TestCleanupReleasesTriggers(t *testing.T) {
	a, kit, _ := makeTestAdapter()
	frame := mustCreate(t, a, "editbox", kit.Origin(), nil)
	a.UpdateFrameProperties(frame, nil, frameprops.Props{
		"onEditboxEnter":       frameprops.NewHandler(func() {}),
		"onEditboxTextChanged": frameprops.NewHandler(func() {}),
	})
	if kit.TriggerCount() != 2 {
		t.Fatalf("expected 2 triggers, got %d", kit.TriggerCount())
	}
	a.CleanupFrame(frame)
	if kit.TriggerCount() != 0 || a.TriggerCount() != 0 {
		t.Errorf("triggers should be destroyed with the frame")
	}
}

func TestRefProp(t *testing.T) {
	a, kit, _ := makeTestAdapter()
	frame := mustCreate(t, a, "text", kit.Origin(), nil)
	ref := &frameprops.Ref{}
	a.UpdateFrameProperties(frame, nil, frameprops.Props{"ref": ref})
	if ref.Current != frame {
		t.Errorf("expected ref to hold %v", frame)
	}
}

func TestUpdateErrorsAreIsolated(t *testing.T) {
	a, kit, _ := makeTestAdapter()
	frame := mustCreate(t, a, "text", kit.Origin(), nil)
	err := a.UpdateFrameProperties(frame, nil, frameprops.Props{
		"alpha": "opaque",
		"text":  "ok",
		"bogus": 1,
	})
	if !IsConfigError(err) {
		t.Fatalf("expected config error, got %v", err)
	}
	if utilds.GetErrorSubCode(err) != "alpha" {
		t.Errorf("first error should name alpha, got %q", utilds.GetErrorSubCode(err))
	}
	if v, _ := kit.Attr(frame, "text"); v != "ok" {
		t.Errorf("text should still be applied, got %v", v)
	}
}

type panicKit struct {
	*recordkit.Kit
}

func (panicKit) SetText(frame frameapi.Frame, text string) {
	panic("native failure")
}

func TestSetterPanicIsIsolated(t *testing.T) {
	panichandler.PrintStack = false
	defer func() { panichandler.PrintStack = true }()
	kit := recordkit.MakeKit()
	a := MakeAdapter(panicKit{kit}, AdapterOpts{})
	frame, _ := a.CreateFrame("text", kit.Origin(), nil)
	err := a.UpdateFrameProperties(frame, nil, frameprops.Props{"text": "x", "alpha": 5})
	if !utilds.HasErrorCode(err, utilds.ErrCode_Panic) {
		t.Errorf("expected panic error, got %v", err)
	}
	if v, _ := kit.Attr(frame, "alpha"); v != 5 {
		t.Errorf("alpha should still be applied, got %v", v)
	}
}

func TestScheduleUpdateCoalesces(t *testing.T) {
	a, kit, renderer := makeTestAdapter()
	a.ScheduleUpdate()
	a.ScheduleUpdate()
	a.ScheduleUpdate()
	if !a.UpdatePending() {
		t.Errorf("update should be pending")
	}
	kit.RunTicks(3)
	if renderer.flushes != 1 {
		t.Errorf("expected one flush, got %d", renderer.flushes)
	}
	if a.UpdatePending() {
		t.Errorf("flush should clear pending")
	}
	a.ScheduleUpdate()
	kit.Tick()
	if renderer.flushes != 2 {
		t.Errorf("expected a second flush, got %d", renderer.flushes)
	}
	if kit.CountCalls("CreateTimer") != 1 || kit.CountCalls("StartTimer") != 2 {
		t.Errorf("timer should be created once and reused, calls %v", kit.CallNames())
	}
}

func TestOrderedPropNames(t *testing.T) {
	got := orderedPropNames(frameprops.Props{"zeta": 1, "onClick": nil, "text": "", "alpha": 1, "beta": 2})
	expected := []string{"alpha", "text", "onClick", "beta", "zeta"}
	if !slices.Equal(got, expected) {
		t.Errorf("got %v, want %v", got, expected)
	}
}
