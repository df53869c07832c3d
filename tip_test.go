package fortress

import (
	"math"
	"testing"
	"time"
)

func TestTipFade(t *testing.T) {
	tip := newTip("hello", 2*time.Second)
	if !tip.Visible() || tip.Alpha() != 1 {
		t.Fatalf("new tip: visible %v alpha %v", tip.Visible(), tip.Alpha())
	}

	steps := []struct {
		dt      float32
		alpha   float64
		visible bool
	}{
		{0.5, 1, true},    // 0.5s: holding
		{1.0, 1, true},    // 1.5s: fade starts
		{0.25, 0.5, true}, // 1.75s: halfway through the fade
		{0.5, 0, false},   // past the end
	}
	for i, st := range steps {
		tip.Update(st.dt)
		if math.Abs(tip.Alpha()-st.alpha) > 1e-3 {
			t.Errorf("step %d: Alpha = %v, want %v", i, tip.Alpha(), st.alpha)
		}
		if tip.Visible() != st.visible {
			t.Errorf("step %d: Visible = %v, want %v", i, tip.Visible(), st.visible)
		}
	}
}

func TestNilTip(t *testing.T) {
	var tip *Tip
	tip.Update(1)
	if tip.Visible() || tip.Alpha() != 0 {
		t.Error("nil tip should be invisible")
	}
	if newTip("x", 0).Visible() {
		t.Error("zero-duration tip should be invisible")
	}
}

func TestButtons(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		phase PhaseKind
		pos   Vec2
		want  Action
	}{
		{PhaseMainMenu, Vec2{400, 275}, ActionStart},
		{PhaseMainMenu, Vec2{400, 375}, ActionLoad},
		{PhaseMainMenu, Vec2{400, 475}, ActionRules},
		{PhaseMainMenu, Vec2{50, 50}, ActionNone},
		{PhaseRules, Vec2{400, 500}, ActionBack},
		{PhaseBuilding, Vec2{700, 120}, ActionEndBuild},
		{PhaseBattle, Vec2{400, 275}, ActionNone},
		{PhaseGameOver, Vec2{400, 375}, ActionMainMenu},
	}
	for _, tt := range tests {
		t.Run(tt.phase.String(), func(t *testing.T) {
			if got := buttonAt(tt.phase, cfg, tt.pos); got != tt.want {
				t.Errorf("buttonAt(%v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestParseAction(t *testing.T) {
	for _, a := range []Action{ActionStart, ActionLoad, ActionRules, ActionBack, ActionEndBuild, ActionForceBattle, ActionMainMenu} {
		got, ok := ParseAction(a.String())
		if !ok || got != a {
			t.Errorf("ParseAction(%q) = %v, %v", a.String(), got, ok)
		}
	}
	if _, ok := ParseAction("explode"); ok {
		t.Error("ParseAction accepted an unknown name")
	}
}
