package fortress

import (
	"testing"
)

func TestSubSteps(t *testing.T) {
	w := NewWorld(DefaultConfig())
	tests := []struct {
		dt   float64
		want int
	}{
		{1.0 / 60, 2},
		{1.0 / 120, 1},
		{0.02, 3},
		{0, 0},
		{-1, 0},
	}
	for _, tt := range tests {
		if got := w.SubSteps(tt.dt); got != tt.want {
			t.Errorf("SubSteps(%v) = %d, want %d", tt.dt, got, tt.want)
		}
	}
	if got := w.Step(1.0 / 60).SubSteps; got != 2 {
		t.Errorf("Step(1/60).SubSteps = %d, want 2", got)
	}
}

func TestWorldAddRemove(t *testing.T) {
	w := NewWorld(DefaultConfig())
	p := NewPiece(Vec2{100, 100}, KindMilitary, 1, 20)

	w.Add(p.Body())
	w.Add(p.Body())
	if w.BodyCount() != 1 || !w.Contains(p.Body()) || !p.Body().Attached() {
		t.Fatalf("after Add: count %d", w.BodyCount())
	}
	w.Remove(p.Body())
	w.Remove(p.Body())
	if w.BodyCount() != 0 || p.Body().Attached() {
		t.Fatalf("after Remove: count %d", w.BodyCount())
	}
}

func TestWorldReset(t *testing.T) {
	w := NewWorld(DefaultConfig())
	p := NewPiece(Vec2{100, 100}, KindMilitary, 1, 20)
	w.Add(p.Body())
	w.Reset()
	if w.BodyCount() != 0 || p.Body().Attached() {
		t.Errorf("Reset left %d bodies, attached=%v", w.BodyCount(), p.Body().Attached())
	}
}

func TestPieceComesToRestOnGround(t *testing.T) {
	cfg := DefaultConfig()
	w := NewWorld(cfg)
	p := NewPiece(Vec2{400, 400}, KindMilitary, 1, 20)
	w.Add(p.Body())
	p.Body().SetVelocity(Vec2{0, 300})

	for i := 0; i < 180; i++ {
		w.Step(1.0 / 60)
		w.Clamp(p.Body(), false)
	}
	pos := p.Position()
	if pos.Y <= 400 || pos.Y >= cfg.GroundY() {
		t.Errorf("resting y = %v, want between 400 and the ground at %v", pos.Y, cfg.GroundY())
	}
	if s := p.Body().Speed(); s >= cfg.Settle.Speed {
		t.Errorf("resting speed = %v, want < %v", s, cfg.Settle.Speed)
	}
}

func TestClamp(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("left edge", func(t *testing.T) {
		w := NewWorld(cfg)
		p := NewPiece(Vec2{5, 300}, KindMilitary, 1, 20)
		w.Add(p.Body())
		p.Body().SetVelocity(Vec2{-30, 10})
		w.Clamp(p.Body(), false)
		if got := p.Position(); got.X != cfg.Bounds.Margin {
			t.Errorf("x = %v, want %v", got.X, cfg.Bounds.Margin)
		}
		if got := p.Body().Velocity(); got != (Vec2{0, 10}) {
			t.Errorf("velocity = %v, want {0 10}", got)
		}
	})

	t.Run("bottom edge", func(t *testing.T) {
		w := NewWorld(cfg)
		p := NewPiece(Vec2{300, 700}, KindMilitary, 1, 20)
		w.Add(p.Body())
		w.Clamp(p.Body(), false)
		if got := p.Position().Y; got != cfg.Screen.Height-cfg.Bounds.Margin {
			t.Errorf("y = %v, want %v", got, cfg.Screen.Height-cfg.Bounds.Margin)
		}
	})

	t.Run("settle", func(t *testing.T) {
		w := NewWorld(cfg)
		p := NewPiece(Vec2{300, 300}, KindMilitary, 1, 20)
		w.Add(p.Body())
		p.Body().SetVelocity(Vec2{3, 0})
		p.Body().SetAngularVelocity(1)
		w.Clamp(p.Body(), false)
		if got := p.Body().Velocity(); got != (Vec2{}) {
			t.Errorf("velocity = %v, want zero", got)
		}
		if got := p.Body().AngularVelocity(); got != 0 {
			t.Errorf("angular velocity = %v, want 0", got)
		}
	})

	t.Run("pull up", func(t *testing.T) {
		w := NewWorld(cfg)
		p := NewPiece(Vec2{300, 540}, KindGo, 1, 20)
		w.Add(p.Body())
		w.Clamp(p.Body(), true)
		if got := p.Position().Y; got != cfg.GroundY()-floorPullUpDepth {
			t.Errorf("y = %v, want %v", got, cfg.GroundY()-floorPullUpDepth)
		}
		if got := p.Body().Velocity().Y; got != -floorPullUpSpeed {
			t.Errorf("vy = %v, want %v", got, -floorPullUpSpeed)
		}
	})

	t.Run("kinematic untouched", func(t *testing.T) {
		w := NewWorld(cfg)
		p := NewPiece(Vec2{5, 300}, KindMilitary, 1, 20)
		w.Add(p.Body())
		p.Body().SetType(BodyKinematic)
		w.Clamp(p.Body(), false)
		if got := p.Position().X; got != 5 {
			t.Errorf("x = %v, want 5", got)
		}
	})
}

func TestContactDispatchOrdersBodiesByPair(t *testing.T) {
	cfg := DefaultConfig()
	w := NewWorld(cfg)
	piece := NewPiece(Vec2{100, 100}, KindMilitary, 1, 20)
	proj := NewProjectile(1, Vec2{300, 100}, cfg)
	w.Add(piece.Body())
	w.Add(proj.Body())

	var gotA, gotB *Body
	calls := 0
	var gotState BodyState
	w.Handle(TagProjectile, TagPlayer1Piece, func(c Contact) {
		gotA, gotB, gotState = c.A, c.B, c.StateA
		calls++
	})
	proj.Body().SetType(BodyDynamic)
	proj.Body().SetVelocity(Vec2{-250, 0})

	pair := pairOf(TagProjectile, TagPlayer1Piece)
	for _, order := range [][2]*Body{{piece.Body(), proj.Body()}, {proj.Body(), piece.Body()}} {
		gotA, gotB = nil, nil
		w.record(pair, order[0].shape, order[1].shape)
		w.dispatch()
		if gotA != proj.Body() || gotB != piece.Body() {
			t.Errorf("handler got (%p, %p), want (projectile %p, piece %p)", gotA, gotB, proj.Body(), piece.Body())
		}
		if gotState.Velocity != (Vec2{-250, 0}) || gotState.Position != (Vec2{300, 100}) {
			t.Errorf("projectile state = %+v, want the recorded motion", gotState)
		}
	}

	w.Remove(piece.Body())
	w.record(pair, piece.Body().shape, proj.Body().shape)
	w.dispatch()
	if calls != 2 {
		t.Errorf("calls = %d, want 2 (detached contact skipped)", calls)
	}
}
