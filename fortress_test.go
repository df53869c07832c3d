package fortress

import (
	"errors"
	"math"
	"testing"
)

// wideLimits allows up to n pieces of every kind.
func wideLimits(n int) Config {
	cfg := DefaultConfig()
	cfg.Piece.Limits = KindLimits{Military: n, Chinese: n, Go: n}
	return cfg
}

// addAt commits a piece of kind k at pos to f and attaches it to w.
func addAt(t *testing.T, f *Fortress, w *World, k PieceKind, pos Vec2) *Piece {
	t.Helper()
	p := NewPiece(pos, k, f.Owner, 20)
	if err := f.AddPiece(p); err != nil {
		t.Fatalf("AddPiece(%v at %v): %v", k, pos, err)
	}
	w.Add(p.Body())
	return p
}

func TestFortressKindLimits(t *testing.T) {
	cfg := DefaultConfig()
	w := NewWorld(cfg)
	f := NewFortress(1, cfg)

	for i := 0; i < 5; i++ {
		addAt(t, f, w, KindMilitary, Vec2{float64(100 + 50*i), 300})
	}
	extra := NewPiece(Vec2{100, 200}, KindMilitary, 1, 20)
	if err := f.AddPiece(extra); !errors.Is(err, ErrKindLimit) {
		t.Fatalf("AddPiece over limit = %v, want ErrKindLimit", err)
	}
	if f.Len() != 5 || f.Count(KindMilitary) != 5 {
		t.Errorf("Len/Count = %d/%d, want 5/5", f.Len(), f.Count(KindMilitary))
	}
	if f.CanAdd(KindMilitary) {
		t.Error("CanAdd(military) = true at the limit")
	}
	if !f.CanAdd(KindChinese) || !f.CanAdd(KindGo) {
		t.Error("other kinds should still fit")
	}
	if f.HasKeystone() {
		t.Error("HasKeystone = true without a Chinese piece")
	}

	addAt(t, f, w, KindChinese, Vec2{400, 300})
	if !f.HasKeystone() {
		t.Error("HasKeystone = false after adding a Chinese piece")
	}
	if err := f.AddPiece(NewPiece(Vec2{}, KindChinese, 1, 20)); !errors.Is(err, ErrKindLimit) {
		t.Errorf("second Chinese piece = %v, want ErrKindLimit", err)
	}
}

func TestFortressAddStampsOwner(t *testing.T) {
	cfg := DefaultConfig()
	f := NewFortress(2, cfg)
	p := NewPiece(Vec2{}, KindMilitary, 1, 20)
	if err := f.AddPiece(p); err != nil {
		t.Fatal(err)
	}
	if p.Owner != 2 || p.Tag() != TagPlayer2Piece {
		t.Errorf("Owner/Tag = %d/%v, want 2/player2", p.Owner, p.Tag())
	}
	if err := f.AddPiece(p); err != nil || f.Len() != 1 {
		t.Errorf("re-adding a member = %v with Len %d, want nil with 1", err, f.Len())
	}

	other := NewFortress(1, cfg)
	if err := other.AddPiece(p); !errors.Is(err, ErrForeignPiece) {
		t.Errorf("AddPiece of another fortress's piece = %v, want ErrForeignPiece", err)
	}
	if other.Len() != 0 {
		t.Errorf("other.Len = %d, want 0", other.Len())
	}
}

func TestFortressDetach(t *testing.T) {
	cfg := DefaultConfig()
	w := NewWorld(cfg)
	f := NewFortress(1, cfg)
	a := addAt(t, f, w, KindMilitary, Vec2{100, 300})
	b := addAt(t, f, w, KindGo, Vec2{200, 300})

	if !f.Detach(a) {
		t.Fatal("Detach(member) = false")
	}
	if f.Detach(a) {
		t.Error("Detach twice = true")
	}
	if f.Len() != 1 || f.Count(KindMilitary) != 0 || f.Pieces()[0] != b {
		t.Errorf("after Detach: Len %d, military %d", f.Len(), f.Count(KindMilitary))
	}
	if !f.CanAdd(KindMilitary) {
		t.Error("Detach should release the kind counter")
	}
}

func TestFortressPieceAtPrefersTopmost(t *testing.T) {
	cfg := DefaultConfig()
	w := NewWorld(cfg)
	f := NewFortress(1, cfg)
	addAt(t, f, w, KindMilitary, Vec2{100, 300})
	top := addAt(t, f, w, KindChinese, Vec2{110, 300})

	if got := f.PieceAt(Vec2{105, 300}); got != top {
		t.Errorf("PieceAt overlap = %v, want the later piece", got)
	}
	if got := f.PieceAt(Vec2{500, 100}); got != nil {
		t.Errorf("PieceAt empty space = %v, want nil", got)
	}
}

func TestDestructionFraction(t *testing.T) {
	t.Run("empty fortress is destroyed", func(t *testing.T) {
		f := NewFortress(1, DefaultConfig())
		if got := f.DestructionFraction(); got != 1.0 {
			t.Errorf("DestructionFraction = %v, want 1", got)
		}
		if !f.IsDestroyed() {
			t.Error("IsDestroyed = false for an empty fortress")
		}
	})

	tests := []struct {
		name      string
		fallen    int
		standing  int
		want      float64
		destroyed bool
	}{
		{"none fallen", 0, 4, 0, false},
		{"exactly at threshold", 7, 3, 0.7, false},
		{"above threshold", 8, 2, 0.8, true},
		{"all fallen", 3, 0, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := wideLimits(10)
			w := NewWorld(cfg)
			f := NewFortress(1, cfg)
			for i := 0; i < tt.fallen; i++ {
				addAt(t, f, w, KindMilitary, Vec2{float64(60 + 30*i), 520})
			}
			for i := 0; i < tt.standing; i++ {
				addAt(t, f, w, KindChinese, Vec2{float64(60 + 45*i), 300})
			}
			if got := f.DestructionFraction(); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("DestructionFraction = %v, want %v", got, tt.want)
			}
			if got := f.IsDestroyed(); got != tt.destroyed {
				t.Errorf("IsDestroyed = %v, want %v", got, tt.destroyed)
			}
		})
	}
}

func TestDetachedPiecesCountAsFallen(t *testing.T) {
	cfg := DefaultConfig()
	w := NewWorld(cfg)
	f := NewFortress(1, cfg)
	a := addAt(t, f, w, KindMilitary, Vec2{100, 300})
	addAt(t, f, w, KindChinese, Vec2{200, 300})

	w.Remove(a.Body())
	if got := f.DestructionFraction(); got != 0.5 {
		t.Errorf("DestructionFraction = %v, want 0.5", got)
	}
	if n := f.Prune(); n != 1 || f.Len() != 1 {
		t.Errorf("Prune = %d leaving %d, want 1 leaving 1", n, f.Len())
	}
	if got := f.DestructionFraction(); got != 0 {
		t.Errorf("after Prune DestructionFraction = %v, want 0", got)
	}
}

func TestFortressFreezeThaw(t *testing.T) {
	cfg := DefaultConfig()
	w := NewWorld(cfg)
	f := NewFortress(1, cfg)
	p := addAt(t, f, w, KindMilitary, Vec2{100, 300})

	f.Freeze(w)
	if p.Body().Attached() || w.BodyCount() != 0 {
		t.Fatal("Freeze left bodies in the world")
	}
	w.Step(1.0 / 60)
	f.Thaw(w)
	if !p.Body().Attached() {
		t.Fatal("Thaw did not reattach")
	}
	if got := p.Position(); got != (Vec2{100, 300}) {
		t.Errorf("Position after thaw = %v, want {100 300}", got)
	}
}

func TestFortressExtentTranslate(t *testing.T) {
	cfg := DefaultConfig()
	w := NewWorld(cfg)
	f := NewFortress(1, cfg)
	if _, _, ok := f.Extent(); ok {
		t.Error("Extent of empty fortress reported ok")
	}
	addAt(t, f, w, KindMilitary, Vec2{100, 300})
	addAt(t, f, w, KindChinese, Vec2{300, 300})

	minX, maxX, ok := f.Extent()
	if !ok || minX != 76 || maxX != 320 {
		t.Errorf("Extent = %v, %v, %v, want 76, 320, true", minX, maxX, ok)
	}
	f.Translate(-20)
	minX, maxX, _ = f.Extent()
	if minX != 56 || maxX != 300 {
		t.Errorf("Extent after Translate = %v, %v, want 56, 300", minX, maxX)
	}
}
