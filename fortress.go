package fortress

import (
	"errors"
	"math"
)

var (
	// ErrKindLimit is returned by AddPiece when the piece's kind is already
	// at its per-fortress limit.
	ErrKindLimit = errors.New("fortress: piece kind limit reached")
	// ErrForeignPiece is returned by AddPiece when the piece already belongs
	// to another fortress.
	ErrForeignPiece = errors.New("fortress: piece belongs to another fortress")
)

// Fortress is one player's committed pieces in placement order, with
// per-kind placement counters.
type Fortress struct {
	Owner int

	pieces []*Piece
	counts [len(Kinds) + 1]int

	limits            KindLimits
	fallenLine        float64
	destroyedFraction float64
}

// NewFortress creates an empty fortress for owner.
func NewFortress(owner int, cfg Config) *Fortress {
	return &Fortress{
		Owner:             owner,
		limits:            cfg.Piece.Limits,
		fallenLine:        cfg.GroundY() - cfg.Piece.FallenOffset,
		destroyedFraction: cfg.Piece.DestroyedFraction,
	}
}

// Pieces returns the committed pieces in placement order. The returned slice
// MUST NOT be mutated.
func (f *Fortress) Pieces() []*Piece { return f.pieces }

// Len returns the number of committed pieces.
func (f *Fortress) Len() int { return len(f.pieces) }

// Count returns how many pieces of kind k are committed.
func (f *Fortress) Count(k PieceKind) int {
	if !k.Valid() {
		return 0
	}
	return f.counts[k]
}

// Limit returns the placement limit for kind k.
func (f *Fortress) Limit(k PieceKind) int { return f.limits.Of(k) }

// CanAdd reports whether another piece of kind k fits under the limit.
func (f *Fortress) CanAdd(k PieceKind) bool {
	return k.Valid() && f.counts[k] < f.limits.Of(k)
}

// HasKeystone reports whether at least one Chinese piece is committed, the
// precondition for ending the owner's building phase.
func (f *Fortress) HasKeystone() bool { return f.counts[KindChinese] >= 1 }

// Contains reports whether p is one of the committed pieces.
func (f *Fortress) Contains(p *Piece) bool {
	return f.indexOf(p) >= 0
}

func (f *Fortress) indexOf(p *Piece) int {
	for i, q := range f.pieces {
		if q == p {
			return i
		}
	}
	return -1
}

// AddPiece commits p: stamps the owner and collision tag, appends it and
// increments its kind counter. The fortress is left unchanged on failure.
func (f *Fortress) AddPiece(p *Piece) error {
	if p == nil {
		return ErrForeignPiece
	}
	if f.Contains(p) {
		return nil
	}
	if !f.CanAdd(p.Kind) {
		return ErrKindLimit
	}
	if p.member != nil && p.member != f {
		return ErrForeignPiece
	}
	p.Owner = f.Owner
	p.member = f
	p.restamp()
	f.pieces = append(f.pieces, p)
	f.counts[p.Kind]++
	return nil
}

// Detach removes p and decrements its kind counter. It reports whether p was
// a member.
func (f *Fortress) Detach(p *Piece) bool {
	i := f.indexOf(p)
	if i < 0 {
		return false
	}
	copy(f.pieces[i:], f.pieces[i+1:])
	f.pieces[len(f.pieces)-1] = nil
	f.pieces = f.pieces[:len(f.pieces)-1]
	f.counts[p.Kind]--
	p.member = nil
	return true
}

// PieceAt returns the most recently placed piece under pt, or nil.
func (f *Fortress) PieceAt(pt Vec2) *Piece {
	for i := len(f.pieces) - 1; i >= 0; i-- {
		if f.pieces[i].Contains(pt) {
			return f.pieces[i]
		}
	}
	return nil
}

// DestructionFraction returns the share of pieces resting below the fallen
// line. It is recomputed from live physics state on every call. An empty
// fortress counts as fully destroyed.
func (f *Fortress) DestructionFraction() float64 {
	if len(f.pieces) == 0 {
		return 1.0
	}
	fallen := 0
	for _, p := range f.pieces {
		if p.fallen(f.fallenLine) {
			fallen++
		}
	}
	return float64(fallen) / float64(len(f.pieces))
}

// IsDestroyed reports whether the destruction fraction is strictly above
// the configured threshold.
func (f *Fortress) IsDestroyed() bool {
	return f.DestructionFraction() > f.destroyedFraction
}

// Prune drops pieces whose physics body is no longer attached to any world
// and returns how many were removed.
func (f *Fortress) Prune() int {
	n := 0
	for i := len(f.pieces) - 1; i >= 0; i-- {
		if p := f.pieces[i]; !p.body.Attached() {
			f.Detach(p)
			n++
		}
	}
	return n
}

// Freeze detaches every piece body from w, keeping positions for Thaw.
func (f *Fortress) Freeze(w *World) {
	for _, p := range f.pieces {
		w.Remove(p.body)
	}
}

// Thaw reattaches every piece body to w at its saved position.
func (f *Fortress) Thaw(w *World) {
	for _, p := range f.pieces {
		w.Add(p.body)
		p.restamp()
	}
}

// Extent returns the horizontal span covered by the pieces' outlines. ok is
// false for an empty fortress.
func (f *Fortress) Extent() (minX, maxX float64, ok bool) {
	minX, maxX = math.Inf(1), math.Inf(-1)
	for _, p := range f.pieces {
		for _, v := range p.Outline() {
			minX = math.Min(minX, v.X)
			maxX = math.Max(maxX, v.X)
		}
	}
	return minX, maxX, len(f.pieces) > 0
}

// Translate shifts every piece horizontally by dx.
func (f *Fortress) Translate(dx float64) {
	if dx == 0 {
		return
	}
	for _, p := range f.pieces {
		pos := p.Position()
		p.body.SetPosition(Vec2{pos.X + dx, pos.Y})
	}
}
