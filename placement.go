package fortress

import (
	"errors"
	"math"
)

// ErrNoChinesePiece is returned when a player tries to end building without
// a Chinese piece in the fortress.
var ErrNoChinesePiece = errors.New("fortress: at least one Chinese piece is required")

// RotateStep is how far one rotate key turns the dragged piece.
const RotateStep = 15 * math.Pi / 180

// DropOutcome says what happened to a dragged piece on release.
type DropOutcome uint8

const (
	DropNone      DropOutcome = iota // nothing was being dragged
	DropCommitted                    // piece joined the fortress as a dynamic body
	DropDiscarded                    // new piece dropped on the ground strip
	DropRestored                     // existing piece returned to where it was
)

var dropOutcomeNames = [...]string{"none", "committed", "discarded", "restored"}

func (o DropOutcome) String() string {
	if int(o) < len(dropOutcomeNames) {
		return dropOutcomeNames[o]
	}
	return "unknown"
}

// drag is the transient ownership of a piece that belongs to no fortress
// while it is being positioned.
type drag struct {
	piece  *Piece
	offset Vec2

	// existing is set when the piece was lifted out of a fortress; origin
	// and originAngle are where it came from.
	existing    bool
	origin      Vec2
	originAngle float64
}

// Placement runs the building-phase drag and drop workflow for the
// building player of m.
type Placement struct {
	drag *drag
}

// Dragging returns the piece being dragged, or nil.
func (pl *Placement) Dragging() *Piece {
	if pl.drag == nil {
		return nil
	}
	return pl.drag.piece
}

// StartDrag lifts the committed piece under pos, or creates a new piece of
// the selected kind there. A new piece over the kind limit is refused with
// ErrKindLimit and nothing changes.
func (pl *Placement) StartDrag(m *Match, pos Vec2) (*Piece, error) {
	if pl.drag != nil {
		pl.Cancel(m)
	}
	f := m.Fortress(m.Phase.Player)
	if f == nil {
		return nil, nil
	}

	if p := f.PieceAt(pos); p != nil {
		origin, angle := p.Position(), p.Angle()
		f.Detach(p)
		p.body.SetType(BodyKinematic)
		pl.drag = &drag{
			piece:       p,
			offset:      pos.Sub(origin),
			existing:    true,
			origin:      origin,
			originAngle: angle,
		}
		return p, nil
	}

	if !f.CanAdd(m.Selected) {
		return nil, ErrKindLimit
	}
	p := NewPiece(pos, m.Selected, f.Owner, m.Cfg.Piece.Radius)
	p.body.SetType(BodyKinematic)
	m.World.Add(p.body)
	pl.drag = &drag{piece: p}
	return p, nil
}

// Move places the dragged piece at pos minus the grab offset.
func (pl *Placement) Move(pos Vec2) {
	if pl.drag == nil || !pos.IsFinite() {
		return
	}
	pl.drag.piece.body.SetPosition(pos.Sub(pl.drag.offset))
}

// Rotate turns the dragged piece by delta radians.
func (pl *Placement) Rotate(delta float64) {
	if pl.drag == nil {
		return
	}
	b := pl.drag.piece.body
	b.SetAngle(b.Angle() + delta)
}

// StopDrag releases the dragged piece at pos. A drop inside the ground strip
// discards a new piece or restores a lifted one; any other drop commits the
// piece to the building player's fortress.
func (pl *Placement) StopDrag(m *Match, pos Vec2) (*Piece, DropOutcome) {
	d := pl.drag
	if d == nil {
		return nil, DropNone
	}
	pl.drag = nil
	f := m.Fortress(m.Phase.Player)

	if !pos.IsFinite() || pos.Y > m.Cfg.GroundY()-m.Cfg.Drop.GroundStrip || f == nil {
		return d.piece, pl.rollback(m, d)
	}

	p := d.piece
	p.body.SetPosition(pos.Sub(d.offset))
	p.body.SetType(BodyDynamic)
	if err := f.AddPiece(p); err != nil {
		return p, pl.rollback(m, d)
	}
	p.body.SetVelocity(Vec2{0, m.Cfg.Drop.SettleVelocity})
	return p, DropCommitted
}

// Cancel abandons the drag with no trace: a new piece is removed from the
// world and a lifted piece goes back to its fortress unchanged.
func (pl *Placement) Cancel(m *Match) {
	if d := pl.drag; d != nil {
		pl.drag = nil
		pl.rollback(m, d)
	}
}

func (pl *Placement) rollback(m *Match, d *drag) DropOutcome {
	p := d.piece
	if !d.existing {
		m.World.Remove(p.body)
		return DropDiscarded
	}
	p.body.SetPosition(d.origin)
	p.body.SetAngle(d.originAngle)
	p.body.SetType(BodyDynamic)
	if f := m.Fortress(p.Owner); f != nil {
		// The kind counter was released by Detach, so this cannot hit the
		// limit.
		_ = f.AddPiece(p)
	}
	return DropRestored
}

// CanEndBuild reports whether f may close its building phase.
func CanEndBuild(f *Fortress) error {
	if f == nil || !f.HasKeystone() {
		return ErrNoChinesePiece
	}
	return nil
}
