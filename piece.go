package fortress

import (
	"math"

	"github.com/google/uuid"
	"github.com/jakecoffman/cp"
)

// Piece is one rigid game piece. Once committed it belongs to exactly one
// Fortress for the rest of the match; "destroyed" is judged from its
// position, never by deleting it.
type Piece struct {
	ID     uuid.UUID
	Owner  int
	Kind   PieceKind
	Radius float64

	geom Geometry
	body *Body
	hit  HitShape

	// member is the fortress the piece was committed to, if any.
	member *Fortress
}

// NewPiece builds a dynamic piece of kind k for owner centered at pos. The
// shape is derived from radius; the moment of inertia is computed from the
// true box or triangle outline.
func NewPiece(pos Vec2, k PieceKind, owner int, radius float64) *Piece {
	return newPieceAt(pos, 0, k, owner, radius)
}

func newPieceAt(pos Vec2, angle float64, k PieceKind, owner int, radius float64) *Piece {
	if !k.Valid() {
		k = KindMilitary
	}
	g := k.Geometry(radius)
	mass := k.Mass()

	spec := bodySpec{
		mass:        mass,
		friction:    k.Friction(),
		restitution: k.Restitution(),
		tag:         pieceTag(k, owner),
	}
	var hit HitShape
	switch g.Shape {
	case ShapeTriangle:
		spec.moment = polyMoment(mass, g.Vertices)
		spec.shape = polyShape(g.Vertices)
		hit = HitCircle{Radius: radius}
	default:
		spec.moment = cp.MomentForBox(mass, g.Width, g.Height)
		spec.shape = boxShape(g.Width, g.Height)
		hit = HitRect{X: -g.Width / 2, Y: -g.Height / 2, Width: g.Width, Height: g.Height}
	}

	return &Piece{
		ID:     uuid.New(),
		Owner:  owner,
		Kind:   k,
		Radius: radius,
		geom:   g,
		body:   newBody(spec, sanitize(pos, Vec2{}), angle),
		hit:    hit,
	}
}

// Body returns the piece's physics handle.
func (p *Piece) Body() *Body { return p.body }

// Tag returns the piece's collision tag.
func (p *Piece) Tag() CollisionTag { return p.body.Tag() }

// Geometry returns the body-local outline.
func (p *Piece) Geometry() Geometry { return p.geom }

// Position returns the body origin.
func (p *Piece) Position() Vec2 { return p.body.Position() }

// Angle returns the rotation in radians.
func (p *Piece) Angle() float64 { return p.body.Angle() }

// Outline returns the world-space vertices for drawing.
func (p *Piece) Outline() []Vec2 {
	pos, angle := p.Position(), p.Angle()
	out := make([]Vec2, len(p.geom.Vertices))
	for i, v := range p.geom.Vertices {
		out[i] = v.Rotate(angle).Add(pos)
	}
	return out
}

// Contains hit-tests a world-space point: box overlap in the piece's local
// frame for box kinds, distance to center for triangles.
func (p *Piece) Contains(pt Vec2) bool {
	local := pt.Sub(p.Position()).Rotate(-p.Angle())
	return p.hit.Contains(local.X, local.Y)
}

// fallen reports whether the piece counts as knocked down. A piece whose
// body left the world is fallen.
func (p *Piece) fallen(threshold float64) bool {
	if !p.body.Attached() {
		return true
	}
	y := p.Position().Y
	return math.IsNaN(y) || y > threshold
}

// restamp sets the collision tag from the current owner.
func (p *Piece) restamp() {
	p.body.setTag(pieceTag(p.Kind, p.Owner))
}
