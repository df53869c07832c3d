package fortress

import "fmt"

// PieceKind is the closed set of piece kinds. The numeric values are part of
// the persisted record format.
type PieceKind uint8

const (
	KindMilitary PieceKind = iota + 1 // elongated box, heavy and stable
	KindChinese                       // square box, the fortress keystone
	KindGo                            // low triangle, grippy, tagged special
)

// Kinds lists every kind in selection order (keys 1, 2, 3).
var Kinds = [...]PieceKind{KindMilitary, KindChinese, KindGo}

// ShapeKind distinguishes the collision geometry of a piece.
type ShapeKind uint8

const (
	ShapeBox ShapeKind = iota
	ShapeTriangle
)

// kindSpec is the geometry and physical-constant table of one kind.
// Box extents and triangle vertices are multiples of the base radius.
type kindSpec struct {
	name        string
	shape       ShapeKind
	boxW, boxH  float64
	triHalfBase float64
	mass        float64
	friction    float64
	restitution float64
}

var kindSpecs = map[PieceKind]kindSpec{
	KindMilitary: {name: "military", shape: ShapeBox, boxW: 2.4, boxH: 1.3, mass: 20, friction: 0.9, restitution: 0.1},
	KindChinese:  {name: "chinese", shape: ShapeBox, boxW: 2.0, boxH: 2.0, mass: 15, friction: 0.6, restitution: 0.3},
	KindGo:       {name: "go", shape: ShapeTriangle, triHalfBase: 1.1, mass: 10, friction: 1.0, restitution: 0.05},
}

// Valid reports whether k is one of the three kinds.
func (k PieceKind) Valid() bool {
	_, ok := kindSpecs[k]
	return ok
}

// String returns the lower-case kind name.
func (k PieceKind) String() string {
	if s, ok := kindSpecs[k]; ok {
		return s.name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Shape returns the collision geometry family of k.
func (k PieceKind) Shape() ShapeKind { return kindSpecs[k].shape }

// Mass returns the default body mass of k.
func (k PieceKind) Mass() float64 { return kindSpecs[k].mass }

// Friction returns the default shape friction of k.
func (k PieceKind) Friction() float64 { return kindSpecs[k].friction }

// Restitution returns the default shape elasticity of k.
func (k PieceKind) Restitution() float64 { return kindSpecs[k].restitution }

// Geometry is the local-space outline of a piece, centered on the body origin.
type Geometry struct {
	Shape    ShapeKind
	Width    float64 // bounding width
	Height   float64 // bounding height
	Vertices []Vec2  // convex outline, body-local
}

// Geometry derives the outline of k from the base radius.
func (k PieceKind) Geometry(radius float64) Geometry {
	s := kindSpecs[k]
	switch s.shape {
	case ShapeTriangle:
		hb := s.triHalfBase * radius
		return Geometry{
			Shape:  ShapeTriangle,
			Width:  2 * hb,
			Height: 2 * radius,
			Vertices: []Vec2{
				{-hb, radius},
				{hb, radius},
				{0, -radius},
			},
		}
	default:
		w, h := s.boxW*radius, s.boxH*radius
		return Geometry{
			Shape:  ShapeBox,
			Width:  w,
			Height: h,
			Vertices: []Vec2{
				{-w / 2, -h / 2},
				{w / 2, -h / 2},
				{w / 2, h / 2},
				{-w / 2, h / 2},
			},
		}
	}
}
