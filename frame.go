package fortress

import (
	"github.com/google/uuid"
	"github.com/tanema/gween/ease"
)

// PieceView is what a renderer needs to draw one piece.
type PieceView struct {
	ID       uuid.UUID
	Owner    int
	Kind     PieceKind
	Position Vec2
	Angle    float64
	Vertices []Vec2
}

// ProjectileView is what a renderer needs to draw the projectile.
type ProjectileView struct {
	Position Vec2
	Angle    float64
	State    ProjectileState
	Length   float64
	Width    float64
}

// Frame is an immutable snapshot of everything a UI draws.
type Frame struct {
	Phase    Phase
	Selected PieceKind
	GroundY  float64
	Debug    bool

	// Charge is the raw charge fraction; ChargeMeter is the eased value for
	// the on-screen bar.
	Charge      float64
	ChargeMeter float64

	Tip      string
	TipAlpha float64

	Pieces     []PieceView
	Drag       *PieceView
	Projectile *ProjectileView
	Buttons    []Button

	// Destruction is each player's destruction fraction, valid in battle
	// and game over.
	Destruction [2]float64
}

func viewOf(p *Piece) PieceView {
	return PieceView{
		ID:       p.ID,
		Owner:    p.Owner,
		Kind:     p.Kind,
		Position: p.Position(),
		Angle:    p.Angle(),
		Vertices: p.Outline(),
	}
}

// Snapshot captures the current state for drawing. Pieces whose bodies are
// out of the simulation, such as player 1's during player 2's build, are
// omitted.
func (g *Game) Snapshot() Frame {
	m := &g.match
	fr := Frame{
		Phase:    m.Phase,
		Selected: m.Selected,
		GroundY:  m.Cfg.GroundY(),
		Debug:    g.debug,
		Buttons:  Buttons(m.Phase.Kind, m.Cfg),
	}
	if t := g.Tip(); t != nil {
		fr.Tip, fr.TipAlpha = t.Text, t.Alpha()
	}

	for i, f := range m.Fortresses {
		if f == nil {
			continue
		}
		if m.Phase.Kind == PhaseBattle || m.Phase.Kind == PhaseGameOver {
			fr.Destruction[i] = f.DestructionFraction()
		}
		for _, p := range f.pieces {
			if p.body.Attached() {
				fr.Pieces = append(fr.Pieces, viewOf(p))
			}
		}
	}
	if p := g.placement.Dragging(); p != nil {
		v := viewOf(p)
		fr.Drag = &v
	}
	if p := m.Projectile; p != nil && p.body.Attached() {
		fr.Charge = p.ChargeFraction()
		fr.ChargeMeter = float64(ease.OutQuad(float32(fr.Charge), 0, 1, 1))
		fr.Projectile = &ProjectileView{
			Position: p.Position(),
			Angle:    p.Angle(),
			State:    p.State(),
			Length:   m.Cfg.Projectile.Length,
			Width:    m.Cfg.Projectile.Width,
		}
	}
	return fr
}
