package fortress

// Match is the per-match mutable state the controllers share: the world,
// both fortresses, the phase, the live projectile and the selected kind.
// Exactly one goroutine owns a Match.
type Match struct {
	Cfg        Config
	World      *World
	Phase      Phase
	Fortresses [2]*Fortress
	Projectile *Projectile
	Selected   PieceKind

	// frozen is set while player 1's pieces are out of the simulation
	// during player 2's build.
	frozen bool
}

// Fortress returns player's fortress, or nil if it has not been created.
func (m *Match) Fortress(player int) *Fortress {
	if player < 1 || player > 2 {
		return nil
	}
	return m.Fortresses[player-1]
}

// PieceFor resolves a body to the committed piece that owns it.
func (m *Match) PieceFor(b *Body) *Piece {
	if b == nil {
		return nil
	}
	for _, f := range m.Fortresses {
		if f == nil {
			continue
		}
		for _, p := range f.pieces {
			if p.body == b {
				return p
			}
		}
	}
	return nil
}

// freeze takes player 1's pieces out of the simulation.
func (m *Match) freeze() {
	if f := m.Fortress(1); f != nil && !m.frozen {
		f.Freeze(m.World)
		m.frozen = true
	}
}

// thaw puts player 1's pieces back at their saved positions.
func (m *Match) thaw() {
	if f := m.Fortress(1); f != nil && m.frozen {
		f.Thaw(m.World)
	}
	m.frozen = false
}

// discardProjectile removes the live projectile from the world.
func (m *Match) discardProjectile() {
	if m.Projectile != nil {
		m.World.Remove(m.Projectile.body)
		m.Projectile = nil
	}
}

// reposition shifts player 1's fortress left of the midline and player 2's
// right of it, each keeping at least the configured gap.
func (m *Match) reposition() {
	mid := m.Cfg.Screen.Width / 2
	gap := m.Cfg.Battle.RepositionGap
	if f := m.Fortress(1); f != nil {
		if _, maxX, ok := f.Extent(); ok && maxX > mid-gap {
			f.Translate(mid - gap - maxX)
		}
	}
	if f := m.Fortress(2); f != nil {
		if minX, _, ok := f.Extent(); ok && minX < mid+gap {
			f.Translate(mid + gap - minX)
		}
	}
}
