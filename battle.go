package fortress

// BattleAction says what a battle input did.
type BattleAction uint8

const (
	BattleNone BattleAction = iota
	BattlePlaced
	BattleCharging
	BattleLaunched
)

// Battle runs the charge-and-launch protocol for the active player of a
// Match. The projectile itself lives on the Match so the phase machine can
// discard it on any transition.
type Battle struct{}

// PointerDown places a projectile at the active player's anchor when none is
// live, or starts charging when the pointer lands on a placed one.
func (Battle) PointerDown(m *Match, pos Vec2) BattleAction {
	p := m.Projectile
	switch {
	case p == nil:
		p = NewProjectile(m.Phase.Player, Anchor(m.Phase.Player, m.Cfg), m.Cfg)
		m.World.Add(p.body)
		m.Projectile = p
		return BattlePlaced
	case p.State() == ProjectilePlaced && p.Contains(pos):
		p.BeginCharge()
		return BattleCharging
	}
	return BattleNone
}

// PointerUp launches a charging projectile toward pos and returns the impulse
// applied.
func (Battle) PointerUp(m *Match, pos Vec2) (Vec2, BattleAction) {
	p := m.Projectile
	if p == nil || p.State() != ProjectileCharging {
		return Vec2{}, BattleNone
	}
	return p.Launch(pos), BattleLaunched
}

// Tick accumulates charge once per update.
func (Battle) Tick(m *Match) {
	if m.Projectile != nil {
		m.Projectile.Tick()
	}
}

// Settle marks a launched projectile as settled once it rests below the
// settle speed, or when its body is gone. It reports whether the turn may
// now switch.
func (Battle) Settle(m *Match) bool {
	p := m.Projectile
	if p == nil {
		return false
	}
	if p.State() == ProjectileLaunched {
		if !p.body.Attached() || p.body.Speed() < m.Cfg.Settle.Speed {
			p.settle()
		}
	}
	return p.State() == ProjectileSettled
}

// EndTurn discards the spent projectile and returns the player to act next.
func (Battle) EndTurn(m *Match) int {
	m.discardProjectile()
	return Opponent(m.Phase.Player)
}
