package fortress

import (
	"math"

	"github.com/rs/zerolog"
)

// Correction is the adjustment a collision rule asks for. Rules never touch
// bodies themselves; the engine applies the returned corrections after the
// sub-step that produced the contact.
type Correction struct {
	Target   *Body
	Position *Vec2
	Velocity *Vec2
	Impulse  Vec2
}

// apply writes the correction into its target. A target that left the world
// since the contact was recorded is skipped.
func (c Correction) apply() bool {
	if !c.Target.Attached() {
		return false
	}
	if c.Position != nil {
		c.Target.SetPosition(*c.Position)
	}
	if c.Velocity != nil {
		c.Target.SetVelocity(*c.Velocity)
	}
	if c.Impulse != (Vec2{}) {
		c.Target.ApplyImpulse(c.Impulse)
	}
	return true
}

// Rule inspects a contact between the bodies tagged with the pair it was
// registered for and returns the correction to apply, if any. c.A is the
// body carrying the pair's first tag. Rules read motion from the contact's
// captured states, not from the bodies, which the solver has moved on since.
type Rule func(c Contact, cfg Config) (Correction, bool)

// snapSpecial lifts a Go piece (c.B) that sank below the ground tolerance
// back up and cancels its downward velocity.
func snapSpecial(c Contact, cfg Config) (Correction, bool) {
	special := c.B
	if special == nil || special.Type() != BodyDynamic {
		return Correction{}, false
	}
	floor := cfg.GroundY() - floorPullUpDepth
	pos := c.StateB.Position
	if pos.Y <= floor {
		return Correction{}, false
	}
	vel := c.StateB.Velocity
	vel.Y = math.Min(vel.Y, 0)
	return Correction{Target: special, Position: &Vec2{pos.X, floor}, Velocity: &vel}, true
}

// dampOnGround slows a projectile (c.A) on every ground contact and stops
// it once it falls under the settle speed. The damped velocity keeps the
// incoming horizontal direction and drops the downward component into the
// ground.
func dampOnGround(c Contact, cfg Config) (Correction, bool) {
	projectile := c.A
	if projectile == nil {
		return Correction{}, false
	}
	vel := c.StateA.Velocity
	vel.Y = math.Min(vel.Y, 0)
	vel = vel.Scale(cfg.Projectile.GroundDamping)
	if !vel.IsFinite() || vel.Len() < cfg.Settle.Speed {
		vel = Vec2{}
	}
	return Correction{Target: projectile, Velocity: &vel}, true
}

// boostStruck gives a struck piece (c.B) an extra impulse along the
// projectile's (c.A) incoming velocity, capped, and amplified for special
// pieces.
func boostStruck(c Contact, cfg Config) (Correction, bool) {
	projectile, piece := c.A, c.B
	if projectile == nil || piece == nil || piece.Type() != BodyDynamic {
		return Correction{}, false
	}
	pc := cfg.Projectile
	vel := c.StateA.Velocity
	speed := vel.Len()
	if !vel.IsFinite() || speed <= pc.BoostThreshold {
		return Correction{}, false
	}
	mag := math.Min(speed*pc.BoostFactor, pc.BoostMax)
	if piece.Tag() == TagSpecialPiece {
		mag *= pc.SpecialBoost
	}
	return Correction{Target: piece, Impulse: vel.Scale(mag / speed)}, true
}

// RuleEngine binds the collision rules to a World. Piece contacts are only
// honored when the struck body resolves to a committed piece.
type RuleEngine struct {
	cfg    Config
	log    zerolog.Logger
	lookup func(*Body) *Piece
	rules  map[tagPair]Rule

	corrections int
}

// NewRuleEngine creates the stock rule table. lookup resolves a body to its
// committed piece, or nil.
func NewRuleEngine(cfg Config, lookup func(*Body) *Piece) *RuleEngine {
	e := &RuleEngine{
		cfg:    cfg,
		log:    cfg.Logger,
		lookup: lookup,
		rules:  make(map[tagPair]Rule),
	}
	e.rules[pairOf(TagGround, TagSpecialPiece)] = snapSpecial
	e.rules[pairOf(TagGround, TagProjectile)] = func(c Contact, cfg Config) (Correction, bool) {
		return dampOnGround(c.swapped(), cfg)
	}
	for _, t := range []CollisionTag{TagPlayer1Piece, TagPlayer2Piece, TagSpecialPiece} {
		e.rules[pairOf(t, TagProjectile)] = e.pieceRule(boostStruck)
	}
	return e
}

// pieceRule adapts a (projectile, piece) rule to the (piece, projectile)
// order the pair is stored in and filters out uncommitted bodies.
func (e *RuleEngine) pieceRule(r Rule) Rule {
	return func(c Contact, cfg Config) (Correction, bool) {
		if e.lookup != nil && e.lookup(c.A) == nil {
			return Correction{}, false
		}
		return r(c.swapped(), cfg)
	}
}

// Install registers every rule with w.
func (e *RuleEngine) Install(w *World) {
	for pair, rule := range e.rules {
		pair, rule := pair, rule
		w.Handle(pair.lo, pair.hi, func(ct Contact) {
			if c, ok := rule(ct, e.cfg); ok && c.apply() {
				e.corrections++
				e.log.Debug().Stringer("a", pair.lo).Stringer("b", pair.hi).Msg("collision correction")
			}
		})
	}
}

// Corrections returns and resets the number of corrections applied.
func (e *RuleEngine) Corrections() int {
	n := e.corrections
	e.corrections = 0
	return n
}
