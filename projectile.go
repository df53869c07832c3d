package fortress

import (
	"math"

	"github.com/jakecoffman/cp"
)

// ProjectileState is the lifecycle position of the live projectile.
type ProjectileState uint8

const (
	ProjectileIdle ProjectileState = iota
	ProjectilePlaced
	ProjectileCharging
	ProjectileLaunched
	ProjectileSettled
)

var projectileStateNames = [...]string{"idle", "placed", "charging", "launched", "settled"}

func (s ProjectileState) String() string {
	if int(s) < len(projectileStateNames) {
		return projectileStateNames[s]
	}
	return "unknown"
}

// Projectile is the single transient body the active player launches.
type Projectile struct {
	Owner int

	state  ProjectileState
	charge float64
	body   *Body
	cfg    ProjectileConfig
	grab   HitCircle
}

// Anchor returns the player-side point where a projectile is placed.
func Anchor(player int, cfg Config) Vec2 {
	inset := cfg.Projectile.AnchorInset
	y := cfg.Screen.Height - inset
	if player == 2 {
		return Vec2{cfg.Screen.Width - inset, y}
	}
	return Vec2{inset, y}
}

// NewProjectile builds a kinematic projectile at pos in the Placed state.
// It is not attached to any world.
func NewProjectile(owner int, pos Vec2, cfg Config) *Projectile {
	pc := cfg.Projectile
	body := newBody(bodySpec{
		mass:        pc.Mass,
		moment:      cp.MomentForBox(pc.Mass, pc.Length, pc.Width),
		friction:    0.5,
		restitution: 0.2,
		tag:         TagProjectile,
		shape:       boxShape(pc.Length, pc.Width),
	}, pos, 0)
	body.SetType(BodyKinematic)

	return &Projectile{
		Owner: owner,
		state: ProjectilePlaced,
		body:  body,
		cfg:   pc,
		grab:  HitCircle{Radius: math.Max(pc.Length, cfg.Piece.Radius)},
	}
}

// State returns the lifecycle state.
func (p *Projectile) State() ProjectileState { return p.state }

// Body returns the physics handle. Valid only while the projectile is live.
func (p *Projectile) Body() *Body { return p.body }

// Position returns the body origin.
func (p *Projectile) Position() Vec2 { return p.body.Position() }

// Angle returns the rotation in radians.
func (p *Projectile) Angle() float64 { return p.body.Angle() }

// Charge returns the accumulated launch strength.
func (p *Projectile) Charge() float64 { return p.charge }

// ChargeFraction returns charge relative to the maximum strength, in [0, 1].
func (p *Projectile) ChargeFraction() float64 {
	if p.cfg.MaxStrength <= 0 {
		return 0
	}
	return clamp(p.charge/p.cfg.MaxStrength, 0, 1)
}

// Contains reports whether pt is close enough to grab the projectile.
func (p *Projectile) Contains(pt Vec2) bool {
	d := pt.Sub(p.Position())
	return p.grab.Contains(d.X, d.Y)
}

// BeginCharge starts accumulating strength from zero. Only a Placed
// projectile can begin charging.
func (p *Projectile) BeginCharge() bool {
	if p.state != ProjectilePlaced {
		return false
	}
	p.state = ProjectileCharging
	p.charge = 0
	return true
}

// Tick adds one update's worth of charge, capped at the maximum strength.
func (p *Projectile) Tick() {
	if p.state != ProjectileCharging {
		return
	}
	p.charge = math.Min(p.charge+p.cfg.ChargeRate, p.cfg.MaxStrength)
}

// Launch fires the projectile toward release. The direction falls back to
// rightward when release coincides with the projectile. The capped impulse
// is applied exactly once and the returned vector is the impulse used.
func (p *Projectile) Launch(release Vec2) Vec2 {
	if p.state != ProjectileCharging {
		return Vec2{}
	}
	dir, ok := sanitize(release, p.Position()).Sub(p.Position()).Normalize()
	if !ok {
		dir = Vec2{1, 0}
	}

	p.body.SetAngle(dir.Angle())
	p.body.SetType(BodyDynamic)

	impulse := dir.Scale(math.Min(p.charge, p.cfg.MaxStrength))
	p.body.ApplyImpulse(impulse)
	p.state = ProjectileLaunched
	return impulse
}

// settle marks a launched projectile as at rest.
func (p *Projectile) settle() bool {
	if p.state != ProjectileLaunched {
		return false
	}
	p.state = ProjectileSettled
	return true
}
