package fortress

import "github.com/jakecoffman/cp"

// BodyType selects how the backend integrates a body.
type BodyType uint8

const (
	BodyDynamic   BodyType = iota // affected by gravity, contacts and impulses
	BodyKinematic                 // moved only by the engine (dragging, aiming)
	BodyStatic                    // never moves (ground, walls)
)

// Body is the engine's handle on one rigid body and its single collision
// shape. It is only valid while attached to a World; callers holding a Body
// across frames must check Attached before dereferencing physics state they
// rely on.
type Body struct {
	body   *cp.Body
	shape  *cp.Shape
	tag    CollisionTag
	mass   float64
	moment float64
	world  *World

	friction    float64
	restitution float64

	// lastGood is the most recent finite position, restored when the
	// backend produces NaN.
	lastGood Vec2
}

// bodySpec describes a body to build.
type bodySpec struct {
	mass        float64
	moment      float64
	friction    float64
	restitution float64
	tag         CollisionTag
	shape       func(b *cp.Body) *cp.Shape
}

func newBody(spec bodySpec, pos Vec2, angle float64) *Body {
	cb := cp.NewBody(spec.mass, spec.moment)
	cb.SetPosition(toCP(pos))
	cb.SetAngle(angle)

	shape := spec.shape(cb)
	shape.SetFriction(spec.friction)
	shape.SetElasticity(spec.restitution)
	shape.SetCollisionType(spec.tag.cp())

	b := &Body{
		body:     cb,
		shape:    shape,
		tag:      spec.tag,
		mass:     spec.mass,
		moment:   spec.moment,
		lastGood: pos,

		friction:    spec.friction,
		restitution: spec.restitution,
	}
	shape.UserData = b
	return b
}

// boxShape returns a shape builder for a w x h box centered on the body.
func boxShape(w, h float64) func(*cp.Body) *cp.Shape {
	return func(b *cp.Body) *cp.Shape { return cp.NewBox(b, w, h, 0) }
}

// polyShape returns a shape builder for a convex polygon in body space.
func polyShape(verts []Vec2) func(*cp.Body) *cp.Shape {
	cv := make([]cp.Vector, len(verts))
	for i, v := range verts {
		cv[i] = toCP(v)
	}
	return func(b *cp.Body) *cp.Shape {
		return cp.NewPolyShape(b, len(cv), cv, cp.NewTransformIdentity(), 0)
	}
}

// polyMoment is the moment of inertia of a convex polygon about the body
// origin.
func polyMoment(mass float64, verts []Vec2) float64 {
	cv := make([]cp.Vector, len(verts))
	for i, v := range verts {
		cv[i] = toCP(v)
	}
	return cp.MomentForPoly(mass, len(cv), cv, cp.Vector{}, 0)
}

// Tag returns the collision tag of the body's shape.
func (b *Body) Tag() CollisionTag { return b.tag }

// setTag restamps the collision tag.
func (b *Body) setTag(t CollisionTag) {
	b.tag = t
	b.shape.SetCollisionType(t.cp())
}

// Mass returns the dynamic mass the body was built with.
func (b *Body) Mass() float64 { return b.mass }

// Moment returns the moment of inertia the body was built with.
func (b *Body) Moment() float64 { return b.moment }

// Friction returns the shape friction.
func (b *Body) Friction() float64 { return b.friction }

// Restitution returns the shape elasticity.
func (b *Body) Restitution() float64 { return b.restitution }

// Attached reports whether the body currently lives in a World.
func (b *Body) Attached() bool { return b != nil && b.world != nil }

// Position returns the body origin in world space.
func (b *Body) Position() Vec2 { return fromCP(b.body.Position()) }

// SetPosition teleports the body.
func (b *Body) SetPosition(p Vec2) {
	b.body.SetPosition(toCP(p))
	if p.IsFinite() {
		b.lastGood = p
	}
}

// Velocity returns the linear velocity.
func (b *Body) Velocity() Vec2 { return fromCP(b.body.Velocity()) }

// SetVelocity sets the linear velocity.
func (b *Body) SetVelocity(v Vec2) { b.body.SetVelocityVector(toCP(v)) }

// Speed returns the magnitude of the linear velocity.
func (b *Body) Speed() float64 { return b.Velocity().Len() }

// AngularVelocity returns the spin in radians per second.
func (b *Body) AngularVelocity() float64 { return b.body.AngularVelocity() }

// SetAngularVelocity sets the spin in radians per second.
func (b *Body) SetAngularVelocity(w float64) { b.body.SetAngularVelocity(w) }

// Angle returns the rotation in radians.
func (b *Body) Angle() float64 { return b.body.Angle() }

// SetAngle sets the rotation in radians.
func (b *Body) SetAngle(a float64) { b.body.SetAngle(a) }

// Type returns how the body is integrated.
func (b *Body) Type() BodyType {
	switch b.body.GetType() {
	case cp.BODY_KINEMATIC:
		return BodyKinematic
	case cp.BODY_STATIC:
		return BodyStatic
	default:
		return BodyDynamic
	}
}

// SetType switches integration mode. Switching to dynamic restores the mass
// and moment the body was built with; kinematic bodies ignore gravity and
// are zeroed.
func (b *Body) SetType(t BodyType) {
	switch t {
	case BodyKinematic:
		b.body.SetType(cp.BODY_KINEMATIC)
	case BodyStatic:
		b.body.SetType(cp.BODY_STATIC)
	default:
		b.body.SetType(cp.BODY_DYNAMIC)
		b.body.SetMass(b.mass)
		b.body.SetMoment(b.moment)
	}
	b.SetVelocity(Vec2{})
	b.SetAngularVelocity(0)
}

// ApplyImpulse applies a world-space impulse at the body's center.
func (b *Body) ApplyImpulse(impulse Vec2) {
	if !impulse.IsFinite() {
		return
	}
	b.body.ApplyImpulseAtWorldPoint(toCP(impulse), b.body.Position())
}

// stop zeroes linear and angular velocity.
func (b *Body) stop() {
	b.SetVelocity(Vec2{})
	b.SetAngularVelocity(0)
}
