package fortress

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/rs/zerolog"
)

// BodyState is a body's motion captured at the moment a contact began,
// before the solver resolved it.
type BodyState struct {
	Position Vec2
	Velocity Vec2
}

func stateOf(b *Body) BodyState {
	if b == nil {
		return BodyState{}
	}
	return BodyState{Position: b.Position(), Velocity: b.Velocity()}
}

// Contact is a begin event recorded during a sub-step and dispatched after
// it, once the backend is unlocked. A carries the first tag of the registered
// pair and B the second, whichever order the backend reported them in. A nil
// body is a static boundary.
type Contact struct {
	A, B *Body
	// StateA and StateB hold the incoming motion of A and B.
	StateA, StateB BodyState
}

func (c Contact) swapped() Contact {
	return Contact{A: c.B, B: c.A, StateA: c.StateB, StateB: c.StateA}
}

// ContactFunc receives a contact that began during a sub-step.
type ContactFunc func(c Contact)

type pendingContact struct {
	pair tagPair
	Contact
}

// StepStats summarizes the last World.Step call.
type StepStats struct {
	SubSteps int
	Contacts int
}

// World adapts the rigid-body backend. It owns the space, the static
// boundary segments and the set of attached bodies, advances the simulation
// in fixed sub-steps and dispatches contact-begin events by tag pair.
type World struct {
	space    *cp.Space
	cfg      Config
	log      zerolog.Logger
	bodies   map[*Body]struct{}
	handlers map[tagPair]ContactFunc
	pending  []pendingContact
	stats    StepStats
}

// NewWorld creates an empty world with the ground and side walls in place.
func NewWorld(cfg Config) *World {
	w := &World{
		cfg:      cfg,
		log:      cfg.Logger,
		bodies:   make(map[*Body]struct{}),
		handlers: make(map[tagPair]ContactFunc),
	}
	w.build()
	return w
}

func (w *World) build() {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{X: 0, Y: w.cfg.Physics.Gravity})
	space.SetDamping(w.cfg.Physics.Damping)
	if w.cfg.Physics.Iterations > 0 {
		space.Iterations = uint(w.cfg.Physics.Iterations)
	}
	w.space = space

	width, height, groundY := w.cfg.Screen.Width, w.cfg.Screen.Height, w.cfg.GroundY()
	w.addBoundary(cp.Vector{X: 0, Y: groundY}, cp.Vector{X: width, Y: groundY})
	w.addBoundary(cp.Vector{X: 0, Y: 0}, cp.Vector{X: 0, Y: height})
	w.addBoundary(cp.Vector{X: width, Y: 0}, cp.Vector{X: width, Y: height})

	for pair := range w.handlers {
		w.installHandler(pair)
	}
}

// addBoundary attaches a static ground-tagged segment.
func (w *World) addBoundary(a, b cp.Vector) {
	seg := cp.NewSegment(w.space.StaticBody, a, b, 5)
	seg.SetFriction(1.0)
	seg.SetElasticity(0.1)
	seg.SetCollisionType(TagGround.cp())
	w.space.AddShape(seg)
}

// Reset tears down every body and rebuilds an empty space. Registered
// contact handlers survive.
func (w *World) Reset() {
	for b := range w.bodies {
		b.world = nil
	}
	w.bodies = make(map[*Body]struct{})
	w.pending = w.pending[:0]
	w.build()
}

// Add attaches b to the world. Adding an attached body is a no-op.
func (w *World) Add(b *Body) {
	if b == nil || b.world == w {
		return
	}
	w.space.AddBody(b.body)
	w.space.AddShape(b.shape)
	b.world = w
	w.bodies[b] = struct{}{}
}

// Remove detaches b. Removing a detached body is a no-op. The body keeps its
// last position, angle and velocity so it can be re-added later.
func (w *World) Remove(b *Body) {
	if b == nil || b.world != w {
		return
	}
	w.space.RemoveShape(b.shape)
	w.space.RemoveBody(b.body)
	b.world = nil
	delete(w.bodies, b)
}

// Contains reports whether b is attached to this world.
func (w *World) Contains(b *Body) bool {
	_, ok := w.bodies[b]
	return ok
}

// BodyCount returns the number of attached bodies.
func (w *World) BodyCount() int { return len(w.bodies) }

// Handle registers fn for contacts between tags a and b. The pair is
// unordered; fn always receives the body tagged a as Contact.A.
func (w *World) Handle(a, b CollisionTag, fn ContactFunc) {
	pair := pairOf(a, b)
	if pair.lo == a {
		w.handlers[pair] = fn
	} else {
		w.handlers[pair] = func(c Contact) { fn(c.swapped()) }
	}
	w.installHandler(pair)
}

func (w *World) installHandler(pair tagPair) {
	h := w.space.NewCollisionHandler(pair.lo.cp(), pair.hi.cp())
	h.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
		sa, sb := arb.Shapes()
		w.record(pair, sa, sb)
		return true
	}
}

// record queues a begin event with the bodies ordered to match the pair.
// Static boundary shapes carry no Body and arrive as nil. It runs inside the
// backend step, after position integration and before the solver, so the
// captured velocities are the incoming ones.
func (w *World) record(pair tagPair, sa, sb *cp.Shape) {
	a, _ := sa.UserData.(*Body)
	b, _ := sb.UserData.(*Body)
	if tagOf(sa, a) != pair.lo {
		a, b = b, a
	}
	w.pending = append(w.pending, pendingContact{pair: pair, Contact: Contact{
		A: a, B: b, StateA: stateOf(a), StateB: stateOf(b),
	}})
}

func tagOf(s *cp.Shape, b *Body) CollisionTag {
	if b != nil {
		return b.tag
	}
	return TagGround
}

// SubSteps returns how many fixed steps cover a frame of frameDt seconds.
func (w *World) SubSteps(frameDt float64) int {
	step := w.cfg.Physics.Step
	if frameDt <= 0 || step <= 0 || math.IsNaN(frameDt) {
		return 0
	}
	return int(math.Ceil(frameDt/step - 1e-9))
}

// Step advances the simulation by ceil(frameDt/step) fixed sub-steps and
// dispatches the contact-begin events of each sub-step before the next one.
func (w *World) Step(frameDt float64) StepStats {
	n := w.SubSteps(frameDt)
	w.stats = StepStats{SubSteps: n}
	for i := 0; i < n; i++ {
		w.space.Step(w.cfg.Physics.Step)
		w.dispatch()
	}
	return w.stats
}

func (w *World) dispatch() {
	for len(w.pending) > 0 {
		batch := w.pending
		w.pending = nil
		for _, c := range batch {
			// A handler may have detached a body earlier in this batch.
			if (c.A != nil && c.A.world != w) || (c.B != nil && c.B.world != w) {
				continue
			}
			if fn, ok := w.handlers[c.pair]; ok {
				w.stats.Contacts++
				fn(c.Contact)
			}
		}
	}
}

// Stats returns the summary of the last Step.
func (w *World) Stats() StepStats { return w.stats }

// Clamp keeps a dynamic body inside the playfield margin and hard-stops it
// when it moves slower than the settle speed. A non-finite position or
// velocity is repaired first. When pullUp is set the body is additionally
// lifted back above the ground line if it sank through it.
func (w *World) Clamp(b *Body, pullUp bool) {
	if !b.Attached() || b.Type() != BodyDynamic {
		return
	}

	pos := b.Position()
	if !pos.IsFinite() {
		w.log.Warn().Str("tag", b.tag.String()).Msg("non-finite position repaired")
		pos = b.lastGood
		b.SetPosition(pos)
		b.stop()
	}
	vel := b.Velocity()
	if !vel.IsFinite() || math.IsNaN(b.AngularVelocity()) {
		w.log.Warn().Str("tag", b.tag.String()).Msg("non-finite velocity repaired")
		b.stop()
		vel = Vec2{}
	}

	margin := w.cfg.Bounds.Margin
	left, right := margin, w.cfg.Screen.Width-margin
	top, bottom := margin, w.cfg.Screen.Height-margin

	moved := false
	if pos.X < left {
		pos.X, vel.X, moved = left, 0, true
	} else if pos.X > right {
		pos.X, vel.X, moved = right, 0, true
	}
	if pos.Y < top {
		pos.Y, vel.Y, moved = top, 0, true
	} else if pos.Y > bottom {
		pos.Y, vel.Y, moved = bottom, 0, true
	}
	if moved {
		b.SetPosition(pos)
		b.SetVelocity(vel)
	}

	if vel.Len() < w.cfg.Settle.Speed {
		b.stop()
		vel = Vec2{}
	}

	if pullUp {
		floor := w.cfg.GroundY() - floorPullUpDepth
		if pos.Y > floor {
			b.SetPosition(Vec2{pos.X, floor})
			b.SetVelocity(Vec2{vel.X, -floorPullUpSpeed})
		}
	}

	if p := b.Position(); p.IsFinite() {
		b.lastGood = p
	}
}

const (
	// floorPullUpDepth is how far above the ground line a special piece's
	// origin must stay.
	floorPullUpDepth = 20.0
	// floorPullUpSpeed is the upward nudge given after a pull-up.
	floorPullUpSpeed = 10.0
)
