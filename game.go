package fortress

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"
)

// Game owns one match and sequences it: it drains input, steps the world,
// runs the clamp pass and evaluates phase transitions, in that order, once
// per Update.
type Game struct {
	match     Match
	placement Placement
	battle    Battle
	rules     *RuleEngine

	log   zerolog.Logger
	sink  EventSink
	store FortressStore
	tip   *Tip
	debug bool

	queue       []InputEvent
	injectQueue []InputEvent
	testRunner  *TestRunner

	frame uint64
	stats frameStats
}

// NewGame creates a game sitting in the main menu.
func NewGame(cfg Config) *Game {
	g := &Game{log: cfg.Logger}
	g.match = Match{
		Cfg:      cfg,
		World:    NewWorld(cfg),
		Phase:    menuPhase,
		Selected: KindMilitary,
	}
	g.rules = NewRuleEngine(cfg, g.match.PieceFor)
	g.rules.Install(g.match.World)
	return g
}

// SetEventSink forwards every Notice to sink. Pass nil to disconnect.
func (g *Game) SetEventSink(sink EventSink) { g.sink = sink }

// SetStore sets the collaborator used to save fortresses on end-build and
// to load them from the main menu. Pass nil to disable persistence.
func (g *Game) SetStore(store FortressStore) { g.store = store }

// SetTestRunner attaches a TestRunner. Its step runs at the start of every
// Update, before input is drained.
func (g *Game) SetTestRunner(runner *TestRunner) { g.testRunner = runner }

// SetDebugMode enables per-frame stats logging.
func (g *Game) SetDebugMode(enabled bool) {
	g.debug = enabled
	g.log.Info().Bool("enabled", enabled).Msg("debug draw")
}

// DebugDraw reports whether debug mode is on.
func (g *Game) DebugDraw() bool { return g.debug }

// Match exposes the match state for renderers and tests. Callers must not
// mutate it.
func (g *Game) Match() *Match { return &g.match }

// Phase returns the current phase.
func (g *Game) Phase() Phase { return g.match.Phase }

// Fortress returns player's fortress, or nil.
func (g *Game) Fortress(player int) *Fortress { return g.match.Fortress(player) }

// Projectile returns the live projectile, or nil.
func (g *Game) Projectile() *Projectile { return g.match.Projectile }

// Selected returns the piece kind new placements use.
func (g *Game) Selected() PieceKind { return g.match.Selected }

// Dragging returns the piece being positioned, or nil.
func (g *Game) Dragging() *Piece { return g.placement.Dragging() }

// Tip returns the visible tip, or nil.
func (g *Game) Tip() *Tip {
	if !g.tip.Visible() {
		return nil
	}
	return g.tip
}

// Frames returns how many updates have run.
func (g *Game) Frames() uint64 { return g.frame }

// Push queues an event for the next Update. All pushed events are drained
// in that Update.
func (g *Game) Push(e InputEvent) { g.queue = append(g.queue, e) }

// Update advances the game by dt seconds.
func (g *Game) Update(dt float64) {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		dt = 0
	}
	g.frame++
	m := &g.match

	if g.testRunner != nil {
		g.testRunner.step(g)
	}
	if evt, ok := g.popInjected(); ok {
		g.HandleEvent(evt)
	}
	for i := 0; i < len(g.queue); i++ {
		g.HandleEvent(g.queue[i])
	}
	g.queue = g.queue[:0]

	if m.Phase.Kind == PhaseBattle {
		g.battle.Tick(m)
	}

	step := m.World.Step(dt)
	g.clampPass()
	g.checkPhase()

	g.tip.Update(float32(dt))
	g.stats = frameStats{
		subSteps:    step.SubSteps,
		contacts:    step.Contacts,
		corrections: g.rules.Corrections(),
		bodies:      m.World.BodyCount(),
	}
	g.debugLog(g.stats)
}

// clampPass keeps committed pieces and the live projectile inside the
// playfield. Go pieces also get the floor pull-up.
func (g *Game) clampPass() {
	m := &g.match
	for _, f := range m.Fortresses {
		if f == nil {
			continue
		}
		for _, p := range f.pieces {
			m.World.Clamp(p.body, p.Kind == KindGo)
		}
	}
	if p := m.Projectile; p != nil && p.State() == ProjectileLaunched {
		m.World.Clamp(p.body, false)
	}
}

// checkPhase ends the match when a fortress is destroyed, otherwise hands
// the turn over once the projectile has settled.
func (g *Game) checkPhase() {
	m := &g.match
	if m.Phase.Kind != PhaseBattle {
		return
	}
	settled := g.battle.Settle(m)
	if winner, over := decideWinner(m.Fortress(1), m.Fortress(2)); over {
		m.discardProjectile()
		if g.transition(GameOverPhase(winner)) {
			g.log.Info().
				Int("winner", winner).
				Float64("p1", m.Fortress(1).DestructionFraction()).
				Float64("p2", m.Fortress(2).DestructionFraction()).
				Msg("game over")
			g.emit(Notice{Kind: NoticeGameOver, Phase: m.Phase, Player: winner})
		}
		return
	}
	if settled {
		g.pruneDetached()
		next := g.battle.EndTurn(m)
		if g.transition(BattlePhase(next)) {
			g.emit(Notice{Kind: NoticeTurn, Phase: m.Phase, Player: next})
		}
	}
}

// pruneDetached drops pieces whose bodies left the world. They have already
// counted as fallen for the turn that just ended.
func (g *Game) pruneDetached() {
	for _, f := range g.match.Fortresses {
		if f == nil {
			continue
		}
		if n := f.Prune(); n > 0 {
			g.log.Warn().Int("player", f.Owner).Int("pruned", n).Msg("pieces without bodies pruned")
		}
	}
}

// HandleEvent applies one input event immediately.
func (g *Game) HandleEvent(e InputEvent) {
	if e.Type != EventKeyPress && !e.Pos().IsFinite() {
		g.log.Warn().Stringer("type", e.Type).Msg("non-finite pointer position dropped")
		return
	}
	m := &g.match
	switch e.Type {
	case EventKeyPress:
		g.handleKey(e.Key)
	case EventPointerDown:
		g.pointerDown(e.Pos())
	case EventPointerMove:
		if m.Phase.Kind == PhaseBuilding {
			g.placement.Move(e.Pos())
		}
	case EventPointerUp:
		g.pointerUp(e.Pos())
	}
}

func (g *Game) handleKey(k Key) {
	m := &g.match
	switch k {
	case KeySelectMilitary:
		m.Selected = KindMilitary
	case KeySelectChinese:
		m.Selected = KindChinese
	case KeySelectGo:
		m.Selected = KindGo
	case KeyEndBuild:
		g.Do(ActionEndBuild)
	case KeyForceBattle:
		g.Do(ActionForceBattle)
	case KeyToggleDebug:
		g.SetDebugMode(!g.debug)
	case KeyRotateLeft:
		g.placement.Rotate(RotateStep)
	case KeyRotateRight:
		g.placement.Rotate(-RotateStep)
	case KeyConfirm:
		g.Do(ActionStart)
	case KeyBack:
		g.Do(ActionBack)
	}
}

func (g *Game) pointerDown(pos Vec2) {
	m := &g.match
	if a := buttonAt(m.Phase.Kind, m.Cfg, pos); a != ActionNone {
		g.Do(a)
		return
	}
	switch m.Phase.Kind {
	case PhaseBuilding:
		if _, err := g.placement.StartDrag(m, pos); errors.Is(err, ErrKindLimit) {
			f := m.Fortress(m.Phase.Player)
			g.showTip(fmt.Sprintf("%s limit reached (%d)", m.Selected, f.Limit(m.Selected)))
		}
	case PhaseBattle:
		switch g.battle.PointerDown(m, pos) {
		case BattlePlaced:
			g.log.Debug().Int("player", m.Phase.Player).Msg("projectile placed")
		case BattleCharging:
			g.log.Debug().Int("player", m.Phase.Player).Msg("charging")
		}
	}
}

func (g *Game) pointerUp(pos Vec2) {
	m := &g.match
	switch m.Phase.Kind {
	case PhaseBuilding:
		p, outcome := g.placement.StopDrag(m, pos)
		switch outcome {
		case DropCommitted:
			g.log.Debug().Stringer("kind", p.Kind).Int("player", p.Owner).Msg("piece committed")
			g.emit(Notice{Kind: NoticeCommit, Phase: m.Phase, Player: p.Owner, Piece: p.ID, PieceKind: p.Kind, Outcome: outcome})
		case DropDiscarded, DropRestored:
			g.log.Debug().Stringer("kind", p.Kind).Stringer("outcome", outcome).Msg("drop on ground strip")
			g.emit(Notice{Kind: NoticeDiscard, Phase: m.Phase, Player: m.Phase.Player, Piece: p.ID, PieceKind: p.Kind, Outcome: outcome})
		}
	case PhaseBattle:
		if impulse, a := g.battle.PointerUp(m, pos); a == BattleLaunched {
			g.log.Debug().Int("player", m.Phase.Player).Float64("strength", impulse.Len()).Msg("launched")
			g.emit(Notice{Kind: NoticeLaunch, Phase: m.Phase, Player: m.Phase.Player, Impulse: impulse})
		}
	}
}

// Do performs an action if it applies to the current phase; otherwise it is
// ignored.
func (g *Game) Do(a Action) {
	kind := g.match.Phase.Kind
	switch a {
	case ActionStart:
		if kind == PhaseMainMenu {
			g.startBuilding()
		}
	case ActionLoad:
		if kind == PhaseMainMenu {
			g.loadAndBattle()
		}
	case ActionRules:
		if kind == PhaseMainMenu {
			g.transition(rulesPhase)
		}
	case ActionBack:
		switch kind {
		case PhaseRules:
			g.transition(menuPhase)
		case PhaseBuilding, PhaseBattle, PhaseGameOver:
			g.Reset()
		}
	case ActionEndBuild:
		if kind == PhaseBuilding {
			g.endBuild()
		}
	case ActionForceBattle:
		if kind == PhaseMainMenu || kind == PhaseRules || kind == PhaseBuilding {
			g.log.Info().Stringer("from", g.match.Phase).Msg("forcing battle")
			g.enterBattle()
		}
	case ActionMainMenu:
		if kind == PhaseGameOver {
			g.Reset()
		}
	}
}

func (g *Game) startBuilding() {
	m := &g.match
	m.Fortresses = [2]*Fortress{NewFortress(1, m.Cfg), nil}
	g.transition(BuildingPhase(1))
}

// endBuild closes the building player's phase. It is refused while the
// fortress has no Chinese piece.
func (g *Game) endBuild() {
	m := &g.match
	player := m.Phase.Player

	f := m.Fortress(player)
	if err := CanEndBuild(f); err != nil {
		g.log.Info().Err(err).Int("player", player).Msg("end build refused")
		g.showTip("Place at least one Chinese piece first")
		return
	}
	g.placement.Cancel(m)
	g.save(f)

	if player == 1 {
		m.freeze()
		m.Fortresses[1] = NewFortress(2, m.Cfg)
		g.transition(BuildingPhase(2))
		return
	}
	g.enterBattle()
}

// enterBattle reinstates frozen pieces, separates the fortresses and hands
// the first turn to player 1.
func (g *Game) enterBattle() {
	m := &g.match
	g.placement.Cancel(m)
	m.thaw()
	for i := range m.Fortresses {
		if m.Fortresses[i] == nil {
			m.Fortresses[i] = NewFortress(i+1, m.Cfg)
		}
	}
	m.reposition()
	m.discardProjectile()
	g.transition(BattlePhase(1))
}

func (g *Game) loadAndBattle() {
	m := &g.match
	m.World.Reset()
	m.frozen = false
	for player := 1; player <= 2; player++ {
		m.Fortresses[player-1] = g.load(player)
	}
	g.enterBattle()
}

// load restores player's saved fortress. Any failure yields an empty one.
func (g *Game) load(player int) *Fortress {
	m := &g.match
	if g.store == nil {
		return NewFortress(player, m.Cfg)
	}
	rec, err := g.store.Load(context.Background(), player)
	if err != nil {
		ev := g.log.Warn()
		if errors.Is(err, ErrNoRecord) {
			ev = g.log.Info()
		}
		ev.Err(err).Int("player", player).Msg("no saved fortress, starting empty")
		return NewFortress(player, m.Cfg)
	}
	f, skipped := Restore(rec, player, m.Cfg, m.World)
	if skipped > 0 {
		g.log.Warn().Int("player", player).Int("skipped", skipped).Msg("saved pieces skipped")
	}
	g.log.Info().Int("player", player).Int("pieces", f.Len()).Msg("fortress loaded")
	return f
}

// save stores f. Failures are logged and never block the caller.
func (g *Game) save(f *Fortress) {
	if g.store == nil {
		return
	}
	if err := g.store.Save(context.Background(), RecordOf(f)); err != nil {
		g.log.Error().Err(err).Int("player", f.Owner).Msg("save fortress")
		return
	}
	g.log.Info().Int("player", f.Owner).Int("pieces", f.Len()).Msg("fortress saved")
	g.emit(Notice{Kind: NoticeSaved, Phase: g.match.Phase, Player: f.Owner})
}

// Reset tears the world down and returns to the main menu.
func (g *Game) Reset() {
	m := &g.match
	g.placement = Placement{}
	m.World.Reset()
	m.Fortresses = [2]*Fortress{}
	m.Projectile = nil
	m.frozen = false
	m.Selected = KindMilitary
	g.tip = nil
	if m.Phase.Kind != PhaseMainMenu {
		g.transition(menuPhase)
	}
}

// transition moves to phase to if the graph allows it.
func (g *Game) transition(to Phase) bool {
	from := g.match.Phase
	if !CanTransition(from, to) {
		g.log.Warn().Stringer("from", from).Stringer("to", to).Msg("phase transition refused")
		return false
	}
	g.match.Phase = to
	g.log.Info().Stringer("from", from).Stringer("to", to).Msg("phase change")
	g.emit(Notice{Kind: NoticePhase, Phase: to, Player: to.Player})
	return true
}

func (g *Game) showTip(text string) {
	g.tip = newTip(text, g.match.Cfg.Tip.Duration)
	g.log.Info().Str("tip", text).Msg("tip")
	g.emit(Notice{Kind: NoticeTip, Phase: g.match.Phase, Player: g.match.Phase.Player, Text: text})
}

func (g *Game) emit(n Notice) {
	if g.sink != nil {
		g.sink.Emit(n)
	}
}
