// Package fortress is the simulation core of a two-player fortress
// destruction game.
//
// Each player builds a fortress from rigid chess pieces, then the players
// take turns launching a projectile at the opposing fortress until one is
// judged destroyed. The package owns the rigid-body world (a Chipmunk2D
// space), the piece and fortress model, projectile ballistics, the
// tag-keyed collision rules, the placement and battle controllers and the
// phase state machine. Drawing, windowing and the frame loop are left to the
// caller.
//
// # Quick start
//
//	cfg, err := fortress.LoadConfig(".")
//	if err != nil {
//		log.Fatal(err)
//	}
//	cfg.Logger = fortress.NewLogger(os.Stderr, cfg.LogLevel)
//	game := fortress.NewGame(cfg)
//
//	// every frame:
//	game.Push(fortress.PointerDown(x, y))
//	game.Update(1.0 / 60)
//	frame := game.Snapshot()
//
// See examples/battle for a complete Ebitengine runner.
//
// # Frame ordering
//
// [Game.Update] drains pending input, runs ceil(dt/step) fixed physics
// sub-steps, clamps bodies back into the playfield, and finally evaluates
// destruction and phase transitions. Contacts reported by the backend during
// a sub-step are dispatched to the collision rules after that sub-step.
//
// # Pieces and fortresses
//
// A [Piece] has a [PieceKind] that fixes its shape, mass, friction and
// restitution. Committed pieces live in a [Fortress], which enforces the
// per-kind limits and computes the destruction fraction from live positions.
//
// # Collision rules
//
// Every shape carries a [CollisionTag]. Rules are registered per unordered
// tag pair and return a [Correction] instead of mutating bodies directly.
//
// # Persistence
//
// A [FortressStore] saves a fortress when its owner ends building and loads
// both from the main menu. [MemoryStore] keeps records in memory; the store
// subpackage keeps them in SQLite.
//
// # Scripted input
//
// [Game.InjectPress], [Game.InjectDrag] and friends queue synthetic input,
// and a [TestRunner] plays JSON scripts against a Game without a window.
package fortress
