package fortress

import "fmt"

// PhaseKind is the top-level state of a match.
type PhaseKind uint8

const (
	PhaseMainMenu PhaseKind = iota
	PhaseBuilding
	PhaseBattle
	PhaseGameOver
	PhaseRules
)

var phaseNames = [...]string{"mainMenu", "building", "battle", "gameOver", "rules"}

func (k PhaseKind) String() string {
	if int(k) < len(phaseNames) {
		return phaseNames[k]
	}
	return "unknown"
}

// Phase is the current state plus its payload. Player is the building or
// active player; Winner is set only in GameOver.
type Phase struct {
	Kind   PhaseKind
	Player int
	Winner int
}

func (p Phase) String() string {
	switch p.Kind {
	case PhaseBuilding, PhaseBattle:
		return fmt.Sprintf("%s{player=%d}", p.Kind, p.Player)
	case PhaseGameOver:
		return fmt.Sprintf("%s{winner=%d}", p.Kind, p.Winner)
	default:
		return p.Kind.String()
	}
}

// BuildingPhase returns the building phase of player.
func BuildingPhase(player int) Phase { return Phase{Kind: PhaseBuilding, Player: player} }

// BattlePhase returns the battle phase with player to act.
func BattlePhase(player int) Phase { return Phase{Kind: PhaseBattle, Player: player} }

// GameOverPhase returns the final phase.
func GameOverPhase(winner int) Phase { return Phase{Kind: PhaseGameOver, Winner: winner} }

var (
	menuPhase  = Phase{Kind: PhaseMainMenu}
	rulesPhase = Phase{Kind: PhaseRules}
)

// transitions lists every edge of the phase graph. Building(1) -> Battle(1)
// and MainMenu -> Battle(1) exist for the debug shortcut and for loading
// saved fortresses.
var transitions = map[Phase][]Phase{
	menuPhase:        {BuildingPhase(1), rulesPhase, BattlePhase(1)},
	rulesPhase:       {menuPhase, BattlePhase(1)},
	BuildingPhase(1): {BuildingPhase(2), BattlePhase(1), menuPhase},
	BuildingPhase(2): {BattlePhase(1), menuPhase},
	BattlePhase(1):   {BattlePhase(2), GameOverPhase(1), GameOverPhase(2), menuPhase},
	BattlePhase(2):   {BattlePhase(1), GameOverPhase(1), GameOverPhase(2), menuPhase},
	GameOverPhase(1): {menuPhase},
	GameOverPhase(2): {menuPhase},
}

// CanTransition reports whether the graph has an edge from -> to.
func CanTransition(from, to Phase) bool {
	for _, p := range transitions[from] {
		if p == to {
			return true
		}
	}
	return false
}

// Opponent returns the other player.
func Opponent(player int) int {
	if player == 1 {
		return 2
	}
	return 1
}

// decideWinner picks the winner once at least one fortress is destroyed.
// When both are destroyed in the same tick the less damaged fortress wins,
// with player 1 taking an exact tie.
func decideWinner(f1, f2 *Fortress) (winner int, over bool) {
	d1, d2 := f1.IsDestroyed(), f2.IsDestroyed()
	switch {
	case d1 && d2:
		if f2.DestructionFraction() < f1.DestructionFraction() {
			return 2, true
		}
		return 1, true
	case d1:
		return 2, true
	case d2:
		return 1, true
	}
	return 0, false
}
