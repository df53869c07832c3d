package fortress

// Action is a discrete user intent produced by a button or a key.
type Action uint8

const (
	ActionNone Action = iota
	ActionStart
	ActionLoad
	ActionRules
	ActionBack
	ActionEndBuild
	ActionForceBattle
	ActionMainMenu
)

var actionNames = [...]string{"none", "start", "load", "rules", "back", "endBuild", "forceBattle", "mainMenu"}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// ParseAction resolves a script action name.
func ParseAction(name string) (Action, bool) {
	for i, n := range actionNames {
		if i > 0 && n == name {
			return Action(i), true
		}
	}
	return ActionNone, false
}

// Button is a clickable area bound to an action.
type Button struct {
	Label  string
	Action Action
	Rect   Rect
}

const (
	buttonWidth  = 200.0
	buttonHeight = 50.0
)

// Buttons returns the buttons shown in phase, laid out for the configured
// screen.
func Buttons(phase PhaseKind, cfg Config) []Button {
	w, h := cfg.Screen.Width, cfg.Screen.Height
	cx := w/2 - buttonWidth/2
	switch phase {
	case PhaseMainMenu:
		return []Button{
			{Label: "Start", Action: ActionStart, Rect: Rect{cx, h/2 - 50, buttonWidth, buttonHeight}},
			{Label: "Load", Action: ActionLoad, Rect: Rect{cx, h/2 + 50, buttonWidth, buttonHeight}},
			{Label: "Rules", Action: ActionRules, Rect: Rect{cx, h/2 + 150, buttonWidth, buttonHeight}},
		}
	case PhaseRules:
		return []Button{
			{Label: "Back", Action: ActionBack, Rect: Rect{cx, h - 120, buttonWidth, buttonHeight}},
		}
	case PhaseBuilding:
		return []Button{
			{Label: "Done", Action: ActionEndBuild, Rect: Rect{w - 150, 100, 130, 40}},
		}
	case PhaseGameOver:
		return []Button{
			{Label: "Main menu", Action: ActionMainMenu, Rect: Rect{cx, h/2 + 50, buttonWidth, buttonHeight}},
		}
	}
	return nil
}

// buttonAt returns the action of the button under pos in phase.
func buttonAt(phase PhaseKind, cfg Config, pos Vec2) Action {
	for _, b := range Buttons(phase, cfg) {
		if b.Rect.Contains(pos.X, pos.Y) {
			return b.Action
		}
	}
	return ActionNone
}
