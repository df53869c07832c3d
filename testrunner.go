package fortress

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Key    string  `json:"key,omitempty"`
	Name   string  `json:"name,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected input across frames so whole matches can be
// played headlessly. Attach to a Game via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	labels    []string
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Game via SetTestRunner. Unknown actions, keys and
// action names are rejected here rather than silently skipped later.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "press", "move", "release", "click", "drag", "wait", "mark":
		case "key":
			if _, ok := ParseKey(st.Key); !ok {
				return nil, fmt.Errorf("parse test script: step %d: unknown key %q", i, st.Key)
			}
		case "action":
			if _, ok := ParseAction(st.Name); !ok {
				return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Name)
			}
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown step %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Marks returns the labels of the "mark" steps reached so far, in order.
func (r *TestRunner) Marks() []string {
	return r.labels
}

// step advances the test runner by one frame. Called from Game.Update.
func (r *TestRunner) step(g *Game) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(g.injectQueue) > 0 {
		return
	}
	// Count down wait frames.
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "mark":
		r.labels = append(r.labels, st.Label)
	case "press":
		g.InjectPress(st.X, st.Y)
	case "move":
		g.InjectMove(st.X, st.Y)
	case "release":
		g.InjectRelease(st.X, st.Y)
	case "click":
		g.InjectClick(st.X, st.Y)
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		g.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, frames)
	case "key":
		k, _ := ParseKey(st.Key)
		g.InjectKey(k)
	case "action":
		a, _ := ParseAction(st.Name)
		g.Do(a)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(g.injectQueue) == 0 {
		r.done = true
	}
}
