package jigsaw

import (
	"encoding/json"
	"fmt"
	"time"
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
	// Value carries the argument of control actions: opacity for "ghost",
	// pixels for "snap", milliseconds for "peek", container width for
	// "resize".
	Value float64 `json:"value,omitempty"`
	// Unplaced selects shuffle-unplaced for "shuffle".
	Unplaced bool `json:"unplaced,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var knownActions = map[string]bool{
	"screenshot": true, "click": true, "drag": true, "wait": true,
	"shuffle": true, "reset": true, "peek": true, "resize": true,
	"ghost": true, "hide-ghost": true, "show-ghost": true, "snap": true,
}

// TestRunner sequences injected input events, board controls and
// screenshots across updates for automated testing. Attach to a Board via
// SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Board via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the board. The runner advances by
// one step per Update, before input is processed.
func (b *Board) SetTestRunner(runner *TestRunner) {
	if b.destroyed {
		return
	}
	b.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one update.
func (r *TestRunner) step(b *Board) {
	if r.done {
		return
	}
	// Scripts act on a laid-out board only.
	if b.status == StatusLoading {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(b.injectQueue) > 0 {
		return
	}
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
	case "screenshot":
		b.Screenshot(st.Label)
	case "click":
		b.InjectClick(st.X, st.Y)
	case "drag":
		b.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 2))
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this update counts as one
		}
	case "shuffle":
		b.ShufflePieces(st.Unplaced)
	case "reset":
		b.Reset()
	case "peek":
		b.PeekOriginal(time.Duration(st.Value) * time.Millisecond)
	case "resize":
		b.NotifyResize(st.Value)
	case "ghost":
		b.SetGhostOpacity(st.Value)
	case "hide-ghost":
		b.SetGhostVisible(false)
	case "show-ghost":
		b.SetGhostVisible(true)
	case "snap":
		b.SetSnapDistance(st.Value)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(b.injectQueue) == 0 {
		r.done = true
	}
}
