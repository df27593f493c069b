package vellum

import (
	"encoding/json"
	"fmt"
)

// scriptStep is one entry of an interaction script. Which fields matter
// depends on Action.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Key    string  `json:"key,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// scriptAction performs a step against s and returns how many extra
// updates to idle afterwards.
type scriptAction func(s *Scene, st scriptStep) int

var scriptActions = map[string]scriptAction{
	"screenshot": func(s *Scene, st scriptStep) int {
		s.Screenshot(st.Label)
		return 0
	},
	"click": func(s *Scene, st scriptStep) int {
		s.InjectClick(st.X, st.Y)
		return 0
	},
	"drag": func(s *Scene, st scriptStep) int {
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
		return 0
	},
	"move": func(s *Scene, st scriptStep) int {
		s.InjectHover(st.X, st.Y)
		return 0
	},
	"key": func(s *Scene, st scriptStep) int {
		s.InjectKey(st.Key)
		return 0
	},
	"wait": func(_ *Scene, st scriptStep) int {
		// The update that reads the step is the first one waited.
		return max(st.Frames-1, 0)
	},
}

// TestRunner replays a scripted interaction on a scene, one step per
// update. A step is only read once the injected events of the previous one
// have been consumed. Attach it with Scene.SetTestRunner.
//
//	{"steps": [
//	  {"action": "move", "x": 20, "y": 20},
//	  {"action": "click", "x": 20, "y": 20},
//	  {"action": "drag", "fromX": 20, "fromY": 20, "toX": 80, "toY": 20, "frames": 6},
//	  {"action": "key", "key": "Enter"},
//	  {"action": "wait", "frames": 2},
//	  {"action": "screenshot", "label": "dragged"}
//	]}
type TestRunner struct {
	steps []scriptStep
	next  int
	idle  int
	done  bool
}

// LoadTestScript decodes a script and checks every step before anything
// runs.
func LoadTestScript(data []byte) (*TestRunner, error) {
	var doc struct {
		Steps []scriptStep `json:"steps"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("test script: %w", err)
	}
	if len(doc.Steps) == 0 {
		return nil, fmt.Errorf("test script: no steps")
	}
	for i, st := range doc.Steps {
		if err := st.check(); err != nil {
			return nil, fmt.Errorf("test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{steps: doc.Steps}, nil
}

func (st scriptStep) check() error {
	if _, ok := scriptActions[st.Action]; !ok {
		return fmt.Errorf("unknown action %q", st.Action)
	}
	switch st.Action {
	case "key":
		if st.Key == "" {
			return fmt.Errorf("key action without a key")
		}
	case "wait", "drag":
		if st.Frames < 0 {
			return fmt.Errorf("%s: negative frame count %d", st.Action, st.Frames)
		}
	}
	return nil
}

// SetTestRunner attaches runner to the scene; nil detaches it.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether the script has finished and its input drained.
func (r *TestRunner) Done() bool { return r.done }

// step is called at the start of every update, before input processing.
func (r *TestRunner) step(s *Scene) {
	switch {
	case r.done, s.PendingInjections() > 0:
		return
	case r.idle > 0:
		r.idle--
		return
	case r.next == len(r.steps):
		r.done = true
		return
	}

	st := r.steps[r.next]
	r.next++
	r.idle = scriptActions[st.Action](s, st)

	if r.next == len(r.steps) && r.idle == 0 && s.PendingInjections() == 0 {
		r.done = true
	}
}
