package pluton

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action   string  `json:"action"`
	Label    string  `json:"label,omitempty"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	DeltaY   float64 `json:"deltaY,omitempty"`
	Count    int     `json:"count,omitempty"`
	FromX    float64 `json:"fromX,omitempty"`
	FromY    float64 `json:"fromY,omitempty"`
	ToX      float64 `json:"toX,omitempty"`
	ToY      float64 `json:"toY,omitempty"`
	FromDist float64 `json:"fromDist,omitempty"`
	ToDist   float64 `json:"toDist,omitempty"`
	Frames   int     `json:"frames,omitempty"`
	Key      string  `json:"key,omitempty"`
	Value    any     `json:"value,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var knownActions = map[string]bool{
	"wheel": true, "drag": true, "pinch": true, "reset": true,
	"set": true, "wait": true, "snapshot": true, "screenshot": true,
}

// TestRunner sequences injected camera input, param writes and captures
// across frames for automated visual testing. Attach to a Scene via
// SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Scene via SetTestRunner.
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
		if st.Action == "set" {
			if st.Key == "" {
				return nil, fmt.Errorf("parse test script: step %d: set needs a key", i)
			}
			if err := validateParam(st.Key, st.Value); err != nil {
				return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
			}
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the scene. The runner is stepped
// once per frame from ProcessInput.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// TestRunner returns the attached runner, or nil.
func (s *Scene) TestRunner() *TestRunner {
	return s.testRunner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
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
	case "wheel":
		n := max(st.Count, 1)
		dy := st.DeltaY
		if dy == 0 {
			dy = -1
		}
		for range n {
			s.InjectWheel(st.X, st.Y, dy)
		}
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "pinch":
		s.InjectPinch(st.X, st.Y, st.FromDist, st.ToDist, st.Frames)
	case "reset":
		s.InjectReset()
	case "set":
		if err := s.Params().Set(st.Key, st.Value); err != nil {
			logger.Error("test script", "step", r.cursor-1, "err", err)
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "snapshot":
		if err := s.writeSnapshot(st.Label); err != nil {
			logger.Error("test script", "step", r.cursor-1, "err", err)
		}
	case "screenshot":
		s.Screenshot(st.Label)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}

// writeSnapshot saves the themed SVG snapshot to ScreenshotDir.
func (s *Scene) writeSnapshot(label string) error {
	if err := os.MkdirAll(s.ScreenshotDir, 0o755); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	stamp := time.Now().Format("20060102_150405")
	path := filepath.Join(s.ScreenshotDir, fmt.Sprintf("%s_%s.svg", stamp, sanitizeLabel(label)))
	data := s.SnapshotXML(SnapshotOptions{Background: s.ClearColor, Theme: s.Theme})
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	logger.Info("snapshot", "path", path)
	return nil
}
