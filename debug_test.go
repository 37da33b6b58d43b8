package pluton

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

// countWrites sums attribute and text writes across a subtree.
func countWrites(el *Element) int {
	n := el.writes
	for _, c := range el.children {
		n += countWrites(c)
	}
	return n
}

func captureLog(t *testing.T, level log.Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	l := log.New(&buf)
	l.SetLevel(level)
	SetLogger(l)
	t.Cleanup(func() { SetLogger(nil) })
	return &buf
}

func TestDebugPoolSizeWarning(t *testing.T) {
	buf := captureLog(t, log.WarnLevel)
	debugCheckPoolSize("geometry", debugMaxPoolSize)
	if buf.Len() != 0 {
		t.Errorf("warned at the threshold: %s", buf.String())
	}
	debugCheckPoolSize("geometry", debugMaxPoolSize+1)
	if !strings.Contains(buf.String(), "group pool is large") {
		t.Errorf("log = %q, want a pool size warning", buf.String())
	}
}

func TestDebugCommitLog(t *testing.T) {
	buf := captureLog(t, log.DebugLevel)
	e, q := newTestEngine(t, nil)
	e.SetDebugMode(true)
	e.Draw(func(*Params) {})
	q.RunFrame(e.FrameBudget())

	if !strings.Contains(buf.String(), "commit") {
		t.Errorf("log = %q, want a commit line", buf.String())
	}
}

func TestSetLoggerNilRestoresDefault(t *testing.T) {
	SetLogger(log.New(&bytes.Buffer{}))
	SetLogger(nil)
	if Logger() == nil || Logger().GetPrefix() != "pluton" {
		t.Error("default logger not restored")
	}
}
