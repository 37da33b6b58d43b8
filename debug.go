package pluton

// debugLog reports the most recent commit's timing and loop counters.
func (e *Engine) debugLog() {
	s := e.stats
	logger.Debug("commit",
		"n", s.Commits,
		"took", s.LastCommitTime,
		"callbacks", len(e.draws),
		"frames", s.Frames,
		"deferred", s.Deferred,
	)
}

// debugMaxPoolSize is the group size above which a warning is logged once
// per commit. Large pools usually mean a draw callback creates shapes in an
// unbounded loop.
const debugMaxPoolSize = 5000

func debugCheckPoolSize(kind string, n int) {
	if n > debugMaxPoolSize {
		logger.Warn("group pool is large", "kind", kind, "entries", n, "threshold", debugMaxPoolSize)
	}
}
