package swell

import (
	"fmt"
	"os"
	"time"
)

// TickStats holds per-tick metrics. Counts are always collected; timings
// are only populated when debug mode is on.
type TickStats struct {
	Tick             uint64
	UpdateTime       time.Duration
	CompositeTime    time.Duration
	NormalTime       time.Duration
	Background       int
	Pooled           int
	Spawned          int
	Retired          int
	NaNZeroed        int
	NormalsRefreshed bool
}

// SetDebugMode enables per-tick timing and stderr logging.
func (f *WaveField) SetDebugMode(enabled bool) { f.debug = enabled }

// LastStats returns the metrics of the most recent Tick.
func (f *WaveField) LastStats() TickStats { return f.stats }

// debugLog prints timing and pool stats to stderr.
func (f *WaveField) debugLog(stats TickStats) {
	if !f.debug {
		return
	}
	total := stats.UpdateTime + stats.CompositeTime + stats.NormalTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[swell] tick %d | update: %v | composite: %v | normals: %v | total: %v\n",
		stats.Tick, stats.UpdateTime, stats.CompositeTime, stats.NormalTime, total)
	_, _ = fmt.Fprintf(os.Stderr,
		"[swell] trains: %d background + %d pooled | spawned: %d | retired: %d\n",
		stats.Background, stats.Pooled, stats.Spawned, stats.Retired)
	if stats.NaNZeroed > 0 {
		_, _ = fmt.Fprintf(os.Stderr, "[swell] warning: %d NaN displacement components zeroed\n",
			stats.NaNZeroed)
	}
}

// debugCheckPoolSize warns on stderr if the pool grows past the threshold.
// Compositing cost is linear in the train count per vertex.
const debugMaxPoolSize = 64

func debugCheckPoolSize(n int) {
	if n > debugMaxPoolSize {
		_, _ = fmt.Fprintf(os.Stderr, "[swell] warning: train pool size %d exceeds %d\n",
			n, debugMaxPoolSize)
	}
}
