package search

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/omnivanity/omnivanity/internal/pattern"
)

// reportInterval is the reporter's sampling period.
const reportInterval = 250 * time.Millisecond

// RunReporter samples stats every 250ms and writes one telemetry line to
// w, overwriting the previous line with a carriage return. It exits when
// stats.Running() clears or ctx is cancelled; callers typically run it in
// its own goroutine alongside Engine.Run.
func RunReporter(ctx context.Context, stats *Stats, difficulty float64, w io.Writer) {
	ticker := time.NewTicker(reportInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !stats.Running() {
				writeTelemetryLine(w, stats, difficulty)
				return
			}
			writeTelemetryLine(w, stats, difficulty)
		}
	}
}

func writeTelemetryLine(w io.Writer, stats *Stats, difficulty float64) {
	keys := stats.KeysTested()
	rate := stats.RateKeysPerSec()
	prob := pattern.HitProbability(keys, difficulty) * 100
	remaining := pattern.ProjectedRemaining50(keys, difficulty, rate)

	fmt.Fprintf(w, "\r[%.3f Mkey/s][Total %d][Prob %.4f%%][50%% in %s]",
		rate/1_000_000, keys, prob, formatDuration(remaining))
}

// formatDuration renders seconds using a readable scale:
// ms/s/m/h/d/y, picking the coarsest unit that keeps the value readable.
func formatDuration(seconds float64) string {
	switch {
	case seconds < 0:
		return "0ms"
	case seconds < 1:
		return fmt.Sprintf("%.0fms", seconds*1000)
	case seconds < 60:
		return fmt.Sprintf("%.1fs", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%.1fm", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%.1fh", seconds/3600)
	case seconds < 86400*365:
		return fmt.Sprintf("%.1fd", seconds/86400)
	default:
		return fmt.Sprintf("%.1fy", seconds/(86400*365))
	}
}
