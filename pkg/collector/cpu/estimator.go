package cpu

import (
	"math"

	"github.com/srodi/spamtop/pkg/types"
)

// Estimate returns the share of non-idle ticks between two aggregate
// samples as a percentage in [0, 100], rounded to three decimals.
// A missing previous sample, a counter that went backwards, or an empty
// interval all yield 0.
func Estimate(prev *types.CPUTicks, cur types.CPUTicks) float64 {
	if prev == nil {
		return 0
	}

	var active, total float64
	for i := range cur {
		if cur[i] < prev[i] {
			return 0
		}
		delta := float64(cur[i] - prev[i])
		total += delta
		if i == types.TickIdle || i == types.TickIOWait {
			continue
		}
		active += delta
	}
	if total == 0 {
		return 0
	}

	usage := 100 * active / total
	if math.IsNaN(usage) || usage < 0 {
		return 0
	}
	if usage > 100 {
		usage = 100
	}
	return math.Round(usage*1000) / 1000
}

// Estimator keeps the one previous sample needed to turn cumulative
// counters into an interval rate.
type Estimator struct {
	prev *types.CPUTicks
}

// Observe computes usage against the retained sample and then retains cur.
// cur replaces the previous sample even after a regression so the next
// tick measures from the new baseline.
func (e *Estimator) Observe(cur types.CPUTicks) float64 {
	usage := Estimate(e.prev, cur)
	next := cur
	e.prev = &next
	return usage
}

// Primed reports whether a previous sample is held.
func (e *Estimator) Primed() bool {
	return e.prev != nil
}

// Reset forgets the retained sample.
func (e *Estimator) Reset() {
	e.prev = nil
}
