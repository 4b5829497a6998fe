package animation

import (
	"math"
	"time"
)

// Shake describes a damped horizontal shake.
type Shake struct {
	Duration  time.Duration
	Period    time.Duration
	Amplitude float32
	Frame     time.Duration
}

// Offset returns the horizontal displacement at elapsed. It decays linearly
// to zero at Duration and stays zero afterwards.
func (shake Shake) Offset(elapsed time.Duration) float32 {
	if elapsed <= 0 || elapsed >= shake.Duration || shake.Period <= 0 {
		return 0
	}
	phase := 2 * math.Pi * float64(elapsed) / float64(shake.Period)
	decay := 1 - float64(elapsed)/float64(shake.Duration)
	return float32(float64(shake.Amplitude) * math.Sin(phase) * decay)
}
