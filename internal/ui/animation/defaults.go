package animation

import "time"

// DefaultShake returns the expired-timer shake lasting duration.
func DefaultShake(duration time.Duration) Shake {
	return Shake{
		Duration:  duration,
		Period:    120 * time.Millisecond,
		Amplitude: 6,
		Frame:     16 * time.Millisecond,
	}
}
