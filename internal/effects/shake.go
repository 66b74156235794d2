package effects

// Shake is a bounded-duration screen shake pulse. Intensity decays linearly
// to zero over the configured duration.
type Shake struct {
	startedAt  float64
	durationMs float64
	intensity  float64
	active     bool
}

// Trigger starts (or restarts) the pulse at the given pool time.
func (s *Shake) Trigger(now, durationMs, intensity float64) {
	s.startedAt = now
	s.durationMs = durationMs
	s.intensity = intensity
	s.active = true
}

// Amplitude returns the current shake amplitude in logical pixels.
// Zero once the pulse has run out.
func (s *Shake) Amplitude(now float64) float64 {
	if !s.active || s.durationMs <= 0 {
		return 0
	}
	elapsed := now - s.startedAt
	if elapsed >= s.durationMs {
		s.active = false
		return 0
	}
	return s.intensity * (1 - elapsed/s.durationMs)
}
