package sim

import "github.com/tomz197/oranges/internal/physics"

// PaddleState is the single shared pointer tracker: the circular paddle the
// player juggles oranges with.
type PaddleState struct {
	Pos  physics.Vec
	Down bool
}

// juggleTracker holds the in-session bounce streak. Points are awarded as
// the delta against the streak's already-credited baseline, so a streak of
// N clean bounces is worth exactly max(0, N-1) points in total.
type juggleTracker struct {
	streak       int
	credited     int
	lastScoredAt float64
	inContact    map[int]bool // body ID -> was in paddle contact last frame
}

func newJuggleTracker() juggleTracker {
	return juggleTracker{inContact: make(map[int]bool), lastScoredAt: -1 << 30}
}

// reset clears the streak and its credited baseline (ground touch, empty
// body set, or prize claim).
func (j *juggleTracker) reset() {
	j.streak = 0
	j.credited = 0
	clear(j.inContact)
}

// bounceResult reports the outcome of one paddle resolution.
type bounceResult struct {
	scored bool
	delta  int // points newly credited (can be 0 on the first streak bounce)
	x, y   float64
}

// resolvePaddle handles collision between a body and the paddle: penetration
// push-out, velocity reflection with an upward assist, and streak scoring.
// Called once per frame per interactable body.
func (s *Simulation) resolvePaddle(b *Body) (bounceResult, bool) {
	cfg := &s.cfg
	if !physics.CirclesOverlap(s.paddle.Pos.X, s.paddle.Pos.Y, cfg.PaddleRadius, b.Pos.X, b.Pos.Y, b.Radius) {
		s.juggle.inContact[b.ID] = false
		return bounceResult{}, false
	}

	contactRadius := b.Radius + cfg.PaddleRadius
	offset := b.Pos.Sub(s.paddle.Pos)
	dist := offset.Len()

	// Unit normal from paddle center to body center. A dead-center overlap
	// pushes straight up.
	nx, ny := 0.0, -1.0
	if dist > 0 {
		nx = offset.X / dist
		ny = offset.Y / dist
	}

	// Push the body out of penetration.
	pen := contactRadius - dist
	b.Pos.X += nx * pen
	b.Pos.Y += ny * pen

	// Reflect only if the body is moving into the paddle.
	vn := b.Vel.X*nx + b.Vel.Y*ny
	if vn < 0 {
		b.Vel.X -= (1 + cfg.PaddleRestitution) * vn * nx
		b.Vel.Y -= (1 + cfg.PaddleRestitution) * vn * ny
		b.Vel.Y -= cfg.PaddleUpwardAssist
	}

	// A paddle hit wakes a sleeping body.
	if b.State == StateSettled && (b.Vel.X != 0 || b.Vel.Y != 0) {
		b.State = StateGrounded
	}

	newContact := !s.juggle.inContact[b.ID]
	s.juggle.inContact[b.ID] = true

	// Streak scoring: only a fresh contact on an airborne body, outside
	// the bounce cooldown, counts.
	if !newContact ||
		!b.Airborne(s.bounds.FloorY(), cfg.AirborneMinPx) ||
		s.now-s.juggle.lastScoredAt < cfg.BounceCooldownMs {
		return bounceResult{x: b.Pos.X, y: b.Pos.Y}, true
	}

	s.juggle.streak++
	total := s.juggle.streak - 1
	if total < 0 {
		total = 0
	}
	delta := total - s.juggle.credited
	s.juggle.credited = total
	s.juggle.lastScoredAt = s.now

	return bounceResult{scored: true, delta: delta, x: b.Pos.X, y: b.Pos.Y}, true
}
