package sim

import (
	"sort"

	"github.com/tomz197/oranges/internal/physics"
)

// smashState is the lift-then-slam gate for the dragged crate.
//
// wasLifted arms while the crate's bottom edge is at least LiftPx above the
// floor and disarms on every smash: the player must lift again before the
// next smash can register. This is the anti-farming invariant.
type smashState struct {
	wasLifted   bool
	lastSmashAt float64
	lastPressAt float64
	prevBottom  float64
	havePrev    bool
}

func newSmashState() smashState {
	return smashState{lastSmashAt: -1 << 30, lastPressAt: -1 << 30}
}

func (s *smashState) reset() {
	*s = newSmashState()
}

// detectSmash evaluates the dragged rectangle against resting bodies for
// one frame. At most one slam is processed per call.
func (s *Simulation) detectSmash(rect physics.Rect) {
	if rect.Empty() {
		// Transient input anomaly: skip this frame's evaluation.
		return
	}

	floorY := s.bounds.FloorY()
	bottom := rect.Bottom
	prevBottom, havePrev := s.smash.prevBottom, s.smash.havePrev
	s.smash.prevBottom = bottom
	s.smash.havePrev = true

	if floorY-bottom >= s.cfg.LiftPx {
		s.smash.wasLifted = true
	}
	if !s.smash.wasLifted {
		return
	}
	if s.now-s.smash.lastSmashAt < s.cfg.SmashCooldownMs {
		return
	}

	// A slam needs a real downward impulse. The continuous press path
	// skips that requirement for a crate held over resting bodies, but
	// runs on its own tighter cooldown so holding still cannot farm.
	slam := havePrev && bottom-prevBottom >= s.cfg.ImpactMinDy
	if !slam {
		if s.now-s.smash.lastPressAt < s.cfg.PressCooldownMs {
			return
		}
		s.smash.lastPressAt = s.now
	}

	candidates := s.smashCandidates(rect)
	if len(candidates) == 0 {
		return
	}
	s.applySmash(rect, candidates)
}

// smashCandidates returns the resting bodies hit by the rectangle: circular
// footprint intersecting the rect, or within SmashRadiusPx of the rect's
// bottom-center point.
func (s *Simulation) smashCandidates(rect physics.Rect) []*Body {
	bc := rect.BottomCenter()
	var hit []*Body
	for _, b := range s.bodies {
		if !b.Resting() {
			continue
		}
		if physics.CircleRectOverlap(b.Pos.X, b.Pos.Y, b.Radius, rect) ||
			physics.PointInCircle(b.Pos.X, b.Pos.Y, bc.X, bc.Y, s.cfg.SmashRadiusPx) {
			hit = append(hit, b)
		}
	}
	return hit
}

// applySmash transitions the selected bodies to Smashed, credits the score,
// and fires the effect batch at the centroid of the smashed set.
//
// When candidates exceed MaxSmashPerHit, the nearest to the rectangle
// center win; body ID breaks distance ties so selection is deterministic.
func (s *Simulation) applySmash(rect physics.Rect, candidates []*Body) {
	if len(candidates) > s.cfg.MaxSmashPerHit {
		center := rect.Center()
		sort.Slice(candidates, func(i, j int) bool {
			di := physics.DistanceSquared(candidates[i].Pos.X, candidates[i].Pos.Y, center.X, center.Y)
			dj := physics.DistanceSquared(candidates[j].Pos.X, candidates[j].Pos.Y, center.X, center.Y)
			if di != dj {
				return di < dj
			}
			return candidates[i].ID < candidates[j].ID
		})
		candidates = candidates[:s.cfg.MaxSmashPerHit]
	}

	var cx, cy float64
	for _, b := range candidates {
		b.State = StateSmashed
		b.SmashedAt = s.now
		cx += b.Pos.X
		cy += b.Pos.Y
	}
	n := float64(len(candidates))
	cx /= n
	cy /= n

	s.score.Credit(len(candidates))
	s.emitter.OnSmash(cx, cy, len(candidates))
	s.events = append(s.events, Event{Kind: EventSmash, X: cx, Y: cy, Count: len(candidates)})

	s.smash.wasLifted = false
	s.smash.lastSmashAt = s.now
	s.debug("smash", "count", len(candidates), "x", cx, "y", cy)
}
