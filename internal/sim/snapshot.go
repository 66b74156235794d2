package sim

import (
	"github.com/tomz197/oranges/internal/effects"
	"github.com/tomz197/oranges/internal/physics"
)

// BodyView is the render-facing view of one body.
type BodyView struct {
	ID       int
	Pos      physics.Vec
	Rotation float64
	Radius   float64
	State    BodyState
	// SmashProgress runs 0..1 over the post-smash linger window and is 0
	// for live bodies. Renderers use it for the squash/fade animation.
	SmashProgress float64
}

// Snapshot is the read-only per-tick view consumed by rendering and HUD.
// Slices reference simulation-owned memory and are valid until the next
// Tick; the cooperative single-threaded schedule makes that safe.
type Snapshot struct {
	Bodies   []BodyView
	Droplets []effects.Droplet
	Splats   []effects.Splat
	Drips    []effects.DripTrail
	Markers  []effects.Marker
	Events   []Event

	Paddle PaddleState

	RawScore      int
	RequiredScore int
	FillPct       float64
	Claims        int
	Streak        int

	ShakeX, ShakeY float64
}

// Snapshot builds the current frame's view. Call once per tick after Tick.
func (s *Simulation) Snapshot() Snapshot {
	views := make([]BodyView, 0, len(s.bodies))
	for _, b := range s.bodies {
		v := BodyView{
			ID:       b.ID,
			Pos:      b.Pos,
			Rotation: b.Rotation,
			Radius:   b.Radius,
			State:    b.State,
		}
		if b.State == StateSmashed && s.cfg.SmashedLingerMs > 0 {
			v.SmashProgress = physics.Clamp((s.now-b.SmashedAt)/s.cfg.SmashedLingerMs, 0, 1)
		}
		views = append(views, v)
	}

	sx, sy := s.emitter.ShakeOffset()
	return Snapshot{
		Bodies:   views,
		Droplets: s.pool.Droplets(),
		Splats:   s.pool.Splats(),
		Drips:    s.pool.Drips(),
		Markers:  s.emitter.Markers(),
		Events:   s.events,

		Paddle: s.paddle,

		RawScore:      s.score.Raw(),
		RequiredScore: s.score.Required(),
		FillPct:       s.score.FillPct(),
		Claims:        s.score.Claims(),
		Streak:        s.juggle.streak,

		ShakeX: sx,
		ShakeY: sy,
	}
}
