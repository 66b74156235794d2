package sim

import (
	"math"
	"math/rand"

	"github.com/tomz197/oranges/internal/physics"
)

// BodyState is the lifecycle state of a physics body.
type BodyState int

const (
	StateFalling  BodyState = iota // airborne, integrating under gravity
	StateGrounded                  // has touched the floor, still moving
	StateSettled                   // motionless, integration skipped
	StatePickedUp                  // carried by the pointer, physics suspended
	StateSmashed                   // destroyed, awaiting removal
)

// String returns a short state name for diagnostics.
func (s BodyState) String() string {
	switch s {
	case StateFalling:
		return "falling"
	case StateGrounded:
		return "grounded"
	case StateSettled:
		return "settled"
	case StatePickedUp:
		return "picked-up"
	case StateSmashed:
		return "smashed"
	default:
		return "unknown"
	}
}

// Body is one bouncing game object (an orange).
type Body struct {
	ID         int
	Pos        physics.Vec
	Vel        physics.Vec // px per frame
	Rotation   float64     // degrees
	AngularVel float64     // degrees per frame
	Radius     float64
	State      BodyState
	CreatedAt  float64 // sim clock ms, used for cap eviction ordering
	SmashedAt  float64

	lastPointer physics.Vec // pointer position on the previous carried frame
}

// Resting reports whether the body sits on the floor and is a valid smash
// target.
func (b *Body) Resting() bool {
	return b.State == StateGrounded || b.State == StateSettled
}

// Airborne reports whether the body is more than minPx above the floor.
func (b *Body) Airborne(floorY, minPx float64) bool {
	return b.Pos.Y+b.Radius < floorY-minPx
}

// stepPhysics advances one integration step. step is the frame fraction
// (deltaMs / frame length). Returns true when the body touched the floor
// this step.
//
// PickedUp and Smashed bodies never reach this; Settled bodies sleep until
// something disturbs them.
func (b *Body) stepPhysics(cfg *Tuning, rng *rand.Rand, step, floorY, leftWall, rightWall float64) bool {
	if b.State == StateSettled {
		// Self-heal: a body left settled in mid-air (e.g. after a resize
		// moved the floor) resumes falling instead of hanging there.
		if b.Airborne(floorY, 1) {
			b.State = StateFalling
		}
		return false
	}

	b.Vel.Y += cfg.Gravity * step
	b.Pos = b.Pos.Add(b.Vel.Scale(step))

	// Wall reflection.
	if b.Pos.X-b.Radius < leftWall {
		b.Pos.X = leftWall + b.Radius
		b.Vel.X *= -cfg.BounceDamping
	} else if b.Pos.X+b.Radius > rightWall {
		b.Pos.X = rightWall - b.Radius
		b.Vel.X *= -cfg.BounceDamping
	}

	touched := false
	if b.Pos.Y+b.Radius >= floorY {
		touched = true
		b.Pos.Y = floorY - b.Radius
		b.Vel.Y *= -cfg.BounceDamping
		b.Vel.X *= cfg.GroundFriction

		if math.Abs(b.Vel.Y) < cfg.SettleThreshold {
			b.Vel = physics.Vec{}
			b.AngularVel = 0
			b.State = StateSettled
		} else {
			// Small multiplicative randomness keeps repeated bounces
			// from turning perfectly periodic.
			b.Vel.Y *= 1 + (rng.Float64()*2-1)*cfg.ReboundJitter
			b.State = StateGrounded
		}
	}

	// Spin follows horizontal motion.
	b.AngularVel = b.Vel.X * cfg.RotationFactor
	b.Rotation += b.AngularVel * step
	b.AngularVel *= cfg.RotationFriction

	return touched
}
