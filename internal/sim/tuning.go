package sim

import "github.com/tomz197/oranges/internal/effects"

// Tuning centralizes every tunable physical constant of the minigame.
// There is exactly one canonical value for each knob; nothing in the
// simulation re-derives these ad hoc.
//
// Distances are logical pixels, velocities logical pixels per frame at
// 60 FPS, durations milliseconds.
type Tuning struct {
	// Body physics.
	Gravity          float64 // added to vy every frame while airborne
	BounceDamping    float64 // velocity kept on wall/floor reflection, < 1
	GroundFriction   float64 // vx kept on each floor contact
	SettleThreshold  float64 // |vy| below which a floor bounce settles
	ReboundJitter    float64 // ± fraction applied to floor rebounds
	RotationFactor   float64 // degrees of spin per px of horizontal speed
	RotationFriction float64 // angular velocity kept per frame
	BodyRadius       float64
	SmashedLingerMs  float64 // smashed bodies stay visible this long
	MaxBodies        int     // live body cap, oldest evicted first

	// Paddle (pointer) interaction.
	PaddleRadius       float64
	PaddleRestitution  float64 // bounce restitution against the paddle
	PaddleUpwardAssist float64 // flat upward kick that aids juggling
	BounceCooldownMs   float64 // minimum gap between scored bounces
	AirborneMinPx      float64 // height above floor needed to score

	// Smash detection (crate slams).
	LiftPx          float64 // bottom edge must rise this far to re-arm
	ImpactMinDy     float64 // minimum downward delta for a slam
	SmashCooldownMs float64 // gap between slams
	PressCooldownMs float64 // gap between continuous-press checks
	SmashRadiusPx   float64 // reach around the crate's bottom center
	MaxSmashPerHit  int

	// Scoring.
	RequiredScore   int
	FlushIntervalMs float64 // pending credits become visible this often

	// Spawning.
	SpawnVelocityX      float64 // max |vx| given to fresh bodies
	SpawnWhileDrag      bool    // drop bodies while the crate is dragged
	DragSpawnIntervalMs float64

	Effects effects.Config
}

// DefaultTuning returns the canonical game feel.
func DefaultTuning() Tuning {
	return Tuning{
		Gravity:          0.35,
		BounceDamping:    0.88,
		GroundFriction:   0.92,
		SettleThreshold:  0.6,
		ReboundJitter:    0.05,
		RotationFactor:   4.0,
		RotationFriction: 0.97,
		BodyRadius:       28,
		SmashedLingerMs:  900,
		MaxBodies:        48,

		PaddleRadius:       18,
		PaddleRestitution:  0.9,
		PaddleUpwardAssist: 3.5,
		BounceCooldownMs:   120,
		AirborneMinPx:      12,

		LiftPx:          40,
		ImpactMinDy:     6,
		SmashCooldownMs: 250,
		PressCooldownMs: 50,
		SmashRadiusPx:   60,
		MaxSmashPerHit:  35,

		RequiredScore:   100,
		FlushIntervalMs: 150,

		SpawnVelocityX:      1.5,
		SpawnWhileDrag:      true,
		DragSpawnIntervalMs: 450,

		Effects: effects.DefaultConfig(),
	}
}
