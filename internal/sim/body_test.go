package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/tomz197/oranges/internal/physics"
)

func testTuning() Tuning {
	cfg := DefaultTuning()
	cfg.ReboundJitter = 0 // deterministic bounces for assertions
	cfg.SpawnWhileDrag = false
	return cfg
}

// Drop scenario: spawn at (400, 50) moving up at 6 px/frame, gravity 0.15,
// floor at y=770. The rebound must be exactly the impact speed scaled by
// the damping constant and never exceed it.
func TestFloorReboundMatchesDamping(t *testing.T) {
	cfg := testTuning()
	cfg.Gravity = 0.15
	cfg.BounceDamping = 0.88
	rng := rand.New(rand.NewSource(1))

	b := &Body{
		Pos:    physics.Vec{X: 400, Y: 50},
		Vel:    physics.Vec{X: 0, Y: -6},
		Radius: 28,
		State:  StateFalling,
	}

	const floorY = 770.0
	for i := 0; i < 10_000; i++ {
		impact := b.Vel.Y + cfg.Gravity // velocity the floor will see this step
		touched := b.stepPhysics(&cfg, rng, 1, floorY, 0, 800)
		if !touched {
			continue
		}

		want := -impact * cfg.BounceDamping
		if math.Abs(b.Vel.Y-want) > 1e-9 {
			t.Fatalf("rebound vy = %f, want %f", b.Vel.Y, want)
		}
		if math.Abs(b.Vel.Y) > math.Abs(impact) {
			t.Fatalf("rebound speed %f exceeds impact speed %f", b.Vel.Y, impact)
		}
		if b.Pos.Y+b.Radius > floorY {
			t.Fatalf("body left below the floor: y=%f", b.Pos.Y)
		}
		return
	}
	t.Fatalf("body never reached the floor")
}

// Settle determinism: under damping < 1 each bounce peak is strictly lower
// and the body reaches Settled in finitely many ticks.
func TestBodySettlesWithDecreasingPeaks(t *testing.T) {
	cfg := testTuning()
	rng := rand.New(rand.NewSource(7))

	b := &Body{
		Pos:    physics.Vec{X: 200, Y: 100},
		Vel:    physics.Vec{X: 0, Y: 2},
		Radius: cfg.BodyRadius,
		State:  StateFalling,
	}

	const floorY = 500.0
	peak := b.Pos.Y // track the highest point (smallest y) between bounces
	lastPeak := math.Inf(-1)
	settledAt := -1

	for i := 0; i < 100_000; i++ {
		wasDescending := b.Vel.Y > 0
		touched := b.stepPhysics(&cfg, rng, 1, floorY, 0, 400)

		if b.Pos.Y < peak {
			peak = b.Pos.Y
		}
		if touched && wasDescending {
			// One bounce completed; its peak must sit strictly below the
			// previous one (larger y).
			if lastPeak != math.Inf(-1) && peak <= lastPeak {
				t.Fatalf("bounce peak did not decrease: %f then %f", lastPeak, peak)
			}
			lastPeak = peak
			peak = floorY
		}
		if b.State == StateSettled {
			settledAt = i
			break
		}
	}

	if settledAt < 0 {
		t.Fatalf("body never settled")
	}
	if b.Vel.X != 0 || b.Vel.Y != 0 || b.AngularVel != 0 {
		t.Fatalf("settled body still moving: vel=%+v angular=%f", b.Vel, b.AngularVel)
	}
}

func TestWallReflectionClampsAndDamps(t *testing.T) {
	cfg := testTuning()
	rng := rand.New(rand.NewSource(3))

	b := &Body{
		Pos:    physics.Vec{X: 30, Y: 100},
		Vel:    physics.Vec{X: -10, Y: 0},
		Radius: 28,
		State:  StateFalling,
	}
	b.stepPhysics(&cfg, rng, 1, 1000, 0, 800)

	if b.Pos.X != 28 {
		t.Fatalf("body x = %f, want clamped to left wall + radius", b.Pos.X)
	}
	if want := 10 * cfg.BounceDamping; math.Abs(b.Vel.X-want) > 1e-9 {
		t.Fatalf("reflected vx = %f, want %f", b.Vel.X, want)
	}
}

func TestSettledBodyInMidAirResumesFalling(t *testing.T) {
	cfg := testTuning()
	rng := rand.New(rand.NewSource(3))

	b := &Body{
		Pos:    physics.Vec{X: 100, Y: 100},
		Radius: 28,
		State:  StateSettled,
	}
	b.stepPhysics(&cfg, rng, 1, 500, 0, 800)
	if b.State != StateFalling {
		t.Fatalf("stuck mid-air body state = %v, want falling", b.State)
	}
}
