package sim

import (
	"testing"

	"github.com/tomz197/oranges/internal/physics"
)

// settleBodies places n settled bodies on the floor around centerX.
func settleBodies(s *Simulation, n int, centerX float64) {
	floorY := s.bounds.FloorY()
	for i := 0; i < n; i++ {
		b := s.SpawnBody(centerX+float64(i%10)*4, 100)
		b.Pos = physics.Vec{X: centerX + float64(i%10)*4, Y: floorY - b.Radius}
		b.Vel = physics.Vec{}
		b.State = StateSettled
	}
}

func smashedCount(s *Simulation) int {
	n := 0
	for _, b := range s.bodies {
		if b.State == StateSmashed {
			n++
		}
	}
	return n
}

// crateRect builds the crate rectangle with its bottom edge at the given y.
func crateRect(x, bottom float64) physics.Rect {
	return physics.Rect{Left: x - 60, Top: bottom - 50, Right: x + 60, Bottom: bottom}
}

// totalSmashed reads the cumulative smash count through the score (one
// point per smashed body, no bounces in these scenarios).
func totalSmashed(s *Simulation) int {
	s.score.Flush()
	return s.score.Raw()
}

// Anti-farm invariant: after a smash, slams without re-lifting the crate
// above the lift threshold produce zero additional smashes.
func TestSmashRequiresLiftBetweenSlams(t *testing.T) {
	s := newTestSim(testTuning())
	settleBodies(s, 5, 400)
	floorY := s.bounds.FloorY()

	ctl := s.Controller()
	ctl.StartDrag(crateRect(400, floorY-200)) // well above the lift threshold
	s.Tick(16, Input{})                       // arms the lift gate

	// Slam down onto the bodies.
	ctl.UpdateRect(crateRect(400, floorY))
	s.Tick(16, Input{})
	first := totalSmashed(s)
	if first != 5 {
		t.Fatalf("armed slam smashed %d bodies, want 5", first)
	}

	// Fresh targets under the crate, then hammer up and down below the
	// lift threshold: every downstroke exceeds ImpactMinDy but the gate
	// never re-arms.
	settleBodies(s, 5, 400)
	for i := 0; i < 50; i++ {
		ctl.UpdateRect(crateRect(400, floorY-20))
		s.Tick(16, Input{})
		ctl.UpdateRect(crateRect(400, floorY))
		s.Tick(16, Input{})
	}
	if got := totalSmashed(s); got != first {
		t.Fatalf("un-lifted slams smashed %d extra bodies", got-first)
	}

	// Re-lift, wait out the smash cooldown, slam again: works.
	ctl.UpdateRect(crateRect(400, floorY-200))
	s.Tick(s.cfg.SmashCooldownMs+1, Input{})
	ctl.UpdateRect(crateRect(400, floorY))
	s.Tick(16, Input{})
	if got := totalSmashed(s); got != first+5 {
		t.Fatalf("re-armed slam: total smashed %d, want %d", got, first+5)
	}
}

// Continuous-press mode: an armed crate lowered gently, never exceeding
// ImpactMinDy in a single frame, still smashes the resting bodies under it,
// then disarms like a slam would.
func TestContinuousPressSmashesAndDisarms(t *testing.T) {
	s := newTestSim(testTuning())
	floorY := s.bounds.FloorY()
	settleBodies(s, 1, 100) // bystander far from the crate keeps the session alive

	ctl := s.Controller()
	ctl.StartDrag(crateRect(400, floorY-200))
	s.Tick(16, Input{}) // arms the lift gate

	// Glide down 2 px per frame, ending with the crate hovering below the
	// lift threshold. Nothing is under it yet.
	for bottom := floorY - 198; bottom <= floorY-30; bottom += 2 {
		ctl.UpdateRect(crateRect(400, bottom))
		s.Tick(16, Input{})
	}
	if got := totalSmashed(s); got != 0 {
		t.Fatalf("descent over empty floor smashed %d bodies", got)
	}

	// Bodies settle under the stationary crate; the press path takes them
	// without any downstroke at all.
	settleBodies(s, 4, 400)
	for i := 0; i < 6; i++ {
		s.Tick(16, Input{})
	}
	if got := totalSmashed(s); got != 4 {
		t.Fatalf("press smashed %d bodies, want 4", got)
	}
	if s.smash.wasLifted {
		t.Fatalf("press smash should disarm the lift gate")
	}

	// Fresh targets under the still-hovering crate: without a re-lift the
	// press path stays disarmed.
	settleBodies(s, 4, 400)
	for i := 0; i < 20; i++ {
		s.Tick(16, Input{})
	}
	if got := totalSmashed(s); got != 4 {
		t.Fatalf("disarmed press smashed %d extra bodies", got-4)
	}
}

// Smash cap: 50 eligible bodies under the crate, cap 35, exactly 35 smash.
func TestSmashCapLimitsBodiesPerSlam(t *testing.T) {
	cfg := testTuning()
	cfg.MaxBodies = 100
	cfg.MaxSmashPerHit = 35
	s := newTestSim(cfg)
	settleBodies(s, 50, 400)
	floorY := s.bounds.FloorY()

	ctl := s.Controller()
	ctl.StartDrag(crateRect(400, floorY-200))
	s.Tick(16, Input{})
	ctl.UpdateRect(crateRect(400, floorY))
	s.Tick(16, Input{})

	if got := smashedCount(s); got != 35 {
		t.Fatalf("smashed %d bodies in one slam, want exactly 35", got)
	}
}

func TestSmashedBodiesRemovedAfterLinger(t *testing.T) {
	s := newTestSim(testTuning())
	settleBodies(s, 3, 400)
	floorY := s.bounds.FloorY()

	ctl := s.Controller()
	ctl.StartDrag(crateRect(400, floorY-200))
	s.Tick(16, Input{})
	ctl.UpdateRect(crateRect(400, floorY))
	s.Tick(16, Input{})
	if smashedCount(s) != 3 {
		t.Fatalf("expected all 3 bodies smashed")
	}

	// Within the linger window they remain visible.
	s.Tick(s.cfg.SmashedLingerMs/2, Input{})
	if len(s.bodies) != 3 {
		t.Fatalf("smashed bodies removed before the linger delay")
	}

	s.Tick(s.cfg.SmashedLingerMs, Input{})
	if len(s.bodies) != 0 {
		t.Fatalf("smashed bodies still present after the linger delay")
	}
}

func TestSmashCreditsScoreAndEmitsEvent(t *testing.T) {
	s := newTestSim(testTuning())
	settleBodies(s, 4, 400)
	floorY := s.bounds.FloorY()

	ctl := s.Controller()
	ctl.StartDrag(crateRect(400, floorY-200))
	s.Tick(16, Input{})
	ctl.UpdateRect(crateRect(400, floorY))
	s.Tick(16, Input{})

	snap := s.Snapshot()
	var smashEvents int
	for _, ev := range snap.Events {
		if ev.Kind == EventSmash {
			smashEvents++
			if ev.Count != 4 {
				t.Fatalf("smash event count = %d, want 4", ev.Count)
			}
		}
	}
	if smashEvents != 1 {
		t.Fatalf("smash events = %d, want 1", smashEvents)
	}

	s.score.Flush()
	if got := s.score.Raw(); got != 4 {
		t.Fatalf("score after smashing 4 = %d, want 4", got)
	}
	if len(snap.Droplets) == 0 || len(snap.Splats) == 0 {
		t.Fatalf("smash should spawn droplets and splats")
	}
}

func TestZeroSizedDragRectIsIgnored(t *testing.T) {
	s := newTestSim(testTuning())
	settleBodies(s, 3, 400)
	floorY := s.bounds.FloorY()

	ctl := s.Controller()
	ctl.StartDrag(crateRect(400, floorY-200))
	s.Tick(16, Input{})
	ctl.UpdateRect(physics.Rect{Left: 400, Top: floorY, Right: 400, Bottom: floorY})
	s.Tick(16, Input{})

	if got := smashedCount(s); got != 0 {
		t.Fatalf("degenerate rect smashed %d bodies", got)
	}
}

func TestPickupCarryAndThrow(t *testing.T) {
	s := newTestSim(testTuning())
	b := s.SpawnBody(400, 300)
	b.Pos = physics.Vec{X: 400, Y: 300}
	b.Vel = physics.Vec{}

	// Press on the body.
	s.Tick(16, Input{PointerValid: true, Pointer: physics.Vec{X: 400, Y: 300}, PointerDown: true})
	if b.State != StatePickedUp {
		t.Fatalf("body state = %v after grab, want picked-up", b.State)
	}

	// Carry: position follows the pointer, physics suspended.
	s.Tick(16, Input{PointerValid: true, Pointer: physics.Vec{X: 450, Y: 250}, PointerDown: true})
	if b.Pos.X != 450 || b.Pos.Y != 250 {
		t.Fatalf("carried body at %+v, want pointer position", b.Pos)
	}

	// Release: throw velocity comes from the last pointer delta.
	s.Tick(16, Input{PointerValid: true, Pointer: physics.Vec{X: 450, Y: 250}, PointerDown: false})
	if b.State != StateFalling {
		t.Fatalf("released body state = %v, want falling", b.State)
	}
}

func TestBodyCapEvictsOldest(t *testing.T) {
	cfg := testTuning()
	cfg.MaxBodies = 5
	s := newTestSim(cfg)

	first := s.SpawnBody(100, 100)
	for i := 0; i < 5; i++ {
		s.Tick(1, Input{}) // distinct CreatedAt per spawn
		s.SpawnBody(200+float64(i), 100)
	}

	if len(s.bodies) != 5 {
		t.Fatalf("body count = %d, want capped at 5", len(s.bodies))
	}
	for _, b := range s.bodies {
		if b == first {
			t.Fatalf("oldest body survived eviction")
		}
	}
}

func TestClaimResetsSmashSession(t *testing.T) {
	cfg := testTuning()
	cfg.RequiredScore = 2
	s := newTestSim(cfg)
	settleBodies(s, 3, 400)
	floorY := s.bounds.FloorY()

	ctl := s.Controller()
	ctl.StartDrag(crateRect(400, floorY-200))
	s.Tick(16, Input{})
	ctl.UpdateRect(crateRect(400, floorY))
	s.Tick(16, Input{})

	if !s.Claim() {
		t.Fatalf("claim should succeed with 3 smashes against required 2")
	}
	if s.smash.wasLifted {
		t.Fatalf("claim must reset the smash session gate")
	}
	if s.Snapshot().Claims != 1 {
		t.Fatalf("claims = %d, want 1", s.Snapshot().Claims)
	}
}

func TestSpawnWhileDragging(t *testing.T) {
	cfg := testTuning()
	cfg.SpawnWhileDrag = true
	cfg.DragSpawnIntervalMs = 100
	s := newTestSim(cfg)

	ctl := s.Controller()
	ctl.StartDrag(crateRect(400, 300))
	for i := 0; i < 30; i++ {
		s.Tick(16, Input{})
	}
	if len(s.bodies) < 3 {
		t.Fatalf("spawn-while-drag produced %d bodies over ~480ms, want several", len(s.bodies))
	}

	ctl.EndDrag()
	count := len(s.bodies)
	for i := 0; i < 30; i++ {
		s.Tick(16, Input{})
	}
	if len(s.bodies) != count {
		t.Fatalf("bodies kept spawning after the drag ended")
	}
}
