// Package sim implements the orange-smash simulation core: bouncing body
// physics, paddle juggling, crate smash detection and session scoring.
//
// The whole simulation is single-owner state advanced by Tick. External
// inputs (pointer, dragged crate rectangle) are sampled once per tick;
// consumers read per-tick snapshots and never mutate simulation state.
package sim

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/oranges/internal/effects"
	"github.com/tomz197/oranges/internal/physics"
	"github.com/tomz197/oranges/internal/storage"
)

// frameMs is one logical frame at 60 FPS, the unit all per-frame tunables
// are expressed in.
const frameMs = 1000.0 / 60.0

// Bounds describes the play area. The floor sits FloorOffset above the
// bottom edge; the walls are at x=0 and x=Width.
type Bounds struct {
	Width       float64
	Height      float64
	FloorOffset float64
}

// FloorY returns the floor boundary in logical coordinates.
func (b Bounds) FloorY() float64 {
	return b.Height - b.FloorOffset
}

// Input carries the per-tick external inputs from the host.
type Input struct {
	PointerValid bool
	Pointer      physics.Vec
	PointerDown  bool
}

// EventKind identifies a cross-cutting simulation event.
type EventKind int

const (
	EventSmash EventKind = iota
	EventBounce
)

// Event is a value notification emitted during a tick, consumed by
// presentation layers (shake overlays, toasts). No acknowledgment expected.
type Event struct {
	Kind  EventKind
	X, Y  float64
	Count int
}

// Simulation owns all mutable minigame state.
type Simulation struct {
	cfg    Tuning
	bounds Bounds
	rng    *rand.Rand
	logger *log.Logger

	now        float64 // ms since simulation start
	nextBodyID int

	bodies  []*Body
	pool    *effects.Pool
	emitter *effects.Emitter
	paddle  PaddleState
	juggle  juggleTracker
	smash   smashState
	score   *Score
	store   storage.Store

	grabbed  *Body
	prevDown bool

	dragging        bool
	dragRect        physics.Rect
	lastDragSpawnAt float64

	events []Event // emitted this tick, cleared on the next
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithRand injects a deterministic random source (tests).
func WithRand(rng *rand.Rand) Option {
	return func(s *Simulation) { s.rng = rng }
}

// WithLogger sets the diagnostic logger. Diagnostics are debug-level only;
// the simulation never logs in normal operation.
func WithLogger(logger *log.Logger) Option {
	return func(s *Simulation) { s.logger = logger }
}

// WithStore sets the persistent key-value capability for score and claims.
func WithStore(store storage.Store) Option {
	return func(s *Simulation) { s.store = store }
}

// New creates a simulation over the given bounds.
func New(cfg Tuning, bounds Bounds, opts ...Option) *Simulation {
	s := &Simulation{
		cfg:    cfg,
		bounds: bounds,
		juggle: newJuggleTracker(),
		smash:  newSmashState(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.store == nil {
		s.store = storage.NewMemory()
	}

	s.pool = effects.NewPool(cfg.Effects)
	s.emitter = effects.NewEmitter(cfg.Effects, s.pool, s.rng)
	s.score = newScore(cfg.RequiredScore, cfg.FlushIntervalMs, s.store, s.logger)
	return s
}

func (s *Simulation) debug(msg string, kv ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, kv...)
	}
}

// Tick advances the simulation by deltaMs under the given inputs. A panic
// inside a tick abandons the remainder of that frame's work; the next tick
// proceeds normally, so one bad frame never stops the loop.
func (s *Simulation) Tick(deltaMs float64, in Input) {
	defer func() {
		if r := recover(); r != nil {
			s.debug("tick aborted", "panic", r)
		}
	}()

	if deltaMs <= 0 {
		return
	}
	s.now += deltaMs
	s.events = s.events[:0]
	step := deltaMs / frameMs

	// ===== INPUT PHASE =====
	s.updatePaddle(in)
	s.updateGrab(in, step)

	// ===== PHYSICS PHASE =====
	s.stepBodies(step)
	s.resolvePaddleBounces()
	if s.dragging {
		s.detectSmash(s.dragRect)
		s.maybeDragSpawn()
	}

	// ===== EFFECTS & SCORE PHASE =====
	s.pool.Tick(deltaMs, s.bounds.FloorY())
	s.emitter.Tick(deltaMs)
	s.score.tick(s.now)

	// The smash session resets once the tracked body set empties.
	if s.liveBodyCount() == 0 {
		s.resetSession()
	}
}

func (s *Simulation) updatePaddle(in Input) {
	if !in.PointerValid {
		// Missing pointer: keep the last known paddle state this frame.
		return
	}
	s.paddle.Pos = in.Pointer
	s.paddle.Down = in.PointerDown
}

// updateGrab handles picking a body up, carrying it, and releasing it with
// throw velocity seeded from the pointer's frame-to-frame delta.
func (s *Simulation) updateGrab(in Input, step float64) {
	defer func() { s.prevDown = in.PointerDown && in.PointerValid }()

	if !in.PointerValid {
		return
	}

	downEdge := in.PointerDown && !s.prevDown
	if downEdge && s.grabbed == nil && !s.dragging {
		if b := s.bodyAt(in.Pointer); b != nil {
			b.State = StatePickedUp
			b.Vel = physics.Vec{}
			b.AngularVel = 0
			b.lastPointer = in.Pointer
			s.grabbed = b
		}
	}

	if s.grabbed == nil {
		return
	}

	b := s.grabbed
	if in.PointerDown {
		// Physics is suspended: position follows the pointer and velocity
		// records the frame delta for the eventual throw.
		if step > 0 {
			b.Vel = in.Pointer.Sub(b.lastPointer).Scale(1 / step)
		}
		b.Pos = s.clampToBounds(in.Pointer, b.Radius)
		b.lastPointer = in.Pointer
		return
	}

	// Released: continue naturally under gravity with the throw velocity.
	b.State = StateFalling
	s.grabbed = nil
}

func (s *Simulation) clampToBounds(p physics.Vec, radius float64) physics.Vec {
	p.X = physics.Clamp(p.X, radius, s.bounds.Width-radius)
	p.Y = physics.Clamp(p.Y, radius, s.bounds.FloorY()-radius)
	return p
}

// bodyAt returns the most recently spawned interactable body under the
// pointer, or nil.
func (s *Simulation) bodyAt(p physics.Vec) *Body {
	for i := len(s.bodies) - 1; i >= 0; i-- {
		b := s.bodies[i]
		if b.State == StateSmashed || b.State == StatePickedUp {
			continue
		}
		if physics.PointInCircle(p.X, p.Y, b.Pos.X, b.Pos.Y, b.Radius) {
			return b
		}
	}
	return nil
}

// stepBodies integrates all bodies and evicts smashed ones after their
// linger delay. Any floor touch resets the juggle streak baseline.
func (s *Simulation) stepBodies(step float64) {
	floorY := s.bounds.FloorY()
	touchedGround := false

	kept := s.bodies[:0] // reuse backing array
	for _, b := range s.bodies {
		switch b.State {
		case StateSmashed:
			if s.now-b.SmashedAt >= s.cfg.SmashedLingerMs {
				continue // removed
			}
		case StatePickedUp:
			// Driven by the pointer in updateGrab.
		default:
			if b.stepPhysics(&s.cfg, s.rng, step, floorY, 0, s.bounds.Width) {
				touchedGround = true
			}
		}
		kept = append(kept, b)
	}
	s.bodies = kept

	if touchedGround {
		s.juggle.reset()
	}
}

// resolvePaddleBounces runs the paddle interaction against every live body
// and credits streak points.
func (s *Simulation) resolvePaddleBounces() {
	for _, b := range s.bodies {
		if b.State == StateSmashed || b.State == StatePickedUp {
			continue
		}
		res, contact := s.resolvePaddle(b)
		if !contact || !res.scored {
			continue
		}
		if res.delta > 0 {
			s.score.Credit(res.delta)
		}
		s.emitter.OnBounce(res.x, res.y, res.delta)
		s.events = append(s.events, Event{Kind: EventBounce, X: res.x, Y: res.y, Count: res.delta})
	}
}

// SpawnBody drops a new orange at (x, y) with a slight random horizontal
// drift. The body population cap evicts the oldest bodies first.
func (s *Simulation) SpawnBody(x, y float64) *Body {
	s.nextBodyID++
	b := &Body{
		ID:        s.nextBodyID,
		Pos:       s.clampToBounds(physics.Vec{X: x, Y: y}, s.cfg.BodyRadius),
		Vel:       physics.Vec{X: (s.rng.Float64()*2 - 1) * s.cfg.SpawnVelocityX},
		Rotation:  s.rng.Float64() * 360,
		Radius:    s.cfg.BodyRadius,
		State:     StateFalling,
		CreatedAt: s.now,
	}
	s.bodies = append(s.bodies, b)

	if over := len(s.bodies) - s.cfg.MaxBodies; over > 0 {
		evicted := s.bodies[:over]
		for _, old := range evicted {
			if old == s.grabbed {
				s.grabbed = nil
			}
		}
		s.bodies = append(s.bodies[:0], s.bodies[over:]...)
	}
	return b
}

// maybeDragSpawn drops bodies on an interval while the crate is dragged,
// for the spawn-while-dragging variant.
func (s *Simulation) maybeDragSpawn() {
	if !s.cfg.SpawnWhileDrag {
		return
	}
	if s.now-s.lastDragSpawnAt < s.cfg.DragSpawnIntervalMs {
		return
	}
	s.lastDragSpawnAt = s.now
	x := s.rng.Float64() * s.bounds.Width
	s.SpawnBody(x, s.cfg.BodyRadius*2)
}

// liveBodyCount counts bodies that are not pending removal.
func (s *Simulation) liveBodyCount() int {
	n := 0
	for _, b := range s.bodies {
		if b.State != StateSmashed {
			n++
		}
	}
	return n
}

// resetSession clears the juggle streak and the smash gate.
func (s *Simulation) resetSession() {
	s.juggle.reset()
	s.smash.reset()
}

// Claim attempts to consume the score for a prize. A successful claim also
// resets the smash session.
func (s *Simulation) Claim() bool {
	s.score.Flush()
	if !s.score.Claim() {
		return false
	}
	s.resetSession()
	return true
}

// Score exposes the accumulator for HUD reads.
func (s *Simulation) Score() *Score {
	return s.score
}

// Bounds returns the play area.
func (s *Simulation) Bounds() Bounds {
	return s.bounds
}

// Tuning returns the active tuning parameters.
func (s *Simulation) Tuning() Tuning {
	return s.cfg
}

// Now returns the simulation clock in milliseconds.
func (s *Simulation) Now() float64 {
	return s.now
}
