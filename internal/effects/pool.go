package effects

import (
	"math"

	"github.com/tomz197/oranges/internal/physics"
)

// frameMs is one logical frame at 60 FPS. Per-frame quantities (gravity,
// drag, growth rates) are scaled by deltaMs/frameMs so the simulation stays
// frame-rate independent.
const frameMs = 1000.0 / 60.0

// particle is the state shared by every pool entity.
type particle struct {
	Pos         physics.Vec
	Age         float64 // ms
	Lifetime    float64 // ms
	BaseOpacity float64
	CreatedAt   float64 // pool clock ms, used for oldest-first eviction
}

// Opacity derives the current opacity from age. It is monotonically
// non-increasing across ticks and reaches zero at end of life.
func (p *particle) Opacity() float64 {
	if p.Lifetime <= 0 {
		return 0
	}
	return math.Max(0, p.BaseOpacity*(1-p.Age/p.Lifetime))
}

func (p *particle) expired() bool {
	return p.Age >= p.Lifetime || p.Opacity() <= 0
}

// Droplet is a flying juice drop under gravity and drag.
type Droplet struct {
	particle
	Vel     physics.Vec
	Gravity float64
	Drag    float64 // per-frame multiplicative decay
	Radius  float64
}

// Splat is a persistent irregular juice blob. Points is a closed polygon
// around Pos and is immutable once created.
type Splat struct {
	particle
	Radius float64
	Points []physics.Vec
}

// DripTrail is a thin juice line that grows downward from a splat.
type DripTrail struct {
	particle
	Length     float64
	MaxLength  float64
	GrowthRate float64 // length per frame
}

// Pool owns all live particles and enforces the per-kind population caps.
// It is single-owner state: only the simulation tick mutates it, renderers
// read the exported slices between ticks.
type Pool struct {
	cfg Config
	now float64 // ms, advanced by Tick

	droplets []Droplet
	splats   []Splat
	drips    []DripTrail
}

// NewPool creates an empty pool with the given configuration.
func NewPool(cfg Config) *Pool {
	return &Pool{cfg: cfg}
}

// Now returns the pool clock in milliseconds.
func (p *Pool) Now() float64 {
	return p.now
}

// Droplets returns the live droplet slice. Read-only between ticks.
func (p *Pool) Droplets() []Droplet {
	return p.droplets
}

// Splats returns the live splat slice. Read-only between ticks.
func (p *Pool) Splats() []Splat {
	return p.splats
}

// Drips returns the live drip trail slice. Read-only between ticks.
func (p *Pool) Drips() []DripTrail {
	return p.drips
}

// SpawnDroplet adds a droplet and enforces the droplet cap.
func (p *Pool) SpawnDroplet(d Droplet) {
	d.CreatedAt = p.now
	if d.BaseOpacity == 0 {
		d.BaseOpacity = 1
	}
	p.droplets = append(p.droplets, d)
	if over := len(p.droplets) - p.cfg.MaxDroplets; over > 0 {
		p.droplets = evictOldestDroplets(p.droplets, p.cfg.MaxDroplets)
	}
}

// SpawnSplat adds a splat and enforces the splat cap.
func (p *Pool) SpawnSplat(s Splat) {
	s.CreatedAt = p.now
	if s.BaseOpacity == 0 {
		s.BaseOpacity = 1
	}
	p.splats = append(p.splats, s)
	if over := len(p.splats) - p.cfg.MaxSplats; over > 0 {
		p.splats = evictOldestSplats(p.splats, p.cfg.MaxSplats)
	}
}

// SpawnDrip adds a drip trail and enforces the drip cap.
func (p *Pool) SpawnDrip(d DripTrail) {
	d.CreatedAt = p.now
	if d.BaseOpacity == 0 {
		d.BaseOpacity = 1
	}
	p.drips = append(p.drips, d)
	if over := len(p.drips) - p.cfg.MaxDrips; over > 0 {
		p.drips = evictOldestDrips(p.drips, p.cfg.MaxDrips)
	}
}

// Spawns append in clock order, so the slices stay sorted by CreatedAt and
// evicting the oldest reduces to dropping from the front.

func evictOldestDroplets(s []Droplet, max int) []Droplet {
	n := copy(s, s[len(s)-max:])
	return s[:n]
}

func evictOldestSplats(s []Splat, max int) []Splat {
	n := copy(s, s[len(s)-max:])
	return s[:n]
}

func evictOldestDrips(s []DripTrail, max int) []DripTrail {
	n := copy(s, s[len(s)-max:])
	return s[:n]
}

// Tick advances the pool clock, ages every particle, applies per-kind
// integration, and removes expired entities. floorY is the floor boundary in
// logical coordinates.
func (p *Pool) Tick(deltaMs, floorY float64) {
	if deltaMs <= 0 {
		return
	}
	p.now += deltaMs
	step := deltaMs / frameMs

	p.tickDroplets(deltaMs, step, floorY)
	p.tickSplats(deltaMs)
	p.tickDrips(deltaMs, step, floorY)
}

func (p *Pool) tickDroplets(deltaMs, step, floorY float64) {
	kept := p.droplets[:0] // reuse backing array
	for i := range p.droplets {
		d := &p.droplets[i]
		d.Age += deltaMs
		if d.expired() {
			continue
		}

		d.Vel.Y += d.Gravity * step
		drag := math.Pow(d.Drag, step)
		d.Vel.X *= drag
		d.Vel.Y *= drag
		d.Pos = d.Pos.Add(d.Vel.Scale(step))

		// Droplets land and stay: clamp to the floor, no rebound.
		if d.Pos.Y >= floorY {
			d.Pos.Y = floorY
			d.Vel = physics.Vec{}
		}

		kept = append(kept, *d)
	}
	p.droplets = kept
}

func (p *Pool) tickSplats(deltaMs float64) {
	kept := p.splats[:0]
	for i := range p.splats {
		s := &p.splats[i]
		s.Age += deltaMs
		if s.expired() {
			continue
		}
		kept = append(kept, *s)
	}
	p.splats = kept
}

func (p *Pool) tickDrips(deltaMs, step, floorY float64) {
	kept := p.drips[:0]
	for i := range p.drips {
		d := &p.drips[i]
		d.Age += deltaMs
		if d.expired() || d.Pos.Y >= floorY {
			continue
		}

		grow := d.GrowthRate * step
		if d.Length < d.MaxLength {
			d.Length = math.Min(d.MaxLength, d.Length+grow)
		}
		// The trail head crawls down at the growth rate.
		d.Pos.Y += grow

		kept = append(kept, *d)
	}
	p.drips = kept
}
