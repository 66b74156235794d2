package effects

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/tomz197/oranges/internal/physics"
)

// Emitter turns smash and bounce events into pool spawns, screen shake and
// overlay markers. It owns no physics state of its own.
type Emitter struct {
	cfg     Config
	pool    *Pool
	rng     *rand.Rand
	shake   Shake
	markers []Marker
}

// NewEmitter creates an emitter feeding the given pool.
func NewEmitter(cfg Config, pool *Pool, rng *rand.Rand) *Emitter {
	return &Emitter{cfg: cfg, pool: pool, rng: rng}
}

// OnSmash spawns the full effect batch for count bodies smashed around
// (x, y): a droplet burst, 2-6 splats per body with optional drip trails,
// and a screen shake pulse.
func (e *Emitter) OnSmash(x, y float64, count int) {
	if count <= 0 {
		return
	}

	n := e.cfg.ParticlesPerOrange * count
	if n > e.cfg.MaxParticlesPerSmash {
		n = e.cfg.MaxParticlesPerSmash
	}
	for i := 0; i < n; i++ {
		e.spawnBurstDroplet(x, y)
	}

	for b := 0; b < count; b++ {
		splats := e.cfg.SplatsPerOrangeMin
		if spread := e.cfg.SplatsPerOrangeMax - e.cfg.SplatsPerOrangeMin; spread > 0 {
			splats += e.rng.Intn(spread + 1)
		}
		for s := 0; s < splats; s++ {
			e.spawnSplat(x, y)
		}
	}

	e.shake.Trigger(e.pool.Now(), e.cfg.ShakeDurationMs, e.cfg.ShakeIntensity)
}

// OnBounce drops a splash glyph and, for points > 0, a floating "+N" score
// marker at the contact point. No pool entries are spawned.
func (e *Emitter) OnBounce(x, y float64, points int) {
	e.markers = append(e.markers, Marker{
		Kind:     MarkerSplash,
		Pos:      physics.Vec{X: x, Y: y},
		Lifetime: e.cfg.MarkerLifetimeMs,
	})
	if points > 0 {
		e.markers = append(e.markers, Marker{
			Kind:     MarkerScore,
			Pos:      physics.Vec{X: x, Y: y - 4},
			Text:     fmt.Sprintf("+%d", points),
			Lifetime: e.cfg.MarkerLifetimeMs,
		})
	}
}

func (e *Emitter) spawnBurstDroplet(x, y float64) {
	angle := e.rng.Float64() * 2 * math.Pi
	speed := physics.Lerp(e.cfg.DropletSpeedMin, e.cfg.DropletSpeedMax, e.rng.Float64())

	e.pool.SpawnDroplet(Droplet{
		particle: particle{
			Pos:         physics.Vec{X: x, Y: y},
			Lifetime:    physics.Lerp(e.cfg.DropletLifeMinMs, e.cfg.DropletLifeMaxMs, e.rng.Float64()),
			BaseOpacity: 1,
		},
		Vel: physics.Vec{
			X: math.Cos(angle) * speed,
			Y: math.Sin(angle)*speed - e.cfg.DropletUpwardBias,
		},
		Gravity: e.cfg.DropletGravity,
		Drag:    e.cfg.DropletDrag,
		Radius:  physics.Lerp(e.cfg.DropletRadiusMin, e.cfg.DropletRadiusMax, e.rng.Float64()),
	})
}

func (e *Emitter) spawnSplat(x, y float64) {
	off := physics.Vec{
		X: (e.rng.Float64() - 0.5) * 2 * e.cfg.SplatScatter,
		Y: (e.rng.Float64() - 0.5) * e.cfg.SplatScatter,
	}
	radius := physics.Lerp(e.cfg.SplatRadiusMin, e.cfg.SplatRadiusMax, e.rng.Float64())
	pos := physics.Vec{X: x + off.X, Y: y + off.Y}

	splat := Splat{
		particle: particle{
			Pos:         pos,
			Lifetime:    physics.Lerp(e.cfg.SplatLifeMinMs, e.cfg.SplatLifeMaxMs, e.rng.Float64()),
			BaseOpacity: 1,
		},
		Radius: radius,
		Points: splatOutline(e.rng, radius),
	}
	e.pool.SpawnSplat(splat)

	if e.cfg.DripsPerSplatMax > 0 {
		for d := e.rng.Intn(e.cfg.DripsPerSplatMax + 1); d > 0; d-- {
			e.pool.SpawnDrip(DripTrail{
				particle: particle{
					Pos: physics.Vec{
						X: pos.X + (e.rng.Float64()-0.5)*radius,
						Y: pos.Y,
					},
					Lifetime:    physics.Lerp(e.cfg.DripLifeMinMs, e.cfg.DripLifeMaxMs, e.rng.Float64()),
					BaseOpacity: 1,
				},
				MaxLength:  physics.Lerp(e.cfg.DripMaxLenMin, e.cfg.DripMaxLenMax, e.rng.Float64()),
				GrowthRate: e.cfg.DripGrowthRate,
			})
		}
	}
}

// splatOutline generates an irregular closed blob polygon of 8-15 vertices
// at randomized radii around the origin. Offsets are relative to the splat
// center so the outline never changes after creation.
func splatOutline(rng *rand.Rand, radius float64) []physics.Vec {
	n := 8 + rng.Intn(8)
	points := make([]physics.Vec, n)
	for i := range points {
		vertAngle := float64(i) * 2 * math.Pi / float64(n)
		dist := radius * (0.6 + rng.Float64()*0.8)
		points[i] = physics.Vec{
			X: math.Cos(vertAngle) * dist,
			Y: math.Sin(vertAngle) * dist * 0.5, // splats flatten against the ground
		}
	}
	return points
}

// Tick ages overlay markers and drops the expired ones.
func (e *Emitter) Tick(deltaMs float64) {
	kept := e.markers[:0]
	for i := range e.markers {
		m := &e.markers[i]
		m.Age += deltaMs
		if m.Age >= m.Lifetime {
			continue
		}
		kept = append(kept, *m)
	}
	e.markers = kept
}

// Markers returns the live overlay markers. Read-only between ticks.
func (e *Emitter) Markers() []Marker {
	return e.markers
}

// ShakeOffset returns the current screen shake displacement, randomized per
// call within the decaying amplitude.
func (e *Emitter) ShakeOffset() (dx, dy float64) {
	amp := e.shake.Amplitude(e.pool.Now())
	if amp <= 0 {
		return 0, 0
	}
	return (e.rng.Float64() - 0.5) * 2 * amp, (e.rng.Float64() - 0.5) * 2 * amp
}
