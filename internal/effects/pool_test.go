package effects

import (
	"testing"

	"github.com/tomz197/oranges/internal/physics"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.MaxDroplets = 10
	cfg.MaxSplats = 4
	cfg.MaxDrips = 4
	return cfg
}

func TestDropletCapEvictsOldestFirst(t *testing.T) {
	p := NewPool(testConfig())

	for i := 0; i < 25; i++ {
		p.SpawnDroplet(Droplet{particle: particle{Lifetime: 1000}})
		// Advance the clock so every droplet has a distinct CreatedAt.
		p.Tick(1, 1000)
		if got := len(p.Droplets()); got > 10 {
			t.Fatalf("droplet count %d exceeds cap 10 after spawn %d", got, i)
		}
	}

	droplets := p.Droplets()
	if len(droplets) != 10 {
		t.Fatalf("droplet count = %d, want 10", len(droplets))
	}
	// Retained entities must be the newest: CreatedAt strictly increasing
	// and the oldest survivor newer than all evicted ones.
	for i := 1; i < len(droplets); i++ {
		if droplets[i].CreatedAt <= droplets[i-1].CreatedAt {
			t.Fatalf("droplets out of creation order at %d: %f <= %f",
				i, droplets[i].CreatedAt, droplets[i-1].CreatedAt)
		}
	}
	if droplets[0].CreatedAt < 15 {
		t.Fatalf("oldest survivor createdAt = %f, want the 15 oldest evicted", droplets[0].CreatedAt)
	}
}

func TestSplatAndDripCaps(t *testing.T) {
	p := NewPool(testConfig())

	for i := 0; i < 12; i++ {
		p.SpawnSplat(Splat{particle: particle{Lifetime: 10_000}})
		p.SpawnDrip(DripTrail{particle: particle{Lifetime: 10_000}, MaxLength: 10, GrowthRate: 0.2})
		if len(p.Splats()) > 4 || len(p.Drips()) > 4 {
			t.Fatalf("cap violated: splats=%d drips=%d", len(p.Splats()), len(p.Drips()))
		}
	}
}

func TestOpacityMonotonicallyDecreases(t *testing.T) {
	p := NewPool(testConfig())
	p.SpawnDroplet(Droplet{particle: particle{Lifetime: 500}, Drag: 1})

	prev := 2.0
	for i := 0; i < 40 && len(p.Droplets()) > 0; i++ {
		o := p.Droplets()[0].Opacity()
		if o > prev {
			t.Fatalf("opacity increased: %f -> %f at tick %d", prev, o, i)
		}
		prev = o
		p.Tick(16, 1000)
	}
	if len(p.Droplets()) != 0 {
		t.Fatalf("droplet should expire after its 500ms lifetime")
	}
}

func TestDropletClampsToFloorWithoutRebound(t *testing.T) {
	p := NewPool(testConfig())
	p.SpawnDroplet(Droplet{
		particle: particle{Pos: physics.Vec{X: 50, Y: 90}, Lifetime: 5000},
		Vel:      physics.Vec{X: 1, Y: 5},
		Gravity:  0.5,
		Drag:     0.98,
	})

	const floorY = 100.0
	for i := 0; i < 20; i++ {
		p.Tick(16, floorY)
	}
	if len(p.Droplets()) != 1 {
		t.Fatalf("droplet removed early")
	}
	d := p.Droplets()[0]
	if d.Pos.Y != floorY {
		t.Fatalf("landed droplet y = %f, want clamped to %f", d.Pos.Y, floorY)
	}
	if d.Vel.X != 0 || d.Vel.Y != 0 {
		t.Fatalf("landed droplet still moving: %+v", d.Vel)
	}
}

func TestDripGrowsToMaxAndDiesAtFloor(t *testing.T) {
	p := NewPool(testConfig())
	p.SpawnDrip(DripTrail{
		particle:   particle{Pos: physics.Vec{X: 10, Y: 10}, Lifetime: 60_000},
		MaxLength:  5,
		GrowthRate: 1,
	})

	prevLen := 0.0
	for i := 0; i < 10; i++ {
		p.Tick(frameMs, 1000)
		d := p.Drips()[0]
		if d.Length < prevLen {
			t.Fatalf("drip length shrank: %f -> %f", prevLen, d.Length)
		}
		prevLen = d.Length
	}
	if p.Drips()[0].Length != 5 {
		t.Fatalf("drip length = %f, want capped at 5", p.Drips()[0].Length)
	}

	// Crawling down to the floor removes the trail even mid-lifetime.
	for i := 0; i < 2000 && len(p.Drips()) > 0; i++ {
		p.Tick(frameMs, 30)
	}
	if len(p.Drips()) != 0 {
		t.Fatalf("drip should be removed at the floor boundary")
	}
}
