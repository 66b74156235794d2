// Package effects implements the transient visual layer of the minigame:
// capped pools of juice droplets, splats and drip trails, the smash/bounce
// emitter that fills them, screen shake, and short-lived overlay markers.
package effects

// Config holds all tunable effect parameters.
// Lifetimes are in milliseconds, positions/speeds in logical pixels per frame.
type Config struct {
	// Hard per-kind population caps. Enforced on every spawn by evicting
	// oldest-first.
	MaxDroplets int
	MaxSplats   int
	MaxDrips    int

	// Droplet burst sizing per smash.
	ParticlesPerOrange   int
	MaxParticlesPerSmash int

	// Droplet kinematics.
	DropletGravity    float64
	DropletDrag       float64 // per-frame multiplicative velocity decay
	DropletSpeedMin   float64
	DropletSpeedMax   float64
	DropletUpwardBias float64
	DropletRadiusMin  float64
	DropletRadiusMax  float64
	DropletLifeMinMs  float64
	DropletLifeMaxMs  float64

	// Splat blobs left behind on a smash.
	SplatsPerOrangeMin int
	SplatsPerOrangeMax int
	SplatRadiusMin     float64
	SplatRadiusMax     float64
	SplatScatter       float64 // max offset from smash center
	SplatLifeMinMs     float64
	SplatLifeMaxMs     float64

	// Drip trails crawling down from splats.
	DripsPerSplatMax int
	DripMaxLenMin    float64
	DripMaxLenMax    float64
	DripGrowthRate   float64 // length gained per frame
	DripLifeMinMs    float64
	DripLifeMaxMs    float64

	// Screen shake pulse on smash.
	ShakeDurationMs float64
	ShakeIntensity  float64 // max offset in logical pixels

	// Overlay markers ("+N", splash) on scored bounces.
	MarkerLifetimeMs float64
}

// DefaultConfig returns the canonical effect tuning.
func DefaultConfig() Config {
	return Config{
		MaxDroplets: 2000,
		MaxSplats:   80,
		MaxDrips:    100,

		ParticlesPerOrange:   40,
		MaxParticlesPerSmash: 160,

		DropletGravity:    0.35,
		DropletDrag:       0.96,
		DropletSpeedMin:   1.5,
		DropletSpeedMax:   7.0,
		DropletUpwardBias: 2.2,
		DropletRadiusMin:  1.0,
		DropletRadiusMax:  3.0,
		DropletLifeMinMs:  600,
		DropletLifeMaxMs:  1800,

		SplatsPerOrangeMin: 2,
		SplatsPerOrangeMax: 6,
		SplatRadiusMin:     6,
		SplatRadiusMax:     16,
		SplatScatter:       30,
		SplatLifeMinMs:     6_000,
		SplatLifeMaxMs:     30_000,

		DripsPerSplatMax: 3,
		DripMaxLenMin:    8,
		DripMaxLenMax:    26,
		DripGrowthRate:   0.25,
		DripLifeMinMs:    10_000,
		DripLifeMaxMs:    18_000,

		ShakeDurationMs: 120,
		ShakeIntensity:  4,

		MarkerLifetimeMs: 800,
	}
}
