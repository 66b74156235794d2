package loop

import "time"

const targetFPS = 60
const targetFrameTime = time.Second / targetFPS

// Logical resolution - the simulation runs in these dimensions regardless
// of terminal size. Height is in sub-pixels (two per terminal row).
const (
	logicalWidth  = 800.0
	logicalHeight = 480.0
	floorOffset   = 24.0 // Distance of the floor above the bottom edge
)

// Maximum terminal render resolution. Larger terminals get a centered,
// bordered play area instead of stretching the simulation.
const (
	maxTermWidth  = 200
	maxTermHeight = 60
)

// Crate - the draggable smash tool.
const (
	crateWidth  = 120.0
	crateHeight = 70.0
)

// Orange spawning on the title screen and at session start.
const initialOranges = 6
