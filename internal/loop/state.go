package loop

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/oranges/internal/draw"
	"github.com/tomz197/oranges/internal/input"
	"github.com/tomz197/oranges/internal/physics"
	"github.com/tomz197/oranges/internal/sim"
	"github.com/tomz197/oranges/internal/storage"
)

// GameState represents the current phase of the session.
type GameState int

const (
	GameStateTitle   GameState = iota // Title screen
	GameStatePlaying                  // Active play
)

// State holds all session state for the game loop.
type State struct {
	Sim        *sim.Simulation
	Controller *sim.Controller
	GameState  GameState
	Running    bool

	Input input.Input
	Delta time.Duration

	// Crate position in logical coordinates. The crate is the draggable
	// smash tool; crateGrab is the pointer offset from the crate's top-left
	// while it is being dragged.
	Crate         physics.Rect
	DraggingCrate bool
	crateGrab     physics.Vec

	// Pointer position in logical coordinates, mapped from the last mouse
	// event through the canvas scale.
	Pointer      physics.Vec
	PointerValid bool
	PointerDown  bool
	prevDown     bool
	prevSpace    bool
	prevClaim    bool

	termSizeFunc draw.TermSizeFunc
}

// Options configures a game loop session.
type Options struct {
	TermSizeFunc draw.TermSizeFunc // Defaults to os.Stdout size
	Logger       *log.Logger       // Optional debug logger
	Store        storage.Store     // Optional score persistence
	Rand         *rand.Rand        // Optional seeded source
}

// NewState creates a session state with a fresh simulation.
func NewState(opts Options) *State {
	bounds := sim.Bounds{
		Width:       logicalWidth,
		Height:      logicalHeight,
		FloorOffset: floorOffset,
	}

	var simOpts []sim.Option
	if opts.Logger != nil {
		simOpts = append(simOpts, sim.WithLogger(opts.Logger))
	}
	if opts.Store != nil {
		simOpts = append(simOpts, sim.WithStore(opts.Store))
	}
	if opts.Rand != nil {
		simOpts = append(simOpts, sim.WithRand(opts.Rand))
	}

	s := sim.New(sim.DefaultTuning(), bounds, simOpts...)

	sizeFunc := opts.TermSizeFunc
	if sizeFunc == nil {
		sizeFunc = draw.DefaultTermSizeFunc
	}

	return &State{
		Sim:        s,
		Controller: s.Controller(),
		GameState:  GameStateTitle,
		Running:    true,
		Crate: physics.Rect{
			Left:   logicalWidth - crateWidth - 30,
			Top:    30,
			Right:  logicalWidth - 30,
			Bottom: 30 + crateHeight,
		},
		termSizeFunc: sizeFunc,
	}
}
