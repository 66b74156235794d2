package loop

import (
	"github.com/tomz197/oranges/internal/physics"
	"github.com/tomz197/oranges/internal/sim"
)

// updateTitleState handles the title screen.
func updateTitleState(state *State) {
	if state.Input.Space || state.Input.Enter {
		startGame(state)
	}
}

// startGame begins a session with a handful of oranges already in the air.
func startGame(state *State) {
	bounds := state.Sim.Bounds()
	for i := 0; i < initialOranges; i++ {
		x := bounds.Width * float64(i+1) / float64(initialOranges+1)
		y := 40 + float64(i%3)*30
		state.Sim.SpawnBody(x, y)
	}
	state.GameState = GameStatePlaying
}

// updatePlayingState advances the crate drag, keyboard actions and the
// simulation by one frame.
func updatePlayingState(state *State) {
	downEdge := state.PointerDown && !state.prevDown

	// Crate drag lifecycle. A press that starts inside the crate drags the
	// crate; everything else goes to the simulation pointer.
	if downEdge && state.PointerValid && state.Crate.Contains(state.Pointer.X, state.Pointer.Y) {
		state.DraggingCrate = true
		state.crateGrab = physics.Vec{
			X: state.Pointer.X - state.Crate.Left,
			Y: state.Pointer.Y - state.Crate.Top,
		}
		state.Controller.StartDrag(state.Crate)
	}

	if state.DraggingCrate {
		if state.PointerDown {
			moveCrate(state)
			state.Controller.UpdateRect(state.Crate)
		} else {
			state.DraggingCrate = false
			state.Controller.EndDrag()
		}
	}

	if state.Input.Space && !state.prevSpace && state.PointerValid {
		state.Sim.SpawnBody(state.Pointer.X, 30)
	}
	if state.Input.Claim && !state.prevClaim {
		state.Sim.Claim()
	}
	state.prevSpace = state.Input.Space
	state.prevClaim = state.Input.Claim

	in := sim.Input{
		PointerValid: state.PointerValid,
		Pointer:      state.Pointer,
		PointerDown:  state.PointerDown && !state.DraggingCrate,
	}
	state.Sim.Tick(state.Delta.Seconds()*1000, in)
}

// moveCrate follows the pointer with the grab offset, clamped to the play area.
func moveCrate(state *State) {
	bounds := state.Sim.Bounds()
	w := state.Crate.Width()
	h := state.Crate.Height()

	left := physics.Clamp(state.Pointer.X-state.crateGrab.X, 0, bounds.Width-w)
	top := physics.Clamp(state.Pointer.Y-state.crateGrab.Y, 0, bounds.Height-h)

	state.Crate = physics.Rect{
		Left:   left,
		Top:    top,
		Right:  left + w,
		Bottom: top + h,
	}
}
