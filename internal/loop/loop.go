// Package loop provides the terminal game loop: input, simulation tick and
// half-block rendering at a fixed frame rate.
package loop

import (
	"bufio"
	"io"
	"math"
	"time"

	"github.com/tomz197/oranges/internal/draw"
	"github.com/tomz197/oranges/internal/input"
	"github.com/tomz197/oranges/internal/physics"
	"github.com/tomz197/oranges/internal/sim"
)

// Run starts the main game loop with the standard Input → Update → Draw cycle.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	state := NewState(opts)
	stream := input.StartStream(r)

	draw.HideCursor(w)
	draw.EnableMouse(w)
	defer func() {
		draw.DisableMouse(w)
		draw.ShowCursor(w)
	}()
	draw.ClearScreen(w)

	termWidth, termHeight, err := state.termSizeFunc()
	if err != nil {
		return err
	}
	canvas := draw.NewScaledCanvas(termWidth, termHeight, logicalWidth, logicalHeight)
	updateScreen(state, canvas)

	// All frame output goes through one chunked writer so the per-frame
	// burst of cursor moves and HUD text reaches SSH clients in MTU-sized
	// writes instead of dozens of tiny ones.
	cw := draw.NewChunkWriter(w, 0, 0)

	lastTime := time.Now()

	for state.Running {
		frameStart := time.Now()
		state.Delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		// ===== INPUT PHASE =====
		processInput(state, stream, canvas)

		// ===== UPDATE PHASE =====
		if err := updateScreen(state, canvas); err != nil {
			return err
		}

		switch state.GameState {
		case GameStateTitle:
			updateTitleState(state)
		case GameStatePlaying:
			updatePlayingState(state)
		}

		// ===== DRAW PHASE =====
		if err := drawFrame(state, cw, canvas); err != nil {
			return err
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < targetFrameTime {
			time.Sleep(targetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(w)
	return nil
}

// processInput reads pending input and maps the mouse into logical coordinates.
func processInput(state *State, stream *input.Stream, canvas *draw.Canvas) {
	inp := input.ReadInput(stream)
	state.prevDown = state.PointerDown
	state.Input = inp

	if inp.Quit {
		state.Running = false
	}

	if inp.Mouse.Valid {
		// Mouse coordinates are 0-based terminal cells over the whole
		// terminal; shift into the centered canvas area first.
		col := inp.Mouse.X + 1 - canvas.OffsetCol()
		row := inp.Mouse.Y + 1 - canvas.OffsetRow()
		x, y := canvas.TerminalToLogical(col, row)
		state.Pointer = physics.Vec{
			X: physics.Clamp(x, 0, logicalWidth),
			Y: physics.Clamp(y, 0, logicalHeight),
		}
		state.PointerValid = true
		state.PointerDown = inp.Mouse.Down
	}
}

// updateScreen checks for terminal resize and updates canvas scaling and
// centering offsets.
func updateScreen(state *State, canvas *draw.Canvas) error {
	termWidth, termHeight, err := state.termSizeFunc()
	if err != nil {
		return err
	}

	renderWidth := min(termWidth, maxTermWidth)
	renderHeight := min(termHeight, maxTermHeight)
	canvas.Resize(renderWidth, renderHeight)
	canvas.SetOffset((termWidth-renderWidth)/2, (termHeight-renderHeight)/2)

	return nil
}

// drawFrame clears the screen and draws the whole scene. Everything is
// buffered in cw and flushed once at the end of the frame.
func drawFrame(state *State, cw *draw.ChunkWriter, canvas *draw.Canvas) error {
	draw.ClearScreen(cw)
	canvas.Clear()

	snap := state.Sim.Snapshot()

	// Shake displaces the rendered frame in whole terminal cells.
	scaleX := float64(canvas.TerminalWidth()) / canvas.LogicalWidth()
	scaleY := float64(canvas.TerminalHeight()*2) / canvas.LogicalHeight()
	canvas.SetShake(
		int(math.Round(snap.ShakeX*scaleX)),
		int(math.Round(snap.ShakeY*scaleY/2)),
	)

	drawScene(state, canvas, snap)

	canvas.Render(cw)
	canvas.RenderBorder(cw)

	drawMarkers(cw, canvas, snap)
	drawUI(state, cw, canvas, snap)

	return cw.Flush()
}

// drawScene draws the floor, crate, bodies and particles onto the canvas.
func drawScene(state *State, canvas *draw.Canvas, snap sim.Snapshot) {
	floorY := state.Sim.Bounds().FloorY()
	canvas.DrawLine(draw.Point{X: 0, Y: floorY}, draw.Point{X: logicalWidth, Y: floorY})

	drawCrate(state, canvas)

	for _, b := range snap.Bodies {
		radius := b.Radius
		if b.SmashProgress > 0 {
			// Squash toward the ground while lingering.
			radius *= 1 - 0.7*b.SmashProgress
		}
		canvas.DrawCircle(b.Pos.X, b.Pos.Y, radius, true)
	}

	for i := range snap.Splats {
		s := &snap.Splats[i]
		opacity := s.Opacity()
		if opacity <= 0.1 {
			continue
		}
		points := canvas.BorrowPoints(len(s.Points))
		for j, p := range s.Points {
			points[j] = draw.Point{X: s.Pos.X + p.X, Y: s.Pos.Y + p.Y}
		}
		canvas.DrawPolygon(points, opacity > 0.5)
	}

	for i := range snap.Drips {
		d := &snap.Drips[i]
		if d.Opacity() <= 0.15 {
			continue
		}
		canvas.DrawLine(
			draw.Point{X: d.Pos.X, Y: d.Pos.Y},
			draw.Point{X: d.Pos.X, Y: d.Pos.Y + d.Length},
		)
	}

	for i := range snap.Droplets {
		dr := &snap.Droplets[i]
		if dr.Opacity() <= 0.2 {
			continue
		}
		canvas.SetFloat(dr.Pos.X, dr.Pos.Y)
	}

	// Paddle cursor: a short horizontal bat under the pointer.
	if state.PointerValid && !state.DraggingCrate {
		half := state.Sim.Tuning().PaddleRadius
		canvas.DrawLine(
			draw.Point{X: snap.Paddle.Pos.X - half, Y: snap.Paddle.Pos.Y},
			draw.Point{X: snap.Paddle.Pos.X + half, Y: snap.Paddle.Pos.Y},
		)
	}
}

// drawCrate draws the draggable crate as a box outline.
func drawCrate(state *State, canvas *draw.Canvas) {
	r := state.Crate
	points := canvas.BorrowPoints(4)
	points[0] = draw.Point{X: r.Left, Y: r.Top}
	points[1] = draw.Point{X: r.Right, Y: r.Top}
	points[2] = draw.Point{X: r.Right, Y: r.Bottom}
	points[3] = draw.Point{X: r.Left, Y: r.Bottom}
	canvas.DrawPolygon(points, state.DraggingCrate)
}

// drawMarkers overlays floating score and splash text at logical positions.
func drawMarkers(cw *draw.ChunkWriter, canvas *draw.Canvas, snap sim.Snapshot) {
	for i := range snap.Markers {
		m := &snap.Markers[i]
		if m.Opacity() <= 0.2 {
			continue
		}
		col, row := canvas.LogicalToTerminal(m.Pos.X, m.Pos.Y-m.Rise())
		col += canvas.OffsetCol()
		row += canvas.OffsetRow()
		if col < 1 || row < 1 {
			continue
		}
		cw.WriteAt(col, row, markerText(m))
	}
}
