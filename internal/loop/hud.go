package loop

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/oranges/internal/draw"
	"github.com/tomz197/oranges/internal/effects"
	"github.com/tomz197/oranges/internal/sim"
)

const meterWidth = 20

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	meterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	readyStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")).Blink(true)
	scoreStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	splashStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

// markerText renders one overlay marker with its style.
func markerText(m *effects.Marker) string {
	if m.Kind == effects.MarkerScore {
		return scoreStyle.Render(m.Text)
	}
	return splashStyle.Render("*")
}

// drawUI draws the overlay UI for the current game state.
func drawUI(state *State, cw *draw.ChunkWriter, canvas *draw.Canvas, snap sim.Snapshot) {
	termWidth := canvas.TerminalWidth()
	termHeight := canvas.TerminalHeight()
	offCol := canvas.OffsetCol()
	offRow := canvas.OffsetRow()
	centerX := termWidth/2 + offCol
	centerY := termHeight/2 + offRow

	switch state.GameState {
	case GameStateTitle:
		drawTitleScreen(cw, centerX, centerY)
	case GameStatePlaying:
		drawPlayingHUD(cw, snap, termWidth, offCol, offRow)
	}
}

// drawTitleScreen draws the title and controls.
func drawTitleScreen(cw *draw.ChunkWriter, centerX, centerY int) {
	title := "O R A N G E   S M A S H"
	cw.WriteAt(centerX-lipgloss.Width(title)/2, centerY-2, titleStyle.Render(title))

	subtitle := "Press SPACE to Start"
	cw.WriteAt(centerX-len(subtitle)/2, centerY+1, promptStyle.Render(subtitle))

	controls := "Mouse: bounce oranges, drag the crate up and slam it down. SPACE spawn, C claim, Q quit"
	cw.WriteAt(centerX-len(controls)/2, centerY+4, promptStyle.Render(controls))
}

// drawPlayingHUD draws the juice meter and session counters.
func drawPlayingHUD(cw *draw.ChunkWriter, snap sim.Snapshot, termWidth, offCol, offRow int) {
	filled := snap.FillPct * meterWidth
	full := int(filled)
	bar := strings.Repeat(string(draw.BlockFull), full)
	if full < meterWidth {
		// The boundary cell shades in with the fractional fill.
		bar += string(draw.ShadeLevel(filled-float64(full))) +
			strings.Repeat(string(draw.BlockLight), meterWidth-full-1)
	}

	meter := fmt.Sprintf("Juice [%s] %d/%d", bar, snap.RawScore, snap.RequiredScore)
	cw.WriteAt(2+offCol, 1+offRow, meterStyle.Render(meter))

	if snap.FillPct >= 1 {
		ready := "READY - press C to claim"
		cw.WriteAt(2+offCol, 2+offRow, readyStyle.Render(ready))
	}

	right := fmt.Sprintf("Claims: %d", snap.Claims)
	if snap.Streak > 1 {
		right = fmt.Sprintf("Streak: x%d  %s", snap.Streak, right)
	}
	cw.WriteAt(termWidth-len(right)-1+offCol, 1+offRow, scoreStyle.Render(right))
}
