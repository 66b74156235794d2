package sim

import "github.com/tomz197/oranges/internal/physics"

// Controller is the explicit drag-lifecycle surface the host's window layer
// drives. The simulation samples the rectangle once per tick; there is no
// ambient global state.
type Controller struct {
	sim *Simulation
}

// Controller returns the drag controller for this simulation.
func (s *Simulation) Controller() *Controller {
	return &Controller{sim: s}
}

// StartDrag begins a drag with the crate's current bounding rectangle.
// Starting a drag arms the spawn-while-dragging behavior and clears the
// previous-frame bottom edge so the first frame cannot register a slam.
func (c *Controller) StartDrag(r physics.Rect) {
	s := c.sim
	s.dragging = true
	s.dragRect = r
	s.smash.havePrev = false
	s.lastDragSpawnAt = s.now
}

// UpdateRect reports the crate's bounding rectangle for the current frame.
func (c *Controller) UpdateRect(r physics.Rect) {
	c.sim.dragRect = r
}

// EndDrag finishes the drag. In-flight smash gating state is kept: lifting
// happened or it didn't, regardless of drag boundaries.
func (c *Controller) EndDrag() {
	s := c.sim
	s.dragging = false
	s.smash.havePrev = false
}
