package physics

import "testing"

func TestCircleRectOverlap(t *testing.T) {
	r := Rect{Left: 10, Top: 10, Right: 50, Bottom: 30}

	// Center inside the rect.
	if !CircleRectOverlap(20, 20, 1, r) {
		t.Fatalf("circle inside rect should overlap")
	}
	// Touching an edge from the outside.
	if !CircleRectOverlap(55, 20, 5, r) {
		t.Fatalf("circle touching right edge should overlap")
	}
	// Near a corner but too far along the diagonal.
	if CircleRectOverlap(54, 34, 5, r) {
		t.Fatalf("circle outside corner radius should not overlap")
	}
	// Clearly away.
	if CircleRectOverlap(100, 100, 5, r) {
		t.Fatalf("distant circle should not overlap")
	}
}

func TestCirclesOverlap(t *testing.T) {
	if !CirclesOverlap(0, 0, 5, 8, 0, 4) {
		t.Fatalf("intersecting circles should overlap")
	}
	// Tangent circles are not in contact.
	if CirclesOverlap(0, 0, 5, 9, 0, 4) {
		t.Fatalf("tangent circles should not overlap")
	}
	if CirclesOverlap(0, 0, 5, 20, 0, 4) {
		t.Fatalf("distant circles should not overlap")
	}
	if got := (Vec{X: 3, Y: 4}).Len(); got != 5 {
		t.Fatalf("Len(3,4) = %f, want 5", got)
	}
}

func TestRectHelpers(t *testing.T) {
	r := Rect{Left: 0, Top: 0, Right: 40, Bottom: 20}

	if c := r.Center(); c.X != 20 || c.Y != 10 {
		t.Fatalf("center = %+v, want (20, 10)", c)
	}
	if bc := r.BottomCenter(); bc.X != 20 || bc.Y != 20 {
		t.Fatalf("bottom center = %+v, want (20, 20)", bc)
	}
	if r.Empty() {
		t.Fatalf("non-degenerate rect reported empty")
	}
	if !(Rect{Left: 5, Top: 5, Right: 5, Bottom: 9}).Empty() {
		t.Fatalf("zero-width rect should be empty")
	}

	moved := r.Translate(3, -2)
	if moved.Left != 3 || moved.Top != -2 || moved.Right != 43 || moved.Bottom != 18 {
		t.Fatalf("translate result = %+v", moved)
	}
}

func TestClampAndLerp(t *testing.T) {
	if got := Clamp(1.5, 0, 1); got != 1 {
		t.Fatalf("Clamp(1.5, 0, 1) = %f, want 1", got)
	}
	if got := Clamp(-0.2, 0, 1); got != 0 {
		t.Fatalf("Clamp(-0.2, 0, 1) = %f, want 0", got)
	}
	if got := Lerp(10, 20, 0.5); got != 15 {
		t.Fatalf("Lerp(10, 20, 0.5) = %f, want 15", got)
	}
}
