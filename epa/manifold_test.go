package epa

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestEPA_BoxOnBox_TwoContactPoints(t *testing.T) {
	// Two axis-aligned boxes with a flat vertical overlap: clipping the
	// incident edge yields the two points a stable flat contact needs
	a := createBoxBody(mgl64.Vec2{0, 0}, 2, 2)
	b := createBoxBody(mgl64.Vec2{1.5, 0.1}, 2, 2)

	manifold, err := EPA(a, b, detect(t, a, b))
	if err != nil {
		t.Fatalf("EPA failed: %v", err)
	}

	if len(manifold.Points) != 2 {
		t.Fatalf("Expected 2 contact points for flat box contact, got %d", len(manifold.Points))
	}

	for i, p := range manifold.Points {
		if p.Depth < 0 {
			t.Errorf("Point %d has negative depth %v", i, p.Depth)
		}
		// Contact points lie in the overlap band between the faces
		if p.Position.X() < 0.4 || p.Position.X() > 1.1 {
			t.Errorf("Point %d outside the overlap region: %v", i, p.Position)
		}
	}
}

func TestEPA_CircleOnBox_SingleContactPoint(t *testing.T) {
	box := createBoxBody(mgl64.Vec2{0, 0}, 2, 2)
	circle := createCircleBody(mgl64.Vec2{0, 1.5}, 1.0)

	manifold, err := EPA(box, circle, detect(t, box, circle))
	if err != nil {
		t.Fatalf("EPA failed: %v", err)
	}

	if len(manifold.Points) != 1 {
		t.Fatalf("Expected 1 contact point for circle contact, got %d", len(manifold.Points))
	}

	point := manifold.Points[0]
	if math.Abs(point.Depth-0.5) > 0.01 {
		t.Errorf("Expected depth near 0.5, got %v", point.Depth)
	}
	// Contact sits between the box top (y=1) and the circle bottom (y=0.5)
	if point.Position.Y() < 0.4 || point.Position.Y() > 1.1 {
		t.Errorf("Contact point outside the overlap band: %v", point.Position)
	}
}

func TestEPA_ManifoldOrientation(t *testing.T) {
	a := createBoxBody(mgl64.Vec2{0, 0}, 2, 2)
	b := createBoxBody(mgl64.Vec2{0.3, 1.6}, 2, 2)

	manifold, err := EPA(a, b, detect(t, a, b))
	if err != nil {
		t.Fatalf("EPA failed: %v", err)
	}

	if manifold.BodyA != a || manifold.BodyB != b {
		t.Error("Manifold bodies do not match the query order")
	}
	if manifold.Normal.Y() <= 0 {
		t.Errorf("Expected normal pointing from A toward B (up), got %v", manifold.Normal)
	}

	// Tangent is perpendicular to the normal
	if math.Abs(manifold.Normal.Dot(manifold.Tangent)) > 1e-12 {
		t.Errorf("Expected perpendicular tangent, dot=%v", manifold.Normal.Dot(manifold.Tangent))
	}
}

func TestEPA_StackedBoxes(t *testing.T) {
	// Vertical head-on stack, the resting contact case
	ground := createBoxBody(mgl64.Vec2{0, 0}, 10, 2)
	box := createBoxBody(mgl64.Vec2{0, 1.9}, 2, 2)

	manifold, err := EPA(ground, box, detect(t, ground, box))
	if err != nil {
		t.Fatalf("EPA failed: %v", err)
	}

	if manifold.Normal.Sub(mgl64.Vec2{0, 1}).Len() > 1e-6 {
		t.Errorf("Expected upward normal, got %v", manifold.Normal)
	}
	if len(manifold.Points) != 2 {
		t.Errorf("Expected 2 contact points for a resting box, got %d", len(manifold.Points))
	}
	if math.Abs(manifold.PenetrationDepth()-0.1) > 1e-6 {
		t.Errorf("Expected penetration 0.1, got %v", manifold.PenetrationDepth())
	}
}
