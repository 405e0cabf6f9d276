package actor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestAABB_ContainsPoint(t *testing.T) {
	aabb := AABB{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{2, 2}}

	testCases := []struct {
		name     string
		point    mgl64.Vec2
		expected bool
	}{
		{"inside", mgl64.Vec2{1, 1}, true},
		{"on min corner", mgl64.Vec2{0, 0}, true},
		{"on max corner", mgl64.Vec2{2, 2}, true},
		{"outside on x", mgl64.Vec2{3, 1}, false},
		{"outside on y", mgl64.Vec2{1, -1}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := aabb.ContainsPoint(tc.point); got != tc.expected {
				t.Errorf("ContainsPoint(%v) = %v, expected %v", tc.point, got, tc.expected)
			}
		})
	}
}

func TestAABB_Overlaps(t *testing.T) {
	base := AABB{Min: mgl64.Vec2{0, 0}, Max: mgl64.Vec2{2, 2}}

	testCases := []struct {
		name     string
		other    AABB
		expected bool
	}{
		{"overlapping", AABB{Min: mgl64.Vec2{1, 1}, Max: mgl64.Vec2{3, 3}}, true},
		{"touching edge", AABB{Min: mgl64.Vec2{2, 0}, Max: mgl64.Vec2{4, 2}}, true},
		{"contained", AABB{Min: mgl64.Vec2{0.5, 0.5}, Max: mgl64.Vec2{1.5, 1.5}}, true},
		{"separated on x", AABB{Min: mgl64.Vec2{3, 0}, Max: mgl64.Vec2{4, 2}}, false},
		{"separated on y", AABB{Min: mgl64.Vec2{0, 3}, Max: mgl64.Vec2{2, 4}}, false},
		{"diagonal, no overlap", AABB{Min: mgl64.Vec2{3, 3}, Max: mgl64.Vec2{4, 4}}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := base.Overlaps(tc.other); got != tc.expected {
				t.Errorf("Overlaps(%v) = %v, expected %v", tc.other, got, tc.expected)
			}
			// Symmetric
			if got := tc.other.Overlaps(base); got != tc.expected {
				t.Errorf("Overlaps is not symmetric for %v", tc.other)
			}
		})
	}
}
