package actor

import "github.com/go-gl/mathgl/mgl64"

// 2D cross products are not part of mathgl; the solver needs them for
// every Jacobian row.

// Cross returns the z component of the 3D cross product of two 2D vectors.
func Cross(a, b mgl64.Vec2) float64 {
	return a.X()*b.Y() - a.Y()*b.X()
}

// CrossScalar returns the 2D cross product of a scalar (z-axis angular
// quantity) with a vector: s × v = (-s·vy, s·vx).
func CrossScalar(s float64, v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-s * v.Y(), s * v.X()}
}

// Perp returns the counter-clockwise perpendicular of v.
func Perp(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-v.Y(), v.X()}
}
