package actor

import "github.com/go-gl/mathgl/mgl64"

// Transform represents a position and orientation in 2D space.
// It is a pure value type: several constraints read a body's transform
// within one step, so nothing here is shared or mutated in place.
type Transform struct {
	Position mgl64.Vec2
	Rotation float64 // radians
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec2{0, 0},
		Rotation: 0,
	}
}

// RotateVec rotates a local-space vector into world space.
func (t Transform) RotateVec(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Rotate2D(t.Rotation).Mul2x1(v)
}

// InverseRotateVec rotates a world-space vector into local space.
func (t Transform) InverseRotateVec(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Rotate2D(-t.Rotation).Mul2x1(v)
}

// LocalToGlobal maps a local-space point into world space.
func (t Transform) LocalToGlobal(p mgl64.Vec2) mgl64.Vec2 {
	return t.RotateVec(p).Add(t.Position)
}

// GlobalToLocal maps a world-space point into local space.
func (t Transform) GlobalToLocal(p mgl64.Vec2) mgl64.Vec2 {
	return t.InverseRotateVec(p.Sub(t.Position))
}
