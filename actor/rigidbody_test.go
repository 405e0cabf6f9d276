package actor

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNewRigidBody_Dynamic(t *testing.T) {
	shape := NewBox(2.0, 2.0)
	rb := NewRigidBody(Transform{}, shape, BodyTypeDynamic, 2.0)

	// mass = density * area
	if math.Abs(rb.Mass()-8.0) > 1e-12 {
		t.Errorf("Expected mass 8, got %v", rb.Mass())
	}
	if rb.InverseMass() == 0 {
		t.Error("Dynamic body must have a non-zero inverse mass")
	}
	if rb.Inertia() <= 0 || rb.InverseInertia() <= 0 {
		t.Error("Dynamic body must have positive inertia")
	}
}

func TestNewRigidBody_Static(t *testing.T) {
	shape := NewBox(10.0, 1.0)
	rb := NewRigidBody(Transform{}, shape, BodyTypeStatic, 0.0)

	if rb.Mass() != 0 || rb.InverseMass() != 0 {
		t.Errorf("Static body must have zero mass, got mass=%v invMass=%v", rb.Mass(), rb.InverseMass())
	}
	if rb.InverseInertia() != 0 {
		t.Errorf("Static body must have zero inverse inertia, got %v", rb.InverseInertia())
	}
}

func TestRigidBody_SetMassZeroMakesImmovable(t *testing.T) {
	rb := NewRigidBody(Transform{}, NewCircle(1.0), BodyTypeDynamic, 1.0)
	rb.SetMass(0)

	if rb.InverseMass() != 0 || rb.InverseInertia() != 0 {
		t.Error("Zero mass must zero both inverses")
	}
}

func TestRigidBody_IntegrateForces(t *testing.T) {
	t.Run("gravity accelerates a dynamic body", func(t *testing.T) {
		rb := NewRigidBody(Transform{}, NewCircle(1.0), BodyTypeDynamic, 1.0)
		gravity := mgl64.Vec2{0, -10}
		dt := 0.1

		rb.IntegrateForces(dt, gravity)

		expected := mgl64.Vec2{0, -1}
		if rb.Velocity.Sub(expected).Len() > 1e-12 {
			t.Errorf("Expected velocity %v, got %v", expected, rb.Velocity)
		}
	})

	t.Run("static body ignores gravity and forces", func(t *testing.T) {
		rb := NewRigidBody(Transform{}, NewCircle(1.0), BodyTypeStatic, 0.0)
		rb.AddForce(mgl64.Vec2{100, 0})
		rb.AddTorque(50)

		rb.IntegrateForces(0.1, mgl64.Vec2{0, -10})

		if rb.Velocity != (mgl64.Vec2{}) || rb.AngularVelocity != 0 {
			t.Errorf("Static body moved: velocity=%v angular=%v", rb.Velocity, rb.AngularVelocity)
		}
	})

	t.Run("applied force accelerates by F/m", func(t *testing.T) {
		rb := NewRigidBody(Transform{}, NewBox(1, 1), BodyTypeDynamic, 4.0)
		rb.AddForce(mgl64.Vec2{8, 0})

		rb.IntegrateForces(0.5, mgl64.Vec2{})

		// a = F/m = 8/4 = 2, v = a*dt = 1
		expected := mgl64.Vec2{1, 0}
		if rb.Velocity.Sub(expected).Len() > 1e-12 {
			t.Errorf("Expected velocity %v, got %v", expected, rb.Velocity)
		}
	})
}

func TestRigidBody_IntegratePositions(t *testing.T) {
	rb := NewRigidBody(Transform{}, NewCircle(1.0), BodyTypeDynamic, 1.0)
	rb.Velocity = mgl64.Vec2{2, 0}
	rb.AngularVelocity = 1.0
	rb.AddForce(mgl64.Vec2{1, 1})

	rb.IntegratePositions(0.5)

	expected := mgl64.Vec2{1, 0}
	if rb.Transform.Position.Sub(expected).Len() > 1e-12 {
		t.Errorf("Expected position %v, got %v", expected, rb.Transform.Position)
	}
	if math.Abs(rb.Transform.Rotation-0.5) > 1e-12 {
		t.Errorf("Expected rotation 0.5, got %v", rb.Transform.Rotation)
	}

	// AABB follows the body
	if !rb.Shape.GetAABB().ContainsPoint(expected) {
		t.Error("AABB was not refreshed after integration")
	}

	// Force accumulators are cleared; a second integration without new
	// forces must not accelerate
	velocityBefore := rb.Velocity
	rb.IntegrateForces(0.5, mgl64.Vec2{})
	if rb.Velocity != velocityBefore {
		t.Error("Expected force accumulators cleared after position integration")
	}
}

func TestRigidBody_SupportWorld(t *testing.T) {
	t.Run("translation offsets the support", func(t *testing.T) {
		rb := NewRigidBody(Transform{Position: mgl64.Vec2{10, 0}}, NewCircle(1.0), BodyTypeDynamic, 1.0)

		support := rb.SupportWorld(mgl64.Vec2{1, 0})
		expected := mgl64.Vec2{11, 0}
		if support.Sub(expected).Len() > 1e-12 {
			t.Errorf("Expected support %v, got %v", expected, support)
		}
	})

	t.Run("rotation reorients the shape", func(t *testing.T) {
		// A 4x1 box rotated 90° extends along y
		rb := NewRigidBody(Transform{Rotation: math.Pi / 2}, NewBox(4.0, 1.0), BodyTypeDynamic, 1.0)

		support := rb.SupportWorld(mgl64.Vec2{0, 1})
		if math.Abs(support.Y()-2.0) > 1e-9 {
			t.Errorf("Expected support at y=2 for rotated box, got %v", support)
		}
	})
}

func TestRigidBody_ContainsWorldPoint(t *testing.T) {
	rb := NewRigidBody(Transform{Position: mgl64.Vec2{5, 5}}, NewCircle(1.0), BodyTypeDynamic, 1.0)

	if !rb.ContainsWorldPoint(mgl64.Vec2{5.5, 5}) {
		t.Error("Expected world point inside body")
	}
	if rb.ContainsWorldPoint(mgl64.Vec2{7, 5}) {
		t.Error("Expected world point outside body")
	}
}

func TestRigidBody_WorldCenter(t *testing.T) {
	rb := NewRigidBody(Transform{Position: mgl64.Vec2{3, 4}}, NewBox(2, 2), BodyTypeDynamic, 1.0)

	if rb.WorldCenter().Sub(mgl64.Vec2{3, 4}).Len() > 1e-12 {
		t.Errorf("Expected world center at body position, got %v", rb.WorldCenter())
	}
}
