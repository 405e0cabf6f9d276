package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// BodyType represents the type of rigid body
type BodyType int

const (
	// BodyTypeDynamic bodies are affected by forces, gravity, and collisions
	BodyTypeDynamic BodyType = iota

	// BodyTypeStatic bodies are immovable (mass 0, inverse mass 0)
	// They are not affected by forces or gravity (e.g., ground, walls)
	BodyTypeStatic
)

type Material struct {
	Density     float64
	Friction    float64 // >= 0
	Restitution float64 // 0 = no rebound, 1 = perfect restitution
	Correction  float64 // 0..1, scales positional correction for contacts
}

// RigidBody represents a rigid body in the physics simulation
type RigidBody struct {
	// Spatial properties
	Transform Transform

	// Linear and angular motion
	Velocity        mgl64.Vec2 // m/s
	AngularVelocity float64    // rad/s

	// Mass properties. Zero mass (or inertia) stores a zero inverse,
	// which is what the solver consumes for immovable bodies.
	mass       float64
	invMass    float64
	inertia    float64
	invInertia float64

	// Local-frame center of mass offset. Polygons are recentered at
	// construction, so this stays zero for the built-in shapes; it is kept
	// so lever arms are always measured from the true center of mass.
	localCenter mgl64.Vec2

	// Accumulated force/torque for the current step, cleared after
	// integration
	force  mgl64.Vec2
	torque float64

	// Physical properties
	Material Material
	BodyType BodyType

	// Collision shape
	Shape Shape
}

// NewRigidBody creates a new rigid body with the given properties.
// density is used to calculate mass for dynamic bodies (ignored for static).
func NewRigidBody(transform Transform, shape Shape, bodyType BodyType, density float64) *RigidBody {
	if shape == nil {
		panic("rigid body requires a shape")
	}

	rb := &RigidBody{
		Transform: transform,
		Shape:     shape,
		BodyType:  bodyType,
	}

	if bodyType == BodyTypeStatic {
		rb.Material = Material{Correction: 1.0}
		rb.SetMass(0)
	} else {
		rb.Material = Material{
			Density:    density,
			Friction:   0.7,
			Correction: 1.0,
		}
		rb.SetMass(density * shape.Area())
	}

	rb.Shape.ComputeAABB(rb.Transform)

	return rb
}

// SetMass updates the mass and recomputes the moment of inertia from the
// shape geometry. A zero mass makes the body immovable (zero inverses).
func (rb *RigidBody) SetMass(mass float64) {
	rb.mass = math.Max(mass, 0)

	if rb.mass == 0 {
		rb.invMass = 0
		rb.inertia = 0
		rb.invInertia = 0
		return
	}

	rb.invMass = 1.0 / rb.mass
	rb.inertia = math.Max(rb.Shape.Inertia(rb.mass), 0)
	if rb.inertia > 0 {
		rb.invInertia = 1.0 / rb.inertia
	} else {
		rb.invInertia = 0
	}
}

func (rb *RigidBody) Mass() float64           { return rb.mass }
func (rb *RigidBody) InverseMass() float64    { return rb.invMass }
func (rb *RigidBody) Inertia() float64        { return rb.inertia }
func (rb *RigidBody) InverseInertia() float64 { return rb.invInertia }

// WorldCenter returns the world-space center of mass.
func (rb *RigidBody) WorldCenter() mgl64.Vec2 {
	return rb.Transform.LocalToGlobal(rb.localCenter)
}

// AddForce accumulates a force (N) for the current step
func (rb *RigidBody) AddForce(force mgl64.Vec2) {
	if rb.BodyType != BodyTypeStatic {
		rb.force = rb.force.Add(force)
	}
}

// AddTorque accumulates a torque (N·m) for the current step
func (rb *RigidBody) AddTorque(torque float64) {
	if rb.BodyType != BodyTypeStatic {
		rb.torque += torque
	}
}

func (rb *RigidBody) ClearForces() {
	rb.force = mgl64.Vec2{}
	rb.torque = 0
}

// IntegrateForces applies gravity and the accumulated force/torque to the
// body's velocities. Positions are untouched; they are committed by
// IntegratePositions after the solver has run.
func (rb *RigidBody) IntegrateForces(dt float64, gravity mgl64.Vec2) {
	if rb.BodyType == BodyTypeStatic || rb.invMass == 0 {
		return
	}

	rb.Velocity = rb.Velocity.Add(gravity.Add(rb.force.Mul(rb.invMass)).Mul(dt))
	rb.AngularVelocity += rb.torque * rb.invInertia * dt
}

// IntegratePositions advances the transform by the post-solve velocities,
// refreshes the cached AABB and clears the force accumulators.
func (rb *RigidBody) IntegratePositions(dt float64) {
	if rb.BodyType != BodyTypeStatic {
		rb.Transform.Position = rb.Transform.Position.Add(rb.Velocity.Mul(dt))
		rb.Transform.Rotation += rb.AngularVelocity * dt
	}

	rb.Shape.ComputeAABB(rb.Transform)
	rb.ClearForces()
}

// SupportWorld returns the farthest world-space point of the body's shape
// along a world-space direction.
func (rb *RigidBody) SupportWorld(direction mgl64.Vec2) mgl64.Vec2 {
	localDirection := rb.Transform.InverseRotateVec(direction)
	localSupport := rb.Shape.Support(localDirection)

	return rb.Transform.LocalToGlobal(localSupport)
}

// ContainsWorldPoint reports whether a world-space point lies inside the
// body's shape.
func (rb *RigidBody) ContainsWorldPoint(point mgl64.Vec2) bool {
	return rb.Shape.ContainsPoint(rb.Transform.GlobalToLocal(point))
}
