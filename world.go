package quill

import (
	"github.com/akmonengine/quill/actor"
	"github.com/akmonengine/quill/constraint"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	DEFAULT_WORKERS    = 1
	DEFAULT_ITERATIONS = 15
)

type World struct {
	// List of all rigid bodies in the world
	Bodies []*actor.RigidBody
	// Persistent joints, solved alongside contacts every step
	Joints []constraint.Joint
	// Gravity acceleration (m/s², or N/kg)
	Gravity mgl64.Vec2
	// Velocity solver iterations per step
	Iterations int
	Workers    int

	WarmStarting       bool
	PositionCorrection bool

	Events Events

	// Contact manifolds of the last step, rebuilt from scratch each step
	manifolds []*constraint.ContactManifold
}

func NewWorld(gravity mgl64.Vec2) *World {
	return &World{
		Gravity:            gravity,
		Iterations:         DEFAULT_ITERATIONS,
		Workers:            DEFAULT_WORKERS,
		WarmStarting:       true,
		PositionCorrection: true,
		Events:             NewEvents(),
	}
}

// AddBody adds a rigid body to the world
func (w *World) AddBody(body *actor.RigidBody) {
	w.Bodies = append(w.Bodies, body)
}

// RemoveBody removes a rigid body from the world and forgets its tracked
// collision pairs so no Exit event fires for a body that no longer exists
func (w *World) RemoveBody(body *actor.RigidBody) {
	k := -1
	for i, b := range w.Bodies {
		if b == body {
			k = i
			break
		}
	}

	if k != -1 {
		w.Bodies = append(w.Bodies[:k], w.Bodies[k+1:]...)
	}

	for pair := range w.Events.previousActivePairs {
		if pair.bodyA == body || pair.bodyB == body {
			delete(w.Events.previousActivePairs, pair)
		}
	}
}

// AddJoint adds a joint to the world
func (w *World) AddJoint(joint constraint.Joint) {
	w.Joints = append(w.Joints, joint)
}

// RemoveJoint removes a joint from the world
func (w *World) RemoveJoint(joint constraint.Joint) {
	k := -1
	for i, j := range w.Joints {
		if j == joint {
			k = i
			break
		}
	}

	if k != -1 {
		w.Joints = append(w.Joints[:k], w.Joints[k+1:]...)
	}
}

// Manifolds returns the contact manifolds produced by the last Step.
func (w *World) Manifolds() []*constraint.ContactManifold {
	return w.manifolds
}

func (w *World) Step(dt float64) {
	w.Workers = max(DEFAULT_WORKERS, w.Workers)

	step := constraint.NewStep(dt)
	step.WarmStarting = w.WarmStarting
	step.PositionCorrection = w.PositionCorrection

	// Phase 1: apply gravity and accumulated forces to velocities
	w.integrateForces(dt)

	// Phase 2.0: Collision pair finding - Broad phase
	// Phase 2.1: Collision pair finding - narrow phase
	w.manifolds = w.detectCollision()

	w.Events.recordCollisions(w.manifolds)

	// Phase 3: Solver. Contacts are prepared fresh each step; joints warm
	// start from their accumulated impulses.
	for _, manifold := range w.manifolds {
		manifold.Prepare(step)
	}
	for _, joint := range w.Joints {
		joint.Prepare(step)
	}

	// Sequential impulses: iterating lets constraints negotiate shared
	// bodies, so the iterations run single threaded in a fixed order
	for i, n := 0, max(1, w.Iterations); i < n; i++ {
		for _, joint := range w.Joints {
			joint.SolveVelocity()
		}
		for _, manifold := range w.manifolds {
			manifold.SolveVelocity()
		}
	}

	// Phase 4: commit positions from the corrected velocities
	w.integratePositions(dt)

	w.Events.flush()
}

func (w *World) integrateForces(dt float64) {
	task(w.Workers, w.Bodies, func(body *actor.RigidBody) {
		body.IntegrateForces(dt, w.Gravity)
	})
}

func (w *World) detectCollision() []*constraint.ContactManifold {
	return NarrowPhase(BroadPhase(w.Bodies, w.Workers), w.Workers)
}

func (w *World) integratePositions(dt float64) {
	task(w.Workers, w.Bodies, func(body *actor.RigidBody) {
		body.IntegratePositions(dt)
	})
}
