package constraint

import (
	"math"

	"github.com/akmonengine/quill/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// ContactPoint is one world-space touch point of a manifold with its own
// penetration depth.
type ContactPoint struct {
	Position mgl64.Vec2
	Depth    float64
}

// ContactManifold resolves one colliding pair for one step. It is rebuilt
// from scratch every step (no identity persists across steps), so the
// accumulated impulses below only live across solver iterations within a
// single step.
//
// Each contact point owns a normal solver and a tangent solver. The normal
// constraint is solved first: the tangent (friction) clamp depends on the
// just-updated normal impulse.
type ContactManifold struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody

	Normal  mgl64.Vec2 // unit, from BodyA toward BodyB
	Tangent mgl64.Vec2 // Normal rotated 90° counter-clockwise
	Points  []ContactPoint

	friction float64

	normalSolvers  [2]contactSolver
	tangentSolvers [2]contactSolver
}

// NewContactManifold builds a manifold for 1-2 contact points. The tangent
// is derived from the normal; more than two points are truncated.
func NewContactManifold(bodyA, bodyB *actor.RigidBody, normal mgl64.Vec2, points []ContactPoint) *ContactManifold {
	if len(points) > 2 {
		points = points[:2]
	}

	return &ContactManifold{
		BodyA:   bodyA,
		BodyB:   bodyB,
		Normal:  normal,
		Tangent: actor.Perp(normal),
		Points:  points,
	}
}

// PenetrationDepth returns the deepest point's penetration.
func (m *ContactManifold) PenetrationDepth() float64 {
	depth := 0.0
	for _, p := range m.Points {
		depth = math.Max(depth, p.Depth)
	}
	return depth
}

// Prepare computes the Jacobian data and bias terms for every contact
// point. The normal bias combines Baumgarte position feedback (a fraction
// of the penetration beyond the slop, spread over the step) with a
// restitution target (bounce velocity above the slop threshold).
func (m *ContactManifold) Prepare(step Step) {
	restitution := MixRestitution(m.BodyA.Material, m.BodyB.Material)
	m.friction = MixFriction(m.BodyA.Material, m.BodyB.Material)
	beta := step.PositionCorrectionBeta * MixCorrection(m.BodyA.Material, m.BodyB.Material)

	for i, point := range m.Points {
		normal := &m.normalSolvers[i]
		tangent := &m.tangentSolvers[i]

		normal.init(m.BodyA, m.BodyB, m.Normal, point.Position)
		tangent.init(m.BodyA, m.BodyB, m.Tangent, point.Position)

		if step.PositionCorrection {
			normal.bias = -(beta * step.InvDt) * math.Max(point.Depth-step.PenetrationSlop, 0)
		}

		// Pre-solve closing speed; positive when the bodies approach
		closingSpeed := -normal.relativeVelocity()
		normal.bias -= restitution * math.Max(closingSpeed-step.RestitutionSlop, 0)
	}
}

// SolveVelocity runs one sequential-impulse iteration over the manifold.
// Order matters: the friction cone uses the normal impulse updated in the
// same iteration.
func (m *ContactManifold) SolveVelocity() {
	for i := range m.Points {
		normal := &m.normalSolvers[i]
		tangent := &m.tangentSolvers[i]

		// Normal: contacts push, never pull
		lambda := -normal.mass * (normal.relativeVelocity() + normal.bias)
		accumulated := math.Max(normal.ImpulseSum+lambda, 0)
		normal.applyImpulse(accumulated - normal.ImpulseSum)
		normal.ImpulseSum = accumulated

		// Tangent: Coulomb cone around the current normal impulse
		maxFriction := m.friction * normal.ImpulseSum
		lambda = -tangent.mass * tangent.relativeVelocity()
		accumulated = mgl64.Clamp(tangent.ImpulseSum+lambda, -maxFriction, maxFriction)
		tangent.applyImpulse(accumulated - tangent.ImpulseSum)
		tangent.ImpulseSum = accumulated
	}
}

// NormalImpulse returns the accumulated normal impulse of a contact point.
func (m *ContactManifold) NormalImpulse(i int) float64 {
	return m.normalSolvers[i].ImpulseSum
}

// TangentImpulse returns the accumulated tangent impulse of a contact point.
func (m *ContactManifold) TangentImpulse(i int) float64 {
	return m.tangentSolvers[i].ImpulseSum
}

// contactSolver resolves a single scalar velocity constraint along one
// direction at one contact point.
type contactSolver struct {
	bodyA *actor.RigidBody
	bodyB *actor.RigidBody

	dir    mgl64.Vec2
	ra, rb mgl64.Vec2

	mass float64 // effective mass: inverse of J·M⁻¹·Jᵗ
	bias float64

	ImpulseSum float64
}

func (s *contactSolver) init(bodyA, bodyB *actor.RigidBody, dir, point mgl64.Vec2) {
	s.bodyA = bodyA
	s.bodyB = bodyB
	s.dir = dir
	s.ra = point.Sub(bodyA.WorldCenter())
	s.rb = point.Sub(bodyB.WorldCenter())
	s.bias = 0
	s.ImpulseSum = 0

	ran := actor.Cross(s.ra, dir)
	rbn := actor.Cross(s.rb, dir)

	k := bodyA.InverseMass() + bodyB.InverseMass() +
		bodyA.InverseInertia()*ran*ran + bodyB.InverseInertia()*rbn*rbn

	if k > 0 {
		s.mass = 1.0 / k
	} else {
		s.mass = 0
	}
}

// relativeVelocity is J·v: the relative velocity of the contact point along
// the constraint direction, using the latest body velocities.
func (s *contactSolver) relativeVelocity() float64 {
	va := s.bodyA.Velocity.Add(actor.CrossScalar(s.bodyA.AngularVelocity, s.ra))
	vb := s.bodyB.Velocity.Add(actor.CrossScalar(s.bodyB.AngularVelocity, s.rb))

	return vb.Sub(va).Dot(s.dir)
}

func (s *contactSolver) applyImpulse(lambda float64) {
	p := s.dir.Mul(lambda)

	s.bodyA.Velocity = s.bodyA.Velocity.Sub(p.Mul(s.bodyA.InverseMass()))
	s.bodyA.AngularVelocity -= s.bodyA.InverseInertia() * actor.Cross(s.ra, p)

	s.bodyB.Velocity = s.bodyB.Velocity.Add(p.Mul(s.bodyB.InverseMass()))
	s.bodyB.AngularVelocity += s.bodyB.InverseInertia() * actor.Cross(s.rb, p)
}
