package constraint

import (
	"github.com/akmonengine/quill/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// GrabJoint pulls a point on a single body toward an external world-space
// target (typically a cursor). It is a soft 2-row linear constraint: the
// spring-damper coefficients let the anchor stretch toward the target
// instead of applying unbounded forces.
type GrabJoint struct {
	Body *actor.RigidBody

	// Target is the world-space point the anchor tracks; the driving loop
	// moves it between steps.
	Target mgl64.Vec2

	// LocalAnchor is the grabbed point in the body's frame.
	LocalAnchor mgl64.Vec2

	Frequency    float64 // Hz; <= 0 selects the default
	DampingRatio float64 // <= 0 selects the default

	// ImpulseSum persists across steps for warm starting.
	ImpulseSum mgl64.Vec2

	// Solver temp, valid between Prepare and the last SolveVelocity
	r     mgl64.Vec2
	mass  mgl64.Mat2
	bias  mgl64.Vec2
	gamma float64
}

// NewGrabJoint grabs the body at a world-space point; the target starts at
// the grab point so the joint is initially at rest.
func NewGrabJoint(body *actor.RigidBody, grabPoint mgl64.Vec2) *GrabJoint {
	return &GrabJoint{
		Body:        body,
		Target:      grabPoint,
		LocalAnchor: body.Transform.GlobalToLocal(grabPoint),
	}
}

func (j *GrabJoint) Prepare(step Step) {
	body := j.Body
	if body.InverseMass() == 0 {
		j.mass = mgl64.Mat2{}
		j.bias = mgl64.Vec2{}
		return
	}

	beta, gamma := softCoefficients(body.Mass(), j.Frequency, j.DampingRatio, step.Dt)
	j.gamma = gamma

	anchor := body.Transform.LocalToGlobal(j.LocalAnchor)
	j.r = anchor.Sub(body.WorldCenter())

	im := body.InverseMass()
	ii := body.InverseInertia()

	// K = J·M⁻¹·Jᵗ + γ·I
	k00 := im + ii*j.r.Y()*j.r.Y() + gamma
	k01 := -ii * j.r.X() * j.r.Y()
	k11 := im + ii*j.r.X()*j.r.X() + gamma
	j.mass = mgl64.Mat2FromRows(mgl64.Vec2{k00, k01}, mgl64.Vec2{k01, k11}).Inv()

	j.bias = anchor.Sub(j.Target).Mul(beta * step.InvDt)

	if step.WarmStarting {
		j.applyImpulse(j.ImpulseSum)
	} else {
		j.ImpulseSum = mgl64.Vec2{}
	}
}

func (j *GrabJoint) SolveVelocity() {
	jv := j.Body.Velocity.Add(actor.CrossScalar(j.Body.AngularVelocity, j.r))

	lambda := j.mass.Mul2x1(jv.Add(j.bias).Add(j.ImpulseSum.Mul(j.gamma))).Mul(-1)

	j.applyImpulse(lambda)
	j.ImpulseSum = j.ImpulseSum.Add(lambda)
}

func (j *GrabJoint) applyImpulse(p mgl64.Vec2) {
	j.Body.Velocity = j.Body.Velocity.Add(p.Mul(j.Body.InverseMass()))
	j.Body.AngularVelocity += j.Body.InverseInertia() * actor.Cross(j.r, p)
}
