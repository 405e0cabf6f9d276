package constraint

import (
	"github.com/akmonengine/quill/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// WeldJoint rigidly attaches two bodies: a single 3-row constraint (2
// linear rows holding the shared anchor, 1 angular row holding the relative
// angle) solved as one 3×3 system. The soft coefficients keep the system
// well conditioned at high stiffness instead of locking it hard.
type WeldJoint struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody

	LocalAnchorA mgl64.Vec2
	LocalAnchorB mgl64.Vec2

	// ReferenceAngle is the welded relative rotation (rotB - rotA).
	ReferenceAngle float64

	Frequency    float64
	DampingRatio float64

	// ImpulseSum (x, y: linear; z: angular) persists across steps for warm
	// starting.
	ImpulseSum mgl64.Vec3

	// Solver temp
	ra, rb       mgl64.Vec2
	mass         mgl64.Mat3
	bias         mgl64.Vec3
	linearGamma  float64
	angularGamma float64
}

// NewWeldJoint welds two bodies at a world-space anchor, preserving their
// current relative angle.
func NewWeldJoint(bodyA, bodyB *actor.RigidBody, anchor mgl64.Vec2) *WeldJoint {
	return &WeldJoint{
		BodyA:          bodyA,
		BodyB:          bodyB,
		LocalAnchorA:   bodyA.Transform.GlobalToLocal(anchor),
		LocalAnchorB:   bodyB.Transform.GlobalToLocal(anchor),
		ReferenceAngle: bodyB.Transform.Rotation - bodyA.Transform.Rotation,
	}
}

func (j *WeldJoint) Prepare(step Step) {
	a, b := j.BodyA, j.BodyB

	mA, mB := a.InverseMass(), b.InverseMass()
	iA, iB := a.InverseInertia(), b.InverseInertia()

	invMass := mA + mB
	invInertia := iA + iB
	if invMass == 0 && invInertia == 0 {
		j.mass = mgl64.Mat3{}
		return
	}

	linearEffective := 0.0
	if invMass > 0 {
		linearEffective = 1.0 / invMass
	}
	angularEffective := 0.0
	if invInertia > 0 {
		angularEffective = 1.0 / invInertia
	}

	var betaLin, betaAng float64
	betaLin, j.linearGamma = softCoefficients(linearEffective, j.Frequency, j.DampingRatio, step.Dt)
	betaAng, j.angularGamma = softCoefficients(angularEffective, j.Frequency, j.DampingRatio, step.Dt)

	anchorA := a.Transform.LocalToGlobal(j.LocalAnchorA)
	anchorB := b.Transform.LocalToGlobal(j.LocalAnchorB)
	j.ra = anchorA.Sub(a.WorldCenter())
	j.rb = anchorB.Sub(b.WorldCenter())

	// K = J·M⁻¹·Jᵗ + diag(γl, γl, γa); symmetric 3×3
	k00 := invMass + iA*j.ra.Y()*j.ra.Y() + iB*j.rb.Y()*j.rb.Y() + j.linearGamma
	k01 := -iA*j.ra.X()*j.ra.Y() - iB*j.rb.X()*j.rb.Y()
	k02 := -iA*j.ra.Y() - iB*j.rb.Y()
	k11 := invMass + iA*j.ra.X()*j.ra.X() + iB*j.rb.X()*j.rb.X() + j.linearGamma
	k12 := iA*j.ra.X() + iB*j.rb.X()
	k22 := invInertia + j.angularGamma

	j.mass = mgl64.Mat3FromRows(
		mgl64.Vec3{k00, k01, k02},
		mgl64.Vec3{k01, k11, k12},
		mgl64.Vec3{k02, k12, k22},
	).Inv()

	linearError := anchorB.Sub(anchorA)
	angularError := b.Transform.Rotation - a.Transform.Rotation - j.ReferenceAngle

	j.bias = mgl64.Vec3{
		linearError.X() * betaLin * step.InvDt,
		linearError.Y() * betaLin * step.InvDt,
		angularError * betaAng * step.InvDt,
	}

	if step.WarmStarting {
		j.applyImpulse(j.ImpulseSum)
	} else {
		j.ImpulseSum = mgl64.Vec3{}
	}
}

func (j *WeldJoint) SolveVelocity() {
	a, b := j.BodyA, j.BodyB

	va := a.Velocity.Add(actor.CrossScalar(a.AngularVelocity, j.ra))
	vb := b.Velocity.Add(actor.CrossScalar(b.AngularVelocity, j.rb))
	linearCdot := vb.Sub(va)

	cdot := mgl64.Vec3{
		linearCdot.X() + j.bias.X() + j.linearGamma*j.ImpulseSum.X(),
		linearCdot.Y() + j.bias.Y() + j.linearGamma*j.ImpulseSum.Y(),
		b.AngularVelocity - a.AngularVelocity + j.bias.Z() + j.angularGamma*j.ImpulseSum.Z(),
	}

	lambda := j.mass.Mul3x1(cdot).Mul(-1)

	j.applyImpulse(lambda)
	j.ImpulseSum = j.ImpulseSum.Add(lambda)
}

func (j *WeldJoint) applyImpulse(impulse mgl64.Vec3) {
	a, b := j.BodyA, j.BodyB
	p := mgl64.Vec2{impulse.X(), impulse.Y()}

	a.Velocity = a.Velocity.Sub(p.Mul(a.InverseMass()))
	a.AngularVelocity -= a.InverseInertia() * (actor.Cross(j.ra, p) + impulse.Z())

	b.Velocity = b.Velocity.Add(p.Mul(b.InverseMass()))
	b.AngularVelocity += b.InverseInertia() * (actor.Cross(j.rb, p) + impulse.Z())
}
