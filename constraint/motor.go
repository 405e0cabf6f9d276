package constraint

import (
	"github.com/akmonengine/quill/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// MotorJoint drives two bodies toward a shared anchor point and a relative
// angle offset: a 2-row linear (revolute) constraint plus a 1-row angular
// constraint. The accumulated linear impulse is rescaled to stay within
// MaxForce·dt and the angular impulse is clamped to MaxTorque·dt, so a
// strong enough load can overpower the motor.
type MotorJoint struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody

	LocalAnchorA mgl64.Vec2
	LocalAnchorB mgl64.Vec2

	// AngleOffset is the driven relative rotation (rotB - rotA).
	AngleOffset float64

	MaxForce  float64 // N; 0 disables the linear drive
	MaxTorque float64 // N·m; 0 disables the angular drive

	Frequency    float64
	DampingRatio float64

	// Accumulated impulses, persisted across steps for warm starting.
	LinearImpulseSum  mgl64.Vec2
	AngularImpulseSum float64

	// Solver temp
	ra, rb       mgl64.Vec2
	linearMass   mgl64.Mat2
	angularMass  float64
	linearBias   mgl64.Vec2
	angularBias  float64
	linearGamma  float64
	angularGamma float64
	maxLinear    float64
	maxAngular   float64
}

// NewMotorJoint creates a motor holding both bodies at a shared world-space
// anchor and at their current relative angle.
func NewMotorJoint(bodyA, bodyB *actor.RigidBody, anchor mgl64.Vec2, maxForce, maxTorque float64) *MotorJoint {
	return &MotorJoint{
		BodyA:        bodyA,
		BodyB:        bodyB,
		LocalAnchorA: bodyA.Transform.GlobalToLocal(anchor),
		LocalAnchorB: bodyB.Transform.GlobalToLocal(anchor),
		AngleOffset:  bodyB.Transform.Rotation - bodyA.Transform.Rotation,
		MaxForce:     maxForce,
		MaxTorque:    maxTorque,
	}
}

func (j *MotorJoint) Prepare(step Step) {
	a, b := j.BodyA, j.BodyB

	mA, mB := a.InverseMass(), b.InverseMass()
	iA, iB := a.InverseInertia(), b.InverseInertia()

	invMass := mA + mB
	invInertia := iA + iB
	if invMass == 0 && invInertia == 0 {
		j.linearMass = mgl64.Mat2{}
		j.angularMass = 0
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

	k00 := invMass + iA*j.ra.Y()*j.ra.Y() + iB*j.rb.Y()*j.rb.Y() + j.linearGamma
	k01 := -iA*j.ra.X()*j.ra.Y() - iB*j.rb.X()*j.rb.Y()
	k11 := invMass + iA*j.ra.X()*j.ra.X() + iB*j.rb.X()*j.rb.X() + j.linearGamma
	j.linearMass = mgl64.Mat2FromRows(mgl64.Vec2{k00, k01}, mgl64.Vec2{k01, k11}).Inv()

	kAng := invInertia + j.angularGamma
	j.angularMass = 1.0 / kAng

	j.linearBias = anchorB.Sub(anchorA).Mul(betaLin * step.InvDt)
	j.angularBias = (b.Transform.Rotation - a.Transform.Rotation - j.AngleOffset) * betaAng * step.InvDt

	j.maxLinear = j.MaxForce * step.Dt
	j.maxAngular = j.MaxTorque * step.Dt

	if step.WarmStarting {
		j.applyLinearImpulse(j.LinearImpulseSum)
		j.applyAngularImpulse(j.AngularImpulseSum)
	} else {
		j.LinearImpulseSum = mgl64.Vec2{}
		j.AngularImpulseSum = 0
	}
}

func (j *MotorJoint) SolveVelocity() {
	a, b := j.BodyA, j.BodyB

	// Angular drive: simple clamp to the torque budget
	{
		cdot := b.AngularVelocity - a.AngularVelocity
		lambda := -j.angularMass * (cdot + j.angularBias + j.angularGamma*j.AngularImpulseSum)

		accumulated := mgl64.Clamp(j.AngularImpulseSum+lambda, -j.maxAngular, j.maxAngular)
		j.applyAngularImpulse(accumulated - j.AngularImpulseSum)
		j.AngularImpulseSum = accumulated
	}

	// Linear drive: clip by rescaling so the impulse direction survives
	{
		va := a.Velocity.Add(actor.CrossScalar(a.AngularVelocity, j.ra))
		vb := b.Velocity.Add(actor.CrossScalar(b.AngularVelocity, j.rb))
		cdot := vb.Sub(va)

		lambda := j.linearMass.Mul2x1(cdot.Add(j.linearBias).Add(j.LinearImpulseSum.Mul(j.linearGamma))).Mul(-1)

		accumulated := j.LinearImpulseSum.Add(lambda)
		if accumulated.LenSqr() > j.maxLinear*j.maxLinear {
			accumulated = accumulated.Mul(j.maxLinear / accumulated.Len())
		}

		j.applyLinearImpulse(accumulated.Sub(j.LinearImpulseSum))
		j.LinearImpulseSum = accumulated
	}
}

func (j *MotorJoint) applyLinearImpulse(p mgl64.Vec2) {
	a, b := j.BodyA, j.BodyB

	a.Velocity = a.Velocity.Sub(p.Mul(a.InverseMass()))
	a.AngularVelocity -= a.InverseInertia() * actor.Cross(j.ra, p)

	b.Velocity = b.Velocity.Add(p.Mul(b.InverseMass()))
	b.AngularVelocity += b.InverseInertia() * actor.Cross(j.rb, p)
}

func (j *MotorJoint) applyAngularImpulse(lambda float64) {
	j.BodyA.AngularVelocity -= j.BodyA.InverseInertia() * lambda
	j.BodyB.AngularVelocity += j.BodyB.InverseInertia() * lambda
}
