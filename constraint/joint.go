package constraint

import "math"

// Joint is a bilateral constraint that persists across steps and carries
// its accumulated impulse forward for warm starting.
type Joint interface {
	Constraint
}

// Joint defaults: a fairly stiff, critically damped spring. Callers can
// override per joint.
const (
	DefaultJointFrequency    = 15.0
	DefaultJointDampingRatio = 1.0
)

// softCoefficients derives the soft-constraint coefficients from a target
// oscillation frequency (Hz) and damping ratio for a constraint acting on
// the given effective mass:
//
//	ω = 2π·freq, d = 2·m·ζ·ω (damping), k = m·ω² (stiffness)
//	β = h·k / (d + h·k)       error feedback, fraction of C fed back per step
//	γ = 1 / ((d + h·k)·h)     compliance added to the effective mass
//
// β blends how aggressively position error is corrected; γ softens the
// constraint, trading rigidity for stability at high stiffness.
func softCoefficients(mass, frequency, dampingRatio, dt float64) (beta, gamma float64) {
	if frequency <= 0 {
		frequency = DefaultJointFrequency
	}
	if dampingRatio <= 0 {
		dampingRatio = DefaultJointDampingRatio
	}

	omega := 2.0 * math.Pi * frequency
	d := 2.0 * mass * dampingRatio * omega
	k := mass * omega * omega

	hk := dt * k
	beta = hk / (d + hk)
	gamma = 1.0 / ((d + hk) * dt)

	return beta, gamma
}
