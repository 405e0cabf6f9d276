package constraint

import (
	"math"

	"github.com/akmonengine/quill/actor"
)

// Solver tunables. These follow the Box2D lineage: the slops leave a thin
// tolerance band so resting contacts neither jitter nor sink.
const (
	// DefaultPenetrationSlop is the overlap (m) allowed before position
	// correction kicks in.
	DefaultPenetrationSlop = 0.005

	// DefaultRestitutionSlop is the closing speed (m/s) below which
	// restitution is ignored, filtering out the micro-bounces gravity
	// induces on resting contacts.
	DefaultRestitutionSlop = 0.2

	// DefaultPositionCorrectionBeta is the fraction of remaining
	// penetration corrected per step. A full one-step correction would
	// inject energy.
	DefaultPositionCorrectionBeta = 0.2
)

// Step carries the per-step solver configuration. It is built once per
// simulation step and read-only from there on.
type Step struct {
	Dt    float64
	InvDt float64

	WarmStarting       bool
	PositionCorrection bool

	PenetrationSlop        float64
	RestitutionSlop        float64
	PositionCorrectionBeta float64
}

// NewStep returns a Step for the given fixed timestep with the default
// tunables, warm starting and position correction enabled.
func NewStep(dt float64) Step {
	return Step{
		Dt:                     dt,
		InvDt:                  1.0 / dt,
		WarmStarting:           true,
		PositionCorrection:     true,
		PenetrationSlop:        DefaultPenetrationSlop,
		RestitutionSlop:        DefaultRestitutionSlop,
		PositionCorrectionBeta: DefaultPositionCorrectionBeta,
	}
}

// Constraint is the unit of work of the sequential-impulse solver: Prepare
// computes Jacobians, effective masses and biases once per step, then
// SolveVelocity runs once per solver iteration, reading the latest body
// velocities (Gauss-Seidel ordering).
type Constraint interface {
	Prepare(step Step)
	SolveVelocity()
}

// MixRestitution combines two materials' restitution as their product,
// each clamped to [0, 1].
func MixRestitution(matA, matB actor.Material) float64 {
	return clamp01(matA.Restitution) * clamp01(matB.Restitution)
}

// MixFriction combines two materials' friction as their product, each
// clamped to be non-negative.
func MixFriction(matA, matB actor.Material) float64 {
	return math.Max(matA.Friction, 0) * math.Max(matB.Friction, 0)
}

// MixCorrection combines two materials' contact-correction coefficients as
// their product, each clamped to [0, 1].
func MixCorrection(matA, matB actor.Material) float64 {
	return clamp01(matA.Correction) * clamp01(matB.Correction)
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}
