package constraint

import (
	"math"
	"testing"

	"github.com/akmonengine/quill/actor"
)

func TestNewStep(t *testing.T) {
	step := NewStep(1.0 / 60.0)

	if math.Abs(step.Dt-1.0/60.0) > 1e-15 {
		t.Errorf("Expected dt 1/60, got %v", step.Dt)
	}
	if math.Abs(step.InvDt-60.0) > 1e-9 {
		t.Errorf("Expected invDt 60, got %v", step.InvDt)
	}
	if !step.WarmStarting || !step.PositionCorrection {
		t.Error("Expected warm starting and position correction enabled by default")
	}
	if step.PenetrationSlop != DefaultPenetrationSlop {
		t.Errorf("Expected default penetration slop, got %v", step.PenetrationSlop)
	}
	if step.RestitutionSlop != DefaultRestitutionSlop {
		t.Errorf("Expected default restitution slop, got %v", step.RestitutionSlop)
	}
	if step.PositionCorrectionBeta != DefaultPositionCorrectionBeta {
		t.Errorf("Expected default correction beta, got %v", step.PositionCorrectionBeta)
	}
}

func TestMixRestitution(t *testing.T) {
	t.Run("product of coefficients", func(t *testing.T) {
		matA := actor.Material{Restitution: 0.5}
		matB := actor.Material{Restitution: 0.8}

		if got := MixRestitution(matA, matB); math.Abs(got-0.4) > 1e-12 {
			t.Errorf("Expected 0.4, got %v", got)
		}
	})

	t.Run("clamped to [0,1]", func(t *testing.T) {
		matA := actor.Material{Restitution: 2.0}
		matB := actor.Material{Restitution: -1.0}

		if got := MixRestitution(matA, matB); got != 0 {
			t.Errorf("Expected 0 for negative restitution, got %v", got)
		}

		matB.Restitution = 1.5
		if got := MixRestitution(matA, matB); got != 1.0 {
			t.Errorf("Expected clamp to 1, got %v", got)
		}
	})
}

func TestMixFriction(t *testing.T) {
	matA := actor.Material{Friction: 0.5}
	matB := actor.Material{Friction: 0.4}

	if got := MixFriction(matA, matB); math.Abs(got-0.2) > 1e-12 {
		t.Errorf("Expected 0.2, got %v", got)
	}

	matB.Friction = -1
	if got := MixFriction(matA, matB); got != 0 {
		t.Errorf("Expected 0 for negative friction, got %v", got)
	}
}

func TestMixCorrection(t *testing.T) {
	matA := actor.Material{Correction: 1.0}
	matB := actor.Material{Correction: 0.5}

	if got := MixCorrection(matA, matB); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Expected 0.5, got %v", got)
	}
}
