package epa

import (
	"math"

	"github.com/akmonengine/quill/actor"
	"github.com/akmonengine/quill/constraint"
	"github.com/akmonengine/quill/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

// EPA runs the penetration query and assembles the contact manifold for a
// colliding pair. This is the entry point the narrow phase calls once GJK
// reports an enclosing simplex.
func EPA(a, b *actor.RigidBody, simplex *gjk.Simplex) (*constraint.ContactManifold, error) {
	result, err := Expand(a, b, simplex)
	if err != nil {
		return nil, err
	}

	points := generateContacts(a, b, result)

	return constraint.NewContactManifold(a, b, result.Normal, points), nil
}

// generateContacts turns the single EPA witness pair into 1-2 manifold
// points. When both shapes present an edge facing the contact normal, the
// incident edge is clipped against the reference edge, which yields the
// second point flat contacts need for rotational stability. Circles, and
// any degenerate clip, fall back to the EPA witness midpoint.
func generateContacts(a, b *actor.RigidBody, result Result) []constraint.ContactPoint {
	featureA := worldFeature(a, result.Normal)
	featureB := worldFeature(b, result.Normal.Mul(-1))

	if len(featureA) < 2 || len(featureB) < 2 {
		return []constraint.ContactPoint{witnessContact(result)}
	}

	// The reference edge is the one more perpendicular to the normal; the
	// other edge is clipped onto it.
	dirA := featureA[1].Sub(featureA[0]).Normalize()
	dirB := featureB[1].Sub(featureB[0]).Normalize()

	reference, incident := featureA, featureB
	refNormal := result.Normal
	if math.Abs(dirB.Dot(result.Normal)) < math.Abs(dirA.Dot(result.Normal)) {
		reference, incident = featureB, featureA
		refNormal = result.Normal.Mul(-1)
	}

	refDir := reference[1].Sub(reference[0]).Normalize()

	// Clip the incident edge against the reference edge's two side planes
	clipped := clipSegment(incident, reference[0], refDir)
	clipped = clipSegment(clipped, reference[1], refDir.Mul(-1))

	// Keep the points behind the reference face, with per-point depth
	var points []constraint.ContactPoint
	for _, p := range clipped {
		separation := p.Sub(reference[0]).Dot(refNormal)
		if separation <= 0 {
			points = append(points, constraint.ContactPoint{
				Position: p,
				Depth:    -separation,
			})
		}
	}

	if len(points) == 0 {
		return []constraint.ContactPoint{witnessContact(result)}
	}

	return points
}

func witnessContact(result Result) constraint.ContactPoint {
	mid := result.ContactA.Add(result.ContactB).Mul(0.5)
	return constraint.ContactPoint{Position: mid, Depth: result.Depth}
}

// worldFeature returns the shape's contact feature facing a world direction,
// transformed into world space.
func worldFeature(body *actor.RigidBody, direction mgl64.Vec2) []mgl64.Vec2 {
	localDirection := body.Transform.InverseRotateVec(direction)
	feature := body.Shape.ContactFeature(localDirection)

	world := make([]mgl64.Vec2, len(feature))
	for i, p := range feature {
		world[i] = body.Transform.LocalToGlobal(p)
	}
	return world
}

// clipSegment keeps the part of a segment on the positive side of the plane
// through planePoint with inward direction keepDir, interpolating a new
// endpoint when the segment straddles the plane.
func clipSegment(segment []mgl64.Vec2, planePoint, keepDir mgl64.Vec2) []mgl64.Vec2 {
	if len(segment) < 2 {
		return segment
	}

	d1 := segment[0].Sub(planePoint).Dot(keepDir)
	d2 := segment[1].Sub(planePoint).Dot(keepDir)

	var out []mgl64.Vec2
	if d1 >= 0 {
		out = append(out, segment[0])
	}
	if d2 >= 0 {
		out = append(out, segment[1])
	}

	if d1*d2 < 0 {
		t := d1 / (d1 - d2)
		out = append(out, segment[0].Add(segment[1].Sub(segment[0]).Mul(t)))
	}

	return out
}
