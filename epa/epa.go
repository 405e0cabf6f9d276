// Package epa implements the Expanding Polytope Algorithm for computing
// penetration depth between overlapping convex 2D shapes.
//
// EPA runs after GJK detects a collision to determine:
//   - Penetration depth (how far the shapes overlap)
//   - Contact normal (direction to separate the shapes)
//   - Contact points (where the shapes touch, one per shape)
//
// The algorithm expands a polytope, starting from GJK's terminal simplex,
// toward the boundary of the Minkowski difference. The closest boundary
// edge to the origin yields the minimum translation vector, and the edge
// endpoints' witness pairs are interpolated back into one world contact
// point on each original shape.
//
// References:
//   - Van den Bergen: "Proximity Queries and Penetration Depth Computation
//     on 3D Game Objects" (2001)
package epa

import (
	"fmt"

	"github.com/akmonengine/quill/actor"
	"github.com/akmonengine/quill/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// MaxIterations limits polytope expansion. Typical convergence is
	// 3-10 iterations; hitting the cap means the current closest edge is
	// reported as the best estimate.
	MaxIterations = 20

	// convergenceTolerance defines when EPA has converged: if a new support
	// point improves on the closest edge's distance by less than this, the
	// edge lies on the Minkowski difference boundary.
	convergenceTolerance = 1e-6
)

// Result carries the penetration query outcome. Normal is unit length and
// points from body A toward body B; ContactA and ContactB are world-space
// points on each shape satisfying ContactA = ContactB + Normal*Depth.
type Result struct {
	Normal   mgl64.Vec2
	Depth    float64
	ContactA mgl64.Vec2
	ContactB mgl64.Vec2
}

// Expand computes penetration depth and contact information for two
// overlapping convex bodies from a terminal GJK simplex.
//
// A 2-vertex simplex (the origin sits on a CSO segment, common for head-on
// symmetric collisions) is first blown up to a polytope enclosing the
// origin. Fewer vertices return an error; callers treat that as no
// collision.
func Expand(a, b *actor.RigidBody, simplex *gjk.Simplex) (Result, error) {
	polytope, err := buildPolytope(a, b, simplex)
	if err != nil {
		return Result{}, err
	}

	edge := polytope.ClosestEdge()
	for i := 0; i < MaxIterations; i++ {
		support := gjk.MinkowskiSupport(a, b, edge.Normal)
		distance := support.Point.Dot(edge.Normal)

		// No meaningful improvement: the edge is the true closest boundary
		// feature
		if distance-edge.Distance < convergenceTolerance {
			break
		}

		polytope.Insert(edge.Index, support)

		// Recompute after every insert so the reported edge always matches
		// the polytope, including when the iteration cap cuts expansion short
		edge = polytope.ClosestEdge()
	}

	contactA, contactB := witnessPoints(polytope, edge)

	return Result{
		Normal:   edge.Normal,
		Depth:    edge.Distance,
		ContactA: contactA,
		ContactB: contactB,
	}, nil
}

// buildPolytope seeds the polytope from the terminal GJK simplex. A full
// 3-simplex maps directly; a 2-vertex simplex is completed by sampling the
// support function perpendicular to the segment on both sides, preferably
// into a quad that strictly encloses the origin so every edge normal
// orients unambiguously.
func buildPolytope(a, b *actor.RigidBody, simplex *gjk.Simplex) (*Polytope, error) {
	if simplex.Count == 3 {
		return NewPolytope(simplex), nil
	}
	if simplex.Count != 2 {
		return nil, fmt.Errorf("EPA requires at least a 2-vertex simplex, got %d", simplex.Count)
	}

	p0, p1 := simplex.Points[0], simplex.Points[1]
	segment := p1.Point.Sub(p0.Point)
	if segment.LenSqr() < 1e-16 {
		return nil, fmt.Errorf("EPA cannot expand a zero-length simplex segment")
	}

	perp := actor.Perp(segment).Normalize()
	plus := gjk.MinkowskiSupport(a, b, perp)
	minus := gjk.MinkowskiSupport(a, b, perp.Mul(-1))

	// A support only helps if it actually leaves the segment's line
	plusValid := actor.Cross(segment, plus.Point.Sub(p0.Point)) > 1e-12
	minusValid := actor.Cross(segment, minus.Point.Sub(p0.Point)) < -1e-12

	vertices := make([]gjk.SupportPoint, 0, 8)
	switch {
	case plusValid && minusValid:
		vertices = append(vertices, p0, plus, p1, minus)
	case plusValid:
		vertices = append(vertices, p0, plus, p1)
	case minusValid:
		vertices = append(vertices, p0, p1, minus)
	default:
		return nil, fmt.Errorf("EPA found a flat Minkowski difference, no area to expand")
	}

	return &Polytope{Vertices: vertices}, nil
}

// witnessPoints projects the origin onto the closest edge and uses the 1-D
// barycentric weight to interpolate the edge endpoints' witness points,
// recovering a corresponding world contact point on each original shape.
func witnessPoints(p *Polytope, edge Edge) (mgl64.Vec2, mgl64.Vec2) {
	v1 := p.Vertices[edge.Index]
	v2 := p.Vertices[(edge.Index+1)%len(p.Vertices)]

	dir := v2.Point.Sub(v1.Point)
	lenSqr := dir.LenSqr()

	t := 0.0
	if lenSqr > 1e-16 {
		t = -v1.Point.Dot(dir) / lenSqr
		t = mgl64.Clamp(t, 0, 1)
	}

	contactA := v1.WitnessA.Add(v2.WitnessA.Sub(v1.WitnessA).Mul(t))
	contactB := v1.WitnessB.Add(v2.WitnessB.Sub(v1.WitnessB).Mul(t))

	return contactA, contactB
}
