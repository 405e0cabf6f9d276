// Package gjk implements the Gilbert-Johnson-Keerthi (GJK) algorithm for
// collision detection between convex 2D shapes.
//
// GJK detects whether two convex shapes overlap by testing if their
// Minkowski difference (CSO) contains the origin. The algorithm builds a
// simplex incrementally, converging toward the origin in typically 3-6
// iterations. Shapes only need to expose a support function; their full
// geometry is never enumerated.
//
// References:
//   - Gilbert, Johnson, Keerthi: "A Fast Procedure for Computing the Distance
//     Between Complex Objects in Three-Dimensional Space" (1988)
//   - Van den Bergen: "Collision Detection in Interactive 3D Environments" (2003)
package gjk

import (
	"github.com/akmonengine/quill/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// MaxIterations limits simplex refinement. The cap guarantees
	// termination under numerical degeneracies; the progress checks below,
	// not the cap, establish correctness.
	MaxIterations = 20

	// originTolerance decides when the closest simplex point coincides with
	// the origin. Squared-distance comparison at roughly 13 significant
	// decimal digits, loose enough to absorb accumulated floating error
	// without producing false negatives for touching shapes.
	originTolerance = 1e-13

	// progressTolerance decides when a new support point no longer advances
	// the simplex toward the origin, proving separation.
	progressTolerance = 1e-10
)

// SupportPoint is a vertex of the Minkowski difference paired with the two
// witness points (the original support points on each shape) that produced
// it. EPA interpolates the witnesses to recover world contact points.
type SupportPoint struct {
	Point    mgl64.Vec2 // WitnessA - WitnessB
	WitnessA mgl64.Vec2
	WitnessB mgl64.Vec2
}

// MinkowskiSupport computes a support point of the Minkowski difference
// (A - B) along a world-space direction.
func MinkowskiSupport(a, b *actor.RigidBody, direction mgl64.Vec2) SupportPoint {
	supportA := a.SupportWorld(direction)
	supportB := b.SupportWorld(direction.Mul(-1))

	return SupportPoint{
		Point:    supportA.Sub(supportB),
		WitnessA: supportA,
		WitnessB: supportB,
	}
}

// Simplex holds 1-3 support points of the Minkowski difference. It is
// mutated only by Add and by the reduction inside Closest, and is never
// shared across queries.
type Simplex struct {
	Points [3]SupportPoint
	Count  int
}

func (s *Simplex) Reset() {
	s.Count = 0
}

func (s *Simplex) Add(sp SupportPoint) {
	s.Points[s.Count] = sp
	s.Count++
}

// ContainsPoint reports whether the CSO point already appears in the
// simplex. A duplicate support point means the query has stopped making
// progress.
func (s *Simplex) ContainsPoint(p mgl64.Vec2) bool {
	for i := 0; i < s.Count; i++ {
		if s.Points[i].Point == p {
			return true
		}
	}
	return false
}

// Closest returns the point of the simplex closest to the origin and
// reduces the simplex in place to the minimal sub-simplex supporting that
// point, discarding unused vertices. A zero return with Count == 3 means
// the origin is enclosed.
func (s *Simplex) Closest() mgl64.Vec2 {
	switch s.Count {
	case 1:
		return s.Points[0].Point
	case 2:
		return s.closestOnSegment()
	default:
		return s.closestOnTriangle()
	}
}

func (s *Simplex) closestOnSegment() mgl64.Vec2 {
	a := s.Points[0]
	b := s.Points[1]
	ab := b.Point.Sub(a.Point)

	lenSqr := ab.LenSqr()
	if lenSqr < 1e-16 {
		// Degenerate segment, keep one vertex
		s.Count = 1
		return a.Point
	}

	t := -a.Point.Dot(ab) / lenSqr
	if t <= 0 {
		s.Count = 1
		return a.Point
	}
	if t >= 1 {
		s.Points[0] = b
		s.Count = 1
		return b.Point
	}

	return a.Point.Add(ab.Mul(t))
}

func (s *Simplex) closestOnTriangle() mgl64.Vec2 {
	a, b, c := s.Points[0], s.Points[1], s.Points[2]

	if originInTriangle(a.Point, b.Point, c.Point) {
		return mgl64.Vec2{}
	}

	// Origin is outside: the closest feature is on one of the three edges.
	// Evaluate each edge and keep the supporting sub-simplex of the winner.
	type candidate struct {
		p1, p2  SupportPoint
		closest mgl64.Vec2
		distSqr float64
		single  bool
	}

	edge := func(p1, p2 SupportPoint) candidate {
		ab := p2.Point.Sub(p1.Point)
		lenSqr := ab.LenSqr()
		if lenSqr < 1e-16 {
			return candidate{p1: p1, p2: p2, closest: p1.Point, distSqr: p1.Point.LenSqr(), single: true}
		}
		t := -p1.Point.Dot(ab) / lenSqr
		if t <= 0 {
			return candidate{p1: p1, p2: p2, closest: p1.Point, distSqr: p1.Point.LenSqr(), single: true}
		}
		if t >= 1 {
			return candidate{p1: p2, p2: p1, closest: p2.Point, distSqr: p2.Point.LenSqr(), single: true}
		}
		closest := p1.Point.Add(ab.Mul(t))
		return candidate{p1: p1, p2: p2, closest: closest, distSqr: closest.LenSqr()}
	}

	best := edge(a, b)
	if cand := edge(b, c); cand.distSqr < best.distSqr {
		best = cand
	}
	if cand := edge(c, a); cand.distSqr < best.distSqr {
		best = cand
	}

	s.Points[0] = best.p1
	if best.single {
		s.Count = 1
	} else {
		s.Points[1] = best.p2
		s.Count = 2
	}

	return best.closest
}

// originInTriangle tests origin containment regardless of winding.
func originInTriangle(a, b, c mgl64.Vec2) bool {
	d1 := actor.Cross(b.Sub(a), a.Mul(-1))
	d2 := actor.Cross(c.Sub(b), b.Mul(-1))
	d3 := actor.Cross(a.Sub(c), c.Mul(-1))

	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0

	return !(hasNeg && hasPos)
}

// Result carries the outcome of a GJK query. The terminal simplex encloses
// the origin (Count == 3) for colliding pairs and seeds EPA's polytope.
type Result struct {
	Collide bool
	Simplex Simplex
}

// Detect performs collision detection between two convex rigid bodies by
// testing whether the origin lies inside their Minkowski difference.
//
// Each iteration computes the closest point on the current simplex to the
// origin, reduces the simplex to the supporting feature, and walks a new
// support point in the direction of the origin. The query stops as soon as
// the new point cannot advance past the known closest distance, which
// proves separation.
func Detect(a, b *actor.RigidBody) Result {
	// Start toward the other body; this typically saves iterations over an
	// arbitrary direction
	direction := b.Transform.Position.Sub(a.Transform.Position)
	if direction.LenSqr() < 1e-16 {
		direction = mgl64.Vec2{1, 0}
	}

	var simplex Simplex
	simplex.Add(MinkowskiSupport(a, b, direction))

	for i := 0; i < MaxIterations; i++ {
		closest := simplex.Closest()

		if closest.LenSqr() < originTolerance {
			return Result{Collide: true, Simplex: simplex}
		}

		direction = closest.Mul(-1).Normalize()
		support := MinkowskiSupport(a, b, direction)

		// The support point must pass the closest point along the search
		// direction, otherwise the origin is unreachable.
		if direction.Dot(support.Point.Sub(closest)) <= progressTolerance {
			return Result{Collide: false, Simplex: simplex}
		}

		// A repeated support point cannot refine the simplex further
		if simplex.ContainsPoint(support.Point) {
			return Result{Collide: false, Simplex: simplex}
		}

		simplex.Add(support)
	}

	// Iteration cap reached without a verdict; report the best current
	// estimate, which is no collision
	return Result{Collide: false, Simplex: simplex}
}
