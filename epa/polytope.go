package epa

import (
	"math"

	"github.com/akmonengine/quill/actor"
	"github.com/akmonengine/quill/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

// Polytope is a cyclic vertex loop in the Minkowski difference, seeded from
// a terminal GJK 3-simplex and grown edge-wise during EPA. Each vertex keeps
// the witness pairing of its originating support point.
type Polytope struct {
	Vertices []gjk.SupportPoint
}

// NewPolytope builds the initial polytope from a terminal GJK simplex.
// The simplex must have 3 vertices (the origin is enclosed).
func NewPolytope(simplex *gjk.Simplex) *Polytope {
	p := &Polytope{Vertices: make([]gjk.SupportPoint, 3, 8)}
	copy(p.Vertices, simplex.Points[:3])
	return p
}

// Edge identifies the polytope edge closest to the origin.
type Edge struct {
	Index    int        // index of the edge's first vertex
	Normal   mgl64.Vec2 // outward unit normal
	Distance float64    // distance from the origin to the edge
}

// ClosestEdge scans the vertex loop for the edge with minimum distance to
// the origin. Normals are oriented away from the origin, which the polytope
// encloses.
func (p *Polytope) ClosestEdge() Edge {
	closest := Edge{Index: 0, Distance: math.MaxFloat64}

	for i := range p.Vertices {
		a := p.Vertices[i].Point
		b := p.Vertices[(i+1)%len(p.Vertices)].Point

		dir := b.Sub(a)
		if dir.LenSqr() < 1e-16 {
			continue // degenerate edge, duplicated vertex
		}

		normal := actor.Perp(dir).Normalize()

		// Orient outward: the origin is inside, so the outward normal has a
		// non-negative projection on either endpoint
		distance := normal.Dot(a)
		if distance < 0 {
			normal = normal.Mul(-1)
			distance = -distance
		}

		if distance < closest.Distance {
			closest = Edge{Index: i, Normal: normal, Distance: distance}
		}
	}

	return closest
}

// Insert grows the polytope by splitting the edge starting at index with a
// new support point.
func (p *Polytope) Insert(index int, sp gjk.SupportPoint) {
	at := index + 1
	p.Vertices = append(p.Vertices, gjk.SupportPoint{})
	copy(p.Vertices[at+1:], p.Vertices[at:])
	p.Vertices[at] = sp
}
