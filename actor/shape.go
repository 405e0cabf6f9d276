package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ShapeType represents the type of collision shape
type ShapeType int

const (
	ShapeTypeCircle ShapeType = iota
	ShapeTypePolygon
)

// Shape is the interface that all collision shapes must implement.
// The set is closed: Circle and Polygon are the only convex shapes the
// narrow phase understands, and both are fully described by their support
// function.
type Shape interface {
	// ComputeAABB calculates the axis-aligned bounding box for the shape
	// at the given transform
	ComputeAABB(transform Transform)
	GetAABB() AABB
	// Area returns the shape's surface area
	Area() float64
	// Inertia returns the moment of inertia about the shape's centroid
	// for the given mass
	Inertia(mass float64) float64
	// Support returns the farthest local-space point along a local-space
	// direction
	Support(direction mgl64.Vec2) mgl64.Vec2
	// ContainsPoint reports whether a local-space point lies inside the shape
	ContainsPoint(point mgl64.Vec2) bool
	// ContactFeature returns the local-space feature (a single point for a
	// circle, the best-aligned edge for a polygon) facing a local-space
	// direction. Used to build multi-point contact manifolds.
	ContactFeature(direction mgl64.Vec2) []mgl64.Vec2
	Type() ShapeType
}

// Circle is a convex shape defined by its radius, centered on the body origin.
type Circle struct {
	Radius float64
	aabb   AABB
}

func NewCircle(radius float64) *Circle {
	if radius <= 0 {
		panic("circle radius must be positive")
	}
	return &Circle{Radius: radius}
}

func (c *Circle) ComputeAABB(transform Transform) {
	radiusVec := mgl64.Vec2{c.Radius, c.Radius}

	c.aabb = AABB{
		Min: transform.Position.Sub(radiusVec),
		Max: transform.Position.Add(radiusVec),
	}
}

func (c *Circle) GetAABB() AABB {
	return c.aabb
}

func (c *Circle) Area() float64 {
	return math.Pi * c.Radius * c.Radius
}

// Inertia for a solid disc: I = (1/2) * m * r²
func (c *Circle) Inertia(mass float64) float64 {
	return 0.5 * mass * c.Radius * c.Radius
}

func (c *Circle) Support(direction mgl64.Vec2) mgl64.Vec2 {
	if direction.LenSqr() < 1e-16 {
		return mgl64.Vec2{c.Radius, 0}
	}
	return direction.Normalize().Mul(c.Radius)
}

func (c *Circle) ContainsPoint(point mgl64.Vec2) bool {
	return point.LenSqr() <= c.Radius*c.Radius
}

func (c *Circle) ContactFeature(direction mgl64.Vec2) []mgl64.Vec2 {
	return []mgl64.Vec2{c.Support(direction)}
}

func (c *Circle) Type() ShapeType {
	return ShapeTypeCircle
}

// Polygon is a convex shape defined by an ordered vertex loop. The winding
// may be either direction. The constructor recenters the vertices on the
// area centroid once, permanently, so the body origin is always the center
// of mass and the closed-form inertia below is valid.
type Polygon struct {
	Vertices []mgl64.Vec2
	aabb     AABB
}

func NewPolygon(vertices []mgl64.Vec2) *Polygon {
	if len(vertices) < 3 {
		panic("polygon requires at least 3 vertices")
	}

	p := &Polygon{Vertices: make([]mgl64.Vec2, len(vertices))}
	copy(p.Vertices, vertices)

	centroid := p.centroid()
	for i := range p.Vertices {
		p.Vertices[i] = p.Vertices[i].Sub(centroid)
	}

	return p
}

// NewBox creates a 4-vertex polygon centered on the origin.
func NewBox(width, height float64) *Polygon {
	hw, hh := width/2, height/2

	return NewPolygon([]mgl64.Vec2{
		{-hw, -hh},
		{hw, -hh},
		{hw, hh},
		{-hw, hh},
	})
}

func (p *Polygon) ComputeAABB(transform Transform) {
	world := transform.LocalToGlobal(p.Vertices[0])
	min := world
	max := world

	for i := 1; i < len(p.Vertices); i++ {
		world = transform.LocalToGlobal(p.Vertices[i])

		min[0] = math.Min(min[0], world[0])
		min[1] = math.Min(min[1], world[1])
		max[0] = math.Max(max[0], world[0])
		max[1] = math.Max(max[1], world[1])
	}

	p.aabb = AABB{Min: min, Max: max}
}

func (p *Polygon) GetAABB() AABB {
	return p.aabb
}

// signedArea is the shoelace sum; the sign encodes the winding direction.
func (p *Polygon) signedArea() float64 {
	sum := 0.0
	for i := range p.Vertices {
		v1 := p.Vertices[i]
		v2 := p.Vertices[(i+1)%len(p.Vertices)]
		sum += Cross(v1, v2)
	}
	return sum / 2.0
}

func (p *Polygon) Area() float64 {
	return math.Abs(p.signedArea())
}

// centroid computes the area-weighted centroid of the vertex loop.
// The signed crosses cancel the winding, so the result is winding-independent.
func (p *Polygon) centroid() mgl64.Vec2 {
	var sum mgl64.Vec2
	for i := range p.Vertices {
		v1 := p.Vertices[i]
		v2 := p.Vertices[(i+1)%len(p.Vertices)]
		sum = sum.Add(v1.Add(v2).Mul(Cross(v1, v2)))
	}
	return sum.Mul(1.0 / (6.0 * p.signedArea()))
}

// Inertia returns the moment of inertia about the centroid, summing per-edge
// triangle contributions. Valid only because the constructor recentered the
// vertices on the centroid.
func (p *Polygon) Inertia(mass float64) float64 {
	var numer, denom float64
	for i := range p.Vertices {
		v1 := p.Vertices[i]
		v2 := p.Vertices[(i+1)%len(p.Vertices)]
		cross := Cross(v1, v2)

		numer += cross * (v1.Dot(v1) + v1.Dot(v2) + v2.Dot(v2))
		denom += cross
	}
	return mass * numer / (6.0 * denom)
}

func (p *Polygon) Support(direction mgl64.Vec2) mgl64.Vec2 {
	best := p.Vertices[0]
	bestDot := best.Dot(direction)

	for i := 1; i < len(p.Vertices); i++ {
		if dot := p.Vertices[i].Dot(direction); dot > bestDot {
			best = p.Vertices[i]
			bestDot = dot
		}
	}

	return best
}

// ContainsPoint tests a convex polygon regardless of winding: the point is
// inside when every edge cross product carries the same sign.
func (p *Polygon) ContainsPoint(point mgl64.Vec2) bool {
	positive, negative := false, false

	for i := range p.Vertices {
		v1 := p.Vertices[i]
		v2 := p.Vertices[(i+1)%len(p.Vertices)]
		cross := Cross(v2.Sub(v1), point.Sub(v1))

		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}

	return true
}

// ContactFeature returns the edge whose outward normal is most aligned with
// the direction. The support vertex is one endpoint; the better-aligned of
// its two incident edges supplies the other.
func (p *Polygon) ContactFeature(direction mgl64.Vec2) []mgl64.Vec2 {
	n := len(p.Vertices)

	bestIndex := 0
	bestDot := p.Vertices[0].Dot(direction)
	for i := 1; i < n; i++ {
		if dot := p.Vertices[i].Dot(direction); dot > bestDot {
			bestIndex = i
			bestDot = dot
		}
	}

	prev := p.Vertices[(bestIndex+n-1)%n]
	curr := p.Vertices[bestIndex]
	next := p.Vertices[(bestIndex+1)%n]

	// Compare the two incident edges by how perpendicular they are to the
	// direction; the flatter edge is the contact feature.
	toPrev := curr.Sub(prev)
	toNext := next.Sub(curr)

	if math.Abs(toPrev.Normalize().Dot(direction)) <= math.Abs(toNext.Normalize().Dot(direction)) {
		return []mgl64.Vec2{prev, curr}
	}
	return []mgl64.Vec2{curr, next}
}

func (p *Polygon) Type() ShapeType {
	return ShapeTypePolygon
}
