// pkg/physics/collision.go
package physics

// Circle represents a circular collision shape
type Circle struct {
	Center Vector2D
	Radius float64
}

// Collides checks if two circles are overlapping (touching is not a hit)
func (c Circle) Collides(other Circle) bool {
	return c.Center.Distance(other.Center) < c.Radius+other.Radius
}

// ContainsPoint reports whether p lies strictly inside the circle
func (c Circle) ContainsPoint(p Vector2D) bool {
	return c.Center.Distance(p) < c.Radius
}

// CollisionResult contains information about a collision
type CollisionResult struct {
	Collided     bool
	Normal       Vector2D
	Penetration  float64
	ContactPoint Vector2D
}

// CheckCollision performs detailed collision detection between two circles.
// Coincident centers report a collision with a zero normal.
func CheckCollision(a, b Circle) CollisionResult {
	// Vector from A to B
	normal := b.Center.Sub(a.Center)
	distance := normal.Length()

	if distance >= a.Radius+b.Radius {
		return CollisionResult{Collided: false}
	}

	penetration := a.Radius + b.Radius - distance

	normal = normal.Normalize()
	contactPoint := a.Center.Add(normal.Scale(a.Radius))

	return CollisionResult{
		Collided:     true,
		Normal:       normal,
		Penetration:  penetration,
		ContactPoint: contactPoint,
	}
}

// Segment is a line segment from A to B, used for beam weapons
type Segment struct {
	A Vector2D
	B Vector2D
}

// SegmentFromHeading builds a segment starting at origin along heading
func SegmentFromHeading(origin Vector2D, heading, length float64) Segment {
	return Segment{A: origin, B: origin.Add(FromAngle(heading, length))}
}

// Distance returns the distance from p to the segment
func (s Segment) Distance(p Vector2D) float64 {
	return PointSegmentDistance(p, s.A, s.B)
}

// Hits reports whether the segment passes strictly inside the circle
func (s Segment) Hits(c Circle) bool {
	return s.Distance(c.Center) < c.Radius
}

// Bounds returns the axis-aligned rectangle enclosing the segment, grown by pad
func (s Segment) Bounds(pad float64) Rect {
	minX, maxX := s.A.X, s.B.X
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := s.A.Y, s.B.Y
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	return Rect{
		Center: Vector2D{X: (minX + maxX) / 2, Y: (minY + maxY) / 2},
		Width:  maxX - minX + 2*pad,
		Height: maxY - minY + 2*pad,
	}
}

// Rect represents a rectangular area described by its center
type Rect struct {
	Center Vector2D
	Width  float64
	Height float64
}

// Contains reports whether point lies in the half-open rectangle
func (r Rect) Contains(point Vector2D) bool {
	return point.X >= r.Center.X-r.Width/2 &&
		point.X < r.Center.X+r.Width/2 &&
		point.Y >= r.Center.Y-r.Height/2 &&
		point.Y < r.Center.Y+r.Height/2
}

// Intersects reports whether two rectangles overlap
func (r Rect) Intersects(other Rect) bool {
	return !(other.Center.X-other.Width/2 > r.Center.X+r.Width/2 ||
		other.Center.X+other.Width/2 < r.Center.X-r.Width/2 ||
		other.Center.Y-other.Height/2 > r.Center.Y+r.Height/2 ||
		other.Center.Y+other.Height/2 < r.Center.Y-r.Height/2)
}

// SquareAround returns a square of the given half extent centred on p
func SquareAround(p Vector2D, halfExtent float64) Rect {
	return Rect{Center: p, Width: halfExtent * 2, Height: halfExtent * 2}
}

// maxQuadDepth bounds subdivision so stacked points cannot recurse forever
const maxQuadDepth = 8

// QuadTree for spatial partitioning
type QuadTree[T any] struct {
	Boundary  Rect
	Capacity  int
	Points    []Vector2D
	Objects   []T
	Divided   bool
	depth     int
	NorthWest *QuadTree[T]
	NorthEast *QuadTree[T]
	SouthWest *QuadTree[T]
	SouthEast *QuadTree[T]
}

// NewQuadTree creates a new quad tree with the given boundary and capacity
func NewQuadTree[T any](boundary Rect, capacity int) *QuadTree[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &QuadTree[T]{
		Boundary: boundary,
		Capacity: capacity,
		Points:   make([]Vector2D, 0, capacity),
		Objects:  make([]T, 0, capacity),
	}
}

// Insert adds an object at point. It returns false when point is outside the tree.
func (qt *QuadTree[T]) Insert(point Vector2D, object T) bool {
	if !qt.Boundary.Contains(point) {
		return false
	}

	if (len(qt.Points) < qt.Capacity && !qt.Divided) || qt.depth >= maxQuadDepth {
		qt.Points = append(qt.Points, point)
		qt.Objects = append(qt.Objects, object)
		return true
	}

	if !qt.Divided {
		qt.Subdivide()
	}

	return qt.NorthWest.Insert(point, object) ||
		qt.NorthEast.Insert(point, object) ||
		qt.SouthWest.Insert(point, object) ||
		qt.SouthEast.Insert(point, object)
}

// Subdivide splits the quadtree into four quadrants
func (qt *QuadTree[T]) Subdivide() {
	x := qt.Boundary.Center.X
	y := qt.Boundary.Center.Y
	w := qt.Boundary.Width / 2
	h := qt.Boundary.Height / 2

	nw := Rect{Center: Vector2D{X: x - w/2, Y: y + h/2}, Width: w, Height: h}
	ne := Rect{Center: Vector2D{X: x + w/2, Y: y + h/2}, Width: w, Height: h}
	sw := Rect{Center: Vector2D{X: x - w/2, Y: y - h/2}, Width: w, Height: h}
	se := Rect{Center: Vector2D{X: x + w/2, Y: y - h/2}, Width: w, Height: h}

	qt.NorthWest = NewQuadTree[T](nw, qt.Capacity)
	qt.NorthEast = NewQuadTree[T](ne, qt.Capacity)
	qt.SouthWest = NewQuadTree[T](sw, qt.Capacity)
	qt.SouthEast = NewQuadTree[T](se, qt.Capacity)
	for _, child := range []*QuadTree[T]{qt.NorthWest, qt.NorthEast, qt.SouthWest, qt.SouthEast} {
		child.depth = qt.depth + 1
	}
	qt.Divided = true
}

// Query returns all objects whose point lies inside area
func (qt *QuadTree[T]) Query(area Rect) []T {
	return qt.query(area, nil)
}

func (qt *QuadTree[T]) query(area Rect, found []T) []T {
	if !qt.Boundary.Intersects(area) {
		return found
	}

	for i, point := range qt.Points {
		if area.Contains(point) {
			found = append(found, qt.Objects[i])
		}
	}

	if !qt.Divided {
		return found
	}

	found = qt.NorthWest.query(area, found)
	found = qt.NorthEast.query(area, found)
	found = qt.SouthWest.query(area, found)
	found = qt.SouthEast.query(area, found)

	return found
}

// Clear empties the tree, keeping its boundary and capacity
func (qt *QuadTree[T]) Clear() {
	qt.Points = qt.Points[:0]
	qt.Objects = qt.Objects[:0]
	qt.Divided = false
	qt.NorthWest = nil
	qt.NorthEast = nil
	qt.SouthWest = nil
	qt.SouthEast = nil
}

// Len returns the number of objects stored in the tree
func (qt *QuadTree[T]) Len() int {
	n := len(qt.Objects)
	if qt.Divided {
		n += qt.NorthWest.Len() + qt.NorthEast.Len() + qt.SouthWest.Len() + qt.SouthEast.Len()
	}
	return n
}
