package model

import "math"

// Location представляет точку в игровом мире.
// X, Y: планарные координаты, Z: высота.
// Value type, передаётся по значению (immutable).
type Location struct {
	X float64
	Y float64
	Z float64
}

// NewLocation создаёт Location с указанными координатами.
func NewLocation(x, y, z float64) Location {
	return Location{X: x, Y: y, Z: z}
}

// WithZ возвращает новый Location с обновлённой высотой (immutable pattern).
func (l Location) WithZ(z float64) Location {
	l.Z = z
	return l
}

// Add returns l + o.
func (l Location) Add(o Location) Location {
	return Location{X: l.X + o.X, Y: l.Y + o.Y, Z: l.Z + o.Z}
}

// Sub returns l - o.
func (l Location) Sub(o Location) Location {
	return Location{X: l.X - o.X, Y: l.Y - o.Y, Z: l.Z - o.Z}
}

// Scale returns l * k.
func (l Location) Scale(k float64) Location {
	return Location{X: l.X * k, Y: l.Y * k, Z: l.Z * k}
}

// Dot returns the dot product of l and o.
func (l Location) Dot(o Location) float64 {
	return l.X*o.X + l.Y*o.Y + l.Z*o.Z
}

// Length returns the vector length.
func (l Location) Length() float64 {
	return math.Sqrt(l.Dot(l))
}

// Normalized returns the unit vector in the direction of l.
// Zero vector stays zero.
func (l Location) Normalized() Location {
	n := l.Length()
	if n == 0 {
		return Location{}
	}
	return l.Scale(1 / n)
}

// DistanceSquared возвращает квадрат расстояния до другой точки (без sqrt для производительности).
func (l Location) DistanceSquared(other Location) float64 {
	dx := l.X - other.X
	dy := l.Y - other.Y
	dz := l.Z - other.Z
	return dx*dx + dy*dy + dz*dz
}

// Distance возвращает 3D расстояние до другой точки.
func (l Location) Distance(other Location) float64 {
	return math.Sqrt(l.DistanceSquared(other))
}

// PlanarDistance returns the distance ignoring height.
func (l Location) PlanarDistance(other Location) float64 {
	return math.Hypot(l.X-other.X, l.Y-other.Y)
}

// DirectionFromHeading returns the planar unit vector for a heading in radians
// (0 points along +X, counter-clockwise).
func DirectionFromHeading(heading float64) Location {
	return Location{X: math.Cos(heading), Y: math.Sin(heading)}
}

// HeadingTowards returns the heading in radians from l to target.
func (l Location) HeadingTowards(target Location) float64 {
	return math.Atan2(target.Y-l.Y, target.X-l.X)
}

// Ray is a half-line starting at Origin. Direction is expected to be a unit vector.
type Ray struct {
	Origin    Location
	Direction Location
}

// At returns the point at distance d along the ray.
func (r Ray) At(d float64) Location {
	return r.Origin.Add(r.Direction.Scale(d))
}

// InverseLerp maps v from [a, b] to [0, 1], clamped.
// Degenerate range (a == b) returns 0.
func InverseLerp(a, b, v float64) float64 {
	if a == b {
		return 0
	}
	t := (v - a) / (b - a)
	return min(max(t, 0), 1)
}
