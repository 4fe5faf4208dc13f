package game

import "math"

// Vec2 is a 2D vector in screen units. Y grows downward.
type Vec2 struct {
	X, Y float32
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) Dot(o Vec2) float32 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vec2) Len() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// Normalize returns the unit vector in v's direction. The zero vector
// normalizes to itself.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Reflect mirrors v across the unit normal n: v - 2(v·n)n.
func (v Vec2) Reflect(n Vec2) Vec2 {
	return v.Sub(n.Scale(2 * v.Dot(n)))
}

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X, Y, W, H float32
}

func (r Rect) Left() float32   { return r.X }
func (r Rect) Right() float32  { return r.X + r.W }
func (r Rect) Top() float32    { return r.Y }
func (r Rect) Bottom() float32 { return r.Y + r.H }

func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.W/2, r.Y + r.H/2}
}

// Overlaps reports whether r and o intersect. Touching edges count.
func (r Rect) Overlaps(o Rect) bool {
	return r.Left() <= o.Right() &&
		r.Right() >= o.Left() &&
		r.Top() <= o.Bottom() &&
		r.Bottom() >= o.Top()
}
