package emath

// Small fixed-size vectors, used for pixel coordinates and channel weights

import(
	"fmt"
	"math"

	"golang.org/x/image/math/f64"  // Will be "image/math/f64" at some point, hopefully make this file redundant
)

// Use local types so we can hang methods off them
type Vec2 f64.Vec2
type Vec3 f64.Vec3

func (v Vec2)X() float64 { return v[0] }
func (v Vec2)Y() float64 { return v[1] }

func (a Vec2)Add(b Vec2) Vec2        { return Vec2{a[0]+b[0], a[1]+b[1]} }
func (a Vec2)Sub(b Vec2) Vec2        { return Vec2{a[0]-b[0], a[1]-b[1]} }
func (a Vec2)Scale(s float64) Vec2   { return Vec2{a[0]*s, a[1]*s} }

// Dist is the euclidean distance between two points
func (a Vec2)Dist(b Vec2) float64 {
	return math.Hypot(a[0]-b[0], a[1]-b[1])
}

// Div divides componentwise; used to go from window coords to normalized [0,1] coords
func (a Vec2)Div(b Vec2) Vec2 {
	return Vec2{a[0]/b[0], a[1]/b[1]}
}

func (v Vec2)String() string {
	return fmt.Sprintf("(%.2f,%.2f)", v[0], v[1])
}

func (a Vec3)Dot(b Vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func (v Vec3)String() string {
	return fmt.Sprintf("[%12.10f, %12.10f, %12.10f]", v[0], v[1], v[2])
}

func (v *Vec3)FloorAt(min float64) {
	if v[0] < min { v[0] = min }
	if v[1] < min { v[1] = min }
	if v[2] < min { v[2] = min }
}

func (v *Vec3)CeilingAt(max float64) {
	if v[0] > max { v[0] = max }
	if v[1] > max { v[1] = max }
	if v[2] > max { v[2] = max }
}
