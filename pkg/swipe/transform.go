package swipe

import (
	"fmt"
	"math"
)

const (
	// rotation applied per pixel of horizontal drag, in degrees
	rotationPerPixel = 0.1
	// opacity lost per pixel of horizontal drag
	fadePerPixel = 0.002
	// exitRotation degrees added while a committed card leaves the screen
	exitRotation = 15
)

// Point a position or offset in device-independent pixels
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns p - q
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Transform how the top card is drawn
type Transform struct {
	Offset  Point   `json:"offset"`
	Rotate  float64 `json:"rotate"` // degrees
	Opacity float64 `json:"opacity"`
	// Exit is -1 or 1 while the card animates off-screen to that side, else 0
	Exit int `json:"exit"`
}

// Identity the resting transform
var Identity = Transform{Opacity: 1}

// DragTransform follows the pointer: translate by offset, tilt with x, fade with |x|
func DragTransform(offset Point) Transform {
	return Transform{
		Offset:  offset,
		Rotate:  offset.X * rotationPerPixel,
		Opacity: clamp(1-math.Abs(offset.X)*fadePerPixel, 0, 1),
	}
}

// ExitTransform moves the card fully off-screen toward the decision's side
func ExitTransform(direction int) Transform {
	return Transform{
		Rotate:  float64(direction) * exitRotation,
		Opacity: 0,
		Exit:    direction,
	}
}

// CSS renders t as a CSS transform value
func (t Transform) CSS() string {
	if t.Exit != 0 {
		return fmt.Sprintf("translateX(%d%%) rotate(%gdeg)", t.Exit*100, t.Rotate)
	}
	return fmt.Sprintf("translate(%gpx, %gpx) rotate(%gdeg)", t.Offset.X, t.Offset.Y, t.Rotate)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
