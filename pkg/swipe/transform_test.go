package swipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDragTransform(t *testing.T) {
	tr := DragTransform(Point{X: -200, Y: 15})
	assert.InDelta(t, -20.0, tr.Rotate, 1e-9)
	assert.InDelta(t, 0.6, tr.Opacity, 1e-9)
	assert.Equal(t, "translate(-200px, 15px) rotate(-20deg)", tr.CSS())

	// far drags fade out completely rather than going negative
	assert.Equal(t, 0.0, DragTransform(Point{X: 900}).Opacity)
	assert.Equal(t, 1.0, DragTransform(Point{}).Opacity)
}

func TestExitTransform(t *testing.T) {
	assert.Equal(t, "translateX(100%) rotate(15deg)", ExitTransform(1).CSS())
	assert.Equal(t, "translateX(-100%) rotate(-15deg)", ExitTransform(-1).CSS())
	assert.Equal(t, 0.0, ExitTransform(1).Opacity)
}
