// Package interact implements direct manipulation of the scene view:
// drag to pan, scroll to zoom.
package interact

import (
	"gioui.org/io/pointer"
)

const (
	minZoom = 0.05
	maxZoom = 40
)

// Camera maps workspace coordinates (meters) onto screen pixels with
// a pan offset and a zoom factor.
type Camera struct {
	OffsetX float32
	OffsetY float32
	Zoom    float32

	panning bool
	lastX   float32
	lastY   float32
}

// NewCamera returns a camera at 1:1 zoom. Call Frame to fit an
// instance before first use.
func NewCamera() *Camera {
	return &Camera{Zoom: 1}
}

// WorldToScreen projects a workspace point to pixels.
func (c *Camera) WorldToScreen(x, y float64) (float32, float32) {
	return float32(x)*c.Zoom + c.OffsetX, float32(y)*c.Zoom + c.OffsetY
}

// ScreenToWorld inverts the projection.
func (c *Camera) ScreenToWorld(x, y float32) (float64, float64) {
	return float64((x - c.OffsetX) / c.Zoom), float64((y - c.OffsetY) / c.Zoom)
}

// HandleEvent applies one pointer event: right or middle drag pans,
// scrolling zooms around the cursor.
func (c *Camera) HandleEvent(ev pointer.Event) {
	switch ev.Kind {
	case pointer.Press:
		if ev.Buttons.Contain(pointer.ButtonSecondary) || ev.Buttons.Contain(pointer.ButtonTertiary) {
			c.panning = true
		}
		c.lastX, c.lastY = ev.Position.X, ev.Position.Y

	case pointer.Drag:
		if c.panning {
			c.OffsetX += ev.Position.X - c.lastX
			c.OffsetY += ev.Position.Y - c.lastY
		}
		c.lastX, c.lastY = ev.Position.X, ev.Position.Y

	case pointer.Release, pointer.Cancel:
		c.panning = false

	case pointer.Scroll:
		if ev.Scroll.Y == 0 {
			return
		}
		factor := float32(1.1)
		if ev.Scroll.Y > 0 {
			factor = 1 / factor
		}
		c.zoomAround(factor, ev.Position.X, ev.Position.Y)
	}
}

// zoomAround rescales while keeping the workspace point under the
// cursor fixed.
func (c *Camera) zoomAround(factor, px, py float32) {
	wx, wy := c.ScreenToWorld(px, py)
	c.Zoom = clampZoom(c.Zoom * factor)
	sx, sy := c.WorldToScreen(wx, wy)
	c.OffsetX += px - sx
	c.OffsetY += py - sy
}

// Frame positions the camera so the given workspace rectangle fills
// the viewport with a margin.
func (c *Camera) Frame(minX, minY, maxX, maxY float64, viewW, viewH float32) {
	const margin = 60
	w, h := maxX-minX, maxY-minY
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	zx := (viewW - 2*margin) / float32(w)
	zy := (viewH - 2*margin) / float32(h)
	z := zx
	if zy < z {
		z = zy
	}
	c.Zoom = clampZoom(z)
	c.OffsetX = viewW/2 - float32(minX+maxX)/2*c.Zoom
	c.OffsetY = viewH/2 - float32(minY+maxY)/2*c.Zoom
}

func clampZoom(z float32) float32 {
	switch {
	case z < minZoom:
		return minZoom
	case z > maxZoom:
		return maxZoom
	}
	return z
}
