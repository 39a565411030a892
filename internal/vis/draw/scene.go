// Package draw renders the scheduling scene with Gio paint ops.
package draw

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/mrta-coalition-research/internal/vis/interact"
)

// Scene base colors.
var (
	ColorBackdrop = color.NRGBA{R: 25, G: 28, B: 32, A: 255}
	ColorGrid     = color.NRGBA{R: 40, G: 45, B: 50, A: 255}
)

// Line fills a straight segment of the given pixel width.
func Line(gtx layout.Context, x1, y1, x2, y2, width float32, col color.NRGBA) {
	dx, dy := x2-x1, y2-y1
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length < 0.1 {
		return
	}
	px := -dy / length * width / 2
	py := dx / length * width / 2

	var p clip.Path
	p.Begin(gtx.Ops)
	p.MoveTo(f32.Pt(x1+px, y1+py))
	p.LineTo(f32.Pt(x2+px, y2+py))
	p.LineTo(f32.Pt(x2-px, y2-py))
	p.LineTo(f32.Pt(x1-px, y1-py))
	p.Close()
	paint.FillShape(gtx.Ops, col, clip.Outline{Path: p.End()}.Op())
}

// Circle fills a circle approximated by a polygon.
func Circle(gtx layout.Context, cx, cy, r float32, col color.NRGBA) {
	paint.FillShape(gtx.Ops, col, clip.Outline{Path: circlePath(gtx, cx, cy, r)}.Op())
}

// Ring strokes a circle outline.
func Ring(gtx layout.Context, cx, cy, r, width float32, col color.NRGBA) {
	paint.FillShape(gtx.Ops, col, clip.Stroke{Path: circlePath(gtx, cx, cy, r), Width: width}.Op())
}

func circlePath(gtx layout.Context, cx, cy, r float32) clip.PathSpec {
	const segments = 20
	var p clip.Path
	p.Begin(gtx.Ops)
	p.MoveTo(f32.Pt(cx+r, cy))
	for i := 1; i <= segments; i++ {
		a := float64(i) * 2 * math.Pi / segments
		p.LineTo(f32.Pt(cx+r*float32(math.Cos(a)), cy+r*float32(math.Sin(a))))
	}
	p.Close()
	return p.End()
}

// Square fills an axis-aligned square centered on a point.
func Square(gtx layout.Context, cx, cy, size float32, col color.NRGBA) {
	h := size / 2
	rect := image.Rect(int(cx-h), int(cy-h), int(cx+h), int(cy+h))
	paint.FillShape(gtx.Ops, col, clip.Rect(rect).Op())
}

// Arrow fills a triangular head at (x, y) pointing along (dx, dy).
func Arrow(gtx layout.Context, x, y, dx, dy, size float32, col color.NRGBA) {
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length < 0.01 {
		return
	}
	dx, dy = dx/length, dy/length
	px, py := -dy*size*0.45, dx*size*0.45
	bx, by := x-dx*size, y-dy*size

	var p clip.Path
	p.Begin(gtx.Ops)
	p.MoveTo(f32.Pt(x, y))
	p.LineTo(f32.Pt(bx+px, by+py))
	p.LineTo(f32.Pt(bx-px, by-py))
	p.Close()
	paint.FillShape(gtx.Ops, col, clip.Outline{Path: p.End()}.Op())
}

// Grid draws workspace-aligned grid lines across the viewport. The
// spacing widens when zoomed far out so the grid never degenerates
// into a fill.
func Grid(gtx layout.Context, cam *interact.Camera, spacing float64, col color.NRGBA) {
	for float64(cam.Zoom)*spacing < 8 {
		spacing *= 5
	}

	bounds := gtx.Constraints.Max
	minX, minY := cam.ScreenToWorld(0, 0)
	maxX, maxY := cam.ScreenToWorld(float32(bounds.X), float32(bounds.Y))

	for x := math.Floor(minX/spacing) * spacing; x <= maxX; x += spacing {
		sx, _ := cam.WorldToScreen(x, 0)
		paint.FillShape(gtx.Ops, col, clip.Rect(image.Rect(int(sx), 0, int(sx)+1, bounds.Y)).Op())
	}
	for y := math.Floor(minY/spacing) * spacing; y <= maxY; y += spacing {
		_, sy := cam.WorldToScreen(0, y)
		paint.FillShape(gtx.Ops, col, clip.Rect(image.Rect(0, int(sy), bounds.X, int(sy)+1)).Op())
	}
}
