package widgets

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/mrta-coalition-research/internal/core"
	"github.com/elektrokombinacija/mrta-coalition-research/internal/vis/draw"
	"github.com/elektrokombinacija/mrta-coalition-research/internal/vis/state"
)

// Gantt is the per-robot schedule panel: travel, wait and execution
// bars on a shared time axis, with the playhead running across.
type Gantt struct {
	state     *state.State
	scrubbing bool
	scrollY   float32
}

const (
	ganttWidth   = 340
	ganttHeaderH = 40
	ganttAxisH   = 26
	ganttRowH    = 30
	ganttRowGap  = 4
	ganttLabelW  = 44
	ganttMarginR = 14
)

var (
	colorGanttBg   = color.NRGBA{R: 33, G: 36, B: 41, A: 255}
	colorGanttWait = color.NRGBA{R: 90, G: 95, B: 105, A: 160}
	colorGanttHead = color.NRGBA{R: 255, G: 255, B: 255, A: 200}
	colorGanttText = color.NRGBA{R: 170, G: 175, B: 185, A: 255}
)

// NewGantt creates the schedule panel.
func NewGantt(st *state.State) *Gantt {
	return &Gantt{state: st}
}

// Layout renders the panel.
func (g *Gantt) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	height := gtx.Constraints.Max.Y
	rect := image.Rect(0, 0, ganttWidth, height)
	defer clip.Rect(rect).Push(gtx.Ops).Pop()
	paint.FillShape(gtx.Ops, colorGanttBg, clip.Rect(rect).Op())

	robots := g.state.Instance.Robots
	viewH := height - ganttHeaderH - ganttAxisH
	maxScroll := float32(len(robots)*(ganttRowH+ganttRowGap) - viewH)
	if maxScroll < 0 {
		maxScroll = 0
	}
	g.pointerEvents(gtx, height, maxScroll)

	layout.Inset{Left: unit.Dp(10), Top: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		title := material.Label(th, 14, "Schedule")
		title.Color = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
		return title.Layout(gtx)
	})

	horizon := g.state.Playback.Horizon
	if horizon <= 0 {
		horizon = 1
	}
	trackW := float64(ganttWidth - ganttLabelW - ganttMarginR)
	xAt := func(t float64) int {
		return ganttLabelW + int(t/horizon*trackW)
	}

	rowsBottom := height - ganttAxisH
	y := ganttHeaderH - int(g.scrollY)
	for _, r := range robots {
		rowY := y
		y += ganttRowH + ganttRowGap
		if rowY+ganttRowH < ganttHeaderH || rowY > rowsBottom {
			continue
		}
		g.drawRow(gtx, th, rowY, xAt, r.ID)
	}

	// Playhead across the rows.
	head := xAt(g.state.Playback.CurrentTime)
	paint.FillShape(gtx.Ops, colorGanttHead,
		clip.Rect(image.Rect(head, ganttHeaderH, head+1, rowsBottom)).Op())

	g.drawAxis(gtx, th, height, horizon)

	return layout.Dimensions{Size: image.Point{X: ganttWidth, Y: height}}
}

// drawRow paints one robot's timeline: a dim bar while traveling, a
// gray one while waiting on predecessors and a full bar while working.
func (g *Gantt) drawRow(gtx layout.Context, th *material.Theme, rowY int, xAt func(float64) int, id core.RobotID) {
	col := draw.RobotColor(id)

	trans := op.Offset(image.Pt(10, rowY+6)).Push(gtx.Ops)
	label := material.Label(th, 11, fmt.Sprintf("R%d", int(id)))
	label.Color = colorGanttText
	label.Layout(gtx)
	trans.Pop()

	// Baseline.
	paint.FillShape(gtx.Ops, color.NRGBA{R: 50, G: 54, B: 60, A: 255},
		clip.Rect(image.Rect(ganttLabelW, rowY+ganttRowH-6, ganttWidth-ganttMarginR, rowY+ganttRowH-5)).Op())

	for _, leg := range g.state.RobotLegs(id) {
		travel := col
		travel.A = 110
		fillSpan(gtx, xAt(leg.Depart), xAt(leg.Arrive), rowY+13, rowY+19, travel)
		fillSpan(gtx, xAt(leg.Arrive), xAt(leg.Start), rowY+13, rowY+19, colorGanttWait)
		fillSpan(gtx, xAt(leg.Start), xAt(leg.End), rowY+7, rowY+25, col)
	}
}

// fillSpan fills one bar, kept at least a pixel wide so zero-length
// intervals stay visible.
func fillSpan(gtx layout.Context, x1, x2, y1, y2 int, col color.NRGBA) {
	if x2 < x1 {
		return
	}
	if x2 == x1 {
		x2 = x1 + 1
	}
	paint.FillShape(gtx.Ops, col, clip.Rect(image.Rect(x1, y1, x2, y2)).Op())
}

func (g *Gantt) drawAxis(gtx layout.Context, th *material.Theme, height int, horizon float64) {
	axisY := height - ganttAxisH
	paint.FillShape(gtx.Ops, color.NRGBA{R: 60, G: 65, B: 70, A: 255},
		clip.Rect(image.Rect(ganttLabelW, axisY, ganttWidth-ganttMarginR, axisY+1)).Op())

	layout.Inset{Left: unit.Dp(16), Right: unit.Dp(6), Bottom: unit.Dp(4)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.S.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			zero := material.Label(th, 11, "0s")
			zero.Color = colorGanttText
			end := material.Label(th, 11, fmt.Sprintf("%.0fs", horizon))
			end.Color = colorGanttText
			return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceBetween}.Layout(gtx,
				layout.Rigid(zero.Layout),
				layout.Rigid(end.Layout),
			)
		})
	})
}

func (g *Gantt) pointerEvents(gtx layout.Context, height int, maxScroll float32) {
	area := clip.Rect(image.Rect(0, 0, ganttWidth, height)).Push(gtx.Ops)
	event.Op(gtx.Ops, g)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: g,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Scroll,
		})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch pe.Kind {
		case pointer.Scroll:
			g.scrollY += pe.Scroll.Y
			switch {
			case g.scrollY < 0:
				g.scrollY = 0
			case g.scrollY > maxScroll:
				g.scrollY = maxScroll
			}
		case pointer.Press:
			if pe.Position.Y > ganttHeaderH && pe.Position.Y < float32(height-ganttAxisH) {
				g.scrubbing = true
				g.seek(pe.Position.X)
			}
		case pointer.Drag:
			if g.scrubbing {
				g.seek(pe.Position.X)
			}
		case pointer.Release, pointer.Cancel:
			g.scrubbing = false
		}
	}
}

// seek maps a panel x position to a replay time.
func (g *Gantt) seek(x float32) {
	trackW := float64(ganttWidth - ganttLabelW - ganttMarginR)
	progress := (float64(x) - ganttLabelW) / trackW
	switch {
	case progress < 0:
		progress = 0
	case progress > 1:
		progress = 1
	}
	g.state.Playback.SetTime(progress * g.state.Playback.Horizon)
}
