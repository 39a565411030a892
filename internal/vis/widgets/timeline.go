package widgets

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/mrta-coalition-research/internal/vis/state"
)

// Timeline is the scrub bar under the scene. Ticks mark task finish
// times.
type Timeline struct {
	state     *state.State
	scrubbing bool
}

const (
	timelineHeight = 64
	timelineMargin = 20
)

// NewTimeline creates the scrub bar.
func NewTimeline(st *state.State) *Timeline {
	return &Timeline{state: st}
}

// Layout renders the track, ticks, playhead and time labels.
func (t *Timeline) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	width := gtx.Constraints.Max.X
	paint.FillShape(gtx.Ops, color.NRGBA{R: 35, G: 38, B: 42, A: 255},
		clip.Rect(image.Rect(0, 0, width, timelineHeight)).Op())

	t.pointerEvents(gtx)

	trackY := 38
	trackW := width - 2*timelineMargin
	pb := t.state.Playback

	// Track.
	paint.FillShape(gtx.Ops, color.NRGBA{R: 60, G: 65, B: 70, A: 255},
		clip.Rect(image.Rect(timelineMargin, trackY-3, timelineMargin+trackW, trackY+3)).Op())

	// Finish ticks, one per committed real task.
	if pb.Horizon > 0 {
		for _, task := range t.state.Instance.Tasks {
			if task.Dummy {
				continue
			}
			f, ok := t.state.Solution.Finish[task.ID]
			if !ok {
				continue
			}
			x := timelineMargin + int(float64(trackW)*f/pb.Horizon)
			paint.FillShape(gtx.Ops, color.NRGBA{R: 120, G: 130, B: 145, A: 200},
				clip.Rect(image.Rect(x, trackY-9, x+1, trackY-4)).Op())
		}
	}

	// Progress fill and playhead.
	fill := int(float64(trackW) * pb.Progress())
	if fill > 0 {
		paint.FillShape(gtx.Ops, color.NRGBA{R: 100, G: 180, B: 255, A: 255},
			clip.Rect(image.Rect(timelineMargin, trackY-3, timelineMargin+fill, trackY+3)).Op())
	}
	head := timelineMargin + fill
	paint.FillShape(gtx.Ops, color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		clip.Rect(image.Rect(head-6, trackY-6, head+6, trackY+6)).Op())

	t.labels(gtx, th)

	return layout.Dimensions{Size: image.Point{X: width, Y: timelineHeight}}
}

func (t *Timeline) labels(gtx layout.Context, th *material.Theme) {
	pb := t.state.Playback

	current := material.Label(th, 12, fmt.Sprintf("t = %.1fs", pb.CurrentTime))
	current.Color = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
	current.Alignment = text.Start

	speed := material.Label(th, 12, fmt.Sprintf("%gx", pb.Speed))
	speed.Color = color.NRGBA{R: 150, G: 180, B: 200, A: 255}

	end := material.Label(th, 12, fmt.Sprintf("%.1fs", pb.Horizon))
	end.Color = color.NRGBA{R: 150, G: 150, B: 150, A: 255}
	end.Alignment = text.End

	layout.Inset{Top: unit.Dp(4), Left: unit.Dp(20), Right: unit.Dp(20)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceBetween}.Layout(gtx,
			layout.Rigid(current.Layout),
			layout.Rigid(speed.Layout),
			layout.Rigid(end.Layout),
		)
	})
}

func (t *Timeline) pointerEvents(gtx layout.Context) {
	width := gtx.Constraints.Max.X
	area := clip.Rect(image.Rect(0, 0, width, timelineHeight)).Push(gtx.Ops)
	event.Op(gtx.Ops, t)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: t,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release,
		})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch pe.Kind {
		case pointer.Press:
			t.scrubbing = true
			t.seek(pe.Position.X, width)
		case pointer.Drag:
			if t.scrubbing {
				t.seek(pe.Position.X, width)
			}
		case pointer.Release, pointer.Cancel:
			t.scrubbing = false
		}
	}
}

// seek maps a track position to a replay time.
func (t *Timeline) seek(x float32, width int) {
	trackW := float64(width - 2*timelineMargin)
	if trackW <= 0 {
		return
	}
	progress := (float64(x) - timelineMargin) / trackW
	switch {
	case progress < 0:
		progress = 0
	case progress > 1:
		progress = 1
	}
	t.state.Playback.SetTime(progress * t.state.Playback.Horizon)
}
