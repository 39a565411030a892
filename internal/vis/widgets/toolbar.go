package widgets

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/mrta-coalition-research/internal/vis/state"
)

// Toolbar carries the playback, view and scheduler controls.
type Toolbar struct {
	state *state.State
	onFit func()

	stepBackBtn  widget.Clickable
	playBtn      widget.Clickable
	pauseBtn     widget.Clickable
	stepFwdBtn   widget.Clickable
	resetBtn     widget.Clickable
	speedDownBtn widget.Clickable
	speedUpBtn   widget.Clickable
	fitBtn       widget.Clickable
	ganttBtn     widget.Clickable
	schedBtn     widget.Clickable
}

// NewToolbar creates the toolbar. onFit reframes the scene camera.
func NewToolbar(st *state.State, onFit func()) *Toolbar {
	return &Toolbar{state: st, onFit: onFit}
}

// Layout renders the toolbar.
func (t *Toolbar) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	height := 48
	paint.FillShape(gtx.Ops, color.NRGBA{R: 40, G: 43, B: 48, A: 255},
		clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, height)).Op())

	t.handleClicks(gtx)

	return layout.Inset{Left: unit.Dp(10), Right: unit.Dp(10), Top: unit.Dp(8), Bottom: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle, Spacing: layout.SpaceStart}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.layoutPlayback(gtx, th)
			}),
			layout.Rigid(t.separator),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.layoutSpeed(gtx, th)
			}),
			layout.Rigid(t.separator),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.layoutView(gtx, th)
			}),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return layout.Dimensions{}
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.layoutStatus(gtx, th)
			}),
		)
	})
}

func (t *Toolbar) layoutPlayback(gtx layout.Context, th *material.Theme) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceStart}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.button(gtx, th, &t.stepBackBtn, "|<", false)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if t.state.Playback.Playing {
				return t.button(gtx, th, &t.pauseBtn, "||", false)
			}
			return t.button(gtx, th, &t.playBtn, ">", false)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.button(gtx, th, &t.stepFwdBtn, ">|", false)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.button(gtx, th, &t.resetBtn, "[]", false)
		}),
	)
}

func (t *Toolbar) layoutSpeed(gtx layout.Context, th *material.Theme) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceStart}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.button(gtx, th, &t.speedDownBtn, "-", false)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.button(gtx, th, &t.speedUpBtn, "+", false)
		}),
	)
}

func (t *Toolbar) layoutView(gtx layout.Context, th *material.Theme) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceStart}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.button(gtx, th, &t.fitBtn, "Fit", false)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.button(gtx, th, &t.ganttBtn, "Gantt", t.state.ShowGantt)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return t.button(gtx, th, &t.schedBtn, t.state.Scheduler, false)
		}),
	)
}

// layoutStatus shows the replayed schedule's bottom line.
func (t *Toolbar) layoutStatus(gtx layout.Context, th *material.Theme) layout.Dimensions {
	sol := t.state.Solution
	text := fmt.Sprintf("makespan %.1fs", sol.Makespan)
	col := color.NRGBA{R: 180, G: 190, B: 200, A: 255}
	if !sol.Feasible {
		text = fmt.Sprintf("INFEASIBLE, %d tasks unplaced", len(sol.Unscheduled))
		col = color.NRGBA{R: 235, G: 90, B: 90, A: 255}
	}
	label := material.Label(th, 13, text)
	label.Color = col
	return layout.Inset{Right: unit.Dp(4)}.Layout(gtx, label.Layout)
}

func (t *Toolbar) separator(gtx layout.Context) layout.Dimensions {
	return layout.Inset{Left: unit.Dp(8), Right: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		paint.FillShape(gtx.Ops, color.NRGBA{R: 60, G: 65, B: 70, A: 255},
			clip.Rect(image.Rect(0, 0, 1, 24)).Op())
		return layout.Dimensions{Size: image.Point{X: 1, Y: 24}}
	})
}

func (t *Toolbar) button(gtx layout.Context, th *material.Theme, btn *widget.Clickable, text string, active bool) layout.Dimensions {
	bg := color.NRGBA{R: 55, G: 58, B: 65, A: 255}
	if active {
		bg = color.NRGBA{R: 80, G: 130, B: 180, A: 255}
	}
	if btn.Hovered() {
		bg.R = minU8(bg.R+15, 255)
		bg.G = minU8(bg.G+15, 255)
		bg.B = minU8(bg.B+15, 255)
	}

	return btn.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Background{}.Layout(gtx,
			func(gtx layout.Context) layout.Dimensions {
				if gtx.Constraints.Min.X < 32 {
					gtx.Constraints.Min.X = 32
				}
				gtx.Constraints.Min.Y = 28
				rect := image.Rect(0, 0, gtx.Constraints.Min.X, gtx.Constraints.Min.Y)
				paint.FillShape(gtx.Ops, bg, clip.Rect(rect).Op())
				return layout.Dimensions{Size: gtx.Constraints.Min}
			},
			func(gtx layout.Context) layout.Dimensions {
				return layout.Inset{Left: unit.Dp(8), Right: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						label := material.Label(th, 12, text)
						label.Color = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
						return label.Layout(gtx)
					})
				})
			},
		)
	})
}

func (t *Toolbar) handleClicks(gtx layout.Context) {
	pb := t.state.Playback
	for t.stepBackBtn.Clicked(gtx) {
		pb.Step(-1)
	}
	for t.playBtn.Clicked(gtx) {
		pb.TogglePlay()
	}
	for t.pauseBtn.Clicked(gtx) {
		pb.TogglePlay()
	}
	for t.stepFwdBtn.Clicked(gtx) {
		pb.Step(1)
	}
	for t.resetBtn.Clicked(gtx) {
		pb.Reset()
	}

	for t.speedDownBtn.Clicked(gtx) {
		pb.SetSpeed(pb.Speed / 2)
	}
	for t.speedUpBtn.Clicked(gtx) {
		pb.SetSpeed(pb.Speed * 2)
	}

	for t.fitBtn.Clicked(gtx) {
		if t.onFit != nil {
			t.onFit()
		}
	}
	for t.ganttBtn.Clicked(gtx) {
		t.state.ShowGantt = !t.state.ShowGantt
	}
	for t.schedBtn.Clicked(gtx) {
		t.state.CycleScheduler()
	}
}

func minU8(a, b uint8) uint8 {
	if a < b {
		return a
	}
	return b
}
