// Package vis implements the Gio schedule visualizer: a 2D replay of
// a committed coalition schedule with a gantt panel and a scrub bar.
package vis

import (
	"image/color"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/mrta-coalition-research/internal/algo"
	"github.com/elektrokombinacija/mrta-coalition-research/internal/core"
	"github.com/elektrokombinacija/mrta-coalition-research/internal/vis/interact"
	"github.com/elektrokombinacija/mrta-coalition-research/internal/vis/state"
	"github.com/elektrokombinacija/mrta-coalition-research/internal/vis/widgets"
)

// App wires the visualizer together: model, camera and widgets.
type App struct {
	state     *state.State
	theme     *material.Theme
	workspace *widgets.Workspace
	timeline  *widgets.Timeline
	toolbar   *widgets.Toolbar
	gantt     *widgets.Gantt
}

// NewApp solves the instance with the named scheduler and builds the
// visualizer around the result.
func NewApp(inst *core.Instance, scheduler string) (*App, error) {
	sched, err := algo.New(scheduler, nil)
	if err != nil {
		return nil, err
	}
	st := state.NewState(inst, sched.Schedule(inst), sched.Name())
	workspace := widgets.NewWorkspace(st, interact.NewCamera())

	return &App{
		state:     st,
		theme:     material.NewTheme(),
		workspace: workspace,
		timeline:  widgets.NewTimeline(st),
		toolbar:   widgets.NewToolbar(st, workspace.Refit),
		gantt:     widgets.NewGantt(st),
	}, nil
}

// Run drives the window event loop until the window closes.
func (a *App) Run(w *app.Window) error {
	var ops op.Ops
	tag := new(int)

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			for {
				ev, ok := gtx.Event(key.Filter{Focus: tag})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					a.handleKey(ke)
				}
			}
			event.Op(gtx.Ops, tag)

			a.layout(gtx)
			e.Frame(gtx.Ops)

			if a.state.Playback.Playing {
				a.state.Playback.Advance()
				w.Invalidate()
			}
		}
	}
}

func (a *App) handleKey(e key.Event) {
	switch e.Name {
	case key.NameSpace:
		a.state.Playback.TogglePlay()
	case key.NameLeftArrow:
		a.state.Playback.Step(-1)
	case key.NameRightArrow:
		a.state.Playback.Step(1)
	case key.NameHome:
		a.state.Playback.Reset()
	case "F":
		a.workspace.Refit()
	case "G":
		a.state.ShowGantt = !a.state.ShowGantt
	case "S":
		a.state.CycleScheduler()
	}
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	paint.Fill(gtx.Ops, color.NRGBA{R: 30, G: 30, B: 35, A: 255})

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.toolbar.Layout(gtx, a.theme)
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					return a.workspace.Layout(gtx, a.theme)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					if !a.state.ShowGantt {
						return layout.Dimensions{}
					}
					return a.gantt.Layout(gtx, a.theme)
				}),
			)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.timeline.Layout(gtx, a.theme)
		}),
	)
}
