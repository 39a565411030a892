// Package widgets provides the Gio widgets composing the visualizer.
package widgets

import (
	"image"

	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/mrta-coalition-research/internal/vis/draw"
	"github.com/elektrokombinacija/mrta-coalition-research/internal/vis/interact"
	"github.com/elektrokombinacija/mrta-coalition-research/internal/vis/state"
)

// Workspace is the 2D scene: task markers, precedence arrows and the
// fleet replaying the schedule.
type Workspace struct {
	state  *state.State
	camera *interact.Camera
	framed bool
}

// NewWorkspace creates the scene widget.
func NewWorkspace(st *state.State, cam *interact.Camera) *Workspace {
	return &Workspace{state: st, camera: cam}
}

// Refit reframes the camera on the instance at the next layout.
func (w *Workspace) Refit() {
	w.framed = false
}

// Layout renders the scene and handles pan, zoom and selection.
func (w *Workspace) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	bounds := gtx.Constraints.Max
	defer clip.Rect(image.Rect(0, 0, bounds.X, bounds.Y)).Push(gtx.Ops).Pop()

	if !w.framed {
		min, max := w.state.Bounds()
		w.camera.Frame(min.X, min.Y, max.X, max.Y, float32(bounds.X), float32(bounds.Y))
		w.framed = true
	}

	paint.Fill(gtx.Ops, draw.ColorBackdrop)
	w.pointerEvents(gtx)

	draw.Grid(gtx, w.camera, 10, draw.ColorGrid)
	draw.DrawPrecedence(gtx, w.state, w.camera)
	for _, r := range w.state.Instance.Robots {
		draw.DrawRoute(gtx, w.state, r.ID, w.camera)
	}
	draw.DrawTasks(gtx, w.state, w.camera)
	draw.DrawRobots(gtx, w.state, w.camera)

	return layout.Dimensions{Size: bounds}
}

func (w *Workspace) pointerEvents(gtx layout.Context) {
	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, gtx.Constraints.Max.Y)).Push(gtx.Ops)
	event.Op(gtx.Ops, w)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: w,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Scroll,
		})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		w.camera.HandleEvent(pe)
		if pe.Kind == pointer.Press && pe.Buttons.Contain(pointer.ButtonPrimary) {
			w.click(pe.Position.X, pe.Position.Y, pe.Modifiers.Contain(key.ModShift))
		}
	}
}

// click selects the task or robot under the cursor; an empty click
// clears the selection.
func (w *Workspace) click(x, y float32, keep bool) {
	if task, ok := draw.FindTaskAt(x, y, w.state, w.camera); ok {
		w.state.Selection.ToggleTask(task.ID, keep)
		return
	}
	for _, r := range w.state.Instance.Robots {
		if draw.HitRobot(x, y, w.state, r.ID, w.camera) {
			w.state.Selection.ToggleRobot(r.ID, keep)
			return
		}
	}
	if !keep {
		w.state.Selection.Clear()
	}
}
