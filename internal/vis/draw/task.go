package draw

import (
	"image/color"
	"math"

	"gioui.org/layout"

	"github.com/elektrokombinacija/mrta-coalition-research/internal/core"
	"github.com/elektrokombinacija/mrta-coalition-research/internal/vis/interact"
	"github.com/elektrokombinacija/mrta-coalition-research/internal/vis/state"
)

// Task marker palette keyed by replay status.
var (
	ColorTaskPending     = color.NRGBA{R: 120, G: 130, B: 145, A: 255}
	ColorTaskActive      = color.NRGBA{R: 255, G: 190, B: 70, A: 255}
	ColorTaskDone        = color.NRGBA{R: 90, G: 200, B: 120, A: 255}
	ColorTaskUnscheduled = color.NRGBA{R: 235, G: 90, B: 90, A: 255}
	ColorDepot           = color.NRGBA{R: 150, G: 160, B: 175, A: 255}
	ColorSelected        = color.NRGBA{R: 255, G: 255, B: 140, A: 255}

	colorPrec        = color.NRGBA{R: 95, G: 105, B: 120, A: 160}
	colorPrecBinding = color.NRGBA{R: 235, G: 130, B: 80, A: 230}
)

const taskRadius = 9

// TaskColor maps a replay status to its marker color.
func TaskColor(st state.TaskStatus) color.NRGBA {
	switch st {
	case state.TaskActive:
		return ColorTaskActive
	case state.TaskDone:
		return ColorTaskDone
	case state.TaskUnscheduled:
		return ColorTaskUnscheduled
	default:
		return ColorTaskPending
	}
}

// DrawTasks renders every task marker: dummies as hollow depot
// squares, real tasks as circles colored by replay status.
func DrawTasks(gtx layout.Context, s *state.State, cam *interact.Camera) {
	t := s.Playback.CurrentTime
	for _, task := range s.Instance.Tasks {
		x, y := cam.WorldToScreen(task.Location.X, task.Location.Y)
		r := taskRadius * cam.Zoom

		if task.Dummy {
			Square(gtx, x, y, r*1.6, ColorDepot)
			Square(gtx, x, y, r*1.6-4, ColorBackdrop)
			continue
		}

		if s.Selection.Tasks[task.ID] {
			Ring(gtx, x, y, r+4, 2, ColorSelected)
		}
		Circle(gtx, x, y, r, TaskColor(s.Status(task.ID, t)))
	}
}

// DrawPrecedence renders precedence pairs as arrows from predecessor
// to successor. Binding pairs, where the successor waited on the
// predecessor, draw brighter.
func DrawPrecedence(gtx layout.Context, s *state.State, cam *interact.Camera) {
	for _, e := range s.PrecEdges() {
		from := s.Instance.TaskByID(e.Pred)
		to := s.Instance.TaskByID(e.Succ)
		if from == nil || to == nil {
			continue
		}
		col, width := colorPrec, float32(1.5)
		if e.Binding {
			col, width = colorPrecBinding, 2.5
		}

		x1, y1 := cam.WorldToScreen(from.Location.X, from.Location.Y)
		x2, y2 := cam.WorldToScreen(to.Location.X, to.Location.Y)
		dx, dy := x2-x1, y2-y1
		length := float32(math.Hypot(float64(dx), float64(dy)))
		if length < 1 {
			continue
		}

		// Pull both ends off the markers.
		pad := (taskRadius + 3) * cam.Zoom
		if 2*pad > length*0.8 {
			pad = length * 0.1
		}
		ux, uy := dx/length, dy/length
		x1, y1 = x1+ux*pad, y1+uy*pad
		x2, y2 = x2-ux*pad, y2-uy*pad

		Line(gtx, x1, y1, x2, y2, width, col)
		Arrow(gtx, x2, y2, ux, uy, 8*cam.Zoom, col)
	}
}

// FindTaskAt hit-tests the task markers, topmost id first.
func FindTaskAt(x, y float32, s *state.State, cam *interact.Camera) (*core.Task, bool) {
	for i := len(s.Instance.Tasks) - 1; i >= 0; i-- {
		task := s.Instance.Tasks[i]
		tx, ty := cam.WorldToScreen(task.Location.X, task.Location.Y)
		r := (taskRadius + 3) * cam.Zoom
		dx, dy := x-tx, y-ty
		if dx*dx+dy*dy <= r*r {
			return task, true
		}
	}
	return nil, false
}
