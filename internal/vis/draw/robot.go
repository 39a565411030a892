package draw

import (
	"image/color"

	"gioui.org/layout"

	"github.com/elektrokombinacija/mrta-coalition-research/internal/core"
	"github.com/elektrokombinacija/mrta-coalition-research/internal/vis/interact"
	"github.com/elektrokombinacija/mrta-coalition-research/internal/vis/state"
)

// Fleet palette, cycled by robot id.
var robotPalette = []color.NRGBA{
	{R: 100, G: 200, B: 255, A: 255},
	{R: 255, G: 150, B: 100, A: 255},
	{R: 200, G: 120, B: 255, A: 255},
	{R: 120, G: 220, B: 140, A: 255},
	{R: 255, G: 120, B: 170, A: 255},
	{R: 160, G: 210, B: 90, A: 255},
	{R: 110, G: 170, B: 255, A: 255},
	{R: 255, G: 200, B: 90, A: 255},
}

const robotSize = 12

// RobotColor returns the display color for a robot id.
func RobotColor(id core.RobotID) color.NRGBA {
	if id < 0 {
		return robotPalette[0]
	}
	return robotPalette[int(id)%len(robotPalette)]
}

// DrawRobots renders each robot as a square at its replayed position,
// over a fading trail of the route covered so far.
func DrawRobots(gtx layout.Context, s *state.State, cam *interact.Camera) {
	t := s.Playback.CurrentTime
	for _, r := range s.Instance.Robots {
		drawTrail(gtx, s.Trail(r.ID, t), cam, RobotColor(r.ID))
	}
	for _, r := range s.Instance.Robots {
		pos := s.PositionAt(r.ID, t)
		x, y := cam.WorldToScreen(pos.X, pos.Y)
		size := robotSize * cam.Zoom
		if s.Selection.Robots[r.ID] {
			Ring(gtx, x, y, size*0.9+3, 2, ColorSelected)
		}
		Square(gtx, x, y, size, RobotColor(r.ID))
	}
}

// drawTrail fades toward the oldest point.
func drawTrail(gtx layout.Context, trail []core.Point, cam *interact.Camera, base color.NRGBA) {
	n := len(trail)
	for i := 0; i < n-1; i++ {
		col := base
		col.A = uint8(40 + 140*i/n)
		x1, y1 := cam.WorldToScreen(trail[i].X, trail[i].Y)
		x2, y2 := cam.WorldToScreen(trail[i+1].X, trail[i+1].Y)
		Line(gtx, x1, y1, x2, y2, 2.5, col)
	}
}

// DrawRoute draws a robot's remaining legs as a dim thin line from
// its current position.
func DrawRoute(gtx layout.Context, s *state.State, id core.RobotID, cam *interact.Camera) {
	t := s.Playback.CurrentTime
	col := RobotColor(id)
	col.A = 70
	prev := s.PositionAt(id, t)
	for _, leg := range s.RobotLegs(id) {
		if leg.Arrive <= t {
			continue
		}
		x1, y1 := cam.WorldToScreen(prev.X, prev.Y)
		x2, y2 := cam.WorldToScreen(leg.To.X, leg.To.Y)
		Line(gtx, x1, y1, x2, y2, 1.5, col)
		prev = leg.To
	}
}

// HitRobot reports whether a screen point lands on a robot marker.
func HitRobot(x, y float32, s *state.State, id core.RobotID, cam *interact.Camera) bool {
	pos := s.PositionAt(id, s.Playback.CurrentTime)
	px, py := cam.WorldToScreen(pos.X, pos.Y)
	half := (robotSize/2 + 4) * cam.Zoom
	dx, dy := x-px, y-py
	return dx >= -half && dx <= half && dy >= -half && dy <= half
}
