package state

import "github.com/elektrokombinacija/mrta-coalition-research/internal/core"

// Selection tracks the highlighted tasks and robots. A plain click
// replaces the selection, a shift-click toggles membership.
type Selection struct {
	Tasks  map[core.TaskID]bool
	Robots map[core.RobotID]bool
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{
		Tasks:  make(map[core.TaskID]bool),
		Robots: make(map[core.RobotID]bool),
	}
}

// ToggleTask selects a task. With keep the rest of the selection
// survives and an already selected task deselects.
func (sel *Selection) ToggleTask(id core.TaskID, keep bool) {
	if !keep {
		sel.Clear()
		sel.Tasks[id] = true
		return
	}
	if sel.Tasks[id] {
		delete(sel.Tasks, id)
		return
	}
	sel.Tasks[id] = true
}

// ToggleRobot selects a robot, with the same keep semantics as
// ToggleTask.
func (sel *Selection) ToggleRobot(id core.RobotID, keep bool) {
	if !keep {
		sel.Clear()
		sel.Robots[id] = true
		return
	}
	if sel.Robots[id] {
		delete(sel.Robots, id)
		return
	}
	sel.Robots[id] = true
}

// Clear drops the whole selection.
func (sel *Selection) Clear() {
	sel.Tasks = make(map[core.TaskID]bool)
	sel.Robots = make(map[core.RobotID]bool)
}

// Empty reports whether nothing is selected.
func (sel *Selection) Empty() bool {
	return len(sel.Tasks) == 0 && len(sel.Robots) == 0
}
