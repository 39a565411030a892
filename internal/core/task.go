package core

// Task represents work to be performed at a fixed location.
type Task struct {
	ID            TaskID
	ExecutionTime float64 // Nominal duration (seconds)
	Location      Point
	Requirements  SkillVector // Skills the coalition must jointly cover
	Dummy         bool        // Start/end marker, never scheduled
}

// NewTask creates a real (schedulable) task.
func NewTask(id TaskID, exec float64, loc Point, req SkillVector) *Task {
	return &Task{
		ID:            id,
		ExecutionTime: exec,
		Location:      loc,
		Requirements:  req,
	}
}

// Real reports whether the task is actual work rather than a dummy
// start/end marker.
func (t *Task) Real() bool {
	return !t.Dummy
}
