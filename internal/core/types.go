// Package core defines the domain model for coalition scheduling:
// tasks with skill requirements, robots with capability vectors,
// problem instances and the schedules produced for them.
package core

import "math"

// TaskID is a unique task identifier. Tasks are numbered densely from
// zero; id 0 is the start dummy (depot).
type TaskID int

// RobotID is a unique robot identifier, dense from zero.
type RobotID int

// DepotID is the task id of the start dummy. Every robot begins there.
const DepotID TaskID = 0

// SkillVector is a binary capability vector. Entry k is 1 when skill k
// is present (robot) or required (task). All vectors in one instance
// share the same length.
type SkillVector []int

// Has reports whether skill k is set.
func (v SkillVector) Has(k int) bool {
	return k >= 0 && k < len(v) && v[k] == 1
}

// Any reports whether at least one skill is set.
func (v SkillVector) Any() bool {
	for _, b := range v {
		if b == 1 {
			return true
		}
	}
	return false
}

// Count returns the number of set skills.
func (v SkillVector) Count() int {
	n := 0
	for _, b := range v {
		if b == 1 {
			n++
		}
	}
	return n
}

// Covers reports whether v has every skill that req has.
func (v SkillVector) Covers(req SkillVector) bool {
	for k, b := range req {
		if b == 1 && !v.Has(k) {
			return false
		}
	}
	return true
}

// Point is a 2D location in the workspace (meters).
type Point struct {
	X float64
	Y float64
}

// DistanceTo returns the Euclidean distance to q (meters).
func (p Point) DistanceTo(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}
