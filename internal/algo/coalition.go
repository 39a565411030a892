package algo

import (
	"errors"

	"github.com/elektrokombinacija/mrta-coalition-research/internal/core"
)

// Coalition is the set of robots jointly assigned to one task, in the
// order the finder picked them. The empty coalition is a valid value:
// a task with no required skills needs no robots.
type Coalition []*core.Robot

// ErrInfeasible reports that no subset of the fleet covers a task's
// required skills.
var ErrInfeasible = errors.New("required skills not covered by any robot subset")

// IDs returns the member ids in selection order.
func (c Coalition) IDs() []core.RobotID {
	ids := make([]core.RobotID, len(c))
	for i, r := range c {
		ids[i] = r.ID
	}
	return ids
}

// FindCoalition picks a small coalition that covers the task's
// required skills.
//
// Selection is deterministic: an empty requirement yields the empty
// coalition; otherwise the first robot (lowest id) covering the whole
// requirement alone wins; otherwise members are added greedily by most
// newly covered skills, earliest id breaking ties. Returns
// ErrInfeasible when even the whole fleet cannot cover the
// requirement.
func FindCoalition(task *core.Task, robots []*core.Robot) (Coalition, error) {
	req := task.Requirements
	if !req.Any() {
		return Coalition{}, nil
	}

	for _, r := range robots {
		if r.CanPerform(req) {
			return Coalition{r}, nil
		}
	}

	uncovered := make([]bool, len(req))
	remaining := 0
	for k, b := range req {
		if b == 1 {
			uncovered[k] = true
			remaining++
		}
	}

	used := make([]bool, len(robots))
	var coalition Coalition
	for remaining > 0 {
		best, bestGain := -1, 0
		for i, r := range robots {
			if used[i] {
				continue
			}
			gain := 0
			for k := range uncovered {
				if uncovered[k] && r.Skills.Has(k) {
					gain++
				}
			}
			// Strict greater keeps the earliest robot on ties.
			if gain > bestGain {
				best, bestGain = i, gain
			}
		}
		if best < 0 {
			return nil, ErrInfeasible
		}
		used[best] = true
		r := robots[best]
		for k := range uncovered {
			if uncovered[k] && r.Skills.Has(k) {
				uncovered[k] = false
				remaining--
			}
		}
		coalition = append(coalition, r)
	}
	return coalition, nil
}
