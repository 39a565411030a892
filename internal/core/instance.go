package core

import "fmt"

// ProblemData is the raw on-disk form of a problem instance. Field
// names mirror the dataset's JSON keys.
type ProblemData struct {
	TravelTimes           [][]float64  `json:"T_t"`
	PrecedenceConstraints [][2]int     `json:"precedence_constraints"`
	ExecutionTimes        []float64    `json:"T_e"`
	TaskLocations         [][2]float64 `json:"task_locations"`
	TaskRequirements      [][]int      `json:"R"`
	RobotSkills           [][]int      `json:"Q"`
}

// Instance is a fully assembled problem instance: tasks, robots, the
// task-to-task travel-time matrix and the precedence relation.
// Schedulers treat it as read-only, so one instance can back any
// number of runs.
type Instance struct {
	Tasks       []*Task
	Robots      []*Robot
	TravelTimes [][]float64
	// Predecessors[t] lists the tasks that must finish before t starts.
	Predecessors map[TaskID][]TaskID
}

// NewInstance validates raw problem data and assembles an instance.
// Task 0 and the last task are marked as dummies (start and end
// markers); a single-task instance has only the start dummy.
func NewInstance(data *ProblemData) (*Instance, error) {
	if err := validate(data); err != nil {
		return nil, err
	}

	n := len(data.ExecutionTimes)
	inst := &Instance{
		Tasks:        make([]*Task, 0, n),
		Robots:       make([]*Robot, 0, len(data.RobotSkills)),
		TravelTimes:  data.TravelTimes,
		Predecessors: make(map[TaskID][]TaskID, n),
	}

	for i := 0; i < n; i++ {
		loc := Point{X: data.TaskLocations[i][0], Y: data.TaskLocations[i][1]}
		task := NewTask(TaskID(i), data.ExecutionTimes[i], loc, SkillVector(data.TaskRequirements[i]))
		task.Dummy = i == 0 || (n > 1 && i == n-1)
		inst.Tasks = append(inst.Tasks, task)
	}
	for i, skills := range data.RobotSkills {
		inst.Robots = append(inst.Robots, NewRobot(RobotID(i), SkillVector(skills)))
	}
	for _, pc := range data.PrecedenceConstraints {
		pred, succ := TaskID(pc[0]), TaskID(pc[1])
		inst.Predecessors[succ] = append(inst.Predecessors[succ], pred)
	}
	return inst, nil
}

// validate checks the structural invariants of raw problem data:
// matching array lengths, a square travel matrix, uniform skill
// dimension, in-range precedence ids and an acyclic precedence graph.
func validate(data *ProblemData) error {
	n := len(data.ExecutionTimes)
	if len(data.TaskLocations) != n {
		return fmt.Errorf("task_locations has %d entries, want %d", len(data.TaskLocations), n)
	}
	if len(data.TaskRequirements) != n {
		return fmt.Errorf("R has %d requirement vectors, want %d", len(data.TaskRequirements), n)
	}
	if len(data.TravelTimes) != n {
		return fmt.Errorf("travel matrix has %d rows, want %d", len(data.TravelTimes), n)
	}
	for i, row := range data.TravelTimes {
		if len(row) != n {
			return fmt.Errorf("travel matrix row %d has %d columns, want %d", i, len(row), n)
		}
	}

	skillDim := -1
	for i, req := range data.TaskRequirements {
		if skillDim < 0 {
			skillDim = len(req)
		}
		if len(req) != skillDim {
			return fmt.Errorf("task %d requirement vector has length %d, want %d", i, len(req), skillDim)
		}
	}
	for i, skills := range data.RobotSkills {
		if skillDim < 0 {
			skillDim = len(skills)
		}
		if len(skills) != skillDim {
			return fmt.Errorf("robot %d skill vector has length %d, want %d", i, len(skills), skillDim)
		}
	}

	for i, pc := range data.PrecedenceConstraints {
		for _, id := range pc {
			if id < 0 || id >= n {
				return fmt.Errorf("precedence pair %d references task %d, outside [0,%d)", i, id, n)
			}
		}
	}
	return checkAcyclic(n, data.PrecedenceConstraints)
}

// checkAcyclic runs Kahn's algorithm over the precedence pairs. A
// cycle would leave some tasks permanently unready, so it is rejected
// up front.
func checkAcyclic(n int, pairs [][2]int) error {
	inDegree := make([]int, n)
	succ := make([][]int, n)
	for _, pc := range pairs {
		succ[pc[0]] = append(succ[pc[0]], pc[1])
		inDegree[pc[1]]++
	}

	queue := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if inDegree[i] == 0 {
			queue = append(queue, i)
		}
	}
	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, s := range succ[id] {
			inDegree[s]--
			if inDegree[s] == 0 {
				queue = append(queue, s)
			}
		}
	}
	if visited != n {
		return fmt.Errorf("precedence constraints contain a cycle (%d tasks can never become ready)", n-visited)
	}
	return nil
}

// NumTasks returns the total task count, dummies included.
func (inst *Instance) NumTasks() int {
	return len(inst.Tasks)
}

// NumRobots returns the fleet size.
func (inst *Instance) NumRobots() int {
	return len(inst.Robots)
}

// NumSkills returns the skill-vector dimension.
func (inst *Instance) NumSkills() int {
	if len(inst.Robots) > 0 {
		return len(inst.Robots[0].Skills)
	}
	if len(inst.Tasks) > 0 {
		return len(inst.Tasks[0].Requirements)
	}
	return 0
}

// RealTasks returns the schedulable tasks in ascending id order,
// skipping the dummies.
func (inst *Instance) RealTasks() []*Task {
	real := make([]*Task, 0, len(inst.Tasks))
	for _, t := range inst.Tasks {
		if t.Real() {
			real = append(real, t)
		}
	}
	return real
}

// PredecessorsOf returns the direct predecessors of a task; nil when
// the task is unconstrained.
func (inst *Instance) PredecessorsOf(id TaskID) []TaskID {
	return inst.Predecessors[id]
}

// TravelTime returns the travel time (seconds) from one task's
// location to another's.
func (inst *Instance) TravelTime(from, to TaskID) float64 {
	return inst.TravelTimes[from][to]
}

// TaskByID finds a task by id. Ids are dense, so this is a bounds
// check and an index.
func (inst *Instance) TaskByID(id TaskID) *Task {
	if int(id) < 0 || int(id) >= len(inst.Tasks) {
		return nil
	}
	return inst.Tasks[id]
}

// RobotByID finds a robot by id.
func (inst *Instance) RobotByID(id RobotID) *Robot {
	if int(id) < 0 || int(id) >= len(inst.Robots) {
		return nil
	}
	return inst.Robots[id]
}
