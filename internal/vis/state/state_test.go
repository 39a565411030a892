package state

import (
	"reflect"
	"testing"

	"github.com/elektrokombinacija/mrta-coalition-research/internal/algo"
	"github.com/elektrokombinacija/mrta-coalition-research/internal/core"
)

func mustState(t *testing.T, data *core.ProblemData) *State {
	t.Helper()
	inst, err := core.NewInstance(data)
	if err != nil {
		t.Fatalf("NewInstance: %v", err)
	}
	sched := algo.NewCoalitionGreedy(nil)
	return NewState(inst, sched.Schedule(inst), sched.Name())
}

// pairData: task 1 (robot 0) runs 2..7; robot 1 reaches task 2 at t=5
// but waits for task 1, so task 2 starts exactly at its predecessor's
// finish. The end dummy succeeds both real tasks.
func pairData() *core.ProblemData {
	return &core.ProblemData{
		TravelTimes: [][]float64{
			{0, 2, 5, 9},
			{2, 0, 3, 9},
			{5, 3, 0, 9},
			{9, 9, 9, 0},
		},
		PrecedenceConstraints: [][2]int{{1, 2}, {2, 3}, {1, 3}},
		ExecutionTimes:        []float64{0, 5, 4, 0},
		TaskLocations:         [][2]float64{{0, 0}, {2, 0}, {2, 3}, {0, 3}},
		TaskRequirements:      [][]int{{0, 0}, {1, 0}, {0, 1}, {0, 0}},
		RobotSkills:           [][]int{{1, 0}, {0, 1}},
	}
}

// chainData: one robot serves both tasks in sequence: travel 2, work
// 2..7 at task 1, travel 3 more, work 10..14 at task 2. The travel gap
// puts task 2's start after its predecessor's finish, not at it.
func chainData() *core.ProblemData {
	return &core.ProblemData{
		TravelTimes: [][]float64{
			{0, 2, 5, 9},
			{2, 0, 3, 9},
			{5, 3, 0, 9},
			{9, 9, 9, 0},
		},
		PrecedenceConstraints: [][2]int{{1, 2}},
		ExecutionTimes:        []float64{0, 5, 4, 0},
		TaskLocations:         [][2]float64{{0, 0}, {2, 0}, {2, 3}, {0, 3}},
		TaskRequirements:      [][]int{{0}, {1}, {1}, {0}},
		RobotSkills:           [][]int{{1}},
	}
}

// unstaffedData: task 2 requires no skills, so it runs on no robot's
// timeline, gated only by task 1's finish at t=7. Both robots are idle
// from t=7 while the unstaffed task runs to t=11; robot 1 never moves
// at all.
func unstaffedData() *core.ProblemData {
	return &core.ProblemData{
		TravelTimes: [][]float64{
			{0, 2, 5, 9},
			{2, 0, 3, 9},
			{5, 3, 0, 9},
			{9, 9, 9, 0},
		},
		PrecedenceConstraints: [][2]int{{1, 2}},
		ExecutionTimes:        []float64{0, 5, 4, 0},
		TaskLocations:         [][2]float64{{0, 0}, {2, 0}, {2, 3}, {0, 3}},
		TaskRequirements:      [][]int{{0, 0}, {1, 0}, {0, 0}, {0, 0}},
		RobotSkills:           [][]int{{1, 0}, {0, 1}},
	}
}

// divergingData: the earliest-finish rule grabs short task 2 before
// distant task 1 (makespan 15); committing in id order instead makes
// the robot double back and lands at 19.
func divergingData() *core.ProblemData {
	return &core.ProblemData{
		TravelTimes: [][]float64{
			{0, 5, 1, 9},
			{5, 0, 3, 9},
			{1, 3, 0, 9},
			{9, 9, 9, 0},
		},
		ExecutionTimes:   []float64{0, 10, 1, 0},
		TaskLocations:    [][2]float64{{0, 0}, {2, 0}, {4, 0}, {6, 0}},
		TaskRequirements: [][]int{{0}, {1}, {1}, {0}},
		RobotSkills:      [][]int{{1}},
	}
}

func TestStateLegs(t *testing.T) {
	s := mustState(t, pairData())

	wantR0 := []Leg{
		{Task: 1, From: core.Point{X: 0, Y: 0}, To: core.Point{X: 2, Y: 0}, Depart: 0, Arrive: 2, Start: 2, End: 7},
	}
	if got := s.RobotLegs(0); !reflect.DeepEqual(got, wantR0) {
		t.Errorf("RobotLegs(0) = %v, want %v", got, wantR0)
	}
	wantR1 := []Leg{
		{Task: 2, From: core.Point{X: 0, Y: 0}, To: core.Point{X: 2, Y: 3}, Depart: 0, Arrive: 5, Start: 7, End: 11},
	}
	if got := s.RobotLegs(1); !reflect.DeepEqual(got, wantR1) {
		t.Errorf("RobotLegs(1) = %v, want %v", got, wantR1)
	}
	if s.RobotLegs(7) != nil {
		t.Error("RobotLegs out of range should be nil")
	}
}

func TestStateChainLegs(t *testing.T) {
	s := mustState(t, chainData())

	// The second leg departs the moment the first ends.
	want := []Leg{
		{Task: 1, From: core.Point{X: 0, Y: 0}, To: core.Point{X: 2, Y: 0}, Depart: 0, Arrive: 2, Start: 2, End: 7},
		{Task: 2, From: core.Point{X: 2, Y: 0}, To: core.Point{X: 2, Y: 3}, Depart: 7, Arrive: 10, Start: 10, End: 14},
	}
	if got := s.RobotLegs(0); !reflect.DeepEqual(got, want) {
		t.Errorf("RobotLegs(0) = %v, want %v", got, want)
	}
	if s.Solution.Makespan != 14 {
		t.Errorf("Makespan = %v, want 14", s.Solution.Makespan)
	}
}

func TestPositionAt(t *testing.T) {
	s := mustState(t, chainData())

	cases := []struct {
		name string
		t    float64
		want core.Point
	}{
		{"at depot before departure", 0, core.Point{X: 0, Y: 0}},
		{"halfway to task 1", 1, core.Point{X: 1, Y: 0}},
		{"working at task 1", 4, core.Point{X: 2, Y: 0}},
		{"halfway to task 2", 8.5, core.Point{X: 2, Y: 1.5}},
		{"working at task 2", 12, core.Point{X: 2, Y: 3}},
		{"parked after the last task", 99, core.Point{X: 2, Y: 3}},
	}
	for _, tc := range cases {
		if got := s.PositionAt(0, tc.t); got != tc.want {
			t.Errorf("%s: PositionAt(0, %v) = %v, want %v", tc.name, tc.t, got, tc.want)
		}
	}
}

func TestPositionWhileWaiting(t *testing.T) {
	s := mustState(t, pairData())

	// Robot 1 is mid-flight at 2.5, then holds at task 2 from its
	// arrival at t=5 until the predecessor clears at t=7.
	if got := s.PositionAt(1, 2.5); got != (core.Point{X: 1, Y: 1.5}) {
		t.Errorf("PositionAt(1, 2.5) = %v, want (1, 1.5)", got)
	}
	if got := s.PositionAt(1, 6); got != (core.Point{X: 2, Y: 3}) {
		t.Errorf("PositionAt(1, 6) = %v, want (2, 3)", got)
	}
}

func TestTrail(t *testing.T) {
	s := mustState(t, chainData())

	if got := s.Trail(0, 0); got != nil {
		t.Errorf("Trail before departure = %v, want nil", got)
	}
	mid := []core.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}
	if got := s.Trail(0, 1); !reflect.DeepEqual(got, mid) {
		t.Errorf("Trail(0, 1) = %v, want %v", got, mid)
	}
	late := []core.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1.5}}
	if got := s.Trail(0, 8.5); !reflect.DeepEqual(got, late) {
		t.Errorf("Trail(0, 8.5) = %v, want %v", got, late)
	}
}

func TestStatus(t *testing.T) {
	s := mustState(t, pairData())

	cases := []struct {
		id   core.TaskID
		t    float64
		want TaskStatus
	}{
		{0, 0, TaskDone}, // the depot finishes at t=0
		{1, 0, TaskPending},
		{1, 2, TaskActive},
		{1, 6.9, TaskActive},
		{1, 7, TaskDone},
		{2, 6, TaskPending},
		{2, 7, TaskActive},
		{2, 11, TaskDone},
		{3, 0, TaskUnscheduled}, // the end dummy is never committed
		{3, 50, TaskUnscheduled},
	}
	for _, tc := range cases {
		if got := s.Status(tc.id, tc.t); got != tc.want {
			t.Errorf("Status(%d, %v) = %v, want %v", tc.id, tc.t, got, tc.want)
		}
	}
}

func TestPrecEdges(t *testing.T) {
	s := mustState(t, pairData())

	// Task 2 starts the instant task 1 finishes, so that edge is
	// binding. The dummy edges never bind: the end dummy has no start.
	want := []PrecEdge{
		{Pred: 1, Succ: 2, Binding: true},
		{Pred: 1, Succ: 3},
		{Pred: 2, Succ: 3},
	}
	if got := s.PrecEdges(); !reflect.DeepEqual(got, want) {
		t.Errorf("PrecEdges = %v, want %v", got, want)
	}

	// With one robot the successor waits out the travel gap instead,
	// so the same pair is not binding.
	chain := mustState(t, chainData())
	got := chain.PrecEdges()
	if len(got) != 1 || got[0].Binding {
		t.Errorf("chain PrecEdges = %v, want one non-binding edge", got)
	}
}

func TestBounds(t *testing.T) {
	s := mustState(t, pairData())
	min, max := s.Bounds()
	if min != (core.Point{X: 0, Y: 0}) || max != (core.Point{X: 2, Y: 3}) {
		t.Errorf("Bounds = %v, %v, want (0,0), (2,3)", min, max)
	}
}

func TestUnstaffedTail(t *testing.T) {
	s := mustState(t, unstaffedData())

	if s.Solution.Makespan != 7 {
		t.Errorf("Makespan = %v, want 7 (robots idle once task 1 ends)", s.Solution.Makespan)
	}
	if s.Playback.Horizon != 11 {
		t.Errorf("Horizon = %v, want 11 (covers the unstaffed tail)", s.Playback.Horizon)
	}
	if start, ok := s.StartOf(2); !ok || start != 7 {
		t.Errorf("StartOf(2) = %v, %v, want 7, true", start, ok)
	}
	if got := s.Status(2, 8); got != TaskActive {
		t.Errorf("Status(2, 8) = %v, want TaskActive", got)
	}
	if got := s.Status(2, 11); got != TaskDone {
		t.Errorf("Status(2, 11) = %v, want TaskDone", got)
	}

	// Robot 1 covers nothing: parked at the depot with no trail.
	if legs := s.RobotLegs(1); len(legs) != 0 {
		t.Errorf("RobotLegs(1) = %v, want none", legs)
	}
	if got := s.PositionAt(1, 5); got != (core.Point{X: 0, Y: 0}) {
		t.Errorf("PositionAt(1, 5) = %v, want the depot", got)
	}
	if s.Trail(1, 5) != nil {
		t.Error("an idle robot should have no trail")
	}
}

func TestSetScheduler(t *testing.T) {
	s := mustState(t, divergingData())
	if s.Solution.Makespan != 15 {
		t.Fatalf("greedy Makespan = %v, want 15", s.Solution.Makespan)
	}
	s.Playback.SetTime(5)
	s.Playback.Play()

	if err := s.SetScheduler("task-order"); err != nil {
		t.Fatalf("SetScheduler: %v", err)
	}
	if s.Scheduler != "task-order" {
		t.Errorf("Scheduler = %q, want task-order", s.Scheduler)
	}
	if s.Solution.Makespan != 19 {
		t.Errorf("task-order Makespan = %v, want 19", s.Solution.Makespan)
	}
	want := []Leg{
		{Task: 1, From: core.Point{X: 0, Y: 0}, To: core.Point{X: 2, Y: 0}, Depart: 0, Arrive: 5, Start: 5, End: 15},
		{Task: 2, From: core.Point{X: 2, Y: 0}, To: core.Point{X: 4, Y: 0}, Depart: 15, Arrive: 18, Start: 18, End: 19},
	}
	if got := s.RobotLegs(0); !reflect.DeepEqual(got, want) {
		t.Errorf("RobotLegs(0) = %v, want %v", got, want)
	}
	if s.Playback.Horizon != 19 || s.Playback.CurrentTime != 0 || s.Playback.Playing {
		t.Errorf("playback after switch = %+v, want rewound and stopped at horizon 19", s.Playback)
	}
}

func TestSetSchedulerUnknown(t *testing.T) {
	s := mustState(t, pairData())
	before := s.Solution
	s.Playback.SetTime(3)

	if err := s.SetScheduler("simulated-annealing"); err == nil {
		t.Fatal("expected an error for an unknown scheduler")
	}
	if s.Solution != before || s.Scheduler != "coalition-greedy" {
		t.Error("a failed switch must leave the state untouched")
	}
	if s.Playback.CurrentTime != 3 {
		t.Errorf("CurrentTime = %v, want 3 (no rescale on failure)", s.Playback.CurrentTime)
	}
}

func TestCycleScheduler(t *testing.T) {
	s := mustState(t, pairData())
	s.CycleScheduler()
	if s.Scheduler != "task-order" {
		t.Fatalf("Scheduler = %q, want task-order", s.Scheduler)
	}
	s.CycleScheduler()
	if s.Scheduler != "coalition-greedy" {
		t.Errorf("Scheduler = %q, want coalition-greedy after a full cycle", s.Scheduler)
	}
}
