package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/elektrokombinacija/mrta-coalition-research/internal/bench"
	"github.com/elektrokombinacija/mrta-coalition-research/internal/store"
)

const chainProblem = `{
	"T_t": [[0,2,5,9],[2,0,3,9],[5,3,0,9],[9,9,9,0]],
	"precedence_constraints": [[1,2]],
	"T_e": [0,5,4,0],
	"task_locations": [[0,0],[2,0],[5,0],[9,9]],
	"R": [[0],[1],[1],[0]],
	"Q": [[1]]
}`

func testServer(opts ...Option) *Server {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
	return New(logger, opts...)
}

// envelope decodes the standard response envelope.
type envelope struct {
	Status    string          `json:"status"`
	RequestID string          `json:"request_id"`
	Timestamp string          `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
	Error     *APIError       `json:"error"`
}

func doGet(t *testing.T, srv *Server, path string) envelope {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET %s: status=%d, want 200, body=%s", path, w.Code, w.Body.String())
	}
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("GET %s: invalid JSON: %v", path, err)
	}
	return env
}

func doPost(t *testing.T, srv *Server, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	var env envelope
	json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestHealth(t *testing.T) {
	srv := testServer()
	env := doGet(t, srv, "/api/v1/health")
	if env.Status != "ok" {
		t.Errorf("status = %q, want ok", env.Status)
	}

	var data struct {
		Status     string   `json:"status"`
		Version    string   `json:"version"`
		Schedulers []string `json:"schedulers"`
		Store      string   `json:"store"`
	}
	json.Unmarshal(env.Data, &data)
	if data.Status != "healthy" {
		t.Errorf("health status = %q, want healthy", data.Status)
	}
	if data.Version != Version {
		t.Errorf("version = %q, want %q", data.Version, Version)
	}
	if len(data.Schedulers) == 0 {
		t.Error("schedulers list is empty")
	}
	if data.Store != "detached" {
		t.Errorf("store = %q, want detached", data.Store)
	}
}

func TestSchedulers(t *testing.T) {
	srv := testServer()
	env := doGet(t, srv, "/api/v1/schedulers")

	var names []string
	json.Unmarshal(env.Data, &names)
	found := map[string]bool{}
	for _, n := range names {
		found[n] = true
	}
	if !found["coalition-greedy"] || !found["task-order"] {
		t.Errorf("schedulers = %v, want coalition-greedy and task-order", names)
	}
}

func TestSchedule(t *testing.T) {
	srv := testServer()
	w, env := doPost(t, srv, "/api/v1/schedule", chainProblem)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want 200, body=%s", w.Code, w.Body.String())
	}
	var data struct {
		Makespan       float64 `json:"makespan"`
		NumTasks       int     `json:"n_tasks"`
		NumRobots      int     `json:"n_robots"`
		RobotSchedules map[string][]struct {
			Task  int     `json:"task_id"`
			Start float64 `json:"start_time"`
			End   float64 `json:"end_time"`
		} `json:"robot_schedules"`
		Feasible bool `json:"feasible"`
	}
	json.Unmarshal(env.Data, &data)

	if data.Makespan != 14 {
		t.Errorf("makespan = %v, want 14", data.Makespan)
	}
	if data.NumTasks != 2 || data.NumRobots != 1 {
		t.Errorf("n_tasks/n_robots = %d/%d, want 2/1", data.NumTasks, data.NumRobots)
	}
	if !data.Feasible {
		t.Error("expected a feasible schedule")
	}
	entries := data.RobotSchedules["0"]
	if len(entries) != 2 {
		t.Fatalf("robot 0 has %d entries, want 2", len(entries))
	}
	if entries[0].Task != 1 || entries[0].Start != 2 || entries[0].End != 7 {
		t.Errorf("first entry = %+v, want task 1 at [2,7]", entries[0])
	}
	if entries[1].Task != 2 || entries[1].Start != 10 || entries[1].End != 14 {
		t.Errorf("second entry = %+v, want task 2 at [10,14]", entries[1])
	}
}

func TestSchedule_NamedScheduler(t *testing.T) {
	srv := testServer()
	w, env := doPost(t, srv, "/api/v1/schedule?scheduler=task-order", chainProblem)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want 200, body=%s", w.Code, w.Body.String())
	}

	var data struct {
		Feasible bool `json:"feasible"`
	}
	json.Unmarshal(env.Data, &data)
	if !data.Feasible {
		t.Error("expected a feasible schedule")
	}
}

func TestSchedule_InvalidJSON(t *testing.T) {
	srv := testServer()
	w, env := doPost(t, srv, "/api/v1/schedule", "not json")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", w.Code)
	}
	if env.Status != "error" {
		t.Errorf("status = %q, want error", env.Status)
	}
	if env.Error == nil || env.Error.Code != ErrValidation {
		t.Errorf("error = %v, want VALIDATION_ERROR", env.Error)
	}
}

func TestSchedule_InvalidInstance(t *testing.T) {
	srv := testServer()
	body := `{"T_t": [[0]], "T_e": [0, 1], "task_locations": [[0,0],[1,1]], "R": [[0],[0]], "Q": [[1]]}`
	w, env := doPost(t, srv, "/api/v1/schedule", body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400, body=%s", w.Code, w.Body.String())
	}
	if env.Error == nil || env.Error.Code != ErrValidation {
		t.Errorf("error = %v, want VALIDATION_ERROR", env.Error)
	}
}

func TestSchedule_UnknownScheduler(t *testing.T) {
	srv := testServer()
	w, env := doPost(t, srv, "/api/v1/schedule?scheduler=branch-and-bound", chainProblem)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", w.Code)
	}
	if env.Error == nil || !strings.Contains(env.Error.Message, "branch-and-bound") {
		t.Errorf("error should name the unknown scheduler, got %v", env.Error)
	}
}

func TestSchedule_Infeasible(t *testing.T) {
	srv := testServer()
	body := strings.Replace(chainProblem, `"Q": [[1]]`, `"Q": [[0]]`, 1)
	w, env := doPost(t, srv, "/api/v1/schedule", body)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want 200, body=%s", w.Code, w.Body.String())
	}
	var data struct {
		Feasible    bool  `json:"feasible"`
		Unscheduled []int `json:"unscheduled"`
	}
	json.Unmarshal(env.Data, &data)
	if data.Feasible {
		t.Error("expected an infeasible result")
	}
	if len(data.Unscheduled) != 2 {
		t.Errorf("unscheduled = %v, want both real tasks", data.Unscheduled)
	}
}

func TestListRuns_NoStore(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest("GET", "/api/v1/runs/", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d, want 503", w.Code)
	}
	var env envelope
	json.Unmarshal(w.Body.Bytes(), &env)
	if env.Error == nil || env.Error.Code != ErrUnavailable {
		t.Errorf("error = %v, want UNAVAILABLE", env.Error)
	}
}

func TestRunsWithStore(t *testing.T) {
	st, err := store.Open(":memory:", nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer st.Close()
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	summary := &bench.Summary{
		Scheduler: "coalition-greedy",
		Processed: 1,
		AvgRatio:  1.25,
		Results: []bench.Result{{
			InstanceID:        3,
			NumTasks:          2,
			NumRobots:         1,
			OptimalMakespan:   8,
			HeuristicMakespan: 10,
			Ratio:             1.25,
			Duration:          2 * time.Millisecond,
			Feasible:          true,
		}},
	}
	runID, err := st.SaveSummary(context.Background(), "data/test", bench.Options{Start: 3, End: 3}, summary)
	if err != nil {
		t.Fatalf("save summary: %v", err)
	}

	srv := testServer(WithStore(st))

	env := doGet(t, srv, "/api/v1/runs/")
	var runs []store.Run
	json.Unmarshal(env.Data, &runs)
	if len(runs) != 1 || runs[0].ID != runID {
		t.Fatalf("runs = %+v, want one run %s", runs, runID)
	}

	env = doGet(t, srv, "/api/v1/runs/"+runID+"/results")
	var results []bench.Result
	json.Unmarshal(env.Data, &results)
	if len(results) != 1 || results[0].InstanceID != 3 {
		t.Fatalf("results = %+v, want instance 3", results)
	}

	req := httptest.NewRequest("GET", "/api/v1/runs/run_missing/results", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("status=%d, want 404 for unknown run", w.Code)
	}
}

func TestResponseEnvelope(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	var env envelope
	json.Unmarshal(w.Body.Bytes(), &env)
	if !strings.HasPrefix(env.RequestID, "req_") {
		t.Errorf("request_id = %q, want req_ prefix", env.RequestID)
	}
	if env.Timestamp == "" {
		t.Error("timestamp is empty")
	}
	if got := w.Header().Get("X-Request-ID"); got != env.RequestID {
		t.Errorf("X-Request-ID header = %q, want %q", got, env.RequestID)
	}
}
