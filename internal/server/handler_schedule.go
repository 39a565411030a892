package server

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/elektrokombinacija/mrta-coalition-research/internal/algo"
	"github.com/elektrokombinacija/mrta-coalition-research/internal/core"
)

type healthResponse struct {
	Status     string   `json:"status"`
	Version    string   `json:"version"`
	GoVersion  string   `json:"go_version"`
	Uptime     string   `json:"uptime"`
	Schedulers []string `json:"schedulers"`
	Store      string   `json:"store"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	storeState := "detached"
	if s.store != nil {
		storeState = "attached"
	}
	respondOK(w, reqID, healthResponse{
		Status:     "healthy",
		Version:    Version,
		GoVersion:  runtime.Version(),
		Uptime:     time.Since(s.startTime).Round(time.Second).String(),
		Schedulers: algo.Names(),
		Store:      storeState,
	})
}

func (s *Server) handleSchedulers(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	respondOK(w, reqID, algo.Names())
}

// handleSchedule assembles an instance from the posted problem
// document, runs the requested scheduler and returns the schedule. An
// infeasible outcome is still a result: the payload carries
// feasible=false and the unscheduled task ids.
func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var data core.ProblemData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		respondError(w, reqID, http.StatusBadRequest, ErrValidation, "invalid JSON body: "+err.Error())
		return
	}
	inst, err := core.NewInstance(&data)
	if err != nil {
		respondError(w, reqID, http.StatusBadRequest, ErrValidation, err.Error())
		return
	}

	sched, err := algo.New(r.URL.Query().Get("scheduler"), s.logger)
	if err != nil {
		respondError(w, reqID, http.StatusBadRequest, ErrValidation, err.Error())
		return
	}

	sol := sched.Schedule(inst)
	s.logger.Info("scheduled instance",
		"request_id", reqID,
		"scheduler", sched.Name(),
		"tasks", inst.NumTasks(),
		"robots", inst.NumRobots(),
		"makespan", sol.Makespan,
		"feasible", sol.Feasible,
	)
	respondOK(w, reqID, sol)
}
