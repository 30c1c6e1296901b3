package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"payopti/internal/ports"
	profilesvc "payopti/internal/services/profiles"
	runsvc "payopti/internal/services/runs"
	"payopti/internal/workers/runrunner"
)

// Server exposes the optimization engine over HTTP. The runs/jobs/processor
// trio is nil when no database is configured; the async endpoints then return
// 503 and the synchronous ones keep working.
type Server struct {
	optimizer ports.Optimizer
	profiles  *profilesvc.Service
	runs      *runsvc.Service
	jobs      ports.JobRepository
	processor runrunner.Processor
	log       logrus.FieldLogger
}

func New(optimizer ports.Optimizer, profiles *profilesvc.Service, runs *runsvc.Service, jobs ports.JobRepository, processor runrunner.Processor, log logrus.FieldLogger) *Server {
	return &Server{optimizer: optimizer, profiles: profiles, runs: runs, jobs: jobs, processor: processor, log: log}
}

func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.getHealthz)
	r.Post("/optimize", s.postOptimize)
	r.Post("/compare", s.postCompare)
	r.Post("/runs", s.postRuns)
	r.Get("/runs/{id}", s.getRun)
	r.Get("/vendors/{id}", s.getVendorProfile)
	return r
}

func (s *Server) getHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type optimizeRequest struct {
	Mode string `json:"mode"`
}

func (s *Server) postOptimize(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := s.optimizer.Run(r.Context(), req.Mode)
	if err != nil {
		s.log.WithError(err).Error("optimization failed")
		writeError(w, http.StatusInternalServerError, "optimization failed")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type compareRequest struct {
	Modes []string `json:"modes"`
}

func (s *Server) postCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	comparison, err := s.optimizer.Compare(r.Context(), req.Modes)
	if err != nil {
		s.log.WithError(err).Error("comparison failed")
		writeError(w, http.StatusInternalServerError, "comparison failed")
		return
	}
	writeJSON(w, http.StatusOK, comparison)
}

type runResponse struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Result json.RawMessage `json:"result,omitempty"`
}

func (s *Server) postRuns(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		writeError(w, http.StatusServiceUnavailable, "run persistence not configured")
		return
	}
	var req optimizeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := s.runs.Enqueue(r.Context(), req.Mode)
	if err != nil {
		s.log.WithError(err).Error("enqueue run failed")
		writeError(w, http.StatusInternalServerError, "enqueue failed")
		return
	}

	// Blocking path for testing
	if r.URL.Query().Get("wait") == "true" {
		timeout := 30
		if v := r.URL.Query().Get("timeout"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				timeout = n
			}
		}
		ctx, cancel := context.WithTimeout(r.Context(), time.Duration(timeout)*time.Second)
		defer cancel()
		// Use the same processor the workers use to keep logic DRY
		if err := runrunner.ProcessInline(ctx, s.jobs, s.processor, id); err != nil {
			s.log.WithError(err).WithField("run", id).Error("inline run failed")
			writeError(w, http.StatusInternalServerError, "run failed")
			return
		}
		status, result, err := s.runs.Status(ctx, id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "run status failed")
			return
		}
		writeJSON(w, http.StatusOK, runResponse{ID: id, Status: status, Result: result})
		return
	}
	writeJSON(w, http.StatusAccepted, runResponse{ID: id, Status: "queued"})
}

func (s *Server) getRun(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		writeError(w, http.StatusServiceUnavailable, "run persistence not configured")
		return
	}
	id := chi.URLParam(r, "id")
	status, result, err := s.runs.Status(r.Context(), id)
	if err != nil {
		if errors.Is(err, ports.ErrRunNotFound) {
			writeError(w, http.StatusNotFound, "run not found")
			return
		}
		s.log.WithError(err).WithField("run", id).Error("run status failed")
		writeError(w, http.StatusInternalServerError, "run status failed")
		return
	}
	writeJSON(w, http.StatusOK, runResponse{ID: id, Status: status, Result: result})
}

func (s *Server) getVendorProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	prof, err := s.profiles.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, profilesvc.ErrNotFound) {
			writeError(w, http.StatusNotFound, "vendor not found")
			return
		}
		s.log.WithError(err).WithField("vendor", id).Error("profile lookup failed")
		writeError(w, http.StatusInternalServerError, "profile lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, prof)
}

func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("missing body")
	}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return errors.New("invalid request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
