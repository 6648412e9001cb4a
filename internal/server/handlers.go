package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/maverickalo/check-my-code/internal/client"
	"github.com/maverickalo/check-my-code/internal/envelope"
	"github.com/maverickalo/check-my-code/internal/present"
	"github.com/maverickalo/check-my-code/internal/render"
	"github.com/maverickalo/check-my-code/internal/review"
	"github.com/maverickalo/check-my-code/internal/schema"
	"github.com/maverickalo/check-my-code/internal/submit"
)

// EvaluateRequest is the body of POST /api/v1/evaluate.
type EvaluateRequest struct {
	Code     string `json:"code"`
	Severity string `json:"severity,omitempty"`
	Category string `json:"category,omitempty"`
}

func (s *Server) evaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		respondWithFailure(w, http.StatusBadRequest, review.Failure{Error: "invalid request body: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		respondWithFailure(w, http.StatusBadRequest, client.Classify(client.ErrEmptyCode))
		return
	}

	o := s.pipeline.Run(r.Context(), req.Code)
	if !o.Succeeded() {
		respondWithFailure(w, http.StatusBadGateway, *o.Failure)
		return
	}
	s.respondWithResult(w, *o.Result, req.Severity, req.Category)
}

func (s *Server) normalize(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondWithFailure(w, http.StatusBadRequest, review.Failure{Error: "failed to read request body: " + err.Error()})
		return
	}
	if !gjson.ValidBytes(raw) {
		respondWithFailure(w, http.StatusBadRequest, review.Failure{Error: "request body is not valid JSON"})
		return
	}

	p := s.pipeline
	if r.URL.Query().Get("repair") == "true" {
		p = &submit.Pipeline{Unwrapper: envelope.Unwrapper{Repair: true}, Metrics: s.metrics}
	}
	q := r.URL.Query()
	s.respondWithResult(w, p.Normalize(raw), q.Get("severity"), q.Get("category"))
}

func (s *Server) schema(w http.ResponseWriter, _ *http.Request) {
	data, err := schema.JSONSchema()
	if err != nil {
		respondWithError(w, "failed to build schema", err)
		return
	}
	w.Header().Set("Content-Type", "application/schema+json")
	w.Write(data)
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondWithResult(w http.ResponseWriter, res review.EvaluationResult, severity, category string) {
	d := present.Build(res, present.Options{Severity: severity, Category: category, Rules: s.rules})
	respondWithJSON(w, http.StatusOK, render.Report{Result: &res, Dashboard: &d})
}

func respondWithFailure(w http.ResponseWriter, code int, f review.Failure) {
	respondWithJSON(w, code, render.Report{Failure: &f})
}

func respondWithError(w http.ResponseWriter, msg string, err error) {
	log.WithError(err).Error(msg)
	respondWithJSON(w, http.StatusInternalServerError, render.Report{Failure: &review.Failure{Error: msg}})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.WithError(err).Error("failed to encode response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(data)
}
