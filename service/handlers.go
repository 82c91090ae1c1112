package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"compute-service/service/application"
	"compute-service/service/domain"
)

type healthResponse struct {
	Status string `json:"status"`
}

type sumResponse struct {
	Total int64 `json:"total"`
}

type echoBody struct {
	Message string `json:"message"`
}

// hit conta a request antes de qualquer validação: requests rejeitadas também contam.
// O espelho tem prazo próprio (HitTimeout) para não segurar a request.
func (s *Server) hit(r *http.Request, ep domain.Endpoint) {
	s.counters.Increment(ep)
	if s.hits == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), s.opts.HitTimeout)
	defer cancel()
	_ = s.hits.Record(ctx, domain.HitEvent{
		Endpoint: ep,
		Method:   r.Method,
		At:       time.Now(),
	})
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	kind := domain.KindOf(err)
	s.metrics.RecordError(kind)
	if kind == domain.KindInternal {
		s.logger.Error("request failed", "path", r.URL.Path, "request_id", RequestIDFrom(r.Context()), "error", err)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "request_id", RequestIDFrom(r.Context()), "error", err)
	}
	RenderError(w, err)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.hit(r, domain.EndpointRoot)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "ok")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.hit(r, domain.EndpointHealth)
	writeJSON(w, http.StatusOK, healthResponse{Status: "healthy"})
}

func (s *Server) handleSum(w http.ResponseWriter, r *http.Request) {
	s.hit(r, domain.EndpointSum)

	q := r.URL.Query()
	if !q.Has("nums") {
		s.fail(w, r, domain.BadRequest("missing query parameter: nums"))
		return
	}
	total, err := application.ParseSum(q.Get("nums"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sumResponse{Total: total})
}

func (s *Server) handleEcho(w http.ResponseWriter, r *http.Request) {
	s.hit(r, domain.EndpointEcho)

	var body echoBody
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes))
	if err := dec.Decode(&body); err != nil {
		de := domain.BadRequest("invalid request body")
		de.Err = err
		s.fail(w, r, de)
		return
	}
	// o corpo precisa ser um único objeto JSON
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		s.fail(w, r, domain.BadRequest("invalid request body: trailing data after JSON object"))
		return
	}
	msg, err := application.ValidateEcho(body.Message)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, echoBody{Message: msg})
}

func (s *Server) handleParallel(w http.ResponseWriter, r *http.Request) {
	s.hit(r, domain.EndpointParallel)

	n, err := parseTaskCount(r.URL.Query().Get("n"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	results, err := s.engine.Compute(r.Context(), n)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.reporter.Snapshot())
}

// parseTaskCount lê n (padrão 5). Valores acima do teto são aceitos e
// reduzidos pelo motor; só entradas não numéricas ou negativas são rejeitadas.
func parseTaskCount(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.DefaultComputeTasks, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		de := domain.BadRequest("n must be a non-negative integer: %s", raw)
		de.Err = err
		return 0, de
	}
	if v > domain.MaxComputeTasks {
		return domain.MaxComputeTasks, nil
	}
	return int(v), nil
}
