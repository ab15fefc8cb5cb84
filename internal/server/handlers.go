package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/ossinsight/composer/pkg/buildinfo"
	"github.com/ossinsight/composer/pkg/document"
	cerrors "github.com/ossinsight/composer/pkg/errors"
	"github.com/ossinsight/composer/pkg/layout"
	"github.com/ossinsight/composer/pkg/pipeline"
	"github.com/ossinsight/composer/pkg/render"
	"github.com/ossinsight/composer/pkg/render/sink"
)

type errorResponse struct {
	Code  cerrors.Code `json:"code"`
	Error string       `json:"error"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Get().Version})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	l, _, ok := s.compute(w, r)
	if !ok {
		return
	}

	id := uuid.NewString()
	data, err := sink.RenderJSON(l, sink.WithJSONID(id), sink.WithJSONCompact())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Layout-Id", id)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	l, opts, ok := s.compute(w, r)
	if !ok {
		return
	}

	opts.Formats = []string{pipeline.FormatSVG}
	opts.Titles = opts.Titles || queryBool(r, "titles")
	artifacts, err := s.runner.Render(r.Context(), l, layout.Node{}, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[pipeline.FormatSVG])
}

// compute decodes the request document and lays it out. On failure it writes
// the error response and returns false.
func (s *Server) compute(w http.ResponseWriter, r *http.Request) (render.Layout, pipeline.Options, bool) {
	opts := s.cfg.Options
	opts.Logger = s.cfg.Logger.With("request_id", requestID(r))

	var err error
	if opts.Width, err = queryFloat(r, "width", opts.Width); err != nil {
		s.writeError(w, r, err)
		return render.Layout{}, opts, false
	}
	if opts.Height, err = queryFloat(r, "height", opts.Height); err != nil {
		s.writeError(w, r, err)
		return render.Layout{}, opts, false
	}

	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	doc, err := document.Decode(body, document.FormatJSON)
	if err != nil {
		s.writeError(w, r, err)
		return render.Layout{}, opts, false
	}
	doc.Source = "request"

	l, err := s.runner.ComputeDocument(r.Context(), doc, opts)
	if err != nil {
		s.writeError(w, r, err)
		return render.Layout{}, opts, false
	}
	return l, opts, true
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{
			Code:  cerrors.ErrCodeInvalidInput,
			Error: "request body exceeds " + strconv.FormatInt(maxErr.Limit, 10) + " bytes",
		})
	case cerrors.IsStructural(err):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:  cerrors.GetCode(err),
			Error: cerrors.UserMessage(err),
		})
	default:
		s.cfg.Logger.Error("request failed", "request_id", requestID(r), "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Code:  cerrors.ErrCodeInternal,
			Error: "internal error",
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func queryFloat(r *http.Request, key string, fallback float64) (float64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, cerrors.New(cerrors.ErrCodeInvalidInput, "query parameter %s must be a number", key)
	}
	if err := cerrors.ValidateDimension(key, v); err != nil {
		return 0, err
	}
	return v, nil
}

func queryBool(r *http.Request, key string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(key))
	return v
}
