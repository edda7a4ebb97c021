package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Lzww0608/gid"
	"github.com/Lzww0608/gid/internal/config"
	"github.com/Lzww0608/gid/internal/store"
)

const (
	maxBatch         = 1000
	defaultListLimit = 50
	maxListLimit     = 1000
)

// idResponse is a rendered identifier. Timestamp and offset are only set for
// time-ordered identifiers.
type idResponse struct {
	gid.View
	Kind      string  `json:"kind,omitempty"`
	Format    string  `json:"format,omitempty"`
	Timestamp *uint64 `json:"timestamp,omitempty"`
	Offset    *uint16 `json:"offset,omitempty"`
}

func newIDResponse(id gid.ID, kind string) idResponse {
	resp := idResponse{View: gid.ConvertAll(id), Kind: kind}
	if kind == config.KindTime {
		ts, off := gid.ExtractTimestamp(id), gid.ExtractOffset(id)
		resp.Timestamp, resp.Offset = &ts, &off
	}
	return resp
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGenerate mints ?count identifiers of ?kind and registers them when a
// registry is configured.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	if kind == "" {
		kind = s.cfg.IDs.DefaultKind
	}
	if err := config.ValidateKind(kind); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_kind", err.Error())
		return
	}

	count := 1
	if v := r.URL.Query().Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxBatch {
			writeError(w, http.StatusBadRequest, "invalid_count", "count must be between 1 and 1000")
			return
		}
		count = n
	}

	now := time.Now()
	ids := make([]idResponse, 0, count)
	recs := make([]store.Record, 0, count)
	for i := 0; i < count; i++ {
		id, err := s.generate(kind)
		s.metrics.RecordGenerate(kind, err)
		if err != nil {
			s.logger.Error().Err(err).Str("kind", kind).Msg("generate identifier")
			writeError(w, http.StatusInternalServerError, "generate_failed", err.Error())
			return
		}
		ids = append(ids, newIDResponse(id, kind))
		recs = append(recs, store.NewRecord(id, kind, now))
	}

	if s.registry != nil {
		err := s.registry.SaveAll(r.Context(), recs)
		s.metrics.RecordRegistryWrite(err)
		if err != nil {
			s.logger.Error().Err(err).Int("count", count).Msg("register identifiers")
			writeError(w, http.StatusInternalServerError, "registry_failed", err.Error())
			return
		}
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"ids": ids})
}

func (s *Server) generate(kind string) (gid.ID, error) {
	if kind == config.KindRandom {
		return s.randGen.New()
	}
	return s.timeGen.New()
}

// handleDecode recovers an identifier from {text} in ?format (auto by default)
// and returns every rendering of it.
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	id, format, ok := s.decodeParam(w, r, "format")
	if !ok {
		return
	}
	resp := idResponse{View: gid.ConvertAll(id), Format: format.String()}
	writeJSON(w, http.StatusOK, resp)
}

// handleEncode decodes {text} using ?from (auto by default) and renders it in ?format.
func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	id, _, ok := s.decodeParam(w, r, "from")
	if !ok {
		return
	}

	format, err := gid.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_format", err.Error())
		return
	}
	if format == gid.FormatAuto {
		format = s.cfg.IDs.DefaultFormat
	}

	text, err := gid.Encode(id, format)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_format", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"value":  id,
		"format": format.String(),
		"text":   text,
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if s.registry == nil {
		writeError(w, http.StatusServiceUnavailable, "registry_disabled", "no identifier registry configured")
		return
	}

	limit := defaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxListLimit {
			writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be between 1 and 1000")
			return
		}
		limit = n
	}

	recs, err := s.registry.List(r.Context(), limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("list registry")
		writeError(w, http.StatusInternalServerError, "registry_failed", err.Error())
		return
	}
	if recs == nil {
		recs = []store.Record{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"records": recs})
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	if s.registry == nil {
		writeError(w, http.StatusServiceUnavailable, "registry_disabled", "no identifier registry configured")
		return
	}

	id, _, ok := s.decodeParam(w, r, "format")
	if !ok {
		return
	}

	rec, err := s.registry.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found", err.Error())
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Stringer("id", id).Msg("lookup registry")
		writeError(w, http.StatusInternalServerError, "registry_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// decodeParam decodes the {text} URL parameter with the format named by the
// formatParam query parameter. On failure it writes a 400 and returns ok=false.
func (s *Server) decodeParam(w http.ResponseWriter, r *http.Request, formatParam string) (gid.ID, gid.Format, bool) {
	format, err := gid.ParseFormat(r.URL.Query().Get(formatParam))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_format", err.Error())
		return gid.Nil, format, false
	}

	text := chi.URLParam(r, "text")
	id, err := gid.Decode(text, format)
	s.metrics.RecordDecode(format.String(), err)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_identifier", err.Error())
		return gid.Nil, format, false
	}

	if format == gid.FormatAuto {
		format = gid.Detect(text)
	}
	return id, format, true
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
