package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"cultural_planner/internal/app"
	"cultural_planner/internal/domain"
)

const maxBody = 1 << 20

type Handlers struct {
	P       *app.PlannerService
	MaxDays int
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	if h.MaxDays <= 0 {
		h.MaxDays = 14
	}
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/v1/itineraries", h.createItinerary)
	s.mux.Post("/v1/itineraries/parse", h.parseItinerary)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", err.Error())
		return false
	}
	return true
}

func (h *Handlers) checkTrip(w http.ResponseWriter, destination string, days int) bool {
	if strings.TrimSpace(destination) == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid destination", "destination is required")
		return false
	}
	if days < 1 || days > h.MaxDays {
		writeProblem(w, http.StatusBadRequest, "Invalid duration", fmt.Sprintf("duration must be an integer between 1 and %d", h.MaxDays))
		return false
	}
	return true
}

func (h *Handlers) createItinerary(w http.ResponseWriter, r *http.Request) {
	var req domain.TripRequest
	if !decodeBody(w, r, &req) || !h.checkTrip(w, req.Destination, req.Duration) {
		return
	}
	res := h.P.Plan(r.Context(), req)
	view := app.View(req.Destination, res)
	view.PlanID = uuid.NewString()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(view); err != nil {
		log.Error().Err(err).Msg("failed to write createItinerary body")
	}
}

func (h *Handlers) parseItinerary(w http.ResponseWriter, r *http.Request) {
	var q domain.ParseQuery
	if !decodeBody(w, r, &q) || !h.checkTrip(w, q.Destination, q.Duration) {
		return
	}
	res := h.P.Parse(q)

	etag, body := calcETagAndBody(app.View(q.Destination, res))
	// parsing is deterministic, so identical input yields the same tag
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write parseItinerary body")
	}
}
