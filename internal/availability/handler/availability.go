package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"courtops/internal/availability/service"
	httputil "courtops/pkg/http"
	"courtops/pkg/logger"
)

type AvailabilityHandler struct {
	service service.AvailabilityService
	log     *logger.Logger
}

func NewAvailabilityHandler(service service.AvailabilityService, log *logger.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log,
	}
}

func (h *AvailabilityHandler) CourtDay(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	q := r.URL.Query()

	grid, err := h.service.CourtDay(r.Context(),
		ps.ByName("id"), ps.ByName("court_id"), q.Get("date"), isMember(q.Get("member")))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, grid)
}

func (h *AvailabilityHandler) ClubDay(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	q := r.URL.Query()

	grids, err := h.service.ClubDay(r.Context(), ps.ByName("id"), q.Get("date"), isMember(q.Get("member")))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, grids)
}

func (h *AvailabilityHandler) QuoteSlot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	q := r.URL.Query()

	quote, err := h.service.QuoteSlot(r.Context(),
		ps.ByName("id"), ps.ByName("court_id"), q.Get("date"), q.Get("start_time"), isMember(q.Get("member")))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, quote)
}

func isMember(v string) bool {
	return v == "true" || v == "1"
}
