package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"courtops/internal/bookings/service"
	httputil "courtops/pkg/http"
	"courtops/pkg/logger"
	"courtops/pkg/model"
)

type WaitingListHandler struct {
	service service.WaitingListService
	log     *logger.Logger
}

func NewWaitingListHandler(service service.WaitingListService, log *logger.Logger) *WaitingListHandler {
	return &WaitingListHandler{
		service: service,
		log:     log,
	}
}

func (h *WaitingListHandler) Add(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var entry model.WaitingListEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if err := h.service.Add(r.Context(), &entry); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, entry)
}

func (h *WaitingListHandler) ListByClubAndDate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()

	entries, err := h.service.ListByClubAndDate(r.Context(), q.Get("club_id"), q.Get("date"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, entries)
}

type resolveRequest struct {
	Status string `json:"status"`
}

func (h *WaitingListHandler) Resolve(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if err := h.service.Resolve(r.Context(), ps.ByName("id"), req.Status); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}
