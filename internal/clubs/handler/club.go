package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"courtops/internal/clubs/service"
	httputil "courtops/pkg/http"
	"courtops/pkg/logger"
	"courtops/pkg/model"
)

type ClubHandler struct {
	service service.ClubService
	log     *logger.Logger
}

func NewClubHandler(service service.ClubService, log *logger.Logger) *ClubHandler {
	return &ClubHandler{
		service: service,
		log:     log,
	}
}

func (h *ClubHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var club model.ClubScheduleConfig
	if err := json.NewDecoder(r.Body).Decode(&club); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if err := h.service.Create(r.Context(), &club); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, club)
}

func (h *ClubHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	club, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, club)
}

func (h *ClubHandler) GetBySlug(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	club, err := h.service.GetBySlug(r.Context(), ps.ByName("slug"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, club)
}

func (h *ClubHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	clubs, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WritePaginated(w, clubs, total, limit, offset)
}

func (h *ClubHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.ClubScheduleConfigUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if err := h.service.Update(r.Context(), ps.ByName("id"), &updates); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}
