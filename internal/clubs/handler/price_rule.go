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

type PriceRuleHandler struct {
	service service.PriceRuleService
	log     *logger.Logger
}

func NewPriceRuleHandler(service service.PriceRuleService, log *logger.Logger) *PriceRuleHandler {
	return &PriceRuleHandler{
		service: service,
		log:     log,
	}
}

func (h *PriceRuleHandler) Create(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var rule model.PriceRule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}
	rule.ClubID = ps.ByName("id")

	if err := h.service.Create(r.Context(), &rule); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, rule)
}

func (h *PriceRuleHandler) ListByClub(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	rules, err := h.service.ListByClub(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, rules)
}

func (h *PriceRuleHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.PriceRuleUpdate
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

func (h *PriceRuleHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}
