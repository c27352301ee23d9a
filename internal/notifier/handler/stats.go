package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	httputil "courtops/pkg/http"
	"courtops/pkg/kafka"
	"courtops/pkg/logger"
)

// StatsHandler exposes consumer progress for operators. The notifier has no
// business API; this is its only HTTP surface besides health.
type StatsHandler struct {
	consumer *kafka.Consumer
	log      *logger.Logger
}

func NewStatsHandler(consumer *kafka.Consumer, log *logger.Logger) *StatsHandler {
	return &StatsHandler{
		consumer: consumer,
		log:      log,
	}
}

func (h *StatsHandler) Lag(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	lag, err := h.consumer.Lag()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, map[string]int64{"lag": lag})
}

func (h *StatsHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/notifier/lag", h.Lag)
}
