package handler

import "github.com/julienschmidt/httprouter"

type API struct {
	availability *AvailabilityHandler
}

func NewAPI(availability *AvailabilityHandler) *API {
	return &API{availability: availability}
}

func (a *API) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/clubs/:id/availability", a.availability.ClubDay)
	router.GET("/api/v1/clubs/:id/courts/:court_id/availability", a.availability.CourtDay)
	router.GET("/api/v1/clubs/:id/courts/:court_id/quote", a.availability.QuoteSlot)
}
