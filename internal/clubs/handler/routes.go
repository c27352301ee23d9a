package handler

import "github.com/julienschmidt/httprouter"

// API bundles the club, court and price rule handlers behind a single
// route registrar for pkg/app.
type API struct {
	clubs  *ClubHandler
	courts *CourtHandler
	rules  *PriceRuleHandler
}

func NewAPI(clubs *ClubHandler, courts *CourtHandler, rules *PriceRuleHandler) *API {
	return &API{
		clubs:  clubs,
		courts: courts,
		rules:  rules,
	}
}

func (a *API) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/clubs", a.clubs.Create)
	router.GET("/api/v1/clubs", a.clubs.GetAll)
	router.GET("/api/v1/clubs/id/:id", a.clubs.GetByID)
	router.GET("/api/v1/clubs/slug/:slug", a.clubs.GetBySlug)
	router.PATCH("/api/v1/clubs/id/:id", a.clubs.Update)

	router.POST("/api/v1/clubs/id/:id/courts", a.courts.Create)
	router.GET("/api/v1/clubs/id/:id/courts", a.courts.ListByClub)
	router.GET("/api/v1/courts/id/:id", a.courts.GetByID)
	router.PATCH("/api/v1/courts/id/:id", a.courts.Update)
	router.DELETE("/api/v1/courts/id/:id", a.courts.Delete)

	router.POST("/api/v1/clubs/id/:id/price-rules", a.rules.Create)
	router.GET("/api/v1/clubs/id/:id/price-rules", a.rules.ListByClub)
	router.PATCH("/api/v1/price-rules/id/:id", a.rules.Update)
	router.DELETE("/api/v1/price-rules/id/:id", a.rules.Delete)
}
