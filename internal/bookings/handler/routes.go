package handler

import "github.com/julienschmidt/httprouter"

type API struct {
	bookings    *BookingHandler
	waitingList *WaitingListHandler
}

func NewAPI(bookings *BookingHandler, waitingList *WaitingListHandler) *API {
	return &API{
		bookings:    bookings,
		waitingList: waitingList,
	}
}

func (a *API) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", a.bookings.Create)
	router.GET("/api/v1/bookings", a.bookings.ListDay)
	router.GET("/api/v1/bookings/id/:id", a.bookings.GetByID)
	router.POST("/api/v1/bookings/id/:id/cancel", a.bookings.Cancel)
	router.POST("/api/v1/bookings/id/:id/no-show", a.bookings.MarkNoShow)
	router.POST("/api/v1/bookings/id/:id/no-show/revert", a.bookings.RevertNoShow)

	router.POST("/api/v1/waiting-list", a.waitingList.Add)
	router.GET("/api/v1/waiting-list", a.waitingList.ListByClubAndDate)
	router.POST("/api/v1/waiting-list/id/:id/resolve", a.waitingList.Resolve)
}
