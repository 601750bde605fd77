package router

import (
	"roombook/internal/handlers/auth"
	"roombook/internal/handlers/booking"
	"roombook/internal/handlers/customer"
	"roombook/internal/handlers/extension"
	"roombook/internal/handlers/room"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth      auth.Handler
	Room      room.Handler
	Booking   booking.Handler
	Customer  customer.Handler
	Extension extension.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup, r.DomainHandlers.Customer.BookingRouter, r.DomainHandlers.Extension.BookingRouter)
		r.DomainHandlers.Customer.Router(routerGroup)
		r.DomainHandlers.Extension.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
