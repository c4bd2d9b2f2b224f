package routes

import (
	"oasis/auth"
	"oasis/booking"
	"oasis/cabins"
	"oasis/confirmation"
	"oasis/contact"
	"oasis/middleware"
	"oasis/profile"
	"oasis/ratelim"
	"oasis/settings"

	"github.com/julienschmidt/httprouter"
)

// Deps is everything the routes hand requests to.
type Deps struct {
	Auth          *middleware.Authenticator
	RateLimiter   *ratelim.RateLimiter
	Sessions      *auth.Handlers
	Bookings      *booking.Handlers
	Hub           *booking.Hub
	Cabins        *cabins.Handlers
	Profile       *profile.Handlers
	Settings      *settings.Handlers
	Contact       *contact.Handlers
	Confirmations *confirmation.Handlers
}

func RoutesWrapper(router *httprouter.Router, d Deps) {
	AddUtilityRoutes(router)
	AddAuthRoutes(router, d)
	AddCabinRoutes(router, d)
	AddSettingsRoutes(router, d)
	AddContactRoutes(router, d)
	AddBookingRoutes(router, d)
	AddProfileRoutes(router, d)
	AddConfirmationRoutes(router, d)
	AddWebsocketRoutes(router, d)
}
