package routes

import (
	"fmt"
	"net/http"

	"oasis/utils"

	"github.com/julienschmidt/httprouter"
)

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

func AddUtilityRoutes(router *httprouter.Router) {
	router.GET("/health", Index)
	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondWithJSON(w, http.StatusMethodNotAllowed, utils.M{
			"success": false,
			"message": "Method is not allowed",
		})
	})
}

func AddAuthRoutes(router *httprouter.Router, d Deps) {
	router.POST("/api/auth/signin", d.RateLimiter.Limit(d.Sessions.SignIn))
	router.POST("/api/auth/signout", d.Auth.Authenticate(d.Sessions.SignOut))
	router.GET("/api/auth/session", d.Auth.Authenticate(d.Sessions.CurrentSession))
}

func AddCabinRoutes(router *httprouter.Router, d Deps) {
	router.GET("/api/cabins", d.Cabins.ListCabins)
	router.GET("/api/cabins/:cabinId", d.Auth.OptionalAuth(d.Cabins.GetCabin))
	router.GET("/api/cabins/:cabinId/booked-dates", d.Cabins.BookedDates)
}

func AddSettingsRoutes(router *httprouter.Router, d Deps) {
	router.GET("/api/settings", d.Settings.GetSettings)
}

func AddContactRoutes(router *httprouter.Router, d Deps) {
	router.POST("/api/contact", d.RateLimiter.Limit(d.Contact.Submit))
}

func AddBookingRoutes(router *httprouter.Router, d Deps) {
	router.POST("/api/reservations", d.RateLimiter.Limit(d.Auth.Authenticate(d.Bookings.CreateReservation)))
	router.GET("/api/account/reservations", d.Auth.Authenticate(d.Bookings.ListReservations))
	router.GET("/api/account/reservations/:bookingId", d.Auth.Authenticate(d.Bookings.GetReservation))
	// the update handler reports missing fields before a missing session
	router.POST("/api/account/reservations/:bookingId", d.RateLimiter.Limit(d.Auth.OptionalAuth(d.Bookings.UpdateReservation)))
	router.DELETE("/api/account/reservations/:bookingId", d.RateLimiter.Limit(d.Auth.Authenticate(d.Bookings.DeleteReservation)))
}

func AddProfileRoutes(router *httprouter.Router, d Deps) {
	router.GET("/api/account/profile", d.Auth.Authenticate(d.Profile.GetProfile))
	router.POST("/api/account/profile", d.RateLimiter.Limit(d.Auth.Authenticate(d.Profile.UpdateProfile)))
}

func AddConfirmationRoutes(router *httprouter.Router, d Deps) {
	router.GET("/api/account/reservations/:bookingId/confirmation", d.Auth.Authenticate(d.Confirmations.Download))
	router.POST("/api/confirmations/verify", d.RateLimiter.Limit(d.Confirmations.Verify))
}

func AddWebsocketRoutes(router *httprouter.Router, d Deps) {
	router.GET("/ws/cabins/:cabinId", d.Hub.HandleWS)
}
