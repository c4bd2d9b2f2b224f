package cabins

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"oasis/auth"
	"oasis/booking"
	"oasis/models"
	"oasis/utils"

	"github.com/julienschmidt/httprouter"
)

type Handlers struct {
	Catalogue *Catalogue
}

func NewHandlers(c *Catalogue) *Handlers {
	return &Handlers{Catalogue: c}
}

// ListCabins handles GET /api/cabins?capacity=small|medium|large
func (h *Handlers) ListCabins(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := models.CapacityFilter(strings.ToLower(r.URL.Query().Get("capacity")))

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	list, err := h.Catalogue.List(ctx, filter)
	if err != nil {
		utils.RespondWithErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"cabins": list})
}

type cabinPage struct {
	Detail
	Session *auth.Session `json:"session"`
}

// GetCabin handles GET /api/cabins/:cabinId. An unknown cabin is answered with a
// message body and status 200. Session is null for visitors, who get the login
// prompt instead of the reservation form.
func (h *Handlers) GetCabin(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	d, err := h.Catalogue.Detail(ctx, ps.ByName("cabinId"))
	if errors.Is(err, models.ErrNotFound) {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "cabin not found"})
		return
	}
	if err != nil {
		utils.RespondWithErr(w, err)
		return
	}
	session, _ := auth.SessionFromContext(r.Context())
	utils.RespondWithJSON(w, http.StatusOK, cabinPage{Detail: d, Session: session})
}

// BookedDates handles GET /api/cabins/:cabinId/booked-dates
func (h *Handlers) BookedDates(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	dates, err := h.Catalogue.Resolver.BookedDates(ctx, ps.ByName("cabinId"))
	if err != nil {
		utils.RespondWithErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"bookedDates": booking.FormatDays(dates)})
}
