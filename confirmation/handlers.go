package confirmation

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"oasis/auth"
	"oasis/booking"
	"oasis/db"
	"oasis/models"
	"oasis/utils"

	"github.com/julienschmidt/httprouter"
)

type Handlers struct {
	Bookings *booking.Service
	Store    db.Store
	Signer   *Signer
}

func NewHandlers(bookings *booking.Service, store db.Store, signer *Signer) *Handlers {
	return &Handlers{Bookings: bookings, Store: store, Signer: signer}
}

// Download handles GET /api/account/reservations/:bookingId/confirmation
func (h *Handlers) Download(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	session, _ := auth.SessionFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	b, err := h.Bookings.Reservation(ctx, session, ps.ByName("bookingId"))
	if err != nil {
		utils.RespondWithErr(w, err)
		return
	}
	cabin, err := h.Store.Cabin(ctx, b.CabinID)
	if err != nil {
		utils.RespondWithErr(w, fmt.Errorf("cabin %w: %w", models.ErrLoadFailed, err))
		return
	}

	pdf, err := Render(b, cabin, session.Name, h.Signer.Payload(b))
	if err != nil {
		log.Printf("[confirmation] render %s: %v", b.ID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=booking-"+b.ID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

// Verify handles POST /api/confirmations/verify
func (h *Handlers) Verify(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		utils.RespondWithErr(w, models.ErrMissingFields)
		return
	}
	id, ok := h.Signer.Verify(req.Code)
	if !ok {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"valid": false})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"valid": true, "bookingId": id})
}
