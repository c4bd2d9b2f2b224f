package booking

import (
	"context"
	"log"
	"net/http"
	"time"

	"oasis/auth"
	"oasis/models"
	"oasis/utils"

	"github.com/julienschmidt/httprouter"
)

// Handlers exposes Service over HTTP.
type Handlers struct {
	Service *Service
}

func NewHandlers(s *Service) *Handlers {
	return &Handlers{Service: s}
}

// CreateReservation handles POST /api/reservations
func (h *Handlers) CreateReservation(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		utils.RespondWithErr(w, models.ErrUnauthorized)
		return
	}
	if err := utils.ParseForm(r); err != nil {
		utils.RespondWithErr(w, models.ErrInvalidInput)
		return
	}
	req, err := ParseDraftRequest(r.Form)
	if err != nil {
		utils.RespondWithErr(w, err)
		return
	}
	form, err := ParseCreateForm(r.Form)
	if err != nil {
		utils.RespondWithErr(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	data, err := h.Service.PrepareDraft(ctx, req)
	if err != nil {
		utils.RespondWithErr(w, err)
		return
	}
	res, err := h.Service.Create(ctx, session, data, form)
	if err != nil {
		utils.RespondWithErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, res)
}

// ListReservations handles GET /api/account/reservations
func (h *Handlers) ListReservations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	session, _ := auth.SessionFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	list, err := h.Service.Reservations(ctx, session)
	if err != nil {
		utils.RespondWithErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"reservations": list})
}

// GetReservation handles GET /api/account/reservations/:bookingId
func (h *Handlers) GetReservation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	session, _ := auth.SessionFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	b, err := h.Service.Reservation(ctx, session, ps.ByName("bookingId"))
	if err != nil {
		utils.RespondWithErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, b)
}

// UpdateReservation handles POST /api/account/reservations/:bookingId. The form is
// checked before the session.
func (h *Handlers) UpdateReservation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := utils.ParseForm(r); err != nil {
		utils.RespondWithErr(w, models.ErrInvalidInput)
		return
	}
	form, err := ParseUpdateForm(r.Form)
	if err != nil {
		utils.RespondWithErr(w, err)
		return
	}
	if id := ps.ByName("bookingId"); id != "" && id != form.BookingID {
		utils.RespondWithError(w, http.StatusBadRequest, "bookingId does not match the reservation being edited")
		return
	}
	session, _ := auth.SessionFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := h.Service.Update(ctx, session, form)
	if err != nil {
		utils.RespondWithErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, res)
}

// DeleteReservation handles DELETE /api/account/reservations/:bookingId and answers with
// the guest's list as it stands afterwards.
func (h *Handlers) DeleteReservation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	session, _ := auth.SessionFromContext(r.Context())
	bookingID := ps.ByName("bookingId")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	list, err := h.Service.Reservations(ctx, session)
	if err != nil {
		utils.RespondWithErr(w, err)
		return
	}
	view := NewListView(list)

	err = view.Delete(ctx, bookingID, func(ctx context.Context, id string) error {
		return h.Service.Delete(ctx, session, id)
	})
	if err == nil && len(view.Items()) == len(list) {
		// Not in the guest's own list: let Delete decide between 401 and 403.
		err = h.Service.Delete(ctx, session, bookingID)
	}
	if err != nil {
		log.Printf("[booking] delete %s: %v", bookingID, err)
		utils.RespondWithJSON(w, utils.StatusFor(err), utils.M{
			"error":        errorMessage(err),
			"reservations": view.Items(),
		})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"reservations": view.Items()})
}

func errorMessage(err error) string {
	if utils.StatusFor(err) >= http.StatusInternalServerError {
		return models.ErrDeleteFailed.Error()
	}
	return err.Error()
}
