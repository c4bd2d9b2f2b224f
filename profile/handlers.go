package profile

import (
	"context"
	"net/http"
	"time"

	"oasis/auth"
	"oasis/models"
	"oasis/utils"

	"github.com/julienschmidt/httprouter"
)

type Handlers struct {
	Service *Service
}

func NewHandlers(s *Service) *Handlers {
	return &Handlers{Service: s}
}

// GetProfile handles GET /api/account/profile
func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	session, _ := auth.SessionFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	g, err := h.Service.Profile(ctx, session)
	if err != nil {
		utils.RespondWithErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, g)
}

// UpdateProfile handles POST /api/account/profile
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		utils.RespondWithErr(w, models.ErrUnauthorized)
		return
	}
	if err := utils.ParseForm(r); err != nil {
		utils.RespondWithErr(w, models.ErrInvalidInput)
		return
	}
	update, err := ParseProfileForm(r.Form)
	if err != nil {
		utils.RespondWithErr(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Service.Update(ctx, session, update); err != nil {
		utils.RespondWithErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}
