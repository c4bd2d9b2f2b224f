package settings

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"oasis/db"
	"oasis/models"
	"oasis/utils"

	"github.com/julienschmidt/httprouter"
)

// Handlers serves the booking rules of the site.
type Handlers struct {
	Store db.Store
}

func NewHandlers(store db.Store) *Handlers {
	return &Handlers{Store: store}
}

// Load returns the settings row; a missing row is a load failure.
func Load(ctx context.Context, store db.Store) (models.Settings, error) {
	s, err := store.Settings(ctx)
	if errors.Is(err, models.ErrNotFound) {
		return models.Settings{}, fmt.Errorf("settings %w: no settings row", models.ErrLoadFailed)
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("settings %w: %w", models.ErrLoadFailed, err)
	}
	return s, nil
}

// GetSettings handles GET /api/settings
func (h *Handlers) GetSettings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	s, err := Load(ctx, h.Store)
	if err != nil {
		utils.RespondWithErr(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, s)
}
