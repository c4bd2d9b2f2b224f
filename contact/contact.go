package contact

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"oasis/db"
	"oasis/models"
	"oasis/utils"

	"github.com/julienschmidt/httprouter"
)

type request struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
}

type response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type Handlers struct {
	Store db.Store
}

func NewHandlers(store db.Store) *Handlers {
	return &Handlers{Store: store}
}

// Submit handles POST /api/contact
func (h *Handlers) Submit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&req); err != nil {
		utils.RespondWithJSON(w, http.StatusBadRequest, response{Message: "invalid JSON body"})
		return
	}
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	req.Subject = strings.TrimSpace(req.Subject)
	if req.FullName == "" || req.Email == "" || req.Subject == "" || strings.TrimSpace(req.Message) == "" {
		utils.RespondWithJSON(w, http.StatusBadRequest, response{Message: "fullName, email, subject, message are required"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	msg := models.ContactMessage{
		ID:        utils.GetUUID(),
		CreatedAt: time.Now().UTC(),
		FullName:  req.FullName,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
	}
	if err := h.Store.CreateContactMessage(ctx, msg); err != nil {
		log.Printf("[contact] insert failed: %v", err)
		utils.RespondWithJSON(w, http.StatusInternalServerError, response{Message: "Could not send your message, please try again"})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, response{Success: true, Message: "thanks for your message, we will contact you soon"})
}
