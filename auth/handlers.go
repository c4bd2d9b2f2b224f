package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"oasis/models"
	"oasis/utils"

	"github.com/julienschmidt/httprouter"
)

// Handlers serves the sign-in, sign-out and session endpoints.
type Handlers struct {
	Provider Provider
	Bridge   *Bridge
	Sessions *Sessions
}

type signInRequest struct {
	Credential string `json:"credential"`
}

type signInResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Session   Session   `json:"session"`
}

// SignIn handles POST /api/auth/signin
func (h *Handlers) SignIn(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Credential == "" {
		utils.RespondWithErr(w, models.ErrMissingFields)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	identity, err := h.Provider.Verify(ctx, req.Credential)
	if err != nil {
		log.Printf("[auth] provider rejected credential: %v", err)
		utils.RespondWithErr(w, err)
		return
	}
	if !h.Bridge.SignIn(ctx, identity) {
		utils.RespondWithError(w, http.StatusUnauthorized, "sign-in refused")
		return
	}

	token, claims, err := h.Sessions.Tokens.Issue(identity)
	if err != nil {
		log.Printf("[auth] issue token: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "sign-in failed")
		return
	}
	session, err := h.Bridge.Session(ctx, identity)
	if err != nil {
		utils.RespondWithErr(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, signInResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		Session:   session,
	})
}

// SignOut handles POST /api/auth/signout
func (h *Handlers) SignOut(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		utils.RespondWithErr(w, models.ErrUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.Sessions.Revoke(ctx, claims); err != nil {
		log.Printf("[auth] revoke %s: %v", claims.ID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to invalidate session")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "redirect": "/"})
}

// CurrentSession handles GET /api/auth/session
func (h *Handlers) CurrentSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		utils.RespondWithErr(w, models.ErrUnauthorized)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, session)
}
