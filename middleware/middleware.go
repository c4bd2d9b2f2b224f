package middleware

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

// Authenticator resolves bearer tokens into sessions.
type Authenticator struct {
	Sessions *auth.Sessions
}

func NewAuthenticator(s *auth.Sessions) *Authenticator {
	return &Authenticator{Sessions: s}
}

// Authenticate rejects requests without a live session and attaches the session otherwise.
func (a *Authenticator) Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		raw, ok := auth.BearerToken(r.Header.Get("Authorization"))
		if !ok {
			utils.RespondWithErr(w, models.ErrUnauthorized)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		session, claims, err := a.Sessions.Resolve(ctx, raw)
		cancel()
		if err != nil {
			log.Printf("[auth] session rejected: %v", err)
			utils.RespondWithErr(w, err)
			return
		}

		next(w, r.WithContext(auth.WithSession(r.Context(), session, claims)), ps)
	}
}

// OptionalAuth attaches a session when the request carries a valid token and proceeds regardless.
func (a *Authenticator) OptionalAuth(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if raw, ok := auth.BearerToken(r.Header.Get("Authorization")); ok {
			ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
			session, claims, err := a.Sessions.Resolve(ctx, raw)
			cancel()
			if err == nil {
				r = r.WithContext(auth.WithSession(r.Context(), session, claims))
			}
		}
		next(w, r, ps)
	}
}

// SecurityHeaders applies a set of recommended HTTP security headers.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// XSS, content sniffing, framing
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		// HSTS (must be on HTTPS)
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
		// Account data must never be cached by intermediaries
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		next.ServeHTTP(w, r)
	})
}

// Logging logs each request method, path, remote address, and duration.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s from %s - %v", r.Method, r.RequestURI, r.RemoteAddr, time.Since(start))
	})
}
