package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/NiteshMarwaha/vibetrader/internal/middleware"
	"github.com/NiteshMarwaha/vibetrader/internal/model"
	"github.com/NiteshMarwaha/vibetrader/internal/service"
)

// AuthHandler handles HTTP requests for authentication and the profile routes.
type AuthHandler struct {
	service      *service.AuthService
	sessionTTL   time.Duration
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler. cookieSecure should be true in
// production so the session cookie is only sent over HTTPS.
func NewAuthHandler(svc *service.AuthService, sessionTTL time.Duration, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		service:      svc,
		sessionTTL:   sessionTTL,
		cookieSecure: cookieSecure,
	}
}

// HandleSignup handles POST /auth/signup requests.
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req model.SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sess, err := h.service.Signup(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailRequired), errors.Is(err, service.ErrPasswordRequired):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrEmailTaken):
			writeJSON(w, http.StatusConflict, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	h.setSessionCookie(w, sess.Token)
	writeJSON(w, http.StatusCreated, model.UserEnvelope{User: sess.User})
}

// HandleLogin handles POST /auth/login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sess, err := h.service.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailRequired), errors.Is(err, service.ErrPasswordRequired):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrInvalidCredentials):
			writeJSON(w, http.StatusUnauthorized, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	h.setSessionCookie(w, sess.Token)
	writeJSON(w, http.StatusOK, model.UserEnvelope{User: sess.User})
}

// HandleLogout handles POST /auth/logout requests. Sessions are stateless,
// so logout just clears the client-held cookie.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// HandleMe handles GET /auth/me requests.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	writeJSON(w, http.StatusOK, model.UserEnvelope{User: user})
}

// HandleDashboard handles GET /dashboard requests.
func (h *AuthHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	greeting := user.Email
	if user.Name != nil && *user.Name != "" {
		greeting = *user.Name
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome back, " + greeting + ".",
	})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
