package handlers

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/markbates/goth/gothic"

	"culturefeed-backend/internal/auth"
	"culturefeed-backend/internal/config"
	"culturefeed-backend/internal/logger"
)

// OAuthHandler gates the admin mutation surface (§6.2) with a single
// role: there is no user-accounts system, so a successful OAuth login
// grants the admin JWT only when the provider email is on the
// AdminEmails allowlist, and denies everyone else.
type OAuthHandler struct {
	jwt         *auth.Service
	cfg         *config.Config
	frontendURL string
}

func NewOAuthHandler(jwtService *auth.Service, cfg *config.Config) *OAuthHandler {
	return &OAuthHandler{jwt: jwtService, cfg: cfg, frontendURL: cfg.Server.FrontendURL}
}

// LoginHandler handles GET /auth/login/{provider}, starting the OAuth
// handshake via Goth's standard BeginAuthHandler.
func (h *OAuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")
	if provider != "google" && provider != "github" {
		http.Error(w, "invalid provider", http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	q.Set("provider", provider)
	r.URL.RawQuery = q.Encode()

	gothic.BeginAuthHandler(w, r)
}

// CallbackHandler handles GET /auth/callback/{provider}: completes the
// OAuth handshake, checks the verified email against the admin
// allowlist, and either sets the admin cookie and redirects to the
// frontend, or redirects with an error and no cookie.
func (h *OAuthHandler) CallbackHandler(w http.ResponseWriter, r *http.Request) {
	gothUser, err := gothic.CompleteUserAuth(w, r)
	if err != nil {
		logger.EventWarn(r.Context(), "oauth_callback_failed", "error", err.Error())
		h.redirectWithError(w, r, "authentication failed")
		return
	}

	if gothUser.Email == "" || !auth.IsAdminEmail(h.cfg.OAuth.AdminEmails, gothUser.Email) {
		logger.EventWarn(r.Context(), "oauth_callback_not_admin", "email", gothUser.Email)
		h.redirectWithError(w, r, "not authorized")
		return
	}

	token, err := h.jwt.CreateToken(gothUser.Email)
	if err != nil {
		logger.EventError(r.Context(), "oauth_token_create_failed", err)
		h.redirectWithError(w, r, "token creation failed")
		return
	}

	cookie := h.cfg.Session.NewAuthCookie(token, time.Duration(h.cfg.JWT.Expiry)*time.Hour)
	http.SetCookie(w, &cookie)
	http.Redirect(w, r, h.frontendURL+"/admin", http.StatusTemporaryRedirect)
}

func (h *OAuthHandler) redirectWithError(w http.ResponseWriter, r *http.Request, message string) {
	http.Redirect(w, r, h.frontendURL+"/admin?error="+url.QueryEscape(message), http.StatusTemporaryRedirect)
}
