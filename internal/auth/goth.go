package auth

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/github"
	"github.com/markbates/goth/providers/google"

	"culturefeed-backend/internal/config"
)

// SessionStore backs gothic's OAuth state cookie. There is no
// per-user session beyond the admin JWT issued after a successful
// callback (§6.2); this store only survives the OAuth handshake.
var SessionStore sessions.Store

// SetupGoth configures Goth with whichever OAuth providers have
// credentials set. A provider with no client ID/secret is simply
// omitted, per spec.md §6.3's "missing disables only its feature".
func SetupGoth(cfg *config.Config) error {
	cookieStore := sessions.NewCookieStore([]byte(cfg.OAuth.SecretKey))
	cookieStore.Options = &sessions.Options{
		Path:     cfg.Session.Path,
		Domain:   cfg.Session.Domain,
		MaxAge:   cfg.Session.MaxAge,
		HttpOnly: cfg.Session.HttpOnly,
		Secure:   cfg.Session.Secure,
		SameSite: cfg.Session.GetSameSite(),
	}
	SessionStore = cookieStore
	gothic.Store = SessionStore

	var providers []goth.Provider
	if cfg.OAuth.GoogleClientID != "" && cfg.OAuth.GoogleClientSecret != "" {
		providers = append(providers, google.New(cfg.OAuth.GoogleClientID, cfg.OAuth.GoogleClientSecret, cfg.OAuth.GoogleCallbackURL))
	}
	if cfg.OAuth.GitHubClientID != "" && cfg.OAuth.GitHubClientSecret != "" {
		providers = append(providers, github.New(cfg.OAuth.GitHubClientID, cfg.OAuth.GitHubClientSecret, cfg.OAuth.GitHubCallbackURL))
	}
	goth.UseProviders(providers...)

	return nil
}

// GetSession retrieves the gothic session from the request.
func GetSession(r *http.Request) (*sessions.Session, error) {
	return SessionStore.Get(r, "_gothic_session")
}
