package routes

import (
	"encoding/json"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"

	"culturefeed-backend/internal/api/handlers"
	"culturefeed-backend/internal/api/middleware"
	"culturefeed-backend/internal/auth"
	"culturefeed-backend/internal/config"
	"culturefeed-backend/internal/dispatch"
	"culturefeed-backend/internal/extract/image"
	"culturefeed-backend/internal/geo"
	"culturefeed-backend/internal/ingest"
	"gorm.io/gorm"
)

// Dependencies bundles everything SetupRoutes needs to wire handlers,
// mirroring the shape of the teacher's ServiceContainer but scoped to
// this repo's actual components (no user/show/venue services).
type Dependencies struct {
	DB             *gorm.DB
	JWT            *auth.Service
	Dispatcher     *dispatch.Dispatcher
	IngestEngine   *ingest.Engine
	ImageExtractor *image.Extractor
	GeoResolver    *geo.Resolver
	Config         *config.Config
	BlockedHosts   []string
}

// SetupRoutes configures all API routes: public reads, OAuth
// login/callback, and the JWT-protected admin mutation surface.
func SetupRoutes(router *chi.Mux, deps Dependencies) huma.API {
	api := humachi.New(router, huma.DefaultConfig("Culturefeed", "1.0.0"))

	api.UseMiddleware(middleware.HumaRequestIDMiddleware)
	api.UseMiddleware(middleware.HumaSentryContextMiddleware)

	setupSystemRoutes(router, api)
	setupOAuthRoutes(router, deps)
	setupReadRoutes(api, deps)

	adminGroup := huma.NewGroup(api, "")
	adminGroup.UseMiddleware(middleware.HumaJWTMiddleware(deps.JWT, deps.Config.Session))
	adminGroup.UseMiddleware(middleware.HumaSentryContextMiddleware)
	setupAdminRoutes(router, api, adminGroup, deps)

	return api
}

func setupSystemRoutes(router *chi.Mux, api huma.API) {
	huma.Get(api, "/health", handlers.HealthHandler)

	router.Get("/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(api.OpenAPI())
	})
}

// setupOAuthRoutes wires the admin login handshake. These are plain
// chi routes, not Huma operations, since gothic drives the redirect
// dance directly against http.ResponseWriter/http.Request.
func setupOAuthRoutes(router *chi.Mux, deps Dependencies) {
	oauthHandler := handlers.NewOAuthHandler(deps.JWT, deps.Config)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RateLimitAuthEndpoints())
		r.Get("/auth/login/{provider}", oauthHandler.LoginHandler)
		r.Get("/auth/callback/{provider}", oauthHandler.CallbackHandler)
	})
}

// setupReadRoutes wires the public, unauthenticated read endpoints
// (spec.md §6.1).
func setupReadRoutes(api huma.API, deps Dependencies) {
	citiesHandler := handlers.NewCitiesHandler(deps.DB)
	huma.Get(api, "/api/cities", citiesHandler.ListCitiesHandler)

	venuesHandler := handlers.NewVenuesReadHandler(deps.DB)
	huma.Get(api, "/api/venues", venuesHandler.ListVenuesHandler)

	sourcesHandler := handlers.NewSourcesReadHandler(deps.DB)
	huma.Get(api, "/api/sources", sourcesHandler.ListSourcesHandler)

	eventsHandler := handlers.NewEventsReadHandler(deps.DB, deps.BlockedHosts)
	huma.Get(api, "/api/events", eventsHandler.ListEventsHandler)
}

// setupAdminRoutes wires the JWT-protected mutation surface (spec.md
// §6.2): scrape, image upload, and city/venue/source/event CRUD.
func setupAdminRoutes(router *chi.Mux, api huma.API, protected *huma.Group, deps Dependencies) {
	scrapeHandler := handlers.NewScrapeHandler(deps.Dispatcher)
	huma.Post(protected, "/api/scrape", scrapeHandler.ScrapeHandler)

	// scrape-stream and upload-event-image bypass Huma's typed bodies
	// (SSE and multipart respectively), so they're registered directly
	// on the router in their own rate-limited group behind
	// requireAdminJWT. /api/scrape above is not rate-limited.
	imageHandler := handlers.NewImageUploadHandler(deps.ImageExtractor)
	router.Group(func(r chi.Router) {
		r.Use(middleware.RateLimitScrapeEndpoints())
		r.Use(requireAdminJWT(deps))
		r.Post("/api/scrape-stream", scrapeHandler.ScrapeStreamHandler)
		r.Post("/api/admin/upload-event-image", imageHandler.ServeHTTP)
	})

	eventHandler := handlers.NewEventAdminHandler(deps.DB, deps.IngestEngine)
	huma.Post(protected, "/api/admin/create-event-from-data", eventHandler.CreateEventFromDataHandler)
	huma.Put(protected, "/api/admin/events/{id}", eventHandler.UpdateEventHandler)
	huma.Delete(protected, "/api/admin/events/{id}", eventHandler.DeleteEventHandler)
	huma.Post(protected, "/api/admin/clear-past-events", eventHandler.ClearPastEventsHandler)

	cityHandler := handlers.NewCityAdminHandler(deps.DB, deps.GeoResolver)
	huma.Post(protected, "/api/admin/add-city", cityHandler.AddCityHandler)
	huma.Put(protected, "/api/admin/cities/{id}", cityHandler.UpdateCityHandler)
	huma.Delete(protected, "/api/admin/cities/{id}", cityHandler.DeleteCityHandler)

	venueHandler := handlers.NewVenueAdminHandler(deps.DB, deps.Config.Ingest.MaxVenuesPerCity)
	huma.Post(protected, "/api/admin/add-venue", venueHandler.AddVenueHandler)
	huma.Put(protected, "/api/admin/venues/{id}", venueHandler.UpdateVenueHandler)
	huma.Delete(protected, "/api/admin/venues/{id}", venueHandler.DeleteVenueHandler)

	sourceHandler := handlers.NewSourceAdminHandler(deps.DB)
	huma.Post(protected, "/api/admin/add-source", sourceHandler.AddSourceHandler)
	huma.Put(protected, "/api/admin/sources/{id}", sourceHandler.UpdateSourceHandler)
	huma.Delete(protected, "/api/admin/sources/{id}", sourceHandler.DeleteSourceHandler)
}

// requireAdminJWT is the plain net/http equivalent of
// middleware.HumaJWTMiddleware, for the two admin endpoints registered
// outside Huma's typed-operation model.
func requireAdminJWT(deps Dependencies) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := middleware.ExtractBearerOrCookie(r, deps.Config.Session)
			if token == "" {
				http.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}
			if _, err := deps.JWT.ValidateToken(token); err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
