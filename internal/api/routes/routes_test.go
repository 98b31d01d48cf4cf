package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"culturefeed-backend/internal/auth"
	"culturefeed-backend/internal/config"
	"culturefeed-backend/internal/dispatch"
	"culturefeed-backend/internal/extract/image"
	"culturefeed-backend/internal/geo"
	"culturefeed-backend/internal/ingest"
)

func testDependencies() Dependencies {
	cfg := &config.Config{
		Server: config.ServerConfig{Addr: "localhost:8080"},
		JWT:    config.JWTConfig{SecretKey: "test-secret", Expiry: 24},
	}
	jwtService := auth.NewService(cfg.JWT)
	engine := ingest.NewEngine(nil, ingest.DefaultBatchSize)
	dispatcher := dispatch.NewDispatcher(nil, nil, nil, engine)
	extractor := image.NewExtractor(nil, nil, nil, nil)
	resolver := geo.NewResolver(nil)

	return Dependencies{
		DB:             nil,
		JWT:            jwtService,
		Dispatcher:     dispatcher,
		IngestEngine:   engine,
		ImageExtractor: extractor,
		GeoResolver:    resolver,
		Config:         cfg,
		BlockedHosts:   nil,
	}
}

// TestSetupRoutes exercises route registration end to end against the
// OpenAPI spec endpoint, the same smoke test shape as the teacher's.
func TestSetupRoutes(t *testing.T) {
	router := chi.NewRouter()
	api := SetupRoutes(router, testDependencies())

	if api == nil {
		t.Fatal("Expected API to be created, got nil")
	}

	req := httptest.NewRequest("GET", "/openapi.json", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	contentType := w.Header().Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("Expected Content-Type application/json, got %s", contentType)
	}

	var openAPI map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &openAPI); err != nil {
		t.Fatalf("Failed to parse OpenAPI spec: %v", err)
	}
	if _, ok := openAPI["openapi"]; !ok {
		t.Error("Expected OpenAPI spec to contain 'openapi' field")
	}
}

func TestSetupRoutes_HealthEndpoint(t *testing.T) {
	router := chi.NewRouter()
	SetupRoutes(router, testDependencies())

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
}

// TestSetupRoutes_AdminRequiresAuth confirms the admin group rejects
// unauthenticated requests rather than falling through to the handler.
func TestSetupRoutes_AdminRequiresAuth(t *testing.T) {
	router := chi.NewRouter()
	SetupRoutes(router, testDependencies())

	req := httptest.NewRequest("POST", "/api/admin/clear-past-events", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}
