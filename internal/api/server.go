// It defines the API server, sets up the routes (endpoints)
// using chi, and links them to the handler functions.

package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmcosta/shelfmark/internal/auth"
	"github.com/dmcosta/shelfmark/internal/catalog"
	"github.com/dmcosta/shelfmark/internal/core"
	"github.com/dmcosta/shelfmark/internal/store"
	"github.com/dmcosta/shelfmark/internal/syncer"
)

// Server holds the dependencies for our API.
type Server struct {
	app     *core.App
	db      *sql.DB
	store   *store.Store
	catalog *catalog.Service
	gateway *syncer.Gateway
	tokens  auth.TokenService
}

// Store returns the store instance.
func (s *Server) Store() *store.Store {
	return s.store
}

// Catalog returns the catalog service instance.
func (s *Server) Catalog() *catalog.Service {
	return s.catalog
}

// SetRemote points the sync gateway at a different backup service.
// Used by tests to target an httptest server.
func (s *Server) SetRemote(baseURL string) {
	s.gateway = syncer.NewGateway(s.catalog, syncer.NewClient(baseURL))
}

// NewServer creates a new Server instance.
func NewServer(app *core.App) *Server {
	storeInstance := store.New(app.DB)
	catalogService := catalog.NewService(storeInstance)

	var client *syncer.Client
	if app.Config.Remote.URL != "" {
		client = syncer.NewClient(app.Config.Remote.URL)
	}

	return &Server{
		app:     app,
		db:      app.DB,
		store:   storeInstance,
		catalog: catalogService,
		gateway: syncer.NewGateway(catalogService, client),
		tokens: auth.TokenService{
			Secret:   []byte(app.Config.Auth.JWTSecret),
			Duration: time.Duration(app.Config.Auth.TokenTTLHours) * time.Hour,
		},
	}
}

// Router sets up and returns the main router for the application.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)    // Logs requests to the console
	r.Use(middleware.Recoverer) // Recovers from panics
	r.Use(middleware.Timeout(60 * time.Second))

	// Session login for the regular API
	r.Post("/api/users/login", s.handleLogin)
	r.Get("/api/version", s.handleGetVersion)

	// Backup service surface: token issuance plus the per-identity
	// snapshot endpoints, addressed with bearer tokens so other instances
	// can sync against this one.
	r.Post("/api/auth/register", s.handleRegister)
	r.Post("/api/auth/login", s.handleTokenLogin)
	r.Group(func(r chi.Router) {
		r.Use(s.BearerAuthMiddleware)
		r.Post("/api/backup", s.handleSaveBackup)
		r.Get("/api/backup", s.handleGetBackup)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.AuthMiddleware)

		r.Post("/api/users/logout", s.handleLogout)
		r.Get("/api/users/me", s.handleGetMe)

		r.Route("/api", func(r chi.Router) {
			// Catalog routes
			r.Get("/entries", s.handleListEntries)
			r.Post("/entries", s.handleCreateEntry)
			r.Put("/entries/{entryID}", s.handleUpdateEntry)
			r.Delete("/entries/{entryID}", s.handleDeleteEntry)

			// Single-field mutations
			r.Post("/entries/{entryID}/favorite", s.handleToggleFavorite)
			r.Post("/entries/{entryID}/status", s.handleSetStatus)
			r.Post("/entries/{entryID}/chapter", s.handleAdjustChapter)

			// Portable snapshot file export/import
			r.Get("/snapshot", s.handleExportSnapshot)
			r.Post("/snapshot", s.handleImportSnapshot)

			// Remote sync
			r.Post("/sync/push", s.handleSyncPush)
			r.Get("/sync/pull", s.handleSyncPull)
		})
	})

	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		if err := s.db.Ping(); err != nil {
			RespondWithError(w, http.StatusServiceUnavailable, "Database connection failed")
			return
		}
		RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}

func (s *Server) handleGetVersion(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string]string{"version": s.app.Version})
}
