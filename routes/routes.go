package routes

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"project/config"
	"project/storage"
)

// Deps carries everything the handlers need; nothing is reached through
// package globals.
type Deps struct {
	Store storage.Store
	Cfg   *config.Config
	// Redis is optional; when present the admin login limiter counts in Redis.
	Redis *redis.Client
}

func InitRouter(deps Deps) *mux.Router {
	r := mux.NewRouter()

	// Health check endpoint for container health probes
	r.Handle("/health", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"service":   "engage-api",
		})
	})).Methods(http.MethodGet)

	r.Use(func(next http.Handler) http.Handler {
		return handlers.CORS(
			handlers.AllowedOrigins(deps.Cfg.CORSOrigins),
			handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			handlers.AllowedHeaders([]string{"Content-Type", "X-Requested-With"}),
		)(next)
	})

	api := r.PathPrefix("/api").Subrouter()

	UserRoutes(api, deps)
	AdminRoutes(api, deps)

	return r
}
