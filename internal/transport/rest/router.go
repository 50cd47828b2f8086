package rest

import (
	"net/http"

	"codepair/internal/service"
	"codepair/internal/transport/rest/handler"
	"codepair/internal/transport/ws"

	"github.com/gorilla/mux"
)

// Container holds all dependencies for the router
type Container struct {
	ExecutorService *service.ExecutorService
	WSHandler       *ws.Handler
	CORSOrigins     string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	executeHandler := handler.NewExecuteHandler(c.ExecutorService)

	r.Use(corsMiddleware(c.CORSOrigins))

	// Session traffic rides on a single websocket per client
	r.HandleFunc("/ws", c.WSHandler.ServeWS).Methods("GET")

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/execute", executeHandler.Execute).Methods("POST", "OPTIONS")
	v1.HandleFunc("/runtimes", executeHandler.Runtimes).Methods("GET", "OPTIONS")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return r
}

func corsMiddleware(allowedOrigins string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
