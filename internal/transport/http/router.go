package http

import (
	"net/http"

	"pastfool/internal/app"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the game screen, admin endpoints, health and metrics.
func NewRouter(service *app.GameService, admin *app.Admin) http.Handler {
	r := mux.NewRouter()

	wsHandler := NewWSHandler(service, admin)
	adminHandler := NewAdminHandler(service, admin)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/ws", wsHandler.ServeWS).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/questions", adminHandler.Questions).Methods("GET")
	api.HandleFunc("/best", adminHandler.Best).Methods("GET")
	api.HandleFunc("/admin/export", adminHandler.Export).Methods("GET")
	api.HandleFunc("/admin/import", adminHandler.Import).Methods("POST")

	return r
}
