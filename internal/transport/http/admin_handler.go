package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"pastfool/internal/app"
	"pastfool/internal/domain"
)

// maxImportBytes bounds the body read by the (inert) import endpoint.
const maxImportBytes = 1 << 20

// AdminHandler exposes the question bank export and the inert import.
type AdminHandler struct {
	service *app.GameService
	admin   *app.Admin
}

func NewAdminHandler(service *app.GameService, admin *app.Admin) *AdminHandler {
	return &AdminHandler{service: service, admin: admin}
}

// Questions renders the bank inline for the admin panel.
func (h *AdminHandler) Questions(w http.ResponseWriter, r *http.Request) {
	doc, err := h.admin.ExportDocument()
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(doc)
}

// Export serves the bank as a downloadable document.
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	doc, err := h.admin.ExportDocument()
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+h.admin.Filename()+`"`)
	_, _ = w.Write(doc)
}

// Import never changes the bank; it always answers with the unsupported notice.
func (h *AdminHandler) Import(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	msg, err := h.admin.ImportDocument(string(body))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, importResult{Message: msg})
}

type bestResponse struct {
	PlayerID string `json:"playerId"`
	Best     int    `json:"best"`
}

// Best reports a player's stored best score.
func (h *AdminHandler) Best(w http.ResponseWriter, r *http.Request) {
	playerID := r.URL.Query().Get("playerId")
	if playerID == "" {
		http.Error(w, "missing playerId", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, bestResponse{PlayerID: playerID, Best: h.service.Best(r.Context(), playerID)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, domain.ErrAdminDisabled) {
		status = http.StatusForbidden
	}
	writeJSON(w, status, errorPayload{Message: err.Error()})
}
