package handler

import (
	"encoding/json"
	"net/http"

	"codepair/internal/model"
	"codepair/internal/service"
)

// ExecuteHandler handles code execution endpoints
type ExecuteHandler struct {
	executor *service.ExecutorService
}

// NewExecuteHandler creates a new execute handler
func NewExecuteHandler(executor *service.ExecutorService) *ExecuteHandler {
	return &ExecuteHandler{executor: executor}
}

// Execute handles POST /v1/execute
func (h *ExecuteHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var req model.ExecuteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Code == "" {
		writeError(w, http.StatusBadRequest, "code is required")
		return
	}

	result, err := h.executor.Execute(r.Context(), req.Code, req.Language)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Runtimes handles GET /v1/runtimes
func (h *ExecuteHandler) Runtimes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{
		"javascript": h.executor.IsReady(model.LangJavaScript),
		"python":     h.executor.IsReady(model.LangPython),
	})
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
