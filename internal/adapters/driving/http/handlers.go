package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cam-barts/rs-document/internal/core/domain"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// Health endpoints

// HealthResponse represents the health check response with component status
type HealthResponse struct {
	Status     string                     `json:"status"`
	Components map[string]ComponentHealth `json:"components,omitempty"`
}

// ComponentHealth represents health status of a single component
type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// handleHealth godoc
// @Summary      Health check
// @Description  Returns 200 if the service is up, with status of each dependency in the body
// @Tags         Health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	components := make(map[string]ComponentHealth)
	allHealthy := true

	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			components["postgres"] = ComponentHealth{Status: "unhealthy", Message: err.Error()}
			allHealthy = false
		} else {
			components["postgres"] = ComponentHealth{Status: "healthy"}
		}
	}

	if s.redisClient != nil {
		if err := s.redisClient.Ping(r.Context()); err != nil {
			components["redis"] = ComponentHealth{Status: "unhealthy", Message: err.Error()}
			allHealthy = false
		} else {
			components["redis"] = ComponentHealth{Status: "healthy"}
		}
	}

	components["server"] = ComponentHealth{Status: "healthy"}

	resp := HealthResponse{Status: "healthy", Components: components}
	if !allHealthy {
		resp.Status = "degraded"
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Returns the readiness status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{Version: s.version})
}

// Auth endpoints

// loginRequest carries the API key to exchange for a bearer token.
type loginRequest struct {
	APIKey string `json:"api_key" example:"sk-..."`
}

// loginResponse carries the minted bearer token.
type loginResponse struct {
	Token string `json:"token"`
}

// handleLogin godoc
// @Summary      Exchange API key for bearer token
// @Description  Verifies an API key and mints a short-lived bearer token required on /v1/clean-and-split
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      loginRequest  true  "API key"
// @Success      200      {object}  loginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Invalid API key"
// @Router       /auth/login [post]
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := s.authService.Authenticate(r.Context(), req.APIKey)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid api key")
			return
		}
		writeError(w, http.StatusInternalServerError, "authentication failed")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

// Clean-and-split endpoint

// documentDTO is the wire representation of a domain.Document.
type documentDTO struct {
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// cleanAndSplitRequest carries the documents to process and the target
// chunk size, measured in Unicode scalar values.
type cleanAndSplitRequest struct {
	Documents []documentDTO `json:"documents"`
	ChunkSize int           `json:"chunk_size" example:"1000"`
}

// cleanAndSplitResponse carries one chunk slice per input document, in
// request order.
type cleanAndSplitResponse struct {
	Chunks [][]documentDTO `json:"chunks"`
}

// handleCleanAndSplit godoc
// @Summary      Clean and split documents
// @Description  Runs each document through the cleaner pipeline and the recursive character splitter, returning chunks no larger than chunk_size
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      cleanAndSplitRequest  true  "Documents to process"
// @Success      200      {object}  cleanAndSplitResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request or chunk_size"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      500      {object}  ErrorResponse  "Processing failed"
// @Router       /clean-and-split [post]
func (s *Server) handleCleanAndSplit(w http.ResponseWriter, r *http.Request) {
	var req cleanAndSplitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	docs := make([]*domain.Document, len(req.Documents))
	for i, d := range req.Documents {
		docs[i] = domain.NewDocument(d.Content, d.Metadata)
	}

	results, err := s.docService.CleanAndSplit(r.Context(), docs, req.ChunkSize)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to process documents")
		return
	}

	resp := cleanAndSplitResponse{Chunks: make([][]documentDTO, len(results))}
	for i, chunks := range results {
		dtos := make([]documentDTO, len(chunks))
		for j, c := range chunks {
			dtos[j] = documentDTO{Content: c.Content, Metadata: c.Metadata}
		}
		resp.Chunks[i] = dtos
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
