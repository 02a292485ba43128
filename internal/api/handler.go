// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	gh "github.com/google/go-github/v62/github"
	"github.com/jackc/pgx/v5"

	"gitrank/internal/dashboard"
	"gitrank/internal/ingest"
	"gitrank/internal/store"
)

// maxWebhookBody caps webhook payload reads at 5 MB, well above GitHub's
// own delivery limit.
const maxWebhookBody = 5 << 20

// Handler is the container for API dependencies.
type Handler struct {
	ingest *ingest.Service
	dash   *dashboard.Service
	db     store.Querier
	logger *slog.Logger
}

// NewRouter creates and configures a new chi router with all API routes.
func NewRouter(ingestSvc *ingest.Service, dashSvc *dashboard.Service, db store.Querier, logger *slog.Logger) http.Handler {
	h := &Handler{
		ingest: ingestSvc,
		dash:   dashSvc,
		db:     db,
		logger: logger,
	}

	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger) // Chi's default logger
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// API Routes
	r.Get("/health", h.healthCheck)
	r.Post("/webhook/github", h.handleWebhook)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/dashboard", h.getDashboard)
		r.Put("/users/{githubID}/active", h.setUserActive)
	})

	return r
}

// healthCheck is a simple health endpoint.
func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleWebhook ingests one GitHub webhook delivery.
// POST /webhook/github
//
// Ignorable deliveries (unknown event type, missing repository or sender,
// unmatched action) are acknowledged with 200 so GitHub does not retry them;
// only a store fault returns an error status.
func (h *Handler) handleWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Unreadable request body")
		return
	}

	accepted, err := h.ingest.Process(r.Context(), gh.WebHookType(r), payload)
	if err != nil {
		h.logger.Error("Failed to process webhook delivery", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed")
		return
	}

	if !accepted {
		respondWithJSON(w, http.StatusOK, map[string]string{"message": "Ignored"})
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Processed"})
}

// getDashboard returns the full aggregated dashboard document.
// GET /v1/dashboard
func (h *Handler) getDashboard(w http.ResponseWriter, r *http.Request) {
	data, err := h.dash.Get(r.Context())
	if err != nil {
		h.logger.Error("Failed to build dashboard", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondWithJSON(w, http.StatusOK, data)
}

// setUserActive flips a user's leaderboard-inclusion flag.
// PUT /v1/users/{githubID}/active
func (h *Handler) setUserActive(w http.ResponseWriter, r *http.Request) {
	githubID, err := strconv.ParseInt(chi.URLParam(r, "githubID"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid 'githubID' parameter. Must be an integer.")
		return
	}

	var body struct {
		Active *bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Active == nil {
		respondWithError(w, http.StatusBadRequest, "Request body must be {\"active\": bool}")
		return
	}

	user, err := h.db.SetUserActiveByGithubID(r.Context(), store.SetUserActiveByGithubIDParams{
		GithubID: githubID,
		IsActive: *body.Active,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			respondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("Failed to update user", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}
