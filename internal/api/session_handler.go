package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/studyforge/srs-api/internal/api/shared"
	"github.com/studyforge/srs-api/internal/domain"
	"github.com/studyforge/srs-api/internal/platform/logger"
	"github.com/studyforge/srs-api/internal/redact"
	"github.com/studyforge/srs-api/internal/service/study"
)

// SessionHandler handles study session HTTP requests.
type SessionHandler struct {
	studyService    study.Service
	defaultMaxCards int
	logger          *slog.Logger
}

// NewSessionHandler creates a new SessionHandler. defaultMaxCards is used
// when a creation request does not specify a session size.
func NewSessionHandler(studyService study.Service, defaultMaxCards int, log *slog.Logger) *SessionHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SessionHandler")
	}
	if defaultMaxCards < 1 {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("defaultMaxCards must be at least 1 for SessionHandler")
	}

	return &SessionHandler{
		studyService:    studyService,
		defaultMaxCards: defaultMaxCards,
		logger:          log.With(slog.String("component", "session_handler")),
	}
}

// CreateSession handles POST /sessions requests. It assembles a study
// session for the course, responding 204 when there is nothing to study.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateSessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid course ID format")
		return
	}

	maxCards := req.MaxCards
	if maxCards == 0 {
		maxCards = h.defaultMaxCards
	}

	session, items, err := h.studyService.StartSession(
		r.Context(), courseID, domain.SessionType(req.Type), maxCards)

	// Special case: nothing to study right now
	if errors.Is(err, study.ErrEmptySession) {
		log.Debug("no items to study", slog.String("course_id", courseID.String()))
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to create session"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("session created",
		slog.String("session_id", session.ID.String()),
		slog.String("course_id", courseID.String()),
		slog.Int("cards", len(items)))
	shared.RespondWithJSON(w, r, http.StatusCreated, sessionToResponse(session, items))
}

// GetSession handles GET /sessions/{id} requests. The response carries the
// session's counters and item order but not the item bodies.
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	pathID := chi.URLParam(r, "id")
	if pathID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Session ID is required")
		return
	}

	sessionID, err := uuid.Parse(pathID)
	if err != nil {
		log.Warn("invalid session ID format", slog.String("session_id", pathID))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	session, err := h.studyService.GetSession(r.Context(), sessionID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to get session"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sessionToResponse(session, nil))
}
