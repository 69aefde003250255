// Package api provides HTTP handlers for the API.
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
	"github.com/studyforge/srs-api/internal/service"
)

// ItemHandler handles learning item content HTTP requests.
type ItemHandler struct {
	itemService service.ItemService
	logger      *slog.Logger
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(itemService service.ItemService, log *slog.Logger) *ItemHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ItemHandler")
	}

	return &ItemHandler{
		itemService: itemService,
		logger:      log.With(slog.String("component", "item_handler")),
	}
}

// CreateItems handles POST /items requests. It creates a batch of items in
// one transaction; each new item is due for immediate review.
func (h *ItemHandler) CreateItems(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateItemsRequest
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

	items := make([]*domain.LearningItem, 0, len(req.Items))
	for _, in := range req.Items {
		item, err := domain.NewLearningItem(courseID, in.Question, in.Answer, in.Difficulty)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
			return
		}
		items = append(items, item)
	}

	if err := h.itemService.CreateItems(r.Context(), items); err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to create items"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("items created",
		slog.String("course_id", courseID.String()),
		slog.Int("count", len(items)))
	shared.RespondWithJSON(w, r, http.StatusCreated, itemsToResponse(items))
}

// GetItem handles GET /items/{id} requests.
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	itemID, ok := parseItemID(w, r, log)
	if !ok {
		return
	}

	item, err := h.itemService.GetItem(r.Context(), itemID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to get item"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, itemToResponse(item))
}

// UpdateItem handles PUT /items/{id} requests. Only content fields change;
// scheduling state is untouched.
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	itemID, ok := parseItemID(w, r, log)
	if !ok {
		return
	}

	var req UpdateItemRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("item_id", itemID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	item, err := h.itemService.EditItem(r.Context(), itemID, req.Question, req.Answer, req.Difficulty)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to update item"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("item updated", slog.String("item_id", itemID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, itemToResponse(item))
}

// DeleteItem handles DELETE /items/{id} requests.
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	itemID, ok := parseItemID(w, r, log)
	if !ok {
		return
	}

	if err := h.itemService.DeleteItem(r.Context(), itemID); err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Item not found")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to delete item", err)
		return
	}

	log.Debug("item deleted", slog.String("item_id", itemID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// parseItemID extracts and parses the {id} URL parameter, writing the error
// response itself when the ID is missing or malformed.
func parseItemID(w http.ResponseWriter, r *http.Request, log *slog.Logger) (uuid.UUID, bool) {
	pathID := chi.URLParam(r, "id")
	if pathID == "" {
		log.Warn("item ID not found in URL path")
		shared.RespondWithError(w, r, http.StatusBadRequest, "Item ID is required")
		return uuid.Nil, false
	}

	itemID, err := uuid.Parse(pathID)
	if err != nil {
		log.Warn("invalid item ID format", slog.String("item_id", pathID))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid item ID format")
		return uuid.Nil, false
	}

	return itemID, true
}
