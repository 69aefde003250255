package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyforge/srs-api/internal/domain"
	"github.com/studyforge/srs-api/internal/service/review"
)

// mockReviewService is a mock implementation of the review.Service interface
type mockReviewService struct {
	submitReviewFn func(ctx context.Context, event domain.ReviewEvent) (*domain.LearningItem, error)
	getNextItemFn  func(ctx context.Context, courseID uuid.UUID) (*domain.LearningItem, error)
	postponeItemFn func(ctx context.Context, itemID uuid.UUID, days int) (*domain.LearningItem, error)
}

func (m *mockReviewService) SubmitReview(
	ctx context.Context,
	event domain.ReviewEvent,
) (*domain.LearningItem, error) {
	return m.submitReviewFn(ctx, event)
}

func (m *mockReviewService) GetNextItem(
	ctx context.Context,
	courseID uuid.UUID,
) (*domain.LearningItem, error) {
	return m.getNextItemFn(ctx, courseID)
}

func (m *mockReviewService) PostponeItem(
	ctx context.Context,
	itemID uuid.UUID,
	days int,
) (*domain.LearningItem, error) {
	return m.postponeItemFn(ctx, itemID, days)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleItem() *domain.LearningItem {
	now := time.Now().UTC()
	return &domain.LearningItem{
		ID:             uuid.New(),
		CourseID:       uuid.New(),
		Question:       "What is the capital of France?",
		Answer:         "Paris",
		Difficulty:     0.3,
		EaseFactor:     2.5,
		IntervalDays:   8,
		Repetitions:    3,
		LastReviewedAt: now,
		NextReviewAt:   now.AddDate(0, 0, 8),
		ReviewCount:    3,
		CreatedAt:      now.AddDate(0, 0, -30),
		UpdatedAt:      now,
	}
}

// routedRequest dispatches through a chi router so URL parameters resolve.
func routedRequest(t *testing.T, method, path string, body []byte, handler http.HandlerFunc, pattern string) *httptest.ResponseRecorder {
	t.Helper()

	r := chi.NewRouter()
	r.MethodFunc(method, pattern, handler)

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestGetNextItem(t *testing.T) {
	item := sampleItem()

	tests := []struct {
		name           string
		query          string
		serviceResult  *domain.LearningItem
		serviceError   error
		expectedStatus int
		hasBody        bool
	}{
		{
			name:           "Success",
			query:          "?course_id=" + item.CourseID.String(),
			serviceResult:  item,
			expectedStatus: http.StatusOK,
			hasBody:        true,
		},
		{
			name:           "No Items Due",
			query:          "?course_id=" + uuid.New().String(),
			serviceError:   review.ErrNoItemsDue,
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "Missing Course ID",
			query:          "",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Invalid Course ID",
			query:          "?course_id=not-a-uuid",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockReviewService{
				getNextItemFn: func(ctx context.Context, courseID uuid.UUID) (*domain.LearningItem, error) {
					return tc.serviceResult, tc.serviceError
				},
			}
			handler := NewReviewHandler(svc, testLogger())

			req := httptest.NewRequest(http.MethodGet, "/items/next"+tc.query, nil)
			rr := httptest.NewRecorder()
			handler.GetNextItem(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.hasBody {
				var resp ItemResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, item.ID.String(), resp.ID)
				assert.Equal(t, item.Question, resp.Question)
			}
		})
	}
}

func TestSubmitReview(t *testing.T) {
	item := sampleItem()

	tests := []struct {
		name           string
		itemID         string
		body           string
		serviceResult  *domain.LearningItem
		serviceError   error
		expectedStatus int
		wantQuality    *domain.Quality
	}{
		{
			name:           "Success",
			itemID:         item.ID.String(),
			body:           `{"quality": 5, "response_time_ms": 1200}`,
			serviceResult:  item,
			expectedStatus: http.StatusOK,
			wantQuality:    qualityPtr(5),
		},
		{
			name:           "Quality Zero Is Valid",
			itemID:         item.ID.String(),
			body:           `{"quality": 0}`,
			serviceResult:  item,
			expectedStatus: http.StatusOK,
			wantQuality:    qualityPtr(0),
		},
		{
			name:           "Missing Quality",
			itemID:         item.ID.String(),
			body:           `{"response_time_ms": 1200}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Quality Out Of Range",
			itemID:         item.ID.String(),
			body:           `{"quality": 6}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Negative Quality",
			itemID:         item.ID.String(),
			body:           `{"quality": -1}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Malformed JSON",
			itemID:         item.ID.String(),
			body:           `{"quality":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Invalid Item ID",
			itemID:         "not-a-uuid",
			body:           `{"quality": 3}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Item Not Found",
			itemID:         item.ID.String(),
			body:           `{"quality": 3}`,
			serviceError:   review.ErrItemNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Session Not Found",
			itemID:         item.ID.String(),
			body:           `{"quality": 3, "session_id": "` + uuid.New().String() + `"}`,
			serviceError:   review.ErrSessionNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotEvent *domain.ReviewEvent
			svc := &mockReviewService{
				submitReviewFn: func(ctx context.Context, event domain.ReviewEvent) (*domain.LearningItem, error) {
					gotEvent = &event
					return tc.serviceResult, tc.serviceError
				},
			}
			handler := NewReviewHandler(svc, testLogger())

			rr := routedRequest(t, http.MethodPost,
				"/items/"+tc.itemID+"/review", []byte(tc.body),
				handler.SubmitReview, "/items/{id}/review")

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.wantQuality != nil {
				require.NotNil(t, gotEvent)
				assert.Equal(t, *tc.wantQuality, gotEvent.Quality)
			}
		})
	}
}

func qualityPtr(q domain.Quality) *domain.Quality {
	return &q
}

func TestPostponeItem(t *testing.T) {
	item := sampleItem()

	tests := []struct {
		name           string
		body           string
		serviceError   error
		expectedStatus int
		wantDays       int
	}{
		{
			name:           "Success",
			body:           `{"days": 3}`,
			expectedStatus: http.StatusOK,
			wantDays:       3,
		},
		{
			name:           "Zero Days",
			body:           `{"days": 0}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing Days",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Item Not Found",
			body:           `{"days": 2}`,
			serviceError:   review.ErrItemNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotDays int
			svc := &mockReviewService{
				postponeItemFn: func(ctx context.Context, itemID uuid.UUID, days int) (*domain.LearningItem, error) {
					gotDays = days
					return item, tc.serviceError
				},
			}
			handler := NewReviewHandler(svc, testLogger())

			rr := routedRequest(t, http.MethodPost,
				"/items/"+item.ID.String()+"/postpone", []byte(tc.body),
				handler.PostponeItem, "/items/{id}/postpone")

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedStatus == http.StatusOK {
				assert.Equal(t, tc.wantDays, gotDays)
			}
		})
	}
}
