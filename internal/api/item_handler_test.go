package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyforge/srs-api/internal/domain"
	"github.com/studyforge/srs-api/internal/service"
)

// mockItemService is a mock implementation of the service.ItemService interface
type mockItemService struct {
	createItemsFn func(ctx context.Context, items []*domain.LearningItem) error
	getItemFn     func(ctx context.Context, itemID uuid.UUID) (*domain.LearningItem, error)
	editItemFn    func(ctx context.Context, itemID uuid.UUID, question, answer string, difficulty float64) (*domain.LearningItem, error)
	deleteItemFn  func(ctx context.Context, itemID uuid.UUID) error
}

func (m *mockItemService) CreateItems(ctx context.Context, items []*domain.LearningItem) error {
	return m.createItemsFn(ctx, items)
}

func (m *mockItemService) GetItem(ctx context.Context, itemID uuid.UUID) (*domain.LearningItem, error) {
	return m.getItemFn(ctx, itemID)
}

func (m *mockItemService) EditItem(
	ctx context.Context,
	itemID uuid.UUID,
	question, answer string,
	difficulty float64,
) (*domain.LearningItem, error) {
	return m.editItemFn(ctx, itemID, question, answer, difficulty)
}

func (m *mockItemService) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	return m.deleteItemFn(ctx, itemID)
}

func TestCreateItems(t *testing.T) {
	courseID := uuid.New()

	tests := []struct {
		name           string
		body           string
		serviceError   error
		expectedStatus int
		wantCount      int
	}{
		{
			name: "Success",
			body: `{"course_id": "` + courseID.String() + `", "items": [
				{"question": "Q1", "answer": "A1", "difficulty": 0.2},
				{"question": "Q2", "answer": "A2", "difficulty": 0.8}
			]}`,
			expectedStatus: http.StatusCreated,
			wantCount:      2,
		},
		{
			name:           "Empty Batch",
			body:           `{"course_id": "` + courseID.String() + `", "items": []}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing Course ID",
			body:           `{"items": [{"question": "Q", "answer": "A"}]}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Difficulty Out Of Range",
			body:           `{"course_id": "` + courseID.String() + `", "items": [{"question": "Q", "answer": "A", "difficulty": 2}]}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Malformed JSON",
			body:           `{"course_id":`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotItems []*domain.LearningItem
			svc := &mockItemService{
				createItemsFn: func(ctx context.Context, items []*domain.LearningItem) error {
					gotItems = items
					return tc.serviceError
				},
			}
			handler := NewItemHandler(svc, testLogger())

			req := httptest.NewRequest(http.MethodPost, "/items", bytes.NewReader([]byte(tc.body)))
			rr := httptest.NewRecorder()
			handler.CreateItems(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedStatus == http.StatusCreated {
				require.Len(t, gotItems, tc.wantCount)
				assert.Equal(t, courseID, gotItems[0].CourseID)
				assert.InDelta(t, domain.DefaultEaseFactor, gotItems[0].EaseFactor, 0.0001)

				var resp []ItemResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Len(t, resp, tc.wantCount)
				assert.Nil(t, resp[0].LastReviewedAt)
			}
		})
	}
}

func TestGetItem(t *testing.T) {
	item := sampleItem()

	tests := []struct {
		name           string
		itemID         string
		serviceError   error
		expectedStatus int
	}{
		{
			name:           "Success",
			itemID:         item.ID.String(),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Not Found",
			itemID:         uuid.New().String(),
			serviceError:   service.ErrItemNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Invalid ID",
			itemID:         "not-a-uuid",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockItemService{
				getItemFn: func(ctx context.Context, itemID uuid.UUID) (*domain.LearningItem, error) {
					if tc.serviceError != nil {
						return nil, tc.serviceError
					}
					return item, nil
				},
			}
			handler := NewItemHandler(svc, testLogger())

			rr := routedRequest(t, http.MethodGet,
				"/items/"+tc.itemID, nil, handler.GetItem, "/items/{id}")

			assert.Equal(t, tc.expectedStatus, rr.Code)
		})
	}
}

func TestUpdateItem(t *testing.T) {
	item := sampleItem()

	t.Run("Success", func(t *testing.T) {
		var gotQuestion, gotAnswer string
		svc := &mockItemService{
			editItemFn: func(ctx context.Context, itemID uuid.UUID, question, answer string, difficulty float64) (*domain.LearningItem, error) {
				gotQuestion, gotAnswer = question, answer
				return item, nil
			},
		}
		handler := NewItemHandler(svc, testLogger())

		body := `{"question": "updated q", "answer": "updated a", "difficulty": 0.5}`
		rr := routedRequest(t, http.MethodPut,
			"/items/"+item.ID.String(), []byte(body), handler.UpdateItem, "/items/{id}")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "updated q", gotQuestion)
		assert.Equal(t, "updated a", gotAnswer)
	})

	t.Run("Empty Question Rejected", func(t *testing.T) {
		svc := &mockItemService{}
		handler := NewItemHandler(svc, testLogger())

		body := `{"question": "", "answer": "a", "difficulty": 0.5}`
		rr := routedRequest(t, http.MethodPut,
			"/items/"+item.ID.String(), []byte(body), handler.UpdateItem, "/items/{id}")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Not Found", func(t *testing.T) {
		svc := &mockItemService{
			editItemFn: func(ctx context.Context, itemID uuid.UUID, question, answer string, difficulty float64) (*domain.LearningItem, error) {
				return nil, service.ErrItemNotFound
			},
		}
		handler := NewItemHandler(svc, testLogger())

		body := `{"question": "q", "answer": "a", "difficulty": 0.5}`
		rr := routedRequest(t, http.MethodPut,
			"/items/"+uuid.New().String(), []byte(body), handler.UpdateItem, "/items/{id}")

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestDeleteItem(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := &mockItemService{
			deleteItemFn: func(ctx context.Context, itemID uuid.UUID) error {
				return nil
			},
		}
		handler := NewItemHandler(svc, testLogger())

		rr := routedRequest(t, http.MethodDelete,
			"/items/"+uuid.New().String(), nil, handler.DeleteItem, "/items/{id}")

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, rr.Body.String())
	})

	t.Run("Not Found", func(t *testing.T) {
		svc := &mockItemService{
			deleteItemFn: func(ctx context.Context, itemID uuid.UUID) error {
				return service.ErrItemNotFound
			},
		}
		handler := NewItemHandler(svc, testLogger())

		rr := routedRequest(t, http.MethodDelete,
			"/items/"+uuid.New().String(), nil, handler.DeleteItem, "/items/{id}")

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
