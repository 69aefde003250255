package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/studyforge/srs-api/internal/domain"
)

func TestQualityValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		quality domain.Quality
		wantErr bool
	}{
		{name: "blackout", quality: 0, wantErr: false},
		{name: "boundary failure", quality: 2, wantErr: false},
		{name: "boundary success", quality: 3, wantErr: false},
		{name: "perfect recall", quality: 5, wantErr: false},
		{name: "above range", quality: 6, wantErr: true},
		{name: "below range", quality: -1, wantErr: true},
		{name: "far above range", quality: 100, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.quality.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidQuality)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQualitySuccess(t *testing.T) {
	t.Parallel()

	// 3 is the boundary: it counts as remembered, 2 does not.
	assert.False(t, domain.Quality(0).Success())
	assert.False(t, domain.Quality(2).Success())
	assert.True(t, domain.Quality(3).Success())
	assert.True(t, domain.Quality(5).Success())
}

func TestReviewEventValidate(t *testing.T) {
	t.Parallel()

	itemID := uuid.New()

	testCases := []struct {
		name    string
		event   domain.ReviewEvent
		wantErr error
	}{
		{
			name:    "valid event",
			event:   domain.ReviewEvent{ItemID: itemID, Quality: 4, ResponseTimeMs: 1200},
			wantErr: nil,
		},
		{
			name:    "valid event without session",
			event:   domain.ReviewEvent{ItemID: itemID, Quality: 0},
			wantErr: nil,
		},
		{
			name:    "missing item ID",
			event:   domain.ReviewEvent{Quality: 4},
			wantErr: domain.ErrItemIDEmpty,
		},
		{
			name:    "quality out of range",
			event:   domain.ReviewEvent{ItemID: itemID, Quality: 7},
			wantErr: domain.ErrInvalidQuality,
		},
		{
			name:    "negative response time",
			event:   domain.ReviewEvent{ItemID: itemID, Quality: 4, ResponseTimeMs: -5},
			wantErr: domain.ErrNegativeResponseTime,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.event.Validate()
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStudySessionCounters(t *testing.T) {
	t.Parallel()

	session, err := domain.NewStudySession(uuid.New(), domain.SessionTypeMixed, []uuid.UUID{uuid.New(), uuid.New()})
	assert.NoError(t, err)

	session.RecordReview(5, 1000)
	session.RecordReview(2, 3000)
	session.RecordReview(3, 2000)

	assert.Equal(t, 3, session.CardsReviewed)
	assert.Equal(t, 2, session.CorrectCount)
	assert.Equal(t, 6000, session.TotalResponseMs)
	assert.Equal(t, 2000, session.AverageResponseMs())
}

func TestNewStudySessionValidation(t *testing.T) {
	t.Parallel()

	t.Run("unknown session type", func(t *testing.T) {
		t.Parallel()
		session, err := domain.NewStudySession(uuid.New(), domain.SessionType("cram"), nil)
		assert.Nil(t, session)
		assert.ErrorIs(t, err, domain.ErrInvalidSessionType)
	})

	t.Run("missing course", func(t *testing.T) {
		t.Parallel()
		session, err := domain.NewStudySession(uuid.Nil, domain.SessionTypeReview, nil)
		assert.Nil(t, session)
		assert.ErrorIs(t, err, domain.ErrSessionCourseIDEmpty)
	})

	t.Run("empty session average is zero", func(t *testing.T) {
		t.Parallel()
		session, err := domain.NewStudySession(uuid.New(), domain.SessionTypeReview, nil)
		assert.NoError(t, err)
		assert.Equal(t, 0, session.AverageResponseMs())
	})
}
