package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyforge/srs-api/internal/domain"
)

func TestSessionTypeValid(t *testing.T) {
	t.Parallel()

	assert.True(t, domain.SessionTypeReview.Valid())
	assert.True(t, domain.SessionTypeMixed.Valid())
	assert.False(t, domain.SessionType("cram").Valid())
	assert.False(t, domain.SessionType("").Valid())
}

func TestNewStudySession(t *testing.T) {
	t.Parallel()

	courseID := uuid.New()
	itemIDs := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	t.Run("valid session starts with zeroed counters", func(t *testing.T) {
		t.Parallel()
		session, err := domain.NewStudySession(courseID, domain.SessionTypeMixed, itemIDs)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, session.ID)
		assert.Equal(t, courseID, session.CourseID)
		assert.Equal(t, domain.SessionTypeMixed, session.Type)
		assert.Equal(t, itemIDs, session.ItemIDs)
		assert.Equal(t, 0, session.CardsReviewed)
		assert.Equal(t, 0, session.CorrectCount)
		assert.Equal(t, 0, session.TotalResponseMs)
		assert.False(t, session.StartedAt.IsZero())
		assert.Equal(t, session.StartedAt, session.UpdatedAt)
	})

	t.Run("empty course ID rejected", func(t *testing.T) {
		t.Parallel()
		session, err := domain.NewStudySession(uuid.Nil, domain.SessionTypeReview, itemIDs)
		assert.Nil(t, session)
		assert.ErrorIs(t, err, domain.ErrSessionCourseIDEmpty)
	})

	t.Run("unknown session type rejected", func(t *testing.T) {
		t.Parallel()
		session, err := domain.NewStudySession(courseID, domain.SessionType("cram"), itemIDs)
		assert.Nil(t, session)
		assert.ErrorIs(t, err, domain.ErrInvalidSessionType)
	})
}

func TestStudySessionRecordReview(t *testing.T) {
	t.Parallel()

	session, err := domain.NewStudySession(uuid.New(), domain.SessionTypeReview, []uuid.UUID{uuid.New()})
	require.NoError(t, err)

	session.RecordReview(domain.Quality(5), 1200)
	session.RecordReview(domain.Quality(2), 3400)
	session.RecordReview(domain.Quality(3), 800)

	assert.Equal(t, 3, session.CardsReviewed)
	assert.Equal(t, 2, session.CorrectCount, "quality 2 is a failed recall and must not count as correct")
	assert.Equal(t, 5400, session.TotalResponseMs)
	assert.False(t, session.UpdatedAt.Before(session.StartedAt))
}

func TestStudySessionAverageResponseMs(t *testing.T) {
	t.Parallel()

	session, err := domain.NewStudySession(uuid.New(), domain.SessionTypeReview, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, session.AverageResponseMs(), "empty session must not divide by zero")

	session.RecordReview(domain.Quality(4), 1000)
	session.RecordReview(domain.Quality(5), 2000)

	assert.Equal(t, 1500, session.AverageResponseMs())
}
