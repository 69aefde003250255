package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyforge/srs-api/internal/domain"
)

func TestNewLearningItem(t *testing.T) {
	t.Parallel()

	courseID := uuid.New()

	t.Run("valid item gets default scheduling state", func(t *testing.T) {
		t.Parallel()
		before := time.Now().UTC()
		item, err := domain.NewLearningItem(courseID, "What is the capital of France?", "Paris", 0.3)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, item.ID)
		assert.Equal(t, courseID, item.CourseID)
		assert.Equal(t, domain.DefaultEaseFactor, item.EaseFactor)
		assert.Equal(t, 0, item.IntervalDays)
		assert.Equal(t, 0, item.Repetitions)
		assert.True(t, item.LastReviewedAt.IsZero(), "new item must not look reviewed")
		assert.False(t, item.Reviewed())
		assert.False(t, item.NextReviewAt.Before(before), "new item should be due immediately, not in the past")
		assert.Equal(t, 0, item.ReviewCount)
		assert.Equal(t, 0, item.TotalQuality)
	})

	testCases := []struct {
		name       string
		courseID   uuid.UUID
		question   string
		answer     string
		difficulty float64
		wantErr    error
	}{
		{
			name:       "empty course ID",
			courseID:   uuid.Nil,
			question:   "q",
			answer:     "a",
			difficulty: 0.5,
			wantErr:    domain.ErrItemCourseIDEmpty,
		},
		{
			name:       "blank question",
			courseID:   courseID,
			question:   "   ",
			answer:     "a",
			difficulty: 0.5,
			wantErr:    domain.ErrItemQuestionEmpty,
		},
		{
			name:       "blank answer",
			courseID:   courseID,
			question:   "q",
			answer:     "",
			difficulty: 0.5,
			wantErr:    domain.ErrItemAnswerEmpty,
		},
		{
			name:       "difficulty above range",
			courseID:   courseID,
			question:   "q",
			answer:     "a",
			difficulty: 1.5,
			wantErr:    domain.ErrItemDifficultyRange,
		},
		{
			name:       "difficulty below range",
			courseID:   courseID,
			question:   "q",
			answer:     "a",
			difficulty: -0.1,
			wantErr:    domain.ErrItemDifficultyRange,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			item, err := domain.NewLearningItem(tc.courseID, tc.question, tc.answer, tc.difficulty)
			assert.Nil(t, item)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestLearningItemValidateSchedule(t *testing.T) {
	t.Parallel()

	valid := func() *domain.LearningItem {
		item, err := domain.NewLearningItem(uuid.New(), "q", "a", 0.5)
		require.NoError(t, err)
		return item
	}

	t.Run("default schedule is valid", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, valid().ValidateSchedule())
	})

	t.Run("negative interval rejected", func(t *testing.T) {
		t.Parallel()
		item := valid()
		item.IntervalDays = -1
		assert.ErrorIs(t, item.ValidateSchedule(), domain.ErrInvalidInterval)
	})

	t.Run("ease factor at or below 1.0 rejected", func(t *testing.T) {
		t.Parallel()
		item := valid()
		item.EaseFactor = 1.0
		assert.ErrorIs(t, item.ValidateSchedule(), domain.ErrInvalidEaseFactor)
	})

	t.Run("negative repetitions rejected", func(t *testing.T) {
		t.Parallel()
		item := valid()
		item.Repetitions = -2
		assert.ErrorIs(t, item.ValidateSchedule(), domain.ErrInvalidRepetitions)
	})
}

func TestLearningItemUpdateContent(t *testing.T) {
	t.Parallel()

	t.Run("valid update preserves scheduling state", func(t *testing.T) {
		t.Parallel()
		item, err := domain.NewLearningItem(uuid.New(), "old question", "old answer", 0.2)
		require.NoError(t, err)

		item.EaseFactor = 1.9
		item.IntervalDays = 12
		item.Repetitions = 4

		err = item.UpdateContent("new question", "new answer", 0.8)
		require.NoError(t, err)

		assert.Equal(t, "new question", item.Question)
		assert.Equal(t, "new answer", item.Answer)
		assert.Equal(t, 0.8, item.Difficulty)

		assert.Equal(t, 1.9, item.EaseFactor)
		assert.Equal(t, 12, item.IntervalDays)
		assert.Equal(t, 4, item.Repetitions)
	})

	t.Run("invalid update leaves item unchanged", func(t *testing.T) {
		t.Parallel()
		item, err := domain.NewLearningItem(uuid.New(), "question", "answer", 0.2)
		require.NoError(t, err)

		err = item.UpdateContent("", "new answer", 0.8)
		assert.ErrorIs(t, err, domain.ErrItemQuestionEmpty)

		assert.Equal(t, "question", item.Question)
		assert.Equal(t, "answer", item.Answer)
		assert.Equal(t, 0.2, item.Difficulty)
	})
}
