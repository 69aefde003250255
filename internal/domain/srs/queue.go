package srs

import (
	"sort"
	"time"

	"github.com/studyforge/srs-api/internal/domain"
)

// SelectDueItems filters items to those due for review at the given moment
// and returns them most-overdue first, truncated to limit (limit <= 0 means
// no truncation).
//
// An item is due when its NextReviewAt has arrived or passed. Items that have
// never been reviewed are always due and sort before everything else. The
// input slice is not modified; calling again with a later now produces a
// fresh due set, there is no hidden cursor.
func SelectDueItems(items []*domain.LearningItem, now time.Time, limit int) []*domain.LearningItem {
	due := make([]*domain.LearningItem, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		if !item.Reviewed() || !item.NextReviewAt.After(now) {
			due = append(due, item)
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		a, b := due[i], due[j]
		// Never-reviewed items sort first.
		if a.Reviewed() != b.Reviewed() {
			return !a.Reviewed()
		}
		if !a.Reviewed() {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.NextReviewAt.Before(b.NextReviewAt)
	})

	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}

	return due
}

// AssembleSession builds one study session's card order from a due-item
// sequence and a pool of never-before-reviewed items.
//
// Due items take priority. When there are fewer due items than maxCards, the
// remainder is backfilled from newItemPool, in pool order. For
// SessionTypeReview the new items follow the due items as a single block;
// for SessionTypeMixed they are interleaved evenly, one new item after every
// ceil(dueCount/newCount) due items.
func AssembleSession(
	dueItems []*domain.LearningItem,
	newItemPool []*domain.LearningItem,
	sessionType domain.SessionType,
	maxCards int,
) ([]*domain.LearningItem, error) {
	if !sessionType.Valid() {
		return nil, domain.ErrInvalidSessionType
	}

	if maxCards < 1 {
		return nil, domain.ErrInvalidSessionMaxSize
	}

	due := dueItems
	if len(due) > maxCards {
		due = due[:maxCards]
	}

	fresh := newItemPool
	if room := maxCards - len(due); len(fresh) > room {
		fresh = fresh[:room]
	}

	if sessionType != domain.SessionTypeMixed || len(due) == 0 || len(fresh) == 0 {
		cards := make([]*domain.LearningItem, 0, len(due)+len(fresh))
		cards = append(cards, due...)
		cards = append(cards, fresh...)
		return cards, nil
	}

	// Interleave: one new item after every stride due items.
	stride := (len(due) + len(fresh) - 1) / len(fresh)

	cards := make([]*domain.LearningItem, 0, len(due)+len(fresh))
	next := 0
	for i, item := range due {
		cards = append(cards, item)
		if (i+1)%stride == 0 && next < len(fresh) {
			cards = append(cards, fresh[next])
			next++
		}
	}
	cards = append(cards, fresh[next:]...)

	return cards, nil
}
