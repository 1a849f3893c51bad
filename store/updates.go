package store

import (
	"sync"
	"time"
)

// Update is one submitted status entry. Entries are immutable once
// recorded and belong to exactly one calendar day.
type Update struct {
	AuthorID     int64
	AuthorName   string
	AuthorHandle string
	Text         string
	SubmittedAt  time.Time
}

// UpdateStore keeps updates partitioned by day key, append-only within
// a day. Buckets are created lazily on the first update of a new day
// and live for the whole process unless a retention cap is set.
type UpdateStore struct {
	mu        sync.Mutex
	days      map[string][]Update
	dayOrder  []string // day keys oldest first
	retention int
}

func NewUpdateStore() *UpdateStore {
	return &UpdateStore{days: make(map[string][]Update)}
}

// WithRetention caps the store at the n most recent day buckets; older
// buckets are dropped when a new day begins. n <= 0 keeps everything.
func (s *UpdateStore) WithRetention(n int) *UpdateStore {
	s.retention = n
	return s
}

// RecordUpdate appends a new entry to day's bucket. The caller
// guarantees text is non-empty; validation lives at the command layer.
func (s *UpdateStore) RecordUpdate(day string, authorID int64, authorName, authorHandle, text string, at time.Time) Update {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.days[day]; !ok {
		s.days[day] = nil
		s.dayOrder = append(s.dayOrder, day)
		s.prune()
	}

	u := Update{
		AuthorID:     authorID,
		AuthorName:   authorName,
		AuthorHandle: authorHandle,
		Text:         text,
		SubmittedAt:  at,
	}
	s.days[day] = append(s.days[day], u)
	return u
}

// ListUpdates returns day's entries in submission order. A day with no
// entries yields an empty slice, never an error.
func (s *UpdateStore) ListUpdates(day string) []Update {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Update, len(s.days[day]))
	copy(out, s.days[day])
	return out
}

// ListUpdatesForAuthor filters ListUpdates by author, preserving order.
func (s *UpdateStore) ListUpdatesForAuthor(day string, authorID int64) []Update {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []Update{}
	for _, u := range s.days[day] {
		if u.AuthorID == authorID {
			out = append(out, u)
		}
	}
	return out
}

// prune drops the oldest buckets beyond the retention cap. Day keys
// sort chronologically, so the smallest key is the oldest bucket even
// if buckets were not created in day order. Caller holds mu.
func (s *UpdateStore) prune() {
	if s.retention <= 0 {
		return
	}
	for len(s.dayOrder) > s.retention {
		oldest := 0
		for i, day := range s.dayOrder {
			if day < s.dayOrder[oldest] {
				oldest = i
			}
		}
		delete(s.days, s.dayOrder[oldest])
		s.dayOrder = append(s.dayOrder[:oldest], s.dayOrder[oldest+1:]...)
	}
}
