package patient

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Fetcher replaces the collection wholesale on refresh. Feed is the
// production implementation.
type Fetcher interface {
	Fetch(ctx context.Context) ([]Patient, error)
}

// Store owns the authoritative in-memory patient collection and the derived
// dashboard views. Stats and charts are recomputed after every mutation, so
// readers never observe them stale relative to the collection. All state is
// guarded by one mutex; mutations are serialized.
type Store struct {
	mu       sync.RWMutex
	patients []Patient
	stats    DashboardStats
	charts   ChartData
	loading  bool
	lastErr  string

	fetcher Fetcher
	now     func() time.Time
	logger  zerolog.Logger
}

func NewStore(fetcher Fetcher, logger zerolog.Logger) *Store {
	s := &Store{
		fetcher: fetcher,
		now:     time.Now,
		logger:  logger,
	}
	s.recompute()
	return s
}

// SetClock overrides the time source, for deterministic tests.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
	s.recompute()
}

// recompute replaces both derived views. Callers must hold mu.
func (s *Store) recompute() {
	today := s.now()
	s.stats = ComputeStats(s.patients, today)
	s.charts = ComputeChartData(s.patients, today)
}

// Create appends a patient, assigning a fresh id when the draft has none.
// The id is never reassigned afterwards.
func (s *Store) Create(draft Patient) Patient {
	s.mu.Lock()
	defer s.mu.Unlock()

	if draft.ID == "" {
		draft.ID = uuid.NewString()
	}
	s.patients = append(s.patients, draft)
	s.recompute()
	return draft
}

// Update replaces the entry whose id matches. Unknown ids are silently
// ignored; the collection is left untouched. Returns whether a match was
// found.
func (s *Store) Update(p Patient) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.patients {
		if s.patients[i].ID == p.ID {
			s.patients[i] = p
			s.recompute()
			return true
		}
	}
	return false
}

// Delete removes the entry whose id matches. Unknown ids are silently
// ignored. Returns whether a match was found.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.patients {
		if s.patients[i].ID == id {
			s.patients = append(s.patients[:i], s.patients[i+1:]...)
			s.recompute()
			return true
		}
	}
	return false
}

// Refresh replaces the whole collection from the fetcher. A failed fetch
// records a human-readable error, keeps the prior collection intact, and is
// distinguishable from a successful fetch of zero records. When refreshes
// overlap, the last one to complete wins.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	patients, err := s.fetcher.Fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.lastErr = "failed to load patients from source"
		s.logger.Error().Err(err).Msg("refresh failed")
		return err
	}

	s.lastErr = ""
	s.patients = patients
	s.recompute()
	s.logger.Info().Int("count", len(patients)).Msg("collection refreshed")
	return nil
}

// Get returns the patient with the given id.
func (s *Store) Get(id string) (Patient, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.patients {
		if p.ID == id {
			return p, true
		}
	}
	return Patient{}, false
}

// ListFilter narrows List results. Search matches name, condition or doctor
// case-insensitively; Status and Department match exactly when set.
type ListFilter struct {
	Search     string
	Status     Status
	Department string
}

func (f ListFilter) matches(p Patient) bool {
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.Department != "" && p.Department != f.Department {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Condition), q) &&
			!strings.Contains(strings.ToLower(p.Doctor), q) {
			return false
		}
	}
	return true
}

// List returns a copy of the matching patients in collection order.
func (s *Store) List(f ListFilter) []Patient {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Patient, 0, len(s.patients))
	for _, p := range s.patients {
		if f.matches(p) {
			result = append(result, p)
		}
	}
	return result
}

// Stats returns the cached dashboard stats.
func (s *Store) Stats() DashboardStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// Charts returns the cached chart projections.
func (s *Store) Charts() ChartData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.charts
}

// Loading reports whether a refresh is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// LastError returns the message of the most recent failed refresh, or ""
// after a successful one.
func (s *Store) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}
