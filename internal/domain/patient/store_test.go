package patient

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// fakeFetcher returns a canned collection or error.
type fakeFetcher struct {
	patients []Patient
	err      error
}

func (f *fakeFetcher) Fetch(_ context.Context) ([]Patient, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.patients, nil
}

func newTestStore(f *fakeFetcher) *Store {
	s := NewStore(f, zerolog.Nop())
	s.SetClock(func() time.Time { return testToday })
	return s
}

func TestStore_CreateAssignsID(t *testing.T) {
	s := newTestStore(&fakeFetcher{})

	created := s.Create(Patient{Name: "John Smith", Status: StatusAdmitted})

	if created.ID == "" {
		t.Fatal("expected a fresh id")
	}
	if got, ok := s.Get(created.ID); !ok || got.Name != "John Smith" {
		t.Errorf("expected created patient retrievable, got %+v ok=%v", got, ok)
	}
	if s.Stats().TotalPatients != 1 {
		t.Errorf("expected stats recomputed to 1 total, got %d", s.Stats().TotalPatients)
	}
}

func TestStore_CreateKeepsProvidedID(t *testing.T) {
	s := newTestStore(&fakeFetcher{})

	created := s.Create(Patient{ID: "42", Name: "Jane Doe", Status: StatusStable})

	if created.ID != "42" {
		t.Errorf("expected id 42 kept, got %s", created.ID)
	}
}

func TestStore_CreateDeleteRoundTrip(t *testing.T) {
	s := newTestStore(&fakeFetcher{})
	s.Create(Patient{ID: "1", Name: "Existing", Status: StatusStable, AdmissionDate: "2024-03-01"})

	before := s.List(ListFilter{})
	beforeStats := s.Stats()

	created := s.Create(Patient{Name: "Transient", Status: StatusCritical, AdmissionDate: "2024-03-19"})
	if !s.Delete(created.ID) {
		t.Fatal("expected delete to find the created patient")
	}

	if after := s.List(ListFilter{}); !reflect.DeepEqual(before, after) {
		t.Errorf("expected collection restored, got %+v", after)
	}
	if afterStats := s.Stats(); afterStats != beforeStats {
		t.Errorf("expected stats restored, got %+v", afterStats)
	}
}

func TestStore_UpdateReplaces(t *testing.T) {
	s := newTestStore(&fakeFetcher{})
	s.Create(Patient{ID: "1", Name: "Before", Status: StatusAdmitted, AdmissionDate: "2024-03-01"})

	ok := s.Update(Patient{ID: "1", Name: "After", Status: StatusCritical, AdmissionDate: "2024-03-01"})

	if !ok {
		t.Fatal("expected update to match")
	}
	got, _ := s.Get("1")
	if got.Name != "After" || got.Status != StatusCritical {
		t.Errorf("expected replaced record, got %+v", got)
	}
	if s.Stats().CriticalPatients != 1 {
		t.Errorf("expected stats recomputed, got %+v", s.Stats())
	}
}

func TestStore_UpdateUnknownIDIsNoop(t *testing.T) {
	s := newTestStore(&fakeFetcher{})
	s.Create(Patient{ID: "1", Name: "Only", Status: StatusStable, AdmissionDate: "2024-03-01"})
	before := s.List(ListFilter{})

	if s.Update(Patient{ID: "missing", Name: "Ghost", Status: StatusCritical}) {
		t.Error("expected no match")
	}

	if after := s.List(ListFilter{}); !reflect.DeepEqual(before, after) {
		t.Errorf("expected collection unchanged, got %+v", after)
	}
}

func TestStore_DeleteUnknownIDIsNoop(t *testing.T) {
	s := newTestStore(&fakeFetcher{})
	s.Create(Patient{ID: "1", Name: "Only", Status: StatusStable, AdmissionDate: "2024-03-01"})
	before := s.List(ListFilter{})

	if s.Delete("missing") {
		t.Error("expected no match")
	}

	if after := s.List(ListFilter{}); !reflect.DeepEqual(before, after) {
		t.Errorf("expected collection unchanged, got %+v", after)
	}
}

func TestStore_RefreshReplacesCollection(t *testing.T) {
	fetched := []Patient{
		{ID: "10", Name: "Fetched One", Status: StatusAdmitted, AdmissionDate: "2024-03-18"},
		{ID: "11", Name: "Fetched Two", Status: StatusCritical, AdmissionDate: "2024-03-19"},
	}
	s := newTestStore(&fakeFetcher{patients: fetched})
	s.Create(Patient{ID: "old", Name: "Stale", Status: StatusStable, AdmissionDate: "2024-03-01"})

	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := s.Get("old"); ok {
		t.Error("expected prior collection replaced")
	}
	if s.Stats().TotalPatients != 2 {
		t.Errorf("expected 2 patients after refresh, got %d", s.Stats().TotalPatients)
	}
	if s.LastError() != "" {
		t.Errorf("expected no error state, got %q", s.LastError())
	}
	if s.Loading() {
		t.Error("expected loading cleared")
	}
}

func TestStore_RefreshFailureKeepsPriorState(t *testing.T) {
	f := &fakeFetcher{err: fmt.Errorf("connection refused")}
	s := newTestStore(f)
	s.Create(Patient{ID: "1", Name: "Kept", Status: StatusStable, AdmissionDate: "2024-03-01"})
	before := s.List(ListFilter{})

	if err := s.Refresh(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	if s.LastError() == "" {
		t.Error("expected error state set")
	}
	if after := s.List(ListFilter{}); !reflect.DeepEqual(before, after) {
		t.Errorf("expected prior collection intact, got %+v", after)
	}

	// A later successful refresh with zero records clears the error: an
	// empty result is not the same as a failed fetch.
	f.err = nil
	f.patients = nil
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.LastError() != "" {
		t.Errorf("expected error cleared, got %q", s.LastError())
	}
	if s.Stats().TotalPatients != 0 {
		t.Errorf("expected empty collection, got %d", s.Stats().TotalPatients)
	}
}

func TestStore_ListFilters(t *testing.T) {
	s := newTestStore(&fakeFetcher{})
	s.Create(Patient{ID: "1", Name: "Alice Green", Condition: "Asthma", Doctor: "Dr. Sarah Kim", Department: "Pulmonology", Status: StatusStable, AdmissionDate: "2024-03-01"})
	s.Create(Patient{ID: "2", Name: "Bob White", Condition: "Fracture", Doctor: "Dr. John Smith", Department: "Orthopedics", Status: StatusCritical, AdmissionDate: "2024-03-02"})

	if got := s.List(ListFilter{Search: "alice"}); len(got) != 1 || got[0].ID != "1" {
		t.Errorf("search by name: got %+v", got)
	}
	if got := s.List(ListFilter{Search: "fracture"}); len(got) != 1 || got[0].ID != "2" {
		t.Errorf("search by condition: got %+v", got)
	}
	if got := s.List(ListFilter{Search: "smith"}); len(got) != 1 || got[0].ID != "2" {
		t.Errorf("search by doctor: got %+v", got)
	}
	if got := s.List(ListFilter{Status: StatusCritical}); len(got) != 1 || got[0].ID != "2" {
		t.Errorf("status filter: got %+v", got)
	}
	if got := s.List(ListFilter{Department: "Pulmonology"}); len(got) != 1 || got[0].ID != "1" {
		t.Errorf("department filter: got %+v", got)
	}
	if got := s.List(ListFilter{}); len(got) != 2 {
		t.Errorf("no filter: got %d entries", len(got))
	}
}

func TestStore_DerivedViewsNeverStale(t *testing.T) {
	s := newTestStore(&fakeFetcher{})

	check := func(step string) {
		t.Helper()
		if s.Stats().TotalPatients != len(s.List(ListFilter{})) {
			t.Errorf("%s: stats stale: %d vs %d", step, s.Stats().TotalPatients, len(s.List(ListFilter{})))
		}
	}

	p := s.Create(Patient{Name: "A", Status: StatusAdmitted, AdmissionDate: "2024-03-01"})
	check("create")
	s.Update(Patient{ID: p.ID, Name: "A2", Status: StatusStable, AdmissionDate: "2024-03-01"})
	check("update")
	s.Delete(p.ID)
	check("delete")
}
