package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/heatwatch/heatwave-alerts/internal/core/domain"
	"github.com/heatwatch/heatwave-alerts/internal/core/ports"
)

type stubZoneRepo struct {
	zones map[string]*domain.Zone
}

func newStubZoneRepo() *stubZoneRepo {
	return &stubZoneRepo{zones: make(map[string]*domain.Zone)}
}

func (r *stubZoneRepo) Create(_ context.Context, zone *domain.Zone) (*domain.Zone, error) {
	clone := *zone
	if clone.ID == "" {
		clone.ID = fmt.Sprintf("zone-%d", len(r.zones)+1)
	}
	r.zones[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubZoneRepo) FindByID(_ context.Context, id string) (*domain.Zone, error) {
	if z, ok := r.zones[id]; ok {
		clone := *z
		return &clone, nil
	}
	return nil, domain.ErrZoneNotFound
}

func (r *stubZoneRepo) List(_ context.Context) ([]*domain.Zone, error) {
	out := make([]*domain.Zone, 0, len(r.zones))
	for _, z := range r.zones {
		clone := *z
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubZoneRepo) Update(_ context.Context, zone *domain.Zone) error {
	if _, ok := r.zones[zone.ID]; !ok {
		return domain.ErrZoneNotFound
	}
	clone := *zone
	r.zones[zone.ID] = &clone
	return nil
}

func (r *stubZoneRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.zones[id]; !ok {
		return domain.ErrZoneNotFound
	}
	delete(r.zones, id)
	return nil
}

func (r *stubZoneRepo) AddResident(_ context.Context, zoneID, userID string) error {
	z, ok := r.zones[zoneID]
	if !ok {
		return domain.ErrZoneNotFound
	}
	z.Residents = append(z.Residents, userID)
	return nil
}

func (r *stubZoneRepo) RemoveResident(_ context.Context, zoneID, userID string) error {
	z, ok := r.zones[zoneID]
	if !ok {
		return domain.ErrZoneNotFound
	}
	kept := z.Residents[:0]
	for _, res := range z.Residents {
		if res != userID {
			kept = append(kept, res)
		}
	}
	z.Residents = kept
	return nil
}

type recordingDispatcher struct {
	jobs []ports.AlertJob
}

func (d *recordingDispatcher) Enqueue(job ports.AlertJob) {
	d.jobs = append(d.jobs, job)
}

func (d *recordingDispatcher) EnqueueBatch(jobs []ports.AlertJob) {
	d.jobs = append(d.jobs, jobs...)
}

func heatWaveInput(zoneID string) ports.HeatWaveInput {
	now := time.Now().UTC()
	return ports.HeatWaveInput{
		MaxTemperature: 44.0,
		Intensity:      8.5,
		Humidity:       20.0,
		StartsAt:       now,
		EndsAt:         now.Add(48 * time.Hour),
		ZoneID:         zoneID,
	}
}

func TestHeatWaveService_Create_FansOutToResidents(t *testing.T) {
	repo := newStubHeatWaveRepo()
	zones := newStubZoneRepo()
	dispatcher := &recordingDispatcher{}

	zones.zones["zone-1"] = &domain.Zone{
		ID:        "zone-1",
		City:      "Dakar",
		Residents: []string{"user-1", "user-2", "user-3"},
	}

	svc := NewHeatWaveService(repo, zones, dispatcher, zerolog.Nop())

	wave, err := svc.Create(context.Background(), heatWaveInput("zone-1"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if wave.ID == "" {
		t.Fatalf("expected persisted id")
	}

	if len(dispatcher.jobs) != 3 {
		t.Fatalf("expected 3 alert jobs, got %d", len(dispatcher.jobs))
	}
	seen := make(map[string]bool)
	for _, job := range dispatcher.jobs {
		if job.HeatWaveID != wave.ID || job.ZoneID != "zone-1" {
			t.Fatalf("unexpected job: %+v", job)
		}
		if job.Label == "" {
			t.Fatalf("jobs must carry the alert label")
		}
		seen[job.UserID] = true
	}
	for _, id := range []string{"user-1", "user-2", "user-3"} {
		if !seen[id] {
			t.Fatalf("resident %s received no job", id)
		}
	}
}

func TestHeatWaveService_Create_EmptyZone(t *testing.T) {
	repo := newStubHeatWaveRepo()
	zones := newStubZoneRepo()
	dispatcher := &recordingDispatcher{}

	zones.zones["zone-1"] = &domain.Zone{ID: "zone-1", City: "Dakar"}

	svc := NewHeatWaveService(repo, zones, dispatcher, zerolog.Nop())
	if _, err := svc.Create(context.Background(), heatWaveInput("zone-1")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if len(dispatcher.jobs) != 0 {
		t.Fatalf("zone without residents must produce no jobs, got %d", len(dispatcher.jobs))
	}
}

func TestHeatWaveService_Create_UnknownZone(t *testing.T) {
	svc := NewHeatWaveService(newStubHeatWaveRepo(), newStubZoneRepo(), nil, zerolog.Nop())

	if _, err := svc.Create(context.Background(), heatWaveInput("zone-404")); !errors.Is(err, domain.ErrZoneNotFound) {
		t.Fatalf("expected ErrZoneNotFound, got %v", err)
	}
}

func TestHeatWaveService_Update(t *testing.T) {
	repo := newStubHeatWaveRepo()
	zones := newStubZoneRepo()
	zones.zones["zone-1"] = &domain.Zone{ID: "zone-1", City: "Dakar"}
	zones.zones["zone-2"] = &domain.Zone{ID: "zone-2", City: "Thiès"}

	svc := NewHeatWaveService(repo, zones, nil, zerolog.Nop())

	created, err := svc.Create(context.Background(), heatWaveInput("zone-1"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	in := heatWaveInput("zone-2")
	in.MaxTemperature = 46.5
	updated, err := svc.Update(context.Background(), created.ID, in)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.MaxTemperature != 46.5 || updated.ZoneID != "zone-2" {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Fatalf("updated_at must advance")
	}

	in.ZoneID = "zone-404"
	if _, err := svc.Update(context.Background(), created.ID, in); !errors.Is(err, domain.ErrZoneNotFound) {
		t.Fatalf("expected ErrZoneNotFound for unknown target zone, got %v", err)
	}
}

func TestHeatWaveService_ListByZone(t *testing.T) {
	repo := newStubHeatWaveRepo()
	zones := newStubZoneRepo()
	zones.zones["zone-1"] = &domain.Zone{ID: "zone-1"}
	zones.zones["zone-2"] = &domain.Zone{ID: "zone-2"}

	svc := NewHeatWaveService(repo, zones, nil, zerolog.Nop())

	for _, zoneID := range []string{"zone-1", "zone-1", "zone-2"} {
		if _, err := svc.Create(context.Background(), heatWaveInput(zoneID)); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	waves, err := svc.ListByZone(context.Background(), "zone-1")
	if err != nil {
		t.Fatalf("list by zone failed: %v", err)
	}
	if len(waves) != 2 {
		t.Fatalf("expected 2 waves for zone-1, got %d", len(waves))
	}

	if _, err := svc.ListByZone(context.Background(), "zone-404"); !errors.Is(err, domain.ErrZoneNotFound) {
		t.Fatalf("expected ErrZoneNotFound, got %v", err)
	}
}

func TestHeatWaveService_ListActive(t *testing.T) {
	repo := newStubHeatWaveRepo()
	zones := newStubZoneRepo()
	zones.zones["zone-1"] = &domain.Zone{ID: "zone-1"}

	svc := NewHeatWaveService(repo, zones, nil, zerolog.Nop())

	now := time.Now().UTC()
	current := heatWaveInput("zone-1")
	current.StartsAt = now.Add(-24 * time.Hour)
	current.EndsAt = now.Add(24 * time.Hour)
	past := heatWaveInput("zone-1")
	past.StartsAt = now.Add(-96 * time.Hour)
	past.EndsAt = now.Add(-48 * time.Hour)
	future := heatWaveInput("zone-1")
	future.StartsAt = now.Add(48 * time.Hour)
	future.EndsAt = now.Add(96 * time.Hour)

	var currentID string
	for _, in := range []ports.HeatWaveInput{current, past, future} {
		wave, err := svc.Create(context.Background(), in)
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if in.StartsAt.Equal(current.StartsAt) {
			currentID = wave.ID
		}
	}

	active, err := svc.ListActive(context.Background())
	if err != nil {
		t.Fatalf("list active failed: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("expected exactly one active wave, got %d", len(active))
	}
	if active[0].ID != currentID {
		t.Fatalf("wrong wave reported active: %+v", active[0])
	}
}

func TestHeatWaveService_Delete(t *testing.T) {
	repo := newStubHeatWaveRepo()
	zones := newStubZoneRepo()
	zones.zones["zone-1"] = &domain.Zone{ID: "zone-1"}

	svc := NewHeatWaveService(repo, zones, nil, zerolog.Nop())

	created, err := svc.Create(context.Background(), heatWaveInput("zone-1"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, domain.ErrHeatWaveNotFound) {
		t.Fatalf("expected ErrHeatWaveNotFound, got %v", err)
	}
}
