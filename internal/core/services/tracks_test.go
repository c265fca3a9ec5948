package services

import (
	"context"
	"errors"
	"testing"

	"github.com/olifog/musejump/backend/internal/core/domain"
	"github.com/olifog/musejump/backend/internal/core/ports"
)

// --- Mocks ---

type mockCatalogClient struct {
	track     domain.Track
	trackErr  error
	search    []domain.Track
	searchErr error
}

func (m *mockCatalogClient) GetTrack(ctx context.Context, trackID string) (domain.Track, error) {
	if m.trackErr != nil {
		return domain.Track{}, m.trackErr
	}
	return m.track, nil
}

func (m *mockCatalogClient) SearchTracks(ctx context.Context, query string, limit int) ([]domain.Track, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.search, nil
}

type mockCatalog struct {
	client      *mockCatalogClient
	getErr      error
	invalidated []string
}

func (m *mockCatalog) Get(ctx context.Context, ownerID string) (ports.CatalogClient, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.client, nil
}

func (m *mockCatalog) Invalidate(ownerID string) {
	m.invalidated = append(m.invalidated, ownerID)
}

type mockRepo struct {
	jumps     []domain.Jump
	listErr   error
	added     []domain.Jump
	addErr    error
	updateErr error
	deleteErr error
}

func (m *mockRepo) ListJumps(ctx context.Context, ownerID, trackID string) ([]domain.Jump, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.jumps, nil
}

func (m *mockRepo) AddJump(ctx context.Context, jump domain.Jump) (domain.Jump, error) {
	if m.addErr != nil {
		return domain.Jump{}, m.addErr
	}
	jump.ID = "jump-1"
	m.added = append(m.added, jump)
	return jump, nil
}

func (m *mockRepo) UpdateJump(ctx context.Context, ownerID, id string, triggerMs, targetMs int, description string) error {
	return m.updateErr
}

func (m *mockRepo) DeleteJump(ctx context.Context, ownerID, id string) error {
	return m.deleteErr
}

type mockAnalyser struct {
	analysis domain.Analysis
	err      error
	searches []string
}

func (m *mockAnalyser) AnalyseTrack(ctx context.Context, search string) (domain.Analysis, error) {
	m.searches = append(m.searches, search)
	if m.err != nil {
		return domain.Analysis{}, m.err
	}
	return m.analysis, nil
}

func newTestService(catalog *mockCatalog, repo *mockRepo, an *mockAnalyser) *TrackService {
	return NewTrackService(catalog, repo, an)
}

var testTrack = domain.Track{
	ID:         "track-1",
	Title:      "Test Track",
	Artists:    []string{"Test Artist"},
	DurationMs: 200000,
}

// --- Tests ---

func TestGetTrackView(t *testing.T) {
	catalog := &mockCatalog{client: &mockCatalogClient{track: testTrack}}
	repo := &mockRepo{jumps: []domain.Jump{{ID: "j1", OwnerID: "user-a", TrackID: "track-1"}}}
	an := &mockAnalyser{analysis: domain.Analysis{
		VideoID: "vid-1",
		Cached:  true,
		BPM:     128,
		Segments: []domain.RawSegment{
			{Start: 0, End: 2, Label: "start"},
			{Start: 2, End: 14, Label: "verse"},
			{Start: 14, End: 20, Label: "chorus"},
			{Start: 20, End: 22, Label: "end"},
		},
	}}

	view, err := newTestService(catalog, repo, an).GetTrackView(context.Background(), "user-a", "track-1")
	if err != nil {
		t.Fatalf("get track view: %v", err)
	}

	if view.Track.ID != "track-1" {
		t.Errorf("track: %+v", view.Track)
	}
	if len(view.Jumps) != 1 || view.Jumps[0].ID != "j1" {
		t.Errorf("jumps: %+v", view.Jumps)
	}
	if view.Analysis == nil {
		t.Fatal("expected analysis in view")
	}
	if view.Analysis.BPM != 128 || !view.Analysis.Cached || view.Analysis.VideoID != "vid-1" {
		t.Errorf("analysis passthrough: %+v", view.Analysis)
	}
	if len(view.Analysis.Timeline) != 2 {
		t.Fatalf("timeline: got %d segments, want 2", len(view.Analysis.Timeline))
	}

	if len(an.searches) != 1 || an.searches[0] != "Test Track - Test Artist" {
		t.Errorf("analyser search query: %v", an.searches)
	}
}

func TestGetTrackView_AnalysisFailureDegrades(t *testing.T) {
	catalog := &mockCatalog{client: &mockCatalogClient{track: testTrack}}
	repo := &mockRepo{jumps: []domain.Jump{}}
	an := &mockAnalyser{err: &ports.UpstreamError{Service: "analyser", Err: errors.New("down")}}

	view, err := newTestService(catalog, repo, an).GetTrackView(context.Background(), "user-a", "track-1")
	if err != nil {
		t.Fatalf("expected degraded view, got error: %v", err)
	}
	if view.Analysis != nil {
		t.Fatalf("expected nil analysis, got %+v", view.Analysis)
	}
	if view.Jumps == nil {
		t.Fatal("jumps missing from degraded view")
	}
}

func TestGetTrackView_JumpFailureIsFatal(t *testing.T) {
	catalog := &mockCatalog{client: &mockCatalogClient{track: testTrack}}
	repo := &mockRepo{listErr: errors.New("db down")}
	an := &mockAnalyser{analysis: domain.Analysis{Segments: []domain.RawSegment{}}}

	if _, err := newTestService(catalog, repo, an).GetTrackView(context.Background(), "user-a", "track-1"); err == nil {
		t.Fatal("expected error when jumps cannot be loaded")
	}
}

func TestAddJump_DurationBounds(t *testing.T) {
	tests := []struct {
		name      string
		trigger   int
		target    int
		wantField string
	}{
		{name: "inside bounds", trigger: 199999, target: 0},
		{name: "trigger at duration", trigger: 200000, target: 0, wantField: "trigger"},
		{name: "target past duration", trigger: 0, target: 250000, wantField: "target"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			catalog := &mockCatalog{client: &mockCatalogClient{track: testTrack}}
			repo := &mockRepo{}
			svc := newTestService(catalog, repo, &mockAnalyser{})

			created, err := svc.AddJump(context.Background(), "user-a", "track-1", tc.trigger, tc.target, "")
			if tc.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if created.ID == "" || len(repo.added) != 1 {
					t.Fatalf("jump not persisted: %+v", created)
				}
				return
			}

			var rangeErr *domain.RangeError
			if !errors.As(err, &rangeErr) {
				t.Fatalf("expected *RangeError, got %v", err)
			}
			if rangeErr.Field != tc.wantField {
				t.Errorf("field: got %q, want %q", rangeErr.Field, tc.wantField)
			}
			if len(repo.added) != 0 {
				t.Error("invalid jump reached the repository")
			}
		})
	}
}

func TestUpdateJump_NotFoundPropagates(t *testing.T) {
	catalog := &mockCatalog{client: &mockCatalogClient{track: testTrack}}
	repo := &mockRepo{updateErr: domain.ErrNotFound}
	svc := newTestService(catalog, repo, &mockAnalyser{})

	err := svc.UpdateJump(context.Background(), "user-b", "track-1", "someone-elses-jump", 1000, 2000, "")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSkipAndRepeatSegment(t *testing.T) {
	seg := domain.RawSegment{Start: 14, End: 20, Label: "chorus"}

	catalog := &mockCatalog{client: &mockCatalogClient{track: testTrack}}
	repo := &mockRepo{}
	svc := newTestService(catalog, repo, &mockAnalyser{})

	skip, err := svc.SkipSegment(context.Background(), "user-a", "track-1", seg)
	if err != nil {
		t.Fatalf("skip segment: %v", err)
	}
	if skip.TriggerMs != 14000 || skip.TargetMs != 20000 {
		t.Errorf("skip jump: %+v", skip)
	}

	repeat, err := svc.RepeatSegment(context.Background(), "user-a", "track-1", seg)
	if err != nil {
		t.Fatalf("repeat segment: %v", err)
	}
	if repeat.TriggerMs != 20000 || repeat.TargetMs != 14000 {
		t.Errorf("repeat jump: %+v", repeat)
	}

	if len(repo.added) != 2 {
		t.Fatalf("expected 2 persisted jumps, got %d", len(repo.added))
	}
}

func TestCatalogUnauthorizedInvalidatesCache(t *testing.T) {
	catalog := &mockCatalog{client: &mockCatalogClient{trackErr: ports.ErrUnauthorized}}
	svc := newTestService(catalog, &mockRepo{}, &mockAnalyser{})

	_, err := svc.GetTrackView(context.Background(), "user-a", "track-1")
	if !errors.Is(err, ports.ErrAuth) {
		t.Fatalf("expected ErrAuth, got %v", err)
	}
	if len(catalog.invalidated) != 1 || catalog.invalidated[0] != "user-a" {
		t.Fatalf("cache not invalidated: %v", catalog.invalidated)
	}
}
