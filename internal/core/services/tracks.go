// Package services coordinates the catalog, analyser and jump repository
// ports on behalf of request handlers.
package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/olifog/musejump/backend/internal/core/domain"
	"github.com/olifog/musejump/backend/internal/core/ports"
)

// TrackService is the core orchestrator: it resolves a per-owner catalog
// client, fetches jumps and analysis for track views, and validates jump
// mutations against track duration.
type TrackService struct {
	catalog  ports.CatalogProvider
	repo     ports.JumpRepository
	analyser ports.AnalysisProvider
}

// NewTrackService constructs a TrackService.
func NewTrackService(catalog ports.CatalogProvider, repo ports.JumpRepository, analyser ports.AnalysisProvider) *TrackService {
	return &TrackService{
		catalog:  catalog,
		repo:     repo,
		analyser: analyser,
	}
}

// AnalysisView is the renderable analysis for one track: the analyser
// passthrough fields plus the derived timeline.
type AnalysisView struct {
	VideoID  string                 `json:"video_id"`
	Cached   bool                   `json:"cached"`
	BPM      float64                `json:"bpm"`
	Timeline []domain.MergedSegment `json:"timeline"`
}

// TrackView is everything a track page needs. Analysis is nil when the
// analyser was unavailable; the rest of the view is still served.
type TrackView struct {
	Track    domain.Track  `json:"track"`
	Jumps    []domain.Jump `json:"jumps"`
	Analysis *AnalysisView `json:"analysis,omitempty"`
}

// GetTrackView loads track metadata, then the owner's jumps and the
// structural analysis in parallel. A failed analysis degrades to a view
// without one rather than failing the call.
func (s *TrackService) GetTrackView(ctx context.Context, ownerID, trackID string) (TrackView, error) {
	track, err := s.getTrack(ctx, ownerID, trackID)
	if err != nil {
		return TrackView{}, err
	}

	type jumpsResult struct {
		jumps []domain.Jump
		err   error
	}
	type analysisResult struct {
		analysis domain.Analysis
		err      error
	}

	jumpsCh := make(chan jumpsResult, 1)
	analysisCh := make(chan analysisResult, 1)

	go func() {
		jumps, err := s.repo.ListJumps(ctx, ownerID, trackID)
		jumpsCh <- jumpsResult{jumps: jumps, err: err}
	}()
	go func() {
		analysis, err := s.analyser.AnalyseTrack(ctx, track.SearchQuery())
		analysisCh <- analysisResult{analysis: analysis, err: err}
	}()

	jr := <-jumpsCh
	ar := <-analysisCh

	if jr.err != nil {
		return TrackView{}, fmt.Errorf("service: failed to load jumps: %w", jr.err)
	}

	view := TrackView{Track: track, Jumps: jr.jumps}
	if ar.err != nil {
		log.Printf("WARN service: no analysis for track %s: %v", trackID, ar.err)
		return view, nil
	}

	view.Analysis = &AnalysisView{
		VideoID:  ar.analysis.VideoID,
		Cached:   ar.analysis.Cached,
		BPM:      ar.analysis.BPM,
		Timeline: domain.BuildTimeline(ar.analysis.Segments),
	}
	return view, nil
}

// ListJumps returns the owner's jumps for a track without touching the
// catalog or the analyser.
func (s *TrackService) ListJumps(ctx context.Context, ownerID, trackID string) ([]domain.Jump, error) {
	return s.repo.ListJumps(ctx, ownerID, trackID)
}

// AddJump validates the offsets against the track's duration and persists a
// new jump for the owner.
func (s *TrackService) AddJump(ctx context.Context, ownerID, trackID string, triggerMs, targetMs int, description string) (domain.Jump, error) {
	jump := domain.Jump{
		OwnerID:     ownerID,
		TrackID:     trackID,
		TriggerMs:   triggerMs,
		TargetMs:    targetMs,
		Description: description,
	}

	track, err := s.getTrack(ctx, ownerID, trackID)
	if err != nil {
		return domain.Jump{}, err
	}
	if err := jump.ValidateBounds(track.DurationMs); err != nil {
		return domain.Jump{}, err
	}

	created, err := s.repo.AddJump(ctx, jump)
	if err != nil {
		return domain.Jump{}, fmt.Errorf("service: failed to save jump: %w", err)
	}
	return created, nil
}

// UpdateJump mutates trigger, target and description of an owned jump,
// validating the new offsets against the track's duration.
func (s *TrackService) UpdateJump(ctx context.Context, ownerID, trackID, id string, triggerMs, targetMs int, description string) error {
	track, err := s.getTrack(ctx, ownerID, trackID)
	if err != nil {
		return err
	}

	jump := domain.Jump{TriggerMs: triggerMs, TargetMs: targetMs}
	if err := jump.ValidateBounds(track.DurationMs); err != nil {
		return err
	}

	return s.repo.UpdateJump(ctx, ownerID, id, triggerMs, targetMs, description)
}

// DeleteJump removes an owned jump.
func (s *TrackService) DeleteJump(ctx context.Context, ownerID, id string) error {
	return s.repo.DeleteJump(ctx, ownerID, id)
}

// SkipSegment persists a jump that skips the given segment. The segment
// comes from an already fetched timeline, so no second analysis fetch
// happens here.
func (s *TrackService) SkipSegment(ctx context.Context, ownerID, trackID string, seg domain.RawSegment) (domain.Jump, error) {
	jump := domain.SkipJump(seg, ownerID, trackID)
	return s.AddJump(ctx, ownerID, trackID, jump.TriggerMs, jump.TargetMs, jump.Description)
}

// RepeatSegment persists a jump that loops the given segment.
func (s *TrackService) RepeatSegment(ctx context.Context, ownerID, trackID string, seg domain.RawSegment) (domain.Jump, error) {
	jump := domain.RepeatJump(seg, ownerID, trackID)
	return s.AddJump(ctx, ownerID, trackID, jump.TriggerMs, jump.TargetMs, jump.Description)
}

// SearchTracks runs a catalog search as the owner.
func (s *TrackService) SearchTracks(ctx context.Context, ownerID, query string, limit int) ([]domain.Track, error) {
	client, err := s.catalog.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	tracks, err := client.SearchTracks(ctx, query, limit)
	if err != nil {
		return nil, s.mapCatalogError(ownerID, err)
	}
	return tracks, nil
}

func (s *TrackService) getTrack(ctx context.Context, ownerID, trackID string) (domain.Track, error) {
	client, err := s.catalog.Get(ctx, ownerID)
	if err != nil {
		return domain.Track{}, err
	}

	track, err := client.GetTrack(ctx, trackID)
	if err != nil {
		return domain.Track{}, s.mapCatalogError(ownerID, err)
	}
	return track, nil
}

// mapCatalogError evicts the owner's cached credential when the catalog
// rejected it, so the next request exchanges afresh. The failure itself is
// surfaced, not retried.
func (s *TrackService) mapCatalogError(ownerID string, err error) error {
	if errors.Is(err, ports.ErrUnauthorized) {
		s.catalog.Invalidate(ownerID)
		return &ports.AuthError{OwnerID: ownerID, Err: err}
	}
	return fmt.Errorf("service: catalog request failed: %w", err)
}
