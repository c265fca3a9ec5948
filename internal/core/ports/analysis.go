package ports

import (
	"context"

	"github.com/olifog/musejump/backend/internal/core/domain"
)

// AnalysisProvider fetches the structural analysis for a track from the
// external analyser, keyed by a fuzzy search string (track name plus primary
// artist). Failures surface as *UpstreamError; there is no retry here.
type AnalysisProvider interface {
	AnalyseTrack(ctx context.Context, search string) (domain.Analysis, error)
}
