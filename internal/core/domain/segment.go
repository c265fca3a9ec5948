package domain

import "math"

// Sentinel labels emitted by the analyser to bound the track. They carry no
// renderable content and are dropped before merging.
const (
	labelStart = "start"
	labelEnd   = "end"
)

// RawSegment is one structural region of a track as returned by the
// analyser, ordered by Start and normally contiguous with its neighbours.
type RawSegment struct {
	Start  float64 `json:"start"`
	End    float64 `json:"end"`
	Label  string  `json:"label"`
	Lyrics string  `json:"lyrics"`
}

// MergedSegment is a RawSegment extended with rendering hints: its share of
// the visible window and a colour tag derived from the label. It is built
// fresh on every analysis fetch and never persisted.
type MergedSegment struct {
	RawSegment
	WidthPercent float64 `json:"width"`
	ColorTag     string  `json:"color"`
}

// Analysis is the analyser response for one track, passed through unmodified
// apart from the derived timeline.
type Analysis struct {
	VideoID  string       `json:"video_id"`
	Cached   bool         `json:"cached"`
	BPM      float64      `json:"bpm"`
	Segments []RawSegment `json:"segments"`
}

// DefaultColorTag is assigned to labels missing from the colour table.
const DefaultColorTag = "gray"

var segmentColors = map[string]string{
	"intro":  "emerald",
	"verse":  "violet",
	"chorus": "amber",
	"bridge": "rose",
	"solo":   "cyan",
	"inst":   "indigo",
	"outro":  "orange",
}

// MergeSegments drops the start/end sentinels and collapses runs of adjacent
// segments sharing a label into one, keeping the earliest start and the
// latest end. Segments with differing labels never merge, regardless of
// duration or gaps. The input is not mutated.
func MergeSegments(segments []RawSegment) []RawSegment {
	var merged []RawSegment
	for _, seg := range segments {
		if seg.Label == labelStart || seg.Label == labelEnd {
			continue
		}
		if n := len(merged); n > 0 && merged[n-1].Label == seg.Label {
			merged[n-1].End = seg.End
			continue
		}
		merged = append(merged, seg)
	}
	return merged
}

// BuildTimeline turns a raw analyser segment sequence into a renderable
// timeline. Widths are proportional shares of the window spanned by the
// merged segments, so they sum to 100 even when sentinels consumed part of
// the track. An all-sentinel input, or a degenerate zero-duration window,
// yields an empty timeline.
func BuildTimeline(segments []RawSegment) []MergedSegment {
	merged := MergeSegments(segments)
	if len(merged) == 0 {
		return nil
	}

	windowStart := merged[0].Start
	windowEnd := merged[len(merged)-1].End
	window := windowEnd - windowStart
	if window <= 0 {
		return nil
	}

	timeline := make([]MergedSegment, 0, len(merged))
	for _, seg := range merged {
		color, ok := segmentColors[seg.Label]
		if !ok {
			color = DefaultColorTag
		}
		timeline = append(timeline, MergedSegment{
			RawSegment:   seg,
			WidthPercent: (seg.End - seg.Start) / window * 100,
			ColorTag:     color,
		})
	}
	return timeline
}

// SkipJump derives a jump that skips over the segment: playback reaching the
// segment start jumps to its end.
func SkipJump(seg RawSegment, ownerID, trackID string) Jump {
	return Jump{
		OwnerID:     ownerID,
		TrackID:     trackID,
		TriggerMs:   secondsToMs(seg.Start),
		TargetMs:    secondsToMs(seg.End),
		Description: "Skip " + seg.Label,
	}
}

// RepeatJump derives a jump that loops the segment: playback reaching the
// segment end jumps back to its start.
func RepeatJump(seg RawSegment, ownerID, trackID string) Jump {
	return Jump{
		OwnerID:     ownerID,
		TrackID:     trackID,
		TriggerMs:   secondsToMs(seg.End),
		TargetMs:    secondsToMs(seg.Start),
		Description: "Repeat " + seg.Label,
	}
}

func secondsToMs(s float64) int {
	return int(math.Round(s * 1000))
}
