package catalog

// Vote-count confidence thresholds. Ratings below these evidence levels are
// not trusted for strong verdicts.
const (
	MinVotesForConfidence   = 200
	MinVotesForCriticsLoved = 1000
	MinVotesForSpreadMatter = 1000
	MaxSpreadForOptimistic  = 1.0
)

// Badge-facing hit thresholds, applied to the mean rating.
const (
	hitMinAvgRating = 7.5
	hitMinVotes     = 1000
)

// QualitySignals are the tier booleans derived from a consensus rating.
// The Is* quality tiers are only set when the rating clears the confidence
// gate; HasHighSpread is independent of it and only requires two sources.
type QualitySignals struct {
	HasConfidentRating bool
	HasHighSpread      bool
	IsPoorQuality      bool
	IsBelowAverage     bool
	IsMixedQuality     bool
	IsDecentQuality    bool
	IsGoodQuality      bool
	IsCriticsLoved     bool
}

// GradeConsensus derives quality tier signals from a consensus rating.
func GradeConsensus(c ConsensusRating) QualitySignals {
	q := QualitySignals{}

	// Spread only means disagreement when at least two sources exist. A
	// spread of exactly 1.0 counts as high once enough votes back it.
	if c.SourceCount >= 2 {
		q.HasHighSpread = c.Spread > MaxSpreadForOptimistic ||
			(c.Spread == MaxSpreadForOptimistic && c.TotalVotes >= MinVotesForSpreadMatter)
	}

	if c.Value == nil {
		return q
	}

	q.HasConfidentRating = c.TotalVotes >= MinVotesForConfidence
	if !q.HasConfidentRating {
		return q
	}

	v := *c.Value
	q.IsPoorQuality = v < 5.5
	q.IsBelowAverage = v < 6.0
	q.IsMixedQuality = v < 6.5
	q.IsDecentQuality = v >= 6.5 && v < 7.0
	q.IsGoodQuality = v >= 7.0
	q.IsCriticsLoved = v >= 7.5 && c.TotalVotes >= MinVotesForCriticsLoved && !q.HasHighSpread
	return q
}

// IsHit is the badge-facing quality gate: mean rating at least 7.5 backed by
// at least 1000 votes. It deliberately uses the mean, never popularity, and
// is kept separate from the median-based consensus used by verdicts.
func IsHit(r ExternalRatings) bool {
	avg, votes := MeanRating(r)
	return avg >= hitMinAvgRating && votes >= hitMinVotes
}
