package catalog

import "sort"

// RatingSource identifies one of the three fixed external rating providers,
// in priority order: IMDb, then TMDB, then Trakt.
type RatingSource string

const (
	SourceIMDb  RatingSource = "imdb"
	SourceTMDB  RatingSource = "tmdb"
	SourceTrakt RatingSource = "trakt"
)

// sourceOrder is the fixed priority order used for best-source tie breaks.
var sourceOrder = []RatingSource{SourceIMDb, SourceTMDB, SourceTrakt}

// RatingSample is one provider's observation: a 0–10 rating and how many
// votes back it. VoteCount may be zero when the provider does not report it.
type RatingSample struct {
	Rating    float64
	VoteCount int
}

// ExternalRatings holds the per-provider samples for an item. Any subset may
// be nil; a sample with a zero rating is treated as absent.
type ExternalRatings struct {
	IMDb  *RatingSample
	TMDB  *RatingSample
	Trakt *RatingSample
}

func (r ExternalRatings) sample(s RatingSource) *RatingSample {
	switch s {
	case SourceIMDb:
		return r.IMDb
	case SourceTMDB:
		return r.TMDB
	case SourceTrakt:
		return r.Trakt
	}
	return nil
}

// present returns the usable samples in source priority order.
func (r ExternalRatings) present() []RatingSource {
	var out []RatingSource
	for _, s := range sourceOrder {
		if smp := r.sample(s); smp != nil && smp.Rating > 0 {
			out = append(out, s)
		}
	}
	return out
}

// ConsensusRating is the single statistic verdicts are built on: the median
// of the available provider ratings plus evidence metadata.
type ConsensusRating struct {
	Value       *float64     `json:"value"`
	Spread      float64      `json:"spread"`
	TotalVotes  int          `json:"totalVotes"`
	SourceCount int          `json:"sourceCount"`
	BestSource  RatingSource `json:"bestSource,omitempty"`
}

// Consensus reduces the available provider ratings to one ConsensusRating.
// Absence of every source is a valid input and yields the zero consensus
// (nil value, zero spread and votes).
func Consensus(r ExternalRatings) ConsensusRating {
	sources := r.present()
	if len(sources) == 0 {
		return ConsensusRating{}
	}

	ratings := make([]float64, 0, len(sources))
	totalVotes := 0
	best := sources[0]
	bestVotes := -1
	for _, s := range sources {
		smp := r.sample(s)
		ratings = append(ratings, smp.Rating)
		totalVotes += smp.VoteCount
		// Ties keep the earlier (higher-priority) source.
		if smp.VoteCount > bestVotes {
			best = s
			bestVotes = smp.VoteCount
		}
	}

	sort.Float64s(ratings)
	var median float64
	mid := len(ratings) / 2
	if len(ratings)%2 == 0 {
		median = (ratings[mid-1] + ratings[mid]) / 2
	} else {
		median = ratings[mid]
	}

	return ConsensusRating{
		Value:       &median,
		Spread:      ratings[len(ratings)-1] - ratings[0],
		TotalVotes:  totalVotes,
		SourceCount: len(sources),
		BestSource:  best,
	}
}

// MeanRating returns the arithmetic mean across present sources and the vote
// total. This is the coarse badge-facing statistic; verdicts use the median
// from Consensus instead. The two are intentionally separate computations and
// can disagree for the same item.
func MeanRating(r ExternalRatings) (avg float64, totalVotes int) {
	sources := r.present()
	if len(sources) == 0 {
		return 0, 0
	}
	var sum float64
	for _, s := range sources {
		smp := r.sample(s)
		sum += smp.Rating
		totalVotes += smp.VoteCount
	}
	return sum / float64(len(sources)), totalVotes
}
