package catalog

import "time"

// MovieFacts are the inputs to the movie verdict cascade.
type MovieFacts struct {
	Status      MovieStatus
	ReleaseDate *time.Time
	Consensus   ConsensusRating
	Quality     QualitySignals
	Badge       *BadgeKey
}

// MovieVerdict classifies a movie. The branches form a strict cascade: the
// first match returns and masks everything below it.
func MovieVerdict(f MovieFacts) Verdict {
	q := f.Quality
	c := f.Consensus

	// Unreleased titles get a release verdict before quality is considered:
	// whatever ratings exist are festival/preview noise.
	if f.Status == MovieStatusUpcoming {
		v := Verdict{Type: VerdictRelease, MessageKey: msg(MsgComingSoon), HintKey: HintNotifyRelease}
		if f.ReleaseDate != nil {
			v.Context = f.ReleaseDate.Format("Jan 2, 2006")
		}
		return v
	}

	if q.IsPoorQuality {
		return Verdict{Type: VerdictWarning, MessageKey: msg(MsgPoorRatings), HintKey: HintDecideToWatch}
	}
	if q.IsBelowAverage {
		return Verdict{Type: VerdictWarning, MessageKey: msg(MsgBelowAverage), HintKey: HintDecideToWatch}
	}

	if q.HasHighSpread && c.SourceCount >= 2 {
		key := MsgNoConsensusYet
		if q.HasConfidentRating {
			key = MsgMixedReviews
		}
		return Verdict{Type: VerdictGeneral, MessageKey: msg(key), HintKey: HintDecideToWatch}
	}

	if f.Badge != nil {
		switch *f.Badge {
		case BadgeTrending:
			return Verdict{Type: VerdictPopularity, MessageKey: msg(MsgTrendingNow), HintKey: moviePositiveHint(f.Status)}
		case BadgeHit:
			return Verdict{Type: VerdictQuality, MessageKey: msg(MsgCriticsLoved), HintKey: moviePositiveHint(f.Status)}
		}
	}

	if q.IsCriticsLoved {
		return Verdict{Type: VerdictQuality, MessageKey: msg(MsgCriticsLoved), HintKey: moviePositiveHint(f.Status)}
	}
	if q.IsGoodQuality {
		return Verdict{Type: VerdictQuality, MessageKey: msg(MsgStrongRatings), HintKey: moviePositiveHint(f.Status)}
	}
	if q.IsDecentQuality {
		return Verdict{Type: VerdictQuality, MessageKey: msg(MsgDecentRatings), HintKey: moviePositiveHint(f.Status)}
	}

	// Early reviews: ratings exist but not enough votes to trust them.
	if c.SourceCount > 0 && !q.HasConfidentRating {
		if c.Value != nil && *c.Value < 6.0 {
			return Verdict{Type: VerdictWarning, MessageKey: msg(MsgBelowAverage), HintKey: HintDecideToWatch}
		}
		return Verdict{Type: VerdictGeneral, MessageKey: msg(MsgEarlyReviews), HintKey: HintDecideToWatch}
	}

	return Verdict{Type: VerdictGeneral, HintKey: HintGeneral}
}

// moviePositiveHint picks the follow-up suggestion for positive movie
// verdicts: a theatrical run suggests waiting for streaming, anything else is
// save-for-later material.
func moviePositiveHint(status MovieStatus) HintKey {
	if status == MovieStatusInTheaters {
		return HintWhenOnStreaming
	}
	return HintForLater
}

func msg(k MessageKey) *MessageKey { return &k }
