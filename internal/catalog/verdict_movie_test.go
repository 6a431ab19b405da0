package catalog

import (
	"testing"
	"time"
)

func msgOrNil(k *MessageKey) MessageKey {
	if k == nil {
		return ""
	}
	return *k
}

func TestMovieVerdict_Upcoming(t *testing.T) {
	release := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	v := MovieVerdict(MovieFacts{
		Status:      MovieStatusUpcoming,
		ReleaseDate: &release,
		// Even stellar early ratings must not outrank the release branch.
		Consensus: consensusOf(9.0, 0, 5000, 2),
		Quality:   GradeConsensus(consensusOf(9.0, 0, 5000, 2)),
	})

	if v.Type != VerdictRelease {
		t.Errorf("Type = %q, want release", v.Type)
	}
	if msgOrNil(v.MessageKey) != MsgComingSoon {
		t.Errorf("MessageKey = %q, want comingSoon", msgOrNil(v.MessageKey))
	}
	if v.HintKey != HintNotifyRelease {
		t.Errorf("HintKey = %q, want notifyRelease", v.HintKey)
	}
	if v.Context != "Oct 1, 2026" {
		t.Errorf("Context = %q, want formatted release date", v.Context)
	}
}

func TestMovieVerdict_PoorRatings(t *testing.T) {
	// IMDb 4.5 with 500 votes: confident, poor.
	c := Consensus(ExternalRatings{IMDb: sample(4.5, 500)})
	v := MovieVerdict(MovieFacts{Status: MovieStatusReleased, Consensus: c, Quality: GradeConsensus(c)})

	if v.Type != VerdictWarning {
		t.Errorf("Type = %q, want warning", v.Type)
	}
	if msgOrNil(v.MessageKey) != MsgPoorRatings {
		t.Errorf("MessageKey = %q, want poorRatings", msgOrNil(v.MessageKey))
	}
	if v.HintKey != HintDecideToWatch {
		t.Errorf("HintKey = %q, want decideToWatch", v.HintKey)
	}
}

func TestMovieVerdict_BelowAverage(t *testing.T) {
	c := consensusOf(5.8, 0, 400, 1)
	v := MovieVerdict(MovieFacts{Status: MovieStatusReleased, Consensus: c, Quality: GradeConsensus(c)})

	if v.Type != VerdictWarning || msgOrNil(v.MessageKey) != MsgBelowAverage {
		t.Errorf("got %q/%q, want warning/belowAverage", v.Type, msgOrNil(v.MessageKey))
	}
}

func TestMovieVerdict_Spread(t *testing.T) {
	// Confident with high spread: mixed reviews.
	c := consensusOf(7.0, 2.0, 2000, 2)
	v := MovieVerdict(MovieFacts{Status: MovieStatusReleased, Consensus: c, Quality: GradeConsensus(c)})
	if v.Type != VerdictGeneral || msgOrNil(v.MessageKey) != MsgMixedReviews {
		t.Errorf("got %q/%q, want general/mixedReviews", v.Type, msgOrNil(v.MessageKey))
	}

	// Not confident with high spread: no consensus yet.
	c = consensusOf(7.0, 2.0, 100, 2)
	v = MovieVerdict(MovieFacts{Status: MovieStatusReleased, Consensus: c, Quality: GradeConsensus(c)})
	if v.Type != VerdictGeneral || msgOrNil(v.MessageKey) != MsgNoConsensusYet {
		t.Errorf("got %q/%q, want general/noConsensusYet", v.Type, msgOrNil(v.MessageKey))
	}
}

func TestMovieVerdict_BadgeBranches(t *testing.T) {
	c := consensusOf(6.8, 0.3, 2000, 2)
	q := GradeConsensus(c)

	trending := BadgeTrending
	v := MovieVerdict(MovieFacts{Status: MovieStatusReleased, Consensus: c, Quality: q, Badge: &trending})
	if v.Type != VerdictPopularity || msgOrNil(v.MessageKey) != MsgTrendingNow {
		t.Errorf("trending badge: got %q/%q, want popularity/trendingNow", v.Type, msgOrNil(v.MessageKey))
	}

	hit := BadgeHit
	v = MovieVerdict(MovieFacts{Status: MovieStatusReleased, Consensus: c, Quality: q, Badge: &hit})
	if v.Type != VerdictQuality || msgOrNil(v.MessageKey) != MsgCriticsLoved {
		t.Errorf("hit badge: got %q/%q, want quality/criticsLoved", v.Type, msgOrNil(v.MessageKey))
	}

	// Other badges fall through to the quality tiers.
	watchlist := BadgeInWatchlist
	v = MovieVerdict(MovieFacts{Status: MovieStatusReleased, Consensus: c, Quality: q, Badge: &watchlist})
	if msgOrNil(v.MessageKey) != MsgDecentRatings {
		t.Errorf("watchlist badge: got %q, want decentRatings fall-through", msgOrNil(v.MessageKey))
	}
}

func TestMovieVerdict_QualityTiers(t *testing.T) {
	loved := consensusOf(8.2, 0.4, 3000, 2)
	v := MovieVerdict(MovieFacts{Status: MovieStatusReleased, Consensus: loved, Quality: GradeConsensus(loved)})
	if v.Type != VerdictQuality || msgOrNil(v.MessageKey) != MsgCriticsLoved {
		t.Errorf("got %q/%q, want quality/criticsLoved", v.Type, msgOrNil(v.MessageKey))
	}
	if v.HintKey != HintForLater {
		t.Errorf("HintKey = %q, want forLater", v.HintKey)
	}

	good := consensusOf(7.2, 0.3, 500, 2)
	v = MovieVerdict(MovieFacts{Status: MovieStatusReleased, Consensus: good, Quality: GradeConsensus(good)})
	if msgOrNil(v.MessageKey) != MsgStrongRatings {
		t.Errorf("got %q, want strongRatings", msgOrNil(v.MessageKey))
	}

	decent := consensusOf(6.7, 0.3, 500, 2)
	v = MovieVerdict(MovieFacts{Status: MovieStatusReleased, Consensus: decent, Quality: GradeConsensus(decent)})
	if msgOrNil(v.MessageKey) != MsgDecentRatings {
		t.Errorf("got %q, want decentRatings", msgOrNil(v.MessageKey))
	}
}

func TestMovieVerdict_InTheatersHint(t *testing.T) {
	c := consensusOf(7.8, 0.2, 3000, 2)
	v := MovieVerdict(MovieFacts{Status: MovieStatusInTheaters, Consensus: c, Quality: GradeConsensus(c)})

	if v.HintKey != HintWhenOnStreaming {
		t.Errorf("HintKey = %q, want whenOnStreaming for a theatrical run", v.HintKey)
	}
}

func TestMovieVerdict_EarlyReviews(t *testing.T) {
	// Early and low: escalates to a warning.
	c := consensusOf(5.0, 0, 50, 1)
	v := MovieVerdict(MovieFacts{Status: MovieStatusReleased, Consensus: c, Quality: GradeConsensus(c)})
	if v.Type != VerdictWarning || msgOrNil(v.MessageKey) != MsgBelowAverage {
		t.Errorf("low early: got %q/%q, want warning/belowAverage", v.Type, msgOrNil(v.MessageKey))
	}

	// Early and fine: general earlyReviews.
	c = consensusOf(7.5, 0, 50, 1)
	v = MovieVerdict(MovieFacts{Status: MovieStatusReleased, Consensus: c, Quality: GradeConsensus(c)})
	if v.Type != VerdictGeneral || msgOrNil(v.MessageKey) != MsgEarlyReviews {
		t.Errorf("fine early: got %q/%q, want general/earlyReviews", v.Type, msgOrNil(v.MessageKey))
	}
}

func TestMovieVerdict_Fallback(t *testing.T) {
	v := MovieVerdict(MovieFacts{Status: MovieStatusReleased})

	if v.Type != VerdictGeneral {
		t.Errorf("Type = %q, want general", v.Type)
	}
	if v.MessageKey != nil {
		t.Errorf("MessageKey = %q, want nil", *v.MessageKey)
	}
	if v.HintKey != HintGeneral {
		t.Errorf("HintKey = %q, want general", v.HintKey)
	}
}
