package catalog

import (
	"strconv"
	"time"
)

// Minimum seasons before a show qualifies for the longRunning verdict.
const longRunningSeasons = 5

// ShowFacts are the inputs to the show verdict cascade.
type ShowFacts struct {
	Status       ShowStatus
	TotalSeasons int
	LastAirDate  *time.Time
	Consensus    ConsensusRating
	Quality      QualitySignals
	Badge        *BadgeKey
}

// ShowVerdict classifies a show and derives its status hint. Warning branches
// return immediately with a nil hint: a "new season" teaser must never sit
// next to a cancellation or poor-ratings warning, and keeping the early
// returns structural makes that unrepresentable rather than filtered.
func ShowVerdict(f ShowFacts, now time.Time) (Verdict, StatusHint) {
	q := f.Quality
	c := f.Consensus

	if f.Status == ShowStatusCancelled {
		return Verdict{Type: VerdictWarning, MessageKey: msg(MsgCancelled), HintKey: HintDecideToWatch}, StatusHint{}
	}
	if q.IsPoorQuality {
		return Verdict{Type: VerdictWarning, MessageKey: msg(MsgPoorRatings), HintKey: HintDecideToWatch}, StatusHint{}
	}
	if q.IsBelowAverage {
		return Verdict{Type: VerdictWarning, MessageKey: msg(MsgBelowAverage), HintKey: HintDecideToWatch}, StatusHint{}
	}

	hint := showStatusHint(f, now)

	if q.HasHighSpread && c.SourceCount >= 2 {
		key := MsgNoConsensusYet
		if q.HasConfidentRating {
			key = MsgMixedReviews
		}
		return Verdict{Type: VerdictGeneral, MessageKey: msg(key), HintKey: HintDecideToWatch}, hint
	}

	if f.Badge != nil {
		switch *f.Badge {
		case BadgeTrending:
			return Verdict{Type: VerdictPopularity, MessageKey: msg(MsgTrendingNow), HintKey: showPositiveHint(f.Status)}, hint
		case BadgeHit:
			return Verdict{Type: VerdictQuality, MessageKey: msg(MsgCriticsLoved), HintKey: showPositiveHint(f.Status)}, hint
		}
	}

	if q.IsCriticsLoved {
		return Verdict{Type: VerdictQuality, MessageKey: msg(MsgCriticsLoved), HintKey: showPositiveHint(f.Status)}, hint
	}
	if q.IsGoodQuality {
		return Verdict{Type: VerdictQuality, MessageKey: msg(MsgStrongRatings), HintKey: showPositiveHint(f.Status)}, hint
	}
	if q.IsDecentQuality {
		return Verdict{Type: VerdictQuality, MessageKey: msg(MsgDecentRatings), HintKey: showPositiveHint(f.Status)}, hint
	}

	if f.TotalSeasons >= longRunningSeasons && c.Value != nil && *c.Value >= 6.5 {
		return Verdict{
			Type:       VerdictQuality,
			MessageKey: msg(MsgLongRunning),
			Context:    strconv.Itoa(f.TotalSeasons),
			HintKey:    showPositiveHint(f.Status),
		}, hint
	}

	if f.Badge != nil && *f.Badge == BadgeRising {
		return Verdict{Type: VerdictPopularity, MessageKey: msg(MsgRisingHype), HintKey: showPositiveHint(f.Status)}, hint
	}

	if c.SourceCount > 0 && !q.HasConfidentRating {
		if c.Value != nil && *c.Value < 6.0 {
			return Verdict{Type: VerdictWarning, MessageKey: msg(MsgBelowAverage), HintKey: HintDecideToWatch}, StatusHint{}
		}
		return Verdict{Type: VerdictGeneral, MessageKey: msg(MsgEarlyReviews), HintKey: HintDecideToWatch}, hint
	}

	if q.IsMixedQuality {
		return Verdict{Type: VerdictGeneral, MessageKey: msg(MsgMixedReviews), HintKey: HintDecideToWatch}, hint
	}

	return Verdict{Type: VerdictGeneral, HintKey: HintGeneral}, hint
}

// showPositiveHint picks the follow-up suggestion for positive show verdicts.
func showPositiveHint(status ShowStatus) HintKey {
	switch status {
	case ShowStatusReturning:
		return HintNotifyNewEpisode
	case ShowStatusEnded:
		return HintAfterAllEpisodes
	}
	return HintForLater
}

// showStatusHint derives the secondary status label. Callers on warning
// branches never reach this.
func showStatusHint(f ShowFacts, now time.Time) StatusHint {
	if f.Status == ShowStatusReturning && f.LastAirDate != nil &&
		now.Sub(*f.LastAirDate) >= 0 && now.Sub(*f.LastAirDate) <= NewSeasonWindow {
		k := StatusHintNewSeason
		return StatusHint{MessageKey: &k}
	}
	if f.Status == ShowStatusEnded && f.Quality.IsGoodQuality {
		k := StatusHintSeriesFinale
		return StatusHint{MessageKey: &k}
	}
	return StatusHint{}
}
