// Package catalog implements the card and verdict decision engine: it turns
// multi-source ratings, popularity signals and per-user watch state into the
// badge, call-to-action, verdict and status hint shown on catalog cards.
//
// Every function in this package is pure: no I/O, no clock reads (callers pass
// now explicitly), no shared state. All outputs use closed string enums whose
// literals are bound to client-side i18n keys and must not change.
package catalog

import "time"

// MediaKind distinguishes movies from shows.
type MediaKind string

const (
	MediaKindMovie MediaKind = "movie"
	MediaKindShow  MediaKind = "show"
)

// WatchState is a user's saved state for an item.
type WatchState string

const (
	WatchStateWatching  WatchState = "watching"
	WatchStateCompleted WatchState = "completed"
	WatchStatePlanned   WatchState = "planned"
	WatchStateDropped   WatchState = "dropped"
)

// ListContext identifies the page/section a card is rendered in. It changes
// which badges are eligible, so it is part of every enrichment request.
type ListContext string

const (
	ContextDefault        ListContext = "DEFAULT"
	ContextTrendingList   ListContext = "TRENDING_LIST"
	ContextNewReleases    ListContext = "NEW_RELEASES_LIST"
	ContextInTheaters     ListContext = "IN_THEATERS_LIST"
	ContextNewOnStreaming ListContext = "NEW_ON_STREAMING_LIST"
	ContextUserLibrary    ListContext = "USER_LIBRARY"
	ContextContinueList   ListContext = "CONTINUE_LIST"
)

// ParseListContext maps a request parameter to a ListContext, falling back to
// ContextDefault for anything unknown.
func ParseListContext(s string) ListContext {
	switch ListContext(s) {
	case ContextTrendingList, ContextNewReleases, ContextInTheaters,
		ContextNewOnStreaming, ContextUserLibrary, ContextContinueList:
		return ListContext(s)
	default:
		return ContextDefault
	}
}

// BadgeKey is the single high-salience label shown on a card.
type BadgeKey string

const (
	BadgeNewEpisode     BadgeKey = "NEW_EPISODE"
	BadgeContinue       BadgeKey = "CONTINUE"
	BadgeInWatchlist    BadgeKey = "IN_WATCHLIST"
	BadgeHit            BadgeKey = "HIT"
	BadgeNewRelease     BadgeKey = "NEW_RELEASE"
	BadgeTrending       BadgeKey = "TRENDING"
	BadgeRising         BadgeKey = "RISING"
	BadgeInTheaters     BadgeKey = "IN_THEATERS"
	BadgeNewOnStreaming BadgeKey = "NEW_ON_STREAMING"
)

// badgePriority documents the relative strength of each badge for debugging
// and telemetry. Selection is an ordered cascade in SelectBadge; these values
// are never compared at runtime.
var badgePriority = map[BadgeKey]int{
	BadgeNewEpisode:     100,
	BadgeContinue:       90,
	BadgeInWatchlist:    80,
	BadgeHit:            70,
	BadgeNewRelease:     60,
	BadgeTrending:       50,
	BadgeRising:         40,
	BadgeInTheaters:     30,
	BadgeNewOnStreaming: 20,
}

// Priority returns the documentary priority of a badge (0 for unknown).
func (b BadgeKey) Priority() int { return badgePriority[b] }

// PrimaryCta is the one suggested next action for a card.
type PrimaryCta string

const (
	CtaSave     PrimaryCta = "SAVE"
	CtaContinue PrimaryCta = "CONTINUE"
	CtaOpen     PrimaryCta = "OPEN"
)

// TrendDirection is the popularity movement since the previous snapshot.
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// VerdictType is the coarse category of a verdict.
type VerdictType string

const (
	VerdictWarning    VerdictType = "warning"
	VerdictRelease    VerdictType = "release"
	VerdictQuality    VerdictType = "quality"
	VerdictPopularity VerdictType = "popularity"
	VerdictGeneral    VerdictType = "general"
)

// HintKey is the secondary suggestion attached to a verdict.
type HintKey string

const (
	HintNewEpisodes      HintKey = "newEpisodes"
	HintAfterAllEpisodes HintKey = "afterAllEpisodes"
	HintWhenOnStreaming  HintKey = "whenOnStreaming"
	HintNotifyNewEpisode HintKey = "notifyNewEpisode"
	HintGeneral          HintKey = "general"
	HintForLater         HintKey = "forLater"
	HintNotifyRelease    HintKey = "notifyRelease"
	HintDecideToWatch    HintKey = "decideToWatch"
)

// MessageKey is a media-kind-specific verdict message identifier. Movie and
// show engines draw from separate literal sets (see verdict_movie.go and
// verdict_show.go).
type MessageKey string

// Movie verdict message keys.
const (
	MsgComingSoon     MessageKey = "comingSoon"
	MsgPoorRatings    MessageKey = "poorRatings"
	MsgBelowAverage   MessageKey = "belowAverage"
	MsgMixedReviews   MessageKey = "mixedReviews"
	MsgNoConsensusYet MessageKey = "noConsensusYet"
	MsgTrendingNow    MessageKey = "trendingNow"
	MsgCriticsLoved   MessageKey = "criticsLoved"
	MsgStrongRatings  MessageKey = "strongRatings"
	MsgDecentRatings  MessageKey = "decentRatings"
	MsgEarlyReviews   MessageKey = "earlyReviews"
)

// Show-only verdict message keys (shows also reuse the movie set above).
const (
	MsgCancelled   MessageKey = "cancelled"
	MsgLongRunning MessageKey = "longRunning"
	MsgRisingHype  MessageKey = "risingHype"
)

// StatusHintKey is the show-only secondary status label.
type StatusHintKey string

const (
	StatusHintNewSeason    StatusHintKey = "newSeason"
	StatusHintSeriesFinale StatusHintKey = "seriesFinale"
)

// MovieStatus is a movie's release status.
type MovieStatus string

const (
	MovieStatusUpcoming   MovieStatus = "upcoming"
	MovieStatusInTheaters MovieStatus = "in_theaters"
	MovieStatusReleased   MovieStatus = "released"
)

// ShowStatus is a show's airing status.
type ShowStatus string

const (
	ShowStatusReturning ShowStatus = "returning"
	ShowStatusEnded     ShowStatus = "ended"
	ShowStatusCancelled ShowStatus = "cancelled"
)

// Verdict is the quality/warning judgment for an item.
type Verdict struct {
	Type       VerdictType `json:"type"`
	MessageKey *MessageKey `json:"messageKey"`
	Context    string      `json:"context,omitempty"`
	HintKey    HintKey     `json:"hintKey"`
}

// StatusHint is the show-only secondary status label. Its message key is nil
// whenever the paired verdict is a warning.
type StatusHint struct {
	MessageKey *StatusHintKey `json:"messageKey"`
}

// ContinuePoint is the season/episode a user should resume from.
type ContinuePoint struct {
	Season  int `json:"season"`
	Episode int `json:"episode"`
}

// CardSignals are the per-item inputs to badge selection. Zero values mean
// "signal absent".
type CardSignals struct {
	HasUserEntry  bool
	UserState     WatchState // empty when the user has no saved state
	ContinuePoint *ContinuePoint
	HasNewEpisode bool
	IsNewRelease  bool
	IsHit         bool
	TrendDelta    TrendDirection // empty when no snapshot comparison exists
	IsTrending    bool
}

// CardMeta is the display-ready card classification.
type CardMeta struct {
	BadgeKey    *BadgeKey      `json:"badgeKey"`
	PrimaryCta  PrimaryCta     `json:"primaryCta"`
	Continue    *ContinuePoint `json:"continue"`
	ListContext ListContext    `json:"listContext"`
}

// NewReleaseWindow is how long after release a title still counts as new.
const NewReleaseWindow = 30 * 24 * time.Hour

// NewSeasonWindow is how recently a returning show must have aired to earn
// the newSeason status hint (and the NEW_EPISODE badge for watchers).
const NewSeasonWindow = 14 * 24 * time.Hour
