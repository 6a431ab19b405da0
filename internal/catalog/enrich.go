package catalog

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// UserItemState is one user's saved state for one item, as materialized by
// the user-state collaborator.
type UserItemState struct {
	State    WatchState
	Progress map[string]any
	Rating   *float64
	Notes    string
}

// UserStateSource resolves saved user state. Implementations do the actual
// I/O; the enricher calls it exactly once per list so per-item fan-out never
// happens.
type UserStateSource interface {
	StatesForItems(ctx context.Context, userID int64, itemIDs []int64) (map[int64]UserItemState, error)
}

// Item is the already-materialized catalog row the engine consumes. For
// movies ReleaseDate is the theatrical/streaming release; for shows it is the
// first air date.
type Item struct {
	ID           int64           `json:"id"`
	Kind         MediaKind       `json:"kind"`
	Title        string          `json:"title"`
	Year         int             `json:"year,omitempty"`
	Overview     string          `json:"overview,omitempty"`
	PosterURL    string          `json:"posterUrl,omitempty"`
	Popularity   float64         `json:"popularity"`
	ReleaseDate  *time.Time      `json:"releaseDate,omitempty"`
	MovieStatus  MovieStatus     `json:"movieStatus,omitempty"`
	ShowStatus   ShowStatus      `json:"showStatus,omitempty"`
	TotalSeasons int             `json:"totalSeasons,omitempty"`
	LastAirDate  *time.Time      `json:"lastAirDate,omitempty"`
	TrendDelta   TrendDirection  `json:"trendDelta,omitempty"`
	IsTrending   bool            `json:"isTrending,omitempty"`
	Ratings      ExternalRatings `json:"-"`
}

// EnrichedItem is an item plus its display-ready classifications.
type EnrichedItem struct {
	Item
	Consensus  ConsensusRating `json:"consensus"`
	Card       CardMeta        `json:"card"`
	Verdict    Verdict         `json:"verdict"`
	StatusHint *StatusHint     `json:"statusHint,omitempty"`
}

// Enricher batches the pure per-item classifiers over catalog lists.
type Enricher struct {
	states UserStateSource
	logger zerolog.Logger
}

// NewEnricher creates an enricher. states may be nil for anonymous-only use.
func NewEnricher(states UserStateSource, logger zerolog.Logger) *Enricher {
	return &Enricher{
		states: states,
		logger: logger.With().Str("component", "enricher").Logger(),
	}
}

// EnrichList classifies every item for one list render. User state for the
// whole list is fetched in a single batched call; userID 0 means anonymous.
func (e *Enricher) EnrichList(ctx context.Context, items []Item, userID int64, listCtx ListContext, now time.Time) ([]EnrichedItem, error) {
	states := map[int64]UserItemState{}
	if userID != 0 && e.states != nil {
		ids := make([]int64, 0, len(items))
		for i := range items {
			ids = append(ids, items[i].ID)
		}
		var err error
		states, err = e.states.StatesForItems(ctx, userID, ids)
		if err != nil {
			return nil, err
		}
	}

	out := make([]EnrichedItem, 0, len(items))
	for i := range items {
		var st *UserItemState
		if s, ok := states[items[i].ID]; ok {
			st = &s
		}
		out = append(out, enrichOne(items[i], st, listCtx, now))
	}

	e.logger.Debug().
		Int("items", len(items)).
		Str("listContext", string(listCtx)).
		Int64("userId", userID).
		Msg("Enriched list")

	return out, nil
}

// EnrichItem classifies a single item for a detail view.
func (e *Enricher) EnrichItem(ctx context.Context, item Item, userID int64, now time.Time) (EnrichedItem, error) {
	var st *UserItemState
	if userID != 0 && e.states != nil {
		states, err := e.states.StatesForItems(ctx, userID, []int64{item.ID})
		if err != nil {
			return EnrichedItem{}, err
		}
		if s, ok := states[item.ID]; ok {
			st = &s
		}
	}
	return enrichOne(item, st, ContextDefault, now), nil
}

// enrichOne is the pure per-item composition of the card and verdict engines.
func enrichOne(item Item, st *UserItemState, listCtx ListContext, now time.Time) EnrichedItem {
	consensus := Consensus(item.Ratings)
	quality := GradeConsensus(consensus)

	sig := CardSignals{
		IsNewRelease: withinWindow(item.ReleaseDate, now, NewReleaseWindow),
		IsHit:        IsHit(item.Ratings),
		TrendDelta:   item.TrendDelta,
		IsTrending:   item.IsTrending,
	}
	if item.Kind == MediaKindShow {
		sig.HasNewEpisode = withinWindow(item.LastAirDate, now, NewSeasonWindow)
	}
	if st != nil {
		sig.HasUserEntry = true
		sig.UserState = st.State
		sig.ContinuePoint = ExtractContinuePoint(st.Progress)
	}

	card := BuildCard(sig, listCtx)

	enriched := EnrichedItem{
		Item:      item,
		Consensus: consensus,
		Card:      card,
	}

	switch item.Kind {
	case MediaKindShow:
		verdict, hint := ShowVerdict(ShowFacts{
			Status:       item.ShowStatus,
			TotalSeasons: item.TotalSeasons,
			LastAirDate:  item.LastAirDate,
			Consensus:    consensus,
			Quality:      quality,
			Badge:        card.BadgeKey,
		}, now)
		enriched.Verdict = verdict
		enriched.StatusHint = &hint
	default:
		enriched.Verdict = MovieVerdict(MovieFacts{
			Status:      item.MovieStatus,
			ReleaseDate: item.ReleaseDate,
			Consensus:   consensus,
			Quality:     quality,
			Badge:       card.BadgeKey,
		})
	}

	return enriched
}

// withinWindow reports whether t is in the past and no older than window.
func withinWindow(t *time.Time, now time.Time, window time.Duration) bool {
	if t == nil {
		return false
	}
	age := now.Sub(*t)
	return age >= 0 && age <= window
}
