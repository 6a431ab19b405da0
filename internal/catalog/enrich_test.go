package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// fakeStateSource records calls so tests can assert batching behavior.
type fakeStateSource struct {
	states map[int64]UserItemState
	calls  int
	lastID []int64
}

func (f *fakeStateSource) StatesForItems(_ context.Context, _ int64, itemIDs []int64) (map[int64]UserItemState, error) {
	f.calls++
	f.lastID = itemIDs
	return f.states, nil
}

func testItems() []Item {
	aired := testNow.AddDate(0, 0, -4)
	return []Item{
		{
			ID:   1,
			Kind: MediaKindMovie,
			Ratings: ExternalRatings{
				IMDb: sample(7.8, 3000),
				TMDB: sample(7.6, 2000),
			},
			MovieStatus: MovieStatusReleased,
		},
		{
			ID:           2,
			Kind:         MediaKindShow,
			ShowStatus:   ShowStatusReturning,
			TotalSeasons: 3,
			LastAirDate:  &aired,
			Ratings: ExternalRatings{
				IMDb: sample(8.0, 5000),
			},
		},
	}
}

func TestEnrichList_BatchesStateFetch(t *testing.T) {
	src := &fakeStateSource{states: map[int64]UserItemState{
		2: {State: WatchStateWatching, Progress: map[string]any{"2": float64(4)}},
	}}
	e := NewEnricher(src, zerolog.Nop())

	out, err := e.EnrichList(context.Background(), testItems(), 42, ContextDefault, testNow)
	if err != nil {
		t.Fatalf("EnrichList() error = %v", err)
	}

	if src.calls != 1 {
		t.Errorf("state fetches = %d, want 1 batched call", src.calls)
	}
	if len(src.lastID) != 2 {
		t.Errorf("batched ids = %v, want both item ids", src.lastID)
	}
	if len(out) != 2 {
		t.Fatalf("enriched %d items, want 2", len(out))
	}

	// Item 2 is watching with a new episode: NEW_EPISODE badge, CONTINUE cta.
	show := out[1]
	if badgeOrNil(show.Card.BadgeKey) != BadgeNewEpisode {
		t.Errorf("show badge = %q, want NEW_EPISODE", badgeOrNil(show.Card.BadgeKey))
	}
	if show.Card.PrimaryCta != CtaContinue {
		t.Errorf("show cta = %q, want CONTINUE", show.Card.PrimaryCta)
	}
	if show.Card.Continue == nil || show.Card.Continue.Season != 2 || show.Card.Continue.Episode != 4 {
		t.Errorf("show continue = %+v, want s2e4", show.Card.Continue)
	}
	if show.StatusHint == nil {
		t.Fatal("show must always carry a status hint record")
	}
	if hintOrNil(*show.StatusHint) != StatusHintNewSeason {
		t.Errorf("statusHint = %q, want newSeason", hintOrNil(*show.StatusHint))
	}

	// Item 1 has no user entry: SAVE cta, quality verdict from its ratings.
	movie := out[0]
	if movie.Card.PrimaryCta != CtaSave {
		t.Errorf("movie cta = %q, want SAVE", movie.Card.PrimaryCta)
	}
	if movie.Verdict.Type != VerdictQuality {
		t.Errorf("movie verdict = %q, want quality", movie.Verdict.Type)
	}
	if movie.StatusHint != nil {
		t.Error("movies must not carry a status hint")
	}
}

func TestEnrichList_AnonymousSkipsStateFetch(t *testing.T) {
	src := &fakeStateSource{}
	e := NewEnricher(src, zerolog.Nop())

	out, err := e.EnrichList(context.Background(), testItems(), 0, ContextTrendingList, testNow)
	if err != nil {
		t.Fatalf("EnrichList() error = %v", err)
	}

	if src.calls != 0 {
		t.Errorf("state fetches = %d, want 0 for anonymous", src.calls)
	}
	for _, item := range out {
		if item.Card.PrimaryCta != CtaSave {
			t.Errorf("item %d cta = %q, want SAVE without user entry", item.ID, item.Card.PrimaryCta)
		}
	}
}

func TestEnrichItem_DetailView(t *testing.T) {
	src := &fakeStateSource{states: map[int64]UserItemState{
		1: {State: WatchStatePlanned, Progress: map[string]any{"1": 2}},
	}}
	e := NewEnricher(src, zerolog.Nop())

	out, err := e.EnrichItem(context.Background(), testItems()[0], 42, testNow)
	if err != nil {
		t.Fatalf("EnrichItem() error = %v", err)
	}

	// Planned state drops the continue pointer on the final card.
	if out.Card.Continue != nil {
		t.Errorf("continue = %+v, want nil for planned state", out.Card.Continue)
	}
	if badgeOrNil(out.Card.BadgeKey) != BadgeContinue {
		t.Errorf("badge = %q, want CONTINUE (selector saw the pointer)", badgeOrNil(out.Card.BadgeKey))
	}
	if out.Card.ListContext != ContextDefault {
		t.Errorf("listContext = %q, want DEFAULT for detail views", out.Card.ListContext)
	}
	if out.Card.PrimaryCta != CtaContinue {
		t.Errorf("cta = %q, want CONTINUE", out.Card.PrimaryCta)
	}
}

func TestEnrichList_NewReleaseSignal(t *testing.T) {
	released := testNow.AddDate(0, 0, -10)
	old := testNow.AddDate(0, 0, -45)
	future := testNow.Add(24 * time.Hour)

	items := []Item{
		{ID: 1, Kind: MediaKindMovie, MovieStatus: MovieStatusReleased, ReleaseDate: &released},
		{ID: 2, Kind: MediaKindMovie, MovieStatus: MovieStatusReleased, ReleaseDate: &old},
		{ID: 3, Kind: MediaKindMovie, MovieStatus: MovieStatusUpcoming, ReleaseDate: &future},
	}

	e := NewEnricher(nil, zerolog.Nop())
	out, err := e.EnrichList(context.Background(), items, 0, ContextDefault, testNow)
	if err != nil {
		t.Fatalf("EnrichList() error = %v", err)
	}

	if badgeOrNil(out[0].Card.BadgeKey) != BadgeNewRelease {
		t.Errorf("10-day-old release badge = %q, want NEW_RELEASE", badgeOrNil(out[0].Card.BadgeKey))
	}
	if out[1].Card.BadgeKey != nil {
		t.Errorf("45-day-old release badge = %q, want nil", badgeOrNil(out[1].Card.BadgeKey))
	}
	if out[2].Card.BadgeKey != nil {
		t.Errorf("future release badge = %q, want nil", badgeOrNil(out[2].Card.BadgeKey))
	}
	if out[2].Verdict.Type != VerdictRelease {
		t.Errorf("upcoming verdict = %q, want release", out[2].Verdict.Type)
	}
}
