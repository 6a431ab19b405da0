package trending

import (
	"context"
	"testing"

	"github.com/showdeck/showdeck/internal/catalog"
	"github.com/showdeck/showdeck/internal/library"
	"github.com/showdeck/showdeck/internal/testutil"
)

func TestRefreshComputesDeltas(t *testing.T) {
	tdb := testutil.NewTestDB(t)
	t.Cleanup(tdb.Close)
	ctx := context.Background()

	libSvc := library.NewService(tdb.Conn, tdb.Logger)
	rising, err := libSvc.Create(ctx, library.CreateInput{
		Kind: catalog.MediaKindMovie, Title: "Rising", Popularity: 100,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	falling, err := libSvc.Create(ctx, library.CreateInput{
		Kind: catalog.MediaKindMovie, Title: "Falling", Popularity: 100,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	steady, err := libSvc.Create(ctx, library.CreateInput{
		Kind: catalog.MediaKindMovie, Title: "Steady", Popularity: 100,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	svc := NewService(tdb.Conn, tdb.Logger)

	// First refresh has no snapshots to compare against: everything stable.
	if err := svc.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	item, err := libSvc.Get(ctx, rising.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if item.TrendDelta != catalog.TrendStable {
		t.Errorf("first refresh delta = %q, want stable", item.TrendDelta)
	}
	if !item.IsTrending {
		t.Error("top title should be flagged trending")
	}

	// Move popularity and refresh again.
	moves := map[int64]float64{rising.ID: 150, falling.ID: 60, steady.ID: 102}
	for id, pop := range moves {
		if _, err := tdb.Conn.ExecContext(ctx, `UPDATE media_items SET popularity = ? WHERE id = ?`, pop, id); err != nil {
			t.Fatalf("update popularity: %v", err)
		}
	}
	if err := svc.Refresh(ctx); err != nil {
		t.Fatalf("second Refresh() error = %v", err)
	}

	wantDeltas := map[int64]catalog.TrendDirection{
		rising.ID:  catalog.TrendUp,
		falling.ID: catalog.TrendDown,
		steady.ID:  catalog.TrendStable, // +2% is inside the threshold
	}
	for id, want := range wantDeltas {
		item, err := libSvc.Get(ctx, id)
		if err != nil {
			t.Fatalf("Get(%d) error = %v", id, err)
		}
		if item.TrendDelta != want {
			t.Errorf("item %d delta = %q, want %q", id, item.TrendDelta, want)
		}
	}
}

func TestRefreshTrendingCutoff(t *testing.T) {
	tdb := testutil.NewTestDB(t)
	t.Cleanup(tdb.Close)
	ctx := context.Background()

	libSvc := library.NewService(tdb.Conn, tdb.Logger)
	pops := []float64{90, 80, 70, 0}
	ids := make([]int64, len(pops))
	for i, pop := range pops {
		item, err := libSvc.Create(ctx, library.CreateInput{
			Kind: catalog.MediaKindShow, Title: "Show", Popularity: pop,
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		ids[i] = item.ID
	}

	svc := NewService(tdb.Conn, tdb.Logger)
	svc.trendingCount = 2

	if err := svc.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	wantTrending := []bool{true, true, false, false}
	for i, id := range ids {
		item, err := libSvc.Get(ctx, id)
		if err != nil {
			t.Fatalf("Get(%d) error = %v", id, err)
		}
		if item.IsTrending != wantTrending[i] {
			t.Errorf("item with popularity %.0f trending = %v, want %v", pops[i], item.IsTrending, wantTrending[i])
		}
	}
}

func TestRefreshZeroPopularityNeverTrends(t *testing.T) {
	tdb := testutil.NewTestDB(t)
	t.Cleanup(tdb.Close)
	ctx := context.Background()

	libSvc := library.NewService(tdb.Conn, tdb.Logger)
	item, err := libSvc.Create(ctx, library.CreateInput{
		Kind: catalog.MediaKindMovie, Title: "Unknown Quantity",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	svc := NewService(tdb.Conn, tdb.Logger)
	if err := svc.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	got, err := libSvc.Get(ctx, item.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.IsTrending {
		t.Error("zero-popularity item must not be flagged trending")
	}
}
