// Package trending materializes the popularity trend signals the decision
// engine consumes: the per-item trend delta against the previous popularity
// snapshot, and the trending flag for the current top titles.
package trending

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/showdeck/showdeck/internal/catalog"
)

// Popularity must move by more than this fraction to count as up or down.
const deltaThreshold = 0.05

// DefaultTrendingCount is how many top titles get the trending flag.
const DefaultTrendingCount = 20

// Service refreshes trend deltas and trending flags from popularity snapshots.
type Service struct {
	db            *sql.DB
	logger        zerolog.Logger
	trendingCount int
}

// NewService creates a new trending service.
func NewService(db *sql.DB, logger zerolog.Logger) *Service {
	return &Service{
		db:            db,
		logger:        logger.With().Str("component", "trending").Logger(),
		trendingCount: DefaultTrendingCount,
	}
}

type itemPopularity struct {
	id         int64
	popularity float64
	previous   sql.NullFloat64
}

// Refresh recomputes every item's trend delta against its previous snapshot,
// flags the current top titles as trending, then replaces the snapshots.
func (s *Service) Refresh(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, `SELECT m.id, m.popularity, p.popularity
		FROM media_items m LEFT JOIN popularity_snapshots p ON p.item_id = m.id`)
	if err != nil {
		return fmt.Errorf("failed to read popularity: %w", err)
	}

	var items []itemPopularity
	for rows.Next() {
		var ip itemPopularity
		if err := rows.Scan(&ip.id, &ip.popularity, &ip.previous); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan popularity: %w", err)
		}
		items = append(items, ip)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	sort.Slice(items, func(i, j int) bool { return items[i].popularity > items[j].popularity })
	trendingCutoff := s.trendingCount
	if trendingCutoff > len(items) {
		trendingCutoff = len(items)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin trend refresh: %w", err)
	}
	defer tx.Rollback()

	for i, ip := range items {
		delta := computeDelta(ip)
		trending := i < trendingCutoff && ip.popularity > 0

		if _, err := tx.ExecContext(ctx, `UPDATE media_items
			SET trend_delta = ?, is_trending = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
			string(delta), boolInt(trending), ip.id); err != nil {
			return fmt.Errorf("failed to update trend for item %d: %w", ip.id, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO popularity_snapshots (item_id, popularity, taken_at)
			VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT (item_id) DO UPDATE SET popularity = excluded.popularity, taken_at = CURRENT_TIMESTAMP`,
			ip.id, ip.popularity); err != nil {
			return fmt.Errorf("failed to snapshot item %d: %w", ip.id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit trend refresh: %w", err)
	}

	s.logger.Info().Int("items", len(items)).Int("trending", trendingCutoff).Msg("Trend refresh completed")
	return nil
}

// computeDelta compares current popularity with the previous snapshot.
// Items without a snapshot stay stable until the second refresh.
func computeDelta(ip itemPopularity) catalog.TrendDirection {
	if !ip.previous.Valid || ip.previous.Float64 <= 0 {
		return catalog.TrendStable
	}
	change := (ip.popularity - ip.previous.Float64) / ip.previous.Float64
	switch {
	case change > deltaThreshold:
		return catalog.TrendUp
	case change < -deltaThreshold:
		return catalog.TrendDown
	}
	return catalog.TrendStable
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
