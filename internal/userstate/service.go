// Package userstate stores per-user watch state: the state enum, a free-form
// progress map, an optional personal rating and notes.
package userstate

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/showdeck/showdeck/internal/catalog"
)

var ErrEntryNotFound = errors.New("user state entry not found")

// Entry is one user's saved state for one item.
type Entry struct {
	ID       int64              `json:"id"`
	UserID   int64              `json:"userId"`
	ItemID   int64              `json:"itemId"`
	State    catalog.WatchState `json:"state"`
	Progress map[string]any     `json:"progress,omitempty"`
	Rating   *float64           `json:"rating,omitempty"`
	Notes    string             `json:"notes,omitempty"`
}

// SetInput contains fields for upserting a user state entry.
type SetInput struct {
	State    catalog.WatchState
	Progress map[string]any
	Rating   *float64
	Notes    string
}

// Service provides user watch-state storage. It implements
// catalog.UserStateSource for the enrichment pipeline.
type Service struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewService creates a new user state service.
func NewService(db *sql.DB, logger zerolog.Logger) *Service {
	return &Service{
		db:     db,
		logger: logger.With().Str("component", "userstate").Logger(),
	}
}

// Set upserts a user's state for an item.
func (s *Service) Set(ctx context.Context, userID, itemID int64, input SetInput) (*Entry, error) {
	var progressJSON sql.NullString
	if input.Progress != nil {
		bytes, err := json.Marshal(input.Progress)
		if err != nil {
			return nil, fmt.Errorf("failed to encode progress: %w", err)
		}
		progressJSON = sql.NullString{String: string(bytes), Valid: true}
	}

	var rating sql.NullFloat64
	if input.Rating != nil {
		rating = sql.NullFloat64{Float64: *input.Rating, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `INSERT INTO user_items (user_id, item_id, state, progress, rating, notes)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, item_id) DO UPDATE SET
			state = excluded.state,
			progress = excluded.progress,
			rating = excluded.rating,
			notes = excluded.notes,
			updated_at = CURRENT_TIMESTAMP`,
		userID, itemID, string(input.State), progressJSON, rating,
		sql.NullString{String: input.Notes, Valid: input.Notes != ""})
	if err != nil {
		return nil, fmt.Errorf("failed to set user state: %w", err)
	}

	return s.Get(ctx, userID, itemID)
}

// Get returns a user's state for one item.
func (s *Service) Get(ctx context.Context, userID, itemID int64) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, user_id, item_id, state, progress, rating, notes
		FROM user_items WHERE user_id = ? AND item_id = ?`, userID, itemID)

	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get user state: %w", err)
	}
	return entry, nil
}

// Delete removes a user's state for one item.
func (s *Service) Delete(ctx context.Context, userID, itemID int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM user_items WHERE user_id = ? AND item_id = ?`, userID, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete user state: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// StatesForItems resolves the states for a whole item list in one query.
// Items without an entry are simply absent from the result map.
func (s *Service) StatesForItems(ctx context.Context, userID int64, itemIDs []int64) (map[int64]catalog.UserItemState, error) {
	out := make(map[int64]catalog.UserItemState, len(itemIDs))
	if len(itemIDs) == 0 {
		return out, nil
	}

	placeholders := strings.Repeat("?,", len(itemIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, 0, len(itemIDs)+1)
	args = append(args, userID)
	for _, id := range itemIDs {
		args = append(args, id)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, user_id, item_id, state, progress, rating, notes
		FROM user_items WHERE user_id = ? AND item_id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to batch user states: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user state: %w", err)
		}
		out[entry.ItemID] = catalog.UserItemState{
			State:    entry.State,
			Progress: entry.Progress,
			Rating:   entry.Rating,
			Notes:    entry.Notes,
		}
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(r rowScanner) (*Entry, error) {
	var (
		entry        Entry
		state        string
		progressJSON sql.NullString
		rating       sql.NullFloat64
		notes        sql.NullString
	)

	if err := r.Scan(&entry.ID, &entry.UserID, &entry.ItemID, &state, &progressJSON, &rating, &notes); err != nil {
		return nil, err
	}

	entry.State = catalog.WatchState(state)
	entry.Notes = notes.String
	if rating.Valid {
		entry.Rating = &rating.Float64
	}
	if progressJSON.Valid && progressJSON.String != "" {
		// Malformed stored progress degrades to no progress rather than
		// failing the read.
		if err := json.Unmarshal([]byte(progressJSON.String), &entry.Progress); err != nil {
			entry.Progress = nil
		}
	}
	return &entry, nil
}
