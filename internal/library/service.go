package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/showdeck/showdeck/internal/catalog"
)

var ErrItemNotFound = errors.New("catalog item not found")

const itemColumns = `id, kind, title, sort_title, year, overview, poster_url, popularity,
	release_date, streaming_date, movie_status, show_status, total_seasons, last_air_date,
	trend_delta, is_trending, imdb_rating, imdb_votes, tmdb_rating, tmdb_votes,
	trakt_rating, trakt_votes, created_at, updated_at`

const itemColumnsM = `m.id, m.kind, m.title, m.sort_title, m.year, m.overview, m.poster_url, m.popularity,
	m.release_date, m.streaming_date, m.movie_status, m.show_status, m.total_seasons, m.last_air_date,
	m.trend_delta, m.is_trending, m.imdb_rating, m.imdb_votes, m.tmdb_rating, m.tmdb_votes,
	m.trakt_rating, m.trakt_votes, m.created_at, m.updated_at`

// Service provides read/write access to the media items table.
type Service struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewService creates a new library service.
func NewService(db *sql.DB, logger zerolog.Logger) *Service {
	return &Service{
		db:     db,
		logger: logger.With().Str("component", "library").Logger(),
	}
}

// Get retrieves a catalog item by ID.
func (s *Service) Get(ctx context.Context, id int64) (*Item, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM media_items WHERE id = ?`, id)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// List returns catalog items with optional kind and title filtering.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]*Item, error) {
	if opts.PageSize <= 0 {
		opts.PageSize = 100
	}
	if opts.Page <= 0 {
		opts.Page = 1
	}

	var conds []string
	var args []any
	if opts.Kind != "" {
		conds = append(conds, "kind = ?")
		args = append(args, string(opts.Kind))
	}
	if opts.Search != "" {
		conds = append(conds, "(title LIKE ? OR sort_title LIKE ?)")
		term := "%" + opts.Search + "%"
		args = append(args, term, term)
	}

	query := `SELECT ` + itemColumns + ` FROM media_items`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY sort_title LIMIT ? OFFSET ?"
	args = append(args, opts.PageSize, (opts.Page-1)*opts.PageSize)

	return s.queryItems(ctx, query, args...)
}

// ListForContext returns the items backing one list page. Each context maps
// to its own selection so the decision engine sees the collection the client
// is actually rendering.
func (s *Service) ListForContext(ctx context.Context, listCtx catalog.ListContext, now time.Time, limit int) ([]*Item, error) {
	if limit <= 0 {
		limit = 50
	}

	switch listCtx {
	case catalog.ContextTrendingList:
		return s.queryItems(ctx, `SELECT `+itemColumns+` FROM media_items
			WHERE is_trending = 1 ORDER BY popularity DESC LIMIT ?`, limit)
	case catalog.ContextNewReleases:
		cutoff := now.Add(-catalog.NewReleaseWindow)
		return s.queryItems(ctx, `SELECT `+itemColumns+` FROM media_items
			WHERE release_date IS NOT NULL AND release_date >= ? AND release_date <= ?
			ORDER BY release_date DESC LIMIT ?`, cutoff, now, limit)
	case catalog.ContextInTheaters:
		return s.queryItems(ctx, `SELECT `+itemColumns+` FROM media_items
			WHERE kind = 'movie' AND movie_status = 'in_theaters'
			ORDER BY popularity DESC LIMIT ?`, limit)
	case catalog.ContextNewOnStreaming:
		cutoff := now.Add(-catalog.NewReleaseWindow)
		return s.queryItems(ctx, `SELECT `+itemColumns+` FROM media_items
			WHERE streaming_date IS NOT NULL AND streaming_date >= ? AND streaming_date <= ?
			ORDER BY streaming_date DESC LIMIT ?`, cutoff, now, limit)
	default:
		return s.queryItems(ctx, `SELECT `+itemColumns+` FROM media_items
			ORDER BY popularity DESC LIMIT ?`, limit)
	}
}

// ListForUser returns the items a user has saved state for, optionally
// restricted to one state (e.g. only "watching" for the continue list).
func (s *Service) ListForUser(ctx context.Context, userID int64, state catalog.WatchState) ([]*Item, error) {
	query := `SELECT ` + itemColumnsM + ` FROM media_items m
		JOIN user_items u ON u.item_id = m.id
		WHERE u.user_id = ?`
	args := []any{userID}
	if state != "" {
		query += " AND u.state = ?"
		args = append(args, string(state))
	}
	query += " ORDER BY u.updated_at DESC"

	return s.queryItems(ctx, query, args...)
}

// Create inserts a catalog item and returns it.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Item, error) {
	if input.SortTitle == "" {
		input.SortTitle = strings.ToLower(input.Title)
	}

	res, err := s.db.ExecContext(ctx, `INSERT INTO media_items
		(kind, title, sort_title, year, overview, poster_url, popularity,
		 release_date, streaming_date, movie_status, show_status, total_seasons, last_air_date,
		 imdb_rating, imdb_votes, tmdb_rating, tmdb_votes, trakt_rating, trakt_votes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(input.Kind), input.Title, input.SortTitle, nullInt(input.Year),
		input.Overview, input.PosterURL, input.Popularity,
		nullTime(input.ReleaseDate), nullTime(input.StreamingAt),
		nullStr(string(input.MovieStatus)), nullStr(string(input.ShowStatus)),
		input.TotalSeasons, nullTime(input.LastAirDate),
		nullSampleRating(input.Ratings.IMDb), nullSampleVotes(input.Ratings.IMDb),
		nullSampleRating(input.Ratings.TMDB), nullSampleVotes(input.Ratings.TMDB),
		nullSampleRating(input.Ratings.Trakt), nullSampleVotes(input.Ratings.Trakt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read insert id: %w", err)
	}

	s.logger.Debug().Int64("itemId", id).Str("title", input.Title).Msg("Created catalog item")
	return s.Get(ctx, id)
}

// UpdateTrend writes the trend delta and trending flag for one item.
func (s *Service) UpdateTrend(ctx context.Context, id int64, delta catalog.TrendDirection, trending bool) error {
	_, err := s.db.ExecContext(ctx, `UPDATE media_items
		SET trend_delta = ?, is_trending = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		nullStr(string(delta)), boolInt(trending), id)
	if err != nil {
		return fmt.Errorf("failed to update trend: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Service) queryItems(ctx context.Context, query string, args ...any) ([]*Item, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanItem(r rowScanner) (*Item, error) {
	var (
		item        Item
		kind        string
		year        sql.NullInt64
		overview    sql.NullString
		posterURL   sql.NullString
		releaseDate sql.NullTime
		streamingAt sql.NullTime
		movieStatus sql.NullString
		showStatus  sql.NullString
		lastAirDate sql.NullTime
		trendDelta  sql.NullString
		isTrending  int64
		imdbRating  sql.NullFloat64
		imdbVotes   sql.NullInt64
		tmdbRating  sql.NullFloat64
		tmdbVotes   sql.NullInt64
		traktRating sql.NullFloat64
		traktVotes  sql.NullInt64
	)

	err := r.Scan(&item.ID, &kind, &item.Title, &item.SortTitle, &year, &overview,
		&posterURL, &item.Popularity, &releaseDate, &streamingAt, &movieStatus,
		&showStatus, &item.TotalSeasons, &lastAirDate, &trendDelta, &isTrending,
		&imdbRating, &imdbVotes, &tmdbRating, &tmdbVotes, &traktRating, &traktVotes,
		&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}

	item.Kind = catalog.MediaKind(kind)
	item.Year = int(year.Int64)
	item.Overview = overview.String
	item.PosterURL = posterURL.String
	if releaseDate.Valid {
		item.ReleaseDate = &releaseDate.Time
	}
	if streamingAt.Valid {
		item.StreamingAt = &streamingAt.Time
	}
	item.MovieStatus = catalog.MovieStatus(movieStatus.String)
	item.ShowStatus = catalog.ShowStatus(showStatus.String)
	if lastAirDate.Valid {
		item.LastAirDate = &lastAirDate.Time
	}
	item.TrendDelta = catalog.TrendDirection(trendDelta.String)
	item.IsTrending = isTrending != 0
	item.Ratings = catalog.ExternalRatings{
		IMDb:  toSample(imdbRating, imdbVotes),
		TMDB:  toSample(tmdbRating, tmdbVotes),
		Trakt: toSample(traktRating, traktVotes),
	}
	return &item, nil
}

func toSample(rating sql.NullFloat64, votes sql.NullInt64) *catalog.RatingSample {
	if !rating.Valid {
		return nil
	}
	return &catalog.RatingSample{Rating: rating.Float64, VoteCount: int(votes.Int64)}
}

func nullInt(v int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(v), Valid: v != 0}
}

func nullStr(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullSampleRating(s *catalog.RatingSample) sql.NullFloat64 {
	if s == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: s.Rating, Valid: true}
}

func nullSampleVotes(s *catalog.RatingSample) sql.NullInt64 {
	if s == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(s.VoteCount), Valid: true}
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
