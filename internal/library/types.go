package library

import (
	"time"

	"github.com/showdeck/showdeck/internal/catalog"
)

// Item is a catalog row: a movie or show with its already-materialized
// metadata, popularity/trend signals and per-provider ratings.
type Item struct {
	ID           int64                  `json:"id"`
	Kind         catalog.MediaKind      `json:"kind"`
	Title        string                 `json:"title"`
	SortTitle    string                 `json:"sortTitle"`
	Year         int                    `json:"year,omitempty"`
	Overview     string                 `json:"overview,omitempty"`
	PosterURL    string                 `json:"posterUrl,omitempty"`
	Popularity   float64                `json:"popularity"`
	ReleaseDate  *time.Time             `json:"releaseDate,omitempty"`
	StreamingAt  *time.Time             `json:"streamingAt,omitempty"`
	MovieStatus  catalog.MovieStatus    `json:"movieStatus,omitempty"`
	ShowStatus   catalog.ShowStatus     `json:"showStatus,omitempty"`
	TotalSeasons int                    `json:"totalSeasons,omitempty"`
	LastAirDate  *time.Time             `json:"lastAirDate,omitempty"`
	TrendDelta   catalog.TrendDirection `json:"trendDelta,omitempty"`
	IsTrending   bool                   `json:"isTrending"`
	Ratings      catalog.ExternalRatings `json:"-"`
	CreatedAt    time.Time              `json:"createdAt"`
	UpdatedAt    time.Time              `json:"updatedAt"`
}

// CatalogItem converts a library row to the engine's input shape.
func (i *Item) CatalogItem() catalog.Item {
	return catalog.Item{
		ID:           i.ID,
		Kind:         i.Kind,
		Title:        i.Title,
		Year:         i.Year,
		Overview:     i.Overview,
		PosterURL:    i.PosterURL,
		Popularity:   i.Popularity,
		ReleaseDate:  i.ReleaseDate,
		MovieStatus:  i.MovieStatus,
		ShowStatus:   i.ShowStatus,
		TotalSeasons: i.TotalSeasons,
		LastAirDate:  i.LastAirDate,
		TrendDelta:   i.TrendDelta,
		IsTrending:   i.IsTrending,
		Ratings:      i.Ratings,
	}
}

// CreateInput contains the fields for inserting a catalog item.
type CreateInput struct {
	Kind         catalog.MediaKind
	Title        string
	SortTitle    string
	Year         int
	Overview     string
	PosterURL    string
	Popularity   float64
	ReleaseDate  *time.Time
	StreamingAt  *time.Time
	MovieStatus  catalog.MovieStatus
	ShowStatus   catalog.ShowStatus
	TotalSeasons int
	LastAirDate  *time.Time
	Ratings      catalog.ExternalRatings
}

// ListOptions filters catalog listings.
type ListOptions struct {
	Kind     catalog.MediaKind // empty means both
	Search   string
	Page     int
	PageSize int
}
