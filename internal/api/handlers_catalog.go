package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/showdeck/showdeck/internal/catalog"
	"github.com/showdeck/showdeck/internal/library"
)

// ListResponse wraps an enriched item list.
type ListResponse struct {
	Items       []catalog.EnrichedItem `json:"items"`
	ListContext catalog.ListContext    `json:"listContext"`
}

// ListItems returns the browse catalog with default-context enrichment.
// GET /api/v1/catalog/items
func (s *Server) ListItems(c echo.Context) error {
	ctx := c.Request().Context()

	opts := library.ListOptions{
		Kind:   catalog.MediaKind(c.QueryParam("kind")),
		Search: c.QueryParam("search"),
	}
	opts.Page, _ = strconv.Atoi(c.QueryParam("page"))
	opts.PageSize, _ = strconv.Atoi(c.QueryParam("pageSize"))

	items, err := s.libraryService.List(ctx, opts)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list catalog items")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list items")
	}

	return s.respondEnriched(c, items, catalog.ContextDefault)
}

// GetItem returns one enriched item for a detail view.
// GET /api/v1/catalog/items/:id
func (s *Server) GetItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid item id")
	}

	item, err := s.libraryService.Get(ctx, id)
	if err != nil {
		if errors.Is(err, library.ErrItemNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "item not found")
		}
		s.logger.Error().Err(err).Int64("itemId", id).Msg("Failed to get catalog item")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to get item")
	}

	enriched, err := s.enricher.EnrichItem(ctx, item.CatalogItem(), currentUserID(c), time.Now())
	if err != nil {
		s.logger.Error().Err(err).Int64("itemId", id).Msg("Failed to enrich catalog item")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to enrich item")
	}

	return c.JSON(http.StatusOK, enriched)
}

// ListForContext returns one of the merchandised list pages.
// GET /api/v1/catalog/lists/:context
func (s *Server) ListForContext(c echo.Context) error {
	ctx := c.Request().Context()
	now := time.Now()

	listCtx := catalog.ParseListContext(c.Param("context"))
	switch listCtx {
	case catalog.ContextUserLibrary, catalog.ContextContinueList:
		// Per-user lists have dedicated authenticated endpoints.
		return echo.NewHTTPError(http.StatusBadRequest, "unsupported list context")
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	items, err := s.libraryService.ListForContext(ctx, listCtx, now, limit)
	if err != nil {
		s.logger.Error().Err(err).Str("listContext", string(listCtx)).Msg("Failed to list context items")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list items")
	}

	return s.respondEnriched(c, items, listCtx)
}

// UserLibrary returns everything the user has saved, in library context.
// GET /api/v1/catalog/library
func (s *Server) UserLibrary(c echo.Context) error {
	items, err := s.libraryService.ListForUser(c.Request().Context(), currentUserID(c), "")
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list user library")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list library")
	}

	return s.respondEnriched(c, items, catalog.ContextUserLibrary)
}

// ContinueWatching returns the user's in-progress items.
// GET /api/v1/catalog/continue
func (s *Server) ContinueWatching(c echo.Context) error {
	items, err := s.libraryService.ListForUser(c.Request().Context(), currentUserID(c), catalog.WatchStateWatching)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list continue watching")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list items")
	}

	return s.respondEnriched(c, items, catalog.ContextContinueList)
}

func (s *Server) respondEnriched(c echo.Context, items []*library.Item, listCtx catalog.ListContext) error {
	catalogItems := make([]catalog.Item, 0, len(items))
	for _, item := range items {
		catalogItems = append(catalogItems, item.CatalogItem())
	}

	enriched, err := s.enricher.EnrichList(c.Request().Context(), catalogItems, currentUserID(c), listCtx, time.Now())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to enrich item list")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to enrich items")
	}

	return c.JSON(http.StatusOK, ListResponse{Items: enriched, ListContext: listCtx})
}
