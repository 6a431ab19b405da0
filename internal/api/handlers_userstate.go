package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/showdeck/showdeck/internal/catalog"
	"github.com/showdeck/showdeck/internal/library"
	"github.com/showdeck/showdeck/internal/userstate"
)

type setStateRequest struct {
	State    catalog.WatchState `json:"state"`
	Progress map[string]any     `json:"progress,omitempty"`
	Rating   *float64           `json:"rating,omitempty"`
	Notes    string             `json:"notes,omitempty"`
}

var validWatchStates = map[catalog.WatchState]bool{
	catalog.WatchStateWatching:  true,
	catalog.WatchStateCompleted: true,
	catalog.WatchStatePlanned:   true,
	catalog.WatchStateDropped:   true,
}

// SetItemState upserts the user's watch state for an item.
// PUT /api/v1/items/:id/state
func (s *Server) SetItemState(c echo.Context) error {
	ctx := c.Request().Context()

	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid item id")
	}

	var req setStateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if !validWatchStates[req.State] {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid watch state")
	}

	if _, err := s.libraryService.Get(ctx, itemID); err != nil {
		if errors.Is(err, library.ErrItemNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "item not found")
		}
		s.logger.Error().Err(err).Int64("itemId", itemID).Msg("Failed to look up item")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to set state")
	}

	entry, err := s.stateService.Set(ctx, currentUserID(c), itemID, userstate.SetInput{
		State:    req.State,
		Progress: req.Progress,
		Rating:   req.Rating,
		Notes:    req.Notes,
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("itemId", itemID).Msg("Failed to set user state")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to set state")
	}

	return c.JSON(http.StatusOK, entry)
}

// GetItemState returns the user's watch state for an item.
// GET /api/v1/items/:id/state
func (s *Server) GetItemState(c echo.Context) error {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid item id")
	}

	entry, err := s.stateService.Get(c.Request().Context(), currentUserID(c), itemID)
	if err != nil {
		if errors.Is(err, userstate.ErrEntryNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "no state for item")
		}
		s.logger.Error().Err(err).Int64("itemId", itemID).Msg("Failed to get user state")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to get state")
	}

	return c.JSON(http.StatusOK, entry)
}

// DeleteItemState removes the user's watch state for an item.
// DELETE /api/v1/items/:id/state
func (s *Server) DeleteItemState(c echo.Context) error {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid item id")
	}

	if err := s.stateService.Delete(c.Request().Context(), currentUserID(c), itemID); err != nil {
		if errors.Is(err, userstate.ErrEntryNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "no state for item")
		}
		s.logger.Error().Err(err).Int64("itemId", itemID).Msg("Failed to delete user state")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete state")
	}

	return c.NoContent(http.StatusNoContent)
}
