package api

func (s *Server) setupRoutes() {
	v1 := s.echo.Group("/api/v1")

	// Auth
	v1.POST("/auth/register", s.Register)
	v1.POST("/auth/login", s.Login)

	// Catalog browsing: anonymous works, a token adds per-user enrichment.
	catalogGroup := v1.Group("/catalog", s.optionalAuth())
	catalogGroup.GET("/items", s.ListItems)
	catalogGroup.GET("/items/:id", s.GetItem)
	catalogGroup.GET("/lists/:context", s.ListForContext)

	// Per-user collections and watch state require a login.
	userGroup := v1.Group("/catalog", s.requireAuth())
	userGroup.GET("/library", s.UserLibrary)
	userGroup.GET("/continue", s.ContinueWatching)

	stateGroup := v1.Group("/items", s.requireAuth())
	stateGroup.PUT("/:id/state", s.SetItemState)
	stateGroup.GET("/:id/state", s.GetItemState)
	stateGroup.DELETE("/:id/state", s.DeleteItemState)
}
