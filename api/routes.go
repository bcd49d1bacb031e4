package api

import (
	"github.com/go-chi/chi/v5"
)

// setupFrontendRoutes sets up all routes with authentication
func setupFrontendRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		//r.Use(authMiddleware.authenticate)
		r.Use(ColoredHTTPLoggingMiddleware)

		// Project Handler endpoints
		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Get("/project/{projectID}", handlers.projectHandler.getProject())
		r.Post("/project", handlers.projectHandler.createProject())

		// Research Lab Handler endpoints
		r.Get("/research-labs", handlers.researchLabHandler.getResearchLabs())
		r.Get("/research-lab/{labID}", handlers.researchLabHandler.getResearchLabDetail())
		r.Get("/departments", handlers.researchLabHandler.getDepartments())
		r.Get("/research-labs/statistics", handlers.researchLabHandler.getLabStatistics())

		// Matching endpoints
		r.Post("/research-labs/match-project", handlers.researchLabHandler.matchProject())
		r.Get("/research-labs/project/{projectID}/matches", handlers.researchLabHandler.getMatchingHistory())
		r.Put("/research-labs/matching/{matchingID}/status", handlers.researchLabHandler.updateMatchingStatus())
		r.Get("/research-labs/recommendations/{projectID}", handlers.researchLabHandler.getRecommendations())
	})
}
