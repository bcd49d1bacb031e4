package api

import (
	"github.com/sejonghub/startup-hub-backend/database"
	"github.com/sejonghub/startup-hub-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, c map[string]string) *routeHandlers {
	matchingService := services.NewLabMatchingService(database)

	return &routeHandlers{
		projectHandler:     newProjectHandler(database.ProjectRepo()),
		researchLabHandler: newResearchLabHandler(database, matchingService, c),
	}
}
