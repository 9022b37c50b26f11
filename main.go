package main

import (
	"log"

	api "bidbuddy-backend/cmd/api"
	projectRepo "bidbuddy-backend/internal/project/repository"
	proposalRepo "bidbuddy-backend/internal/proposal/repository"
	"bidbuddy-backend/pkg/config"
	"bidbuddy-backend/pkg/database"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize repositories (dependency injection)
	deps := api.Deps{
		Profiles:      projectRepo.NewGormProfileRepository(db),
		Projects:      projectRepo.NewGormProjectRepository(db),
		ProjectTrades: projectRepo.NewGormProjectTradeRepository(db),
		Trades:        proposalRepo.NewGormTradeRepository(db),
		Proposals:     proposalRepo.NewGormProposalRepository(db),
		Extractions:   proposalRepo.NewGormDocumentExtractionRepository(db),
		Stats:         proposalRepo.NewGormStatsRepository(db),
	}

	// Initialize HTTP handler
	handler := api.NewHandler(cfg, deps)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
