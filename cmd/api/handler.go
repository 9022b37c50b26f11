package api

import (
	"context"
	"fmt"
	"log"
	"sync"

	projectDelivery "bidbuddy-backend/internal/project/delivery"
	projectRepo "bidbuddy-backend/internal/project/repository"
	projectUsecase "bidbuddy-backend/internal/project/usecase"
	proposalDelivery "bidbuddy-backend/internal/proposal/delivery"
	proposalRepo "bidbuddy-backend/internal/proposal/repository"
	proposalUsecase "bidbuddy-backend/internal/proposal/usecase"
	webhookDelivery "bidbuddy-backend/internal/webhook/delivery"
	"bidbuddy-backend/internal/workflow"
	"bidbuddy-backend/pkg/agentmail"
	"bidbuddy-backend/pkg/config"
	"bidbuddy-backend/pkg/drive"
	"bidbuddy-backend/pkg/llm"
	"bidbuddy-backend/pkg/reducto"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
)

type Handler struct {
	config          *config.Config
	projectHandler  *projectDelivery.ProjectHandler
	proposalHandler *proposalDelivery.ProposalHandler
	webhookHandler  *webhookDelivery.WebhookHandler
}

// profileCredentials adapts the profile repository to the Drive uploader's
// credential source, keyed by the primary user's email.
type profileCredentials struct {
	profiles projectRepo.ProfileRepository
	email    string

	mu     sync.Mutex
	userID string
}

func (p *profileCredentials) Credentials(ctx context.Context) (*drive.Credentials, error) {
	profile, err := p.profiles.FindByEmail(p.email)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("no profile found for %s", p.email)
	}

	p.mu.Lock()
	p.userID = profile.ID
	p.mu.Unlock()

	return &drive.Credentials{
		AccessToken:  profile.GoogleAccessToken,
		RefreshToken: profile.GoogleRefreshToken,
		RootFolderID: profile.DriveRootFolderID,
	}, nil
}

func (p *profileCredentials) SaveTokens(token *oauth2.Token) error {
	p.mu.Lock()
	userID := p.userID
	p.mu.Unlock()
	if userID == "" {
		return fmt.Errorf("no profile loaded, cannot persist tokens")
	}

	if token.RefreshToken != "" {
		return p.profiles.UpdateTokens(userID, token.AccessToken, token.RefreshToken)
	}
	return p.profiles.UpdateAccessToken(userID, token.AccessToken)
}

// Deps bundles the repositories the handler wires together.
type Deps struct {
	Profiles      projectRepo.ProfileRepository
	Projects      projectRepo.ProjectRepository
	ProjectTrades projectRepo.ProjectTradeRepository
	Trades        proposalRepo.TradeRepository
	Proposals     proposalRepo.ProposalRepository
	Extractions   proposalRepo.DocumentExtractionRepository
	Stats         proposalRepo.StatsRepository
}

func NewHandler(cfg *config.Config, deps Deps) *Handler {
	// Google Drive access for folder sync and proposal filing
	driveService := drive.NewService(cfg.GoogleClientID, cfg.GoogleClientSecret)
	creds := &profileCredentials{profiles: deps.Profiles, email: cfg.PrimaryUserEmail}
	uploader := drive.NewUploader(driveService, creds)

	driveSyncUc := projectUsecase.NewDriveSyncUsecase(deps.Profiles, deps.Projects, driveService)
	folderSyncUc := proposalUsecase.NewFolderSync(deps.Profiles, deps.Projects, deps.ProjectTrades, deps.Trades, deps.Proposals, deps.Stats, driveService)
	tracker := proposalUsecase.NewTracker(deps.Trades, deps.Projects, deps.ProjectTrades, deps.Proposals, deps.Extractions, deps.Stats)

	// LLM classifier provider
	completer, err := llm.NewCompleter(llm.Config{
		Provider:      llm.ProviderType(cfg.AIProvider),
		GeminiAPIKey:  cfg.GeminiAPIKey,
		OllamaBaseURL: cfg.OllamaBaseURL,
		OllamaModel:   cfg.OllamaModel,
	})
	if err != nil {
		log.Fatal("Failed to initialize LLM provider:", err)
	}
	log.Printf("LLM classifier initialized with provider: %s", cfg.AIProvider)

	mailClient := agentmail.NewClient(cfg.AgentMailAPIKey, cfg.AgentMailBaseURL)
	reductoClient := reducto.NewClient(cfg.ReductoAPIKey, cfg.ReductoBaseURL, cfg.ReductoTimeout)

	// The pipeline runs on behalf of the primary user. The profile row may
	// not exist until Drive is connected, so fall back to the email.
	userID := cfg.PrimaryUserEmail
	if profile, err := deps.Profiles.FindByEmail(cfg.PrimaryUserEmail); err == nil && profile != nil {
		userID = profile.ID
	} else {
		log.Printf("[WARN] no profile for %s yet, using email as user id until Drive is connected", cfg.PrimaryUserEmail)
	}

	classifier := workflow.NewClassifier(mailClient, completer, cfg.ClassifierMaxRetries)
	processor := workflow.NewAttachmentProcessor(mailClient, reductoClient, uploader, deps.Projects, tracker)
	forwarder := workflow.NewForwarder(mailClient, cfg.AdminEmail)
	pipeline := workflow.New(mailClient, classifier, processor, forwarder, tracker, userID)

	return &Handler{
		config:          cfg,
		projectHandler:  projectDelivery.NewProjectHandler(deps.Projects, deps.ProjectTrades, deps.Profiles, driveSyncUc),
		proposalHandler: proposalDelivery.NewProposalHandler(deps.Trades, deps.Proposals, deps.Stats, folderSyncUc),
		webhookHandler:  webhookDelivery.NewWebhookHandler(pipeline),
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()
	gin.SetMode(gin.ReleaseMode)

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.config, h.projectHandler, h.proposalHandler, h.webhookHandler)

	return r.Run(addr)
}
