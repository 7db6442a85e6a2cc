package server

import (
	"context"

	"vita-server/aiclient"
	"vita-server/confs"
	"vita-server/db"
	"vita-server/handlers"
	httpHandler "vita-server/handlers/http"
	"vita-server/logger"
	"vita-server/repositories"
	"vita-server/services"
	"vita-server/usecases"
	"vita-server/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Server struct {
	app *gin.Engine
	db  db.Database
	log *logger.Logger
}

func NewServer(database db.Database, log *logger.Logger) *Server {
	return &Server{
		app: gin.Default(),
		db:  database,
		log: log,
	}
}

func (s *Server) Start() error {
	// Setup CORS middleware
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true // the web client is served from another origin
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	s.app.Use(cors.New(config))

	// Setup healthcheck route
	s.app.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "OK",
		})
	})

	// Initialize repositories
	userRepo := repositories.NewUserPgRepository(s.db)
	profileRepo := repositories.NewProfilePgRepository(s.db)
	historyRepo := repositories.NewHistoryPgRepository(s.db)
	goalRepo := repositories.NewGoalPgRepository(s.db)
	groupRepo := repositories.NewGroupPgRepository(s.db)
	rewardRepo := repositories.NewRewardPgRepository(s.db)

	// Leaderboard service: Redis sorted set when configured, in-memory otherwise
	leaderboardSvc := services.NewLeaderboardService(confs.RedisURL(), profileRepo, s.log)
	leaderboardSvc.Start()

	// Realtime push
	manager := ws.NewManager()
	eventsHandler := handlers.NewEventsHandler(manager, s.log)

	// Initialize use cases
	accountUC := usecases.NewAccountUseCase(userRepo, profileRepo, confs.JWTSecret())
	syncUC := usecases.NewSyncUseCase(profileRepo, historyRepo, goalRepo, groupRepo, leaderboardSvc, eventsHandler)
	groupUC := usecases.NewGroupUseCase(groupRepo)
	rewardUC := usecases.NewRewardUseCase(rewardRepo, profileRepo, leaderboardSvc)
	leaderboardUC := usecases.NewLeaderboardUseCase(leaderboardSvc, userRepo, profileRepo, groupRepo)
	adminUC := usecases.NewAdminUseCase(userRepo, profileRepo, historyRepo)

	if err := rewardUC.SeedDefaults(); err != nil {
		s.log.Warn("could not seed reward catalog", "error", err)
	}

	// Initialize handlers
	syncHandler := httpHandler.NewSyncHandler(syncUC, accountUC, groupUC, rewardUC, leaderboardUC, adminUC, s.log)

	// Setup API routes
	api := s.app.Group("/api/v1")
	{
		// The action endpoint plus the once-per-login bulk fetch
		api.POST("/sync", syncHandler.HandleAction)
		api.GET("/sync", syncHandler.HandleFetchAll)

		// Generative AI analyses; disabled cleanly when no key is set
		ai := api.Group("/ai")
		if key := confs.GeminiAPIKey(); key != "" {
			aiClient, err := aiclient.New(context.Background(), key, "", s.log)
			if err != nil {
				return err
			}
			aiHandler := httpHandler.NewAIHandler(aiClient, s.log)
			ai.POST("/food-image", aiHandler.AnalyzeFoodImage)
			ai.POST("/food-text", aiHandler.AnalyzeFoodText)
			ai.POST("/activity", aiHandler.ExtractActivity)
			ai.POST("/coaching", aiHandler.CoachingAdvice)
			ai.POST("/meal-plan", aiHandler.MealPlan)
		} else {
			s.log.Warn("GEMINI_API_KEY not set, AI routes disabled")
			ai.POST("/food-image", httpHandler.AIUnavailable)
			ai.POST("/food-text", httpHandler.AIUnavailable)
			ai.POST("/activity", httpHandler.AIUnavailable)
			ai.POST("/coaching", httpHandler.AIUnavailable)
			ai.POST("/meal-plan", httpHandler.AIUnavailable)
		}

		// Ops endpoints
		api.GET("/leaderboard/stats", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "success", "stats": leaderboardSvc.Stats()})
		})
		api.GET("/users/connected", eventsHandler.GetConnectedUsers)
	}

	s.app.GET("/ws", eventsHandler.HandleWS)

	return s.app.Run(confs.ListenAddr())
}
