package router

import (
	"time"

	"kokoro/config"
	"kokoro/internal/handler"
	"kokoro/internal/middleware"
	"kokoro/internal/repository"
	"kokoro/internal/service"
	"kokoro/internal/ws"
	"kokoro/pkg/cloudinary"
	"kokoro/pkg/llm"
	"kokoro/pkg/redact"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, cloud cloudinary.Client, provider llm.Provider) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	// Skip gin.Logger() to reduce log noise; use gin.Default() if you need request logging
	r.Use(middleware.RateLimit(middleware.NewRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	personaRepo := repository.NewPersonaRepository(db)
	characterRepo := repository.NewCharacterRepository(db)
	heartRepo := repository.NewHeartRepository(db)
	affinityRepo := repository.NewAffinityRepository(db)
	chatRepo := repository.NewChatRepository(db)

	chatHub := ws.NewChatHub()

	// Services
	authSvc := service.NewAuthService(cfg, userRepo)
	ledgerSvc := service.NewLedgerService(heartRepo)
	affinitySvc := service.NewAffinityService(affinityRepo, chatRepo)
	chatSvc := service.NewChatService(chatRepo, personaRepo, characterRepo, ledgerSvc, affinitySvc,
		provider, redact.Default, cfg.Hearts.MessagePrice)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	googleOAuthHandler := handler.NewGoogleOAuthHandler(cfg, authSvc)
	heartsHandler := handler.NewHeartsHandler(cfg, ledgerSvc)
	personaHandler := handler.NewPersonaHandler(personaRepo)
	characterHandler := handler.NewCharacterHandler(characterRepo)
	chatHandler := handler.NewChatHandler(chatSvc, affinitySvc, chatHub)
	adminHandler := handler.NewAdminHandler(ledgerSvc)
	uploadHandler := handler.NewUploadHandler(cloud)

	authMw := middleware.AuthRequired(&cfg.JWT)
	adminMw := middleware.AdminRequired(userRepo)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.GET("/google", googleOAuthHandler.Redirect)
			authGroup.GET("/google/callback", googleOAuthHandler.Callback)
		}

		api.GET("/characters", authMw, characterHandler.List)
		api.GET("/characters/:id", authMw, characterHandler.Get)

		me := api.Group("/me")
		me.Use(authMw)
		{
			me.GET("/hearts", heartsHandler.GetBalance)
			me.GET("/hearts/transactions", heartsHandler.GetTransactions)
			me.POST("/hearts/purchase", heartsHandler.Purchase)
			me.POST("/hearts/daily-bonus", heartsHandler.DailyBonus)
			me.GET("/personas", personaHandler.List)
			me.POST("/personas", personaHandler.Create)
			me.PUT("/personas/:id", personaHandler.Update)
			me.DELETE("/personas/:id", personaHandler.Delete)
			me.POST("/upload/avatar", uploadHandler.UploadAvatar)
		}

		chat := api.Group("/chat")
		chat.Use(authMw)
		{
			chat.POST("/messages", chatHandler.SendMessage)
			chat.GET("/:persona_id/:character_id/messages", chatHandler.GetMessages)
			chat.GET("/:persona_id/:character_id/favor", chatHandler.GetFavor)
		}

		admin := api.Group("/admin")
		admin.Use(authMw, adminMw)
		{
			admin.POST("/characters", characterHandler.Create)
			admin.PUT("/characters/:id", characterHandler.Update)
			admin.POST("/hearts/adjust", adminHandler.AdjustHearts)
		}
	}

	r.GET("/ws/chat", ws.UpgradeChatWS(&cfg.JWT, chatHub))

	return r
}
