package server

import (
	"fmt"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rheannec/planora/config"
	"github.com/rheannec/planora/internal/handlers"
	"github.com/rheannec/planora/internal/middleware"
	"github.com/xendit/xendit-go/v6"
	"gorm.io/gorm"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	xndCfg, err := config.LoadXenditConfig()
	if err != nil {
		return fmt.Errorf("failed to load xendit config: %v", err)
	}

	xenditClient, err := config.InitXenditClient(xndCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize xendit client: %v", err)
	}

	r := gin.Default()

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{frontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	setupRoutes(r, db, xenditClient)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

func setupRoutes(r *gin.Engine, db *gorm.DB, xenditClient *xendit.APIClient) {
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.XenditMiddleware(xenditClient))

	public := r.Group("/v1")
	{
		public.POST("/register", handlers.Register)
		public.POST("/login", handlers.Login)

		public.GET("/templates", handlers.ListTemplates)

		eventPublic := public.Group("/events")
		{
			eventPublic.GET("", handlers.ListEvents)
			eventPublic.GET("/:id", handlers.GetEvent)
		}

		public.POST("/payments/notification", handlers.PaymentNotification)
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		protected.GET("/profile", handlers.GetProfile)

		eventProtected := protected.Group("/events")
		{
			eventProtected.POST("", handlers.CreateEvent)
			eventProtected.PUT("/:id", handlers.UpdateEvent)
			eventProtected.DELETE("/:id", handlers.DeleteEvent)
			eventProtected.POST("/:id/participants", handlers.AddParticipant)
			eventProtected.PUT("/:id/participants/:userId", handlers.UpdateParticipantStatus)
			eventProtected.POST("/:id/gifts", handlers.AddGift)
		}

		giftProtected := protected.Group("/gifts")
		{
			giftProtected.POST("/:id/reserve", handlers.ReserveGift)
			giftProtected.POST("/:id/contribute", handlers.ContributeGift)
		}

		draftProtected := protected.Group("/drafts")
		{
			draftProtected.GET("", handlers.ListDrafts)
			draftProtected.PUT("", handlers.SaveDraft)
			draftProtected.GET("/:id", handlers.GetDraft)
			draftProtected.DELETE("/:id", handlers.DeleteDraft)
			draftProtected.POST("/:id/finalize", handlers.FinalizeDraft)
		}

		protected.POST("/templates/:id/draft", handlers.CreateDraftFromTemplate)

		stepProtected := protected.Group("/steps")
		{
			stepProtected.GET("/next", handlers.NextStep)
			stepProtected.GET("/back", handlers.BackStep)
		}
	}
}
