package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/Ghhost99/Recovery-Guard-BACKEND/internal/config"
	"github.com/Ghhost99/Recovery-Guard-BACKEND/internal/db"
	"github.com/Ghhost99/Recovery-Guard-BACKEND/internal/filestore"
	"github.com/Ghhost99/Recovery-Guard-BACKEND/internal/http/handlers"
	"github.com/Ghhost99/Recovery-Guard-BACKEND/internal/http/middleware"
	"github.com/Ghhost99/Recovery-Guard-BACKEND/internal/service"

	_ "github.com/Ghhost99/Recovery-Guard-BACKEND/docs"
)

func Router(cfg config.Config, store *db.Store, files filestore.Store, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.MaxMultipartMemory = cfg.MaxUploadSizeMB << 20

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-Id", "X-User-Role", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	policy, ok := service.ParseAgentDeletePolicy(cfg.AgentDeletePolicy)
	if !ok {
		policy = service.DeleteOwnerOnly
		logger.Warn().Str("value", cfg.AgentDeletePolicy).Msg("unknown agent delete policy, using owner_only")
	}

	h := &handlers.Handler{
		Cases:     &service.CaseService{Store: store, DeletePolicy: policy, Logger: logger},
		Analytics: &service.AnalyticsService{Store: store, Logger: logger},
		Files:     files,
		DB:        store,
		Validator: validator.New(),
		Logger:    logger,
	}

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	api.Use(middleware.Actor())
	{
		api.GET("/cases", h.CasesList)
		api.GET("/cases/stats", h.CaseStats)
		api.GET("/cases/:id", h.CaseDetails)
		api.POST("/cases/general", h.CreateGeneralCase)
		api.POST("/cases/crypto", h.CreateCryptoCase)
		api.POST("/cases/social-media", h.CreateSocialMediaCase)
		api.POST("/cases/money-recovery", h.CreateMoneyRecoveryCase)
		api.PUT("/cases/:id", h.CaseUpdate)
		api.DELETE("/cases/:id", h.CaseDelete)
		api.POST("/cases/:id/assign", h.CaseAssign)
		api.POST("/cases/:id/close", h.CaseClose)
		api.POST("/cases/:id/documents", h.DocumentsAttach)
		api.GET("/cases/:id/documents", h.DocumentsList)
		api.DELETE("/cases/:id/documents/:docId", h.DocumentDelete)

		api.POST("/dashboard", h.Dashboard)
		api.GET("/stats/types", h.KindStats)
		api.GET("/stats/types/:kind", h.KindStats)
		api.GET("/analytics", h.AnalyticsReport)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
