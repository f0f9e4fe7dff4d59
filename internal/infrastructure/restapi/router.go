package restapi

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"wallet_client/internal/pkg/utils"
)

// SetupRouter configures the gin router for the wallet process: the session
// and transfer endpoints under /api/v1, prometheus metrics and optionally the
// swagger UI.
func SetupRouter(sessionHandler *SessionHandler, transferHandler *TransferHandler, zapLogger *zap.Logger, swaggerEnabled bool) *gin.Engine {
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	router.Use(utils.ZapLoggerMiddleware(zapLogger))
	router.Use(gin.Recovery())

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/session", sessionHandler.GetSessionHandler)
		apiV1.POST("/session/connect", sessionHandler.ConnectHandler)
		apiV1.POST("/session/disconnect", sessionHandler.DisconnectHandler)

		apiV1.POST("/transfers", transferHandler.SubmitHandler)
		apiV1.POST("/transfers/validate", transferHandler.ValidateHandler)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if swaggerEnabled {
		router.StaticFile("/docs/swagger.yaml", "./docs/swagger.yaml")
		swaggerURL := ginSwagger.URL("/docs/swagger.yaml")
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, swaggerURL))
	}

	return router
}
