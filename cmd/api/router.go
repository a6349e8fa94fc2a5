package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authdelivery "vidtube-backend/internal/auth/delivery"
	authusecase "vidtube-backend/internal/auth/usecase"
	channeldelivery "vidtube-backend/internal/channel/delivery"
	channelusecase "vidtube-backend/internal/channel/usecase"
	"vidtube-backend/pkg/config"
)

func SetupRoutes(r *gin.Engine, authUc authusecase.AuthUsecase, channelUc channelusecase.ChannelUsecase, cfg *config.Config, logger *zap.Logger) {
	authHandler := authdelivery.NewAuthHandler(authUc, cfg, logger)
	channelHandler := channeldelivery.NewChannelHandler(channelUc)
	authenticated := authdelivery.AuthMiddleware(authUc, logger)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		users := api.Group("/users")
		{
			users.POST("/register", authHandler.Register)
			users.POST("/login", authHandler.Login)
			users.POST("/refresh-token", authHandler.RefreshToken)

			users.POST("/logout", authenticated, authHandler.Logout)
			users.POST("/change-password", authenticated, authHandler.ChangePassword)
			users.GET("/me", authenticated, authHandler.Me)
			users.PATCH("/update-account", authenticated, authHandler.UpdateAccount)
			users.PATCH("/avatar", authenticated, authHandler.UpdateAvatar)
			users.PATCH("/cover-image", authenticated, authHandler.UpdateCoverImage)

			users.GET("/c/:username", authenticated, channelHandler.Profile)
			users.POST("/c/:username/subscribe", authenticated, channelHandler.ToggleSubscription)
			users.GET("/history", authenticated, channelHandler.History)
			users.POST("/history/:videoId", authenticated, channelHandler.RecordWatch)
		}
	}
}
