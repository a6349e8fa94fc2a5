package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authusecase "vidtube-backend/internal/auth/usecase"
	channelusecase "vidtube-backend/internal/channel/usecase"
	"vidtube-backend/pkg/config"
)

type Handler struct {
	authUsecase    authusecase.AuthUsecase
	channelUsecase channelusecase.ChannelUsecase
	config         *config.Config
	logger         *zap.Logger
}

func NewHandler(authUc authusecase.AuthUsecase, channelUc channelusecase.ChannelUsecase, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		authUsecase:    authUc,
		channelUsecase: channelUc,
		config:         cfg,
		logger:         logger,
	}
}

func (h *Handler) Start(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", h.config.CORSOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.authUsecase, h.channelUsecase, h.config, h.logger)

	return r.Run(addr)
}
