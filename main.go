package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	api "vidtube-backend/cmd/api"
	authdomain "vidtube-backend/internal/auth/domain"
	authRepo "vidtube-backend/internal/auth/repository"
	"vidtube-backend/internal/auth/token"
	authUsecase "vidtube-backend/internal/auth/usecase"
	channeldomain "vidtube-backend/internal/channel/domain"
	channelRepo "vidtube-backend/internal/channel/repository"
	channelUsecase "vidtube-backend/internal/channel/usecase"
	"vidtube-backend/pkg/config"
	"vidtube-backend/pkg/database"
	"vidtube-backend/pkg/logger"
	"vidtube-backend/pkg/uploader"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	zapLogger, err := logger.New()
	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}
	defer zapLogger.Sync()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&authdomain.User{}, &channeldomain.Subscription{}, &channeldomain.WatchEvent{}); err != nil {
		zapLogger.Fatal("Failed to migrate database", zap.Error(err))
	}

	// Token codec with explicit, distinct signing domains
	codec, err := token.NewCodec(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenExpiry, cfg.RefreshTokenExpiry)
	if err != nil {
		zapLogger.Fatal("Failed to initialize token codec", zap.Error(err))
	}

	// Image host collaborator (S3-compatible)
	uploads, err := uploader.NewS3Uploader(context.Background(), cfg)
	if err != nil {
		zapLogger.Fatal("Failed to initialize uploader", zap.Error(err))
	}

	// Initialize repositories (dependency injection)
	userRepository := authRepo.NewUserRepository(db)
	channelRepository := channelRepo.NewChannelRepository(db)

	// Initialize use cases
	authUc := authUsecase.NewAuthUsecase(userRepository, codec, uploads, zapLogger)
	channelUc := channelUsecase.NewChannelUsecase(channelRepository, userRepository, zapLogger)

	// Initialize HTTP handler and start server
	handler := api.NewHandler(authUc, channelUc, cfg, zapLogger)

	zapLogger.Info("Server starting", zap.String("port", cfg.Port))
	if err := handler.Start(":" + cfg.Port); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}
