package usecase

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	authrepo "vidtube-backend/internal/auth/repository"
	"vidtube-backend/internal/channel/domain"
	"vidtube-backend/internal/channel/repository"
	"vidtube-backend/pkg/response"
)

const defaultHistoryLimit = 50

// ChannelUsecase serves the channel profile and watch history read model.
type ChannelUsecase interface {
	Profile(ctx context.Context, username, viewerID string) (*domain.ChannelProfile, error)
	ToggleSubscription(ctx context.Context, viewerID, channelUsername string) (bool, error)
	RecordWatch(ctx context.Context, userID, videoID string) error
	History(ctx context.Context, userID string, limit int) ([]domain.WatchEvent, error)
}

type channelUsecase struct {
	channelRepo repository.ChannelRepository
	userRepo    authrepo.UserRepository
	logger      *zap.Logger
}

func NewChannelUsecase(channelRepo repository.ChannelRepository, userRepo authrepo.UserRepository, logger *zap.Logger) ChannelUsecase {
	return &channelUsecase{
		channelRepo: channelRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

func (u *channelUsecase) Profile(ctx context.Context, username, viewerID string) (*domain.ChannelProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, response.NewApiError(http.StatusBadRequest, "username is required")
	}

	user, err := u.userRepo.FindByUsernameOrEmail(ctx, username, "")
	if err != nil {
		u.logger.Error("channel profile: lookup failed", zap.Error(err))
		return nil, response.NewApiError(http.StatusInternalServerError, "Something went wrong while fetching channel")
	}
	if user == nil {
		return nil, response.NewApiError(http.StatusNotFound, "channel does not exist")
	}

	subscribers, err := u.channelRepo.CountSubscribers(ctx, user.ID)
	if err != nil {
		return nil, u.internal("counting subscribers", err)
	}
	subscribedTo, err := u.channelRepo.CountSubscribedTo(ctx, user.ID)
	if err != nil {
		return nil, u.internal("counting subscriptions", err)
	}
	isSubscribed, err := u.channelRepo.IsSubscribed(ctx, viewerID, user.ID)
	if err != nil {
		return nil, u.internal("checking subscription", err)
	}

	return &domain.ChannelProfile{
		PublicUser:        *user.Public(),
		SubscriberCount:   subscribers,
		SubscribedToCount: subscribedTo,
		IsSubscribed:      isSubscribed,
	}, nil
}

// ToggleSubscription flips the viewer's subscription to the channel and
// returns the resulting state (true = now subscribed).
func (u *channelUsecase) ToggleSubscription(ctx context.Context, viewerID, channelUsername string) (bool, error) {
	channelUsername = strings.ToLower(strings.TrimSpace(channelUsername))

	channel, err := u.userRepo.FindByUsernameOrEmail(ctx, channelUsername, "")
	if err != nil {
		return false, u.internal("looking up channel", err)
	}
	if channel == nil {
		return false, response.NewApiError(http.StatusNotFound, "channel does not exist")
	}
	if channel.ID == viewerID {
		return false, response.NewApiError(http.StatusBadRequest, "cannot subscribe to your own channel")
	}

	subscribed, err := u.channelRepo.IsSubscribed(ctx, viewerID, channel.ID)
	if err != nil {
		return false, u.internal("checking subscription", err)
	}

	if subscribed {
		if err := u.channelRepo.Unsubscribe(ctx, viewerID, channel.ID); err != nil {
			return false, u.internal("unsubscribing", err)
		}
		return false, nil
	}

	if err := u.channelRepo.Subscribe(ctx, viewerID, channel.ID); err != nil {
		return false, u.internal("subscribing", err)
	}
	return true, nil
}

func (u *channelUsecase) RecordWatch(ctx context.Context, userID, videoID string) error {
	if strings.TrimSpace(videoID) == "" {
		return response.NewApiError(http.StatusBadRequest, "videoId is required")
	}
	if err := u.channelRepo.AppendWatchEvent(ctx, userID, videoID); err != nil {
		return u.internal("recording watch event", err)
	}
	return nil
}

func (u *channelUsecase) History(ctx context.Context, userID string, limit int) ([]domain.WatchEvent, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	events, err := u.channelRepo.WatchHistory(ctx, userID, limit)
	if err != nil {
		return nil, u.internal("fetching watch history", err)
	}
	if events == nil {
		events = []domain.WatchEvent{}
	}
	return events, nil
}

func (u *channelUsecase) internal(op string, err error) *response.ApiError {
	u.logger.Error("channel usecase: "+op+" failed", zap.Error(err))
	return response.NewApiError(http.StatusInternalServerError, "Something went wrong")
}
