package repository

import (
	"context"

	"vidtube-backend/internal/channel/domain"
)

// ChannelRepository backs the channel profile and watch history read model.
type ChannelRepository interface {
	CountSubscribers(ctx context.Context, channelID string) (int64, error)
	CountSubscribedTo(ctx context.Context, subscriberID string) (int64, error)
	IsSubscribed(ctx context.Context, subscriberID, channelID string) (bool, error)
	Subscribe(ctx context.Context, subscriberID, channelID string) error
	Unsubscribe(ctx context.Context, subscriberID, channelID string) error
	AppendWatchEvent(ctx context.Context, userID, videoID string) error
	WatchHistory(ctx context.Context, userID string, limit int) ([]domain.WatchEvent, error)
}
