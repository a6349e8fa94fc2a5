package domain

import (
	"time"

	authdomain "vidtube-backend/internal/auth/domain"
)

type Subscription struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	SubscriberID string    `json:"subscriberId" gorm:"uniqueIndex:idx_subscriber_channel"`
	ChannelID    string    `json:"channelId" gorm:"uniqueIndex:idx_subscriber_channel"`
	CreatedAt    time.Time `json:"created_at"`
}

// WatchEvent is one entry in a user's append-only watch history. VideoID is
// an opaque content identifier; the video catalog lives outside this service.
type WatchEvent struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"userId" gorm:"index"`
	VideoID   string    `json:"videoId"`
	CreatedAt time.Time `json:"watchedAt"`
}

// ChannelProfile is the aggregated public view of a user's channel.
type ChannelProfile struct {
	authdomain.PublicUser
	SubscriberCount   int64 `json:"subscriberCount"`
	SubscribedToCount int64 `json:"channelsSubscribedToCount"`
	IsSubscribed      bool  `json:"isSubscribed"`
}
