package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"vidtube-backend/internal/channel/domain"
)

// memoryChannelRepository is the in-memory ChannelRepository used by tests.
type memoryChannelRepository struct {
	mu     sync.RWMutex
	subs   map[string]domain.Subscription // keyed subscriberID+"/"+channelID
	events []domain.WatchEvent
}

func NewMemoryChannelRepository() ChannelRepository {
	return &memoryChannelRepository{subs: make(map[string]domain.Subscription)}
}

func subKey(subscriberID, channelID string) string {
	return subscriberID + "/" + channelID
}

func (r *memoryChannelRepository) CountSubscribers(_ context.Context, channelID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, s := range r.subs {
		if s.ChannelID == channelID {
			count++
		}
	}
	return count, nil
}

func (r *memoryChannelRepository) CountSubscribedTo(_ context.Context, subscriberID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, s := range r.subs {
		if s.SubscriberID == subscriberID {
			count++
		}
	}
	return count, nil
}

func (r *memoryChannelRepository) IsSubscribed(_ context.Context, subscriberID, channelID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.subs[subKey(subscriberID, channelID)]
	return ok, nil
}

func (r *memoryChannelRepository) Subscribe(_ context.Context, subscriberID, channelID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := subKey(subscriberID, channelID)
	if _, ok := r.subs[key]; ok {
		return nil
	}
	r.subs[key] = domain.Subscription{
		ID:           uuid.New().String(),
		SubscriberID: subscriberID,
		ChannelID:    channelID,
		CreatedAt:    time.Now(),
	}
	return nil
}

func (r *memoryChannelRepository) Unsubscribe(_ context.Context, subscriberID, channelID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.subs, subKey(subscriberID, channelID))
	return nil
}

func (r *memoryChannelRepository) AppendWatchEvent(_ context.Context, userID, videoID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, domain.WatchEvent{
		ID:        uuid.New().String(),
		UserID:    userID,
		VideoID:   videoID,
		CreatedAt: time.Now(),
	})
	return nil
}

func (r *memoryChannelRepository) WatchHistory(_ context.Context, userID string, limit int) ([]domain.WatchEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Events are appended chronologically; walk backwards for newest-first.
	var out []domain.WatchEvent
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].UserID == userID {
			out = append(out, r.events[i])
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
