package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	authdomain "vidtube-backend/internal/auth/domain"
	authrepo "vidtube-backend/internal/auth/repository"
	"vidtube-backend/internal/channel/repository"
	"vidtube-backend/pkg/response"
)

func newChannelTest(t *testing.T) (ChannelUsecase, authrepo.UserRepository) {
	t.Helper()
	userRepo := authrepo.NewMemoryUserRepository()
	uc := NewChannelUsecase(repository.NewMemoryChannelRepository(), userRepo, zap.NewNop())
	return uc, userRepo
}

func addUser(t *testing.T, repo authrepo.UserRepository, username string) *authdomain.User {
	t.Helper()
	user := &authdomain.User{
		Username: username,
		Email:    username + "@x.com",
		FullName: username,
		Password: "hash",
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var apiErr *response.ApiError
	require.ErrorAs(t, err, &apiErr)
	return apiErr.StatusCode
}

func TestProfile_UnknownChannel(t *testing.T) {
	uc, _ := newChannelTest(t)

	_, err := uc.Profile(context.Background(), "ghost", "viewer")
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestToggleSubscriptionAndProfileCounts(t *testing.T) {
	uc, users := newChannelTest(t)
	ctx := context.Background()

	ana := addUser(t, users, "ana")
	bob := addUser(t, users, "bob")

	subscribed, err := uc.ToggleSubscription(ctx, bob.ID, "ana")
	require.NoError(t, err)
	assert.True(t, subscribed)

	profile, err := uc.Profile(ctx, "Ana", bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), profile.SubscriberCount)
	assert.Equal(t, int64(0), profile.SubscribedToCount)
	assert.True(t, profile.IsSubscribed)

	// Bob's own profile: one outgoing subscription, not subscribed to self.
	profile, err = uc.Profile(ctx, "bob", bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), profile.SubscriberCount)
	assert.Equal(t, int64(1), profile.SubscribedToCount)

	// Toggle back off.
	subscribed, err = uc.ToggleSubscription(ctx, bob.ID, "ana")
	require.NoError(t, err)
	assert.False(t, subscribed)

	profile, err = uc.Profile(ctx, "ana", bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), profile.SubscriberCount)
	assert.False(t, profile.IsSubscribed)

	_ = ana
}

func TestToggleSubscription_SelfRejected(t *testing.T) {
	uc, users := newChannelTest(t)
	ana := addUser(t, users, "ana")

	_, err := uc.ToggleSubscription(context.Background(), ana.ID, "ana")
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestWatchHistory_AppendOnlyNewestFirst(t *testing.T) {
	uc, users := newChannelTest(t)
	ctx := context.Background()
	ana := addUser(t, users, "ana")

	require.NoError(t, uc.RecordWatch(ctx, ana.ID, "v1"))
	require.NoError(t, uc.RecordWatch(ctx, ana.ID, "v2"))
	require.NoError(t, uc.RecordWatch(ctx, ana.ID, "v3"))

	events, err := uc.History(ctx, ana.ID, 0)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "v3", events[0].VideoID)
	assert.Equal(t, "v2", events[1].VideoID)
	assert.Equal(t, "v1", events[2].VideoID)

	events, err = uc.History(ctx, ana.ID, 2)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestRecordWatch_MissingVideoID(t *testing.T) {
	uc, users := newChannelTest(t)
	ana := addUser(t, users, "ana")

	err := uc.RecordWatch(context.Background(), ana.ID, "  ")
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestHistory_EmptyIsNotNil(t *testing.T) {
	uc, users := newChannelTest(t)
	ana := addUser(t, users, "ana")

	events, err := uc.History(context.Background(), ana.ID, 10)
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}
