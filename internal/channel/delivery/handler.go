package delivery

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	authdelivery "vidtube-backend/internal/auth/delivery"
	"vidtube-backend/internal/channel/usecase"
	"vidtube-backend/pkg/response"
)

type ChannelHandler struct {
	channelUsecase usecase.ChannelUsecase
}

func NewChannelHandler(channelUsecase usecase.ChannelUsecase) *ChannelHandler {
	return &ChannelHandler{channelUsecase: channelUsecase}
}

func (h *ChannelHandler) Profile(c *gin.Context) {
	user, ok := authdelivery.UserFrom(c)
	if !ok {
		response.Error(c, response.NewApiError(http.StatusUnauthorized, "unauthorized request"))
		return
	}

	profile, err := h.channelUsecase.Profile(c.Request.Context(), c.Param("username"), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile, "Channel profile fetched successfully")
}

func (h *ChannelHandler) ToggleSubscription(c *gin.Context) {
	user, ok := authdelivery.UserFrom(c)
	if !ok {
		response.Error(c, response.NewApiError(http.StatusUnauthorized, "unauthorized request"))
		return
	}

	subscribed, err := h.channelUsecase.ToggleSubscription(c.Request.Context(), user.ID, c.Param("username"))
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Unsubscribed successfully"
	if subscribed {
		message = "Subscribed successfully"
	}
	response.JSON(c, http.StatusOK, gin.H{"subscribed": subscribed}, message)
}

func (h *ChannelHandler) History(c *gin.Context) {
	user, ok := authdelivery.UserFrom(c)
	if !ok {
		response.Error(c, response.NewApiError(http.StatusUnauthorized, "unauthorized request"))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	events, err := h.channelUsecase.History(c.Request.Context(), user.ID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events, "Watch history fetched successfully")
}

func (h *ChannelHandler) RecordWatch(c *gin.Context) {
	user, ok := authdelivery.UserFrom(c)
	if !ok {
		response.Error(c, response.NewApiError(http.StatusUnauthorized, "unauthorized request"))
		return
	}

	if err := h.channelUsecase.RecordWatch(c.Request.Context(), user.ID, c.Param("videoId")); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{}, "Watch event recorded")
}
