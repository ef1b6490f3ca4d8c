package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/akorchagin/pairchat-server/internal/service/dm"
	"github.com/akorchagin/pairchat-server/internal/store"
)

// DMHandlers provides HTTP handlers for direct-message endpoints.
type DMHandlers struct {
	service *dm.Service
	log     *zerolog.Logger
}

// NewDMHandlers creates a new DM handlers instance.
func NewDMHandlers(service *dm.Service, logger *zerolog.Logger) *DMHandlers {
	return &DMHandlers{
		service: service,
		log:     logger,
	}
}

// SendDMRequest represents the send message request body.
type SendDMRequest struct {
	To      string `json:"to" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// MessageResponse represents an appended message in API responses.
type MessageResponse struct {
	ConversationID string `json:"conversation_id"`
	Sender         string `json:"sender"`
	Content        string `json:"content"`
	Timestamp      string `json:"timestamp"`
}

// ListDMs returns the caller's conversations with participants and message
// senders resolved.
// GET /api/dms
func (h *DMHandlers) ListDMs(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		h.log.Error().Msg("user_id not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	convs, err := h.service.ListForUser(c.Request.Context(), uid)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", uid).Msg("failed to list conversations")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, convs)
}

// SendDM appends a message to the pair conversation with the recipient,
// creating the conversation on first contact.
// POST /api/dms
func (h *DMHandlers) SendDM(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		h.log.Error().Msg("user_id not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req SendDMRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid send request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing fields"})
		return
	}

	msg, conv, err := h.service.Send(c.Request.Context(), uid, req.To, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, dm.ErrSelfConversation), errors.Is(err, dm.ErrEmptyContent):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, dm.ErrUserNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "recipient not found"})
		default:
			h.log.Error().Err(err).Str("user_id", uid).Str("to", req.To).Msg("failed to send message")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, MessageResponse{
		ConversationID: conv.ID,
		Sender:         msg.Sender,
		Content:        msg.Content,
		Timestamp:      msg.Timestamp.Format(store.TimeLayout),
	})
}
