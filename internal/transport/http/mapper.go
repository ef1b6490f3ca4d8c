package http

import (
	"errors"

	"github.com/akorchagin/pairchat-server/internal/core"
	"github.com/akorchagin/pairchat-server/internal/proto"
	"github.com/akorchagin/pairchat-server/internal/service/dm"
)

// dmErrorToProto maps service errors onto protocol error frames.
func dmErrorToProto(err error) *proto.Error {
	switch {
	case errors.Is(err, dm.ErrSelfConversation):
		return &proto.Error{Code: "bad_request", Msg: "cannot message yourself"}
	case errors.Is(err, dm.ErrEmptyContent):
		return &proto.Error{Code: "bad_request", Msg: "content is required"}
	case errors.Is(err, dm.ErrUserNotFound):
		return &proto.Error{Code: "user_not_found", Msg: "recipient not found"}
	default:
		return &proto.Error{Code: "internal_error", Msg: "internal server error"}
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventDirectMessage:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: string(core.EventDirectMessage),
			Data: proto.EventDirectMessage{
				ConversationID: event.ConversationID,
				Sender: proto.UserRef{
					ID:       event.Message.Sender.ID,
					Username: event.Message.Sender.Username,
				},
				Content:   event.Message.Content,
				Timestamp: event.Message.Timestamp,
			},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}
