package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	stdhttp "net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/akorchagin/pairchat-server/internal/auth"
	"github.com/akorchagin/pairchat-server/internal/core"
	"github.com/akorchagin/pairchat-server/internal/metrics"
	"github.com/akorchagin/pairchat-server/internal/proto"
	"github.com/akorchagin/pairchat-server/internal/service/dm"
)

// WSHandler upgrades HTTP connections and bridges them to the hub so
// connected users receive message pushes in realtime.
type WSHandler struct {
	hub         *core.Hub
	authService *auth.Service
	dmService   *dm.Service
	log         *zerolog.Logger
}

// NewWSHandler builds a new WebSocket handler.
func NewWSHandler(hub *core.Hub, authService *auth.Service, dmService *dm.Service, logger *zerolog.Logger) stdhttp.Handler {
	return &WSHandler{
		hub:         hub,
		authService: authService,
		dmService:   dmService,
		log:         logger,
	}
}

func (h *WSHandler) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	ctx := r.Context()

	claims, err := h.authService.ValidateToken(r.URL.Query().Get("token"))
	if err != nil {
		h.log.Debug().Err(err).Msg("ws auth failed")
		stdhttp.Error(w, "invalid token", stdhttp.StatusUnauthorized)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	metrics.WSConnectionsActive.Inc()
	defer metrics.WSConnectionsActive.Dec()

	client := core.NewClient(uuid.NewString(), claims.UserID)
	h.hub.RegisterClient(client)
	defer h.hub.UnregisterClient(client)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn, client)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, client)
	}()

	err = <-errCh
	cancel() // stop the other goroutine
	<-errCh

	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		if s := websocket.CloseStatus(err); s != 0 {
			status = s
		}
		if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
			err = nil
		}
		if err != nil {
			if status == websocket.StatusNormalClosure {
				status = websocket.StatusInternalError
			}
			reason = err.Error()
			h.log.Warn().Err(err).Msg("ws connection closed with error")
		}
	}

	conn.Close(status, reason)
}

func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, client *core.Client) error {
	for {
		var inbound proto.Inbound
		if err := wsjson.Read(ctx, conn, &inbound); err != nil {
			return err
		}

		protoErr := h.handleInbound(ctx, client, inbound)
		if protoErr != nil {
			if writeErr := wsjson.Write(ctx, conn, proto.Outbound{
				Type:  proto.OutboundTypeError,
				Error: protoErr,
			}); writeErr != nil {
				return writeErr
			}
		}
	}
}

func (h *WSHandler) handleInbound(ctx context.Context, client *core.Client, inbound proto.Inbound) *proto.Error {
	switch inbound.Type {
	case proto.InboundTypeDM:
		var data proto.DMData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return &proto.Error{Code: "invalid_message", Msg: "malformed dm payload"}
		}
		if data.To == "" {
			return &proto.Error{Code: "bad_request", Msg: "to is required"}
		}
		if _, _, err := h.dmService.Send(ctx, client.UserID, data.To, data.Content); err != nil {
			h.log.Debug().Err(err).Str("user_id", client.UserID).Msg("ws dm rejected")
			return dmErrorToProto(err)
		}
		return nil
	default:
		return &proto.Error{Code: "invalid_message", Msg: "unknown message type"}
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, client *core.Client) error {
	for {
		select {
		case event, ok := <-client.Events:
			if !ok {
				return nil
			}
			if err := wsjson.Write(ctx, conn, outboundFromEvent(event)); err != nil {
				h.log.Error().Err(err).Str("client_id", client.ID).Msg("write ws event")
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
