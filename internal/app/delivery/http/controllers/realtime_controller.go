package controllers

import (
	"context"
	"net/http"
	"telemed-service/internal/app/config"
	"telemed-service/internal/app/services/core/room"
	"telemed-service/internal/pkg/constvars"
	"telemed-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type RealtimeController struct {
	Log            *zap.Logger
	SessionService *room.SessionService
	InternalConfig *config.InternalConfig
	upgrader       websocket.Upgrader
}

func NewRealtimeController(logger *zap.Logger, sessionService *room.SessionService, internalConfig *config.InternalConfig) *RealtimeController {
	return &RealtimeController{
		Log:            logger,
		SessionService: sessionService,
		InternalConfig: internalConfig,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Connect upgrades the request and keeps the participant in the consultation
// room until either side hangs up. The token travels in the query string.
func (ctrl *RealtimeController) Connect(w http.ResponseWriter, r *http.Request) {
	consultationID := chi.URLParam(r, constvars.URLParamConsultationID)
	token := r.URL.Query().Get(constvars.QueryParamToken)

	wsConn, err := ctrl.upgrader.Upgrade(w, r, nil)
	if err != nil {
		ctrl.Log.Warn("controllers.RealtimeController.Connect upgrade failed",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
			zap.String(constvars.LoggingConsultationIDKey, consultationID),
			zap.Error(err),
		)
		return
	}

	// The room outlives the handshake request.
	ctx := context.WithoutCancel(r.Context())

	client := room.NewWebsocketClient(wsConn, ctrl.InternalConfig.Realtime, ctrl.Log)
	go client.WritePump()

	conn, err := ctrl.SessionService.Join(ctx, consultationID, token, client)
	if err != nil {
		return
	}

	client.ReadPump(func(message []byte) {
		ctrl.SessionService.HandleMessage(ctx, consultationID, conn, message)
	})

	ctrl.SessionService.Leave(ctx, consultationID, conn)
	_ = client.Close(websocket.CloseNormalClosure, "")
}
