package room

import (
	"context"
	"errors"
	"strings"
	"telemed-service/internal/app/contracts"
	"telemed-service/internal/app/models"
	"telemed-service/internal/pkg/constvars"
	"telemed-service/internal/pkg/exceptions"
	"telemed-service/internal/pkg/metrics"
	"telemed-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionService runs the signalling protocol of consultation rooms on top of
// a Manager.
type SessionService struct {
	Manager             *Manager
	ConsultationUsecase contracts.ConsultationUsecase
	IdentityService     contracts.IdentityService
	Metrics             *metrics.Collector
	Log                 *zap.Logger
}

func NewSessionService(
	manager *Manager,
	consultationUsecase contracts.ConsultationUsecase,
	identityService contracts.IdentityService,
	collector *metrics.Collector,
	logger *zap.Logger,
) *SessionService {
	return &SessionService{
		Manager:             manager,
		ConsultationUsecase: consultationUsecase,
		IdentityService:     identityService,
		Metrics:             collector,
		Log:                 logger,
	}
}

// Join authenticates token, checks that its holder takes part in the
// consultation and registers transport. On failure the transport is closed
// with a code that tells the failure category apart.
func (s *SessionService) Join(ctx context.Context, consultationID, token string, transport Transport) (*Connection, error) {
	requestID := utils.GetRequestID(ctx)
	s.Log.Info("room.SessionService.Join called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingConsultationIDKey, consultationID),
	)

	identity, err := s.IdentityService.Authenticate(ctx, token)
	if err != nil {
		utils.LogSecurityEvent(s.Log, "room_join_invalid_credentials", requestID, "medium",
			zap.String(constvars.LoggingConsultationIDKey, consultationID),
			zap.Error(err),
		)
		_ = transport.Close(constvars.RoomCloseInvalidCredentials, constvars.ErrClientNotLoggedIn)
		return nil, err
	}

	consultation, role, err := s.ConsultationUsecase.Authorize(ctx, *identity, consultationID)
	if err != nil {
		code, reason := closeCodeFor(err)
		s.Log.Warn("room.SessionService.Join rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingConsultationIDKey, consultationID),
			zap.String(constvars.LoggingUserIDKey, identity.UserID),
			zap.Int(constvars.LoggingCloseCodeKey, code),
			zap.Error(err),
		)
		_ = transport.Close(code, reason)
		return nil, err
	}

	conn := &Connection{
		ID:          uuid.NewString(),
		UserID:      identity.UserID,
		DisplayName: identity.DisplayName,
		Role:        role,
		Transport:   transport,
	}
	roomSize := s.Manager.Register(consultationID, conn)

	s.Log.Info("room.SessionService.Join registered connection",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingConsultationIDKey, consultationID),
		zap.String(constvars.LoggingUserIDKey, conn.UserID),
		zap.String(constvars.LoggingRoleKey, role.String()),
		zap.Int(constvars.LoggingRoomSizeKey, roomSize),
	)

	s.Manager.SendTo(ctx, consultationID, conn, Message{
		Type:  constvars.RoomMessageSystem,
		Event: constvars.RoomEventConnected,
		Payload: connectedPayload{
			UserID:      conn.UserID,
			Role:        role.String(),
			DisplayName: conn.DisplayName,
			RoomSize:    roomSize,
		},
	})
	s.Manager.SendTo(ctx, consultationID, conn, Message{
		Type:    constvars.RoomMessageSystem,
		Event:   constvars.RoomEventReady,
		Payload: readyPayload{ShouldCreateOffer: roomSize > 1},
	})
	s.Manager.Broadcast(ctx, consultationID, Message{
		Type:  constvars.RoomMessageSystem,
		Event: constvars.RoomEventPeerJoined,
		Payload: peerPayload{
			UserID:      conn.UserID,
			DisplayName: conn.DisplayName,
			Role:        role.String(),
		},
	}, conn.UserID)

	if roomSize == 2 && consultation.Status == models.ConsultationStatusCreated {
		_, err := s.ConsultationUsecase.Start(ctx, consultationID)
		if err != nil {
			s.swallow(ctx, consultationID, constvars.RoomTriggerSecondJoin, err)
		}
	}

	return conn, nil
}

// HandleMessage dispatches one inbound frame. Malformed and unknown frames are
// logged and dropped; the connection stays open.
func (s *SessionService) HandleMessage(ctx context.Context, consultationID string, conn *Connection, raw []byte) {
	var envelope Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		s.Log.Warn("room.SessionService.HandleMessage dropping malformed frame",
			zap.String(constvars.LoggingConsultationIDKey, consultationID),
			zap.String(constvars.LoggingUserIDKey, conn.UserID),
			zap.Error(err),
		)
		return
	}
	s.Metrics.RoomMessagesTotal.WithLabelValues(envelope.Type).Inc()

	switch envelope.Type {
	case constvars.RoomMessageOffer, constvars.RoomMessageAnswer, constvars.RoomMessageICE:
		s.Manager.Broadcast(ctx, consultationID, Message{
			Type:       envelope.Type,
			Payload:    envelope.Payload,
			SenderID:   conn.UserID,
			SenderRole: conn.Role.String(),
		}, conn.UserID)

	case constvars.RoomMessageChat:
		s.handleChat(ctx, consultationID, conn, envelope.Payload)

	case constvars.RoomMessageMedia:
		s.handleMedia(ctx, consultationID, conn, envelope.Payload)

	case constvars.RoomMessageEndCall:
		s.Manager.Broadcast(ctx, consultationID, Message{
			Type:    constvars.RoomMessageSystem,
			Event:   constvars.RoomEventCallEnded,
			Payload: callEndedPayload{By: conn.UserID},
		}, "")
		_, err := s.ConsultationUsecase.Complete(ctx, consultationID)
		if err != nil {
			s.swallow(ctx, consultationID, constvars.RoomTriggerEndCall, err)
		}

	default:
		s.Log.Warn("room.SessionService.HandleMessage unknown message type",
			zap.String(constvars.LoggingConsultationIDKey, consultationID),
			zap.String(constvars.LoggingUserIDKey, conn.UserID),
			zap.String(constvars.LoggingMessageTypeKey, envelope.Type),
		)
	}
}

func (s *SessionService) handleChat(ctx context.Context, consultationID string, conn *Connection, raw json.RawMessage) {
	var inbound chatInbound
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &inbound); err != nil {
			s.Log.Warn("room.SessionService.handleChat dropping malformed chat payload",
				zap.String(constvars.LoggingConsultationIDKey, consultationID),
				zap.Error(err),
			)
			return
		}
	}

	text := strings.TrimSpace(inbound.Text)
	if text == "" {
		return
	}

	senderName := conn.DisplayName
	if senderName == "" {
		senderName = conn.Role.String()
	}
	s.Manager.Broadcast(ctx, consultationID, Message{
		Type: constvars.RoomMessageChat,
		Payload: chatPayload{
			Text:       text,
			SenderID:   conn.UserID,
			SenderName: senderName,
			Timestamp:  time.Now().UTC().Format(time.RFC3339Nano),
		},
	}, conn.UserID)
}

func (s *SessionService) handleMedia(ctx context.Context, consultationID string, conn *Connection, raw json.RawMessage) {
	payload := map[string]interface{}{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			s.Log.Warn("room.SessionService.handleMedia dropping malformed media payload",
				zap.String(constvars.LoggingConsultationIDKey, consultationID),
				zap.Error(err),
			)
			return
		}
	}
	payload["senderId"] = conn.UserID

	s.Manager.Broadcast(ctx, consultationID, Message{
		Type:    constvars.RoomMessageMedia,
		Payload: payload,
	}, conn.UserID)
}

// Leave unregisters conn and tells the remaining peers.
func (s *SessionService) Leave(ctx context.Context, consultationID string, conn *Connection) {
	s.Manager.Unregister(consultationID, conn.ID)
	s.Log.Info("room.SessionService.Leave called",
		zap.String(constvars.LoggingConsultationIDKey, consultationID),
		zap.String(constvars.LoggingUserIDKey, conn.UserID),
		zap.Int(constvars.LoggingRoomSizeKey, s.Manager.Size(consultationID)),
	)

	s.Manager.Broadcast(ctx, consultationID, Message{
		Type:    constvars.RoomMessageSystem,
		Event:   constvars.RoomEventPeerLeft,
		Payload: peerPayload{UserID: conn.UserID},
	}, conn.UserID)
}

// swallow records a lifecycle failure triggered from inside a room. The room
// keeps running, so the error is only logged and counted.
func (s *SessionService) swallow(ctx context.Context, consultationID, trigger string, err error) {
	s.Metrics.RealtimeLifecycleErrorsTotal.WithLabelValues(trigger).Inc()
	s.Log.Error("room.SessionService lifecycle call failed",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingConsultationIDKey, consultationID),
		zap.String(constvars.LoggingTriggerKey, trigger),
		zap.Error(err),
	)
}

func closeCodeFor(err error) (int, string) {
	var customErr *exceptions.CustomError
	if !errors.As(err, &customErr) {
		return constvars.RoomCloseServerError, constvars.ErrClientSomethingWrongWithApplication
	}

	switch customErr.StatusCode {
	case constvars.StatusUnauthorized:
		return constvars.RoomCloseInvalidCredentials, constvars.ErrClientNotLoggedIn
	case constvars.StatusForbidden:
		return constvars.RoomCloseNotParticipant, constvars.ErrClientNotAuthorized
	case constvars.StatusNotFound:
		return constvars.RoomCloseNotFound, constvars.ErrClientResourceNotFound
	default:
		return constvars.RoomCloseServerError, constvars.ErrClientSomethingWrongWithApplication
	}
}
