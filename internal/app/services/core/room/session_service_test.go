package room

import (
	"context"
	"errors"
	"telemed-service/internal/app/contracts"
	"telemed-service/internal/app/models"
	"telemed-service/internal/pkg/constvars"
	"telemed-service/internal/pkg/exceptions"
	"telemed-service/internal/pkg/metrics"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubIdentityService struct {
	identities map[string]models.Identity
}

func (s *stubIdentityService) Authenticate(ctx context.Context, token string) (*models.Identity, error) {
	identity, ok := s.identities[token]
	if !ok {
		return nil, exceptions.ErrTokenInvalidOrExpired(errors.New("unknown token"))
	}
	return &identity, nil
}

func (s *stubIdentityService) IssueToken(ctx context.Context, identity models.Identity) (string, error) {
	return identity.UserID, nil
}

// MockConsultationUsecase only implements what rooms call; the embedded
// interface panics on anything else.
type MockConsultationUsecase struct {
	contracts.ConsultationUsecase
	mock.Mock
}

func (m *MockConsultationUsecase) Authorize(ctx context.Context, identity models.Identity, consultationID string) (*models.Consultation, models.Role, error) {
	args := m.Called(ctx, identity, consultationID)
	consultation, _ := args.Get(0).(*models.Consultation)
	return consultation, args.Get(1).(models.Role), args.Error(2)
}

func (m *MockConsultationUsecase) Start(ctx context.Context, consultationID string) (*models.Consultation, error) {
	args := m.Called(ctx, consultationID)
	consultation, _ := args.Get(0).(*models.Consultation)
	return consultation, args.Error(1)
}

func (m *MockConsultationUsecase) Complete(ctx context.Context, consultationID string) (*models.Consultation, error) {
	args := m.Called(ctx, consultationID)
	consultation, _ := args.Get(0).(*models.Consultation)
	return consultation, args.Error(1)
}

var (
	patientIdentity = models.Identity{UserID: "patient-1", Role: models.RolePatient, DisplayName: "Pat"}
	doctorIdentity  = models.Identity{UserID: "doctor-1", Role: models.RoleDoctor, DisplayName: "Dr. Who"}
	createdRoom     = &models.Consultation{ID: "c-1", PatientID: "patient-1", DoctorID: "doctor-1", Status: models.ConsultationStatusCreated}
)

func newTestSessionService(consultations *MockConsultationUsecase) *SessionService {
	identities := &stubIdentityService{identities: map[string]models.Identity{
		"patient-token": patientIdentity,
		"doctor-token":  doctorIdentity,
	}}
	return NewSessionService(newTestManager(), consultations, identities, metrics.NewNopCollector(), zap.NewNop())
}

func TestSessionService_Join(t *testing.T) {
	ctx := context.Background()

	t.Run("Invalid token closes with 4401", func(t *testing.T) {
		consultations := new(MockConsultationUsecase)
		s := newTestSessionService(consultations)
		transport := &fakeTransport{}

		_, err := s.Join(ctx, "c-1", "bogus", transport)

		require.Error(t, err)
		assert.Equal(t, constvars.RoomCloseInvalidCredentials, transport.closeCode)
		consultations.AssertNotCalled(t, "Authorize", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Non participant closes with 4403", func(t *testing.T) {
		consultations := new(MockConsultationUsecase)
		consultations.On("Authorize", mock.Anything, patientIdentity, "c-1").
			Return(nil, models.Role(""), exceptions.ErrNotParticipant("patient-1", "c-1"))
		s := newTestSessionService(consultations)
		transport := &fakeTransport{}

		_, err := s.Join(ctx, "c-1", "patient-token", transport)

		require.Error(t, err)
		assert.Equal(t, constvars.RoomCloseNotParticipant, transport.closeCode)
		assert.Equal(t, 0, s.Manager.Size("c-1"))
	})

	t.Run("Unknown consultation closes with 4404", func(t *testing.T) {
		consultations := new(MockConsultationUsecase)
		consultations.On("Authorize", mock.Anything, patientIdentity, "c-9").
			Return(nil, models.Role(""), exceptions.ErrConsultationNotFound("c-9"))
		s := newTestSessionService(consultations)
		transport := &fakeTransport{}

		_, err := s.Join(ctx, "c-9", "patient-token", transport)

		require.Error(t, err)
		assert.Equal(t, constvars.RoomCloseNotFound, transport.closeCode)
	})

	t.Run("Unexpected failure closes with 1011", func(t *testing.T) {
		consultations := new(MockConsultationUsecase)
		consultations.On("Authorize", mock.Anything, patientIdentity, "c-1").
			Return(nil, models.Role(""), errors.New("db down"))
		s := newTestSessionService(consultations)
		transport := &fakeTransport{}

		_, err := s.Join(ctx, "c-1", "patient-token", transport)

		require.Error(t, err)
		assert.Equal(t, constvars.RoomCloseServerError, transport.closeCode)
	})

	t.Run("First joiner waits and second joiner starts the consultation", func(t *testing.T) {
		consultations := new(MockConsultationUsecase)
		consultations.On("Authorize", mock.Anything, patientIdentity, "c-1").Return(createdRoom, models.RolePatient, nil)
		consultations.On("Authorize", mock.Anything, doctorIdentity, "c-1").Return(createdRoom, models.RoleDoctor, nil)
		consultations.On("Start", mock.Anything, "c-1").Return(createdRoom, nil).Once()
		s := newTestSessionService(consultations)
		patient := &fakeTransport{}
		doctor := &fakeTransport{}

		_, err := s.Join(ctx, "c-1", "patient-token", patient)
		require.NoError(t, err)
		consultations.AssertNotCalled(t, "Start", mock.Anything, mock.Anything)

		_, err = s.Join(ctx, "c-1", "doctor-token", doctor)
		require.NoError(t, err)

		assert.Equal(t, []string{constvars.RoomEventConnected, constvars.RoomEventReady, constvars.RoomEventPeerJoined}, patient.events())
		assert.Equal(t, []string{constvars.RoomEventConnected, constvars.RoomEventReady}, doctor.events())

		patientReady := patient.received()[1]["payload"].(map[string]interface{})
		doctorReady := doctor.received()[1]["payload"].(map[string]interface{})
		assert.Equal(t, false, patientReady["shouldCreateOffer"])
		assert.Equal(t, true, doctorReady["shouldCreateOffer"])
		consultations.AssertExpectations(t)
	})

	t.Run("Active consultation is not started again", func(t *testing.T) {
		active := &models.Consultation{ID: "c-1", Status: models.ConsultationStatusActive}
		consultations := new(MockConsultationUsecase)
		consultations.On("Authorize", mock.Anything, mock.Anything, "c-1").Return(active, models.RolePatient, nil)
		s := newTestSessionService(consultations)

		_, err := s.Join(ctx, "c-1", "patient-token", &fakeTransport{})
		require.NoError(t, err)
		_, err = s.Join(ctx, "c-1", "doctor-token", &fakeTransport{})
		require.NoError(t, err)

		consultations.AssertNotCalled(t, "Start", mock.Anything, mock.Anything)
	})

	t.Run("Start failure keeps the room open", func(t *testing.T) {
		consultations := new(MockConsultationUsecase)
		consultations.On("Authorize", mock.Anything, mock.Anything, "c-1").Return(createdRoom, models.RolePatient, nil)
		consultations.On("Start", mock.Anything, "c-1").Return(nil, exceptions.ErrInvalidTransition("c-1", "ACTIVE", "ACTIVE"))
		s := newTestSessionService(consultations)

		_, err := s.Join(ctx, "c-1", "patient-token", &fakeTransport{})
		require.NoError(t, err)
		conn, err := s.Join(ctx, "c-1", "doctor-token", &fakeTransport{})
		require.NoError(t, err)

		assert.NotNil(t, conn)
		assert.Equal(t, 2, s.Manager.Size("c-1"))
	})
}

func joinedPair(t *testing.T, consultations *MockConsultationUsecase) (*SessionService, *Connection, *fakeTransport, *fakeTransport) {
	t.Helper()
	active := &models.Consultation{ID: "c-1", Status: models.ConsultationStatusActive}
	consultations.On("Authorize", mock.Anything, patientIdentity, "c-1").Return(active, models.RolePatient, nil)
	consultations.On("Authorize", mock.Anything, doctorIdentity, "c-1").Return(active, models.RoleDoctor, nil)
	s := newTestSessionService(consultations)
	patient := &fakeTransport{}
	doctor := &fakeTransport{}

	conn, err := s.Join(context.Background(), "c-1", "patient-token", patient)
	require.NoError(t, err)
	_, err = s.Join(context.Background(), "c-1", "doctor-token", doctor)
	require.NoError(t, err)

	patient.frames = nil
	doctor.frames = nil
	return s, conn, patient, doctor
}

func TestSessionService_HandleMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("Signalling is relayed to the peer with sender info", func(t *testing.T) {
		s, conn, patient, doctor := joinedPair(t, new(MockConsultationUsecase))

		s.HandleMessage(ctx, "c-1", conn, []byte(`{"type":"offer","payload":{"sdp":"v=0"}}`))

		assert.Empty(t, patient.received())
		frames := doctor.received()
		require.Len(t, frames, 1)
		assert.Equal(t, "offer", frames[0]["type"])
		assert.Equal(t, "patient-1", frames[0]["senderId"])
		assert.Equal(t, "patient", frames[0]["senderRole"])
		assert.Equal(t, "v=0", frames[0]["payload"].(map[string]interface{})["sdp"])
	})

	t.Run("Chat text is trimmed and stamped", func(t *testing.T) {
		s, conn, _, doctor := joinedPair(t, new(MockConsultationUsecase))

		s.HandleMessage(ctx, "c-1", conn, []byte(`{"type":"chat","payload":{"text":"  hello doctor  "}}`))

		frames := doctor.received()
		require.Len(t, frames, 1)
		payload := frames[0]["payload"].(map[string]interface{})
		assert.Equal(t, "hello doctor", payload["text"])
		assert.Equal(t, "Pat", payload["senderName"])
		assert.NotEmpty(t, payload["timestamp"])
	})

	t.Run("Blank chat is dropped", func(t *testing.T) {
		s, conn, _, doctor := joinedPair(t, new(MockConsultationUsecase))

		s.HandleMessage(ctx, "c-1", conn, []byte(`{"type":"chat","payload":{"text":"   "}}`))

		assert.Empty(t, doctor.received())
	})

	t.Run("Media state carries the sender", func(t *testing.T) {
		s, conn, _, doctor := joinedPair(t, new(MockConsultationUsecase))

		s.HandleMessage(ctx, "c-1", conn, []byte(`{"type":"media","payload":{"audio":false}}`))

		frames := doctor.received()
		require.Len(t, frames, 1)
		payload := frames[0]["payload"].(map[string]interface{})
		assert.Equal(t, false, payload["audio"])
		assert.Equal(t, "patient-1", payload["senderId"])
	})

	t.Run("Ending the call notifies everyone and completes", func(t *testing.T) {
		consultations := new(MockConsultationUsecase)
		consultations.On("Complete", mock.Anything, "c-1").Return(&models.Consultation{ID: "c-1"}, nil).Once()
		s, conn, patient, doctor := joinedPair(t, consultations)

		s.HandleMessage(ctx, "c-1", conn, []byte(`{"type":"end-call"}`))

		assert.Equal(t, []string{constvars.RoomEventCallEnded}, patient.events())
		assert.Equal(t, []string{constvars.RoomEventCallEnded}, doctor.events())
		consultations.AssertExpectations(t)
	})

	t.Run("Complete failure is swallowed", func(t *testing.T) {
		consultations := new(MockConsultationUsecase)
		consultations.On("Complete", mock.Anything, "c-1").Return(nil, errors.New("db down"))
		s, conn, _, doctor := joinedPair(t, consultations)

		assert.NotPanics(t, func() {
			s.HandleMessage(ctx, "c-1", conn, []byte(`{"type":"end-call"}`))
		})
		assert.Len(t, doctor.received(), 1)
		assert.Equal(t, 2, s.Manager.Size("c-1"))
	})

	t.Run("Malformed and unknown frames are dropped", func(t *testing.T) {
		s, conn, patient, doctor := joinedPair(t, new(MockConsultationUsecase))

		s.HandleMessage(ctx, "c-1", conn, []byte(`not json`))
		s.HandleMessage(ctx, "c-1", conn, []byte(`{"type":"dance"}`))

		assert.Empty(t, patient.received())
		assert.Empty(t, doctor.received())
		assert.False(t, patient.closed)
	})
}

func TestSessionService_Leave(t *testing.T) {
	s, conn, patient, doctor := joinedPair(t, new(MockConsultationUsecase))

	s.Leave(context.Background(), "c-1", conn)

	assert.Equal(t, 1, s.Manager.Size("c-1"))
	assert.Empty(t, patient.received())
	assert.Equal(t, []string{constvars.RoomEventPeerLeft}, doctor.events())
}
