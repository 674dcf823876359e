package routers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"telemed-service/internal/app/config"
	"telemed-service/internal/app/delivery/http/controllers"
	"telemed-service/internal/app/delivery/http/middlewares"
	"telemed-service/internal/app/models"
	"telemed-service/internal/app/services/core/consultations"
	"telemed-service/internal/app/services/core/files"
	"telemed-service/internal/app/services/core/notifications"
	"telemed-service/internal/app/services/core/records"
	"telemed-service/internal/app/services/core/room"
	"telemed-service/internal/app/services/core/slot"
	"telemed-service/internal/app/services/core/wallet"
	"telemed-service/internal/app/services/core/withdrawals"
	"telemed-service/internal/app/services/shared/identity"
	"telemed-service/internal/app/services/shared/inmemory"
	"telemed-service/internal/pkg/constvars"
	"telemed-service/internal/pkg/metrics"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	patient = models.Identity{UserID: "patient-1", Role: models.RolePatient, DisplayName: "Pat"}
	doctor  = models.Identity{UserID: "doctor-1", Role: models.RoleDoctor, DisplayName: "Dr. Who"}
	admin   = models.Identity{UserID: "admin-1", Role: models.RoleAdmin, DisplayName: "Root"}
)

type testServer struct {
	router *chi.Mux
	tokens map[string]string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	log := zap.NewNop()
	cfg := &config.InternalConfig{
		App:          config.App{EndpointPrefix: "api", Version: "v1", BaseUrl: "http://localhost", MaxRequests: 1000, RequestTimeoutInSeconds: 5},
		JWT:          config.AppJWT{Secret: "router-secret", ExpTimeInHour: 1},
		Minio:        config.AppMinio{BucketName: "consultations", ConsultationFileMaxSizeInMB: 1},
		Consultation: config.AppConsultation{CommissionRate: decimal.NewFromFloat(0.2)},
		Withdrawal:   config.AppWithdrawal{MinimumAmount: decimal.NewFromInt(50)},
	}

	store := inmemory.NewStore()
	walletRepo := inmemory.NewWalletRepository(store)
	slotRepo := inmemory.NewSlotRepository(store)
	consultationRepo := inmemory.NewConsultationRepository(store)
	earningsRepo := inmemory.NewEarningsRepository(store)
	profileRepo := inmemory.NewProfileRepository(store)
	for _, who := range []models.Identity{patient, doctor, admin} {
		require.NoError(t, profileRepo.Create(ctx, &models.UserProfile{ID: who.UserID, Role: who.Role, DisplayName: who.DisplayName, IsVerified: true}))
	}

	collector := metrics.NewNopCollector()
	identityService := identity.NewJWTIdentityService(cfg, log)
	notificationUsecase := notifications.NewNotificationUsecase(inmemory.NewNotificationRepository(store), nil, cfg, collector, log)
	walletUsecase := wallet.NewWalletUsecase(walletRepo, store, collector, log)
	slotUsecase := slot.NewSlotUsecase(slotRepo, consultationRepo, store, collector, log)
	consultationUsecase := consultations.NewConsultationUsecase(
		consultationRepo,
		inmemory.NewSettlementRepository(store),
		slotRepo,
		slotUsecase,
		walletUsecase,
		earningsRepo,
		profileRepo,
		notificationUsecase,
		store,
		cfg,
		collector,
		log,
	)
	withdrawalUsecase := withdrawals.NewWithdrawalUsecase(inmemory.NewWithdrawalRepository(store), earningsRepo, profileRepo, notificationUsecase, store, cfg, log)
	roomManager := room.NewManager(cfg, collector, log)
	sessionService := room.NewSessionService(roomManager, consultationUsecase, identityService, collector, log)
	medicalRecordUsecase := records.NewMedicalRecordUsecase(inmemory.NewMedicalRecordRepository(store), consultationRepo, consultationUsecase, notificationUsecase, log)
	fileUsecase := files.NewConsultationFileUsecase(inmemory.NewConsultationFileRepository(store), consultationUsecase, nil, roomManager, cfg, log)

	router := chi.NewRouter()
	SetupRoutes(router, log, cfg, middlewares.NewMiddlewares(log, identityService, cfg), Controllers{
		Health:        controllers.NewHealthController(cfg.App.Version),
		Wallet:        controllers.NewWalletController(log, walletUsecase),
		Schedule:      controllers.NewScheduleController(log, slotUsecase),
		Consultation:  controllers.NewConsultationController(log, consultationUsecase, fileUsecase, cfg),
		MedicalRecord: controllers.NewMedicalRecordController(log, medicalRecordUsecase),
		Withdrawal:    controllers.NewWithdrawalController(log, withdrawalUsecase),
		Notification:  controllers.NewNotificationController(log, notificationUsecase),
		Realtime:      controllers.NewRealtimeController(log, sessionService, cfg),
	})

	server := &testServer{router: router, tokens: map[string]string{}}
	for _, who := range []models.Identity{patient, doctor, admin} {
		token, err := identityService.IssueToken(ctx, who)
		require.NoError(t, err)
		server.tokens[who.UserID] = token
	}
	return server
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// do sends body as JSON on behalf of userID; an empty userID sends no token.
func (s *testServer) do(t *testing.T, method, path, userID string, body interface{}) (int, envelope) {
	t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, "/api/v1"+path, bytes.NewReader(payload))
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	if userID != "" {
		req.Header.Set(constvars.HeaderAuthorization, constvars.AuthorizationBearerPrefix+s.tokens[userID])
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec.Code, env
}

func TestRouter_Access(t *testing.T) {
	s := newTestServer(t)

	t.Run("Health is public", func(t *testing.T) {
		code, env := s.do(t, http.MethodGet, "/health", "", nil)
		assert.Equal(t, http.StatusOK, code)
		assert.True(t, env.Success)
	})

	t.Run("Wallet needs a token", func(t *testing.T) {
		code, _ := s.do(t, http.MethodGet, "/wallet/balance", "", nil)
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("Admin routes reject patients", func(t *testing.T) {
		code, _ := s.do(t, http.MethodPost, "/admin/wallets/top-up", patient.UserID, map[string]interface{}{"user_id": patient.UserID, "amount": 100})
		assert.Equal(t, http.StatusForbidden, code)
	})

	t.Run("Withdrawal routes are for doctors", func(t *testing.T) {
		code, _ := s.do(t, http.MethodGet, "/withdrawals/earnings", patient.UserID, nil)
		assert.Equal(t, http.StatusForbidden, code)
	})

	t.Run("Advertised file download links hit a mounted route", func(t *testing.T) {
		assert.True(t, s.router.Match(chi.NewRouteContext(), http.MethodGet, "/api/v1/consultations/files/f-1/download"))
		assert.False(t, s.router.Match(chi.NewRouteContext(), http.MethodGet, "/api/v1/api/v1/consultations/files/f-1/download"))
	})

	t.Run("Invalid JSON is a bad request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/wallets/top-up", bytes.NewReader([]byte("{")))
		req.Header.Set(constvars.HeaderAuthorization, constvars.AuthorizationBearerPrefix+s.tokens[admin.UserID])
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRouter_ConsultationFlow(t *testing.T) {
	s := newTestServer(t)

	code, _ := s.do(t, http.MethodPost, "/admin/wallets/top-up", admin.UserID, map[string]interface{}{"user_id": patient.UserID, "amount": 500})
	require.Equal(t, http.StatusCreated, code)

	start := time.Now().Add(24 * time.Hour).Truncate(time.Minute)
	code, env := s.do(t, http.MethodPost, "/schedule/slots", doctor.UserID, map[string]interface{}{
		"start_time": start,
		"end_time":   start.Add(30 * time.Minute),
	})
	require.Equal(t, http.StatusCreated, code)
	var published models.ScheduleSlot
	require.NoError(t, json.Unmarshal(env.Data, &published))

	code, env = s.do(t, http.MethodPost, "/consultations/book", patient.UserID, map[string]interface{}{
		"doctor_id":   doctor.UserID,
		"slot_id":     published.ID,
		"points_cost": 100,
	})
	require.Equal(t, http.StatusCreated, code)
	var booked models.Consultation
	require.NoError(t, json.Unmarshal(env.Data, &booked))
	assert.Equal(t, models.ConsultationStatusCreated, booked.Status)

	t.Run("Second booking of the same slot conflicts", func(t *testing.T) {
		code, _ := s.do(t, http.MethodPost, "/consultations/book", patient.UserID, map[string]interface{}{
			"doctor_id":   doctor.UserID,
			"slot_id":     published.ID,
			"points_cost": 100,
		})
		assert.GreaterOrEqual(t, code, 400)
		assert.Less(t, code, 500)
	})

	t.Run("Booked slot reads as reserved", func(t *testing.T) {
		code, env := s.do(t, http.MethodGet, "/schedule/slots/"+published.ID, patient.UserID, nil)
		require.Equal(t, http.StatusOK, code)
		var slot models.ScheduleSlot
		require.NoError(t, json.Unmarshal(env.Data, &slot))
		assert.Equal(t, published.ID, slot.ID)
		assert.True(t, slot.IsReserved)

		code, _ = s.do(t, http.MethodGet, "/schedule/slots/missing", patient.UserID, nil)
		assert.Equal(t, http.StatusNotFound, code)
	})

	t.Run("Anonymous requests cannot read the consultation", func(t *testing.T) {
		code, _ := s.do(t, http.MethodGet, "/consultations/"+booked.ID, "", nil)
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	code, _ = s.do(t, http.MethodPost, "/consultations/"+booked.ID+"/start", doctor.UserID, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = s.do(t, http.MethodPost, "/consultations/"+booked.ID+"/complete", patient.UserID, nil)
	require.Equal(t, http.StatusOK, code)

	t.Run("Patient paid from frozen points", func(t *testing.T) {
		code, env := s.do(t, http.MethodGet, "/wallet/balance", patient.UserID, nil)
		require.Equal(t, http.StatusOK, code)
		var w models.Wallet
		require.NoError(t, json.Unmarshal(env.Data, &w))
		assert.True(t, w.Balance.Equal(decimal.NewFromInt(400)))
		assert.True(t, w.FrozenBalance.IsZero())
	})

	t.Run("Doctor earned the income share", func(t *testing.T) {
		code, env := s.do(t, http.MethodGet, "/withdrawals/earnings", doctor.UserID, nil)
		require.Equal(t, http.StatusOK, code)
		var earnings models.DoctorEarnings
		require.NoError(t, json.Unmarshal(env.Data, &earnings))
		assert.True(t, earnings.AvailableBalance.Equal(decimal.NewFromInt(80)))
	})

	t.Run("Doctor records the visit and the patient reads it", func(t *testing.T) {
		code, env := s.do(t, http.MethodPost, "/medical-records", doctor.UserID, map[string]interface{}{
			"consultation_id": booked.ID,
			"diagnosis":       "Tension headache",
		})
		require.Equal(t, http.StatusCreated, code)
		var record models.MedicalRecord
		require.NoError(t, json.Unmarshal(env.Data, &record))
		assert.Equal(t, patient.UserID, record.PatientID)

		code, env = s.do(t, http.MethodGet, "/medical-records/my", patient.UserID, nil)
		require.Equal(t, http.StatusOK, code)
		var history []models.MedicalRecord
		require.NoError(t, json.Unmarshal(env.Data, &history))
		require.Len(t, history, 1)
		assert.Equal(t, record.ID, history[0].ID)

		code, _ = s.do(t, http.MethodGet, "/medical-records/patients/"+patient.UserID, doctor.UserID, nil)
		assert.Equal(t, http.StatusOK, code)
		code, _ = s.do(t, http.MethodGet, "/medical-records/"+record.ID, patient.UserID, nil)
		assert.Equal(t, http.StatusOK, code)
	})

	t.Run("Patients cannot write medical records", func(t *testing.T) {
		code, _ := s.do(t, http.MethodPost, "/medical-records", patient.UserID, map[string]interface{}{
			"consultation_id": booked.ID,
		})
		assert.Equal(t, http.StatusForbidden, code)
	})
}
