package records

import (
	"context"
	"telemed-service/internal/app/contracts"
	"telemed-service/internal/app/models"
	"telemed-service/internal/app/services/shared/inmemory"
	"telemed-service/internal/pkg/constvars"
	"telemed-service/internal/pkg/dto/requests"
	"telemed-service/internal/pkg/exceptions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockConsultationUsecase only answers Authorize.
type MockConsultationUsecase struct {
	contracts.ConsultationUsecase
	mock.Mock
}

func (m *MockConsultationUsecase) Authorize(ctx context.Context, identity models.Identity, consultationID string) (*models.Consultation, models.Role, error) {
	args := m.Called(ctx, identity, consultationID)
	consultation, _ := args.Get(0).(*models.Consultation)
	return consultation, args.Get(1).(models.Role), args.Error(2)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, userID, title, message string) {
	m.Called(ctx, userID, title, message)
}

var (
	patient      = models.Identity{UserID: "patient-1", Role: models.RolePatient, DisplayName: "Pat"}
	otherPatient = models.Identity{UserID: "patient-2", Role: models.RolePatient}
	doctor       = models.Identity{UserID: "doctor-1", Role: models.RoleDoctor, DisplayName: "Dr. Who"}
	otherDoctor  = models.Identity{UserID: "doctor-2", Role: models.RoleDoctor}
	admin        = models.Identity{UserID: "admin-1", Role: models.RoleAdmin}
)

var consultation = &models.Consultation{ID: "c-1", PatientID: patient.UserID, DoctorID: doctor.UserID, Status: models.ConsultationStatusCompleted}

type fixture struct {
	ctx           context.Context
	usecase       contracts.MedicalRecordUsecase
	records       contracts.MedicalRecordRepository
	consultations *MockConsultationUsecase
	notifier      *MockNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := inmemory.NewStore()
	consultationRepo := inmemory.NewConsultationRepository(store)
	require.NoError(t, consultationRepo.Create(context.Background(), &models.Consultation{
		ID:        consultation.ID,
		PatientID: consultation.PatientID,
		DoctorID:  consultation.DoctorID,
		Status:    consultation.Status,
	}))

	f := &fixture{
		ctx:           context.Background(),
		records:       inmemory.NewMedicalRecordRepository(store),
		consultations: new(MockConsultationUsecase),
		notifier:      new(MockNotifier),
	}
	f.usecase = NewMedicalRecordUsecase(f.records, consultationRepo, f.consultations, f.notifier, zap.NewNop())
	return f
}

// seed writes a record as the consultation's doctor.
func (f *fixture) seed(t *testing.T, diagnosis string) *models.MedicalRecord {
	t.Helper()
	f.consultations.On("Authorize", mock.Anything, doctor, consultation.ID).Return(consultation, models.RoleDoctor, nil).Maybe()
	f.notifier.On("Notify", mock.Anything, patient.UserID, constvars.NotificationTitleMedicalRecordAdded, mock.Anything).Return().Maybe()

	record, err := f.usecase.Create(f.ctx, doctor, &requests.CreateMedicalRecord{ConsultationID: consultation.ID, Diagnosis: diagnosis})
	require.NoError(t, err)
	return record
}

func TestMedicalRecordUsecase_Create(t *testing.T) {
	t.Run("Consultation doctor writes a record for the patient", func(t *testing.T) {
		f := newFixture(t)
		f.consultations.On("Authorize", mock.Anything, doctor, "c-1").Return(consultation, models.RoleDoctor, nil)
		f.notifier.On("Notify", mock.Anything, patient.UserID, constvars.NotificationTitleMedicalRecordAdded, "Dr. Who added a record to your medical history").Return()

		record, err := f.usecase.Create(f.ctx, doctor, &requests.CreateMedicalRecord{
			ConsultationID: "c-1",
			Diagnosis:      "Seasonal allergy",
			Treatment:      "Antihistamines",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, record.ID)
		assert.Equal(t, patient.UserID, record.PatientID)
		assert.Equal(t, doctor.UserID, record.DoctorID)
		assert.Equal(t, "c-1", record.ConsultationID)
		assert.False(t, record.CreatedAt.IsZero())

		stored, err := f.records.FindByID(f.ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, "Antihistamines", stored.Treatment)
		f.notifier.AssertExpectations(t)
	})

	t.Run("Patients cannot write records", func(t *testing.T) {
		f := newFixture(t)
		f.consultations.On("Authorize", mock.Anything, patient, "c-1").Return(consultation, models.RolePatient, nil)

		_, err := f.usecase.Create(f.ctx, patient, &requests.CreateMedicalRecord{ConsultationID: "c-1"})

		assert.True(t, exceptions.HasCode(err, exceptions.CodeRecordAccessDenied))
		f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Admins observe but do not write", func(t *testing.T) {
		f := newFixture(t)
		f.consultations.On("Authorize", mock.Anything, admin, "c-1").Return(consultation, models.RoleAdmin, nil)

		_, err := f.usecase.Create(f.ctx, admin, &requests.CreateMedicalRecord{ConsultationID: "c-1"})

		assert.True(t, exceptions.HasCode(err, exceptions.CodeRecordAccessDenied))
	})

	t.Run("Another doctor is not a participant", func(t *testing.T) {
		f := newFixture(t)
		f.consultations.On("Authorize", mock.Anything, otherDoctor, "c-1").
			Return(nil, models.Role(""), exceptions.ErrNotParticipant(otherDoctor.UserID, "c-1"))

		_, err := f.usecase.Create(f.ctx, otherDoctor, &requests.CreateMedicalRecord{ConsultationID: "c-1"})

		assert.True(t, exceptions.HasCode(err, exceptions.CodeNotParticipant))
		mine, err := f.usecase.ListMine(f.ctx, otherDoctor)
		require.NoError(t, err)
		assert.Empty(t, mine)
	})
}

func TestMedicalRecordUsecase_Update(t *testing.T) {
	t.Run("Author changes only the fields sent", func(t *testing.T) {
		f := newFixture(t)
		record := f.seed(t, "Flu")
		treatment := "Rest and fluids"

		updated, err := f.usecase.Update(f.ctx, doctor, record.ID, &requests.UpdateMedicalRecord{Treatment: &treatment})

		require.NoError(t, err)
		assert.Equal(t, "Flu", updated.Diagnosis)
		assert.Equal(t, treatment, updated.Treatment)

		stored, err := f.records.FindByID(f.ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, treatment, stored.Treatment)
		assert.False(t, stored.UpdatedAt.Before(stored.CreatedAt))
	})

	t.Run("Only the author may edit", func(t *testing.T) {
		f := newFixture(t)
		record := f.seed(t, "Flu")
		diagnosis := "Cold"

		_, err := f.usecase.Update(f.ctx, otherDoctor, record.ID, &requests.UpdateMedicalRecord{Diagnosis: &diagnosis})
		assert.True(t, exceptions.HasCode(err, exceptions.CodeRecordAccessDenied))

		_, err = f.usecase.Update(f.ctx, patient, record.ID, &requests.UpdateMedicalRecord{Diagnosis: &diagnosis})
		assert.True(t, exceptions.HasCode(err, exceptions.CodeRecordAccessDenied))

		stored, err := f.records.FindByID(f.ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, "Flu", stored.Diagnosis)
	})

	t.Run("Unknown record is not found", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.usecase.Update(f.ctx, doctor, "missing", &requests.UpdateMedicalRecord{})
		assert.True(t, exceptions.HasCode(err, exceptions.CodeNotFound))
	})
}

func TestMedicalRecordUsecase_Read(t *testing.T) {
	t.Run("Patient reads own history newest first", func(t *testing.T) {
		f := newFixture(t)
		first := f.seed(t, "Flu")
		second := f.seed(t, "Recovered")

		history, err := f.usecase.ListByPatient(f.ctx, patient, patient.UserID)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, second.ID, history[0].ID)
		assert.Equal(t, first.ID, history[1].ID)

		mine, err := f.usecase.ListMine(f.ctx, patient)
		require.NoError(t, err)
		assert.Len(t, mine, 2)

		got, err := f.usecase.Get(f.ctx, patient, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "Flu", got.Diagnosis)
	})

	t.Run("Patients cannot read someone else's history", func(t *testing.T) {
		f := newFixture(t)
		record := f.seed(t, "Flu")

		_, err := f.usecase.ListByPatient(f.ctx, otherPatient, patient.UserID)
		assert.True(t, exceptions.HasCode(err, exceptions.CodeRecordAccessDenied))

		_, err = f.usecase.Get(f.ctx, otherPatient, record.ID)
		assert.True(t, exceptions.HasCode(err, exceptions.CodeRecordAccessDenied))

		mine, err := f.usecase.ListMine(f.ctx, otherPatient)
		require.NoError(t, err)
		assert.Empty(t, mine)
	})

	t.Run("Doctors read history of patients they consulted", func(t *testing.T) {
		f := newFixture(t)
		record := f.seed(t, "Flu")

		history, err := f.usecase.ListByPatient(f.ctx, doctor, patient.UserID)
		require.NoError(t, err)
		assert.Len(t, history, 1)

		authored, err := f.usecase.ListMine(f.ctx, doctor)
		require.NoError(t, err)
		require.Len(t, authored, 1)
		assert.Equal(t, record.ID, authored[0].ID)
	})

	t.Run("Doctors without a consultation are refused", func(t *testing.T) {
		f := newFixture(t)
		record := f.seed(t, "Flu")

		_, err := f.usecase.ListByPatient(f.ctx, otherDoctor, patient.UserID)
		assert.True(t, exceptions.HasCode(err, exceptions.CodeRecordAccessDenied))

		_, err = f.usecase.Get(f.ctx, otherDoctor, record.ID)
		assert.True(t, exceptions.HasCode(err, exceptions.CodeRecordAccessDenied))
	})

	t.Run("Admins read any history", func(t *testing.T) {
		f := newFixture(t)
		record := f.seed(t, "Flu")

		history, err := f.usecase.ListByPatient(f.ctx, admin, patient.UserID)
		require.NoError(t, err)
		assert.Len(t, history, 1)

		got, err := f.usecase.Get(f.ctx, admin, record.ID)
		require.NoError(t, err)
		assert.Equal(t, record.ID, got.ID)
	})

	t.Run("Unknown record is not found", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.usecase.Get(f.ctx, patient, "missing")
		assert.True(t, exceptions.HasCode(err, exceptions.CodeNotFound))
	})
}
