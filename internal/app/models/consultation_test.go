package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConsultationStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from ConsultationStatus
		to   ConsultationStatus
		want bool
	}{
		{ConsultationStatusCreated, ConsultationStatusActive, true},
		{ConsultationStatusCreated, ConsultationStatusCancelled, true},
		{ConsultationStatusCreated, ConsultationStatusCompleted, false},
		{ConsultationStatusActive, ConsultationStatusCompleted, true},
		{ConsultationStatusActive, ConsultationStatusCancelled, true},
		{ConsultationStatusActive, ConsultationStatusCreated, false},
		{ConsultationStatusActive, ConsultationStatusActive, false},
		{ConsultationStatusCompleted, ConsultationStatusActive, false},
		{ConsultationStatusCompleted, ConsultationStatusCancelled, false},
		{ConsultationStatusCancelled, ConsultationStatusActive, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+" to "+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestConsultation_ParticipantRole(t *testing.T) {
	consultation := &Consultation{PatientID: "patient-1", DoctorID: "doctor-1"}

	t.Run("Booked patient and doctor take part", func(t *testing.T) {
		role, ok := consultation.ParticipantRole(Identity{UserID: "patient-1", Role: RolePatient})
		assert.True(t, ok)
		assert.Equal(t, RolePatient, role)

		role, ok = consultation.ParticipantRole(Identity{UserID: "doctor-1", Role: RoleDoctor})
		assert.True(t, ok)
		assert.Equal(t, RoleDoctor, role)
	})

	t.Run("Other users are outsiders", func(t *testing.T) {
		_, ok := consultation.ParticipantRole(Identity{UserID: "patient-2", Role: RolePatient})
		assert.False(t, ok)

		_, ok = consultation.ParticipantRole(Identity{UserID: "patient-1", Role: RoleDoctor})
		assert.False(t, ok)
	})

	t.Run("Admins observe", func(t *testing.T) {
		role, ok := consultation.ParticipantRole(Identity{UserID: "admin-1", Role: RoleAdmin})
		assert.True(t, ok)
		assert.Equal(t, RoleAdmin, role)
	})
}

func TestScheduleSlot_Overlaps(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	slot := &ScheduleSlot{StartTime: base, EndTime: base.Add(time.Hour)}

	assert.True(t, slot.Overlaps(base.Add(30*time.Minute), base.Add(90*time.Minute)))
	assert.True(t, slot.Overlaps(base.Add(-time.Hour), base.Add(2*time.Hour)))
	assert.False(t, slot.Overlaps(base.Add(time.Hour), base.Add(2*time.Hour)))
	assert.False(t, slot.Overlaps(base.Add(-time.Hour), base))
}

func TestWithdrawalStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, WithdrawalStatusPending.CanTransitionTo(WithdrawalStatusApproved))
	assert.True(t, WithdrawalStatusPending.CanTransitionTo(WithdrawalStatusCancelled))
	assert.True(t, WithdrawalStatusApproved.CanTransitionTo(WithdrawalStatusCompleted))
	assert.False(t, WithdrawalStatusApproved.CanTransitionTo(WithdrawalStatusRejected))
	assert.False(t, WithdrawalStatusCompleted.CanTransitionTo(WithdrawalStatusPending))
}

func TestParseRole(t *testing.T) {
	role, ok := ParseRole("doctor")
	assert.True(t, ok)
	assert.Equal(t, RoleDoctor, role)

	_, ok = ParseRole("nurse")
	assert.False(t, ok)
}
