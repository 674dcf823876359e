package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ConsultationStatus string

const (
	ConsultationStatusCreated   ConsultationStatus = "CREATED"
	ConsultationStatusActive    ConsultationStatus = "ACTIVE"
	ConsultationStatusCompleted ConsultationStatus = "COMPLETED"
	ConsultationStatusCancelled ConsultationStatus = "CANCELLED"
)

var consultationTransitions = map[ConsultationStatus][]ConsultationStatus{
	ConsultationStatusCreated:   {ConsultationStatusActive, ConsultationStatusCancelled},
	ConsultationStatusActive:    {ConsultationStatusCompleted, ConsultationStatusCancelled},
	ConsultationStatusCompleted: {},
	ConsultationStatusCancelled: {},
}

func (s ConsultationStatus) CanTransitionTo(next ConsultationStatus) bool {
	for _, allowed := range consultationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Consultation struct {
	ID                 string             `json:"id"`
	PatientID          string             `json:"patient_id"`
	DoctorID           string             `json:"doctor_id"`
	SlotID             string             `json:"slot_id"`
	Status             ConsultationStatus `json:"status"`
	RoomID             string             `json:"room_id"`
	PointsCost         int64              `json:"points_cost"`
	PointsFrozen       bool               `json:"points_frozen"`
	CancellationReason *string            `json:"cancellation_reason,omitempty"`
	StartedAt          *time.Time         `json:"started_at,omitempty"`
	EndedAt            *time.Time         `json:"ended_at,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// ParticipantRole reports how userID takes part in the consultation. Admins
// observe every consultation.
func (c *Consultation) ParticipantRole(identity Identity) (Role, bool) {
	switch identity.Role {
	case RoleDoctor:
		return RoleDoctor, identity.UserID == c.DoctorID
	case RolePatient:
		return RolePatient, identity.UserID == c.PatientID
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

// ConsultationSettlement records the payout of a completed consultation. One
// row per consultation.
type ConsultationSettlement struct {
	ID             string          `json:"id"`
	ConsultationID string          `json:"consultation_id"`
	PatientID      string          `json:"patient_id"`
	DoctorID       string          `json:"doctor_id"`
	PointsCost     decimal.Decimal `json:"points_cost"`
	Commission     decimal.Decimal `json:"commission"`
	DoctorIncome   decimal.Decimal `json:"doctor_income"`
	CreatedAt      time.Time       `json:"created_at"`
}

type ConsultationFile struct {
	ID             string    `json:"id"`
	ConsultationID string    `json:"consultation_id"`
	ObjectName     string    `json:"-"`
	FileName       string    `json:"file_name"`
	FileType       string    `json:"file_type"`
	Size           int64     `json:"size"`
	Description    string    `json:"description,omitempty"`
	UploadedByID   string    `json:"uploaded_by_id"`
	UploadedAt     time.Time `json:"uploaded_at"`
}
