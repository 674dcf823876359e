package requests

import (
	"io"
	"time"
)

type BookConsultation struct {
	DoctorID   string `json:"doctor_id" validate:"required"`
	SlotID     string `json:"slot_id" validate:"required"`
	PointsCost int64  `json:"points_cost" validate:"required,gt=0"`
}

type CancelConsultation struct {
	Reason string `json:"reason" validate:"max=500"`
}

type AdminCreateConsultation struct {
	PatientUserID   string    `json:"patient_user_id" validate:"required"`
	DoctorUserID    string    `json:"doctor_user_id" validate:"required"`
	StartTime       time.Time `json:"start_time" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"required,gt=0,max=480"`
	PointsCost      int64     `json:"points_cost" validate:"required,gt=0"`
	AutoTopUp       bool      `json:"auto_top_up"`
}

type AdminUpdateConsultationStatus struct {
	Status string `json:"status" validate:"required,oneof=completed cancelled"`
	Reason string `json:"reason" validate:"max=500"`
}

type UploadConsultationFile struct {
	ConsultationID string
	FileName       string `validate:"required,max=255"`
	FileType       string
	Size           int64 `validate:"gt=0"`
	Description    string `validate:"max=500"`
	Content        io.Reader
}
