package responses

import (
	"telemed-service/internal/app/models"
	"time"
)

type ConsultationDetail struct {
	models.Consultation
	DoctorName    string     `json:"doctor_name"`
	PatientName   string     `json:"patient_name"`
	SlotStartTime *time.Time `json:"slot_start_time,omitempty"`
	SlotEndTime   *time.Time `json:"slot_end_time,omitempty"`
}

type ConsultationFile struct {
	ID             string    `json:"id"`
	ConsultationID string    `json:"consultation_id"`
	FileName       string    `json:"file_name"`
	FileType       string    `json:"file_type"`
	UploadedByID   string    `json:"uploaded_by_id"`
	UploadedAt     time.Time `json:"uploaded_at"`
	DownloadURL    string    `json:"download_url"`
}

// ConsultationFileEvent is broadcast to the consultation room after an upload.
type ConsultationFileEvent struct {
	ID          string    `json:"id"`
	FileName    string    `json:"fileName"`
	FileType    string    `json:"fileType"`
	DownloadURL string    `json:"downloadUrl"`
	UploadedAt  time.Time `json:"uploadedAt"`
	SenderID    string    `json:"senderId"`
	SenderName  string    `json:"senderName"`
}
