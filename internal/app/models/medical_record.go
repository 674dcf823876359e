package models

import "time"

// MedicalRecord is a doctor's note on a patient, written against one
// consultation. PatientID and DoctorID are copied from that consultation.
type MedicalRecord struct {
	ID              string    `json:"id"`
	PatientID       string    `json:"patient_id"`
	DoctorID        string    `json:"doctor_id"`
	ConsultationID  string    `json:"consultation_id"`
	Diagnosis       string    `json:"diagnosis"`
	Symptoms        string    `json:"symptoms"`
	Treatment       string    `json:"treatment"`
	Recommendations string    `json:"recommendations"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
