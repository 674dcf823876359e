package requests

type CreateMedicalRecord struct {
	ConsultationID  string `json:"consultation_id" validate:"required"`
	Diagnosis       string `json:"diagnosis" validate:"max=2000"`
	Symptoms        string `json:"symptoms" validate:"max=2000"`
	Treatment       string `json:"treatment" validate:"max=2000"`
	Recommendations string `json:"recommendations" validate:"max=2000"`
	Notes           string `json:"notes" validate:"max=4000"`
}

// UpdateMedicalRecord only touches the fields that are present.
type UpdateMedicalRecord struct {
	Diagnosis       *string `json:"diagnosis" validate:"omitempty,max=2000"`
	Symptoms        *string `json:"symptoms" validate:"omitempty,max=2000"`
	Treatment       *string `json:"treatment" validate:"omitempty,max=2000"`
	Recommendations *string `json:"recommendations" validate:"omitempty,max=2000"`
	Notes           *string `json:"notes" validate:"omitempty,max=4000"`
}
