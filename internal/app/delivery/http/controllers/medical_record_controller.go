package controllers

import (
	"net/http"
	"telemed-service/internal/app/contracts"
	"telemed-service/internal/pkg/constvars"
	"telemed-service/internal/pkg/dto/requests"
	"telemed-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MedicalRecordController struct {
	Log                  *zap.Logger
	MedicalRecordUsecase contracts.MedicalRecordUsecase
}

func NewMedicalRecordController(logger *zap.Logger, medicalRecordUsecase contracts.MedicalRecordUsecase) *MedicalRecordController {
	return &MedicalRecordController{
		Log:                  logger,
		MedicalRecordUsecase: medicalRecordUsecase,
	}
}

func (ctrl *MedicalRecordController) Create(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.CreateMedicalRecord)
	if err := decodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	record, err := ctrl.MedicalRecordUsecase.Create(r.Context(), identity, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateMedicalRecordSuccessMessage, record)
}

func (ctrl *MedicalRecordController) Update(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.UpdateMedicalRecord)
	if err := decodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	record, err := ctrl.MedicalRecordUsecase.Update(r.Context(), identity, chi.URLParam(r, constvars.URLParamRecordID), request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateMedicalRecordSuccessMessage, record)
}

func (ctrl *MedicalRecordController) Get(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	record, err := ctrl.MedicalRecordUsecase.Get(r.Context(), identity, chi.URLParam(r, constvars.URLParamRecordID))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetMedicalRecordSuccessMessage, record)
}

func (ctrl *MedicalRecordController) ListByPatient(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	records, err := ctrl.MedicalRecordUsecase.ListByPatient(r.Context(), identity, chi.URLParam(r, constvars.URLParamPatientID))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetMedicalRecordsSuccessMessage, records)
}

func (ctrl *MedicalRecordController) ListMine(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	records, err := ctrl.MedicalRecordUsecase.ListMine(r.Context(), identity)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetMedicalRecordsSuccessMessage, records)
}
