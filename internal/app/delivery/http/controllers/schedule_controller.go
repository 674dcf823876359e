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

type ScheduleController struct {
	Log         *zap.Logger
	SlotUsecase contracts.SlotUsecase
}

func NewScheduleController(logger *zap.Logger, slotUsecase contracts.SlotUsecase) *ScheduleController {
	return &ScheduleController{
		Log:         logger,
		SlotUsecase: slotUsecase,
	}
}

// PublishSlot publishes a slot for the calling doctor.
func (ctrl *ScheduleController) PublishSlot(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	ctrl.publish(w, r, identity.UserID)
}

// AdminPublishSlot publishes a slot on behalf of the doctor in the URL.
func (ctrl *ScheduleController) AdminPublishSlot(w http.ResponseWriter, r *http.Request) {
	ctrl.publish(w, r, chi.URLParam(r, constvars.URLParamDoctorID))
}

func (ctrl *ScheduleController) publish(w http.ResponseWriter, r *http.Request, doctorID string) {
	request := new(requests.PublishSlot)
	if err := decodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	slot, err := ctrl.SlotUsecase.Publish(r.Context(), doctorID, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.PublishSlotSuccessMessage, slot)
}

func (ctrl *ScheduleController) ListDoctorSlots(w http.ResponseWriter, r *http.Request) {
	doctorID := chi.URLParam(r, constvars.URLParamDoctorID)
	availableOnly, err := utils.ParseBoolQueryParam(r, constvars.QueryParamAvailableOnly)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	slots, err := ctrl.SlotUsecase.ListByDoctor(r.Context(), doctorID, availableOnly)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetSlotsSuccessMessage, slots)
}

func (ctrl *ScheduleController) GetSlot(w http.ResponseWriter, r *http.Request) {
	slot, err := ctrl.SlotUsecase.GetByID(r.Context(), chi.URLParam(r, constvars.URLParamSlotID))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetSlotSuccessMessage, slot)
}

func (ctrl *ScheduleController) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	err = ctrl.SlotUsecase.Delete(r.Context(), identity, chi.URLParam(r, constvars.URLParamSlotID))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeleteSlotSuccessMessage, nil)
}
