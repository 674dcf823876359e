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

type WithdrawalController struct {
	Log               *zap.Logger
	WithdrawalUsecase contracts.WithdrawalUsecase
}

func NewWithdrawalController(logger *zap.Logger, withdrawalUsecase contracts.WithdrawalUsecase) *WithdrawalController {
	return &WithdrawalController{
		Log:               logger,
		WithdrawalUsecase: withdrawalUsecase,
	}
}

func (ctrl *WithdrawalController) GetEarnings(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	earnings, err := ctrl.WithdrawalUsecase.GetEarnings(r.Context(), identity.UserID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetEarningsSuccessMessage, earnings)
}

func (ctrl *WithdrawalController) Request(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.RequestWithdrawal)
	if err := decodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	withdrawal, err := ctrl.WithdrawalUsecase.Request(r.Context(), identity.UserID, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.RequestWithdrawalSuccessMessage, withdrawal)
}

func (ctrl *WithdrawalController) History(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	pagination, err := utils.BuildPaginationRequest(r, constvars.DefaultTransactionListLimit)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	withdrawals, err := ctrl.WithdrawalUsecase.History(r.Context(), identity.UserID, pagination)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.GetWithdrawalsSuccessMessage, buildPagination(pagination, len(withdrawals)), withdrawals)
}

func (ctrl *WithdrawalController) Cancel(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	withdrawal, err := ctrl.WithdrawalUsecase.Cancel(r.Context(), identity.UserID, chi.URLParam(r, constvars.URLParamWithdrawalID))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CancelWithdrawalSuccessMessage, withdrawal)
}

func (ctrl *WithdrawalController) AdminApprove(w http.ResponseWriter, r *http.Request) {
	withdrawal, err := ctrl.WithdrawalUsecase.Approve(r.Context(), chi.URLParam(r, constvars.URLParamWithdrawalID))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ApproveWithdrawalSuccessMessage, withdrawal)
}

func (ctrl *WithdrawalController) AdminComplete(w http.ResponseWriter, r *http.Request) {
	withdrawal, err := ctrl.WithdrawalUsecase.Complete(r.Context(), chi.URLParam(r, constvars.URLParamWithdrawalID))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CompleteWithdrawalSuccessMessage, withdrawal)
}

func (ctrl *WithdrawalController) AdminReject(w http.ResponseWriter, r *http.Request) {
	request := new(requests.RejectWithdrawal)
	if err := decodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	withdrawal, err := ctrl.WithdrawalUsecase.Reject(r.Context(), chi.URLParam(r, constvars.URLParamWithdrawalID), request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RejectWithdrawalSuccessMessage, withdrawal)
}
