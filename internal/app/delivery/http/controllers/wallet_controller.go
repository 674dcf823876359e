package controllers

import (
	"net/http"
	"telemed-service/internal/app/contracts"
	"telemed-service/internal/pkg/constvars"
	"telemed-service/internal/pkg/dto/requests"
	"telemed-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type WalletController struct {
	Log           *zap.Logger
	WalletUsecase contracts.WalletUsecase
}

func NewWalletController(logger *zap.Logger, walletUsecase contracts.WalletUsecase) *WalletController {
	return &WalletController{
		Log:           logger,
		WalletUsecase: walletUsecase,
	}
}

func (ctrl *WalletController) GetBalance(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	wallet, err := ctrl.WalletUsecase.GetWallet(r.Context(), identity.UserID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetWalletSuccessMessage, wallet)
}

func (ctrl *WalletController) GetTransactions(w http.ResponseWriter, r *http.Request) {
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

	transactions, err := ctrl.WalletUsecase.ListTransactions(r.Context(), identity.UserID, pagination)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.GetTransactionsSuccessMessage, buildPagination(pagination, len(transactions)), transactions)
}

func (ctrl *WalletController) AdminTopUp(w http.ResponseWriter, r *http.Request) {
	request := new(requests.TopUpWallet)
	if err := decodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	transaction, err := ctrl.WalletUsecase.TopUp(r.Context(), request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.TopUpWalletSuccessMessage, transaction)
}

func (ctrl *WalletController) AdminListTransactions(w http.ResponseWriter, r *http.Request) {
	pagination, err := utils.BuildPaginationRequest(r, constvars.DefaultAdminTransactionListLimit)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	transactions, err := ctrl.WalletUsecase.ListAllTransactions(r.Context(), pagination)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.GetTransactionsSuccessMessage, buildPagination(pagination, len(transactions)), transactions)
}
