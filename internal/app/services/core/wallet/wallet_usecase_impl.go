package wallet

import (
	"context"
	"telemed-service/internal/app/contracts"
	"telemed-service/internal/app/models"
	"telemed-service/internal/pkg/constvars"
	"telemed-service/internal/pkg/dto/requests"
	"telemed-service/internal/pkg/exceptions"
	"telemed-service/internal/pkg/metrics"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type walletUsecase struct {
	WalletRepository contracts.WalletRepository
	Transactor       contracts.Transactor
	Metrics          *metrics.Collector
	Log              *zap.Logger
}

func NewWalletUsecase(
	walletRepository contracts.WalletRepository,
	transactor contracts.Transactor,
	collector *metrics.Collector,
	logger *zap.Logger,
) contracts.WalletUsecase {
	return &walletUsecase{
		WalletRepository: walletRepository,
		Transactor:       transactor,
		Metrics:          collector,
		Log:              logger,
	}
}

// balanceMove applies one ledger operation to a locked wallet and returns the
// before and after values of the field it targets.
type balanceMove func(wallet *models.Wallet, amount decimal.Decimal) (before, after decimal.Decimal, err error)

func (uc *walletUsecase) GetWallet(ctx context.Context, userID string) (*models.Wallet, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("walletUsecase.GetWallet called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)

	wallet, err := uc.WalletRepository.FindOrCreateByUserID(ctx, userID)
	if err != nil {
		uc.Log.Error("walletUsecase.GetWallet error fetching wallet",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return wallet, nil
}

func (uc *walletUsecase) ListTransactions(ctx context.Context, userID string, pagination *requests.Pagination) ([]models.WalletTransaction, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("walletUsecase.ListTransactions called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
		zap.Int(constvars.LoggingLimitKey, pagination.Limit),
		zap.Int(constvars.LoggingOffsetKey, pagination.Offset),
	)

	wallet, err := uc.WalletRepository.FindOrCreateByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	transactions, err := uc.WalletRepository.FindTransactionsByWalletID(ctx, wallet.ID, pagination.Limit, pagination.Offset)
	if err != nil {
		uc.Log.Error("walletUsecase.ListTransactions error fetching transactions",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingWalletIDKey, wallet.ID),
			zap.Error(err),
		)
		return nil, err
	}
	return transactions, nil
}

func (uc *walletUsecase) ListAllTransactions(ctx context.Context, pagination *requests.Pagination) ([]models.WalletTransaction, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("walletUsecase.ListAllTransactions called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingLimitKey, pagination.Limit),
		zap.Int(constvars.LoggingOffsetKey, pagination.Offset),
	)

	return uc.WalletRepository.FindAllTransactions(ctx, pagination.Limit, pagination.Offset)
}

func (uc *walletUsecase) TopUp(ctx context.Context, request *requests.TopUpWallet) (*models.WalletTransaction, error) {
	transactionType := models.TransactionTypeCredit
	if request.TransactionType != "" {
		transactionType = models.TransactionType(request.TransactionType)
	}

	description := request.Description
	if description == "" {
		description = constvars.WalletDescriptionAdminTopUp
	}

	return uc.CreditAs(ctx, transactionType, contracts.LedgerEntry{
		UserID:      request.UserID,
		Amount:      request.Amount,
		Description: description,
	})
}

func (uc *walletUsecase) Credit(ctx context.Context, entry contracts.LedgerEntry) (*models.WalletTransaction, error) {
	return uc.CreditAs(ctx, models.TransactionTypeCredit, entry)
}

// CreditAs adds to the available balance and records it under transactionType,
// which must be one of the inbound types.
func (uc *walletUsecase) CreditAs(ctx context.Context, transactionType models.TransactionType, entry contracts.LedgerEntry) (*models.WalletTransaction, error) {
	switch transactionType {
	case models.TransactionTypeCredit, models.TransactionTypePurchase, models.TransactionTypeAdjustment:
	default:
		return nil, exceptions.ErrInputValidation(nil)
	}

	return uc.apply(ctx, transactionType, entry, func(wallet *models.Wallet, amount decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
		before := wallet.Balance
		wallet.Balance = wallet.Balance.Add(amount)
		return before, wallet.Balance, nil
	})
}

func (uc *walletUsecase) Freeze(ctx context.Context, entry contracts.LedgerEntry) (*models.WalletTransaction, error) {
	return uc.apply(ctx, models.TransactionTypeFreeze, entry, func(wallet *models.Wallet, amount decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
		if wallet.Balance.LessThan(amount) {
			return decimal.Zero, decimal.Zero, exceptions.ErrInsufficientFunds(wallet.ID, wallet.Balance.String(), amount.String())
		}
		before := wallet.Balance
		wallet.Balance = wallet.Balance.Sub(amount)
		wallet.FrozenBalance = wallet.FrozenBalance.Add(amount)
		return before, wallet.Balance, nil
	})
}

func (uc *walletUsecase) Debit(ctx context.Context, entry contracts.LedgerEntry) (*models.WalletTransaction, error) {
	return uc.apply(ctx, models.TransactionTypeDebit, entry, func(wallet *models.Wallet, amount decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
		if wallet.FrozenBalance.LessThan(amount) {
			return decimal.Zero, decimal.Zero, exceptions.ErrInsufficientFrozenFunds(wallet.ID, wallet.FrozenBalance.String(), amount.String())
		}
		before := wallet.FrozenBalance
		wallet.FrozenBalance = wallet.FrozenBalance.Sub(amount)
		return before, wallet.FrozenBalance, nil
	})
}

func (uc *walletUsecase) Unfreeze(ctx context.Context, entry contracts.LedgerEntry) (*models.WalletTransaction, error) {
	return uc.apply(ctx, models.TransactionTypeUnfreeze, entry, func(wallet *models.Wallet, amount decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
		if wallet.FrozenBalance.LessThan(amount) {
			return decimal.Zero, decimal.Zero, exceptions.ErrInsufficientFrozenFunds(wallet.ID, wallet.FrozenBalance.String(), amount.String())
		}
		before := wallet.FrozenBalance
		wallet.FrozenBalance = wallet.FrozenBalance.Sub(amount)
		wallet.Balance = wallet.Balance.Add(amount)
		return before, wallet.FrozenBalance, nil
	})
}

// apply locks the wallet, mutates it and appends exactly one transaction row,
// all inside one storage transaction.
func (uc *walletUsecase) apply(ctx context.Context, transactionType models.TransactionType, entry contracts.LedgerEntry, move balanceMove) (*models.WalletTransaction, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("walletUsecase.apply called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, entry.UserID),
		zap.String(constvars.LoggingTransactionTypeKey, string(transactionType)),
		zap.String(constvars.LoggingAmountKey, entry.Amount.String()),
	)

	if !entry.Amount.IsPositive() {
		uc.Metrics.LedgerOperationsTotal.WithLabelValues(string(transactionType), "rejected").Inc()
		return nil, exceptions.ErrInvalidAmount(entry.Amount.String())
	}

	var recorded *models.WalletTransaction
	err := uc.Transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		wallet, err := uc.WalletRepository.FindOrCreateByUserIDForUpdate(txCtx, entry.UserID)
		if err != nil {
			return err
		}

		before, after, err := move(wallet, entry.Amount)
		if err != nil {
			return err
		}

		err = uc.WalletRepository.UpdateBalances(txCtx, wallet)
		if err != nil {
			return err
		}

		transaction := &models.WalletTransaction{
			ID:                    uuid.NewString(),
			WalletID:              wallet.ID,
			Type:                  transactionType,
			Amount:                entry.Amount,
			BalanceBefore:         before,
			BalanceAfter:          after,
			RelatedConsultationID: entry.ConsultationID,
			Description:           entry.Description,
		}
		err = uc.WalletRepository.InsertTransaction(txCtx, transaction)
		if err != nil {
			return err
		}

		recorded = transaction
		return nil
	})
	if err != nil {
		uc.Metrics.LedgerOperationsTotal.WithLabelValues(string(transactionType), "rejected").Inc()
		uc.Log.Warn("walletUsecase.apply rejected ledger operation",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingUserIDKey, entry.UserID),
			zap.String(constvars.LoggingTransactionTypeKey, string(transactionType)),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Metrics.LedgerOperationsTotal.WithLabelValues(string(transactionType), "applied").Inc()
	uc.Log.Info("walletUsecase.apply succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWalletIDKey, recorded.WalletID),
		zap.String(constvars.LoggingTransactionTypeKey, string(transactionType)),
		zap.String(constvars.LoggingBalanceBeforeKey, recorded.BalanceBefore.String()),
		zap.String(constvars.LoggingBalanceAfterKey, recorded.BalanceAfter.String()),
	)
	return recorded, nil
}
