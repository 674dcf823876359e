package wallet

import (
	"context"
	"sync"
	"telemed-service/internal/app/contracts"
	"telemed-service/internal/app/models"
	"telemed-service/internal/app/services/shared/inmemory"
	"telemed-service/internal/pkg/dto/requests"
	"telemed-service/internal/pkg/exceptions"
	"telemed-service/internal/pkg/metrics"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestUsecase() (contracts.WalletUsecase, contracts.WalletRepository) {
	store := inmemory.NewStore()
	repo := inmemory.NewWalletRepository(store)
	return NewWalletUsecase(repo, store, metrics.NewNopCollector(), zap.NewNop()), repo
}

func entry(userID string, amount int64) contracts.LedgerEntry {
	return contracts.LedgerEntry{UserID: userID, Amount: decimal.NewFromInt(amount)}
}

func TestWalletUsecase_Operations(t *testing.T) {
	ctx := context.Background()

	t.Run("Each operation moves the right balance", func(t *testing.T) {
		uc, _ := newTestUsecase()

		credit, err := uc.Credit(ctx, entry("user-1", 500))
		require.NoError(t, err)
		assert.Equal(t, models.TransactionTypeCredit, credit.Type)
		assert.True(t, credit.BalanceBefore.IsZero())
		assert.True(t, credit.BalanceAfter.Equal(decimal.NewFromInt(500)))

		freeze, err := uc.Freeze(ctx, entry("user-1", 200))
		require.NoError(t, err)
		assert.True(t, freeze.BalanceBefore.Equal(decimal.NewFromInt(500)))
		assert.True(t, freeze.BalanceAfter.Equal(decimal.NewFromInt(300)))

		unfreeze, err := uc.Unfreeze(ctx, entry("user-1", 50))
		require.NoError(t, err)
		assert.True(t, unfreeze.BalanceBefore.Equal(decimal.NewFromInt(200)), "unfreeze records the frozen balance")
		assert.True(t, unfreeze.BalanceAfter.Equal(decimal.NewFromInt(150)))

		debit, err := uc.Debit(ctx, entry("user-1", 150))
		require.NoError(t, err)
		assert.True(t, debit.BalanceAfter.IsZero())

		wallet, err := uc.GetWallet(ctx, "user-1")
		require.NoError(t, err)
		assert.True(t, wallet.Balance.Equal(decimal.NewFromInt(350)))
		assert.True(t, wallet.FrozenBalance.IsZero())

		transactions, err := uc.ListTransactions(ctx, "user-1", &requests.Pagination{Limit: 10})
		require.NoError(t, err)
		require.Len(t, transactions, 4)
		assert.Equal(t, models.TransactionTypeDebit, transactions[0].Type, "newest first")
	})

	t.Run("Rejected operations change nothing", func(t *testing.T) {
		uc, _ := newTestUsecase()
		_, err := uc.Credit(ctx, entry("user-1", 100))
		require.NoError(t, err)

		_, err = uc.Freeze(ctx, entry("user-1", 101))
		assert.True(t, exceptions.HasCode(err, exceptions.CodeInsufficientFunds))

		_, err = uc.Debit(ctx, entry("user-1", 1))
		assert.True(t, exceptions.HasCode(err, exceptions.CodeInsufficientFrozenFunds))

		_, err = uc.Unfreeze(ctx, entry("user-1", 1))
		assert.True(t, exceptions.HasCode(err, exceptions.CodeInsufficientFrozenFunds))

		transactions, err := uc.ListTransactions(ctx, "user-1", &requests.Pagination{Limit: 10})
		require.NoError(t, err)
		assert.Len(t, transactions, 1, "only the credit is recorded")
	})

	t.Run("Non-positive amounts are rejected", func(t *testing.T) {
		uc, _ := newTestUsecase()

		_, err := uc.Credit(ctx, entry("user-1", 0))
		assert.True(t, exceptions.HasCode(err, exceptions.CodeInvalidAmount))

		_, err = uc.Freeze(ctx, entry("user-1", -5))
		assert.True(t, exceptions.HasCode(err, exceptions.CodeInvalidAmount))
	})

	t.Run("CreditAs only accepts inbound types", func(t *testing.T) {
		uc, _ := newTestUsecase()

		transaction, err := uc.CreditAs(ctx, models.TransactionTypePurchase, entry("doctor-1", 80))
		require.NoError(t, err)
		assert.Equal(t, models.TransactionTypePurchase, transaction.Type)

		_, err = uc.CreditAs(ctx, models.TransactionTypeFreeze, entry("doctor-1", 80))
		assert.Error(t, err)
	})

	t.Run("Admin top-up defaults to a credit", func(t *testing.T) {
		uc, _ := newTestUsecase()

		transaction, err := uc.TopUp(ctx, &requests.TopUpWallet{UserID: "user-1", Amount: decimal.NewFromInt(25)})
		require.NoError(t, err)
		assert.Equal(t, models.TransactionTypeCredit, transaction.Type)
		assert.NotEmpty(t, transaction.Description)

		all, err := uc.ListAllTransactions(ctx, &requests.Pagination{Limit: 10})
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}

func TestWalletUsecase_Conservation(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUsecase()

	_, err := uc.Credit(ctx, entry("user-1", 1000))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			switch i % 3 {
			case 0:
				_, _ = uc.Freeze(ctx, entry("user-1", 30))
			case 1:
				_, _ = uc.Unfreeze(ctx, entry("user-1", 20))
			default:
				_, _ = uc.Debit(ctx, entry("user-1", 10))
			}
		}(i)
	}
	wg.Wait()

	wallet, err := uc.GetWallet(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, wallet.Balance.IsNegative())
	assert.False(t, wallet.FrozenBalance.IsNegative())

	transactions, err := uc.ListTransactions(ctx, "user-1", &requests.Pagination{Limit: 100})
	require.NoError(t, err)

	// balance + frozen equals credits minus debits
	total := decimal.Zero
	for _, transaction := range transactions {
		switch transaction.Type {
		case models.TransactionTypeCredit:
			total = total.Add(transaction.Amount)
		case models.TransactionTypeDebit:
			total = total.Sub(transaction.Amount)
		}
	}
	assert.True(t, wallet.Balance.Add(wallet.FrozenBalance).Equal(total))
}
