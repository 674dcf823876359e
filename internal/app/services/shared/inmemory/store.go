package inmemory

import (
	"context"
	"sync"
	"sync/atomic"
	"telemed-service/internal/app/models"
)

type txKey struct{}

type txState struct {
	store  *Store
	active atomic.Bool
}

// Store keeps every table in process memory. A single mutex serializes
// transactions and standalone repository calls, which gives each transaction
// the isolation a row lock would. Rollback restores a snapshot taken when the
// outermost transaction began.
type Store struct {
	mu sync.Mutex
	tables
}

type tables struct {
	users              map[string]models.UserProfile
	wallets            map[string]models.Wallet
	walletTransactions []models.WalletTransaction
	slots              map[string]models.ScheduleSlot
	consultations      map[string]models.Consultation
	consultationOrder  []string
	settlements        map[string]models.ConsultationSettlement
	files              map[string]models.ConsultationFile
	fileOrder          []string
	earnings           map[string]models.DoctorEarnings
	withdrawals        map[string]models.Withdrawal
	withdrawalOrder    []string
	notifications      map[string]models.Notification
	notificationOrder  []string
	medicalRecords     map[string]models.MedicalRecord
	medicalRecordOrder []string
}

func NewStore() *Store {
	return &Store{
		tables: tables{
			users:          make(map[string]models.UserProfile),
			wallets:        make(map[string]models.Wallet),
			slots:          make(map[string]models.ScheduleSlot),
			consultations:  make(map[string]models.Consultation),
			settlements:    make(map[string]models.ConsultationSettlement),
			files:          make(map[string]models.ConsultationFile),
			earnings:       make(map[string]models.DoctorEarnings),
			withdrawals:    make(map[string]models.Withdrawal),
			notifications:  make(map[string]models.Notification),
			medicalRecords: make(map[string]models.MedicalRecord),
		},
	}
}

// WithinTransaction implements contracts.Transactor.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if s.inTransaction(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.tables.clone()
	state := &txState{store: s}
	state.active.Store(true)
	defer state.active.Store(false)

	defer func() {
		if p := recover(); p != nil {
			s.tables = snapshot
			panic(p)
		}
	}()

	err = fn(context.WithValue(ctx, txKey{}, state))
	if err != nil {
		s.tables = snapshot
	}
	return err
}

// acquire takes the store lock unless ctx belongs to a live transaction of
// this store, which already holds it.
func (s *Store) acquire(ctx context.Context) func() {
	if s.inTransaction(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) inTransaction(ctx context.Context) bool {
	state, ok := ctx.Value(txKey{}).(*txState)
	return ok && state.store == s && state.active.Load()
}

func (t tables) clone() tables {
	return tables{
		users:              cloneMap(t.users),
		wallets:            cloneMap(t.wallets),
		walletTransactions: append([]models.WalletTransaction(nil), t.walletTransactions...),
		slots:              cloneMap(t.slots),
		consultations:      cloneMap(t.consultations),
		consultationOrder:  append([]string(nil), t.consultationOrder...),
		settlements:        cloneMap(t.settlements),
		files:              cloneMap(t.files),
		fileOrder:          append([]string(nil), t.fileOrder...),
		earnings:           cloneMap(t.earnings),
		withdrawals:        cloneMap(t.withdrawals),
		withdrawalOrder:    append([]string(nil), t.withdrawalOrder...),
		notifications:      cloneMap(t.notifications),
		notificationOrder:  append([]string(nil), t.notificationOrder...),
		medicalRecords:     cloneMap(t.medicalRecords),
		medicalRecordOrder: append([]string(nil), t.medicalRecordOrder...),
	}
}

func cloneMap[V any](src map[string]V) map[string]V {
	dst := make(map[string]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// page applies limit and offset to n items ordered newest first.
func page(n, limit, offset int) (int, int) {
	if offset >= n {
		return 0, 0
	}
	end := offset + limit
	if limit <= 0 || end > n {
		end = n
	}
	return offset, end
}
