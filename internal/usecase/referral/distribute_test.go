package referral

import (
	"context"
	"errors"
	"testing"

	"github.com/LavaJover/shvark-referral-service/internal/config"
	"github.com/LavaJover/shvark-referral-service/internal/domain"
	"github.com/LavaJover/shvark-referral-service/internal/infrastructure/logger"
	transactiondto "github.com/LavaJover/shvark-referral-service/internal/usecase/dto/transaction"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAccountRepo struct {
	accounts      map[string]*domain.Account
	directLinks   map[string][]domain.DirectLink
	indirectLinks map[string][]domain.IndirectLink
	payoutErr     error
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		accounts:      make(map[string]*domain.Account),
		directLinks:   make(map[string][]domain.DirectLink),
		indirectLinks: make(map[string][]domain.IndirectLink),
	}
}

func (r *fakeAccountRepo) CreateAccount(ctx context.Context, account *domain.Account) error {
	r.accounts[account.ID] = account
	return nil
}

func (r *fakeAccountRepo) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	if account, ok := r.accounts[accountID]; ok {
		return account, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (r *fakeAccountRepo) GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	for _, account := range r.accounts {
		if account.Email == email {
			return account, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *fakeAccountRepo) GetAccountByReferralCode(ctx context.Context, code string) (*domain.Account, error) {
	for _, account := range r.accounts {
		if account.ReferralCode == code {
			return account, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *fakeAccountRepo) GetDirectLinks(ctx context.Context, accountID string) ([]domain.DirectLink, error) {
	return r.directLinks[accountID], nil
}

func (r *fakeAccountRepo) GetIndirectLinks(ctx context.Context, accountID string) ([]domain.IndirectLink, error) {
	return r.indirectLinks[accountID], nil
}

func (r *fakeAccountRepo) CountDirectLinks(ctx context.Context, accountID string) (int64, error) {
	return int64(len(r.directLinks[accountID])), nil
}

func (r *fakeAccountRepo) AddDirectLink(ctx context.Context, referrerID string, link domain.DirectLink) error {
	r.directLinks[referrerID] = append(r.directLinks[referrerID], link)
	return nil
}

func (r *fakeAccountRepo) AddIndirectLink(ctx context.Context, referrerID string, link domain.IndirectLink) error {
	r.indirectLinks[referrerID] = append(r.indirectLinks[referrerID], link)
	return nil
}

func (r *fakeAccountRepo) ApplyDirectPayout(ctx context.Context, referrerID, childID string, amount domain.Money) (bool, error) {
	if r.payoutErr != nil {
		return false, r.payoutErr
	}
	r.accounts[referrerID].TotalEarnings = r.accounts[referrerID].TotalEarnings.Add(amount)
	found := false
	links := r.directLinks[referrerID]
	for i := range links {
		if links[i].AccountID == childID {
			links[i].DirectEarning = links[i].DirectEarning.Add(amount)
			found = true
		}
	}
	return found, nil
}

func (r *fakeAccountRepo) ApplyIndirectPayout(ctx context.Context, referrerID, childID, viaID string, amount domain.Money) (bool, error) {
	if r.payoutErr != nil {
		return false, r.payoutErr
	}
	r.accounts[referrerID].TotalEarnings = r.accounts[referrerID].TotalEarnings.Add(amount)
	found := false
	links := r.indirectLinks[referrerID]
	for i := range links {
		if links[i].AccountID == childID {
			links[i].Earning = links[i].Earning.Add(amount)
			found = true
		}
	}
	direct := r.directLinks[viaID]
	for i := range direct {
		if direct[i].AccountID == childID {
			direct[i].IndirectEarning = direct[i].IndirectEarning.Add(amount)
		}
	}
	return found, nil
}

type fakeTransactionRepo struct {
	byExternalID map[string]*domain.Transaction
	createErr    error
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{byExternalID: make(map[string]*domain.Transaction)}
}

func (r *fakeTransactionRepo) CreateTransaction(ctx context.Context, transaction *domain.Transaction) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.byExternalID[transaction.ExternalID]; ok {
		return domain.ErrDuplicateTransactionID
	}
	r.byExternalID[transaction.ExternalID] = transaction
	return nil
}

func (r *fakeTransactionRepo) GetTransactionByExternalID(ctx context.Context, externalID string) (*domain.Transaction, error) {
	if transaction, ok := r.byExternalID[externalID]; ok {
		return transaction, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (r *fakeTransactionRepo) GetTransactionsByAccountID(ctx context.Context, accountID string) ([]*domain.Transaction, error) {
	var out []*domain.Transaction
	for _, transaction := range r.byExternalID {
		if transaction.AccountID == accountID {
			out = append(out, transaction)
		}
	}
	return out, nil
}

type fakeEarningRepo struct {
	records []*domain.EarningRecord
}

func (r *fakeEarningRepo) AppendEarningRecord(ctx context.Context, record *domain.EarningRecord) error {
	r.records = append(r.records, record)
	return nil
}

func (r *fakeEarningRepo) GetEarningsByAccountID(ctx context.Context, accountID string) ([]*domain.EarningRecord, error) {
	var out []*domain.EarningRecord
	for _, record := range r.records {
		if record.AccountID == accountID {
			out = append(out, record)
		}
	}
	return out, nil
}

func (r *fakeEarningRepo) GetEarningByTransactionID(ctx context.Context, transactionID string) (*domain.EarningRecord, error) {
	for _, record := range r.records {
		if record.TransactionID == transactionID {
			return record, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

type pushedEvent struct {
	accountID string
	event     string
}

type fakePush struct {
	events    []pushedEvent
	broadcast []string
}

func (p *fakePush) PublishToAccount(accountID, event string, payload any) error {
	p.events = append(p.events, pushedEvent{accountID, event})
	return nil
}

func (p *fakePush) PublishToAll(event string, payload any) error {
	p.broadcast = append(p.broadcast, event)
	return nil
}

type fakeEventLog struct {
	completed []logger.DistributionCompletedEvent
	failed    []logger.DistributionFailedEvent
}

func (l *fakeEventLog) LogDistributionCompleted(ctx context.Context, event logger.DistributionCompletedEvent) error {
	l.completed = append(l.completed, event)
	return nil
}

func (l *fakeEventLog) LogDistributionFailed(ctx context.Context, event logger.DistributionFailedEvent) error {
	l.failed = append(l.failed, event)
	return nil
}

func testPolicy() config.RewardPolicy {
	return config.RewardPolicy{
		DirectPercent:       0.05,
		IndirectPercent:     0.01,
		MinTransactionValue: 1000,
		MaxDirectReferrals:  8,
	}
}

type distributionFixture struct {
	uc       *DefaultDistributionUsecase
	accounts *fakeAccountRepo
	txns     *fakeTransactionRepo
	earnings *fakeEarningRepo
	push     *fakePush
	eventLog *fakeEventLog
}

func newDistributionFixture() *distributionFixture {
	accounts := newFakeAccountRepo()
	txns := newFakeTransactionRepo()
	earnings := &fakeEarningRepo{}
	push := &fakePush{}
	eventLog := &fakeEventLog{}

	uc := &DefaultDistributionUsecase{
		AccountRepo:     accounts,
		TransactionRepo: txns,
		EarningRepo:     earnings,
		Push:            push,
		EventLog:        eventLog,
		Policy:          testPolicy(),
		Logger:          zap.NewNop(),
	}
	return &distributionFixture{uc, accounts, txns, earnings, push, eventLog}
}

// root <- parent <- child, with the link rows registration would create
func (f *distributionFixture) seedChain() (root, parent, child *domain.Account) {
	root = &domain.Account{ID: "root", Name: "Root", ReferralCode: "ROOTCODE"}
	parent = &domain.Account{ID: "parent", Name: "Parent", ReferralCode: "PARCODE", ReferredBy: "ROOTCODE"}
	child = &domain.Account{ID: "child", Name: "Child", ReferralCode: "CHICODE", ReferredBy: "PARCODE"}
	for _, account := range []*domain.Account{root, parent, child} {
		f.accounts.accounts[account.ID] = account
	}
	f.accounts.directLinks["root"] = []domain.DirectLink{{AccountID: "parent"}}
	f.accounts.directLinks["parent"] = []domain.DirectLink{{AccountID: "child"}}
	f.accounts.indirectLinks["root"] = []domain.IndirectLink{{AccountID: "child", ViaAccountID: "parent"}}
	return root, parent, child
}

func TestDistributeBelowThreshold(t *testing.T) {
	f := newDistributionFixture()
	f.seedChain()

	result, err := f.uc.Distribute(context.Background(), &transactiondto.SubmitTransactionInput{
		AccountID:     "child",
		TransactionID: "txn-1",
		Value:         999.99,
	})
	require.NoError(t, err)
	require.True(t, result.BelowThreshold)
	require.Nil(t, result.Transaction)

	// nothing was written anywhere
	require.Empty(t, f.txns.byExternalID)
	require.Empty(t, f.earnings.records)
	require.Empty(t, f.push.events)
	require.InDelta(t, 0, f.accounts.accounts["parent"].TotalEarnings.Float64(), 1e-9)
}

func TestDistributeAccountNotFound(t *testing.T) {
	f := newDistributionFixture()

	_, err := f.uc.Distribute(context.Background(), &transactiondto.SubmitTransactionInput{
		AccountID:     "ghost",
		TransactionID: "txn-1",
		Value:         2000,
	})
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestDistributeDuplicateTransactionID(t *testing.T) {
	f := newDistributionFixture()
	f.seedChain()

	input := &transactiondto.SubmitTransactionInput{AccountID: "child", TransactionID: "txn-1", Value: 2000}
	_, err := f.uc.Distribute(context.Background(), input)
	require.NoError(t, err)

	_, err = f.uc.Distribute(context.Background(), input)
	require.ErrorIs(t, err, domain.ErrDuplicateTransactionID)
	require.Len(t, f.earnings.records, 1)
}

func TestDistributeTransactionWriteFailure(t *testing.T) {
	f := newDistributionFixture()
	f.seedChain()
	f.txns.createErr = errors.New("connection refused")

	_, err := f.uc.Distribute(context.Background(), &transactiondto.SubmitTransactionInput{
		AccountID:     "child",
		TransactionID: "txn-1",
		Value:         2000,
	})
	require.ErrorIs(t, err, domain.ErrStorageUnavailable)

	// nothing was committed, so no earnings and no payouts either
	require.Empty(t, f.earnings.records)
	require.InDelta(t, 0, f.accounts.accounts["parent"].TotalEarnings.Float64(), 1e-9)
}

func TestDistributeNoReferrer(t *testing.T) {
	f := newDistributionFixture()
	f.accounts.accounts["solo"] = &domain.Account{ID: "solo", Name: "Solo", ReferralCode: "SOLOCODE"}

	result, err := f.uc.Distribute(context.Background(), &transactiondto.SubmitTransactionInput{
		AccountID:     "solo",
		TransactionID: "txn-1",
		Value:         2000,
	})
	require.NoError(t, err)
	require.False(t, result.BelowThreshold)
	require.Empty(t, result.Payouts)

	// the audit row still exists, with empty referrer fields
	require.Len(t, f.earnings.records, 1)
	record := f.earnings.records[0]
	require.Equal(t, "solo", record.AccountID)
	require.Empty(t, record.DirectReferrerID)
	require.Empty(t, record.IndirectReferrerID)
	require.InDelta(t, 0, record.DirectReferralEarning.Float64(), 1e-9)
}

func TestDistributeDirectOnly(t *testing.T) {
	f := newDistributionFixture()
	f.seedChain()

	// parent is referred by root, so the parent's transaction pays root
	// the 5% level-1 cut and nobody else
	result, err := f.uc.Distribute(context.Background(), &transactiondto.SubmitTransactionInput{
		AccountID:     "parent",
		TransactionID: "txn-1",
		Value:         2000,
	})
	require.NoError(t, err)
	require.Len(t, result.Payouts, 1)
	require.Equal(t, "root", result.Payouts[0].RecipientID)
	require.Equal(t, domain.PayoutDirect, result.Payouts[0].Kind)
	require.InDelta(t, 100, result.Payouts[0].Amount.Float64(), 1e-9)

	require.InDelta(t, 100, f.accounts.accounts["root"].TotalEarnings.Float64(), 1e-9)
	require.InDelta(t, 100, f.accounts.directLinks["root"][0].DirectEarning.Float64(), 1e-9)

	record := f.earnings.records[0]
	require.Equal(t, "root", record.DirectReferrerID)
	require.Empty(t, record.IndirectReferrerID)
	require.InDelta(t, 100, record.DirectReferralEarning.Float64(), 1e-9)
}

func TestDistributeTwoLevels(t *testing.T) {
	f := newDistributionFixture()
	f.seedChain()

	result, err := f.uc.Distribute(context.Background(), &transactiondto.SubmitTransactionInput{
		AccountID:     "child",
		TransactionID: "txn-1",
		Value:         5000,
	})
	require.NoError(t, err)
	require.Len(t, result.Payouts, 2)

	require.InDelta(t, 250, f.accounts.accounts["parent"].TotalEarnings.Float64(), 1e-9)
	require.InDelta(t, 50, f.accounts.accounts["root"].TotalEarnings.Float64(), 1e-9)
	require.InDelta(t, 250, f.accounts.directLinks["parent"][0].DirectEarning.Float64(), 1e-9)
	require.InDelta(t, 50, f.accounts.directLinks["parent"][0].IndirectEarning.Float64(), 1e-9)
	require.InDelta(t, 50, f.accounts.indirectLinks["root"][0].Earning.Float64(), 1e-9)

	record := f.earnings.records[0]
	require.Equal(t, "parent", record.DirectReferrerID)
	require.Equal(t, "root", record.IndirectReferrerID)
	require.InDelta(t, 250, record.DirectReferralEarning.Float64(), 1e-9)
	require.InDelta(t, 50, record.IndirectReferralEarning.Float64(), 1e-9)

	require.Len(t, f.eventLog.completed, 1)
	require.Empty(t, f.eventLog.failed)
}

func TestDistributePushFanout(t *testing.T) {
	f := newDistributionFixture()
	f.seedChain()

	_, err := f.uc.Distribute(context.Background(), &transactiondto.SubmitTransactionInput{
		AccountID:     "child",
		TransactionID: "txn-1",
		Value:         5000,
	})
	require.NoError(t, err)

	require.Equal(t, []pushedEvent{
		{"child", EventTransactionCreated},
		{"parent", EventEarningsUpdate},
		{"root", EventEarningsUpdate},
	}, f.push.events)
	require.Equal(t, []string{EventTransactionNotification}, f.push.broadcast)
}

func TestDistributeMissingLinkRowStillPays(t *testing.T) {
	f := newDistributionFixture()
	f.seedChain()
	// registration invariant broken on purpose: parent has no link row
	// for child
	f.accounts.directLinks["parent"] = nil

	result, err := f.uc.Distribute(context.Background(), &transactiondto.SubmitTransactionInput{
		AccountID:     "child",
		TransactionID: "txn-1",
		Value:         2000,
	})
	require.NoError(t, err)
	require.Len(t, result.Payouts, 2)
	require.InDelta(t, 100, f.accounts.accounts["parent"].TotalEarnings.Float64(), 1e-9)
}

func TestDistributePayoutFailureKeepsTransaction(t *testing.T) {
	f := newDistributionFixture()
	f.seedChain()
	f.accounts.payoutErr = errors.New("storage down")

	result, err := f.uc.Distribute(context.Background(), &transactiondto.SubmitTransactionInput{
		AccountID:     "child",
		TransactionID: "txn-1",
		Value:         2000,
	})
	// the transaction is committed, so the call succeeds even though
	// every payout write failed
	require.NoError(t, err)
	require.NotNil(t, result.Transaction)
	require.Contains(t, f.txns.byExternalID, "txn-1")

	require.NotEmpty(t, f.eventLog.failed)
	require.Equal(t, "direct_payout", f.eventLog.failed[0].Stage)
}

func TestGetEarningsUnknownAccount(t *testing.T) {
	f := newDistributionFixture()

	_, err := f.uc.GetEarnings(context.Background(), "ghost")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestGetTransactionEarning(t *testing.T) {
	f := newDistributionFixture()
	f.seedChain()

	_, err := f.uc.Distribute(context.Background(), &transactiondto.SubmitTransactionInput{
		AccountID:     "child",
		TransactionID: "txn-1",
		Value:         5000,
	})
	require.NoError(t, err)

	record, err := f.uc.GetTransactionEarning(context.Background(), "txn-1")
	require.NoError(t, err)
	require.Equal(t, "child", record.AccountID)
	require.Equal(t, "parent", record.DirectReferrerID)

	_, err = f.uc.GetTransactionEarning(context.Background(), "no-such-txn")
	require.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestGetReferralReport(t *testing.T) {
	f := newDistributionFixture()
	f.seedChain()

	_, err := f.uc.Distribute(context.Background(), &transactiondto.SubmitTransactionInput{
		AccountID:     "child",
		TransactionID: "txn-1",
		Value:         5000,
	})
	require.NoError(t, err)

	report, err := f.uc.GetReferralReport(context.Background(), "root")
	require.NoError(t, err)
	require.Equal(t, "ROOTCODE", report.ReferralCode)
	require.InDelta(t, 50, report.TotalEarnings, 1e-9)
	require.Len(t, report.DirectReferrals, 1)
	require.Equal(t, "Parent", report.DirectReferrals[0].Name)
	require.Len(t, report.IndirectReferrals, 1)
	require.Equal(t, "parent", report.IndirectReferrals[0].ViaAccountID)
	require.InDelta(t, 50, report.IndirectReferrals[0].Earning, 1e-9)
}
