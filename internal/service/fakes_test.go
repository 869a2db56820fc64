package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/wallet-service/internal/domain"
	"github.com/spec-kit/wallet-service/internal/payments"
	"github.com/spec-kit/wallet-service/internal/repository"
)

// In-memory repository fakes. Each one keeps just enough state for the
// service behavior under test; missing records read as pgx.ErrNoRows the
// same way the Postgres implementations do.

type fakeProfileRepo struct {
	profiles map[string]*domain.Profile
	nextID   int
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]*domain.Profile{}}
}

func (r *fakeProfileRepo) add(profile *domain.Profile) *domain.Profile {
	if profile.ID == "" {
		r.nextID++
		profile.ID = fmt.Sprintf("profile-%d", r.nextID)
	}
	r.profiles[profile.ID] = profile
	return profile
}

func (r *fakeProfileRepo) Create(_ context.Context, profile *domain.Profile) error {
	for _, existing := range r.profiles {
		if existing.Email == profile.Email {
			return fmt.Errorf("duplicate email")
		}
	}
	r.add(profile)
	return nil
}

func (r *fakeProfileRepo) Update(_ context.Context, profile *domain.Profile) error {
	if _, ok := r.profiles[profile.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.profiles[profile.ID] = profile
	return nil
}

func (r *fakeProfileRepo) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	profile, ok := r.profiles[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *profile
	return &clone, nil
}

func (r *fakeProfileRepo) GetByEmail(_ context.Context, email string) (*domain.Profile, error) {
	for _, profile := range r.profiles {
		if profile.Email == email {
			clone := *profile
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeProfileRepo) List(_ context.Context, limit, offset int) ([]domain.Profile, error) {
	var result []domain.Profile
	for _, profile := range r.profiles {
		result = append(result, *profile)
	}
	return result, nil
}

func (r *fakeProfileRepo) SetBanned(_ context.Context, id string, banned bool) error {
	profile, ok := r.profiles[id]
	if !ok {
		return pgx.ErrNoRows
	}
	profile.Banned = banned
	return nil
}

func (r *fakeProfileRepo) SetRole(_ context.Context, id string, role domain.Role) error {
	profile, ok := r.profiles[id]
	if !ok {
		return pgx.ErrNoRows
	}
	profile.Role = role
	return nil
}

func (r *fakeProfileRepo) SetKYCTier(_ context.Context, id string, tier int) error {
	profile, ok := r.profiles[id]
	if !ok {
		return pgx.ErrNoRows
	}
	profile.KYCTier = tier
	return nil
}

type fakeKYCRepo struct {
	submissions map[string]*domain.KYCSubmission
	limits      map[int]domain.KYCTransactionLimit
	nextID      int
}

func newFakeKYCRepo() *fakeKYCRepo {
	return &fakeKYCRepo{
		submissions: map[string]*domain.KYCSubmission{},
		limits:      map[int]domain.KYCTransactionLimit{},
	}
}

func (r *fakeKYCRepo) CreateSubmission(_ context.Context, sub *domain.KYCSubmission) error {
	r.nextID++
	sub.ID = fmt.Sprintf("kyc-%d", r.nextID)
	sub.CreatedAt = time.Now()
	r.submissions[sub.ID] = sub
	return nil
}

func (r *fakeKYCRepo) GetSubmission(_ context.Context, id string) (*domain.KYCSubmission, error) {
	sub, ok := r.submissions[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *sub
	return &clone, nil
}

func (r *fakeKYCRepo) LatestByProfile(_ context.Context, profileID string) (*domain.KYCSubmission, error) {
	var latest *domain.KYCSubmission
	for _, sub := range r.submissions {
		if sub.ProfileID != profileID {
			continue
		}
		if latest == nil || sub.CreatedAt.After(latest.CreatedAt) {
			latest = sub
		}
	}
	if latest == nil {
		return nil, pgx.ErrNoRows
	}
	clone := *latest
	return &clone, nil
}

func (r *fakeKYCRepo) HasPending(_ context.Context, profileID string) (bool, error) {
	for _, sub := range r.submissions {
		if sub.ProfileID == profileID && sub.Status == domain.KYCStatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeKYCRepo) ListByStatus(_ context.Context, status domain.KYCSubmissionStatus, limit, offset int) ([]domain.KYCSubmission, error) {
	var result []domain.KYCSubmission
	for _, sub := range r.submissions {
		if sub.Status == status {
			result = append(result, *sub)
		}
	}
	return result, nil
}

func (r *fakeKYCRepo) Review(_ context.Context, id, reviewerID string, status domain.KYCSubmissionStatus, note *string) error {
	sub, ok := r.submissions[id]
	if !ok || sub.Status != domain.KYCStatusPending {
		return pgx.ErrNoRows
	}
	sub.Status = status
	sub.ReviewerID = &reviewerID
	sub.ReviewNote = note
	now := time.Now()
	sub.ReviewedAt = &now
	return nil
}

func (r *fakeKYCRepo) GetLimit(_ context.Context, tier int) (*domain.KYCTransactionLimit, error) {
	limit, ok := r.limits[tier]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &limit, nil
}

type fakeTransactionRepo struct {
	repository.TransactionRepository

	txns      map[string]*domain.Transaction
	sum       decimal.Decimal
	createErr error
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{txns: map[string]*domain.Transaction{}}
}

func (r *fakeTransactionRepo) Create(_ context.Context, txn *domain.Transaction) error {
	if r.createErr != nil {
		return r.createErr
	}
	if txn.ID == "" {
		txn.ID = fmt.Sprintf("txn-%d", len(r.txns)+1)
	}
	r.txns[txn.ID] = txn
	return nil
}

func (r *fakeTransactionRepo) GetByID(_ context.Context, id string) (*domain.Transaction, error) {
	txn, ok := r.txns[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *txn
	return &clone, nil
}

func (r *fakeTransactionRepo) ListByKindAndStatus(_ context.Context, kind domain.TransactionKind, status domain.TransactionStatus, limit, offset int) ([]domain.Transaction, error) {
	var result []domain.Transaction
	for _, txn := range r.txns {
		if txn.Kind == kind && txn.Status == status {
			result = append(result, *txn)
		}
	}
	return result, nil
}

// byKind filters recorded ledger entries, newest-insertion order not
// guaranteed.
func (r *fakeTransactionRepo) byKind(kind domain.TransactionKind) []*domain.Transaction {
	var result []*domain.Transaction
	for _, txn := range r.txns {
		if txn.Kind == kind {
			result = append(result, txn)
		}
	}
	return result
}

func (r *fakeTransactionRepo) GetByProviderTxnID(_ context.Context, providerTxnID string) (*domain.Transaction, error) {
	for _, txn := range r.txns {
		if txn.ProviderTxnID != nil && *txn.ProviderTxnID == providerTxnID {
			clone := *txn
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeTransactionRepo) SetStatus(_ context.Context, id string, status domain.TransactionStatus) error {
	txn, ok := r.txns[id]
	if !ok {
		return pgx.ErrNoRows
	}
	txn.Status = status
	return nil
}

func (r *fakeTransactionRepo) SumCompletedSince(_ context.Context, profileID string, since time.Time) (decimal.Decimal, error) {
	return r.sum, nil
}

type balanceOp struct {
	op     string
	symbol string
	amount decimal.Decimal
}

type fakeBalanceRepo struct {
	repository.BalanceRepository

	ops       []balanceOp
	lockErr   error
	unlockErr error
	creditErr error
}

func (r *fakeBalanceRepo) Credit(_ context.Context, profileID, symbol string, amount decimal.Decimal) error {
	if r.creditErr != nil {
		return r.creditErr
	}
	r.ops = append(r.ops, balanceOp{op: "credit", symbol: symbol, amount: amount})
	return nil
}

func (r *fakeBalanceRepo) Lock(_ context.Context, profileID, symbol string, amount decimal.Decimal) error {
	if r.lockErr != nil {
		return r.lockErr
	}
	r.ops = append(r.ops, balanceOp{op: "lock", symbol: symbol, amount: amount})
	return nil
}

func (r *fakeBalanceRepo) Unlock(_ context.Context, profileID, symbol string, amount decimal.Decimal) error {
	if r.unlockErr != nil {
		return r.unlockErr
	}
	r.ops = append(r.ops, balanceOp{op: "unlock", symbol: symbol, amount: amount})
	return nil
}

func (r *fakeBalanceRepo) Spend(_ context.Context, profileID, symbol string, amount decimal.Decimal) error {
	r.ops = append(r.ops, balanceOp{op: "spend", symbol: symbol, amount: amount})
	return nil
}

type fakeTraderRepo struct {
	traders map[string]*domain.Trader
	deleted []string
	nextID  int
}

func newFakeTraderRepo() *fakeTraderRepo {
	return &fakeTraderRepo{traders: map[string]*domain.Trader{}}
}

func (r *fakeTraderRepo) add(trader *domain.Trader) *domain.Trader {
	if trader.ID == "" {
		r.nextID++
		trader.ID = fmt.Sprintf("trader-%d", r.nextID)
	}
	r.traders[trader.ID] = trader
	return trader
}

func (r *fakeTraderRepo) Create(_ context.Context, trader *domain.Trader) error {
	r.add(trader)
	return nil
}

func (r *fakeTraderRepo) Update(_ context.Context, trader *domain.Trader) error {
	if _, ok := r.traders[trader.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.traders[trader.ID] = trader
	return nil
}

func (r *fakeTraderRepo) GetByID(_ context.Context, id string) (*domain.Trader, error) {
	trader, ok := r.traders[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *trader
	return &clone, nil
}

func (r *fakeTraderRepo) List(_ context.Context, activeOnly bool, limit, offset int) ([]domain.Trader, error) {
	var result []domain.Trader
	for _, trader := range r.traders {
		if activeOnly && !trader.Active {
			continue
		}
		result = append(result, *trader)
	}
	return result, nil
}

func (r *fakeTraderRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.traders[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.traders, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeCopyPositionRepo struct {
	positions map[string]*domain.CopyPosition
	nextID    int
	closeErr  error
}

func newFakeCopyPositionRepo() *fakeCopyPositionRepo {
	return &fakeCopyPositionRepo{positions: map[string]*domain.CopyPosition{}}
}

func (r *fakeCopyPositionRepo) Create(_ context.Context, position *domain.CopyPosition) error {
	r.nextID++
	position.ID = fmt.Sprintf("pos-%d", r.nextID)
	position.OpenedAt = time.Now()
	r.positions[position.ID] = position
	return nil
}

func (r *fakeCopyPositionRepo) GetByID(_ context.Context, id string) (*domain.CopyPosition, error) {
	position, ok := r.positions[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *position
	return &clone, nil
}

func (r *fakeCopyPositionRepo) ListByProfile(_ context.Context, profileID string, limit, offset int) ([]domain.CopyPosition, error) {
	var result []domain.CopyPosition
	for _, position := range r.positions {
		if position.ProfileID == profileID {
			result = append(result, *position)
		}
	}
	return result, nil
}

func (r *fakeCopyPositionRepo) Close(_ context.Context, id string) error {
	if r.closeErr != nil {
		return r.closeErr
	}
	position, ok := r.positions[id]
	if !ok || position.Status != domain.CopyPositionActive {
		return pgx.ErrNoRows
	}
	position.Status = domain.CopyPositionClosed
	now := time.Now()
	position.ClosedAt = &now
	return nil
}

func (r *fakeCopyPositionRepo) CountActiveByTrader(_ context.Context, traderID string) (int, error) {
	count := 0
	for _, position := range r.positions {
		if position.TraderID == traderID && position.Status == domain.CopyPositionActive {
			count++
		}
	}
	return count, nil
}

type fakeTokenRepo struct {
	tokens  map[string]*domain.BaseToken
	listErr error
	calls   int
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]*domain.BaseToken{}}
}

func (r *fakeTokenRepo) ListActive(_ context.Context) ([]domain.BaseToken, error) {
	r.calls++
	if r.listErr != nil {
		return nil, r.listErr
	}
	var result []domain.BaseToken
	for _, token := range r.tokens {
		if token.IsActive {
			result = append(result, *token)
		}
	}
	return result, nil
}

func (r *fakeTokenRepo) GetBySymbol(_ context.Context, symbol string) (*domain.BaseToken, error) {
	token, ok := r.tokens[symbol]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *token
	return &clone, nil
}

type fakeVaultRepo struct {
	vaults  map[string]*domain.EarnVault
	deleted []string
	nextID  int
}

func newFakeVaultRepo() *fakeVaultRepo {
	return &fakeVaultRepo{vaults: map[string]*domain.EarnVault{}}
}

func (r *fakeVaultRepo) add(vault *domain.EarnVault) *domain.EarnVault {
	if vault.ID == "" {
		r.nextID++
		vault.ID = fmt.Sprintf("vault-%d", r.nextID)
	}
	r.vaults[vault.ID] = vault
	return vault
}

func (r *fakeVaultRepo) Create(_ context.Context, vault *domain.EarnVault) error {
	r.add(vault)
	return nil
}

func (r *fakeVaultRepo) Update(_ context.Context, vault *domain.EarnVault) error {
	if _, ok := r.vaults[vault.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.vaults[vault.ID] = vault
	return nil
}

func (r *fakeVaultRepo) GetByID(_ context.Context, id string) (*domain.EarnVault, error) {
	vault, ok := r.vaults[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *vault
	return &clone, nil
}

func (r *fakeVaultRepo) ListActive(_ context.Context) ([]domain.EarnVault, error) {
	var result []domain.EarnVault
	for _, vault := range r.vaults {
		if vault.Active {
			result = append(result, *vault)
		}
	}
	return result, nil
}

func (r *fakeVaultRepo) ListAll(_ context.Context) ([]domain.EarnVault, error) {
	var result []domain.EarnVault
	for _, vault := range r.vaults {
		result = append(result, *vault)
	}
	return result, nil
}

func (r *fakeVaultRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.vaults[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.vaults, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeEarnPositionRepo struct {
	positions  map[string]*domain.EarnPosition
	nextID     int
	releaseErr error
}

func newFakeEarnPositionRepo() *fakeEarnPositionRepo {
	return &fakeEarnPositionRepo{positions: map[string]*domain.EarnPosition{}}
}

func (r *fakeEarnPositionRepo) Create(_ context.Context, position *domain.EarnPosition) error {
	r.nextID++
	position.ID = fmt.Sprintf("earn-%d", r.nextID)
	position.OpenedAt = time.Now()
	r.positions[position.ID] = position
	return nil
}

func (r *fakeEarnPositionRepo) GetByID(_ context.Context, id string) (*domain.EarnPosition, error) {
	position, ok := r.positions[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *position
	return &clone, nil
}

func (r *fakeEarnPositionRepo) ListByProfile(_ context.Context, profileID string, limit, offset int) ([]domain.EarnPosition, error) {
	var result []domain.EarnPosition
	for _, position := range r.positions {
		if position.ProfileID == profileID {
			result = append(result, *position)
		}
	}
	return result, nil
}

func (r *fakeEarnPositionRepo) Release(_ context.Context, id string) error {
	if r.releaseErr != nil {
		return r.releaseErr
	}
	position, ok := r.positions[id]
	if !ok || position.Status != domain.EarnPositionActive {
		return pgx.ErrNoRows
	}
	position.Status = domain.EarnPositionReleased
	now := time.Now()
	position.ReleasedAt = &now
	return nil
}

func (r *fakeEarnPositionRepo) CountActiveByVault(_ context.Context, vaultID string) (int, error) {
	count := 0
	for _, position := range r.positions {
		if position.VaultID == vaultID && position.Status == domain.EarnPositionActive {
			count++
		}
	}
	return count, nil
}

type fakeDedupe struct {
	marks   map[string]bool
	markErr error
}

func newFakeDedupe() *fakeDedupe {
	return &fakeDedupe{marks: map[string]bool{}}
}

func (d *fakeDedupe) MarkOnce(_ context.Context, key string, _ time.Duration) (bool, error) {
	if d.markErr != nil {
		return false, d.markErr
	}
	if d.marks[key] {
		return false, nil
	}
	d.marks[key] = true
	return true, nil
}

func (d *fakeDedupe) ClearMark(_ context.Context, key string) error {
	delete(d.marks, key)
	return nil
}

type fakeInvoiceClient struct {
	invoice  *payments.Invoice
	err      error
	requests []payments.InvoiceRequest
}

func (c *fakeInvoiceClient) CreateInvoice(_ context.Context, req payments.InvoiceRequest) (*payments.Invoice, error) {
	c.requests = append(c.requests, req)
	if c.err != nil {
		return nil, c.err
	}
	return c.invoice, nil
}

type fakeTicketRepo struct {
	tickets map[string]*domain.SupportTicket
	nextID  int
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: map[string]*domain.SupportTicket{}}
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.SupportTicket) error {
	r.nextID++
	ticket.ID = fmt.Sprintf("ticket-%d", r.nextID)
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	r.tickets[ticket.ID] = ticket
	return nil
}

func (r *fakeTicketRepo) Update(_ context.Context, ticket *domain.SupportTicket) error {
	if _, ok := r.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	ticket.UpdatedAt = time.Now()
	r.tickets[ticket.ID] = ticket
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.SupportTicket, error) {
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *ticket
	return &clone, nil
}

func (r *fakeTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.SupportTicket, error) {
	var result []domain.SupportTicket
	for _, ticket := range r.tickets {
		if filter.ProfileID != nil && ticket.ProfileID != *filter.ProfileID {
			continue
		}
		if len(filter.Statuses) > 0 {
			match := false
			for _, status := range filter.Statuses {
				if ticket.Status == status {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		result = append(result, *ticket)
	}
	return result, nil
}

type fakeTicketMessageRepo struct {
	messages []domain.TicketMessage
	nextID   int
}

func (r *fakeTicketMessageRepo) Create(_ context.Context, msg *domain.TicketMessage) error {
	r.nextID++
	msg.ID = fmt.Sprintf("msg-%d", r.nextID)
	msg.CreatedAt = time.Now()
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *fakeTicketMessageRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.TicketMessage, error) {
	var result []domain.TicketMessage
	for _, msg := range r.messages {
		if msg.TicketID == ticketID {
			result = append(result, msg)
		}
	}
	return result, nil
}
