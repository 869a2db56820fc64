package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spec-kit/wallet-service/internal/domain"
	"github.com/spec-kit/wallet-service/internal/events"
)

func newEarnFixture() (*EarnService, *fakeVaultRepo, *fakeEarnPositionRepo, *fakeBalanceRepo, *fakeTransactionRepo) {
	vaults := newFakeVaultRepo()
	positions := newFakeEarnPositionRepo()
	balances := &fakeBalanceRepo{}
	transactions := newFakeTransactionRepo()
	svc := NewEarnService(vaults, positions, balances, transactions, events.NewInMemoryDispatcher())
	return svc, vaults, positions, balances, transactions
}

func TestStakeSetsMaturity(t *testing.T) {
	svc, vaults, _, balances, _ := newEarnFixture()
	vault := vaults.add(&domain.EarnVault{
		Symbol:   "ETH",
		Name:     "ETH 30d",
		LockDays: 30,
		MinStake: decimal.NewFromInt(1),
		Active:   true,
	})
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }

	position, err := svc.Stake(context.Background(), "profile-1", vault.ID, decimal.NewFromInt(2))
	if err != nil {
		t.Fatalf("stake: %v", err)
	}
	want := start.Add(30 * 24 * time.Hour)
	if !position.MaturesAt.Equal(want) {
		t.Fatalf("matures_at = %s, want %s", position.MaturesAt, want)
	}
	if len(balances.ops) != 1 || balances.ops[0].op != "lock" {
		t.Fatalf("balance ops = %+v, want one lock", balances.ops)
	}
}

func TestStakeBelowMinimumRejected(t *testing.T) {
	svc, vaults, _, _, _ := newEarnFixture()
	vault := vaults.add(&domain.EarnVault{
		Symbol:   "ETH",
		Name:     "ETH 30d",
		MinStake: decimal.NewFromInt(10),
		Active:   true,
	})

	_, err := svc.Stake(context.Background(), "profile-1", vault.ID, decimal.NewFromInt(5))
	assertHTTPStatus(t, err, 400)
}

func TestStakeInactiveVaultRejected(t *testing.T) {
	svc, vaults, _, _, _ := newEarnFixture()
	vault := vaults.add(&domain.EarnVault{Symbol: "ETH", Name: "ETH 30d", Active: false})

	_, err := svc.Stake(context.Background(), "profile-1", vault.ID, decimal.NewFromInt(5))
	assertHTTPStatus(t, err, 400)
}

func TestWithdrawBeforeMaturityConflicts(t *testing.T) {
	svc, vaults, _, _, _ := newEarnFixture()
	vault := vaults.add(&domain.EarnVault{
		Symbol:   "ETH",
		Name:     "ETH 30d",
		LockDays: 30,
		Active:   true,
	})
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }

	position, err := svc.Stake(context.Background(), "profile-1", vault.ID, decimal.NewFromInt(2))
	if err != nil {
		t.Fatalf("stake: %v", err)
	}

	svc.now = func() time.Time { return start.Add(10 * 24 * time.Hour) }
	_, err = svc.Withdraw(context.Background(), "profile-1", position.ID)
	assertHTTPStatus(t, err, 409)
}

func TestWithdrawAfterMaturityUnlocks(t *testing.T) {
	svc, vaults, _, balances, _ := newEarnFixture()
	vault := vaults.add(&domain.EarnVault{
		Symbol:   "ETH",
		Name:     "ETH 30d",
		LockDays: 30,
		Active:   true,
	})
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }

	position, err := svc.Stake(context.Background(), "profile-1", vault.ID, decimal.NewFromInt(2))
	if err != nil {
		t.Fatalf("stake: %v", err)
	}

	svc.now = func() time.Time { return start.Add(31 * 24 * time.Hour) }
	released, err := svc.Withdraw(context.Background(), "profile-1", position.ID)
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if released.Status != domain.EarnPositionReleased {
		t.Fatalf("status = %s, want released", released.Status)
	}
	last := balances.ops[len(balances.ops)-1]
	if last.op != "unlock" || !last.amount.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("last balance op = %+v, want unlock 2", last)
	}
}

func TestWithdrawForeignOwnerReadsNotFound(t *testing.T) {
	svc, vaults, _, _, _ := newEarnFixture()
	vault := vaults.add(&domain.EarnVault{Symbol: "ETH", Name: "ETH flex", Active: true})

	position, err := svc.Stake(context.Background(), "profile-1", vault.ID, decimal.NewFromInt(2))
	if err != nil {
		t.Fatalf("stake: %v", err)
	}
	_, err = svc.Withdraw(context.Background(), "profile-2", position.ID)
	assertHTTPStatus(t, err, 404)
}

func TestStakeRecordsLedgerEntry(t *testing.T) {
	svc, vaults, _, _, transactions := newEarnFixture()
	vault := vaults.add(&domain.EarnVault{Symbol: "ETH", Name: "ETH flex", Active: true})

	if _, err := svc.Stake(context.Background(), "profile-1", vault.ID, decimal.NewFromInt(2)); err != nil {
		t.Fatalf("stake: %v", err)
	}
	entries := transactions.byKind(domain.TxKindEarnDeposit)
	if len(entries) != 1 {
		t.Fatalf("ledger entries = %d, want 1", len(entries))
	}
	if entries[0].Status != domain.TxStatusCompleted || !entries[0].Amount.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("ledger entry = %+v, want completed earn_deposit of 2", entries[0])
	}
}

func TestWithdrawRecordsLedgerEntry(t *testing.T) {
	svc, vaults, _, _, transactions := newEarnFixture()
	vault := vaults.add(&domain.EarnVault{Symbol: "ETH", Name: "ETH flex", Active: true})

	position, err := svc.Stake(context.Background(), "profile-1", vault.ID, decimal.NewFromInt(2))
	if err != nil {
		t.Fatalf("stake: %v", err)
	}
	if _, err := svc.Withdraw(context.Background(), "profile-1", position.ID); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	entries := transactions.byKind(domain.TxKindEarnWithdrawal)
	if len(entries) != 1 {
		t.Fatalf("ledger entries = %d, want 1", len(entries))
	}
}

func TestWithdrawRetryableAfterUnlockFailure(t *testing.T) {
	svc, vaults, positions, balances, _ := newEarnFixture()
	vault := vaults.add(&domain.EarnVault{Symbol: "ETH", Name: "ETH flex", Active: true})

	position, err := svc.Stake(context.Background(), "profile-1", vault.ID, decimal.NewFromInt(2))
	if err != nil {
		t.Fatalf("stake: %v", err)
	}

	balances.unlockErr = errors.New("balances unavailable")
	if _, err := svc.Withdraw(context.Background(), "profile-1", position.ID); err == nil {
		t.Fatal("expected error when unlock fails")
	}
	if positions.positions[position.ID].Status != domain.EarnPositionActive {
		t.Fatal("position must stay active while the stake is still locked")
	}

	balances.unlockErr = nil
	released, err := svc.Withdraw(context.Background(), "profile-1", position.ID)
	if err != nil {
		t.Fatalf("retry withdraw: %v", err)
	}
	if released.Status != domain.EarnPositionReleased {
		t.Fatalf("status = %s, want released", released.Status)
	}
}

func TestWithdrawRelocksWhenReleaseFails(t *testing.T) {
	svc, vaults, positions, balances, _ := newEarnFixture()
	vault := vaults.add(&domain.EarnVault{Symbol: "ETH", Name: "ETH flex", Active: true})

	position, err := svc.Stake(context.Background(), "profile-1", vault.ID, decimal.NewFromInt(2))
	if err != nil {
		t.Fatalf("stake: %v", err)
	}

	positions.releaseErr = errors.New("storage offline")
	if _, err := svc.Withdraw(context.Background(), "profile-1", position.ID); err == nil {
		t.Fatal("expected error when release fails")
	}
	last := balances.ops[len(balances.ops)-1]
	if last.op != "lock" {
		t.Fatalf("last balance op = %+v, want compensating lock", last)
	}
	if positions.positions[position.ID].Status != domain.EarnPositionActive {
		t.Fatal("position must stay active after a failed release")
	}
}

func TestDeleteVaultWithActivePositionsConflicts(t *testing.T) {
	svc, vaults, _, _, _ := newEarnFixture()
	vault := vaults.add(&domain.EarnVault{Symbol: "ETH", Name: "ETH flex", Active: true})

	if _, err := svc.Stake(context.Background(), "profile-1", vault.ID, decimal.NewFromInt(2)); err != nil {
		t.Fatalf("stake: %v", err)
	}
	err := svc.DeleteVault(context.Background(), vault.ID)
	assertHTTPStatus(t, err, 409)
}
