package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/spec-kit/wallet-service/internal/domain"
	"github.com/spec-kit/wallet-service/internal/events"
	apperrors "github.com/spec-kit/wallet-service/pkg/util"
)

func newKYCFixture() (*KYCService, *fakeProfileRepo, *fakeKYCRepo, *fakeTransactionRepo) {
	profiles := newFakeProfileRepo()
	submissions := newFakeKYCRepo()
	transactions := newFakeTransactionRepo()
	svc := NewKYCService(profiles, submissions, transactions, events.NewInMemoryDispatcher())
	return svc, profiles, submissions, transactions
}

func TestKYCStatusReportsRemaining(t *testing.T) {
	svc, profiles, submissions, transactions := newKYCFixture()
	profile := profiles.add(&domain.Profile{Email: "a@example.com", Role: domain.RoleUser, KYCTier: 1})
	submissions.limits[1] = domain.KYCTransactionLimit{
		Tier:           1,
		DailyLimit:     decimal.NewFromInt(1000),
		SingleTxnLimit: decimal.NewFromInt(500),
	}
	transactions.sum = decimal.NewFromInt(300)

	status, err := svc.Status(context.Background(), profile.ID)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Limits == nil {
		t.Fatal("expected limits to be populated")
	}
	if got := status.Limits.RemainingToday; !got.Equal(decimal.NewFromInt(700)) {
		t.Fatalf("remaining = %s, want 700", got)
	}
}

func TestKYCStatusClampsRemainingAtZero(t *testing.T) {
	svc, profiles, submissions, transactions := newKYCFixture()
	profile := profiles.add(&domain.Profile{Email: "a@example.com", Role: domain.RoleUser, KYCTier: 0})
	submissions.limits[0] = domain.KYCTransactionLimit{
		Tier:       0,
		DailyLimit: decimal.NewFromInt(100),
	}
	transactions.sum = decimal.NewFromInt(250)

	status, err := svc.Status(context.Background(), profile.ID)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !status.Limits.RemainingToday.IsZero() {
		t.Fatalf("remaining = %s, want 0", status.Limits.RemainingToday)
	}
}

func TestKYCStatusWithoutLimitRow(t *testing.T) {
	svc, profiles, _, _ := newKYCFixture()
	profile := profiles.add(&domain.Profile{Email: "a@example.com", Role: domain.RoleUser, KYCTier: 3})

	status, err := svc.Status(context.Background(), profile.ID)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Limits != nil {
		t.Fatal("expected nil limits when tier has no limit row")
	}
	if status.Tier != 3 {
		t.Fatalf("tier = %d, want 3", status.Tier)
	}
}

func TestKYCSubmitRejectsLowerTier(t *testing.T) {
	svc, profiles, _, _ := newKYCFixture()
	profile := profiles.add(&domain.Profile{Email: "a@example.com", Role: domain.RoleUser, KYCTier: 2})

	_, err := svc.Submit(context.Background(), profile.ID, 1, "passport", "doc-1")
	assertHTTPStatus(t, err, 400)
}

func TestKYCSubmitRejectsSecondPending(t *testing.T) {
	svc, profiles, _, _ := newKYCFixture()
	profile := profiles.add(&domain.Profile{Email: "a@example.com", Role: domain.RoleUser, KYCTier: 0})

	if _, err := svc.Submit(context.Background(), profile.ID, 1, "passport", "doc-1"); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	_, err := svc.Submit(context.Background(), profile.ID, 2, "passport", "doc-2")
	assertHTTPStatus(t, err, 409)
}

func TestKYCReviewApprovalRaisesTier(t *testing.T) {
	svc, profiles, _, _ := newKYCFixture()
	user := profiles.add(&domain.Profile{Email: "a@example.com", Role: domain.RoleUser, KYCTier: 0})
	reviewer := profiles.add(&domain.Profile{Email: "admin@example.com", Role: domain.RoleAdmin})

	sub, err := svc.Submit(context.Background(), user.ID, 2, "passport", "doc-1")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	reviewed, err := svc.Review(context.Background(), reviewer.ID, sub.ID, true, "looks good")
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if reviewed.Status != domain.KYCStatusApproved {
		t.Fatalf("status = %s, want approved", reviewed.Status)
	}
	updated, _ := profiles.GetByID(context.Background(), user.ID)
	if updated.KYCTier != 2 {
		t.Fatalf("tier = %d, want 2", updated.KYCTier)
	}
}

func TestKYCReviewRejectionKeepsTier(t *testing.T) {
	svc, profiles, _, _ := newKYCFixture()
	user := profiles.add(&domain.Profile{Email: "a@example.com", Role: domain.RoleUser, KYCTier: 0})
	reviewer := profiles.add(&domain.Profile{Email: "admin@example.com", Role: domain.RoleAdmin})

	sub, err := svc.Submit(context.Background(), user.ID, 1, "passport", "doc-1")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	reviewed, err := svc.Review(context.Background(), reviewer.ID, sub.ID, false, "blurry scan")
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if reviewed.Status != domain.KYCStatusRejected {
		t.Fatalf("status = %s, want rejected", reviewed.Status)
	}
	updated, _ := profiles.GetByID(context.Background(), user.ID)
	if updated.KYCTier != 0 {
		t.Fatalf("tier = %d, want 0", updated.KYCTier)
	}
}

func TestKYCReviewTwiceConflicts(t *testing.T) {
	svc, profiles, _, _ := newKYCFixture()
	user := profiles.add(&domain.Profile{Email: "a@example.com", Role: domain.RoleUser})
	reviewer := profiles.add(&domain.Profile{Email: "admin@example.com", Role: domain.RoleAdmin})

	sub, err := svc.Submit(context.Background(), user.ID, 1, "passport", "doc-1")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.Review(context.Background(), reviewer.ID, sub.ID, true, ""); err != nil {
		t.Fatalf("first review: %v", err)
	}
	_, err = svc.Review(context.Background(), reviewer.ID, sub.ID, false, "")
	assertHTTPStatus(t, err, 409)
}

func assertHTTPStatus(t *testing.T, err error, want int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with status %d, got nil", want)
	}
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected DomainError, got %T: %v", err, err)
	}
	if domainErr.HTTPStatus != want {
		t.Fatalf("status = %d, want %d (%v)", domainErr.HTTPStatus, want, err)
	}
}
