package service

import (
	"context"
	"testing"

	"github.com/spec-kit/wallet-service/internal/domain"
)

func TestAdminSetBannedRejectsSelf(t *testing.T) {
	profiles := newFakeProfileRepo()
	admin := profiles.add(&domain.Profile{Email: "admin@example.com", Role: domain.RoleAdmin})
	svc := NewAdminService(profiles)

	err := svc.SetBanned(context.Background(), admin.ID, admin.ID, true)
	assertHTTPStatus(t, err, 403)
}

func TestAdminSetBanned(t *testing.T) {
	profiles := newFakeProfileRepo()
	admin := profiles.add(&domain.Profile{Email: "admin@example.com", Role: domain.RoleAdmin})
	target := profiles.add(&domain.Profile{Email: "user@example.com", Role: domain.RoleUser})
	svc := NewAdminService(profiles)

	if err := svc.SetBanned(context.Background(), admin.ID, target.ID, true); err != nil {
		t.Fatalf("ban: %v", err)
	}
	updated, _ := profiles.GetByID(context.Background(), target.ID)
	if !updated.Banned {
		t.Fatal("expected target to be banned")
	}

	if err := svc.SetBanned(context.Background(), admin.ID, target.ID, false); err != nil {
		t.Fatalf("unban: %v", err)
	}
	updated, _ = profiles.GetByID(context.Background(), target.ID)
	if updated.Banned {
		t.Fatal("expected target to be unbanned")
	}
}

func TestAdminSetBannedUnknownTarget(t *testing.T) {
	profiles := newFakeProfileRepo()
	admin := profiles.add(&domain.Profile{Email: "admin@example.com", Role: domain.RoleAdmin})
	svc := NewAdminService(profiles)

	err := svc.SetBanned(context.Background(), admin.ID, "missing", true)
	assertHTTPStatus(t, err, 404)
}

func TestAdminSetRoleUnknownTarget(t *testing.T) {
	profiles := newFakeProfileRepo()
	super := profiles.add(&domain.Profile{Email: "root@example.com", Role: domain.RoleSuperAdmin})
	svc := NewAdminService(profiles)

	err := svc.SetRole(context.Background(), super.ID, "missing", domain.RoleAdmin)
	assertHTTPStatus(t, err, 404)
}

func TestAdminSetRoleRejectsSelf(t *testing.T) {
	profiles := newFakeProfileRepo()
	super := profiles.add(&domain.Profile{Email: "root@example.com", Role: domain.RoleSuperAdmin})
	svc := NewAdminService(profiles)

	err := svc.SetRole(context.Background(), super.ID, super.ID, domain.RoleUser)
	assertHTTPStatus(t, err, 403)
}

func TestAdminSetRoleRejectsUnknownRole(t *testing.T) {
	profiles := newFakeProfileRepo()
	super := profiles.add(&domain.Profile{Email: "root@example.com", Role: domain.RoleSuperAdmin})
	target := profiles.add(&domain.Profile{Email: "user@example.com", Role: domain.RoleUser})
	svc := NewAdminService(profiles)

	err := svc.SetRole(context.Background(), super.ID, target.ID, domain.Role("owner"))
	assertHTTPStatus(t, err, 400)
}

func TestAdminSetRole(t *testing.T) {
	profiles := newFakeProfileRepo()
	super := profiles.add(&domain.Profile{Email: "root@example.com", Role: domain.RoleSuperAdmin})
	target := profiles.add(&domain.Profile{Email: "user@example.com", Role: domain.RoleUser})
	svc := NewAdminService(profiles)

	if err := svc.SetRole(context.Background(), super.ID, target.ID, domain.RoleAdmin); err != nil {
		t.Fatalf("set role: %v", err)
	}
	updated, _ := profiles.GetByID(context.Background(), target.ID)
	if updated.Role != domain.RoleAdmin {
		t.Fatalf("role = %s, want admin", updated.Role)
	}
}
