package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/ahashem12/LaunchpadX-sub001/internal/domain"
)

func newRoleFixture(t *testing.T) (*fixture, *RoleUsecase, domain.Role) {
	t.Helper()
	f := newFixture()
	f.seedProject("p1")
	uc := NewRoleUsecase(f.roles, f.applications, f.projects, f.members, f.publisher)

	role, err := uc.Create(context.Background(), "owner", "p1", RoleInput{Title: "CTO"})
	if err != nil {
		t.Fatalf("create role failed: %v", err)
	}
	return f, uc, role
}

func TestRoleUsecaseCreate(t *testing.T) {
	_, uc, role := newRoleFixture(t)

	if role.Status != domain.RoleStatusOpen || role.Skills == nil {
		t.Fatalf("unexpected role %+v", role)
	}
	if _, err := uc.Create(context.Background(), "stranger", "p1", RoleInput{Title: "CFO"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestRoleUsecaseApply(t *testing.T) {
	f, uc, role := newRoleFixture(t)

	app, err := uc.GetApplication(context.Background(), "user-9", role.ID)
	if err != nil || app != nil {
		t.Fatalf("expected no application yet, got %+v %v", app, err)
	}

	submitted, err := uc.Apply(context.Background(), "user-9", role.ID, " hello ")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if submitted.Status != domain.ApplicationPending || submitted.Message != "hello" {
		t.Fatalf("unexpected application %+v", submitted)
	}

	app, err = uc.GetApplication(context.Background(), "user-9", role.ID)
	if err != nil || app == nil || app.ID != submitted.ID {
		t.Fatalf("expected stored application, got %+v %v", app, err)
	}

	_, err = uc.Apply(context.Background(), "user-9", role.ID, "again")
	if !errors.Is(err, domain.ErrAlreadyApplied) {
		t.Fatalf("expected already applied, got %v", err)
	}

	if len(f.publisher.events) != 1 || f.publisher.events[0].Type != EventApplicationSubmitted {
		t.Fatalf("expected one submitted event, got %+v", f.publisher.events)
	}
}

func TestRoleUsecaseApplyRejectsMembers(t *testing.T) {
	_, uc, role := newRoleFixture(t)

	var conflict domain.ConflictError
	if _, err := uc.Apply(context.Background(), "admin", role.ID, ""); !errors.As(err, &conflict) {
		t.Fatalf("expected conflict for existing member, got %v", err)
	}
	if _, err := uc.Apply(context.Background(), "", role.ID, ""); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
	if _, err := uc.Apply(context.Background(), "user-9", "missing", ""); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRoleUsecaseReviewAccept(t *testing.T) {
	f, uc, role := newRoleFixture(t)
	app, err := uc.Apply(context.Background(), "user-9", role.ID, "")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	if _, err := uc.Review(context.Background(), "user-9", app.ID, domain.ApplicationAccepted); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected applicant review to be forbidden, got %v", err)
	}

	reviewed, err := uc.Review(context.Background(), "admin", app.ID, domain.ApplicationAccepted)
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if reviewed.Status != domain.ApplicationAccepted {
		t.Fatalf("unexpected status %s", reviewed.Status)
	}
	if _, err := f.members.Get(context.Background(), "p1", "user-9"); err != nil {
		t.Fatalf("expected applicant to become member: %v", err)
	}
	if f.roles.roles[role.ID].Status != domain.RoleStatusFilled {
		t.Fatalf("expected role to be filled")
	}

	if _, err := uc.Apply(context.Background(), "user-10", role.ID, ""); !errors.Is(err, domain.ErrRoleNotOpen) {
		t.Fatalf("expected role not open, got %v", err)
	}

	var conflict domain.ConflictError
	if _, err := uc.Review(context.Background(), "owner", app.ID, domain.ApplicationRejected); !errors.As(err, &conflict) {
		t.Fatalf("expected second review to conflict, got %v", err)
	}

	last := f.publisher.events[len(f.publisher.events)-1]
	if last.Type != EventApplicationAccepted || last.Application.ID != app.ID {
		t.Fatalf("unexpected last event %+v", last)
	}
}

func TestRoleUsecaseReviewReject(t *testing.T) {
	_, uc, role := newRoleFixture(t)
	app, _ := uc.Apply(context.Background(), "user-9", role.ID, "")

	if _, err := uc.Review(context.Background(), "owner", app.ID, domain.ApplicationPending); err == nil {
		t.Fatalf("expected invalid status to fail")
	}

	reviewed, err := uc.Review(context.Background(), "owner", app.ID, domain.ApplicationRejected)
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if reviewed.Status != domain.ApplicationRejected {
		t.Fatalf("unexpected status %s", reviewed.Status)
	}

	apps, err := uc.ListApplications(context.Background(), "owner", role.ID)
	if err != nil || len(apps) != 1 {
		t.Fatalf("expected one application, got %+v %v", apps, err)
	}
}
