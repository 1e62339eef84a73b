package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/ahashem12/LaunchpadX-sub001/internal/domain"
)

func TestNextStepUsecase(t *testing.T) {
	f := newFixture()
	f.seedProject("p1")
	uc := NewNextStepUsecase(f.steps, f.projects, f.members)

	step, err := uc.Create(context.Background(), "owner", "p1", NextStepInput{Title: "Register company"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	done := true
	updated, err := uc.Update(context.Background(), "admin", step.ID, NextStepPatch{Completed: &done})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if !updated.Completed || updated.Title != "Register company" {
		t.Fatalf("unexpected step %+v", updated)
	}

	if _, err := uc.Update(context.Background(), "admin", step.ID, NextStepPatch{Title: strPtr(" ")}); err == nil {
		t.Fatalf("expected empty title to be rejected")
	}
	if err := uc.Delete(context.Background(), "stranger", step.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := uc.Delete(context.Background(), "owner", step.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	steps, err := uc.List(context.Background(), "p1")
	if err != nil || len(steps) != 0 {
		t.Fatalf("expected no steps, got %+v %v", steps, err)
	}

	if _, err := uc.List(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
