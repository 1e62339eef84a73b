package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ahashem12/LaunchpadX-sub001/internal/domain"
)

type NextStepInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
}

type NextStepPatch struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Completed   *bool      `json:"completed"`
	DueDate     *time.Time `json:"dueDate"`
}

type NextStepUsecase struct {
	repo   NextStepRepository
	access projectAccess
}

func NewNextStepUsecase(repo NextStepRepository, projects ProjectRepository, members MemberRepository) *NextStepUsecase {
	return &NextStepUsecase{
		repo:   repo,
		access: projectAccess{projects: projects, members: members},
	}
}

func (uc *NextStepUsecase) List(ctx context.Context, projectID string) ([]domain.NextStep, error) {
	if _, err := uc.access.projects.Get(ctx, projectID); err != nil {
		return nil, err
	}
	return uc.repo.ListByProject(ctx, projectID)
}

func (uc *NextStepUsecase) Create(ctx context.Context, requesterID, projectID string, input NextStepInput) (domain.NextStep, error) {
	if _, err := uc.access.check(ctx, requesterID, projectID, domain.ActionProjectManage); err != nil {
		return domain.NextStep{}, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return domain.NextStep{}, domain.NewValidationError("title", "title is required")
	}

	now := time.Now().UTC()
	return uc.repo.Create(ctx, domain.NextStep{
		ID:          uuid.NewString(),
		ProjectID:   projectID,
		Title:       title,
		Description: input.Description,
		DueDate:     input.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (uc *NextStepUsecase) Update(ctx context.Context, requesterID, id string, patch NextStepPatch) (domain.NextStep, error) {
	step, err := uc.repo.Get(ctx, id)
	if err != nil {
		return domain.NextStep{}, err
	}
	if _, err := uc.access.check(ctx, requesterID, step.ProjectID, domain.ActionProjectManage); err != nil {
		return domain.NextStep{}, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return domain.NextStep{}, domain.NewValidationError("title", "title cannot be empty")
		}
		step.Title = title
	}
	if patch.Description != nil {
		step.Description = *patch.Description
	}
	if patch.Completed != nil {
		step.Completed = *patch.Completed
	}
	if patch.DueDate != nil {
		step.DueDate = patch.DueDate
	}
	step.UpdatedAt = time.Now().UTC()

	return uc.repo.Update(ctx, step)
}

func (uc *NextStepUsecase) Delete(ctx context.Context, requesterID, id string) error {
	step, err := uc.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if _, err := uc.access.check(ctx, requesterID, step.ProjectID, domain.ActionProjectManage); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}
