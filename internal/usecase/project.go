package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ahashem12/LaunchpadX-sub001/internal/domain"
)

type ProjectInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Stage       string `json:"stage"`
}

// ProjectPatch updates only the fields that are set.
type ProjectPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Stage       *string `json:"stage"`
}

type ProjectUsecase struct {
	repo   ProjectRepository
	access projectAccess
}

func NewProjectUsecase(repo ProjectRepository, members MemberRepository) *ProjectUsecase {
	return &ProjectUsecase{
		repo:   repo,
		access: projectAccess{projects: repo, members: members},
	}
}

func (uc *ProjectUsecase) Create(ctx context.Context, requesterID string, input ProjectInput) (domain.Project, error) {
	if requesterID == "" {
		return domain.Project{}, domain.ErrUnauthenticated
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return domain.Project{}, domain.NewValidationError("title", "title is required")
	}

	now := time.Now().UTC()
	project := domain.Project{
		ID:          uuid.NewString(),
		OwnerID:     requesterID,
		Title:       title,
		Description: input.Description,
		Category:    input.Category,
		Stage:       input.Stage,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	return uc.repo.Create(ctx, project)
}

func (uc *ProjectUsecase) Get(ctx context.Context, id string) (domain.Project, error) {
	return uc.repo.Get(ctx, id)
}

func (uc *ProjectUsecase) List(ctx context.Context, filter domain.ProjectFilter) ([]domain.Project, error) {
	return uc.repo.List(ctx, filter)
}

func (uc *ProjectUsecase) Update(ctx context.Context, requesterID, id string, patch ProjectPatch) (domain.Project, error) {
	project, err := uc.access.check(ctx, requesterID, id, domain.ActionProjectUpdate)
	if err != nil {
		return domain.Project{}, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return domain.Project{}, domain.NewValidationError("title", "title cannot be empty")
		}
		project.Title = title
	}
	if patch.Description != nil {
		project.Description = *patch.Description
	}
	if patch.Category != nil {
		project.Category = *patch.Category
	}
	if patch.Stage != nil {
		project.Stage = *patch.Stage
	}
	project.UpdatedAt = time.Now().UTC()

	return uc.repo.Update(ctx, project)
}

func (uc *ProjectUsecase) Delete(ctx context.Context, requesterID, id string) error {
	_, err := uc.access.check(ctx, requesterID, id, domain.ActionProjectDelete)
	if err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}
