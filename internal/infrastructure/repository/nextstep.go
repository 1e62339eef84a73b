package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ahashem12/LaunchpadX-sub001/internal/domain"
	"github.com/ahashem12/LaunchpadX-sub001/internal/infrastructure/database/models"
)

type NextStepRepository struct {
	db *gorm.DB
}

func NewNextStepRepository(db *gorm.DB) *NextStepRepository {
	return &NextStepRepository{db: db}
}

func nextStepDomain(m models.NextStep) domain.NextStep {
	return domain.NextStep{
		ID:          m.ID,
		ProjectID:   m.ProjectID,
		Title:       m.Title,
		Description: m.Description,
		Completed:   m.Completed,
		DueDate:     m.DueDate,
		CreatedAt:   m.CDate,
		UpdatedAt:   m.MDate,
	}
}

func (r *NextStepRepository) ListByProject(ctx context.Context, projectID string) ([]domain.NextStep, error) {
	var rows []models.NextStep
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("completed ASC, due_date ASC NULLS LAST, c_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "list next steps")
	}

	steps := make([]domain.NextStep, 0, len(rows))
	for _, row := range rows {
		steps = append(steps, nextStepDomain(row))
	}
	return steps, nil
}

func (r *NextStepRepository) Get(ctx context.Context, id string) (domain.NextStep, error) {
	var model models.NextStep
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		return domain.NextStep{}, translate(err, "next step", "get next step")
	}
	return nextStepDomain(model), nil
}

func (r *NextStepRepository) Create(ctx context.Context, step domain.NextStep) (domain.NextStep, error) {
	model := models.NextStep{
		ID:          step.ID,
		ProjectID:   step.ProjectID,
		Title:       step.Title,
		Description: step.Description,
		Completed:   step.Completed,
		DueDate:     step.DueDate,
		CDate:       step.CreatedAt,
		MDate:       step.UpdatedAt,
	}
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&model).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return domain.NextStep{}, domain.NotFoundError{Resource: "project"}
	}
	if err != nil {
		return domain.NextStep{}, errors.Wrap(err, "create next step")
	}
	return nextStepDomain(model), nil
}

func (r *NextStepRepository) Update(ctx context.Context, step domain.NextStep) (domain.NextStep, error) {
	res := r.db.WithContext(ctx).
		Model(&models.NextStep{}).
		Where("id = ?", step.ID).
		Updates(map[string]any{
			"title":       step.Title,
			"description": step.Description,
			"completed":   step.Completed,
			"due_date":    step.DueDate,
			"m_date":      step.UpdatedAt,
		})
	if res.Error != nil {
		return domain.NextStep{}, errors.Wrap(res.Error, "update next step")
	}
	if res.RowsAffected == 0 {
		return domain.NextStep{}, domain.NotFoundError{Resource: "next step"}
	}
	return r.Get(ctx, step.ID)
}

func (r *NextStepRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.NextStep{}, "id = ?", id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete next step")
	}
	if res.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "next step"}
	}
	return nil
}
