package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ahashem12/LaunchpadX-sub001/internal/domain"
	"github.com/ahashem12/LaunchpadX-sub001/internal/infrastructure/database/models"
)

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func roleDomain(m models.Role) domain.Role {
	return domain.Role{
		ID:          m.ID,
		ProjectID:   m.ProjectID,
		Title:       m.Title,
		Description: m.Description,
		Skills:      stringsOrEmpty(m.Skills),
		Status:      domain.RoleStatus(m.Status),
		CreatedAt:   m.CDate,
	}
}

func (r *RoleRepository) Create(ctx context.Context, role domain.Role) (domain.Role, error) {
	model := models.Role{
		ID:          role.ID,
		ProjectID:   role.ProjectID,
		Title:       role.Title,
		Description: role.Description,
		Skills:      role.Skills,
		Status:      string(role.Status),
		CDate:       role.CreatedAt,
	}
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&model).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return domain.Role{}, domain.NotFoundError{Resource: "project"}
	}
	if err != nil {
		return domain.Role{}, errors.Wrap(err, "create role")
	}
	return roleDomain(model), nil
}

func (r *RoleRepository) Get(ctx context.Context, id string) (domain.Role, error) {
	var model models.Role
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		return domain.Role{}, translate(err, "role", "get role")
	}
	return roleDomain(model), nil
}

func (r *RoleRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Role, error) {
	var rows []models.Role
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("c_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "list roles")
	}

	roles := make([]domain.Role, 0, len(rows))
	for _, row := range rows {
		roles = append(roles, roleDomain(row))
	}
	return roles, nil
}

func stringsOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
