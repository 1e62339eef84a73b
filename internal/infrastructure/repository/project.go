package repository

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ahashem12/LaunchpadX-sub001/internal/domain"
	"github.com/ahashem12/LaunchpadX-sub001/internal/infrastructure/database/models"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func projectModel(p domain.Project) models.Project {
	return models.Project{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		Stage:       p.Stage,
		CDate:       p.CreatedAt,
		MDate:       p.UpdatedAt,
	}
}

func projectDomain(m models.Project) domain.Project {
	return domain.Project{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		Title:       m.Title,
		Description: m.Description,
		Category:    m.Category,
		Stage:       m.Stage,
		CreatedAt:   m.CDate,
		UpdatedAt:   m.MDate,
	}
}

// Create inserts the project and its owner membership together.
func (r *ProjectRepository) Create(ctx context.Context, project domain.Project) (domain.Project, error) {
	model := projectModel(project)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model).Error; err != nil {
			return err
		}
		owner := models.ProjectMember{
			ProjectID: model.ID,
			UserID:    model.OwnerID,
			Role:      string(domain.MemberRoleOwner),
			JoinedAt:  model.CDate,
		}
		return tx.Omit(clause.Associations).Create(&owner).Error
	})
	if err != nil {
		return domain.Project{}, errors.Wrap(err, "create project")
	}
	return projectDomain(model), nil
}

func (r *ProjectRepository) Get(ctx context.Context, id string) (domain.Project, error) {
	var model models.Project
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		return domain.Project{}, translate(err, "project", "get project")
	}
	return projectDomain(model), nil
}

func (r *ProjectRepository) List(ctx context.Context, filter domain.ProjectFilter) ([]domain.Project, error) {
	query := r.db.WithContext(ctx).Model(&models.Project{})
	if filter.OwnerID != "" {
		query = query.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + escapeLike(q) + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var rows []models.Project
	if err := query.Order("c_date DESC").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "list projects")
	}

	projects := make([]domain.Project, 0, len(rows))
	for _, row := range rows {
		projects = append(projects, projectDomain(row))
	}
	return projects, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project domain.Project) (domain.Project, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ?", project.ID).
		Updates(map[string]any{
			"title":       project.Title,
			"description": project.Description,
			"category":    project.Category,
			"stage":       project.Stage,
			"m_date":      project.UpdatedAt,
		})
	if res.Error != nil {
		return domain.Project{}, errors.Wrap(res.Error, "update project")
	}
	if res.RowsAffected == 0 {
		return domain.Project{}, domain.NotFoundError{Resource: "project"}
	}
	return r.Get(ctx, project.ID)
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Project{}, "id = ?", id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete project")
	}
	if res.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "project"}
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
