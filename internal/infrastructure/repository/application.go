package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ahashem12/LaunchpadX-sub001/internal/domain"
	"github.com/ahashem12/LaunchpadX-sub001/internal/infrastructure/database/models"
)

var errAlreadyReviewed = domain.ConflictError{Code: domain.CodeConflict, Message: "application has already been reviewed"}

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func applicationDomain(m models.RoleApplication) domain.RoleApplication {
	return domain.RoleApplication{
		ID:          m.ID,
		RoleID:      m.RoleID,
		ApplicantID: m.ApplicantID,
		Status:      domain.ApplicationStatus(m.Status),
		Message:     m.Message,
		AppliedAt:   m.AppliedAt,
	}
}

func (r *ApplicationRepository) Create(ctx context.Context, app domain.RoleApplication) (domain.RoleApplication, error) {
	model := models.RoleApplication{
		ID:          app.ID,
		RoleID:      app.RoleID,
		ApplicantID: app.ApplicantID,
		Status:      string(app.Status),
		Message:     app.Message,
		AppliedAt:   app.AppliedAt,
	}
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&model).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.RoleApplication{}, domain.ErrAlreadyApplied
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return domain.RoleApplication{}, domain.NotFoundError{Resource: "role"}
	}
	if err != nil {
		return domain.RoleApplication{}, errors.Wrap(err, "create application")
	}
	return applicationDomain(model), nil
}

func (r *ApplicationRepository) Get(ctx context.Context, id string) (domain.RoleApplication, error) {
	var model models.RoleApplication
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		return domain.RoleApplication{}, translate(err, "application", "get application")
	}
	return applicationDomain(model), nil
}

func (r *ApplicationRepository) GetByApplicant(ctx context.Context, roleID, applicantID string) (domain.RoleApplication, error) {
	var model models.RoleApplication
	err := r.db.WithContext(ctx).
		Where("role_id = ? AND applicant_id = ?", roleID, applicantID).
		First(&model).Error
	if err != nil {
		return domain.RoleApplication{}, translate(err, "application", "get application by applicant")
	}
	return applicationDomain(model), nil
}

func (r *ApplicationRepository) ListByRole(ctx context.Context, roleID string) ([]domain.RoleApplication, error) {
	var rows []models.RoleApplication
	err := r.db.WithContext(ctx).
		Where("role_id = ?", roleID).
		Order("applied_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "list applications")
	}

	apps := make([]domain.RoleApplication, 0, len(rows))
	for _, row := range rows {
		apps = append(apps, applicationDomain(row))
	}
	return apps, nil
}

func (r *ApplicationRepository) Reject(ctx context.Context, id string) (domain.RoleApplication, error) {
	var model models.RoleApplication
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		model, err = setStatus(tx, id, domain.ApplicationRejected)
		return err
	})
	if err != nil {
		return domain.RoleApplication{}, err
	}
	return applicationDomain(model), nil
}

func (r *ApplicationRepository) Accept(ctx context.Context, id string, member domain.ProjectMember) (domain.RoleApplication, error) {
	var model models.RoleApplication
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		model, err = setStatus(tx, id, domain.ApplicationAccepted)
		if err != nil {
			return err
		}

		err = tx.Model(&models.Role{}).
			Where("id = ?", model.RoleID).
			Update("status", string(domain.RoleStatusFilled)).Error
		if err != nil {
			return errors.Wrap(err, "fill role")
		}

		row := models.ProjectMember{
			ProjectID: member.ProjectID,
			UserID:    member.UserID,
			Role:      string(member.Role),
			JoinedAt:  member.JoinedAt,
		}
		err = tx.Omit(clause.Associations).Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
		if err != nil {
			return errors.Wrap(err, "add accepted member")
		}
		return nil
	})
	if err != nil {
		return domain.RoleApplication{}, err
	}
	return applicationDomain(model), nil
}

// setStatus moves a pending application to status and returns the updated row.
func setStatus(tx *gorm.DB, id string, status domain.ApplicationStatus) (models.RoleApplication, error) {
	var model models.RoleApplication
	if err := tx.First(&model, "id = ?", id).Error; err != nil {
		return model, translate(err, "application", "load application")
	}
	if model.Status != string(domain.ApplicationPending) {
		return model, errAlreadyReviewed
	}

	res := tx.Model(&models.RoleApplication{}).
		Where("id = ? AND status = ?", id, string(domain.ApplicationPending)).
		Update("status", string(status))
	if res.Error != nil {
		return model, errors.Wrap(res.Error, "update application status")
	}
	if res.RowsAffected == 0 {
		return model, errAlreadyReviewed
	}

	model.Status = string(status)
	return model, nil
}
