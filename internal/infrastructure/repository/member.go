package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ahashem12/LaunchpadX-sub001/internal/domain"
	"github.com/ahashem12/LaunchpadX-sub001/internal/infrastructure/database/models"
)

type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func memberDomain(m models.ProjectMember) domain.ProjectMember {
	return domain.ProjectMember{
		ProjectID: m.ProjectID,
		UserID:    m.UserID,
		Role:      domain.MemberRole(m.Role),
		JoinedAt:  m.JoinedAt,
	}
}

func (r *MemberRepository) List(ctx context.Context, projectID string) ([]domain.ProjectMember, error) {
	var rows []models.ProjectMember
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("joined_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "list members")
	}

	members := make([]domain.ProjectMember, 0, len(rows))
	for _, row := range rows {
		members = append(members, memberDomain(row))
	}
	return members, nil
}

func (r *MemberRepository) Get(ctx context.Context, projectID, userID string) (domain.ProjectMember, error) {
	var row models.ProjectMember
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&row).Error
	if err != nil {
		return domain.ProjectMember{}, translate(err, "member", "get member")
	}
	return memberDomain(row), nil
}

func (r *MemberRepository) Add(ctx context.Context, member domain.ProjectMember) error {
	row := models.ProjectMember{
		ProjectID: member.ProjectID,
		UserID:    member.UserID,
		Role:      string(member.Role),
		JoinedAt:  member.JoinedAt,
	}
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ConflictError{Code: domain.CodeConflict, Message: "user is already a member of this project"}
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return domain.NotFoundError{Resource: "project"}
	}
	if err != nil {
		return errors.Wrap(err, "add member")
	}
	return nil
}

func (r *MemberRepository) Remove(ctx context.Context, projectID, userID string) error {
	res := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectMember{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "remove member")
	}
	if res.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "member"}
	}
	return nil
}
