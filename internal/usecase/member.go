package usecase

import (
	"context"
	"time"

	"github.com/ahashem12/LaunchpadX-sub001/internal/domain"
)

type MemberUsecase struct {
	repo   MemberRepository
	access projectAccess
}

func NewMemberUsecase(repo MemberRepository, projects ProjectRepository) *MemberUsecase {
	return &MemberUsecase{
		repo:   repo,
		access: projectAccess{projects: projects, members: repo},
	}
}

func (uc *MemberUsecase) List(ctx context.Context, projectID string) ([]domain.ProjectMember, error) {
	if _, err := uc.access.projects.Get(ctx, projectID); err != nil {
		return nil, err
	}
	return uc.repo.List(ctx, projectID)
}

func (uc *MemberUsecase) Add(ctx context.Context, requesterID, projectID, userID string, role domain.MemberRole) (domain.ProjectMember, error) {
	if _, err := uc.access.check(ctx, requesterID, projectID, domain.ActionProjectManage); err != nil {
		return domain.ProjectMember{}, err
	}

	if userID == "" {
		return domain.ProjectMember{}, domain.NewValidationError("userId", "userId is required")
	}
	if role == "" {
		role = domain.MemberRoleMember
	}
	if !role.Valid() || role == domain.MemberRoleOwner {
		return domain.ProjectMember{}, domain.NewValidationError("role", "role must be admin or member")
	}

	member := domain.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
		JoinedAt:  time.Now().UTC(),
	}
	if err := uc.repo.Add(ctx, member); err != nil {
		return domain.ProjectMember{}, err
	}
	return member, nil
}

func (uc *MemberUsecase) Remove(ctx context.Context, requesterID, projectID, userID string) error {
	project, err := uc.access.check(ctx, requesterID, projectID, domain.ActionProjectManage)
	if err != nil {
		return err
	}
	if userID == project.OwnerID {
		return domain.ConflictError{Code: domain.CodeConflict, Message: "the project owner cannot be removed"}
	}
	return uc.repo.Remove(ctx, projectID, userID)
}
