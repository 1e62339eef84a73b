package usecase

import (
	"context"

	"github.com/ahashem12/LaunchpadX-sub001/internal/domain"
	"github.com/ahashem12/LaunchpadX-sub001/internal/policy"
)

// projectAccess answers whether a requester may act on a project.
type projectAccess struct {
	projects ProjectRepository
	members  MemberRepository
}

func (a projectAccess) check(ctx context.Context, requesterID, projectID, action string) (domain.Project, error) {
	if requesterID == "" {
		return domain.Project{}, domain.ErrUnauthenticated
	}

	project, err := a.projects.Get(ctx, projectID)
	if err != nil {
		return domain.Project{}, err
	}

	members, err := a.members.List(ctx, projectID)
	if err != nil {
		return domain.Project{}, err
	}
	var admins []string
	for _, m := range members {
		if m.Role == domain.MemberRoleAdmin {
			admins = append(admins, m.UserID)
		}
	}

	allowed := policy.Authorize(
		policy.ProjectPolicy,
		policy.ProjectContext(requesterID, project.OwnerID, admins),
		action,
	)
	if !allowed {
		return domain.Project{}, domain.ForbiddenError{Action: action}
	}
	return project, nil
}
