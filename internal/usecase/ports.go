package usecase

import (
	"context"

	"github.com/ahashem12/LaunchpadX-sub001/internal/domain"
)

// ProjectRepository stores projects. Create also records the owner membership.
type ProjectRepository interface {
	Create(ctx context.Context, project domain.Project) (domain.Project, error)
	Get(ctx context.Context, id string) (domain.Project, error)
	List(ctx context.Context, filter domain.ProjectFilter) ([]domain.Project, error)
	Update(ctx context.Context, project domain.Project) (domain.Project, error)
	Delete(ctx context.Context, id string) error
}

type MemberRepository interface {
	List(ctx context.Context, projectID string) ([]domain.ProjectMember, error)
	Get(ctx context.Context, projectID, userID string) (domain.ProjectMember, error)
	Add(ctx context.Context, member domain.ProjectMember) error
	Remove(ctx context.Context, projectID, userID string) error
}

type RoleRepository interface {
	Create(ctx context.Context, role domain.Role) (domain.Role, error)
	Get(ctx context.Context, id string) (domain.Role, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Role, error)
}

// ApplicationRepository stores role applications. Create returns
// domain.ErrAlreadyApplied for a second application by the same user.
type ApplicationRepository interface {
	Create(ctx context.Context, app domain.RoleApplication) (domain.RoleApplication, error)
	Get(ctx context.Context, id string) (domain.RoleApplication, error)
	GetByApplicant(ctx context.Context, roleID, applicantID string) (domain.RoleApplication, error)
	ListByRole(ctx context.Context, roleID string) ([]domain.RoleApplication, error)
	Reject(ctx context.Context, id string) (domain.RoleApplication, error)
	// Accept marks the application accepted, the role filled and adds the
	// applicant to the project in one transaction.
	Accept(ctx context.Context, id string, member domain.ProjectMember) (domain.RoleApplication, error)
}

type NextStepRepository interface {
	ListByProject(ctx context.Context, projectID string) ([]domain.NextStep, error)
	Get(ctx context.Context, id string) (domain.NextStep, error)
	Create(ctx context.Context, step domain.NextStep) (domain.NextStep, error)
	Update(ctx context.Context, step domain.NextStep) (domain.NextStep, error)
	Delete(ctx context.Context, id string) error
}

type ProfileRepository interface {
	Get(ctx context.Context, id string) (domain.Profile, error)
	Upsert(ctx context.Context, profile domain.Profile) (domain.Profile, error)
}

type EcosystemRepository interface {
	List(ctx context.Context, kind domain.EcosystemKind) ([]domain.EcosystemEntry, error)
}

// EventPublisher fans application changes out to realtime listeners.
type EventPublisher interface {
	PublishApplicationEvent(ctx context.Context, event domain.ApplicationEvent) error
}
