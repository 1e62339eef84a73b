package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ahashem12/LaunchpadX-sub001/internal/domain"
)

const (
	EventApplicationSubmitted = "application.submitted"
	EventApplicationAccepted  = "application.accepted"
	EventApplicationRejected  = "application.rejected"
)

type RoleInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
}

type RoleUsecase struct {
	roles        RoleRepository
	applications ApplicationRepository
	members      MemberRepository
	publisher    EventPublisher
	access       projectAccess
}

func NewRoleUsecase(
	roles RoleRepository,
	applications ApplicationRepository,
	projects ProjectRepository,
	members MemberRepository,
	publisher EventPublisher,
) *RoleUsecase {
	return &RoleUsecase{
		roles:        roles,
		applications: applications,
		members:      members,
		publisher:    publisher,
		access:       projectAccess{projects: projects, members: members},
	}
}

func (uc *RoleUsecase) Create(ctx context.Context, requesterID, projectID string, input RoleInput) (domain.Role, error) {
	if _, err := uc.access.check(ctx, requesterID, projectID, domain.ActionProjectManage); err != nil {
		return domain.Role{}, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return domain.Role{}, domain.NewValidationError("title", "title is required")
	}
	skills := input.Skills
	if skills == nil {
		skills = []string{}
	}

	return uc.roles.Create(ctx, domain.Role{
		ID:          uuid.NewString(),
		ProjectID:   projectID,
		Title:       title,
		Description: input.Description,
		Skills:      skills,
		Status:      domain.RoleStatusOpen,
		CreatedAt:   time.Now().UTC(),
	})
}

func (uc *RoleUsecase) Get(ctx context.Context, id string) (domain.Role, error) {
	return uc.roles.Get(ctx, id)
}

func (uc *RoleUsecase) ListByProject(ctx context.Context, projectID string) ([]domain.Role, error) {
	if _, err := uc.access.projects.Get(ctx, projectID); err != nil {
		return nil, err
	}
	return uc.roles.ListByProject(ctx, projectID)
}

// GetApplication returns the requester's application to roleID, or nil when
// they have not applied.
func (uc *RoleUsecase) GetApplication(ctx context.Context, requesterID, roleID string) (*domain.RoleApplication, error) {
	if requesterID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if _, err := uc.roles.Get(ctx, roleID); err != nil {
		return nil, err
	}

	app, err := uc.applications.GetByApplicant(ctx, roleID, requesterID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (uc *RoleUsecase) Apply(ctx context.Context, requesterID, roleID, message string) (domain.RoleApplication, error) {
	if requesterID == "" {
		return domain.RoleApplication{}, domain.ErrUnauthenticated
	}

	role, err := uc.roles.Get(ctx, roleID)
	if err != nil {
		return domain.RoleApplication{}, err
	}
	if role.Status != domain.RoleStatusOpen {
		return domain.RoleApplication{}, domain.ErrRoleNotOpen
	}

	_, err = uc.members.Get(ctx, role.ProjectID, requesterID)
	if err == nil {
		return domain.RoleApplication{}, domain.ConflictError{Code: domain.CodeConflict, Message: "already a member of this project"}
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.RoleApplication{}, err
	}

	app, err := uc.applications.Create(ctx, domain.RoleApplication{
		ID:          uuid.NewString(),
		RoleID:      roleID,
		ApplicantID: requesterID,
		Status:      domain.ApplicationPending,
		Message:     strings.TrimSpace(message),
		AppliedAt:   time.Now().UTC(),
	})
	if err != nil {
		return domain.RoleApplication{}, err
	}

	uc.publish(ctx, EventApplicationSubmitted, app)
	return app, nil
}

func (uc *RoleUsecase) ListApplications(ctx context.Context, requesterID, roleID string) ([]domain.RoleApplication, error) {
	role, err := uc.roles.Get(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.access.check(ctx, requesterID, role.ProjectID, domain.ActionProjectManage); err != nil {
		return nil, err
	}
	return uc.applications.ListByRole(ctx, roleID)
}

// Review accepts or rejects a pending application.
func (uc *RoleUsecase) Review(ctx context.Context, requesterID, applicationID string, status domain.ApplicationStatus) (domain.RoleApplication, error) {
	if status != domain.ApplicationAccepted && status != domain.ApplicationRejected {
		return domain.RoleApplication{}, domain.NewValidationError("status", "status must be accepted or rejected")
	}

	app, err := uc.applications.Get(ctx, applicationID)
	if err != nil {
		return domain.RoleApplication{}, err
	}
	role, err := uc.roles.Get(ctx, app.RoleID)
	if err != nil {
		return domain.RoleApplication{}, err
	}
	if _, err := uc.access.check(ctx, requesterID, role.ProjectID, domain.ActionProjectManage); err != nil {
		return domain.RoleApplication{}, err
	}
	if app.Status != domain.ApplicationPending {
		return domain.RoleApplication{}, domain.ConflictError{Code: domain.CodeConflict, Message: "application has already been reviewed"}
	}

	var reviewed domain.RoleApplication
	var event string
	if status == domain.ApplicationAccepted {
		reviewed, err = uc.applications.Accept(ctx, applicationID, domain.ProjectMember{
			ProjectID: role.ProjectID,
			UserID:    app.ApplicantID,
			Role:      domain.MemberRoleMember,
			JoinedAt:  time.Now().UTC(),
		})
		event = EventApplicationAccepted
	} else {
		reviewed, err = uc.applications.Reject(ctx, applicationID)
		event = EventApplicationRejected
	}
	if err != nil {
		return domain.RoleApplication{}, err
	}

	uc.publish(ctx, event, reviewed)
	return reviewed, nil
}

// publish is best effort; the write already succeeded.
func (uc *RoleUsecase) publish(ctx context.Context, eventType string, app domain.RoleApplication) {
	if uc.publisher == nil {
		return
	}
	err := uc.publisher.PublishApplicationEvent(ctx, domain.ApplicationEvent{
		Type:        eventType,
		Application: app,
	})
	if err != nil {
		zap.L().Warn("failed to publish application event",
			zap.String("type", eventType),
			zap.String("applicationId", app.ID),
			zap.Error(err),
		)
	}
}
