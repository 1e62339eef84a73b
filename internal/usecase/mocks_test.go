package usecase

import (
	"context"
	"sort"

	"github.com/ahashem12/LaunchpadX-sub001/internal/domain"
)

// --- in-memory repositories ---

type mockProjectRepo struct {
	projects map[string]domain.Project
	members  *mockMemberRepo
	deleted  string
}

func newMockProjectRepo(members *mockMemberRepo) *mockProjectRepo {
	return &mockProjectRepo{projects: map[string]domain.Project{}, members: members}
}

func (m *mockProjectRepo) Create(ctx context.Context, p domain.Project) (domain.Project, error) {
	m.projects[p.ID] = p
	m.members.members = append(m.members.members, domain.ProjectMember{
		ProjectID: p.ID, UserID: p.OwnerID, Role: domain.MemberRoleOwner,
	})
	return p, nil
}
func (m *mockProjectRepo) Get(ctx context.Context, id string) (domain.Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return domain.Project{}, domain.NotFoundError{Resource: "project"}
	}
	return p, nil
}
func (m *mockProjectRepo) List(ctx context.Context, filter domain.ProjectFilter) ([]domain.Project, error) {
	var result []domain.Project
	for _, p := range m.projects {
		if filter.OwnerID == "" || filter.OwnerID == p.OwnerID {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}
func (m *mockProjectRepo) Update(ctx context.Context, p domain.Project) (domain.Project, error) {
	m.projects[p.ID] = p
	return p, nil
}
func (m *mockProjectRepo) Delete(ctx context.Context, id string) error {
	m.deleted = id
	delete(m.projects, id)
	return nil
}

type mockMemberRepo struct {
	members []domain.ProjectMember
}

func (m *mockMemberRepo) List(ctx context.Context, projectID string) ([]domain.ProjectMember, error) {
	var result []domain.ProjectMember
	for _, mem := range m.members {
		if mem.ProjectID == projectID {
			result = append(result, mem)
		}
	}
	return result, nil
}
func (m *mockMemberRepo) Get(ctx context.Context, projectID, userID string) (domain.ProjectMember, error) {
	for _, mem := range m.members {
		if mem.ProjectID == projectID && mem.UserID == userID {
			return mem, nil
		}
	}
	return domain.ProjectMember{}, domain.NotFoundError{Resource: "member"}
}
func (m *mockMemberRepo) Add(ctx context.Context, member domain.ProjectMember) error {
	m.members = append(m.members, member)
	return nil
}
func (m *mockMemberRepo) Remove(ctx context.Context, projectID, userID string) error {
	for i, mem := range m.members {
		if mem.ProjectID == projectID && mem.UserID == userID {
			m.members = append(m.members[:i], m.members[i+1:]...)
			return nil
		}
	}
	return domain.NotFoundError{Resource: "member"}
}

type mockRoleRepo struct {
	roles map[string]domain.Role
}

func (m *mockRoleRepo) Create(ctx context.Context, r domain.Role) (domain.Role, error) {
	m.roles[r.ID] = r
	return r, nil
}
func (m *mockRoleRepo) Get(ctx context.Context, id string) (domain.Role, error) {
	r, ok := m.roles[id]
	if !ok {
		return domain.Role{}, domain.NotFoundError{Resource: "role"}
	}
	return r, nil
}
func (m *mockRoleRepo) ListByProject(ctx context.Context, projectID string) ([]domain.Role, error) {
	var result []domain.Role
	for _, r := range m.roles {
		if r.ProjectID == projectID {
			result = append(result, r)
		}
	}
	return result, nil
}

type mockApplicationRepo struct {
	apps    map[string]domain.RoleApplication
	roles   *mockRoleRepo
	members *mockMemberRepo
}

func (m *mockApplicationRepo) Create(ctx context.Context, app domain.RoleApplication) (domain.RoleApplication, error) {
	for _, a := range m.apps {
		if a.RoleID == app.RoleID && a.ApplicantID == app.ApplicantID {
			return domain.RoleApplication{}, domain.ErrAlreadyApplied
		}
	}
	m.apps[app.ID] = app
	return app, nil
}
func (m *mockApplicationRepo) Get(ctx context.Context, id string) (domain.RoleApplication, error) {
	a, ok := m.apps[id]
	if !ok {
		return domain.RoleApplication{}, domain.NotFoundError{Resource: "application"}
	}
	return a, nil
}
func (m *mockApplicationRepo) GetByApplicant(ctx context.Context, roleID, applicantID string) (domain.RoleApplication, error) {
	for _, a := range m.apps {
		if a.RoleID == roleID && a.ApplicantID == applicantID {
			return a, nil
		}
	}
	return domain.RoleApplication{}, domain.NotFoundError{Resource: "application"}
}
func (m *mockApplicationRepo) ListByRole(ctx context.Context, roleID string) ([]domain.RoleApplication, error) {
	var result []domain.RoleApplication
	for _, a := range m.apps {
		if a.RoleID == roleID {
			result = append(result, a)
		}
	}
	return result, nil
}
func (m *mockApplicationRepo) Reject(ctx context.Context, id string) (domain.RoleApplication, error) {
	a := m.apps[id]
	a.Status = domain.ApplicationRejected
	m.apps[id] = a
	return a, nil
}
func (m *mockApplicationRepo) Accept(ctx context.Context, id string, member domain.ProjectMember) (domain.RoleApplication, error) {
	a := m.apps[id]
	a.Status = domain.ApplicationAccepted
	m.apps[id] = a
	r := m.roles.roles[a.RoleID]
	r.Status = domain.RoleStatusFilled
	m.roles.roles[a.RoleID] = r
	m.members.members = append(m.members.members, member)
	return a, nil
}

type mockNextStepRepo struct {
	steps map[string]domain.NextStep
}

func (m *mockNextStepRepo) ListByProject(ctx context.Context, projectID string) ([]domain.NextStep, error) {
	var result []domain.NextStep
	for _, s := range m.steps {
		if s.ProjectID == projectID {
			result = append(result, s)
		}
	}
	return result, nil
}
func (m *mockNextStepRepo) Get(ctx context.Context, id string) (domain.NextStep, error) {
	s, ok := m.steps[id]
	if !ok {
		return domain.NextStep{}, domain.NotFoundError{Resource: "next step"}
	}
	return s, nil
}
func (m *mockNextStepRepo) Create(ctx context.Context, s domain.NextStep) (domain.NextStep, error) {
	m.steps[s.ID] = s
	return s, nil
}
func (m *mockNextStepRepo) Update(ctx context.Context, s domain.NextStep) (domain.NextStep, error) {
	m.steps[s.ID] = s
	return s, nil
}
func (m *mockNextStepRepo) Delete(ctx context.Context, id string) error {
	delete(m.steps, id)
	return nil
}

type mockPublisher struct {
	events []domain.ApplicationEvent
}

func (m *mockPublisher) PublishApplicationEvent(ctx context.Context, event domain.ApplicationEvent) error {
	m.events = append(m.events, event)
	return nil
}

type fixture struct {
	projects     *mockProjectRepo
	members      *mockMemberRepo
	roles        *mockRoleRepo
	applications *mockApplicationRepo
	steps        *mockNextStepRepo
	publisher    *mockPublisher
}

func newFixture() *fixture {
	members := &mockMemberRepo{}
	roles := &mockRoleRepo{roles: map[string]domain.Role{}}
	return &fixture{
		projects: newMockProjectRepo(members),
		members:  members,
		roles:    roles,
		applications: &mockApplicationRepo{
			apps:    map[string]domain.RoleApplication{},
			roles:   roles,
			members: members,
		},
		steps:     &mockNextStepRepo{steps: map[string]domain.NextStep{}},
		publisher: &mockPublisher{},
	}
}

// seedProject creates a project owned by "owner" with "admin" as admin.
func (f *fixture) seedProject(id string) domain.Project {
	p := domain.Project{ID: id, OwnerID: "owner", Title: "Seed"}
	f.projects.Create(context.Background(), p)
	f.members.Add(context.Background(), domain.ProjectMember{ProjectID: id, UserID: "admin", Role: domain.MemberRoleAdmin})
	return p
}
