// Package memory holds in-process repositories used when the server runs with
// mock data instead of Postgres.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/ahashem12/LaunchpadX-sub001/internal/domain"
)

// DB is the shared state behind every repository of this package.
type DB struct {
	mu           sync.RWMutex
	profiles     map[string]domain.Profile
	projects     map[string]domain.Project
	members      map[string]map[string]domain.ProjectMember
	roles        map[string]domain.Role
	applications map[string]domain.RoleApplication
	steps        map[string]domain.NextStep
	ecosystem    []domain.EcosystemEntry
}

func New() *DB {
	return &DB{
		profiles:     map[string]domain.Profile{},
		projects:     map[string]domain.Project{},
		members:      map[string]map[string]domain.ProjectMember{},
		roles:        map[string]domain.Role{},
		applications: map[string]domain.RoleApplication{},
		steps:        map[string]domain.NextStep{},
	}
}

func (db *DB) Projects() *ProjectRepository         { return &ProjectRepository{db} }
func (db *DB) Members() *MemberRepository           { return &MemberRepository{db} }
func (db *DB) Roles() *RoleRepository               { return &RoleRepository{db} }
func (db *DB) Applications() *ApplicationRepository { return &ApplicationRepository{db} }
func (db *DB) NextSteps() *NextStepRepository       { return &NextStepRepository{db} }
func (db *DB) Profiles() *ProfileRepository         { return &ProfileRepository{db} }
func (db *DB) Ecosystem() *EcosystemRepository      { return &EcosystemRepository{db} }

type ProjectRepository struct{ db *DB }

func (r *ProjectRepository) Create(ctx context.Context, project domain.Project) (domain.Project, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.projects[project.ID] = project
	r.db.members[project.ID] = map[string]domain.ProjectMember{
		project.OwnerID: {
			ProjectID: project.ID,
			UserID:    project.OwnerID,
			Role:      domain.MemberRoleOwner,
			JoinedAt:  project.CreatedAt,
		},
	}
	return project, nil
}

func (r *ProjectRepository) Get(ctx context.Context, id string) (domain.Project, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	project, ok := r.db.projects[id]
	if !ok {
		return domain.Project{}, domain.NotFoundError{Resource: "project"}
	}
	return project, nil
}

func (r *ProjectRepository) List(ctx context.Context, filter domain.ProjectFilter) ([]domain.Project, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	projects := make([]domain.Project, 0, len(r.db.projects))
	for _, p := range r.db.projects {
		if filter.OwnerID != "" && p.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Title), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		projects = append(projects, p)
	}
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})
	return projects, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project domain.Project) (domain.Project, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.projects[project.ID]; !ok {
		return domain.Project{}, domain.NotFoundError{Resource: "project"}
	}
	r.db.projects[project.ID] = project
	return project, nil
}

// Delete cascades to members, roles, applications and next steps.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.projects[id]; !ok {
		return domain.NotFoundError{Resource: "project"}
	}
	delete(r.db.projects, id)
	delete(r.db.members, id)
	for roleID, role := range r.db.roles {
		if role.ProjectID != id {
			continue
		}
		delete(r.db.roles, roleID)
		for appID, app := range r.db.applications {
			if app.RoleID == roleID {
				delete(r.db.applications, appID)
			}
		}
	}
	for stepID, step := range r.db.steps {
		if step.ProjectID == id {
			delete(r.db.steps, stepID)
		}
	}
	return nil
}

type MemberRepository struct{ db *DB }

func (r *MemberRepository) List(ctx context.Context, projectID string) ([]domain.ProjectMember, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	members := make([]domain.ProjectMember, 0, len(r.db.members[projectID]))
	for _, m := range r.db.members[projectID] {
		members = append(members, m)
	}
	sort.Slice(members, func(i, j int) bool {
		if members[i].JoinedAt.Equal(members[j].JoinedAt) {
			return members[i].UserID < members[j].UserID
		}
		return members[i].JoinedAt.Before(members[j].JoinedAt)
	})
	return members, nil
}

func (r *MemberRepository) Get(ctx context.Context, projectID, userID string) (domain.ProjectMember, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	m, ok := r.db.members[projectID][userID]
	if !ok {
		return domain.ProjectMember{}, domain.NotFoundError{Resource: "member"}
	}
	return m, nil
}

func (r *MemberRepository) Add(ctx context.Context, member domain.ProjectMember) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.addMember(member)
}

func (db *DB) addMember(member domain.ProjectMember) error {
	if _, ok := db.projects[member.ProjectID]; !ok {
		return domain.NotFoundError{Resource: "project"}
	}
	if _, ok := db.members[member.ProjectID][member.UserID]; ok {
		return domain.ConflictError{Code: domain.CodeConflict, Message: "user is already a member of this project"}
	}
	if db.members[member.ProjectID] == nil {
		db.members[member.ProjectID] = map[string]domain.ProjectMember{}
	}
	db.members[member.ProjectID][member.UserID] = member
	return nil
}

func (r *MemberRepository) Remove(ctx context.Context, projectID, userID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.members[projectID][userID]; !ok {
		return domain.NotFoundError{Resource: "member"}
	}
	delete(r.db.members[projectID], userID)
	return nil
}

type RoleRepository struct{ db *DB }

func (r *RoleRepository) Create(ctx context.Context, role domain.Role) (domain.Role, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.projects[role.ProjectID]; !ok {
		return domain.Role{}, domain.NotFoundError{Resource: "project"}
	}
	r.db.roles[role.ID] = role
	return role, nil
}

func (r *RoleRepository) Get(ctx context.Context, id string) (domain.Role, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	role, ok := r.db.roles[id]
	if !ok {
		return domain.Role{}, domain.NotFoundError{Resource: "role"}
	}
	return role, nil
}

func (r *RoleRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Role, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	roles := []domain.Role{}
	for _, role := range r.db.roles {
		if role.ProjectID == projectID {
			roles = append(roles, role)
		}
	}
	sort.Slice(roles, func(i, j int) bool {
		return roles[i].CreatedAt.Before(roles[j].CreatedAt)
	})
	return roles, nil
}

type ApplicationRepository struct{ db *DB }

func (r *ApplicationRepository) Create(ctx context.Context, app domain.RoleApplication) (domain.RoleApplication, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.roles[app.RoleID]; !ok {
		return domain.RoleApplication{}, domain.NotFoundError{Resource: "role"}
	}
	for _, existing := range r.db.applications {
		if existing.RoleID == app.RoleID && existing.ApplicantID == app.ApplicantID {
			return domain.RoleApplication{}, domain.ErrAlreadyApplied
		}
	}
	r.db.applications[app.ID] = app
	return app, nil
}

func (r *ApplicationRepository) Get(ctx context.Context, id string) (domain.RoleApplication, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	app, ok := r.db.applications[id]
	if !ok {
		return domain.RoleApplication{}, domain.NotFoundError{Resource: "application"}
	}
	return app, nil
}

func (r *ApplicationRepository) GetByApplicant(ctx context.Context, roleID, applicantID string) (domain.RoleApplication, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, app := range r.db.applications {
		if app.RoleID == roleID && app.ApplicantID == applicantID {
			return app, nil
		}
	}
	return domain.RoleApplication{}, domain.NotFoundError{Resource: "application"}
}

func (r *ApplicationRepository) ListByRole(ctx context.Context, roleID string) ([]domain.RoleApplication, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	apps := []domain.RoleApplication{}
	for _, app := range r.db.applications {
		if app.RoleID == roleID {
			apps = append(apps, app)
		}
	}
	sort.Slice(apps, func(i, j int) bool {
		return apps[i].AppliedAt.Before(apps[j].AppliedAt)
	})
	return apps, nil
}

func (r *ApplicationRepository) Reject(ctx context.Context, id string) (domain.RoleApplication, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.setStatus(id, domain.ApplicationRejected)
}

func (r *ApplicationRepository) Accept(ctx context.Context, id string, member domain.ProjectMember) (domain.RoleApplication, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	app, err := r.db.setStatus(id, domain.ApplicationAccepted)
	if err != nil {
		return domain.RoleApplication{}, err
	}
	if role, ok := r.db.roles[app.RoleID]; ok {
		role.Status = domain.RoleStatusFilled
		r.db.roles[app.RoleID] = role
	}
	if _, ok := r.db.members[member.ProjectID][member.UserID]; !ok {
		if err := r.db.addMember(member); err != nil {
			return domain.RoleApplication{}, err
		}
	}
	return app, nil
}

func (db *DB) setStatus(id string, status domain.ApplicationStatus) (domain.RoleApplication, error) {
	app, ok := db.applications[id]
	if !ok {
		return domain.RoleApplication{}, domain.NotFoundError{Resource: "application"}
	}
	if app.Status != domain.ApplicationPending {
		return domain.RoleApplication{}, domain.ConflictError{Code: domain.CodeConflict, Message: "application has already been reviewed"}
	}
	app.Status = status
	db.applications[id] = app
	return app, nil
}

type NextStepRepository struct{ db *DB }

func (r *NextStepRepository) ListByProject(ctx context.Context, projectID string) ([]domain.NextStep, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	steps := []domain.NextStep{}
	for _, s := range r.db.steps {
		if s.ProjectID == projectID {
			steps = append(steps, s)
		}
	}
	sort.Slice(steps, func(i, j int) bool {
		return steps[i].CreatedAt.Before(steps[j].CreatedAt)
	})
	return steps, nil
}

func (r *NextStepRepository) Get(ctx context.Context, id string) (domain.NextStep, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	s, ok := r.db.steps[id]
	if !ok {
		return domain.NextStep{}, domain.NotFoundError{Resource: "next step"}
	}
	return s, nil
}

func (r *NextStepRepository) Create(ctx context.Context, step domain.NextStep) (domain.NextStep, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.projects[step.ProjectID]; !ok {
		return domain.NextStep{}, domain.NotFoundError{Resource: "project"}
	}
	r.db.steps[step.ID] = step
	return step, nil
}

func (r *NextStepRepository) Update(ctx context.Context, step domain.NextStep) (domain.NextStep, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.steps[step.ID]; !ok {
		return domain.NextStep{}, domain.NotFoundError{Resource: "next step"}
	}
	r.db.steps[step.ID] = step
	return step, nil
}

func (r *NextStepRepository) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.steps[id]; !ok {
		return domain.NotFoundError{Resource: "next step"}
	}
	delete(r.db.steps, id)
	return nil
}

type ProfileRepository struct{ db *DB }

func (r *ProfileRepository) Get(ctx context.Context, id string) (domain.Profile, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	p, ok := r.db.profiles[id]
	if !ok {
		return domain.Profile{}, domain.NotFoundError{Resource: "profile"}
	}
	return p, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if existing, ok := r.db.profiles[profile.ID]; ok {
		profile.CreatedAt = existing.CreatedAt
	}
	r.db.profiles[profile.ID] = profile
	return profile, nil
}

type EcosystemRepository struct{ db *DB }

func (r *EcosystemRepository) List(ctx context.Context, kind domain.EcosystemKind) ([]domain.EcosystemEntry, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	entries := []domain.EcosystemEntry{}
	for _, e := range r.db.ecosystem {
		if kind == "" || e.Kind == kind {
			entries = append(entries, e)
		}
	}
	return entries, nil
}
