package domain

import "time"

// Profile is the public account record of a user.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	Skills    []string  `json:"skills"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Project is a venture being built by a team.
type Project struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category,omitempty"`
	Stage       string    `json:"stage,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProjectFilter narrows a project listing. Zero values match everything.
type ProjectFilter struct {
	OwnerID  string
	Category string
	Query    string
}

type ProjectMember struct {
	ProjectID string     `json:"projectId"`
	UserID    string     `json:"userId"`
	Role      MemberRole `json:"role"`
	JoinedAt  time.Time  `json:"joinedAt"`
}

// Role is an open position on a project.
type Role struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"projectId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Skills      []string   `json:"skills"`
	Status      RoleStatus `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// RoleApplication is a user's application to a role.
type RoleApplication struct {
	ID          string            `json:"id"`
	RoleID      string            `json:"roleId"`
	ApplicantID string            `json:"applicantId"`
	Status      ApplicationStatus `json:"status"`
	Message     string            `json:"message,omitempty"`
	AppliedAt   time.Time         `json:"appliedAt"`
}

type NextStep struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"projectId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// EcosystemEntry is a listing in the ecosystem directory.
type EcosystemEntry struct {
	ID          string        `json:"id"`
	Kind        EcosystemKind `json:"kind"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	URL         string        `json:"url,omitempty"`
	Tags        []string      `json:"tags"`
}

// ApplicationEvent is published whenever an application changes state.
type ApplicationEvent struct {
	Type        string          `json:"type"`
	Application RoleApplication `json:"application"`
}
