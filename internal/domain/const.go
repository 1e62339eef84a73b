package domain

type ctxKey string

const (
	RequesterIdCtxKey    ctxKey = "lpx-requesterId"
	RequesterEmailCtxKey ctxKey = "lpx-requesterEmail"
)

type MemberRole string

const (
	MemberRoleOwner  MemberRole = "owner"
	MemberRoleAdmin  MemberRole = "admin"
	MemberRoleMember MemberRole = "member"
)

func (r MemberRole) Valid() bool {
	switch r {
	case MemberRoleOwner, MemberRoleAdmin, MemberRoleMember:
		return true
	}
	return false
}

type RoleStatus string

const (
	RoleStatusOpen   RoleStatus = "open"
	RoleStatusFilled RoleStatus = "filled"
)

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationAccepted, ApplicationRejected:
		return true
	}
	return false
}

type EcosystemKind string

const (
	EcosystemGrant   EcosystemKind = "grant"
	EcosystemPartner EcosystemKind = "partner"
	EcosystemVenture EcosystemKind = "venture"
	EcosystemLegal   EcosystemKind = "legal"
)

func (k EcosystemKind) Valid() bool {
	switch k {
	case EcosystemGrant, EcosystemPartner, EcosystemVenture, EcosystemLegal:
		return true
	}
	return false
}

// Access policy actions.
const (
	ActionProjectUpdate = "project.update"
	ActionProjectDelete = "project.delete"
	ActionProjectManage = "project.manage"
)
