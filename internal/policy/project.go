package policy

import "github.com/ahashem12/LaunchpadX-sub001/internal/domain"

func load(key string) Expr {
	return Expr{Operator: "Load", Args: []Expr{{Const: key}}}
}

var isOwner = Expr{
	Operator: "Eq",
	Args:     []Expr{load("requester.id"), load("this.ownerId")},
}

var isAdmin = Expr{
	Operator: "Contains",
	Args:     []Expr{load("this.admins"), load("requester.id")},
}

// ProjectPolicy governs writes to a project and the rows hanging off it.
// Only the owner may delete; owner and admins may edit and manage the team.
var ProjectPolicy = PolicyDocument{
	Name: "project",
	Statements: map[string][]Stmt{
		domain.ActionProjectUpdate: {
			{Emit: "allow", Condition: isOwner},
			{Emit: "allow", Condition: isAdmin},
		},
		domain.ActionProjectManage: {
			{Emit: "allow", Condition: isOwner},
			{Emit: "allow", Condition: isAdmin},
		},
		domain.ActionProjectDelete: {
			{Emit: "allow", Condition: isOwner},
		},
	},
}

// ProjectContext builds the evaluation context for requesterID acting on a
// project owned by ownerID with the given admins.
func ProjectContext(requesterID, ownerID string, admins []string) RequestContext {
	return RequestContext{
		Requester: map[string]any{"id": requesterID},
		This: map[string]any{
			"ownerId": ownerID,
			"admins":  Strings(admins),
		},
	}
}
