package memory

import (
	"sort"
	"time"

	"github.com/ahashem12/LaunchpadX-sub001/internal/domain"
)

// Seed fills db with a small demo dataset. Existing rows with the same IDs are
// replaced.
func Seed(db *DB) {
	db.mu.Lock()
	defer db.mu.Unlock()

	base := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)

	db.profiles["demo-founder"] = domain.Profile{
		ID:        "demo-founder",
		Email:     "founder@launchpadx.dev",
		FullName:  "Demo Founder",
		Bio:       "Building community owned energy.",
		Skills:    []string{"product", "fundraising"},
		CreatedAt: base,
		UpdatedAt: base,
	}
	db.profiles["demo-builder"] = domain.Profile{
		ID:        "demo-builder",
		Email:     "builder@launchpadx.dev",
		FullName:  "Demo Builder",
		Skills:    []string{"go", "postgres"},
		CreatedAt: base,
		UpdatedAt: base,
	}

	db.projects["demo-project"] = domain.Project{
		ID:          "demo-project",
		OwnerID:     "demo-founder",
		Title:       "Solar Commons",
		Description: "A cooperative that finances rooftop solar for its members.",
		Category:    "energy",
		Stage:       "idea",
		CreatedAt:   base,
		UpdatedAt:   base,
	}
	db.members["demo-project"] = map[string]domain.ProjectMember{
		"demo-founder": {
			ProjectID: "demo-project",
			UserID:    "demo-founder",
			Role:      domain.MemberRoleOwner,
			JoinedAt:  base,
		},
	}

	db.roles["demo-role-cto"] = domain.Role{
		ID:          "demo-role-cto",
		ProjectID:   "demo-project",
		Title:       "Technical co-founder",
		Description: "Own the platform and the data model.",
		Skills:      []string{"go", "postgres"},
		Status:      domain.RoleStatusOpen,
		CreatedAt:   base.Add(time.Hour),
	}
	db.roles["demo-role-design"] = domain.Role{
		ID:          "demo-role-design",
		ProjectID:   "demo-project",
		Title:       "Designer",
		Description: "Shape the member experience.",
		Skills:      []string{"figma"},
		Status:      domain.RoleStatusOpen,
		CreatedAt:   base.Add(2 * time.Hour),
	}

	due := base.Add(14 * 24 * time.Hour)
	db.steps["demo-step-1"] = domain.NextStep{
		ID:          "demo-step-1",
		ProjectID:   "demo-project",
		Title:       "Draft the co-founder agreement",
		Description: "Agree on the token split and governance model.",
		DueDate:     &due,
		CreatedAt:   base,
		UpdatedAt:   base,
	}

	db.ecosystem = []domain.EcosystemEntry{
		{ID: "eco-grant-1", Kind: domain.EcosystemGrant, Name: "Climate Seed Grant", Description: "Non-dilutive funding for early climate ventures.", URL: "https://example.org/climate-seed", Tags: []string{"climate", "early-stage"}},
		{ID: "eco-partner-1", Kind: domain.EcosystemPartner, Name: "Cloud Credits Program", Description: "Infrastructure credits for startups.", Tags: []string{"infrastructure"}},
		{ID: "eco-venture-1", Kind: domain.EcosystemVenture, Name: "Commons Ventures", Description: "Backs cooperatives and community owned companies.", Tags: []string{"cooperative", "seed"}},
		{ID: "eco-legal-1", Kind: domain.EcosystemLegal, Name: "Startup Legal Clinic", Description: "Pro bono incorporation and equity advice.", Tags: []string{"incorporation", "equity"}},
	}
	sort.Slice(db.ecosystem, func(i, j int) bool {
		return db.ecosystem[i].Name < db.ecosystem[j].Name
	})
}
