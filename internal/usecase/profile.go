package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/ahashem12/LaunchpadX-sub001/internal/domain"
)

type ProfileInput struct {
	FullName  string   `json:"fullName"`
	AvatarURL string   `json:"avatarUrl"`
	Bio       string   `json:"bio"`
	Skills    []string `json:"skills"`
}

type ProfileUsecase struct {
	repo ProfileRepository
}

func NewProfileUsecase(repo ProfileRepository) *ProfileUsecase {
	return &ProfileUsecase{repo: repo}
}

func (uc *ProfileUsecase) Get(ctx context.Context, id string) (domain.Profile, error) {
	if id == "" {
		return domain.Profile{}, domain.ErrUnauthenticated
	}
	return uc.repo.Get(ctx, id)
}

// Save creates or replaces the profile of the requester. The email always
// comes from the verified token, never from the request body.
func (uc *ProfileUsecase) Save(ctx context.Context, requesterID, email string, input ProfileInput) (domain.Profile, error) {
	if requesterID == "" {
		return domain.Profile{}, domain.ErrUnauthenticated
	}

	name := strings.TrimSpace(input.FullName)
	if name == "" {
		return domain.Profile{}, domain.NewValidationError("fullName", "full name is required")
	}
	skills := input.Skills
	if skills == nil {
		skills = []string{}
	}

	now := time.Now().UTC()
	return uc.repo.Upsert(ctx, domain.Profile{
		ID:        requesterID,
		Email:     email,
		FullName:  name,
		AvatarURL: input.AvatarURL,
		Bio:       input.Bio,
		Skills:    skills,
		CreatedAt: now,
		UpdatedAt: now,
	})
}
