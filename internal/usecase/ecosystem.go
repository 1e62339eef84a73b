package usecase

import (
	"context"
	"strings"

	"github.com/ahashem12/LaunchpadX-sub001/internal/domain"
)

type EcosystemUsecase struct {
	repo EcosystemRepository
}

func NewEcosystemUsecase(repo EcosystemRepository) *EcosystemUsecase {
	return &EcosystemUsecase{repo: repo}
}

// List returns the directory entries of kind (all kinds when empty) whose
// name, description or tags contain query, ignoring case.
func (uc *EcosystemUsecase) List(ctx context.Context, kind domain.EcosystemKind, query string) ([]domain.EcosystemEntry, error) {
	if kind != "" && !kind.Valid() {
		return nil, domain.NewValidationError("kind", "kind must be one of grant, partner, venture, legal")
	}

	entries, err := uc.repo.List(ctx, kind)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return entries, nil
	}

	result := make([]domain.EcosystemEntry, 0, len(entries))
	for _, e := range entries {
		if matches(e, query) {
			result = append(result, e)
		}
	}
	return result, nil
}

func matches(e domain.EcosystemEntry, query string) bool {
	if strings.Contains(strings.ToLower(e.Name), query) ||
		strings.Contains(strings.ToLower(e.Description), query) {
		return true
	}
	for _, tag := range e.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
