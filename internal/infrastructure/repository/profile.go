package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ahashem12/LaunchpadX-sub001/internal/domain"
	"github.com/ahashem12/LaunchpadX-sub001/internal/infrastructure/database/models"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func profileDomain(m models.Profile) domain.Profile {
	return domain.Profile{
		ID:        m.ID,
		Email:     m.Email,
		FullName:  m.FullName,
		AvatarURL: m.AvatarURL,
		Bio:       m.Bio,
		Skills:    stringsOrEmpty(m.Skills),
		CreatedAt: m.CDate,
		UpdatedAt: m.MDate,
	}
}

func (r *ProfileRepository) Get(ctx context.Context, id string) (domain.Profile, error) {
	var model models.Profile
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		return domain.Profile{}, translate(err, "profile", "get profile")
	}
	return profileDomain(model), nil
}

// Upsert keeps the original creation date of an existing profile.
func (r *ProfileRepository) Upsert(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	model := models.Profile{
		ID:        profile.ID,
		Email:     profile.Email,
		FullName:  profile.FullName,
		AvatarURL: profile.AvatarURL,
		Bio:       profile.Bio,
		Skills:    profile.Skills,
		CDate:     profile.CreatedAt,
		MDate:     profile.UpdatedAt,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "full_name", "avatar_url", "bio", "skills", "m_date"}),
	}).Create(&model).Error
	if err != nil {
		return domain.Profile{}, errors.Wrap(err, "upsert profile")
	}
	return r.Get(ctx, profile.ID)
}
