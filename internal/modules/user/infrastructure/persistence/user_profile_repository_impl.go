package persistence

import (
	"context"

	"EDT/internal/modules/user/domain/entity"
	"EDT/internal/modules/user/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userProfileRepositoryImpl struct {
	db *gorm.DB
}

func NewUserProfileRepository(db *gorm.DB) repository.UserProfileRepository {
	return &userProfileRepositoryImpl{db: db}
}

func (r *userProfileRepositoryImpl) Get(ctx context.Context, userID string) (*entity.UserProfile, error) {
	var p entity.UserProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *userProfileRepositoryImpl) Upsert(ctx context.Context, profile *entity.UserProfile) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"full_name", "title", "company", "location", "bio", "years_experience",
			"specializations", "linkedin_url", "github_url", "website_url", "updated_at",
		}),
	}).Create(profile).Error
}
