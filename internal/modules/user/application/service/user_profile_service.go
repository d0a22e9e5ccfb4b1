package service

import (
	"context"
	"errors"
	"strings"

	"EDT/internal/modules/user/application/dto/request"
	"EDT/internal/modules/user/domain/entity"
	"EDT/internal/modules/user/domain/repository"
	"EDT/pkg/util"
	"EDT/pkg/xerr"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const maxSpecializations = 20

// UserProfileService 个人资料，一人一行
type UserProfileService interface {
	Get(ctx context.Context, userID string) (*entity.UserProfile, error)
	Save(ctx context.Context, userID string, req request.ProfileRequest) (*entity.UserProfile, error)
}

type userProfileServiceImpl struct {
	repo repository.UserProfileRepository
}

func NewUserProfileService(repo repository.UserProfileRepository) UserProfileService {
	return &userProfileServiceImpl{repo: repo}
}

// Get 尚未保存过资料时返回空资料而不是 404
func (s *userProfileServiceImpl) Get(ctx context.Context, userID string) (*entity.UserProfile, error) {
	p, err := s.repo.Get(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &entity.UserProfile{UserId: userID, Specializations: datatypes.JSONSlice[string]{}}, nil
	}
	if err != nil {
		return nil, xerr.Internal(err)
	}
	return p, nil
}

func (s *userProfileServiceImpl) Save(ctx context.Context, userID string, req request.ProfileRequest) (*entity.UserProfile, error) {
	specs := util.CleanStrings(req.Specializations)
	if len(specs) > maxSpecializations {
		specs = specs[:maxSpecializations]
	}
	p := &entity.UserProfile{
		UserId:          userID,
		FullName:        util.Truncate(req.FullName, 100),
		Title:           util.Truncate(req.Title, 120),
		Company:         util.Truncate(req.Company, 120),
		Location:        util.Truncate(req.Location, 120),
		Bio:             util.Truncate(req.Bio, 2000),
		YearsExperience: req.YearsExperience,
		Specializations: datatypes.JSONSlice[string](specs),
		LinkedinUrl:     strings.TrimSpace(req.LinkedinUrl),
		GithubUrl:       strings.TrimSpace(req.GithubUrl),
		WebsiteUrl:      strings.TrimSpace(req.WebsiteUrl),
	}
	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, xerr.Internal(err)
	}
	return s.Get(ctx, userID)
}

