package service

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"EDT/internal/modules/techlog/application/dto/request"
	"EDT/internal/modules/techlog/domain/entity"
	"EDT/internal/modules/techlog/domain/repository"
	"EDT/pkg/util"
	"EDT/pkg/xerr"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	maxTags      = 20
	maxTagLength = 30
	maxImages    = 10
)

type TechnicalLogService interface {
	List(ctx context.Context, userID string, system string, tag string) ([]*entity.TechnicalLog, error)
	Create(ctx context.Context, userID string, req request.TechnicalLogRequest) (*entity.TechnicalLog, error)
	Get(ctx context.Context, userID string, id string) (*entity.TechnicalLog, error)
	Update(ctx context.Context, userID string, id string, req request.TechnicalLogRequest) (*entity.TechnicalLog, error)
	Delete(ctx context.Context, userID string, id string) error
}

type technicalLogServiceImpl struct {
	repo repository.TechnicalLogRepository
}

func NewTechnicalLogService(repo repository.TechnicalLogRepository) TechnicalLogService {
	return &technicalLogServiceImpl{repo: repo}
}

var errLogNotFound = xerr.NotFound("technical log not found")

func (s *technicalLogServiceImpl) List(ctx context.Context, userID string, system string, tag string) ([]*entity.TechnicalLog, error) {
	logs, err := s.repo.List(ctx, userID, strings.TrimSpace(system))
	if err != nil {
		return nil, xerr.Internal(err)
	}
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return logs, nil
	}
	filtered := make([]*entity.TechnicalLog, 0, len(logs))
	for _, l := range logs {
		if slices.ContainsFunc(l.Tags, func(t string) bool { return strings.ToLower(t) == tag }) {
			filtered = append(filtered, l)
		}
	}
	return filtered, nil
}

func (s *technicalLogServiceImpl) Create(ctx context.Context, userID string, req request.TechnicalLogRequest) (*entity.TechnicalLog, error) {
	log, err := buildLog(req)
	if err != nil {
		return nil, err
	}
	log.Id = util.GenerateID()
	log.UserId = userID
	if err := s.repo.Create(ctx, log); err != nil {
		return nil, xerr.Internal(err)
	}
	return log, nil
}

func (s *technicalLogServiceImpl) Get(ctx context.Context, userID string, id string) (*entity.TechnicalLog, error) {
	log, err := s.repo.GetByID(ctx, userID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errLogNotFound
	}
	if err != nil {
		return nil, xerr.Internal(err)
	}
	return log, nil
}

func (s *technicalLogServiceImpl) Update(ctx context.Context, userID string, id string, req request.TechnicalLogRequest) (*entity.TechnicalLog, error) {
	log, err := buildLog(req)
	if err != nil {
		return nil, err
	}
	log.Id = id
	log.UserId = userID
	ok, err := s.repo.Update(ctx, log)
	if err != nil {
		return nil, xerr.Internal(err)
	}
	if !ok {
		return nil, errLogNotFound
	}
	return s.Get(ctx, userID, id)
}

func (s *technicalLogServiceImpl) Delete(ctx context.Context, userID string, id string) error {
	ok, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return xerr.Internal(err)
	}
	if !ok {
		return errLogNotFound
	}
	return nil
}

// buildLog tags/images 缺省为空数组而不是 null
func buildLog(req request.TechnicalLogRequest) (*entity.TechnicalLog, error) {
	title := util.Truncate(req.Title, 200)
	if title == "" {
		return nil, xerr.Validation("title is required")
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, xerr.Validation("description is required")
	}
	logDate := time.Now().UTC()
	if d, err := util.ParseDate(req.LogDate); err != nil {
		return nil, xerr.Validation("log_date must be a date (YYYY-MM-DD)")
	} else if d != nil {
		logDate = *d
	}

	tags := make([]string, 0, len(req.Tags))
	for _, t := range util.CleanStrings(req.Tags) {
		tags = append(tags, util.Truncate(t, maxTagLength))
	}
	tags = util.CleanStrings(tags)
	if len(tags) > maxTags {
		tags = tags[:maxTags]
	}
	images := util.CleanStrings(req.Images)
	if len(images) > maxImages {
		images = images[:maxImages]
	}

	return &entity.TechnicalLog{
		Title:       title,
		System:      util.Truncate(req.System, 100),
		Description: description,
		Resolution:  strings.TrimSpace(req.Resolution),
		Outcome:     strings.TrimSpace(req.Outcome),
		Tags:        datatypes.JSONSlice[string](tags),
		Images:      datatypes.JSONSlice[string](images),
		LogDate:     logDate,
	}, nil
}
