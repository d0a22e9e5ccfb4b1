package service

import (
	"context"
	"errors"
	"strings"

	"EDT/internal/modules/goal/application/dto/request"
	"EDT/internal/modules/goal/domain/entity"
	"EDT/internal/modules/goal/domain/repository"
	"EDT/pkg/util"
	"EDT/pkg/xerr"

	"gorm.io/gorm"
)

type GoalService interface {
	List(ctx context.Context, userID string, filter repository.ListFilter) ([]*entity.Goal, error)
	Create(ctx context.Context, userID string, req request.GoalRequest) (*entity.Goal, error)
	Get(ctx context.Context, userID string, id string) (*entity.Goal, error)
	Update(ctx context.Context, userID string, id string, req request.GoalRequest) (*entity.Goal, error)
	Delete(ctx context.Context, userID string, id string) error
}

type goalServiceImpl struct {
	repo repository.GoalRepository
}

func NewGoalService(repo repository.GoalRepository) GoalService {
	return &goalServiceImpl{repo: repo}
}

var errGoalNotFound = xerr.NotFound("goal not found")

func (s *goalServiceImpl) List(ctx context.Context, userID string, filter repository.ListFilter) ([]*entity.Goal, error) {
	goals, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, xerr.Internal(err)
	}
	return goals, nil
}

func (s *goalServiceImpl) Create(ctx context.Context, userID string, req request.GoalRequest) (*entity.Goal, error) {
	goal, err := buildGoal(req)
	if err != nil {
		return nil, err
	}
	goal.Id = util.GenerateID()
	goal.UserId = userID
	if err := s.repo.Create(ctx, goal); err != nil {
		return nil, xerr.Internal(err)
	}
	return goal, nil
}

func (s *goalServiceImpl) Get(ctx context.Context, userID string, id string) (*entity.Goal, error) {
	goal, err := s.repo.GetByID(ctx, userID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errGoalNotFound
	}
	if err != nil {
		return nil, xerr.Internal(err)
	}
	return goal, nil
}

// Update 整行覆盖，未传的字段会被置空
func (s *goalServiceImpl) Update(ctx context.Context, userID string, id string, req request.GoalRequest) (*entity.Goal, error) {
	goal, err := buildGoal(req)
	if err != nil {
		return nil, err
	}
	goal.Id = id
	goal.UserId = userID
	ok, err := s.repo.Update(ctx, goal)
	if err != nil {
		return nil, xerr.Internal(err)
	}
	if !ok {
		return nil, errGoalNotFound
	}
	return s.Get(ctx, userID, id)
}

func (s *goalServiceImpl) Delete(ctx context.Context, userID string, id string) error {
	ok, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return xerr.Internal(err)
	}
	if !ok {
		return errGoalNotFound
	}
	return nil
}

func buildGoal(req request.GoalRequest) (*entity.Goal, error) {
	title := util.Truncate(req.Title, 200)
	if title == "" {
		return nil, xerr.Validation("title is required")
	}
	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = entity.StatusNotStarted
	}
	deadline, err := util.ParseDate(req.Deadline)
	if err != nil {
		return nil, xerr.Validation("deadline must be a date (YYYY-MM-DD)")
	}
	progress := 0
	if req.Progress != nil {
		progress = min(max(*req.Progress, 0), 100)
	}
	if status == entity.StatusCompleted {
		progress = 100
	}
	return &entity.Goal{
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Category:    util.Truncate(req.Category, 50),
		Status:      status,
		Progress:    progress,
		Deadline:    deadline,
	}, nil
}
