package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"EDT/internal/modules/integration/application/dto/request"
	"EDT/internal/modules/integration/domain/entity"
	"EDT/internal/modules/integration/domain/repository"
	"EDT/pkg/util"
	"EDT/pkg/xerr"
	"EDT/pkg/zlog"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type IntegrationService interface {
	List(ctx context.Context, userID string) ([]*entity.Integration, error)
	Create(ctx context.Context, userID string, req request.IntegrationRequest) (*entity.Integration, error)
	Get(ctx context.Context, userID string, id string) (*entity.Integration, error)
	Update(ctx context.Context, userID string, id string, req request.IntegrationRequest) (*entity.Integration, error)
	Delete(ctx context.Context, userID string, id string) error
	// Test 模拟连接测试，只更新状态
	Test(ctx context.Context, userID string, id string) (*entity.Integration, error)
	// Sync 模拟一次同步，累加计数
	Sync(ctx context.Context, userID string, id string) (*entity.Integration, error)
}

type integrationServiceImpl struct {
	repo repository.IntegrationRepository
	sim  *Simulator
}

func NewIntegrationService(repo repository.IntegrationRepository, sim *Simulator) IntegrationService {
	return &integrationServiceImpl{repo: repo, sim: sim}
}

func (s *integrationServiceImpl) List(ctx context.Context, userID string) ([]*entity.Integration, error) {
	items, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, xerr.Internal(err)
	}
	return items, nil
}

func (s *integrationServiceImpl) Create(ctx context.Context, userID string, req request.IntegrationRequest) (*entity.Integration, error) {
	item, err := buildIntegration(req)
	if err != nil {
		return nil, err
	}
	item.Id = util.GenerateID()
	item.UserId = userID
	item.Status = entity.StatusDisconnected
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, xerr.Internal(err)
	}
	return item, nil
}

func (s *integrationServiceImpl) Get(ctx context.Context, userID string, id string) (*entity.Integration, error) {
	item, err := s.repo.GetByID(ctx, userID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, xerr.NotFound("Integration not found")
	}
	if err != nil {
		return nil, xerr.Internal(err)
	}
	return item, nil
}

func (s *integrationServiceImpl) Update(ctx context.Context, userID string, id string, req request.IntegrationRequest) (*entity.Integration, error) {
	item, err := buildIntegration(req)
	if err != nil {
		return nil, err
	}
	item.Id = id
	item.UserId = userID
	ok, err := s.repo.Update(ctx, item)
	if err != nil {
		return nil, xerr.Internal(err)
	}
	if !ok {
		return nil, xerr.NotFound("Integration not found")
	}
	return s.Get(ctx, userID, id)
}

func (s *integrationServiceImpl) Delete(ctx context.Context, userID string, id string) error {
	ok, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return xerr.Internal(err)
	}
	if !ok {
		return xerr.NotFound("Integration not found")
	}
	return nil
}

func (s *integrationServiceImpl) Test(ctx context.Context, userID string, id string) (*entity.Integration, error) {
	return s.run(ctx, userID, id, func(item *entity.Integration, ok bool, _ int64, now time.Time) {
		item.LastTestedAt = &now
		if ok {
			item.Status = entity.StatusConnected
		} else {
			item.Status = entity.StatusError
			item.ErrorCount++
		}
	})
}

func (s *integrationServiceImpl) Sync(ctx context.Context, userID string, id string) (*entity.Integration, error) {
	return s.run(ctx, userID, id, func(item *entity.Integration, ok bool, records int64, now time.Time) {
		if !ok {
			item.Status = entity.StatusError
			item.ErrorCount++
			return
		}
		item.Status = entity.StatusConnected
		item.SyncCount++
		item.RecordsSynced += records
		item.LastSyncAt = &now
	})
}

func (s *integrationServiceImpl) run(ctx context.Context, userID string, id string, apply func(*entity.Integration, bool, int64, time.Time)) (*entity.Integration, error) {
	item, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.sim.wait(ctx); err != nil {
		return nil, xerr.ServiceUnavailable("Integration request was cancelled")
	}
	ok, records := s.sim.roll()
	apply(item, ok, records, time.Now().UTC())
	if _, err := s.repo.SaveRun(ctx, item); err != nil {
		return nil, xerr.Internal(err)
	}
	zlog.Info("integration run", zap.String("id", id), zap.String("status", item.Status), zap.Int64("records", records))
	return item, nil
}

func buildIntegration(req request.IntegrationRequest) (*entity.Integration, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, xerr.Validation("name is required")
	}
	return &entity.Integration{
		Name:     util.Truncate(name, 100),
		Type:     req.Type,
		Endpoint: util.Truncate(req.Endpoint, 255),
	}, nil
}
