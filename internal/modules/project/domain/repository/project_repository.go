package repository

import (
	"context"

	"EDT/internal/modules/project/domain/entity"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *entity.ImprovementProject) error
	GetByID(ctx context.Context, userID string, id string) (*entity.ImprovementProject, error)
	// GetDetail 连同里程碑、任务、进展一并加载
	GetDetail(ctx context.Context, userID string, id string) (*entity.ImprovementProject, error)
	List(ctx context.Context, userID string, status string) ([]*entity.ImprovementProject, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]*entity.ImprovementProject, error)
	Update(ctx context.Context, project *entity.ImprovementProject) (bool, error)
	Delete(ctx context.Context, userID string, id string) (bool, error)
	CountByStatus(ctx context.Context, userID string) (map[string]int64, error)

	CreateMilestone(ctx context.Context, m *entity.ProjectMilestone) error
	UpdateMilestone(ctx context.Context, m *entity.ProjectMilestone) (bool, error)
	DeleteMilestone(ctx context.Context, userID string, projectID string, id string) (bool, error)

	CreateTask(ctx context.Context, task *entity.ProjectTask) error
	UpdateTask(ctx context.Context, task *entity.ProjectTask) (bool, error)
	DeleteTask(ctx context.Context, userID string, projectID string, id string) (bool, error)

	CreateUpdate(ctx context.Context, u *entity.ProjectUpdate) error
	DeleteUpdate(ctx context.Context, userID string, projectID string, id string) (bool, error)
}
