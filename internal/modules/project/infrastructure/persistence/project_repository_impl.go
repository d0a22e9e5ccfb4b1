package persistence

import (
	"context"

	"EDT/internal/modules/project/domain/entity"
	"EDT/internal/modules/project/domain/repository"

	"gorm.io/gorm"
)

type projectRepositoryImpl struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) repository.ProjectRepository {
	return &projectRepositoryImpl{db: db}
}

func (r *projectRepositoryImpl) Create(ctx context.Context, project *entity.ImprovementProject) error {
	return r.db.WithContext(ctx).Omit("Milestones", "Tasks", "Updates").Create(project).Error
}

func (r *projectRepositoryImpl) GetByID(ctx context.Context, userID string, id string) (*entity.ImprovementProject, error) {
	var p entity.ImprovementProject
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *projectRepositoryImpl) GetDetail(ctx context.Context, userID string, id string) (*entity.ImprovementProject, error) {
	var p entity.ImprovementProject
	err := r.db.WithContext(ctx).
		Preload("Milestones", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Updates", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Where("id = ? AND user_id = ?", id, userID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *projectRepositoryImpl) List(ctx context.Context, userID string, status string) ([]*entity.ImprovementProject, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	projects := make([]*entity.ImprovementProject, 0)
	err := q.Order("created_at DESC").Find(&projects).Error
	return projects, err
}

func (r *projectRepositoryImpl) ListRecent(ctx context.Context, userID string, limit int) ([]*entity.ImprovementProject, error) {
	projects := make([]*entity.ImprovementProject, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&projects).Error
	return projects, err
}

func (r *projectRepositoryImpl) Update(ctx context.Context, project *entity.ImprovementProject) (bool, error) {
	project.UpdatedAt = r.db.NowFunc()
	res := r.db.WithContext(ctx).
		Model(&entity.ImprovementProject{}).
		Where("id = ? AND user_id = ?", project.Id, project.UserId).
		Select("title", "objective", "system", "status", "timeline", "contractor", "results", "updated_at").
		Updates(project)
	return res.RowsAffected > 0, res.Error
}

// Delete 先删子表再删项目，不依赖数据库外键级联
func (r *projectRepositoryImpl) Delete(ctx context.Context, userID string, id string) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, child := range []any{&entity.ProjectMilestone{}, &entity.ProjectTask{}, &entity.ProjectUpdate{}} {
			if err := tx.Where("project_id = ? AND user_id = ?", id, userID).Delete(child).Error; err != nil {
				return err
			}
		}
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&entity.ImprovementProject{})
		deleted = res.RowsAffected > 0
		return res.Error
	})
	return deleted, err
}

func (r *projectRepositoryImpl) CountByStatus(ctx context.Context, userID string) (map[string]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	err := r.db.WithContext(ctx).
		Model(&entity.ImprovementProject{}).
		Select("status, COUNT(*) AS total").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(entity.Statuses))
	for _, s := range entity.Statuses {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

func (r *projectRepositoryImpl) CreateMilestone(ctx context.Context, m *entity.ProjectMilestone) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *projectRepositoryImpl) UpdateMilestone(ctx context.Context, m *entity.ProjectMilestone) (bool, error) {
	m.UpdatedAt = r.db.NowFunc()
	res := r.db.WithContext(ctx).
		Model(&entity.ProjectMilestone{}).
		Where("id = ? AND project_id = ? AND user_id = ?", m.Id, m.ProjectId, m.UserId).
		Select("title", "due_date", "completed", "updated_at").
		Updates(m)
	return res.RowsAffected > 0, res.Error
}

func (r *projectRepositoryImpl) DeleteMilestone(ctx context.Context, userID string, projectID string, id string) (bool, error) {
	return r.deleteChild(ctx, &entity.ProjectMilestone{}, userID, projectID, id)
}

func (r *projectRepositoryImpl) CreateTask(ctx context.Context, task *entity.ProjectTask) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *projectRepositoryImpl) UpdateTask(ctx context.Context, task *entity.ProjectTask) (bool, error) {
	task.UpdatedAt = r.db.NowFunc()
	res := r.db.WithContext(ctx).
		Model(&entity.ProjectTask{}).
		Where("id = ? AND project_id = ? AND user_id = ?", task.Id, task.ProjectId, task.UserId).
		Select("title", "assignee", "completed", "updated_at").
		Updates(task)
	return res.RowsAffected > 0, res.Error
}

func (r *projectRepositoryImpl) DeleteTask(ctx context.Context, userID string, projectID string, id string) (bool, error) {
	return r.deleteChild(ctx, &entity.ProjectTask{}, userID, projectID, id)
}

func (r *projectRepositoryImpl) CreateUpdate(ctx context.Context, u *entity.ProjectUpdate) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *projectRepositoryImpl) DeleteUpdate(ctx context.Context, userID string, projectID string, id string) (bool, error) {
	return r.deleteChild(ctx, &entity.ProjectUpdate{}, userID, projectID, id)
}

func (r *projectRepositoryImpl) deleteChild(ctx context.Context, model any, userID, projectID, id string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND project_id = ? AND user_id = ?", id, projectID, userID).
		Delete(model)
	return res.RowsAffected > 0, res.Error
}
