package service

import (
	"context"
	"errors"
	"strings"

	"EDT/internal/modules/project/application/dto/request"
	"EDT/internal/modules/project/domain/entity"
	"EDT/internal/modules/project/domain/repository"
	"EDT/pkg/util"
	"EDT/pkg/xerr"

	"gorm.io/gorm"
)

type ProjectService interface {
	List(ctx context.Context, userID string, status string) ([]*entity.ImprovementProject, error)
	Create(ctx context.Context, userID string, req request.ProjectRequest) (*entity.ImprovementProject, error)
	Get(ctx context.Context, userID string, id string) (*entity.ImprovementProject, error)
	Update(ctx context.Context, userID string, id string, req request.ProjectRequest) (*entity.ImprovementProject, error)
	Delete(ctx context.Context, userID string, id string) error

	AddMilestone(ctx context.Context, userID string, projectID string, req request.MilestoneRequest) (*entity.ProjectMilestone, error)
	UpdateMilestone(ctx context.Context, userID string, projectID string, id string, req request.MilestoneRequest) (*entity.ProjectMilestone, error)
	DeleteMilestone(ctx context.Context, userID string, projectID string, id string) error
	AddTask(ctx context.Context, userID string, projectID string, req request.TaskRequest) (*entity.ProjectTask, error)
	UpdateTask(ctx context.Context, userID string, projectID string, id string, req request.TaskRequest) (*entity.ProjectTask, error)
	DeleteTask(ctx context.Context, userID string, projectID string, id string) error
	AddUpdate(ctx context.Context, userID string, projectID string, req request.UpdateRequest) (*entity.ProjectUpdate, error)
	DeleteUpdate(ctx context.Context, userID string, projectID string, id string) error
}

type projectServiceImpl struct {
	repo repository.ProjectRepository
}

func NewProjectService(repo repository.ProjectRepository) ProjectService {
	return &projectServiceImpl{repo: repo}
}

var (
	errProjectNotFound   = xerr.NotFound("project not found")
	errMilestoneNotFound = xerr.NotFound("milestone not found")
	errTaskNotFound      = xerr.NotFound("task not found")
	errUpdateNotFound    = xerr.NotFound("project update not found")
)

func (s *projectServiceImpl) List(ctx context.Context, userID string, status string) ([]*entity.ImprovementProject, error) {
	status = strings.TrimSpace(status)
	projects, err := s.repo.List(ctx, userID, status)
	if err != nil {
		return nil, xerr.Internal(err)
	}
	return projects, nil
}

func (s *projectServiceImpl) Create(ctx context.Context, userID string, req request.ProjectRequest) (*entity.ImprovementProject, error) {
	p, err := buildProject(req)
	if err != nil {
		return nil, err
	}
	p.Id = util.GenerateID()
	p.UserId = userID
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, xerr.Internal(err)
	}
	return p, nil
}

func (s *projectServiceImpl) Get(ctx context.Context, userID string, id string) (*entity.ImprovementProject, error) {
	p, err := s.repo.GetDetail(ctx, userID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errProjectNotFound
	}
	if err != nil {
		return nil, xerr.Internal(err)
	}
	return p, nil
}

func (s *projectServiceImpl) Update(ctx context.Context, userID string, id string, req request.ProjectRequest) (*entity.ImprovementProject, error) {
	p, err := buildProject(req)
	if err != nil {
		return nil, err
	}
	p.Id = id
	p.UserId = userID
	ok, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, xerr.Internal(err)
	}
	if !ok {
		return nil, errProjectNotFound
	}
	return s.Get(ctx, userID, id)
}

func (s *projectServiceImpl) Delete(ctx context.Context, userID string, id string) error {
	ok, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return xerr.Internal(err)
	}
	if !ok {
		return errProjectNotFound
	}
	return nil
}

// ensureOwned 子表操作前确认项目属于当前用户
func (s *projectServiceImpl) ensureOwned(ctx context.Context, userID string, projectID string) error {
	_, err := s.repo.GetByID(ctx, userID, projectID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errProjectNotFound
	}
	if err != nil {
		return xerr.Internal(err)
	}
	return nil
}

func (s *projectServiceImpl) AddMilestone(ctx context.Context, userID string, projectID string, req request.MilestoneRequest) (*entity.ProjectMilestone, error) {
	m, err := buildMilestone(req)
	if err != nil {
		return nil, err
	}
	if err := s.ensureOwned(ctx, userID, projectID); err != nil {
		return nil, err
	}
	m.Id = util.GenerateID()
	m.ProjectId = projectID
	m.UserId = userID
	if err := s.repo.CreateMilestone(ctx, m); err != nil {
		return nil, xerr.Internal(err)
	}
	return m, nil
}

func (s *projectServiceImpl) UpdateMilestone(ctx context.Context, userID string, projectID string, id string, req request.MilestoneRequest) (*entity.ProjectMilestone, error) {
	m, err := buildMilestone(req)
	if err != nil {
		return nil, err
	}
	m.Id, m.ProjectId, m.UserId = id, projectID, userID
	ok, err := s.repo.UpdateMilestone(ctx, m)
	if err != nil {
		return nil, xerr.Internal(err)
	}
	if !ok {
		return nil, errMilestoneNotFound
	}
	return m, nil
}

func (s *projectServiceImpl) DeleteMilestone(ctx context.Context, userID string, projectID string, id string) error {
	ok, err := s.repo.DeleteMilestone(ctx, userID, projectID, id)
	return deleteResult(ok, err, errMilestoneNotFound)
}

func (s *projectServiceImpl) AddTask(ctx context.Context, userID string, projectID string, req request.TaskRequest) (*entity.ProjectTask, error) {
	task, err := buildTask(req)
	if err != nil {
		return nil, err
	}
	if err := s.ensureOwned(ctx, userID, projectID); err != nil {
		return nil, err
	}
	task.Id = util.GenerateID()
	task.ProjectId = projectID
	task.UserId = userID
	if err := s.repo.CreateTask(ctx, task); err != nil {
		return nil, xerr.Internal(err)
	}
	return task, nil
}

func (s *projectServiceImpl) UpdateTask(ctx context.Context, userID string, projectID string, id string, req request.TaskRequest) (*entity.ProjectTask, error) {
	task, err := buildTask(req)
	if err != nil {
		return nil, err
	}
	task.Id, task.ProjectId, task.UserId = id, projectID, userID
	ok, err := s.repo.UpdateTask(ctx, task)
	if err != nil {
		return nil, xerr.Internal(err)
	}
	if !ok {
		return nil, errTaskNotFound
	}
	return task, nil
}

func (s *projectServiceImpl) DeleteTask(ctx context.Context, userID string, projectID string, id string) error {
	ok, err := s.repo.DeleteTask(ctx, userID, projectID, id)
	return deleteResult(ok, err, errTaskNotFound)
}

func (s *projectServiceImpl) AddUpdate(ctx context.Context, userID string, projectID string, req request.UpdateRequest) (*entity.ProjectUpdate, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, xerr.Validation("content is required")
	}
	if err := s.ensureOwned(ctx, userID, projectID); err != nil {
		return nil, err
	}
	u := &entity.ProjectUpdate{Id: util.GenerateID(), ProjectId: projectID, UserId: userID, Content: content}
	if err := s.repo.CreateUpdate(ctx, u); err != nil {
		return nil, xerr.Internal(err)
	}
	return u, nil
}

func (s *projectServiceImpl) DeleteUpdate(ctx context.Context, userID string, projectID string, id string) error {
	ok, err := s.repo.DeleteUpdate(ctx, userID, projectID, id)
	return deleteResult(ok, err, errUpdateNotFound)
}

func deleteResult(ok bool, err error, notFound error) error {
	if err != nil {
		return xerr.Internal(err)
	}
	if !ok {
		return notFound
	}
	return nil
}

func buildProject(req request.ProjectRequest) (*entity.ImprovementProject, error) {
	title := util.Truncate(req.Title, 200)
	if title == "" {
		return nil, xerr.Validation("title is required")
	}
	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = entity.StatusPlanned
	}
	return &entity.ImprovementProject{
		Title:      title,
		Objective:  strings.TrimSpace(req.Objective),
		System:     util.Truncate(req.System, 100),
		Status:     status,
		Timeline:   util.Truncate(req.Timeline, 200),
		Contractor: req.Contractor,
		Results:    strings.TrimSpace(req.Results),
	}, nil
}

func buildMilestone(req request.MilestoneRequest) (*entity.ProjectMilestone, error) {
	title := util.Truncate(req.Title, 200)
	if title == "" {
		return nil, xerr.Validation("title is required")
	}
	due, err := util.ParseDate(req.DueDate)
	if err != nil {
		return nil, xerr.Validation("due_date must be a date (YYYY-MM-DD)")
	}
	return &entity.ProjectMilestone{Title: title, DueDate: due, Completed: req.Completed}, nil
}

func buildTask(req request.TaskRequest) (*entity.ProjectTask, error) {
	title := util.Truncate(req.Title, 200)
	if title == "" {
		return nil, xerr.Validation("title is required")
	}
	return &entity.ProjectTask{Title: title, Assignee: util.Truncate(req.Assignee, 100), Completed: req.Completed}, nil
}
