package entity

import "time"

const (
	StatusPlanned  = "planned"
	StatusOngoing  = "ongoing"
	StatusComplete = "complete"
)

var Statuses = []string{StatusPlanned, StatusOngoing, StatusComplete}

// ImprovementProject 改进项目；里程碑、任务、进展为子表
type ImprovementProject struct {
	Id         string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	UserId     string    `gorm:"column:user_id;type:varchar(64);index;not null" json:"user_id"`
	Title      string    `gorm:"column:title;type:varchar(200);not null" json:"title"`
	Objective  string    `gorm:"column:objective;type:text" json:"objective"`
	System     string    `gorm:"column:system;type:varchar(100)" json:"system"`
	Status     string    `gorm:"column:status;type:varchar(20);not null;default:planned" json:"status"`
	Timeline   string    `gorm:"column:timeline;type:varchar(200)" json:"timeline"`
	Contractor bool      `gorm:"column:contractor;not null;default:false" json:"contractor"`
	Results    string    `gorm:"column:results;type:text" json:"results"`
	CreatedAt  time.Time `gorm:"column:created_at;index" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updated_at"`

	Milestones []ProjectMilestone `gorm:"foreignKey:ProjectId;constraint:OnDelete:CASCADE" json:"milestones,omitempty"`
	Tasks      []ProjectTask      `gorm:"foreignKey:ProjectId;constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
	Updates    []ProjectUpdate    `gorm:"foreignKey:ProjectId;constraint:OnDelete:CASCADE" json:"updates,omitempty"`
}

func (ImprovementProject) TableName() string {
	return "improvement_projects"
}

type ProjectMilestone struct {
	Id        string     `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	ProjectId string     `gorm:"column:project_id;type:varchar(36);index;not null" json:"project_id"`
	UserId    string     `gorm:"column:user_id;type:varchar(64);index;not null" json:"user_id"`
	Title     string     `gorm:"column:title;type:varchar(200);not null" json:"title"`
	DueDate   *time.Time `gorm:"column:due_date" json:"due_date"`
	Completed bool       `gorm:"column:completed;not null;default:false" json:"completed"`
	CreatedAt time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (ProjectMilestone) TableName() string {
	return "project_milestones"
}

type ProjectTask struct {
	Id        string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	ProjectId string    `gorm:"column:project_id;type:varchar(36);index;not null" json:"project_id"`
	UserId    string    `gorm:"column:user_id;type:varchar(64);index;not null" json:"user_id"`
	Title     string    `gorm:"column:title;type:varchar(200);not null" json:"title"`
	Assignee  string    `gorm:"column:assignee;type:varchar(100)" json:"assignee"`
	Completed bool      `gorm:"column:completed;not null;default:false" json:"completed"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (ProjectTask) TableName() string {
	return "project_tasks"
}

// ProjectUpdate 自由文本进展记录，只追加
type ProjectUpdate struct {
	Id        string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	ProjectId string    `gorm:"column:project_id;type:varchar(36);index;not null" json:"project_id"`
	UserId    string    `gorm:"column:user_id;type:varchar(64);index;not null" json:"user_id"`
	Content   string    `gorm:"column:content;type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (ProjectUpdate) TableName() string {
	return "project_updates"
}
