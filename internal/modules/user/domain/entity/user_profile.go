package entity

import (
	"time"

	"gorm.io/datatypes"
)

// UserProfile 每个用户一行，整体 upsert
type UserProfile struct {
	UserId          string                      `gorm:"column:user_id;type:varchar(64);primaryKey" json:"user_id"`
	FullName        string                      `gorm:"column:full_name;type:varchar(100)" json:"full_name"`
	Title           string                      `gorm:"column:title;type:varchar(120)" json:"title"`
	Company         string                      `gorm:"column:company;type:varchar(120)" json:"company"`
	Location        string                      `gorm:"column:location;type:varchar(120)" json:"location"`
	Bio             string                      `gorm:"column:bio;type:text" json:"bio"`
	YearsExperience int                         `gorm:"column:years_experience" json:"years_experience"`
	Specializations datatypes.JSONSlice[string] `gorm:"column:specializations" json:"specializations"`
	LinkedinUrl     string                      `gorm:"column:linkedin_url;type:varchar(255)" json:"linkedin_url"`
	GithubUrl       string                      `gorm:"column:github_url;type:varchar(255)" json:"github_url"`
	WebsiteUrl      string                      `gorm:"column:website_url;type:varchar(255)" json:"website_url"`
	CreatedAt       time.Time                   `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time                   `gorm:"column:updated_at" json:"updated_at"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
