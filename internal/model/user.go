package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Parent  UserRole = "parent"
)

// swagger:model User
type User struct {
	UUIDBase
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      UserRole  `gorm:"size:20;default:'student'" json:"role"`
	Grade     *int      `gorm:"" json:"grade,omitempty"` // 学生年级 1..12，家长为空
	LastLogin time.Time `json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}

// ParentStudentLink 家长与学生的绑定关系
type ParentStudentLink struct {
	UUIDBase
	ParentID  string `gorm:"size:36;index:idx_parent_student,unique;not null" json:"parentId"`
	StudentID string `gorm:"size:36;index:idx_parent_student,unique;not null" json:"studentId"`
}

func (ParentStudentLink) TableName() string {
	return "parent_student_links"
}
