package repository

import (
	"edumate_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GoalRepository 处理每日学习目标的数据访问

type GoalRepository struct {
	DB *gorm.DB
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{DB: db}
}

// FindForDay 某天的目标记录，没有则返回 gorm.ErrRecordNotFound
func (r *GoalRepository) FindForDay(studentID, day string) (*model.DailyGoal, error) {
	var goal model.DailyGoal
	err := r.DB.Where("student_id = ? AND day = ?", studentID, day).First(&goal).Error
	return &goal, err
}

// Upsert 按 (student, day) 覆盖写入目标
func (r *GoalRepository) Upsert(goal *model.DailyGoal) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "day"}},
		DoUpdates: clause.AssignmentColumns([]string{"time_goal_seconds", "quiz_goal", "set_by_parent", "updated_at"}),
	}).Create(goal).Error
}

// FindRange 一段日期内的目标记录，闭区间
func (r *GoalRepository) FindRange(studentID, from, to string) ([]model.DailyGoal, error) {
	var goals []model.DailyGoal
	err := r.DB.Where("student_id = ? AND day BETWEEN ? AND ?", studentID, from, to).
		Find(&goals).Error
	return goals, err
}
