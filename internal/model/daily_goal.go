package model

// DailyGoal 学生某天的学习目标，按 (student, day) 唯一。
// 没有记录时按默认目标处理：1800 秒 / 2 次测验。
type DailyGoal struct {
	UUIDBase
	StudentID       string `gorm:"size:36;index:idx_goal_key,unique;not null" json:"studentId"`
	Day             string `gorm:"size:10;index:idx_goal_key,unique;not null" json:"day"`
	TimeGoalSeconds int    `gorm:"not null;default:1800" json:"timeGoalSeconds"`
	QuizGoal        int    `gorm:"not null;default:2" json:"quizGoal"`
	SetByParent     bool   `gorm:"default:false" json:"setByParent"`
}

func (DailyGoal) TableName() string {
	return "daily_goals"
}

const (
	DefaultTimeGoalSeconds = 1800
	DefaultQuizGoal        = 2
)
