package repository

import (
	"edumate_backend/internal/model"

	"gorm.io/gorm"
)

type QuizAttemptRepository struct {
	DB *gorm.DB
}

func NewQuizAttemptRepository(db *gorm.DB) *QuizAttemptRepository {
	return &QuizAttemptRepository{DB: db}
}

func (r *QuizAttemptRepository) Create(attempt *model.QuizAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *QuizAttemptRepository) FindRecent(studentID string, limit int) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.Where("student_id = ?", studentID).
		Order("created_at DESC").
		Limit(limit).
		Find(&attempts).Error
	return attempts, err
}

// CountOnDay 某天完成的测验次数，day 为 YYYY-MM-DD
func (r *QuizAttemptRepository) CountOnDay(studentID, day string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizAttempt{}).
		Where("student_id = ? AND DATE(created_at) = ?::date", studentID, day).
		Count(&count).Error
	return count, err
}

// CountsByDay 一段日期内每天的测验次数，闭区间
func (r *QuizAttemptRepository) CountsByDay(studentID, from, to string) (map[string]int, error) {
	type row struct {
		Day   string
		Count int
	}
	var rows []row
	err := r.DB.Model(&model.QuizAttempt{}).
		Select("to_char(created_at, 'YYYY-MM-DD') AS day, COUNT(*) AS count").
		Where("student_id = ? AND DATE(created_at) BETWEEN ?::date AND ?::date", studentID, from, to).
		Group("to_char(created_at, 'YYYY-MM-DD')").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(rows))
	for _, v := range rows {
		counts[v.Day] = v.Count
	}
	return counts, nil
}

// AttemptAggregate 学生测验的汇总统计
type AttemptAggregate struct {
	Count          int64   `json:"count"`
	AvgPercentage  float64 `json:"avgPercentage"`
	TotalQuestions int64   `json:"totalQuestions"`
	TotalCorrect   int64   `json:"totalCorrect"`
}

func (r *QuizAttemptRepository) Aggregate(studentID string) (*AttemptAggregate, error) {
	var agg AttemptAggregate
	err := r.DB.Model(&model.QuizAttempt{}).
		Select("COUNT(*) AS count, COALESCE(AVG(percentage), 0) AS avg_percentage, COALESCE(SUM(num_questions), 0) AS total_questions, COALESCE(SUM(num_correct), 0) AS total_correct").
		Where("student_id = ?", studentID).
		Scan(&agg).Error
	return &agg, err
}
