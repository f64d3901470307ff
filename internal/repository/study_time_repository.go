package repository

import (
	"edumate_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StudyTimeRepository struct {
	DB *gorm.DB
}

func NewStudyTimeRepository(db *gorm.DB) *StudyTimeRepository {
	return &StudyTimeRepository{DB: db}
}

func (r *StudyTimeRepository) CreateSession(session *model.StudySession) error {
	return r.DB.Create(session).Error
}

// AddToDailyTotal 累加某模块某天的学习时长，没有记录则插入
func (r *StudyTimeRepository) AddToDailyTotal(studentID, module, day string, seconds int) error {
	total := model.StudyTotal{
		StudentID:    studentID,
		Module:       module,
		Day:          day,
		TotalSeconds: seconds,
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "student_id"}, {Name: "module"}, {Name: "day"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_seconds": gorm.Expr("study_totals.total_seconds + ?", seconds),
		}),
	}).Create(&total).Error
}

// TotalSecondsOnDay 某天所有模块的累计学习秒数
func (r *StudyTimeRepository) TotalSecondsOnDay(studentID, day string) (int, error) {
	var total int
	err := r.DB.Model(&model.StudyTotal{}).
		Select("COALESCE(SUM(total_seconds), 0)").
		Where("student_id = ? AND day = ?", studentID, day).
		Scan(&total).Error
	return total, err
}

// TotalsByDay 一段日期内每天的累计秒数（跨模块求和），闭区间
func (r *StudyTimeRepository) TotalsByDay(studentID, from, to string) (map[string]int, error) {
	type row struct {
		Day     string
		Seconds int
	}
	var rows []row
	err := r.DB.Model(&model.StudyTotal{}).
		Select("day, SUM(total_seconds) AS seconds").
		Where("student_id = ? AND day BETWEEN ? AND ?", studentID, from, to).
		Group("day").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	totals := make(map[string]int, len(rows))
	for _, v := range rows {
		totals[v.Day] = v.Seconds
	}
	return totals, nil
}

func (r *StudyTimeRepository) FindRecentSessions(studentID string, limit int) ([]model.StudySession, error) {
	var sessions []model.StudySession
	err := r.DB.Where("student_id = ?", studentID).
		Order("created_at DESC").
		Limit(limit).
		Find(&sessions).Error
	return sessions, err
}
