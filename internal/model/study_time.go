package model

// StudySession 单次学习时长记录，Day 为 YYYY-MM-DD
type StudySession struct {
	UUIDBase
	StudentID string `gorm:"size:36;index;not null" json:"studentId"`
	Module    string `gorm:"size:10;not null" json:"module"` // s1 / s2 / s3
	Seconds   int    `gorm:"not null" json:"seconds"`
	Day       string `gorm:"size:10;index;not null" json:"day"`
}

func (StudySession) TableName() string {
	return "study_sessions"
}

// StudyTotal 学生某模块某天的累计时长，按 (student, module, day) 唯一
type StudyTotal struct {
	UUIDBase
	StudentID    string `gorm:"size:36;index:idx_total_key,unique;not null" json:"studentId"`
	Module       string `gorm:"size:10;index:idx_total_key,unique;not null" json:"module"`
	Day          string `gorm:"size:10;index:idx_total_key,unique;not null" json:"day"`
	TotalSeconds int    `gorm:"not null;default:0" json:"totalSeconds"`
}

func (StudyTotal) TableName() string {
	return "study_totals"
}
