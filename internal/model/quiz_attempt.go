package model

// QuizAttempt 一次测验的完整记录，题目和作答以 JSON 原样落库
type QuizAttempt struct {
	UUIDBase
	StudentID    string  `gorm:"size:36;index;not null" json:"studentId"`
	Topic        string  `gorm:"size:200" json:"topic"`
	Grade        int     `json:"grade"`
	Difficulty   string  `gorm:"size:20" json:"difficulty"`
	NumQuestions int     `json:"numQuestions"`
	NumCorrect   int     `json:"numCorrect"`
	Percentage   float64 `json:"percentage"`
	ItemsJSON    string  `gorm:"type:jsonb" json:"-"`
	AnswersJSON  string  `gorm:"type:jsonb" json:"-"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
