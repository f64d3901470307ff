package service

import (
	"edumate_backend/internal/model"
	"edumate_backend/internal/repository"
	"edumate_backend/internal/util"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type GoalService struct {
	Goals     *repository.GoalRepository
	StudyTime *repository.StudyTimeRepository
	Attempts  *repository.QuizAttemptRepository
	Users     *UserService
}

func NewGoalService(goals *repository.GoalRepository, studyTime *repository.StudyTimeRepository, attempts *repository.QuizAttemptRepository, users *UserService) *GoalService {
	return &GoalService{
		Goals:     goals,
		StudyTime: studyTime,
		Attempts:  attempts,
		Users:     users,
	}
}

// TodayGoals 返回学生今天的目标，没有设置过则给默认值
func (s *GoalService) TodayGoals(studentID string) (*model.DailyGoal, error) {
	day := time.Now().Format(util.DateFormat)
	goal, err := s.Goals.FindForDay(studentID, day)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.DailyGoal{
				StudentID:       studentID,
				Day:             day,
				TimeGoalSeconds: model.DefaultTimeGoalSeconds,
				QuizGoal:        model.DefaultQuizGoal,
			}, nil
		}
		return nil, err
	}
	return goal, nil
}

type SetGoalsRequest struct {
	TimeGoalSeconds int `json:"time_goal_seconds"`
	QuizGoal        int `json:"quiz_goal"`
}

// SetToday 学生自己设置今天的目标
func (s *GoalService) SetToday(studentID string, req SetGoalsRequest) (*model.DailyGoal, error) {
	return s.setGoals(studentID, req, false)
}

// ParentSet 家长为绑定的学生设置目标
func (s *GoalService) ParentSet(parentID, studentID string, req SetGoalsRequest) (*model.DailyGoal, error) {
	if err := s.Users.VerifyLink(parentID, studentID); err != nil {
		return nil, err
	}
	return s.setGoals(studentID, req, true)
}

func (s *GoalService) setGoals(studentID string, req SetGoalsRequest, byParent bool) (*model.DailyGoal, error) {
	if req.TimeGoalSeconds < 0 || req.QuizGoal < 0 {
		return nil, errors.New("goals must be non-negative")
	}

	goal := &model.DailyGoal{
		StudentID:       studentID,
		Day:             time.Now().Format(util.DateFormat),
		TimeGoalSeconds: req.TimeGoalSeconds,
		QuizGoal:        req.QuizGoal,
		SetByParent:     byParent,
	}
	if err := s.Goals.Upsert(goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// DayCompletion 单日目标完成情况
type DayCompletion struct {
	Day             string `json:"day"`
	TimeGoalSeconds int    `json:"timeGoalSeconds"`
	QuizGoal        int    `json:"quizGoal"`
	ActualSeconds   int    `json:"actualSeconds"`
	ActualQuizzes   int    `json:"actualQuizzes"`
	GoalSet         bool   `json:"goalSet"`
	GoalMet         bool   `json:"goalMet"`
}

// MonthCompletion 整月逐日的目标完成日历。
// 没有显式目标的日子按默认目标判定。
func (s *GoalService) MonthCompletion(studentID string, year, month int) ([]DayCompletion, error) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	from := first.Format(util.DateFormat)
	to := last.Format(util.DateFormat)

	goals, err := s.Goals.FindRange(studentID, from, to)
	if err != nil {
		return nil, err
	}
	seconds, err := s.StudyTime.TotalsByDay(studentID, from, to)
	if err != nil {
		return nil, err
	}
	quizzes, err := s.Attempts.CountsByDay(studentID, from, to)
	if err != nil {
		return nil, err
	}
	return buildMonthCompletion(year, month, last.Day(), goals, seconds, quizzes), nil
}

// buildMonthCompletion 把目标、学习时长和测验次数按天装配成完成日历
func buildMonthCompletion(year, month, lastDay int, goals []model.DailyGoal, seconds, quizzes map[string]int) []DayCompletion {
	goalByDay := make(map[string]model.DailyGoal, len(goals))
	for _, g := range goals {
		goalByDay[g.Day] = g
	}

	days := make([]DayCompletion, 0, lastDay)
	for d := 1; d <= lastDay; d++ {
		day := fmt.Sprintf("%04d-%02d-%02d", year, month, d)

		timeGoal := model.DefaultTimeGoalSeconds
		quizGoal := model.DefaultQuizGoal
		goalSet := false
		if g, ok := goalByDay[day]; ok {
			timeGoal = g.TimeGoalSeconds
			quizGoal = g.QuizGoal
			goalSet = true
		}

		dc := DayCompletion{
			Day:             day,
			TimeGoalSeconds: timeGoal,
			QuizGoal:        quizGoal,
			ActualSeconds:   seconds[day],
			ActualQuizzes:   quizzes[day],
			GoalSet:         goalSet,
		}
		dc.GoalMet = dc.ActualSeconds >= timeGoal && dc.ActualQuizzes >= quizGoal
		days = append(days, dc)
	}
	return days
}
