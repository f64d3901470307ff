package service

import (
	"edumate_backend/internal/model"
	"edumate_backend/internal/repository"
	"edumate_backend/internal/util"
	"time"
)

type StudyTimeService struct {
	Repo *repository.StudyTimeRepository
}

func NewStudyTimeService(repo *repository.StudyTimeRepository) *StudyTimeService {
	return &StudyTimeService{Repo: repo}
}

type TrackTimeRequest struct {
	StudentID string `json:"-"`
	Module    string `json:"module" binding:"required"`
	Seconds   int    `json:"seconds" binding:"required"`
	// TotalOnly 为 true 时只累计当日总时长，不落单次会话记录
	TotalOnly bool `json:"total_only"`
}

// Track 记录一次学习时长并累计到当日总量
func (s *StudyTimeService) Track(req TrackTimeRequest) error {
	if !util.StudyModules[req.Module] {
		return util.ErrInvalidModule
	}
	if req.Seconds <= 0 {
		return util.ErrInvalidSeconds
	}

	day := time.Now().Format(util.DateFormat)

	if !req.TotalOnly {
		session := &model.StudySession{
			StudentID: req.StudentID,
			Module:    req.Module,
			Seconds:   req.Seconds,
			Day:       day,
		}
		if err := s.Repo.CreateSession(session); err != nil {
			return err
		}
	}

	return s.Repo.AddToDailyTotal(req.StudentID, req.Module, day, req.Seconds)
}
