package service

import (
	"context"
	"edumate_backend/internal/model"
	"edumate_backend/internal/repository"
	"edumate_backend/internal/util"
	"edumate_backend/pkg/logger"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const statsCacheTTL = 30 * time.Second

type StatsService struct {
	Attempts  *repository.QuizAttemptRepository
	StudyTime *repository.StudyTimeRepository
	Redis     *redis.Client
}

func NewStatsService(attempts *repository.QuizAttemptRepository, studyTime *repository.StudyTimeRepository, rdb *redis.Client) *StatsService {
	return &StatsService{
		Attempts:  attempts,
		StudyTime: studyTime,
		Redis:     rdb,
	}
}

// Activity 面板上的一条最近动态，测验和学习会话合并排序
type Activity struct {
	Type       string    `json:"type"` // quiz / study
	Topic      string    `json:"topic,omitempty"`
	Module     string    `json:"module,omitempty"`
	Percentage float64   `json:"percentage,omitempty"`
	Seconds    int       `json:"seconds,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

type StudentStats struct {
	QuizCount        int64               `json:"quizCount"`
	AvgPercentage    float64             `json:"avgPercentage"`
	TotalQuestions   int64               `json:"totalQuestions"`
	TotalCorrect     int64               `json:"totalCorrect"`
	Accuracy         float64             `json:"accuracy"`
	TodaySeconds     int                 `json:"todaySeconds"`
	TodayQuizzes     int64               `json:"todayQuizzes"`
	RecentQuizzes    []model.QuizAttempt `json:"recentQuizzes"`
	RecentActivities []Activity          `json:"recentActivities"`
}

func statsCacheKey(studentID string) string {
	return fmt.Sprintf("stats:student:%s", studentID)
}

// StudentStats 学生统计面板数据，redis 缓存 30 秒
func (s *StatsService) StudentStats(ctx context.Context, studentID string) (*StudentStats, error) {
	key := statsCacheKey(studentID)
	if cached, err := s.Redis.Get(ctx, key).Result(); err == nil {
		var stats StudentStats
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return &stats, nil
		}
	}

	stats, err := s.buildStats(studentID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(stats); err == nil {
		if err := s.Redis.Set(ctx, key, data, statsCacheTTL).Err(); err != nil {
			logger.Log.Warn("stats cache write failed", zap.Error(err))
		}
	}
	return stats, nil
}

func (s *StatsService) buildStats(studentID string) (*StudentStats, error) {
	agg, err := s.Attempts.Aggregate(studentID)
	if err != nil {
		return nil, err
	}

	today := time.Now().Format(util.DateFormat)
	todaySeconds, err := s.StudyTime.TotalSecondsOnDay(studentID, today)
	if err != nil {
		return nil, err
	}
	todayQuizzes, err := s.Attempts.CountOnDay(studentID, today)
	if err != nil {
		return nil, err
	}

	recent, err := s.Attempts.FindRecent(studentID, 5)
	if err != nil {
		return nil, err
	}
	sessions, err := s.StudyTime.FindRecentSessions(studentID, 5)
	if err != nil {
		return nil, err
	}

	stats := &StudentStats{
		QuizCount:        agg.Count,
		AvgPercentage:    agg.AvgPercentage,
		TotalQuestions:   agg.TotalQuestions,
		TotalCorrect:     agg.TotalCorrect,
		TodaySeconds:     todaySeconds,
		TodayQuizzes:     todayQuizzes,
		RecentQuizzes:    recent,
		RecentActivities: mergeActivities(recent, sessions, 5),
	}
	if agg.TotalQuestions > 0 {
		stats.Accuracy = float64(agg.TotalCorrect) / float64(agg.TotalQuestions) * 100
	}
	return stats, nil
}

// mergeActivities 把测验和学习会话按时间倒序合并，取前 limit 条
func mergeActivities(attempts []model.QuizAttempt, sessions []model.StudySession, limit int) []Activity {
	activities := make([]Activity, 0, len(attempts)+len(sessions))
	for _, a := range attempts {
		activities = append(activities, Activity{
			Type:       "quiz",
			Topic:      a.Topic,
			Percentage: a.Percentage,
			OccurredAt: a.CreatedAt,
		})
	}
	for _, sess := range sessions {
		activities = append(activities, Activity{
			Type:       "study",
			Module:     sess.Module,
			Seconds:    sess.Seconds,
			OccurredAt: sess.CreatedAt,
		})
	}

	sort.Slice(activities, func(i, j int) bool {
		return activities[i].OccurredAt.After(activities[j].OccurredAt)
	})
	if len(activities) > limit {
		activities = activities[:limit]
	}
	return activities
}
